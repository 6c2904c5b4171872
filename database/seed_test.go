package database_test

import (
	"context"
	"testing"

	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/testutil"
	"github.com/mavhungutrezzy/umami-tube/utils/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedAll_TaxonomiesAndOperator(t *testing.T) {
	db := testutil.NewDB(t)
	seeder := database.NewSeeder(db, logger.Nop())
	ctx := context.Background()

	require.NoError(t, seeder.SeedAll(ctx, " Ops@Example.com "))
	require.NoError(t, seeder.SeedAll(ctx, "ops@example.com"))

	var amenities int64
	require.NoError(t, db.Model(&model.Amenity{}).Count(&amenities).Error)
	assert.EqualValues(t, len(model.AmenityChoices), amenities)

	var users []model.User
	require.NoError(t, db.Find(&users).Error)
	require.Len(t, users, 1)
	assert.Equal(t, "ops@example.com", users[0].Email)
	assert.Equal(t, model.RoleAdmin, users[0].Role)
}

func TestSeedOperator_PromotesExistingUser(t *testing.T) {
	db := testutil.NewDB(t)
	existing := testutil.CreateUser(t, db, "landlord@example.com", model.RoleLandlord)

	require.NoError(t, database.NewSeeder(db, logger.Nop()).SeedOperator(context.Background(), "landlord@example.com"))

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, existing.ID).Error)
	assert.Equal(t, model.RoleAdmin, reloaded.Role)
	assert.Equal(t, "landlord", reloaded.Name)
}

func TestGORMStore_HealthCheck(t *testing.T) {
	store := database.NewGORMStore(testutil.NewDB(t), logger.Nop())
	require.NoError(t, store.HealthCheck())
	assert.NotNil(t, store.GetDB())
}
