package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/testutil"
	"github.com/mavhungutrezzy/umami-tube/utils/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlacklist(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewBlacklistService(db)
	user := testutil.CreateUser(t, db, "student@example.com", model.RoleStudent)
	ctx := context.Background()

	revoked, err := svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, svc.RevokeToken(ctx, "jti-1", user.ID, time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.RevokeToken(ctx, "jti-1", user.ID, time.Now().Add(time.Hour), "logout"))
	require.NoError(t, svc.RevokeToken(ctx, "jti-old", user.ID, time.Now().Add(-time.Hour), "logout"))

	revoked, err = svc.IsTokenRevoked(ctx, "jti-1")
	require.NoError(t, err)
	assert.True(t, revoked)

	removed, err := svc.CleanupExpiredTokens(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, removed)

	require.NoError(t, svc.RevokeAllUserTokens(ctx, user.ID))
	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.Equal(t, 1, reloaded.TokenVersion)
}

func TestSyncUser(t *testing.T) {
	db := testutil.NewDB(t)
	svc := auth.NewBlacklistService(db)
	ctx := context.Background()

	user, err := svc.SyncUser(ctx, &auth.Claims{UserID: 77, Email: "lerato@example.com", Role: model.RoleLandlord})
	require.NoError(t, err)
	assert.Equal(t, uint(77), user.ID)
	assert.Equal(t, "lerato@example.com", user.Name)
	assert.Equal(t, model.RoleLandlord, user.Role)

	require.NoError(t, db.Model(&model.User{}).Where("id = ?", 77).Update("token_version", 4).Error)

	user, err = svc.SyncUser(ctx, &auth.Claims{UserID: 77, Email: "lerato@example.com", Name: "Lerato", Role: model.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "Lerato", user.Name)
	assert.Equal(t, model.RoleAdmin, user.Role)
	assert.Equal(t, 4, user.TokenVersion)
}
