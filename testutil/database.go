package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mavhungutrezzy/umami-tube/database"
	"github.com/mavhungutrezzy/umami-tube/dto"
	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbCounter atomic.Int64

// Today is the fixed date tests run against
var Today = time.Date(2026, time.March, 10, 9, 30, 0, 0, time.UTC)

// Clock returns a clock frozen at Today
func Clock() func() time.Time {
	return func() time.Time { return Today }
}

// NewDB opens a private in-memory sqlite database with every catalog table
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := fmt.Sprintf("%s_%d", strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()), dbCounter.Add(1))
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(database.Models()...))
	return db
}

// NewSeededDB is NewDB plus the taxonomy seed
func NewSeededDB(t *testing.T) *gorm.DB {
	t.Helper()
	db := NewDB(t)
	require.NoError(t, services.NewTaxonomyRegistry(db).Seed(context.Background()))
	return db
}

// CreateUser inserts a user with role
func CreateUser(t *testing.T, db *gorm.DB, email, role string) *model.User {
	t.Helper()
	user := &model.User{Email: email, Name: strings.Split(email, "@")[0], Role: role}
	require.NoError(t, db.Create(user).Error)
	return user
}

// Actor is the service-level view of user
func Actor(user *model.User) services.Actor {
	return services.Actor{ID: user.ID, Operator: user.IsOperator()}
}

// TaxonomyID looks up the id of a seeded entry by code
func TaxonomyID[T any](t *testing.T, db *gorm.DB, code string) uint {
	t.Helper()
	var row T
	require.NoError(t, db.Where("code = ?", code).First(&row).Error, "taxonomy code %q", code)
	return any(row).(interface{ TaxonomyID() uint }).TaxonomyID()
}

func Ptr[T any](v T) *T {
	return &v
}

func Dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// AccommodationInput is a complete, valid create payload
func AccommodationInput(t *testing.T, db *gorm.DB, title string) dto.AccommodationWrite {
	t.Helper()
	return dto.AccommodationWrite{
		Title:                   Ptr(title),
		Description:             Ptr("Bright rooms close to campus"),
		PropertyType:            Ptr(TaxonomyID[model.PropertyType](t, db, "private_residence")),
		EducationalInstitutions: Ptr([]uint{TaxonomyID[model.Institution](t, db, "cput")}),
		Address:                 Ptr("12 Main Road"),
		City:                    Ptr("Cape Town"),
		Province:                Ptr("Western Cape"),
		PostalCode:              Ptr("7700"),
		MonthlyRent:             Dec("4500.00"),
		DepositAmount:           Dec("4500.00"),
		Bathrooms:               Dec("1.5"),
		AvailableFrom:           Ptr("2026-04-01"),
		Amenities:               Ptr([]uint{TaxonomyID[model.Amenity](t, db, "wifi")}),
		AcceptedPayments:        Ptr([]uint{TaxonomyID[model.PaymentMethod](t, db, "nsfas")}),
		ContactPhone:            Ptr("0211234567"),
		ContactEmail:            Ptr("landlord@example.com"),
	}
}

// BursaryInput is a complete, valid create payload
func BursaryInput(t *testing.T, db *gorm.DB, name string) dto.BursaryWrite {
	t.Helper()
	return dto.BursaryWrite{
		Name:                Ptr(name),
		Provider:            Ptr("Example Trust"),
		Content:             Ptr("<p>Covers tuition and books.</p>"),
		ApplicationURL:      Ptr("https://example.com/apply"),
		ApplicationDeadline: Ptr("2026-06-30"),
		AcademicYear:        Ptr("2027"),
		FieldsOfStudy:       Ptr([]uint{TaxonomyID[model.FieldOfStudy](t, db, "engineering")}),
		EducationLevels:     Ptr([]uint{TaxonomyID[model.EducationLevel](t, db, "undergraduate")}),
		StudyLevels:         Ptr([]uint{TaxonomyID[model.StudyLevel](t, db, "degree")}),
	}
}
