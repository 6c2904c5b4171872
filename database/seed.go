package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/mavhungutrezzy/umami-tube/model"
	"github.com/mavhungutrezzy/umami-tube/services"
	applog "github.com/mavhungutrezzy/umami-tube/utils/logger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Seeder handles database seeding operations
type Seeder struct {
	db       *gorm.DB
	registry *services.TaxonomyRegistry
	log      *applog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, log *applog.Logger) *Seeder {
	return &Seeder{db: db, registry: services.NewTaxonomyRegistry(db), log: log}
}

// SeedAll seeds the taxonomies and, when given, an operator account
func (s *Seeder) SeedAll(ctx context.Context, operatorEmail string) error {
	s.log.Info("Starting database seeding")

	if err := s.registry.Seed(ctx); err != nil {
		return fmt.Errorf("failed to seed taxonomies: %w", err)
	}

	if operatorEmail != "" {
		if err := s.SeedOperator(ctx, operatorEmail); err != nil {
			return fmt.Errorf("failed to seed operator: %w", err)
		}
	}

	s.log.Info("Database seeding completed")
	return nil
}

// SeedOperator makes sure a user with the admin role exists for email.
// An existing account with that email is promoted.
func (s *Seeder) SeedOperator(ctx context.Context, email string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	user := model.User{
		Email: email,
		Name:  "Catalog Operator",
		Role:  model.RoleAdmin,
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"role": model.RoleAdmin}),
	}).Create(&user).Error
	if err != nil {
		return err
	}

	s.log.Info("Operator account ready", "email", email)
	return nil
}
