package database

import (
	"fmt"
	"time"

	"github.com/mavhungutrezzy/umami-tube/config"
	"github.com/mavhungutrezzy/umami-tube/model"
	applog "github.com/mavhungutrezzy/umami-tube/utils/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Storage defines what the application needs from the database layer
type Storage interface {
	Init() error
	Close() error
	HealthCheck() error
	GetDB() *gorm.DB
}

type GORMStore struct {
	db  *gorm.DB
	log *applog.Logger
}

// Models lists every table the catalog owns, parents before children
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.JWTTokenBlacklist{},

		// Taxonomies
		&model.Institution{},
		&model.PropertyType{},
		&model.PaymentMethod{},
		&model.Amenity{},
		&model.FieldOfStudy{},
		&model.StudyLevel{},
		&model.EducationLevel{},

		// Catalog
		&model.Accommodation{},
		&model.Bursary{},

		// Audit & logging
		&model.AuditLog{},
		&model.CronJobLog{},
	}
}

// StartGORM opens the database selected by DB_DRIVER
func StartGORM(env *config.EnvironmentVariable, log *applog.Logger) (*GORMStore, error) {
	gormLogger := logger.Default.LogMode(logger.Warn)
	if env.IsProduction() {
		gormLogger = logger.Default.LogMode(logger.Error)
	}
	cfg := &gorm.Config{
		Logger:      gormLogger,
		PrepareStmt: true,
	}

	var dialector gorm.Dialector
	switch env.DB_DRIVER {
	case "sqlite":
		dialector = sqlite.Open(fmt.Sprintf("file:%s?_foreign_keys=on", env.DB_PATH))
	case "postgres", "":
		dsn := fmt.Sprintf(
			"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			env.DB_HOST,
			env.DB_USER_NAME,
			env.DB_PASSWORD,
			env.DB_NAME,
			env.DB_PORT,
			env.DB_SSL_MODE,
		)
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", env.DB_DRIVER)
	}

	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		log.Error("Unable to connect to database", "driver", env.DB_DRIVER, "error", err)
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	if env.DB_DRIVER == "sqlite" {
		// sqlite serializes writers
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxIdleConns(10)
		sqlDB.SetMaxOpenConns(100)
		sqlDB.SetConnMaxLifetime(time.Hour)
	}

	log.Info("Connected to database", "driver", env.DB_DRIVER)

	return &GORMStore{db: db, log: log}, nil
}

// NewGORMStore wraps an already opened connection
func NewGORMStore(db *gorm.DB, log *applog.Logger) *GORMStore {
	return &GORMStore{db: db, log: log}
}

// Init runs AutoMigrate for every catalog model
func (s *GORMStore) Init() error {
	s.log.Info("Running AutoMigrate")

	if err := s.db.AutoMigrate(Models()...); err != nil {
		s.log.Error("AutoMigrate failed", "error", err)
		return err
	}

	s.log.Info("AutoMigrate completed")
	return nil
}

// Close closes the database connection
func (s *GORMStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// GetDB returns the GORM DB instance
func (s *GORMStore) GetDB() *gorm.DB {
	return s.db
}

// HealthCheck verifies the database connection is alive
func (s *GORMStore) HealthCheck() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
