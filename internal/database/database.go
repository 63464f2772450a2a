package database

import (
	"fmt"
	"time"

	"github.com/fadilmartias/talent-match/internal/config"
	"github.com/fadilmartias/talent-match/internal/model"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the configured store and returns the dialect that
// provides its text-match primitive.
func Open(dbConfig *config.DBConfig, env string) (*gorm.DB, Dialect, error) {
	gormConfig := &gorm.Config{Logger: logger.Default.LogMode(logger.Warn)}
	if env == "production" {
		gormConfig.Logger = logger.Default.LogMode(logger.Error)
	}

	switch dbConfig.Driver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s",
			dbConfig.Host,
			dbConfig.User,
			dbConfig.Password,
			dbConfig.Name,
			dbConfig.Port,
			dbConfig.SSLMode,
			dbConfig.TimeZone,
		)
		db, err := OpenPostgres(dsn, gormConfig)
		if err != nil {
			return nil, nil, err
		}
		pgDB, err := db.DB()
		if err != nil {
			return nil, nil, fmt.Errorf("get database instance: %w", err)
		}
		if env != "production" {
			pgDB.SetMaxIdleConns(5)
			pgDB.SetMaxOpenConns(10)
			pgDB.SetConnMaxLifetime(30 * time.Minute)
		} else {
			pgDB.SetMaxIdleConns(20)
			pgDB.SetMaxOpenConns(200)
			pgDB.SetConnMaxLifetime(time.Hour)
		}
		return db, PostgresDialect{}, nil
	case config.DriverSQLite:
		db, err := OpenSQLite(dbConfig.Path, gormConfig)
		if err != nil {
			return nil, nil, err
		}
		return db, SQLiteDialect{}, nil
	default:
		return nil, nil, fmt.Errorf("unknown database driver %q", dbConfig.Driver)
	}
}

// OpenPostgres connects to PostgreSQL with dsn.
func OpenPostgres(dsn string, cfg *gorm.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), cfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// Migrate creates the canonical and index tables, then the dialect's text
// indexes on the matched columns.
func Migrate(db *gorm.DB, dialect Dialect) error {
	err := db.AutoMigrate(
		&model.Member{},
		&model.Project{},
		&model.Skill{},
		&model.Freelancer{},
		&model.Review{},
		&model.ProjectSearch{},
		&model.FreelancerSearch{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	ddl := append(
		dialect.TextIndexDDL(model.ProjectSearchTable),
		dialect.TextIndexDDL(model.FreelancerSearchTable)...,
	)
	for _, stmt := range ddl {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("create text index: %w", err)
		}
	}
	return nil
}
