package database

import (
	"os"
	"path/filepath"
	"testing"

	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenTest opens a migrated SQLite database in the test's temp dir. It is
// closed when the test ends.
func OpenTest(t testing.TB) (*gorm.DB, Dialect) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "talent-match.db")
	db, err := OpenSQLite(path, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}
	dialect := SQLiteDialect{}
	if err := Migrate(db, dialect); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, dialect
}

// TestPostgresDSNEnv names the variable holding a DSN for tests that run
// against a real Postgres. Those tests are skipped when it is unset.
const TestPostgresDSNEnv = "TEST_POSTGRES_DSN"

// OpenTestPostgres opens and migrates the database named by
// TEST_POSTGRES_DSN and empties every table, or skips the test when the
// variable is unset. The database must be disposable.
func OpenTestPostgres(t testing.TB) (*gorm.DB, Dialect) {
	t.Helper()

	dsn := os.Getenv(TestPostgresDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set", TestPostgresDSNEnv)
	}
	db, err := OpenPostgres(dsn, &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("open postgres: %v", err)
	}
	dialect := PostgresDialect{}
	if err := Migrate(db, dialect); err != nil {
		t.Fatalf("migrate postgres: %v", err)
	}
	err = db.Exec("TRUNCATE project_search, freelancer_search, reviews, freelancer_skills, " +
		"freelancers, skills, projects, members RESTART IDENTITY CASCADE").Error
	if err != nil {
		t.Fatalf("truncate postgres: %v", err)
	}

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db, dialect
}
