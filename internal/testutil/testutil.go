package testutil

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/rdfzsc/campus-api/internal/repository/dao"
)

// TestDatabase holds an in-memory SQLite database with the full schema
// migrated.
type TestDatabase struct {
	DB *gorm.DB
}

// SetupTestDatabase opens an isolated in-memory database named after the
// test. Connections are capped at one so concurrent transactions
// serialize instead of tripping SQLite's shared-cache locking.
func SetupTestDatabase(t *testing.T) *TestDatabase {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%v?mode=memory&cache=shared&_busy_timeout=5000", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access underlying sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	if err = dao.InitTables(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return &TestDatabase{DB: db}
}
