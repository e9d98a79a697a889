// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/bookxchange/backend/internal/database"
)

// PNG is a tiny valid inline image.
const PNG = database.SamplePNG

// NewTestDB returns a migrated in-memory SQLite database private to t.
func NewTestDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=1", uuid.New().String())
	db, err := database.Open(sqlite.Open(dsn), "silent")
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps the in-memory database alive and serializes
	// writers.
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.RunMigrations(db), "failed to migrate test database")

	t.Cleanup(func() {
		sqlDB.Close()
	})
	return db
}

// NewLogger returns a logger that discards output and records entries.
func NewLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}
