// Package repotest provides migrated in-memory databases for tests.
package repotest

import (
	"strings"
	"testing"

	"codal-docs-be/internal/model"
	"codal-docs-be/internal/repository/unitofwork"
	"codal-docs-be/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// NewDB returns an empty, migrated database private to the test.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	name := "test_" + strings.ReplaceAll(uuid.NewString(), "-", "")
	db, err := database.NewInMemoryDB(name)
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.All()...))

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewFactory wraps NewDB in a repository factory.
func NewFactory(t testing.TB) (unitofwork.RepositoryFactory, *gorm.DB) {
	t.Helper()
	db := NewDB(t)
	return unitofwork.NewRepositoryFactory(db), db
}
