package migrations

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/mwantia/govportal/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "migrations.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func TestMigrate(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m := NewMigrator(db)

	require.NoError(t, m.Migrate(ctx))
	// A second run has nothing pending.
	require.NoError(t, m.Migrate(ctx))

	assert.True(t, db.Migrator().HasTable(&models.Project{}))
	assert.True(t, db.Migrator().HasTable(&models.Document{}))
	assert.True(t, db.Migrator().HasTable(&models.Family{}))
	assert.True(t, db.Migrator().HasIndex(&models.Project{}, "idx_projects_status_start"))

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	for _, s := range statuses {
		assert.True(t, s.Applied, "migration %d", s.Version)
	}
}

func TestRollback(t *testing.T) {
	ctx := context.Background()
	db := openTestDB(t)
	m := NewMigrator(db)

	require.NoError(t, m.Migrate(ctx))

	require.NoError(t, m.Rollback(ctx))
	assert.False(t, db.Migrator().HasIndex(&models.Project{}, "idx_projects_status_start"))
	assert.True(t, db.Migrator().HasTable(&models.Project{}))

	require.NoError(t, m.Rollback(ctx))
	assert.False(t, db.Migrator().HasTable(&models.Project{}))

	statuses, err := m.Status(ctx)
	require.NoError(t, err)
	for _, s := range statuses {
		assert.False(t, s.Applied, "migration %d", s.Version)
	}

	assert.Error(t, m.Rollback(ctx))
}

func TestStatusBeforeMigrate(t *testing.T) {
	m := NewMigrator(openTestDB(t))

	statuses, err := m.Status(context.Background())
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.Equal(t, 1, statuses[0].Version)
	assert.False(t, statuses[0].Applied)
}

func TestMigrateOrdersByVersion(t *testing.T) {
	var order []int
	record := func(v int) func(*gorm.DB) error {
		return func(*gorm.DB) error {
			order = append(order, v)
			return nil
		}
	}
	noop := func(*gorm.DB) error { return nil }

	m := newMigrator(openTestDB(t), []Migration{
		{Version: 3, Up: record(3), Down: noop},
		{Version: 1, Up: record(1), Down: noop},
		{Version: 2, Up: record(2), Down: noop},
	})

	require.NoError(t, m.Migrate(context.Background()))
	assert.Equal(t, []int{1, 2, 3}, order)
}
