package database

import (
	"fmt"
	"testing"

	"learnhub_backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMigrate_RepeatableAndSeedsOnce(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// operators may run -migrate-only against an already-migrated database
	require.NoError(t, Migrate(db))
	require.NoError(t, Migrate(db))

	var orgs int64
	require.NoError(t, db.Model(&model.Organization{}).Count(&orgs).Error)
	assert.EqualValues(t, 1, orgs, "default organization is seeded exactly once")

	var org model.Organization
	require.NoError(t, db.First(&org).Error)
	assert.Equal(t, "learnhub", org.Name)
	assert.Equal(t, "LearnHub Marketplace", org.DisplayName)

	require.NoError(t, db.Create(&model.User{Name: "Mia", Email: "mia@example.com", Password: "x"}).Error)
}
