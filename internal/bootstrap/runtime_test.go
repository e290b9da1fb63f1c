package bootstrap

import (
	"testing"

	"skillswap/internal/config"
	"skillswap/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func bootstrapTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}))
	return db
}

func TestEnsureDevRootAdminCreatesFirstAdmin(t *testing.T) {
	db := bootstrapTestDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootUsername:  "root",
		DevRootEmail:     "root@skillswap.local",
		DevRootPassword:  "swordfish",
	}

	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var root models.User
	require.NoError(t, db.First(&root, 1).Error)
	assert.True(t, root.IsAdmin)
	assert.False(t, root.IsPublic)
	assert.Equal(t, "root", root.Username)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(root.Password), []byte("swordfish")))
}

func TestEnsureDevRootAdminPromotesExistingUserOne(t *testing.T) {
	db := bootstrapTestDB(t)
	require.NoError(t, db.Create(&models.User{
		ID:       1,
		Username: "demoted",
		Email:    "demoted@example.com",
		Password: "hashed",
	}).Error)

	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
		DevRootPassword:  "swordfish",
	}
	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var root models.User
	require.NoError(t, db.First(&root, 1).Error)
	assert.True(t, root.IsAdmin)
	// Existing credentials are untouched, only the flag flips.
	assert.Equal(t, "demoted", root.Username)
}

func TestEnsureDevRootAdminSkipsOutsideDevelopment(t *testing.T) {
	db := bootstrapTestDB(t)
	cfg := &config.Config{
		Env:              "production",
		DevBootstrapRoot: true,
		DevRootPassword:  "swordfish",
	}

	require.NoError(t, ensureDevRootAdmin(cfg, db))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestEnsureDevRootAdminRequiresPassword(t *testing.T) {
	db := bootstrapTestDB(t)
	cfg := &config.Config{
		Env:              "development",
		DevBootstrapRoot: true,
	}

	err := ensureDevRootAdmin(cfg, db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DEV_ROOT_PASSWORD")
}
