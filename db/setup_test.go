package db_test

import (
	"context"
	"testing"

	"github.com/monocle-dev/catalog/db"
	"github.com/monocle-dev/catalog/db/dbtest"
	"github.com/monocle-dev/catalog/internal/config"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func TestSeedAdmin(t *testing.T) {
	conn := dbtest.Open(t)
	ctx := context.Background()
	seed := config.AdminSeed{Name: "Admin", Email: " Admin@Example.com ", Password: "secret-password"}

	require.NoError(t, db.SeedAdmin(ctx, conn, seed, zap.NewNop()))
	require.NoError(t, db.SeedAdmin(ctx, conn, config.AdminSeed{Name: "Other", Email: "admin@example.com", Password: "changed"}, zap.NewNop()))

	var users []models.User
	require.NoError(t, conn.Find(&users).Error)
	require.Len(t, users, 1, "an existing user is left untouched")

	admin := users[0]
	assert.Equal(t, "admin@example.com", admin.Email)
	assert.Equal(t, "Admin", admin.Name)
	assert.True(t, admin.IsAdmin())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte("secret-password")))
}

func TestSeedAdminDisabled(t *testing.T) {
	conn := dbtest.Open(t)

	require.NoError(t, db.SeedAdmin(context.Background(), conn, config.AdminSeed{Email: "admin@example.com"}, zap.NewNop()))

	var count int64
	require.NoError(t, conn.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestMigrateCreatesTables(t *testing.T) {
	conn := dbtest.Open(t)

	require.NoError(t, db.Migrate(conn), "migrating twice is harmless")

	for _, model := range []interface{}{&models.User{}, &models.Category{}, &models.Product{}, &models.RevokedToken{}} {
		assert.True(t, conn.Migrator().HasTable(model), "%T", model)
	}
}
