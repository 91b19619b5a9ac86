package db

import (
	"context"
	"errors"
	"strings"

	"github.com/monocle-dev/catalog/internal/config"
	"github.com/monocle-dev/catalog/internal/models"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func ConnectDatabase(dsn string) error {
	var err error

	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

// Migrate creates or updates the schema on conn. Categories are migrated
// before products so the products foreign key can reference them.
func Migrate(conn *gorm.DB) error {
	tables := []interface{}{
		&models.User{},
		&models.Category{},
		&models.Product{},
		&models.RevokedToken{},
	}

	for _, model := range tables {
		if err := conn.AutoMigrate(model); err != nil {
			return err
		}
	}

	return nil
}

// SeedAdmin creates the configured administrator unless a user with that
// email already exists. An existing user is left untouched.
func SeedAdmin(ctx context.Context, conn *gorm.DB, seed config.AdminSeed, log *zap.Logger) error {
	if !seed.Enabled() {
		return nil
	}

	email := strings.ToLower(strings.TrimSpace(seed.Email))

	var existing models.User

	err := conn.WithContext(ctx).Where("email = ?", email).First(&existing).Error

	if err == nil {
		return nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(seed.Password), bcrypt.DefaultCost)

	if err != nil {
		return err
	}

	admin := models.User{
		Name:         seed.Name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	}

	if err := conn.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}

	log.Info("seeded administrator", zap.String("email", email), zap.Uint("user_id", admin.ID))

	return nil
}
