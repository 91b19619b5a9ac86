package auth

import (
	"context"
	"errors"
	"time"

	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/pkg/e"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Revoker remembers logged-out token ids until the tokens expire.
type Revoker interface {
	Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}

const blacklistPrefix = "jwt:blacklist:"

type RedisRevoker struct {
	client *redis.Client
	now    func() time.Time
}

func NewRedisRevoker(client *redis.Client) *RedisRevoker {
	return &RedisRevoker{
		client: client,
		now:    time.Now,
	}
}

func (r *RedisRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	if err := r.client.Set(ctx, blacklistPrefix+tokenID, "1", ttl).Err(); err != nil {
		return e.Wrap("revoke token", err)
	}

	return nil
}

func (r *RedisRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	err := r.client.Get(ctx, blacklistPrefix+tokenID).Err()

	if errors.Is(err, redis.Nil) {
		return false, nil
	}

	if err != nil {
		return false, e.Wrap("check revoked token", err)
	}

	return true, nil
}

// DBRevoker keeps revoked ids in the revoked_tokens table.
type DBRevoker struct {
	db  *gorm.DB
	now func() time.Time
}

func NewDBRevoker(db *gorm.DB) *DBRevoker {
	return &DBRevoker{
		db:  db,
		now: time.Now,
	}
}

func (r *DBRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if !expiresAt.After(r.now()) {
		return nil
	}

	record := models.RevokedToken{ID: tokenID, ExpiresAt: expiresAt}

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&record).Error; err != nil {
		return e.Wrap("revoke token", err)
	}

	return nil
}

// Prune deletes ids whose tokens have expired on their own.
func (r *DBRevoker) Prune(ctx context.Context) error {
	res := r.db.WithContext(ctx).
		Where("expires_at <= ?", r.now()).
		Delete(&models.RevokedToken{})

	if res.Error != nil {
		return e.Wrap("prune revoked tokens", res.Error)
	}

	return nil
}

func (r *DBRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	var count int64

	if err := r.db.WithContext(ctx).
		Model(&models.RevokedToken{}).
		Where("id = ?", tokenID).
		Count(&count).Error; err != nil {
		return false, e.Wrap("check revoked token", err)
	}

	return count > 0, nil
}
