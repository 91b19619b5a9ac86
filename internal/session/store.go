package session

import (
	"context"
	"errors"
)

var ErrMissing = errors.New("session value not found")

// Store keeps JSON encoded values per key. Every Save refreshes the
// expiry of the key.
type Store interface {
	// Load decodes the value stored under key into dest. It returns
	// ErrMissing when the key is absent or expired.
	Load(ctx context.Context, key string, dest interface{}) error
	Save(ctx context.Context, key string, value interface{}) error
	Delete(ctx context.Context, key string) error
}

// Key builds the store key of one component for one login.
func Key(component, tokenID string) string {
	return "crud:" + component + ":" + tokenID
}
