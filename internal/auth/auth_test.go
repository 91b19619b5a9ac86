package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/monocle-dev/catalog/db/dbtest"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/pkg/e"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestIssuer(t *testing.T, now time.Time) *Issuer {
	t.Helper()

	issuer, err := NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)
	issuer.now = func() time.Time { return now }
	return issuer
}

func TestIssueAndVerify(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(t, now)
	user := &models.User{ID: 7, Email: "ana@example.com", Role: models.RoleAdmin}

	token, claims, err := issuer.GenerateJWT(user)
	require.NoError(t, err)
	assert.NotEmpty(t, claims.ID)

	verified, err := issuer.VerifyJWT(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), verified.UserID)
	assert.Equal(t, "ana@example.com", verified.Email)
	assert.Equal(t, models.RoleAdmin, verified.Role)
	assert.Equal(t, claims.ID, verified.ID)

	_, second, err := issuer.GenerateJWT(user)
	require.NoError(t, err)
	assert.NotEqual(t, claims.ID, second.ID, "every token gets its own id")
}

func TestVerifyRejectsBadTokens(t *testing.T) {
	now := time.Now()
	issuer := newTestIssuer(t, now)
	user := &models.User{ID: 1, Email: "u@example.com", Role: models.RoleUser}

	token, _, err := issuer.GenerateJWT(user)
	require.NoError(t, err)

	other, err := NewIssuer("another-secret", time.Hour)
	require.NoError(t, err)
	_, err = other.VerifyJWT(token)
	assert.Error(t, err, "wrong secret")

	later := newTestIssuer(t, now.Add(2*time.Hour))
	_, err = later.VerifyJWT(token)
	assert.Error(t, err, "expired")

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1, "jti": "x", "exp": now.Add(time.Hour).Unix()})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.VerifyJWT(unsigned)
	assert.Error(t, err, "alg none")

	_, err = issuer.VerifyJWT("not-a-token")
	assert.Error(t, err)
}

func TestNewIssuerRequiresSecret(t *testing.T) {
	_, err := NewIssuer("", time.Hour)
	assert.Error(t, err)
}

func TestPolicy(t *testing.T) {
	admin := &Principal{ID: 1, Role: models.RoleAdmin}
	user := &Principal{ID: 2, Role: models.RoleUser}

	assert.ErrorIs(t, RequireAuthenticated(nil), e.ErrUnauthenticated)
	assert.NoError(t, RequireAuthenticated(user))

	assert.ErrorIs(t, RequireAdmin(nil), e.ErrUnauthenticated, "anonymous callers are unauthenticated, not forbidden")
	assert.ErrorIs(t, RequireAdmin(user), e.ErrForbidden)
	assert.NoError(t, RequireAdmin(admin))
}

func TestNewPrincipalUsesUserRole(t *testing.T) {
	user := &models.User{ID: 3, Name: "Ana", Email: "ana@example.com", Role: models.RoleUser}
	exp := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	claims := &Claims{Role: models.RoleAdmin}
	claims.ID = "jti-1"
	claims.ExpiresAt = jwt.NewNumericDate(exp)

	p := NewPrincipal(user, claims)

	assert.False(t, p.IsAdmin(), "a stale admin claim does not grant access")
	assert.Equal(t, "jti-1", p.TokenID)
	assert.True(t, p.ExpiresAt.Equal(exp))
}

func TestDBRevoker(t *testing.T) {
	conn := dbtest.Open(t)
	r := NewDBRevoker(conn)
	ctx := context.Background()

	revoked, err := r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, r.Revoke(ctx, "abc", time.Now().Add(time.Hour)))
	require.NoError(t, r.Revoke(ctx, "abc", time.Now().Add(time.Hour)), "revoking twice is harmless")

	revoked, err = r.IsRevoked(ctx, "abc")
	require.NoError(t, err)
	assert.True(t, revoked)

	require.NoError(t, r.Revoke(ctx, "old", time.Now().Add(-time.Minute)))
	revoked, err = r.IsRevoked(ctx, "old")
	require.NoError(t, err)
	assert.False(t, revoked, "expired tokens need no entry")
}

func TestDBRevokerPrune(t *testing.T) {
	conn := dbtest.Open(t)
	r := NewDBRevoker(conn)
	ctx := context.Background()

	now := time.Now()
	r.now = func() time.Time { return now }

	require.NoError(t, r.Revoke(ctx, "short", now.Add(time.Minute)))
	require.NoError(t, r.Revoke(ctx, "long", now.Add(time.Hour)))

	now = now.Add(2 * time.Minute)
	require.NoError(t, r.Prune(ctx))

	var count int64
	require.NoError(t, conn.Model(&models.RevokedToken{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	revoked, err := r.IsRevoked(ctx, "long")
	require.NoError(t, err)
	assert.True(t, revoked)
}
