package auth

import (
	"time"

	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/pkg/e"
)

// Principal is the authenticated caller of one request. Role comes from
// the user row, not from the token.
type Principal struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	TokenID   string    `json:"-"`
	ExpiresAt time.Time `json:"-"`
}

func NewPrincipal(user *models.User, claims *Claims) *Principal {
	p := &Principal{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	if claims != nil {
		p.TokenID = claims.ID
		if claims.ExpiresAt != nil {
			p.ExpiresAt = claims.ExpiresAt.Time
		}
	}

	return p
}

func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == models.RoleAdmin
}

// RequireAuthenticated fails with e.ErrUnauthenticated when there is no principal.
func RequireAuthenticated(p *Principal) error {
	if p == nil {
		return e.ErrUnauthenticated
	}
	return nil
}

// RequireAdmin checks authentication before the role, so an anonymous
// caller is never reported as forbidden.
func RequireAdmin(p *Principal) error {
	if err := RequireAuthenticated(p); err != nil {
		return err
	}
	if !p.IsAdmin() {
		return e.ErrForbidden
	}
	return nil
}
