package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/auth"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/types"
	"github.com/monocle-dev/catalog/internal/utils"
	"github.com/monocle-dev/catalog/pkg/e"
	"go.uber.org/zap"
)

type UserFinder interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// Authenticator resolves the principal of a request from a JWT. The user
// row is re-read on every request so role changes and deletions apply
// immediately.
type Authenticator struct {
	issuer  *auth.Issuer
	users   UserFinder
	revoker auth.Revoker
	logger  *zap.Logger
}

func NewAuthenticator(issuer *auth.Issuer, users UserFinder, revoker auth.Revoker, log *zap.Logger) *Authenticator {
	return &Authenticator{
		issuer:  issuer,
		users:   users,
		revoker: revoker,
		logger:  log,
	}
}

// Authenticate returns e.ErrUnauthenticated for any invalid, revoked or
// orphaned token. Other errors are store failures.
func (a *Authenticator) Authenticate(ctx context.Context, token string) (*auth.Principal, error) {
	claims, err := a.issuer.VerifyJWT(token)

	if err != nil {
		return nil, e.ErrUnauthenticated
	}

	revoked, err := a.revoker.IsRevoked(ctx, claims.ID)

	if err != nil {
		return nil, err
	}

	if revoked {
		return nil, e.ErrUnauthenticated
	}

	user, err := a.users.GetByID(ctx, claims.UserID)

	if errors.Is(err, e.ErrNotFound) {
		return nil, e.ErrUnauthenticated
	}

	if err != nil {
		return nil, err
	}

	return auth.NewPrincipal(user, claims), nil
}

// RequireToken guards the JSON API with a bearer token.
func (a *Authenticator) RequireToken() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		authHeader := ctx.GetHeader("Authorization")

		parts := strings.SplitN(authHeader, " ", 2)

		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": types.MessageUnauthenticated})
			return
		}

		principal, err := a.Authenticate(ctx.Request.Context(), strings.TrimSpace(parts[1]))

		if err != nil {
			a.abortUnauthenticated(ctx, err, true)
			return
		}

		ctx.Set(types.ContextUserKey, principal)
		ctx.Next()
	}
}

// RequireSession guards the interactive pages with the token cookie.
// Anonymous visitors are sent to the login page.
func (a *Authenticator) RequireSession() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		token, err := ctx.Cookie(types.TokenCookie)

		if err != nil || token == "" {
			a.abortUnauthenticated(ctx, e.ErrUnauthenticated, utils.ExpectsJSON(ctx))
			return
		}

		principal, err := a.Authenticate(ctx.Request.Context(), token)

		if err != nil {
			a.abortUnauthenticated(ctx, err, utils.ExpectsJSON(ctx))
			return
		}

		ctx.Set(types.ContextUserKey, principal)
		ctx.Next()
	}
}

func (a *Authenticator) abortUnauthenticated(ctx *gin.Context, err error, asJSON bool) {
	if !errors.Is(err, e.ErrUnauthenticated) {
		a.logger.Error("failed to authenticate request", zap.Error(err))
		ctx.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": types.MessageServerError})
		return
	}

	if asJSON {
		ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": types.MessageUnauthenticated})
		return
	}

	ctx.Redirect(http.StatusFound, types.LoginPath)
	ctx.Abort()
}

// RequireAdmin must run after RequireToken or RequireSession.
func RequireAdmin() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		err := auth.RequireAdmin(utils.CurrentPrincipal(ctx))

		if errors.Is(err, e.ErrUnauthenticated) {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": types.MessageUnauthenticated})
			return
		}

		if err != nil {
			if utils.ExpectsJSON(ctx) {
				ctx.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": types.MessageForbiddenJSON})
				return
			}

			ctx.String(http.StatusForbidden, types.MessageForbiddenPage)
			ctx.Abort()
			return
		}

		ctx.Next()
	}
}
