package utils

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/auth"
	"github.com/monocle-dev/catalog/internal/types"
)

func GetCurrentUser(ctx *gin.Context) (*auth.Principal, error) {
	user, exists := ctx.Get(types.ContextUserKey)

	if !exists {
		return nil, fmt.Errorf("User not authenticated")
	}

	principal, ok := user.(*auth.Principal)

	if !ok || principal == nil {
		return nil, fmt.Errorf("Invalid user type in context")
	}

	return principal, nil
}

// CurrentPrincipal returns the principal or nil for anonymous requests.
func CurrentPrincipal(ctx *gin.Context) *auth.Principal {
	principal, err := GetCurrentUser(ctx)

	if err != nil {
		return nil
	}

	return principal
}

// ExpectsJSON reports whether the client wants a JSON error body rather
// than a page. Bearer token clients always do.
func ExpectsJSON(ctx *gin.Context) bool {
	if strings.EqualFold(ctx.GetHeader("X-Requested-With"), "XMLHttpRequest") {
		return true
	}

	if strings.HasPrefix(ctx.GetHeader("Authorization"), "Bearer ") {
		return true
	}

	accept := ctx.GetHeader("Accept")

	return strings.Contains(accept, "/json") || strings.Contains(accept, "+json")
}
