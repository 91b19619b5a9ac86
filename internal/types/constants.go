package types

const ContextUserKey = "user"

const (
	// TokenCookie carries the JWT of the interactive pages.
	TokenCookie = "token"
	LoginPath   = "/login"
	HomePath    = "/dashboard"
)

const (
	MessageUnauthenticated = "Unauthenticated."
	MessageForbiddenJSON   = "Forbidden. Admin access required."
	MessageForbiddenPage   = "Acceso denegado. Se requiere rol de administrador."
	MessageNotFound        = "Resource not found."
	MessageServerError     = "Server Error"
)
