package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/internal/auth"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/types"
	"github.com/monocle-dev/catalog/internal/utils"
	"github.com/monocle-dev/catalog/internal/validation"
	"github.com/monocle-dev/catalog/pkg/e"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const invalidCredentials = "These credentials do not match our records."

type CreateUserRequest struct {
	Name                 string `json:"name" form:"name" binding:"required,max=255"`
	Email                string `json:"email" form:"email" binding:"required,email,max=255"`
	Password             string `json:"password" form:"password" binding:"required,min=8"`
	PasswordConfirmation string `json:"password_confirmation" form:"password_confirmation" binding:"eqfield=Password"`
}

type LoginUserRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type UserStore interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailTaken(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, user *models.User) error
}

type CookieConfig struct {
	Domain string
	Secure bool
	MaxAge time.Duration
}

type AuthHandler struct {
	users   UserStore
	issuer  *auth.Issuer
	revoker auth.Revoker
	cookie  CookieConfig
	logger  *zap.Logger
}

func NewAuthHandler(users UserStore, issuer *auth.Issuer, revoker auth.Revoker, cookie CookieConfig, log *zap.Logger) *AuthHandler {
	return &AuthHandler{
		users:   users,
		issuer:  issuer,
		revoker: revoker,
		cookie:  cookie,
		logger:  log,
	}
}

// bind reports binding failures itself and returns false when the
// request must stop.
func (h *AuthHandler) bind(ctx *gin.Context, dest interface{}) bool {
	err := ctx.ShouldBind(dest)

	if err == nil {
		return true
	}

	if errs, ok := validation.FromBinding(err); ok {
		respondValidation(ctx, errs)
		return false
	}

	h.logger.Debug("failed to bind request", zap.Error(err))
	respondBadRequest(ctx)

	return false
}

func (h *AuthHandler) Register(ctx *gin.Context) {
	var req CreateUserRequest

	if !h.bind(ctx, &req) {
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	taken, err := h.users.EmailTaken(ctx.Request.Context(), req.Email)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	if taken {
		respondValidation(ctx, validation.Errors{"email": {"The email has already been taken."}})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	newUser := &models.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Role:         models.RoleUser,
	}

	if err := h.users.Create(ctx.Request.Context(), newUser); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	token, _, err := h.issuer.GenerateJWT(newUser)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.logger.Info("user registered", zap.Uint("user_id", newUser.ID))

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User registered successfully",
		"user":    userResponse(newUser),
		"token":   token,
	})
}

// checkCredentials returns nil and writes a 422 when the credentials are wrong.
func (h *AuthHandler) checkCredentials(ctx *gin.Context, req LoginUserRequest) *models.User {
	user, err := h.users.GetByEmail(ctx.Request.Context(), strings.ToLower(strings.TrimSpace(req.Email)))

	if err != nil && !errors.Is(err, e.ErrNotFound) {
		respondError(ctx, h.logger, err)
		return nil
	}

	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)) != nil {
		respondValidation(ctx, validation.Errors{"email": {invalidCredentials}})
		return nil
	}

	return user
}

func (h *AuthHandler) Login(ctx *gin.Context) {
	var req LoginUserRequest

	if !h.bind(ctx, &req) {
		return
	}

	user := h.checkCredentials(ctx, req)

	if user == nil {
		return
	}

	token, _, err := h.issuer.GenerateJWT(user)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Login successful",
		"user":    userResponse(user),
		"token":   token,
	})
}

func (h *AuthHandler) Me(ctx *gin.Context) {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"message": types.MessageUnauthenticated})
		return
	}

	user, err := h.users.GetByID(ctx.Request.Context(), currentUser.ID)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, userResponse(user))
}

func (h *AuthHandler) revokeCurrent(ctx *gin.Context) error {
	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		return e.ErrUnauthenticated
	}

	return h.revoker.Revoke(ctx.Request.Context(), currentUser.TokenID, currentUser.ExpiresAt)
}

func (h *AuthHandler) Logout(ctx *gin.Context) {
	if err := h.revokeCurrent(ctx); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Logged out successfully"})
}

// LoginPage is the entry point unauthenticated page requests are sent to.
func (h *AuthHandler) LoginPage(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, gin.H{
		"message": "Log in with your email and password.",
		"action":  types.LoginPath,
		"fields":  []string{"email", "password"},
	})
}

// WebLogin sets the session cookie and sends the browser to the dashboard.
func (h *AuthHandler) WebLogin(ctx *gin.Context) {
	var req LoginUserRequest

	if !h.bind(ctx, &req) {
		return
	}

	user := h.checkCredentials(ctx, req)

	if user == nil {
		return
	}

	token, _, err := h.issuer.GenerateJWT(user)

	if err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.setCookie(ctx, token, int(h.cookie.MaxAge.Seconds()))

	ctx.Redirect(http.StatusFound, types.HomePath)
}

func (h *AuthHandler) WebLogout(ctx *gin.Context) {
	if err := h.revokeCurrent(ctx); err != nil {
		respondError(ctx, h.logger, err)
		return
	}

	h.setCookie(ctx, "", -1)

	ctx.Redirect(http.StatusFound, types.LoginPath)
}

func (h *AuthHandler) setCookie(ctx *gin.Context, value string, maxAge int) {
	http.SetCookie(ctx.Writer, &http.Cookie{
		Name:     types.TokenCookie,
		Value:    value,
		Path:     "/",
		Domain:   h.cookie.Domain,
		MaxAge:   maxAge,
		Secure:   h.cookie.Secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
