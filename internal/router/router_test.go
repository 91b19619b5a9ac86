package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/monocle-dev/catalog/db/dbtest"
	"github.com/monocle-dev/catalog/internal/auth"
	"github.com/monocle-dev/catalog/internal/handlers"
	"github.com/monocle-dev/catalog/internal/models"
	"github.com/monocle-dev/catalog/internal/session"
	"github.com/monocle-dev/catalog/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const testPassword = "password123"

var epoch = time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

type testApp struct {
	engine *gin.Engine
	conn   *gorm.DB
	issuer *auth.Issuer
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	conn := dbtest.Open(t)

	issuer, err := auth.NewIssuer("test-secret", time.Hour)
	require.NoError(t, err)

	engine := NewRouter(Deps{
		DB:             conn,
		Issuer:         issuer,
		Revoker:        auth.NewDBRevoker(conn),
		Sessions:       session.NewMemoryStore(time.Hour),
		Cookie:         handlers.CookieConfig{MaxAge: time.Hour},
		AllowedOrigins: []string{"http://localhost:3000"},
		Location:       time.UTC,
		Logger:         zap.NewNop(),
	})

	return &testApp{engine: engine, conn: conn, issuer: issuer}
}

// login creates a user with role and returns a token for it.
func (a *testApp) login(t *testing.T, role string) string {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)

	var count int64
	require.NoError(t, a.conn.Model(&models.User{}).Count(&count).Error)

	user := &models.User{
		Name:         role,
		Email:        fmt.Sprintf("%s%d@example.com", role, count),
		PasswordHash: string(hash),
		Role:         role,
	}
	require.NoError(t, a.conn.Create(user).Error)

	token, _, err := a.issuer.GenerateJWT(user)
	require.NoError(t, err)
	return token
}

func (a *testApp) seedCategory(t *testing.T, name string, active bool) *models.Category {
	t.Helper()

	c := &models.Category{Name: name, IsActive: active, CreatedAt: epoch}
	require.NoError(t, a.conn.Create(c).Error)
	return c
}

func (a *testApp) seedProduct(t *testing.T, name string, active bool, categoryID *uint, createdAt time.Time) *models.Product {
	t.Helper()

	p := &models.Product{
		Name:       name,
		Price:      decimal.NewNullDecimal(decimal.RequireFromString("9.99")),
		IsActive:   active,
		CategoryID: categoryID,
		CreatedAt:  createdAt,
	}
	require.NoError(t, a.conn.Create(p).Error)
	return p
}

func jsonBody(t *testing.T, body interface{}) io.Reader {
	t.Helper()

	if body == nil {
		return nil
	}
	if s, ok := body.(string); ok {
		return strings.NewReader(s)
	}

	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return bytes.NewReader(raw)
}

// api sends a JSON API request with an optional bearer token.
func (a *testApp) api(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, jsonBody(t, body))
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

// web sends a browser request authenticated by the session cookie.
func (a *testApp) web(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, jsonBody(t, body))
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&http.Cookie{Name: types.TokenCookie, Value: token})
	}

	rec := httptest.NewRecorder()
	a.engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	out := map[string]interface{}{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestAPIAccessMatrix(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, models.RoleAdmin)
	user := app.login(t, models.RoleUser)
	product := app.seedProduct(t, "Existing", true, nil, epoch)
	item := fmt.Sprintf("/api/products/%d", product.ID)

	testCases := []struct {
		name   string
		method string
		path   string
		body   interface{}
		token  string
		want   int
	}{
		{"anonymous list", http.MethodGet, "/api/products", nil, "", http.StatusUnauthorized},
		{"user list", http.MethodGet, "/api/products", nil, user, http.StatusOK},
		{"admin list", http.MethodGet, "/api/products", nil, admin, http.StatusOK},
		{"anonymous show", http.MethodGet, item, nil, "", http.StatusUnauthorized},
		{"user show", http.MethodGet, item, nil, user, http.StatusOK},
		{"anonymous create", http.MethodPost, "/api/products", map[string]interface{}{}, "", http.StatusUnauthorized},
		{"user create with invalid body", http.MethodPost, "/api/products", map[string]interface{}{"price": -5}, user, http.StatusForbidden},
		{"admin create", http.MethodPost, "/api/products", map[string]interface{}{"name": "New", "price": 1}, admin, http.StatusCreated},
		{"anonymous update", http.MethodPut, item, map[string]interface{}{"name": "X"}, "", http.StatusUnauthorized},
		{"user update", http.MethodPut, item, map[string]interface{}{"name": "X"}, user, http.StatusForbidden},
		{"admin update", http.MethodPut, item, map[string]interface{}{"name": "Renamed"}, admin, http.StatusOK},
		{"anonymous delete", http.MethodDelete, item, nil, "", http.StatusUnauthorized},
		{"user delete", http.MethodDelete, item, nil, user, http.StatusForbidden},
		{"admin delete", http.MethodDelete, item, nil, admin, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := app.api(t, tc.method, tc.path, tc.body, tc.token)
			assert.Equal(t, tc.want, rec.Code, rec.Body.String())
		})
	}
}

func TestForbiddenBodies(t *testing.T) {
	app := newTestApp(t)
	user := app.login(t, models.RoleUser)

	rec := app.api(t, http.MethodPost, "/api/products", map[string]interface{}{"name": ""}, user)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Forbidden. Admin access required.", decode(t, rec)["message"])

	rec = app.web(t, http.MethodGet, "/categories", nil, user)
	require.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Acceso denegado. Se requiere rol de administrador.", rec.Body.String())
}

func TestWebAccessMatrix(t *testing.T) {
	app := newTestApp(t)
	admin := app.login(t, models.RoleAdmin)
	user := app.login(t, models.RoleUser)

	testCases := []struct {
		method string
		path   string
		body   interface{}
		user   int
		admin  int
	}{
		{http.MethodGet, "/dashboard", nil, http.StatusOK, http.StatusOK},
		{http.MethodGet, "/products", nil, http.StatusOK, http.StatusOK},
		{http.MethodPost, "/products", map[string]interface{}{"action": "create"}, http.StatusOK, http.StatusOK},
		{http.MethodGet, "/categories", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodPost, "/categories", map[string]interface{}{"action": "create"}, http.StatusForbidden, http.StatusOK},
		{http.MethodGet, "/export/products/csv", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodGet, "/export/products/excel", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodGet, "/export/categories/csv", nil, http.StatusForbidden, http.StatusOK},
		{http.MethodGet, "/export/categories/excel", nil, http.StatusForbidden, http.StatusOK},
	}

	for _, tc := range testCases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := app.web(t, tc.method, tc.path, tc.body, "")
			assert.Equal(t, http.StatusFound, rec.Code, "anonymous visitors are sent to log in")
			assert.Equal(t, "/login", rec.Header().Get("Location"))

			rec = app.web(t, tc.method, tc.path, tc.body, user)
			assert.Equal(t, tc.user, rec.Code, rec.Body.String())

			rec = app.web(t, tc.method, tc.path, tc.body, admin)
			assert.Equal(t, tc.admin, rec.Code, rec.Body.String())
		})
	}
}

func TestRoleIsReadFromStore(t *testing.T) {
	app := newTestApp(t)
	token := app.login(t, models.RoleAdmin)

	require.NoError(t, app.conn.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Update("role", models.RoleUser).Error)

	rec := app.api(t, http.MethodPost, "/api/products", map[string]interface{}{"name": "X", "price": 1}, token)
	assert.Equal(t, http.StatusForbidden, rec.Code, "a demoted admin loses access with the same token")
}

type fixedJobs map[string]interface{}

func (j fixedJobs) Status() map[string]interface{} {
	return j
}

func TestHealth(t *testing.T) {
	app := newTestApp(t)

	rec := app.api(t, http.MethodGet, "/api/health", nil, "")

	require.Equal(t, http.StatusOK, rec.Code)
	body := decode(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.NotContains(t, body, "scheduler")
}

func TestHealthReportsJobs(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := NewRouter(Deps{
		DB:      dbtest.Open(t),
		Revoker: auth.NewDBRevoker(dbtest.Open(t)),
		Jobs:    fixedJobs{"jobs": []string{"prune-revoked-tokens"}, "running": true},
		Logger:  zap.NewNop(),
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	scheduler := decode(t, rec)["scheduler"].(map[string]interface{})
	assert.Equal(t, true, scheduler["running"])
	assert.Equal(t, []interface{}{"prune-revoked-tokens"}, scheduler["jobs"])
}

func TestLoginForm(t *testing.T) {
	app := newTestApp(t)
	app.login(t, models.RoleUser)

	form := url.Values{"email": {"user0@example.com"}, "password": {testPassword}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	app.engine.ServeHTTP(rec, req)

	require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
	assert.Equal(t, "/dashboard", rec.Header().Get("Location"))

	var token string
	for _, c := range rec.Result().Cookies() {
		if c.Name == types.TokenCookie {
			token = c.Value
			assert.True(t, c.HttpOnly)
		}
	}
	require.NotEmpty(t, token)

	rec = app.web(t, http.MethodGet, "/dashboard", nil, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = app.web(t, http.MethodPost, "/logout", nil, token)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))

	rec = app.web(t, http.MethodGet, "/dashboard", nil, token)
	assert.Equal(t, http.StatusFound, rec.Code, "a logged out cookie no longer authenticates")
}
