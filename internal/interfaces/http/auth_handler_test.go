package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Tienda-api/internal/interfaces/http"
)

// memUserRepo repositorio de usuarios en memoria para los tests del handler.
type memUserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entity.User)}
}

func (r *memUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *memUserRepo) GetByEmail(email string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *memUserRepo) List(limit, offset int) ([]*entity.User, error) { return nil, nil }
func (r *memUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

// buildAuthApp levanta la app con el router real y un repo en memoria.
func buildAuthApp() *fiber.App {
	authUC := auth.NewAuthUseCase(newMemUserRepo(), auth.JWTConfig{
		Secret:     testJWTSecret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		Issuer:     testIssuer,
	})
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		JWTSecret:  testJWTSecret,
		RefreshTTL: 30 * 24 * time.Hour,
	})
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// refreshCookie extrae la cookie refresh_token de la respuesta, si existe.
func refreshCookie(resp *http.Response) *http.Cookie {
	for _, ck := range resp.Cookies() {
		if ck.Name == "refresh_token" {
			return ck
		}
	}
	return nil
}

func TestAuthHandler_Register_EmiteCookieHTTPOnly(t *testing.T) {
	app := buildAuthApp()
	resp := postJSON(t, app, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secreta123"}`)
	defer resp.Body.Close()

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.NotEmpty(t, out.AccessToken, "el access token va en el cuerpo")
	assert.Equal(t, "ana@example.com", out.User.Email)
	assert.Equal(t, "user", out.User.Role, "los registros públicos siempre son rol user")

	ck := refreshCookie(resp)
	require.NotNil(t, ck, "el refresh token debe viajar en cookie")
	assert.True(t, ck.HttpOnly, "la cookie de refresh debe ser httpOnly")
	assert.NotEqual(t, out.AccessToken, ck.Value, "access y refresh son tokens distintos")
}

func TestAuthHandler_Login_YRefreshConCookie(t *testing.T) {
	app := buildAuthApp()
	resp := postJSON(t, app, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secreta123"}`)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login",
		`{"email":"ana@example.com","password":"secreta123"}`)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	ck := refreshCookie(resp)
	require.NotNil(t, ck)

	// Renovar usando la cookie.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: ck.Value})
	refreshResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer refreshResp.Body.Close()

	require.Equal(t, http.StatusOK, refreshResp.StatusCode)
	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(refreshResp.Body).Decode(&out))
	assert.NotEmpty(t, out.AccessToken)
}

func TestAuthHandler_Login_CredencialesMalas(t *testing.T) {
	app := buildAuthApp()
	resp := postJSON(t, app, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secreta123"}`)
	resp.Body.Close()

	resp = postJSON(t, app, "/api/auth/login",
		`{"email":"ana@example.com","password":"incorrecta"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Nil(t, refreshCookie(resp), "sin login no debe emitirse cookie de refresh")
}

func TestAuthHandler_Refresh_SinCookie(t *testing.T) {
	app := buildAuthApp()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuthHandler_Refresh_AccessTokenNoSirve(t *testing.T) {
	app := buildAuthApp()
	resp := postJSON(t, app, "/api/auth/register",
		`{"name":"Ana","email":"ana@example.com","password":"secreta123"}`)
	var out dto.AuthResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	resp.Body.Close()

	// Meter el access token en la cookie de refresh: debe rechazarse por tipo.
	req := httptest.NewRequest(http.MethodPost, "/api/auth/refresh", nil)
	req.AddCookie(&http.Cookie{Name: "refresh_token", Value: out.AccessToken})
	refreshResp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer refreshResp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)
}

func TestAuthHandler_Logout_LimpiaCookie(t *testing.T) {
	app := buildAuthApp()
	resp := postJSON(t, app, "/api/auth/logout", "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	ck := refreshCookie(resp)
	require.NotNil(t, ck, "logout debe sobreescribir la cookie")
	assert.Empty(t, ck.Value)
}
