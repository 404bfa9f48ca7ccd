package auth_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/Tienda-api/pkg/jwt"
)

// fakeUserRepo implementación en memoria del puerto UserRepository para tests.
type fakeUserRepo struct {
	mu    sync.RWMutex
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (r *fakeUserRepo) Create(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepo) GetByEmail(email string) (*entity.User, error) {
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

func (r *fakeUserRepo) Update(u *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *u
	r.users[u.ID] = &cp
	return nil
}

func (r *fakeUserRepo) List(limit, offset int) ([]*entity.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*entity.User
	for _, u := range r.users {
		cp := *u
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeUserRepo) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

const testSecret = "secreto-de-test"

func newUC(repo *fakeUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{
		Secret:     testSecret,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 30 * 24 * time.Hour,
		Issuer:     "tienda-api-test",
	})
}

// Registro feliz: usuario persistido con hash (no el plano) y par de tokens emitido.
func TestRegister_EmiteTokensYNoGuardaPlano(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)

	user, pair, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)
	require.NotNil(t, pair)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, entity.RoleUser, user.Role)

	stored, _ := repo.GetByEmail("ana@tienda.dev")
	require.NotNil(t, stored)
	assert.NotEqual(t, "supersegura", stored.PasswordHash)
	assert.NotEmpty(t, stored.PasswordHash)

	claims, err := pkgjwt.ParseType(testSecret, pair.AccessToken, pkgjwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, stored.ID, claims.UserID)
}

// Email duplicado → ErrEmailAlreadyExists.
func TestRegister_EmailDuplicado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)

	_, _, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	_, _, err = uc.Register(dto.RegisterRequest{Name: "Otra", Email: "ana@tienda.dev", Password: "tambiensegura"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

// La validación reporta todos los campos violados de una vez.
func TestRegister_ValidacionListaTodosLosCampos(t *testing.T) {
	uc := newUC(newFakeUserRepo())

	_, _, err := uc.Register(dto.RegisterRequest{Name: "", Email: "sin-arroba", Password: "corta"})
	require.ErrorIs(t, err, domain.ErrInvalidInput)

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ElementsMatch(t, []string{"name", "email", "password"}, verr.Fields)
}

// Login: email desconocido y password incorrecto devuelven el mismo error.
func TestLogin_CredencialesInvalidasUniforme(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)
	_, _, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	_, _, errEmail := uc.Login(dto.LoginRequest{Email: "nadie@tienda.dev", Password: "supersegura"})
	_, _, errPass := uc.Login(dto.LoginRequest{Email: "ana@tienda.dev", Password: "incorrecta"})

	assert.ErrorIs(t, errEmail, domain.ErrInvalidCredentials)
	assert.ErrorIs(t, errPass, domain.ErrInvalidCredentials)
	assert.Equal(t, errEmail.Error(), errPass.Error(), "los mensajes no deben distinguir los casos")
}

// Login correcto emite tokens válidos.
func TestLogin_Exitoso(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)
	_, _, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	user, pair, err := uc.Login(dto.LoginRequest{Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.dev", user.Email)

	_, err = pkgjwt.ParseType(testSecret, pair.RefreshToken, pkgjwt.TypeRefresh)
	assert.NoError(t, err)
}

// Refresh con token válido emite un nuevo access token.
func TestRefresh_EmiteNuevoAccess(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)
	_, pair, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	user, access, err := uc.Refresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, access)

	claims, err := pkgjwt.ParseType(testSecret, access, pkgjwt.TypeAccess)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
}

// Refresh firmado con otro secreto → rechazado sin emitir access.
func TestRefresh_OtroSecretoRechazado(t *testing.T) {
	uc := newUC(newFakeUserRepo())

	forged, err := pkgjwt.Generate("otro-secreto", "algun-id", "user", "atacante", pkgjwt.TypeRefresh, time.Hour)
	require.NoError(t, err)

	_, access, err := uc.Refresh(forged)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.Empty(t, access)
}

// Refresh expirado → ErrSessionExpired.
func TestRefresh_Expirado(t *testing.T) {
	uc := newUC(newFakeUserRepo())

	expired, err := pkgjwt.Generate(testSecret, "algun-id", "user", "tienda-api-test", pkgjwt.TypeRefresh, -time.Minute)
	require.NoError(t, err)

	_, _, err = uc.Refresh(expired)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
}

// Un access token no sirve como refresh.
func TestRefresh_AccessComoRefreshRechazado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)
	_, pair, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	_, _, err = uc.Refresh(pair.AccessToken)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Refresh de una cuenta eliminada → ErrUserNotFound.
func TestRefresh_UsuarioEliminado(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)
	user, pair, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(user.ID))

	_, _, err = uc.Refresh(pair.RefreshToken)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// UpdateProfile recalcula el hash al cambiar el password.
func TestUpdateProfile_CambioPassword(t *testing.T) {
	repo := newFakeUserRepo()
	uc := newUC(repo)
	user, _, err := uc.Register(dto.RegisterRequest{Name: "Ana", Email: "ana@tienda.dev", Password: "supersegura"})
	require.NoError(t, err)

	before, _ := repo.GetByID(user.ID)
	nueva := "otraclave123"
	_, err = uc.UpdateProfile(user.ID, dto.UpdateProfileRequest{Password: &nueva})
	require.NoError(t, err)

	after, _ := repo.GetByID(user.ID)
	assert.NotEqual(t, before.PasswordHash, after.PasswordHash)

	_, _, err = uc.Login(dto.LoginRequest{Email: "ana@tienda.dev", Password: "otraclave123"})
	assert.NoError(t, err)
}
