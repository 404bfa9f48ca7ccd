package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Tienda-api/internal/application/dto"
	"github.com/jhoicas/Tienda-api/internal/domain"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/internal/domain/repository"
	"github.com/jhoicas/Tienda-api/pkg/jwt"
)

// JWTConfig configuración para emisión de tokens de sesión.
type JWTConfig struct {
	Secret     string
	AccessTTL  time.Duration // ~15 min
	RefreshTTL time.Duration // ~30 días
	Issuer     string
}

// TokenPair par access/refresh emitido al registrar o iniciar sesión.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// AuthUseCase casos de uso de identidad y sesión: registro, login, refresh y perfil.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea una cuenta: hashea el password con bcrypt, persiste y emite el
// par de tokens. Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.UserResponse, *TokenPair, error) {
	var bad []string
	if strings.TrimSpace(in.Name) == "" {
		bad = append(bad, "name")
	}
	if !strings.Contains(in.Email, "@") {
		bad = append(bad, "email")
	}
	if len(in.Password) < 8 {
		bad = append(bad, "password")
	}
	if err := domain.NewValidationError(bad); err != nil {
		return nil, nil, err
	}

	existing, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, nil, err
	}
	if existing != nil {
		return nil, nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: string(hash),
		Name:         in.Name,
		Role:         entity.RoleUser,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, nil, err
	}
	pair, err := uc.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return toUserResponse(user), pair, nil
}

// Login verifica email/password y emite el par de tokens.
// Email desconocido y password incorrecto devuelven el mismo ErrInvalidCredentials,
// sin distinguir los casos (evita enumeración de usuarios).
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.UserResponse, *TokenPair, error) {
	if in.Email == "" || in.Password == "" {
		return nil, nil, domain.NewValidationError([]string{"email", "password"})
	}
	user, err := uc.userRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, nil, domain.ErrInvalidCredentials
	}
	pair, err := uc.issueTokens(user)
	if err != nil {
		return nil, nil, err
	}
	return toUserResponse(user), pair, nil
}

// Refresh valida un refresh token y emite un nuevo access token para el mismo
// usuario. ErrSessionExpired si venció, ErrUnauthorized si la firma no valida
// o no es un refresh, ErrUserNotFound si la cuenta ya no existe.
func (uc *AuthUseCase) Refresh(refreshToken string) (*dto.UserResponse, string, error) {
	claims, err := jwt.ParseType(uc.jwtCfg.Secret, refreshToken, jwt.TypeRefresh)
	if err != nil {
		if errors.Is(err, jwt.ErrExpired) {
			return nil, "", domain.ErrSessionExpired
		}
		return nil, "", domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", domain.ErrUserNotFound
	}
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, jwt.TypeAccess, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, "", err
	}
	return toUserResponse(user), access, nil
}

// GetProfile devuelve los datos de la cuenta autenticada.
func (uc *AuthUseCase) GetProfile(userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// UpdateProfile actualiza nombre/email/password de la cuenta propia.
// Si cambia el password se recalcula el hash; el plano nunca se persiste.
func (uc *AuthUseCase) UpdateProfile(userID string, in dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.NewValidationError([]string{"name"})
		}
		user.Name = *in.Name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		if !strings.Contains(email, "@") {
			return nil, domain.NewValidationError([]string{"email"})
		}
		if email != user.Email {
			other, err := uc.userRepo.GetByEmail(email)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrEmailAlreadyExists
			}
			user.Email = email
		}
	}
	if in.Password != nil {
		if len(*in.Password) < 8 {
			return nil, domain.NewValidationError([]string{"password"})
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	user.UpdatedAt = time.Now()
	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) issueTokens(user *entity.User) (*TokenPair, error) {
	access, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, jwt.TypeAccess, uc.jwtCfg.AccessTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role, uc.jwtCfg.Issuer, jwt.TypeRefresh, uc.jwtCfg.RefreshTTL)
	if err != nil {
		return nil, err
	}
	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
