package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
	"github.com/tu-usuario/foodflow-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro, login y canje de
// enlaces de restablecimiento.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	resetRepo   repository.PasswordResetRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profileRepo repository.ProfileRepository, resetRepo repository.PasswordResetRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profileRepo: profileRepo, resetRepo: resetRepo, jwtCfg: jwtCfg}
}

// Register crea un perfil: hashea password con bcrypt y persiste con rol viewer.
// Los roles con permisos los asigna después el panel de administración.
// Devuelve ErrEmailAlreadyExists si el email ya existe.
func (uc *AuthUseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	existing, _ := uc.profileRepo.GetByEmail(ctx, in.Email)
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	name := in.DisplayName
	if name == "" {
		name = in.Email
	}
	p := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  name,
		Role:         entity.RoleViewer,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		return nil, err
	}
	return ToProfileResponse(p), nil
}

// Login verifica email/password, genera JWT con el rol y retorna token + perfil.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	p, err := uc.profileRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(p.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if p.Status != "active" {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, p.ID, string(p.Role), uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  *ToProfileResponse(p),
	}, nil
}

// ResetPassword canjea un enlace de restablecimiento: el token debe existir,
// no haber vencido y no haberse usado antes. Cambia la contraseña y marca el
// enlace como canjeado, de modo que un segundo canje falla.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, in dto.ResetPasswordRequest) error {
	pr, err := uc.resetRepo.GetByTokenHash(ctx, entity.HashResetToken(in.Token))
	if err != nil {
		return err
	}
	if pr == nil || pr.UsedAt != nil || time.Now().After(pr.ExpiresAt) {
		return domain.ErrUnauthorized
	}
	p, err := uc.profileRepo.GetByID(ctx, pr.ProfileID)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrUserNotFound
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	p.PasswordHash = string(hash)
	p.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(ctx, p); err != nil {
		return err
	}
	return uc.resetRepo.MarkUsed(ctx, pr.ID)
}

// ToProfileResponse convierte la entidad a DTO (sin hash de password).
func ToProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
