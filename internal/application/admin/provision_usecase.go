// Package admin implementa el panel de administración: aprovisionamiento de
// usuarios (individual y por lote), enlaces de restablecimiento de contraseña
// y el disparo de ingesta de la base de conocimiento.
package admin

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// resetLinkTTL vigencia del enlace de restablecimiento.
const resetLinkTTL = 24 * time.Hour

// ProvisionUseCase aprovisionamiento de usuarios y restablecimiento de contraseñas.
type ProvisionUseCase struct {
	profileRepo repository.ProfileRepository
	resetRepo   repository.PasswordResetRepository
	mailer      Mailer
	baseURL     string // URL pública de la app, para construir enlaces de acción
	log         *logger.Logger
}

// NewProvisionUseCase construye el caso de uso.
func NewProvisionUseCase(profileRepo repository.ProfileRepository, resetRepo repository.PasswordResetRepository, mailer Mailer, baseURL string, log *logger.Logger) *ProvisionUseCase {
	return &ProvisionUseCase{
		profileRepo: profileRepo,
		resetRepo:   resetRepo,
		mailer:      mailer,
		baseURL:     baseURL,
		log:         log.Component("admin"),
	}
}

// CreateUser crea la identidad y el perfil con el rol pedido. Si no llega
// password se genera una aleatoria (el usuario entra vía restablecimiento).
// Con SendWelcome se envía el correo de bienvenida; su fallo es ErrUpstream.
func (uc *ProvisionUseCase) CreateUser(ctx context.Context, in dto.CreateUserRequest) (*dto.ProfileResponse, error) {
	role := entity.Role(in.Role)
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: rol %q desconocido", domain.ErrInvalidInput, in.Role)
	}
	existing, err := uc.profileRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	password := in.Password
	if password == "" {
		password = randomToken(12)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	name := in.DisplayName
	if name == "" {
		name = in.Email
	}
	now := time.Now()
	p := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        in.Email,
		PasswordHash: string(hash),
		DisplayName:  name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.profileRepo.Create(ctx, p); err != nil {
		return nil, err
	}

	if in.SendWelcome {
		body := fmt.Sprintf("<p>Hola %s,</p><p>tu cuenta de FoodFlow fue creada con el rol <b>%s</b>.</p>", name, role)
		if err := uc.mailer.Send(in.Email, "Bienvenido a FoodFlow", body); err != nil {
			// El perfil ya existe; el correo fallido se reporta como fallo upstream.
			uc.log.Error().Err(err).Str("email", in.Email).Msg("correo de bienvenida falló")
			return nil, fmt.Errorf("%w: correo de bienvenida: %v", domain.ErrUpstream, err)
		}
	}

	return &dto.ProfileResponse{
		ID:          p.ID,
		Email:       p.Email,
		DisplayName: p.DisplayName,
		Role:        string(p.Role),
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}, nil
}

// ImportUsers procesa el lote registro por registro: el fallo de uno no aborta
// el lote; se devuelve un resultado por registro en el mismo orden.
func (uc *ProvisionUseCase) ImportUsers(ctx context.Context, in dto.ImportUsersRequest) []dto.ImportUserResult {
	results := make([]dto.ImportUserResult, 0, len(in.Users))
	for _, u := range in.Users {
		res := dto.ImportUserResult{Email: u.Email, Success: true}
		if _, err := uc.CreateUser(ctx, u); err != nil {
			res.Success = false
			res.Error = importErrorMessage(err)
		}
		results = append(results, res)
	}
	return results
}

// importErrorMessage mensajes legibles por registro del lote.
func importErrorMessage(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return "User already exists"
	default:
		return err.Error()
	}
}

// PasswordReset emite un enlace de acción de un solo uso y lo envía por correo.
// Solo se persiste el hash del token; el canje (POST /api/auth/reset) valida
// vencimiento y uso único contra esa fila.
func (uc *ProvisionUseCase) PasswordReset(ctx context.Context, in dto.PasswordResetRequest) (*dto.PasswordResetResponse, error) {
	p, err := uc.profileRepo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrUserNotFound
	}

	token := randomToken(32)
	expiresAt := time.Now().Add(resetLinkTTL)
	if err := uc.resetRepo.Create(ctx, &entity.PasswordReset{
		ID:        uuid.New().String(),
		ProfileID: p.ID,
		TokenHash: entity.HashResetToken(token),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("guardar token de restablecimiento: %w", err)
	}
	link := fmt.Sprintf("%s/auth/reset?token=%s&expires=%d", uc.baseURL, token, expiresAt.Unix())

	body := fmt.Sprintf(
		"<p>Hola %s,</p><p>para restablecer tu contraseña abre <a href=%q>este enlace</a>. Vence en 24 horas.</p>",
		p.DisplayName, link)
	if err := uc.mailer.Send(p.Email, "Restablecer contraseña", body); err != nil {
		uc.log.Error().Err(err).Str("email", p.Email).Msg("correo de restablecimiento falló")
		return nil, fmt.Errorf("%w: envío de correo: %v", domain.ErrUpstream, err)
	}
	return &dto.PasswordResetResponse{Success: true, Link: link}, nil
}

// randomToken token hex criptográficamente aleatorio de n bytes.
func randomToken(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		// rand.Read no falla en la práctica; si lo hace, uuid como respaldo.
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}
