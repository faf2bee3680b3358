package repository

import (
	"context"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// ProfileRepository define el puerto de persistencia para Profile (DIP).
// Las implementaciones devuelven (nil, nil) cuando no hay fila.
type ProfileRepository interface {
	Create(ctx context.Context, p *entity.Profile) error
	GetByID(ctx context.Context, id string) (*entity.Profile, error)
	GetByEmail(ctx context.Context, email string) (*entity.Profile, error)
	Update(ctx context.Context, p *entity.Profile) error
	List(ctx context.Context) ([]*entity.Profile, error)
	Delete(ctx context.Context, id string) error
}

// PasswordResetRepository puerto para los enlaces de restablecimiento de un
// solo uso. Se guarda el hash del token, nunca el token plano.
type PasswordResetRepository interface {
	Create(ctx context.Context, pr *entity.PasswordReset) error
	GetByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error)
	MarkUsed(ctx context.Context, id string) error
}
