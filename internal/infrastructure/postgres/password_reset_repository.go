package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/internal/domain/repository"
)

var _ repository.PasswordResetRepository = (*PasswordResetRepo)(nil)

// PasswordResetRepo adaptador PostgreSQL para los enlaces de restablecimiento.
type PasswordResetRepo struct {
	q Querier
}

// NewPasswordResetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPasswordResetRepository(q Querier) *PasswordResetRepo {
	return &PasswordResetRepo{q: q}
}

// Create persiste el hash del token con su vencimiento.
func (r *PasswordResetRepo) Create(ctx context.Context, pr *entity.PasswordReset) error {
	query := `
		INSERT INTO password_resets (id, profile_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, pr.ID, pr.ProfileID, pr.TokenHash, pr.ExpiresAt, pr.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert password_reset: %w", err)
	}
	return nil
}

// GetByTokenHash busca un enlace por el hash de su token.
func (r *PasswordResetRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*entity.PasswordReset, error) {
	query := `
		SELECT id, profile_id, token_hash, expires_at, used_at, created_at
		FROM password_resets WHERE token_hash = $1`
	var pr entity.PasswordReset
	err := r.q.QueryRow(ctx, query, tokenHash).Scan(
		&pr.ID, &pr.ProfileID, &pr.TokenHash, &pr.ExpiresAt, &pr.UsedAt, &pr.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get password_reset: %w", err)
	}
	return &pr, nil
}

// MarkUsed marca el enlace como canjeado.
func (r *PasswordResetRepo) MarkUsed(ctx context.Context, id string) error {
	_, err := r.q.Exec(ctx, `UPDATE password_resets SET used_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("mark password_reset used: %w", err)
	}
	return nil
}
