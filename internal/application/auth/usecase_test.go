package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/foodflow-api/internal/application/auth"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfileRepo struct {
	byID map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byID: map[string]*entity.Profile{}}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	return f.byID[id], nil
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	for _, p := range f.byID {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProfileRepo) List(_ context.Context) ([]*entity.Profile, error) { return nil, nil }
func (f *fakeProfileRepo) Delete(_ context.Context, id string) error {
	delete(f.byID, id)
	return nil
}

type fakeResetRepo struct {
	byHash map[string]*entity.PasswordReset
}

func newFakeResetRepo() *fakeResetRepo {
	return &fakeResetRepo{byHash: map[string]*entity.PasswordReset{}}
}

func (f *fakeResetRepo) Create(_ context.Context, pr *entity.PasswordReset) error {
	f.byHash[pr.TokenHash] = pr
	return nil
}

func (f *fakeResetRepo) GetByTokenHash(_ context.Context, hash string) (*entity.PasswordReset, error) {
	return f.byHash[hash], nil
}

func (f *fakeResetRepo) MarkUsed(_ context.Context, id string) error {
	for _, pr := range f.byHash {
		if pr.ID == id {
			now := time.Now()
			pr.UsedAt = &now
		}
	}
	return nil
}

type fixture struct {
	uc       *auth.AuthUseCase
	profiles *fakeProfileRepo
	resets   *fakeResetRepo
}

func newFixture() *fixture {
	profiles := newFakeProfileRepo()
	resets := newFakeResetRepo()
	uc := auth.NewAuthUseCase(profiles, resets, auth.JWTConfig{
		Secret: "secreto-de-prueba", ExpMinutes: 5, Issuer: "foodflow-test",
	})
	return &fixture{uc: uc, profiles: profiles, resets: resets}
}

func (fx *fixture) seedProfile(t *testing.T, email, password string) *entity.Profile {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	p := &entity.Profile{
		ID: "user-" + email, Email: email, PasswordHash: string(hash),
		DisplayName: email, Role: entity.RoleViewer, Status: "active",
	}
	require.NoError(t, fx.profiles.Create(context.Background(), p))
	return p
}

func (fx *fixture) seedReset(profileID, token string, expiresAt time.Time) *entity.PasswordReset {
	pr := &entity.PasswordReset{
		ID:        "reset-" + profileID,
		ProfileID: profileID,
		TokenHash: entity.HashResetToken(token),
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	}
	_ = fx.resets.Create(context.Background(), pr)
	return pr
}

// ──────────────────────────────────────────────────────────────────────────────
// ResetPassword
// ──────────────────────────────────────────────────────────────────────────────

func TestResetPassword_CanjeCambiaLaContrasena(t *testing.T) {
	fx := newFixture()
	fx.seedProfile(t, "ana@x.com", "clave-vieja-123")
	fx.seedReset("user-ana@x.com", "token-plano", time.Now().Add(time.Hour))

	err := fx.uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token: "token-plano", NewPassword: "clave-nueva-456",
	})
	require.NoError(t, err)

	// La contraseña nueva sirve para login; la vieja ya no.
	_, err = fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "clave-nueva-456"})
	assert.NoError(t, err)
	_, err = fx.uc.Login(context.Background(), dto.LoginRequest{Email: "ana@x.com", Password: "clave-vieja-123"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// El enlace es de un solo uso: el segundo canje del mismo token falla.
func TestResetPassword_SegundoCanjeFalla(t *testing.T) {
	fx := newFixture()
	fx.seedProfile(t, "ana@x.com", "clave-vieja-123")
	fx.seedReset("user-ana@x.com", "token-plano", time.Now().Add(time.Hour))

	err := fx.uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token: "token-plano", NewPassword: "clave-nueva-456",
	})
	require.NoError(t, err)

	err = fx.uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token: "token-plano", NewPassword: "otra-clave-789",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword_TokenVencido(t *testing.T) {
	fx := newFixture()
	fx.seedProfile(t, "ana@x.com", "clave-vieja-123")
	fx.seedReset("user-ana@x.com", "token-plano", time.Now().Add(-time.Minute))

	err := fx.uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token: "token-plano", NewPassword: "clave-nueva-456",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestResetPassword_TokenDesconocido(t *testing.T) {
	fx := newFixture()

	err := fx.uc.ResetPassword(context.Background(), dto.ResetPasswordRequest{
		Token: "inventado", NewPassword: "clave-nueva-456",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
