package admin_test

import (
	"context"
	"errors"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/foodflow-api/internal/application/admin"
	"github.com/tu-usuario/foodflow-api/internal/application/dto"
	"github.com/tu-usuario/foodflow-api/internal/domain"
	"github.com/tu-usuario/foodflow-api/internal/domain/entity"
	"github.com/tu-usuario/foodflow-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfileRepo struct {
	byEmail map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{byEmail: map[string]*entity.Profile{}}
}

func (f *fakeProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	if _, ok := f.byEmail[p.Email]; ok {
		return domain.ErrEmailAlreadyExists
	}
	f.byEmail[p.Email] = p
	return nil
}

func (f *fakeProfileRepo) GetByID(_ context.Context, id string) (*entity.Profile, error) {
	for _, p := range f.byEmail {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileRepo) GetByEmail(_ context.Context, email string) (*entity.Profile, error) {
	return f.byEmail[email], nil
}

func (f *fakeProfileRepo) Update(_ context.Context, p *entity.Profile) error { return nil }
func (f *fakeProfileRepo) Delete(_ context.Context, id string) error         { return nil }
func (f *fakeProfileRepo) List(_ context.Context) ([]*entity.Profile, error) { return nil, nil }

type fakeMailer struct {
	sent []string // destinatarios
	err  error
}

func (f *fakeMailer) Send(to, _, _ string) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, to)
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

func newUseCase(repo *fakeProfileRepo, mailer *fakeMailer) *admin.ProvisionUseCase {
	return newUseCaseWithResets(repo, newFakeResetRepo(), mailer)
}

func newUseCaseWithResets(repo *fakeProfileRepo, resets *fakeResetRepo, mailer *fakeMailer) *admin.ProvisionUseCase {
	log := logger.New(logger.Config{Env: "production", Level: "error"})
	return admin.NewProvisionUseCase(repo, resets, mailer, "https://app.foodflow.local", log)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateUser
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateUser_RolDesconocidoEsInvalido(t *testing.T) {
	uc := newUseCase(newFakeProfileRepo(), &fakeMailer{})
	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "x@x.com", Role: "super_admin",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreateUser_EmailDuplicado(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newUseCase(repo, &fakeMailer{})

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "a@x.com", Role: string(entity.RoleRDDev),
	})
	require.NoError(t, err)

	_, err = uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "a@x.com", Role: string(entity.RoleRDDev),
	})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestCreateUser_CorreoDeBienvenidaFallidoEsUpstream(t *testing.T) {
	repo := newFakeProfileRepo()
	mailer := &fakeMailer{err: errors.New("smtp caído")}
	uc := newUseCase(repo, mailer)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "a@x.com", Role: string(entity.RoleViewer), SendWelcome: true,
	})
	assert.ErrorIs(t, err, domain.ErrUpstream)
	// El perfil quedó creado aunque el correo fallara.
	p, _ := repo.GetByEmail(context.Background(), "a@x.com")
	assert.NotNil(t, p)
}

// ──────────────────────────────────────────────────────────────────────────────
// ImportUsers
// ──────────────────────────────────────────────────────────────────────────────

// El fallo de un registro no aborta el lote; los resultados conservan el orden.
func TestImportUsers_AislamientoPorRegistro(t *testing.T) {
	uc := newUseCase(newFakeProfileRepo(), &fakeMailer{})

	results := uc.ImportUsers(context.Background(), dto.ImportUsersRequest{
		Users: []dto.CreateUserRequest{
			{Email: "a@x.com", Role: string(entity.RoleRDDev)},
			{Email: "a@x.com", Role: string(entity.RoleRDDev)}, // duplicado
			{Email: "b@x.com", Role: string(entity.RoleViewer)},
		},
	})

	require.Len(t, results, 3)
	assert.Equal(t, dto.ImportUserResult{Email: "a@x.com", Success: true}, results[0])
	assert.Equal(t, dto.ImportUserResult{Email: "a@x.com", Success: false, Error: "User already exists"}, results[1])
	assert.Equal(t, dto.ImportUserResult{Email: "b@x.com", Success: true}, results[2])
}

// ──────────────────────────────────────────────────────────────────────────────
// PasswordReset
// ──────────────────────────────────────────────────────────────────────────────

func TestPasswordReset_EnviaEnlaceConVencimiento(t *testing.T) {
	repo := newFakeProfileRepo()
	mailer := &fakeMailer{}
	uc := newUseCase(repo, mailer)

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "ana@x.com", Role: string(entity.RoleRDManager), DisplayName: "Ana",
	})
	require.NoError(t, err)

	out, err := uc.PasswordReset(context.Background(), dto.PasswordResetRequest{Email: "ana@x.com"})
	require.NoError(t, err)
	assert.True(t, out.Success)
	assert.Contains(t, out.Link, "https://app.foodflow.local/auth/reset?token=")
	assert.Equal(t, []string{"ana@x.com"}, mailer.sent)
}

// El enlace emitido debe poder canjearse después: se persiste el hash del
// token (nunca el token plano) con su vencimiento.
func TestPasswordReset_PersisteHashDelToken(t *testing.T) {
	repo := newFakeProfileRepo()
	resets := newFakeResetRepo()
	uc := newUseCaseWithResets(repo, resets, &fakeMailer{})

	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "ana@x.com", Role: string(entity.RoleRDManager),
	})
	require.NoError(t, err)

	out, err := uc.PasswordReset(context.Background(), dto.PasswordResetRequest{Email: "ana@x.com"})
	require.NoError(t, err)

	// Extraer el token plano del enlace y verificar que lo guardado es su hash.
	u, err := url.Parse(out.Link)
	require.NoError(t, err)
	token := u.Query().Get("token")
	require.NotEmpty(t, token)

	pr, err := resets.GetByTokenHash(context.Background(), entity.HashResetToken(token))
	require.NoError(t, err)
	require.NotNil(t, pr, "el hash del token debe quedar persistido")
	assert.NotEqual(t, token, pr.TokenHash, "nunca se guarda el token plano")
	assert.Nil(t, pr.UsedAt)
	assert.True(t, pr.ExpiresAt.After(time.Now()), "el vencimiento queda en la fila, no solo en la URL")

	p, _ := repo.GetByEmail(context.Background(), "ana@x.com")
	assert.Equal(t, p.ID, pr.ProfileID)
}

func TestPasswordReset_UsuarioInexistente(t *testing.T) {
	uc := newUseCase(newFakeProfileRepo(), &fakeMailer{})
	_, err := uc.PasswordReset(context.Background(), dto.PasswordResetRequest{Email: "nadie@x.com"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestPasswordReset_FalloSMTPEsUpstream(t *testing.T) {
	repo := newFakeProfileRepo()
	uc := newUseCase(repo, &fakeMailer{})
	_, err := uc.CreateUser(context.Background(), dto.CreateUserRequest{
		Email: "ana@x.com", Role: string(entity.RoleViewer),
	})
	require.NoError(t, err)

	failing := newUseCase(repo, &fakeMailer{err: errors.New("smtp caído")})
	_, err = failing.PasswordReset(context.Background(), dto.PasswordResetRequest{Email: "ana@x.com"})
	assert.ErrorIs(t, err, domain.ErrUpstream)
}
