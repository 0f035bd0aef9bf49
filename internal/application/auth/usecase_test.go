package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
	pkgjwt "github.com/orangecat-xyz/orangecat-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

type fakeProfileRepo struct {
	profiles map[string]*entity.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[string]*entity.Profile)}
}

func (r *fakeProfileRepo) Create(p *entity.Profile) error { r.profiles[p.ID] = p; return nil }
func (r *fakeProfileRepo) GetByID(id string) (*entity.Profile, error) {
	return r.profiles[id], nil
}
func (r *fakeProfileRepo) GetByEmail(email string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.Email == email {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProfileRepo) GetByUsername(username string) (*entity.Profile, error) {
	for _, p := range r.profiles {
		if p.Username == username {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeProfileRepo) Update(p *entity.Profile) error { r.profiles[p.ID] = p; return nil }

type fakeActorRepo struct {
	actors map[string]*entity.Actor
}

func newFakeActorRepo() *fakeActorRepo {
	return &fakeActorRepo{actors: make(map[string]*entity.Actor)}
}

func (r *fakeActorRepo) Create(a *entity.Actor) error             { r.actors[a.ID] = a; return nil }
func (r *fakeActorRepo) GetByID(id string) (*entity.Actor, error) { return r.actors[id], nil }
func (r *fakeActorRepo) GetByProfile(profileID string) (*entity.Actor, error) {
	for _, a := range r.actors {
		if a.ProfileID != nil && *a.ProfileID == profileID {
			return a, nil
		}
	}
	return nil, nil
}

// fakeTxRunner imita la semántica transaccional: si fn falla, los perfiles
// escritos dentro del callback se descartan.
type fakeTxRunner struct {
	profiles *fakeProfileRepo
	actors   repository.ActorRepository
}

func (r *fakeTxRunner) Run(fn func(repository.ProfileRepository, repository.ActorRepository) error) error {
	snapshot := make(map[string]*entity.Profile, len(r.profiles.profiles))
	for k, v := range r.profiles.profiles {
		snapshot[k] = v
	}
	if err := fn(r.profiles, r.actors); err != nil {
		r.profiles.profiles = snapshot
		return err
	}
	return nil
}

type failingActorRepo struct {
	*fakeActorRepo
}

func (failingActorRepo) Create(*entity.Actor) error { return errors.New("insert actor: boom") }

var testJWT = JWTConfig{Secret: "test-secret", ExpMinutes: 60, Issuer: "orangecat-test"}

func newAuthFixture() (*AuthUseCase, *fakeActorRepo) {
	profiles := newFakeProfileRepo()
	actors := newFakeActorRepo()
	runner := &fakeTxRunner{profiles: profiles, actors: actors}
	return NewAuthUseCase(profiles, actors, runner, testJWT), actors
}

func validRegister() dto.RegisterRequest {
	return dto.RegisterRequest{
		Email:    "Alicia@Example.com",
		Password: "secreta123",
		Username: "Alicia Gómez",
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Register
// ──────────────────────────────────────────────────────────────────────────────

// El registro normaliza email y username, y crea el actor del usuario.
func TestRegister_NormalizaYCreaActor(t *testing.T) {
	uc, actors := newAuthFixture()

	out, err := uc.Register(validRegister())
	require.NoError(t, err)

	assert.Equal(t, "alicia@example.com", out.Email)
	assert.Equal(t, "alicia-gomez", out.Username, "el username se normaliza a slug")
	assert.Equal(t, "Alicia Gómez", out.DisplayName, "sin display name se usa el username original")
	assert.Equal(t, entity.RoleUser, out.Role)

	require.NotEmpty(t, out.ActorID)
	actor, _ := actors.GetByID(out.ActorID)
	require.NotNil(t, actor)
	assert.Equal(t, entity.ActorKindUser, actor.Kind)
	require.NotNil(t, actor.ProfileID)
	assert.Equal(t, out.ID, *actor.ProfileID)
}

// Si el insert del actor falla, el perfil tampoco queda persistido.
func TestRegister_FallaActor_NoDejaPerfilHuerfano(t *testing.T) {
	profiles := newFakeProfileRepo()
	actors := failingActorRepo{newFakeActorRepo()}
	uc := NewAuthUseCase(profiles, actors, &fakeTxRunner{profiles: profiles, actors: actors}, testJWT)

	_, err := uc.Register(validRegister())
	require.Error(t, err)
	assert.Empty(t, profiles.profiles, "la transacción debe revertir el perfil")

	_, err = uc.Login(dto.LoginRequest{Email: "alicia@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestRegister_EmailDuplicado_RetornaConflicto(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Username = "otra-persona"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestRegister_UsernameTomado_RetornaConflicto(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Email = "otra@example.com"
	in.Username = "ALICIA gómez" // mismo slug
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)
}

func TestRegister_EntradasInvalidas(t *testing.T) {
	uc, _ := newAuthFixture()

	in := validRegister()
	in.Email = "sin-arroba"
	_, err := uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in = validRegister()
	in.Password = "corta"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password menor a 8 caracteres")

	in = validRegister()
	in.Username = "!!!"
	_, err = uc.Register(in)
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "username sin caracteres utilizables")
}

// ──────────────────────────────────────────────────────────────────────────────
// Login
// ──────────────────────────────────────────────────────────────────────────────

// El token emitido lleva profileID, actorID y role.
func TestLogin_EmiteTokenConClaims(t *testing.T) {
	uc, _ := newAuthFixture()

	registered, err := uc.Register(validRegister())
	require.NoError(t, err)

	out, err := uc.Login(dto.LoginRequest{Email: "alicia@example.com", Password: "secreta123"})
	require.NoError(t, err)
	require.NotEmpty(t, out.Token)

	userID, actorID, role, err := pkgjwt.Parse(testJWT.Secret, out.Token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, userID)
	assert.Equal(t, registered.ActorID, actorID)
	assert.Equal(t, entity.RoleUser, role)
}

// El email del login no distingue mayúsculas.
func TestLogin_EmailCaseInsensitive(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "  ALICIA@example.COM ", Password: "secreta123"})
	assert.NoError(t, err)
}

func TestLogin_PasswordIncorrecta_Retorna401(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Register(validRegister())
	require.NoError(t, err)

	_, err = uc.Login(dto.LoginRequest{Email: "alicia@example.com", Password: "equivocada"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

// Una cuenta suspendida no puede iniciar sesión aunque la password sea correcta.
func TestLogin_CuentaSuspendida_RetornaForbidden(t *testing.T) {
	profiles := newFakeProfileRepo()
	actors := newFakeActorRepo()
	uc := NewAuthUseCase(profiles, actors, &fakeTxRunner{profiles: profiles, actors: actors}, testJWT)

	registered, err := uc.Register(validRegister())
	require.NoError(t, err)
	profiles.profiles[registered.ID].Status = "suspended"

	_, err = uc.Login(dto.LoginRequest{Email: "alicia@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestLogin_UsuarioInexistente_RetornaError(t *testing.T) {
	uc, _ := newAuthFixture()

	_, err := uc.Login(dto.LoginRequest{Email: "nadie@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Perfil
// ──────────────────────────────────────────────────────────────────────────────

func TestGetProfile_PorUsername(t *testing.T) {
	uc, _ := newAuthFixture()

	registered, err := uc.Register(validRegister())
	require.NoError(t, err)

	// La búsqueda también normaliza el username de entrada.
	out, err := uc.GetProfile("Alicia Gómez")
	require.NoError(t, err)
	require.NotNil(t, out)
	assert.Equal(t, registered.ID, out.ID)

	missing, err := uc.GetProfile("nadie")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

// Suspender bloquea el login; reactivar lo restaura.
func TestSetStatus_SuspendeYReactiva(t *testing.T) {
	uc, _ := newAuthFixture()

	registered, err := uc.Register(validRegister())
	require.NoError(t, err)

	out, err := uc.SetStatus(registered.ID, "suspended")
	require.NoError(t, err)
	require.NotNil(t, out)

	_, err = uc.Login(dto.LoginRequest{Email: "alicia@example.com", Password: "secreta123"})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.SetStatus(registered.ID, "active")
	require.NoError(t, err)
	_, err = uc.Login(dto.LoginRequest{Email: "alicia@example.com", Password: "secreta123"})
	assert.NoError(t, err)

	_, err = uc.SetStatus(registered.ID, "volando")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	missing, err := uc.SetStatus("no-existe", "suspended")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUpdateProfile_CamposEditables(t *testing.T) {
	uc, _ := newAuthFixture()

	registered, err := uc.Register(validRegister())
	require.NoError(t, err)

	bio := "Bitcoiner y tejedora"
	out, err := uc.UpdateProfile(registered.ID, dto.UpdateProfileRequest{Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, bio, out.Bio)
	assert.Equal(t, registered.DisplayName, out.DisplayName, "los campos no enviados no cambian")
}
