package auth

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
	"github.com/orangecat-xyz/orangecat-api/pkg/jwt"
	"github.com/orangecat-xyz/orangecat-api/pkg/slug"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// TxRunner ejecuta fn con repos de perfil y actor atados a una misma
// transacción.
type TxRunner interface {
	Run(fn func(profiles repository.ProfileRepository, actors repository.ActorRepository) error) error
}

// AuthUseCase casos de uso de autenticación: registro, login y perfil.
// El registro crea el Profile y su Actor (Kind=user) en una transacción.
type AuthUseCase struct {
	profileRepo repository.ProfileRepository
	actorRepo   repository.ActorRepository
	txRunner    TxRunner
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(profileRepo repository.ProfileRepository, actorRepo repository.ActorRepository, txRunner TxRunner, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{profileRepo: profileRepo, actorRepo: actorRepo, txRunner: txRunner, jwtCfg: jwtCfg}
}

// Register crea un perfil: normaliza username a slug, hashea password con
// bcrypt, persiste y crea el actor del usuario.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) (*dto.ProfileResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || !strings.Contains(email, "@") || len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	username := slug.Make(in.Username)
	if username == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.profileRepo.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.profileRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrUsernameTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	displayName := in.DisplayName
	if displayName == "" {
		displayName = in.Username
	}
	profile := &entity.Profile{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Username:     username,
		DisplayName:  displayName,
		Role:         entity.RoleUser,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	pid := profile.ID
	actor := &entity.Actor{
		ID:        uuid.New().String(),
		Kind:      entity.ActorKindUser,
		ProfileID: &pid,
		Name:      displayName,
		CreatedAt: now,
	}
	// Perfil y actor en la misma transacción: un perfil sin actor no puede
	// iniciar sesión.
	err = uc.txRunner.Run(func(profiles repository.ProfileRepository, actors repository.ActorRepository) error {
		if err := profiles.Create(profile); err != nil {
			return err
		}
		return actors.Create(actor)
	})
	if err != nil {
		return nil, err
	}

	return toProfileResponse(profile, actor.ID), nil
}

// Login verifica email/password, genera JWT y retorna token + perfil.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	profile, err := uc.profileRepo.GetByEmail(strings.ToLower(strings.TrimSpace(in.Email)))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if profile.Status != "active" {
		return nil, domain.ErrForbidden
	}
	actor, err := uc.actorRepo.GetByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	if actor == nil {
		return nil, domain.ErrNotFound // perfil sin actor: inconsistencia de datos
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, profile.ID, actor.ID, profile.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:   token,
		Profile: *toProfileResponse(profile, actor.ID),
	}, nil
}

// GetProfile devuelve un perfil por username (página pública de usuario).
func (uc *AuthUseCase) GetProfile(username string) (*dto.ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByUsername(slug.Make(username))
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	actor, err := uc.actorRepo.GetByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	return toProfileResponse(profile, actorID), nil
}

// UpdateProfile actualiza los campos editables del perfil autenticado.
func (uc *AuthUseCase) UpdateProfile(profileID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := uc.profileRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	if in.DisplayName != nil {
		profile.DisplayName = *in.DisplayName
	}
	if in.Bio != nil {
		profile.Bio = *in.Bio
	}
	if in.AvatarURL != nil {
		profile.AvatarURL = *in.AvatarURL
	}
	profile.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	actor, err := uc.actorRepo.GetByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	return toProfileResponse(profile, actorID), nil
}

// SetStatus suspende o reactiva una cuenta. Operación de administración; el
// handler limita la ruta al rol admin.
func (uc *AuthUseCase) SetStatus(profileID, status string) (*dto.ProfileResponse, error) {
	if status != "active" && status != "suspended" {
		return nil, domain.ErrInvalidInput
	}
	profile, err := uc.profileRepo.GetByID(profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, nil
	}
	profile.Status = status
	profile.UpdatedAt = time.Now()
	if err := uc.profileRepo.Update(profile); err != nil {
		return nil, err
	}
	actor, err := uc.actorRepo.GetByProfile(profile.ID)
	if err != nil {
		return nil, err
	}
	actorID := ""
	if actor != nil {
		actorID = actor.ID
	}
	return toProfileResponse(profile, actorID), nil
}

func toProfileResponse(p *entity.Profile, actorID string) *dto.ProfileResponse {
	if p == nil {
		return nil
	}
	return &dto.ProfileResponse{
		ID:          p.ID,
		ActorID:     actorID,
		Email:       p.Email,
		Username:    p.Username,
		DisplayName: p.DisplayName,
		Bio:         p.Bio,
		AvatarURL:   p.AvatarURL,
		Role:        p.Role,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
