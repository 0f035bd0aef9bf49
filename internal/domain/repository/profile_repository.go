package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// ProfileRepository puerto de persistencia para Profile.
type ProfileRepository interface {
	Create(p *entity.Profile) error
	GetByID(id string) (*entity.Profile, error)
	GetByEmail(email string) (*entity.Profile, error)
	GetByUsername(username string) (*entity.Profile, error)
	Update(p *entity.Profile) error
}

// ActorRepository puerto de persistencia para Actor (indirección de propiedad).
type ActorRepository interface {
	Create(a *entity.Actor) error
	GetByID(id string) (*entity.Actor, error)
	GetByProfile(profileID string) (*entity.Actor, error)
}
