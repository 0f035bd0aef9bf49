package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// ProjectRepository puerto de persistencia para Project.
type ProjectRepository interface {
	Create(p *entity.Project) error
	GetByID(id string) (*entity.Project, error)
	GetBySlug(slug string) (*entity.Project, error)
	Update(p *entity.Project) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Project, int, error)
	ListPublic(limit, offset int) ([]*entity.Project, int, error)
	Delete(id string) error
}
