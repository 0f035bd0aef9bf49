package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// ProductRepository puerto de persistencia para Product (user_products).
type ProductRepository interface {
	Create(p *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	Update(p *entity.Product) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Product, int, error)
	ListPublic(limit, offset int) ([]*entity.Product, int, error)
	Delete(id string) error
}

// ServiceRepository puerto de persistencia para Service (user_services).
type ServiceRepository interface {
	Create(s *entity.Service) error
	GetByID(id string) (*entity.Service, error)
	Update(s *entity.Service) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Service, int, error)
	ListPublic(limit, offset int) ([]*entity.Service, int, error)
	Delete(id string) error
}

// LoanRepository puerto de persistencia para Loan.
type LoanRepository interface {
	Create(l *entity.Loan) error
	GetByID(id string) (*entity.Loan, error)
	Update(l *entity.Loan) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Loan, int, error)
	ListPublic(limit, offset int) ([]*entity.Loan, int, error)
	Delete(id string) error
}

// AssetRepository puerto de persistencia para Asset.
type AssetRepository interface {
	Create(a *entity.Asset) error
	GetByID(id string) (*entity.Asset, error)
	Update(a *entity.Asset) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Asset, int, error)
	ListPublic(limit, offset int) ([]*entity.Asset, int, error)
	Delete(id string) error
}

// CauseRepository puerto de persistencia para Cause (user_causes).
type CauseRepository interface {
	Create(c *entity.Cause) error
	GetByID(id string) (*entity.Cause, error)
	Update(c *entity.Cause) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Cause, int, error)
	ListPublic(limit, offset int) ([]*entity.Cause, int, error)
	Delete(id string) error
}

// EntityRefRepository verifica referencias genéricas tipo+id contra la tabla
// que indica el registro de entidades, y resuelve su actor dueño.
type EntityRefRepository interface {
	// Exists verifica que exista la fila id en la tabla del tipo lógico.
	Exists(entityType, id string) (bool, error)
	// OwnerActor devuelve el actor_id dueño de la entidad referenciada.
	OwnerActor(entityType, id string) (string, error)
}
