package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.EntityRefRepository = (*EntityRefRepo)(nil)

// EntityRefRepo resuelve referencias genéricas tipo+id contra la tabla que
// indica el registro de entidades. El nombre de tabla sale del registro
// estático, nunca de entrada del usuario.
type EntityRefRepo struct {
	q Querier
}

// NewEntityRefRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEntityRefRepository(q Querier) *EntityRefRepo {
	return &EntityRefRepo{q: q}
}

// Exists verifica que exista la fila id en la tabla del tipo lógico.
func (r *EntityRefRepo) Exists(entityType, id string) (bool, error) {
	table, ok := entity.EntityTable(entityType)
	if !ok {
		return false, domain.ErrUnknownEntity
	}
	var exists bool
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1 AND status <> 'deleted')`, table)
	if err := r.q.QueryRow(context.Background(), query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check %s: %w", entityType, err)
	}
	return exists, nil
}

// OwnerActor devuelve el actor_id dueño de la entidad referenciada; cadena
// vacía si no existe.
func (r *EntityRefRepo) OwnerActor(entityType, id string) (string, error) {
	table, ok := entity.EntityTable(entityType)
	if !ok {
		return "", domain.ErrUnknownEntity
	}
	var actorID string
	query := fmt.Sprintf(`SELECT actor_id FROM %s WHERE id = $1 AND status <> 'deleted'`, table)
	err := r.q.QueryRow(context.Background(), query, id).Scan(&actorID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("owner of %s: %w", entityType, err)
	}
	return actorID, nil
}
