package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// TrackedTxRepository puerto de persistencia para transacciones rastreadas.
type TrackedTxRepository interface {
	Upsert(tx *entity.TrackedTransaction) error
	GetByTxID(projectID, txid string) (*entity.TrackedTransaction, error)
	ListByProject(projectID string, limit, offset int) ([]*entity.TrackedTransaction, int, error)
	// NetReceivedSats suma recibido menos enviado sobre todas las transacciones
	// selladas del proyecto.
	NetReceivedSats(projectID string) (int64, error)
}
