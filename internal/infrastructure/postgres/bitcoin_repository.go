package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ repository.TrackedTxRepository = (*TrackedTxRepo)(nil)

// TrackedTxRepo implementación de TrackedTxRepository sobre PostgreSQL.
type TrackedTxRepo struct {
	q Querier
}

// NewTrackedTxRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTrackedTxRepository(q Querier) *TrackedTxRepo {
	return &TrackedTxRepo{q: q}
}

// Upsert inserta la transacción o actualiza el par proyecto+txid existente.
// El hash se recalcula fuera; aquí solo se persiste.
func (r *TrackedTxRepo) Upsert(tx *entity.TrackedTransaction) error {
	query := `
		INSERT INTO tracked_transactions (id, project_id, txid, amount_sats, direction, timestamp, verification_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (project_id, txid) DO UPDATE
			SET amount_sats = EXCLUDED.amount_sats,
				direction = EXCLUDED.direction,
				timestamp = EXCLUDED.timestamp,
				verification_hash = EXCLUDED.verification_hash`
	_, err := r.q.Exec(context.Background(), query,
		tx.ID, tx.ProjectID, tx.TxID, tx.AmountSats, tx.Direction, tx.Timestamp,
		tx.VerificationHash, tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert tracked tx: %w", err)
	}
	return nil
}

// GetByTxID obtiene una transacción rastreada por proyecto y txid.
func (r *TrackedTxRepo) GetByTxID(projectID, txid string) (*entity.TrackedTransaction, error) {
	query := `
		SELECT id, project_id, txid, amount_sats, direction, timestamp, verification_hash, created_at
		FROM tracked_transactions WHERE project_id = $1 AND txid = $2`
	var t entity.TrackedTransaction
	err := r.q.QueryRow(context.Background(), query, projectID, txid).Scan(
		&t.ID, &t.ProjectID, &t.TxID, &t.AmountSats, &t.Direction, &t.Timestamp,
		&t.VerificationHash, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tracked tx: %w", err)
	}
	return &t, nil
}

// ListByProject lista las transacciones rastreadas de un proyecto.
func (r *TrackedTxRepo) ListByProject(projectID string, limit, offset int) ([]*entity.TrackedTransaction, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM tracked_transactions WHERE project_id = $1`, projectID).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count tracked txs: %w", err)
	}

	query := `
		SELECT id, project_id, txid, amount_sats, direction, timestamp, verification_hash, created_at
		FROM tracked_transactions WHERE project_id = $1 ORDER BY timestamp DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, projectID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list tracked txs: %w", err)
	}
	defer rows.Close()

	var list []*entity.TrackedTransaction
	for rows.Next() {
		var t entity.TrackedTransaction
		if err := rows.Scan(&t.ID, &t.ProjectID, &t.TxID, &t.AmountSats, &t.Direction,
			&t.Timestamp, &t.VerificationHash, &t.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan tracked tx: %w", err)
		}
		list = append(list, &t)
	}
	return list, total, rows.Err()
}

// NetReceivedSats suma recibido menos enviado del proyecto.
func (r *TrackedTxRepo) NetReceivedSats(projectID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN direction = 'received' THEN amount_sats ELSE -amount_sats END), 0)
		FROM tracked_transactions WHERE project_id = $1`
	var net int64
	if err := r.q.QueryRow(context.Background(), query, projectID).Scan(&net); err != nil {
		return 0, fmt.Errorf("net received sats: %w", err)
	}
	return net, nil
}
