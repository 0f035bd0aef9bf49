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

var _ repository.LoanRepository = (*LoanRepo)(nil)

// LoanRepo implementación de LoanRepository sobre PostgreSQL.
// InterestRate viaja como NUMERIC gracias al codec de shopspring/decimal.
type LoanRepo struct {
	q Querier
}

// NewLoanRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLoanRepository(q Querier) *LoanRepo {
	return &LoanRepo{q: q}
}

const loanColumns = `id, actor_id, title, description, principal_sats, interest_rate, term_months, collateral_asset_id, status, created_at, updated_at`

// Create persiste una nueva solicitud de préstamo.
func (r *LoanRepo) Create(l *entity.Loan) error {
	query := `
		INSERT INTO loans (` + loanColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.ActorID, l.Title, l.Description, l.PrincipalSats, l.InterestRate,
		l.TermMonths, l.CollateralAssetID, l.Status, l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert loan: %w", err)
	}
	return nil
}

// GetByID obtiene un préstamo por ID.
func (r *LoanRepo) GetByID(id string) (*entity.Loan, error) {
	query := `SELECT ` + loanColumns + ` FROM loans WHERE id = $1`
	var l entity.Loan
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&l.ID, &l.ActorID, &l.Title, &l.Description, &l.PrincipalSats, &l.InterestRate,
		&l.TermMonths, &l.CollateralAssetID, &l.Status, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get loan: %w", err)
	}
	return &l, nil
}

// Update actualiza un préstamo existente.
func (r *LoanRepo) Update(l *entity.Loan) error {
	query := `
		UPDATE loans SET title = $2, description = $3, principal_sats = $4, interest_rate = $5,
			term_months = $6, collateral_asset_id = $7, status = $8, updated_at = $9
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		l.ID, l.Title, l.Description, l.PrincipalSats, l.InterestRate,
		l.TermMonths, l.CollateralAssetID, l.Status, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update loan: %w", err)
	}
	return nil
}

// ListByActor lista los préstamos de un actor con paginación y total.
func (r *LoanRepo) ListByActor(actorID string, limit, offset int) ([]*entity.Loan, int, error) {
	return r.list("actor_id = $1 AND status <> 'deleted'", []any{actorID}, limit, offset)
}

// ListPublic lista préstamos activos.
func (r *LoanRepo) ListPublic(limit, offset int) ([]*entity.Loan, int, error) {
	return r.list("status = 'active'", nil, limit, offset)
}

func (r *LoanRepo) list(where string, args []any, limit, offset int) ([]*entity.Loan, int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM loans WHERE `+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count loans: %w", err)
	}

	n := len(args)
	query := fmt.Sprintf(`SELECT %s FROM loans WHERE %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		loanColumns, where, n+1, n+2)
	rows, err := r.q.Query(context.Background(), query, append(args, limit, offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list loans: %w", err)
	}
	defer rows.Close()

	var list []*entity.Loan
	for rows.Next() {
		var l entity.Loan
		if err := rows.Scan(&l.ID, &l.ActorID, &l.Title, &l.Description, &l.PrincipalSats,
			&l.InterestRate, &l.TermMonths, &l.CollateralAssetID, &l.Status, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan loan: %w", err)
		}
		list = append(list, &l)
	}
	return list, total, rows.Err()
}

// Delete marca el préstamo como eliminado.
func (r *LoanRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE loans SET status = 'deleted', updated_at = now() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete loan: %w", err)
	}
	return nil
}
