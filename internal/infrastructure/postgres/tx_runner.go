package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/orangecat-xyz/orangecat-api/internal/application/auth"
	"github.com/orangecat-xyz/orangecat-api/internal/application/payments"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

var _ payments.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *TxRunner) Run(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	paymentRepo repository.PaymentRepository,
	txRepo repository.TransactionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	orderRepo := NewOrderRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	txRepo := NewTransactionRepository(tx)

	if err := fn(orderRepo, paymentRepo, txRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

var _ auth.TxRunner = (*SignupTxRunner)(nil)

// SignupTxRunner ejecuta la creación perfil+actor del registro dentro de una
// transacción PostgreSQL.
type SignupTxRunner struct {
	pool *pgxpool.Pool
}

// NewSignupTxRunner construye el runner con el pool.
func NewSignupTxRunner(pool *pgxpool.Pool) *SignupTxRunner {
	return &SignupTxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback.
func (r *SignupTxRunner) Run(fn func(
	profiles repository.ProfileRepository,
	actors repository.ActorRepository,
) error) error {
	ctx := context.Background()
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewProfileRepository(tx), NewActorRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
