package payments

import (
	"context"

	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que pedido, pago y asiento del
// libro se escriben juntos o no se escriben.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		txRepo repository.TransactionRepository,
	) error) error
}
