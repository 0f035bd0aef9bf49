package repository

import "github.com/orangecat-xyz/orangecat-api/internal/domain/entity"

// OrderRepository puerto de persistencia para Order.
type OrderRepository interface {
	Create(o *entity.Order) error
	GetByID(id string) (*entity.Order, error)
}

// PaymentRepository puerto de persistencia para Payment.
type PaymentRepository interface {
	Create(p *entity.Payment) error
	GetByID(id string) (*entity.Payment, error)
	AttachInvoice(id, invoice, paymentHash string) error
	ListByPayer(actorID string, limit, offset int) ([]*entity.Payment, int, error)
}

// TransactionRepository puerto de persistencia para el libro de transacciones.
type TransactionRepository interface {
	Create(t *entity.Transaction) error
	ListByActor(actorID string, limit, offset int) ([]*entity.Transaction, int, error)
}
