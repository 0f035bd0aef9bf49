package entity

import "time"

// Order pedido generado por una iniciación de pago: qué entidad, cuántas
// unidades y a qué precio. Para donaciones Quantity=1 y UnitPriceSats=monto.
type Order struct {
	ID            string
	PayerActorID  string
	EntityType    string
	EntityID      string
	Quantity      int
	UnitPriceSats int64
	TotalSats     int64
	CreatedAt     time.Time
}

// Estados de un pago. No hay liquidación en este servicio: un pago nace
// pending con su factura Lightning adjunta y puede expirar.
const (
	PaymentPending = "pending"
	PaymentExpired = "expired"
)

// Payment intento de pago Lightning asociado a un Order.
type Payment struct {
	ID           string
	OrderID      string
	PayerActorID string
	AmountSats   int64
	Invoice      string // BOLT11 del proveedor (o fabricada por el mock)
	PaymentHash  string
	Status       string
	CreatedAt    time.Time
}

// Tipos de asiento del libro de transacciones.
const (
	TxKindInvoiceCreated = "invoice_created"
)

// Transaction asiento del libro: registra el evento contable del lado del
// actor beneficiario (dueño de la entidad pagada).
type Transaction struct {
	ID         string
	ActorID    string // beneficiario
	PaymentID  string
	AmountSats int64
	Kind       string
	CreatedAt  time.Time
}
