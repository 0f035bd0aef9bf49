package dto

import "time"

// InitiatePaymentRequest entrada de iniciación de pago.
// Para entidades con precio unitario (product, service) se usa Quantity y el
// precio lo fija la entidad; para el resto AmountSats es el monto libre.
type InitiatePaymentRequest struct {
	EntityType string `json:"entity_type"`
	EntityID   string `json:"entity_id"`
	Quantity   int    `json:"quantity"`
	AmountSats int64  `json:"amount_sats"`
}

// PaymentResponse salida de un pago con su factura Lightning.
type PaymentResponse struct {
	ID           string    `json:"id"`
	OrderID      string    `json:"order_id"`
	PayerActorID string    `json:"payer_actor_id"`
	AmountSats   int64     `json:"amount_sats"`
	Invoice      string    `json:"invoice"`
	PaymentHash  string    `json:"payment_hash"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID            string    `json:"id"`
	PayerActorID  string    `json:"payer_actor_id"`
	EntityType    string    `json:"entity_type"`
	EntityID      string    `json:"entity_id"`
	Quantity      int       `json:"quantity"`
	UnitPriceSats int64     `json:"unit_price_sats"`
	TotalSats     int64     `json:"total_sats"`
	CreatedAt     time.Time `json:"created_at"`
}

// InitiatePaymentResponse pedido + pago creados en la iniciación.
type InitiatePaymentResponse struct {
	Order   OrderResponse   `json:"order"`
	Payment PaymentResponse `json:"payment"`
}

// TransactionResponse asiento del libro del actor beneficiario.
type TransactionResponse struct {
	ID         string    `json:"id"`
	ActorID    string    `json:"actor_id"`
	PaymentID  string    `json:"payment_id"`
	AmountSats int64     `json:"amount_sats"`
	Kind       string    `json:"kind"`
	CreatedAt  time.Time `json:"created_at"`
}
