package entity

import "time"

// Direcciones de flujo de una transacción rastreada.
const (
	TxReceived = "received"
	TxSent     = "sent"
)

// TrackedTransaction transacción on-chain asociada a un proyecto, con hash
// de verificación SHA-256 sobre el JSON canónico de sus campos (txid, amount,
// type, timestamp) para detectar manipulación posterior.
type TrackedTransaction struct {
	ID               string
	ProjectID        string
	TxID             string
	AmountSats       int64
	Direction        string // TxReceived | TxSent
	Timestamp        time.Time
	VerificationHash string
	CreatedAt        time.Time
}

// AddressBalance saldo de una dirección según el explorador.
// Confirmed = funded − spent de chain_stats; Unconfirmed idem de mempool_stats.
type AddressBalance struct {
	Address           string
	ConfirmedSats     int64
	UnconfirmedSats   int64
	TotalReceivedSats int64
	TotalSentSats     int64
	UpdatedAt         time.Time
}
