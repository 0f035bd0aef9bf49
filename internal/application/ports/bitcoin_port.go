package ports

import (
	"context"
	"time"
)

// ChainTx transacción de una dirección según el explorador, ya reducida al
// efecto neto sobre la dirección consultada.
type ChainTx struct {
	TxID      string
	AmountSats int64  // neto sobre la dirección: positivo recibe, negativo envía
	Confirmed bool
	Timestamp time.Time
}

// ChainBalance saldo de una dirección según el explorador.
type ChainBalance struct {
	ConfirmedSats     int64
	UnconfirmedSats   int64
	TotalReceivedSats int64
	TotalSentSats     int64
}

// ChainExplorer puerto de salida hacia el explorador de blockchain
// (mempool.space). Solo lectura; el formato es el documentado públicamente.
type ChainExplorer interface {
	AddressBalance(ctx context.Context, address string) (*ChainBalance, error)
	AddressTransactions(ctx context.Context, address string) ([]ChainTx, error)
}

// PriceSource puerto de salida hacia la fuente de precio spot de BTC.
type PriceSource interface {
	BTCPriceUSD(ctx context.Context) (float64, error)
}
