package ports

import "context"

// Invoice factura Lightning emitida por el proveedor.
type Invoice struct {
	Bolt11      string
	PaymentHash string
}

// InvoiceProvider puerto de salida hacia el proveedor de facturas Lightning.
// No hay liquidación en este servicio: solo emisión.
type InvoiceProvider interface {
	CreateInvoice(ctx context.Context, amountSats int64, memo string) (*Invoice, error)
}
