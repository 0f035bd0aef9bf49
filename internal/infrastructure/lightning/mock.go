package lightning

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
)

// Verificar en tiempo de compilación que MockProvider implementa InvoiceProvider.
var _ ports.InvoiceProvider = (*MockProvider)(nil)

// MockProvider fabrica facturas deterministas sin tocar la red. El hash de
// pago deriva del monto y el memo, así la misma entrada produce la misma
// factura en pruebas.
type MockProvider struct{}

// NewMockProvider crea el proveedor mock.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// CreateInvoice genera una factura ficticia de regtest.
func (m *MockProvider) CreateInvoice(_ context.Context, amountSats int64, memo string) (*ports.Invoice, error) {
	if amountSats <= 0 {
		return nil, fmt.Errorf("monto de factura inválido: %d", amountSats)
	}
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d:%s", amountSats, memo)))
	hash := hex.EncodeToString(sum[:])
	return &ports.Invoice{
		Bolt11:      fmt.Sprintf("lnbcrt%d1mock%s", amountSats, hash[:24]),
		PaymentHash: hash,
	}, nil
}
