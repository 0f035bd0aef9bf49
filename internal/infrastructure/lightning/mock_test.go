package lightning

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// La misma entrada produce la misma factura: el hash deriva de monto y memo.
func TestMockProvider_Determinista(t *testing.T) {
	p := NewMockProvider()

	a, err := p.CreateInvoice(context.Background(), 21000, "orangecat project abc")
	require.NoError(t, err)
	b, err := p.CreateInvoice(context.Background(), 21000, "orangecat project abc")
	require.NoError(t, err)

	assert.Equal(t, a.Bolt11, b.Bolt11)
	assert.Equal(t, a.PaymentHash, b.PaymentHash)
	assert.Len(t, a.PaymentHash, 64)
	assert.True(t, strings.HasPrefix(a.Bolt11, "lnbcrt21000"), "prefijo de regtest con el monto")
}

func TestMockProvider_EntradasDistintas_FacturasDistintas(t *testing.T) {
	p := NewMockProvider()

	a, err := p.CreateInvoice(context.Background(), 21000, "memo")
	require.NoError(t, err)
	b, err := p.CreateInvoice(context.Background(), 21001, "memo")
	require.NoError(t, err)
	c, err := p.CreateInvoice(context.Background(), 21000, "otro memo")
	require.NoError(t, err)

	assert.NotEqual(t, a.PaymentHash, b.PaymentHash)
	assert.NotEqual(t, a.PaymentHash, c.PaymentHash)
}

func TestMockProvider_MontoInvalido_RetornaError(t *testing.T) {
	p := NewMockProvider()

	_, err := p.CreateInvoice(context.Background(), 0, "memo")
	assert.Error(t, err)

	_, err = p.CreateInvoice(context.Background(), -5, "memo")
	assert.Error(t, err)
}
