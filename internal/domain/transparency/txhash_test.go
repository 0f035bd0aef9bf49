package transparency

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var txTime = time.Date(2026, 1, 15, 9, 30, 0, 0, time.UTC)

// La misma transacción produce siempre el mismo hash.
func TestHashTransaction_Determinista(t *testing.T) {
	a := HashTransaction("abc123", 50000, "received", txTime)
	b := HashTransaction("abc123", 50000, "received", txTime)

	require.NotEmpty(t, a)
	assert.Equal(t, a, b)
	assert.Len(t, a, 64, "hex de SHA-256")
}

// Cambiar cualquier campo cambia el hash.
func TestHashTransaction_SensibleACadaCampo(t *testing.T) {
	base := HashTransaction("abc123", 50000, "received", txTime)

	assert.NotEqual(t, base, HashTransaction("abc124", 50000, "received", txTime))
	assert.NotEqual(t, base, HashTransaction("abc123", 50001, "received", txTime))
	assert.NotEqual(t, base, HashTransaction("abc123", 50000, "sent", txTime))
	assert.NotEqual(t, base, HashTransaction("abc123", 50000, "received", txTime.Add(time.Second)))
}

// El timestamp se normaliza a UTC antes de sellar.
func TestHashTransaction_NormalizaZonaHoraria(t *testing.T) {
	bogota := time.FixedZone("COT", -5*3600)
	local := txTime.In(bogota)

	assert.Equal(t,
		HashTransaction("abc123", 50000, "received", txTime),
		HashTransaction("abc123", 50000, "received", local))
}

func TestVerifyTransaction(t *testing.T) {
	sealed := HashTransaction("abc123", 50000, "received", txTime)

	assert.True(t, VerifyTransaction("abc123", 50000, "received", txTime, sealed))
	assert.False(t, VerifyTransaction("abc123", 99999, "received", txTime, sealed),
		"monto alterado no debe verificar")
	assert.False(t, VerifyTransaction("abc123", 50000, "received", txTime, ""),
		"hash vacío nunca verifica")
}
