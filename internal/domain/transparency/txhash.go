package transparency

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"time"
)

// HashTransaction calcula el hash de verificación de una transacción
// rastreada: SHA-256 del JSON canónico de {amount, timestamp, txid, type}
// (claves ordenadas). Se recalcula en la verificación; si alguien altera una
// fila, el hash deja de coincidir.
func HashTransaction(txid string, amountSats int64, direction string, ts time.Time) string {
	payload := map[string]interface{}{
		"txid":      txid,
		"amount":    amountSats,
		"type":      direction,
		"timestamp": ts.UTC().Format(time.RFC3339),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// VerifyTransaction recalcula el hash y lo compara con el sellado.
func VerifyTransaction(txid string, amountSats int64, direction string, ts time.Time, sealed string) bool {
	return sealed != "" && HashTransaction(txid, amountSats, direction, ts) == sealed
}
