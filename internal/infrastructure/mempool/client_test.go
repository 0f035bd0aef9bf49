package mempool

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testAddress = "bc1qtestaddress"

func TestAddressBalance(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/"+testAddress, r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"chain_stats":   {"funded_txo_sum": 150000, "spent_txo_sum": 50000, "tx_count": 3},
			"mempool_stats": {"funded_txo_sum": 10000, "spent_txo_sum": 0, "tx_count": 1}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	b, err := c.AddressBalance(context.Background(), testAddress)
	require.NoError(t, err)

	assert.Equal(t, int64(100000), b.ConfirmedSats, "fondeado menos gastado")
	assert.Equal(t, int64(10000), b.UnconfirmedSats)
	assert.Equal(t, int64(150000), b.TotalReceivedSats)
	assert.Equal(t, int64(50000), b.TotalSentSats)
}

// Cada transacción se reduce a su efecto neto sobre la dirección; las de
// efecto cero (auto-transferencias) se omiten.
func TestAddressTransactions_ReduceAEfectoNeto(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/address/"+testAddress+"/txs", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{
				"txid": "tx-recibida",
				"status": {"confirmed": true, "block_time": 1767225600},
				"vin":  [{"prevout": {"scriptpubkey_address": "bc1qotra", "value": 80000}}],
				"vout": [{"scriptpubkey_address": "` + testAddress + `", "value": 70000}]
			},
			{
				"txid": "tx-enviada",
				"status": {"confirmed": true, "block_time": 1767312000},
				"vin":  [{"prevout": {"scriptpubkey_address": "` + testAddress + `", "value": 50000}}],
				"vout": [{"scriptpubkey_address": "bc1qotra", "value": 30000},
				         {"scriptpubkey_address": "` + testAddress + `", "value": 19000}]
			},
			{
				"txid": "tx-neutra",
				"status": {"confirmed": true, "block_time": 1767398400},
				"vin":  [{"prevout": {"scriptpubkey_address": "` + testAddress + `", "value": 5000}}],
				"vout": [{"scriptpubkey_address": "` + testAddress + `", "value": 5000}]
			},
			{
				"txid": "tx-sin-confirmar",
				"status": {"confirmed": false, "block_time": 0},
				"vin":  [],
				"vout": [{"scriptpubkey_address": "` + testAddress + `", "value": 1234}]
			}
		]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	txs, err := c.AddressTransactions(context.Background(), testAddress)
	require.NoError(t, err)

	require.Len(t, txs, 3, "la transacción de efecto neto cero se omite")

	assert.Equal(t, "tx-recibida", txs[0].TxID)
	assert.Equal(t, int64(70000), txs[0].AmountSats)
	assert.True(t, txs[0].Confirmed)
	assert.Equal(t, time.Unix(1767225600, 0).UTC(), txs[0].Timestamp)

	assert.Equal(t, "tx-enviada", txs[1].TxID)
	assert.Equal(t, int64(-31000), txs[1].AmountSats, "salida menos cambio de vuelta")

	assert.Equal(t, "tx-sin-confirmar", txs[2].TxID)
	assert.False(t, txs[2].Confirmed)
	assert.WithinDuration(t, time.Now().UTC(), txs[2].Timestamp, time.Minute,
		"sin block_time se usa el instante de consulta")
}

func TestClient_StatusNoOK_RetornaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Address not found", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.AddressBalance(context.Background(), testAddress)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestNewClient_BaseURLPorDefecto(t *testing.T) {
	c := NewClient("")
	assert.Equal(t, "https://mempool.space/api", c.baseURL)

	c = NewClient("http://localhost:3006/api/")
	assert.Equal(t, "http://localhost:3006/api", c.baseURL, "se normaliza el slash final")
}
