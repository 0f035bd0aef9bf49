package coingecko

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBTCPriceUSD(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/simple/price", r.URL.Path)
		assert.Equal(t, "bitcoin", r.URL.Query().Get("ids"))
		assert.Equal(t, "usd", r.URL.Query().Get("vs_currencies"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"bitcoin": {"usd": 97432.55}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	price, err := c.BTCPriceUSD(context.Background())
	require.NoError(t, err)
	assert.InDelta(t, 97432.55, price, 0.001)
}

func TestBTCPriceUSD_RespuestaSinPrecio_RetornaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.BTCPriceUSD(context.Background())
	assert.Error(t, err)
}

func TestBTCPriceUSD_StatusNoOK_RetornaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	_, err := c.BTCPriceUSD(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "429")
}
