// Package coingecko implementa la fuente de precio spot de BTC sobre la API
// pública de CoinGecko.
package coingecko

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
)

// Verificar en tiempo de compilación que Client implementa PriceSource.
var _ ports.PriceSource = (*Client)(nil)

const defaultBaseURL = "https://api.coingecko.com/api/v3"

// Client cliente HTTP de solo lectura contra CoinGecko.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient crea el cliente. baseURL vacío usa la instancia pública.
func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// BTCPriceUSD devuelve el precio spot de BTC en USD.
func (c *Client) BTCPriceUSD(ctx context.Context) (float64, error) {
	url := c.baseURL + "/simple/price?ids=bitcoin&vs_currencies=usd"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, fmt.Errorf("error creando request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("error llamando a coingecko: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, fmt.Errorf("error leyendo respuesta de coingecko: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("coingecko devolvió status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var parsed map[string]map[string]float64
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("error parseando respuesta de coingecko: %w", err)
	}
	price, ok := parsed["bitcoin"]["usd"]
	if !ok || price <= 0 {
		return 0, fmt.Errorf("coingecko no devolvió precio para bitcoin/usd")
	}
	return price, nil
}
