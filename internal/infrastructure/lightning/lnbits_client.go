// Package lightning implementa la emisión de facturas Lightning. El proveedor
// real es LNbits vía su API HTTP; para desarrollo y pruebas hay un proveedor
// mock determinista.
package lightning

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
)

// Verificar en tiempo de compilación que LNBitsClient implementa InvoiceProvider.
var _ ports.InvoiceProvider = (*LNBitsClient)(nil)

// LNBitsClient emite facturas contra una instancia de LNbits.
type LNBitsClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLNBitsClient crea el cliente. La llave es la invoice key de la wallet.
func NewLNBitsClient(baseURL, apiKey string) *LNBitsClient {
	return &LNBitsClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
	}
}

type lnbitsInvoiceRequest struct {
	Out    bool   `json:"out"`
	Amount int64  `json:"amount"`
	Memo   string `json:"memo"`
}

type lnbitsInvoiceResponse struct {
	PaymentRequest string `json:"payment_request"`
	PaymentHash    string `json:"payment_hash"`
	Detail         string `json:"detail"`
}

// CreateInvoice emite una factura de cobro por amountSats.
func (c *LNBitsClient) CreateInvoice(ctx context.Context, amountSats int64, memo string) (*ports.Invoice, error) {
	if amountSats <= 0 {
		return nil, fmt.Errorf("monto de factura inválido: %d", amountSats)
	}

	payload, err := json.Marshal(lnbitsInvoiceRequest{Out: false, Amount: amountSats, Memo: memo})
	if err != nil {
		return nil, fmt.Errorf("error serializando request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("error creando request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Api-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error llamando a lnbits: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error leyendo respuesta de lnbits: %w", err)
	}

	var parsed lnbitsInvoiceResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("error parseando respuesta de lnbits: %w", err)
	}
	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		detail := parsed.Detail
		if detail == "" {
			detail = strings.TrimSpace(string(body))
		}
		return nil, fmt.Errorf("lnbits devolvió status %d: %s", resp.StatusCode, detail)
	}
	if parsed.PaymentRequest == "" || parsed.PaymentHash == "" {
		return nil, fmt.Errorf("lnbits devolvió una factura incompleta")
	}

	return &ports.Invoice{
		Bolt11:      parsed.PaymentRequest,
		PaymentHash: parsed.PaymentHash,
	}, nil
}
