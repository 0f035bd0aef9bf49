// Package mempool implementa el explorador de blockchain sobre la API pública
// de mempool.space (o una instancia compatible, ej. esplora propio).
package mempool

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

// Verificar en tiempo de compilación que Client implementa ChainExplorer.
var _ ports.ChainExplorer = (*Client)(nil)

const defaultBaseURL = "https://mempool.space/api"

// Client cliente HTTP de solo lectura contra mempool.space.
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
			Timeout: 15 * time.Second,
		},
	}
}

// addressStats respuesta de GET /address/{address}.
type addressStats struct {
	ChainStats   txoStats `json:"chain_stats"`
	MempoolStats txoStats `json:"mempool_stats"`
}

type txoStats struct {
	FundedTxoSum int64 `json:"funded_txo_sum"`
	SpentTxoSum  int64 `json:"spent_txo_sum"`
	TxCount      int   `json:"tx_count"`
}

// addressTx respuesta de GET /address/{address}/txs (campos usados).
type addressTx struct {
	TxID   string `json:"txid"`
	Status struct {
		Confirmed bool  `json:"confirmed"`
		BlockTime int64 `json:"block_time"`
	} `json:"status"`
	Vin []struct {
		Prevout struct {
			ScriptPubKeyAddress string `json:"scriptpubkey_address"`
			Value               int64  `json:"value"`
		} `json:"prevout"`
	} `json:"vin"`
	Vout []struct {
		ScriptPubKeyAddress string `json:"scriptpubkey_address"`
		Value               int64  `json:"value"`
	} `json:"vout"`
}

// AddressBalance consulta el saldo on-chain y en mempool de una dirección.
func (c *Client) AddressBalance(ctx context.Context, address string) (*ports.ChainBalance, error) {
	var stats addressStats
	if err := c.get(ctx, "/address/"+address, &stats); err != nil {
		return nil, err
	}
	return &ports.ChainBalance{
		ConfirmedSats:     stats.ChainStats.FundedTxoSum - stats.ChainStats.SpentTxoSum,
		UnconfirmedSats:   stats.MempoolStats.FundedTxoSum - stats.MempoolStats.SpentTxoSum,
		TotalReceivedSats: stats.ChainStats.FundedTxoSum,
		TotalSentSats:     stats.ChainStats.SpentTxoSum,
	}, nil
}

// AddressTransactions lista las transacciones recientes de una dirección y
// reduce cada una a su efecto neto sobre la dirección consultada.
func (c *Client) AddressTransactions(ctx context.Context, address string) ([]ports.ChainTx, error) {
	var raw []addressTx
	if err := c.get(ctx, "/address/"+address+"/txs", &raw); err != nil {
		return nil, err
	}

	txs := make([]ports.ChainTx, 0, len(raw))
	for _, tx := range raw {
		var net int64
		for _, out := range tx.Vout {
			if out.ScriptPubKeyAddress == address {
				net += out.Value
			}
		}
		for _, in := range tx.Vin {
			if in.Prevout.ScriptPubKeyAddress == address {
				net -= in.Prevout.Value
			}
		}
		if net == 0 {
			continue
		}
		ts := time.Now().UTC()
		if tx.Status.BlockTime > 0 {
			ts = time.Unix(tx.Status.BlockTime, 0).UTC()
		}
		txs = append(txs, ports.ChainTx{
			TxID:       tx.TxID,
			AmountSats: net,
			Confirmed:  tx.Status.Confirmed,
			Timestamp:  ts,
		})
	}
	return txs, nil
}

func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("error creando request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("error llamando a mempool: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("error leyendo respuesta de mempool: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("mempool devolvió status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("error parseando respuesta de mempool: %w", err)
	}
	return nil
}
