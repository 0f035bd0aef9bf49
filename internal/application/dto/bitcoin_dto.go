package dto

import "time"

// AddressBalanceResponse saldo on-chain de la dirección de un proyecto.
type AddressBalanceResponse struct {
	Address           string    `json:"address"`
	ConfirmedSats     int64     `json:"confirmed_sats"`
	UnconfirmedSats   int64     `json:"unconfirmed_sats"`
	TotalReceivedSats int64     `json:"total_received_sats"`
	TotalSentSats     int64     `json:"total_sent_sats"`
	BTCPriceUSD       float64   `json:"btc_price_usd,omitempty"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TrackedTxResponse transacción rastreada con su sello de verificación.
type TrackedTxResponse struct {
	TxID             string    `json:"txid"`
	AmountSats       int64     `json:"amount_sats"`
	Direction        string    `json:"direction"`
	Timestamp        time.Time `json:"timestamp"`
	VerificationHash string    `json:"verification_hash"`
}

// VerifyTxResponse resultado de la verificación de integridad.
type VerifyTxResponse struct {
	TxID  string `json:"txid"`
	Valid bool   `json:"valid"`
}

// TransparencyMetricsRequest métricas declaradas para el puntaje.
type TransparencyMetricsRequest struct {
	ScreenRecordingEnabled bool     `json:"screen_recording_enabled"`
	RecordingHours         float64  `json:"recording_hours"`
	TransactionsVisible    bool     `json:"transactions_visible"`
	TransactionCount       int      `json:"transaction_count"`
	BalanceVisible         bool     `json:"balance_visible"`
	CodeVisible            bool     `json:"code_visible"`
	ActivityLoggingEnabled bool     `json:"activity_logging_enabled"`
	ActivityLogCount       int      `json:"activity_log_count"`
	OpenSourceDeclared     bool     `json:"open_source_declared"`
	OpenSourceTools        []string `json:"open_source_tools"`
	ClosedSourceTools      []string `json:"closed_source_tools"`
}

// TransparencyScoreResponse puntaje calculado.
type TransparencyScoreResponse struct {
	Score            float64            `json:"score"`
	MaxScore         float64            `json:"max_score"`
	Percentage       float64            `json:"percentage"`
	Details          map[string]float64 `json:"details"`
	Recommendations  []string           `json:"recommendations"`
	VerificationHash string             `json:"verification_hash"`
	Timestamp        time.Time          `json:"timestamp"`
}

// TransparencyReportResponse reporte completo de un proyecto.
type TransparencyReportResponse struct {
	ProjectID        string                    `json:"project_id"`
	Address          string                    `json:"address"`
	Balance          AddressBalanceResponse    `json:"balance"`
	TransactionCount int                       `json:"transaction_count"`
	Transactions     []TrackedTxResponse       `json:"transactions"`
	Score            TransparencyScoreResponse `json:"score"`
	GeneratedAt      time.Time                 `json:"generated_at"`
	VerificationHash string                    `json:"verification_hash"`
}
