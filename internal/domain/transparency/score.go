// Package transparency implementa el puntaje de transparencia de OrangeCat:
// seis métricas ponderadas sobre un máximo de 100 puntos, con hash de
// verificación SHA-256 sobre la representación canónica del resultado.
//
// Pesos:
//
//	screen_recording      20  (proporcional a horas grabadas, tope 24 h)
//	bitcoin_transactions  20  (proporcional al conteo, tope 10 txs)
//	balance_visibility    15  (todo o nada)
//	code_visibility       25  (todo o nada)
//	activity_logging      10  (proporcional al conteo, tope 100 entradas)
//	open_source_usage     10  (proporción de herramientas open source)
package transparency

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// MaxScore puntaje máximo alcanzable.
const MaxScore = 100.0

// Pesos por métrica.
const (
	WeightScreenRecording = 20.0
	WeightBitcoinTxs      = 20.0
	WeightBalance         = 15.0
	WeightCode            = 25.0
	WeightActivityLog     = 10.0
	WeightOpenSource      = 10.0
)

// RecordingMetrics estado de la grabación de pantalla.
type RecordingMetrics struct {
	Enabled       bool
	DurationHours float64
}

// TxMetrics visibilidad de transacciones Bitcoin.
type TxMetrics struct {
	Visible bool
	Count   int
}

// LoggingMetrics registro de actividad.
type LoggingMetrics struct {
	Enabled bool
	Count   int
}

// OpenSourceMetrics herramientas declaradas, abiertas y cerradas.
type OpenSourceMetrics struct {
	Enabled           bool
	Tools             []string
	ClosedSourceTools []string
}

// Metrics entrada completa del cálculo.
type Metrics struct {
	ScreenRecording     RecordingMetrics
	BitcoinTransactions TxMetrics
	BalanceVisible      bool
	CodeVisible         bool
	ActivityLogging     LoggingMetrics
	OpenSource          OpenSourceMetrics
}

// Detail puntaje parcial de una métrica.
type Detail struct {
	Score       float64 `json:"score"`
	MaxPossible float64 `json:"max_possible"`
}

// Score resultado del cálculo. Details solo contiene las métricas que
// aportaron puntos (igual que la implementación original).
type Score struct {
	Score            float64           `json:"score"`
	MaxScore         float64           `json:"max_score"`
	Percentage       float64           `json:"percentage"`
	Details          map[string]Detail `json:"details"`
	OpenSourceRatio  float64           `json:"open_source_ratio,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	VerificationHash string            `json:"verification_hash"`
}

// Calculator calcula puntajes de transparencia.
type Calculator struct {
	now func() time.Time
}

// NewCalculator construye el calculador.
func NewCalculator() *Calculator {
	return &Calculator{now: time.Now}
}

// Calculate aplica los pesos sobre las métricas y sella el resultado.
func (c *Calculator) Calculate(m Metrics) *Score {
	score := 0.0
	details := make(map[string]Detail)
	ratio := 0.0

	if m.ScreenRecording.Enabled {
		s := proportional(m.ScreenRecording.DurationHours, 24, WeightScreenRecording)
		score += s
		details["screen_recording"] = Detail{Score: s, MaxPossible: WeightScreenRecording}
	}
	if m.BitcoinTransactions.Visible {
		s := proportional(float64(m.BitcoinTransactions.Count), 10, WeightBitcoinTxs)
		score += s
		details["bitcoin_transactions"] = Detail{Score: s, MaxPossible: WeightBitcoinTxs}
	}
	if m.BalanceVisible {
		score += WeightBalance
		details["balance_visibility"] = Detail{Score: WeightBalance, MaxPossible: WeightBalance}
	}
	if m.CodeVisible {
		score += WeightCode
		details["code_visibility"] = Detail{Score: WeightCode, MaxPossible: WeightCode}
	}
	if m.ActivityLogging.Enabled {
		s := proportional(float64(m.ActivityLogging.Count), 100, WeightActivityLog)
		score += s
		details["activity_logging"] = Detail{Score: s, MaxPossible: WeightActivityLog}
	}
	if m.OpenSource.Enabled {
		total := len(m.OpenSource.Tools) + len(m.OpenSource.ClosedSourceTools)
		if total > 0 {
			ratio = float64(len(m.OpenSource.Tools)) / float64(total)
			s := ratio * WeightOpenSource
			score += s
			details["open_source_usage"] = Detail{Score: s, MaxPossible: WeightOpenSource}
		}
	}

	result := &Score{
		Score:           score,
		MaxScore:        MaxScore,
		Percentage:      score / MaxScore * 100,
		Details:         details,
		OpenSourceRatio: ratio,
		Timestamp:       c.now().UTC(),
	}
	result.VerificationHash = hashScore(result)
	return result
}

// proportional puntaje lineal value/cap*weight, acotado al peso.
func proportional(value, cap, weight float64) float64 {
	s := value / cap * weight
	if s > weight {
		return weight
	}
	if s < 0 {
		return 0
	}
	return s
}

// hashScore SHA-256 del JSON canónico del puntaje (las claves de Details se
// serializan ordenadas porque Go ordena los maps al hacer Marshal).
func hashScore(s *Score) string {
	payload := map[string]interface{}{
		"score":     s.Score,
		"details":   s.Details,
		"timestamp": s.Timestamp.Format(time.RFC3339),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return ""
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}

// Verify recalcula el hash del puntaje y lo compara con el sellado.
func Verify(s *Score) bool {
	return s.VerificationHash == hashScore(s)
}

// Recommendations genera sugerencias para subir el puntaje, una por métrica
// ausente o incompleta.
func Recommendations(s *Score, m Metrics) []string {
	var recs []string

	if d, ok := s.Details["screen_recording"]; !ok {
		recs = append(recs, "Habilita la grabación de pantalla para aumentar la transparencia")
	} else if d.Score < d.MaxPossible {
		recs = append(recs, "Aumenta la duración de la grabación de pantalla para mejorar el puntaje")
	}

	if d, ok := s.Details["bitcoin_transactions"]; !ok {
		recs = append(recs, "Haz visibles las transacciones Bitcoin")
	} else if d.Score < d.MaxPossible {
		recs = append(recs, "Registra más transacciones Bitcoin para mejorar el puntaje")
	}

	if _, ok := s.Details["balance_visibility"]; !ok {
		recs = append(recs, "Haz visible el saldo para aumentar la transparencia")
	}
	if _, ok := s.Details["code_visibility"]; !ok {
		recs = append(recs, "Publica el código fuente")
	}

	if d, ok := s.Details["activity_logging"]; !ok {
		recs = append(recs, "Habilita el registro de actividad")
	} else if d.Score < d.MaxPossible {
		recs = append(recs, "Aumenta el registro de actividad para mejorar el puntaje")
	}

	if _, ok := s.Details["open_source_usage"]; ok {
		if s.OpenSourceRatio < 1.0 && len(m.OpenSource.ClosedSourceTools) > 0 {
			recs = append(recs, fmt.Sprintf(
				"Considera alternativas open source para: %s",
				strings.Join(m.OpenSource.ClosedSourceTools, ", ")))
		}
	} else {
		recs = append(recs, "Documenta tu uso de herramientas open source y cerradas")
	}

	return recs
}
