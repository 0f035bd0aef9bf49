package transparency

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedCalculator fija el reloj para que el hash sea reproducible.
func fixedCalculator() *Calculator {
	c := NewCalculator()
	c.now = func() time.Time {
		return time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	}
	return c
}

func fullMetrics() Metrics {
	return Metrics{
		ScreenRecording:     RecordingMetrics{Enabled: true, DurationHours: 24},
		BitcoinTransactions: TxMetrics{Visible: true, Count: 10},
		BalanceVisible:      true,
		CodeVisible:         true,
		ActivityLogging:     LoggingMetrics{Enabled: true, Count: 100},
		OpenSource: OpenSourceMetrics{
			Enabled: true,
			Tools:   []string{"git", "postgres"},
		},
	}
}

// Todas las métricas al tope deben dar el puntaje máximo.
func TestCalculate_MetricasCompletas_Da100(t *testing.T) {
	s := fixedCalculator().Calculate(fullMetrics())

	assert.InDelta(t, 100.0, s.Score, 0.001)
	assert.InDelta(t, 100.0, s.Percentage, 0.001)
	assert.Equal(t, MaxScore, s.MaxScore)
	assert.Len(t, s.Details, 6, "las seis métricas deben aportar detalle")
	assert.InDelta(t, 1.0, s.OpenSourceRatio, 0.001)
	assert.NotEmpty(t, s.VerificationHash)
}

// Sin ninguna métrica habilitada el puntaje es cero y Details queda vacío.
func TestCalculate_SinMetricas_DaCero(t *testing.T) {
	s := fixedCalculator().Calculate(Metrics{})

	assert.Zero(t, s.Score)
	assert.Zero(t, s.Percentage)
	assert.Empty(t, s.Details)
}

// Los puntajes proporcionales se acotan al peso aunque el valor exceda el tope.
func TestCalculate_ProporcionalAcotadoAlPeso(t *testing.T) {
	s := fixedCalculator().Calculate(Metrics{
		ScreenRecording:     RecordingMetrics{Enabled: true, DurationHours: 48}, // doble del tope
		BitcoinTransactions: TxMetrics{Visible: true, Count: 5},                 // mitad del tope
	})

	assert.InDelta(t, WeightScreenRecording, s.Details["screen_recording"].Score, 0.001)
	assert.InDelta(t, WeightBitcoinTxs/2, s.Details["bitcoin_transactions"].Score, 0.001)
	assert.InDelta(t, WeightScreenRecording+WeightBitcoinTxs/2, s.Score, 0.001)
}

// La proporción open source pondera abiertas sobre el total declarado.
func TestCalculate_RatioOpenSource(t *testing.T) {
	s := fixedCalculator().Calculate(Metrics{
		OpenSource: OpenSourceMetrics{
			Enabled:           true,
			Tools:             []string{"git", "postgres", "linux"},
			ClosedSourceTools: []string{"photoshop"},
		},
	})

	assert.InDelta(t, 0.75, s.OpenSourceRatio, 0.001)
	assert.InDelta(t, 0.75*WeightOpenSource, s.Details["open_source_usage"].Score, 0.001)
}

// Open source habilitado pero sin herramientas declaradas no aporta puntos.
func TestCalculate_OpenSourceSinHerramientas_NoAporta(t *testing.T) {
	s := fixedCalculator().Calculate(Metrics{
		OpenSource: OpenSourceMetrics{Enabled: true},
	})

	_, ok := s.Details["open_source_usage"]
	assert.False(t, ok)
	assert.Zero(t, s.Score)
}

// El hash sellado debe verificar, y cualquier alteración debe invalidarlo.
func TestVerify_HashSelladoYAlterado(t *testing.T) {
	s := fixedCalculator().Calculate(fullMetrics())
	require.True(t, Verify(s), "el puntaje recién calculado debe verificar")

	s.Score += 1
	assert.False(t, Verify(s), "alterar el puntaje debe romper el hash")
}

// El mismo input con el mismo reloj produce el mismo hash.
func TestCalculate_HashDeterminista(t *testing.T) {
	a := fixedCalculator().Calculate(fullMetrics())
	b := fixedCalculator().Calculate(fullMetrics())
	assert.Equal(t, a.VerificationHash, b.VerificationHash)
}

// Cada métrica ausente genera su recomendación.
func TestRecommendations_MetricasAusentes(t *testing.T) {
	m := Metrics{}
	s := fixedCalculator().Calculate(m)
	recs := Recommendations(s, m)
	assert.Len(t, recs, 6, "una recomendación por métrica ausente")
}

// Métricas completas solo sugieren mejoras si queda margen.
func TestRecommendations_MetricasCompletas_SinSugerencias(t *testing.T) {
	m := fullMetrics()
	s := fixedCalculator().Calculate(m)
	recs := Recommendations(s, m)
	assert.Empty(t, recs)
}

// Con herramientas cerradas declaradas la recomendación las nombra.
func TestRecommendations_NombraHerramientasCerradas(t *testing.T) {
	m := fullMetrics()
	m.OpenSource.ClosedSourceTools = []string{"photoshop", "excel"}
	s := fixedCalculator().Calculate(m)
	recs := Recommendations(s, m)

	require.NotEmpty(t, recs)
	found := false
	for _, r := range recs {
		if strings.Contains(r, "photoshop") && strings.Contains(r, "excel") {
			found = true
		}
	}
	assert.True(t, found, "la recomendación debe nombrar las herramientas cerradas")
}
