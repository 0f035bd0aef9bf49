// Package pdf implementa el render del reporte de transparencia de un
// proyecto en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del proyecto  │  Fecha del reporte           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  DIRECCIÓN + SALDO: confirmado / mempool / precio USD        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PUNTAJE: total sobre máximo + desglose por métrica          │
//	│  RECOMENDACIONES                                             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: TxID | Dirección | Monto | Fecha                     │
//	│  FOOTER: hash de verificación del reporte                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
)

// Verificar en tiempo de compilación.
var _ ports.ReportPDFGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 247, Green: 147, Blue: 26} // naranja bitcoin
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorGreen   = &props.Color{Red: 30, Green: 130, Blue: 70}
	colorRed     = &props.Color{Red: 170, Green: 40, Blue: 40}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.ReportPDFGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateTransparencyPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateTransparencyPDF(
	_ context.Context,
	report *dto.TransparencyReportResponse,
	projectTitle string,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de Transparencia", true).
		WithAuthor("OrangeCat", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report, projectTitle))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(balanceRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(scoreRow(&report.Score))
	for _, r := range scoreDetailRows(&report.Score) {
		m.AddRows(r)
	}
	for _, r := range recommendationRows(report.Score.Recommendations) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(txHeaderRow(report.TransactionCount))
	for _, r := range txRows(report.Transactions) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(report) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título del proyecto (izq) y fecha del reporte (der).
func headerRow(report *dto.TransparencyReportResponse, projectTitle string) core.Row {
	fecha := report.GeneratedAt.Format("02/01/2006 15:04 MST")

	return row.New(18).Add(
		col.New(7).Add(
			text.New(projectTitle, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Proyecto: "+report.ProjectID, props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("REPORTE DE TRANSPARENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// balanceRow: dirección rastreada y saldos.
func balanceRow(report *dto.TransparencyReportResponse) core.Row {
	b := report.Balance
	priceLine := "Precio BTC: no disponible"
	if b.BTCPriceUSD > 0 {
		priceLine = fmt.Sprintf("Precio BTC: $%.2f USD", b.BTCPriceUSD)
	}
	return row.New(18).Add(
		col.New(12).Add(
			text.New("DIRECCIÓN RASTREADA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(report.Address, props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New(fmt.Sprintf("Confirmado: %s sats   |   En mempool: %s sats   |   %s",
				formatSats(b.ConfirmedSats),
				formatSats(b.UnconfirmedSats),
				priceLine,
			), props.Text{Size: 8, Top: 12}),
		),
	)
}

// scoreRow: puntaje total sobre el máximo.
func scoreRow(score *dto.TransparencyScoreResponse) core.Row {
	c := colorRed
	if score.Percentage >= 60 {
		c = colorGreen
	}
	return row.New(14).Add(
		col.New(7).Add(
			text.New("PUNTAJE DE TRANSPARENCIA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(fmt.Sprintf("%.1f / %.0f  (%.0f%%)", score.Score, score.MaxScore, score.Percentage), props.Text{
				Style: fontstyle.Bold, Size: 13, Align: align.Right, Color: c, Top: 3,
			}),
		),
	)
}

// scoreDetailRows: una fila por métrica, orden alfabético para salida estable.
func scoreDetailRows(score *dto.TransparencyScoreResponse) []core.Row {
	keys := make([]string, 0, len(score.Details))
	for k := range score.Details {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]core.Row, 0, len(keys))
	for _, k := range keys {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(k, props.Text{Size: 8, Left: 2, Top: 0.5})),
			col.New(6).Add(text.New(
				fmt.Sprintf("%.1f pts", score.Details[k]),
				props.Text{Size: 8, Align: align.Right, Right: 2, Top: 0.5, Color: colorGray},
			)),
		))
	}
	return rows
}

// recommendationRows: sugerencias para subir el puntaje.
func recommendationRows(recs []string) []core.Row {
	if len(recs) == 0 {
		return nil
	}
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("RECOMENDACIONES", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	for _, rec := range recs {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New("• "+rec, props.Text{Size: 7.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// txHeaderRow: cabecera de la tabla de transacciones.
func txHeaderRow(total int) core.Row {
	return row.New(8).Add(
		col.New(6).Add(text.New(
			fmt.Sprintf("TRANSACCIONES RASTREADAS (%d)", total),
			props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2},
		)),
		col.New(3).Add(text.New("Monto", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
		})),
		col.New(3).Add(text.New("Fecha", props.Text{
			Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 2,
		})),
	)
}

// txRows: una fila por transacción, el txid truncado para caber en la página.
func txRows(txs []dto.TrackedTxResponse) []core.Row {
	result := make([]core.Row, 0, len(txs))
	for _, tx := range txs {
		amountColor := colorGreen
		sign := "+"
		if tx.Direction == entity.TxSent {
			amountColor = colorRed
			sign = "-"
		}
		result = append(result, row.New(6).Add(
			col.New(6).Add(text.New(
				truncate(tx.TxID, 32),
				props.Text{Size: 7.5, Top: 1, Left: 1, Color: colorGray},
			)),
			col.New(3).Add(text.New(
				sign+formatSats(tx.AmountSats)+" sats",
				props.Text{Size: 8, Align: align.Right, Top: 1, Color: amountColor},
			)),
			col.New(3).Add(text.New(
				tx.Timestamp.Format("02/01/2006"),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// footerRows: hash de verificación del reporte.
func footerRows(report *dto.TransparencyReportResponse) []core.Row {
	rows := []core.Row{
		row.New(5).Add(col.New(12).Add(
			text.New("Hash de verificación del reporte:", props.Text{
				Style: fontstyle.Bold, Size: 7, Top: 1,
			}),
		)),
	}
	for _, chunk := range splitEvery(report.VerificationHash, 80) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 6.5, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	rows = append(rows, row.New(8).Add(col.New(12).Add(
		text.New(
			"Este reporte se generó a partir de datos públicos de la blockchain de Bitcoin. "+
				"Cualquiera puede recalcular el hash sobre el contenido del reporte para verificar su integridad.",
			props.Text{Size: 6.5, Color: colorGray, Top: 2},
		),
	)))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatSats inserta puntos de miles en un monto en satoshis.
// Ej: 25000 → "25.000", 1000000 → "1.000.000"
func formatSats(sats int64) string {
	if sats < 0 {
		sats = -sats
	}
	s := fmt.Sprintf("%d", sats)
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// truncate corta s a max n caracteres agregando elipsis.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "…"
}

// splitEvery divide s en trozos de max n caracteres.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
