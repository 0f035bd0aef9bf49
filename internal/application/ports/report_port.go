package ports

import (
	"context"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
)

// ReportPDFGenerator puerto de salida para render de reportes de
// transparencia en PDF.
type ReportPDFGenerator interface {
	GenerateTransparencyPDF(ctx context.Context, report *dto.TransparencyReportResponse, projectTitle string) ([]byte, error)
}
