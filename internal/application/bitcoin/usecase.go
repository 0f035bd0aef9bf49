// Package bitcoin implementa el rastreador on-chain de proyectos y el motor
// de transparencia: saldo y transacciones vía mempool.space, precio spot vía
// CoinGecko, sellado de transacciones con hash de verificación y reportes
// (JSON y PDF) con puntaje de transparencia.
package bitcoin

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/transparency"
)

// UseCase casos de uso del tracker y la transparencia.
type UseCase struct {
	projectRepo repository.ProjectRepository
	trackedRepo repository.TrackedTxRepository
	explorer    ports.ChainExplorer
	prices      ports.PriceSource
	pdf         ports.ReportPDFGenerator
	calc        *transparency.Calculator
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	projectRepo repository.ProjectRepository,
	trackedRepo repository.TrackedTxRepository,
	explorer ports.ChainExplorer,
	prices ports.PriceSource,
	pdf ports.ReportPDFGenerator,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		projectRepo: projectRepo,
		trackedRepo: trackedRepo,
		explorer:    explorer,
		prices:      prices,
		pdf:         pdf,
		calc:        transparency.NewCalculator(),
		log:         log,
	}
}

// Balance consulta el saldo on-chain de la dirección del proyecto. El precio
// spot es best-effort: si CoinGecko falla, el saldo sale sin precio.
func (uc *UseCase) Balance(ctx context.Context, projectID string) (*dto.AddressBalanceResponse, error) {
	project, err := uc.requireTracked(projectID)
	if err != nil {
		return nil, err
	}
	bal, err := uc.explorer.AddressBalance(ctx, project.BitcoinAddress)
	if err != nil {
		return nil, err
	}
	resp := &dto.AddressBalanceResponse{
		Address:           project.BitcoinAddress,
		ConfirmedSats:     bal.ConfirmedSats,
		UnconfirmedSats:   bal.UnconfirmedSats,
		TotalReceivedSats: bal.TotalReceivedSats,
		TotalSentSats:     bal.TotalSentSats,
		UpdatedAt:         time.Now().UTC(),
	}
	if price, err := uc.prices.BTCPriceUSD(ctx); err == nil {
		resp.BTCPriceUSD = price
	} else {
		uc.log.Warn().Err(err).Msg("no se pudo obtener el precio spot de BTC")
	}
	return resp, nil
}

// Refresh descarga las transacciones de la dirección y las sella en la base.
// Solo el dueño del proyecto. Devuelve cuántas transacciones quedaron
// registradas tras el refresco.
func (uc *UseCase) Refresh(ctx context.Context, callerActorID, projectID string) ([]dto.TrackedTxResponse, error) {
	project, err := uc.requireTracked(projectID)
	if err != nil {
		return nil, err
	}
	if project.ActorID != callerActorID {
		return nil, domain.ErrForbidden
	}

	txs, err := uc.explorer.AddressTransactions(ctx, project.BitcoinAddress)
	if err != nil {
		return nil, err
	}
	for _, tx := range txs {
		direction := entity.TxReceived
		amount := tx.AmountSats
		if amount < 0 {
			direction = entity.TxSent
			amount = -amount
		}
		tracked := &entity.TrackedTransaction{
			ID:               uuid.New().String(),
			ProjectID:        projectID,
			TxID:             tx.TxID,
			AmountSats:       amount,
			Direction:        direction,
			Timestamp:        tx.Timestamp,
			VerificationHash: transparency.HashTransaction(tx.TxID, amount, direction, tx.Timestamp),
			CreatedAt:        time.Now(),
		}
		if err := uc.trackedRepo.Upsert(tracked); err != nil {
			return nil, err
		}
	}

	// RaisedSats se recalcula del libro sellado tras cada refresco.
	net, err := uc.trackedRepo.NetReceivedSats(projectID)
	if err != nil {
		return nil, err
	}
	if net < 0 {
		net = 0
	}
	if net != project.RaisedSats {
		project.RaisedSats = net
		project.UpdatedAt = time.Now()
		if err := uc.projectRepo.Update(project); err != nil {
			return nil, err
		}
	}

	list, _, err := uc.trackedRepo.ListByProject(projectID, 100, 0)
	if err != nil {
		return nil, err
	}
	return toTrackedList(list), nil
}

// ListTransactions lista las transacciones selladas de un proyecto.
func (uc *UseCase) ListTransactions(projectID string, page dto.PageRequest) ([]dto.TrackedTxResponse, int, error) {
	if _, err := uc.requireTracked(projectID); err != nil {
		return nil, 0, err
	}
	list, total, err := uc.trackedRepo.ListByProject(projectID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toTrackedList(list), total, nil
}

// VerifyTransaction recalcula el hash de una transacción sellada y responde
// si la fila sigue íntegra.
func (uc *UseCase) VerifyTransaction(projectID, txid string) (*dto.VerifyTxResponse, error) {
	tx, err := uc.trackedRepo.GetByTxID(projectID, txid)
	if err != nil {
		return nil, err
	}
	if tx == nil {
		return nil, domain.ErrNotFound
	}
	valid := transparency.VerifyTransaction(tx.TxID, tx.AmountSats, tx.Direction, tx.Timestamp, tx.VerificationHash)
	return &dto.VerifyTxResponse{TxID: txid, Valid: valid}, nil
}

// Score calcula el puntaje de transparencia a partir de métricas declaradas.
func (uc *UseCase) Score(in dto.TransparencyMetricsRequest) *dto.TransparencyScoreResponse {
	metrics := toMetrics(in)
	score := uc.calc.Calculate(metrics)
	return toScoreResponse(score, metrics)
}

// Report arma el reporte completo del proyecto: saldo, transacciones selladas
// y puntaje, con hash de verificación propio.
func (uc *UseCase) Report(ctx context.Context, projectID string, in dto.TransparencyMetricsRequest) (*dto.TransparencyReportResponse, error) {
	project, err := uc.requireTracked(projectID)
	if err != nil {
		return nil, err
	}
	balance, err := uc.Balance(ctx, projectID)
	if err != nil {
		return nil, err
	}
	txs, total, err := uc.trackedRepo.ListByProject(projectID, 100, 0)
	if err != nil {
		return nil, err
	}

	// El conteo real de transacciones selladas manda sobre el declarado.
	in.TransactionCount = total
	if total > 0 {
		in.TransactionsVisible = true
	}
	metrics := toMetrics(in)
	score := uc.calc.Calculate(metrics)

	report := &dto.TransparencyReportResponse{
		ProjectID:        projectID,
		Address:          project.BitcoinAddress,
		Balance:          *balance,
		TransactionCount: total,
		Transactions:     toTrackedList(txs),
		Score:            *toScoreResponse(score, metrics),
		GeneratedAt:      time.Now().UTC(),
		VerificationHash: score.VerificationHash,
	}
	return report, nil
}

// ReportPDF genera el reporte y lo renderiza en PDF.
func (uc *UseCase) ReportPDF(ctx context.Context, projectID string, in dto.TransparencyMetricsRequest) ([]byte, error) {
	project, err := uc.requireTracked(projectID)
	if err != nil {
		return nil, err
	}
	report, err := uc.Report(ctx, projectID, in)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateTransparencyPDF(ctx, report, project.Title)
}

// requireTracked exige proyecto existente con dirección Bitcoin configurada.
func (uc *UseCase) requireTracked(projectID string) (*entity.Project, error) {
	project, err := uc.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, domain.ErrNotFound
	}
	if project.BitcoinAddress == "" {
		return nil, domain.ErrInvalidInput
	}
	return project, nil
}

func toMetrics(in dto.TransparencyMetricsRequest) transparency.Metrics {
	return transparency.Metrics{
		ScreenRecording: transparency.RecordingMetrics{
			Enabled:       in.ScreenRecordingEnabled,
			DurationHours: in.RecordingHours,
		},
		BitcoinTransactions: transparency.TxMetrics{
			Visible: in.TransactionsVisible,
			Count:   in.TransactionCount,
		},
		BalanceVisible: in.BalanceVisible,
		CodeVisible:    in.CodeVisible,
		ActivityLogging: transparency.LoggingMetrics{
			Enabled: in.ActivityLoggingEnabled,
			Count:   in.ActivityLogCount,
		},
		OpenSource: transparency.OpenSourceMetrics{
			Enabled:           in.OpenSourceDeclared,
			Tools:             in.OpenSourceTools,
			ClosedSourceTools: in.ClosedSourceTools,
		},
	}
}

func toScoreResponse(s *transparency.Score, m transparency.Metrics) *dto.TransparencyScoreResponse {
	details := make(map[string]float64, len(s.Details))
	for k, d := range s.Details {
		details[k] = d.Score
	}
	return &dto.TransparencyScoreResponse{
		Score:            s.Score,
		MaxScore:         s.MaxScore,
		Percentage:       s.Percentage,
		Details:          details,
		Recommendations:  transparency.Recommendations(s, m),
		VerificationHash: s.VerificationHash,
		Timestamp:        s.Timestamp,
	}
}

func toTrackedList(list []*entity.TrackedTransaction) []dto.TrackedTxResponse {
	items := make([]dto.TrackedTxResponse, 0, len(list))
	for _, tx := range list {
		items = append(items, dto.TrackedTxResponse{
			TxID:             tx.TxID,
			AmountSats:       tx.AmountSats,
			Direction:        tx.Direction,
			Timestamp:        tx.Timestamp,
			VerificationHash: tx.VerificationHash,
		})
	}
	return items
}
