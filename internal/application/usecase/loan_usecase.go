package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// LoanUseCase casos de uso CRUD para préstamos. El colateral, si viene,
// debe ser un asset existente del mismo actor.
type LoanUseCase struct {
	repo      repository.LoanRepository
	assetRepo repository.AssetRepository
	timeline  repository.TimelineRepository
}

// NewLoanUseCase construye el caso de uso.
func NewLoanUseCase(repo repository.LoanRepository, assetRepo repository.AssetRepository, timeline repository.TimelineRepository) *LoanUseCase {
	return &LoanUseCase{repo: repo, assetRepo: assetRepo, timeline: timeline}
}

// validateCollateral verifica que el asset exista y pertenezca al actor.
func (uc *LoanUseCase) validateCollateral(actorID string, assetID *string) error {
	if assetID == nil || *assetID == "" {
		return nil
	}
	asset, err := uc.assetRepo.GetByID(*assetID)
	if err != nil {
		return err
	}
	if asset == nil {
		return domain.ErrNotFound
	}
	if asset.ActorID != actorID {
		return domain.ErrForbidden
	}
	return nil
}

// Create crea una solicitud de préstamo en draft.
func (uc *LoanUseCase) Create(actorID string, in dto.CreateLoanRequest) (*dto.LoanResponse, error) {
	if in.Title == "" || in.PrincipalSats <= 0 || in.TermMonths <= 0 || in.InterestRate.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.validateCollateral(actorID, in.CollateralAssetID); err != nil {
		return nil, err
	}
	now := time.Now()
	loan := &entity.Loan{
		ID:                uuid.New().String(),
		ActorID:           actorID,
		Title:             in.Title,
		Description:       in.Description,
		PrincipalSats:     in.PrincipalSats,
		InterestRate:      in.InterestRate,
		TermMonths:        in.TermMonths,
		CollateralAssetID: in.CollateralAssetID,
		Status:            entity.StatusDraft,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(loan); err != nil {
		return nil, err
	}
	recordEvent(uc.timeline, actorID, entity.EventEntityCreated, "loan", loan.ID, loan.Title)
	return toLoanResponse(loan), nil
}

// GetByID obtiene un préstamo por ID.
func (uc *LoanUseCase) GetByID(id string) (*dto.LoanResponse, error) {
	loan, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// Update actualiza un préstamo del actor.
func (uc *LoanUseCase) Update(actorID, id string, in dto.UpdateLoanRequest) (*dto.LoanResponse, error) {
	loan, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, nil
	}
	if loan.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if in.Title != nil {
		loan.Title = *in.Title
	}
	if in.Description != nil {
		loan.Description = *in.Description
	}
	if in.PrincipalSats != nil {
		if *in.PrincipalSats <= 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.PrincipalSats = *in.PrincipalSats
	}
	if in.InterestRate != nil {
		if in.InterestRate.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		loan.InterestRate = *in.InterestRate
	}
	if in.TermMonths != nil {
		if *in.TermMonths <= 0 {
			return nil, domain.ErrInvalidInput
		}
		loan.TermMonths = *in.TermMonths
	}
	if in.CollateralAssetID != nil {
		if err := uc.validateCollateral(actorID, in.CollateralAssetID); err != nil {
			return nil, err
		}
		loan.CollateralAssetID = in.CollateralAssetID
	}
	loan.UpdatedAt = time.Now()
	if err := uc.repo.Update(loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// ChangeStatus aplica una transición del ciclo de vida.
func (uc *LoanUseCase) ChangeStatus(actorID, id, status string) (*dto.LoanResponse, error) {
	to, ok := entity.ParseStatus(status)
	if !ok {
		return nil, domain.ErrInvalidInput
	}
	loan, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loan == nil {
		return nil, nil
	}
	if loan.ActorID != actorID {
		return nil, domain.ErrForbidden
	}
	if !loan.Status.CanTransition(to) {
		return nil, domain.ErrInvalidTransition
	}
	loan.Status = to
	loan.UpdatedAt = time.Now()
	if err := uc.repo.Update(loan); err != nil {
		return nil, err
	}
	return toLoanResponse(loan), nil
}

// ListByActor lista préstamos de un actor.
func (uc *LoanUseCase) ListByActor(actorID string, page dto.PageRequest) ([]dto.LoanResponse, int, error) {
	list, total, err := uc.repo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toLoanList(list), total, nil
}

// ListPublic lista préstamos activos.
func (uc *LoanUseCase) ListPublic(page dto.PageRequest) ([]dto.LoanResponse, int, error) {
	list, total, err := uc.repo.ListPublic(page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	return toLoanList(list), total, nil
}

// Delete elimina un préstamo del actor.
func (uc *LoanUseCase) Delete(actorID, id string) error {
	loan, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if loan == nil {
		return domain.ErrNotFound
	}
	if loan.ActorID != actorID {
		return domain.ErrForbidden
	}
	return uc.repo.Delete(id)
}

// MonthlyInterest calcula el interés mensual simple del préstamo en sats
// (tasa anual / 12 sobre el principal). Solo informativo para la UI.
func MonthlyInterest(principalSats int64, annualRate decimal.Decimal) int64 {
	monthly := annualRate.Div(decimal.NewFromInt(1200)) // % anual → fracción mensual
	return decimal.NewFromInt(principalSats).Mul(monthly).IntPart()
}

func toLoanResponse(l *entity.Loan) *dto.LoanResponse {
	if l == nil {
		return nil
	}
	return &dto.LoanResponse{
		ID:                l.ID,
		ActorID:           l.ActorID,
		Title:             l.Title,
		Description:       l.Description,
		PrincipalSats:     l.PrincipalSats,
		InterestRate:      l.InterestRate,
		TermMonths:        l.TermMonths,
		CollateralAssetID: l.CollateralAssetID,
		Status:            string(l.Status),
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toLoanList(list []*entity.Loan) []dto.LoanResponse {
	items := make([]dto.LoanResponse, 0, len(list))
	for _, l := range list {
		items = append(items, *toLoanResponse(l))
	}
	return items
}
