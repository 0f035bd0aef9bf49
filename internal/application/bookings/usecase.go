// Package bookings calcula disponibilidad y crea reservas sobre assets
// (rentas) y services (citas). Los intervalos son semiabiertos [from, to).
package bookings

import (
	"time"

	"github.com/google/uuid"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// maxRange tope del rango consultable para evitar respuestas enormes.
const maxRange = 92 * 24 * time.Hour

// UseCase casos de uso de disponibilidad y reservas.
type UseCase struct {
	bookingRepo repository.BookingRepository
	assetRepo   repository.AssetRepository
	serviceRepo repository.ServiceRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	bookingRepo repository.BookingRepository,
	assetRepo repository.AssetRepository,
	serviceRepo repository.ServiceRepository,
) *UseCase {
	return &UseCase{bookingRepo: bookingRepo, assetRepo: assetRepo, serviceRepo: serviceRepo}
}

// Availability corta el rango [From, To) en slots del período y marca cada
// slot como libre u ocupado según las reservas existentes no canceladas.
func (uc *UseCase) Availability(in dto.AvailabilityRequest) (*dto.AvailabilityResponse, error) {
	if in.From.IsZero() || in.To.IsZero() || !in.From.Before(in.To) {
		return nil, domain.ErrInvalidInput
	}
	if in.To.Sub(in.From) > maxRange {
		return nil, domain.ErrInvalidInput
	}

	period, err := uc.resolvePeriod(in.EntityType, in.EntityID, in.Period)
	if err != nil {
		return nil, err
	}

	existing, err := uc.bookingRepo.ListOverlapping(in.EntityType, in.EntityID, in.From, in.To)
	if err != nil {
		return nil, err
	}

	slots := sliceRange(in.From, in.To, period.Duration(), existing)
	free := 0
	for _, s := range slots {
		if s.Free {
			free++
		}
	}
	return &dto.AvailabilityResponse{
		EntityType: in.EntityType,
		EntityID:   in.EntityID,
		Period:     string(period),
		Slots:      slots,
		FreeCount:  free,
	}, nil
}

// Create reserva el intervalo si no choca con otra reserva activa.
// El conflicto se reporta como ErrBookingConflict (HTTP 409).
func (uc *UseCase) Create(bookerActorID string, in dto.CreateBookingRequest) (*dto.BookingResponse, error) {
	if in.StartsAt.IsZero() || in.EndsAt.IsZero() || !in.StartsAt.Before(in.EndsAt) {
		return nil, domain.ErrInvalidInput
	}
	if in.EndsAt.Sub(in.StartsAt) > maxRange {
		return nil, domain.ErrInvalidInput
	}
	if _, err := uc.resolvePeriod(in.EntityType, in.EntityID, ""); err != nil {
		return nil, err
	}

	existing, err := uc.bookingRepo.ListOverlapping(in.EntityType, in.EntityID, in.StartsAt, in.EndsAt)
	if err != nil {
		return nil, err
	}
	for _, b := range existing {
		if b.Overlaps(in.StartsAt, in.EndsAt) {
			return nil, domain.ErrBookingConflict
		}
	}

	b := &entity.Booking{
		ID:            uuid.New().String(),
		EntityType:    in.EntityType,
		EntityID:      in.EntityID,
		BookerActorID: bookerActorID,
		StartsAt:      in.StartsAt,
		EndsAt:        in.EndsAt,
		Status:        entity.BookingPending,
		CreatedAt:     time.Now(),
	}
	if err := uc.bookingRepo.Create(b); err != nil {
		return nil, err
	}
	return toBookingResponse(b), nil
}

// Confirm pasa la reserva a confirmed; solo mientras está pendiente.
func (uc *UseCase) Confirm(callerActorID, id string) (*dto.BookingResponse, error) {
	return uc.setStatus(callerActorID, id, entity.BookingConfirmed, entity.BookingPending)
}

// Cancel cancela la reserva; las canceladas dejan de bloquear el calendario.
func (uc *UseCase) Cancel(callerActorID, id string) (*dto.BookingResponse, error) {
	return uc.setStatus(callerActorID, id, entity.BookingCancelled, entity.BookingPending, entity.BookingConfirmed)
}

// ListByBooker lista las reservas hechas por un actor.
func (uc *UseCase) ListByBooker(actorID string, page dto.PageRequest) ([]dto.BookingResponse, int, error) {
	list, total, err := uc.bookingRepo.ListByBooker(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.BookingResponse, 0, len(list))
	for _, b := range list {
		items = append(items, *toBookingResponse(b))
	}
	return items, total, nil
}

func (uc *UseCase) setStatus(callerActorID, id, target string, allowedFrom ...string) (*dto.BookingResponse, error) {
	b, err := uc.bookingRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, nil
	}
	if b.BookerActorID != callerActorID {
		owner, err := uc.ownerActor(b.EntityType, b.EntityID)
		if err != nil {
			return nil, err
		}
		if owner != callerActorID {
			return nil, domain.ErrForbidden
		}
	}
	ok := false
	for _, s := range allowedFrom {
		if b.Status == s {
			ok = true
			break
		}
	}
	if !ok {
		return nil, domain.ErrInvalidTransition
	}
	if err := uc.bookingRepo.UpdateStatus(id, target); err != nil {
		return nil, err
	}
	b.Status = target
	return toBookingResponse(b), nil
}

// resolvePeriod valida la entidad y resuelve el período: el pedido si viene,
// o el propio de la entidad (RentalPeriod del asset, hourly para services).
func (uc *UseCase) resolvePeriod(entityType, entityID, requested string) (entity.PeriodType, error) {
	var fallback entity.PeriodType
	switch entityType {
	case "asset":
		a, err := uc.assetRepo.GetByID(entityID)
		if err != nil {
			return "", err
		}
		if a == nil || a.Status != entity.StatusActive {
			return "", domain.ErrNotFound
		}
		fallback = a.RentalPeriod
	case "service":
		s, err := uc.serviceRepo.GetByID(entityID)
		if err != nil {
			return "", err
		}
		if s == nil || s.Status != entity.StatusActive {
			return "", domain.ErrNotFound
		}
		fallback = entity.PeriodHourly
	default:
		return "", domain.ErrUnknownEntity
	}
	if requested == "" {
		return fallback, nil
	}
	p, ok := entity.ParsePeriodType(requested)
	if !ok {
		return "", domain.ErrInvalidInput
	}
	return p, nil
}

func (uc *UseCase) ownerActor(entityType, entityID string) (string, error) {
	switch entityType {
	case "asset":
		a, err := uc.assetRepo.GetByID(entityID)
		if err != nil || a == nil {
			return "", err
		}
		return a.ActorID, nil
	case "service":
		s, err := uc.serviceRepo.GetByID(entityID)
		if err != nil || s == nil {
			return "", err
		}
		return s.ActorID, nil
	}
	return "", domain.ErrUnknownEntity
}

// sliceRange corta [from, to) en slots consecutivos de tamaño step. El último
// slot se recorta a to si el rango no es múltiplo exacto del período.
func sliceRange(from, to time.Time, step time.Duration, existing []*entity.Booking) []dto.Slot {
	slots := make([]dto.Slot, 0, 16)
	for cur := from; cur.Before(to); cur = cur.Add(step) {
		end := cur.Add(step)
		if end.After(to) {
			end = to
		}
		free := true
		for _, b := range existing {
			if b.Overlaps(cur, end) {
				free = false
				break
			}
		}
		slots = append(slots, dto.Slot{StartsAt: cur, EndsAt: end, Free: free})
	}
	return slots
}

func toBookingResponse(b *entity.Booking) *dto.BookingResponse {
	return &dto.BookingResponse{
		ID:            b.ID,
		EntityType:    b.EntityType,
		EntityID:      b.EntityID,
		BookerActorID: b.BookerActorID,
		StartsAt:      b.StartsAt,
		EndsAt:        b.EndsAt,
		Status:        b.Status,
		CreatedAt:     b.CreatedAt,
	}
}
