// Package payments inicia pagos Lightning sobre cualquier entidad registrada:
// compra de unidades para product/service, monto libre (donación) para el
// resto. No hay liquidación: el pago queda pending con su factura adjunta.
package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/orangecat-xyz/orangecat-api/internal/application/dto"
	"github.com/orangecat-xyz/orangecat-api/internal/application/ports"
	"github.com/orangecat-xyz/orangecat-api/internal/domain"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/entity"
	"github.com/orangecat-xyz/orangecat-api/internal/domain/repository"
)

// maxQuantity tope de unidades por pedido.
const maxQuantity = 1000

// UseCase caso de uso de iniciación de pagos.
type UseCase struct {
	refRepo     repository.EntityRefRepository
	productRepo repository.ProductRepository
	serviceRepo repository.ServiceRepository
	paymentRepo repository.PaymentRepository
	txRepo      repository.TransactionRepository
	timeline    repository.TimelineRepository
	txRunner    TxRunner
	invoices    ports.InvoiceProvider
	log         zerolog.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	refRepo repository.EntityRefRepository,
	productRepo repository.ProductRepository,
	serviceRepo repository.ServiceRepository,
	paymentRepo repository.PaymentRepository,
	txRepo repository.TransactionRepository,
	timeline repository.TimelineRepository,
	txRunner TxRunner,
	invoices ports.InvoiceProvider,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		refRepo:     refRepo,
		productRepo: productRepo,
		serviceRepo: serviceRepo,
		paymentRepo: paymentRepo,
		txRepo:      txRepo,
		timeline:    timeline,
		txRunner:    txRunner,
		invoices:    invoices,
		log:         log,
	}
}

// Initiate crea pedido, pago y asiento en una transacción y luego pide la
// factura al proveedor Lightning. Si el proveedor falla, el pago queda
// pending sin factura y el cliente puede reintentar la emisión.
func (uc *UseCase) Initiate(ctx context.Context, payerActorID string, in dto.InitiatePaymentRequest) (*dto.InitiatePaymentResponse, error) {
	if !entity.IsRegisteredEntity(in.EntityType) {
		return nil, domain.ErrUnknownEntity
	}

	ownerActorID, err := uc.refRepo.OwnerActor(in.EntityType, in.EntityID)
	if err != nil {
		return nil, err
	}
	if ownerActorID == "" {
		return nil, domain.ErrNotFound
	}
	if ownerActorID == payerActorID {
		// Pagarse a uno mismo no tiene sentido contable.
		return nil, domain.ErrInvalidInput
	}

	qty, unitPrice, err := uc.resolvePrice(in)
	if err != nil {
		return nil, err
	}
	total := int64(qty) * unitPrice

	now := time.Now()
	order := &entity.Order{
		ID:            uuid.New().String(),
		PayerActorID:  payerActorID,
		EntityType:    in.EntityType,
		EntityID:      in.EntityID,
		Quantity:      qty,
		UnitPriceSats: unitPrice,
		TotalSats:     total,
		CreatedAt:     now,
	}
	payment := &entity.Payment{
		ID:           uuid.New().String(),
		OrderID:      order.ID,
		PayerActorID: payerActorID,
		AmountSats:   total,
		Status:       entity.PaymentPending,
		CreatedAt:    now,
	}
	ledger := &entity.Transaction{
		ID:         uuid.New().String(),
		ActorID:    ownerActorID,
		PaymentID:  payment.ID,
		AmountSats: total,
		Kind:       entity.TxKindInvoiceCreated,
		CreatedAt:  now,
	}

	err = uc.txRunner.Run(ctx, func(
		orderRepo repository.OrderRepository,
		paymentRepo repository.PaymentRepository,
		txRepo repository.TransactionRepository,
	) error {
		if err := orderRepo.Create(order); err != nil {
			return err
		}
		if err := paymentRepo.Create(payment); err != nil {
			return err
		}
		return txRepo.Create(ledger)
	})
	if err != nil {
		return nil, err
	}

	memo := fmt.Sprintf("orangecat %s %s", in.EntityType, in.EntityID)
	inv, err := uc.invoices.CreateInvoice(ctx, total, memo)
	if err != nil {
		uc.log.Error().Err(err).Str("payment_id", payment.ID).
			Msg("proveedor lightning no emitió la factura")
	} else {
		if err := uc.paymentRepo.AttachInvoice(payment.ID, inv.Bolt11, inv.PaymentHash); err != nil {
			return nil, err
		}
		payment.Invoice = inv.Bolt11
		payment.PaymentHash = inv.PaymentHash
	}

	uc.recordInitiated(payerActorID, in.EntityType, in.EntityID, payment.ID)

	return &dto.InitiatePaymentResponse{
		Order:   *toOrderResponse(order),
		Payment: *toPaymentResponse(payment),
	}, nil
}

// GetPayment obtiene un pago; solo visible para su pagador.
func (uc *UseCase) GetPayment(callerActorID, id string) (*dto.PaymentResponse, error) {
	p, err := uc.paymentRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	if p.PayerActorID != callerActorID {
		return nil, domain.ErrForbidden
	}
	return toPaymentResponse(p), nil
}

// ListByPayer lista los pagos iniciados por el actor.
func (uc *UseCase) ListByPayer(actorID string, page dto.PageRequest) ([]dto.PaymentResponse, int, error) {
	list, total, err := uc.paymentRepo.ListByPayer(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.PaymentResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toPaymentResponse(p))
	}
	return items, total, nil
}

// ListLedger lista los asientos del libro del actor beneficiario.
func (uc *UseCase) ListLedger(actorID string, page dto.PageRequest) ([]dto.TransactionResponse, int, error) {
	list, total, err := uc.txRepo.ListByActor(actorID, page.Limit, page.Offset)
	if err != nil {
		return nil, 0, err
	}
	items := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		items = append(items, dto.TransactionResponse{
			ID:         t.ID,
			ActorID:    t.ActorID,
			PaymentID:  t.PaymentID,
			AmountSats: t.AmountSats,
			Kind:       t.Kind,
			CreatedAt:  t.CreatedAt,
		})
	}
	return items, total, nil
}

// resolvePrice fija cantidad y precio unitario: para entidades con precio
// unitario manda la entidad (AmountSats se ignora); para el resto es monto
// libre con Quantity=1.
func (uc *UseCase) resolvePrice(in dto.InitiatePaymentRequest) (int, int64, error) {
	if !entity.IsUnitPriced(in.EntityType) {
		if in.AmountSats <= 0 {
			return 0, 0, domain.ErrInvalidInput
		}
		return 1, in.AmountSats, nil
	}

	qty := in.Quantity
	if qty == 0 {
		qty = 1
	}
	if qty < 1 || qty > maxQuantity {
		return 0, 0, domain.ErrInvalidInput
	}

	switch in.EntityType {
	case "product":
		p, err := uc.productRepo.GetByID(in.EntityID)
		if err != nil {
			return 0, 0, err
		}
		if p == nil || p.Status != entity.StatusActive {
			return 0, 0, domain.ErrNotFound
		}
		if p.Stock >= 0 && qty > p.Stock {
			return 0, 0, domain.ErrConflict
		}
		return qty, p.PriceSats, nil
	case "service":
		s, err := uc.serviceRepo.GetByID(in.EntityID)
		if err != nil {
			return 0, 0, err
		}
		if s == nil || s.Status != entity.StatusActive {
			return 0, 0, domain.ErrNotFound
		}
		return qty, s.HourlyRateSats, nil
	}
	return 0, 0, domain.ErrUnknownEntity
}

// recordInitiated escribe el evento de timeline; si falla solo se loguea.
func (uc *UseCase) recordInitiated(actorID, entityType, entityID, paymentID string) {
	if uc.timeline == nil {
		return
	}
	err := uc.timeline.Create(&entity.TimelineEvent{
		ID:         uuid.New().String(),
		ActorID:    actorID,
		EventType:  entity.EventPaymentInitiated,
		EntityType: entityType,
		EntityID:   entityID,
		Title:      paymentID,
		CreatedAt:  time.Now(),
	})
	if err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo registrar el evento de timeline")
	}
}

func toOrderResponse(o *entity.Order) *dto.OrderResponse {
	return &dto.OrderResponse{
		ID:            o.ID,
		PayerActorID:  o.PayerActorID,
		EntityType:    o.EntityType,
		EntityID:      o.EntityID,
		Quantity:      o.Quantity,
		UnitPriceSats: o.UnitPriceSats,
		TotalSats:     o.TotalSats,
		CreatedAt:     o.CreatedAt,
	}
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		ID:           p.ID,
		OrderID:      p.OrderID,
		PayerActorID: p.PayerActorID,
		AmountSats:   p.AmountSats,
		Invoice:      p.Invoice,
		PaymentHash:  p.PaymentHash,
		Status:       p.Status,
		CreatedAt:    p.CreatedAt,
	}
}
