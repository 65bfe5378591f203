package service

import (
	"context"

	"ticketbari-api/internal/cache"
	"ticketbari-api/internal/database"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/monitoring"
	"ticketbari-api/internal/payment"
	"ticketbari-api/internal/repository"
	apperrors "ticketbari-api/pkg/app_errors"
	"ticketbari-api/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

type PaymentService interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal) (*payment.Intent, error)
	Record(ctx context.Context, userEmail string, req model.RecordPaymentRequest) (*model.Payment, error)
	ListForUser(ctx context.Context, userEmail string) ([]*model.Payment, error)
	VendorStats(ctx context.Context, vendorEmail string) (*model.VendorStats, error)
}

type PaymentServiceImpl struct {
	repo        repository.PaymentRepository
	bookingRepo repository.BookingRepository
	ticketRepo  repository.TicketRepository
	txm         database.TxManager
	processor   payment.Processor
	currency    string
	listings    cache.ListingCache
}

func NewPaymentService(
	repo repository.PaymentRepository,
	bookingRepo repository.BookingRepository,
	ticketRepo repository.TicketRepository,
	txm database.TxManager,
	processor payment.Processor,
	currency string,
	listings cache.ListingCache,
) PaymentService {
	return &PaymentServiceImpl{
		repo:        repo,
		bookingRepo: bookingRepo,
		ticketRepo:  ticketRepo,
		txm:         txm,
		processor:   processor,
		currency:    currency,
		listings:    listings,
	}
}

// CreateIntent obtains a client confirmation handle from the processor. No
// local state changes until the charge is confirmed and recorded.
func (s *PaymentServiceImpl) CreateIntent(ctx context.Context, amount decimal.Decimal) (*payment.Intent, error) {
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidInput
	}
	return s.processor.CreateIntent(ctx, amount, s.currency)
}

// Record persists a confirmed charge: the payment row, the booking's paid
// transition and the inventory decrement commit or roll back as one
// transaction. The unique transaction id makes replays fail before any write
// sticks, so a charge can never decrement inventory twice.
func (s *PaymentServiceImpl) Record(ctx context.Context, userEmail string, req model.RecordPaymentRequest) (*model.Payment, error) {
	if !req.Amount.IsPositive() {
		return nil, apperrors.ErrInvalidInput
	}

	booking, err := s.bookingRepo.FindByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}

	if booking.UserEmail != userEmail {
		return nil, apperrors.ErrForbidden
	}

	if !booking.Status.CanTransitionTo(model.BookingStatusPaid) {
		return nil, apperrors.ErrInvalidTransition
	}

	recorded := &model.Payment{
		UserEmail:     booking.UserEmail,
		BookingID:     booking.ID,
		TicketID:      booking.TicketID,
		VendorEmail:   booking.VendorEmail,
		Quantity:      booking.Quantity,
		Amount:        req.Amount,
		TransactionID: req.TransactionID,
	}

	err = s.txm.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := s.repo.Create(ctx, tx, recorded); err != nil {
			return err
		}
		if _, err := s.bookingRepo.MarkPaid(ctx, tx, booking.ID, req.TransactionID); err != nil {
			return err
		}
		return s.ticketRepo.DecrementQuantity(ctx, tx, booking.TicketID, booking.Quantity)
	})
	if err != nil {
		return nil, err
	}

	if err := s.listings.Invalidate(ctx); err != nil {
		logger.WithComponent("payment_service").Warn("failed to invalidate listing cache", zap.Error(err))
	}

	monitoring.PaymentRecorded()
	return recorded, nil
}

func (s *PaymentServiceImpl) ListForUser(ctx context.Context, userEmail string) ([]*model.Payment, error) {
	return s.repo.ListByUser(ctx, userEmail)
}

func (s *PaymentServiceImpl) VendorStats(ctx context.Context, vendorEmail string) (*model.VendorStats, error) {
	ticketCount, err := s.ticketRepo.CountByVendor(ctx, vendorEmail)
	if err != nil {
		return nil, err
	}

	paymentCount, revenue, err := s.repo.StatsByVendor(ctx, vendorEmail)
	if err != nil {
		return nil, err
	}

	return &model.VendorStats{
		VendorEmail:  vendorEmail,
		TicketCount:  ticketCount,
		PaymentCount: paymentCount,
		Revenue:      revenue,
	}, nil
}
