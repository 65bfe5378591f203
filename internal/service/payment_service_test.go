package service_test

import (
	"context"
	"testing"

	cacheMocks "ticketbari-api/internal/cache/mocks"
	dbMocks "ticketbari-api/internal/database/mocks"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/payment"
	paymentMocks "ticketbari-api/internal/payment/mocks"
	repoMocks "ticketbari-api/internal/repository/mocks"
	"ticketbari-api/internal/service"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type paymentServiceMocks struct {
	repo        *repoMocks.PaymentRepositoryMock
	bookingRepo *repoMocks.BookingRepositoryMock
	ticketRepo  *repoMocks.TicketRepositoryMock
	processor   *paymentMocks.ProcessorMock
	listings    *cacheMocks.ListingCacheMock
}

func newPaymentService() (service.PaymentService, *paymentServiceMocks) {
	m := &paymentServiceMocks{
		repo:        repoMocks.NewPaymentRepositoryMock(),
		bookingRepo: repoMocks.NewBookingRepositoryMock(),
		ticketRepo:  repoMocks.NewTicketRepositoryMock(),
		processor:   paymentMocks.NewProcessorMock(),
		listings:    cacheMocks.NewListingCacheMock(),
	}
	svc := service.NewPaymentService(
		m.repo, m.bookingRepo, m.ticketRepo,
		dbMocks.NewTxManagerFake(), m.processor, "BDT", m.listings,
	)
	return svc, m
}

func TestPaymentService_CreateIntent(t *testing.T) {
	ctx := context.Background()

	t.Run("delegates with configured currency", func(t *testing.T) {
		svc, m := newPaymentService()
		amount := decimal.NewFromInt(1500)

		m.processor.On("CreateIntent", ctx, amount, "BDT").Return(
			&payment.Intent{ID: "pi_1", ClientSecret: "cs_1", Amount: amount, Currency: "BDT"}, nil).Once()

		intent, err := svc.CreateIntent(ctx, amount)
		require.NoError(t, err)
		assert.Equal(t, "pi_1", intent.ID)
		m.processor.AssertExpectations(t)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, m := newPaymentService()

		_, err := svc.CreateIntent(ctx, decimal.Zero)
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		m.processor.AssertNotCalled(t, "CreateIntent", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestPaymentService_Record(t *testing.T) {
	ctx := context.Background()
	bookingID := uuid.New()
	ticketID := uuid.New()

	acceptedBooking := func() *model.Booking {
		return &model.Booking{
			ID:          bookingID,
			UserEmail:   "user@example.com",
			TicketID:    ticketID,
			VendorEmail: "vendor@example.com",
			Quantity:    3,
			UnitPrice:   decimal.NewFromInt(500),
			Status:      model.BookingStatusAccepted,
		}
	}
	req := model.RecordPaymentRequest{
		BookingID:     bookingID,
		Amount:        decimal.NewFromInt(1500),
		TransactionID: "txn_abc",
	}

	t.Run("records payment, marks booking paid and decrements stock", func(t *testing.T) {
		svc, m := newPaymentService()
		booking := acceptedBooking()

		m.bookingRepo.On("FindByID", ctx, bookingID).Return(booking, nil).Once()
		m.repo.On("Create", ctx, mock.Anything, mock.MatchedBy(func(p *model.Payment) bool {
			return p.BookingID == bookingID &&
				p.VendorEmail == "vendor@example.com" &&
				p.Quantity == 3 &&
				p.TransactionID == "txn_abc"
		})).Return(&model.Payment{BookingID: bookingID}, nil).Once()
		m.bookingRepo.On("MarkPaid", ctx, mock.Anything, bookingID, "txn_abc").Return(
			&model.Booking{ID: bookingID, Status: model.BookingStatusPaid}, nil).Once()
		m.ticketRepo.On("DecrementQuantity", ctx, mock.Anything, ticketID, 3).Return(nil).Once()
		m.listings.On("Invalidate", ctx).Return(nil).Once()

		recorded, err := svc.Record(ctx, "user@example.com", req)
		require.NoError(t, err)
		assert.Equal(t, "txn_abc", recorded.TransactionID)
		m.repo.AssertExpectations(t)
		m.bookingRepo.AssertExpectations(t)
		m.ticketRepo.AssertExpectations(t)
	})

	t.Run("duplicate transaction id aborts the whole write", func(t *testing.T) {
		svc, m := newPaymentService()

		m.bookingRepo.On("FindByID", ctx, bookingID).Return(acceptedBooking(), nil).Once()
		m.repo.On("Create", ctx, mock.Anything, mock.Anything).Return(nil, apperrors.ErrDuplicatePayment).Once()

		_, err := svc.Record(ctx, "user@example.com", req)
		assert.ErrorIs(t, err, apperrors.ErrDuplicatePayment)
		m.bookingRepo.AssertNotCalled(t, "MarkPaid", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
		m.ticketRepo.AssertNotCalled(t, "DecrementQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("sold out during checkout rolls back", func(t *testing.T) {
		svc, m := newPaymentService()

		m.bookingRepo.On("FindByID", ctx, bookingID).Return(acceptedBooking(), nil).Once()
		m.repo.On("Create", ctx, mock.Anything, mock.Anything).Return(&model.Payment{}, nil).Once()
		m.bookingRepo.On("MarkPaid", ctx, mock.Anything, bookingID, "txn_abc").Return(
			&model.Booking{ID: bookingID, Status: model.BookingStatusPaid}, nil).Once()
		m.ticketRepo.On("DecrementQuantity", ctx, mock.Anything, ticketID, 3).Return(
			apperrors.ErrInsufficientInventory).Once()

		_, err := svc.Record(ctx, "user@example.com", req)
		assert.ErrorIs(t, err, apperrors.ErrInsufficientInventory)
		m.listings.AssertNotCalled(t, "Invalidate", mock.Anything)
	})

	t.Run("only the booking owner can pay", func(t *testing.T) {
		svc, m := newPaymentService()

		m.bookingRepo.On("FindByID", ctx, bookingID).Return(acceptedBooking(), nil).Once()

		_, err := svc.Record(ctx, "other@example.com", req)
		assert.ErrorIs(t, err, apperrors.ErrForbidden)
		m.repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("paid booking cannot be paid again", func(t *testing.T) {
		svc, m := newPaymentService()

		paid := acceptedBooking()
		paid.Status = model.BookingStatusPaid
		m.bookingRepo.On("FindByID", ctx, bookingID).Return(paid, nil).Once()

		_, err := svc.Record(ctx, "user@example.com", req)
		assert.ErrorIs(t, err, apperrors.ErrInvalidTransition)
	})

	t.Run("rejects non-positive amount", func(t *testing.T) {
		svc, m := newPaymentService()

		_, err := svc.Record(ctx, "user@example.com", model.RecordPaymentRequest{
			BookingID:     bookingID,
			Amount:        decimal.NewFromInt(-10),
			TransactionID: "txn_neg",
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		m.bookingRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestPaymentService_VendorStats(t *testing.T) {
	ctx := context.Background()

	svc, m := newPaymentService()
	m.ticketRepo.On("CountByVendor", ctx, "vendor@example.com").Return(4, nil).Once()
	m.repo.On("StatsByVendor", ctx, "vendor@example.com").Return(9, decimal.NewFromInt(4500), nil).Once()

	stats, err := svc.VendorStats(ctx, "vendor@example.com")
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TicketCount)
	assert.Equal(t, 9, stats.PaymentCount)
	assert.True(t, stats.Revenue.Equal(decimal.NewFromInt(4500)))
}
