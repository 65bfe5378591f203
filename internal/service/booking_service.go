package service

import (
	"context"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/monitoring"
	"ticketbari-api/internal/repository"
	apperrors "ticketbari-api/pkg/app_errors"

	"github.com/google/uuid"
)

type BookingService interface {
	Create(ctx context.Context, userEmail string, req model.CreateBookingRequest) (*model.Booking, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error)
	ListForUser(ctx context.Context, userEmail string) ([]*model.Booking, error)
	ListForVendor(ctx context.Context, vendorEmail string) ([]*model.Booking, error)
	SetDecision(ctx context.Context, id uuid.UUID, status model.BookingStatus, requester auth.Identity) (*model.Booking, error)
}

type BookingServiceImpl struct {
	repo       repository.BookingRepository
	ticketRepo repository.TicketRepository
}

func NewBookingService(repo repository.BookingRepository, ticketRepo repository.TicketRepository) BookingService {
	return &BookingServiceImpl{
		repo:       repo,
		ticketRepo: ticketRepo,
	}
}

// Create validates availability against the live ticket quantity and inserts
// a pending booking with the vendor and unit price snapshotted. Inventory is
// not reserved here; the decrement happens atomically at payment time, which
// is what keeps quantity from ever going negative under concurrent bookings.
func (s *BookingServiceImpl) Create(ctx context.Context, userEmail string, req model.CreateBookingRequest) (*model.Booking, error) {
	ticket, err := s.ticketRepo.FindByID(ctx, req.TicketID)
	if err != nil {
		return nil, err
	}

	// Hidden, rejected and fraud-flagged tickets are not bookable and not
	// distinguishable from missing ones.
	if ticket.Status != model.TicketStatusApproved || ticket.IsFraud {
		return nil, apperrors.ErrTicketNotFound
	}

	if ticket.Quantity < req.Quantity {
		return nil, apperrors.ErrInsufficientInventory
	}

	booking := &model.Booking{
		UserEmail:   userEmail,
		TicketID:    ticket.ID,
		VendorEmail: ticket.VendorEmail,
		TicketTitle: ticket.Title,
		Quantity:    req.Quantity,
		UnitPrice:   ticket.Price,
	}

	created, err := s.repo.Create(ctx, booking)
	if err != nil {
		return nil, err
	}

	monitoring.BookingCreated()
	return created, nil
}

func (s *BookingServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Booking, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *BookingServiceImpl) ListForUser(ctx context.Context, userEmail string) ([]*model.Booking, error) {
	return s.repo.ListByUser(ctx, userEmail)
}

func (s *BookingServiceImpl) ListForVendor(ctx context.Context, vendorEmail string) ([]*model.Booking, error) {
	return s.repo.ListByVendor(ctx, vendorEmail)
}

// SetDecision records the vendor's accept/reject verdict. Only the booking's
// vendor (or an admin) may decide, and only while the booking is pending.
func (s *BookingServiceImpl) SetDecision(ctx context.Context, id uuid.UUID, status model.BookingStatus, requester auth.Identity) (*model.Booking, error) {
	if !status.IsVendorDecision() {
		return nil, apperrors.ErrInvalidStatus
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !auth.OwnsSubject(requester, booking.VendorEmail) {
		return nil, apperrors.ErrForbidden
	}

	return s.repo.SetDecision(ctx, id, status)
}
