package service

import (
	"context"

	"ticketbari-api/internal/auth"
	"ticketbari-api/internal/cache"
	"ticketbari-api/internal/model"
	"ticketbari-api/internal/repository"
	apperrors "ticketbari-api/pkg/app_errors"
	"ticketbari-api/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// latestTicketsLimit caps the home-page "latest" strip.
const latestTicketsLimit = 8

type TicketService interface {
	Create(ctx context.Context, vendorEmail string, req model.CreateTicketRequest) (*model.Ticket, error)
	GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error)
	ListByVendor(ctx context.Context, vendorEmail string) ([]*model.Ticket, error)
	ListApproved(ctx context.Context) ([]*model.Ticket, error)
	ListAdvertised(ctx context.Context) ([]*model.Ticket, error)
	ListLatest(ctx context.Context) ([]*model.Ticket, error)
	SetStatus(ctx context.Context, id uuid.UUID, status model.TicketStatus) (*model.Ticket, error)
	SetAdvertised(ctx context.Context, id uuid.UUID, advertised bool) error
	Delete(ctx context.Context, id uuid.UUID, requester auth.Identity) error
}

type TicketServiceImpl struct {
	repo     repository.TicketRepository
	listings cache.ListingCache
}

func NewTicketService(repo repository.TicketRepository, listings cache.ListingCache) TicketService {
	return &TicketServiceImpl{repo: repo, listings: listings}
}

// Create always inserts with status pending; moderation state is never
// client-controlled.
func (s *TicketServiceImpl) Create(ctx context.Context, vendorEmail string, req model.CreateTicketRequest) (*model.Ticket, error) {
	if !req.Price.IsPositive() || req.Quantity < 1 {
		return nil, apperrors.ErrInvalidInput
	}

	ticket := &model.Ticket{
		VendorEmail: vendorEmail,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Quantity:    req.Quantity,
		ImageURL:    req.ImageURL,
		EventDate:   req.EventDate,
		Location:    req.Location,
	}

	return s.repo.Create(ctx, ticket)
}

func (s *TicketServiceImpl) GetByID(ctx context.Context, id uuid.UUID) (*model.Ticket, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TicketServiceImpl) ListByVendor(ctx context.Context, vendorEmail string) ([]*model.Ticket, error) {
	return s.repo.ListByVendor(ctx, vendorEmail)
}

func (s *TicketServiceImpl) ListApproved(ctx context.Context) ([]*model.Ticket, error) {
	return s.cachedListing(ctx, cache.KeyApprovedTickets, func() ([]*model.Ticket, error) {
		return s.repo.ListApproved(ctx)
	})
}

func (s *TicketServiceImpl) ListAdvertised(ctx context.Context) ([]*model.Ticket, error) {
	return s.cachedListing(ctx, cache.KeyAdvertisedTickets, func() ([]*model.Ticket, error) {
		return s.repo.ListAdvertised(ctx, model.MaxAdvertisedTickets)
	})
}

func (s *TicketServiceImpl) ListLatest(ctx context.Context) ([]*model.Ticket, error) {
	return s.cachedListing(ctx, cache.KeyLatestTickets, func() ([]*model.Ticket, error) {
		return s.repo.ListLatest(ctx, latestTicketsLimit)
	})
}

// cachedListing is a read-through: cache errors degrade to a direct read.
func (s *TicketServiceImpl) cachedListing(ctx context.Context, key string, load func() ([]*model.Ticket, error)) ([]*model.Ticket, error) {
	cached, found, err := s.listings.GetTickets(ctx, key)
	if err != nil {
		logger.WithComponent("ticket_service").Warn("listing cache read failed",
			zap.String("key", key), zap.Error(err))
	} else if found {
		return cached, nil
	}

	tickets, err := load()
	if err != nil {
		return nil, err
	}

	if err := s.listings.SetTickets(ctx, key, tickets); err != nil {
		logger.WithComponent("ticket_service").Warn("listing cache write failed",
			zap.String("key", key), zap.Error(err))
	}

	return tickets, nil
}

func (s *TicketServiceImpl) SetStatus(ctx context.Context, id uuid.UUID, status model.TicketStatus) (*model.Ticket, error) {
	if !status.IsModerationDecision() {
		return nil, apperrors.ErrInvalidStatus
	}

	ticket, err := s.repo.SetStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}

	s.invalidateListings(ctx)
	return ticket, nil
}

func (s *TicketServiceImpl) SetAdvertised(ctx context.Context, id uuid.UUID, advertised bool) error {
	if err := s.repo.SetAdvertised(ctx, id, advertised); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	return nil
}

// Delete is allowed for the owning vendor; admins may delete any ticket.
func (s *TicketServiceImpl) Delete(ctx context.Context, id uuid.UUID, requester auth.Identity) error {
	ticket, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !auth.OwnsSubject(requester, ticket.VendorEmail) {
		return apperrors.ErrForbidden
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *TicketServiceImpl) invalidateListings(ctx context.Context) {
	if err := s.listings.Invalidate(ctx); err != nil {
		logger.WithComponent("ticket_service").Warn("failed to invalidate listing cache", zap.Error(err))
	}
}
