package mocks

import (
	"context"

	"ticketbari-api/internal/model"

	"github.com/stretchr/testify/mock"
)

type ListingCacheMock struct {
	mock.Mock
}

func NewListingCacheMock() *ListingCacheMock {
	return &ListingCacheMock{}
}

func (m *ListingCacheMock) GetTickets(ctx context.Context, key string) ([]*model.Ticket, bool, error) {
	args := m.Called(ctx, key)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).([]*model.Ticket), args.Bool(1), args.Error(2)
}

func (m *ListingCacheMock) SetTickets(ctx context.Context, key string, tickets []*model.Ticket) error {
	args := m.Called(ctx, key, tickets)
	return args.Error(0)
}

func (m *ListingCacheMock) Invalidate(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
