package mocks

import (
	"context"

	"ticketbari-api/internal/payment"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

type ProcessorMock struct {
	mock.Mock
}

func NewProcessorMock() *ProcessorMock {
	return &ProcessorMock{}
}

func (m *ProcessorMock) CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*payment.Intent, error) {
	args := m.Called(ctx, amount, currency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*payment.Intent), args.Error(1)
}
