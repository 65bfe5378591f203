package payment

import (
	"context"

	"github.com/shopspring/decimal"
)

// Intent is the opaque confirmation handle a client completes the charge
// with. Settlement happens on the processor's side and is out of scope.
type Intent struct {
	ID           string          `json:"id"`
	ClientSecret string          `json:"client_secret"`
	Amount       decimal.Decimal `json:"amount"`
	Currency     string          `json:"currency"`
}

// Processor is the external payment collaborator. Implementations must not
// write any local state.
type Processor interface {
	CreateIntent(ctx context.Context, amount decimal.Decimal, currency string) (*Intent, error)
}
