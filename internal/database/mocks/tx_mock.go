package mocks

import (
	"context"

	"github.com/jackc/pgx/v5"
)

// TxManagerFake runs the callback with a nil transaction handle. Repository
// mocks accept any tx value, so service tests can exercise transactional
// orchestration without a database.
type TxManagerFake struct {
	BeginErr error
}

func NewTxManagerFake() *TxManagerFake {
	return &TxManagerFake{}
}

func (f *TxManagerFake) WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if f.BeginErr != nil {
		return f.BeginErr
	}
	return fn(nil)
}
