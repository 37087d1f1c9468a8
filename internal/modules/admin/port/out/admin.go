package out

import (
	"context"
	"math/big"

	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type AdminGateway interface {
	Owner(ctx context.Context) (string, error)
	CostPerTree(ctx context.Context) (*big.Int, error)
	Balance(ctx context.Context) (*big.Int, error)
	IsAddress(s string) bool
}

type Transactions interface {
	New() *tx.Lifecycle
}
