package out

import (
	"context"
	"math/big"

	adminout "github.com/hara-desu/ForestOnchain/internal/modules/admin/port/out"
	"github.com/hara-desu/ForestOnchain/internal/platform/chain"
)

// BalanceReader reports the contract's own balance.
type BalanceReader interface {
	Balance(ctx context.Context) (*big.Int, error)
}

type ContractGateway struct {
	reader  chain.Reader
	balance BalanceReader
}

func NewContractGateway(reader chain.Reader, balance BalanceReader) adminout.AdminGateway {
	return &ContractGateway{reader: reader, balance: balance}
}

func (g *ContractGateway) Owner(ctx context.Context) (string, error) {
	values, err := g.reader.Call(ctx, "CONTRACT_OWNER")
	if err != nil {
		return "", err
	}
	return chain.Address(values)
}

func (g *ContractGateway) CostPerTree(ctx context.Context) (*big.Int, error) {
	values, err := g.reader.Call(ctx, "cost_per_tree")
	if err != nil {
		return nil, err
	}
	return chain.BigInt(values)
}

func (g *ContractGateway) Balance(ctx context.Context) (*big.Int, error) {
	return g.balance.Balance(ctx)
}

func (g *ContractGateway) IsAddress(s string) bool {
	return chain.IsAddress(s)
}
