package out

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hara-desu/ForestOnchain/internal/modules/goal/domain"
	goalout "github.com/hara-desu/ForestOnchain/internal/modules/goal/port/out"
	"github.com/hara-desu/ForestOnchain/internal/platform/chain"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

// goalReads are issued per activity in the order Aggregate expects.
var goalReads = [domain.ReadsPerActivity]string{"getGoal", "getEndTime", "getStakedAmount"}

type ContractGateway struct {
	reader chain.Reader
}

func NewContractGateway(reader chain.Reader) goalout.GoalGateway {
	return &ContractGateway{reader: reader}
}

func (g *ContractGateway) ActivityTypes(ctx context.Context, account string) ([]string, error) {
	values, err := g.reader.Call(ctx, "getUserActivityTypes", account)
	if err != nil {
		return nil, err
	}
	return chain.Strings(values)
}

func (g *ContractGateway) ReadGoals(ctx context.Context, account string, activityTypes []string) ([]domain.Slot, error) {
	calls := make([]tx.Call, 0, len(activityTypes)*domain.ReadsPerActivity)
	for _, activity := range activityTypes {
		for _, method := range goalReads {
			calls = append(calls, tx.Call{Method: method, Args: []any{account, activity}})
		}
	}
	results, err := g.reader.BatchCall(ctx, calls)
	if err != nil {
		return nil, err
	}
	slots := make([]domain.Slot, len(results))
	for i, res := range results {
		if res.Err != nil {
			slots[i] = domain.Slot{Err: res.Err}
			continue
		}
		value, err := chain.BigInt(res.Values)
		if err != nil {
			slots[i] = domain.Slot{Err: fmt.Errorf("%s: %w", calls[i].Method, err)}
			continue
		}
		slots[i] = domain.Slot{OK: true, Value: value}
	}
	return slots, nil
}

func (g *ContractGateway) CostPerTree(ctx context.Context) (*big.Int, error) {
	values, err := g.reader.Call(ctx, "cost_per_tree")
	if err != nil {
		return nil, err
	}
	return chain.BigInt(values)
}
