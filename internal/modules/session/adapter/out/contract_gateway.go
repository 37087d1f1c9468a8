package out

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	sessionout "github.com/hara-desu/ForestOnchain/internal/modules/session/port/out"
	"github.com/hara-desu/ForestOnchain/internal/platform/chain"
)

type ContractGateway struct {
	reader chain.Reader
}

func NewContractGateway(reader chain.Reader) sessionout.SessionGateway {
	return &ContractGateway{reader: reader}
}

func (g *ContractGateway) CurrentSession(ctx context.Context, account string) (domain.UserSession, error) {
	values, err := g.reader.Call(ctx, "getCurrentUserSession", account)
	if err != nil {
		return domain.UserSession{}, err
	}
	s, err := chain.UserSession(values)
	if err != nil {
		return domain.UserSession{}, err
	}
	return domain.UserSession{
		ActivityType: s.ActivityType,
		StartTime:    s.StartTime.Int64(),
		EndTime:      s.EndTime.Int64(),
		Active:       s.Active,
		Owner:        s.Owner.Hex(),
	}, nil
}

func (g *ContractGateway) BreakNeeded(ctx context.Context, account string) (bool, error) {
	values, err := g.reader.Call(ctx, "getBreakNeeded", account)
	if err != nil {
		return false, err
	}
	return chain.Bool(values)
}
