package service

import (
	"context"
	"fmt"
	"math/big"

	"github.com/hashicorp/go-hclog"

	"github.com/hara-desu/ForestOnchain/internal/modules/goal/domain"
	goalout "github.com/hara-desu/ForestOnchain/internal/modules/goal/port/out"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

type GoalService struct {
	clock   clock.Clock
	gateway goalout.GoalGateway
	logger  hclog.Logger
}

func NewGoalService(clock clock.Clock, gateway goalout.GoalGateway, logger hclog.Logger) *GoalService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &GoalService{clock: clock, gateway: gateway, logger: logger.Named("goal")}
}

// Snapshot reads the activity list and then the slots for exactly that
// list. A failed slot read degrades to an all-missing batch.
func (s *GoalService) Snapshot(ctx context.Context, account string) (domain.Batch, error) {
	if account == "" {
		return domain.Batch{}, nil
	}
	activities, err := s.gateway.ActivityTypes(ctx, account)
	if err != nil {
		return domain.Batch{}, fmt.Errorf("read activity types: %w", err)
	}
	batch := domain.Batch{ActivityTypes: activities}
	if len(activities) == 0 {
		return batch, nil
	}
	slots, err := s.gateway.ReadGoals(ctx, account, activities)
	if err != nil {
		stale := &apperrors.StaleReadError{Missing: 3 * len(activities), Total: 3 * len(activities), Cause: err}
		s.logger.Warn("goal reads failed, showing zero values", "account", account, "error", stale)
		return batch, nil
	}
	batch.Slots = slots
	if missing := domain.MissingSlots(batch); missing > 0 {
		s.logger.Warn("goal reads incomplete", "account", account, "error", &apperrors.StaleReadError{Missing: missing, Total: 3 * len(activities)})
	}
	return batch, nil
}

// Goals aggregates a fresh snapshot with keep.
func (s *GoalService) Goals(ctx context.Context, account string, keep domain.Predicate) ([]domain.Goal, domain.Batch, error) {
	batch, err := s.Snapshot(ctx, account)
	if err != nil {
		return nil, domain.Batch{}, err
	}
	return domain.Aggregate(batch, keep, clock.Unix(s.clock)), batch, nil
}

func (s *GoalService) Now() int64 {
	return clock.Unix(s.clock)
}

func (s *GoalService) CostPerTree(ctx context.Context) (*big.Int, error) {
	cost, err := s.gateway.CostPerTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("read cost per tree: %w", err)
	}
	return cost, nil
}
