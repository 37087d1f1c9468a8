package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/hashicorp/go-hclog"

	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	sessionout "github.com/hara-desu/ForestOnchain/internal/modules/session/port/out"
	"github.com/hara-desu/ForestOnchain/internal/platform/clock"
	"github.com/hara-desu/ForestOnchain/internal/platform/countdown"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

type SessionService struct {
	clock   clock.Clock
	gateway sessionout.SessionGateway
	breaks  sessionout.BreakStore
	logger  hclog.Logger
}

func NewSessionService(clock clock.Clock, gateway sessionout.SessionGateway, breaks sessionout.BreakStore, logger hclog.Logger) *SessionService {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &SessionService{clock: clock, gateway: gateway, breaks: breaks, logger: logger.Named("session")}
}

func (s *SessionService) Now() int64 {
	return clock.Unix(s.clock)
}

func (s *SessionService) CurrentSession(ctx context.Context, account string) (domain.UserSession, error) {
	if account == "" {
		return domain.UserSession{}, nil
	}
	session, err := s.gateway.CurrentSession(ctx, account)
	if err != nil {
		return domain.UserSession{}, fmt.Errorf("read current session: %w", err)
	}
	return session, nil
}

func (s *SessionService) BreakNeeded(ctx context.Context, account string) (bool, error) {
	if account == "" {
		return false, nil
	}
	needed, err := s.gateway.BreakNeeded(ctx, account)
	if err != nil {
		return false, fmt.Errorf("read break needed: %w", err)
	}
	return needed, nil
}

// BreakTarget is the stored break end, or none. A broken store is logged
// and treated as no break scheduled. A break scheduled before session ended
// belongs to an earlier break and is ignored.
func (s *SessionService) BreakTarget(ctx context.Context, session domain.UserSession) countdown.Target {
	if s.breaks == nil {
		return countdown.None
	}
	target, err := s.breaks.LoadBreak(ctx)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNoBreakScheduled) {
			s.logger.Warn("break target unreadable", "error", err)
		}
		return countdown.None
	}
	if target.StaleFor(session) {
		s.logger.Debug("ignoring break scheduled before the last session ended", "scheduled_at", target.ScheduledAt, "session_end", session.EndTime)
		return countdown.None
	}
	return countdown.At(target.EndsAt)
}

func (s *SessionService) ScheduleBreak(ctx context.Context, seconds int64) (domain.BreakTarget, error) {
	now := s.clock.Now()
	target := domain.BreakTarget{EndsAt: now.Unix() + seconds, ScheduledAt: now}
	if s.breaks == nil {
		return target, nil
	}
	if err := s.breaks.SaveBreak(ctx, target); err != nil {
		return domain.BreakTarget{}, err
	}
	return target, nil
}

func (s *SessionService) ClearBreak(ctx context.Context) error {
	if s.breaks == nil {
		return nil
	}
	return s.breaks.ClearBreak(ctx)
}
