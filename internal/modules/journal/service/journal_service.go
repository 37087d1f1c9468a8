package service

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/domain"
	journalout "github.com/hara-desu/ForestOnchain/internal/modules/journal/port/out"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type JournalService struct {
	projector journalout.AttemptProjector
}

func NewJournalService(projector journalout.AttemptProjector) *JournalService {
	return &JournalService{projector: projector}
}

func (s *JournalService) Record(ctx context.Context, ev tx.Event) error {
	entry, ok := domain.FromEvent(ev)
	if !ok {
		return nil
	}
	return s.projector.Upsert(ctx, entry)
}

func (s *JournalService) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	return s.projector.List(ctx, limit)
}
