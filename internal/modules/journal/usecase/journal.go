package usecase

import (
	"context"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/dto"
	journalin "github.com/hara-desu/ForestOnchain/internal/modules/journal/port/in"
	"github.com/hara-desu/ForestOnchain/internal/modules/journal/service"
	"github.com/hara-desu/ForestOnchain/internal/platform/tx"
)

type Interactor struct {
	svc *service.JournalService
}

func NewInteractor(svc *service.JournalService) journalin.Usecase {
	return &Interactor{svc: svc}
}

func (i *Interactor) Record(ctx context.Context, ev tx.Event) error {
	return i.svc.Record(ctx, ev)
}

func (i *Interactor) List(ctx context.Context, input dto.ListInput) (dto.ListOutput, error) {
	entries, err := i.svc.List(ctx, input.Limit)
	if err != nil {
		return dto.ListOutput{}, err
	}
	out := dto.ListOutput{Entries: make([]dto.EntryOutput, 0, len(entries))}
	for _, entry := range entries {
		out.Entries = append(out.Entries, dto.EntryOutput{
			AttemptID: entry.ID,
			Method:    entry.Method,
			State:     entry.State,
			Hash:      entry.Hash,
			Reason:    entry.Reason,
			Message:   entry.Message,
			CreatedAt: entry.CreatedAt,
			UpdatedAt: entry.UpdatedAt,
		})
	}
	return out, nil
}
