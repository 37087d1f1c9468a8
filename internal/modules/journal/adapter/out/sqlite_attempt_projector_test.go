package out

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/domain"
)

func newProjector(t *testing.T) *SQLiteAttemptProjector {
	t.Helper()
	p, err := NewSQLiteAttemptProjector(filepath.Join(t.TempDir(), "state", "forest.db"))
	if err != nil {
		t.Fatalf("new projector: %v", err)
	}
	t.Cleanup(func() { _ = p.Close() })
	return p
}

func TestUpsertKeepsCreationTimeAndKnownHash(t *testing.T) {
	t.Parallel()
	p := newProjector(t)
	ctx := context.Background()
	start := time.Unix(1700000000, 0)

	steps := []domain.Entry{
		{ID: "a1", Method: "startGoal", State: "submitting", CreatedAt: start, UpdatedAt: start},
		{ID: "a1", Method: "startGoal", State: "confirming", Hash: "0xabc", CreatedAt: start.Add(time.Second), UpdatedAt: start.Add(time.Second)},
		{ID: "a1", Method: "startGoal", State: "succeeded", CreatedAt: start.Add(2 * time.Second), UpdatedAt: start.Add(2 * time.Second)},
	}
	for _, step := range steps {
		if err := p.Upsert(ctx, step); err != nil {
			t.Fatalf("upsert %s: %v", step.State, err)
		}
	}
	entries, err := p.List(ctx, 10)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected one attempt, got %d", len(entries))
	}
	got := entries[0]
	if got.State != "succeeded" || got.Hash != "0xabc" || got.Method != "startGoal" {
		t.Fatalf("unexpected entry %+v", got)
	}
	if !got.CreatedAt.Equal(start) || !got.UpdatedAt.Equal(start.Add(2*time.Second)) {
		t.Fatalf("expected created %s updated %s, got %+v", start, start.Add(2*time.Second), got)
	}
}

func TestListIsNewestFirstAndLimited(t *testing.T) {
	t.Parallel()
	p := newProjector(t)
	ctx := context.Background()
	base := time.Unix(1700000000, 0)
	for i, id := range []string{"a1", "a2", "a3"} {
		at := base.Add(time.Duration(i) * time.Minute)
		if err := p.Upsert(ctx, domain.Entry{ID: id, Method: "takeBreak", State: "succeeded", CreatedAt: at, UpdatedAt: at}); err != nil {
			t.Fatalf("upsert %s: %v", id, err)
		}
	}
	entries, err := p.List(ctx, 2)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "a3" || entries[1].ID != "a2" {
		t.Fatalf("expected [a3 a2], got %+v", entries)
	}
}
