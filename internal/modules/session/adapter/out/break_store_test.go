package out

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

func TestFileBreakStoreRoundTrip(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "break.json")
	store := NewFileBreakStore(path)
	ctx := context.Background()

	if _, err := store.LoadBreak(ctx); !errors.Is(err, apperrors.ErrNoBreakScheduled) {
		t.Fatalf("expected no break before save, got %v", err)
	}
	want := domain.BreakTarget{EndsAt: 1_900, ScheduledAt: time.Unix(1_000, 0).UTC()}
	if err := store.SaveBreak(ctx, want); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.LoadBreak(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.EndsAt != want.EndsAt || !got.ScheduledAt.Equal(want.ScheduledAt) {
		t.Fatalf("expected %+v, got %+v", want, got)
	}
	if err := store.ClearBreak(ctx); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.ClearBreak(ctx); err != nil {
		t.Fatalf("clear twice should be a no-op: %v", err)
	}
	if _, err := store.LoadBreak(ctx); !errors.Is(err, apperrors.ErrNoBreakScheduled) {
		t.Fatalf("expected no break after clear, got %v", err)
	}
}

func TestFileBreakStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "break.json")
	if err := os.WriteFile(path, []byte("{"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := NewFileBreakStore(path).LoadBreak(context.Background()); err == nil || errors.Is(err, apperrors.ErrNoBreakScheduled) {
		t.Fatalf("expected decode error, got %v", err)
	}
}
