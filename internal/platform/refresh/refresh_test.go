package refresh

import (
	"errors"
	"testing"
)

func TestOlderGenerationFinishingLateIsDropped(t *testing.T) {
	t.Parallel()
	var src Source[[]string]
	older := src.Begin()
	newer := src.Begin()
	if !src.Publish(newer, []string{"Study"}, nil) {
		t.Fatalf("expected newest generation to publish")
	}
	if src.Publish(older, []string{"Old"}, nil) {
		t.Fatalf("expected older generation to be dropped")
	}
	got, _, ok := src.Current()
	if !ok || len(got) != 1 || got[0] != "Study" {
		t.Fatalf("expected newest snapshot, got %v", got)
	}
	if !src.Stale(older) || src.Stale(newer) {
		t.Fatalf("unexpected staleness")
	}
}

func TestErrorsArePublishedAsSnapshots(t *testing.T) {
	t.Parallel()
	var src Source[int]
	if _, _, ok := src.Current(); ok {
		t.Fatalf("expected empty source")
	}
	tk := src.Begin()
	src.Publish(tk, 0, errors.New("boom"))
	if _, err, ok := src.Current(); !ok || err == nil {
		t.Fatalf("expected published error, got ok=%v err=%v", ok, err)
	}
}

func TestCloseDropsLateResults(t *testing.T) {
	t.Parallel()
	var src Source[int]
	tk := src.Begin()
	src.Close()
	if src.Publish(tk, 7, nil) {
		t.Fatalf("expected publish after close to be dropped")
	}
	if _, _, ok := src.Current(); ok {
		t.Fatalf("expected nothing published")
	}
}
