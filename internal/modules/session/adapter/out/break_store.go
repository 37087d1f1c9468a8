package out

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hara-desu/ForestOnchain/internal/modules/session/domain"
	sessionout "github.com/hara-desu/ForestOnchain/internal/modules/session/port/out"
	apperrors "github.com/hara-desu/ForestOnchain/internal/platform/errors"
)

type FileBreakStore struct {
	path string
}

func NewFileBreakStore(path string) sessionout.BreakStore {
	return &FileBreakStore{path: path}
}

func (s *FileBreakStore) SaveBreak(_ context.Context, target domain.BreakTarget) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create break dir: %w", err)
	}
	payload, err := json.MarshalIndent(target, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal break: %w", err)
	}
	if err := os.WriteFile(s.path, payload, 0o644); err != nil {
		return fmt.Errorf("write break: %w", err)
	}
	return nil
}

func (s *FileBreakStore) LoadBreak(_ context.Context) (domain.BreakTarget, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return domain.BreakTarget{}, apperrors.ErrNoBreakScheduled
		}
		return domain.BreakTarget{}, fmt.Errorf("read break: %w", err)
	}
	target := domain.BreakTarget{}
	if err := json.Unmarshal(payload, &target); err != nil {
		return domain.BreakTarget{}, fmt.Errorf("decode break: %w", err)
	}
	if target.EndsAt == 0 {
		return domain.BreakTarget{}, apperrors.ErrNoBreakScheduled
	}
	return target, nil
}

func (s *FileBreakStore) ClearBreak(_ context.Context) error {
	if err := os.Remove(s.path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("clear break: %w", err)
	}
	return nil
}
