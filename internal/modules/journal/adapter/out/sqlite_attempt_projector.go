package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hara-desu/ForestOnchain/internal/modules/journal/domain"
	journalout "github.com/hara-desu/ForestOnchain/internal/modules/journal/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteAttemptProjector struct {
	db *sql.DB
}

func NewSQLiteAttemptProjector(dbPath string) (*SQLiteAttemptProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// Observers may fire from concurrent lifecycles.
	db.SetMaxOpenConns(1)
	p := &SQLiteAttemptProjector{db: db}
	if err := p.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return p, nil
}

var _ journalout.AttemptProjector = (*SQLiteAttemptProjector)(nil)

func (p *SQLiteAttemptProjector) Close() error {
	return p.db.Close()
}

func (p *SQLiteAttemptProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS tx_attempts (
  id TEXT PRIMARY KEY,
  method TEXT NOT NULL,
  state TEXT NOT NULL,
  hash TEXT NOT NULL DEFAULT '',
  reason TEXT NOT NULL DEFAULT '',
  message TEXT NOT NULL DEFAULT '',
  created_at INTEGER NOT NULL,
  updated_at INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_tx_attempts_created ON tx_attempts(created_at DESC);
`
	if _, err := p.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tx_attempts table: %w", err)
	}
	return nil
}

// Upsert keeps the first created_at and any hash or method already known.
func (p *SQLiteAttemptProjector) Upsert(ctx context.Context, entry domain.Entry) error {
	const stmt = `
INSERT INTO tx_attempts (id, method, state, hash, reason, message, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  method=COALESCE(NULLIF(excluded.method, ''), tx_attempts.method),
  state=excluded.state,
  hash=COALESCE(NULLIF(excluded.hash, ''), tx_attempts.hash),
  reason=excluded.reason,
  message=excluded.message,
  updated_at=excluded.updated_at;
`
	_, err := p.db.ExecContext(ctx, stmt,
		entry.ID,
		entry.Method,
		entry.State,
		entry.Hash,
		entry.Reason,
		entry.Message,
		entry.CreatedAt.UnixNano(),
		entry.UpdatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("upsert tx attempt: %w", err)
	}
	return nil
}

func (p *SQLiteAttemptProjector) List(ctx context.Context, limit int) ([]domain.Entry, error) {
	if limit <= 0 {
		limit = domain.DefaultListLimit
	}
	rows, err := p.db.QueryContext(ctx, `
SELECT id, method, state, hash, reason, message, created_at, updated_at
FROM tx_attempts
ORDER BY created_at DESC, rowid DESC
LIMIT ?;
`, limit)
	if err != nil {
		return nil, fmt.Errorf("list tx attempts: %w", err)
	}
	defer rows.Close()

	out := make([]domain.Entry, 0, limit)
	for rows.Next() {
		var (
			item             domain.Entry
			created, updated int64
		)
		if err := rows.Scan(&item.ID, &item.Method, &item.State, &item.Hash, &item.Reason, &item.Message, &created, &updated); err != nil {
			return nil, fmt.Errorf("scan tx attempt: %w", err)
		}
		item.CreatedAt = time.Unix(0, created).UTC()
		item.UpdatedAt = time.Unix(0, updated).UTC()
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate tx attempts: %w", err)
	}
	return out, nil
}
