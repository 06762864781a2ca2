package history

// Run-history persistence. Every sweep saves one summary row so the next run
// can be compared against it: did expectancy improve, which tickers entered
// or left the approved list. One row per run, oldest rows pruned on open.

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id               TEXT PRIMARY KEY,
    created_at       DATETIME NOT NULL,
    trades           INTEGER  NOT NULL DEFAULT 0,
    winrate_pct      REAL     NOT NULL DEFAULT 0,
    expectancy_r     REAL     NOT NULL DEFAULT 0,
    max_drawdown_pct REAL     NOT NULL DEFAULT 0,
    final_capital    REAL     NOT NULL DEFAULT 0,
    approved         TEXT     NOT NULL DEFAULT '',
    config           TEXT     NOT NULL DEFAULT '{}'
);

CREATE INDEX IF NOT EXISTS idx_runs_at ON runs(created_at DESC);
`

// retention: runs older than 180 days carry no signal for comparison.
const retention = 180 * 24 * time.Hour

// Run is one persisted sweep summary.
type Run struct {
	ID             string
	CreatedAt      time.Time
	Trades         int
	WinRatePct     float64
	ExpectancyR    float64
	MaxDrawdownPct float64
	FinalCapital   float64
	Approved       []string
	Config         map[string]any
}

// Store persists run summaries in SQLite (pure Go driver, no CGo).
type Store struct {
	db *sql.DB
}

// Open opens (or creates) the database at path, applies the schema and
// prunes stale rows.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %q: %w", path, err)
	}
	db.SetMaxOpenConns(1) // SQLite is single-writer
	db.SetMaxIdleConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("history: apply schema: %w", err)
	}

	s := &Store{db: db}
	s.pruneOld(context.Background())
	return s, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save persists one run summary. The returned ID identifies the row.
func (s *Store) Save(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	configJSON, err := json.Marshal(run.Config)
	if err != nil {
		return "", fmt.Errorf("history: marshal config: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, created_at, trades, winrate_pct, expectancy_r,
		                  max_drawdown_pct, final_capital, approved, config)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.CreatedAt, run.Trades, run.WinRatePct, run.ExpectancyR,
		run.MaxDrawdownPct, run.FinalCapital, strings.Join(run.Approved, ","), string(configJSON),
	)
	if err != nil {
		return "", fmt.Errorf("history: insert run: %w", err)
	}

	return run.ID, nil
}

// Latest returns the most recent run, or ok=false when the store is empty.
func (s *Store) Latest(ctx context.Context) (Run, bool, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, created_at, trades, winrate_pct, expectancy_r,
		       max_drawdown_pct, final_capital, approved, config
		FROM runs ORDER BY created_at DESC LIMIT 1`)

	var run Run
	var approved, configJSON string
	err := row.Scan(&run.ID, &run.CreatedAt, &run.Trades, &run.WinRatePct,
		&run.ExpectancyR, &run.MaxDrawdownPct, &run.FinalCapital, &approved, &configJSON)
	if err == sql.ErrNoRows {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("history: load latest run: %w", err)
	}

	if approved != "" {
		run.Approved = strings.Split(approved, ",")
	}
	if err := json.Unmarshal([]byte(configJSON), &run.Config); err != nil {
		run.Config = nil
	}

	return run, true, nil
}

func (s *Store) pruneOld(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-retention)
	_, _ = s.db.ExecContext(ctx, `DELETE FROM runs WHERE created_at < ?`, cutoff)
}
