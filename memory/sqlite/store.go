// Package sqlite implements a durable core.ExperienceStore and
// evolution.Sink on SQLite (pure Go driver, WAL mode).
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/hupe1980/sovereign/core"
	"github.com/hupe1980/sovereign/evolution"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// DatabaseFile is the file created inside Config.DataDir.
const DatabaseFile = "sovereign.db"

// Config configures a Store.
type Config struct {
	DataDir string
}

// Store persists experiences and evolution events.
type Store struct {
	db  *sql.DB
	cfg Config
}

// New creates the data directory if needed, opens SQLite with WAL mode and
// runs migrations.
func New(cfg Config) (*Store, error) {
	if cfg.DataDir == "" {
		return nil, fmt.Errorf("sqlite: data dir is required")
	}
	if err := os.MkdirAll(cfg.DataDir, 0o700); err != nil {
		return nil, fmt.Errorf("sqlite: create data dir: %w", err)
	}

	db, err := openDB("sqlite", filepath.Join(cfg.DataDir, DatabaseFile))
	if err != nil {
		return nil, fmt.Errorf("sqlite: open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("sqlite: pragma %q: %w", p, err)
		}
	}

	s := &Store{db: db, cfg: cfg}
	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: migration: %w", err)
	}
	return s, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS experiences (
			id          TEXT PRIMARY KEY,
			created_at  TEXT NOT NULL,
			type        TEXT NOT NULL,
			query       TEXT NOT NULL,
			response    TEXT NOT NULL,
			personality TEXT NOT NULL,
			model       TEXT NOT NULL,
			task_type   TEXT NOT NULL,
			valence     REAL NOT NULL,
			importance  REAL NOT NULL,
			payload     TEXT NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_experiences_created ON experiences(created_at);

		CREATE TABLE IF NOT EXISTS evolution_events (
			id                  INTEGER PRIMARY KEY AUTOINCREMENT,
			created_at          TEXT NOT NULL,
			consciousness_level REAL NOT NULL,
			factor              REAL NOT NULL,
			experience_type     TEXT NOT NULL,
			response_quality    REAL NOT NULL
		);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Store implements core.ExperienceStore.
func (s *Store) Store(ctx context.Context, exp *core.Experience) error {
	if exp == nil || exp.ID == "" {
		return fmt.Errorf("sqlite: experience id is required")
	}
	payload, err := json.Marshal(exp)
	if err != nil {
		return fmt.Errorf("sqlite: encode experience: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO experiences
			(id, created_at, type, query, response, personality, model, task_type, valence, importance, payload)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		exp.ID,
		exp.Timestamp.UTC().Format(time.RFC3339Nano),
		exp.Type,
		exp.Content.Query,
		exp.Content.Response,
		exp.Content.PersonalityUsed,
		exp.Content.ModelUsed,
		string(exp.Content.Config.TaskType),
		exp.EmotionalValence,
		exp.ImportanceScore,
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert experience: %w", err)
	}
	return nil
}

// Recent returns up to limit experiences, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]*core.Experience, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT payload FROM experiences ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query experiences: %w", err)
	}
	defer rows.Close()

	var out []*core.Experience
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("sqlite: scan experience: %w", err)
		}
		var exp core.Experience
		if err := json.Unmarshal([]byte(payload), &exp); err != nil {
			return nil, fmt.Errorf("sqlite: decode experience: %w", err)
		}
		out = append(out, &exp)
	}
	return out, rows.Err()
}

// Count returns the number of stored experiences.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM experiences`).Scan(&n); err != nil {
		return 0, fmt.Errorf("sqlite: count experiences: %w", err)
	}
	return n, nil
}

// RecordEvolution implements evolution.Sink.
func (s *Store) RecordEvolution(ctx context.Context, ev evolution.Event) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evolution_events
			(created_at, consciousness_level, factor, experience_type, response_quality)
		 VALUES (?, ?, ?, ?, ?)`,
		ev.Timestamp.UTC().Format(time.RFC3339Nano),
		ev.ConsciousnessLevel,
		ev.Factor,
		ev.ExperienceType,
		ev.ResponseQuality,
	)
	if err != nil {
		return fmt.Errorf("sqlite: insert evolution event: %w", err)
	}
	return nil
}

// EvolutionEvents returns up to limit events, oldest first.
func (s *Store) EvolutionEvents(ctx context.Context, limit int) ([]evolution.Event, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT created_at, consciousness_level, factor, experience_type, response_quality
		   FROM evolution_events ORDER BY id ASC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("sqlite: query evolution events: %w", err)
	}
	defer rows.Close()

	var out []evolution.Event
	for rows.Next() {
		var (
			ts string
			ev evolution.Event
		)
		if err := rows.Scan(&ts, &ev.ConsciousnessLevel, &ev.Factor, &ev.ExperienceType, &ev.ResponseQuality); err != nil {
			return nil, fmt.Errorf("sqlite: scan evolution event: %w", err)
		}
		if ev.Timestamp, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("sqlite: parse evolution timestamp: %w", err)
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}

// Status implements core.StatusReporter.
func (s *Store) Status() map[string]any {
	n, err := s.Count(context.Background())
	status := map[string]any{"driver": "sqlite", "data_dir": s.cfg.DataDir, "experiences": n}
	if err != nil {
		status["error"] = err.Error()
	}
	return status
}
