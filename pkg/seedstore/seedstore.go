// Package seedstore persists falsifying seeds per property, so that a
// failure found in one run is replayed first in the next before any
// fresh generation happens.
package seedstore

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/nomagicln/quickprop/pkg/check"
	"github.com/nomagicln/quickprop/pkg/prop"
	"github.com/nomagicln/quickprop/pkg/rng"
)

// Store is a SQLite-backed database of the most recent falsifying seed
// per property name.
type Store struct {
	db *sql.DB
}

// Open opens (creating if necessary) the store at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open seed store: %w", err)
	}
	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS failures (
			property    TEXT PRIMARY KEY,
			seed        TEXT NOT NULL,
			args        TEXT NOT NULL DEFAULT '',
			recorded_at TEXT NOT NULL
		);
	`)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create failures table: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Put records the falsifying seed and rendered arguments for a property,
// replacing any previous entry.
func (s *Store) Put(property string, seed rng.Seed, args []any) error {
	rendered := make([]string, len(args))
	for i, a := range args {
		rendered[i] = fmt.Sprintf("%v", a)
	}
	_, err := s.db.Exec(`
		INSERT INTO failures (property, seed, args, recorded_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(property) DO UPDATE SET
			seed = excluded.seed,
			args = excluded.args,
			recorded_at = excluded.recorded_at;
	`, property, seed.String(), strings.Join(rendered, "\n"), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to record failure for %q: %w", property, err)
	}
	return nil
}

// Get returns the recorded seed for a property, reporting whether an
// entry exists.
func (s *Store) Get(property string) (rng.Seed, bool, error) {
	var repr string
	err := s.db.QueryRow(`SELECT seed FROM failures WHERE property = ?;`, property).Scan(&repr)
	if errors.Is(err, sql.ErrNoRows) {
		return rng.Seed{}, false, nil
	}
	if err != nil {
		return rng.Seed{}, false, fmt.Errorf("failed to load failure for %q: %w", property, err)
	}
	seed, err := rng.Parse(repr)
	if err != nil {
		return rng.Seed{}, false, fmt.Errorf("corrupt seed for %q: %w", property, err)
	}
	return seed, true, nil
}

// Delete removes the entry for a property, if any.
func (s *Store) Delete(property string) error {
	if _, err := s.db.Exec(`DELETE FROM failures WHERE property = ?;`, property); err != nil {
		return fmt.Errorf("failed to delete failure for %q: %w", property, err)
	}
	return nil
}

// Check runs p under cfg with the store in the loop: a recorded seed is
// replayed first and, if it still falsifies, reported without fresh
// generation. Otherwise a fresh run happens; new falsifications are
// recorded and stale entries cleared.
func (s *Store) Check(property string, p *prop.Property, cfg check.Config) (check.Result, error) {
	stored, found, err := s.Get(property)
	if err != nil {
		return check.Result{}, err
	}
	if found && cfg.Replay == nil {
		res := check.Run(p, cfg.WithReplay(stored))
		if res.Status == check.Falsifiable {
			return res, s.Put(property, res.Seed, res.Args)
		}
	}

	res := check.Run(p, cfg)
	switch res.Status {
	case check.Falsifiable:
		return res, s.Put(property, res.Seed, res.Args)
	case check.Success:
		if found {
			return res, s.Delete(property)
		}
	}
	return res, nil
}
