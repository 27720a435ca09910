package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
)

// sequenceCounter numbers every event across all event tables so history
// can interleave attempts, reveals and coach calls in the order they
// happened. Row IDs are per table and cannot do that.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

var sequenceSchema = []string{
	`CREATE TABLE IF NOT EXISTS event_sequence (
		id    INTEGER PRIMARY KEY CHECK (id = 1),
		value INTEGER NOT NULL
	)`,
	`INSERT OR IGNORE INTO event_sequence (id, value) VALUES (1, 0)`,
}

func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	for _, stmt := range sequenceSchema {
		if _, err := db.Exec(stmt); err != nil {
			return nil, fmt.Errorf("init event sequence: %w", err)
		}
	}
	return &sequenceCounter{db: db}, nil
}

// Next returns a number greater than every number returned before it,
// starting at 1.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var n int64
	row := sc.db.QueryRowContext(ctx, `UPDATE event_sequence SET value = value + 1 WHERE id = 1 RETURNING value`)
	if err := row.Scan(&n); err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return n, nil
}
