package store

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"
)

// timeLayout is fixed-width so stored timestamps compare lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// eventRepo implements EventRepo with raw SQL and the global sequence counter.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
	now func() time.Time
}

func (r *eventRepo) timestamp() string {
	now := time.Now
	if r.now != nil {
		now = r.now
	}
	return now().UTC().Format(timeLayout)
}

func (r *eventRepo) AppendAttempt(ctx context.Context, data AttemptEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO attempt_events (sequence, timestamp, session_id, function, technique, answer, correct_answer, kind, reason, correct, attempt)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(),
		data.SessionID, data.Function, data.Technique,
		data.Answer, data.CorrectAnswer,
		data.Kind, data.Reason, boolToInt(data.Correct), data.Attempt,
	)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendReveal(ctx context.Context, data RevealEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO reveal_events (sequence, timestamp, session_id, technique, kind, idx, text)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		seqNum, r.timestamp(),
		data.SessionID, data.Technique, string(data.Kind), data.Index, data.Text,
	)
	if err != nil {
		return fmt.Errorf("save reveal event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryAttempts(ctx context.Context, opts QueryOpts) ([]AttemptEvent, error) {
	where, args := opts.where(true)
	q := `SELECT sequence, timestamp, session_id, function, technique, answer, correct_answer, kind, reason, correct, attempt
		FROM attempt_events` + where + ` ORDER BY sequence DESC` + opts.limit()

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []AttemptEvent
	for rows.Next() {
		var (
			e       AttemptEvent
			ts      string
			correct int
		)
		if err := rows.Scan(&e.Sequence, &ts, &e.SessionID, &e.Function, &e.Technique,
			&e.Answer, &e.CorrectAnswer, &e.Kind, &e.Reason, &correct, &e.Attempt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		e.Correct = correct != 0
		e.Timestamp = parseTimestamp(ts)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attempts: %w", err)
	}
	return out, nil
}

func (r *eventRepo) TechniqueStats(ctx context.Context) ([]TechniqueStat, error) {
	stats := make(map[string]*TechniqueStat)
	get := func(t string) *TechniqueStat {
		s, ok := stats[t]
		if !ok {
			s = &TechniqueStat{Technique: t}
			stats[t] = s
		}
		return s
	}

	rows, err := r.db.QueryContext(ctx,
		`SELECT technique, COUNT(*), COALESCE(SUM(correct), 0), COALESCE(SUM(kind = 'partial'), 0)
		 FROM attempt_events GROUP BY technique`)
	if err != nil {
		return nil, fmt.Errorf("query attempt stats: %w", err)
	}
	for rows.Next() {
		var t string
		var attempts, correct, partial int
		if err := rows.Scan(&t, &attempts, &correct, &partial); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan attempt stats: %w", err)
		}
		s := get(t)
		s.Attempts, s.Correct, s.Partial = attempts, correct, partial
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate attempt stats: %w", err)
	}
	rows.Close()

	rows, err = r.db.QueryContext(ctx,
		`SELECT technique, kind, COUNT(*) FROM reveal_events GROUP BY technique, kind`)
	if err != nil {
		return nil, fmt.Errorf("query reveal stats: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var t, kind string
		var n int
		if err := rows.Scan(&t, &kind, &n); err != nil {
			return nil, fmt.Errorf("scan reveal stats: %w", err)
		}
		s := get(t)
		switch RevealKind(kind) {
		case RevealHint:
			s.Hints = n
		case RevealStep:
			s.Steps = n
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reveal stats: %w", err)
	}

	out := make([]TechniqueStat, 0, len(stats))
	for _, s := range stats {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Technique < out[j].Technique })
	return out, nil
}

// where builds the WHERE clause for opts. Technique and session filters only
// apply to tables that carry those columns.
func (o QueryOpts) where(practice bool) (string, []any) {
	var conds []string
	var args []any
	if o.After > 0 {
		conds = append(conds, "sequence > ?")
		args = append(args, o.After)
	}
	if !o.From.IsZero() {
		conds = append(conds, "timestamp >= ?")
		args = append(args, o.From.UTC().Format(timeLayout))
	}
	if practice && o.Technique != "" {
		conds = append(conds, "technique = ?")
		args = append(args, o.Technique)
	}
	if practice && o.SessionID != "" {
		conds = append(conds, "session_id = ?")
		args = append(args, o.SessionID)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (o QueryOpts) limit() string {
	if o.Limit <= 0 {
		return ""
	}
	return fmt.Sprintf(" LIMIT %d", o.Limit)
}

func parseTimestamp(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

