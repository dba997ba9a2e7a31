package store

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/Masterminds/squirrel"
)

// sequenceCounter manages the global monotonic sequence number shared across
// all event tables. Per-table rowids can't order a quiz answer against the
// ledger entry it caused, so every event draws from this single counter.
//
// The mutex serializes within the process; the RETURNING clause makes the
// increment atomic at the database level.
type sequenceCounter struct {
	mu sync.Mutex
	db *sql.DB
}

// newSequenceCounter creates a counter and ensures the tracking table exists.
func newSequenceCounter(db *sql.DB) (*sequenceCounter, error) {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS global_sequence (
		id INTEGER PRIMARY KEY CHECK (id = 1),
		next_val INTEGER NOT NULL DEFAULT 1
	)`)
	if err != nil {
		return nil, fmt.Errorf("create sequence table: %w", err)
	}

	_, err = db.Exec(`INSERT OR IGNORE INTO global_sequence (id, next_val) VALUES (1, 1)`)
	if err != nil {
		return nil, fmt.Errorf("seed sequence: %w", err)
	}

	return &sequenceCounter{db: db}, nil
}

// Next atomically returns the next sequence number and increments the counter.
func (sc *sequenceCounter) Next(ctx context.Context) (int64, error) {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	var seq int64
	err := sc.db.QueryRowContext(ctx,
		`UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1`,
	).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	return seq, nil
}

// eventRepo implements EventRepo.
type eventRepo struct {
	db  *sql.DB
	seq *sequenceCounter
}

// applyQueryOpts adds the shared filters and pagination to a select.
func applyQueryOpts(q squirrel.SelectBuilder, opts QueryOpts) squirrel.SelectBuilder {
	if opts.After > 0 {
		q = q.Where(squirrel.Gt{"sequence": opts.After})
	}
	if opts.Before > 0 {
		q = q.Where(squirrel.Lt{"sequence": opts.Before})
	}
	if !opts.From.IsZero() {
		q = q.Where(squirrel.GtOrEq{"timestamp": opts.From.UnixNano()})
	}
	if !opts.To.IsZero() {
		q = q.Where(squirrel.LtOrEq{"timestamp": opts.To.UnixNano()})
	}
	if opts.Limit > 0 {
		q = q.Limit(uint64(opts.Limit))
	}
	return q.OrderBy("sequence DESC")
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func (r *eventRepo) AppendQuizEvent(ctx context.Context, data QuizEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args, err := sqlBuilder.Insert("quiz_events").
		Columns("sequence", "timestamp", "session_id", "quiz_id", "node_id",
			"choice_index", "correct", "first_try", "bonus").
		Values(seqNum, time.Now().UnixNano(), data.SessionID, data.QuizID, data.NodeID,
			data.ChoiceIndex, boolToInt(data.Correct), boolToInt(data.FirstTry), data.Bonus).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save quiz event: %w", err)
	}
	return nil
}

func (r *eventRepo) AppendLedgerEvent(ctx context.Context, data LedgerEventData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	query, args, err := sqlBuilder.Insert("ledger_events").
		Columns("sequence", "timestamp", "session_id", "resource", "delta", "reason").
		Values(seqNum, time.Now().UnixNano(), data.SessionID, data.Resource, data.Delta, data.Reason).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("save ledger event: %w", err)
	}
	return nil
}

func (r *eventRepo) QueryQuizEvents(ctx context.Context, opts QueryOpts) ([]QuizEventRecord, error) {
	q := sqlBuilder.Select("sequence", "timestamp", "session_id", "quiz_id", "node_id",
		"choice_index", "correct", "first_try", "bonus").
		From("quiz_events")

	query, args, err := applyQueryOpts(q, opts).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz events: %w", err)
	}
	defer rows.Close()

	var records []QuizEventRecord
	for rows.Next() {
		var (
			rec               QuizEventRecord
			ts                int64
			correct, firstTry int
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.QuizID, &rec.NodeID,
			&rec.ChoiceIndex, &correct, &firstTry, &rec.Bonus); err != nil {
			return nil, fmt.Errorf("scan quiz event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		rec.Correct = correct == 1
		rec.FirstTry = firstTry == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) QueryLedgerEvents(ctx context.Context, opts QueryOpts) ([]LedgerEventRecord, error) {
	q := sqlBuilder.Select("sequence", "timestamp", "session_id", "resource", "delta", "reason").
		From("ledger_events")

	query, args, err := applyQueryOpts(q, opts).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query ledger events: %w", err)
	}
	defer rows.Close()

	var records []LedgerEventRecord
	for rows.Next() {
		var (
			rec LedgerEventRecord
			ts  int64
		)
		if err := rows.Scan(&rec.Sequence, &ts, &rec.SessionID, &rec.Resource, &rec.Delta, &rec.Reason); err != nil {
			return nil, fmt.Errorf("scan ledger event: %w", err)
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		records = append(records, rec)
	}
	return records, rows.Err()
}

func (r *eventRepo) QuizStats(ctx context.Context) ([]QuizStat, error) {
	query, args, err := sqlBuilder.Select("quiz_id", "COUNT(*)", "SUM(correct)", "SUM(bonus)").
		From("quiz_events").
		GroupBy("quiz_id").
		OrderBy("quiz_id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query quiz stats: %w", err)
	}
	defer rows.Close()

	var stats []QuizStat
	for rows.Next() {
		var s QuizStat
		if err := rows.Scan(&s.QuizID, &s.Attempts, &s.Correct, &s.Bonus); err != nil {
			return nil, fmt.Errorf("scan quiz stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
