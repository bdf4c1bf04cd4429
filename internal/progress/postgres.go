package progress

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/p-n-ai/word-forge/internal/review"
)

const dbTimeout = 5 * time.Second

// PostgresStore keeps learner state in learner_state and review_items.
// Saving ORs review flags into existing rows, so a stale writer can never
// clear a flag another writer set.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a PostgreSQL-backed store.
func NewPostgresStore(pool *pgxpool.Pool) (*PostgresStore, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is nil")
	}
	return &PostgresStore{pool: pool}, nil
}

// Load implements Store.
func (s *PostgresStore) Load(ctx context.Context, learnerID string) (State, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	st := DefaultState()
	var week int
	err := s.pool.QueryRow(ctx,
		`SELECT current_week, show_l1_support FROM learner_state WHERE learner_id = $1`,
		learnerID,
	).Scan(&week, &st.ShowL1Support)
	if errors.Is(err, pgx.ErrNoRows) {
		return st, nil
	}
	if err != nil {
		return State{}, fmt.Errorf("query learner state: %w", err)
	}
	if week < 1 {
		slog.Warn("ignoring stored week", "learner_id", learnerID, "week", week)
	} else {
		st.CurrentWeek = week
	}

	rows, err := s.pool.Query(ctx,
		`SELECT term, rule, relate, test
		 FROM review_items
		 WHERE learner_id = $1
		 ORDER BY position ASC`,
		learnerID,
	)
	if err != nil {
		return State{}, fmt.Errorf("query review items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r review.Record
		if err := rows.Scan(&r.Term, &r.Rule, &r.Relate, &r.Test); err != nil {
			return State{}, fmt.Errorf("scan review item: %w", err)
		}
		st.ReviewItems = append(st.ReviewItems, r)
	}
	if err := rows.Err(); err != nil {
		return State{}, fmt.Errorf("iterate review items: %w", err)
	}

	return st, nil
}

// Save implements Store.
func (s *PostgresStore) Save(ctx context.Context, learnerID string, st State) error {
	if learnerID == "" {
		return fmt.Errorf("learner id is required")
	}

	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO learner_state (learner_id, current_week, show_l1_support, updated_at)
		 VALUES ($1, $2, $3, now())
		 ON CONFLICT (learner_id) DO UPDATE
		 SET current_week = EXCLUDED.current_week,
		     show_l1_support = EXCLUDED.show_l1_support,
		     updated_at = now()`,
		learnerID,
		st.CurrentWeek,
		st.ShowL1Support,
	); err != nil {
		return fmt.Errorf("upsert learner state: %w", err)
	}

	batch := &pgx.Batch{}
	for i, r := range st.ReviewItems {
		key := review.Key(r.Term)
		if key == "" {
			continue
		}
		batch.Queue(
			`INSERT INTO review_items (learner_id, term_key, term, position, rule, relate, test)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 ON CONFLICT (learner_id, term_key) DO UPDATE
			 SET position = EXCLUDED.position,
			     rule = review_items.rule OR EXCLUDED.rule,
			     relate = review_items.relate OR EXCLUDED.relate,
			     test = review_items.test OR EXCLUDED.test`,
			learnerID, key, r.Term, i, r.Rule, r.Relate, r.Test,
		)
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("upsert review items: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
