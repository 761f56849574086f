package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
)

// sendBatch executes all queued statements and surfaces the first failure,
// naming the entity for the error taxonomy. Statements already executed when
// a later one fails stay committed; batch writes are per-row atomic, not
// all-or-nothing.
func (db *DB) sendBatch(ctx context.Context, batch *pgx.Batch, entity string) error {
	results := db.pool.SendBatch(ctx, batch)
	defer func() {
		if err := results.Close(); err != nil && db.logger != nil {
			db.logger.Warn().Err(err).Str("entity", entity).Msg("failed to close batch results")
		}
	}()

	for i := 0; i < batch.Len(); i++ {
		if _, err := results.Exec(); err != nil {
			return fmt.Errorf("%w %s (statement %d): %w", ErrFailedToInsert, entity, i, err)
		}
	}

	return nil
}

func toNullableTime(ts *time.Time) interface{} {
	if ts == nil || ts.IsZero() {
		return nil
	}

	return ts.UTC()
}

func toNullableString(s *string) interface{} {
	if s == nil || *s == "" {
		return nil
	}

	return *s
}
