package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/fleetwatch/fleetwatch/pkg/models"
)

// insertNetworkStatsSQL appends one sample per report interval. The
// (host_id, timestamp, period) uniqueness with DO NOTHING makes agent-side
// retries of a partially-acked batch safe: a replayed sample cannot
// double-count a period.
const insertNetworkStatsSQL = `
INSERT INTO network_stats (
	id, host_id, timestamp, bytes_in, bytes_out, packets_in, packets_out,
	connections_count, period
) VALUES (
	$1,$2,$3,$4,$5,$6,$7,$8,$9
)
ON CONFLICT (host_id, timestamp, period) DO NOTHING`

// InsertNetworkStats appends one network stats sample.
func (db *DB) InsertNetworkStats(ctx context.Context, stats *models.NetworkStats) error {
	args, err := buildNetworkStatsArgs(stats)
	if err != nil {
		return err
	}

	if _, err := db.pool.Exec(ctx, insertNetworkStatsSQL, args...); err != nil {
		return fmt.Errorf("%w network stats: %w", ErrFailedToInsert, err)
	}

	return nil
}

func buildNetworkStatsArgs(stats *models.NetworkStats) ([]interface{}, error) {
	if stats == nil {
		return nil, ErrNetworkStatsNil
	}

	id := strings.TrimSpace(stats.ID)
	if id == "" {
		id = uuid.New().String()
	}

	timestamp := stats.Timestamp
	if timestamp.IsZero() {
		timestamp = nowUTC()
	}

	period := stats.Period
	if period == "" {
		period = "1m"
	}

	return []interface{}{
		id,
		stats.HostID,
		timestamp.UTC(),
		stats.BytesIn,
		stats.BytesOut,
		stats.PacketsIn,
		stats.PacketsOut,
		stats.ConnectionsCount,
		period,
	}, nil
}
