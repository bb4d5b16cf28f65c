package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/mycoscan/mycoscan-admin/pkg/database"
)

// docTimestampExpr extracts a timestamp field from the JSONB field map.
// Historic app data stores timestamps both as RFC3339 strings and as epoch
// milliseconds, so both representations are handled store-side. Strings go
// through try_timestamptz so a single malformed value reads as NULL (and
// falls out of any range comparison) instead of failing the query.
const docTimestampExpr = `
	CASE jsonb_typeof(fields -> $2)
		WHEN 'number' THEN to_timestamp((fields ->> $2)::double precision / 1000.0)
		WHEN 'string' THEN try_timestamptz(fields ->> $2)
	END`

// StatsRepository answers the dashboard's counting questions store-side.
type StatsRepository interface {
	// Count returns the number of root documents in a collection.
	Count(ctx context.Context, collection string) (int, error)

	// CountBetween counts root documents whose timestamp field falls in
	// [from, to). Documents without the field are excluded.
	CountBetween(ctx context.Context, collection, field string, from, to time.Time) (int, error)

	// TimestampsBetween returns the timestamp field values of root documents
	// in [from, to), for day-bucketing by the caller.
	TimestampsBetween(ctx context.Context, collection, field string, from, to time.Time) ([]time.Time, error)
}

type statsRepository struct {
	db *database.DB
}

// NewStatsRepository creates a StatsRepository backed by the given pool.
func NewStatsRepository(db *database.DB) StatsRepository {
	return &statsRepository{db: db}
}

var _ StatsRepository = (*statsRepository)(nil)

func (r *statsRepository) Count(ctx context.Context, collection string) (int, error) {
	query := `SELECT count(*) FROM admin_documents WHERE collection = $1 AND parent_id IS NULL`

	var count int
	if err := r.db.QueryRow(ctx, query, collection).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count collection %s: %w", collection, err)
	}
	return count, nil
}

func (r *statsRepository) CountBetween(ctx context.Context, collection, field string, from, to time.Time) (int, error) {
	query := `
		SELECT count(*)
		FROM admin_documents
		WHERE collection = $1 AND parent_id IS NULL
		  AND fields ? $2
		  AND ` + docTimestampExpr + ` >= $3
		  AND ` + docTimestampExpr + ` < $4`

	var count int
	if err := r.db.QueryRow(ctx, query, collection, field, from, to).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count %s by %s: %w", collection, field, err)
	}
	return count, nil
}

func (r *statsRepository) TimestampsBetween(ctx context.Context, collection, field string, from, to time.Time) ([]time.Time, error) {
	query := `
		SELECT ` + docTimestampExpr + ` AS ts
		FROM admin_documents
		WHERE collection = $1 AND parent_id IS NULL
		  AND fields ? $2
		  AND ` + docTimestampExpr + ` >= $3
		  AND ` + docTimestampExpr + ` < $4
		ORDER BY ts`

	rows, err := r.db.Query(ctx, query, collection, field, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s timestamps: %w", collection, err)
	}
	defer rows.Close()

	var stamps []time.Time
	for rows.Next() {
		var ts time.Time
		if err := rows.Scan(&ts); err != nil {
			return nil, fmt.Errorf("failed to scan timestamp: %w", err)
		}
		stamps = append(stamps, ts)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating timestamps: %w", err)
	}
	return stamps, nil
}
