package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// EnsureUsage creates the usage row for a candidate if it does not
// exist yet. Called during onboarding; idempotent.
func (db *DB) EnsureUsage(ctx context.Context, candidateID int64, usageLimit int) error {
	_, err := db.pool.Exec(ctx,
		`INSERT INTO app_usage (candidate_id, usage_count, usage_limit)
		 VALUES ($1, 0, $2)
		 ON CONFLICT (candidate_id) DO NOTHING`,
		candidateID, usageLimit,
	)
	if err != nil {
		return fmt.Errorf("failed to ensure usage row: %w", err)
	}
	return nil
}

// ConsumeUsage claims one unit of the candidate's quota. The guard and
// the increment are a single conditional UPDATE, so two concurrent
// requests can never both pass a nearly-exhausted gate. Returns false
// when the quota is exhausted or no usage row exists.
func (db *DB) ConsumeUsage(ctx context.Context, candidateID int64) (bool, error) {
	result, err := db.pool.Exec(ctx,
		`UPDATE app_usage
		 SET usage_count = usage_count + 1
		 WHERE candidate_id = $1 AND usage_count < usage_limit`,
		candidateID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to consume usage: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

// ReleaseUsage returns one previously consumed unit. Used to compensate
// when the metered operation fails after the gate was passed.
func (db *DB) ReleaseUsage(ctx context.Context, candidateID int64) error {
	_, err := db.pool.Exec(ctx,
		`UPDATE app_usage
		 SET usage_count = usage_count - 1
		 WHERE candidate_id = $1 AND usage_count > 0`,
		candidateID,
	)
	if err != nil {
		return fmt.Errorf("failed to release usage: %w", err)
	}
	return nil
}

// GetUsage retrieves the usage row for a candidate.
func (db *DB) GetUsage(ctx context.Context, candidateID int64) (*Usage, error) {
	var u Usage
	err := db.pool.QueryRow(ctx,
		`SELECT id, candidate_id, usage_count, usage_limit
		 FROM app_usage WHERE candidate_id = $1`,
		candidateID,
	).Scan(&u.ID, &u.CandidateID, &u.UsageCount, &u.UsageLimit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get usage: %w", err)
	}
	return &u, nil
}

// IncreaseUsageLimit raises a candidate's quota by the given amount,
// e.g. after a plan upgrade. Returns the new limit.
func (db *DB) IncreaseUsageLimit(ctx context.Context, candidateID int64, extra int) (int, error) {
	var newLimit int
	err := db.pool.QueryRow(ctx,
		`UPDATE app_usage
		 SET usage_limit = usage_limit + $1
		 WHERE candidate_id = $2
		 RETURNING usage_limit`,
		extra, candidateID,
	).Scan(&newLimit)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, fmt.Errorf("usage row not found for candidate %d", candidateID)
		}
		return 0, fmt.Errorf("failed to increase usage limit: %w", err)
	}
	return newLimit, nil
}
