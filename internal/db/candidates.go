package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// CreateCandidate inserts a candidate profile and returns its ID.
func (db *DB) CreateCandidate(ctx context.Context, c *Candidate) (int64, error) {
	var id int64
	err := db.pool.QueryRow(ctx,
		`INSERT INTO candidates (firstname, lastname, birthday, country, level_id, external_user_id)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		c.FirstName, c.LastName, c.Birthday, c.Country, c.LevelID, c.ExternalUserID,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create candidate: %w", err)
	}
	return id, nil
}

// GetCandidate retrieves a candidate by ID.
func (db *DB) GetCandidate(ctx context.Context, id int64) (*Candidate, error) {
	return db.scanCandidate(ctx,
		`SELECT id, firstname, lastname, birthday, country, level_id, external_user_id
		 FROM candidates WHERE id = $1`, id)
}

// GetCandidateByExternalID retrieves the candidate owned by an external
// identity subject.
func (db *DB) GetCandidateByExternalID(ctx context.Context, externalUserID string) (*Candidate, error) {
	return db.scanCandidate(ctx,
		`SELECT id, firstname, lastname, birthday, country, level_id, external_user_id
		 FROM candidates WHERE external_user_id = $1`, externalUserID)
}

func (db *DB) scanCandidate(ctx context.Context, query string, arg any) (*Candidate, error) {
	var c Candidate
	err := db.pool.QueryRow(ctx, query, arg).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Birthday, &c.Country, &c.LevelID, &c.ExternalUserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}
	return &c, nil
}

// UpdateCandidate updates an existing candidate profile.
func (db *DB) UpdateCandidate(ctx context.Context, c *Candidate) error {
	result, err := db.pool.Exec(ctx,
		`UPDATE candidates
		 SET firstname = $1, lastname = $2, birthday = $3, country = $4, level_id = $5
		 WHERE id = $6`,
		c.FirstName, c.LastName, c.Birthday, c.Country, c.LevelID, c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %d", c.ID)
	}
	return nil
}

// DeleteCandidate deletes a candidate profile and its usage row (via
// cascade).
func (db *DB) DeleteCandidate(ctx context.Context, id int64) error {
	result, err := db.pool.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete candidate: %w", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("candidate not found: %d", id)
	}
	return nil
}

// GetLevel retrieves an education/experience level by ID.
func (db *DB) GetLevel(ctx context.Context, id int64) (*Level, error) {
	var l Level
	err := db.pool.QueryRow(ctx,
		`SELECT id, name FROM levels WHERE id = $1`, id,
	).Scan(&l.ID, &l.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get level: %w", err)
	}
	return &l, nil
}

// ListLevels retrieves all levels ordered by ID.
func (db *DB) ListLevels(ctx context.Context) ([]Level, error) {
	rows, err := db.pool.Query(ctx, `SELECT id, name FROM levels ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}
	defer rows.Close()

	var levels []Level
	for rows.Next() {
		var l Level
		if err := rows.Scan(&l.ID, &l.Name); err != nil {
			return nil, fmt.Errorf("failed to scan level: %w", err)
		}
		levels = append(levels, l)
	}
	return levels, rows.Err()
}
