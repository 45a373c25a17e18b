package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
)

// JobBundle is the input for creating a client's job together with its
// skills, functions and required profile in one transaction.
type JobBundle struct {
	ClientName string
	Title      string
	Profile    string
	Functions  []string
	Skills     []string
}

// JobBundleResult reports the rows created by CreateJobBundle.
type JobBundleResult struct {
	ClientID int64 `json:"client_id"`
	JobID    int64 `json:"job_id"`
}

// CreateJobBundle upserts the client by name, inserts the job and one
// row per skill and function plus the profile text. Items are trimmed;
// entries that end up empty are dropped.
func (db *DB) CreateJobBundle(ctx context.Context, bundle JobBundle) (*JobBundleResult, error) {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var clientID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO clients (name) VALUES ($1)
		 ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		 RETURNING id`,
		strings.TrimSpace(bundle.ClientName),
	).Scan(&clientID)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert client: %w", err)
	}

	var jobID int64
	err = tx.QueryRow(ctx,
		`INSERT INTO jobs (title, client_id) VALUES ($1, $2) RETURNING id`,
		strings.TrimSpace(bundle.Title), clientID,
	).Scan(&jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to insert job: %w", err)
	}

	for _, skill := range trimmed(bundle.Skills) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO skills (name, job_id) VALUES ($1, $2)`, skill, jobID); err != nil {
			return nil, fmt.Errorf("failed to insert skill: %w", err)
		}
	}

	for _, fn := range trimmed(bundle.Functions) {
		if _, err := tx.Exec(ctx,
			`INSERT INTO functions (title, job_id) VALUES ($1, $2)`, fn, jobID); err != nil {
			return nil, fmt.Errorf("failed to insert function: %w", err)
		}
	}

	if profile := strings.TrimSpace(bundle.Profile); profile != "" {
		if _, err := tx.Exec(ctx,
			`INSERT INTO profiles (name, job_id) VALUES ($1, $2)`, profile, jobID); err != nil {
			return nil, fmt.Errorf("failed to insert profile: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit job bundle: %w", err)
	}

	return &JobBundleResult{ClientID: clientID, JobID: jobID}, nil
}

// GetClient retrieves a client by ID.
func (db *DB) GetClient(ctx context.Context, id int64) (*Client, error) {
	var c Client
	err := db.pool.QueryRow(ctx,
		`SELECT id, name FROM clients WHERE id = $1`, id,
	).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get client: %w", err)
	}
	return &c, nil
}

// GetJob retrieves a job by ID.
func (db *DB) GetJob(ctx context.Context, id int64) (*Job, error) {
	var j Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, client_id FROM jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.Title, &j.ClientID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &j, nil
}

// ListJobsByClient retrieves all jobs owned by a client.
func (db *DB) ListJobsByClient(ctx context.Context, clientID int64) ([]Job, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, title, client_id FROM jobs WHERE client_id = $1 ORDER BY id`,
		clientID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var j Job
		if err := rows.Scan(&j.ID, &j.Title, &j.ClientID); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

// JobRequirements carries the texts the pipeline compares a resume
// against.
type JobRequirements struct {
	Functions []string
	Profile   string
	Skills    []string
}

// GetJobRequirements retrieves the functions, skills and profile text
// for a job.
func (db *DB) GetJobRequirements(ctx context.Context, jobID int64) (*JobRequirements, error) {
	req := &JobRequirements{}

	rows, err := db.pool.Query(ctx,
		`SELECT title FROM functions WHERE job_id = $1 ORDER BY id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, fmt.Errorf("failed to scan function: %w", err)
		}
		req.Functions = append(req.Functions, title)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list functions: %w", err)
	}

	skillRows, err := db.pool.Query(ctx,
		`SELECT name FROM skills WHERE job_id = $1 ORDER BY id`, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	defer skillRows.Close()
	for skillRows.Next() {
		var name string
		if err := skillRows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan skill: %w", err)
		}
		req.Skills = append(req.Skills, name)
	}
	if err := skillRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`SELECT name FROM profiles WHERE job_id = $1 ORDER BY id LIMIT 1`, jobID,
	).Scan(&req.Profile)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return req, nil
}

// trimmed returns items with surrounding whitespace removed, dropping
// entries that are empty afterwards.
func trimmed(items []string) []string {
	var out []string
	for _, item := range items {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
