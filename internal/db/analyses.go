package db

import (
	"context"
	"fmt"
)

// sortColumns is the explicit set of fields analyses can be ordered by.
// Anything outside this map is rejected before it reaches SQL.
var sortColumns = map[string]string{
	"match_score": "match_score",
	"created_at":  "created_at",
	"name":        "name",
	"job_title":   "job_title",
}

// SortableFields lists the accepted order_by values for analyses.
func SortableFields() []string {
	return []string{"created_at", "job_title", "match_score", "name"}
}

// IsSortable reports whether field is an accepted analysis ordering.
func IsSortable(field string) bool {
	_, ok := sortColumns[field]
	return ok
}

// AnalysisFilter holds optional filters and ordering for listing
// analyses. An empty OrderBy defaults to match_score.
type AnalysisFilter struct {
	Name      string
	JobTitle  string
	OrderBy   string
	Ascending bool
	Limit     int
}

// InsertAnalysis persists one completed evaluation and fills in the
// generated ID and timestamp. Analyses are write-once: there is no
// update path.
func (db *DB) InsertAnalysis(ctx context.Context, a *Analysis) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO analyses (name, job_title, match_score, feedback, decision, file_name)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		a.Name, a.JobTitle, a.MatchScore, a.Feedback, a.Decision, a.FileName,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert analysis: %w", err)
	}
	return nil
}

// ListAnalyses retrieves analyses with optional name/job filters and an
// explicit ordering.
func (db *DB) ListAnalyses(ctx context.Context, filter AnalysisFilter) ([]Analysis, error) {
	orderBy := filter.OrderBy
	if orderBy == "" {
		orderBy = "match_score"
	}
	column, ok := sortColumns[orderBy]
	if !ok {
		return nil, fmt.Errorf("unsupported order field: %q", orderBy)
	}

	direction := "DESC"
	if filter.Ascending {
		direction = "ASC"
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}

	query := `SELECT id, name, job_title, match_score, feedback, decision, file_name, created_at
		FROM analyses WHERE 1=1`
	args := []any{}
	argNum := 1

	if filter.Name != "" {
		query += fmt.Sprintf(" AND name ILIKE $%d", argNum)
		args = append(args, "%"+filter.Name+"%")
		argNum++
	}
	if filter.JobTitle != "" {
		query += fmt.Sprintf(" AND job_title ILIKE $%d", argNum)
		args = append(args, "%"+filter.JobTitle+"%")
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY %s %s LIMIT $%d", column, direction, argNum)
	args = append(args, limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	var analyses []Analysis
	for rows.Next() {
		var a Analysis
		if err := rows.Scan(&a.ID, &a.Name, &a.JobTitle, &a.MatchScore,
			&a.Feedback, &a.Decision, &a.FileName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		analyses = append(analyses, a)
	}
	return analyses, rows.Err()
}
