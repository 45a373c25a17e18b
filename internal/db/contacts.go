package db

import (
	"context"
	"fmt"
)

// InsertContact persists a contact-form submission and fills in the
// generated ID and timestamp.
func (db *DB) InsertContact(ctx context.Context, c *Contact) error {
	err := db.pool.QueryRow(ctx,
		`INSERT INTO contacts (name, company, email, message)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		c.Name, c.Company, c.Email, c.Message,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact: %w", err)
	}
	return nil
}
