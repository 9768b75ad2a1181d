package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"wedding-marketplace/internal/catalog"
)

func (r *PostgresRepository) CreateContact(ctx context.Context, c catalog.ContactLog) (catalog.ContactLog, error) {
	query := `
		INSERT INTO contact_logs (listing_id, vendor_id, buyer_id, status)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	buyer := sql.NullString{String: c.BuyerID, Valid: c.BuyerID != ""}
	if err := r.db.QueryRowContext(ctx, query, c.ListingID, c.VendorID, buyer, c.Status).
		Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return catalog.ContactLog{}, fmt.Errorf("insert contact: %w", err)
	}
	return c, nil
}

func (r *PostgresRepository) GetContact(ctx context.Context, id int64) (catalog.ContactLog, error) {
	query := `
		SELECT id, listing_id, vendor_id, COALESCE(buyer_id, ''), status, created_at, updated_at
		FROM contact_logs
		WHERE id = $1
	`

	var c catalog.ContactLog
	err := r.db.QueryRowContext(ctx, query, id).
		Scan(&c.ID, &c.ListingID, &c.VendorID, &c.BuyerID, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.ContactLog{}, catalog.ErrContactNotFound
		}
		return catalog.ContactLog{}, fmt.Errorf("get contact %d: %w", id, err)
	}
	return c, nil
}

// UpdateContactStatus moves a contact from one status to another. It fails
// with ErrInvalidTransition when the stored status is no longer from.
func (r *PostgresRepository) UpdateContactStatus(ctx context.Context, id int64, from, to catalog.ContactStatus) error {
	query := `
		UPDATE contact_logs
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3
	`

	result, err := r.db.ExecContext(ctx, query, to, id, from)
	if err != nil {
		return fmt.Errorf("update contact %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return catalog.ErrInvalidTransition
	}
	return nil
}
