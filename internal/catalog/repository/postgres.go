package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"wedding-marketplace/internal/catalog"

	"github.com/lib/pq"
)

const (
	healthCheckTimeout = 2 * time.Second

	pqForeignKeyViolation = "23503"
)

type PostgresRepository struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanListing(row scanner) (catalog.Listing, error) {
	var (
		l         catalog.Listing
		priceFrom sql.NullFloat64
		priceTo   sql.NullFloat64
	)
	if err := row.Scan(
		&l.ID, &l.VendorID, &l.VendorName, &l.WhatsAppNumber,
		&l.Name, &l.Description, &l.Category, &l.Location,
		&priceFrom, &priceTo, &l.PriceUnit,
		&l.IsFeatured, &l.ViewCount, &l.CreatedAt,
	); err != nil {
		return catalog.Listing{}, err
	}
	if priceFrom.Valid {
		l.PriceFrom = &priceFrom.Float64
	}
	if priceTo.Valid {
		l.PriceTo = &priceTo.Float64
	}
	return l, nil
}

func nullablePrice(p *float64) sql.NullFloat64 {
	if p == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *p, Valid: true}
}

func (r *PostgresRepository) Create(ctx context.Context, vendorID string, s catalog.ProductSubmission) (catalog.Listing, error) {
	query := `
		WITH inserted AS (
			INSERT INTO listings (vendor_id, name, description, category, location, price_from, price_to, price_unit)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING id, vendor_id, name, description, category, location, price_from, price_to, price_unit, is_featured, view_count, created_at
		)
		SELECT l.id, l.vendor_id, v.name, v.whatsapp_number, l.name, l.description, l.category, l.location,
			l.price_from, l.price_to, l.price_unit, l.is_featured, l.view_count, l.created_at
		FROM inserted l
		JOIN vendors v ON v.id = l.vendor_id
	`

	row := r.db.QueryRowContext(ctx, query,
		vendorID, s.Name, s.Description, s.Category, s.Location,
		nullablePrice(s.PriceFrom), nullablePrice(s.PriceTo), s.PriceUnit,
	)
	l, err := scanListing(row)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation {
			return catalog.Listing{}, catalog.ErrUnknownVendor
		}
		return catalog.Listing{}, fmt.Errorf("insert listing: %w", err)
	}
	return l, nil
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (catalog.Listing, error) {
	query, args, err := listingSelect().Where("l.id = ?", id).ToSql()
	if err != nil {
		return catalog.Listing{}, fmt.Errorf("build listing query: %w", err)
	}

	l, err := scanListing(r.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return catalog.Listing{}, catalog.ErrNotFound
		}
		return catalog.Listing{}, fmt.Errorf("get listing %d: %w", id, err)
	}
	return l, nil
}

// Delete removes a listing owned by vendorID.
func (r *PostgresRepository) Delete(ctx context.Context, vendorID string, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM listings WHERE id = $1 AND vendor_id = $2`, id, vendorID)
	if err != nil {
		return fmt.Errorf("delete listing %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected > 0 {
		return nil
	}

	var owner string
	err = r.db.QueryRowContext(ctx, `SELECT vendor_id FROM listings WHERE id = $1`, id).Scan(&owner)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return catalog.ErrNotFound
	case err != nil:
		return fmt.Errorf("lookup listing owner %d: %w", id, err)
	}
	return catalog.ErrForbidden
}

func (r *PostgresRepository) Search(ctx context.Context, q catalog.SearchQuery, limit, offset int) ([]catalog.Listing, error) {
	query, args, err := searchQuery(q, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("build search query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	list := make([]catalog.Listing, 0)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("scan listing: %w", err)
		}
		list = append(list, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate listings: %w", err)
	}

	return list, nil
}

func (r *PostgresRepository) Count(ctx context.Context, q catalog.SearchQuery) (int64, error) {
	query, args, err := countQuery(q)
	if err != nil {
		return 0, fmt.Errorf("build count query: %w", err)
	}

	var total int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count listings: %w", err)
	}
	return total, nil
}

func (r *PostgresRepository) IncrementViews(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `UPDATE listings SET view_count = view_count + 1 WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("increment views %d: %w", id, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) Health() error {
	ctx, cancel := context.WithTimeout(context.Background(), healthCheckTimeout)
	defer cancel()
	return r.db.PingContext(ctx)
}
