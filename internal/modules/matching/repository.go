package matching

import (
	"context"
	"errors"
	"fmt"

	"thru-backend/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// VendorSourceInterface declares the read operations the candidate filter
// needs from the vendor store. The engine never writes vendors.
type VendorSourceInterface interface {
	// ListActiveVendors returns all active vendors that have coordinates.
	ListActiveVendors(ctx context.Context) ([]*models.VendorLocation, error)
	// FindByID returns a single vendor regardless of active flag.
	FindByID(ctx context.Context, vendorID string) (*models.VendorLocation, error)
}

// Repository is a PostgreSQL implementation of VendorSourceInterface.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new vendor source backed by the given pool.
func NewRepository(db *pgxpool.Pool) VendorSourceInterface {
	return &Repository{db: db}
}

// ListActiveVendors retrieves every active vendor with a known location.
func (r *Repository) ListActiveVendors(ctx context.Context) ([]*models.VendorLocation, error) {
	query := `
        SELECT id, name, store_type, latitude, longitude, address, COALESCE(email, ''), is_active, created_at, updated_at
        FROM vendors
        WHERE is_active = TRUE
          AND latitude IS NOT NULL
          AND longitude IS NOT NULL`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("repo.ListActiveVendors: %w", err)
	}
	defer rows.Close()

	var vendors []*models.VendorLocation
	for rows.Next() {
		v := &models.VendorLocation{}
		if err := rows.Scan(&v.ID, &v.Name, &v.StoreType, &v.Latitude, &v.Longitude, &v.Address, &v.Email, &v.IsActive, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("repo.ListActiveVendors scan: %w", err)
		}
		vendors = append(vendors, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.ListActiveVendors rows: %w", err)
	}
	return vendors, nil
}

// FindByID retrieves one vendor by its identifier.
func (r *Repository) FindByID(ctx context.Context, vendorID string) (*models.VendorLocation, error) {
	query := `
        SELECT id, name, store_type, latitude, longitude, address, COALESCE(email, ''), is_active, created_at, updated_at
        FROM vendors
        WHERE id = $1`

	v := &models.VendorLocation{}
	err := r.db.QueryRow(ctx, query, vendorID).
		Scan(&v.ID, &v.Name, &v.StoreType, &v.Latitude, &v.Longitude, &v.Address, &v.Email, &v.IsActive, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, models.ErrNotFound
		}
		return nil, fmt.Errorf("repo.FindByID: %w", err)
	}
	return v, nil
}
