package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSecurityNotFound = errors.New("security not found")

// ListingSchema creates the listing directory table. The directory is
// reference data only; holdings never touch the database.
const ListingSchema = `
	CREATE TABLE IF NOT EXISTS dim_listing (
		ticker   TEXT PRIMARY KEY,
		name     TEXT NOT NULL DEFAULT '',
		sector   TEXT NOT NULL DEFAULT '',
		country  TEXT NOT NULL DEFAULT '',
		currency TEXT NOT NULL DEFAULT ''
	)
`

// SecurityRepository reads listing metadata from PostgreSQL
type SecurityRepository struct {
	pool *pgxpool.Pool
}

// NewSecurityRepository creates a new SecurityRepository
func NewSecurityRepository(pool *pgxpool.Pool) *SecurityRepository {
	return &SecurityRepository{pool: pool}
}

// EnsureSchema creates the listing table if it does not exist
func (r *SecurityRepository) EnsureSchema(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, ListingSchema); err != nil {
		return fmt.Errorf("failed to create listing table: %w", err)
	}
	return nil
}

// GetListing retrieves the listing for one ticker
func (r *SecurityRepository) GetListing(ctx context.Context, symbol string) (*models.Listing, error) {
	query := `
		SELECT ticker, name, sector, country, currency
		FROM dim_listing
		WHERE ticker = $1
	`
	l, err := scanListing(r.pool.QueryRow(ctx, query, ticker.Normalize(symbol)))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrSecurityNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}
	return l, nil
}

// GetMultipleBySymbols retrieves listings for several tickers in one query.
// Tickers without a row are absent from the result.
func (r *SecurityRepository) GetMultipleBySymbols(ctx context.Context, symbols []string) (map[string]*models.Listing, error) {
	if len(symbols) == 0 {
		return make(map[string]*models.Listing), nil
	}
	normalized := make([]string, len(symbols))
	for i, s := range symbols {
		normalized[i] = ticker.Normalize(s)
	}

	query := `
		SELECT ticker, name, sector, country, currency
		FROM dim_listing
		WHERE ticker = ANY($1)
	`
	rows, err := r.pool.Query(ctx, query, normalized)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings by symbols: %w", err)
	}
	defer rows.Close()

	result := make(map[string]*models.Listing)
	for rows.Next() {
		l, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", err)
		}
		result[l.Symbol] = l
	}
	return result, rows.Err()
}

// Upsert inserts or replaces a listing
func (r *SecurityRepository) Upsert(ctx context.Context, l models.Listing) error {
	query := `
		INSERT INTO dim_listing (ticker, name, sector, country, currency)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (ticker) DO UPDATE
		SET name = EXCLUDED.name,
		    sector = EXCLUDED.sector,
		    country = EXCLUDED.country,
		    currency = EXCLUDED.currency
	`
	_, err := r.pool.Exec(ctx, query, ticker.Normalize(l.Symbol), l.Name, l.Sector, string(l.Country), strings.ToUpper(l.Currency))
	if err != nil {
		return fmt.Errorf("failed to upsert listing %s: %w", l.Symbol, err)
	}
	return nil
}

// Delete removes a listing
func (r *SecurityRepository) Delete(ctx context.Context, symbol string) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM dim_listing WHERE ticker = $1`, ticker.Normalize(symbol)); err != nil {
		return fmt.Errorf("failed to delete listing %s: %w", symbol, err)
	}
	return nil
}

func scanListing(row pgx.Row) (*models.Listing, error) {
	l := &models.Listing{}
	var country string
	if err := row.Scan(&l.Symbol, &l.Name, &l.Sector, &country, &l.Currency); err != nil {
		return nil, err
	}
	// free-text country columns are accepted in any spelling ParseCountry knows
	if c, ok := ticker.ParseCountry(country); ok {
		l.Country = c
	}
	return l, nil
}
