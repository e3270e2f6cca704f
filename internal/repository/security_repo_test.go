package repository

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/epeers/folio/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
)

// getTestPool connects to PG_URL, skipping the test when it is unset
func getTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}
	pgURL := os.Getenv("PG_URL")
	if pgURL == "" {
		t.Skip("PG_URL environment variable not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		t.Fatalf("Failed to ping database: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func TestSecurityRepository_RoundTrip(t *testing.T) {
	pool := getTestPool(t)
	repo := NewSecurityRepository(pool)
	ctx := context.Background()

	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}

	listings := []models.Listing{
		{Symbol: "tst000660.ks", Name: "SK하이닉스", Sector: "반도체", Country: "한국", Currency: "krw"},
		{Symbol: "TSTIAU", Name: "iShares Gold Trust", Sector: "Gold", Country: models.CountryForeign, Currency: "USD"},
	}
	for _, l := range listings {
		defer repo.Delete(ctx, l.Symbol)
		if err := repo.Upsert(ctx, l); err != nil {
			t.Fatalf("Upsert failed: %v", err)
		}
	}

	got, err := repo.GetListing(ctx, "TST000660.KS")
	if err != nil {
		t.Fatalf("GetListing failed: %v", err)
	}
	if got.Sector != "반도체" || got.Country != models.CountryDomestic || got.Currency != "KRW" {
		t.Errorf("unexpected listing %+v", got)
	}

	many, err := repo.GetMultipleBySymbols(ctx, []string{"tstiau", "TST000660.KS", "TSTNOPE"})
	if err != nil {
		t.Fatalf("GetMultipleBySymbols failed: %v", err)
	}
	if len(many) != 2 {
		t.Errorf("expected 2 listings, got %d", len(many))
	}
	if many["TSTIAU"] == nil || many["TSTIAU"].Country != models.CountryForeign {
		t.Errorf("unexpected TSTIAU listing %+v", many["TSTIAU"])
	}

	// upsert replaces
	listings[1].Sector = "Commodities"
	if err := repo.Upsert(ctx, listings[1]); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}
	got, _ = repo.GetListing(ctx, "TSTIAU")
	if got.Sector != "Commodities" {
		t.Errorf("expected updated sector, got %s", got.Sector)
	}

	if _, err := repo.GetListing(ctx, "TSTNOPE"); !errors.Is(err, ErrSecurityNotFound) {
		t.Errorf("expected ErrSecurityNotFound, got %v", err)
	}
}

func TestGetMultipleBySymbols_EmptyInputSkipsQuery(t *testing.T) {
	// nil pool: an empty input must not reach the database
	repo := NewSecurityRepository(nil)
	got, err := repo.GetMultipleBySymbols(context.Background(), nil)
	if err != nil || len(got) != 0 {
		t.Errorf("expected empty result, got %v (%v)", got, err)
	}
}
