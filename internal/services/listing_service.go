package services

import (
	"context"
	"strings"
	"time"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	log "github.com/sirupsen/logrus"
)

// ListingDirectory supplies static metadata for a ticker
type ListingDirectory interface {
	GetListing(ctx context.Context, ticker string) (*models.Listing, error)
}

// BatchListingDirectory is a directory that can resolve many tickers in one round trip
type BatchListingDirectory interface {
	ListingDirectory
	GetMultipleBySymbols(ctx context.Context, tickers []string) (map[string]*models.Listing, error)
}

// ListingStore remembers listings resolved by other directories
type ListingStore interface {
	Upsert(ctx context.Context, l models.Listing) error
}

// ListingService fills blank sector and country columns from listing
// directories, consulted in order. It never fails an import: a row it cannot
// resolve is left for validation to default.
type ListingService struct {
	directories []ListingDirectory
	store       ListingStore
	timeout     time.Duration
}

// NewListingService creates a new ListingService
func NewListingService(timeout time.Duration, directories ...ListingDirectory) *ListingService {
	return &ListingService{
		directories: directories,
		timeout:     timeout,
	}
}

// WithStore writes listings found by the other directories back to store
func (s *ListingService) WithStore(store ListingStore) *ListingService {
	s.store = store
	return s
}

// Enrich returns a copy of holdings with blank sector/country filled in where
// a directory knows the ticker. Cash sentinels are skipped.
func (s *ListingService) Enrich(ctx context.Context, holdings []models.Holding, isCash func(string) bool) []models.Holding {
	out := make([]models.Holding, len(holdings))
	copy(out, holdings)
	if s == nil || len(s.directories) == 0 {
		return out
	}
	defer TrackTime("ListingService.Enrich", time.Now())

	var pending []*models.Holding
	var keys []string
	seen := make(map[string]bool)
	for i := range out {
		h := &out[i]
		if strings.TrimSpace(h.Sector) != "" && strings.TrimSpace(string(h.Country)) != "" {
			continue
		}
		if isCash != nil && isCash(h.Ticker) {
			continue
		}
		pending = append(pending, h)
		if key := ticker.Normalize(h.Ticker); !seen[key] {
			seen[key] = true
			keys = append(keys, key)
		}
	}
	if len(pending) == 0 {
		return out
	}

	resolved := s.prefetch(ctx, keys)
	for _, h := range pending {
		key := ticker.Normalize(h.Ticker)
		l, ok := resolved[key]
		if !ok {
			l = s.lookup(ctx, key)
			resolved[key] = l
		}
		if l == nil {
			continue
		}
		if strings.TrimSpace(h.Sector) == "" && l.Sector != "" {
			h.Sector = l.Sector
		}
		if strings.TrimSpace(string(h.Country)) == "" && l.Country != "" {
			h.Country = l.Country
		}
	}
	return out
}

// prefetch asks batch directories for every key at once. Only hits are
// returned; misses fall through to the per-ticker chain.
func (s *ListingService) prefetch(ctx context.Context, keys []string) map[string]*models.Listing {
	resolved := make(map[string]*models.Listing, len(keys))
	for _, d := range s.directories {
		batch, ok := d.(BatchListingDirectory)
		if !ok {
			continue
		}
		c, cancel := s.withTimeout(ctx)
		found, err := batch.GetMultipleBySymbols(c, keys)
		cancel()
		if err != nil {
			log.Debugf("batch listing lookup failed: %v", err)
			continue
		}
		for k, l := range found {
			if _, done := resolved[k]; !done && l != nil {
				resolved[k] = l
			}
		}
	}
	return resolved
}

func (s *ListingService) lookup(ctx context.Context, key string) *models.Listing {
	for _, d := range s.directories {
		if _, ok := d.(BatchListingDirectory); ok {
			// already asked during prefetch
			continue
		}
		c, cancel := s.withTimeout(ctx)
		l, err := d.GetListing(c, key)
		cancel()
		if err != nil {
			log.Debugf("listing lookup for %s failed: %v", key, err)
			continue
		}
		if l == nil {
			continue
		}
		if s.store != nil {
			rec := *l
			rec.Symbol = key
			if err := s.store.Upsert(ctx, rec); err != nil {
				log.Warnf("failed to remember listing %s: %v", key, err)
			}
		}
		return l
	}
	return nil
}

func (s *ListingService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout > 0 {
		return context.WithTimeout(ctx, s.timeout)
	}
	return ctx, func() {}
}
