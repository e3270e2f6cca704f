package cache

import (
	"strings"
	"sync"
	"time"

	"github.com/epeers/folio/internal/models"
)

// MemoryCache provides an in-memory cache for quotes and FX rates.
// Entries older than the TTL are treated as missing.
type MemoryCache struct {
	quotes  map[string]quoteEntry
	fx      map[string]fxEntry
	quoteMu sync.RWMutex
	fxMu    sync.RWMutex
	ttl     time.Duration
	now     func() time.Time
}

type quoteEntry struct {
	quote     models.Quote
	fetchedAt time.Time
}

type fxEntry struct {
	quote     models.FXQuote
	fetchedAt time.Time
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		quotes: make(map[string]quoteEntry),
		fx:     make(map[string]fxEntry),
		ttl:    ttl,
		now:    time.Now,
	}
}

func quoteKey(ticker string) string {
	return strings.ToUpper(strings.TrimSpace(ticker))
}

func fxKey(from, to string) string {
	return strings.ToUpper(from) + "/" + strings.ToUpper(to)
}

func (c *MemoryCache) fresh(fetchedAt time.Time) bool {
	return c.now().Sub(fetchedAt) <= c.ttl
}

// GetQuote retrieves a cached quote if fresh
func (c *MemoryCache) GetQuote(ticker string) (models.Quote, bool) {
	c.quoteMu.RLock()
	defer c.quoteMu.RUnlock()

	entry, exists := c.quotes[quoteKey(ticker)]
	if !exists || !c.fresh(entry.fetchedAt) {
		return models.Quote{}, false
	}
	return entry.quote, true
}

// SetQuote caches a quote
func (c *MemoryCache) SetQuote(ticker string, quote models.Quote) {
	c.quoteMu.Lock()
	defer c.quoteMu.Unlock()

	c.quotes[quoteKey(ticker)] = quoteEntry{
		quote:     quote,
		fetchedAt: c.now(),
	}
}

// InvalidateQuote removes a quote from the cache
func (c *MemoryCache) InvalidateQuote(ticker string) {
	c.quoteMu.Lock()
	defer c.quoteMu.Unlock()

	delete(c.quotes, quoteKey(ticker))
}

// GetFXRate retrieves a cached exchange rate if fresh
func (c *MemoryCache) GetFXRate(from, to string) (models.FXQuote, bool) {
	c.fxMu.RLock()
	defer c.fxMu.RUnlock()

	entry, exists := c.fx[fxKey(from, to)]
	if !exists || !c.fresh(entry.fetchedAt) {
		return models.FXQuote{}, false
	}
	return entry.quote, true
}

// SetFXRate caches an exchange rate. Fallback rates are never cached so the
// next pass retries the providers.
func (c *MemoryCache) SetFXRate(quote models.FXQuote) {
	if quote.Fallback {
		return
	}
	c.fxMu.Lock()
	defer c.fxMu.Unlock()

	c.fx[fxKey(quote.From, quote.To)] = fxEntry{
		quote:     quote,
		fetchedAt: c.now(),
	}
}

// Clear removes all cached data
func (c *MemoryCache) Clear() {
	c.quoteMu.Lock()
	c.quotes = make(map[string]quoteEntry)
	c.quoteMu.Unlock()

	c.fxMu.Lock()
	c.fx = make(map[string]fxEntry)
	c.fxMu.Unlock()
}
