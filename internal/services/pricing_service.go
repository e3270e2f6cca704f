package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/epeers/folio/internal/cache"
	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/epeers/folio/internal/valuation"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// QuoteProvider looks up the current price of a ticker in its native currency
type QuoteProvider interface {
	Name() string
	GetPrice(ctx context.Context, ticker string, homeMarket bool) (decimal.Decimal, error)
}

// FXProvider looks up how many units of to one unit of from buys
type FXProvider interface {
	Name() string
	GetFXRate(ctx context.Context, from, to string) (decimal.Decimal, error)
}

var (
	// ErrPriceUnavailable is returned when every provider failed for a ticker
	ErrPriceUnavailable = errors.New("price unavailable")
	// ErrFXUnavailable is returned when every FX provider failed
	ErrFXUnavailable = errors.New("exchange rate unavailable")
)

const (
	FallbackSource = "fallback"
	CacheSource    = "cache"
)

// PricingConfig holds the knobs of the pricing service
type PricingConfig struct {
	Options        valuation.Options
	FallbackFXRate decimal.Decimal
	LookupTimeout  time.Duration
	Concurrency    int
}

// PricingService resolves prices and FX rates through ordered provider
// chains, memoizing results in a TTL cache
type PricingService struct {
	cfg              PricingConfig
	cache            *cache.MemoryCache
	homeProviders    []QuoteProvider
	foreignProviders []QuoteProvider
	fxProviders      []FXProvider
	group            singleflight.Group
}

// NewPricingService creates a new PricingService. homeProviders serve
// home-market tickers and foreignProviders everything else, each tried in order.
func NewPricingService(
	cfg PricingConfig,
	memCache *cache.MemoryCache,
	homeProviders []QuoteProvider,
	foreignProviders []QuoteProvider,
	fxProviders []FXProvider,
) *PricingService {
	if cfg.Concurrency < 1 {
		cfg.Concurrency = 1
	}
	return &PricingService{
		cfg:              cfg,
		cache:            memCache,
		homeProviders:    homeProviders,
		foreignProviders: foreignProviders,
		fxProviders:      fxProviders,
	}
}

// Options returns the valuation options the service was built with
func (s *PricingService) Options() valuation.Options {
	return s.cfg.Options
}

// ClearCache drops every memoized quote and rate
func (s *PricingService) ClearCache() {
	s.cache.Clear()
}

// FetchQuote resolves a ticker through the provider chain. The first provider
// returning a positive price wins. Quotes are cached and collapsed per market,
// and the shared lookup outlives the cancellation of whichever caller started it.
func (s *PricingService) FetchQuote(ctx context.Context, t string, homeMarket bool) (models.Quote, error) {
	key := ticker.Normalize(t)
	marketKey := quoteMarketKey(key, homeMarket)
	if q, ok := s.cache.GetQuote(marketKey); ok {
		q.Source = CacheSource
		return q, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("quote:"+marketKey, func() (any, error) {
		providers := s.foreignProviders
		if homeMarket {
			providers = s.homeProviders
		}

		var errs []error
		for _, p := range providers {
			price, err := s.callWithTimeout(flightCtx, func(c context.Context) (decimal.Decimal, error) {
				return p.GetPrice(c, key, homeMarket)
			})
			if err != nil {
				log.Debugf("%s: price lookup for %s failed: %v", p.Name(), key, err)
				errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				continue
			}
			if !price.IsPositive() {
				errs = append(errs, fmt.Errorf("%s: non-positive price %s", p.Name(), price))
				continue
			}
			q := models.Quote{Symbol: key, Price: price, Source: p.Name(), FetchedAt: time.Now()}
			s.cache.SetQuote(marketKey, q)
			return q, nil
		}
		if len(errs) == 0 {
			return models.Quote{}, fmt.Errorf("%w for %s: no providers configured", ErrPriceUnavailable, key)
		}
		return models.Quote{}, fmt.Errorf("%w for %s: %w", ErrPriceUnavailable, key, errors.Join(errs...))
	})
	if err != nil {
		return models.Quote{}, err
	}
	return v.(models.Quote), nil
}

// GetPrice returns the current price, or 0 with a warning when no provider
// could supply one
func (s *PricingService) GetPrice(ctx context.Context, t string, homeMarket bool) decimal.Decimal {
	q, err := s.FetchQuote(ctx, t, homeMarket)
	if err != nil {
		log.Warnf("price lookup failed for %s: %v", t, err)
		AddWarning(ctx, priceWarning(ticker.Normalize(t)))
		return decimal.Zero
	}
	return q.Price
}

// FetchFXRate resolves an exchange rate through the FX provider chain
func (s *PricingService) FetchFXRate(ctx context.Context, from, to string) (models.FXQuote, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return models.FXQuote{From: from, To: to, Rate: decimal.NewFromInt(1), Source: "identity", FetchedAt: time.Now()}, nil
	}
	if q, ok := s.cache.GetFXRate(from, to); ok {
		q.Source = CacheSource
		return q, nil
	}

	flightCtx := context.WithoutCancel(ctx)
	v, err, _ := s.group.Do("fx:"+from+"/"+to, func() (any, error) {
		var errs []error
		for _, p := range s.fxProviders {
			rate, err := s.callWithTimeout(flightCtx, func(c context.Context) (decimal.Decimal, error) {
				return p.GetFXRate(c, from, to)
			})
			if err != nil {
				log.Debugf("%s: fx lookup %s/%s failed: %v", p.Name(), from, to, err)
				errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
				continue
			}
			if !rate.IsPositive() {
				errs = append(errs, fmt.Errorf("%s: non-positive rate %s", p.Name(), rate))
				continue
			}
			q := models.FXQuote{From: from, To: to, Rate: rate, Source: p.Name(), FetchedAt: time.Now()}
			s.cache.SetFXRate(q)
			return q, nil
		}
		if len(errs) == 0 {
			return models.FXQuote{}, fmt.Errorf("%w for %s/%s: no providers configured", ErrFXUnavailable, from, to)
		}
		return models.FXQuote{}, fmt.Errorf("%w for %s/%s: %w", ErrFXUnavailable, from, to, errors.Join(errs...))
	})
	if err != nil {
		return models.FXQuote{}, err
	}
	return v.(models.FXQuote), nil
}

// GetFXRate returns the exchange rate, or the configured fallback rate with
// a warning when no provider could supply one
func (s *PricingService) GetFXRate(ctx context.Context, from, to string) models.FXQuote {
	q, err := s.FetchFXRate(ctx, from, to)
	if err == nil {
		return q
	}
	log.Warnf("fx lookup failed, using fallback %s: %v", s.cfg.FallbackFXRate, err)
	AddWarning(ctx, models.Warning{
		Code:    models.WarnFXFallback,
		Message: fmt.Sprintf("exchange rate %s/%s unavailable, using fallback rate %s", strings.ToUpper(from), strings.ToUpper(to), s.cfg.FallbackFXRate),
	})
	return models.FXQuote{
		From:      strings.ToUpper(from),
		To:        strings.ToUpper(to),
		Rate:      s.cfg.FallbackFXRate,
		Source:    FallbackSource,
		Fallback:  true,
		FetchedAt: time.Now(),
	}
}

// CurrentFX returns the foreign-to-home rate used for valuation
func (s *PricingService) CurrentFX(ctx context.Context) models.FXQuote {
	return s.GetFXRate(ctx, s.cfg.Options.ForeignCurrency, s.cfg.Options.HomeCurrency)
}

// Snapshot freezes the market data for one computation pass: the FX rate is
// fetched exactly once, then every distinct non-cash ticker is priced
// concurrently. Failed tickers are recorded in Missed with a warning.
func (s *PricingService) Snapshot(ctx context.Context, holdings []models.Holding) *models.MarketSnapshot {
	defer TrackTime("Snapshot", time.Now())

	snap := &models.MarketSnapshot{
		FX:      s.CurrentFX(ctx),
		Prices:  make(map[string]decimal.Decimal),
		Missed:  make(map[string]bool),
		TakenAt: time.Now(),
	}

	// first occurrence decides which market a ticker is looked up in
	lookups := make(map[string]bool)
	var order []string
	for _, h := range holdings {
		if s.cfg.Options.IsCash(h.Ticker) {
			continue
		}
		key := ticker.Normalize(h.Ticker)
		if key == "" {
			continue
		}
		if _, seen := lookups[key]; seen {
			continue
		}
		lookups[key] = !s.cfg.Options.IsForeignCurrency(h)
		order = append(order, key)
	}

	var mu sync.Mutex
	g := new(errgroup.Group)
	g.SetLimit(s.cfg.Concurrency)
	for _, key := range order {
		key := key
		homeMarket := lookups[key]
		g.Go(func() error {
			q, err := s.FetchQuote(ctx, key, homeMarket)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.Warnf("snapshot: %v", err)
				snap.Missed[key] = true
				return nil
			}
			snap.Prices[key] = q.Price
			return nil
		})
	}
	_ = g.Wait()

	missed := make([]string, 0, len(snap.Missed))
	for key := range snap.Missed {
		missed = append(missed, key)
	}
	sort.Strings(missed)
	for _, key := range missed {
		AddWarning(ctx, priceWarning(key))
	}
	return snap
}

// Lookup adapts a snapshot to the valuation engine's price lookup
func Lookup(snap *models.MarketSnapshot) valuation.PriceLookup {
	return func(t string) (decimal.Decimal, error) {
		p, ok := snap.Price(t)
		if !ok {
			return decimal.Zero, fmt.Errorf("%w for %s", ErrPriceUnavailable, ticker.Normalize(t))
		}
		return p, nil
	}
}

func (s *PricingService) callWithTimeout(ctx context.Context, fn func(context.Context) (decimal.Decimal, error)) (decimal.Decimal, error) {
	if s.cfg.LookupTimeout <= 0 {
		return fn(ctx)
	}
	c, cancel := context.WithTimeout(ctx, s.cfg.LookupTimeout)
	defer cancel()
	return fn(c)
}

// quoteMarketKey keys the quote cache and lookup flights by ticker and market,
// since the two markets resolve through different provider chains
func quoteMarketKey(key string, homeMarket bool) string {
	if homeMarket {
		return key + "@home"
	}
	return key + "@foreign"
}

func priceWarning(key string) models.Warning {
	return models.Warning{
		Code:    models.WarnPriceUnavailable,
		Message: fmt.Sprintf("no price available for %s, valued at 0", key),
	}
}
