package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/epeers/folio/internal/valuation"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// Config holds application configuration loaded from environment variables
type Config struct {
	PGURL             string // optional, enables the listing directory
	AVKey             string // optional, enables AlphaVantage as a fallback provider
	Port              string
	HomeCurrency      string
	ForeignCurrency   string
	FXFallbackRate    decimal.Decimal
	CashCostThreshold decimal.Decimal
	QuoteTTL          time.Duration
	LookupTimeout     time.Duration
	QuoteConcurrency  int
	ExcludedAccounts  []string
	LogLevel          log.Level
}

// Load reads configuration from environment variables. A .env file in the
// working directory is read first; variables already set in the shell win.
func Load() (*Config, error) {
	// a missing .env is fine
	_ = godotenv.Load()

	cfg := &Config{
		PGURL:            os.Getenv("PG_URL"),
		AVKey:            os.Getenv("AV_KEY"),
		Port:             getEnv("PORT", "8080"),
		HomeCurrency:     strings.ToUpper(getEnv("HOME_CURRENCY", valuation.DefaultHomeCurrency)),
		ForeignCurrency:  strings.ToUpper(getEnv("FOREIGN_CURRENCY", valuation.DefaultForeignCurrency)),
		ExcludedAccounts: splitList(getEnv("EXCLUDED_ACCOUNTS", "IRP,연금,Pension")),
	}

	for _, code := range []string{cfg.HomeCurrency, cfg.ForeignCurrency} {
		if money.GetCurrency(code) == nil {
			return nil, fmt.Errorf("unknown currency code %q", code)
		}
	}
	if cfg.HomeCurrency == cfg.ForeignCurrency {
		return nil, fmt.Errorf("HOME_CURRENCY and FOREIGN_CURRENCY must differ, both are %s", cfg.HomeCurrency)
	}

	var err error
	if cfg.FXFallbackRate, err = getDecimal("FX_FALLBACK_RATE", "1450"); err != nil {
		return nil, err
	}
	if !cfg.FXFallbackRate.IsPositive() {
		return nil, fmt.Errorf("FX_FALLBACK_RATE must be positive, got %s", cfg.FXFallbackRate)
	}
	if cfg.CashCostThreshold, err = getDecimal("CASH_COST_THRESHOLD", "50"); err != nil {
		return nil, err
	}
	if !cfg.CashCostThreshold.IsPositive() {
		return nil, fmt.Errorf("CASH_COST_THRESHOLD must be positive, got %s", cfg.CashCostThreshold)
	}
	if cfg.QuoteTTL, err = getDuration("QUOTE_TTL", time.Minute); err != nil {
		return nil, err
	}
	if cfg.LookupTimeout, err = getDuration("LOOKUP_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	concurrency := getEnv("QUOTE_CONCURRENCY", "4")
	cfg.QuoteConcurrency, err = strconv.Atoi(concurrency)
	if err != nil || cfg.QuoteConcurrency < 1 {
		return nil, fmt.Errorf("QUOTE_CONCURRENCY must be a positive integer, got %q", concurrency)
	}

	if cfg.LogLevel, err = log.ParseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}

	return cfg, nil
}

// ValuationOptions returns the currency rules of a valuation pass
func (c *Config) ValuationOptions() valuation.Options {
	return valuation.Options{
		HomeCurrency:      c.HomeCurrency,
		ForeignCurrency:   c.ForeignCurrency,
		CashCostThreshold: c.CashCostThreshold,
	}
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getDecimal(key, fallback string) (decimal.Decimal, error) {
	raw := getEnv(key, fallback)
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s %q: %w", key, raw, err)
	}
	return v, nil
}

func getDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("invalid %s %q: must be a positive duration", key, raw)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
