// Package valuation turns holdings, a price snapshot and one FX rate into
// valuation, rebalance and summary tables. Everything here is a pure
// function of its inputs; fetching market data is the caller's job.
package valuation

import (
	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/shopspring/decimal"
)

const (
	DefaultHomeCurrency    = "KRW"
	DefaultForeignCurrency = "USD"
)

// DefaultCashCostThreshold separates the two ways foreign cash cost basis is
// entered in holdings sheets. Below it the figure is a per-unit cost in the
// foreign currency (usually 1); at or above it the user typed the exchange
// rate they bought at, which is already in the home currency.
var DefaultCashCostThreshold = decimal.NewFromInt(50)

var (
	one     = decimal.NewFromInt(1)
	hundred = decimal.NewFromInt(100)
)

// Options configures the currency rules of a valuation pass
type Options struct {
	HomeCurrency      string          // ticker sentinel for home cash, also the reporting currency
	ForeignCurrency   string          // ticker sentinel for foreign cash
	CashCostThreshold decimal.Decimal // see DefaultCashCostThreshold
}

// DefaultOptions returns KRW reporting with USD as the foreign currency
func DefaultOptions() Options {
	return Options{
		HomeCurrency:      DefaultHomeCurrency,
		ForeignCurrency:   DefaultForeignCurrency,
		CashCostThreshold: DefaultCashCostThreshold,
	}
}

// IsHomeCash reports whether the ticker is the home-cash sentinel
func (o Options) IsHomeCash(t string) bool {
	return ticker.Normalize(t) == ticker.Normalize(o.HomeCurrency)
}

// IsForeignCash reports whether the ticker is the foreign-cash sentinel
func (o Options) IsForeignCash(t string) bool {
	return ticker.Normalize(t) == ticker.Normalize(o.ForeignCurrency)
}

// IsCash reports whether the ticker is either cash sentinel
func (o Options) IsCash(t string) bool {
	return o.IsHomeCash(t) || o.IsForeignCash(t)
}

// IsForeignCurrency reports whether the holding's native currency is the foreign one.
// Cash sentinels carry their own currency regardless of the country column.
func (o Options) IsForeignCurrency(h models.Holding) bool {
	switch {
	case o.IsForeignCash(h.Ticker):
		return true
	case o.IsHomeCash(h.Ticker):
		return false
	}
	return h.Country == models.CountryForeign
}
