package models

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Listing is static exchange-listing metadata for a ticker, used to fill in
// sector and market information that a holdings sheet left blank
type Listing struct {
	Symbol   string  `json:"symbol"`
	Name     string  `json:"name"`
	Sector   string  `json:"sector"`
	Country  Country `json:"country"`
	Currency string  `json:"currency"`
}

// Quote represents a real-time quote for a ticker
type Quote struct {
	Symbol    string          `json:"symbol"`
	Price     decimal.Decimal `json:"price"`
	Source    string          `json:"source"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// FXQuote is an exchange rate expressed as units of To per one unit of From
type FXQuote struct {
	From      string          `json:"from"`
	To        string          `json:"to"`
	Rate      decimal.Decimal `json:"rate"`
	Source    string          `json:"source"`
	Fallback  bool            `json:"fallback"`
	FetchedAt time.Time       `json:"fetched_at"`
}

// MarketSnapshot is the frozen set of market data for one computation pass.
// Every table derived in the pass reads from the same snapshot.
type MarketSnapshot struct {
	FX      FXQuote                    `json:"fx"`
	Prices  map[string]decimal.Decimal `json:"prices"`
	Missed  map[string]bool            `json:"-"`
	TakenAt time.Time                  `json:"taken_at"`
}

// Price returns the frozen price for a ticker. A ticker that was looked up
// and failed reports false, as does one never looked up.
func (m *MarketSnapshot) Price(ticker string) (decimal.Decimal, bool) {
	key := strings.ToUpper(strings.TrimSpace(ticker))
	if m.Missed[key] {
		return decimal.Zero, false
	}
	p, ok := m.Prices[key]
	return p, ok
}
