// Package ticker holds the string heuristics that decide which market a ticker
// belongs to and how each quote provider spells it.
//
// These rules are guesses over free-text spreadsheet input. They are kept as
// named functions with their constants exported so callers can see exactly
// what is assumed.
package ticker

import (
	"strings"
	"unicode"

	"github.com/epeers/folio/internal/models"
)

const (
	// KospiSuffix and KosdaqSuffix mark home-market listings in Yahoo notation
	KospiSuffix  = ".KS"
	KosdaqSuffix = ".KQ"

	// HomeCodeLength is the length of a bare home-market listing code (e.g. 005930)
	HomeCodeLength = 6
)

// Normalize trims and uppercases a ticker
func Normalize(t string) string {
	return strings.ToUpper(strings.TrimSpace(t))
}

// IsHomeMarket reports whether a ticker looks like a home-market listing:
// either it carries a .KS/.KQ suffix, or it is a bare six character code
// starting with a digit (newer listings mix letters in, e.g. 0080G0).
func IsHomeMarket(t string) bool {
	t = Normalize(t)
	if strings.HasSuffix(t, KospiSuffix) || strings.HasSuffix(t, KosdaqSuffix) {
		return true
	}
	if len(t) != HomeCodeLength {
		return false
	}
	if !unicode.IsDigit(rune(t[0])) {
		return false
	}
	for _, r := range t {
		if !unicode.IsDigit(r) && !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

// HomeCode strips the exchange suffix from a home-market ticker
func HomeCode(t string) string {
	t = Normalize(t)
	t = strings.TrimSuffix(t, KospiSuffix)
	return strings.TrimSuffix(t, KosdaqSuffix)
}

// YahooSymbol converts a ticker to Yahoo Finance notation.
// Bare home-market codes are assumed to be KOSPI listings.
func YahooSymbol(t string, homeMarket bool) string {
	t = Normalize(t)
	if !homeMarket {
		return t
	}
	if strings.Contains(t, ".") {
		return t
	}
	return t + KospiSuffix
}

// GuessCountry derives a country from the ticker alone.
// Only used when the input row has no country.
func GuessCountry(t string) models.Country {
	if IsHomeMarket(t) {
		return models.CountryDomestic
	}
	return models.CountryForeign
}

// ParseCountry maps the spellings found in holdings sheets to a Country
func ParseCountry(s string) (models.Country, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "domestic", "home", "kr", "kor", "korea", "한국", "국내":
		return models.CountryDomestic, true
	case "foreign", "us", "usa", "united states", "미국", "해외":
		return models.CountryForeign, true
	}
	return "", false
}
