package valuation

import (
	"strings"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
)

// cashMarkers flag a cash row by its display name
var cashMarkers = []string{"CASH", "현금", "예수금", "MMF"}

// etfNameMarkers are product-family prefixes of ETF issuers plus the literal
// ETF/ETN tokens. Matched case-insensitively as whole words against name and
// ticker, so "ACE" does not hit "FACEBOOK".
var etfNameMarkers = []string{
	"KODEX", "TIGER", "ACE", "SOL", "RISE", "KBSTAR", "HANARO", "KOSEF",
	"ARIRANG", "PLUS", "ISHARES", "SPDR", "VANGUARD", "INVESCO", "PROSHARES",
	"DIREXION", "SCHWAB", "GLOBAL X", "ETF", "ETN",
}

// etfTickers are well-known ETF tickers whose display names rarely say "ETF"
var etfTickers = map[string]struct{}{
	"SPY": {}, "SPLG": {}, "QQQ": {}, "QQQM": {}, "VOO": {}, "VTI": {}, "IVV": {},
	"IAU": {}, "GLD": {}, "SCHD": {}, "TQQQ": {}, "SOXL": {}, "SOXX": {}, "SMH": {},
	"JEPI": {}, "JEPQ": {}, "TLT": {},
}

// Classify maps a holding to an asset class using the default cash sentinels
func Classify(displayName, t string) models.AssetClass {
	return DefaultOptions().Classify(displayName, t)
}

// Classify maps a holding to Cash, ETF or Individual Stock, in that priority.
// It never fails: anything unrecognised is an individual stock.
func (o Options) Classify(displayName, t string) models.AssetClass {
	name := strings.ToUpper(displayName)
	sym := ticker.Normalize(t)

	if o.IsCash(sym) || containsWord(name, cashMarkers) {
		return models.AssetClassCash
	}
	if _, ok := etfTickers[sym]; ok {
		return models.AssetClassETF
	}
	if containsWord(name, etfNameMarkers) || containsWord(sym, etfNameMarkers) {
		return models.AssetClassETF
	}
	return models.AssetClassIndividualStock
}

// containsWord reports whether any marker appears in s bounded by non-letters.
// Only ASCII letters count as word characters, so "TIGER미국" matches TIGER.
func containsWord(s string, markers []string) bool {
	for _, m := range markers {
		for from := 0; from <= len(s)-len(m); {
			i := strings.Index(s[from:], m)
			if i < 0 {
				break
			}
			start := from + i
			end := start + len(m)
			if (start == 0 || !isASCIILetter(s[start-1])) && (end == len(s) || !isASCIILetter(s[end])) {
				return true
			}
			from = start + 1
		}
	}
	return false
}

func isASCIILetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
