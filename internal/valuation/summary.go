package valuation

import (
	"sort"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/epeers/folio/internal/models"
	"github.com/shopspring/decimal"
)

// WeightPlaces is the rounding applied to allocation weights
const WeightPlaces = 2

// Summarize totals a valuation table and breaks its market value down by
// sector, holding name, country and asset class
func (o Options) Summarize(records []models.ValuationRecord) models.PortfolioSummary {
	s := models.PortfolioSummary{
		Currency:     o.HomeCurrency,
		TotalValue:   decimal.Zero,
		TotalCost:    decimal.Zero,
		HoldingCount: len(records),
	}
	for _, rec := range records {
		s.TotalValue = s.TotalValue.Add(rec.MarketValue)
		s.TotalCost = s.TotalCost.Add(rec.CostBasisAmount)
		if rec.PriceUnavailable {
			s.UnpricedHolding++
		}
	}
	s.UnrealizedGain = s.TotalValue.Sub(s.TotalCost)
	s.TotalReturnPct = ReturnPct(s.TotalValue, s.TotalCost)
	s.TotalValueText = FormatAmount(s.TotalValue, o.HomeCurrency)

	s.BySector = breakdown(records, s.TotalValue, func(r models.ValuationRecord) string {
		if strings.TrimSpace(r.Sector) == "" {
			return models.DefaultSector
		}
		return r.Sector
	})
	s.ByName = breakdown(records, s.TotalValue, func(r models.ValuationRecord) string {
		return r.DisplayName
	})
	s.ByCountry = breakdown(records, s.TotalValue, func(r models.ValuationRecord) string {
		if o.IsForeignCurrency(r.Holding) {
			return string(models.CountryForeign)
		}
		return string(models.CountryDomestic)
	})
	s.ByAssetClass = breakdown(records, s.TotalValue, func(r models.ValuationRecord) string {
		return string(r.AssetClass)
	})
	return s
}

// breakdown groups market value by label. Slices are sorted by value, largest first.
func breakdown(records []models.ValuationRecord, total decimal.Decimal, label func(models.ValuationRecord) string) []models.AllocationSlice {
	sums := make(map[string]decimal.Decimal)
	for _, rec := range records {
		l := label(rec)
		sums[l] = sums[l].Add(rec.MarketValue)
	}

	slices := make([]models.AllocationSlice, 0, len(sums))
	for l, v := range sums {
		w := decimal.Zero
		if total.IsPositive() {
			w = v.Div(total).Mul(hundred).Round(WeightPlaces)
		}
		slices = append(slices, models.AllocationSlice{Label: l, Value: v, WeightPct: w})
	}
	sort.Slice(slices, func(i, j int) bool {
		if c := slices[i].Value.Cmp(slices[j].Value); c != 0 {
			return c > 0
		}
		return slices[i].Label < slices[j].Label
	})
	return slices
}

// FormatAmount renders an amount with the currency's symbol, separators and
// minor-unit digits, e.g. ₩1,560,000 or $1,234.50
func FormatAmount(amount decimal.Decimal, currency string) string {
	// money.New never returns a nil currency, unknown codes get a generic template
	cur := money.New(0, currency).Currency()
	minor := amount.Round(int32(cur.Fraction)).Shift(int32(cur.Fraction))
	return cur.Formatter().Format(minor.IntPart())
}
