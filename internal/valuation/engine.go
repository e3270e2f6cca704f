package valuation

import (
	"github.com/epeers/folio/internal/models"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// ReturnPctPlaces is the rounding applied to return percentages
const ReturnPctPlaces = 4

// PriceLookup resolves the native-currency price of a non-cash ticker.
// An error means the price is unavailable; the row is then valued at zero.
type PriceLookup func(ticker string) (decimal.Decimal, error)

// ValuePortfolio values every holding against one FX rate and one price source.
// The result has the same length and order as holdings. A failed lookup or a
// fault while valuing one row zeroes that row only.
func ValuePortfolio(holdings []models.Holding, fxRate decimal.Decimal, lookup PriceLookup, opts Options) []models.ValuationRecord {
	records := make([]models.ValuationRecord, len(holdings))
	for i, h := range holdings {
		records[i] = opts.valueHolding(h, fxRate, lookup)
	}
	return records
}

func (o Options) valueHolding(h models.Holding, fxRate decimal.Decimal, lookup PriceLookup) (rec models.ValuationRecord) {
	defer func() {
		if r := recover(); r != nil {
			log.Warnf("valuation of %q recovered from fault: %v", h.Ticker, r)
			rec = o.degradedRecord(h)
		}
	}()

	rec = models.ValuationRecord{
		Holding:    h,
		AssetClass: o.Classify(h.DisplayName, h.Ticker),
	}
	foreign := o.IsForeignCurrency(h)

	// 1. current price and the multiplier that brings price*quantity home
	switch {
	case o.IsHomeCash(h.Ticker):
		rec.CurrentPrice = one
		rec.FXMultiplier = one
	case o.IsForeignCash(h.Ticker):
		// price is already the home-currency value of one unit
		rec.CurrentPrice = fxRate
		rec.FXMultiplier = one
	default:
		rec.CurrentPrice = resolvePrice(h.Ticker, lookup)
		if rec.CurrentPrice.IsZero() {
			rec.PriceUnavailable = true
		}
		rec.FXMultiplier = one
		if foreign {
			rec.FXMultiplier = fxRate
		}
	}

	// 2. money fields in the reporting currency
	rec.MarketValue = rec.CurrentPrice.Mul(h.Quantity).Mul(rec.FXMultiplier)
	rec.CostBasisAmount = o.costBasisAmount(h, foreign, fxRate)

	// 3. return, guarded against a zero or negative basis
	rec.ReturnPct = ReturnPct(rec.MarketValue, rec.CostBasisAmount)

	return rec
}

// costBasisAmount converts the per-unit cost basis to a home-currency total
func (o Options) costBasisAmount(h models.Holding, foreign bool, fxRate decimal.Decimal) decimal.Decimal {
	cost := h.CostBasisPrice.Mul(h.Quantity)
	if !foreign {
		return cost
	}
	if o.IsForeignCash(h.Ticker) && !h.CostBasisPrice.LessThan(o.cashCostThreshold()) {
		// the sheet holds the purchase exchange rate, already in home currency
		return cost
	}
	return cost.Mul(fxRate)
}

func (o Options) cashCostThreshold() decimal.Decimal {
	if o.CashCostThreshold.IsZero() {
		return DefaultCashCostThreshold
	}
	return o.CashCostThreshold
}

// ReturnPct is (value - cost) / cost * 100, or 0 when cost <= 0
func ReturnPct(value, cost decimal.Decimal) decimal.Decimal {
	if !cost.IsPositive() {
		return decimal.Zero
	}
	return value.Sub(cost).Div(cost).Mul(hundred).Round(ReturnPctPlaces)
}

func resolvePrice(t string, lookup PriceLookup) decimal.Decimal {
	if lookup == nil {
		return decimal.Zero
	}
	price, err := lookup(t)
	if err != nil {
		log.Debugf("price lookup for %q failed: %v", t, err)
		return decimal.Zero
	}
	if price.IsNegative() {
		log.Debugf("price lookup for %q returned negative price %s", t, price)
		return decimal.Zero
	}
	return price
}

// degradedRecord is a row whose derived money fields are all zero
func (o Options) degradedRecord(h models.Holding) models.ValuationRecord {
	return models.ValuationRecord{
		Holding:          h,
		AssetClass:       o.Classify(h.DisplayName, h.Ticker),
		CurrentPrice:     decimal.Zero,
		FXMultiplier:     decimal.Zero,
		CostBasisAmount:  decimal.Zero,
		MarketValue:      decimal.Zero,
		ReturnPct:        decimal.Zero,
		PriceUnavailable: true,
		Degraded:         true,
	}
}
