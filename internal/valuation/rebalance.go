package valuation

import (
	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/shopspring/decimal"
)

// PlanRebalance overlays target quantities on a valuation table.
//
// The target for a row is targets[ticker] when present, else the row's own
// target_quantity, else its current quantity (no trade). Prices and FX
// multipliers come from the records, so the plan always matches the pass
// that produced them. Rows are never filtered: a zero-quantity row with a
// positive target is a pure buy.
func PlanRebalance(records []models.ValuationRecord, targets map[string]decimal.Decimal) []models.PlanRow {
	byTicker := make(map[string]decimal.Decimal, len(targets))
	for t, q := range targets {
		byTicker[ticker.Normalize(t)] = q
	}

	rows := make([]models.PlanRow, len(records))
	for i, rec := range records {
		target := resolveTarget(rec, byTicker)
		delta := target.Sub(rec.Quantity)
		rows[i] = models.PlanRow{
			ValuationRecord: rec,
			TargetQuantity:  target,
			QuantityDelta:   delta,
			PlannedValue:    rec.CurrentPrice.Mul(target).Mul(rec.FXMultiplier),
			TradeAmount:     rec.CurrentPrice.Mul(delta).Mul(rec.FXMultiplier),
		}
	}
	return rows
}

func resolveTarget(rec models.ValuationRecord, targets map[string]decimal.Decimal) decimal.Decimal {
	if q, ok := targets[ticker.Normalize(rec.Ticker)]; ok {
		return q
	}
	if rec.Holding.TargetQuantity != nil {
		return *rec.Holding.TargetQuantity
	}
	return rec.Quantity
}

// SummarizePlan totals a plan against the valuation it came from.
// TotalSell is reported as a positive amount.
func SummarizePlan(records []models.ValuationRecord, plan []models.PlanRow) models.PlanSummary {
	s := models.PlanSummary{
		CurrentTotal: decimal.Zero,
		PlannedTotal: decimal.Zero,
		TotalBuy:     decimal.Zero,
		TotalSell:    decimal.Zero,
		NetTrade:     decimal.Zero,
	}
	for _, rec := range records {
		s.CurrentTotal = s.CurrentTotal.Add(rec.MarketValue)
	}
	for _, row := range plan {
		s.PlannedTotal = s.PlannedTotal.Add(row.PlannedValue)
		s.NetTrade = s.NetTrade.Add(row.TradeAmount)
		switch {
		case row.TradeAmount.IsPositive():
			s.TotalBuy = s.TotalBuy.Add(row.TradeAmount)
		case row.TradeAmount.IsNegative():
			s.TotalSell = s.TotalSell.Sub(row.TradeAmount)
		}
	}
	s.Reconciled = s.PlannedTotal.Sub(s.CurrentTotal).Equal(s.NetTrade)
	return s
}
