package valuation

import (
	"testing"

	"github.com/epeers/folio/internal/models"
	"github.com/shopspring/decimal"
)

func TestPlanRebalance_HomeBuy(t *testing.T) {
	h := holding("005930", "삼성전자", models.CountryDomestic, "10", "40")
	recs := ValuePortfolio([]models.Holding{h}, d("1300"), staticPrices(map[string]string{"005930": "50"}), DefaultOptions())

	plan := PlanRebalance(recs, map[string]decimal.Decimal{"005930": d("15")})
	row := plan[0]
	if !row.QuantityDelta.Equal(d("5")) {
		t.Errorf("expected delta 5, got %s", row.QuantityDelta)
	}
	if !row.TradeAmount.Equal(d("250")) {
		t.Errorf("expected trade amount 250, got %s", row.TradeAmount)
	}
	if !row.TradeAmount.IsPositive() {
		t.Error("expected a buy to have a positive trade amount")
	}
	if !row.PlannedValue.Equal(d("750")) {
		t.Errorf("expected planned value 750, got %s", row.PlannedValue)
	}
}

func TestPlanRebalance_ForeignSellUsesFrozenFX(t *testing.T) {
	h := holding("IAU", "iShares Gold Trust", models.CountryForeign, "20", "50")
	recs := ValuePortfolio([]models.Holding{h}, d("1300"), staticPrices(map[string]string{"IAU": "60"}), DefaultOptions())

	plan := PlanRebalance(recs, map[string]decimal.Decimal{"iau": d("5")})
	row := plan[0]
	if !row.QuantityDelta.Equal(d("-15")) {
		t.Errorf("expected delta -15, got %s", row.QuantityDelta)
	}
	// 60 * -15 * 1300
	if !row.TradeAmount.Equal(d("-1170000")) {
		t.Errorf("expected trade amount -1,170,000, got %s", row.TradeAmount)
	}
}

func TestPlanRebalance_DefaultsToCurrentQuantity(t *testing.T) {
	target := d("7")
	holdings := []models.Holding{
		holding("AAA", "Triple A", models.CountryForeign, "10", "100"),
		holding("BBB", "Triple B", models.CountryForeign, "3", "100"),
	}
	holdings[1].TargetQuantity = &target
	recs := ValuePortfolio(holdings, d("1300"), staticPrices(map[string]string{"AAA": "120", "BBB": "1"}), DefaultOptions())

	plan := PlanRebalance(recs, nil)
	if !plan[0].TargetQuantity.Equal(d("10")) || !plan[0].TradeAmount.IsZero() {
		t.Errorf("expected untouched row to keep its quantity, got %+v", plan[0])
	}
	if !plan[1].TargetQuantity.Equal(d("7")) {
		t.Errorf("expected row target_quantity to be used, got %s", plan[1].TargetQuantity)
	}

	// explicit targets take precedence over the row's own target
	plan = PlanRebalance(recs, map[string]decimal.Decimal{"BBB": d("1")})
	if !plan[1].TargetQuantity.Equal(d("1")) {
		t.Errorf("expected explicit target to win, got %s", plan[1].TargetQuantity)
	}
}

func TestPlanRebalance_NewPositionIsPureBuy(t *testing.T) {
	h := holding("NVDA", "NVIDIA", models.CountryForeign, "0", "0")
	recs := ValuePortfolio([]models.Holding{h}, d("1300"), staticPrices(map[string]string{"NVDA": "100"}), DefaultOptions())
	plan := PlanRebalance(recs, map[string]decimal.Decimal{"NVDA": d("2")})

	if len(plan) != 1 {
		t.Fatalf("zero-quantity row must not be filtered, got %d rows", len(plan))
	}
	if !plan[0].TradeAmount.Equal(d("260000")) {
		t.Errorf("expected buy of 260000, got %s", plan[0].TradeAmount)
	}
	s := SummarizePlan(recs, plan)
	if !s.TotalBuy.Equal(d("260000")) || !s.TotalSell.IsZero() {
		t.Errorf("unexpected summary %+v", s)
	}
}

func TestSummarizePlan_ReconciliationIdentity(t *testing.T) {
	holdings := []models.Holding{
		holding("KRW", "Cash", models.CountryDomestic, "500000", "1"),
		holding("USD", "Dollars", models.CountryForeign, "123.45", "1"),
		holding("005930", "삼성전자", models.CountryDomestic, "10", "60000"),
		holding("IAU", "iShares Gold Trust", models.CountryForeign, "20", "50"),
		holding("SPLG", "SPDR S&P 500", models.CountryForeign, "15", "65"),
		holding("DEAD", "Unpriced", models.CountryForeign, "4", "10"),
	}
	lookup := staticPrices(map[string]string{"005930": "71234", "IAU": "61.37", "SPLG": "70.015"})
	recs := ValuePortfolio(holdings, d("1387.64"), lookup, DefaultOptions())

	targetSets := []map[string]decimal.Decimal{
		nil,
		{"005930": d("0")},
		{"IAU": d("33.3"), "SPLG": d("1"), "KRW": d("0"), "USD": d("1000")},
		{"DEAD": d("100"), "005930": d("12.5")},
	}
	for i, targets := range targetSets {
		plan := PlanRebalance(recs, targets)
		s := SummarizePlan(recs, plan)

		sumPlanned, sumMarket, sumTrade := decimal.Zero, decimal.Zero, decimal.Zero
		for j := range plan {
			sumPlanned = sumPlanned.Add(plan[j].PlannedValue)
			sumTrade = sumTrade.Add(plan[j].TradeAmount)
			sumMarket = sumMarket.Add(recs[j].MarketValue)
		}
		if !sumPlanned.Sub(sumMarket).Equal(sumTrade) {
			t.Errorf("set %d: planned %s - market %s != trade %s", i, sumPlanned, sumMarket, sumTrade)
		}
		if !s.Reconciled {
			t.Errorf("set %d: summary not reconciled: %+v", i, s)
		}
		if !s.TotalBuy.Sub(s.TotalSell).Equal(s.NetTrade) {
			t.Errorf("set %d: buy %s - sell %s != net %s", i, s.TotalBuy, s.TotalSell, s.NetTrade)
		}
	}
}
