package services

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/epeers/folio/internal/cache"
	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/valuation"
	"github.com/shopspring/decimal"
)

func newTestDashboard(t *testing.T) (*DashboardService, *SessionService) {
	t.Helper()
	home := newFakeQuotes("home", map[string]string{
		"000660.KS": "200000",
		"267250.KS": "300000",
		"373220.KS": "25000",
	})
	foreign := newFakeQuotes("foreign", map[string]string{"IAU": "60", "SPLG": "70", "NVDA": "100"})
	fx := &fakeFXProvider{rate: "1300"}

	opts := valuation.DefaultOptions()
	pricing := NewPricingService(testPricingConfig(), cache.NewMemoryCache(time.Minute),
		[]QuoteProvider{home}, []QuoteProvider{foreign}, []FXProvider{fx})
	session := NewSessionService(opts, nil)
	return NewDashboardService(session, pricing, valuation.AccountNameFilter("IRP", "연금", "Pension")), session
}

func TestValuate_SamplePortfolio(t *testing.T) {
	svc, _ := newTestDashboard(t)

	resp, err := svc.Valuate(context.Background(), "", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// 2*200000 + 7*300000 + 50*25000 + 20*60*1300 + 15*70*1300
	if !resp.Summary.TotalValue.Equal(d("6675000")) {
		t.Errorf("expected total 6,675,000, got %s", resp.Summary.TotalValue)
	}
	if !resp.FX.Rate.Equal(d("1300")) {
		t.Errorf("expected fx 1300, got %s", resp.FX.Rate)
	}
	if len(resp.Consolidated) != 5 {
		t.Errorf("expected 5 consolidated rows, got %d", len(resp.Consolidated))
	}
	for _, rec := range resp.Consolidated {
		if rec.PriceUnavailable {
			t.Errorf("%s unexpectedly unpriced", rec.Ticker)
		}
	}
}

func TestValuate_ExcludesRetirementAccounts(t *testing.T) {
	svc, session := newTestDashboard(t)
	_, err := session.ReplaceHoldings(context.Background(), "IRP 퇴직연금", []models.Holding{
		{Ticker: "KRW", DisplayName: "예수금", Sector: "현금", Country: models.CountryDomestic, Quantity: d("1000000"), CostBasisPrice: d("1")},
	})
	if err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	ctx, wc := NewWarningContext(context.Background())
	resp, err := svc.Valuate(ctx, "", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !reflect.DeepEqual(resp.ExcludedAccounts, []string{"IRP 퇴직연금"}) {
		t.Errorf("expected IRP account excluded, got %v", resp.ExcludedAccounts)
	}
	if len(resp.Accounts) != 2 {
		t.Fatalf("expected both accounts listed, got %d", len(resp.Accounts))
	}
	if resp.Accounts[0].AccountName != DefaultAccount || resp.Accounts[0].Excluded {
		t.Errorf("unexpected first account %+v", resp.Accounts[0].AccountName)
	}
	if !resp.Accounts[1].Excluded || !resp.Accounts[1].Summary.TotalValue.Equal(d("1000000")) {
		t.Errorf("expected the IRP account valued but flagged excluded, got %+v", resp.Accounts[1].Summary)
	}
	if !resp.Summary.TotalValue.Equal(d("6675000")) {
		t.Errorf("expected consolidated total without IRP, got %s", resp.Summary.TotalValue)
	}
	foundWarning := false
	for _, w := range wc.GetWarnings() {
		if w.Code == models.WarnAccountsExcluded {
			foundWarning = true
		}
	}
	if !foundWarning {
		t.Errorf("expected a W3002 warning, got %+v", wc.GetWarnings())
	}

	// include_excluded folds it back in
	resp, err = svc.Valuate(context.Background(), "", true)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.ExcludedAccounts) != 0 || !resp.Summary.TotalValue.Equal(d("7675000")) {
		t.Errorf("expected everything included, got total %s excluded %v", resp.Summary.TotalValue, resp.ExcludedAccounts)
	}

	// naming the account values it alone regardless of the filter
	resp, err = svc.Valuate(context.Background(), "IRP 퇴직연금", false)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.Summary.TotalValue.Equal(d("1000000")) || len(resp.ExcludedAccounts) != 0 {
		t.Errorf("expected the single account valued, got %s", resp.Summary.TotalValue)
	}
}

func TestValuate_UnknownAccount(t *testing.T) {
	svc, _ := newTestDashboard(t)
	if _, err := svc.Valuate(context.Background(), "nope", false); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}

func TestValuateHoldings_Stateless(t *testing.T) {
	svc, session := newTestDashboard(t)
	ctx, wc := NewWarningContext(context.Background())

	resp, err := svc.ValuateHoldings(ctx, []models.AccountHoldings{
		{AccountName: "Posted", Holdings: []models.HoldingInput{
			{Ticker: "IAU", DisplayName: "iShares Gold Trust", Sector: "Gold", Country: "USA", Quantity: dp("10"), CostBasisPrice: dp("50")},
			{Ticker: "MISSING", DisplayName: "Unknown Co", Sector: "?", Country: "USA", Quantity: dp("1"), CostBasisPrice: dp("5")},
		}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !resp.Summary.TotalValue.Equal(d("780000")) {
		t.Errorf("expected 780000, got %s", resp.Summary.TotalValue)
	}
	if resp.Summary.UnpricedHolding != 1 {
		t.Errorf("expected 1 unpriced holding, got %d", resp.Summary.UnpricedHolding)
	}
	if resp.Consolidated[0].AccountName != "Posted" {
		t.Errorf("expected account name Posted, got %s", resp.Consolidated[0].AccountName)
	}
	if len(wc.GetWarnings()) != 1 || wc.GetWarnings()[0].Code != models.WarnPriceUnavailable {
		t.Errorf("expected one W2001 warning, got %+v", wc.GetWarnings())
	}
	if len(session.ListAccounts()) != 1 {
		t.Errorf("stateless valuation must not touch the session, got %v", session.ListAccounts())
	}

	_, err = svc.ValuateHoldings(context.Background(), []models.AccountHoldings{
		{AccountName: "Bad", Holdings: []models.HoldingInput{{DisplayName: "no ticker", Quantity: dp("1"), CostBasisPrice: dp("1")}}},
	})
	if !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField, got %v", err)
	}

	_, err = svc.ValuateHoldings(context.Background(), []models.AccountHoldings{
		{AccountName: "NoQuantity", Holdings: []models.HoldingInput{{Ticker: "IAU", DisplayName: "iShares Gold", CostBasisPrice: dp("50")}}},
	})
	if !errors.Is(err, ErrMissingField) || !strings.Contains(err.Error(), "quantity") {
		t.Errorf("expected a missing quantity error, got %v", err)
	}
}

func TestRebalance_UsesOneSnapshot(t *testing.T) {
	svc, _ := newTestDashboard(t)

	resp, err := svc.Rebalance(context.Background(), DefaultAccount, map[string]decimal.Decimal{
		"IAU":       d("10"),
		"000660.KS": d("3"),
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(resp.Plan) != len(resp.Records) {
		t.Fatalf("expected a plan row per record, got %d/%d", len(resp.Plan), len(resp.Records))
	}

	byTicker := map[string]models.PlanRow{}
	for _, row := range resp.Plan {
		byTicker[row.Ticker] = row
	}
	if got := byTicker["IAU"].TradeAmount; !got.Equal(d("-780000")) {
		t.Errorf("expected IAU sell of -780000, got %s", got)
	}
	if got := byTicker["000660.KS"].TradeAmount; !got.Equal(d("200000")) {
		t.Errorf("expected 000660 buy of 200000, got %s", got)
	}
	if !byTicker["SPLG"].TradeAmount.IsZero() {
		t.Errorf("expected untargeted SPLG unchanged, got %s", byTicker["SPLG"].TradeAmount)
	}
	if !resp.Summary.Reconciled {
		t.Errorf("expected a reconciled plan, got %+v", resp.Summary)
	}
	if !resp.Summary.NetTrade.Equal(d("-580000")) {
		t.Errorf("expected net trade -580000, got %s", resp.Summary.NetTrade)
	}
}

func TestRebalance_TargetForUnheldTickerIsNewPosition(t *testing.T) {
	svc, session := newTestDashboard(t)
	ctx, wc := NewWarningContext(context.Background())

	resp, err := svc.Rebalance(ctx, DefaultAccount, map[string]decimal.Decimal{"nvda": d("5")})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	var row *models.PlanRow
	for i := range resp.Plan {
		if resp.Plan[i].Ticker == "NVDA" {
			row = &resp.Plan[i]
		}
	}
	if row == nil {
		t.Fatalf("expected a plan row for NVDA, got %d rows", len(resp.Plan))
	}
	if !row.Quantity.IsZero() || !row.TargetQuantity.Equal(d("5")) {
		t.Errorf("expected a 0 -> 5 position, got %s -> %s", row.Quantity, row.TargetQuantity)
	}
	// 5 * 100 * 1300
	if !row.TradeAmount.Equal(d("650000")) {
		t.Errorf("expected a buy of 650000, got %s", row.TradeAmount)
	}
	if !resp.Summary.TotalBuy.Equal(d("650000")) || !resp.Summary.Reconciled {
		t.Errorf("unexpected plan summary %+v", resp.Summary)
	}

	warnings := wc.GetWarnings()
	if len(warnings) != 1 || warnings[0].Code != models.WarnTargetNotHeld || !strings.Contains(warnings[0].Message, "NVDA") {
		t.Errorf("expected one W3003 warning naming NVDA, got %+v", warnings)
	}

	// the plan is a what-if: the session is unchanged
	holdings, _ := session.GetHoldings(DefaultAccount)
	if len(holdings) != 5 {
		t.Errorf("expected the session untouched, got %d holdings", len(holdings))
	}
}

func TestRebalance_Errors(t *testing.T) {
	svc, _ := newTestDashboard(t)

	if _, err := svc.Rebalance(context.Background(), DefaultAccount, map[string]decimal.Decimal{"IAU": d("-1")}); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
	if _, err := svc.Rebalance(context.Background(), "nope", nil); !errors.Is(err, ErrAccountNotFound) {
		t.Errorf("expected ErrAccountNotFound, got %v", err)
	}
}
