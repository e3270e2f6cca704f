package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/valuation"
	"github.com/shopspring/decimal"
)

func TestValidateHoldings(t *testing.T) {
	negative := d("-3")
	cases := []struct {
		name    string
		holding models.Holding
		wantErr error
	}{
		{"valid", models.Holding{Ticker: "IAU", DisplayName: "Gold", Country: "Foreign", Sector: "Gold"}, nil},
		{"missing ticker", models.Holding{DisplayName: "Gold"}, ErrMissingField},
		{"blank ticker", models.Holding{Ticker: "  ", DisplayName: "Gold"}, ErrMissingField},
		{"missing name", models.Holding{Ticker: "IAU"}, ErrMissingField},
		{"negative quantity", models.Holding{Ticker: "IAU", DisplayName: "Gold", Quantity: d("-1")}, ErrInvalidField},
		{"negative cost", models.Holding{Ticker: "IAU", DisplayName: "Gold", CostBasisPrice: d("-1")}, ErrInvalidField},
		{"negative target", models.Holding{Ticker: "IAU", DisplayName: "Gold", TargetQuantity: &negative}, ErrInvalidField},
		{"unknown country", models.Holding{Ticker: "IAU", DisplayName: "Gold", Country: "Narnia"}, ErrInvalidField},
	}
	for _, tc := range cases {
		_, err := ValidateHoldings(context.Background(), []models.Holding{tc.holding}, valuation.DefaultOptions())
		if tc.wantErr == nil && err != nil {
			t.Errorf("%s: expected no error, got %v", tc.name, err)
		}
		if tc.wantErr != nil && !errors.Is(err, tc.wantErr) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestValidateHoldings_ReportsEveryBadRow(t *testing.T) {
	_, err := ValidateHoldings(context.Background(), []models.Holding{
		{DisplayName: "first"},
		{Ticker: "OK", DisplayName: "fine", Country: "US"},
		{Ticker: "NEG", DisplayName: "neg", Quantity: d("-2")},
	}, valuation.DefaultOptions())
	if err == nil {
		t.Fatal("expected an error")
	}
	if !errors.Is(err, ErrMissingField) || !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected both error kinds, got %v", err)
	}
	if !strings.Contains(err.Error(), "holding 1") || !strings.Contains(err.Error(), "holding 3") {
		t.Errorf("expected row numbers in %q", err.Error())
	}
}

func TestValidateHoldings_CashCountryFromSentinel(t *testing.T) {
	got, err := ValidateHoldings(context.Background(), []models.Holding{
		{Ticker: "usd", DisplayName: "Dollars", Sector: "Cash"},
		{Ticker: "KRW", DisplayName: "Won", Sector: "Cash"},
		{Ticker: "NVDA", DisplayName: "NVIDIA", Sector: "AI"},
	}, valuation.DefaultOptions())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	want := []models.Country{models.CountryForeign, models.CountryDomestic, models.CountryForeign}
	for i, w := range want {
		if got[i].Country != w {
			t.Errorf("row %d: expected %s, got %s", i, w, got[i].Country)
		}
	}
}

func TestHoldingsFromInput(t *testing.T) {
	got, err := HoldingsFromInput([]models.HoldingInput{
		{Ticker: "IAU", DisplayName: "Gold", Quantity: dp("0"), CostBasisPrice: dp("50"), TargetQuantity: dp("3")},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !got[0].Quantity.IsZero() || !got[0].CostBasisPrice.Equal(d("50")) || !got[0].TargetQuantity.Equal(d("3")) {
		t.Errorf("unexpected conversion %+v", got[0])
	}

	_, err = HoldingsFromInput([]models.HoldingInput{
		{Ticker: "IAU", DisplayName: "Gold", CostBasisPrice: dp("50")},
		{Ticker: "SPLG", DisplayName: "S&P", Quantity: dp("1")},
	})
	if !errors.Is(err, ErrMissingField) {
		t.Fatalf("expected ErrMissingField, got %v", err)
	}
	for _, want := range []string{"holding 1 (IAU)", "quantity", "holding 2 (SPLG)", "cost_basis_price"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidateTargets(t *testing.T) {
	if err := ValidateTargets(map[string]decimal.Decimal{"IAU": d("0"), "SPLG": d("3")}); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if err := ValidateTargets(map[string]decimal.Decimal{"IAU": d("-1")}); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField, got %v", err)
	}
	if err := ValidateTargets(map[string]decimal.Decimal{" ": d("1")}); !errors.Is(err, ErrInvalidField) {
		t.Errorf("expected ErrInvalidField for blank ticker, got %v", err)
	}
	if err := ValidateTargets(nil); err != nil {
		t.Errorf("expected nil targets to be valid, got %v", err)
	}
}
