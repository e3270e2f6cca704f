package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/epeers/folio/internal/valuation"
	"github.com/shopspring/decimal"
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidField    = errors.New("invalid field")
	ErrAccountNotFound = errors.New("account not found")
)

// HoldingsFromInput converts posted rows into holdings. Rows without a
// quantity or cost basis are rejected; every bad row is reported.
func HoldingsFromInput(inputs []models.HoldingInput) ([]models.Holding, error) {
	out := make([]models.Holding, 0, len(inputs))
	var problems []error

	for i, in := range inputs {
		label := fmt.Sprintf("holding %d", i+1)
		if t := strings.TrimSpace(in.Ticker); t != "" {
			label += " (" + t + ")"
		}
		if in.Quantity == nil {
			problems = append(problems, fmt.Errorf("%s: %w: quantity", label, ErrMissingField))
			continue
		}
		if in.CostBasisPrice == nil {
			problems = append(problems, fmt.Errorf("%s: %w: cost_basis_price", label, ErrMissingField))
			continue
		}
		out = append(out, models.Holding{
			Ticker:         in.Ticker,
			DisplayName:    in.DisplayName,
			Sector:         in.Sector,
			Country:        in.Country,
			Quantity:       *in.Quantity,
			CostBasisPrice: *in.CostBasisPrice,
			AccountName:    in.AccountName,
			TargetQuantity: in.TargetQuantity,
		})
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return out, nil
}

// ValidateHoldings checks holdings from any input path (CSV upload or JSON)
// and fills in the optional columns. A missing sector becomes "Other" and a
// missing country is derived from the ticker, each with a warning.
// The input slice is not modified.
func ValidateHoldings(ctx context.Context, holdings []models.Holding, opts valuation.Options) ([]models.Holding, error) {
	out := make([]models.Holding, 0, len(holdings))
	var problems []error

	for i, h := range holdings {
		h.Ticker = strings.TrimSpace(h.Ticker)
		h.DisplayName = strings.TrimSpace(h.DisplayName)
		h.Sector = strings.TrimSpace(h.Sector)
		h.AccountName = strings.TrimSpace(h.AccountName)

		if h.Ticker == "" {
			problems = append(problems, fmt.Errorf("holding %d: %w: ticker", i+1, ErrMissingField))
			continue
		}
		if h.DisplayName == "" {
			problems = append(problems, fmt.Errorf("holding %d (%s): %w: display_name", i+1, h.Ticker, ErrMissingField))
			continue
		}
		if h.Quantity.IsNegative() {
			problems = append(problems, fmt.Errorf("holding %d (%s): %w: quantity must be >= 0, got %s", i+1, h.Ticker, ErrInvalidField, h.Quantity))
			continue
		}
		if h.CostBasisPrice.IsNegative() {
			problems = append(problems, fmt.Errorf("holding %d (%s): %w: cost_basis_price must be >= 0, got %s", i+1, h.Ticker, ErrInvalidField, h.CostBasisPrice))
			continue
		}
		if h.TargetQuantity != nil && h.TargetQuantity.IsNegative() {
			problems = append(problems, fmt.Errorf("holding %d (%s): %w: target_quantity must be >= 0, got %s", i+1, h.Ticker, ErrInvalidField, *h.TargetQuantity))
			continue
		}

		if strings.TrimSpace(string(h.Country)) == "" {
			h.Country = defaultCountry(h.Ticker, opts)
			AddWarning(ctx, models.Warning{
				Code:    models.WarnCountryGuessed,
				Message: fmt.Sprintf("holding %d (%s): no country given, assumed %s", i+1, h.Ticker, h.Country),
			})
		} else {
			c, ok := ticker.ParseCountry(string(h.Country))
			if !ok {
				problems = append(problems, fmt.Errorf("holding %d (%s): %w: unknown country %q", i+1, h.Ticker, ErrInvalidField, h.Country))
				continue
			}
			h.Country = c
		}

		if h.Sector == "" {
			h.Sector = models.DefaultSector
			AddWarning(ctx, models.Warning{
				Code:    models.WarnSectorDefaulted,
				Message: fmt.Sprintf("holding %d (%s): no sector given, using %s", i+1, h.Ticker, models.DefaultSector),
			})
		}
		out = append(out, h)
	}

	if len(problems) > 0 {
		return nil, errors.Join(problems...)
	}
	return out, nil
}

// ValidateTargets rejects negative target quantities
func ValidateTargets(targets map[string]decimal.Decimal) error {
	for t, q := range targets {
		if strings.TrimSpace(t) == "" {
			return fmt.Errorf("%w: empty ticker in targets", ErrInvalidField)
		}
		if q.IsNegative() {
			return fmt.Errorf("%w: target for %s must be >= 0, got %s", ErrInvalidField, t, q)
		}
	}
	return nil
}

func defaultCountry(t string, opts valuation.Options) models.Country {
	switch {
	case opts.IsForeignCash(t):
		return models.CountryForeign
	case opts.IsHomeCash(t):
		return models.CountryDomestic
	}
	return ticker.GuessCountry(t)
}
