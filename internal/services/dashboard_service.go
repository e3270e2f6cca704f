package services

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/ticker"
	"github.com/epeers/folio/internal/valuation"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DashboardService runs valuation passes. Each pass freezes one market
// snapshot first and derives every table in its response from it.
type DashboardService struct {
	session *SessionService
	pricing *PricingService
	exclude valuation.AccountFilter
}

// NewDashboardService creates a new DashboardService. exclude picks the
// accounts left out of the consolidated view; nil keeps all of them.
func NewDashboardService(session *SessionService, pricing *PricingService, exclude valuation.AccountFilter) *DashboardService {
	return &DashboardService{
		session: session,
		pricing: pricing,
		exclude: exclude,
	}
}

// CurrentFX returns the foreign-to-home rate, falling back to the configured rate
func (s *DashboardService) CurrentFX(ctx context.Context) models.FXQuote {
	return s.pricing.CurrentFX(ctx)
}

// RefreshQuotes drops memoized quotes and rates so the next pass asks the
// providers again
func (s *DashboardService) RefreshQuotes() {
	s.pricing.ClearCache()
	log.Info("Quote cache cleared")
}

// Valuate values the session's holdings. With an account name it values that
// account alone, even if its name matches the exclusion filter. Without one it
// builds the consolidated view; excluded accounts are still valued and listed
// but stay out of the consolidated table unless includeExcluded is set.
func (s *DashboardService) Valuate(ctx context.Context, account string, includeExcluded bool) (*models.ValuationResponse, error) {
	defer TrackTime("Valuate", time.Now())

	accounts := s.session.Accounts()
	if account = strings.TrimSpace(account); account != "" {
		holdings, ok := accounts[account]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, account)
		}
		return s.valuate(ctx, map[string][]models.Holding{account: holdings}, nil), nil
	}

	var dropped []string
	if !includeExcluded {
		_, dropped = valuation.ExcludeAccounts(accounts, s.exclude)
		if len(dropped) > 0 {
			AddWarning(ctx, models.Warning{
				Code:    models.WarnAccountsExcluded,
				Message: fmt.Sprintf("left out of the consolidated view: %s", strings.Join(dropped, ", ")),
			})
		}
	}
	return s.valuate(ctx, accounts, dropped), nil
}

// ValuateHoldings values posted accounts without touching the session.
// Holdings are validated first; no accounts are excluded.
func (s *DashboardService) ValuateHoldings(ctx context.Context, accounts []models.AccountHoldings) (*models.ValuationResponse, error) {
	defer TrackTime("ValuateHoldings", time.Now())

	byName := make(map[string][]models.Holding, len(accounts))
	for i, a := range accounts {
		name := strings.TrimSpace(a.AccountName)
		if name == "" {
			name = DefaultAccount
		}
		holdings, err := HoldingsFromInput(a.Holdings)
		if err != nil {
			return nil, fmt.Errorf("account %d (%s): %w", i+1, name, err)
		}
		valid, err := ValidateHoldings(ctx, holdings, s.pricing.Options())
		if err != nil {
			return nil, fmt.Errorf("account %d (%s): %w", i+1, name, err)
		}
		for j := range valid {
			valid[j].AccountName = name
		}
		byName[name] = append(byName[name], valid...)
	}
	return s.valuate(ctx, byName, nil), nil
}

// Rebalance values one account and plans it towards targets, using the same
// frozen prices and FX rate for both tables. A target for a ticker the account
// does not hold is planned as a new zero-quantity position, a pure buy.
func (s *DashboardService) Rebalance(ctx context.Context, account string, targets map[string]decimal.Decimal) (*models.RebalanceResponse, error) {
	defer TrackTime("Rebalance", time.Now())

	if err := ValidateTargets(targets); err != nil {
		return nil, err
	}
	account = strings.TrimSpace(account)
	if account == "" {
		account = DefaultAccount
	}
	holdings, err := s.session.GetHoldings(account)
	if err != nil {
		return nil, err
	}

	opts := s.pricing.Options()
	holdings = append(holdings, newPositions(ctx, account, holdings, targets, opts)...)
	snap := s.pricing.Snapshot(ctx, holdings)
	records := valuation.ValuePortfolio(holdings, snap.FX.Rate, Lookup(snap), opts)
	warnDegraded(ctx, records)

	plan := valuation.PlanRebalance(records, targets)
	return &models.RebalanceResponse{
		FX:      snap.FX,
		Account: account,
		Records: records,
		Plan:    plan,
		Summary: valuation.SummarizePlan(records, plan),
	}, nil
}

func (s *DashboardService) valuate(ctx context.Context, accounts map[string][]models.Holding, excluded []string) *models.ValuationResponse {
	opts := s.pricing.Options()
	names := valuation.AccountNames(accounts)

	var all []models.Holding
	for _, name := range names {
		all = append(all, accounts[name]...)
	}
	snap := s.pricing.Snapshot(ctx, all)
	lookup := Lookup(snap)

	isExcluded := make(map[string]bool, len(excluded))
	for _, name := range excluded {
		isExcluded[name] = true
	}

	resp := &models.ValuationResponse{
		FX:               snap.FX,
		Accounts:         make([]models.AccountValuation, 0, len(names)),
		ExcludedAccounts: excluded,
	}
	included := make(map[string][]models.ValuationRecord, len(names))
	for _, name := range names {
		records := valuation.ValuePortfolio(accounts[name], snap.FX.Rate, lookup, opts)
		warnDegraded(ctx, records)
		resp.Accounts = append(resp.Accounts, models.AccountValuation{
			AccountName: name,
			Excluded:    isExcluded[name],
			Records:     records,
			Summary:     opts.Summarize(records),
		})
		if !isExcluded[name] {
			included[name] = records
		}
	}

	resp.Consolidated = valuation.Aggregate(included)
	resp.Summary = opts.Summarize(resp.Consolidated)
	return resp
}

// newPositions returns a zero-quantity holding for every target ticker not
// already in holdings, in ticker order
func newPositions(ctx context.Context, account string, holdings []models.Holding, targets map[string]decimal.Decimal, opts valuation.Options) []models.Holding {
	held := make(map[string]bool, len(holdings))
	for _, h := range holdings {
		held[ticker.Normalize(h.Ticker)] = true
	}

	var missing []string
	for t := range targets {
		key := ticker.Normalize(t)
		if !held[key] {
			held[key] = true
			missing = append(missing, key)
		}
	}
	if len(missing) == 0 {
		return nil
	}
	sort.Strings(missing)

	AddWarning(ctx, models.Warning{
		Code:    models.WarnTargetNotHeld,
		Message: fmt.Sprintf("%s does not hold %s, planned as new positions", account, strings.Join(missing, ", ")),
	})
	out := make([]models.Holding, len(missing))
	for i, key := range missing {
		out[i] = models.Holding{
			Ticker:         key,
			DisplayName:    key,
			Sector:         models.DefaultSector,
			Country:        defaultCountry(key, opts),
			Quantity:       decimal.Zero,
			CostBasisPrice: decimal.Zero,
			AccountName:    account,
		}
	}
	return out
}

func warnDegraded(ctx context.Context, records []models.ValuationRecord) {
	for _, rec := range records {
		if !rec.Degraded {
			continue
		}
		AddWarning(ctx, models.Warning{
			Code:    models.WarnRowDegraded,
			Message: fmt.Sprintf("%s/%s: valuation failed, row zeroed", rec.AccountName, rec.Ticker),
		})
	}
}
