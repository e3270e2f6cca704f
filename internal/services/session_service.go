package services

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/valuation"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// DefaultAccount holds rows that name no account
const DefaultAccount = "Default"

// SessionService keeps the single user's holdings in memory, grouped by
// account. Nothing is persisted; a restart or Reset brings back the sample
// portfolio.
type SessionService struct {
	mu       sync.RWMutex
	accounts map[string][]models.Holding
	opts     valuation.Options
	listings *ListingService
}

// NewSessionService creates a session seeded with the sample portfolio.
// listings may be nil.
func NewSessionService(opts valuation.Options, listings *ListingService) *SessionService {
	s := &SessionService{opts: opts, listings: listings}
	s.Reset()
	return s
}

// SampleHoldings is the built-in example portfolio: Korean listings priced
// in won, US listings priced in dollars
func SampleHoldings() []models.Holding {
	row := func(t, name, sector string, country models.Country, qty int64, cost string) models.Holding {
		return models.Holding{
			Ticker:         t,
			DisplayName:    name,
			Sector:         sector,
			Country:        country,
			Quantity:       decimal.NewFromInt(qty),
			CostBasisPrice: decimal.RequireFromString(cost),
			AccountName:    DefaultAccount,
		}
	}
	return []models.Holding{
		row("000660.KS", "SK하이닉스", "반도체", models.CountryDomestic, 2, "180000"),
		row("267250.KS", "HD현대일렉트릭", "전력인프라", models.CountryDomestic, 7, "300000"),
		row("373220.KS", "KODEX 골드선물(H)", "원자재(금)", models.CountryDomestic, 50, "24000"),
		row("IAU", "iShares Gold Trust", "원자재(금)", models.CountryForeign, 20, "50.0"),
		row("SPLG", "SPDR S&P 500", "지수추종", models.CountryForeign, 15, "65.0"),
	}
}

// Reset discards every account and restores the sample portfolio
func (s *SessionService) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts = map[string][]models.Holding{
		DefaultAccount: SampleHoldings(),
	}
	log.Info("session reset to sample portfolio")
}

// ListAccounts returns the account names in ascending order
func (s *SessionService) ListAccounts() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return valuation.AccountNames(s.accounts)
}

// GetHoldings returns a copy of one account's holdings
func (s *SessionService) GetHoldings(name string) ([]models.Holding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	holdings, ok := s.accounts[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	return cloneHoldings(holdings), nil
}

// Accounts returns a copy of every account's holdings
func (s *SessionService) Accounts() map[string][]models.Holding {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string][]models.Holding, len(s.accounts))
	for name, holdings := range s.accounts {
		out[name] = cloneHoldings(holdings)
	}
	return out
}

// ReplaceHoldings validates holdings and makes them the whole content of the
// named account, creating it if needed
func (s *SessionService) ReplaceHoldings(ctx context.Context, name string, holdings []models.Holding) ([]models.Holding, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: account name", ErrMissingField)
	}

	enriched := s.listings.Enrich(ctx, holdings, s.opts.IsCash)
	valid, err := ValidateHoldings(ctx, enriched, s.opts)
	if err != nil {
		return nil, err
	}
	for i := range valid {
		valid[i].AccountName = name
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[name] = valid
	log.Infof("account %q replaced with %d holdings", name, len(valid))
	return cloneHoldings(valid), nil
}

// ImportRows validates imported rows, groups them by account_name and
// replaces each named account with its rows. Rows with no account go to
// defaultAccount, or DefaultAccount when that is blank. Accounts not named in
// the import are left alone. Either every account is replaced or none is.
func (s *SessionService) ImportRows(ctx context.Context, rows []models.Holding, defaultAccount string) ([]string, error) {
	defaultAccount = strings.TrimSpace(defaultAccount)
	if defaultAccount == "" {
		defaultAccount = DefaultAccount
	}

	enriched := s.listings.Enrich(ctx, rows, s.opts.IsCash)
	valid, err := ValidateHoldings(ctx, enriched, s.opts)
	if err != nil {
		return nil, err
	}

	grouped := make(map[string][]models.Holding)
	for _, h := range valid {
		if h.AccountName == "" {
			h.AccountName = defaultAccount
		}
		grouped[h.AccountName] = append(grouped[h.AccountName], h)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for name, holdings := range grouped {
		s.accounts[name] = holdings
	}
	names := valuation.AccountNames(grouped)
	log.Infof("imported %d rows into accounts %v", len(valid), names)
	return names, nil
}

// DeleteAccount drops an account and its holdings
func (s *SessionService) DeleteAccount(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	name = strings.TrimSpace(name)
	if _, ok := s.accounts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAccountNotFound, name)
	}
	delete(s.accounts, name)
	return nil
}

func cloneHoldings(in []models.Holding) []models.Holding {
	out := make([]models.Holding, len(in))
	copy(out, in)
	for i := range out {
		if out[i].TargetQuantity != nil {
			t := *out[i].TargetQuantity
			out[i].TargetQuantity = &t
		}
	}
	return out
}
