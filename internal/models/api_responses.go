package models

import (
	"github.com/shopspring/decimal"
)

// AccountHoldings is the posted holdings table of one account
type AccountHoldings struct {
	AccountName string         `json:"account_name"`
	Holdings    []HoldingInput `json:"holdings"`
}

// HoldingsResponse is the holdings table of one account as stored in the session
type HoldingsResponse struct {
	AccountName string    `json:"account_name"`
	Holdings    []Holding `json:"holdings"`
	Warnings    []Warning `json:"warnings,omitempty"`
}

// ReplaceHoldingsRequest represents the request body for replacing an account's holdings
type ReplaceHoldingsRequest struct {
	Holdings []HoldingInput `json:"holdings"`
}

// ValuationRequest represents the request body for a stateless valuation
type ValuationRequest struct {
	Accounts []AccountHoldings `json:"accounts" binding:"required"`
}

// RebalanceRequest represents the request body for a what-if rebalance
type RebalanceRequest struct {
	Account string                     `json:"account"`
	Targets map[string]decimal.Decimal `json:"targets"`
}

// AccountValuation is the valuation table of one account with its summary
type AccountValuation struct {
	AccountName string            `json:"account_name"`
	Excluded    bool              `json:"excluded"`
	Records     []ValuationRecord `json:"records"`
	Summary     PortfolioSummary  `json:"summary"`
}

// ValuationResponse represents the result of one valuation pass
type ValuationResponse struct {
	FX               FXQuote            `json:"fx"`
	Accounts         []AccountValuation `json:"accounts"`
	Consolidated     []ValuationRecord  `json:"consolidated"`
	Summary          PortfolioSummary   `json:"summary"`
	ExcludedAccounts []string           `json:"excluded_accounts,omitempty"`
	Warnings         []Warning          `json:"warnings,omitempty"`
}

// RebalanceResponse represents the result of a what-if rebalance pass
type RebalanceResponse struct {
	FX       FXQuote           `json:"fx"`
	Account  string            `json:"account"`
	Records  []ValuationRecord `json:"records"`
	Plan     []PlanRow         `json:"plan"`
	Summary  PlanSummary       `json:"summary"`
	Warnings []Warning         `json:"warnings,omitempty"`
}

// ImportResponse reports the outcome of a CSV import
type ImportResponse struct {
	Accounts []string  `json:"accounts"`
	Rows     int       `json:"rows"`
	Warnings []Warning `json:"warnings,omitempty"`
}

// AccountListResponse lists the accounts held in the session
type AccountListResponse struct {
	Accounts []string `json:"accounts"`
}

// ErrorResponse represents an API error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
