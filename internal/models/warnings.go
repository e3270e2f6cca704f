package models

// WarningCode categorizes warnings by subsystem.
// W1xxx = ingestion, W2xxx = pricing, W3xxx = valuation.
type WarningCode string

const (
	WarnSectorDefaulted  WarningCode = "W1001" // row had no sector, "Other" used
	WarnCountryGuessed   WarningCode = "W1002" // row had no country, derived from the ticker
	WarnPriceUnavailable WarningCode = "W2001" // every quote provider failed, price valued at 0
	WarnFXFallback       WarningCode = "W2002" // every FX provider failed, configured fallback rate used
	WarnRowDegraded      WarningCode = "W3001" // row-level fault recovered, derived fields zeroed
	WarnAccountsExcluded WarningCode = "W3002" // consolidated view left out accounts by name filter
	WarnTargetNotHeld    WarningCode = "W3003" // rebalance target for a ticker the account does not hold, planned as a new position
)

// Warning represents a non-fatal issue encountered during processing.
type Warning struct {
	Code    WarningCode `json:"code"`
	Message string      `json:"message"`
}
