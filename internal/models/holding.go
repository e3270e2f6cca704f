package models

import (
	"github.com/shopspring/decimal"
)

// Country tells whether a holding trades on the home market or a foreign one
type Country string

const (
	CountryDomestic Country = "Domestic"
	CountryForeign  Country = "Foreign"
)

// AssetClass is the coarse category assigned by the classifier
type AssetClass string

const (
	AssetClassCash            AssetClass = "Cash"
	AssetClassETF             AssetClass = "ETF"
	AssetClassIndividualStock AssetClass = "Individual Stock"
)

// DefaultSector is used when a row carries no sector
const DefaultSector = "Other"

// Holding represents one row of a portfolio.
// For cash sentinels (ticker equal to a currency code) Quantity is the cash amount itself.
type Holding struct {
	Ticker         string           `json:"ticker"`
	DisplayName    string           `json:"display_name"`
	Sector         string           `json:"sector"`
	Country        Country          `json:"country"`
	Quantity       decimal.Decimal  `json:"quantity"`
	CostBasisPrice decimal.Decimal  `json:"cost_basis_price"`
	AccountName    string           `json:"account_name"`
	TargetQuantity *decimal.Decimal `json:"target_quantity,omitempty"`
}

// HoldingInput is a posted holdings row. The numeric columns are pointers so
// an absent quantity or cost basis is told apart from zero.
type HoldingInput struct {
	Ticker         string           `json:"ticker"`
	DisplayName    string           `json:"display_name"`
	Sector         string           `json:"sector"`
	Country        Country          `json:"country"`
	Quantity       *decimal.Decimal `json:"quantity"`
	CostBasisPrice *decimal.Decimal `json:"cost_basis_price"`
	AccountName    string           `json:"account_name"`
	TargetQuantity *decimal.Decimal `json:"target_quantity,omitempty"`
}

// ValuationRecord is a Holding with the derived money fields of one valuation pass.
// Amounts are in the reporting (home) currency, CurrentPrice is in the native currency.
type ValuationRecord struct {
	Holding
	AssetClass       AssetClass      `json:"asset_class"`
	CurrentPrice     decimal.Decimal `json:"current_price"`
	FXMultiplier     decimal.Decimal `json:"fx_multiplier"`
	CostBasisAmount  decimal.Decimal `json:"cost_basis_amount"`
	MarketValue      decimal.Decimal `json:"market_value"`
	ReturnPct        decimal.Decimal `json:"return_pct"`
	PriceUnavailable bool            `json:"price_unavailable,omitempty"`
	Degraded         bool            `json:"degraded,omitempty"`
}

// PlanRow is the rebalance simulation overlay for one valuation record.
// TradeAmount is positive for a buy and negative for a sale.
type PlanRow struct {
	ValuationRecord
	TargetQuantity decimal.Decimal `json:"target_quantity"`
	QuantityDelta  decimal.Decimal `json:"quantity_delta"`
	PlannedValue   decimal.Decimal `json:"planned_value"`
	TradeAmount    decimal.Decimal `json:"trade_amount"`
}

// PlanSummary totals a rebalance plan against the valuation it was derived from
type PlanSummary struct {
	CurrentTotal decimal.Decimal `json:"current_total"`
	PlannedTotal decimal.Decimal `json:"planned_total"`
	TotalBuy     decimal.Decimal `json:"total_buy"`
	TotalSell    decimal.Decimal `json:"total_sell"`
	NetTrade     decimal.Decimal `json:"net_trade"`
	Reconciled   bool            `json:"reconciled"`
}

// AllocationSlice is one wedge of an allocation breakdown
type AllocationSlice struct {
	Label     string          `json:"label"`
	Value     decimal.Decimal `json:"value"`
	WeightPct decimal.Decimal `json:"weight_pct"`
}

// PortfolioSummary carries the totals and allocation breakdowns of a valuation table
type PortfolioSummary struct {
	Currency        string            `json:"currency"`
	TotalValue      decimal.Decimal   `json:"total_value"`
	TotalValueText  string            `json:"total_value_text"`
	TotalCost       decimal.Decimal   `json:"total_cost"`
	UnrealizedGain  decimal.Decimal   `json:"unrealized_gain"`
	TotalReturnPct  decimal.Decimal   `json:"total_return_pct"`
	BySector        []AllocationSlice `json:"by_sector"`
	ByName          []AllocationSlice `json:"by_name"`
	ByCountry       []AllocationSlice `json:"by_country"`
	ByAssetClass    []AllocationSlice `json:"by_asset_class"`
	HoldingCount    int               `json:"holding_count"`
	UnpricedHolding int               `json:"unpriced_holdings"`
}
