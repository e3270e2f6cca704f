package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/epeers/folio/internal/models"
	"github.com/epeers/folio/internal/services"
	"github.com/shopspring/decimal"
)

// columnAliases maps accepted header spellings onto canonical column names
var columnAliases = map[string]string{
	"name":    "display_name",
	"cost":    "cost_basis_price",
	"account": "account_name",
	"target":  "target_quantity",
}

// ParseHoldingsCSV parses a holdings import CSV into a slice of Holding.
// Required columns: ticker, display_name (or name), quantity, cost_basis_price (or cost)
// Optional columns: sector, country, account_name (or account), target_quantity
// Rows whose every cell is blank are skipped. Numbers may carry thousands separators.
func ParseHoldingsCSV(r io.Reader) ([]models.Holding, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	colIdx := make(map[string]int)
	for i, col := range header {
		name := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(col, "\ufeff")))
		if canonical, ok := columnAliases[name]; ok {
			name = canonical
		}
		colIdx[name] = i
	}

	for _, col := range []string{"ticker", "display_name", "quantity", "cost_basis_price"} {
		if _, ok := colIdx[col]; !ok {
			return nil, fmt.Errorf("%w: missing required column %s", services.ErrMissingField, col)
		}
	}

	cell := func(record []string, col string) string {
		idx, ok := colIdx[col]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var holdings []models.Holding
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: failed to read CSV record: %w", rowNum+1, err)
		}
		rowNum++

		if blankRecord(record) {
			continue
		}

		quantity, err := requiredNumber(rowNum, "quantity", cell(record, "quantity"))
		if err != nil {
			return nil, err
		}
		cost, err := requiredNumber(rowNum, "cost_basis_price", cell(record, "cost_basis_price"))
		if err != nil {
			return nil, err
		}

		h := models.Holding{
			Ticker:         cell(record, "ticker"),
			DisplayName:    cell(record, "display_name"),
			Sector:         cell(record, "sector"),
			Country:        models.Country(cell(record, "country")),
			Quantity:       quantity,
			CostBasisPrice: cost,
			AccountName:    cell(record, "account_name"),
		}
		if raw := cell(record, "target_quantity"); raw != "" {
			target, err := parseNumber(raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w: target_quantity %q", rowNum, services.ErrInvalidField, raw)
			}
			h.TargetQuantity = &target
		}
		holdings = append(holdings, h)
	}

	return holdings, nil
}

// requiredNumber parses a numeric cell that must be present
func requiredNumber(rowNum int, col, raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, fmt.Errorf("row %d: %w: %s", rowNum, services.ErrMissingField, col)
	}
	v, err := parseNumber(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("row %d: %w: %s %q", rowNum, services.ErrInvalidField, col, raw)
	}
	return v, nil
}

// parseNumber reads a decimal, dropping thousands separators
func parseNumber(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(s, ",", ""))
}

func blankRecord(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
