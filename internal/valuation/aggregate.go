package valuation

import (
	"sort"
	"strings"

	"github.com/epeers/folio/internal/models"
)

// Aggregate concatenates per-account valuation tables in ascending account
// order, tagging each copied record with the account it came from. Totals of
// the consolidated view are plain sums over the result.
func Aggregate(accounts map[string][]models.ValuationRecord) []models.ValuationRecord {
	var total int
	for _, recs := range accounts {
		total += len(recs)
	}
	out := make([]models.ValuationRecord, 0, total)
	for _, name := range AccountNames(accounts) {
		for _, rec := range accounts[name] {
			rec.AccountName = name
			out = append(out, rec)
		}
	}
	return out
}

// AccountFilter reports whether an account should be left out of the consolidated view
type AccountFilter func(accountName string) bool

// AccountNameFilter excludes accounts whose name contains any marker, case-insensitively.
// Blank markers are ignored; with no markers nothing is excluded.
func AccountNameFilter(markers ...string) AccountFilter {
	var clean []string
	for _, m := range markers {
		m = strings.ToLower(strings.TrimSpace(m))
		if m != "" {
			clean = append(clean, m)
		}
	}
	return func(name string) bool {
		lower := strings.ToLower(name)
		for _, m := range clean {
			if strings.Contains(lower, m) {
				return true
			}
		}
		return false
	}
}

// ExcludeAccounts returns a new map without the accounts the filter rejects,
// plus the sorted names that were dropped. The input map and its slices are not modified.
func ExcludeAccounts[T any](accounts map[string][]T, exclude AccountFilter) (map[string][]T, []string) {
	kept := make(map[string][]T, len(accounts))
	var dropped []string
	for name, rows := range accounts {
		if exclude != nil && exclude(name) {
			dropped = append(dropped, name)
			continue
		}
		kept[name] = rows
	}
	sort.Strings(dropped)
	return kept, dropped
}

// AccountNames returns the keys of an account map in ascending order
func AccountNames[T any](accounts map[string][]T) []string {
	names := make([]string, 0, len(accounts))
	for name := range accounts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
