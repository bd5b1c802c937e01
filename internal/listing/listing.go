// Package listing narrows record lists the way the list screens do: a free
// text search across a few fields plus optional exact-match filters.
package listing

import (
	"strings"

	"patrimonio/internal/models"
)

// All is the filter value meaning "no filter".
const All = "all"

// Matches reports whether any field contains term, ignoring case. An empty
// term matches everything.
func Matches(term string, fields ...string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(strings.ToLower(f), term) {
			return true
		}
	}
	return false
}

// Filter returns the items for which keep is true, in their original order.
// The input slice is never modified.
func Filter[T any](items []T, keep func(T) bool) []T {
	out := make([]T, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}

// Selected reports whether value passes an exact-match filter. Empty and
// All select everything.
func Selected(filter, value string) bool {
	return filter == "" || filter == All || filter == value
}

// Transactions keeps transactions whose description or category contains search.
func Transactions(txs []models.Transaction, search string) []models.Transaction {
	return Filter(txs, func(tx models.Transaction) bool {
		return Matches(search, tx.Description, tx.Category)
	})
}

// Assets keeps assets whose name or category contains search and whose
// category equals category.
func Assets(assets []models.Asset, search, category string) []models.Asset {
	return Filter(assets, func(a models.Asset) bool {
		return Matches(search, a.Name, a.Category) && Selected(category, a.Category)
	})
}

// Vehicles keeps vehicles whose name, model or license plate contains search
// and whose type equals vehicleType.
func Vehicles(vehicles []models.Vehicle, search, vehicleType string) []models.Vehicle {
	return Filter(vehicles, func(v models.Vehicle) bool {
		return Matches(search, v.Name, v.Model, v.LicensePlate) && Selected(vehicleType, string(v.Type))
	})
}
