package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
)

// WarrantyWindow is how far ahead expiring warranties are reported.
const WarrantyWindow = 30 * 24 * time.Hour

// AssetSummary aggregates an asset list.
type AssetSummary struct {
	Count                  int     `json:"count"`
	TotalValue             float64 `json:"total_value"`
	TotalAcquisition       float64 `json:"total_acquisition"`
	Appreciation           float64 `json:"appreciation"`
	AppreciationPercentage float64 `json:"appreciation_percentage"`
}

// AssetCategory is one category's share of the total asset value.
type AssetCategory struct {
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

// AssetTotals sums asset values. Each asset counts at its current value when
// known, else at its acquisition value.
func AssetTotals(assets []models.Asset) AssetSummary {
	value, acquisition := decimal.Zero, decimal.Zero
	for _, a := range assets {
		value = value.Add(decimal.NewFromFloat(a.Value()))
		acquisition = acquisition.Add(decimal.NewFromFloat(a.AcquisitionValue))
	}
	appreciation := value.Sub(acquisition)
	return AssetSummary{
		Count:                  len(assets),
		TotalValue:             round(value),
		TotalAcquisition:       round(acquisition),
		Appreciation:           round(appreciation),
		AppreciationPercentage: percentage(appreciation, acquisition),
	}
}

// AssetsByCategory groups assets by category, most valuable first.
func AssetsByCategory(assets []models.Asset) []AssetCategory {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	total := decimal.Zero
	for _, a := range assets {
		v := decimal.NewFromFloat(a.Value())
		sums[a.Category] = sums[a.Category].Add(v)
		counts[a.Category]++
		total = total.Add(v)
	}

	out := make([]AssetCategory, 0, len(sums))
	for category, v := range sums {
		out = append(out, AssetCategory{
			Category:   category,
			Value:      round(v),
			Count:      counts[category],
			Percentage: percentage(v, total),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			return out[i].Value > out[j].Value
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// ExpiringWarranties returns the assets whose warranty ends between now and
// now+window inclusive, soonest first.
func ExpiringWarranties(assets []models.Asset, now time.Time, window time.Duration) []models.Asset {
	limit := now.Add(window)
	out := make([]models.Asset, 0)
	for _, a := range assets {
		if a.WarrantyExpiration == nil {
			continue
		}
		exp := *a.WarrantyExpiration
		if !exp.Before(now) && !exp.After(limit) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].WarrantyExpiration.Before(*out[j].WarrantyExpiration)
	})
	return out
}

// CurrentValueTotal sums current values only, counting unknown values as zero.
func CurrentValueTotal(assets []models.Asset) float64 {
	total := decimal.Zero
	for _, a := range assets {
		if a.CurrentValue != nil {
			total = total.Add(decimal.NewFromFloat(*a.CurrentValue))
		}
	}
	return round(total)
}
