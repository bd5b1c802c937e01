package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
)

// AlertWindow is how far ahead licensing and insurance dates are reported.
const AlertWindow = 30 * 24 * time.Hour

// Alert kinds.
const (
	AlertLicensing = "licensing"
	AlertInsurance = "insurance"
)

// VehicleSummary aggregates the fleet.
type VehicleSummary struct {
	Count                int     `json:"count"`
	MonthCost            float64 `json:"month_cost"`
	UpcomingMaintenances int     `json:"upcoming_maintenances"`
	AverageEfficiency    float64 `json:"average_efficiency"`
}

// EfficiencyPoint is the consumption measured between two refuelings.
type EfficiencyPoint struct {
	RefuelingID string    `json:"refueling_id"`
	Date        time.Time `json:"date"`
	Distance    float64   `json:"distance"`
	KmPerLiter  float64   `json:"km_per_liter"`
	CostPerKm   float64   `json:"cost_per_km"`
}

// VehicleEfficiency is the consumption history of one vehicle.
type VehicleEfficiency struct {
	VehicleID     string            `json:"vehicle_id"`
	Points        []EfficiencyPoint `json:"points"`
	TotalDistance float64           `json:"total_distance"`
	KmPerLiter    float64           `json:"km_per_liter"`
	CostPerKm     float64           `json:"cost_per_km"`
}

// VehicleAlert flags a licensing or insurance date that is coming up.
type VehicleAlert struct {
	VehicleID string    `json:"vehicle_id"`
	Vehicle   string    `json:"vehicle"`
	Kind      string    `json:"kind"`
	Date      time.Time `json:"date"`
}

// Efficiency computes consumption per vehicle. Each vehicle's refuelings are
// ordered by odometer and every refueling after the first yields a point from
// the distance driven since the previous one. Refuelings with a non-positive
// distance or no liters are skipped. Vehicles are returned in id order.
func Efficiency(refuelings []models.Refueling) []VehicleEfficiency {
	byVehicle := map[string][]models.Refueling{}
	for _, r := range refuelings {
		byVehicle[r.VehicleID] = append(byVehicle[r.VehicleID], r)
	}

	ids := make([]string, 0, len(byVehicle))
	for id := range byVehicle {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]VehicleEfficiency, 0, len(ids))
	for _, id := range ids {
		rs := byVehicle[id]
		sort.SliceStable(rs, func(i, j int) bool { return rs[i].Odometer < rs[j].Odometer })

		ve := VehicleEfficiency{VehicleID: id, Points: []EfficiencyPoint{}}
		distance, liters, cost := decimal.Zero, decimal.Zero, decimal.Zero
		for i := 1; i < len(rs); i++ {
			delta := decimal.NewFromFloat(rs[i].Odometer).Sub(decimal.NewFromFloat(rs[i-1].Odometer))
			l := decimal.NewFromFloat(rs[i].Liters)
			if !delta.IsPositive() || !l.IsPositive() {
				continue
			}
			c := decimal.NewFromFloat(rs[i].TotalCost)
			ve.Points = append(ve.Points, EfficiencyPoint{
				RefuelingID: rs[i].ID,
				Date:        rs[i].Date,
				Distance:    round(delta),
				KmPerLiter:  round(delta.Div(l)),
				CostPerKm:   round(c.Div(delta)),
			})
			distance = distance.Add(delta)
			liters = liters.Add(l)
			cost = cost.Add(c)
		}
		ve.TotalDistance = round(distance)
		if liters.IsPositive() {
			ve.KmPerLiter = round(distance.Div(liters))
		}
		if distance.IsPositive() {
			ve.CostPerKm = round(cost.Div(distance))
		}
		out = append(out, ve)
	}
	return out
}

// VehicleTotals aggregates the fleet. MonthCost is the refueling and
// maintenance spending dated in the calendar month (and year) of now.
// AverageEfficiency is the mean km/L of the vehicles that have enough
// refuelings to measure it.
func VehicleTotals(vehicles []models.Vehicle, refuelings []models.Refueling, maintenances []models.Maintenance, now time.Time) VehicleSummary {
	start := MonthStart(now)
	end := start.AddDate(0, 1, 0)
	inMonth := func(t time.Time) bool { return !t.Before(start) && t.Before(end) }

	cost := decimal.Zero
	for _, r := range refuelings {
		if inMonth(r.Date) {
			cost = cost.Add(decimal.NewFromFloat(r.TotalCost))
		}
	}
	upcoming := 0
	for _, m := range maintenances {
		if inMonth(m.Date) {
			cost = cost.Add(decimal.NewFromFloat(m.Cost))
		}
		if m.Date.After(now) {
			upcoming++
		}
	}

	sum, measured := decimal.Zero, 0
	for _, ve := range Efficiency(refuelings) {
		if ve.KmPerLiter > 0 {
			sum = sum.Add(decimal.NewFromFloat(ve.KmPerLiter))
			measured++
		}
	}
	avg := 0.0
	if measured > 0 {
		avg = round(sum.Div(decimal.NewFromInt(int64(measured))))
	}

	return VehicleSummary{
		Count:                len(vehicles),
		MonthCost:            round(cost),
		UpcomingMaintenances: upcoming,
		AverageEfficiency:    avg,
	}
}

// VehicleAlerts lists licensing and insurance dates between now and
// now+window inclusive, soonest first.
func VehicleAlerts(vehicles []models.Vehicle, now time.Time, window time.Duration) []VehicleAlert {
	limit := now.Add(window)
	due := func(t *time.Time) bool {
		return t != nil && !t.Before(now) && !t.After(limit)
	}

	out := make([]VehicleAlert, 0)
	for _, v := range vehicles {
		if due(v.LicensingDate) {
			out = append(out, VehicleAlert{VehicleID: v.ID, Vehicle: v.Name, Kind: AlertLicensing, Date: *v.LicensingDate})
		}
		if due(v.InsuranceRenewalDate) {
			out = append(out, VehicleAlert{VehicleID: v.ID, Vehicle: v.Name, Kind: AlertInsurance, Date: *v.InsuranceRenewalDate})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}
