package cli

import (
	"fmt"
	"strings"
	"time"

	"patrimonio/internal/models"
	"patrimonio/internal/money"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
	"patrimonio/internal/services"
)

const dateLayout = "2006-01-02"

// cell escapes text for a markdown table cell.
func cell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

func optional(s *string) string {
	if s == nil {
		return "-"
	}
	return cell(*s)
}

func optionalDate(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}

func signed(tx models.Transaction, currency string) string {
	if tx.Type == models.TransactionTypeExpense {
		return "-" + money.Format(tx.Amount, currency)
	}
	return "+" + money.Format(tx.Amount, currency)
}

func pageFooter[T any](b *strings.Builder, page *pagination.PageResponse[T]) {
	if page.TotalPages > 1 {
		fmt.Fprintf(b, "\nPage %d of %d (%d items)\n", page.Page, page.TotalPages, page.TotalItems)
	}
}

// DashboardMarkdown renders the dashboard.
func DashboardMarkdown(d report.Dashboard) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Dashboard %s\n\n", d.Month)
	b.WriteString("| | |\n|---|---:|\n")
	fmt.Fprintf(&b, "| Income this month | %s |\n", d.Formatted.MonthIncome)
	fmt.Fprintf(&b, "| Expenses this month | %s |\n", d.Formatted.MonthExpenses)
	fmt.Fprintf(&b, "| Balance | %s |\n", d.Formatted.MonthBalance)
	fmt.Fprintf(&b, "| Assets | %s |\n", d.Formatted.AssetsValue)

	if len(d.ExpensesByCategory) > 0 {
		b.WriteString("\n## Expenses by category\n\n| | Category | Amount | Share |\n|---|---|---:|---:|\n")
		for _, s := range d.ExpensesByCategory {
			fmt.Fprintf(&b, "| %s | %s | %s | %.1f%% |\n", s.Icon, cell(s.Category), money.Format(s.Value, d.Currency), s.Percentage)
		}
	}

	if len(d.CashFlow) > 0 {
		b.WriteString("\n## Cash flow\n\n| Month | Income | Expenses |\n|---|---:|---:|\n")
		for _, m := range d.CashFlow {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", m.Month, money.Format(m.Income, d.Currency), money.Format(m.Expenses, d.Currency))
		}
	}

	b.WriteString("\n## Recent transactions\n\n")
	if len(d.RecentTransactions) == 0 {
		b.WriteString("No transactions yet.\n")
		return b.String()
	}
	b.WriteString("| Date | Description | Category | Amount |\n|---|---|---|---:|\n")
	for _, tx := range d.RecentTransactions {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", tx.Date.Format(dateLayout), cell(tx.Description), cell(tx.Category), signed(tx, d.Currency))
	}
	return b.String()
}

// AccountsMarkdown renders a page of accounts.
func AccountsMarkdown(page *pagination.PageResponse[models.Account], currency string) string {
	var b strings.Builder
	b.WriteString("# Accounts\n\n")
	if len(page.Data) == 0 {
		b.WriteString("No accounts yet.\n")
		return b.String()
	}
	b.WriteString("| ID | Name | Type | Balance |\n|---|---|---|---:|\n")
	for _, a := range page.Data {
		fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", a.ID, cell(a.Name), a.Type, money.Format(a.Balance, currency))
	}
	pageFooter(&b, page)
	return b.String()
}

// TransactionsMarkdown renders a page of transactions followed by the totals
// of every transaction matching the same filters.
func TransactionsMarkdown(page *pagination.PageResponse[models.Transaction], summary *services.TransactionSummary, currency string) string {
	var b strings.Builder
	b.WriteString("# Transactions\n\n")
	if len(page.Data) == 0 {
		b.WriteString("No transactions found.\n")
	} else {
		b.WriteString("| ID | Date | Description | Category | Amount |\n|---|---|---|---|---:|\n")
		for _, tx := range page.Data {
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
				tx.ID, tx.Date.Format(dateLayout), cell(tx.Description), cell(tx.Category), signed(tx, currency))
		}
		pageFooter(&b, page)
	}
	if summary != nil {
		fmt.Fprintf(&b, "\n**Income** %s · **Expenses** %s · **Balance** %s\n",
			money.Format(summary.Totals.Income, currency),
			money.Format(summary.Totals.Expenses, currency),
			money.Format(summary.Totals.Balance, currency))
	}
	return b.String()
}

// AssetsMarkdown renders a page of assets and the asset overview.
func AssetsMarkdown(page *pagination.PageResponse[models.Asset], overview *services.AssetOverview, currency string) string {
	var b strings.Builder
	b.WriteString("# Assets\n\n")
	if len(page.Data) == 0 {
		b.WriteString("No assets found.\n")
	} else {
		b.WriteString("| ID | Name | Category | Acquired | Paid | Current | Condition |\n|---|---|---|---|---:|---:|---|\n")
		for _, a := range page.Data {
			current := "-"
			if a.CurrentValue != nil {
				current = money.Format(*a.CurrentValue, currency)
			}
			condition := "-"
			if a.Condition != nil {
				condition = string(*a.Condition)
			}
			fmt.Fprintf(&b, "| %s | %s | %s | %s | %s | %s | %s |\n",
				a.ID, cell(a.Name), cell(a.Category), a.AcquisitionDate.Format(dateLayout),
				money.Format(a.AcquisitionValue, currency), current, condition)
		}
		pageFooter(&b, page)
	}
	if overview == nil {
		return b.String()
	}

	t := overview.Totals
	fmt.Fprintf(&b, "\n**Total value** %s · **Paid** %s · **Appreciation** %s (%.1f%%)\n",
		money.Format(t.TotalValue, currency), money.Format(t.TotalAcquisition, currency),
		money.Format(t.Appreciation, currency), t.AppreciationPercentage)
	if len(overview.ExpiringWarranties) > 0 {
		b.WriteString("\n## Warranties expiring soon\n\n")
		for _, a := range overview.ExpiringWarranties {
			fmt.Fprintf(&b, "- %s: %s\n", cell(a.Name), optionalDate(a.WarrantyExpiration))
		}
	}
	return b.String()
}

// VehiclesMarkdown renders a page of vehicles and the fleet overview.
func VehiclesMarkdown(page *pagination.PageResponse[models.Vehicle], overview *services.VehicleOverview, currency string) string {
	var b strings.Builder
	b.WriteString("# Vehicles\n\n")
	if len(page.Data) == 0 {
		b.WriteString("No vehicles found.\n")
	} else {
		b.WriteString("| ID | Name | Vehicle | Plate | Odometer | Fuel | Licensing | Insurance |\n|---|---|---|---|---:|---|---|---|\n")
		for _, v := range page.Data {
			fmt.Fprintf(&b, "| %s | %s | %s %s %d | %s | %.0f km | %s | %s | %s |\n",
				v.ID, cell(v.Name), cell(v.Brand), cell(v.Model), v.Year, cell(v.LicensePlate), v.Odometer,
				v.FuelType, optionalDate(v.LicensingDate), optionalDate(v.InsuranceRenewalDate))
		}
		pageFooter(&b, page)
	}
	if overview == nil {
		return b.String()
	}

	t := overview.Totals
	fmt.Fprintf(&b, "\n**Spent this month** %s · **Average** %.2f km/L\n", money.Format(t.MonthCost, currency), t.AverageEfficiency)
	if len(overview.Alerts) > 0 {
		b.WriteString("\n## Upcoming deadlines\n\n")
		for _, a := range overview.Alerts {
			fmt.Fprintf(&b, "- %s %s: %s\n", cell(a.Vehicle), a.Kind, a.Date.Format(dateLayout))
		}
	}
	return b.String()
}

// RefuelingsMarkdown renders a vehicle's refuelings.
func RefuelingsMarkdown(refuelings []models.Refueling, currency string) string {
	var b strings.Builder
	b.WriteString("## Refuelings\n\n")
	if len(refuelings) == 0 {
		b.WriteString("No refuelings yet.\n")
		return b.String()
	}
	b.WriteString("| ID | Date | Odometer | Liters | Price/L | Total | Fuel |\n|---|---|---:|---:|---:|---:|---|\n")
	for _, r := range refuelings {
		fmt.Fprintf(&b, "| %s | %s | %.0f km | %.2f | %s | %s | %s |\n",
			r.ID, r.Date.Format(dateLayout), r.Odometer, r.Liters,
			money.Format(r.PricePerLiter, currency), money.Format(r.TotalCost, currency), r.FuelType)
	}
	return b.String()
}

// MaintenancesMarkdown renders a vehicle's maintenances.
func MaintenancesMarkdown(maintenances []models.Maintenance, currency string) string {
	var b strings.Builder
	b.WriteString("## Maintenances\n\n")
	if len(maintenances) == 0 {
		b.WriteString("No maintenances yet.\n")
		return b.String()
	}
	b.WriteString("| ID | Date | Odometer | Type | Cost | Provider |\n|---|---|---:|---|---:|---|\n")
	for _, m := range maintenances {
		fmt.Fprintf(&b, "| %s | %s | %.0f km | %s | %s | %s |\n",
			m.ID, m.Date.Format(dateLayout), m.Odometer, cell(m.Type), money.Format(m.Cost, currency), optional(m.Provider))
	}
	return b.String()
}
