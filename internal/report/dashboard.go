package report

import (
	"time"

	"patrimonio/internal/models"
	"patrimonio/internal/money"
)

const (
	dashboardRecent = 5
	dashboardMonths = 6
)

// Dashboard is the landing screen: this month's figures, the asset value,
// where the money went and the latest entries.
type Dashboard struct {
	Month              string               `json:"month"`
	Currency           string               `json:"currency"`
	MonthIncome        float64              `json:"month_income"`
	MonthExpenses      float64              `json:"month_expenses"`
	MonthBalance       float64              `json:"month_balance"`
	AssetsValue        float64              `json:"assets_value"`
	Formatted          DashboardStrings     `json:"formatted"`
	ExpensesByCategory []CategorySlice      `json:"expenses_by_category"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
	CashFlow           []MonthFlow          `json:"cash_flow"`
}

// DashboardStrings carries the headline figures formatted in the display currency.
type DashboardStrings struct {
	MonthIncome   string `json:"month_income"`
	MonthExpenses string `json:"month_expenses"`
	MonthBalance  string `json:"month_balance"`
	AssetsValue   string `json:"assets_value"`
}

// BuildDashboard computes the dashboard from the user's transactions and
// assets. Only current values count toward the asset value.
func BuildDashboard(txs []models.Transaction, assets []models.Asset, now time.Time, currency string) Dashboard {
	currency = money.Currency(currency)
	month := InMonth(txs, now)
	totals := Totals(month)
	assetsValue := CurrentValueTotal(assets)

	return Dashboard{
		Month:         MonthStart(now).Format("2006-01"),
		Currency:      currency,
		MonthIncome:   totals.Income,
		MonthExpenses: totals.Expenses,
		MonthBalance:  totals.Balance,
		AssetsValue:   assetsValue,
		Formatted: DashboardStrings{
			MonthIncome:   money.Format(totals.Income, currency),
			MonthExpenses: money.Format(totals.Expenses, currency),
			MonthBalance:  money.Format(totals.Balance, currency),
			AssetsValue:   money.Format(assetsValue, currency),
		},
		ExpensesByCategory: ExpensesByCategory(month),
		RecentTransactions: Recent(txs, dashboardRecent),
		CashFlow:           CashFlow(txs, now, dashboardMonths),
	}
}
