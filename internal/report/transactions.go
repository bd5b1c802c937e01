// Package report computes the derived figures shown on the dashboard and list
// screens. Sums are accumulated with exact decimals and rounded to cents on
// output. No function here modifies its input.
package report

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"patrimonio/internal/models"
)

// TransactionTotals is the income/expense balance of a set of transactions.
type TransactionTotals struct {
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
	Balance  float64 `json:"balance"`
}

// CategorySlice is one category's share of the expenses.
type CategorySlice struct {
	Category   string  `json:"category"`
	Value      float64 `json:"value"`
	Percentage float64 `json:"percentage"`
	Icon       string  `json:"icon"`
}

// MonthFlow is the income and expenses of one calendar month.
type MonthFlow struct {
	Month    string  `json:"month"`
	Income   float64 `json:"income"`
	Expenses float64 `json:"expenses"`
}

// Totals sums income and expenses. Balance is income minus expenses.
func Totals(txs []models.Transaction) TransactionTotals {
	income, expenses := decimal.Zero, decimal.Zero
	for _, tx := range txs {
		amount := decimal.NewFromFloat(tx.Amount)
		switch tx.Type {
		case models.TransactionTypeIncome:
			income = income.Add(amount)
		case models.TransactionTypeExpense:
			expenses = expenses.Add(amount)
		}
	}
	return TransactionTotals{
		Income:   round(income),
		Expenses: round(expenses),
		Balance:  round(income.Sub(expenses)),
	}
}

// ExpensesByCategory groups expense amounts by category, largest first.
// Categories with equal value are ordered by name.
func ExpensesByCategory(txs []models.Transaction) []CategorySlice {
	sums := map[string]decimal.Decimal{}
	total := decimal.Zero
	for _, tx := range txs {
		if tx.Type != models.TransactionTypeExpense {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount)
		sums[tx.Category] = sums[tx.Category].Add(amount)
		total = total.Add(amount)
	}

	out := make([]CategorySlice, 0, len(sums))
	for category, value := range sums {
		out = append(out, CategorySlice{
			Category:   category,
			Value:      round(value),
			Percentage: percentage(value, total),
			Icon:       CategoryIcon(category, models.TransactionTypeExpense),
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

// CashFlow returns one entry per calendar month for the last months months,
// ending with the month containing now, oldest first. Transactions outside
// the window are ignored.
func CashFlow(txs []models.Transaction, now time.Time, months int) []MonthFlow {
	if months <= 0 {
		return []MonthFlow{}
	}
	current := MonthStart(now)
	first := current.AddDate(0, -(months - 1), 0)

	income := make([]decimal.Decimal, months)
	expenses := make([]decimal.Decimal, months)
	for _, tx := range txs {
		d := tx.Date.UTC()
		idx := (d.Year()-first.Year())*12 + int(d.Month()) - int(first.Month())
		if idx < 0 || idx >= months {
			continue
		}
		amount := decimal.NewFromFloat(tx.Amount)
		if tx.Type == models.TransactionTypeIncome {
			income[idx] = income[idx].Add(amount)
		} else if tx.Type == models.TransactionTypeExpense {
			expenses[idx] = expenses[idx].Add(amount)
		}
	}

	out := make([]MonthFlow, months)
	for i := range out {
		out[i] = MonthFlow{
			Month:    first.AddDate(0, i, 0).Format("2006-01"),
			Income:   round(income[i]),
			Expenses: round(expenses[i]),
		}
	}
	return out
}

// Recent returns up to n transactions, newest date first. Transactions on
// the same date are ordered by creation time, newest first.
func Recent(txs []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(txs))
	copy(sorted, txs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.After(sorted[j].Date)
		}
		return sorted[i].CreatedAt.After(sorted[j].CreatedAt)
	})
	if n >= 0 && len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

// InMonth keeps the transactions dated in the calendar month containing now.
func InMonth(txs []models.Transaction, now time.Time) []models.Transaction {
	start := MonthStart(now)
	end := start.AddDate(0, 1, 0)
	out := make([]models.Transaction, 0, len(txs))
	for _, tx := range txs {
		if !tx.Date.Before(start) && tx.Date.Before(end) {
			out = append(out, tx)
		}
	}
	return out
}

// AccountsTotal sums account balances.
func AccountsTotal(accounts []models.Account) float64 {
	total := decimal.Zero
	for _, a := range accounts {
		total = total.Add(decimal.NewFromFloat(a.Balance))
	}
	return round(total)
}

// MonthStart returns UTC midnight of the first day of the calendar month t
// falls in, read in t's own location. Stored dates are UTC midnights, so the
// window covers the same calendar days the user sees.
func MonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func round(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

// percentage returns part/total*100 rounded to one decimal, 0 when total is 0.
func percentage(part, total decimal.Decimal) float64 {
	if total.IsZero() {
		return 0
	}
	return part.Div(total).Mul(decimal.NewFromInt(100)).Round(1).InexactFloat64()
}
