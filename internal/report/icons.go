package report

import "patrimonio/internal/models"

// Fallback icons when a category has no dedicated entry.
const (
	IconIncome  = "arrow-up-right"
	IconExpense = "arrow-down-left"
)

var categoryIcons = map[string]string{
	"Alimentação":   "utensils",
	"Transporte":    "car",
	"Moradia":       "home",
	"Compras":       "shopping-bag",
	"Saúde":         "heart",
	"Educação":      "book-open",
	"Lazer":         "gamepad",
	"Serviços":      "wrench",
	"Salário":       "briefcase",
	"Freelance":     "briefcase",
	"Investimentos": "trending-up",
	"Vendas":        "tag",
}

// CategoryIcon returns the icon key for a transaction category.
func CategoryIcon(category string, txType models.TransactionType) string {
	if icon, ok := categoryIcons[category]; ok {
		return icon
	}
	if txType == models.TransactionTypeIncome {
		return IconIncome
	}
	return IconExpense
}
