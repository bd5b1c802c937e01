package forms

import (
	"context"
	"fmt"
	"time"

	"patrimonio/internal/client"
	"patrimonio/internal/models"
)

// TransactionForm holds the transaction fields as typed by the user.
type TransactionForm struct {
	AccountID   string
	Type        string
	Category    string
	Amount      string
	Date        string
	Description string
	Notes       string
	IsRecurring string
}

var transactionFields = []field[TransactionForm]{
	{"account_id", func(f *TransactionForm) *string { return &f.AccountID }},
	{"type", func(f *TransactionForm) *string { return &f.Type }},
	{"category", func(f *TransactionForm) *string { return &f.Category }},
	{"amount", func(f *TransactionForm) *string { return &f.Amount }},
	{"date", func(f *TransactionForm) *string { return &f.Date }},
	{"description", func(f *TransactionForm) *string { return &f.Description }},
	{"notes", func(f *TransactionForm) *string { return &f.Notes }},
	{"is_recurring", func(f *TransactionForm) *string { return &f.IsRecurring }},
}

// NewTransactionForm returns an empty expense dated today.
func NewTransactionForm(today time.Time) TransactionForm {
	return TransactionForm{
		Type:        string(models.TransactionTypeExpense),
		Date:        today.Format(DateLayout),
		IsRecurring: "false",
	}
}

// FromTransaction pre-fills a form with tx for editing.
func FromTransaction(tx models.Transaction) TransactionForm {
	return TransactionForm{
		AccountID:   tx.AccountID,
		Type:        string(tx.Type),
		Category:    tx.Category,
		Amount:      formatAmount(tx.Amount),
		Date:        formatDate(tx.Date),
		Description: tx.Description,
		Notes:       deref(tx.Notes),
		IsRecurring: fmt.Sprint(tx.IsRecurring),
	}
}

func (f TransactionForm) Set(name, value string) (TransactionForm, error) {
	return set(f, transactionFields, name, value)
}

func (f TransactionForm) Get(name string) string { return get(f, transactionFields, name) }

func (f TransactionForm) Fields() []string { return names(transactionFields) }

// Payload converts the form into the request body.
func (f TransactionForm) Payload() (client.TransactionPayload, error) {
	var p client.TransactionPayload
	var err error
	if p.AccountID, err = required("account_id", f.AccountID); err != nil {
		return p, err
	}
	txType, err := required("type", f.Type)
	if err != nil {
		return p, err
	}
	p.Type = models.TransactionType(txType)
	if p.Type != models.TransactionTypeIncome && p.Type != models.TransactionTypeExpense {
		return p, fmt.Errorf("type must be income or expense")
	}
	if p.Category, err = required("category", f.Category); err != nil {
		return p, err
	}
	if p.Amount, err = parseAmount("amount", f.Amount); err != nil {
		return p, err
	}
	if p.Amount <= 0 {
		return p, fmt.Errorf("amount must be positive")
	}
	if p.Date, err = parseDate("date", f.Date); err != nil {
		return p, err
	}
	if p.Description, err = required("description", f.Description); err != nil {
		return p, err
	}
	p.Notes = optionalString(f.Notes)
	if p.IsRecurring, err = parseBool("is_recurring", f.IsRecurring); err != nil {
		return p, err
	}
	return p, nil
}

// TransactionWriter persists transactions.
type TransactionWriter interface {
	CreateTransaction(ctx context.Context, payload client.TransactionPayload) (*models.Transaction, error)
	UpdateTransaction(ctx context.Context, id string, payload client.TransactionPayload) (*models.Transaction, error)
}

// SubmitTransaction updates editing when it is not nil and creates a new
// transaction otherwise.
func SubmitTransaction(ctx context.Context, auth Authenticated, w TransactionWriter, f TransactionForm, editing *models.Transaction) (*models.Transaction, error) {
	editingID := ""
	if editing != nil {
		editingID = editing.ID
	}
	return submit(ctx, auth, f.Payload, editingID, w.CreateTransaction, w.UpdateTransaction)
}
