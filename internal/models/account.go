package models

// AccountType represents the type of account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
	AccountTypeCash     AccountType = "cash"
	AccountTypeCredit   AccountType = "credit"
	AccountTypeOther    AccountType = "other"
)

// Account represents a bank account, wallet or card. The balance is kept by
// the user and is not derived from transactions.
type Account struct {
	Base
	UserID  string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name    string      `gorm:"not null" json:"name"`
	Type    AccountType `gorm:"not null" json:"type"`
	Balance float64     `gorm:"not null;default:0" json:"balance"`
}
