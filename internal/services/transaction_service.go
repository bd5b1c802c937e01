package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/listing"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
)

// transactionService handles transaction-related business logic.
type transactionService struct {
	db             *gorm.DB
	accountService AccountServicer
}

// NewTransactionService creates a new TransactionServicer.
func NewTransactionService(db *gorm.DB, accountService AccountServicer) TransactionServicer {
	return &transactionService{db: db, accountService: accountService}
}

// validate checks the input and that the target account belongs to the user.
func (s *transactionService) validate(userID string, in TransactionInput) error {
	if in.Type != models.TransactionTypeIncome && in.Type != models.TransactionTypeExpense {
		return apperrors.ErrInvalidTransactionType
	}
	if in.Amount <= 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "amount must be positive")
	}
	if strings.TrimSpace(in.Description) == "" || strings.TrimSpace(in.Category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "description and category are required")
	}
	if in.Date.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	_, err := s.accountService.GetAccountByID(userID, in.AccountID)
	return err
}

// CreateTransaction records a new income or expense against one of the user's accounts.
func (s *transactionService) CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error) {
	if err := s.validate(userID, in); err != nil {
		return nil, err
	}

	tx := &models.Transaction{UserID: userID}
	applyTransactionInput(tx, in)
	if err := s.db.Create(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

// UpdateTransaction replaces every editable field of the transaction.
func (s *transactionService) UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error) {
	tx, err := s.GetTransactionByID(userID, transactionID)
	if err != nil {
		return nil, err
	}
	if err := s.validate(userID, in); err != nil {
		return nil, err
	}

	applyTransactionInput(tx, in)
	tx.Account = nil
	if err := s.db.Save(tx).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tx, nil
}

func applyTransactionInput(tx *models.Transaction, in TransactionInput) {
	tx.AccountID = in.AccountID
	tx.Type = in.Type
	tx.Category = strings.TrimSpace(in.Category)
	tx.Amount = in.Amount
	tx.Date = in.Date
	tx.Description = strings.TrimSpace(in.Description)
	tx.Notes = in.Notes
	tx.IsRecurring = in.IsRecurring
}

// GetTransactionByID retrieves one of the user's transactions.
func (s *transactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	var tx models.Transaction
	if err := s.db.Where("id = ? AND user_id = ?", transactionID, userID).First(&tx).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTransactionNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &tx, nil
}

// GetUserTransactions lists the user's transactions matching filter, newest first.
func (s *transactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	txs, err := s.findFiltered(userID, filter)
	if err != nil {
		return nil, err
	}
	result := pagination.Slice(txs, page)
	return &result, nil
}

// GetSummary aggregates every transaction matching filter.
func (s *transactionService) GetSummary(userID string, filter TransactionFilter) (*TransactionSummary, error) {
	txs, err := s.findFiltered(userID, filter)
	if err != nil {
		return nil, err
	}
	return &TransactionSummary{
		Count:              len(txs),
		Totals:             report.Totals(txs),
		ExpensesByCategory: report.ExpensesByCategory(txs),
	}, nil
}

// findFiltered applies the exact filters in SQL and the free-text search in
// memory so that matching ignores case for non-ASCII text on every driver.
func (s *transactionService) findFiltered(userID string, f TransactionFilter) ([]models.Transaction, error) {
	q := s.db.Model(&models.Transaction{}).Where("user_id = ?", userID)
	if f.Type != nil {
		q = q.Where("type = ?", *f.Type)
	}
	if f.Category != "" && f.Category != listing.All {
		q = q.Where("category = ?", f.Category)
	}
	if f.AccountID != "" {
		q = q.Where("account_id = ?", f.AccountID)
	}
	if f.FromDate != nil {
		q = q.Where("date >= ?", *f.FromDate)
	}
	if f.ToDate != nil {
		q = q.Where("date <= ?", *f.ToDate)
	}

	var txs []models.Transaction
	if err := q.Order("date DESC").Order("created_at DESC").Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return listing.Transactions(txs, f.Search), nil
}

// DeleteTransaction permanently removes one of the user's transactions.
func (s *transactionService) DeleteTransaction(userID, transactionID string) error {
	result := s.db.Where("id = ? AND user_id = ?", transactionID, userID).Delete(&models.Transaction{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrTransactionNotFound
	}
	return nil
}
