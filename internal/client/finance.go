package client

import (
	"context"
	"net/http"
	"net/url"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// AccountPayload is the body of account create requests.
type AccountPayload struct {
	Name    string             `json:"name"`
	Type    models.AccountType `json:"type,omitempty"`
	Balance float64            `json:"balance"`
}

// TransactionPayload is the body of transaction create and update requests.
type TransactionPayload struct {
	AccountID   string                 `json:"account_id"`
	Type        models.TransactionType `json:"type"`
	Category    string                 `json:"category"`
	Amount      float64                `json:"amount"`
	Date        string                 `json:"date"`
	Description string                 `json:"description"`
	Notes       *string                `json:"notes"`
	IsRecurring bool                   `json:"is_recurring"`
}

// TransactionQuery filters the transaction list and summary.
type TransactionQuery struct {
	PageQuery
	Search    string
	Type      string
	Category  string
	AccountID string
	FromDate  string
	ToDate    string
}

func (q TransactionQuery) values() url.Values {
	v := q.PageQuery.values()
	setIf(v, "search", q.Search)
	setIf(v, "type", q.Type)
	setIf(v, "category", q.Category)
	setIf(v, "account_id", q.AccountID)
	setIf(v, "from_date", q.FromDate)
	setIf(v, "to_date", q.ToDate)
	return v
}

// Accounts lists the user's accounts.
func (c *Client) Accounts(ctx context.Context, page PageQuery) (*pagination.PageResponse[models.Account], error) {
	var result pagination.PageResponse[models.Account]
	if err := c.do(ctx, http.MethodGet, "/accounts", page.values(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// CreateAccount opens an account.
func (c *Client) CreateAccount(ctx context.Context, payload AccountPayload) (*models.Account, error) {
	var result struct {
		Account models.Account `json:"account"`
	}
	if err := c.do(ctx, http.MethodPost, "/accounts", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result.Account, nil
}

// DeleteAccount removes an account without transactions.
func (c *Client) DeleteAccount(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/accounts/"+id, nil, nil, nil)
}

// Transactions lists transactions matching query, newest first.
func (c *Client) Transactions(ctx context.Context, query TransactionQuery) (*pagination.PageResponse[models.Transaction], error) {
	var result pagination.PageResponse[models.Transaction]
	if err := c.do(ctx, http.MethodGet, "/transactions", query.values(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Transaction fetches one transaction.
func (c *Client) Transaction(ctx context.Context, id string) (*models.Transaction, error) {
	var result struct {
		Transaction models.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, http.MethodGet, "/transactions/"+id, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Transaction, nil
}

// CreateTransaction records a transaction.
func (c *Client) CreateTransaction(ctx context.Context, payload TransactionPayload) (*models.Transaction, error) {
	return c.writeTransaction(ctx, http.MethodPost, "/transactions", payload)
}

// UpdateTransaction replaces the fields of transaction id.
func (c *Client) UpdateTransaction(ctx context.Context, id string, payload TransactionPayload) (*models.Transaction, error) {
	return c.writeTransaction(ctx, http.MethodPut, "/transactions/"+id, payload)
}

func (c *Client) writeTransaction(ctx context.Context, method, path string, payload TransactionPayload) (*models.Transaction, error) {
	var result struct {
		Transaction models.Transaction `json:"transaction"`
	}
	if err := c.do(ctx, method, path, nil, payload, &result); err != nil {
		return nil, err
	}
	return &result.Transaction, nil
}

// DeleteTransaction removes a transaction.
func (c *Client) DeleteTransaction(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/transactions/"+id, nil, nil, nil)
}

// TransactionSummary aggregates the transactions matching query.
func (c *Client) TransactionSummary(ctx context.Context, query TransactionQuery) (*services.TransactionSummary, error) {
	var result struct {
		Summary services.TransactionSummary `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/transactions/summary", query.values(), nil, &result); err != nil {
		return nil, err
	}
	return &result.Summary, nil
}
