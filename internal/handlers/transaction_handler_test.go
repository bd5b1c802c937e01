package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
	"patrimonio/internal/services"
)

const testTransactionID = "0192f6a4-0000-7000-8000-00000000b001"

func setupTransactionRouter(handler *TransactionHandler) *gin.Engine {
	r := gin.New()
	auth := r.Group("/", injectUserID(testUserID))
	auth.POST("/transactions", handler.CreateTransaction)
	auth.GET("/transactions", handler.GetUserTransactions)
	auth.GET("/transactions/summary", handler.GetSummary)
	auth.GET("/transactions/:id", handler.GetTransactionByID)
	auth.PUT("/transactions/:id", handler.UpdateTransaction)
	auth.DELETE("/transactions/:id", handler.DeleteTransaction)
	return r
}

const validTransactionBody = `{"account_id":"` + testAccountID + `","type":"expense","category":"Alimentação",` +
	`"amount":42.5,"date":"2025-03-10","description":"Mercado","notes":null}`

func TestTransactionHandler_CreateTransaction(t *testing.T) {
	t.Run("returns 201 and parses the date", func(t *testing.T) {
		var got services.TransactionInput
		txSvc := &mockTransactionService{
			createTransactionFn: func(_ string, in services.TransactionInput) (*models.Transaction, error) {
				got = in
				return &models.Transaction{Base: models.Base{ID: testTransactionID}, Type: in.Type, Amount: in.Amount}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, audit))
		rec := doRequest(r, "POST", "/transactions", validTransactionBody)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !got.Date.Equal(time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)) {
			t.Errorf("unexpected date %v", got.Date)
		}
		if got.Notes != nil {
			t.Error("null notes must stay nil")
		}
		if len(audit.actions) != 1 || audit.actions[0] != "CREATE_TRANSACTION" {
			t.Errorf("expected CREATE_TRANSACTION audit, got %v", audit.actions)
		}
	})

	t.Run("returns 400 on zero amount", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		body := `{"account_id":"` + testAccountID + `","type":"income","category":"Salário","amount":0,"date":"2025-03-10","description":"x"}`
		rec := doRequest(r, "POST", "/transactions", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 400 on bad date", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		body := `{"account_id":"` + testAccountID + `","type":"income","category":"Salário","amount":10,"date":"10/03/2025","description":"x"}`
		rec := doRequest(r, "POST", "/transactions", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 400 on unknown type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		body := `{"account_id":"` + testAccountID + `","type":"transfer","category":"x","amount":10,"date":"2025-03-10","description":"x"}`
		rec := doRequest(r, "POST", "/transactions", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("returns 404 for foreign account", func(t *testing.T) {
		txSvc := &mockTransactionService{
			createTransactionFn: func(_ string, _ services.TransactionInput) (*models.Transaction, error) {
				return nil, apperrors.ErrAccountNotFound
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
		rec := doRequest(r, "POST", "/transactions", validTransactionBody)
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_UpdateTransaction(t *testing.T) {
	var gotID string
	txSvc := &mockTransactionService{
		updateTransactionFn: func(_, id string, in services.TransactionInput) (*models.Transaction, error) {
			gotID = id
			return &models.Transaction{Base: models.Base{ID: id}, Amount: in.Amount}, nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
	rec := doRequest(r, "PUT", "/transactions/"+testTransactionID, validTransactionBody)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if gotID != testTransactionID {
		t.Errorf("expected update of %s, got %s", testTransactionID, gotID)
	}
}

func TestTransactionHandler_GetUserTransactions(t *testing.T) {
	t.Run("forwards filters", func(t *testing.T) {
		var got services.TransactionFilter
		var gotPage pagination.PageRequest
		txSvc := &mockTransactionService{
			getUserTransactionsFn: func(_ string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got, gotPage = filter, page
				resp := pagination.NewPageResponse([]models.Transaction{}, page.Page, page.PageSize, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions?search=merc&type=expense&category=Lazer&account_id="+testAccountID+"&from_date=2025-01-01&page=2&page_size=5", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if got.Search != "merc" || got.Category != "Lazer" || got.AccountID != testAccountID {
			t.Errorf("unexpected filter %+v", got)
		}
		if got.Type == nil || *got.Type != models.TransactionTypeExpense {
			t.Error("expected expense type filter")
		}
		if got.FromDate == nil || got.ToDate != nil {
			t.Error("expected only from_date")
		}
		if gotPage.Page != 2 || gotPage.PageSize != 5 {
			t.Errorf("unexpected page %+v", gotPage)
		}
	})

	t.Run("type all means no type filter", func(t *testing.T) {
		var got services.TransactionFilter
		txSvc := &mockTransactionService{
			getUserTransactionsFn: func(_ string, _ pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
				got = filter
				resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
				return &resp, nil
			},
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
		doRequest(r, "GET", "/transactions?type=all", "")
		if got.Type != nil {
			t.Error("expected nil type filter")
		}
	})

	t.Run("rejects invalid type", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions?type=gift", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects page_size over max", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		rec := doRequest(r, "GET", "/transactions?page_size=500", "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

func TestTransactionHandler_GetSummary(t *testing.T) {
	txSvc := &mockTransactionService{
		getSummaryFn: func(_ string, _ services.TransactionFilter) (*services.TransactionSummary, error) {
			return &services.TransactionSummary{
				Count:  2,
				Totals: report.TransactionTotals{Income: 100, Expenses: 40, Balance: 60},
			}, nil
		},
	}
	r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
	rec := doRequest(r, "GET", "/transactions/summary", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	totals := summary["totals"].(map[string]interface{})
	if totals["balance"] != float64(60) {
		t.Errorf("expected balance 60, got %v", totals["balance"])
	}
}

func TestTransactionHandler_DeleteTransaction(t *testing.T) {
	t.Run("returns 200", func(t *testing.T) {
		r := setupTransactionRouter(NewTransactionHandler(&mockTransactionService{}, &mockAuditService{}))
		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
	})

	t.Run("returns 404 when missing", func(t *testing.T) {
		txSvc := &mockTransactionService{
			deleteTransactionFn: func(_, _ string) error { return apperrors.ErrTransactionNotFound },
		}
		r := setupTransactionRouter(NewTransactionHandler(txSvc, &mockAuditService{}))
		rec := doRequest(r, "DELETE", "/transactions/"+testTransactionID, "")
		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "TRANSACTION_NOT_FOUND")
	})
}
