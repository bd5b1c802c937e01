package handlers

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"patrimonio/internal/report"
)

func TestDashboardHandler_GetDashboard(t *testing.T) {
	fixed := time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC)
	svc := &mockDashboardService{
		getDashboardFn: func(userID string, now time.Time) (*report.Dashboard, error) {
			if userID != testUserID || !now.Equal(fixed) {
				t.Errorf("unexpected call %s %v", userID, now)
			}
			return &report.Dashboard{Month: "2025-03", MonthIncome: 100, MonthExpenses: 40, MonthBalance: 60}, nil
		},
	}
	handler := NewDashboardHandler(svc)
	handler.now = func() time.Time { return fixed }

	r := gin.New()
	r.GET("/dashboard", injectUserID(testUserID), handler.GetDashboard)
	rec := doRequest(r, "GET", "/dashboard", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	dashboard := parseJSON(t, rec)["dashboard"].(map[string]interface{})
	if dashboard["month_balance"] != float64(60) {
		t.Errorf("expected balance 60, got %v", dashboard["month_balance"])
	}
}

func TestDashboardHandler_GetCatalog(t *testing.T) {
	r := gin.New()
	r.GET("/catalog", NewDashboardHandler(&mockDashboardService{}).GetCatalog)
	rec := doRequest(r, "GET", "/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	catalog := parseJSON(t, rec)["catalog"].(map[string]interface{})
	if len(catalog["fuel_types"].([]interface{})) != 5 {
		t.Errorf("expected 5 fuel types, got %v", catalog["fuel_types"])
	}
}
