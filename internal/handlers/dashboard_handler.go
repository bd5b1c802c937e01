package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"patrimonio/internal/models"
	"patrimonio/internal/services"
)

// DashboardHandler serves the dashboard aggregates and the option catalog.
type DashboardHandler struct {
	dashboardService services.DashboardServicer
	now              func() time.Time
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService services.DashboardServicer) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService, now: time.Now}
}

// GetDashboard returns the month overview
// @Summary     Dashboard
// @Description Month income, expenses and balance, assets value, expenses by category, recent transactions and six-month cash flow
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} report.Dashboard "Dashboard"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	dashboard, err := h.dashboardService.GetDashboard(userID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"dashboard": dashboard})
}

// GetCatalog returns the option lists used by the forms
// @Summary     Option catalog
// @Tags        dashboard
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} models.Catalog "Catalog"
// @Router      /catalog [get]
func (h *DashboardHandler) GetCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"catalog": models.DefaultCatalog()})
}
