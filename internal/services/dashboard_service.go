package services

import (
	"time"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/report"
)

// dashboardService assembles the dashboard aggregates.
type dashboardService struct {
	db       *gorm.DB
	currency string
}

// NewDashboardService creates a new DashboardServicer formatting amounts in currency.
func NewDashboardService(db *gorm.DB, currency string) DashboardServicer {
	return &dashboardService{db: db, currency: currency}
}

// GetDashboard loads the transactions of the cash-flow window plus all assets
// and computes the dashboard for the month containing now.
func (s *dashboardService) GetDashboard(userID string, now time.Time) (*report.Dashboard, error) {
	windowStart := report.MonthStart(now).AddDate(0, -5, 0)

	var txs []models.Transaction
	if err := s.db.Where("user_id = ? AND date >= ?", userID, windowStart).Find(&txs).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var recent []models.Transaction
	if err := s.db.Where("user_id = ?", userID).Order("date DESC").Order("created_at DESC").Limit(5).Find(&recent).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	dashboard := report.BuildDashboard(txs, assets, now, s.currency)
	dashboard.RecentTransactions = report.Recent(recent, 5)
	return &dashboard, nil
}
