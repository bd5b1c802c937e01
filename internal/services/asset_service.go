package services

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/listing"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
)

// assetService handles asset-related business logic.
type assetService struct {
	db *gorm.DB
}

// NewAssetService creates a new AssetServicer.
func NewAssetService(db *gorm.DB) AssetServicer {
	return &assetService{db: db}
}

func validateAssetInput(in AssetInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Category) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name and category are required")
	}
	if in.AcquisitionValue < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "acquisition value cannot be negative")
	}
	if in.CurrentValue != nil && *in.CurrentValue < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "current value cannot be negative")
	}
	if in.AcquisitionDate.IsZero() {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "acquisition date is required")
	}
	return nil
}

func applyAssetInput(a *models.Asset, in AssetInput) {
	a.Name = strings.TrimSpace(in.Name)
	a.Category = strings.TrimSpace(in.Category)
	a.AcquisitionValue = in.AcquisitionValue
	a.CurrentValue = in.CurrentValue
	a.AcquisitionDate = in.AcquisitionDate
	a.Location = in.Location
	a.Brand = in.Brand
	a.Model = in.Model
	a.SerialNumber = in.SerialNumber
	a.WarrantyExpiration = in.WarrantyExpiration
	a.Condition = in.Condition
	a.Notes = in.Notes
	if a.Condition == nil {
		good := models.ConditionGood
		a.Condition = &good
	}
}

// CreateAsset records a new asset. The condition defaults to good.
func (s *assetService) CreateAsset(userID string, in AssetInput) (*models.Asset, error) {
	if err := validateAssetInput(in); err != nil {
		return nil, err
	}
	asset := &models.Asset{UserID: userID}
	applyAssetInput(asset, in)
	if err := s.db.Create(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// UpdateAsset replaces every editable field of the asset.
func (s *assetService) UpdateAsset(userID, assetID string, in AssetInput) (*models.Asset, error) {
	asset, err := s.GetAssetByID(userID, assetID)
	if err != nil {
		return nil, err
	}
	if err := validateAssetInput(in); err != nil {
		return nil, err
	}
	applyAssetInput(asset, in)
	if err := s.db.Save(asset).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return asset, nil
}

// GetAssetByID retrieves one of the user's assets.
func (s *assetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	var asset models.Asset
	if err := s.db.Where("id = ? AND user_id = ?", assetID, userID).First(&asset).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrAssetNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &asset, nil
}

// GetUserAssets lists the user's assets matching filter, most recently added first.
func (s *assetService) GetUserAssets(userID string, page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error) {
	assets, err := s.all(userID)
	if err != nil {
		return nil, err
	}
	result := pagination.Slice(listing.Assets(assets, filter.Search, filter.Category), page)
	return &result, nil
}

// GetOverview summarizes all of the user's assets.
func (s *assetService) GetOverview(userID string, now time.Time) (*AssetOverview, error) {
	assets, err := s.all(userID)
	if err != nil {
		return nil, err
	}
	return &AssetOverview{
		Totals:             report.AssetTotals(assets),
		ByCategory:         report.AssetsByCategory(assets),
		ExpiringWarranties: report.ExpiringWarranties(assets, now, report.WarrantyWindow),
	}, nil
}

func (s *assetService) all(userID string) ([]models.Asset, error) {
	var assets []models.Asset
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&assets).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return assets, nil
}

// DeleteAsset permanently removes one of the user's assets.
func (s *assetService) DeleteAsset(userID, assetID string) error {
	result := s.db.Where("id = ? AND user_id = ?", assetID, userID).Delete(&models.Asset{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrAssetNotFound
	}
	return nil
}
