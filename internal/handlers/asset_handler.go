package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// AssetHandler handles asset-related requests.
type AssetHandler struct {
	assetService services.AssetServicer
	auditService services.AuditServicer
	now          func() time.Time
}

// NewAssetHandler creates a new AssetHandler.
func NewAssetHandler(assetService services.AssetServicer, auditService services.AuditServicer) *AssetHandler {
	return &AssetHandler{assetService: assetService, auditService: auditService, now: time.Now}
}

// AssetRequest is the payload of both create and update. Null optional
// fields are stored as null.
type AssetRequest struct {
	Name               string                 `json:"name" binding:"required,max=200"`
	Category           string                 `json:"category" binding:"required,max=100"`
	AcquisitionValue   float64                `json:"acquisition_value" binding:"gte=0"`
	CurrentValue       *float64               `json:"current_value" binding:"omitempty,gte=0"`
	AcquisitionDate    string                 `json:"acquisition_date" binding:"required"`
	Location           *string                `json:"location" binding:"omitempty,max=200"`
	Brand              *string                `json:"brand" binding:"omitempty,max=100"`
	Model              *string                `json:"model" binding:"omitempty,max=100"`
	SerialNumber       *string                `json:"serial_number" binding:"omitempty,max=100"`
	WarrantyExpiration *string                `json:"warranty_expiration"`
	Condition          *models.AssetCondition `json:"condition" binding:"omitempty,asset_condition"`
	Notes              *string                `json:"notes" binding:"omitempty,max=1000"`
}

func (r AssetRequest) toInput() (services.AssetInput, error) {
	acquired, err := parseDateField("acquisition_date", r.AcquisitionDate)
	if err != nil {
		return services.AssetInput{}, err
	}
	warranty, err := parseOptionalDate("warranty_expiration", r.WarrantyExpiration)
	if err != nil {
		return services.AssetInput{}, err
	}
	return services.AssetInput{
		Name:               r.Name,
		Category:           r.Category,
		AcquisitionValue:   r.AcquisitionValue,
		CurrentValue:       r.CurrentValue,
		AcquisitionDate:    acquired,
		Location:           r.Location,
		Brand:              r.Brand,
		Model:              r.Model,
		SerialNumber:       r.SerialNumber,
		WarrantyExpiration: warranty,
		Condition:          r.Condition,
		Notes:              r.Notes,
	}, nil
}

// CreateAsset records a new asset
// @Summary     Create an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body AssetRequest true "Asset details"
// @Success     201 {object} models.Asset "Asset created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets [post]
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.CreateAsset(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_ASSET", "asset", asset.ID, c.ClientIP(),
		map[string]interface{}{"name": asset.Name, "category": asset.Category})

	c.JSON(http.StatusCreated, gin.H{"asset": asset})
}

// UpdateAsset replaces an asset
// @Summary     Update an asset
// @Tags        assets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string       true "Asset ID"
// @Param       request body AssetRequest true "Asset details"
// @Success     200 {object} models.Asset "Updated asset"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [put]
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req AssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.UpdateAsset(userID, assetID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_ASSET", "asset", assetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// GetUserAssets lists assets
// @Summary     List assets
// @Description Paginated assets, most recently added first
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       search    query string false "Case-insensitive match on name or category"
// @Param       category  query string false "Exact category, or all"
// @Success     200 {object} pagination.PageResponse[models.Asset] "Paginated assets"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /assets [get]
func (h *AssetHandler) GetUserAssets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}

	filter := services.AssetFilter{Search: c.Query("search"), Category: c.Query("category")}
	result, err := h.assetService.GetUserAssets(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetSummary returns asset totals
// @Summary     Asset summary
// @Description Totals, per-category breakdown and warranties expiring in the next 30 days
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.AssetOverview "Summary"
// @Router      /assets/summary [get]
func (h *AssetHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.assetService.GetOverview(userID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": overview})
}

// GetAssetByID returns one asset
// @Summary     Get an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} models.Asset "Asset"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [get]
func (h *AssetHandler) GetAssetByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	asset, err := h.assetService.GetAssetByID(userID, assetID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"asset": asset})
}

// DeleteAsset removes an asset
// @Summary     Delete an asset
// @Tags        assets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Asset ID"
// @Success     200 {object} MessageResponse "Asset deleted"
// @Failure     404 {object} ErrorResponse "Asset not found"
// @Router      /assets/{id} [delete]
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	assetID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.assetService.DeleteAsset(userID, assetID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_ASSET", "asset", assetID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Asset deleted successfully"})
}
