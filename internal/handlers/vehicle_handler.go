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

// VehicleHandler handles vehicles together with their refuelings and maintenances.
type VehicleHandler struct {
	vehicleService services.VehicleServicer
	auditService   services.AuditServicer
	now            func() time.Time
}

// NewVehicleHandler creates a new VehicleHandler.
func NewVehicleHandler(vehicleService services.VehicleServicer, auditService services.AuditServicer) *VehicleHandler {
	return &VehicleHandler{vehicleService: vehicleService, auditService: auditService, now: time.Now}
}

// VehicleRequest is the payload of both create and update.
type VehicleRequest struct {
	Name                 string             `json:"name" binding:"required,max=100"`
	Brand                string             `json:"brand" binding:"required,max=100"`
	Model                string             `json:"model" binding:"required,max=100"`
	Year                 int                `json:"year" binding:"required,vehicle_year"`
	LicensePlate         string             `json:"license_plate" binding:"required,max=20"`
	Odometer             float64            `json:"odometer" binding:"gte=0"`
	Type                 models.VehicleType `json:"type" binding:"required,vehicle_type"`
	FuelType             models.FuelType    `json:"fuel_type" binding:"required,fuel_type"`
	LicensingDate        *string            `json:"licensing_date"`
	InsuranceRenewalDate *string            `json:"insurance_renewal_date"`
}

func (r VehicleRequest) toInput() (services.VehicleInput, error) {
	licensing, err := parseOptionalDate("licensing_date", r.LicensingDate)
	if err != nil {
		return services.VehicleInput{}, err
	}
	insurance, err := parseOptionalDate("insurance_renewal_date", r.InsuranceRenewalDate)
	if err != nil {
		return services.VehicleInput{}, err
	}
	return services.VehicleInput{
		Name:                 r.Name,
		Brand:                r.Brand,
		Model:                r.Model,
		Year:                 r.Year,
		LicensePlate:         r.LicensePlate,
		Odometer:             r.Odometer,
		Type:                 r.Type,
		FuelType:             r.FuelType,
		LicensingDate:        licensing,
		InsuranceRenewalDate: insurance,
	}, nil
}

// RefuelingRequest records a fill-up. total_cost is computed by the server.
type RefuelingRequest struct {
	Date          string          `json:"date" binding:"required"`
	Odometer      float64         `json:"odometer" binding:"gte=0"`
	Liters        float64         `json:"liters" binding:"required,gt=0"`
	PricePerLiter float64         `json:"price_per_liter" binding:"required,gt=0"`
	FuelType      models.FuelType `json:"fuel_type" binding:"omitempty,fuel_type"`
}

// MaintenanceRequest records a service.
type MaintenanceRequest struct {
	Date     string  `json:"date" binding:"required"`
	Odometer float64 `json:"odometer" binding:"gte=0"`
	Type     string  `json:"type" binding:"required,max=100"`
	Cost     float64 `json:"cost" binding:"gte=0"`
	Provider *string `json:"provider" binding:"omitempty,max=200"`
	Notes    *string `json:"notes" binding:"omitempty,max=1000"`
}

// CreateVehicle registers a vehicle
// @Summary     Create a vehicle
// @Tags        vehicles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body VehicleRequest true "Vehicle details"
// @Success     201 {object} models.Vehicle "Vehicle created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /vehicles [post]
func (h *VehicleHandler) CreateVehicle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicle, err := h.vehicleService.CreateVehicle(userID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_VEHICLE", "vehicle", vehicle.ID, c.ClientIP(),
		map[string]interface{}{"name": vehicle.Name, "license_plate": vehicle.LicensePlate})

	c.JSON(http.StatusCreated, gin.H{"vehicle": vehicle})
}

// UpdateVehicle replaces a vehicle
// @Summary     Update a vehicle
// @Tags        vehicles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string         true "Vehicle ID"
// @Param       request body VehicleRequest true "Vehicle details"
// @Success     200 {object} models.Vehicle "Updated vehicle"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id} [put]
func (h *VehicleHandler) UpdateVehicle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req VehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	input, err := req.toInput()
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicle, err := h.vehicleService.UpdateVehicle(userID, vehicleID, input)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "UPDATE_VEHICLE", "vehicle", vehicleID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// GetUserVehicles lists vehicles
// @Summary     List vehicles
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Param       search    query string false "Case-insensitive match on name, model or license plate"
// @Param       type      query string false "car, motorcycle, truck or all"
// @Success     200 {object} pagination.PageResponse[models.Vehicle] "Paginated vehicles"
// @Router      /vehicles [get]
func (h *VehicleHandler) GetUserVehicles(c *gin.Context) {
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

	filter := services.VehicleFilter{Search: c.Query("search"), Type: c.Query("type")}
	result, err := h.vehicleService.GetUserVehicles(userID, page, filter)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetVehicleByID returns one vehicle
// @Summary     Get a vehicle
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vehicle ID"
// @Success     200 {object} models.Vehicle "Vehicle"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id} [get]
func (h *VehicleHandler) GetVehicleByID(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicle, err := h.vehicleService.GetVehicleByID(userID, vehicleID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"vehicle": vehicle})
}

// DeleteVehicle removes a vehicle with its history
// @Summary     Delete a vehicle
// @Description Deletes the vehicle together with its refuelings and maintenances
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vehicle ID"
// @Success     200 {object} MessageResponse "Vehicle deleted"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id} [delete]
func (h *VehicleHandler) DeleteVehicle(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.vehicleService.DeleteVehicle(userID, vehicleID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_VEHICLE", "vehicle", vehicleID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Vehicle deleted successfully"})
}

// GetSummary returns fleet totals
// @Summary     Vehicle summary
// @Description Month cost, upcoming maintenances, fuel efficiency and licensing/insurance alerts
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} services.VehicleOverview "Summary"
// @Router      /vehicles/summary [get]
func (h *VehicleHandler) GetSummary(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	overview, err := h.vehicleService.GetOverview(userID, h.now())
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"summary": overview})
}

// AddRefueling records a fill-up
// @Summary     Add a refueling
// @Tags        vehicles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string           true "Vehicle ID"
// @Param       request body RefuelingRequest true "Refueling details"
// @Success     201 {object} models.Refueling "Refueling created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id}/refuelings [post]
func (h *VehicleHandler) AddRefueling(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req RefuelingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	refueling, err := h.vehicleService.AddRefueling(userID, vehicleID, services.RefuelingInput{
		Date:          date,
		Odometer:      req.Odometer,
		Liters:        req.Liters,
		PricePerLiter: req.PricePerLiter,
		FuelType:      req.FuelType,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_REFUELING", "refueling", refueling.ID, c.ClientIP(),
		map[string]interface{}{"vehicle_id": vehicleID, "total_cost": refueling.TotalCost})

	c.JSON(http.StatusCreated, gin.H{"refueling": refueling})
}

// GetRefuelings lists a vehicle's refuelings
// @Summary     List refuelings
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vehicle ID"
// @Success     200 {array}  models.Refueling "Refuelings, newest first"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id}/refuelings [get]
func (h *VehicleHandler) GetRefuelings(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	refuelings, err := h.vehicleService.GetRefuelings(userID, vehicleID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"refuelings": refuelings})
}

// DeleteRefueling removes a refueling
// @Summary     Delete a refueling
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Refueling ID"
// @Success     200 {object} MessageResponse "Refueling deleted"
// @Failure     404 {object} ErrorResponse "Refueling not found"
// @Router      /refuelings/{id} [delete]
func (h *VehicleHandler) DeleteRefueling(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	refuelingID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.vehicleService.DeleteRefueling(userID, refuelingID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_REFUELING", "refueling", refuelingID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Refueling deleted successfully"})
}

// AddMaintenance records a service
// @Summary     Add a maintenance
// @Tags        vehicles
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id      path string             true "Vehicle ID"
// @Param       request body MaintenanceRequest true "Maintenance details"
// @Success     201 {object} models.Maintenance "Maintenance created"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id}/maintenances [post]
func (h *VehicleHandler) AddMaintenance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req MaintenanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error()))
		return
	}
	date, err := parseDateField("date", req.Date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	maintenance, err := h.vehicleService.AddMaintenance(userID, vehicleID, services.MaintenanceInput{
		Date:     date,
		Odometer: req.Odometer,
		Type:     req.Type,
		Cost:     req.Cost,
		Provider: req.Provider,
		Notes:    req.Notes,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "CREATE_MAINTENANCE", "maintenance", maintenance.ID, c.ClientIP(),
		map[string]interface{}{"vehicle_id": vehicleID, "type": maintenance.Type, "cost": maintenance.Cost})

	c.JSON(http.StatusCreated, gin.H{"maintenance": maintenance})
}

// GetMaintenances lists a vehicle's maintenances
// @Summary     List maintenances
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Vehicle ID"
// @Success     200 {array}  models.Maintenance "Maintenances, newest first"
// @Failure     404 {object} ErrorResponse "Vehicle not found"
// @Router      /vehicles/{id}/maintenances [get]
func (h *VehicleHandler) GetMaintenances(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	vehicleID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	maintenances, err := h.vehicleService.GetMaintenances(userID, vehicleID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"maintenances": maintenances})
}

// DeleteMaintenance removes a maintenance
// @Summary     Delete a maintenance
// @Tags        vehicles
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Maintenance ID"
// @Success     200 {object} MessageResponse "Maintenance deleted"
// @Failure     404 {object} ErrorResponse "Maintenance not found"
// @Router      /maintenances/{id} [delete]
func (h *VehicleHandler) DeleteMaintenance(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	maintenanceID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	if err := h.vehicleService.DeleteMaintenance(userID, maintenanceID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(userID, "DELETE_MAINTENANCE", "maintenance", maintenanceID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, MessageResponse{Message: "Maintenance deleted successfully"})
}
