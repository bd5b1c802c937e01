package services

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	apperrors "patrimonio/internal/errors"
	"patrimonio/internal/listing"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
)

// vehicleService handles vehicles and their refuelings and maintenances.
// Refuelings and maintenances carry no user id; they are scoped through the
// vehicle they belong to.
type vehicleService struct {
	db *gorm.DB
}

// NewVehicleService creates a new VehicleServicer.
func NewVehicleService(db *gorm.DB) VehicleServicer {
	return &vehicleService{db: db}
}

func validateVehicleInput(in VehicleInput) error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Brand) == "" ||
		strings.TrimSpace(in.Model) == "" || strings.TrimSpace(in.LicensePlate) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "name, brand, model and license plate are required")
	}
	if in.Odometer < 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "odometer cannot be negative")
	}
	if in.Type == "" || in.FuelType == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "type and fuel type are required")
	}
	return nil
}

func applyVehicleInput(v *models.Vehicle, in VehicleInput) {
	v.Name = strings.TrimSpace(in.Name)
	v.Brand = strings.TrimSpace(in.Brand)
	v.Model = strings.TrimSpace(in.Model)
	v.Year = in.Year
	v.LicensePlate = strings.ToUpper(strings.TrimSpace(in.LicensePlate))
	v.Odometer = in.Odometer
	v.Type = in.Type
	v.FuelType = in.FuelType
	v.LicensingDate = in.LicensingDate
	v.InsuranceRenewalDate = in.InsuranceRenewalDate
}

// CreateVehicle registers a new vehicle.
func (s *vehicleService) CreateVehicle(userID string, in VehicleInput) (*models.Vehicle, error) {
	if err := validateVehicleInput(in); err != nil {
		return nil, err
	}
	vehicle := &models.Vehicle{UserID: userID}
	applyVehicleInput(vehicle, in)
	if err := s.db.Create(vehicle).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vehicle, nil
}

// UpdateVehicle replaces every editable field of the vehicle.
func (s *vehicleService) UpdateVehicle(userID, vehicleID string, in VehicleInput) (*models.Vehicle, error) {
	vehicle, err := s.GetVehicleByID(userID, vehicleID)
	if err != nil {
		return nil, err
	}
	if err := validateVehicleInput(in); err != nil {
		return nil, err
	}
	applyVehicleInput(vehicle, in)
	if err := s.db.Save(vehicle).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vehicle, nil
}

// GetVehicleByID retrieves one of the user's vehicles.
func (s *vehicleService) GetVehicleByID(userID, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := s.db.Where("id = ? AND user_id = ?", vehicleID, userID).First(&vehicle).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrVehicleNotFound
		}
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &vehicle, nil
}

// GetUserVehicles lists the user's vehicles matching filter, most recently added first.
func (s *vehicleService) GetUserVehicles(userID string, page pagination.PageRequest, filter VehicleFilter) (*pagination.PageResponse[models.Vehicle], error) {
	vehicles, err := s.allVehicles(userID)
	if err != nil {
		return nil, err
	}
	result := pagination.Slice(listing.Vehicles(vehicles, filter.Search, filter.Type), page)
	return &result, nil
}

// DeleteVehicle removes the vehicle together with its refuelings and
// maintenances in one database transaction.
func (s *vehicleService) DeleteVehicle(userID, vehicleID string) error {
	vehicle, err := s.GetVehicleByID(userID, vehicleID)
	if err != nil {
		return err
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Refueling{}).Error; err != nil {
			return err
		}
		if err := tx.Where("vehicle_id = ?", vehicle.ID).Delete(&models.Maintenance{}).Error; err != nil {
			return err
		}
		return tx.Delete(vehicle).Error
	})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// AddRefueling records a fill-up. The total cost is computed from liters and
// price, and the vehicle's odometer moves forward when the reading is higher.
func (s *vehicleService) AddRefueling(userID, vehicleID string, in RefuelingInput) (*models.Refueling, error) {
	vehicle, err := s.GetVehicleByID(userID, vehicleID)
	if err != nil {
		return nil, err
	}
	if in.Liters <= 0 || in.PricePerLiter <= 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "liters and price per liter must be positive")
	}
	if in.Odometer < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "odometer cannot be negative")
	}
	if in.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}
	fuel := in.FuelType
	if fuel == "" {
		fuel = models.DefaultRefuelingFuel(vehicle.FuelType)
	}

	refueling := &models.Refueling{
		VehicleID:     vehicle.ID,
		Date:          in.Date,
		Odometer:      in.Odometer,
		Liters:        in.Liters,
		PricePerLiter: in.PricePerLiter,
		TotalCost:     TotalCost(in.Liters, in.PricePerLiter),
		FuelType:      fuel,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(refueling).Error; err != nil {
			return err
		}
		return advanceOdometer(tx, vehicle, in.Odometer)
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return refueling, nil
}

// TotalCost returns liters × price per liter rounded to cents.
func TotalCost(liters, pricePerLiter float64) float64 {
	return decimal.NewFromFloat(liters).Mul(decimal.NewFromFloat(pricePerLiter)).Round(2).InexactFloat64()
}

func advanceOdometer(tx *gorm.DB, vehicle *models.Vehicle, reading float64) error {
	if reading <= vehicle.Odometer {
		return nil
	}
	vehicle.Odometer = reading
	return tx.Model(&models.Vehicle{}).Where("id = ?", vehicle.ID).Update("odometer", reading).Error
}

// GetRefuelings lists a vehicle's refuelings, newest first.
func (s *vehicleService) GetRefuelings(userID, vehicleID string) ([]models.Refueling, error) {
	if _, err := s.GetVehicleByID(userID, vehicleID); err != nil {
		return nil, err
	}
	refuelings := []models.Refueling{}
	if err := s.db.Where("vehicle_id = ?", vehicleID).Order("date DESC").Order("odometer DESC").Find(&refuelings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return refuelings, nil
}

// DeleteRefueling removes a refueling of one of the user's vehicles.
func (s *vehicleService) DeleteRefueling(userID, refuelingID string) error {
	result := s.db.Where("id = ? AND vehicle_id IN (?)", refuelingID, s.ownedVehicleIDs(userID)).Delete(&models.Refueling{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrRefuelingNotFound
	}
	return nil
}

// AddMaintenance records a service on one of the user's vehicles.
func (s *vehicleService) AddMaintenance(userID, vehicleID string, in MaintenanceInput) (*models.Maintenance, error) {
	vehicle, err := s.GetVehicleByID(userID, vehicleID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Type) == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "maintenance type is required")
	}
	if in.Cost < 0 || in.Odometer < 0 {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "cost and odometer cannot be negative")
	}
	if in.Date.IsZero() {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "date is required")
	}

	maintenance := &models.Maintenance{
		VehicleID: vehicle.ID,
		Date:      in.Date,
		Odometer:  in.Odometer,
		Type:      strings.TrimSpace(in.Type),
		Cost:      in.Cost,
		Provider:  in.Provider,
		Notes:     in.Notes,
	}
	if err := s.db.Create(maintenance).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return maintenance, nil
}

// GetMaintenances lists a vehicle's maintenances, newest first.
func (s *vehicleService) GetMaintenances(userID, vehicleID string) ([]models.Maintenance, error) {
	if _, err := s.GetVehicleByID(userID, vehicleID); err != nil {
		return nil, err
	}
	maintenances := []models.Maintenance{}
	if err := s.db.Where("vehicle_id = ?", vehicleID).Order("date DESC").Find(&maintenances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return maintenances, nil
}

// DeleteMaintenance removes a maintenance of one of the user's vehicles.
func (s *vehicleService) DeleteMaintenance(userID, maintenanceID string) error {
	result := s.db.Where("id = ? AND vehicle_id IN (?)", maintenanceID, s.ownedVehicleIDs(userID)).Delete(&models.Maintenance{})
	if result.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrMaintenanceNotFound
	}
	return nil
}

// GetOverview summarizes the user's fleet.
func (s *vehicleService) GetOverview(userID string, now time.Time) (*VehicleOverview, error) {
	vehicles, err := s.allVehicles(userID)
	if err != nil {
		return nil, err
	}

	var refuelings []models.Refueling
	if err := s.db.Where("vehicle_id IN (?)", s.ownedVehicleIDs(userID)).Find(&refuelings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	var maintenances []models.Maintenance
	if err := s.db.Where("vehicle_id IN (?)", s.ownedVehicleIDs(userID)).Find(&maintenances).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	return &VehicleOverview{
		Totals:     report.VehicleTotals(vehicles, refuelings, maintenances, now),
		Efficiency: report.Efficiency(refuelings),
		Alerts:     report.VehicleAlerts(vehicles, now, report.AlertWindow),
	}, nil
}

func (s *vehicleService) allVehicles(userID string) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	if err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&vehicles).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return vehicles, nil
}

// ownedVehicleIDs is a subquery selecting the ids of the user's vehicles.
func (s *vehicleService) ownedVehicleIDs(userID string) *gorm.DB {
	return s.db.Model(&models.Vehicle{}).Select("id").Where("user_id = ?", userID)
}
