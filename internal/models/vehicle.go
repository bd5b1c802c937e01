package models

import "time"

// VehicleType represents the kind of vehicle
type VehicleType string

const (
	VehicleTypeCar        VehicleType = "car"
	VehicleTypeMotorcycle VehicleType = "motorcycle"
	VehicleTypeTruck      VehicleType = "truck"
)

// FuelType represents the fuel a vehicle or refueling uses
type FuelType string

const (
	FuelGasoline FuelType = "gasoline"
	FuelEthanol  FuelType = "ethanol"
	FuelDiesel   FuelType = "diesel"
	FuelFlex     FuelType = "flex"
	FuelElectric FuelType = "electric"
)

// Vehicle is a car, motorcycle or truck owned by the user.
type Vehicle struct {
	Base
	UserID               string      `gorm:"type:uuid;not null;index" json:"user_id"`
	Name                 string      `gorm:"not null" json:"name"`
	Brand                string      `gorm:"not null" json:"brand"`
	Model                string      `gorm:"not null" json:"model"`
	Year                 int         `gorm:"not null" json:"year"`
	LicensePlate         string      `gorm:"not null" json:"license_plate"`
	Odometer             float64     `gorm:"not null;default:0" json:"odometer"`
	Type                 VehicleType `gorm:"not null" json:"type"`
	FuelType             FuelType    `gorm:"not null" json:"fuel_type"`
	LicensingDate        *time.Time  `json:"licensing_date"`
	InsuranceRenewalDate *time.Time  `json:"insurance_renewal_date"`
}

// Refueling records a fill-up. TotalCost is liters times price per liter.
type Refueling struct {
	Base
	VehicleID     string    `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle       *Vehicle  `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
	Date          time.Time `gorm:"not null" json:"date"`
	Odometer      float64   `gorm:"not null" json:"odometer"`
	Liters        float64   `gorm:"not null" json:"liters"`
	PricePerLiter float64   `gorm:"not null" json:"price_per_liter"`
	TotalCost     float64   `gorm:"not null" json:"total_cost"`
	FuelType      FuelType  `gorm:"not null" json:"fuel_type"`
}

// Maintenance records a service performed on a vehicle.
type Maintenance struct {
	Base
	VehicleID string    `gorm:"type:uuid;not null;index" json:"vehicle_id"`
	Vehicle   *Vehicle  `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
	Date      time.Time `gorm:"not null" json:"date"`
	Odometer  float64   `gorm:"not null" json:"odometer"`
	Type      string    `gorm:"not null" json:"type"`
	Cost      float64   `gorm:"not null" json:"cost"`
	Provider  *string   `json:"provider"`
	Notes     *string   `json:"notes"`
}

// TableName keeps the table name used by the hosted schema.
func (Maintenance) TableName() string {
	return "vehicle_maintenances"
}
