package models

import "time"

// AssetCondition describes the physical state of an asset.
type AssetCondition string

const (
	ConditionExcellent AssetCondition = "excellent"
	ConditionGood      AssetCondition = "good"
	ConditionFair      AssetCondition = "fair"
	ConditionPoor      AssetCondition = "poor"
	ConditionDamaged   AssetCondition = "damaged"
)

// Asset is a durable good owned by the user.
type Asset struct {
	Base
	UserID             string          `gorm:"type:uuid;not null;index" json:"user_id"`
	Name               string          `gorm:"not null" json:"name"`
	Category           string          `gorm:"not null;index" json:"category"`
	AcquisitionValue   float64         `gorm:"not null" json:"acquisition_value"`
	CurrentValue       *float64        `json:"current_value"`
	AcquisitionDate    time.Time       `gorm:"not null" json:"acquisition_date"`
	Location           *string         `json:"location"`
	Brand              *string         `json:"brand"`
	Model              *string         `json:"model"`
	SerialNumber       *string         `json:"serial_number"`
	WarrantyExpiration *time.Time      `json:"warranty_expiration"`
	Condition          *AssetCondition `gorm:"default:'good'" json:"condition"`
	Notes              *string         `json:"notes"`
}

// Value is the current value when known, else the acquisition value.
func (a Asset) Value() float64 {
	if a.CurrentValue != nil {
		return *a.CurrentValue
	}
	return a.AcquisitionValue
}
