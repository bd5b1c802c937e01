package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"patrimonio/internal/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// TestPassword is the password of every fixture profile.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestProfile creates an editor profile with a unique email.
func CreateTestProfile(t *testing.T, db *gorm.DB) *models.Profile {
	t.Helper()
	return CreateTestProfileWithRole(t, db, fmt.Sprintf("user%d@test.com", nextID()), models.RoleEditor)
}

// CreateTestProfileWithRole creates a profile with the given email and role.
func CreateTestProfileWithRole(t *testing.T, db *gorm.DB, email string, role models.Role) *models.Profile {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	profile := &models.Profile{
		Email:    email,
		Password: string(hash),
		Name:     fmt.Sprintf("Test User %d", nextID()),
		Role:     role,
	}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}
	return profile
}

// CreateTestAccount creates a checking account with the given balance.
func CreateTestAccount(t *testing.T, db *gorm.DB, userID string, balance float64) *models.Account {
	t.Helper()

	account := &models.Account{
		UserID:  userID,
		Name:    fmt.Sprintf("Test Account %d", nextID()),
		Type:    models.AccountTypeChecking,
		Balance: balance,
	}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}
	return account
}

// CreateTestTransaction creates a transaction in the given category.
func CreateTestTransaction(t *testing.T, db *gorm.DB, userID, accountID string, txType models.TransactionType, category string, amount float64, date time.Time) *models.Transaction {
	t.Helper()

	tx := &models.Transaction{
		UserID:      userID,
		AccountID:   accountID,
		Type:        txType,
		Category:    category,
		Amount:      amount,
		Date:        date,
		Description: fmt.Sprintf("Test Transaction %d", nextID()),
	}
	if err := db.Create(tx).Error; err != nil {
		t.Fatalf("failed to create test transaction: %v", err)
	}
	return tx
}

// CreateTestAsset creates an asset in the given category. A nil current
// value leaves it unknown.
func CreateTestAsset(t *testing.T, db *gorm.DB, userID, category string, acquisition float64, current *float64) *models.Asset {
	t.Helper()

	good := models.ConditionGood
	asset := &models.Asset{
		UserID:           userID,
		Name:             fmt.Sprintf("Test Asset %d", nextID()),
		Category:         category,
		AcquisitionValue: acquisition,
		CurrentValue:     current,
		AcquisitionDate:  time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Condition:        &good,
	}
	if err := db.Create(asset).Error; err != nil {
		t.Fatalf("failed to create test asset: %v", err)
	}
	return asset
}

// CreateTestVehicle creates a flex-fuel car.
func CreateTestVehicle(t *testing.T, db *gorm.DB, userID string) *models.Vehicle {
	t.Helper()

	n := nextID()
	vehicle := &models.Vehicle{
		UserID:       userID,
		Name:         fmt.Sprintf("Test Vehicle %d", n),
		Brand:        "Honda",
		Model:        "Civic",
		Year:         2020,
		LicensePlate: fmt.Sprintf("TST%04d", n),
		Odometer:     10000,
		Type:         models.VehicleTypeCar,
		FuelType:     models.FuelFlex,
	}
	if err := db.Create(vehicle).Error; err != nil {
		t.Fatalf("failed to create test vehicle: %v", err)
	}
	return vehicle
}

// CreateTestRefueling creates a refueling with total cost liters × price.
func CreateTestRefueling(t *testing.T, db *gorm.DB, vehicleID string, odometer, liters, price float64, date time.Time) *models.Refueling {
	t.Helper()

	refueling := &models.Refueling{
		VehicleID:     vehicleID,
		Date:          date,
		Odometer:      odometer,
		Liters:        liters,
		PricePerLiter: price,
		TotalCost:     liters * price,
		FuelType:      models.FuelGasoline,
	}
	if err := db.Create(refueling).Error; err != nil {
		t.Fatalf("failed to create test refueling: %v", err)
	}
	return refueling
}

// CreateTestMaintenance creates an oil change with the given cost.
func CreateTestMaintenance(t *testing.T, db *gorm.DB, vehicleID string, cost float64, date time.Time) *models.Maintenance {
	t.Helper()

	maintenance := &models.Maintenance{
		VehicleID: vehicleID,
		Date:      date,
		Odometer:  10500,
		Type:      "Troca de Óleo",
		Cost:      cost,
	}
	if err := db.Create(maintenance).Error; err != nil {
		t.Fatalf("failed to create test maintenance: %v", err)
	}
	return maintenance
}

// Float returns a pointer to v.
func Float(v float64) *float64 { return &v }

// String returns a pointer to s.
func String(s string) *string { return &s }

// Date returns a pointer to t.
func Date(t time.Time) *time.Time { return &t }
