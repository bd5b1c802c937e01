package services

import (
	"time"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
)

// ProfileServicer defines the contract for identity and profile business logic.
type ProfileServicer interface {
	CreateProfile(email, password, name string) (*models.Profile, error)
	GetProfileByEmail(email string) (*models.Profile, error)
	GetProfileByID(id string) (*models.Profile, error)
	VerifyPassword(profile *models.Profile, password string) bool
	AttemptLogin(email, password string) (*models.Profile, error)
	StoreRefreshTokenHash(profileID, tokenHash string) error
	GetRefreshTokenHash(profileID string) (string, error)
	UpdateProfile(profileID string, fields ProfileUpdateFields) (*models.Profile, error)
	UpdateRole(profileID string, role models.Role) (*models.Profile, error)
	ListProfiles(page pagination.PageRequest) (*pagination.PageResponse[models.Profile], error)
}

// ProfileUpdateFields holds the optional fields a profile may change about itself.
type ProfileUpdateFields struct {
	Name      *string
	AvatarURL *string
}

// AccountServicer defines the contract for account-related business logic.
type AccountServicer interface {
	CreateAccount(userID, name string, accountType models.AccountType, balance float64) (*models.Account, error)
	GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	GetAccountByID(userID, accountID string) (*models.Account, error)
	UpdateAccount(userID, accountID string, fields AccountUpdateFields) (*models.Account, error)
	DeleteAccount(userID, accountID string) error
}

// AccountUpdateFields holds the optional fields of an account update.
type AccountUpdateFields struct {
	Name    *string
	Type    *models.AccountType
	Balance *float64
}

// TransactionInput carries every user-editable transaction field. Updates
// replace all of them.
type TransactionInput struct {
	AccountID   string
	Type        models.TransactionType
	Category    string
	Amount      float64
	Date        time.Time
	Description string
	Notes       *string
	IsRecurring bool
}

// TransactionFilter holds optional filter parameters for listing transactions.
type TransactionFilter struct {
	Search    string
	Type      *models.TransactionType
	Category  string
	AccountID string
	FromDate  *time.Time
	ToDate    *time.Time
}

// TransactionSummary aggregates a filtered set of transactions.
type TransactionSummary struct {
	Count              int                      `json:"count"`
	Totals             report.TransactionTotals `json:"totals"`
	ExpensesByCategory []report.CategorySlice   `json:"expenses_by_category"`
}

// TransactionServicer defines the contract for transaction-related business logic.
type TransactionServicer interface {
	CreateTransaction(userID string, in TransactionInput) (*models.Transaction, error)
	UpdateTransaction(userID, transactionID string, in TransactionInput) (*models.Transaction, error)
	GetTransactionByID(userID, transactionID string) (*models.Transaction, error)
	GetUserTransactions(userID string, page pagination.PageRequest, filter TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	GetSummary(userID string, filter TransactionFilter) (*TransactionSummary, error)
	DeleteTransaction(userID, transactionID string) error
}

// AssetInput carries every user-editable asset field.
type AssetInput struct {
	Name               string
	Category           string
	AcquisitionValue   float64
	CurrentValue       *float64
	AcquisitionDate    time.Time
	Location           *string
	Brand              *string
	Model              *string
	SerialNumber       *string
	WarrantyExpiration *time.Time
	Condition          *models.AssetCondition
	Notes              *string
}

// AssetFilter holds optional filter parameters for listing assets.
type AssetFilter struct {
	Search   string
	Category string
}

// AssetOverview is the asset screen's summary panel.
type AssetOverview struct {
	Totals             report.AssetSummary    `json:"totals"`
	ByCategory         []report.AssetCategory `json:"by_category"`
	ExpiringWarranties []models.Asset         `json:"expiring_warranties"`
}

// AssetServicer defines the contract for asset-related business logic.
type AssetServicer interface {
	CreateAsset(userID string, in AssetInput) (*models.Asset, error)
	UpdateAsset(userID, assetID string, in AssetInput) (*models.Asset, error)
	GetAssetByID(userID, assetID string) (*models.Asset, error)
	GetUserAssets(userID string, page pagination.PageRequest, filter AssetFilter) (*pagination.PageResponse[models.Asset], error)
	GetOverview(userID string, now time.Time) (*AssetOverview, error)
	DeleteAsset(userID, assetID string) error
}

// VehicleInput carries every user-editable vehicle field.
type VehicleInput struct {
	Name                 string
	Brand                string
	Model                string
	Year                 int
	LicensePlate         string
	Odometer             float64
	Type                 models.VehicleType
	FuelType             models.FuelType
	LicensingDate        *time.Time
	InsuranceRenewalDate *time.Time
}

// VehicleFilter holds optional filter parameters for listing vehicles.
type VehicleFilter struct {
	Search string
	Type   string
}

// RefuelingInput carries the fields of a new refueling. An empty FuelType
// takes the vehicle's default.
type RefuelingInput struct {
	Date          time.Time
	Odometer      float64
	Liters        float64
	PricePerLiter float64
	FuelType      models.FuelType
}

// MaintenanceInput carries the fields of a new maintenance record.
type MaintenanceInput struct {
	Date     time.Time
	Odometer float64
	Type     string
	Cost     float64
	Provider *string
	Notes    *string
}

// VehicleOverview is the vehicle screen's summary panel.
type VehicleOverview struct {
	Totals     report.VehicleSummary      `json:"totals"`
	Efficiency []report.VehicleEfficiency `json:"efficiency"`
	Alerts     []report.VehicleAlert      `json:"alerts"`
}

// VehicleServicer defines the contract for vehicle, refueling and maintenance business logic.
type VehicleServicer interface {
	CreateVehicle(userID string, in VehicleInput) (*models.Vehicle, error)
	UpdateVehicle(userID, vehicleID string, in VehicleInput) (*models.Vehicle, error)
	GetVehicleByID(userID, vehicleID string) (*models.Vehicle, error)
	GetUserVehicles(userID string, page pagination.PageRequest, filter VehicleFilter) (*pagination.PageResponse[models.Vehicle], error)
	DeleteVehicle(userID, vehicleID string) error

	AddRefueling(userID, vehicleID string, in RefuelingInput) (*models.Refueling, error)
	GetRefuelings(userID, vehicleID string) ([]models.Refueling, error)
	DeleteRefueling(userID, refuelingID string) error

	AddMaintenance(userID, vehicleID string, in MaintenanceInput) (*models.Maintenance, error)
	GetMaintenances(userID, vehicleID string) ([]models.Maintenance, error)
	DeleteMaintenance(userID, maintenanceID string) error

	GetOverview(userID string, now time.Time) (*VehicleOverview, error)
}

// DashboardServicer defines the contract for the dashboard aggregates.
type DashboardServicer interface {
	GetDashboard(userID string, now time.Time) (*report.Dashboard, error)
}

// AuditServicer defines the contract for audit logging.
type AuditServicer interface {
	Log(userID, action, resourceType, resourceID, ipAddress string, changes map[string]interface{})
}
