package handlers

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"patrimonio/internal/config"
	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/report"
	"patrimonio/internal/services"
	"patrimonio/internal/validator"
)

const (
	testUserID  = "0192f6a4-0000-7000-8000-000000000001"
	testOtherID = "0192f6a4-0000-7000-8000-0000000000ff"
)

// --- mock services ---

type mockProfileService struct {
	createProfileFn         func(email, password, name string) (*models.Profile, error)
	getProfileByIDFn        func(id string) (*models.Profile, error)
	attemptLoginFn          func(email, password string) (*models.Profile, error)
	storeRefreshTokenHashFn func(profileID, tokenHash string) error
	getRefreshTokenHashFn   func(profileID string) (string, error)
	updateProfileFn         func(profileID string, fields services.ProfileUpdateFields) (*models.Profile, error)
	updateRoleFn            func(profileID string, role models.Role) (*models.Profile, error)
	listProfilesFn          func(page pagination.PageRequest) (*pagination.PageResponse[models.Profile], error)
}

var _ services.ProfileServicer = (*mockProfileService)(nil)

func (m *mockProfileService) CreateProfile(email, password, name string) (*models.Profile, error) {
	if m.createProfileFn != nil {
		return m.createProfileFn(email, password, name)
	}
	return &models.Profile{}, nil
}

func (m *mockProfileService) GetProfileByEmail(email string) (*models.Profile, error) {
	return &models.Profile{Email: email}, nil
}

func (m *mockProfileService) GetProfileByID(id string) (*models.Profile, error) {
	if m.getProfileByIDFn != nil {
		return m.getProfileByIDFn(id)
	}
	return &models.Profile{Base: models.Base{ID: id}}, nil
}

func (m *mockProfileService) VerifyPassword(_ *models.Profile, _ string) bool { return true }

func (m *mockProfileService) AttemptLogin(email, password string) (*models.Profile, error) {
	if m.attemptLoginFn != nil {
		return m.attemptLoginFn(email, password)
	}
	return &models.Profile{}, nil
}

func (m *mockProfileService) StoreRefreshTokenHash(profileID, tokenHash string) error {
	if m.storeRefreshTokenHashFn != nil {
		return m.storeRefreshTokenHashFn(profileID, tokenHash)
	}
	return nil
}

func (m *mockProfileService) GetRefreshTokenHash(profileID string) (string, error) {
	if m.getRefreshTokenHashFn != nil {
		return m.getRefreshTokenHashFn(profileID)
	}
	return "", nil
}

func (m *mockProfileService) UpdateProfile(profileID string, fields services.ProfileUpdateFields) (*models.Profile, error) {
	if m.updateProfileFn != nil {
		return m.updateProfileFn(profileID, fields)
	}
	return &models.Profile{Base: models.Base{ID: profileID}}, nil
}

func (m *mockProfileService) UpdateRole(profileID string, role models.Role) (*models.Profile, error) {
	if m.updateRoleFn != nil {
		return m.updateRoleFn(profileID, role)
	}
	return &models.Profile{Base: models.Base{ID: profileID}, Role: role}, nil
}

func (m *mockProfileService) ListProfiles(page pagination.PageRequest) (*pagination.PageResponse[models.Profile], error) {
	if m.listProfilesFn != nil {
		return m.listProfilesFn(page)
	}
	resp := pagination.NewPageResponse([]models.Profile{}, 1, 20, 0)
	return &resp, nil
}

type mockAccountService struct {
	createAccountFn   func(userID, name string, accountType models.AccountType, balance float64) (*models.Account, error)
	getUserAccountsFn func(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error)
	getAccountByIDFn  func(userID, accountID string) (*models.Account, error)
	updateAccountFn   func(userID, accountID string, fields services.AccountUpdateFields) (*models.Account, error)
	deleteAccountFn   func(userID, accountID string) error
}

var _ services.AccountServicer = (*mockAccountService)(nil)

func (m *mockAccountService) CreateAccount(userID, name string, accountType models.AccountType, balance float64) (*models.Account, error) {
	if m.createAccountFn != nil {
		return m.createAccountFn(userID, name, accountType, balance)
	}
	return &models.Account{}, nil
}

func (m *mockAccountService) GetUserAccounts(userID string, page pagination.PageRequest) (*pagination.PageResponse[models.Account], error) {
	if m.getUserAccountsFn != nil {
		return m.getUserAccountsFn(userID, page)
	}
	resp := pagination.NewPageResponse([]models.Account{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockAccountService) GetAccountByID(userID, accountID string) (*models.Account, error) {
	if m.getAccountByIDFn != nil {
		return m.getAccountByIDFn(userID, accountID)
	}
	return &models.Account{Base: models.Base{ID: accountID}, UserID: userID}, nil
}

func (m *mockAccountService) UpdateAccount(userID, accountID string, fields services.AccountUpdateFields) (*models.Account, error) {
	if m.updateAccountFn != nil {
		return m.updateAccountFn(userID, accountID, fields)
	}
	return &models.Account{Base: models.Base{ID: accountID}}, nil
}

func (m *mockAccountService) DeleteAccount(userID, accountID string) error {
	if m.deleteAccountFn != nil {
		return m.deleteAccountFn(userID, accountID)
	}
	return nil
}

type mockTransactionService struct {
	createTransactionFn   func(userID string, in services.TransactionInput) (*models.Transaction, error)
	updateTransactionFn   func(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error)
	getTransactionByIDFn  func(userID, transactionID string) (*models.Transaction, error)
	getUserTransactionsFn func(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error)
	getSummaryFn          func(userID string, filter services.TransactionFilter) (*services.TransactionSummary, error)
	deleteTransactionFn   func(userID, transactionID string) error
}

var _ services.TransactionServicer = (*mockTransactionService)(nil)

func (m *mockTransactionService) CreateTransaction(userID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.createTransactionFn != nil {
		return m.createTransactionFn(userID, in)
	}
	return &models.Transaction{}, nil
}

func (m *mockTransactionService) UpdateTransaction(userID, transactionID string, in services.TransactionInput) (*models.Transaction, error) {
	if m.updateTransactionFn != nil {
		return m.updateTransactionFn(userID, transactionID, in)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}}, nil
}

func (m *mockTransactionService) GetTransactionByID(userID, transactionID string) (*models.Transaction, error) {
	if m.getTransactionByIDFn != nil {
		return m.getTransactionByIDFn(userID, transactionID)
	}
	return &models.Transaction{Base: models.Base{ID: transactionID}, UserID: userID}, nil
}

func (m *mockTransactionService) GetUserTransactions(userID string, page pagination.PageRequest, filter services.TransactionFilter) (*pagination.PageResponse[models.Transaction], error) {
	if m.getUserTransactionsFn != nil {
		return m.getUserTransactionsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Transaction{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockTransactionService) GetSummary(userID string, filter services.TransactionFilter) (*services.TransactionSummary, error) {
	if m.getSummaryFn != nil {
		return m.getSummaryFn(userID, filter)
	}
	return &services.TransactionSummary{}, nil
}

func (m *mockTransactionService) DeleteTransaction(userID, transactionID string) error {
	if m.deleteTransactionFn != nil {
		return m.deleteTransactionFn(userID, transactionID)
	}
	return nil
}

type mockAssetService struct {
	createAssetFn   func(userID string, in services.AssetInput) (*models.Asset, error)
	updateAssetFn   func(userID, assetID string, in services.AssetInput) (*models.Asset, error)
	getAssetByIDFn  func(userID, assetID string) (*models.Asset, error)
	getUserAssetsFn func(userID string, page pagination.PageRequest, filter services.AssetFilter) (*pagination.PageResponse[models.Asset], error)
	getOverviewFn   func(userID string, now time.Time) (*services.AssetOverview, error)
	deleteAssetFn   func(userID, assetID string) error
}

var _ services.AssetServicer = (*mockAssetService)(nil)

func (m *mockAssetService) CreateAsset(userID string, in services.AssetInput) (*models.Asset, error) {
	if m.createAssetFn != nil {
		return m.createAssetFn(userID, in)
	}
	return &models.Asset{}, nil
}

func (m *mockAssetService) UpdateAsset(userID, assetID string, in services.AssetInput) (*models.Asset, error) {
	if m.updateAssetFn != nil {
		return m.updateAssetFn(userID, assetID, in)
	}
	return &models.Asset{Base: models.Base{ID: assetID}}, nil
}

func (m *mockAssetService) GetAssetByID(userID, assetID string) (*models.Asset, error) {
	if m.getAssetByIDFn != nil {
		return m.getAssetByIDFn(userID, assetID)
	}
	return &models.Asset{Base: models.Base{ID: assetID}, UserID: userID}, nil
}

func (m *mockAssetService) GetUserAssets(userID string, page pagination.PageRequest, filter services.AssetFilter) (*pagination.PageResponse[models.Asset], error) {
	if m.getUserAssetsFn != nil {
		return m.getUserAssetsFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Asset{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockAssetService) GetOverview(userID string, now time.Time) (*services.AssetOverview, error) {
	if m.getOverviewFn != nil {
		return m.getOverviewFn(userID, now)
	}
	return &services.AssetOverview{}, nil
}

func (m *mockAssetService) DeleteAsset(userID, assetID string) error {
	if m.deleteAssetFn != nil {
		return m.deleteAssetFn(userID, assetID)
	}
	return nil
}

type mockVehicleService struct {
	createVehicleFn     func(userID string, in services.VehicleInput) (*models.Vehicle, error)
	updateVehicleFn     func(userID, vehicleID string, in services.VehicleInput) (*models.Vehicle, error)
	getVehicleByIDFn    func(userID, vehicleID string) (*models.Vehicle, error)
	getUserVehiclesFn   func(userID string, page pagination.PageRequest, filter services.VehicleFilter) (*pagination.PageResponse[models.Vehicle], error)
	deleteVehicleFn     func(userID, vehicleID string) error
	addRefuelingFn      func(userID, vehicleID string, in services.RefuelingInput) (*models.Refueling, error)
	getRefuelingsFn     func(userID, vehicleID string) ([]models.Refueling, error)
	deleteRefuelingFn   func(userID, refuelingID string) error
	addMaintenanceFn    func(userID, vehicleID string, in services.MaintenanceInput) (*models.Maintenance, error)
	getMaintenancesFn   func(userID, vehicleID string) ([]models.Maintenance, error)
	deleteMaintenanceFn func(userID, maintenanceID string) error
	getOverviewFn       func(userID string, now time.Time) (*services.VehicleOverview, error)
}

var _ services.VehicleServicer = (*mockVehicleService)(nil)

func (m *mockVehicleService) CreateVehicle(userID string, in services.VehicleInput) (*models.Vehicle, error) {
	if m.createVehicleFn != nil {
		return m.createVehicleFn(userID, in)
	}
	return &models.Vehicle{}, nil
}

func (m *mockVehicleService) UpdateVehicle(userID, vehicleID string, in services.VehicleInput) (*models.Vehicle, error) {
	if m.updateVehicleFn != nil {
		return m.updateVehicleFn(userID, vehicleID, in)
	}
	return &models.Vehicle{Base: models.Base{ID: vehicleID}}, nil
}

func (m *mockVehicleService) GetVehicleByID(userID, vehicleID string) (*models.Vehicle, error) {
	if m.getVehicleByIDFn != nil {
		return m.getVehicleByIDFn(userID, vehicleID)
	}
	return &models.Vehicle{Base: models.Base{ID: vehicleID}, UserID: userID}, nil
}

func (m *mockVehicleService) GetUserVehicles(userID string, page pagination.PageRequest, filter services.VehicleFilter) (*pagination.PageResponse[models.Vehicle], error) {
	if m.getUserVehiclesFn != nil {
		return m.getUserVehiclesFn(userID, page, filter)
	}
	resp := pagination.NewPageResponse([]models.Vehicle{}, 1, 20, 0)
	return &resp, nil
}

func (m *mockVehicleService) DeleteVehicle(userID, vehicleID string) error {
	if m.deleteVehicleFn != nil {
		return m.deleteVehicleFn(userID, vehicleID)
	}
	return nil
}

func (m *mockVehicleService) AddRefueling(userID, vehicleID string, in services.RefuelingInput) (*models.Refueling, error) {
	if m.addRefuelingFn != nil {
		return m.addRefuelingFn(userID, vehicleID, in)
	}
	return &models.Refueling{VehicleID: vehicleID}, nil
}

func (m *mockVehicleService) GetRefuelings(userID, vehicleID string) ([]models.Refueling, error) {
	if m.getRefuelingsFn != nil {
		return m.getRefuelingsFn(userID, vehicleID)
	}
	return []models.Refueling{}, nil
}

func (m *mockVehicleService) DeleteRefueling(userID, refuelingID string) error {
	if m.deleteRefuelingFn != nil {
		return m.deleteRefuelingFn(userID, refuelingID)
	}
	return nil
}

func (m *mockVehicleService) AddMaintenance(userID, vehicleID string, in services.MaintenanceInput) (*models.Maintenance, error) {
	if m.addMaintenanceFn != nil {
		return m.addMaintenanceFn(userID, vehicleID, in)
	}
	return &models.Maintenance{VehicleID: vehicleID}, nil
}

func (m *mockVehicleService) GetMaintenances(userID, vehicleID string) ([]models.Maintenance, error) {
	if m.getMaintenancesFn != nil {
		return m.getMaintenancesFn(userID, vehicleID)
	}
	return []models.Maintenance{}, nil
}

func (m *mockVehicleService) DeleteMaintenance(userID, maintenanceID string) error {
	if m.deleteMaintenanceFn != nil {
		return m.deleteMaintenanceFn(userID, maintenanceID)
	}
	return nil
}

func (m *mockVehicleService) GetOverview(userID string, now time.Time) (*services.VehicleOverview, error) {
	if m.getOverviewFn != nil {
		return m.getOverviewFn(userID, now)
	}
	return &services.VehicleOverview{}, nil
}

type mockDashboardService struct {
	getDashboardFn func(userID string, now time.Time) (*report.Dashboard, error)
}

var _ services.DashboardServicer = (*mockDashboardService)(nil)

func (m *mockDashboardService) GetDashboard(userID string, now time.Time) (*report.Dashboard, error) {
	if m.getDashboardFn != nil {
		return m.getDashboardFn(userID, now)
	}
	return &report.Dashboard{}, nil
}

// mockAuditService records the actions it was asked to log.
type mockAuditService struct {
	actions []string
}

var _ services.AuditServicer = (*mockAuditService)(nil)

func (m *mockAuditService) Log(_, action, _, _, _ string, _ map[string]interface{}) {
	m.actions = append(m.actions, action)
}

// --- test helpers ---

func init() {
	gin.SetMode(gin.TestMode)
	validator.Register()
	config.Set(&config.Config{
		JWTSecret:            "handler-test-secret",
		JWTExpirationDur:     15 * time.Minute,
		RefreshExpirationDur: time.Hour,
	})
}

func injectUserID(uid string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userID", uid)
		c.Next()
	}
}

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
