package forms

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"patrimonio/internal/client"
	"patrimonio/internal/models"
	"patrimonio/internal/session"
)

type fakeAuth struct {
	session *session.Session
}

func (f fakeAuth) Current() *session.Session { return f.session }

var signedIn = fakeAuth{session: &session.Session{AccessToken: "t", Profile: models.Profile{Base: models.Base{ID: "p-1"}}}}

// mockWriter records calls and implements every writer interface.
type mockWriter struct {
	calls []string
	err   error
	last  interface{}
}

var (
	_ TransactionWriter = (*mockWriter)(nil)
	_ AssetWriter       = (*mockWriter)(nil)
	_ VehicleWriter     = (*mockWriter)(nil)
	_ RefuelingWriter   = (*mockWriter)(nil)
	_ MaintenanceWriter = (*mockWriter)(nil)
)

func (m *mockWriter) record(call string, payload interface{}) error {
	m.calls = append(m.calls, call)
	m.last = payload
	return m.err
}

func (m *mockWriter) CreateTransaction(_ context.Context, p client.TransactionPayload) (*models.Transaction, error) {
	if err := m.record("create", p); err != nil {
		return nil, err
	}
	return &models.Transaction{Base: models.Base{ID: "new"}, Amount: p.Amount}, nil
}

func (m *mockWriter) UpdateTransaction(_ context.Context, id string, p client.TransactionPayload) (*models.Transaction, error) {
	if err := m.record("update:"+id, p); err != nil {
		return nil, err
	}
	return &models.Transaction{Base: models.Base{ID: id}, Amount: p.Amount}, nil
}

func (m *mockWriter) CreateAsset(_ context.Context, p client.AssetPayload) (*models.Asset, error) {
	return &models.Asset{Base: models.Base{ID: "new"}}, m.record("create", p)
}

func (m *mockWriter) UpdateAsset(_ context.Context, id string, p client.AssetPayload) (*models.Asset, error) {
	return &models.Asset{Base: models.Base{ID: id}}, m.record("update:"+id, p)
}

func (m *mockWriter) CreateVehicle(_ context.Context, p client.VehiclePayload) (*models.Vehicle, error) {
	return &models.Vehicle{Base: models.Base{ID: "new"}}, m.record("create", p)
}

func (m *mockWriter) UpdateVehicle(_ context.Context, id string, p client.VehiclePayload) (*models.Vehicle, error) {
	return &models.Vehicle{Base: models.Base{ID: id}}, m.record("update:"+id, p)
}

func (m *mockWriter) AddRefueling(_ context.Context, vehicleID string, p client.RefuelingPayload) (*models.Refueling, error) {
	return &models.Refueling{VehicleID: vehicleID}, m.record("refuel:"+vehicleID, p)
}

func (m *mockWriter) AddMaintenance(_ context.Context, vehicleID string, p client.MaintenancePayload) (*models.Maintenance, error) {
	return &models.Maintenance{VehicleID: vehicleID}, m.record("maintain:"+vehicleID, p)
}

var today = time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

func mustSet[F Form[F]](t *testing.T, form F, pairs ...string) F {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		var err error
		if form, err = form.Set(pairs[i], pairs[i+1]); err != nil {
			t.Fatalf("Set(%q): %v", pairs[i], err)
		}
	}
	return form
}

func TestAssetPayload_CoercesNumbers(t *testing.T) {
	form := mustSet(t, NewAssetForm(today),
		"name", "Notebook",
		"category", "Eletrônicos",
		"acquisition_value", "1500.50",
		"current_value", "",
	)

	p, err := form.Payload()
	if err != nil {
		t.Fatalf("Payload: %v", err)
	}
	if p.AcquisitionValue != 1500.5 {
		t.Errorf("expected 1500.5, got %v", p.AcquisitionValue)
	}
	if p.CurrentValue != nil {
		t.Errorf("expected nil current value, got %v", *p.CurrentValue)
	}
	if p.Condition == nil || *p.Condition != models.ConditionGood {
		t.Errorf("expected default condition good, got %v", p.Condition)
	}

	raw, _ := json.Marshal(p)
	var body map[string]interface{}
	_ = json.Unmarshal(raw, &body)
	if v, ok := body["current_value"]; !ok || v != nil {
		t.Errorf("expected current_value null in JSON, got %v", v)
	}
	if v, ok := body["brand"]; !ok || v != nil {
		t.Errorf("expected blank brand sent as null, got %v", v)
	}
}

func TestAssetPayload_Errors(t *testing.T) {
	base := mustSet(t, NewAssetForm(today), "name", "TV", "category", "Eletrônicos", "acquisition_value", "100")
	tests := []struct {
		name  string
		field string
		value string
	}{
		{"missing name", "name", "  "},
		{"bad amount", "acquisition_value", "abc"},
		{"negative current value", "current_value", "-1"},
		{"bad warranty date", "warranty_expiration", "31/12/2025"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := mustSet(t, base, tt.field, tt.value)
			if _, err := form.Payload(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSet_ReturnsCopy(t *testing.T) {
	original := NewTransactionForm(today)
	changed, err := original.Set("amount", "42")
	if err != nil {
		t.Fatalf("Set: %v", err)
	}
	if original.Amount != "" {
		t.Errorf("receiver was modified: %q", original.Amount)
	}
	if changed.Get("amount") != "42" {
		t.Errorf("expected 42, got %q", changed.Amount)
	}
	if _, err := original.Set("colour", "red"); err == nil {
		t.Error("expected unknown field error")
	}
}

func TestFromTransaction_PrefillsExactly(t *testing.T) {
	notes := "dividido"
	tx := models.Transaction{
		Base:        models.Base{ID: "tx-1"},
		AccountID:   "acc-1",
		Type:        models.TransactionTypeExpense,
		Category:    "Alimentação",
		Amount:      40.25,
		Date:        time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		Description: "Mercado",
		Notes:       &notes,
		IsRecurring: true,
	}
	want := TransactionForm{
		AccountID:   "acc-1",
		Type:        "expense",
		Category:    "Alimentação",
		Amount:      "40.25",
		Date:        "2025-03-06",
		Description: "Mercado",
		Notes:       "dividido",
		IsRecurring: "true",
	}
	if got := FromTransaction(tx); got != want {
		t.Errorf("FromTransaction() = %+v, want %+v", got, want)
	}
}

func TestFromAsset_NullsBecomeEmpty(t *testing.T) {
	a := models.Asset{
		Name:             "Notebook",
		Category:         "Eletrônicos",
		AcquisitionValue: 1500.5,
		AcquisitionDate:  time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
	}
	form := FromAsset(a)
	if form.CurrentValue != "" || form.WarrantyExpiration != "" || form.Condition != "" {
		t.Errorf("expected empty nullable fields, got %+v", form)
	}
	if form.AcquisitionValue != "1500.5" || form.AcquisitionDate != "2024-06-01" {
		t.Errorf("unexpected prefill %+v", form)
	}
}

func TestSubmitTransaction(t *testing.T) {
	valid := mustSet(t, NewTransactionForm(today),
		"account_id", "acc-1", "category", "Alimentação", "amount", "40,50", "description", "Mercado")

	t.Run("no session", func(t *testing.T) {
		w := &mockWriter{}
		_, err := SubmitTransaction(context.Background(), fakeAuth{}, w, valid, nil)
		if !errors.Is(err, ErrNotAuthenticated) || err.Error() != "user not authenticated" {
			t.Fatalf("expected user not authenticated, got %v", err)
		}
		if len(w.calls) != 0 {
			t.Errorf("expected no writes, got %v", w.calls)
		}
	})

	t.Run("creates when not editing", func(t *testing.T) {
		w := &mockWriter{}
		tx, err := SubmitTransaction(context.Background(), signedIn, w, valid, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(w.calls) != 1 || w.calls[0] != "create" || tx.Amount != 40.5 {
			t.Errorf("unexpected calls %v, tx %+v", w.calls, tx)
		}
	})

	t.Run("updates when editing", func(t *testing.T) {
		w := &mockWriter{}
		editing := &models.Transaction{Base: models.Base{ID: "tx-9"}}
		if _, err := SubmitTransaction(context.Background(), signedIn, w, valid, editing); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(w.calls) != 1 || w.calls[0] != "update:tx-9" {
			t.Errorf("unexpected calls %v", w.calls)
		}
	})

	t.Run("server error is returned verbatim", func(t *testing.T) {
		w := &mockWriter{err: &client.APIError{StatusCode: 404, Message: "Account not found"}}
		_, err := SubmitTransaction(context.Background(), signedIn, w, valid, nil)
		if err == nil || err.Error() != "Account not found" {
			t.Fatalf("expected server message, got %v", err)
		}
	})

	t.Run("invalid form is not sent", func(t *testing.T) {
		w := &mockWriter{}
		bad := mustSet(t, valid, "amount", "0")
		if _, err := SubmitTransaction(context.Background(), signedIn, w, bad, nil); err == nil {
			t.Fatal("expected error")
		}
		if len(w.calls) != 0 {
			t.Errorf("expected no writes, got %v", w.calls)
		}
	})
}

func TestSubmitVehicle(t *testing.T) {
	form := mustSet(t, NewVehicleForm(today),
		"name", "Civic", "brand", "Honda", "model", "EXL", "license_plate", "abc1d23", "licensing_date", "2025-05-01")
	w := &mockWriter{}
	if _, err := SubmitVehicle(context.Background(), signedIn, w, form, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	p := w.last.(client.VehiclePayload)
	if p.Year != 2025 || p.LicensePlate != "ABC1D23" || p.FuelType != models.FuelFlex {
		t.Errorf("unexpected payload %+v", p)
	}
	if p.LicensingDate == nil || *p.LicensingDate != "2025-05-01" || p.InsuranceRenewalDate != nil {
		t.Errorf("unexpected dates %+v", p)
	}

	edited := mustSet(t, FromVehicle(models.Vehicle{Name: "Civic", Brand: "Honda", Model: "EXL", Year: 2020,
		LicensePlate: "ABC1D23", Type: models.VehicleTypeCar, FuelType: models.FuelFlex}), "year", "twenty")
	if _, err := SubmitVehicle(context.Background(), signedIn, w, edited, &models.Vehicle{}); err == nil {
		t.Error("expected year error")
	}
}

func TestSubmitRefuelingAndMaintenance(t *testing.T) {
	w := &mockWriter{}
	refuel := mustSet(t, NewRefuelingForm(today), "odometer", "10500", "liters", "50", "price_per_liter", "5.89")
	if _, err := SubmitRefueling(context.Background(), signedIn, w, "v-1", refuel); err != nil {
		t.Fatalf("SubmitRefueling: %v", err)
	}
	p := w.last.(client.RefuelingPayload)
	if p.PricePerLiter != 5.89 || p.Date != "2025-03-10" || p.FuelType != "" {
		t.Errorf("unexpected refueling payload %+v", p)
	}

	noLiters := mustSet(t, refuel, "liters", "0")
	if _, err := SubmitRefueling(context.Background(), signedIn, w, "v-1", noLiters); err == nil {
		t.Error("expected error for zero liters")
	}

	maint := mustSet(t, NewMaintenanceForm(today), "type", "Troca de Óleo", "cost", "250")
	if _, err := SubmitMaintenance(context.Background(), signedIn, w, "v-1", maint); err != nil {
		t.Fatalf("SubmitMaintenance: %v", err)
	}
	if got := w.calls[len(w.calls)-1]; got != "maintain:v-1" {
		t.Errorf("unexpected call %q", got)
	}

	if _, err := SubmitMaintenance(context.Background(), fakeAuth{}, w, "v-1", maint); !errors.Is(err, ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}
