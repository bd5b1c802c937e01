package forms

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"patrimonio/internal/client"
	"patrimonio/internal/models"
)

// VehicleForm holds the vehicle fields as typed by the user.
type VehicleForm struct {
	Name                 string
	Brand                string
	Model                string
	Year                 string
	LicensePlate         string
	Odometer             string
	Type                 string
	FuelType             string
	LicensingDate        string
	InsuranceRenewalDate string
}

var vehicleFields = []field[VehicleForm]{
	{"name", func(f *VehicleForm) *string { return &f.Name }},
	{"brand", func(f *VehicleForm) *string { return &f.Brand }},
	{"model", func(f *VehicleForm) *string { return &f.Model }},
	{"year", func(f *VehicleForm) *string { return &f.Year }},
	{"license_plate", func(f *VehicleForm) *string { return &f.LicensePlate }},
	{"odometer", func(f *VehicleForm) *string { return &f.Odometer }},
	{"type", func(f *VehicleForm) *string { return &f.Type }},
	{"fuel_type", func(f *VehicleForm) *string { return &f.FuelType }},
	{"licensing_date", func(f *VehicleForm) *string { return &f.LicensingDate }},
	{"insurance_renewal_date", func(f *VehicleForm) *string { return &f.InsuranceRenewalDate }},
}

// NewVehicleForm returns an empty flex-fuel car of the current year.
func NewVehicleForm(today time.Time) VehicleForm {
	return VehicleForm{
		Year:     strconv.Itoa(today.Year()),
		Odometer: "0",
		Type:     string(models.VehicleTypeCar),
		FuelType: string(models.FuelFlex),
	}
}

// FromVehicle pre-fills a form with v for editing.
func FromVehicle(v models.Vehicle) VehicleForm {
	return VehicleForm{
		Name:                 v.Name,
		Brand:                v.Brand,
		Model:                v.Model,
		Year:                 strconv.Itoa(v.Year),
		LicensePlate:         v.LicensePlate,
		Odometer:             formatAmount(v.Odometer),
		Type:                 string(v.Type),
		FuelType:             string(v.FuelType),
		LicensingDate:        formatNullableDate(v.LicensingDate),
		InsuranceRenewalDate: formatNullableDate(v.InsuranceRenewalDate),
	}
}

func (f VehicleForm) Set(name, value string) (VehicleForm, error) {
	return set(f, vehicleFields, name, value)
}

func (f VehicleForm) Get(name string) string { return get(f, vehicleFields, name) }

func (f VehicleForm) Fields() []string { return names(vehicleFields) }

// Payload converts the form into the request body.
func (f VehicleForm) Payload() (client.VehiclePayload, error) {
	var p client.VehiclePayload
	var err error
	if p.Name, err = required("name", f.Name); err != nil {
		return p, err
	}
	if p.Brand, err = required("brand", f.Brand); err != nil {
		return p, err
	}
	if p.Model, err = required("model", f.Model); err != nil {
		return p, err
	}
	year, err := required("year", f.Year)
	if err != nil {
		return p, err
	}
	if p.Year, err = strconv.Atoi(year); err != nil {
		return p, fmt.Errorf("year: expected a whole number")
	}
	if p.LicensePlate, err = required("license_plate", f.LicensePlate); err != nil {
		return p, err
	}
	p.LicensePlate = strings.ToUpper(p.LicensePlate)
	if p.Odometer, err = parseOptionalAmount("odometer", f.Odometer); err != nil {
		return p, err
	}
	if p.Odometer < 0 {
		return p, fmt.Errorf("odometer cannot be negative")
	}
	vehicleType, err := required("type", f.Type)
	if err != nil {
		return p, err
	}
	p.Type = models.VehicleType(vehicleType)
	fuel, err := required("fuel_type", f.FuelType)
	if err != nil {
		return p, err
	}
	p.FuelType = models.FuelType(fuel)
	if p.LicensingDate, err = parseOptionalDate("licensing_date", f.LicensingDate); err != nil {
		return p, err
	}
	if p.InsuranceRenewalDate, err = parseOptionalDate("insurance_renewal_date", f.InsuranceRenewalDate); err != nil {
		return p, err
	}
	return p, nil
}

// VehicleWriter persists vehicles.
type VehicleWriter interface {
	CreateVehicle(ctx context.Context, payload client.VehiclePayload) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id string, payload client.VehiclePayload) (*models.Vehicle, error)
}

// SubmitVehicle updates editing when it is not nil and creates a new vehicle otherwise.
func SubmitVehicle(ctx context.Context, auth Authenticated, w VehicleWriter, f VehicleForm, editing *models.Vehicle) (*models.Vehicle, error) {
	editingID := ""
	if editing != nil {
		editingID = editing.ID
	}
	return submit(ctx, auth, f.Payload, editingID, w.CreateVehicle, w.UpdateVehicle)
}

// RefuelingForm holds a fill-up as typed by the user.
type RefuelingForm struct {
	Date          string
	Odometer      string
	Liters        string
	PricePerLiter string
	FuelType      string
}

var refuelingFields = []field[RefuelingForm]{
	{"date", func(f *RefuelingForm) *string { return &f.Date }},
	{"odometer", func(f *RefuelingForm) *string { return &f.Odometer }},
	{"liters", func(f *RefuelingForm) *string { return &f.Liters }},
	{"price_per_liter", func(f *RefuelingForm) *string { return &f.PricePerLiter }},
	{"fuel_type", func(f *RefuelingForm) *string { return &f.FuelType }},
}

// NewRefuelingForm returns an empty refueling dated today.
func NewRefuelingForm(today time.Time) RefuelingForm {
	return RefuelingForm{Date: today.Format(DateLayout)}
}

func (f RefuelingForm) Set(name, value string) (RefuelingForm, error) {
	return set(f, refuelingFields, name, value)
}

func (f RefuelingForm) Get(name string) string { return get(f, refuelingFields, name) }

func (f RefuelingForm) Fields() []string { return names(refuelingFields) }

// Payload converts the form into the request body.
func (f RefuelingForm) Payload() (client.RefuelingPayload, error) {
	var p client.RefuelingPayload
	var err error
	if p.Date, err = parseDate("date", f.Date); err != nil {
		return p, err
	}
	if p.Odometer, err = parseAmount("odometer", f.Odometer); err != nil {
		return p, err
	}
	if p.Liters, err = parseAmount("liters", f.Liters); err != nil {
		return p, err
	}
	if p.PricePerLiter, err = parseAmount("price_per_liter", f.PricePerLiter); err != nil {
		return p, err
	}
	if p.Odometer < 0 || p.Liters <= 0 || p.PricePerLiter <= 0 {
		return p, fmt.Errorf("liters and price per liter must be positive")
	}
	p.FuelType = models.FuelType(strings.TrimSpace(f.FuelType))
	return p, nil
}

// RefuelingWriter records refuelings.
type RefuelingWriter interface {
	AddRefueling(ctx context.Context, vehicleID string, payload client.RefuelingPayload) (*models.Refueling, error)
}

// SubmitRefueling records a refueling of vehicleID. Refuelings are never edited.
func SubmitRefueling(ctx context.Context, auth Authenticated, w RefuelingWriter, vehicleID string, f RefuelingForm) (*models.Refueling, error) {
	create := func(ctx context.Context, p client.RefuelingPayload) (*models.Refueling, error) {
		return w.AddRefueling(ctx, vehicleID, p)
	}
	return submit[client.RefuelingPayload, *models.Refueling](ctx, auth, f.Payload, "", create, nil)
}

// MaintenanceForm holds a vehicle service as typed by the user.
type MaintenanceForm struct {
	Date     string
	Odometer string
	Type     string
	Cost     string
	Provider string
	Notes    string
}

var maintenanceFields = []field[MaintenanceForm]{
	{"date", func(f *MaintenanceForm) *string { return &f.Date }},
	{"odometer", func(f *MaintenanceForm) *string { return &f.Odometer }},
	{"type", func(f *MaintenanceForm) *string { return &f.Type }},
	{"cost", func(f *MaintenanceForm) *string { return &f.Cost }},
	{"provider", func(f *MaintenanceForm) *string { return &f.Provider }},
	{"notes", func(f *MaintenanceForm) *string { return &f.Notes }},
}

// NewMaintenanceForm returns an empty maintenance dated today.
func NewMaintenanceForm(today time.Time) MaintenanceForm {
	return MaintenanceForm{Date: today.Format(DateLayout)}
}

func (f MaintenanceForm) Set(name, value string) (MaintenanceForm, error) {
	return set(f, maintenanceFields, name, value)
}

func (f MaintenanceForm) Get(name string) string { return get(f, maintenanceFields, name) }

func (f MaintenanceForm) Fields() []string { return names(maintenanceFields) }

// Payload converts the form into the request body.
func (f MaintenanceForm) Payload() (client.MaintenancePayload, error) {
	var p client.MaintenancePayload
	var err error
	if p.Date, err = parseDate("date", f.Date); err != nil {
		return p, err
	}
	if p.Odometer, err = parseOptionalAmount("odometer", f.Odometer); err != nil {
		return p, err
	}
	if p.Type, err = required("type", f.Type); err != nil {
		return p, err
	}
	if p.Cost, err = parseOptionalAmount("cost", f.Cost); err != nil {
		return p, err
	}
	if p.Odometer < 0 || p.Cost < 0 {
		return p, fmt.Errorf("cost and odometer cannot be negative")
	}
	p.Provider = optionalString(f.Provider)
	p.Notes = optionalString(f.Notes)
	return p, nil
}

// MaintenanceWriter records maintenances.
type MaintenanceWriter interface {
	AddMaintenance(ctx context.Context, vehicleID string, payload client.MaintenancePayload) (*models.Maintenance, error)
}

// SubmitMaintenance records a maintenance of vehicleID.
func SubmitMaintenance(ctx context.Context, auth Authenticated, w MaintenanceWriter, vehicleID string, f MaintenanceForm) (*models.Maintenance, error) {
	create := func(ctx context.Context, p client.MaintenancePayload) (*models.Maintenance, error) {
		return w.AddMaintenance(ctx, vehicleID, p)
	}
	return submit[client.MaintenancePayload, *models.Maintenance](ctx, auth, f.Payload, "", create, nil)
}
