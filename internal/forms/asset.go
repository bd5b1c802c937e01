package forms

import (
	"context"
	"fmt"
	"time"

	"patrimonio/internal/client"
	"patrimonio/internal/models"
)

// AssetForm holds the asset fields as typed by the user.
type AssetForm struct {
	Name               string
	Category           string
	AcquisitionValue   string
	CurrentValue       string
	AcquisitionDate    string
	Location           string
	Brand              string
	Model              string
	SerialNumber       string
	WarrantyExpiration string
	Condition          string
	Notes              string
}

var assetFields = []field[AssetForm]{
	{"name", func(f *AssetForm) *string { return &f.Name }},
	{"category", func(f *AssetForm) *string { return &f.Category }},
	{"acquisition_value", func(f *AssetForm) *string { return &f.AcquisitionValue }},
	{"current_value", func(f *AssetForm) *string { return &f.CurrentValue }},
	{"acquisition_date", func(f *AssetForm) *string { return &f.AcquisitionDate }},
	{"location", func(f *AssetForm) *string { return &f.Location }},
	{"brand", func(f *AssetForm) *string { return &f.Brand }},
	{"model", func(f *AssetForm) *string { return &f.Model }},
	{"serial_number", func(f *AssetForm) *string { return &f.SerialNumber }},
	{"warranty_expiration", func(f *AssetForm) *string { return &f.WarrantyExpiration }},
	{"condition", func(f *AssetForm) *string { return &f.Condition }},
	{"notes", func(f *AssetForm) *string { return &f.Notes }},
}

// NewAssetForm returns an empty asset acquired today in good condition.
func NewAssetForm(today time.Time) AssetForm {
	return AssetForm{
		AcquisitionDate: today.Format(DateLayout),
		Condition:       string(models.ConditionGood),
	}
}

// FromAsset pre-fills a form with a for editing. Null values become empty fields.
func FromAsset(a models.Asset) AssetForm {
	condition := ""
	if a.Condition != nil {
		condition = string(*a.Condition)
	}
	return AssetForm{
		Name:               a.Name,
		Category:           a.Category,
		AcquisitionValue:   formatAmount(a.AcquisitionValue),
		CurrentValue:       formatNullableAmount(a.CurrentValue),
		AcquisitionDate:    formatDate(a.AcquisitionDate),
		Location:           deref(a.Location),
		Brand:              deref(a.Brand),
		Model:              deref(a.Model),
		SerialNumber:       deref(a.SerialNumber),
		WarrantyExpiration: formatNullableDate(a.WarrantyExpiration),
		Condition:          condition,
		Notes:              deref(a.Notes),
	}
}

func (f AssetForm) Set(name, value string) (AssetForm, error) {
	return set(f, assetFields, name, value)
}

func (f AssetForm) Get(name string) string { return get(f, assetFields, name) }

func (f AssetForm) Fields() []string { return names(assetFields) }

// Payload converts the form into the request body. Blank optional fields are
// sent as null.
func (f AssetForm) Payload() (client.AssetPayload, error) {
	var p client.AssetPayload
	var err error
	if p.Name, err = required("name", f.Name); err != nil {
		return p, err
	}
	if p.Category, err = required("category", f.Category); err != nil {
		return p, err
	}
	if p.AcquisitionValue, err = parseAmount("acquisition_value", f.AcquisitionValue); err != nil {
		return p, err
	}
	if p.CurrentValue, err = parseNullableAmount("current_value", f.CurrentValue); err != nil {
		return p, err
	}
	if p.AcquisitionValue < 0 || (p.CurrentValue != nil && *p.CurrentValue < 0) {
		return p, fmt.Errorf("values cannot be negative")
	}
	if p.AcquisitionDate, err = parseDate("acquisition_date", f.AcquisitionDate); err != nil {
		return p, err
	}
	if p.WarrantyExpiration, err = parseOptionalDate("warranty_expiration", f.WarrantyExpiration); err != nil {
		return p, err
	}
	if c := optionalString(f.Condition); c != nil {
		condition := models.AssetCondition(*c)
		p.Condition = &condition
	}
	p.Location = optionalString(f.Location)
	p.Brand = optionalString(f.Brand)
	p.Model = optionalString(f.Model)
	p.SerialNumber = optionalString(f.SerialNumber)
	p.Notes = optionalString(f.Notes)
	return p, nil
}

// AssetWriter persists assets.
type AssetWriter interface {
	CreateAsset(ctx context.Context, payload client.AssetPayload) (*models.Asset, error)
	UpdateAsset(ctx context.Context, id string, payload client.AssetPayload) (*models.Asset, error)
}

// SubmitAsset updates editing when it is not nil and creates a new asset otherwise.
func SubmitAsset(ctx context.Context, auth Authenticated, w AssetWriter, f AssetForm, editing *models.Asset) (*models.Asset, error) {
	editingID := ""
	if editing != nil {
		editingID = editing.ID
	}
	return submit(ctx, auth, f.Payload, editingID, w.CreateAsset, w.UpdateAsset)
}
