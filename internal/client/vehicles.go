package client

import (
	"context"
	"net/http"
	"net/url"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// VehiclePayload is the body of vehicle create and update requests.
type VehiclePayload struct {
	Name                 string             `json:"name"`
	Brand                string             `json:"brand"`
	Model                string             `json:"model"`
	Year                 int                `json:"year"`
	LicensePlate         string             `json:"license_plate"`
	Odometer             float64            `json:"odometer"`
	Type                 models.VehicleType `json:"type"`
	FuelType             models.FuelType    `json:"fuel_type"`
	LicensingDate        *string            `json:"licensing_date"`
	InsuranceRenewalDate *string            `json:"insurance_renewal_date"`
}

// RefuelingPayload is the body of refueling create requests. An empty fuel
// type lets the server pick one from the vehicle.
type RefuelingPayload struct {
	Date          string          `json:"date"`
	Odometer      float64         `json:"odometer"`
	Liters        float64         `json:"liters"`
	PricePerLiter float64         `json:"price_per_liter"`
	FuelType      models.FuelType `json:"fuel_type,omitempty"`
}

// MaintenancePayload is the body of maintenance create requests.
type MaintenancePayload struct {
	Date     string  `json:"date"`
	Odometer float64 `json:"odometer"`
	Type     string  `json:"type"`
	Cost     float64 `json:"cost"`
	Provider *string `json:"provider"`
	Notes    *string `json:"notes"`
}

// VehicleQuery filters the vehicle list.
type VehicleQuery struct {
	PageQuery
	Search string
	Type   string
}

func (q VehicleQuery) values() url.Values {
	v := q.PageQuery.values()
	setIf(v, "search", q.Search)
	setIf(v, "type", q.Type)
	return v
}

// Vehicles lists vehicles matching query.
func (c *Client) Vehicles(ctx context.Context, query VehicleQuery) (*pagination.PageResponse[models.Vehicle], error) {
	var result pagination.PageResponse[models.Vehicle]
	if err := c.do(ctx, http.MethodGet, "/vehicles", query.values(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Vehicle fetches one vehicle.
func (c *Client) Vehicle(ctx context.Context, id string) (*models.Vehicle, error) {
	var result struct {
		Vehicle models.Vehicle `json:"vehicle"`
	}
	if err := c.do(ctx, http.MethodGet, "/vehicles/"+id, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Vehicle, nil
}

// CreateVehicle registers a vehicle.
func (c *Client) CreateVehicle(ctx context.Context, payload VehiclePayload) (*models.Vehicle, error) {
	return c.writeVehicle(ctx, http.MethodPost, "/vehicles", payload)
}

// UpdateVehicle replaces the fields of vehicle id.
func (c *Client) UpdateVehicle(ctx context.Context, id string, payload VehiclePayload) (*models.Vehicle, error) {
	return c.writeVehicle(ctx, http.MethodPut, "/vehicles/"+id, payload)
}

func (c *Client) writeVehicle(ctx context.Context, method, path string, payload VehiclePayload) (*models.Vehicle, error) {
	var result struct {
		Vehicle models.Vehicle `json:"vehicle"`
	}
	if err := c.do(ctx, method, path, nil, payload, &result); err != nil {
		return nil, err
	}
	return &result.Vehicle, nil
}

// DeleteVehicle removes a vehicle with its refuelings and maintenances.
func (c *Client) DeleteVehicle(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vehicles/"+id, nil, nil, nil)
}

// VehicleSummary returns fleet totals, fuel efficiency and document alerts.
func (c *Client) VehicleSummary(ctx context.Context) (*services.VehicleOverview, error) {
	var result struct {
		Summary services.VehicleOverview `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/vehicles/summary", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Summary, nil
}

// Refuelings lists a vehicle's refuelings, newest first.
func (c *Client) Refuelings(ctx context.Context, vehicleID string) ([]models.Refueling, error) {
	var result struct {
		Refuelings []models.Refueling `json:"refuelings"`
	}
	if err := c.do(ctx, http.MethodGet, "/vehicles/"+vehicleID+"/refuelings", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Refuelings, nil
}

// AddRefueling records a refueling of vehicleID.
func (c *Client) AddRefueling(ctx context.Context, vehicleID string, payload RefuelingPayload) (*models.Refueling, error) {
	var result struct {
		Refueling models.Refueling `json:"refueling"`
	}
	if err := c.do(ctx, http.MethodPost, "/vehicles/"+vehicleID+"/refuelings", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result.Refueling, nil
}

// DeleteRefueling removes a refueling.
func (c *Client) DeleteRefueling(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/refuelings/"+id, nil, nil, nil)
}

// Maintenances lists a vehicle's maintenances, newest first.
func (c *Client) Maintenances(ctx context.Context, vehicleID string) ([]models.Maintenance, error) {
	var result struct {
		Maintenances []models.Maintenance `json:"maintenances"`
	}
	if err := c.do(ctx, http.MethodGet, "/vehicles/"+vehicleID+"/maintenances", nil, nil, &result); err != nil {
		return nil, err
	}
	return result.Maintenances, nil
}

// AddMaintenance records a maintenance of vehicleID.
func (c *Client) AddMaintenance(ctx context.Context, vehicleID string, payload MaintenancePayload) (*models.Maintenance, error) {
	var result struct {
		Maintenance models.Maintenance `json:"maintenance"`
	}
	if err := c.do(ctx, http.MethodPost, "/vehicles/"+vehicleID+"/maintenances", nil, payload, &result); err != nil {
		return nil, err
	}
	return &result.Maintenance, nil
}

// DeleteMaintenance removes a maintenance.
func (c *Client) DeleteMaintenance(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/maintenances/"+id, nil, nil, nil)
}
