package client

import (
	"context"
	"net/http"
	"net/url"

	"patrimonio/internal/models"
	"patrimonio/internal/pagination"
	"patrimonio/internal/services"
)

// AssetPayload is the body of asset create and update requests. Nil fields
// are sent as JSON null.
type AssetPayload struct {
	Name               string                 `json:"name"`
	Category           string                 `json:"category"`
	AcquisitionValue   float64                `json:"acquisition_value"`
	CurrentValue       *float64               `json:"current_value"`
	AcquisitionDate    string                 `json:"acquisition_date"`
	Location           *string                `json:"location"`
	Brand              *string                `json:"brand"`
	Model              *string                `json:"model"`
	SerialNumber       *string                `json:"serial_number"`
	WarrantyExpiration *string                `json:"warranty_expiration"`
	Condition          *models.AssetCondition `json:"condition"`
	Notes              *string                `json:"notes"`
}

// AssetQuery filters the asset list.
type AssetQuery struct {
	PageQuery
	Search   string
	Category string
}

func (q AssetQuery) values() url.Values {
	v := q.PageQuery.values()
	setIf(v, "search", q.Search)
	setIf(v, "category", q.Category)
	return v
}

// Assets lists assets matching query, most recently added first.
func (c *Client) Assets(ctx context.Context, query AssetQuery) (*pagination.PageResponse[models.Asset], error) {
	var result pagination.PageResponse[models.Asset]
	if err := c.do(ctx, http.MethodGet, "/assets", query.values(), nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Asset fetches one asset.
func (c *Client) Asset(ctx context.Context, id string) (*models.Asset, error) {
	var result struct {
		Asset models.Asset `json:"asset"`
	}
	if err := c.do(ctx, http.MethodGet, "/assets/"+id, nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Asset, nil
}

// CreateAsset records an asset.
func (c *Client) CreateAsset(ctx context.Context, payload AssetPayload) (*models.Asset, error) {
	return c.writeAsset(ctx, http.MethodPost, "/assets", payload)
}

// UpdateAsset replaces the fields of asset id.
func (c *Client) UpdateAsset(ctx context.Context, id string, payload AssetPayload) (*models.Asset, error) {
	return c.writeAsset(ctx, http.MethodPut, "/assets/"+id, payload)
}

func (c *Client) writeAsset(ctx context.Context, method, path string, payload AssetPayload) (*models.Asset, error) {
	var result struct {
		Asset models.Asset `json:"asset"`
	}
	if err := c.do(ctx, method, path, nil, payload, &result); err != nil {
		return nil, err
	}
	return &result.Asset, nil
}

// DeleteAsset removes an asset.
func (c *Client) DeleteAsset(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/assets/"+id, nil, nil, nil)
}

// AssetSummary returns the asset totals, category breakdown and expiring warranties.
func (c *Client) AssetSummary(ctx context.Context) (*services.AssetOverview, error) {
	var result struct {
		Summary services.AssetOverview `json:"summary"`
	}
	if err := c.do(ctx, http.MethodGet, "/assets/summary", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Summary, nil
}
