package client

import (
	"context"
	"net/http"

	"patrimonio/internal/models"
	"patrimonio/internal/report"
)

// Dashboard fetches the dashboard aggregates for the current month.
func (c *Client) Dashboard(ctx context.Context) (*report.Dashboard, error) {
	var result struct {
		Dashboard report.Dashboard `json:"dashboard"`
	}
	if err := c.do(ctx, http.MethodGet, "/dashboard", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Dashboard, nil
}

// Catalog fetches the option lists used to fill forms.
func (c *Client) Catalog(ctx context.Context) (*models.Catalog, error) {
	var result struct {
		Catalog models.Catalog `json:"catalog"`
	}
	if err := c.do(ctx, http.MethodGet, "/catalog", nil, nil, &result); err != nil {
		return nil, err
	}
	return &result.Catalog, nil
}
