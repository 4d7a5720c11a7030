// internal/adapters/restapi/properties.go
package restapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// PropertyClient implements the property resource endpoints.
type PropertyClient struct {
	c      *Client
	logger *slog.Logger
}

// Statically assert that *PropertyClient implements the PropertyAPI port.
var _ ports.PropertyAPI = (*PropertyClient)(nil)

// NewPropertyClient creates a property resource client on the shared
// facade.
func NewPropertyClient(c *Client, logger *slog.Logger) *PropertyClient {
	return &PropertyClient{
		c:      c,
		logger: logger.With(slog.String("client", "properties")),
	}
}

// List fetches properties matching the filter. The backend answers a
// plain array; an empty result is a valid empty slice, never an error.
func (p *PropertyClient) List(ctx context.Context, filter domain.PropertyFilter, page domain.Page) ([]domain.Property, error) {
	var out []domain.Property
	err := p.c.doJSON(ctx, http.MethodGet, "/properties/", encodePropertyFilter(filter, page), nil, &out, "failed to fetch properties")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single property with its nested details and media.
func (p *PropertyClient) Get(ctx context.Context, id string) (*domain.Property, error) {
	var out domain.Property
	err := p.c.doJSON(ctx, http.MethodGet, "/properties/"+id, nil, nil, &out, "failed to fetch property")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Create persists a new property from a partial draft and returns the
// created record with its server-assigned id.
func (p *PropertyClient) Create(ctx context.Context, draft domain.PropertyDraft) (*domain.Property, error) {
	var out domain.Property
	err := p.c.doJSON(ctx, http.MethodPost, "/properties/", nil, draft, &out, "failed to create property")
	if err != nil {
		return nil, err
	}

	p.logger.InfoContext(ctx, "property created",
		slog.String("id", out.ID),
		slog.String("smart_tag", out.SmartTag))
	return &out, nil
}

// Update replaces the mutable fields of an existing property.
func (p *PropertyClient) Update(ctx context.Context, id string, draft domain.PropertyDraft) (*domain.Property, error) {
	var out domain.Property
	err := p.c.doJSON(ctx, http.MethodPut, "/properties/"+id, nil, draft, &out, "failed to update property")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete removes a property.
func (p *PropertyClient) Delete(ctx context.Context, id string) error {
	return p.c.doJSON(ctx, http.MethodDelete, "/properties/"+id, nil, nil, nil, "failed to delete property")
}

// BulkUpdate applies one batched status-update or delete to the given
// ids in a single request.
func (p *PropertyClient) BulkUpdate(ctx context.Context, ids []string, action ports.BulkAction, status domain.PropertyStatus) error {
	if len(ids) == 0 {
		return fmt.Errorf("bulk update requires at least one id")
	}

	body := struct {
		IDs    []string              `json:"ids"`
		Action ports.BulkAction      `json:"action"`
		Status domain.PropertyStatus `json:"status,omitempty"`
	}{IDs: ids, Action: action, Status: status}

	if err := p.c.doJSON(ctx, http.MethodPost, "/properties/bulk-update", nil, body, nil, "failed to perform bulk update"); err != nil {
		return err
	}

	p.logger.InfoContext(ctx, "bulk update applied",
		slog.Int("count", len(ids)),
		slog.String("action", string(action)))
	return nil
}

// Enrich triggers the external data enrichment for a property and
// returns the enriched record.
func (p *PropertyClient) Enrich(ctx context.Context, id string) (*domain.Property, error) {
	var out domain.Property
	err := p.c.doJSON(ctx, http.MethodPost, "/properties/"+id+"/enrich", nil, nil, &out, "failed to enrich property")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Report asks the backend to render the property PDF report and returns
// its URL.
func (p *PropertyClient) Report(ctx context.Context, id string) (string, error) {
	var out struct {
		ReportURL string `json:"report_url"`
	}
	err := p.c.doJSON(ctx, http.MethodGet, "/properties/"+id+"/report", nil, nil, &out, "failed to generate report")
	if err != nil {
		return "", err
	}
	return out.ReportURL, nil
}
