// internal/adapters/restapi/inventory.go
package restapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// InventoryClient implements the inventory folder and item endpoints.
type InventoryClient struct {
	c      *Client
	logger *slog.Logger
}

var _ ports.InventoryAPI = (*InventoryClient)(nil)

// NewInventoryClient creates an inventory resource client on the shared
// facade.
func NewInventoryClient(c *Client, logger *slog.Logger) *InventoryClient {
	return &InventoryClient{
		c:      c,
		logger: logger.With(slog.String("client", "inventory")),
	}
}

func (i *InventoryClient) Folders(ctx context.Context) ([]domain.InventoryFolder, error) {
	var out []domain.InventoryFolder
	err := i.c.doJSON(ctx, http.MethodGet, "/inventory/folders", nil, nil, &out, "failed to fetch folders")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (i *InventoryClient) CreateFolder(ctx context.Context, name, parentID string) (*domain.InventoryFolder, error) {
	body := struct {
		Name     string `json:"name"`
		ParentID string `json:"parent_id,omitempty"`
	}{Name: name, ParentID: parentID}

	var out domain.InventoryFolder
	err := i.c.doJSON(ctx, http.MethodPost, "/inventory/folders", nil, body, &out, "failed to create folder")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *InventoryClient) Items(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error) {
	var out []domain.InventoryItem
	err := i.c.doJSON(ctx, http.MethodGet, "/inventory/items", encodeInventoryFilter(filter), nil, &out, "failed to fetch items")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (i *InventoryClient) AddItem(ctx context.Context, propertyID, folderID string) (*domain.InventoryItem, error) {
	body := struct {
		PropertyID string `json:"property_id"`
		FolderID   string `json:"folder_id,omitempty"`
	}{PropertyID: propertyID, FolderID: folderID}

	var out domain.InventoryItem
	err := i.c.doJSON(ctx, http.MethodPost, "/inventory/items", nil, body, &out, "failed to add item")
	if err != nil {
		return nil, err
	}

	i.logger.InfoContext(ctx, "inventory item added",
		slog.String("item_id", out.ID),
		slog.String("property_id", propertyID))
	return &out, nil
}

// UpdateItem patches an item; moving between folders and status changes
// both go through here.
func (i *InventoryClient) UpdateItem(ctx context.Context, itemID string, update domain.InventoryItemUpdate) (*domain.InventoryItem, error) {
	if update.Status != nil && !domain.ValidItemStatus(*update.Status) {
		return nil, fmt.Errorf("invalid item status: %s", *update.Status)
	}

	var out domain.InventoryItem
	err := i.c.doJSON(ctx, http.MethodPatch, "/inventory/items/"+itemID, nil, update, &out, "failed to update item")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (i *InventoryClient) DeleteItem(ctx context.Context, itemID string) error {
	return i.c.doJSON(ctx, http.MethodDelete, "/inventory/items/"+itemID, nil, nil, nil, "failed to delete item")
}
