// internal/core/ports/api.go
package ports

import (
	"context"
	"io"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
)

// BulkAction names the batched mutation applied by BulkUpdate.
type BulkAction string

const (
	BulkUpdateStatus BulkAction = "update_status"
	BulkDelete       BulkAction = "delete"
)

// PropertyAPI is the typed client port for the remote property
// endpoints. Implemented by the REST adapter; mocked in tests.
type PropertyAPI interface {
	List(ctx context.Context, filter domain.PropertyFilter, page domain.Page) ([]domain.Property, error)
	Get(ctx context.Context, id string) (*domain.Property, error)
	Create(ctx context.Context, draft domain.PropertyDraft) (*domain.Property, error)
	Update(ctx context.Context, id string, draft domain.PropertyDraft) (*domain.Property, error)
	Delete(ctx context.Context, id string) error
	BulkUpdate(ctx context.Context, ids []string, action BulkAction, status domain.PropertyStatus) error
	Enrich(ctx context.Context, id string) (*domain.Property, error)
	Report(ctx context.Context, id string) (string, error)
}

// AuctionAPI is the typed client port for auction event endpoints.
type AuctionAPI interface {
	List(ctx context.Context, filter domain.AuctionFilter, page domain.Page) ([]domain.AuctionEvent, error)
	Get(ctx context.Context, id string) (*domain.AuctionEvent, error)
	Create(ctx context.Context, event domain.AuctionEvent) (*domain.AuctionEvent, error)
	Update(ctx context.Context, id string, event domain.AuctionEvent) (*domain.AuctionEvent, error)
	Delete(ctx context.Context, id string) error
	Calendar(ctx context.Context, filter domain.AuctionFilter) ([]domain.CalendarBucket, error)
}

// InventoryAPI is the typed client port for inventory folder and item
// endpoints.
type InventoryAPI interface {
	Folders(ctx context.Context) ([]domain.InventoryFolder, error)
	CreateFolder(ctx context.Context, name, parentID string) (*domain.InventoryFolder, error)
	Items(ctx context.Context, filter domain.InventoryFilter) ([]domain.InventoryItem, error)
	AddItem(ctx context.Context, propertyID, folderID string) (*domain.InventoryItem, error)
	UpdateItem(ctx context.Context, itemID string, update domain.InventoryItemUpdate) (*domain.InventoryItem, error)
	DeleteItem(ctx context.Context, itemID string) error
}

// FinanceAPI is the typed client port for per-company finance endpoints.
type FinanceAPI interface {
	Stats(ctx context.Context, companyID int) (*domain.FinanceStats, error)
	Transactions(ctx context.Context, companyID int) ([]domain.Transaction, error)
	Deposit(ctx context.Context, req domain.DepositRequest) (*domain.Transaction, error)
}

// UserAPI is the typed client port for user and company administration.
type UserAPI interface {
	Me(ctx context.Context) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
}

// AuthAPI exchanges credentials for a bearer token.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (token string, err error)
}

// MediaAPI uploads files for a property. Uploading requires a persisted
// property id; the wizard enforces that precondition before step 3.
type MediaAPI interface {
	Upload(ctx context.Context, propertyID, fileName string, content io.Reader) ([]domain.Media, error)
}
