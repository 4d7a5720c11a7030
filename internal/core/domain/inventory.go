// internal/core/domain/inventory.go
package domain

// ItemStatus represents where an inventory item sits in the acquisition
// pipeline.
type ItemStatus string

// Item status constants
const (
	StatusInterested   ItemStatus = "interested"
	StatusDueDiligence ItemStatus = "due_diligence"
	StatusBidReady     ItemStatus = "bid_ready"
	StatusWon          ItemStatus = "won"
	StatusLost         ItemStatus = "lost"
	StatusArchived     ItemStatus = "archived"
)

// ValidItemStatus reports whether s is a member of the item status enum.
func ValidItemStatus(s ItemStatus) bool {
	switch s {
	case StatusInterested, StatusDueDiligence, StatusBidReady,
		StatusWon, StatusLost, StatusArchived:
		return true
	}
	return false
}

// InventoryFolder groups inventory items. Folders nest through
// ParentID; system folders cannot be renamed or deleted.
type InventoryFolder struct {
	ID        string            `json:"id"`
	Name      string            `json:"name"`
	ParentID  string            `json:"parent_id,omitempty"`
	IsSystem  bool              `json:"is_system"`
	CompanyID int               `json:"company_id"`
	Children  []InventoryFolder `json:"children,omitempty"`
}

// InventoryItem tracks a property through the acquisition pipeline. An
// item optionally belongs to one folder; moving or recoloring it is a
// folder-id or status update, never a structural change.
type InventoryItem struct {
	ID         string     `json:"id"`
	FolderID   string     `json:"folder_id,omitempty"`
	PropertyID string     `json:"property_id"`
	Status     ItemStatus `json:"status"`
	UserNotes  string     `json:"user_notes,omitempty"`
	Tags       string     `json:"tags,omitempty"`
	Property   *Property  `json:"property,omitempty"`
}

// InventoryItemUpdate is the PATCH payload for an item; nil fields are
// left untouched remotely.
type InventoryItemUpdate struct {
	FolderID  *string     `json:"folder_id,omitempty"`
	Status    *ItemStatus `json:"status,omitempty"`
	UserNotes *string     `json:"user_notes,omitempty"`
	Tags      *string     `json:"tags,omitempty"`
}
