// internal/core/domain/filter.go
package domain

// Page holds list pagination. A zero Limit means the backend default.
type Page struct {
	Limit int
	Skip  int
}

// PropertyFilter holds the optional search constraints for property
// list queries. Zero values mean "no constraint". The list, map, and
// auction views all share this one shape; date bounds are always
// min_date/max_date.
type PropertyFilter struct {
	Keyword       string
	State         string
	County        string
	ZipCode       string
	Status        PropertyStatus
	Statuses      []PropertyStatus
	PropertyType  PropertyType
	InventoryType string
	Occupancy     string
	OwnerState    string
	MinAppraisal  *float64
	MaxAppraisal  *float64
	MinAmountDue  *float64
	MaxAmountDue  *float64
	MinAcreage    *float64
	MaxAcreage    *float64
	MinDate       string
	MaxDate       string
	Improvements  *bool
	// Map viewport bounds, used only by the map search view.
	MinLat *float64
	MaxLat *float64
	MinLng *float64
	MaxLng *float64
}

// AuctionFilter holds the optional constraints for auction event lists
// and the calendar aggregation.
type AuctionFilter struct {
	State   string
	County  string
	MinDate string
	MaxDate string
	Month   int
	Year    int
}

// InventoryFilter narrows inventory item lists.
type InventoryFilter struct {
	FolderID string
	Status   ItemStatus
}
