// internal/core/domain/auction.go
package domain

import "time"

// AuctionType distinguishes the sale mechanism of an auction event.
type AuctionType string

const (
	AuctionTaxDeed AuctionType = "tax_deed"
	AuctionTaxLien AuctionType = "tax_lien"
	AuctionOTC     AuctionType = "otc"
)

// AuctionEvent is a scheduled county auction. Events feed the calendar
// view and link properties to their sale date.
type AuctionEvent struct {
	ID           string      `json:"id"`
	Name         string      `json:"name"`
	State        string      `json:"state"`
	County       string      `json:"county"`
	AuctionType  AuctionType `json:"auction_type,omitempty"`
	AuctionDate  string      `json:"auction_date"`
	Location     string      `json:"location,omitempty"`
	InfoLink     string      `json:"info_link,omitempty"`
	ListLink     string      `json:"list_link,omitempty"`
	PropertyIDs  []string    `json:"property_ids,omitempty"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// CalendarBucket is one day of the calendar aggregation: the events on
// that date plus a property count for the badge.
type CalendarBucket struct {
	Date          string         `json:"date"`
	Events        []AuctionEvent `json:"events"`
	PropertyCount int            `json:"property_count"`
}
