// internal/core/domain/property.go
package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// PropertyType represents the broad classification of a property
type PropertyType string

// Property type constants
const (
	TypeResidential PropertyType = "residential"
	TypeCommercial  PropertyType = "commercial"
	TypeLand        PropertyType = "land"
	TypeIndustrial  PropertyType = "industrial"
	TypeMixedUse    PropertyType = "mixed_use"
	TypeOTC         PropertyType = "otc"
)

// PropertyStatus represents the lifecycle status of a property listing
type PropertyStatus string

const (
	PropertyDraftStatus PropertyStatus = "draft"
	PropertyActive      PropertyStatus = "active"
	PropertyPending     PropertyStatus = "pending"
	PropertySold        PropertyStatus = "sold"
	PropertyCancelled   PropertyStatus = "cancelled"
)

// PropertyDetails holds the financial and structural sub-record of a
// property. All fields are optional; a nil pointer means the field was
// never provided and must not overwrite a remote value on update.
type PropertyDetails struct {
	Bedrooms         *int             `json:"bedrooms,omitempty"`
	Bathrooms        *float64         `json:"bathrooms,omitempty"`
	Sqft             *int             `json:"sqft,omitempty"`
	LotAcres         *float64         `json:"lot_acres,omitempty"`
	YearBuilt        *int             `json:"year_built,omitempty"`
	AssessedValue    *decimal.Decimal `json:"assessed_value,omitempty"`
	LandValue        *decimal.Decimal `json:"land_value,omitempty"`
	ImprovementValue *decimal.Decimal `json:"improvement_value,omitempty"`
	EstimatedValue   *decimal.Decimal `json:"estimated_value,omitempty"`
	AmountDue        *decimal.Decimal `json:"amount_due,omitempty"`
	MaxBid           *decimal.Decimal `json:"max_bid,omitempty"`
	TaxAmount        *decimal.Decimal `json:"tax_amount,omitempty"`
	TaxYear          *int             `json:"tax_year,omitempty"`
	LegalDescription *string          `json:"legal_description,omitempty"`
	Occupancy        *string          `json:"occupancy,omitempty"`
	Improvements     *bool            `json:"improvements,omitempty"`
}

// AuctionDetails holds the auction sub-record of a property. AuctionDate
// is a date-only string (2006-01-02); it drives the derived status.
type AuctionDetails struct {
	AuctionName string           `json:"auction_name,omitempty"`
	AuctionDate string           `json:"auction_date,omitempty"`
	Location    string           `json:"location,omitempty"`
	TaxesDue    *decimal.Decimal `json:"taxes_due,omitempty"`
	ListedAs    string           `json:"listed_as,omitempty"`
	InfoLink    string           `json:"info_link,omitempty"`
}

// PropertyDraft is the partial property under edit. It is the payload
// shape for create and update calls; empty strings and nil pointers are
// treated as absent.
type PropertyDraft struct {
	Title        string         `json:"title,omitempty"`
	Address      string         `json:"address,omitempty"`
	City         string         `json:"city,omitempty"`
	State        string         `json:"state,omitempty" validate:"omitempty,len=2"`
	County       string         `json:"county,omitempty"`
	ZipCode      string         `json:"zip_code,omitempty"`
	Latitude     *float64       `json:"latitude,omitempty" validate:"omitempty,latitude"`
	Longitude    *float64       `json:"longitude,omitempty" validate:"omitempty,longitude"`
	ParcelID     string         `json:"parcel_id,omitempty"`
	SmartTag     string         `json:"smart_tag,omitempty"`
	OwnerName    string         `json:"owner_name,omitempty"`
	OwnerAddress string         `json:"owner_address,omitempty"`
	PropertyType PropertyType   `json:"property_type,omitempty"`
	Status       PropertyStatus `json:"status,omitempty"`
	Notes        string         `json:"notes,omitempty"`

	Details        *PropertyDetails `json:"details,omitempty"`
	AuctionDetails *AuctionDetails  `json:"auction_details,omitempty"`
}

// Property is the full record returned by the remote API.
type Property struct {
	ID string `json:"id"`
	PropertyDraft
	Media     []Media    `json:"media,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// Media is a file record attached to a property.
type Media struct {
	ID         string    `json:"id"`
	PropertyID string    `json:"property_id"`
	FileName   string    `json:"file_name"`
	URL        string    `json:"url"`
	MediaType  string    `json:"media_type,omitempty"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// Merge shallow-merges partial into the draft: non-empty scalar fields
// overwrite, nested sub-records merge field-by-field. Derived fields
// (smart tag, status from auction date) are recomputed afterwards so
// callers never observe a stale derivation.
func (d *PropertyDraft) Merge(partial PropertyDraft) {
	mergeStr(&d.Title, partial.Title)
	mergeStr(&d.Address, partial.Address)
	mergeStr(&d.City, partial.City)
	mergeStr(&d.State, partial.State)
	mergeStr(&d.County, partial.County)
	mergeStr(&d.ZipCode, partial.ZipCode)
	mergeStr(&d.ParcelID, partial.ParcelID)
	mergeStr(&d.OwnerName, partial.OwnerName)
	mergeStr(&d.OwnerAddress, partial.OwnerAddress)
	mergeStr(&d.Notes, partial.Notes)
	if partial.Latitude != nil {
		d.Latitude = partial.Latitude
	}
	if partial.Longitude != nil {
		d.Longitude = partial.Longitude
	}
	if partial.PropertyType != "" {
		d.PropertyType = partial.PropertyType
	}
	if partial.Status != "" {
		d.Status = partial.Status
	}
	if partial.Details != nil {
		if d.Details == nil {
			d.Details = &PropertyDetails{}
		}
		d.Details.merge(partial.Details)
	}
	if partial.AuctionDetails != nil {
		if d.AuctionDetails == nil {
			d.AuctionDetails = &AuctionDetails{}
		}
		d.AuctionDetails.merge(partial.AuctionDetails)
	}

	d.Recalculate()
}

// Recalculate refreshes the derived fields from their inputs. It is
// idempotent: unchanged inputs produce unchanged fields.
func (d *PropertyDraft) Recalculate() {
	d.SmartTag = SmartTag(d.State, d.County, d.ParcelID)

	if d.AuctionDetails != nil {
		if status, ok := StatusFromAuctionDate(d.AuctionDetails.AuctionDate, time.Now()); ok {
			if d.Status != status {
				d.Status = status
			}
		}
	}
}

// Validate checks the draft before a final submit. Partial drafts saved
// mid-wizard are intentionally not validated; only the terminal
// create-or-update goes through here.
func (d *PropertyDraft) Validate() error {
	if d.ParcelID == "" {
		return fmt.Errorf("parcel_id is required")
	}
	if d.State == "" {
		return fmt.Errorf("state is required")
	}
	if d.County == "" {
		return fmt.Errorf("county is required")
	}
	if d.Details != nil && d.Details.AmountDue != nil && d.Details.AmountDue.IsNegative() {
		return fmt.Errorf("amount_due cannot be negative")
	}
	return nil
}

func (p *PropertyDetails) merge(partial *PropertyDetails) {
	if partial.Bedrooms != nil {
		p.Bedrooms = partial.Bedrooms
	}
	if partial.Bathrooms != nil {
		p.Bathrooms = partial.Bathrooms
	}
	if partial.Sqft != nil {
		p.Sqft = partial.Sqft
	}
	if partial.LotAcres != nil {
		p.LotAcres = partial.LotAcres
	}
	if partial.YearBuilt != nil {
		p.YearBuilt = partial.YearBuilt
	}
	if partial.AssessedValue != nil {
		p.AssessedValue = partial.AssessedValue
	}
	if partial.LandValue != nil {
		p.LandValue = partial.LandValue
	}
	if partial.ImprovementValue != nil {
		p.ImprovementValue = partial.ImprovementValue
	}
	if partial.EstimatedValue != nil {
		p.EstimatedValue = partial.EstimatedValue
	}
	if partial.AmountDue != nil {
		p.AmountDue = partial.AmountDue
	}
	if partial.MaxBid != nil {
		p.MaxBid = partial.MaxBid
	}
	if partial.TaxAmount != nil {
		p.TaxAmount = partial.TaxAmount
	}
	if partial.TaxYear != nil {
		p.TaxYear = partial.TaxYear
	}
	if partial.LegalDescription != nil {
		p.LegalDescription = partial.LegalDescription
	}
	if partial.Occupancy != nil {
		p.Occupancy = partial.Occupancy
	}
	if partial.Improvements != nil {
		p.Improvements = partial.Improvements
	}
}

func (a *AuctionDetails) merge(partial *AuctionDetails) {
	mergeStr(&a.AuctionName, partial.AuctionName)
	mergeStr(&a.AuctionDate, partial.AuctionDate)
	mergeStr(&a.Location, partial.Location)
	mergeStr(&a.ListedAs, partial.ListedAs)
	mergeStr(&a.InfoLink, partial.InfoLink)
	if partial.TaxesDue != nil {
		a.TaxesDue = partial.TaxesDue
	}
}

func mergeStr(dst *string, src string) {
	if src != "" {
		*dst = src
	}
}
