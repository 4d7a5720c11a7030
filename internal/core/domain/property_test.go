// internal/core/domain/property_test.go
package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
)

func TestPropertyDraft_Merge(t *testing.T) {
	t.Run("scalar_fields_overwrite_only_when_present", func(t *testing.T) {
		draft := domain.PropertyDraft{
			Address: "100 Main St",
			City:    "Miami",
			State:   "FL",
		}

		draft.Merge(domain.PropertyDraft{City: "Tampa"})

		assert.Equal(t, "100 Main St", draft.Address)
		assert.Equal(t, "Tampa", draft.City)
		assert.Equal(t, "FL", draft.State)
	})

	t.Run("details_merge_field_by_field", func(t *testing.T) {
		beds := 3
		sqft := 1400
		assessed := decimal.NewFromInt(95000)

		draft := domain.PropertyDraft{
			Details: &domain.PropertyDetails{
				Bedrooms: &beds,
				Sqft:     &sqft,
			},
		}

		newBeds := 4
		draft.Merge(domain.PropertyDraft{
			Details: &domain.PropertyDetails{
				Bedrooms:      &newBeds,
				AssessedValue: &assessed,
			},
		})

		require.NotNil(t, draft.Details)
		assert.Equal(t, 4, *draft.Details.Bedrooms)
		assert.Equal(t, 1400, *draft.Details.Sqft)
		assert.True(t, draft.Details.AssessedValue.Equal(assessed))
	})

	t.Run("nested_details_created_when_absent", func(t *testing.T) {
		draft := domain.PropertyDraft{}
		year := 1987

		draft.Merge(domain.PropertyDraft{
			Details: &domain.PropertyDetails{YearBuilt: &year},
		})

		require.NotNil(t, draft.Details)
		assert.Equal(t, 1987, *draft.Details.YearBuilt)
	})

	t.Run("smart_tag_recomputed_on_every_input_change", func(t *testing.T) {
		draft := domain.PropertyDraft{}

		draft.Merge(domain.PropertyDraft{State: "fl", County: "Lee"})
		assert.Equal(t, "FL-LEE", draft.SmartTag)

		draft.Merge(domain.PropertyDraft{ParcelID: "12-44-25"})
		assert.Equal(t, "FL-LEE-12-44-25", draft.SmartTag)

		draft.Merge(domain.PropertyDraft{County: "Collier"})
		assert.Equal(t, "FL-COLLIER-12-44-25", draft.SmartTag)
	})

	t.Run("status_derived_from_auction_date", func(t *testing.T) {
		draft := domain.PropertyDraft{Status: domain.PropertyDraftStatus}

		draft.Merge(domain.PropertyDraft{
			AuctionDetails: &domain.AuctionDetails{AuctionDate: "2099-06-01"},
		})
		assert.Equal(t, domain.PropertyActive, draft.Status)

		draft.Merge(domain.PropertyDraft{
			AuctionDetails: &domain.AuctionDetails{AuctionDate: "2001-06-01"},
		})
		assert.Equal(t, domain.PropertySold, draft.Status)
	})

	t.Run("status_untouched_without_auction_date", func(t *testing.T) {
		draft := domain.PropertyDraft{Status: domain.PropertyPending}

		draft.Merge(domain.PropertyDraft{Address: "somewhere"})

		assert.Equal(t, domain.PropertyPending, draft.Status)
	})
}

func TestPropertyDraft_Validate(t *testing.T) {
	tests := []struct {
		name      string
		draft     domain.PropertyDraft
		wantError bool
		errorMsg  string
	}{
		{
			name: "valid_draft",
			draft: domain.PropertyDraft{
				ParcelID: "12-44-25",
				State:    "FL",
				County:   "Lee",
			},
			wantError: false,
		},
		{
			name:      "missing_parcel_id",
			draft:     domain.PropertyDraft{State: "FL", County: "Lee"},
			wantError: true,
			errorMsg:  "parcel_id is required",
		},
		{
			name:      "missing_state",
			draft:     domain.PropertyDraft{ParcelID: "1", County: "Lee"},
			wantError: true,
			errorMsg:  "state is required",
		},
		{
			name: "negative_amount_due",
			draft: func() domain.PropertyDraft {
				due := decimal.NewFromInt(-50)
				return domain.PropertyDraft{
					ParcelID: "1", State: "FL", County: "Lee",
					Details: &domain.PropertyDetails{AmountDue: &due},
				}
			}(),
			wantError: true,
			errorMsg:  "amount_due cannot be negative",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.draft.Validate()
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}
