// internal/core/domain/derive.go
package domain

import (
	"strings"
	"time"
)

// auctionDateLayout is the date-only wire format used by the backend.
const auctionDateLayout = "2006-01-02"

// SmartTag composes the human-readable property key from state, county
// and parcel id. Absent inputs are skipped, never inserted as empty
// segments; all-empty inputs yield the empty string.
func SmartTag(state, county, parcelID string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{state, county, parcelID} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.ToUpper(strings.Join(parts, "-"))
}

// StatusFromAuctionDate derives the listing status from the auction
// date: active when the auction is today or in the future, sold when it
// has passed. Both sides are truncated to midnight so the comparison is
// date-only. Returns ok=false for an empty or unparseable date, in
// which case the caller must leave the status untouched.
func StatusFromAuctionDate(auctionDate string, today time.Time) (PropertyStatus, bool) {
	if auctionDate == "" {
		return "", false
	}
	// Accept full timestamps too; the backend sometimes returns RFC3339.
	s := auctionDate
	if len(s) > len(auctionDateLayout) {
		s = s[:len(auctionDateLayout)]
	}
	d, err := time.Parse(auctionDateLayout, s)
	if err != nil {
		return "", false
	}

	ty, tm, td := today.Date()
	truncatedToday := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)

	if !d.Before(truncatedToday) {
		return PropertyActive, true
	}
	return PropertySold, true
}
