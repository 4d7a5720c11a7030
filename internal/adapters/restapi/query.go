// internal/adapters/restapi/query.go
package restapi

import (
	"net/url"
	"strconv"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
)

// query builds filter query strings with the skip-empty contract:
// undefined/empty values never appear, slice values repeat the key.
type query struct {
	v url.Values
}

func newQuery() *query {
	return &query{v: url.Values{}}
}

func (q *query) str(key, val string) *query {
	if val != "" {
		q.v.Set(key, val)
	}
	return q
}

func (q *query) strs(key string, vals []string) *query {
	for _, val := range vals {
		if val != "" {
			q.v.Add(key, val)
		}
	}
	return q
}

func (q *query) float(key string, val *float64) *query {
	if val != nil {
		q.v.Set(key, strconv.FormatFloat(*val, 'f', -1, 64))
	}
	return q
}

func (q *query) boolean(key string, val *bool) *query {
	if val != nil {
		q.v.Set(key, strconv.FormatBool(*val))
	}
	return q
}

func (q *query) int(key string, val int) *query {
	if val != 0 {
		q.v.Set(key, strconv.Itoa(val))
	}
	return q
}

func (q *query) page(p domain.Page) *query {
	if p.Limit > 0 {
		q.v.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Skip > 0 {
		q.v.Set("skip", strconv.Itoa(p.Skip))
	}
	return q
}

func encodePropertyFilter(f domain.PropertyFilter, page domain.Page) url.Values {
	statuses := make([]string, 0, len(f.Statuses))
	for _, s := range f.Statuses {
		statuses = append(statuses, string(s))
	}

	return newQuery().
		str("keyword", f.Keyword).
		str("state", f.State).
		str("county", f.County).
		str("zip_code", f.ZipCode).
		str("status", string(f.Status)).
		strs("statuses", statuses).
		str("property_type", string(f.PropertyType)).
		str("inventory_type", f.InventoryType).
		str("occupancy", f.Occupancy).
		str("owner_state", f.OwnerState).
		float("min_appraisal", f.MinAppraisal).
		float("max_appraisal", f.MaxAppraisal).
		float("min_amount_due", f.MinAmountDue).
		float("max_amount_due", f.MaxAmountDue).
		float("min_acreage", f.MinAcreage).
		float("max_acreage", f.MaxAcreage).
		str("min_date", f.MinDate).
		str("max_date", f.MaxDate).
		boolean("improvements", f.Improvements).
		float("min_lat", f.MinLat).
		float("max_lat", f.MaxLat).
		float("min_lng", f.MinLng).
		float("max_lng", f.MaxLng).
		page(page).v
}

func encodeAuctionFilter(f domain.AuctionFilter, page domain.Page) url.Values {
	return newQuery().
		str("state", f.State).
		str("county", f.County).
		str("min_date", f.MinDate).
		str("max_date", f.MaxDate).
		int("month", f.Month).
		int("year", f.Year).
		page(page).v
}

func encodeInventoryFilter(f domain.InventoryFilter) url.Values {
	return newQuery().
		str("folder_id", f.FolderID).
		str("status", string(f.Status)).v
}
