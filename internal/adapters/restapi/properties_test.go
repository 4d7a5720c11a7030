// internal/adapters/restapi/properties_test.go
package restapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/adapters/restapi"
	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
)

func TestPropertyClient_ListEncodesFilters(t *testing.T) {
	var gotQuery url.Values
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[]`))
	})

	client, _ := newTestClient(t, handler, "tok")
	props := restapi.NewPropertyClient(client, helpers.TestLogger())

	minAppraisal := 50000.0
	improvements := true
	filter := domain.PropertyFilter{
		State:        "FL",
		County:       "Lee",
		Statuses:     []domain.PropertyStatus{domain.PropertyActive, domain.PropertyPending},
		MinAppraisal: &minAppraisal,
		Improvements: &improvements,
	}

	_, err := props.List(context.Background(), filter, domain.Page{Limit: 50, Skip: 100})
	require.NoError(t, err)

	assert.Equal(t, "FL", gotQuery.Get("state"))
	assert.Equal(t, "Lee", gotQuery.Get("county"))
	assert.Equal(t, []string{"active", "pending"}, gotQuery["statuses"])
	assert.Equal(t, "50000", gotQuery.Get("min_appraisal"))
	assert.Equal(t, "true", gotQuery.Get("improvements"))
	assert.Equal(t, "50", gotQuery.Get("limit"))
	assert.Equal(t, "100", gotQuery.Get("skip"))

	// Empty filters must not appear at all.
	_, present := gotQuery["zip_code"]
	assert.False(t, present)
	_, present = gotQuery["max_appraisal"]
	assert.False(t, present)
}

func TestPropertyClient_CreateReturnsServerRecord(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/properties/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var draft domain.PropertyDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "FL-LEE-12-44-25", draft.SmartTag)

		prop := domain.Property{ID: "prop-001", PropertyDraft: draft}
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(prop)
	})

	client, _ := newTestClient(t, handler, "tok")
	props := restapi.NewPropertyClient(client, helpers.TestLogger())

	draft := domain.PropertyDraft{}
	draft.Merge(domain.PropertyDraft{State: "FL", County: "Lee", ParcelID: "12-44-25"})

	created, err := props.Create(context.Background(), draft)
	require.NoError(t, err)
	assert.Equal(t, "prop-001", created.ID)
	assert.Equal(t, "FL-LEE-12-44-25", created.SmartTag)
}

func TestPropertyClient_BulkUpdate(t *testing.T) {
	t.Run("single_batched_request_with_all_ids", func(t *testing.T) {
		var calls int
		var gotBody map[string]any
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			require.Equal(t, "/properties/bulk-update", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			w.Write([]byte(`{"updated": 3}`))
		})

		client, _ := newTestClient(t, handler, "tok")
		props := restapi.NewPropertyClient(client, helpers.TestLogger())

		err := props.BulkUpdate(context.Background(), []string{"a", "b", "c"}, ports.BulkUpdateStatus, domain.PropertyActive)
		require.NoError(t, err)

		assert.Equal(t, 1, calls)
		assert.Equal(t, []any{"a", "b", "c"}, gotBody["ids"])
		assert.Equal(t, "update_status", gotBody["action"])
		assert.Equal(t, "active", gotBody["status"])
	})

	t.Run("empty_selection_rejected_locally", func(t *testing.T) {
		handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})

		client, _ := newTestClient(t, handler, "tok")
		props := restapi.NewPropertyClient(client, helpers.TestLogger())

		err := props.BulkUpdate(context.Background(), nil, ports.BulkDelete, "")
		require.Error(t, err)
	})
}

func TestPropertyClient_Enrich(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/properties/prop-3/enrich", r.URL.Path)

		prop := domain.Property{ID: "prop-3"}
		prop.OwnerName = "Jane Roe"
		prop.Details = &domain.PropertyDetails{}
		json.NewEncoder(w).Encode(prop)
	})

	client, _ := newTestClient(t, handler, "tok")
	props := restapi.NewPropertyClient(client, helpers.TestLogger())

	enriched, err := props.Enrich(context.Background(), "prop-3")
	require.NoError(t, err)
	assert.Equal(t, "prop-3", enriched.ID)
	assert.Equal(t, "Jane Roe", enriched.OwnerName, "enrichment fills owner data")
	assert.NotNil(t, enriched.Details)
}

func TestPropertyClient_Report(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/properties/prop-7/report", r.URL.Path)
		w.Write([]byte(`{"report_url": "https://cdn.example.com/reports/prop-7.pdf"}`))
	})

	client, _ := newTestClient(t, handler, "tok")
	props := restapi.NewPropertyClient(client, helpers.TestLogger())

	url, err := props.Report(context.Background(), "prop-7")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/reports/prop-7.pdf", url)
}

func TestPropertyClient_DeleteSendsNoBody(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodDelete, r.Method)
		require.Equal(t, "/properties/prop-9", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	client, _ := newTestClient(t, handler, "tok")
	props := restapi.NewPropertyClient(client, helpers.TestLogger())

	require.NoError(t, props.Delete(context.Background(), "prop-9"))
}
