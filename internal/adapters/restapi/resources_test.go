// internal/adapters/restapi/resources_test.go
package restapi_test

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/adapters/restapi"
	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
)

func TestAuctionClient_CalendarEncodesFilter(t *testing.T) {
	var gotPath string
	var gotQuery url.Values
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"date":"2026-09-01","events":[{"id":"a1","name":"Sept Tax Deed","state":"FL","county":"Miami-Dade","auction_date":"2026-09-01"}],"property_count":42}]`))
	})

	client, _ := newTestClient(t, handler, "tok")
	auctions := restapi.NewAuctionClient(client, helpers.TestLogger())

	buckets, err := auctions.Calendar(context.Background(), domain.AuctionFilter{
		State: "FL",
		Month: 9,
		Year:  2026,
	})
	require.NoError(t, err)

	assert.Equal(t, "/auctions/calendar", gotPath)
	assert.Equal(t, "FL", gotQuery.Get("state"))
	assert.Equal(t, "9", gotQuery.Get("month"))
	assert.Equal(t, "2026", gotQuery.Get("year"))
	assert.False(t, gotQuery.Has("county"))

	require.Len(t, buckets, 1)
	assert.Equal(t, "2026-09-01", buckets[0].Date)
	assert.Equal(t, 42, buckets[0].PropertyCount)
	require.Len(t, buckets[0].Events, 1)
	assert.Equal(t, "Sept Tax Deed", buckets[0].Events[0].Name)
}

func TestInventoryClient_ItemsEncodesFilter(t *testing.T) {
	var gotQuery url.Values
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Write([]byte(`[{"id":"item-1","property_id":"prop-1","status":"bid_ready"}]`))
	})

	client, _ := newTestClient(t, handler, "tok")
	inventory := restapi.NewInventoryClient(client, helpers.TestLogger())

	items, err := inventory.Items(context.Background(), domain.InventoryFilter{
		FolderID: "folder-9",
		Status:   domain.StatusBidReady,
	})
	require.NoError(t, err)

	assert.Equal(t, "folder-9", gotQuery.Get("folder_id"))
	assert.Equal(t, "bid_ready", gotQuery.Get("status"))
	require.Len(t, items, 1)
	assert.Equal(t, domain.StatusBidReady, items[0].Status)
}

func TestInventoryClient_UpdateItemRejectsUnknownStatus(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued for an invalid status")
	})

	client, _ := newTestClient(t, handler, "tok")
	inventory := restapi.NewInventoryClient(client, helpers.TestLogger())

	bogus := domain.ItemStatus("tentative")
	_, err := inventory.UpdateItem(context.Background(), "item-1", domain.InventoryItemUpdate{Status: &bogus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid item status")
}

func TestFinanceClient_StatsDecodesDecimals(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("company_id"))
		w.Write([]byte(`{"total_balance":"125000.50","total_invested":"98000","total_expenses":"1200.25","available_limit":"27000.25"}`))
	})

	client, _ := newTestClient(t, handler, "tok")
	finance := restapi.NewFinanceClient(client, helpers.TestLogger())

	stats, err := finance.Stats(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, stats.TotalBalance.Equal(decimal.RequireFromString("125000.50")))
	assert.True(t, stats.TotalExpenses.Equal(decimal.RequireFromString("1200.25")))
}

func TestFinanceClient_DepositRejectsNonPositiveAmounts(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued for a non-positive deposit")
	})

	client, _ := newTestClient(t, handler, "tok")
	finance := restapi.NewFinanceClient(client, helpers.TestLogger())

	tests := []struct {
		name   string
		amount decimal.Decimal
	}{
		{name: "zero", amount: decimal.Zero},
		{name: "negative", amount: decimal.NewFromInt(-50)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := finance.Deposit(context.Background(), domain.DepositRequest{
				CompanyID: 7,
				Amount:    tt.amount,
			})
			require.Error(t, err)
		})
	}
}

func TestMediaClient_UploadSendsMultipart(t *testing.T) {
	var gotPath, gotFileName, gotContent string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path

		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("files")
		require.NoError(t, err)
		defer file.Close()

		gotFileName = header.Filename
		data, err := io.ReadAll(file)
		require.NoError(t, err)
		gotContent = string(data)

		w.Write([]byte(`[{"id":"m-1","property_id":"prop-1","file_name":"deed.pdf","url":"https://cdn/deed.pdf"}]`))
	})

	client, _ := newTestClient(t, handler, "tok")
	media := restapi.NewMediaClient(client, helpers.TestLogger())

	records, err := media.Upload(context.Background(), "prop-1", "deed.pdf", strings.NewReader("pdf-bytes"))
	require.NoError(t, err)

	assert.Equal(t, "/media/prop-1/upload", gotPath)
	assert.Equal(t, "deed.pdf", gotFileName)
	assert.Equal(t, "pdf-bytes", gotContent)
	require.Len(t, records, 1)
	assert.Equal(t, "https://cdn/deed.pdf", records[0].URL)
}

func TestMediaClient_UploadRequiresPersistedID(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be issued without a property id")
	})

	client, _ := newTestClient(t, handler, "tok")
	media := restapi.NewMediaClient(client, helpers.TestLogger())

	_, err := media.Upload(context.Background(), "", "deed.pdf", strings.NewReader("x"))
	require.Error(t, err)
}
