// internal/adapters/restapi/auctions.go
package restapi

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// AuctionClient implements the auction event endpoints.
type AuctionClient struct {
	c      *Client
	logger *slog.Logger
}

var _ ports.AuctionAPI = (*AuctionClient)(nil)

// NewAuctionClient creates an auction resource client on the shared
// facade.
func NewAuctionClient(c *Client, logger *slog.Logger) *AuctionClient {
	return &AuctionClient{
		c:      c,
		logger: logger.With(slog.String("client", "auctions")),
	}
}

func (a *AuctionClient) List(ctx context.Context, filter domain.AuctionFilter, page domain.Page) ([]domain.AuctionEvent, error) {
	var out []domain.AuctionEvent
	err := a.c.doJSON(ctx, http.MethodGet, "/auctions/", encodeAuctionFilter(filter, page), nil, &out, "failed to fetch auctions")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (a *AuctionClient) Get(ctx context.Context, id string) (*domain.AuctionEvent, error) {
	var out domain.AuctionEvent
	err := a.c.doJSON(ctx, http.MethodGet, "/auctions/"+id, nil, nil, &out, "failed to fetch auction")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuctionClient) Create(ctx context.Context, event domain.AuctionEvent) (*domain.AuctionEvent, error) {
	var out domain.AuctionEvent
	err := a.c.doJSON(ctx, http.MethodPost, "/auctions/", nil, event, &out, "failed to create auction")
	if err != nil {
		return nil, err
	}

	a.logger.InfoContext(ctx, "auction created",
		slog.String("id", out.ID),
		slog.String("county", out.County))
	return &out, nil
}

func (a *AuctionClient) Update(ctx context.Context, id string, event domain.AuctionEvent) (*domain.AuctionEvent, error) {
	var out domain.AuctionEvent
	err := a.c.doJSON(ctx, http.MethodPut, "/auctions/"+id, nil, event, &out, "failed to update auction")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (a *AuctionClient) Delete(ctx context.Context, id string) error {
	return a.c.doJSON(ctx, http.MethodDelete, "/auctions/"+id, nil, nil, nil, "failed to delete auction")
}

// Calendar returns the month aggregation the calendar view renders:
// events grouped per day with a property count badge.
func (a *AuctionClient) Calendar(ctx context.Context, filter domain.AuctionFilter) ([]domain.CalendarBucket, error) {
	var out []domain.CalendarBucket
	err := a.c.doJSON(ctx, http.MethodGet, "/auctions/calendar", encodeAuctionFilter(filter, domain.Page{}), nil, &out, "failed to fetch auction calendar")
	if err != nil {
		return nil, err
	}
	return out, nil
}
