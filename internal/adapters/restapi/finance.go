// internal/adapters/restapi/finance.go
package restapi

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// FinanceClient implements the per-company finance endpoints.
type FinanceClient struct {
	c      *Client
	logger *slog.Logger
}

var _ ports.FinanceAPI = (*FinanceClient)(nil)

// NewFinanceClient creates a finance resource client on the shared
// facade.
func NewFinanceClient(c *Client, logger *slog.Logger) *FinanceClient {
	return &FinanceClient{
		c:      c,
		logger: logger.With(slog.String("client", "finance")),
	}
}

func (f *FinanceClient) Stats(ctx context.Context, companyID int) (*domain.FinanceStats, error) {
	q := newQuery().int("company_id", companyID).v

	var out domain.FinanceStats
	err := f.c.doJSON(ctx, http.MethodGet, "/finance/stats", q, nil, &out, "failed to fetch finance stats")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (f *FinanceClient) Transactions(ctx context.Context, companyID int) ([]domain.Transaction, error) {
	q := newQuery().int("company_id", companyID).v

	var out []domain.Transaction
	err := f.c.doJSON(ctx, http.MethodGet, "/finance/transactions", q, nil, &out, "failed to fetch transactions")
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Deposit funds a company account and returns the recorded transaction.
func (f *FinanceClient) Deposit(ctx context.Context, req domain.DepositRequest) (*domain.Transaction, error) {
	if req.Amount.IsNegative() || req.Amount.IsZero() {
		return nil, fmt.Errorf("deposit amount must be positive, got %s", req.Amount)
	}

	var out domain.Transaction
	err := f.c.doJSON(ctx, http.MethodPost, "/finance/deposit", nil, req, &out, "failed to deposit funds")
	if err != nil {
		return nil, err
	}

	f.logger.InfoContext(ctx, "deposit recorded",
		slog.String("company_id", strconv.Itoa(req.CompanyID)),
		slog.String("amount", req.Amount.String()))
	return &out, nil
}
