// internal/adapters/restapi/users.go
package restapi

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// UserClient implements the user/company administration endpoints and
// the token exchange.
type UserClient struct {
	c      *Client
	logger *slog.Logger
}

var (
	_ ports.UserAPI = (*UserClient)(nil)
	_ ports.AuthAPI = (*UserClient)(nil)
)

// NewUserClient creates a user resource client on the shared facade.
func NewUserClient(c *Client, logger *slog.Logger) *UserClient {
	return &UserClient{
		c:      c,
		logger: logger.With(slog.String("client", "users")),
	}
}

// Login exchanges credentials for a bearer token. The endpoint is
// form-encoded, not JSON, and takes the email in the username field.
func (u *UserClient) Login(ctx context.Context, username, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	var out struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := u.c.doForm(ctx, "/login/access-token", form, &out, "login failed"); err != nil {
		return "", err
	}

	u.logger.InfoContext(ctx, "login succeeded", slog.String("username", username))
	return out.AccessToken, nil
}

// Me fetches the profile of the token owner.
func (u *UserClient) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	err := u.c.doJSON(ctx, http.MethodGet, "/users/me", nil, nil, &out, "failed to fetch user profile")
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *UserClient) ListUsers(ctx context.Context) ([]domain.User, error) {
	var out []domain.User
	err := u.c.doJSON(ctx, http.MethodGet, "/users/", nil, nil, &out, "failed to fetch users")
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (u *UserClient) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	var out []domain.Company
	err := u.c.doJSON(ctx, http.MethodGet, "/companies/", nil, nil, &out, "failed to fetch companies")
	if err != nil {
		return nil, err
	}
	return out, nil
}
