// test/helpers/helpers.go
package helpers

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
)

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	if testing.Verbose() {
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
}

// SetupTestRedis creates a mock Redis instance for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// EmptyFilter returns a property filter with nothing set
func EmptyFilter() domain.PropertyFilter {
	return domain.PropertyFilter{}
}

// DefaultPage returns the standard first page
func DefaultPage() domain.Page {
	return domain.Page{Limit: 50, Skip: 0}
}

// CreateTestDraft creates a test property draft
func CreateTestDraft(overrides ...func(*domain.PropertyDraft)) domain.PropertyDraft {
	amountDue := decimal.NewFromFloat(4250.50)
	assessed := decimal.NewFromFloat(118000)

	draft := domain.PropertyDraft{
		Title:        "Vacant lot on NW 3rd Ave",
		Address:      "1420 NW 3rd Ave",
		City:         "Miami",
		State:        "FL",
		County:       "Miami-Dade",
		ZipCode:      "33136",
		ParcelID:     "01-3136-009-0120",
		OwnerName:    "R. Alvarez",
		PropertyType: domain.TypeLand,
		Details: &domain.PropertyDetails{
			AmountDue:     &amountDue,
			AssessedValue: &assessed,
		},
		AuctionDetails: &domain.AuctionDetails{
			AuctionName: "Miami-Dade Tax Certificate Sale",
			AuctionDate: time.Now().AddDate(0, 1, 0).Format("2006-01-02"),
		},
	}
	draft.Recalculate()

	for _, override := range overrides {
		override(&draft)
	}

	return draft
}

// CreateTestProperty creates a stored test property
func CreateTestProperty(overrides ...func(*domain.Property)) *domain.Property {
	p := &domain.Property{
		ID:            "prop-001",
		PropertyDraft: CreateTestDraft(),
		CreatedAt:     time.Now().AddDate(0, 0, -7),
		UpdatedAt:     time.Now(),
	}

	for _, override := range overrides {
		override(p)
	}

	return p
}

// CreateTestProperties creates multiple stored test properties
func CreateTestProperties(count int) []domain.Property {
	states := []string{"FL", "TX", "OH", "GA", "AZ"}
	counties := []string{"Miami-Dade", "Harris", "Cuyahoga", "Fulton", "Maricopa"}

	items := make([]domain.Property, count)
	for i := 0; i < count; i++ {
		p := CreateTestProperty(func(p *domain.Property) {
			p.ID = fmt.Sprintf("prop-%03d", i+1)
			p.State = states[i%len(states)]
			p.County = counties[i%len(counties)]
			p.ParcelID = fmt.Sprintf("%05d-%03d", 10000+i, i+1)
			p.Recalculate()
		})
		items[i] = *p
	}
	return items
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp("", fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")

	file.Close()

	t.Cleanup(func() {
		os.Remove(file.Name())
	})

	return file.Name()
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}
