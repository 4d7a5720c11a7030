// internal/workers/pdf_processor.go
package workers

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"github.com/hibiken/asynq"
	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
)

// ProcessPDF imports a county auction list published as PDF. Each
// listing line carries a parcel number, a street address, and the
// amount due; the county, state, and sale date come from the job
// payload since auction lists never repeat them per row.
func (p *ImportProcessor) ProcessPDF(ctx context.Context, t *asynq.Task) error {
	return p.process(ctx, t, func(payload ImportJobPayload, filePath string) (*services.ParseResult, error) {
		if payload.State == "" || payload.County == "" {
			return nil, fmt.Errorf("PDF imports require a state and county for job %s", payload.JobID)
		}
		lines, err := extractPDFLines(ctx, filePath, p.logger)
		if err != nil {
			return nil, err
		}
		return parseAuctionList(lines, payload), nil
	})
}

func extractPDFLines(ctx context.Context, filePath string, logger *slog.Logger) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	totalPages := r.NumPage()

	for pageNum := 1; pageNum <= totalPages; pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.WarnContext(ctx, "failed to extract text from page",
				slog.Int("page", pageNum),
				slog.Any("error", err))
			continue
		}

		lines = append(lines, strings.Split(text, "\n")...)
	}
	return lines, nil
}

var (
	// Parcel numbers are digit groups joined by dashes or dots, at
	// least five digits overall. Matches at line start only, so lot
	// dimensions inside descriptions don't trigger.
	parcelRe = regexp.MustCompile(`^([0-9]{2,}[-.][0-9-.]{3,}|[0-9]{5,})\b`)
	amountRe = regexp.MustCompile(`\$?\s*\d{1,3}(?:,\d{3})*\.\d{2}\s*$`)
	footerRe = regexp.MustCompile(`(?i)(page \d+|total parcels|certified to)`)
)

// parseAuctionList turns extracted text lines into drafts. A listing
// starts with a parcel number; continuation lines extend the address
// until the amount due closes the entry.
func parseAuctionList(lines []string, payload ImportJobPayload) *services.ParseResult {
	result := &services.ParseResult{}

	var (
		parcel   string
		addrBuf  []string
		startRow int
	)

	flush := func(amount *decimal.Decimal, row int) {
		if parcel == "" {
			return
		}
		partial := domain.PropertyDraft{
			ParcelID: parcel,
			State:    strings.ToUpper(payload.State),
			County:   payload.County,
			Address:  strings.Join(addrBuf, " "),
		}
		if amount != nil || payload.AuctionDate != "" || payload.AuctionName != "" {
			partial.AuctionDetails = &domain.AuctionDetails{
				AuctionName: payload.AuctionName,
				AuctionDate: payload.AuctionDate,
			}
		}
		if amount != nil {
			partial.Details = &domain.PropertyDetails{AmountDue: amount}
		}

		var draft domain.PropertyDraft
		draft.Merge(partial)
		if err := draft.Validate(); err != nil {
			result.Skipped = append(result.Skipped, services.RowError{Row: row, Reason: err.Error()})
		} else {
			result.Drafts = append(result.Drafts, draft)
		}
		parcel = ""
		addrBuf = addrBuf[:0]
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" || footerRe.MatchString(line) {
			continue
		}

		if m := parcelRe.FindString(line); m != "" {
			// A new parcel closes any entry still open without an
			// amount.
			flush(nil, startRow)
			parcel = m
			startRow = i + 1
			line = strings.TrimSpace(strings.TrimPrefix(line, m))
			if line == "" {
				continue
			}
		}
		if parcel == "" {
			continue
		}

		if amtStr := amountRe.FindString(line); amtStr != "" {
			rest := strings.TrimSpace(amountRe.ReplaceAllString(line, ""))
			if rest != "" {
				addrBuf = append(addrBuf, rest)
			}
			amount := parseAmount(amtStr)
			flush(&amount, startRow)
			continue
		}

		addrBuf = append(addrBuf, line)
	}
	flush(nil, startRow)

	return result
}

func parseAmount(val string) decimal.Decimal {
	cleaned := strings.ReplaceAll(val, "$", "")
	cleaned = strings.ReplaceAll(cleaned, ",", "")
	cleaned = strings.TrimSpace(cleaned)

	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero
	}
	return d
}
