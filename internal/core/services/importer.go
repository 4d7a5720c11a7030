// internal/core/services/importer.go
package services

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v3"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// RowError records a spreadsheet row that could not be turned into a
// property draft, with a reason suitable for the import report.
type RowError struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// ParseResult is the outcome of parsing an import file: usable drafts
// plus the rows that were skipped.
type ParseResult struct {
	Drafts  []domain.PropertyDraft
	Skipped []RowError
}

// column headers recognized in import files, normalized to lowercase
// with underscores.
const (
	colParcelID      = "parcel_id"
	colState         = "state"
	colCounty        = "county"
	colAddress       = "address"
	colCity          = "city"
	colZipCode       = "zip_code"
	colOwnerName     = "owner_name"
	colPropertyType  = "property_type"
	colStatus        = "status"
	colAuctionDate   = "auction_date"
	colAuctionName   = "auction_name"
	colAmountDue     = "amount_due"
	colAssessedValue = "assessed_value"
	colLotAcres      = "lot_acres"
	colOccupancy     = "occupancy"
	colNotes         = "notes"
)

// ParseCSV reads a header-mapped CSV file into property drafts. Columns
// are matched by header name, not position, so exports from different
// county systems import unchanged. Rows missing the required parcel,
// state, or county are reported in Skipped rather than failing the
// whole file.
func ParseCSV(r io.Reader) (*ParseResult, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}
	cols := mapHeader(header)
	if _, ok := cols[colParcelID]; !ok {
		return nil, fmt.Errorf("CSV header is missing the %s column", colParcelID)
	}

	result := &ParseResult{}
	rowNum := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok || i >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[i])
		}
		draft, err := draftFromRow(get)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			continue
		}
		result.Drafts = append(result.Drafts, draft)
	}
	return result, nil
}

// ParseXLSX reads the first sheet of an Excel workbook into property
// drafts, with the same header mapping as ParseCSV.
func ParseXLSX(filePath string) (*ParseResult, error) {
	file, err := xlsx.OpenFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open Excel file: %w", err)
	}
	if len(file.Sheets) == 0 {
		return nil, fmt.Errorf("Excel file has no sheets")
	}

	result := &ParseResult{}
	var cols map[string]int
	rowNum := 0

	sheet := file.Sheets[0]
	err = sheet.ForEachRow(func(r *xlsx.Row) error {
		rowNum++

		cell := func(i int) string {
			c := r.GetCell(i)
			if c == nil {
				return ""
			}
			return strings.TrimSpace(c.String())
		}

		if cols == nil {
			var header []string
			for i := 0; i < 64; i++ {
				header = append(header, cell(i))
			}
			cols = mapHeader(header)
			if _, ok := cols[colParcelID]; !ok {
				return fmt.Errorf("sheet header is missing the %s column", colParcelID)
			}
			return nil
		}

		get := func(name string) string {
			i, ok := cols[name]
			if !ok {
				return ""
			}
			return cell(i)
		}
		draft, err := draftFromRow(get)
		if err != nil {
			result.Skipped = append(result.Skipped, RowError{Row: rowNum, Reason: err.Error()})
			return nil
		}
		result.Drafts = append(result.Drafts, draft)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to process Excel rows: %w", err)
	}
	return result, nil
}

func mapHeader(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.ToLower(strings.TrimSpace(h))
		name = strings.ReplaceAll(name, " ", "_")
		if name != "" {
			cols[name] = i
		}
	}
	return cols
}

// draftFromRow builds a draft from a header-keyed accessor. The merge
// recomputes the smart tag and date-derived status, so imported rows
// get the same derived fields as drafts typed into the form.
func draftFromRow(get func(name string) string) (domain.PropertyDraft, error) {
	var draft domain.PropertyDraft

	partial := domain.PropertyDraft{
		ParcelID:     get(colParcelID),
		State:        strings.ToUpper(get(colState)),
		County:       get(colCounty),
		Address:      get(colAddress),
		City:         get(colCity),
		ZipCode:      get(colZipCode),
		OwnerName:    get(colOwnerName),
		PropertyType: domain.PropertyType(strings.ToLower(get(colPropertyType))),
		Status:       domain.PropertyStatus(strings.ToLower(get(colStatus))),
		Notes:        get(colNotes),
	}

	details := &domain.PropertyDetails{}
	hasDetails := false
	if d, ok := parseMoney(get(colAmountDue)); ok {
		details.AmountDue = &d
		hasDetails = true
	}
	if d, ok := parseMoney(get(colAssessedValue)); ok {
		details.AssessedValue = &d
		hasDetails = true
	}
	if acres := get(colLotAcres); acres != "" {
		if f, err := strconv.ParseFloat(acres, 64); err == nil {
			details.LotAcres = &f
			hasDetails = true
		}
	}
	if occ := get(colOccupancy); occ != "" {
		details.Occupancy = &occ
		hasDetails = true
	}
	if hasDetails {
		partial.Details = details
	}

	if date := get(colAuctionDate); date != "" || get(colAuctionName) != "" {
		partial.AuctionDetails = &domain.AuctionDetails{
			AuctionName: get(colAuctionName),
			AuctionDate: date,
		}
	}

	draft.Merge(partial)
	if err := draft.Validate(); err != nil {
		return domain.PropertyDraft{}, err
	}
	return draft, nil
}

func parseMoney(s string) (decimal.Decimal, bool) {
	s = strings.TrimSpace(strings.TrimPrefix(s, "$"))
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, false
	}
	return d, true
}

// Importer pushes parsed drafts to the API one record at a time,
// tracking per-row progress so the UI can poll the job.
type Importer struct {
	api      ports.PropertyAPI
	progress ports.ProgressStore
	logger   *slog.Logger
}

// NewImporter creates an importer.
func NewImporter(api ports.PropertyAPI, progress ports.ProgressStore, logger *slog.Logger) *Importer {
	return &Importer{
		api:      api,
		progress: progress,
		logger:   logger.With(slog.String("service", "importer")),
	}
}

// Run imports the parsed file under the given job id. Rows that fail to
// create are counted and logged but do not abort the run; the job fails
// only when the context is cancelled or the progress store breaks.
func (im *Importer) Run(ctx context.Context, jobID string, parsed *ParseResult) error {
	total := len(parsed.Drafts) + len(parsed.Skipped)
	if err := im.progress.SetState(ctx, jobID, ports.JobRunning, ""); err != nil {
		return fmt.Errorf("failed to mark job %s running: %w", jobID, err)
	}
	for _, skip := range parsed.Skipped {
		im.logger.WarnContext(ctx, "skipped import row",
			slog.String("job_id", jobID),
			slog.Int("row", skip.Row),
			slog.String("reason", skip.Reason))
		if err := im.progress.AddFailed(ctx, jobID, 1); err != nil {
			return fmt.Errorf("failed to record skipped row: %w", err)
		}
	}

	for _, draft := range parsed.Drafts {
		if err := ctx.Err(); err != nil {
			im.fail(ctx, jobID, err)
			return err
		}

		if _, err := im.api.Create(ctx, draft); err != nil {
			im.logger.WarnContext(ctx, "failed to import property",
				slog.String("job_id", jobID),
				slog.String("parcel_id", draft.ParcelID),
				slog.Any("error", err))
			if perr := im.progress.AddFailed(ctx, jobID, 1); perr != nil {
				return fmt.Errorf("failed to record failed row: %w", perr)
			}
			continue
		}
		if err := im.progress.AddImported(ctx, jobID, 1); err != nil {
			return fmt.Errorf("failed to record imported row: %w", err)
		}
	}

	if err := im.progress.SetState(ctx, jobID, ports.JobCompleted, ""); err != nil {
		return fmt.Errorf("failed to mark job %s completed: %w", jobID, err)
	}
	im.logger.InfoContext(ctx, "import completed",
		slog.String("job_id", jobID),
		slog.Int("total", total),
		slog.Int("imported", len(parsed.Drafts)),
		slog.Int("skipped", len(parsed.Skipped)))
	return nil
}

func (im *Importer) fail(ctx context.Context, jobID string, cause error) {
	if err := im.progress.SetState(ctx, jobID, ports.JobFailed, cause.Error()); err != nil {
		im.logger.ErrorContext(ctx, "failed to mark job failed",
			slog.String("job_id", jobID),
			slog.Any("error", err))
	}
}
