// internal/workers/import_processor_test.go
package workers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GGT-dev-tech/auctionos/internal/adapters/storage"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
	"github.com/GGT-dev-tech/auctionos/test/mocks"
)

func TestNewImportTask(t *testing.T) {
	tests := []struct {
		name     string
		fileName string
		wantType string
		wantErr  bool
	}{
		{name: "csv", fileName: "parcels.csv", wantType: TypeCSVImport},
		{name: "xlsx", fileName: "Parcels.XLSX", wantType: TypeXLSXImport},
		{name: "pdf", fileName: "auction_list.pdf", wantType: TypePDFImport},
		{name: "unsupported", fileName: "parcels.docx", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task, err := NewImportTask(ImportJobPayload{
				JobID:    "job-1",
				Source:   "s3://bucket/key",
				FileName: tt.fileName,
			})
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, task.Type())
		})
	}
}

func TestImportProcessor_ProcessCSV(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	src, err := storage.NewLocalSource(t.TempDir(), helpers.TestLogger())
	require.NoError(t, err)

	csv := "parcel_id,state,county\n123-456,FL,Miami-Dade\n789,IL,Cook\n"
	source, err := src.Stage(context.Background(), "parcels.csv", strings.NewReader(csv))
	require.NoError(t, err)

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().Create(gomock.Any(), gomock.Any()).Return(helpers.CreateTestProperty(), nil).Times(2)

	progress := mocks.NewMockProgressStore(ctrl)
	progress.EXPECT().Get(gomock.Any(), "job-1").Return(nil, ports.ErrJobNotFound)
	progress.EXPECT().Put(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, p ports.ImportProgress) error {
			assert.Equal(t, int64(2), p.Total)
			assert.Equal(t, ports.JobRunning, p.State)
			return nil
		})
	progress.EXPECT().SetState(gomock.Any(), "job-1", ports.JobRunning, "").Return(nil)
	progress.EXPECT().AddImported(gomock.Any(), "job-1", int64(1)).Return(nil).Times(2)
	progress.EXPECT().SetState(gomock.Any(), "job-1", ports.JobCompleted, "").Return(nil)

	importer := services.NewImporter(api, progress, helpers.TestLogger())
	proc := NewImportProcessor(importer, src, progress, helpers.TestLogger())

	task, err := NewImportTask(ImportJobPayload{
		JobID:    "job-1",
		Source:   source,
		FileName: "parcels.csv",
	})
	require.NoError(t, err)

	require.NoError(t, proc.ProcessCSV(context.Background(), task))
}

func TestParseAuctionList(t *testing.T) {
	lines := []string{
		"MIAMI-DADE COUNTY NOVEMBER TAX DEED SALE",
		"01-3136-009-0120 1420 NW 3RD AVE",
		"MIAMI FL 33136 $4,250.50",
		"30-5928-001-0330 VACANT LOT SW 8TH ST 1,800.00",
		"Page 1",
		"09990 NO AMOUNT PARCEL",
	}

	result := parseAuctionList(lines, ImportJobPayload{
		State:       "fl",
		County:      "Miami-Dade",
		AuctionName: "November Tax Deed Sale",
		AuctionDate: "2026-11-02",
	})

	require.Len(t, result.Drafts, 3)

	first := result.Drafts[0]
	assert.Equal(t, "01-3136-009-0120", first.ParcelID)
	assert.Equal(t, "FL", first.State)
	assert.Equal(t, "1420 NW 3RD AVE MIAMI FL 33136", first.Address)
	require.NotNil(t, first.Details)
	assert.Equal(t, "4250.5", first.Details.AmountDue.String())
	require.NotNil(t, first.AuctionDetails)
	assert.Equal(t, "2026-11-02", first.AuctionDetails.AuctionDate)
	assert.Equal(t, "FL-MIAMI-DADE-01-3136-009-0120", first.SmartTag)

	second := result.Drafts[1]
	assert.Equal(t, "30-5928-001-0330", second.ParcelID)
	assert.Equal(t, "1800", second.Details.AmountDue.String())

	// An entry without an amount still imports with the payload's
	// auction context.
	third := result.Drafts[2]
	assert.Equal(t, "09990", third.ParcelID)
	assert.Nil(t, third.Details)
}
