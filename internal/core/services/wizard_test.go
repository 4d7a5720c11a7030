// internal/core/services/wizard_test.go
package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
	"github.com/GGT-dev-tech/auctionos/test/mocks"
)

func TestPropertyWizard_CreatesExactlyOnceBeforeMediaStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockPropertyAPI(ctrl)
	created := helpers.CreateTestProperty()
	api.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(created, nil).
		Times(1)

	w := services.NewPropertyWizard(api, helpers.TestLogger())
	require.Equal(t, services.StepBasicInfo, w.Step())

	require.NoError(t, w.Update(helpers.CreateTestDraft()))
	require.NoError(t, w.Advance(context.Background()))
	require.Equal(t, services.StepFinancials, w.Step())
	assert.Empty(t, w.PersistedID(), "no record exists before leaving financials")

	require.NoError(t, w.Advance(context.Background()))
	assert.Equal(t, services.StepMedia, w.Step())
	assert.Equal(t, created.ID, w.PersistedID(), "media step has a real record id")
}

func TestPropertyWizard_CreateFailureStaysOnStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("service unavailable"))

	w := services.NewPropertyWizard(api, helpers.TestLogger())
	require.NoError(t, w.Update(helpers.CreateTestDraft()))
	require.NoError(t, w.Advance(context.Background()))

	err := w.Advance(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.StepFinancials, w.Step(), "failed save must not advance")
	assert.Empty(t, w.PersistedID())
	assert.Equal(t, helpers.CreateTestDraft().ParcelID, w.Draft().ParcelID, "draft survives the failure")
}

func TestPropertyWizard_AdvanceNotReentrant(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	started := make(chan struct{})
	release := make(chan struct{})

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, draft domain.PropertyDraft) (*domain.Property, error) {
			close(started)
			<-release
			return helpers.CreateTestProperty(), nil
		}).
		Times(1)

	w := services.NewPropertyWizard(api, helpers.TestLogger())
	require.NoError(t, w.Update(helpers.CreateTestDraft()))
	require.NoError(t, w.Advance(context.Background()))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		assert.NoError(t, w.Advance(context.Background()))
	}()

	<-started
	assert.True(t, w.Persisting())
	assert.ErrorIs(t, w.Advance(context.Background()), services.ErrPersistInFlight)
	assert.ErrorIs(t, w.Retreat(), services.ErrPersistInFlight)
	assert.ErrorIs(t, w.SaveDraft(context.Background()), services.ErrPersistInFlight)

	close(release)
	wg.Wait()
	assert.Equal(t, services.StepMedia, w.Step())
}

func TestPropertyWizard_FinalStepUpdatesAndCompletes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockPropertyAPI(ctrl)
	created := helpers.CreateTestProperty()
	api.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil).Times(1)
	api.EXPECT().
		Update(gomock.Any(), created.ID, gomock.Any()).
		Return(created, nil).
		Times(1)

	w := services.NewPropertyWizard(api, helpers.TestLogger())
	var completedID string
	w.SetOnComplete(func(id string) { completedID = id })

	require.NoError(t, w.Update(helpers.CreateTestDraft()))
	for w.Step() != services.StepNotes {
		require.NoError(t, w.Advance(context.Background()))
	}
	require.NoError(t, w.Advance(context.Background()))

	assert.Equal(t, created.ID, completedID, "completion callback carries the record id")
}

func TestPropertyWizard_EditModeNeverCreates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	existing := helpers.CreateTestProperty()
	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().Get(gomock.Any(), existing.ID).Return(existing, nil)
	api.EXPECT().
		Update(gomock.Any(), existing.ID, gomock.Any()).
		Return(existing, nil).
		Times(1)

	w, err := services.LoadPropertyWizard(context.Background(), api, existing.ID, helpers.TestLogger())
	require.NoError(t, err)
	assert.Equal(t, existing.ID, w.PersistedID())
	assert.Equal(t, existing.ParcelID, w.Draft().ParcelID)

	for w.Step() != services.StepNotes {
		require.NoError(t, w.Advance(context.Background()))
	}
	require.NoError(t, w.Advance(context.Background()))
}

func TestPropertyWizard_LoadFailureIsTerminal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().Get(gomock.Any(), "missing").Return(nil, errors.New("not found"))

	w, err := services.LoadPropertyWizard(context.Background(), api, "missing", helpers.TestLogger())
	require.Error(t, err)
	assert.Nil(t, w)
}

func TestPropertyWizard_FinalValidationRejectsBadDraft(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	created := helpers.CreateTestProperty()
	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().Create(gomock.Any(), gomock.Any()).Return(created, nil).Times(1)

	// A draft missing its parcel id can still be saved as a work in
	// progress, but the final submit must reject it without touching
	// the API.
	w := services.NewPropertyWizard(api, helpers.TestLogger())
	incomplete := helpers.CreateTestDraft(func(d *domain.PropertyDraft) {
		d.ParcelID = ""
		d.Recalculate()
	})
	require.NoError(t, w.Update(incomplete))
	for w.Step() != services.StepNotes {
		require.NoError(t, w.Advance(context.Background()))
	}

	err := w.Advance(context.Background())
	require.Error(t, err)
	assert.Equal(t, services.StepNotes, w.Step())
}

func TestPropertyWizard_RetreatFromFirstStepCancels(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockPropertyAPI(ctrl)
	w := services.NewPropertyWizard(api, helpers.TestLogger())

	cancelled := false
	w.SetOnCancel(func() { cancelled = true })

	require.NoError(t, w.Retreat())
	assert.True(t, cancelled)
	assert.Equal(t, services.StepBasicInfo, w.Step())
}
