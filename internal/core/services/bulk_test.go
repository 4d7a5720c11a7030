// internal/core/services/bulk_test.go
package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
	"github.com/GGT-dev-tech/auctionos/internal/core/services"
	"github.com/GGT-dev-tech/auctionos/test/helpers"
	"github.com/GGT-dev-tech/auctionos/test/mocks"
)

func acceptAll(ports.BulkAction, int) bool  { return true }
func declineAll(ports.BulkAction, int) bool { return false }

func TestBulkController_SelectionTracksVisibleRows(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := services.NewBulkController(mocks.NewMockPropertyAPI(ctrl), acceptAll, nil, helpers.TestLogger())
	props := helpers.CreateTestProperties(4)
	b.SetVisible(props)

	b.ToggleAll(true)
	assert.Equal(t, 4, b.SelectionCount())

	b.ToggleOne(props[1].ID, false)
	assert.Equal(t, 3, b.SelectionCount())
	assert.False(t, b.IsSelected(props[1].ID))

	// Selected ids come back in row order, not map order.
	assert.Equal(t, []string{props[0].ID, props[2].ID, props[3].ID}, b.Selected())

	// A page change drops selections that scrolled away.
	b.SetVisible(props[:2])
	assert.Equal(t, []string{props[0].ID}, b.Selected())

	b.ToggleAll(false)
	assert.Zero(t, b.SelectionCount())
}

func TestBulkController_ApplyIsSingleBatchedRequest(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	props := helpers.CreateTestProperties(3)
	ids := []string{props[0].ID, props[1].ID, props[2].ID}

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().
		BulkUpdate(gomock.Any(), ids, ports.BulkUpdateStatus, domain.PropertySold).
		Return(nil).
		Times(1)

	refreshed := false
	b := services.NewBulkController(api, acceptAll, func() { refreshed = true }, helpers.TestLogger())
	b.SetVisible(props)
	b.ToggleAll(true)

	require.NoError(t, b.Apply(context.Background(), ports.BulkUpdateStatus, domain.PropertySold))
	assert.Zero(t, b.SelectionCount(), "selection clears after success")
	assert.True(t, refreshed, "owning list reloads after a bulk action")
}

func TestBulkController_ApplyEmptySelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := services.NewBulkController(mocks.NewMockPropertyAPI(ctrl), acceptAll, nil, helpers.TestLogger())
	b.SetVisible(helpers.CreateTestProperties(2))

	err := b.Apply(context.Background(), ports.BulkDelete, "")
	assert.ErrorIs(t, err, services.ErrEmptySelection)
}

func TestBulkController_DeclinedConfirmationKeepsSelection(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	b := services.NewBulkController(mocks.NewMockPropertyAPI(ctrl), declineAll, nil, helpers.TestLogger())
	b.SetVisible(helpers.CreateTestProperties(2))
	b.ToggleAll(true)

	err := b.Apply(context.Background(), ports.BulkDelete, "")
	assert.ErrorIs(t, err, services.ErrActionDeclined)
	assert.Equal(t, 2, b.SelectionCount())
}

func TestBulkController_FailureKeepsSelectionForRetry(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().
		BulkUpdate(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("gateway timeout"))

	b := services.NewBulkController(api, acceptAll, nil, helpers.TestLogger())
	b.SetVisible(helpers.CreateTestProperties(3))
	b.ToggleAll(true)

	err := b.Apply(context.Background(), ports.BulkUpdateStatus, domain.PropertyActive)
	require.Error(t, err)
	assert.Equal(t, 3, b.SelectionCount(), "failed action must not clear the selection")
}

func TestBulkController_DeleteOneOptimisticRollback(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	props := helpers.CreateTestProperties(4)
	target := props[2]

	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().Delete(gomock.Any(), target.ID).Return(errors.New("conflict"))

	b := services.NewBulkController(api, acceptAll, nil, helpers.TestLogger())
	b.SetVisible(props)

	err := b.DeleteOne(context.Background(), target.ID)
	require.Error(t, err)

	visible := b.Visible()
	require.Len(t, visible, 4, "row is restored after the failed delete")
	assert.Equal(t, target.ID, visible[2].ID, "row returns to its original position")
}

func TestBulkController_DeleteOneSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	props := helpers.CreateTestProperties(3)
	api := mocks.NewMockPropertyAPI(ctrl)
	api.EXPECT().Delete(gomock.Any(), props[0].ID).Return(nil)

	b := services.NewBulkController(api, acceptAll, nil, helpers.TestLogger())
	b.SetVisible(props)
	b.ToggleOne(props[0].ID, true)

	require.NoError(t, b.DeleteOne(context.Background(), props[0].ID))
	assert.Len(t, b.Visible(), 2)
	assert.False(t, b.IsSelected(props[0].ID))
}
