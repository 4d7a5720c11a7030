// internal/core/services/bulk.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

var (
	// ErrEmptySelection is returned when a bulk action is applied with
	// nothing selected.
	ErrEmptySelection = errors.New("no properties selected")
	// ErrActionDeclined is returned when the confirmation callback
	// rejects a bulk action.
	ErrActionDeclined = errors.New("bulk action declined")
)

// ConfirmFunc asks the user to confirm a bulk action over count rows.
type ConfirmFunc func(action ports.BulkAction, count int) bool

// BulkController manages row selection over the currently visible page
// and applies batched actions to it. Whatever the selection size, an
// action is always a single request; on failure the selection is kept
// so the user can retry without re-picking rows.
type BulkController struct {
	api     ports.PropertyAPI
	confirm ConfirmFunc
	refresh func()
	logger  *slog.Logger

	mu       sync.Mutex
	visible  []domain.Property
	selected map[string]struct{}
}

// NewBulkController creates a controller with an empty selection.
// refresh is invoked after a successful bulk action so the owning list
// reloads; it may be nil.
func NewBulkController(api ports.PropertyAPI, confirm ConfirmFunc, refresh func(), logger *slog.Logger) *BulkController {
	return &BulkController{
		api:      api,
		confirm:  confirm,
		refresh:  refresh,
		logger:   logger.With(slog.String("controller", "bulk")),
		selected: make(map[string]struct{}),
	}
}

// SetVisible replaces the visible page. Selected ids that are no longer
// on the page are dropped so actions never touch hidden rows.
func (b *BulkController) SetVisible(items []domain.Property) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.visible = slices.Clone(items)
	present := make(map[string]struct{}, len(items))
	for _, p := range items {
		present[p.ID] = struct{}{}
	}
	for id := range b.selected {
		if _, ok := present[id]; !ok {
			delete(b.selected, id)
		}
	}
}

// Visible returns the current page.
func (b *BulkController) Visible() []domain.Property {
	b.mu.Lock()
	defer b.mu.Unlock()
	return slices.Clone(b.visible)
}

// ToggleAll selects or clears every visible row.
func (b *BulkController) ToggleAll(checked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !checked {
		clear(b.selected)
		return
	}
	for _, p := range b.visible {
		b.selected[p.ID] = struct{}{}
	}
}

// ToggleOne selects or clears a single row.
func (b *BulkController) ToggleOne(id string, checked bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if checked {
		b.selected[id] = struct{}{}
	} else {
		delete(b.selected, id)
	}
}

// IsSelected reports whether a row is selected.
func (b *BulkController) IsSelected(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.selected[id]
	return ok
}

// Selected returns the selected ids in visible row order.
func (b *BulkController) Selected() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selectedLocked()
}

func (b *BulkController) selectedLocked() []string {
	ids := make([]string, 0, len(b.selected))
	for _, p := range b.visible {
		if _, ok := b.selected[p.ID]; ok {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

// SelectionCount returns the number of selected rows.
func (b *BulkController) SelectionCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.selected)
}

// Apply runs a bulk action over the current selection as one batched
// request. A declined confirmation leaves the selection untouched, as
// does a failed request; success clears it and triggers a refresh.
func (b *BulkController) Apply(ctx context.Context, action ports.BulkAction, status domain.PropertyStatus) error {
	b.mu.Lock()
	ids := b.selectedLocked()
	b.mu.Unlock()

	if len(ids) == 0 {
		return ErrEmptySelection
	}
	if b.confirm != nil && !b.confirm(action, len(ids)) {
		return ErrActionDeclined
	}

	if err := b.api.BulkUpdate(ctx, ids, action, status); err != nil {
		b.logger.ErrorContext(ctx, "bulk action failed",
			slog.String("action", string(action)),
			slog.Int("count", len(ids)),
			slog.Any("error", err))
		return fmt.Errorf("bulk %s of %d properties failed: %w", action, len(ids), err)
	}

	b.mu.Lock()
	clear(b.selected)
	b.mu.Unlock()

	b.logger.InfoContext(ctx, "bulk action applied",
		slog.String("action", string(action)),
		slog.Int("count", len(ids)))
	if b.refresh != nil {
		b.refresh()
	}
	return nil
}

// DeleteOne removes a single row optimistically: the row disappears
// before the request is issued and is restored at its original position
// if the request fails.
func (b *BulkController) DeleteOne(ctx context.Context, id string) error {
	b.mu.Lock()
	idx := slices.IndexFunc(b.visible, func(p domain.Property) bool { return p.ID == id })
	if idx < 0 {
		b.mu.Unlock()
		return fmt.Errorf("property %s is not on the current page", id)
	}
	removed := b.visible[idx]
	b.visible = slices.Delete(slices.Clone(b.visible), idx, idx+1)
	delete(b.selected, id)
	b.mu.Unlock()

	if err := b.api.Delete(ctx, id); err != nil {
		b.mu.Lock()
		b.visible = slices.Insert(slices.Clone(b.visible), min(idx, len(b.visible)), removed)
		b.mu.Unlock()
		return fmt.Errorf("failed to delete property %s: %w", id, err)
	}

	b.logger.InfoContext(ctx, "property deleted", slog.String("property_id", id))
	return nil
}
