// internal/core/services/wizard.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/GGT-dev-tech/auctionos/internal/core/domain"
	"github.com/GGT-dev-tech/auctionos/internal/core/ports"
)

// WizardStep identifies one of the five property form steps.
type WizardStep int

const (
	StepBasicInfo WizardStep = iota + 1
	StepFinancials
	StepMedia
	StepAuction
	StepNotes
)

// String returns the step label shown in the stepper UI.
func (s WizardStep) String() string {
	switch s {
	case StepBasicInfo:
		return "Basic Info"
	case StepFinancials:
		return "Financials"
	case StepMedia:
		return "Media"
	case StepAuction:
		return "Auction"
	case StepNotes:
		return "Notes & Review"
	default:
		return fmt.Sprintf("Step %d", int(s))
	}
}

// ErrPersistInFlight is returned when navigation or a save is attempted
// while a create/update call for the draft is still outstanding.
var ErrPersistInFlight = errors.New("a save for this draft is already in progress")

// PropertyWizard drives the multi-step property form. The draft is
// persisted for the first time when leaving the financials step, so the
// media step always has a real record id to attach uploads to. From
// that point on every save is an update against the same record: the
// flow can never create duplicates.
type PropertyWizard struct {
	api      ports.PropertyAPI
	validate *validator.Validate
	logger   *slog.Logger

	mu          sync.Mutex
	step        WizardStep
	draft       domain.PropertyDraft
	persistedID string
	persisting  bool
	onComplete  func(propertyID string)
	onCancel    func()
}

// NewPropertyWizard starts a create flow with an empty draft on the
// first step.
func NewPropertyWizard(api ports.PropertyAPI, logger *slog.Logger) *PropertyWizard {
	return &PropertyWizard{
		api:      api,
		validate: validator.New(),
		logger:   logger.With(slog.String("controller", "property_wizard")),
		step:     StepBasicInfo,
	}
}

// LoadPropertyWizard starts an edit flow seeded from the stored record.
// A load failure is terminal: the caller should surface the error and
// not open the form.
func LoadPropertyWizard(ctx context.Context, api ports.PropertyAPI, propertyID string, logger *slog.Logger) (*PropertyWizard, error) {
	record, err := api.Get(ctx, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to load property %s for editing: %w", propertyID, err)
	}

	w := NewPropertyWizard(api, logger)
	w.draft = record.PropertyDraft
	w.persistedID = record.ID
	return w, nil
}

// SetOnComplete registers the callback invoked with the record id after
// the final step persists successfully.
func (w *PropertyWizard) SetOnComplete(fn func(propertyID string)) {
	w.mu.Lock()
	w.onComplete = fn
	w.mu.Unlock()
}

// SetOnCancel registers the callback invoked when the user retreats
// past the first step.
func (w *PropertyWizard) SetOnCancel(fn func()) {
	w.mu.Lock()
	w.onCancel = fn
	w.mu.Unlock()
}

// Step returns the current step.
func (w *PropertyWizard) Step() WizardStep {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the working draft.
func (w *PropertyWizard) Draft() domain.PropertyDraft {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft
}

// PersistedID returns the record id once the draft has been created
// server-side, or "" while it only exists locally.
func (w *PropertyWizard) PersistedID() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.persistedID
}

// Persisting reports whether a save is currently in flight.
func (w *PropertyWizard) Persisting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.persisting
}

// Update merges the partial form values from the current step into the
// draft. Derived fields (smart tag, date-based status) are recomputed
// by the merge itself.
func (w *PropertyWizard) Update(partial domain.PropertyDraft) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.persisting {
		return ErrPersistInFlight
	}
	w.draft.Merge(partial)
	return nil
}

// Advance moves to the next step. Leaving the financials step on a new
// draft performs the initial create; completing the last step performs
// the final save and invokes the completion callback. On any
// persistence failure the wizard stays on the current step with the
// draft intact.
func (w *PropertyWizard) Advance(ctx context.Context) error {
	w.mu.Lock()
	if w.persisting {
		w.mu.Unlock()
		return ErrPersistInFlight
	}

	switch {
	case w.step == StepFinancials && w.persistedID == "":
		return w.createLocked(ctx, w.step+1, false)

	case w.step == StepNotes:
		if err := w.validateLocked(); err != nil {
			w.mu.Unlock()
			return err
		}
		if w.persistedID == "" {
			return w.createLocked(ctx, w.step, true)
		}
		return w.updateLocked(ctx, true)

	default:
		w.step++
		w.mu.Unlock()
		return nil
	}
}

// Retreat moves to the previous step, or cancels the flow from the
// first step.
func (w *PropertyWizard) Retreat() error {
	w.mu.Lock()
	if w.persisting {
		w.mu.Unlock()
		return ErrPersistInFlight
	}
	if w.step > StepBasicInfo {
		w.step--
		w.mu.Unlock()
		return nil
	}
	cb := w.onCancel
	w.mu.Unlock()
	if cb != nil {
		cb()
	}
	return nil
}

// SaveDraft persists the current draft without changing steps, creating
// the record if it does not exist yet.
func (w *PropertyWizard) SaveDraft(ctx context.Context) error {
	w.mu.Lock()
	if w.persisting {
		w.mu.Unlock()
		return ErrPersistInFlight
	}
	if w.persistedID == "" {
		return w.createLocked(ctx, w.step, false)
	}
	return w.updateLocked(ctx, false)
}

// createLocked issues the initial create. Called with the lock held;
// releases it before the network call and restores the persisting flag
// on both paths. nextStep is entered only on success; final marks the
// last-step save that completes the flow.
func (w *PropertyWizard) createLocked(ctx context.Context, nextStep WizardStep, final bool) error {
	w.persisting = true
	draft := w.draft
	w.mu.Unlock()

	created, err := w.api.Create(ctx, draft)

	w.mu.Lock()
	w.persisting = false
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to save property draft: %w", err)
	}
	w.persistedID = created.ID
	w.step = nextStep
	cb := w.onComplete
	w.mu.Unlock()

	w.logger.InfoContext(ctx, "property draft persisted",
		slog.String("property_id", created.ID),
		slog.String("smart_tag", created.SmartTag))
	if final && cb != nil {
		cb(created.ID)
	}
	return nil
}

// updateLocked issues an update for an already persisted draft. final
// marks the last-step save that completes the flow.
func (w *PropertyWizard) updateLocked(ctx context.Context, final bool) error {
	w.persisting = true
	draft := w.draft
	id := w.persistedID
	w.mu.Unlock()

	_, err := w.api.Update(ctx, id, draft)

	w.mu.Lock()
	w.persisting = false
	if err != nil {
		w.mu.Unlock()
		return fmt.Errorf("failed to update property %s: %w", id, err)
	}
	cb := w.onComplete
	w.mu.Unlock()

	if final {
		w.logger.InfoContext(ctx, "property saved", slog.String("property_id", id))
		if cb != nil {
			cb(id)
		}
	}
	return nil
}

func (w *PropertyWizard) validateLocked() error {
	if err := w.draft.Validate(); err != nil {
		return err
	}
	if err := w.validate.Struct(w.draft); err != nil {
		return fmt.Errorf("property draft failed validation: %w", err)
	}
	return nil
}
