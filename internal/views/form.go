package views

import (
	"context"
	"errors"
	"sync"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/model"
)

// ClaimFormState is a snapshot of a claim form.
type ClaimFormState struct {
	Item    *model.Item
	Details model.ClaimDetails
	Fields  map[string]string
	Busy    bool
	Err     error
	// Submitted is the claim created by the last successful submit.
	Submitted *model.ClaimRequest
}

// ClaimForm collects ownership details for one item and submits them. The
// submit control is disabled while a request is in flight, and a failed
// submit keeps what the user typed.
type ClaimForm struct {
	gw     Gateway
	itemID string

	mu        sync.Mutex
	item      *model.Item
	details   model.ClaimDetails
	fields    map[string]string
	busy      bool
	err       error
	submitted *model.ClaimRequest
}

// NewClaimForm creates a form for itemID.
func NewClaimForm(gw Gateway, itemID string) *ClaimForm {
	return &ClaimForm{gw: gw, itemID: itemID}
}

// State returns a snapshot of the form.
func (f *ClaimForm) State() ClaimFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return ClaimFormState{
		Item:      f.item,
		Details:   f.details,
		Fields:    f.fields,
		Busy:      f.busy,
		Err:       f.err,
		Submitted: f.submitted,
	}
}

// SetDetails replaces the form input.
func (f *ClaimForm) SetDetails(d model.ClaimDetails) {
	f.mu.Lock()
	f.details = d
	f.mu.Unlock()
}

// LoadItem fetches the item the form is for.
func (f *ClaimForm) LoadItem(ctx context.Context) error {
	item, err := f.gw.GetItem(ctx, f.itemID)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.err = err
		return err
	}
	f.item = item
	return nil
}

// Submit sends the claim. Missing fields are reported without a request.
// After a successful submit the input is cleared and the item re-fetched,
// since the server decides what the claim did to it.
func (f *ClaimForm) Submit(ctx context.Context) (*model.ClaimRequest, error) {
	f.mu.Lock()
	if f.busy {
		f.mu.Unlock()
		return nil, ErrBusy
	}
	d := f.details.Trimmed()
	if err := d.Validate(); err != nil {
		var fe model.FieldErrors
		errors.As(err, &fe)
		f.fields = fe
		f.err = err
		f.mu.Unlock()
		return nil, err
	}
	f.busy = true
	f.fields = nil
	f.err = nil
	f.mu.Unlock()

	claim, err := f.gw.SubmitClaim(ctx, f.itemID, d)

	f.mu.Lock()
	f.busy = false
	if err != nil {
		var ce *client.Error
		if errors.As(err, &ce) {
			f.fields = ce.Fields
		}
		f.err = err
		f.mu.Unlock()
		return nil, err
	}
	f.submitted = claim
	f.details = model.ClaimDetails{}
	f.mu.Unlock()

	// The claim stands even if the refresh fails; the error is kept on the
	// form for display.
	f.LoadItem(ctx)
	return claim, nil
}
