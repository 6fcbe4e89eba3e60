package views

import (
	"context"
	"errors"
	"sync"

	"github.com/erazemk/lostfound/internal/client"
	"github.com/erazemk/lostfound/internal/model"
)

// ErrAlreadyDecided is returned when deciding a claim the board already
// shows as decided. No request is sent.
var ErrAlreadyDecided = errors.New("claim already decided")

// ClaimRow pairs a claim with the item it was filed against.
type ClaimRow struct {
	Item  model.Item
	Claim model.ClaimRequest
}

// BoardState is a snapshot of a claims board.
type BoardState struct {
	Items   []model.Item
	Loading bool
	Err     error
}

// Pending returns the claims awaiting a decision.
func (s BoardState) Pending() []ClaimRow {
	return s.rows(func(c model.ClaimRequest) bool { return c.Status == model.ClaimStatusPending })
}

// Processed returns the claims already decided.
func (s BoardState) Processed() []ClaimRow {
	return s.rows(func(c model.ClaimRequest) bool { return c.Status != model.ClaimStatusPending })
}

func (s BoardState) rows(keep func(model.ClaimRequest) bool) []ClaimRow {
	var rows []ClaimRow
	for _, item := range s.Items {
		for _, c := range item.ClaimRequests {
			if keep(c) {
				rows = append(rows, ClaimRow{Item: item, Claim: c})
			}
		}
	}
	return rows
}

// ClaimsBoard is the admin view of claim requests grouped by item. Decisions
// are shown immediately and rolled back if the server refuses them.
type ClaimsBoard struct {
	gw Gateway

	mu      sync.Mutex
	items   []model.Item
	loading bool
	err     error
	req     latest
	version uint64          // bumped each time a load replaces items
	busy    map[string]bool // claim IDs with a decision in flight
}

// NewClaimsBoard creates an empty board.
func NewClaimsBoard(gw Gateway) *ClaimsBoard {
	return &ClaimsBoard{gw: gw, busy: map[string]bool{}}
}

// State returns a snapshot of the board.
func (b *ClaimsBoard) State() BoardState {
	b.mu.Lock()
	defer b.mu.Unlock()

	items := make([]model.Item, len(b.items))
	for i, it := range b.items {
		items[i] = cloneItem(it)
	}
	return BoardState{Items: items, Loading: b.loading, Err: b.err}
}

// Load fetches every item with claims. Refreshing is manual.
func (b *ClaimsBoard) Load(ctx context.Context) error {
	b.mu.Lock()
	ctx, gen := b.req.begin(ctx)
	b.loading = true
	b.mu.Unlock()

	overview, err := b.gw.ListAdminClaims(ctx)

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.req.end(gen) {
		return ErrSuperseded
	}
	b.loading = false
	if err != nil {
		b.err = err
		return err
	}
	b.err = nil
	b.items = overview.Items
	b.version++
	return nil
}

// Busy reports whether a decision on claimID is in flight.
func (b *ClaimsBoard) Busy(claimID string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.busy[claimID]
}

// Decide approves or rejects a claim. The board shows the outcome at once:
// approving also marks the item claimed and its other pending claims
// rejected. If the server refuses, the item is restored as it was, and a
// conflict or missing claim reloads the board.
func (b *ClaimsBoard) Decide(ctx context.Context, itemID, claimID string, outcome model.Outcome) error {
	b.mu.Lock()
	if b.busy[claimID] {
		b.mu.Unlock()
		return ErrBusy
	}
	idx, ci := b.find(itemID, claimID)
	if idx >= 0 && ci >= 0 && b.items[idx].ClaimRequests[ci].Status != model.ClaimStatusPending {
		b.mu.Unlock()
		return ErrAlreadyDecided
	}
	b.busy[claimID] = true
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.busy, claimID)
		b.mu.Unlock()
	}()

	var decided *model.ClaimRequest
	var applied uint64
	cmd := Optimistic[*model.Item]{
		Apply: func() *model.Item {
			prior, version := b.patch(itemID, claimID, outcome)
			applied = version
			return prior
		},
		Commit: func(ctx context.Context) error {
			var err error
			decided, err = b.gw.DecideClaim(ctx, itemID, claimID, outcome)
			return err
		},
		Restore: func(prior *model.Item) {
			if prior != nil {
				b.restore(*prior, applied)
			}
		},
	}
	if err := cmd.Run(ctx); err != nil {
		// Another admin got there first, so the local copy is stale.
		if k := client.KindOf(err); k == client.KindConflict || k == client.KindNotFound {
			b.Load(ctx)
		}
		return err
	}

	b.mu.Lock()
	if idx, ci := b.find(itemID, claimID); ci >= 0 && decided != nil {
		b.items[idx].ClaimRequests[ci] = *decided
	}
	b.mu.Unlock()
	return nil
}

// patch applies outcome locally and returns a copy of the item as it was,
// or nil if the item is not on the board, along with the board version the
// copy belongs to.
func (b *ClaimsBoard) patch(itemID, claimID string, outcome model.Outcome) (*model.Item, uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	idx, ci := b.find(itemID, claimID)
	if ci < 0 {
		return nil, b.version
	}
	prior := cloneItem(b.items[idx])

	item := &b.items[idx]
	item.ClaimRequests[ci].Status = outcome.ClaimStatus()
	if outcome == model.OutcomeApprove {
		item.Status = model.ItemStatusClaimed
		for i := range item.ClaimRequests {
			if i != ci && item.ClaimRequests[i].Status == model.ClaimStatusPending {
				item.ClaimRequests[i].Status = model.ClaimStatusRejected
			}
		}
	}
	return &prior, b.version
}

// restore puts item back unless a load has replaced the board since
// version.
func (b *ClaimsBoard) restore(item model.Item, version uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.version != version {
		return
	}
	for i := range b.items {
		if b.items[i].ID == item.ID {
			b.items[i] = item
			return
		}
	}
}

// find locates a claim on the board. Either index is -1 when missing.
// Callers hold b.mu.
func (b *ClaimsBoard) find(itemID, claimID string) (int, int) {
	for i := range b.items {
		if b.items[i].ID != itemID {
			continue
		}
		for j := range b.items[i].ClaimRequests {
			if b.items[i].ClaimRequests[j].ID == claimID {
				return i, j
			}
		}
		return i, -1
	}
	return -1, -1
}

func cloneItem(it model.Item) model.Item {
	it.ClaimRequests = append([]model.ClaimRequest(nil), it.ClaimRequests...)
	it.Tags = append([]string(nil), it.Tags...)
	return it
}
