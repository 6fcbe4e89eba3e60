package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/erazemk/lostfound/internal/model"
)

const claimSelect = `SELECT c.id, c.item_id, c.student_id, c.admission_number, c.national_id,
	       c.contact_number, c.reason, c.proof_of_ownership, c.status, c.created_at,
	       c.decided_at, c.decided_by, u.id, u.name, u.email
	FROM claim_requests c
	JOIN users u ON u.id = c.claimant_id`

// SubmitClaim files a pending claim request against an approved item. The
// item's own status is left alone. A claimant may hold only one pending
// claim per item.
func SubmitClaim(ctx context.Context, db *sql.DB, itemID, claimantID string, d model.ClaimDetails) (*model.ClaimRequest, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	status, err := itemStatus(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if !model.Claimable(status) {
		return nil, fmt.Errorf("item %s is %s: %w", itemID, status, ErrNotClaimable)
	}

	id := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO claim_requests (id, item_id, claimant_id, student_id, admission_number, national_id,
		                             contact_number, reason, proof_of_ownership, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, itemID, claimantID, d.StudentID, d.AdmissionNumber, d.NationalID,
		d.ContactNumber, d.Reason, d.ProofOfOwnership, time.Now().UTC(),
	)
	if isUniqueViolation(err) {
		return nil, fmt.Errorf("claimant already has a pending claim on item %s: %w", itemID, ErrConflict)
	}
	if err != nil {
		return nil, fmt.Errorf("creating claim: %w", err)
	}

	claim, err := getClaim(ctx, tx, itemID, id)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}
	return claim, nil
}

// GetClaim returns a claim under an item, or nil if there is none.
func GetClaim(ctx context.Context, db *sql.DB, itemID, claimID string) (*model.ClaimRequest, error) {
	return getClaim(ctx, db, itemID, claimID)
}

func getClaim(ctx context.Context, q querier, itemID, claimID string) (*model.ClaimRequest, error) {
	rows, err := q.QueryContext(ctx, claimSelect+` WHERE c.item_id = ? AND c.id = ?`, itemID, claimID)
	if err != nil {
		return nil, fmt.Errorf("getting claim: %w", err)
	}
	defer rows.Close()

	claims, err := scanClaims(rows)
	if err != nil {
		return nil, err
	}
	if len(claims) == 0 {
		return nil, nil
	}
	return &claims[0], nil
}

// ListItemClaims returns every claim filed against an item, oldest first.
func ListItemClaims(ctx context.Context, db *sql.DB, itemID string) ([]model.ClaimRequest, error) {
	rows, err := db.QueryContext(ctx, claimSelect+` WHERE c.item_id = ? ORDER BY c.created_at, c.rowid`, itemID)
	if err != nil {
		return nil, fmt.Errorf("listing claims: %w", err)
	}
	defer rows.Close()

	return scanClaims(rows)
}

// ListClaimedItems returns every non-deleted item that has at least one
// claim, each with its claims attached. Items with pending claims come first.
func ListClaimedItems(ctx context.Context, db *sql.DB) ([]model.Item, error) {
	rows, err := db.QueryContext(ctx,
		itemSelect+` WHERE i.deleted_at IS NULL
		   AND EXISTS (SELECT 1 FROM claim_requests c WHERE c.item_id = i.id)
		 ORDER BY EXISTS (SELECT 1 FROM claim_requests c WHERE c.item_id = i.id AND c.status = 'pending') DESC,
		          i.updated_at DESC, i.rowid DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing claimed items: %w", err)
	}
	items, err := scanItems(rows)
	rows.Close()
	if err != nil {
		return nil, err
	}

	for i := range items {
		claims, err := ListItemClaims(ctx, db, items[i].ID)
		if err != nil {
			return nil, err
		}
		items[i].ClaimRequests = claims
	}
	if items == nil {
		items = []model.Item{}
	}
	return items, nil
}

// CountPendingClaims returns the number of claims awaiting a decision.
func CountPendingClaims(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM claim_requests c JOIN items i ON i.id = c.item_id
		 WHERE c.status = ? AND i.deleted_at IS NULL`, model.ClaimStatusPending,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting pending claims: %w", err)
	}
	return n, nil
}

// DecideClaim applies an admin decision to a pending claim in one
// transaction. Approving marks the claim approved, the item claimed and
// rejects every other pending claim on the item. Rejecting touches only the
// one claim. Deciding a claim that is no longer pending is a conflict.
func DecideClaim(ctx context.Context, db *sql.DB, itemID, claimID string, outcome model.Outcome, adminID string) (*model.ClaimRequest, error) {
	if !outcome.Valid() {
		return nil, fmt.Errorf("unknown outcome %q", outcome)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var status string
	err = tx.QueryRowContext(ctx,
		`SELECT c.status FROM claim_requests c JOIN items i ON i.id = c.item_id
		 WHERE c.id = ? AND c.item_id = ? AND i.deleted_at IS NULL`, claimID, itemID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("claim %s: %w", claimID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("getting claim status: %w", err)
	}
	if status != model.ClaimStatusPending {
		return nil, fmt.Errorf("claim %s already %s: %w", claimID, status, ErrConflict)
	}

	now := time.Now().UTC()

	if outcome == model.OutcomeApprove {
		itemStat, err := itemStatus(ctx, tx, itemID)
		if err != nil {
			return nil, err
		}
		if itemStat != model.ItemStatusApproved {
			return nil, fmt.Errorf("item %s is %s: %w", itemID, itemStat, ErrConflict)
		}

		var approved int
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM claim_requests WHERE item_id = ? AND status = ?`,
			itemID, model.ClaimStatusApproved,
		).Scan(&approved)
		if err != nil {
			return nil, fmt.Errorf("counting approved claims: %w", err)
		}
		if approved > 0 {
			return nil, fmt.Errorf("item %s already has an approved claim: %w", itemID, ErrConflict)
		}
	}

	if err := setClaimStatus(ctx, tx, claimID, outcome.ClaimStatus(), adminID, now); err != nil {
		return nil, err
	}

	if outcome == model.OutcomeApprove {
		if err := setItemStatus(ctx, tx, itemID, model.ItemStatusApproved, model.ItemStatusClaimed); err != nil {
			return nil, err
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE claim_requests SET status = ?, decided_at = ?, decided_by = ?
			 WHERE item_id = ? AND id != ? AND status = ?`,
			model.ClaimStatusRejected, now, adminID, itemID, claimID, model.ClaimStatusPending,
		)
		if err != nil {
			return nil, fmt.Errorf("rejecting sibling claims: %w", err)
		}
	}

	claim, err := getClaim(ctx, tx, itemID, claimID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing decision: %w", err)
	}
	return claim, nil
}

// ClaimItemDirect marks an approved item claimed without an ownership
// review. Claims still pending on the item are rejected, since nothing can
// approve them any more.
func ClaimItemDirect(ctx context.Context, db *sql.DB, itemID, actorID string) (*model.Item, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	status, err := itemStatus(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}
	if err := setItemStatus(ctx, tx, itemID, status, model.ItemStatusClaimed); err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE claim_requests SET status = ?, decided_at = ?, decided_by = ?
		 WHERE item_id = ? AND status = ?`,
		model.ClaimStatusRejected, time.Now().UTC(), actorID, itemID, model.ClaimStatusPending,
	)
	if err != nil {
		return nil, fmt.Errorf("rejecting pending claims: %w", err)
	}

	item, err := getItem(ctx, tx, itemID)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing claim: %w", err)
	}
	return item, nil
}

func setClaimStatus(ctx context.Context, q querier, claimID, status, adminID string, at time.Time) error {
	result, err := q.ExecContext(ctx,
		`UPDATE claim_requests SET status = ?, decided_at = ?, decided_by = ?
		 WHERE id = ? AND status = ?`,
		status, at, adminID, claimID, model.ClaimStatusPending,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("claim %s: item already has an approved claim: %w", claimID, ErrConflict)
	}
	if err != nil {
		return fmt.Errorf("updating claim status: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("claim %s changed concurrently: %w", claimID, ErrConflict)
	}
	return nil
}

func itemStatus(ctx context.Context, q querier, itemID string) (string, error) {
	var status string
	err := q.QueryRowContext(ctx,
		`SELECT status FROM items WHERE id = ? AND deleted_at IS NULL`, itemID,
	).Scan(&status)
	if err == sql.ErrNoRows {
		return "", fmt.Errorf("item %s: %w", itemID, ErrNotFound)
	}
	if err != nil {
		return "", fmt.Errorf("getting item status: %w", err)
	}
	return status, nil
}

func scanClaims(rows *sql.Rows) ([]model.ClaimRequest, error) {
	var claims []model.ClaimRequest
	for rows.Next() {
		var c model.ClaimRequest
		var decidedBy sql.NullString
		if err := rows.Scan(&c.ID, &c.ItemID, &c.StudentID, &c.AdmissionNumber, &c.NationalID,
			&c.ContactNumber, &c.Reason, &c.ProofOfOwnership, &c.Status, &c.CreatedAt,
			&c.DecidedAt, &decidedBy, &c.Claimant.ID, &c.Claimant.Name, &c.Claimant.Email); err != nil {
			return nil, fmt.Errorf("scanning claim: %w", err)
		}
		c.DecidedBy = decidedBy.String
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
