package model

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Item is a reported lost or found object.
type Item struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category"`
	Location    string    `json:"location,omitempty"`
	Date        time.Time `json:"date"`
	Tags        []string  `json:"tags"`
	Type        string    `json:"type"`
	Status      string    `json:"status"`
	Image       string    `json:"image,omitempty"`
	Reporter    Reporter  `json:"reporter"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Populated on item detail and the admin claims listing only.
	ClaimRequests []ClaimRequest `json:"claim_requests,omitempty"`
}

// Reporter is the read-only view of the user who created an item.
type Reporter struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// Item statuses.
const (
	ItemStatusPending  = "pending"
	ItemStatusApproved = "approved"
	ItemStatusRejected = "rejected"
	ItemStatusClaimed  = "claimed"
)

// Item types.
const (
	ItemTypeLost  = "lost"
	ItemTypeFound = "found"
)

// Categories.
const (
	CategoryElectronics = "electronics"
	CategoryClothing    = "clothing"
	CategoryBooks       = "books"
	CategoryCards       = "cards"
	CategoryKeys        = "keys"
	CategoryOther       = "other"
)

// Categories lists the accepted item categories in display order.
var Categories = []string{
	CategoryElectronics,
	CategoryClothing,
	CategoryBooks,
	CategoryCards,
	CategoryKeys,
	CategoryOther,
}

// itemTransitions holds every permitted status change. Rejected and claimed
// are terminal.
var itemTransitions = map[string][]string{
	ItemStatusPending:  {ItemStatusApproved, ItemStatusRejected},
	ItemStatusApproved: {ItemStatusClaimed},
}

// ValidItemStatus reports whether s is one of the four item statuses.
func ValidItemStatus(s string) bool {
	switch s {
	case ItemStatusPending, ItemStatusApproved, ItemStatusRejected, ItemStatusClaimed:
		return true
	}
	return false
}

// ValidItemType reports whether t is lost or found.
func ValidItemType(t string) bool {
	return t == ItemTypeLost || t == ItemTypeFound
}

// ValidCategory reports whether c is a known category.
func ValidCategory(c string) bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// CanTransition reports whether an item may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range itemTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Terminal reports whether no transition leaves status.
func Terminal(status string) bool {
	return len(itemTransitions[status]) == 0
}

// Claimable reports whether claims may be submitted against an item in status.
func Claimable(status string) bool {
	return status == ItemStatusApproved
}

// Deletable reports whether an item in status may be deleted. Claimed items
// are kept as the record of a fulfilled claim.
func Deletable(status string) bool {
	return status != ItemStatusClaimed
}

var lower = cases.Lower(language.Und)

// NormalizeTag folds a tag to its canonical search form.
func NormalizeTag(tag string) string {
	tag = norm.NFC.String(strings.TrimSpace(tag))
	tag = strings.ReplaceAll(tag, ",", " ")
	return strings.Join(strings.Fields(lower.String(tag)), " ")
}

// NormalizeTags normalizes tags, dropping blanks and duplicates while
// keeping the first occurrence order.
func NormalizeTags(tags []string) []string {
	seen := make(map[string]bool, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = NormalizeTag(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// NormalizeSearch folds free-text search input the same way tags are folded.
func NormalizeSearch(s string) string {
	return lower.String(norm.NFC.String(strings.TrimSpace(s)))
}

// ItemPage is one page of a filtered item listing. Pages is computed by the
// server and is at least 1.
type ItemPage struct {
	Items []Item `json:"items"`
	Total int    `json:"total"`
	Pages int    `json:"pages"`
	Page  int    `json:"page"`
}
