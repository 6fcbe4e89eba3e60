package model

import (
	"strings"
	"time"
)

// ClaimRequest is a claimant's assertion of ownership over an item.
type ClaimRequest struct {
	ID               string     `json:"id"`
	ItemID           string     `json:"item_id"`
	Claimant         Claimant   `json:"user"`
	StudentID        string     `json:"studentId"`
	AdmissionNumber  string     `json:"admissionNumber"`
	NationalID       string     `json:"nationalId"`
	ContactNumber    string     `json:"contactNumber"`
	Reason           string     `json:"howIsThisYourItem"`
	ProofOfOwnership string     `json:"proofOfOwnership,omitempty"`
	Status           string     `json:"status"`
	CreatedAt        time.Time  `json:"createdAt"`
	DecidedAt        *time.Time `json:"decidedAt,omitempty"`
	DecidedBy        string     `json:"decidedBy,omitempty"`
}

// Claimant identifies the user behind a claim request.
type Claimant struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Claim statuses.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Outcome is an admin decision on a pending claim.
type Outcome string

// Outcomes.
const (
	OutcomeApprove Outcome = "approve"
	OutcomeReject  Outcome = "reject"
)

// Valid reports whether o is approve or reject.
func (o Outcome) Valid() bool {
	return o == OutcomeApprove || o == OutcomeReject
}

// ClaimStatus returns the claim status a decision produces.
func (o Outcome) ClaimStatus() string {
	if o == OutcomeApprove {
		return ClaimStatusApproved
	}
	return ClaimStatusRejected
}

// ValidClaimStatus reports whether s is one of the three claim statuses.
func ValidClaimStatus(s string) bool {
	return s == ClaimStatusPending || s == ClaimStatusApproved || s == ClaimStatusRejected
}

// ClaimDetails is what a claimant submits to back a claim.
type ClaimDetails struct {
	StudentID        string `json:"studentId"`
	AdmissionNumber  string `json:"admissionNumber"`
	NationalID       string `json:"nationalId"`
	ContactNumber    string `json:"contactNumber"`
	Reason           string `json:"howIsThisYourItem"`
	ProofOfOwnership string `json:"proofOfOwnership,omitempty"`
}

// Validate checks that every required field is present and not blank.
func (d ClaimDetails) Validate() error {
	errs := FieldErrors{}
	errs.required("studentId", d.StudentID, "Student ID is required")
	errs.required("admissionNumber", d.AdmissionNumber, "Admission number is required")
	errs.required("nationalId", d.NationalID, "National ID is required")
	errs.required("contactNumber", d.ContactNumber, "Contact number is required")
	errs.required("howIsThisYourItem", d.Reason, "Explanation is required")
	return errs.OrNil()
}

// Trimmed returns a copy with surrounding whitespace removed from every field.
func (d ClaimDetails) Trimmed() ClaimDetails {
	return ClaimDetails{
		StudentID:        strings.TrimSpace(d.StudentID),
		AdmissionNumber:  strings.TrimSpace(d.AdmissionNumber),
		NationalID:       strings.TrimSpace(d.NationalID),
		ContactNumber:    strings.TrimSpace(d.ContactNumber),
		Reason:           strings.TrimSpace(d.Reason),
		ProofOfOwnership: strings.TrimSpace(d.ProofOfOwnership),
	}
}
