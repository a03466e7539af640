package entity

import (
	"time"
)

type TherapistStatus string

const (
	TherapistStatusPending    TherapistStatus = "pending"
	TherapistStatusApproved   TherapistStatus = "approved"
	TherapistStatusRejected   TherapistStatus = "rejected"
	TherapistStatusResigned   TherapistStatus = "resigned"
	TherapistStatusTerminated TherapistStatus = "terminated"
)

// Therapist is affiliated with exactly one spa at any time.
type Therapist struct {
	Id               uint
	SpaId            uint
	FullName         string
	Email            string
	IdentityNumber   string
	Status           TherapistStatus
	RejectReason     *string
	SupportingDocRef *string
	ApprovedBy       *uint
	ApprovedAt       *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
