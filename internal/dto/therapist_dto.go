package dto

import (
	"time"
)

type SubmitTherapistRequest struct {
	FullName       string `json:"full_name" validate:"required,max=200"`
	Email          string `json:"email" validate:"omitempty,email"`
	IdentityNumber string `json:"identity_number" validate:"max=60"`
}

type RejectTherapistRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type TerminateTherapistRequest struct {
	Reason           string `json:"reason" validate:"required"`
	SupportingDocRef string `json:"supporting_doc_ref" validate:"required"`
}

type TherapistResponse struct {
	Id           uint       `json:"id"`
	SpaId        uint       `json:"spa_id"`
	FullName     string     `json:"full_name"`
	Email        string     `json:"email,omitempty"`
	Status       string     `json:"status"`
	RejectReason *string    `json:"reject_reason,omitempty"`
	ApprovedBy   *uint      `json:"approved_by,omitempty"`
	ApprovedAt   *time.Time `json:"approved_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}
