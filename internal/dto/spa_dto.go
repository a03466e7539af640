package dto

import (
	"time"
)

type RegisterSpaRequest struct {
	Name        string `json:"name" validate:"required,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"max=50"`
	Address     string `json:"address"`
	Region      string `json:"region" validate:"max=100"`
	AdminUserId uint   `json:"admin_user_id" validate:"required"`
}

type VerifySpaRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
	Reason   string `json:"reason"`
}

type BlacklistSpaRequest struct {
	Reason string `json:"reason" validate:"required"`
}

type SpaResponse struct {
	Id              uint       `json:"id"`
	ReferenceNumber string     `json:"reference_number"`
	Name            string     `json:"name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	Address         string     `json:"address,omitempty"`
	Region          string     `json:"region,omitempty"`
	Status          string     `json:"status"`
	RejectReason    *string    `json:"reject_reason,omitempty"`
	AnnualFeePaid   bool       `json:"annual_fee_paid"`
	PaymentStatus   string     `json:"payment_status"`
	NextPaymentDate *time.Time `json:"next_payment_date,omitempty"`
	BlacklistReason *string    `json:"blacklist_reason,omitempty"`
	BlacklistedAt   *time.Time `json:"blacklisted_at,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

type ActivityLogResponse struct {
	Id          uint      `json:"id"`
	TargetType  string    `json:"target_type"`
	TargetId    uint      `json:"target_id"`
	Action      string    `json:"action"`
	ActorType   string    `json:"actor_type"`
	ActorId     uint      `json:"actor_id"`
	ActorName   string    `json:"actor_name,omitempty"`
	OldStatus   string    `json:"old_status,omitempty"`
	NewStatus   string    `json:"new_status,omitempty"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
