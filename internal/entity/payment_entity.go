package entity

import (
	"time"
)

type PaymentType string
type PaymentMethod string
type PaymentStatus string

const (
	PaymentTypeRegistration PaymentType = "registration"
	PaymentTypeAnnual       PaymentType = "annual"

	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"

	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusRejected  PaymentStatus = "rejected"

	// PaymentDisplayPendingApproval is a read-time projection only, shown for
	// bank transfers awaiting an association-admin decision. Never stored.
	PaymentDisplayPendingApproval = "pending_approval"
)

type BankDetails struct {
	BankName      string `json:"bank_name"`
	AccountName   string `json:"account_name"`
	TransferRef   string `json:"transfer_ref"`
	TransferredAt string `json:"transferred_at,omitempty"`
}

type Payment struct {
	Id                   uint
	SpaId                uint
	ReferenceNumber      string
	Type                 PaymentType
	Method               PaymentMethod
	PlanId               string
	Amount               int64
	DurationMonths       int
	Status               PaymentStatus
	BankTransferApproved bool
	BankDetails          *BankDetails
	ResolvedBy           *uint
	ResolvedAt           *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// DisplayStatus resolves the user-facing status without storing it.
func (p *Payment) DisplayStatus() string {
	if p.Method == PaymentMethodBankTransfer && p.Status == PaymentStatusPending {
		return PaymentDisplayPendingApproval
	}
	return string(p.Status)
}

// Resolved reports whether the payment is immutable.
func (p *Payment) Resolved() bool {
	return p.Status == PaymentStatusCompleted || p.Status == PaymentStatusRejected
}
