package dto

import (
	"time"
)

type BankDetailsRequest struct {
	BankName      string `json:"bank_name" validate:"required"`
	AccountName   string `json:"account_name" validate:"required"`
	TransferRef   string `json:"transfer_ref"`
	TransferredAt string `json:"transferred_at"`
}

type InitiatePaymentRequest struct {
	PlanId      string              `json:"plan_id" validate:"required"`
	Method      string              `json:"method" validate:"required,oneof=card bank_transfer"`
	BankDetails *BankDetailsRequest `json:"bank_details,omitempty"`
}

type InitiatePaymentResponse struct {
	PaymentId       uint   `json:"payment_id"`
	ReferenceNumber string `json:"reference_number"`
	Status          string `json:"status"`
}

type ResolveBankTransferRequest struct {
	Decision string `json:"decision" validate:"required,oneof=approve reject"`
}

type PlanResponse struct {
	Id             string `json:"id"`
	DisplayName    string `json:"display_name"`
	Type           string `json:"type"`
	Amount         int64  `json:"amount"`
	DurationMonths int    `json:"duration_months"`
}

type PaymentResponse struct {
	Id                   uint       `json:"id"`
	SpaId                uint       `json:"spa_id"`
	ReferenceNumber      string     `json:"reference_number"`
	Type                 string     `json:"type"`
	Method               string     `json:"method"`
	PlanId               string     `json:"plan_id"`
	Amount               int64      `json:"amount"`
	Status               string     `json:"status"`
	DisplayStatus        string     `json:"display_status"`
	BankTransferApproved bool       `json:"bank_transfer_approved"`
	ResolvedAt           *time.Time `json:"resolved_at,omitempty"`
	CreatedAt            time.Time  `json:"created_at"`
}

type PaymentHistoryResponse struct {
	Items    []*PaymentResponse `json:"items"`
	Total    int64              `json:"total"`
	Page     int                `json:"page"`
	PageSize int                `json:"page_size"`
}
