package entity

import (
	"time"
)

type SpaStatus string
type PaymentFlag string

const (
	SpaStatusPending   SpaStatus = "pending"
	SpaStatusVerified  SpaStatus = "verified"
	SpaStatusRejected  SpaStatus = "rejected"
	SpaStatusSuspended SpaStatus = "suspended"

	PaymentFlagPaid    PaymentFlag = "paid"
	PaymentFlagUnpaid  PaymentFlag = "unpaid"
	PaymentFlagOverdue PaymentFlag = "overdue"
)

type Spa struct {
	Id              uint
	ReferenceNumber string
	Name            string
	Email           string
	Phone           string
	Address         string
	Region          string
	AdminUserId     uint
	Status          SpaStatus
	RejectReason    *string
	AnnualFeePaid   bool
	NextPaymentDate *time.Time
	BlacklistReason *string
	BlacklistedAt   *time.Time
	VerifiedBy      *uint
	VerifiedAt      *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// PaymentFlagAt derives the billing flag at read time. The stored
// annual_fee_paid boolean is never auto-reverted by the engine; an expired
// next_payment_date only changes what this derivation reports.
func (s *Spa) PaymentFlagAt(now time.Time) PaymentFlag {
	if !s.AnnualFeePaid {
		return PaymentFlagUnpaid
	}
	if s.NextPaymentDate != nil && s.NextPaymentDate.Before(now) {
		return PaymentFlagOverdue
	}
	return PaymentFlagPaid
}

func (s *Spa) IsBlacklisted() bool {
	return s.BlacklistReason != nil && *s.BlacklistReason != ""
}

// Topic returns the pub/sub topic a spa administrator's sessions subscribe to.
func (s *Spa) Topic() string {
	return SpaTopic(s.Id)
}

// RegionCount is a read-time aggregation row for the public directory.
type RegionCount struct {
	Region string
	Count  int64
}
