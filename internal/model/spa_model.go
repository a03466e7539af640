package model

import (
	"time"
)

type Spa struct {
	Id              uint       `gorm:"primaryKey;autoIncrement"`
	ReferenceNumber string     `gorm:"type:varchar(40);uniqueIndex;not null"`
	Name            string     `gorm:"type:varchar(200);not null"`
	Email           string     `gorm:"type:varchar(200);not null"`
	Phone           string     `gorm:"type:varchar(50)"`
	Address         string     `gorm:"type:text"`
	Region          string     `gorm:"type:varchar(100);index"`
	AdminUserId     uint       `gorm:"not null;uniqueIndex"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectReason    *string    `gorm:"type:text"`
	AnnualFeePaid   bool       `gorm:"default:false"`
	NextPaymentDate *time.Time `gorm:""`
	BlacklistReason *string    `gorm:"type:text"`
	BlacklistedAt   *time.Time `gorm:""`
	VerifiedBy      *uint      `gorm:""`
	VerifiedAt      *time.Time `gorm:""`
	CreatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt       time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
}

func (Spa) TableName() string {
	return "spas"
}
