package model

import (
	"time"

	"gorm.io/datatypes"
)

type Payment struct {
	Id                   uint           `gorm:"primaryKey;autoIncrement"`
	SpaId                uint           `gorm:"not null;index"`
	Spa                  Spa            `gorm:"foreignKey:SpaId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	ReferenceNumber      string         `gorm:"type:varchar(40);uniqueIndex;not null"`
	Type                 string         `gorm:"type:varchar(20);not null"`
	Method               string         `gorm:"type:varchar(20);not null"`
	PlanId               string         `gorm:"type:varchar(40);not null"`
	Amount               int64          `gorm:"not null"`
	DurationMonths       int            `gorm:"not null"`
	Status               string         `gorm:"type:varchar(20);not null;default:'pending';index"`
	BankTransferApproved bool           `gorm:"default:false"`
	BankDetails          datatypes.JSON `gorm:"type:jsonb"`
	ResolvedBy           *uint          `gorm:""`
	ResolvedAt           *time.Time     `gorm:""`
	CreatedAt            time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt            time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}

func (Payment) TableName() string {
	return "payments"
}
