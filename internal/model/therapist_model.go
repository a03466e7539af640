package model

import (
	"time"
)

type Therapist struct {
	Id               uint       `gorm:"primaryKey;autoIncrement"`
	SpaId            uint       `gorm:"not null;index"`
	Spa              Spa        `gorm:"foreignKey:SpaId;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT"`
	FullName         string     `gorm:"type:varchar(200);not null"`
	Email            string     `gorm:"type:varchar(200)"`
	IdentityNumber   string     `gorm:"type:varchar(60);index"`
	Status           string     `gorm:"type:varchar(20);not null;default:'pending';index"`
	RejectReason     *string    `gorm:"type:text"`
	SupportingDocRef *string    `gorm:"type:varchar(255)"`
	ApprovedBy       *uint      `gorm:""`
	ApprovedAt       *time.Time `gorm:""`
	CreatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt        time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
}

func (Therapist) TableName() string {
	return "therapists"
}
