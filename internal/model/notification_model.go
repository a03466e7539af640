package model

import (
	"time"
)

type Notification struct {
	Id            uint       `gorm:"primaryKey;autoIncrement"`
	RecipientType string     `gorm:"type:varchar(20);not null;index:idx_notifications_recipient,priority:1"`
	RecipientId   uint       `gorm:"index:idx_notifications_recipient,priority:2"`
	RecipientRole string     `gorm:"type:varchar(40);index"`
	Title         string     `gorm:"type:varchar(200);not null"`
	Message       string     `gorm:"type:text;not null"`
	Type          string     `gorm:"type:varchar(40);not null"`
	RelatedType   string     `gorm:"type:varchar(30)"`
	RelatedId     uint       `gorm:""`
	IsRead        bool       `gorm:"default:false;index"`
	ReadAt        *time.Time `gorm:""`
	CreatedAt     time.Time  `gorm:"default:CURRENT_TIMESTAMP;index"`
}

func (Notification) TableName() string {
	return "notifications"
}
