package model

import (
	"time"
)

type ActivityLog struct {
	Id          uint      `gorm:"primaryKey;autoIncrement"`
	TargetType  string    `gorm:"type:varchar(30);not null;index:idx_activity_target,priority:1"`
	TargetId    uint      `gorm:"not null;index:idx_activity_target,priority:2"`
	Action      string    `gorm:"type:varchar(40);not null"`
	ActorType   string    `gorm:"type:varchar(30);not null"`
	ActorId     uint      `gorm:"not null"`
	ActorName   string    `gorm:"type:varchar(200)"`
	OldStatus   string    `gorm:"type:varchar(20)"`
	NewStatus   string    `gorm:"type:varchar(20)"`
	Description string    `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP;index"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}
