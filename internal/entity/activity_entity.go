package entity

import (
	"time"
)

type ActorType string

const (
	ActorTypeSpaAdmin         ActorType = "spa_admin"
	ActorTypeAssociationAdmin ActorType = "lsa_admin"
	ActorTypeSystem           ActorType = "system"
)

// ActivityLog is append-only: one row per state-changing command, never
// updated or deleted.
type ActivityLog struct {
	Id          uint
	TargetType  string
	TargetId    uint
	Action      string
	ActorType   ActorType
	ActorId     uint
	ActorName   string
	OldStatus   string
	NewStatus   string
	Description string
	CreatedAt   time.Time
}
