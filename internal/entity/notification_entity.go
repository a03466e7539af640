package entity

import (
	"fmt"
	"time"
)

type RecipientType string

const (
	RecipientTypeSpa  RecipientType = "spa"
	RecipientTypeUser RecipientType = "user"
	RecipientTypeRole RecipientType = "role"

	// RoleAssociationAdmin is the association-administrator role room.
	RoleAssociationAdmin = "lsa"
)

// Notification is the durable delivery record. The row is always persisted in
// the same transaction as the state change it announces; the websocket push is
// best-effort on top of it.
type Notification struct {
	Id            uint
	RecipientType RecipientType
	RecipientId   uint
	RecipientRole string
	Title         string
	Message       string
	Type          string
	RelatedType   string
	RelatedId     uint
	IsRead        bool
	ReadAt        *time.Time
	CreatedAt     time.Time
}

// Topic returns the fan-out topic for this notification's recipient,
// e.g. "role:lsa", "spa:42", "user:7".
func (n *Notification) Topic() string {
	if n.RecipientType == RecipientTypeRole {
		return RoleTopic(n.RecipientRole)
	}
	return fmt.Sprintf("%s:%d", n.RecipientType, n.RecipientId)
}

func SpaTopic(spaId uint) string {
	return fmt.Sprintf("spa:%d", spaId)
}

func UserTopic(userId uint) string {
	return fmt.Sprintf("user:%d", userId)
}

func RoleTopic(role string) string {
	return "role:" + role
}
