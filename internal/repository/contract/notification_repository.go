package contract

import (
	"context"
	"errors"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/repository/specification"
)

// ErrNotificationNotFound is returned by MarkAsRead when the id matches no row.
var ErrNotificationNotFound = errors.New("notification not found")

type NotificationRepository interface {
	Create(ctx context.Context, notification *entity.Notification) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Notification, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, match specification.RecipientMatch) error
}
