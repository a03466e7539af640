package unitofwork

import (
	"context"

	"spa-registry-be/internal/repository/contract"
)

// UnitOfWork scopes repository access to one transaction. All lifecycle
// writes go through it: a Decision's mutations, activity-log row and
// notification rows commit or roll back together.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SpaRepository() contract.SpaRepository
	TherapistRepository() contract.TherapistRepository
	PaymentRepository() contract.PaymentRepository
	ActivityLogRepository() contract.ActivityLogRepository
	NotificationRepository() contract.NotificationRepository
}
