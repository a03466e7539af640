package contract

import (
	"context"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/repository/specification"
)

// ActivityLogRepository is append-only: rows are created and queried, never
// updated or deleted.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
