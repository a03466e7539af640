package contract

import (
	"context"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/repository/specification"
)

type SpaRepository interface {
	Create(ctx context.Context, spa *entity.Spa) error
	Update(ctx context.Context, spa *entity.Spa) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Spa, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Spa, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
	// AggregateRegions returns public-directory counts grouped by region.
	AggregateRegions(ctx context.Context, specs ...specification.Specification) ([]entity.RegionCount, error)
}
