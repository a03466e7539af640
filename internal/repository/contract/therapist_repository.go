package contract

import (
	"context"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/repository/specification"
)

type TherapistRepository interface {
	Create(ctx context.Context, therapist *entity.Therapist) error
	Update(ctx context.Context, therapist *entity.Therapist) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Therapist, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Therapist, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)
}
