package implementation

import (
	"context"
	"errors"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/mapper"
	"spa-registry-be/internal/model"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"

	"gorm.io/gorm"
)

type TherapistRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.TherapistMapper
}

func NewTherapistRepository(db *gorm.DB) contract.TherapistRepository {
	return &TherapistRepositoryImpl{
		db:     db,
		mapper: mapper.NewTherapistMapper(),
	}
}

func (r *TherapistRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *TherapistRepositoryImpl) Create(ctx context.Context, therapist *entity.Therapist) error {
	modelTherapist := r.mapper.ToModel(therapist)
	if err := r.db.WithContext(ctx).Create(modelTherapist).Error; err != nil {
		return err
	}
	*therapist = *r.mapper.ToEntity(modelTherapist)
	return nil
}

func (r *TherapistRepositoryImpl) Update(ctx context.Context, therapist *entity.Therapist) error {
	modelTherapist := r.mapper.ToModel(therapist)
	if err := r.db.WithContext(ctx).Save(modelTherapist).Error; err != nil {
		return err
	}
	*therapist = *r.mapper.ToEntity(modelTherapist)
	return nil
}

func (r *TherapistRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Therapist, error) {
	var modelTherapist model.Therapist
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelTherapist).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelTherapist), nil
}

func (r *TherapistRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Therapist, error) {
	var modelTherapists []*model.Therapist
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelTherapists).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelTherapists), nil
}

func (r *TherapistRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Therapist{}), specs...)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
