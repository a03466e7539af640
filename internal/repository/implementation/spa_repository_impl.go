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

type SpaRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SpaMapper
}

func NewSpaRepository(db *gorm.DB) contract.SpaRepository {
	return &SpaRepositoryImpl{
		db:     db,
		mapper: mapper.NewSpaMapper(),
	}
}

func (r *SpaRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *SpaRepositoryImpl) Create(ctx context.Context, spa *entity.Spa) error {
	modelSpa := r.mapper.ToModel(spa)
	if err := r.db.WithContext(ctx).Create(modelSpa).Error; err != nil {
		return err
	}
	*spa = *r.mapper.ToEntity(modelSpa)
	return nil
}

func (r *SpaRepositoryImpl) Update(ctx context.Context, spa *entity.Spa) error {
	modelSpa := r.mapper.ToModel(spa)
	if err := r.db.WithContext(ctx).Save(modelSpa).Error; err != nil {
		return err
	}
	*spa = *r.mapper.ToEntity(modelSpa)
	return nil
}

func (r *SpaRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Spa, error) {
	var modelSpa model.Spa
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelSpa).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelSpa), nil
}

func (r *SpaRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Spa, error) {
	var modelSpas []*model.Spa
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelSpas).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelSpas), nil
}

func (r *SpaRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Spa{}), specs...)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *SpaRepositoryImpl) AggregateRegions(ctx context.Context, specs ...specification.Specification) ([]entity.RegionCount, error) {
	var rows []entity.RegionCount
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Spa{}), specs...)

	err := query.
		Select("region, COUNT(*) AS count").
		Where("region <> ''").
		Group("region").
		Order("region ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
