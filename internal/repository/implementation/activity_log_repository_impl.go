package implementation

import (
	"context"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/mapper"
	"spa-registry-be/internal/model"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"

	"gorm.io/gorm"
)

type ActivityLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ActivityLogMapper
}

func NewActivityLogRepository(db *gorm.DB) contract.ActivityLogRepository {
	return &ActivityLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewActivityLogMapper(),
	}
}

func (r *ActivityLogRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *ActivityLogRepositoryImpl) Create(ctx context.Context, log *entity.ActivityLog) error {
	modelLog := r.mapper.ToModel(log)
	if err := r.db.WithContext(ctx).Create(modelLog).Error; err != nil {
		return err
	}
	*log = *r.mapper.ToEntity(modelLog)
	return nil
}

func (r *ActivityLogRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.ActivityLog, error) {
	var modelLogs []*model.ActivityLog
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelLogs).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelLogs), nil
}

func (r *ActivityLogRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.ActivityLog{}), specs...)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
