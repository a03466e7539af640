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

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PaymentMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPaymentMapper(),
	}
}

func (r *PaymentRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	modelPayment := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Create(modelPayment).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(modelPayment)
	return nil
}

func (r *PaymentRepositoryImpl) Update(ctx context.Context, payment *entity.Payment) error {
	modelPayment := r.mapper.ToModel(payment)
	if err := r.db.WithContext(ctx).Save(modelPayment).Error; err != nil {
		return err
	}
	*payment = *r.mapper.ToEntity(modelPayment)
	return nil
}

func (r *PaymentRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Payment, error) {
	var modelPayment model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.First(&modelPayment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return r.mapper.ToEntity(&modelPayment), nil
}

func (r *PaymentRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Payment, error) {
	var modelPayments []*model.Payment
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)

	if err := query.Find(&modelPayments).Error; err != nil {
		return nil, err
	}

	return r.mapper.ToEntities(modelPayments), nil
}

func (r *PaymentRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.Payment{}), specs...)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
