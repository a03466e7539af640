package mapper

import (
	"encoding/json"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentMapper struct{}

func NewPaymentMapper() *PaymentMapper {
	return &PaymentMapper{}
}

func (m *PaymentMapper) ToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	var bank *entity.BankDetails
	if len(p.BankDetails) > 0 {
		var b entity.BankDetails
		if err := json.Unmarshal(p.BankDetails, &b); err == nil {
			bank = &b
		}
	}
	return &entity.Payment{
		Id:                   p.Id,
		SpaId:                p.SpaId,
		ReferenceNumber:      p.ReferenceNumber,
		Type:                 entity.PaymentType(p.Type),
		Method:               entity.PaymentMethod(p.Method),
		PlanId:               p.PlanId,
		Amount:               p.Amount,
		DurationMonths:       p.DurationMonths,
		Status:               entity.PaymentStatus(p.Status),
		BankTransferApproved: p.BankTransferApproved,
		BankDetails:          bank,
		ResolvedBy:           p.ResolvedBy,
		ResolvedAt:           p.ResolvedAt,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	var bank datatypes.JSON
	if p.BankDetails != nil {
		if raw, err := json.Marshal(p.BankDetails); err == nil {
			bank = datatypes.JSON(raw)
		}
	}
	return &model.Payment{
		Id:                   p.Id,
		SpaId:                p.SpaId,
		ReferenceNumber:      p.ReferenceNumber,
		Type:                 string(p.Type),
		Method:               string(p.Method),
		PlanId:               p.PlanId,
		Amount:               p.Amount,
		DurationMonths:       p.DurationMonths,
		Status:               string(p.Status),
		BankTransferApproved: p.BankTransferApproved,
		BankDetails:          bank,
		ResolvedBy:           p.ResolvedBy,
		ResolvedAt:           p.ResolvedAt,
		CreatedAt:            p.CreatedAt,
		UpdatedAt:            p.UpdatedAt,
	}
}

func (m *PaymentMapper) ToEntities(models []*model.Payment) []*entity.Payment {
	entities := make([]*entity.Payment, 0, len(models))
	for _, mod := range models {
		entities = append(entities, m.ToEntity(mod))
	}
	return entities
}
