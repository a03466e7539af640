package mapper

import (
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/model"
)

type SpaMapper struct{}

func NewSpaMapper() *SpaMapper {
	return &SpaMapper{}
}

func (m *SpaMapper) ToEntity(s *model.Spa) *entity.Spa {
	if s == nil {
		return nil
	}
	return &entity.Spa{
		Id:              s.Id,
		ReferenceNumber: s.ReferenceNumber,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		Address:         s.Address,
		Region:          s.Region,
		AdminUserId:     s.AdminUserId,
		Status:          entity.SpaStatus(s.Status),
		RejectReason:    s.RejectReason,
		AnnualFeePaid:   s.AnnualFeePaid,
		NextPaymentDate: s.NextPaymentDate,
		BlacklistReason: s.BlacklistReason,
		BlacklistedAt:   s.BlacklistedAt,
		VerifiedBy:      s.VerifiedBy,
		VerifiedAt:      s.VerifiedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *SpaMapper) ToModel(s *entity.Spa) *model.Spa {
	if s == nil {
		return nil
	}
	return &model.Spa{
		Id:              s.Id,
		ReferenceNumber: s.ReferenceNumber,
		Name:            s.Name,
		Email:           s.Email,
		Phone:           s.Phone,
		Address:         s.Address,
		Region:          s.Region,
		AdminUserId:     s.AdminUserId,
		Status:          string(s.Status),
		RejectReason:    s.RejectReason,
		AnnualFeePaid:   s.AnnualFeePaid,
		NextPaymentDate: s.NextPaymentDate,
		BlacklistReason: s.BlacklistReason,
		BlacklistedAt:   s.BlacklistedAt,
		VerifiedBy:      s.VerifiedBy,
		VerifiedAt:      s.VerifiedAt,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *SpaMapper) ToEntities(models []*model.Spa) []*entity.Spa {
	entities := make([]*entity.Spa, 0, len(models))
	for _, mod := range models {
		entities = append(entities, m.ToEntity(mod))
	}
	return entities
}
