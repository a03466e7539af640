package mapper

import (
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/model"
)

type TherapistMapper struct{}

func NewTherapistMapper() *TherapistMapper {
	return &TherapistMapper{}
}

func (m *TherapistMapper) ToEntity(t *model.Therapist) *entity.Therapist {
	if t == nil {
		return nil
	}
	return &entity.Therapist{
		Id:               t.Id,
		SpaId:            t.SpaId,
		FullName:         t.FullName,
		Email:            t.Email,
		IdentityNumber:   t.IdentityNumber,
		Status:           entity.TherapistStatus(t.Status),
		RejectReason:     t.RejectReason,
		SupportingDocRef: t.SupportingDocRef,
		ApprovedBy:       t.ApprovedBy,
		ApprovedAt:       t.ApprovedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (m *TherapistMapper) ToModel(t *entity.Therapist) *model.Therapist {
	if t == nil {
		return nil
	}
	return &model.Therapist{
		Id:               t.Id,
		SpaId:            t.SpaId,
		FullName:         t.FullName,
		Email:            t.Email,
		IdentityNumber:   t.IdentityNumber,
		Status:           string(t.Status),
		RejectReason:     t.RejectReason,
		SupportingDocRef: t.SupportingDocRef,
		ApprovedBy:       t.ApprovedBy,
		ApprovedAt:       t.ApprovedAt,
		CreatedAt:        t.CreatedAt,
		UpdatedAt:        t.UpdatedAt,
	}
}

func (m *TherapistMapper) ToEntities(models []*model.Therapist) []*entity.Therapist {
	entities := make([]*entity.Therapist, 0, len(models))
	for _, mod := range models {
		entities = append(entities, m.ToEntity(mod))
	}
	return entities
}
