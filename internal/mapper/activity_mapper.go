package mapper

import (
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/model"
)

type ActivityLogMapper struct{}

func NewActivityLogMapper() *ActivityLogMapper {
	return &ActivityLogMapper{}
}

func (m *ActivityLogMapper) ToEntity(a *model.ActivityLog) *entity.ActivityLog {
	if a == nil {
		return nil
	}
	return &entity.ActivityLog{
		Id:          a.Id,
		TargetType:  a.TargetType,
		TargetId:    a.TargetId,
		Action:      a.Action,
		ActorType:   entity.ActorType(a.ActorType),
		ActorId:     a.ActorId,
		ActorName:   a.ActorName,
		OldStatus:   a.OldStatus,
		NewStatus:   a.NewStatus,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *ActivityLogMapper) ToModel(a *entity.ActivityLog) *model.ActivityLog {
	if a == nil {
		return nil
	}
	return &model.ActivityLog{
		Id:          a.Id,
		TargetType:  a.TargetType,
		TargetId:    a.TargetId,
		Action:      a.Action,
		ActorType:   string(a.ActorType),
		ActorId:     a.ActorId,
		ActorName:   a.ActorName,
		OldStatus:   a.OldStatus,
		NewStatus:   a.NewStatus,
		Description: a.Description,
		CreatedAt:   a.CreatedAt,
	}
}

func (m *ActivityLogMapper) ToEntities(models []*model.ActivityLog) []*entity.ActivityLog {
	entities := make([]*entity.ActivityLog, 0, len(models))
	for _, mod := range models {
		entities = append(entities, m.ToEntity(mod))
	}
	return entities
}
