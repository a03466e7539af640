package mapper

import (
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/model"
)

type NotificationMapper struct{}

func NewNotificationMapper() *NotificationMapper {
	return &NotificationMapper{}
}

func (m *NotificationMapper) ToEntity(n *model.Notification) *entity.Notification {
	if n == nil {
		return nil
	}
	return &entity.Notification{
		Id:            n.Id,
		RecipientType: entity.RecipientType(n.RecipientType),
		RecipientId:   n.RecipientId,
		RecipientRole: n.RecipientRole,
		Title:         n.Title,
		Message:       n.Message,
		Type:          n.Type,
		RelatedType:   n.RelatedType,
		RelatedId:     n.RelatedId,
		IsRead:        n.IsRead,
		ReadAt:        n.ReadAt,
		CreatedAt:     n.CreatedAt,
	}
}

func (m *NotificationMapper) ToModel(n *entity.Notification) *model.Notification {
	if n == nil {
		return nil
	}
	return &model.Notification{
		Id:            n.Id,
		RecipientType: string(n.RecipientType),
		RecipientId:   n.RecipientId,
		RecipientRole: n.RecipientRole,
		Title:         n.Title,
		Message:       n.Message,
		Type:          n.Type,
		RelatedType:   n.RelatedType,
		RelatedId:     n.RelatedId,
		IsRead:        n.IsRead,
		ReadAt:        n.ReadAt,
		CreatedAt:     n.CreatedAt,
	}
}

func (m *NotificationMapper) ToEntities(models []*model.Notification) []*entity.Notification {
	entities := make([]*entity.Notification, 0, len(models))
	for _, mod := range models {
		entities = append(entities, m.ToEntity(mod))
	}
	return entities
}
