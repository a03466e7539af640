package service

import (
	"context"
	"errors"

	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"
)

// Principal identifies the authenticated caller for inbox queries.
type Principal struct {
	UserId uint
	SpaId  uint
	Role   string
}

// match builds the recipient predicate: spa administrators read their spa's
// rows, association admins read their personal rows plus the role-wide ones.
func (p Principal) match() specification.RecipientMatch {
	if p.Role == entity.RoleAssociationAdmin {
		return specification.RecipientMatch{
			RecipientType: string(entity.RecipientTypeUser),
			RecipientId:   p.UserId,
			Role:          p.Role,
		}
	}
	return specification.RecipientMatch{
		RecipientType: string(entity.RecipientTypeSpa),
		RecipientId:   p.SpaId,
	}
}

type INotificationService interface {
	Inbox(ctx context.Context, principal Principal, page, pageSize int) (*dto.NotificationListResponse, error)
	UnreadCount(ctx context.Context, principal Principal) (int64, error)
	MarkAsRead(ctx context.Context, id uint) error
	MarkAllAsRead(ctx context.Context, principal Principal) error
}

type notificationService struct {
	notificationRepo contract.NotificationRepository
}

func NewNotificationService(notificationRepo contract.NotificationRepository) INotificationService {
	return &notificationService{notificationRepo: notificationRepo}
}

func (s *notificationService) Inbox(ctx context.Context, principal Principal, page, pageSize int) (*dto.NotificationListResponse, error) {
	page, pageSize = normalizePage(page, pageSize)
	match := principal.match()

	total, err := s.notificationRepo.Count(ctx, match)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	rows, err := s.notificationRepo.FindAll(ctx,
		match,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	items := make([]*dto.NotificationResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dto.NotificationResponse{
			Id:          row.Id,
			Title:       row.Title,
			Message:     row.Message,
			Type:        row.Type,
			RelatedType: row.RelatedType,
			RelatedId:   row.RelatedId,
			IsRead:      row.IsRead,
			ReadAt:      row.ReadAt,
			CreatedAt:   row.CreatedAt,
		})
	}
	return &dto.NotificationListResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func (s *notificationService) UnreadCount(ctx context.Context, principal Principal) (int64, error) {
	count, err := s.notificationRepo.Count(ctx, principal.match(), specification.Filter("is_read", false))
	if err != nil {
		return 0, apperror.Persistence(err)
	}
	return count, nil
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uint) error {
	if err := s.notificationRepo.MarkAsRead(ctx, id); err != nil {
		if errors.Is(err, contract.ErrNotificationNotFound) {
			return apperror.NotFound("notification")
		}
		return apperror.Persistence(err)
	}
	return nil
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, principal Principal) error {
	if err := s.notificationRepo.MarkAllAsRead(ctx, principal.match()); err != nil {
		return apperror.Persistence(err)
	}
	return nil
}
