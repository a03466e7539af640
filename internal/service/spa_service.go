package service

import (
	"context"
	"time"

	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"
	"spa-registry-be/internal/repository/unitofwork"
)

type ISpaService interface {
	Register(ctx context.Context, req *dto.RegisterSpaRequest) (*dto.SpaResponse, error)
	Verify(ctx context.Context, spaId uint, req *dto.VerifySpaRequest, actor lifecycle.Actor) (*dto.SpaResponse, error)
	Blacklist(ctx context.Context, spaId uint, reason string, actor lifecycle.Actor) (*dto.SpaResponse, error)
	ClearBlacklist(ctx context.Context, spaId uint, actor lifecycle.Actor) (*dto.SpaResponse, error)
	GetById(ctx context.Context, spaId uint) (*dto.SpaResponse, error)
	ActivityLog(ctx context.Context, targetType string, targetId uint, page, pageSize int) ([]*dto.ActivityLogResponse, int64, error)
}

type spaService struct {
	executor    ICommandExecutor
	spaRepo     contract.SpaRepository
	activityLog contract.ActivityLogRepository
	logger      logger.ILogger
}

func NewSpaService(executor ICommandExecutor, spaRepo contract.SpaRepository, activityLog contract.ActivityLogRepository, log logger.ILogger) ISpaService {
	return &spaService{
		executor:    executor,
		spaRepo:     spaRepo,
		activityLog: activityLog,
		logger:      log,
	}
}

func (s *spaService) Register(ctx context.Context, req *dto.RegisterSpaRequest) (*dto.SpaResponse, error) {
	var registered *entity.Spa

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		existing, err := uow.SpaRepository().FindOne(ctx, specification.Filter("admin_user_id", req.AdminUserId))
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if existing != nil {
			return nil, apperror.Validation("principal already administers a registered spa", "admin_user_id")
		}

		d, err := lifecycle.DecideRegisterSpa(lifecycle.RegisterSpaInput{
			ReferenceNumber: NewReferenceNumber("SPA"),
			Name:            req.Name,
			Email:           req.Email,
			Phone:           req.Phone,
			Address:         req.Address,
			Region:          req.Region,
			AdminUserId:     req.AdminUserId,
		}, time.Now())
		if err != nil {
			return nil, err
		}
		registered = d.Spa()
		return d, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("SpaService", "spa registered", map[string]interface{}{
		"spa_id":    registered.Id,
		"reference": registered.ReferenceNumber,
	})
	return toSpaResponse(registered), nil
}

func (s *spaService) Verify(ctx context.Context, spaId uint, req *dto.VerifySpaRequest, actor lifecycle.Actor) (*dto.SpaResponse, error) {
	var updated *entity.Spa

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: spaId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		d, err := lifecycle.DecideVerifySpa(spa, lifecycle.VerifyDecision(req.Decision), req.Reason, actor, time.Now())
		if err != nil {
			return nil, err
		}
		updated = d.Spa()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return toSpaResponse(updated), nil
}

func (s *spaService) Blacklist(ctx context.Context, spaId uint, reason string, actor lifecycle.Actor) (*dto.SpaResponse, error) {
	var updated *entity.Spa

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: spaId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		d, err := lifecycle.DecideBlacklistSpa(spa, reason, actor, time.Now())
		if err != nil {
			return nil, err
		}
		updated = d.Spa()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return toSpaResponse(updated), nil
}

// ClearBlacklist is idempotent: clearing an already-clear spa succeeds without
// writing anything, and the response reflects the unchanged row.
func (s *spaService) ClearBlacklist(ctx context.Context, spaId uint, actor lifecycle.Actor) (*dto.SpaResponse, error) {
	var updated *entity.Spa

	result, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: spaId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		d, err := lifecycle.DecideClearBlacklist(spa, actor, time.Now())
		if err != nil {
			return nil, err
		}
		if d == nil {
			updated = spa
			return nil, nil
		}
		updated = d.Spa()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	if result.NoOp {
		s.logger.Debug("SpaService", "clear blacklist no-op", map[string]interface{}{"spa_id": spaId})
	}
	return toSpaResponse(updated), nil
}

func (s *spaService) GetById(ctx context.Context, spaId uint) (*dto.SpaResponse, error) {
	spa, err := s.spaRepo.FindOne(ctx, specification.ByID{ID: spaId})
	if err != nil {
		return nil, apperror.Persistence(err)
	}
	if spa == nil {
		return nil, apperror.NotFound("spa")
	}
	return toSpaResponse(spa), nil
}

func (s *spaService) ActivityLog(ctx context.Context, targetType string, targetId uint, page, pageSize int) ([]*dto.ActivityLogResponse, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	target := specification.TargetIs{TargetType: targetType, TargetId: targetId}

	total, err := s.activityLog.Count(ctx, target)
	if err != nil {
		return nil, 0, apperror.Persistence(err)
	}

	rows, err := s.activityLog.FindAll(ctx,
		target,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, 0, apperror.Persistence(err)
	}

	out := make([]*dto.ActivityLogResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, &dto.ActivityLogResponse{
			Id:          row.Id,
			TargetType:  row.TargetType,
			TargetId:    row.TargetId,
			Action:      row.Action,
			ActorType:   string(row.ActorType),
			ActorId:     row.ActorId,
			ActorName:   row.ActorName,
			OldStatus:   row.OldStatus,
			NewStatus:   row.NewStatus,
			Description: row.Description,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, total, nil
}

func toSpaResponse(spa *entity.Spa) *dto.SpaResponse {
	return &dto.SpaResponse{
		Id:              spa.Id,
		ReferenceNumber: spa.ReferenceNumber,
		Name:            spa.Name,
		Email:           spa.Email,
		Phone:           spa.Phone,
		Address:         spa.Address,
		Region:          spa.Region,
		Status:          string(spa.Status),
		RejectReason:    spa.RejectReason,
		AnnualFeePaid:   spa.AnnualFeePaid,
		PaymentStatus:   string(spa.PaymentFlagAt(time.Now())),
		NextPaymentDate: spa.NextPaymentDate,
		BlacklistReason: spa.BlacklistReason,
		BlacklistedAt:   spa.BlacklistedAt,
		CreatedAt:       spa.CreatedAt,
	}
}

func normalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
