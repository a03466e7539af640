package service

import (
	"context"
	"strings"
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

type ITherapistService interface {
	Submit(ctx context.Context, spaId uint, req *dto.SubmitTherapistRequest, actor lifecycle.Actor) (*dto.TherapistResponse, error)
	Approve(ctx context.Context, therapistId uint, actor lifecycle.Actor) (*dto.TherapistResponse, error)
	Reject(ctx context.Context, therapistId uint, reason string, actor lifecycle.Actor) (*dto.TherapistResponse, error)
	Resign(ctx context.Context, therapistId uint, actor lifecycle.Actor) (*dto.TherapistResponse, error)
	Terminate(ctx context.Context, therapistId uint, req *dto.TerminateTherapistRequest, actor lifecycle.Actor) (*dto.TherapistResponse, error)
	ListBySpa(ctx context.Context, spaId uint, page, pageSize int) ([]*dto.TherapistResponse, int64, error)
}

type therapistService struct {
	executor      ICommandExecutor
	therapistRepo contract.TherapistRepository
	logger        logger.ILogger
}

func NewTherapistService(executor ICommandExecutor, therapistRepo contract.TherapistRepository, log logger.ILogger) ITherapistService {
	return &therapistService{
		executor:      executor,
		therapistRepo: therapistRepo,
		logger:        log,
	}
}

func (s *therapistService) Submit(ctx context.Context, spaId uint, req *dto.SubmitTherapistRequest, actor lifecycle.Actor) (*dto.TherapistResponse, error) {
	var submitted *entity.Therapist

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: spaId})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		// A terminated practitioner stays terminated; look up any prior record
		// for the same identity document before admitting a fresh submission.
		var prior *entity.Therapist
		if strings.TrimSpace(req.IdentityNumber) != "" {
			prior, err = uow.TherapistRepository().FindOne(ctx,
				specification.ByIdentityNumber{IdentityNumber: req.IdentityNumber},
				specification.OrderBy{Field: "created_at", Desc: true},
			)
			if err != nil {
				return nil, apperror.Persistence(err)
			}
		}

		d, err := lifecycle.DecideSubmitTherapist(spa, prior, lifecycle.SubmitTherapistInput{
			FullName:       req.FullName,
			Email:          req.Email,
			IdentityNumber: req.IdentityNumber,
		}, actor, time.Now())
		if err != nil {
			return nil, err
		}
		submitted = d.Therapist()
		return d, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("TherapistService", "therapist submitted", map[string]interface{}{
		"therapist_id": submitted.Id,
		"spa_id":       spaId,
	})
	return toTherapistResponse(submitted), nil
}

func (s *therapistService) Approve(ctx context.Context, therapistId uint, actor lifecycle.Actor) (*dto.TherapistResponse, error) {
	return s.decide(ctx, therapistId, func(t *entity.Therapist, spa *entity.Spa, now time.Time) (*lifecycle.Decision, error) {
		return lifecycle.DecideApproveTherapist(t, spa, actor, now)
	})
}

func (s *therapistService) Reject(ctx context.Context, therapistId uint, reason string, actor lifecycle.Actor) (*dto.TherapistResponse, error) {
	return s.decide(ctx, therapistId, func(t *entity.Therapist, spa *entity.Spa, now time.Time) (*lifecycle.Decision, error) {
		return lifecycle.DecideRejectTherapist(t, spa, actor, reason, now)
	})
}

func (s *therapistService) Resign(ctx context.Context, therapistId uint, actor lifecycle.Actor) (*dto.TherapistResponse, error) {
	return s.decide(ctx, therapistId, func(t *entity.Therapist, spa *entity.Spa, now time.Time) (*lifecycle.Decision, error) {
		return lifecycle.DecideResignTherapist(t, actor, now)
	})
}

func (s *therapistService) Terminate(ctx context.Context, therapistId uint, req *dto.TerminateTherapistRequest, actor lifecycle.Actor) (*dto.TherapistResponse, error) {
	return s.decide(ctx, therapistId, func(t *entity.Therapist, spa *entity.Spa, now time.Time) (*lifecycle.Decision, error) {
		return lifecycle.DecideTerminateTherapist(t, actor, req.Reason, req.SupportingDocRef, now)
	})
}

// decide runs one therapist transition: lock the therapist row, load its spa,
// then hand both snapshots to the rule.
func (s *therapistService) decide(ctx context.Context, therapistId uint, rule func(*entity.Therapist, *entity.Spa, time.Time) (*lifecycle.Decision, error)) (*dto.TherapistResponse, error) {
	var updated *entity.Therapist

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		t, err := uow.TherapistRepository().FindOne(ctx, specification.ByID{ID: therapistId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if t == nil {
			return nil, apperror.NotFound("therapist")
		}

		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: t.SpaId})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		d, err := rule(t, spa, time.Now())
		if err != nil {
			return nil, err
		}
		updated = d.Therapist()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return toTherapistResponse(updated), nil
}

func (s *therapistService) ListBySpa(ctx context.Context, spaId uint, page, pageSize int) ([]*dto.TherapistResponse, int64, error) {
	page, pageSize = normalizePage(page, pageSize)
	owned := specification.OwnedBySpa{SpaId: spaId}

	total, err := s.therapistRepo.Count(ctx, owned)
	if err != nil {
		return nil, 0, apperror.Persistence(err)
	}

	rows, err := s.therapistRepo.FindAll(ctx,
		owned,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)
	if err != nil {
		return nil, 0, apperror.Persistence(err)
	}

	out := make([]*dto.TherapistResponse, 0, len(rows))
	for _, row := range rows {
		out = append(out, toTherapistResponse(row))
	}
	return out, total, nil
}

func toTherapistResponse(t *entity.Therapist) *dto.TherapistResponse {
	return &dto.TherapistResponse{
		Id:           t.Id,
		SpaId:        t.SpaId,
		FullName:     t.FullName,
		Email:        t.Email,
		Status:       string(t.Status),
		RejectReason: t.RejectReason,
		ApprovedBy:   t.ApprovedBy,
		ApprovedAt:   t.ApprovedAt,
		CreatedAt:    t.CreatedAt,
	}
}
