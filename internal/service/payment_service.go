package service

import (
	"context"
	"time"

	"spa-registry-be/internal/billing"
	"spa-registry-be/internal/dto"
	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"
	"spa-registry-be/internal/repository/unitofwork"
)

type IPaymentService interface {
	ListPlans() []*dto.PlanResponse
	Initiate(ctx context.Context, spaId uint, req *dto.InitiatePaymentRequest, actor lifecycle.Actor) (*dto.InitiatePaymentResponse, error)
	ResolveBankTransfer(ctx context.Context, paymentId uint, req *dto.ResolveBankTransferRequest, actor lifecycle.Actor) (*dto.PaymentResponse, error)
	History(ctx context.Context, spaId uint, page, pageSize int) (*dto.PaymentHistoryResponse, error)
	PendingBankTransfers(ctx context.Context, page, pageSize int) (*dto.PaymentHistoryResponse, error)
}

type paymentService struct {
	executor    ICommandExecutor
	paymentRepo contract.PaymentRepository
	logger      logger.ILogger
}

func NewPaymentService(executor ICommandExecutor, paymentRepo contract.PaymentRepository, log logger.ILogger) IPaymentService {
	return &paymentService{
		executor:    executor,
		paymentRepo: paymentRepo,
		logger:      log,
	}
}

func (s *paymentService) ListPlans() []*dto.PlanResponse {
	plans := billing.ListPlans()
	out := make([]*dto.PlanResponse, 0, len(plans))
	for _, p := range plans {
		out = append(out, &dto.PlanResponse{
			Id:             p.Id,
			DisplayName:    p.DisplayName,
			Type:           string(p.Type),
			Amount:         p.Amount,
			DurationMonths: p.DurationMonths,
		})
	}
	return out
}

func (s *paymentService) Initiate(ctx context.Context, spaId uint, req *dto.InitiatePaymentRequest, actor lifecycle.Actor) (*dto.InitiatePaymentResponse, error) {
	var created *entity.Payment

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		// Card payments advance the spa's billing flags, so the spa row is
		// locked either way to serialize against a concurrent resolution.
		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: spaId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		var bank *entity.BankDetails
		if req.BankDetails != nil {
			bank = &entity.BankDetails{
				BankName:      req.BankDetails.BankName,
				AccountName:   req.BankDetails.AccountName,
				TransferRef:   req.BankDetails.TransferRef,
				TransferredAt: req.BankDetails.TransferredAt,
			}
		}

		d, err := lifecycle.DecideInitiatePayment(spa, req.PlanId, entity.PaymentMethod(req.Method), bank, NewReferenceNumber("PAY"), actor, time.Now())
		if err != nil {
			return nil, err
		}
		created = d.Payment()
		return d, nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("PaymentService", "payment initiated", map[string]interface{}{
		"payment_id": created.Id,
		"spa_id":     spaId,
		"method":     string(created.Method),
		"status":     created.DisplayStatus(),
	})
	return &dto.InitiatePaymentResponse{
		PaymentId:       created.Id,
		ReferenceNumber: created.ReferenceNumber,
		Status:          created.DisplayStatus(),
	}, nil
}

func (s *paymentService) ResolveBankTransfer(ctx context.Context, paymentId uint, req *dto.ResolveBankTransferRequest, actor lifecycle.Actor) (*dto.PaymentResponse, error) {
	var resolved *entity.Payment

	_, err := s.executor.Execute(ctx, func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		payment, err := uow.PaymentRepository().FindOne(ctx, specification.ByID{ID: paymentId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if payment == nil {
			return nil, apperror.NotFound("payment")
		}

		spa, err := uow.SpaRepository().FindOne(ctx, specification.ByID{ID: payment.SpaId}, specification.ForUpdate{})
		if err != nil {
			return nil, apperror.Persistence(err)
		}
		if spa == nil {
			return nil, apperror.NotFound("spa")
		}

		d, err := lifecycle.DecideResolveBankTransfer(payment, spa, lifecycle.ResolveDecision(req.Decision), actor, time.Now())
		if err != nil {
			return nil, err
		}
		resolved = d.Payment()
		return d, nil
	})
	if err != nil {
		return nil, err
	}
	return toPaymentResponse(resolved), nil
}

func (s *paymentService) History(ctx context.Context, spaId uint, page, pageSize int) (*dto.PaymentHistoryResponse, error) {
	return s.list(ctx, page, pageSize, specification.OwnedBySpa{SpaId: spaId})
}

// PendingBankTransfers feeds the association-admin review queue.
func (s *paymentService) PendingBankTransfers(ctx context.Context, page, pageSize int) (*dto.PaymentHistoryResponse, error) {
	return s.list(ctx, page, pageSize,
		specification.Filter("method", string(entity.PaymentMethodBankTransfer)),
		specification.Filter("status", string(entity.PaymentStatusPending)),
	)
}

func (s *paymentService) list(ctx context.Context, page, pageSize int, specs ...specification.Specification) (*dto.PaymentHistoryResponse, error) {
	page, pageSize = normalizePage(page, pageSize)

	total, err := s.paymentRepo.Count(ctx, specs...)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	rows, err := s.paymentRepo.FindAll(ctx, append(specs,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: pageSize, Offset: (page - 1) * pageSize},
	)...)
	if err != nil {
		return nil, apperror.Persistence(err)
	}

	items := make([]*dto.PaymentResponse, 0, len(rows))
	for _, row := range rows {
		items = append(items, toPaymentResponse(row))
	}
	return &dto.PaymentHistoryResponse{
		Items:    items,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}

func toPaymentResponse(p *entity.Payment) *dto.PaymentResponse {
	return &dto.PaymentResponse{
		Id:                   p.Id,
		SpaId:                p.SpaId,
		ReferenceNumber:      p.ReferenceNumber,
		Type:                 string(p.Type),
		Method:               string(p.Method),
		PlanId:               p.PlanId,
		Amount:               p.Amount,
		Status:               string(p.Status),
		DisplayStatus:        p.DisplayStatus(),
		BankTransferApproved: p.BankTransferApproved,
		ResolvedAt:           p.ResolvedAt,
		CreatedAt:            p.CreatedAt,
	}
}
