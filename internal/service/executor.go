package service

import (
	"context"
	"time"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/repository/unitofwork"
)

// DecisionFunc loads and locks the target rows inside the transaction, then
// calls a pure lifecycle rule. Returning (nil, nil) means a no-op success:
// nothing is written and no log or notification row is produced.
type DecisionFunc func(ctx context.Context, uow unitofwork.UnitOfWork) (*lifecycle.Decision, error)

// DispatchItem pairs a committed notification row with its optional
// best-effort email address. The address is dispatch metadata, never stored.
type DispatchItem struct {
	Notification entity.Notification `json:"notification"`
	Email        string              `json:"email,omitempty"`
}

// IDispatcher receives committed notifications and integration events,
// strictly after the transaction has committed. Delivery is best-effort; a
// dispatch failure never surfaces to the originating command.
type IDispatcher interface {
	Dispatch(ctx context.Context, items []DispatchItem, events []lifecycle.EventSpec)
}

type ExecutionResult struct {
	Notifications []entity.Notification
	NoOp          bool
}

// ICommandExecutor applies a Decision as one atomic unit: every mutation, the
// activity-log insert and all notification inserts commit or roll back
// together. No partial effect is ever visible.
type ICommandExecutor interface {
	Execute(ctx context.Context, decide DecisionFunc) (*ExecutionResult, error)
}

type commandExecutor struct {
	uowFactory unitofwork.RepositoryFactory
	dispatcher IDispatcher
	logger     logger.ILogger
}

func NewCommandExecutor(uowFactory unitofwork.RepositoryFactory, dispatcher IDispatcher, log logger.ILogger) ICommandExecutor {
	return &commandExecutor{
		uowFactory: uowFactory,
		dispatcher: dispatcher,
		logger:     log,
	}
}

func (e *commandExecutor) Execute(ctx context.Context, decide DecisionFunc) (*ExecutionResult, error) {
	uow := e.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, apperror.Persistence(err)
	}
	defer uow.Rollback()

	decision, err := decide(ctx, uow)
	if err != nil {
		return nil, err
	}
	if decision == nil {
		// Idempotent no-op, e.g. clearing an already-clear blacklist.
		return &ExecutionResult{NoOp: true}, nil
	}

	// Rows created in this transaction get their ids assigned by the store;
	// remember them so the log and notification specs can reference them.
	created := map[string]uint{}

	for _, mutation := range decision.Mutations {
		switch m := mutation.(type) {
		case lifecycle.CreateSpa:
			if err := uow.SpaRepository().Create(ctx, m.Spa); err != nil {
				return nil, apperror.Persistence(err)
			}
			created["spa"] = m.Spa.Id
		case lifecycle.UpdateSpa:
			if err := uow.SpaRepository().Update(ctx, m.Spa); err != nil {
				return nil, apperror.Persistence(err)
			}
		case lifecycle.CreateTherapist:
			if err := uow.TherapistRepository().Create(ctx, m.Therapist); err != nil {
				return nil, apperror.Persistence(err)
			}
			created["therapist"] = m.Therapist.Id
		case lifecycle.UpdateTherapist:
			if err := uow.TherapistRepository().Update(ctx, m.Therapist); err != nil {
				return nil, apperror.Persistence(err)
			}
		case lifecycle.CreatePayment:
			if err := uow.PaymentRepository().Create(ctx, m.Payment); err != nil {
				return nil, apperror.Persistence(err)
			}
			created["payment"] = m.Payment.Id
		case lifecycle.UpdatePayment:
			if err := uow.PaymentRepository().Update(ctx, m.Payment); err != nil {
				return nil, apperror.Persistence(err)
			}
		}
	}

	logSpec := decision.Log
	if logSpec.TargetId == 0 {
		logSpec.TargetId = created[logSpec.TargetType]
	}
	activityRow := &entity.ActivityLog{
		TargetType:  logSpec.TargetType,
		TargetId:    logSpec.TargetId,
		Action:      logSpec.Action,
		ActorType:   logSpec.Actor.Type,
		ActorId:     logSpec.Actor.Id,
		ActorName:   logSpec.Actor.Name,
		OldStatus:   logSpec.OldStatus,
		NewStatus:   logSpec.NewStatus,
		Description: logSpec.Description,
		CreatedAt:   time.Now(),
	}
	if err := uow.ActivityLogRepository().Create(ctx, activityRow); err != nil {
		return nil, apperror.Persistence(err)
	}

	items := make([]DispatchItem, 0, len(decision.Notifications))
	for _, spec := range decision.Notifications {
		relatedId := spec.RelatedId
		if relatedId == 0 {
			relatedId = created[spec.RelatedType]
		}
		row := &entity.Notification{
			RecipientType: spec.RecipientType,
			RecipientId:   spec.RecipientId,
			RecipientRole: spec.RecipientRole,
			Title:         spec.Title,
			Message:       spec.Message,
			Type:          spec.Type,
			RelatedType:   spec.RelatedType,
			RelatedId:     relatedId,
			CreatedAt:     time.Now(),
		}
		if err := uow.NotificationRepository().Create(ctx, row); err != nil {
			return nil, apperror.Persistence(err)
		}
		items = append(items, DispatchItem{Notification: *row, Email: spec.Email})
	}

	if err := uow.Commit(); err != nil {
		return nil, apperror.Persistence(err)
	}

	// Push strictly after the commit so a delivery failure can never poison
	// the transaction. The rows above are the delivery guarantee of record.
	if e.dispatcher != nil {
		e.dispatcher.Dispatch(ctx, items, decision.Events)
	}

	result := &ExecutionResult{}
	for _, item := range items {
		result.Notifications = append(result.Notifications, item.Notification)
	}
	return result, nil
}
