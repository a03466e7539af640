package service

import (
	"context"
	"errors"
	"testing"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/repository/contract"
	"spa-registry-be/internal/repository/specification"
	"spa-registry-be/internal/repository/unitofwork"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type fakeSpaRepo struct {
	created []*entity.Spa
	updated []*entity.Spa
}

func (r *fakeSpaRepo) Create(_ context.Context, spa *entity.Spa) error {
	if spa.Id == 0 {
		spa.Id = 101
	}
	r.created = append(r.created, spa)
	return nil
}
func (r *fakeSpaRepo) Update(_ context.Context, spa *entity.Spa) error {
	r.updated = append(r.updated, spa)
	return nil
}
func (r *fakeSpaRepo) FindOne(context.Context, ...specification.Specification) (*entity.Spa, error) {
	return nil, nil
}
func (r *fakeSpaRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Spa, error) {
	return nil, nil
}
func (r *fakeSpaRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeSpaRepo) AggregateRegions(context.Context, ...specification.Specification) ([]entity.RegionCount, error) {
	return nil, nil
}

type fakeTherapistRepo struct{ contract.TherapistRepository }

type fakePaymentRepo struct{ contract.PaymentRepository }

type fakeActivityLogRepo struct {
	rows []*entity.ActivityLog
	err  error
}

func (r *fakeActivityLogRepo) Create(_ context.Context, row *entity.ActivityLog) error {
	if r.err != nil {
		return r.err
	}
	row.Id = uint(400 + len(r.rows))
	r.rows = append(r.rows, row)
	return nil
}
func (r *fakeActivityLogRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.ActivityLog, error) {
	return nil, nil
}
func (r *fakeActivityLogRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}

type fakeNotificationRepo struct {
	rows []*entity.Notification
}

func (r *fakeNotificationRepo) Create(_ context.Context, row *entity.Notification) error {
	row.Id = uint(500 + len(r.rows))
	r.rows = append(r.rows, row)
	return nil
}
func (r *fakeNotificationRepo) FindAll(context.Context, ...specification.Specification) ([]*entity.Notification, error) {
	return nil, nil
}
func (r *fakeNotificationRepo) Count(context.Context, ...specification.Specification) (int64, error) {
	return 0, nil
}
func (r *fakeNotificationRepo) MarkAsRead(context.Context, uint) error { return nil }
func (r *fakeNotificationRepo) MarkAllAsRead(context.Context, specification.RecipientMatch) error {
	return nil
}

type fakeUow struct {
	spas       *fakeSpaRepo
	activity   *fakeActivityLogRepo
	notifs     *fakeNotificationRepo
	began      bool
	committed  bool
	rolledBack bool
}

func newFakeUow() *fakeUow {
	return &fakeUow{
		spas:     &fakeSpaRepo{},
		activity: &fakeActivityLogRepo{},
		notifs:   &fakeNotificationRepo{},
	}
}

func (u *fakeUow) Begin(context.Context) error { u.began = true; return nil }
func (u *fakeUow) Commit() error               { u.committed = true; return nil }
func (u *fakeUow) Rollback() error {
	if !u.committed {
		u.rolledBack = true
	}
	return nil
}
func (u *fakeUow) SpaRepository() contract.SpaRepository                   { return u.spas }
func (u *fakeUow) TherapistRepository() contract.TherapistRepository       { return &fakeTherapistRepo{} }
func (u *fakeUow) PaymentRepository() contract.PaymentRepository           { return &fakePaymentRepo{} }
func (u *fakeUow) ActivityLogRepository() contract.ActivityLogRepository   { return u.activity }
func (u *fakeUow) NotificationRepository() contract.NotificationRepository { return u.notifs }

type fakeFactory struct{ uow *fakeUow }

func (f *fakeFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork { return f.uow }

type capturingDispatcher struct {
	items  []DispatchItem
	events []lifecycle.EventSpec
	calls  int
}

func (d *capturingDispatcher) Dispatch(_ context.Context, items []DispatchItem, events []lifecycle.EventSpec) {
	d.calls++
	d.items = append(d.items, items...)
	d.events = append(d.events, events...)
}

func registerDecision() *lifecycle.Decision {
	spa := &entity.Spa{Name: "Serenity Spa", Email: "owner@serenity.test", Status: entity.SpaStatusPending}
	return &lifecycle.Decision{
		Mutations: []lifecycle.Mutation{lifecycle.CreateSpa{Spa: spa}},
		Log: lifecycle.ActivityLogSpec{
			TargetType: "spa",
			Action:     "register",
			Actor:      lifecycle.Actor{Type: entity.ActorTypeSpaAdmin, Id: 3},
			NewStatus:  string(entity.SpaStatusPending),
		},
		Notifications: []lifecycle.NotificationSpec{{
			RecipientType: entity.RecipientTypeRole,
			RecipientRole: entity.RoleAssociationAdmin,
			Title:         "New spa registration",
			Type:          "registration",
			RelatedType:   "spa",
		}},
		Events: []lifecycle.EventSpec{{Type: "spa.registered"}},
	}
}

func TestExecuteCommitsDecisionAtomically(t *testing.T) {
	uow := newFakeUow()
	dispatcher := &capturingDispatcher{}
	executor := NewCommandExecutor(&fakeFactory{uow: uow}, dispatcher, nopLogger{})

	result, err := executor.Execute(context.Background(), func(context.Context, unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		return registerDecision(), nil
	})
	require.NoError(t, err)
	assert.False(t, result.NoOp)

	assert.True(t, uow.began)
	assert.True(t, uow.committed)
	assert.False(t, uow.rolledBack)

	require.Len(t, uow.spas.created, 1)
	assert.Equal(t, uint(101), uow.spas.created[0].Id)

	// The log row's target id is backfilled from the created spa.
	require.Len(t, uow.activity.rows, 1)
	assert.Equal(t, uint(101), uow.activity.rows[0].TargetId)
	assert.Equal(t, "register", uow.activity.rows[0].Action)

	require.Len(t, uow.notifs.rows, 1)
	assert.Equal(t, uint(101), uow.notifs.rows[0].RelatedId)

	assert.Equal(t, 1, dispatcher.calls)
	require.Len(t, dispatcher.items, 1)
	assert.Equal(t, "role:lsa", dispatcher.items[0].Notification.Topic())
	require.Len(t, dispatcher.events, 1)
	assert.Equal(t, "spa.registered", dispatcher.events[0].Type)
}

func TestExecuteRejectionRollsBack(t *testing.T) {
	uow := newFakeUow()
	dispatcher := &capturingDispatcher{}
	executor := NewCommandExecutor(&fakeFactory{uow: uow}, dispatcher, nopLogger{})

	_, err := executor.Execute(context.Background(), func(context.Context, unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		return nil, apperror.InvalidTransition("spa is verified")
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindInvalidTransition, apperror.KindOf(err))

	assert.False(t, uow.committed)
	assert.True(t, uow.rolledBack)
	assert.Zero(t, dispatcher.calls, "nothing may be dispatched on rollback")
	assert.Empty(t, uow.activity.rows)
}

func TestExecuteNilDecisionIsNoOp(t *testing.T) {
	uow := newFakeUow()
	dispatcher := &capturingDispatcher{}
	executor := NewCommandExecutor(&fakeFactory{uow: uow}, dispatcher, nopLogger{})

	result, err := executor.Execute(context.Background(), func(context.Context, unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.True(t, result.NoOp)

	assert.False(t, uow.committed)
	assert.Empty(t, uow.activity.rows, "a no-op writes no log row")
	assert.Empty(t, uow.notifs.rows)
	assert.Zero(t, dispatcher.calls)
}

func TestExecuteLogInsertFailureAbortsAll(t *testing.T) {
	uow := newFakeUow()
	uow.activity.err = errors.New("disk full")
	dispatcher := &capturingDispatcher{}
	executor := NewCommandExecutor(&fakeFactory{uow: uow}, dispatcher, nopLogger{})

	_, err := executor.Execute(context.Background(), func(context.Context, unitofwork.UnitOfWork) (*lifecycle.Decision, error) {
		return registerDecision(), nil
	})
	require.Error(t, err)
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))

	assert.False(t, uow.committed)
	assert.True(t, uow.rolledBack)
	assert.Zero(t, dispatcher.calls)
}
