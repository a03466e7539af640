package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/lifecycle"
	"spa-registry-be/internal/pkg/apperror"
	"spa-registry-be/internal/repository/implementation"
	"spa-registry-be/internal/repository/specification"
	"spa-registry-be/internal/repository/unitofwork"
	"spa-registry-be/internal/service"
	"spa-registry-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type nopDispatcher struct{}

func (nopDispatcher) Dispatch(context.Context, []service.DispatchItem, []lifecycle.EventSpec) {}

// Two admins acting on the same pending row at once must serialize on the
// row lock: exactly one command wins, the loser re-reads the decided status
// and is rejected, and the log gets exactly one row.
func TestConcurrentTherapistDecisionsSerialize(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)

	// Seed one verified spa with a pending therapist.
	adminUserId := uint(time.Now().UnixNano() % 1_000_000_000)
	uow := uowFactory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))

	now := time.Now()
	spa := &entity.Spa{
		ReferenceNumber: service.NewReferenceNumber("SPA"),
		Name:            "Contention Test Spa",
		Email:           fmt.Sprintf("contention-%d@example.com", adminUserId),
		Region:          "Contention Region",
		AdminUserId:     adminUserId,
		Status:          entity.SpaStatusVerified,
		VerifiedAt:      &now,
	}
	require.NoError(t, uow.SpaRepository().Create(ctx, spa))

	therapist := &entity.Therapist{
		SpaId:          spa.Id,
		FullName:       "Contended Therapist",
		IdentityNumber: fmt.Sprintf("CT-%d", adminUserId),
		Status:         entity.TherapistStatusPending,
	}
	require.NoError(t, uow.TherapistRepository().Create(ctx, therapist))
	require.NoError(t, uow.Commit())

	executor := service.NewCommandExecutor(uowFactory, nopDispatcher{}, nopLogger{})
	therapistRepo := implementation.NewTherapistRepository(gormDB)
	svc := service.NewTherapistService(executor, therapistRepo, nopLogger{})

	actor := lifecycle.Actor{Type: entity.ActorTypeAssociationAdmin, Id: 1, Name: "Admin One"}

	// Fire approve and reject concurrently against the same row.
	var wg sync.WaitGroup
	errs := make([]error, 2)

	wg.Add(2)
	go func() {
		defer wg.Done()
		_, errs[0] = svc.Approve(ctx, therapist.Id, actor)
	}()
	go func() {
		defer wg.Done()
		_, errs[1] = svc.Reject(ctx, therapist.Id, "documents incomplete", actor)
	}()
	wg.Wait()

	// Exactly one winner; the loser observes an invalid transition.
	var successes, conflicts int
	for _, e := range errs {
		if e == nil {
			successes++
			continue
		}
		if apperror.KindOf(e) == apperror.KindInvalidTransition {
			conflicts++
		} else {
			t.Fatalf("unexpected error kind: %v", e)
		}
	}
	assert.Equal(t, 1, successes, "exactly one command may win")
	assert.Equal(t, 1, conflicts, "the loser must see an invalid transition")

	// The decided row carries a terminal status.
	final, err := therapistRepo.FindOne(ctx, specification.ByID{ID: therapist.Id})
	require.NoError(t, err)
	require.NotNil(t, final)
	assert.Contains(t, []entity.TherapistStatus{entity.TherapistStatusApproved, entity.TherapistStatusRejected}, final.Status)

	// Exactly one activity-log row for the target: the losing command
	// committed nothing.
	activityRepo := implementation.NewActivityLogRepository(gormDB)
	count, err := activityRepo.Count(ctx,
		specification.Filter("target_type", "therapist"),
		specification.Filter("target_id", therapist.Id),
	)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}
