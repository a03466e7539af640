package integration

import (
	"context"
	"fmt"
	"log"
	"os"
	"testing"
	"time"

	"spa-registry-be/internal/entity"
	"spa-registry-be/internal/repository/unitofwork"
	"spa-registry-be/internal/service"
	"spa-registry-be/pkg/database"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
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

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.SpaRepository())
	assert.NotNil(t, uow.TherapistRepository())
	assert.NotNil(t, uow.PaymentRepository())
	assert.NotNil(t, uow.ActivityLogRepository())
	assert.NotNil(t, uow.NotificationRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Spa Repository", func(t *testing.T) {
		count, err := uow.SpaRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Spa count: %d", count)
	})

	t.Run("Check Activity Log Repository", func(t *testing.T) {
		count, err := uow.ActivityLogRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Activity log count: %d", count)
	})

	t.Run("Check Transactional Spa Registration", func(t *testing.T) {
		// AdminUserId carries a unique index, so derive one per run.
		adminUserId := uint(time.Now().UnixNano() % 1_000_000_000)

		ctx := context.Background()
		err := uow.Begin(ctx)
		assert.NoError(t, err)
		defer uow.Rollback()

		spa := &entity.Spa{
			ReferenceNumber: service.NewReferenceNumber("SPA"),
			Name:            "Integration Test Spa",
			Email:           fmt.Sprintf("integration-%d@example.com", adminUserId),
			Region:          "Integration Region",
			AdminUserId:     adminUserId,
			Status:          entity.SpaStatusPending,
		}

		err = uow.SpaRepository().Create(ctx, spa)
		assert.NoError(t, err)
		assert.NotZero(t, spa.Id)

		therapist := &entity.Therapist{
			SpaId:          spa.Id,
			FullName:       "Integration Therapist",
			IdentityNumber: fmt.Sprintf("IT-%d", adminUserId),
			Status:         entity.TherapistStatusPending,
		}

		err = uow.TherapistRepository().Create(ctx, therapist)
		assert.NoError(t, err)

		err = uow.Commit()
		assert.NoError(t, err)

		t.Log("Successfully created Spa with Therapist in Transaction")
	})
}
