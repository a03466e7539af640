package bootstrap

import (
	"context"
	"log"

	"spa-registry-be/internal/config"
	"spa-registry-be/internal/controller"
	"spa-registry-be/internal/handler"
	"spa-registry-be/internal/pkg/logger"
	"spa-registry-be/internal/pkg/mailer"
	"spa-registry-be/internal/repository/implementation"
	"spa-registry-be/internal/repository/unitofwork"
	"spa-registry-be/internal/service"
	"spa-registry-be/internal/websocket"

	pktNats "spa-registry-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	SpaController       controller.ISpaController
	TherapistController controller.ITherapistController
	PaymentController   controller.IPaymentController
	DirectoryController controller.IDirectoryController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Notification
	NotificationHandler *handler.NotificationHandler
	WebSocketHub        *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	// NATS
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	// Redis
	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/notification.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. Command path: executor -> dispatcher -> consumer
	dispatcher := service.NewPublisherService(cfg.App.DispatchTopic, pubSub, sysLogger)
	executor := service.NewCommandExecutor(uowFactory, dispatcher, sysLogger)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.DispatchTopic,
		wsHub,
		emailService,
		natsPub,
		wsLogger,
	)

	// 4. Read-side repositories (no transaction scope needed)
	spaRepo := implementation.NewSpaRepository(db)
	therapistRepo := implementation.NewTherapistRepository(db)
	paymentRepo := implementation.NewPaymentRepository(db)
	activityLogRepo := implementation.NewActivityLogRepository(db)
	notifRepo := implementation.NewNotificationRepository(db)

	// 5. Domain Services
	spaService := service.NewSpaService(executor, spaRepo, activityLogRepo, sysLogger)
	therapistService := service.NewTherapistService(executor, therapistRepo, sysLogger)
	paymentService := service.NewPaymentService(executor, paymentRepo, sysLogger)
	directoryService := service.NewDirectoryService(spaRepo, sysLogger)
	notifService := service.NewNotificationService(notifRepo)

	// Handler
	notifHandler := handler.NewNotificationHandler(notifService, wsHub, wsLogger)

	// 6. Controllers
	return &Container{
		NotificationHandler: notifHandler,
		WebSocketHub:        wsHub,
		SpaController:       controller.NewSpaController(spaService),
		TherapistController: controller.NewTherapistController(therapistService),
		PaymentController:   controller.NewPaymentController(paymentService),
		DirectoryController: controller.NewDirectoryController(directoryService),

		ConsumerService: consumerService,
	}
}
