package bootstrap

import (
	"context"
	"log"
	"time"

	"the-family-be/internal/config"
	"the-family-be/internal/constant"
	"the-family-be/internal/controller"
	"the-family-be/internal/handler"
	"the-family-be/internal/pkg/logger"
	"the-family-be/internal/pkg/mailer"
	"the-family-be/internal/repository/implementation"
	"the-family-be/internal/repository/unitofwork"
	"the-family-be/internal/service"
	"the-family-be/internal/websocket"
	"the-family-be/pkg/llm/factory"
	"the-family-be/pkg/orchestrator"

	pktNats "the-family-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const timelineTopic = "timeline.events"

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	MemberController     controller.IMemberController
	SitDownController    controller.ISitDownController
	MessageController    controller.IMessageController
	CommissionController controller.ICommissionController
	CatalogController    controller.ICatalogController

	// Background Services (Exposed for main.go to run)
	ConsumerService     service.IConsumerService
	NotificationService service.INotificationService

	// WebSockets
	TimelineHandler *handler.TimelineHandler
	WebSocketHub    *websocket.Hub
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
		cfg.App.ClientURL,
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
	natsSub, err := pktNats.NewSubscriber(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Subscriber: %v", err)
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
	wsLogger := logger.NewIsolatedLogger("logs/timeline.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	publisherService := service.NewPublisherService(timelineTopic, pubSub)
	consumerService := service.NewConsumerService(pubSub, timelineTopic, wsHub, sysLogger)
	notificationService := service.NewNotificationService(natsSub, wsHub, wsLogger)

	// 3. AI Orchestration
	registry := factory.NewRegistry(factory.Keys{
		Anthropic: cfg.Ai.AnthropicAPIKey,
		OpenAI:    cfg.Ai.OpenAIAPIKey,
		Gemini:    cfg.Ai.GeminiAPIKey,
	})

	// The orchestrator writes through notifying stores so member
	// responses and typing changes push to subscribed clients.
	messageRepo := service.NewNotifyingMessageRepository(implementation.NewMessageRepository(db), publisherService)
	typingRepo := service.NewNotifyingTypingIndicatorRepository(implementation.NewTypingIndicatorRepository(db), publisherService)

	orch := orchestrator.New(messageRepo, typingRepo, registry, sysLogger, orchestrator.Config{
		RateLimit:          time.Duration(cfg.Ai.RateLimitMs) * time.Millisecond,
		MaxContextMessages: constant.MaxContextMessages,
		MaxResponseTokens:  cfg.Ai.MaxResponseTokens,
	})

	// 4. Services
	authService := service.NewAuthService(uowFactory, cfg.Auth)
	catalogService := service.NewCatalogService(uowFactory, time.Duration(cfg.Ai.CatalogCacheTTLSec)*time.Second)
	memberService := service.NewMemberService(uowFactory, catalogService)
	sitDownService := service.NewSitDownService(uowFactory)
	messageService := service.NewMessageService(uowFactory, orch, publisherService, natsPub, sysLogger)
	commissionService := service.NewCommissionService(uowFactory, emailService, natsPub, sysLogger)

	timelineHandler := handler.NewTimelineHandler(wsHub, wsLogger)

	// 5. Controllers
	return &Container{
		AuthController:       controller.NewAuthController(authService),
		MemberController:     controller.NewMemberController(memberService),
		SitDownController:    controller.NewSitDownController(sitDownService),
		MessageController:    controller.NewMessageController(messageService),
		CommissionController: controller.NewCommissionController(commissionService),
		CatalogController:    controller.NewCatalogController(catalogService),

		ConsumerService:     consumerService,
		NotificationService: notificationService,
		TimelineHandler:     timelineHandler,
		WebSocketHub:        wsHub,
	}
}
