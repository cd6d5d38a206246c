package bootstrap

import (
	"context"
	"log"
	"time"

	"case-governance-be/internal/config"
	"case-governance-be/internal/controller"
	"case-governance-be/internal/pkg/logger"
	"case-governance-be/internal/pkg/mailer"
	"case-governance-be/internal/repository/memory"
	"case-governance-be/internal/repository/unitofwork"
	"case-governance-be/internal/service"
	"case-governance-be/pkg/embedding"
	"case-governance-be/pkg/llm/ollama"
	"case-governance-be/pkg/lock"

	pktNats "case-governance-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController       controller.IAuthController
	ChatController       controller.IChatController
	CaseController       controller.ICaseController
	DraftController      controller.IDraftController
	DocumentController   controller.IDocumentController
	GovernanceController controller.IGovernanceController
	AuditController      controller.IAuditController

	// Background services, run from main
	ConsumerService service.IConsumerService

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// In-process embed queue
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// Embedding backend per config
	var embeddingProvider embedding.Provider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Keys.GoogleGemini)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}

	llmProvider := ollama.NewOllamaProvider(cfg.Ai.OllamaBaseURL, cfg.Ai.LLMModel)
	log.Printf("[INFO] Using LLM Provider: OLLAMA (%s)", cfg.Ai.LLMModel)

	// In-memory session storage for the public tier
	sessionRepo := memory.NewSessionRepository()

	// NATS secondary event feed
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		natsPub = nil
	}

	// Redis backs the per-draft transition lock
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
	draftLocker := lock.NewDraftLocker(rdb, 10*time.Second)

	// Services
	publisherService := service.NewPublisherService(pubSub, cfg.Ai.EmbedTopic)
	auditService := service.NewAuditService(uowFactory, natsPub, sysLogger)
	retrievalService := service.NewRetrievalService(uowFactory, embeddingProvider, publisherService, auditService, sysLogger)
	consumerService := service.NewConsumerService(pubSub, cfg.Ai.EmbedTopic, retrievalService, sysLogger)

	governanceService := service.NewGovernanceService(uowFactory, auditService, emailService, cfg.Alerts.OnCallEmail, sysLogger)
	draftService := service.NewDraftService(uowFactory, retrievalService, governanceService, auditService, llmProvider, draftLocker, sysLogger)
	chatService := service.NewChatService(sessionRepo, governanceService, llmProvider, sysLogger)
	caseService := service.NewCaseService(uowFactory, governanceService)
	authService := service.NewAuthService(uowFactory, cfg.Keys.JwtSecret)

	return &Container{
		AuthController:       controller.NewAuthController(authService),
		ChatController:       controller.NewChatController(chatService),
		CaseController:       controller.NewCaseController(caseService),
		DraftController:      controller.NewDraftController(draftService),
		DocumentController:   controller.NewDocumentController(retrievalService),
		GovernanceController: controller.NewGovernanceController(governanceService, retrievalService),
		AuditController:      controller.NewAuditController(auditService),
		ConsumerService:      consumerService,
		Logger:               sysLogger,
	}
}
