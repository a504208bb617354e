package bootstrap

import (
	"context"
	"log"

	"campus-chatbot-be/internal/config"
	"campus-chatbot-be/internal/controller"
	"campus-chatbot-be/internal/pkg/logger"
	"campus-chatbot-be/internal/pkg/serverutils"
	"campus-chatbot-be/internal/repository/contract"
	"campus-chatbot-be/internal/repository/memory"
	"campus-chatbot-be/internal/repository/redisstore"
	"campus-chatbot-be/internal/repository/unitofwork"
	"campus-chatbot-be/internal/service"
	"campus-chatbot-be/pkg/nlu/dialogflow"
	"campus-chatbot-be/pkg/nlu/factory"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ConversationController controller.IConversationController
	HistoryController      controller.IHistoryController

	// Middleware
	HistoryGuard fiber.Handler

	Logger logger.ILogger
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Session Registry
	var registry contract.SessionRegistry
	if cfg.Session.Store == "redis" {
		redisRegistry, err := redisstore.NewSessionRegistry(cfg.Session.RedisURL, cfg.Session.IdleWindow)
		if err != nil {
			log.Fatalf("[FATAL] Failed to connect Redis session registry: %v", err)
		}
		registry = redisRegistry
		log.Printf("[INFO] Using Session Registry: REDIS (%s)", cfg.Session.RedisURL)
	} else {
		registry = memory.NewSessionRegistry(cfg.Session.IdleWindow)
		log.Printf("[INFO] Using Session Registry: MEMORY (idle window %s)", cfg.Session.IdleWindow)
	}

	// 3. NLU Provider
	nluProvider, err := factory.NewNLUProvider(context.Background(), cfg.Dialogflow.Provider, dialogflow.Config{
		ProjectID:       cfg.Dialogflow.ProjectID,
		Location:        cfg.Dialogflow.Location,
		AgentID:         cfg.Dialogflow.AgentID,
		LanguageCode:    cfg.Dialogflow.LanguageCode,
		CredentialsFile: cfg.Dialogflow.CredentialsFile,
	})
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize NLU Provider: %v", err)
	}
	log.Printf("[INFO] Using NLU Provider: %s", cfg.Dialogflow.Provider)

	// 4. Services
	conversationService := service.NewConversationService(registry, nluProvider, cfg.Dialogflow.RequestTimeout, sysLogger)
	historyService := service.NewHistoryService(uowFactory)

	// 5. Controllers & Middleware
	return &Container{
		ConversationController: controller.NewConversationController(conversationService),
		HistoryController:      controller.NewHistoryController(historyService, sysLogger),
		HistoryGuard:           serverutils.EmailDomainGuard(cfg.Auth, uowFactory, sysLogger),
		Logger:                 sysLogger,
	}
}
