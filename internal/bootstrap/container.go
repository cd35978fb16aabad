package bootstrap

import (
	"context"
	"log"

	"skill-exchange-be/internal/config"
	"skill-exchange-be/internal/controller"
	"skill-exchange-be/internal/pkg/logger"
	"skill-exchange-be/internal/repository/memory"
	"skill-exchange-be/internal/repository/unitofwork"
	"skill-exchange-be/internal/service"
	"skill-exchange-be/internal/websocket"
	"skill-exchange-be/pkg/embedding"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const messageCreatedTopic = "message.created"

type Container struct {
	// Controllers
	AuthController  controller.IAuthController
	UserController  controller.IUserController
	SkillController controller.ISkillController
	ChatController  controller.IChatController

	// Background services (exposed for main.go to run)
	BroadcastService service.IBroadcastService

	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Embedding provider
	var embeddingProvider embedding.EmbeddingProvider
	if cfg.Ai.EmbeddingProvider == "ollama" {
		embeddingProvider = embedding.NewOllamaProvider(
			cfg.Ai.OllamaBaseURL,
			cfg.Ai.OllamaModel,
		)
		log.Printf("[INFO] Using Embedding Provider: OLLAMA (%s)", cfg.Ai.OllamaModel)
	} else {
		embeddingProvider = embedding.NewGeminiProvider(cfg.Ai.GeminiApiKey)
		log.Printf("[INFO] Using Embedding Provider: GEMINI")
	}
	embeddingCache := memory.NewEmbeddingCache(cfg.Ai.EmbeddingCacheTTL)

	// 4. Redis (optional, cross-instance websocket fan-out)
	var rdb *redis.Client
	if cfg.App.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		rdb = redis.NewClient(opt)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Running single-instance", err)
			rdb = nil
		}
	}

	// 5. WebSocket hub
	wsLogger := logger.NewIsolatedLogger("logs/chat_ws.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 6. Services
	publisherService := service.NewPublisherService(messageCreatedTopic, pubSub)
	broadcastService := service.NewBroadcastService(pubSub, messageCreatedTopic, wsHub, wsLogger)

	authService := service.NewAuthService(uowFactory, cfg.Auth.JwtSecret, cfg.Auth.TokenTTL)
	userService := service.NewUserService(uowFactory)
	skillService := service.NewSkillService(uowFactory, embeddingProvider, embeddingCache, sysLogger)
	chatService := service.NewChatService(uowFactory, publisherService, sysLogger)

	// 7. Controllers
	return &Container{
		AuthController:  controller.NewAuthController(authService),
		UserController:  controller.NewUserController(userService),
		SkillController: controller.NewSkillController(skillService),
		ChatController:  controller.NewChatController(chatService, wsHub, wsLogger),

		BroadcastService: broadcastService,
		WebSocketHub:     wsHub,
	}
}
