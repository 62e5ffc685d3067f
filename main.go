package main

import (
	"context"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"localchat/internal/api"
	"localchat/internal/config"
	"localchat/internal/service/ai"
	"localchat/internal/service/lookup"
	"localchat/internal/store"
)

func main() {
	// Optional .env with GEMINI_API_KEY for local development.
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	cfg, err := config.Load(os.Getenv("LOCALCHAT_CONFIG"))
	if err != nil {
		sugar.Fatalw("load config", "error", err)
	}

	ctx := context.Background()
	aiService, err := ai.NewService(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model, sugar)
	if err != nil {
		sugar.Fatalw("init gemini service", "error", err)
	}

	conversations, err := store.New(cfg.ConversationsDir, sugar)
	if err != nil {
		sugar.Fatalw("init conversation store", "error", err)
	}

	handler := api.NewHandler(
		aiService,
		lookup.NewClient(sugar),
		conversations,
		ai.NewContextRegistry(),
		cfg.StaticDir,
		sugar,
	)

	router := gin.Default()
	handler.RegisterRoutes(router)

	sugar.Infow("chatbot server listening", "address", cfg.ServerAddress)
	if err := router.Run(cfg.ServerAddress); err != nil {
		sugar.Fatalw("server stopped", "error", err)
	}
}
