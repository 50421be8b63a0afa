package main

import (
	"github.com/propdesk/fundedbot/internal/bot"
	"github.com/propdesk/fundedbot/internal/cache"
	"github.com/propdesk/fundedbot/internal/classifier"
	"github.com/propdesk/fundedbot/internal/firms"
	"github.com/propdesk/fundedbot/internal/llm"
	"github.com/propdesk/fundedbot/internal/responder"
	"github.com/propdesk/fundedbot/internal/router"
	"github.com/propdesk/fundedbot/internal/storage"
	"github.com/propdesk/fundedbot/pkg/config"
	"go.uber.org/zap"
)

func main() {
	// Initialize logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Load configuration
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err), zap.String("path", "config.yaml"))
	}

	// Initialize storage
	var store storage.Storage
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = storage.NewMemoryStorage()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = storage.NewPostgresStorage(storage.DatabaseConfig{
			Host:     cfg.Database.Host,
			Port:     cfg.Database.Port,
			User:     cfg.Database.User,
			Password: cfg.Database.Password,
			DBName:   cfg.Database.DBName,
			SSLMode:  cfg.Database.SSLMode,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Firm and intent configuration fails fast here, never at query time.
	resolver, err := firms.NewResolver(firms.Default())
	if err != nil {
		logger.Fatal("Invalid firm configuration", zap.Error(err))
	}

	clfCfg := classifier.DefaultConfig()
	clfCfg.KeywordLengthCutoff = cfg.Router.KeywordLengthCutoff
	clfCfg.BoostMultiplier = cfg.Router.BoostMultiplier
	clf, err := classifier.New(clfCfg, classifier.DefaultIntents())
	if err != nil {
		logger.Fatal("Invalid intent configuration", zap.Error(err))
	}

	responses := responder.New(responder.DefaultAnswers())

	rt := router.New(router.Config{
		MinAnswerConfidence: cfg.Router.MinAnswerConfidence,
		BypassConfidence:    cfg.Router.BypassConfidence,
	}, clf, resolver, responses, logger)

	responseCache := cache.New(cache.Config{
		MaxEntries: cfg.Cache.MaxEntries,
		TTL:        cfg.Cache.TTL,
	}, cache.DefaultPrecomputed())

	generator := llm.NewGenerator(
		cfg.OpenAI.APIKey,
		cfg.OpenAI.Model,
		cfg.OpenAI.MaxTokens,
		cfg.OpenAI.Temperature,
		logger,
	)

	// Initialize bot
	b, err := bot.New(cfg.Telegram.Token, rt, responseCache, resolver, store, generator, logger)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	// Start the bot
	if err := b.Start(); err != nil {
		logger.Fatal("Bot error", zap.Error(err))
	}
}
