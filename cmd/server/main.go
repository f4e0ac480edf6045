package main

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/jmroz/inquiry-desk/internal/api"
	"github.com/jmroz/inquiry-desk/internal/classifier"
	"github.com/jmroz/inquiry-desk/internal/kvstore"
	"github.com/jmroz/inquiry-desk/internal/notify"
	"github.com/jmroz/inquiry-desk/internal/repository"
	"github.com/jmroz/inquiry-desk/pkg/config"
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
	var store kvstore.Store
	if cfg.Database.UseInMemory {
		logger.Info("Using in-memory storage")
		store = kvstore.NewMemoryStore()
	} else {
		logger.Info("Using PostgreSQL storage")
		store, err = kvstore.NewPostgresStore(kvstore.DatabaseConfig{
			Host:        cfg.Database.Host,
			Port:        cfg.Database.Port,
			User:        cfg.Database.User,
			Password:    cfg.Database.Password,
			DBName:      cfg.Database.DBName,
			SSLMode:     cfg.Database.SSLMode,
			UseInMemory: cfg.Database.UseInMemory,
		})
		if err != nil {
			logger.Fatal("Failed to initialize storage", zap.Error(err))
		}
	}
	defer store.Close()

	// Initialize classifier
	var clf classifier.Classifier
	if cfg.Classifier.Backend == "openai" && cfg.OpenAI.APIKey != "" {
		logger.Info("Using OpenAI classifier", zap.String("model", cfg.OpenAI.Model))
		clf = classifier.NewOpenAIClassifier(
			cfg.OpenAI.APIKey,
			cfg.OpenAI.Model,
			cfg.OpenAI.MaxTokens,
			cfg.OpenAI.Temperature,
			logger,
		)
	} else {
		logger.Info("Using rule classifier")
		clf = classifier.NewRuleClassifier()
	}

	// Initialize reviewer notifications
	var notifier repository.Notifier
	if cfg.Telegram.Token != "" && cfg.Telegram.ChatID != 0 {
		tn, err := notify.NewTelegramNotifier(cfg.Telegram.Token, cfg.Telegram.ChatID, logger)
		if err != nil {
			logger.Fatal("Failed to create Telegram notifier", zap.Error(err))
		}
		notifier = tn
	}

	// Wire repositories around the single store handle
	configStore := repository.NewConfigStore(store)
	knowledge := repository.NewKnowledgeRepository(store)
	stats := repository.NewStatsAggregator(store)
	inquiries := repository.NewInquiryRepository(store, clf, configStore, knowledge, stats, notifier, logger)
	bootstrap := repository.NewBootstrapper(store, clf, logger)

	handler := api.NewHandler(api.Deps{
		Inquiries: inquiries,
		Knowledge: knowledge,
		Config:    configStore,
		Stats:     stats,
		Bootstrap: bootstrap,
		Token:     cfg.Server.Token,
	})

	logger.Info("Starting server", zap.String("address", cfg.Server.Address))
	if err := http.ListenAndServe(cfg.Server.Address, handler); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
