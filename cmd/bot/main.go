package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wordmatch/internal/config"
	"wordmatch/internal/handler"
	"wordmatch/internal/middleware"
	"wordmatch/internal/repository/postgres"
	"wordmatch/internal/service"
	"wordmatch/internal/speech"
	"wordmatch/internal/wordsource"

	"github.com/golang-migrate/migrate/v4"
	postgresdb "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/lib/pq"
	"github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	tele "gopkg.in/telebot.v3"
)

const (
	janitorInterval = time.Minute
	maxGameIdle     = 30 * time.Minute
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting WordMatch Bot")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load config", zap.Error(err))
	}

	logger.Info("Configuration loaded successfully")

	// Connect to database with retries
	db, err := connectDatabase(cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	logger.Info("Database connection established")

	// Run migrations
	if err := runMigrations(db, logger); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	logger.Info("Database migrations completed")

	// Initialize repositories
	userRepo := postgres.NewUserRepo(db)
	progressRepo := postgres.NewProgressRepo(db)
	reviewRepo := postgres.NewReviewRepo(db)

	// Word source and speech depend on the OpenAI key
	source, synth := buildContentProviders(cfg, logger)

	// Initialize services
	authService := service.NewAuthService(userRepo, cfg.BotPassword)
	wordService := service.NewWordService(source)
	progressService := service.NewProgressService(progressRepo, reviewRepo, logger)

	// Initialize Telegram bot
	bot, err := tele.NewBot(tele.Settings{
		Token:  cfg.BotToken,
		Poller: &tele.LongPoller{Timeout: 10 * time.Second},
		OnError: func(err error, c tele.Context) {
			logger.Error("Handler failed", zap.Error(err))
		},
	})
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}
	bot.Use(middleware.AuthMiddleware(authService, logger))

	logger.Info("Telegram bot initialized")

	// Initialize handler
	h := handler.NewHandler(bot, authService, wordService, progressService, synth, handler.Settings{
		FlashDelay:      cfg.Game.FlashDelay,
		SettleDelay:     cfg.Game.SettleDelay,
		GenerateTimeout: cfg.Game.GenerateTimeout,
	}, logger)
	h.RegisterHandlers()

	logger.Info("Handlers registered")

	// Start janitor job in background
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go runJanitor(ctx, h, logger)

	// Start bot in background
	go func() {
		logger.Info("Bot started successfully")
		bot.Start()
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	<-sigChan

	logger.Info("Shutdown signal received, stopping bot...")

	// Graceful shutdown
	bot.Stop()
	cancel()
	h.EvictIdle(0)

	logger.Info("Bot stopped gracefully")
}

// buildContentProviders picks the word source and speech synthesizer. Without
// an API key the built-in word list is used and speech is off.
func buildContentProviders(cfg *config.Config, logger *zap.Logger) (wordsource.Source, handler.Synthesizer) {
	if cfg.OpenAI.APIKey == "" {
		logger.Warn("OPENAI_API_KEY not set, using built-in word list without speech")
		return wordsource.Static{}, nil
	}

	clientCfg := openai.DefaultConfig(cfg.OpenAI.APIKey)
	if cfg.OpenAI.BaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAI.BaseURL
	}
	client := openai.NewClientWithConfig(clientCfg)

	logger.Info("Using OpenAI word generation",
		zap.String("model", cfg.OpenAI.Model),
		zap.Int("pairs", cfg.Game.Pairs),
		zap.String("voice", cfg.OpenAI.Voice),
	)
	return wordsource.NewOpenAI(client, cfg.OpenAI.Model, cfg.Game.Pairs, logger),
		speech.NewSynthesizer(client, cfg.OpenAI.Voice)
}

// connectDatabase connects to PostgreSQL with retries
func connectDatabase(dsn string, logger *zap.Logger) (*sql.DB, error) {
	var db *sql.DB
	var err error

	maxRetries := 30
	retryDelay := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("postgres", dsn)
		if err != nil {
			logger.Warn("Failed to open database connection",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			time.Sleep(retryDelay)
			continue
		}

		// Test connection
		if err = db.Ping(); err != nil {
			logger.Warn("Failed to ping database",
				zap.Int("attempt", i+1),
				zap.Error(err),
			)
			db.Close()
			time.Sleep(retryDelay)
			continue
		}

		db.SetMaxOpenConns(10)
		db.SetMaxIdleConns(5)
		db.SetConnMaxLifetime(5 * time.Minute)

		return db, nil
	}

	return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
}

// runMigrations runs database migrations
func runMigrations(db *sql.DB, logger *zap.Logger) error {
	driver, err := postgresdb.WithInstance(db, &postgresdb.Config{})
	if err != nil {
		return fmt.Errorf("failed to create migration driver: %w", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migration instance: %w", err)
	}

	err = m.Up()
	switch {
	case err == migrate.ErrNoChange:
		logger.Info("No new migrations to apply")
	case err != nil:
		return fmt.Errorf("failed to run migrations: %w", err)
	default:
		logger.Info("Migrations applied successfully")
	}

	return nil
}

// runJanitor periodically closes games abandoned mid-play
func runJanitor(ctx context.Context, h *handler.Handler, logger *zap.Logger) {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Janitor job stopped")
			return
		case <-ticker.C:
			if n := h.EvictIdle(maxGameIdle); n > 0 {
				logger.Info("Evicted idle games",
					zap.Int("evicted", n),
					zap.Int("active", h.ActiveGames()),
				)
			}
		}
	}
}
