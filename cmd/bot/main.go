package main

import (
	"context"
	"log"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/polifinder/classroom_bot/internal/app"
	"github.com/polifinder/classroom_bot/internal/config"
	"github.com/polifinder/classroom_bot/internal/controller"
	"github.com/polifinder/classroom_bot/internal/controller/i18n"
	"github.com/polifinder/classroom_bot/internal/occupancy"
	"github.com/polifinder/classroom_bot/internal/repository"
	"github.com/polifinder/classroom_bot/internal/service"
	"github.com/polifinder/classroom_bot/internal/staticdata"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// База для предпочтений пользователей
	pool, err := pgxpool.New(ctx, cfg.DBDSN)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer pool.Close()

	migrator, err := app.NewMigrator(pool, cfg.MigrationsPath)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Статические справочники загружаются один раз при старте
	locations, err := staticdata.LoadLocations(filepath.Join(cfg.DataDir, "locations.json"))
	if err != nil {
		logger.Fatal("Failed to load locations", zap.Error(err))
	}

	power, err := staticdata.LoadPowerIndex(filepath.Join(cfg.DataDir, "rooms_with_power.json"))
	if err != nil {
		logger.Fatal("Failed to load power index", zap.Error(err))
	}

	openingHours, err := staticdata.LoadOpeningHours(filepath.Join(cfg.DataDir, "opening_hours.json"))
	if err != nil {
		logger.Fatal("Failed to load opening hours", zap.Error(err))
	}
	if openingHours == nil {
		logger.Warn("⚠️  Opening hours file not found, buildings are treated as always open")
	}

	texts, err := i18n.Load()
	if err != nil {
		logger.Fatal("Failed to load locales", zap.Error(err))
	}

	timezone, err := time.LoadLocation("Europe/Rome")
	if err != nil {
		logger.Fatal("Failed to load timezone", zap.Error(err))
	}

	// Ядро поиска: клиент источника -> кэш -> калькулятор
	extractor := occupancy.NewExtractor(power, staticdata.GarbageRooms, occupancy.DefaultBaseURL, logger)
	client := occupancy.NewClient(nil, cfg.OccupancyURL, extractor, logger)
	cache := occupancy.NewScheduleCache(client, occupancy.CacheTTL, logger)
	resolver := occupancy.NewHoursResolver(openingHours)
	availability := occupancy.NewAvailability(cache, resolver)

	userRepo := repository.NewUserRepository(pool)
	userService := service.NewUserService(userRepo, logger)
	searchService := service.NewSearchService(availability, logger)

	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		searchService,
		userService,
		texts,
		locations,
		timezone,
		cfg.DeveloperChatID,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	logger.Sugar().Infow("Starting classroom bot",
		"environment", cfg.Environment,
		"campuses", len(locations))

	if err := botController.Start(ctx); err != nil {
		logger.Fatal("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
