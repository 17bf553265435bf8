package main

import (
	"context"
	"errors"
	"log"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/aliskhannn/flags-quiz-bot/internal/config"
	"github.com/aliskhannn/flags-quiz-bot/internal/delivery/telegram"
	"github.com/aliskhannn/flags-quiz-bot/internal/game"
	"github.com/aliskhannn/flags-quiz-bot/internal/infra/postgres"
	pgrepo "github.com/aliskhannn/flags-quiz-bot/internal/infra/postgres/repository"
	"github.com/aliskhannn/flags-quiz-bot/internal/logger"
	"github.com/aliskhannn/flags-quiz-bot/internal/repository"
	"github.com/aliskhannn/flags-quiz-bot/internal/service"
	"github.com/aliskhannn/flags-quiz-bot/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = lg.Sync() }()

	// The question bank must be usable before anything else starts.
	countryRepo, err := repository.NewCountryRepository(cfg.CountriesPath)
	if err != nil {
		lg.Fatal("failed to load countries", zap.String("path", cfg.CountriesPath), zap.Error(err))
	}
	if n := countryRepo.Skipped(); n > 0 {
		lg.Warn("malformed country rows skipped", zap.Int("count", n))
	}

	bank, err := game.NewBank(countryRepo.GetAll())
	if err != nil {
		lg.Fatal("failed to build question bank", zap.Error(err))
	}
	lg.Info("question bank loaded", zap.Int("countries", bank.Len()))

	bot, err := tgbotapi.NewBotAPI(cfg.TelegramAPIToken)
	if err != nil {
		lg.Fatal("failed to create bot", zap.Error(err))
	}
	bot.Debug = cfg.Env == "local"
	lg.Info("authorized on account", zap.String("username", bot.Self.UserName))

	// Set commands.
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Main menu"},
		{Command: "play", Description: "Start a round"},
		{Command: "stop", Description: "End the current round"},
		{Command: "settings", Description: "Sound, haptics and high score"},
		{Command: "best", Description: "Your best score"},
		{Command: "help", Description: "Help"},
	}
	if _, err := bot.Request(tgbotapi.NewSetMyCommands(commands...)); err != nil {
		lg.Warn("failed to set bot commands", zap.Error(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var (
		settingsRepo service.SettingsRepository
		userService  telegram.UserService
	)

	dsn, err := cfg.DB.DSN()
	switch {
	case err == nil:
		if cfg.DB.MigrationsDir != "" {
			changed, err := postgres.Migrate(cfg.DB.MigrationsDir, dsn)
			if err != nil {
				lg.Fatal("failed to migrate database", zap.Error(err))
			}
			lg.Info("database migrations checked", zap.Bool("applied", changed))
		}

		pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
			MaxConns:        int32(cfg.DB.MaxConnections),
			MaxConnLifetime: cfg.DB.MaxConnLifetime,
		})
		if err != nil {
			lg.Fatal("failed to connect to database", zap.Error(err))
		}
		defer pool.Close()

		settingsRepo = pgrepo.NewSettingsRepository(pool)
		userService = service.NewTxUserService(postgres.NewTransactor(pool))
	case errors.Is(err, config.ErrMissingEnvironmentVariables):
		lg.Warn("DATABASE_URL is not set, settings are kept in memory")

		memSettings := storage.NewSettingsStorage()
		settingsRepo = memSettings
		userService = service.NewUserService(storage.NewUserStorage(), memSettings)
	default:
		lg.Fatal("invalid database configuration", zap.Error(err))
	}

	settingsService := service.NewSettingsService(settingsRepo)

	round := game.RoundConfig{
		TimerDuration:       cfg.Game.TimerDuration,
		InitialLives:        cfg.Game.InitialLives,
		CorrectAdvanceDelay: cfg.Game.CorrectDelay,
		WrongAdvanceDelay:   cfg.Game.WrongDelay,
		TickInterval:        cfg.Game.TickInterval,
		Exhaustion:          game.EndWhenExhausted,
	}
	if cfg.Game.AllowRepeats {
		round.Exhaustion = game.AllowRepeats
	}

	presenterCfg := telegram.PresenterConfig{
		FlagsDir:  cfg.FlagsDir,
		SoundsDir: cfg.SoundsDir,
	}
	gameService := service.NewGameService(
		bank,
		service.GameConfig{Round: round, IdleTimeout: cfg.Game.IdleTimeout},
		settingsService,
		func(chatID int64) service.Presenter {
			return telegram.NewPresenter(bot, chatID, presenterCfg, lg)
		},
		lg,
	)
	defer gameService.Close()

	sweeper := service.NewSweeperService(gameService, cfg.Game.SweepSchedule, lg)
	go func() {
		if err := sweeper.Start(ctx); err != nil {
			lg.Error("session sweeper failed", zap.Error(err))
		}
	}()

	handler := telegram.NewHandler(
		bot,
		lg,
		userService,
		settingsService,
		gameService,
		round,
	)
	if err := handler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		lg.Error("telegram handler stopped with error", zap.Error(err))
	}

	lg.Info("shutdown signal received")
}
