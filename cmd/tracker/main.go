package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/spec-kit/project-tracker/internal/api/command"
	"github.com/spec-kit/project-tracker/internal/api/dto"
	"github.com/spec-kit/project-tracker/internal/auth"
	"github.com/spec-kit/project-tracker/internal/config"
	"github.com/spec-kit/project-tracker/internal/fileio"
	"github.com/spec-kit/project-tracker/internal/observability"
	"github.com/spec-kit/project-tracker/internal/persistence"
	"github.com/spec-kit/project-tracker/internal/repository"
	"github.com/spec-kit/project-tracker/internal/service"
	"github.com/spec-kit/project-tracker/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	if err := applyFlags(&cfg.Replay, os.Args[1:]); err != nil {
		if err == pflag.ErrHelp {
			return
		}
		log.Fatalf("invalid arguments: %v", err)
	}
	if err := cfg.Replay.Validate(); err != nil {
		log.Fatalf("invalid arguments: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go cancelOnSignal(cancel, logger)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("replay failed", zap.Error(err))
		os.Exit(1)
	}
}

// applyFlags overrides the configured replay paths. Positional arguments
// are read as <input> <output> when the flags are absent.
func applyFlags(replay *config.ReplayConfig, args []string) error {
	flagSet := pflag.NewFlagSet("tracker", pflag.ContinueOnError)
	flagSet.StringVar(&replay.UsersPath, "users", replay.UsersPath, "roster file (JSON, JSONC or YAML)")
	flagSet.StringVar(&replay.InputPath, "input", replay.InputPath, "command file")
	flagSet.StringVar(&replay.OutputPath, "output", replay.OutputPath, "result file")
	flagSet.IntVar(&replay.TestingPhaseDays, "testing-days", replay.TestingPhaseDays, "length of a testing phase in days")
	if err := flagSet.Parse(args); err != nil {
		return err
	}

	positional := flagSet.Args()
	if len(positional) > 2 {
		return fmt.Errorf("unexpected argument: %s", positional[2])
	}
	if len(positional) > 0 && !flagSet.Changed("input") {
		replay.InputPath = positional[0]
	}
	if len(positional) > 1 && !flagSet.Changed("output") {
		replay.OutputPath = positional[1]
	}
	if replay.TestingPhaseDays <= 0 {
		return fmt.Errorf("testing phase length must be positive, got %d", replay.TestingPhaseDays)
	}
	return nil
}

func run(ctx context.Context, cfg *config.Config, logger *zap.Logger) error {
	store := repository.NewStore(cfg.Replay.TestingPhaseDays)
	commands, err := loadInputs(store, cfg.Replay)
	if err != nil {
		// Unreadable inputs still produce an (empty) result file.
		logger.Error("failed to load inputs", zap.Error(err))
		return fileio.WriteResults(cfg.Replay.OutputPath, nil)
	}

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Warn("result archive unavailable", zap.Error(err))
		pg = &persistence.Postgres{}
	}
	defer func() { pg.Close() }()
	if pg.Enabled() && cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.Pool, cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Warn("failed to run migrations; result archive disabled", zap.Error(err))
			pg.Close()
			pg = &persistence.Postgres{}
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	var mirror repository.NotificationMirror
	if redis.Enabled() && cfg.Notification.MirrorEnabled {
		mirror = repository.NewRedisNotificationMirror(redis.Client, cfg.Redis.KeyPrefix)
	}

	services := service.New(store, service.Options{
		Mirror:       mirror,
		Logger:       logger,
		Notification: cfg.Notification,
	})
	worker.StartNotificationWorker(services.Notifications, logger)

	metrics := observability.NewMetrics()
	router := command.NewRouter(auth.NewResolver(store.Users))
	command.RegisterMiddlewares(router, logger, metrics)
	command.RegisterRoutes(router, command.NewRouteConfig(services))

	logger.Info("replay started",
		zap.String("app", cfg.App.Name),
		zap.String("version", cfg.App.Version),
		zap.Int("commands", len(commands)),
	)
	results := worker.NewReplayWorker(router, services.Phase, logger).Run(ctx, commands)

	if err := fileio.WriteResults(cfg.Replay.OutputPath, results); err != nil {
		return err
	}
	logger.Info("results written", zap.String("path", cfg.Replay.OutputPath), zap.Int("results", len(results)))

	if pg.Enabled() {
		archiveRun(ctx, repository.NewResultRepository(pg.Pool), results, logger)
	}
	metrics.Snapshot().Log(logger)
	return nil
}

// loadInputs seeds the roster into store and reads the command file.
func loadInputs(store *repository.Store, replay config.ReplayConfig) ([]dto.Command, error) {
	users, err := fileio.LoadRoster(replay.UsersPath)
	if err != nil {
		return nil, err
	}
	for _, user := range users {
		if err := store.Users.Create(user); err != nil {
			return nil, fmt.Errorf("seeding roster: %w", err)
		}
	}
	return fileio.LoadCommands(replay.InputPath)
}

func archiveRun(ctx context.Context, repo repository.ResultRepository, results []*dto.Result, logger *zap.Logger) {
	runID := uuid.New()
	if err := worker.ArchiveResults(ctx, repo, runID, results); err != nil {
		logger.Warn("failed to archive results", zap.String("run_id", runID.String()), zap.Error(err))
		return
	}
	logger.Info("results archived", zap.String("run_id", runID.String()), zap.Int("results", len(results)))
}

func cancelOnSignal(cancel context.CancelFunc, logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
	cancel()
}
