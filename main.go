package main

import (
	"context"
	"database/sql"
	"log"
	"os/signal"
	"syscall"

	_ "github.com/jackc/pgx/v5/stdlib" // database/sql driver for migrations
	"go.uber.org/zap"

	"github.com/herdline-inc/herd-engine/pkg/config"
	"github.com/herdline-inc/herd-engine/pkg/database"
	"github.com/herdline-inc/herd-engine/pkg/logging"
	"github.com/herdline-inc/herd-engine/pkg/remote"
	"github.com/herdline-inc/herd-engine/pkg/retry"
	"github.com/herdline-inc/herd-engine/pkg/store"
	"github.com/herdline-inc/herd-engine/pkg/syncer"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := logging.New(cfg.Env)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("starting herd-engine",
		zap.String("version", cfg.Version),
		zap.String("env", cfg.Env),
		zap.String("remote", cfg.Remote.URL),
		zap.Duration("interval", cfg.Sync.Interval()))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, cleanup, err := buildStore(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("setting up local store", zap.Error(err))
	}
	defer cleanup()

	retryCfg := retry.DefaultConfig()
	retryCfg.MaxRetries = cfg.Sync.MaxRetries

	client, err := remote.New(cfg.Remote.URL, cfg.Remote.APIKey, logger,
		remote.WithTimeout(cfg.Remote.Timeout()),
		remote.WithRetryConfig(retryCfg))
	if err != nil {
		logger.Fatal("setting up remote client", zap.Error(err))
	}

	engine := syncer.New(st, client, logger)
	if err := engine.Run(ctx, cfg.Sync.Interval()); err != nil && ctx.Err() == nil {
		logger.Fatal("sync engine stopped", zap.Error(err))
	}
	logger.Info("shutdown complete")
}

// buildStore connects the Postgres replica when one is configured and falls
// back to the in-memory store otherwise. Memory mode re-pulls everything on
// restart since watermarks do not survive the process.
func buildStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, func(), error) {
	if !cfg.Database.Configured() {
		logger.Info("no database configured, using in-memory store")
		return store.NewMemory(), func() {}, nil
	}

	dbCfg := cfg.Database
	dbCfg.Host = config.ResolveHostForDocker(dbCfg.Host)
	connStr := dbCfg.ConnectionString()

	logger.Info("connecting local replica",
		zap.String("conn", logging.SanitizeConnectionString(connStr)))

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            connStr,
		MaxConnections: dbCfg.MaxConnections,
	})
	if err != nil {
		return nil, nil, err
	}

	sqlDB, err := sql.Open("pgx", connStr)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, dbCfg.MigrationsPath, logger); err != nil {
		db.Close()
		return nil, nil, err
	}

	return store.NewPostgres(db), db.Close, nil
}
