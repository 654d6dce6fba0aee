package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/powerguard/autonomy-planner/internal/api_server"
	"github.com/powerguard/autonomy-planner/internal/config"
	"github.com/powerguard/autonomy-planner/internal/store"
	"github.com/powerguard/autonomy-planner/pkg/log"
	"github.com/powerguard/autonomy-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	skipSeed bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the powerguard api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		_, undo := log.Setup(cfg.Service.LogLevel)
		defer undo()

		zap.S().Info("Starting API service")
		defer zap.S().Info("API service stopped")

		zap.S().Info("Initializing data store")
		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}
		s := store.NewStore(db)
		defer func() { _ = s.Close() }()

		if cfg.Service.MigrationFolder != "" || cfg.Database.Type == store.DialectPostgres {
			// sql migrations own the schema outside of the sqlite quick start
			if err := migrations.MigrateStore(db, cfg); err != nil {
				zap.S().Fatalw("running migrations", "error", err)
			}
		} else if err := s.InitialMigration(cmd.Context()); err != nil {
			zap.S().Fatalw("running initial migration", "error", err)
		}

		if !skipSeed {
			if err := s.Seed(cmd.Context()); err != nil {
				zap.S().Fatalw("seeding catalog", "error", err)
			}
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, s, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("Error running server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, s)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("Error running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func init() {
	runCmd.Flags().BoolVar(&skipSeed, "skip-seed", false, "Do not upsert the reference catalog on start")
}
