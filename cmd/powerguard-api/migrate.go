package main

import (
	"github.com/powerguard/autonomy-planner/internal/config"
	"github.com/powerguard/autonomy-planner/internal/store"
	"github.com/powerguard/autonomy-planner/pkg/log"
	"github.com/powerguard/autonomy-planner/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Migrate the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		_, undo := log.Setup(cfg.Service.LogLevel)
		defer undo()

		zap.S().Info("Starting db migration")
		defer zap.S().Info("Db migrated")

		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Errorw("initializing data store", "error", err)
			return err
		}
		s := store.NewStore(db)
		defer func() { _ = s.Close() }()

		if err := migrations.MigrateStore(db, cfg); err != nil {
			zap.S().Errorw("running migrations", "error", err)
			return err
		}
		return nil
	},
}
