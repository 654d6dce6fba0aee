package main

import (
	"github.com/powerguard/autonomy-planner/internal/config"
	"github.com/powerguard/autonomy-planner/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the reference catalog into the db",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			return err
		}

		_, undo := log.Setup(cfg.Service.LogLevel)
		defer undo()

		s, err := openStore(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = s.Close() }()

		if err := s.Seed(cmd.Context()); err != nil {
			zap.S().Errorw("seeding catalog", "error", err)
			return err
		}

		stats, err := s.Statistics(cmd.Context())
		if err != nil {
			return err
		}
		zap.S().Infow("catalog seeded", "sources", stats.SourcesByType, "devices", stats.DevicesByCategory)
		return nil
	},
}
