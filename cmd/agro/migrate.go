package main

import (
	"fmt"

	"github.com/deppfellow/agro-backend/internal/config"
	"github.com/deppfellow/agro-backend/internal/database"
	"github.com/deppfellow/agro-backend/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		log := logger.NewLoggerWithService(cfg.Observability, nil)

		if err := database.Migrate(cmd.Context(), &log, cfg); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		return nil
	},
}
