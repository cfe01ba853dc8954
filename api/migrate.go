package main

import (
	"fmt"

	"github.com/rogerio-castellano/catalog-api/internal/db"
	"github.com/rogerio-castellano/catalog-api/internal/logger"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the PostgreSQL schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := db.Connect(cmd.Context(), cfg.Database)
		if err != nil {
			return err
		}
		defer database.Close()

		direction := "up"
		if len(args) == 1 {
			direction = args[0]
		}

		switch direction {
		case "up":
			err = db.Migrate(database)
		case "down":
			err = db.Rollback(database)
		default:
			return fmt.Errorf("unknown direction %q", direction)
		}
		if err != nil {
			return err
		}
		logger.Get().Info("migrations applied", "direction", direction)
		return nil
	},
}
