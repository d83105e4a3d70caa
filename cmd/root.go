package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/airwatch-tw/aqimon/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "aqimon",
	Short: "Taiwan real-time air quality monitor",
	Long:  "Fetches station readings from the MOENV open-data API, enriches them with station coordinates and distance to Taipei Main Station, and publishes an interactive map plus tabular exports.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
