package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/airwatch-tw/aqimon/internal/pipeline"
	"github.com/airwatch-tw/aqimon/internal/station"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Fetch, enrich, and publish the current AQI snapshot",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if limit, _ := cmd.Flags().GetInt("limit"); limit > 0 {
			cfg.API.Limit = limit
		}
		if p, _ := cmd.Flags().GetString("map"); p != "" {
			cfg.Output.MapPath = p
		}
		if p, _ := cmd.Flags().GetString("csv"); p != "" {
			cfg.Output.CSVPath = p
		}
		if p, _ := cmd.Flags().GetString("xlsx"); p != "" {
			cfg.Output.XLSXPath = p
		}

		if err := cfg.Validate(); err != nil {
			return err
		}

		table, err := station.Load()
		if err != nil {
			return eris.Wrap(err, "run: load station table")
		}

		res, err := pipeline.Run(ctx, cfg, table)
		if err != nil {
			return eris.Wrap(err, "run")
		}

		fmt.Printf("Monitoring run complete: %d stations\n", res.Readings)
		fmt.Printf("Map:  %s\n", res.MapPath)
		fmt.Printf("Data: %s\n", res.CSVPath)
		if res.XLSXPath != "" {
			fmt.Printf("XLSX: %s\n", res.XLSXPath)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().Int("limit", 0, "maximum records to request (default from config)")
	runCmd.Flags().String("map", "", "map HTML output path (default from config)")
	runCmd.Flags().String("csv", "", "CSV output path (default from config)")
	runCmd.Flags().String("xlsx", "", "optional XLSX output path")
	rootCmd.AddCommand(runCmd)
}
