package pipeline

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/airwatch-tw/aqimon/internal/config"
	"github.com/airwatch-tw/aqimon/internal/export"
	"github.com/airwatch-tw/aqimon/internal/fetcher"
	"github.com/airwatch-tw/aqimon/internal/render"
	"github.com/airwatch-tw/aqimon/internal/station"
)

// Result reports what a successful run produced.
type Result struct {
	Readings int
	MapPath  string
	CSVPath  string
	XLSXPath string
}

// Run executes one full monitoring pass: fetch, enrich, render, persist.
// Stages run strictly in order. A fetch or render failure aborts the run;
// the artifact writes are attempted independently of each other.
func Run(ctx context.Context, cfg *config.Config, table *station.Table) (*Result, error) {
	log := zap.L().With(zap.String("run_id", uuid.NewString()))
	log.Info("starting monitoring run",
		zap.String("base_url", cfg.API.BaseURL),
		zap.Int("limit", cfg.API.Limit),
	)

	client := fetcher.New(fetcher.Options{
		BaseURL:            cfg.API.BaseURL,
		APIKey:             cfg.API.Key,
		Limit:              cfg.API.Limit,
		Timeout:            cfg.API.Timeout(),
		InsecureSkipVerify: cfg.API.InsecureSkipVerify,
	})

	records, err := client.Fetch(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: fetch")
	}

	readings := Enrich(records, table)
	if len(readings) == 0 {
		return nil, eris.New("pipeline: no readings with resolvable coordinates")
	}

	m, err := render.Build(readings)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: render")
	}

	res := &Result{
		Readings: len(readings),
		MapPath:  cfg.Output.MapPath,
		CSVPath:  cfg.Output.CSVPath,
		XLSXPath: cfg.Output.XLSXPath,
	}

	// Each artifact write is reported on its own; one failing must not stop
	// the others.
	var writeErrs []error
	if err := render.SaveHTML(m, cfg.Output.MapPath); err != nil {
		log.Error("map write failed", zap.String("path", cfg.Output.MapPath), zap.Error(err))
		writeErrs = append(writeErrs, err)
	} else {
		log.Info("map written", zap.String("path", cfg.Output.MapPath))
	}
	if err := export.WriteCSV(readings, cfg.Output.CSVPath); err != nil {
		log.Error("csv write failed", zap.String("path", cfg.Output.CSVPath), zap.Error(err))
		writeErrs = append(writeErrs, err)
	} else {
		log.Info("csv written", zap.String("path", cfg.Output.CSVPath))
	}
	if cfg.Output.XLSXPath != "" {
		if err := export.WriteXLSX(readings, cfg.Output.XLSXPath); err != nil {
			log.Error("xlsx write failed", zap.String("path", cfg.Output.XLSXPath), zap.Error(err))
			writeErrs = append(writeErrs, err)
		} else {
			log.Info("xlsx written", zap.String("path", cfg.Output.XLSXPath))
		}
	}
	if len(writeErrs) > 0 {
		return nil, eris.Wrap(errors.Join(writeErrs...), "pipeline: persist")
	}

	log.Info("monitoring run complete", zap.Int("readings", len(readings)))
	return res, nil
}
