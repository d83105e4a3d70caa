// Package pipeline wires the fetch, normalize, render, and persist stages.
package pipeline

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/airwatch-tw/aqimon/internal/aqi"
	"github.com/airwatch-tw/aqimon/internal/fetcher"
	"github.com/airwatch-tw/aqimon/internal/geo"
	"github.com/airwatch-tw/aqimon/internal/station"
)

// Enrich converts raw feed records into readings: project the allow-listed
// fields, attach coordinates from the station table, coerce numeric values,
// drop sites without resolvable coordinates, and compute the distance to the
// reference point. Output order follows input order minus dropped entries.
func Enrich(records []fetcher.Record, table *station.Table) []aqi.Reading {
	readings := make([]aqi.Reading, 0, len(records))
	dropped := 0

	for _, rec := range records {
		name := stringField(rec, "sitename")
		coord, ok := table.Lookup(name)
		if !ok {
			dropped++
			continue
		}

		r := aqi.Reading{
			SiteName:         name,
			County:           stringField(rec, "county"),
			AQI:              numericField(rec, "aqi"),
			PM25:             numericField(rec, "pm25"),
			PM10:             numericField(rec, "pm10"),
			O3:               numericField(rec, "o3"),
			NO2:              numericField(rec, "no2"),
			SO2:              numericField(rec, "so2"),
			CO:               numericField(rec, "co"),
			DataCreationDate: stringField(rec, "publishtime"),
			Latitude:         coord.Latitude,
			Longitude:        coord.Longitude,
		}
		if d, ok := geo.DistanceKM(coord.Latitude, coord.Longitude,
			station.Reference.Latitude, station.Reference.Longitude); ok {
			r.DistanceKM = &d
		}

		readings = append(readings, r)
	}

	if dropped > 0 {
		zap.L().Warn("dropped records without resolvable coordinates", zap.Int("dropped", dropped))
	}
	zap.L().Info("enrichment complete", zap.Int("readings", len(readings)))
	return readings
}

// stringField returns the raw value as a trimmed string, or "" when absent.
func stringField(rec fetcher.Record, key string) string {
	v, ok := rec[key]
	if !ok || v == nil {
		return ""
	}
	if s, isStr := v.(string); isStr {
		return strings.TrimSpace(s)
	}
	return strings.TrimSpace(fmt.Sprintf("%v", v))
}

// numericField coerces the raw value to a float. Missing, empty, or
// unparseable values become nil, never an error.
func numericField(rec fetcher.Record, key string) *float64 {
	v, ok := rec[key]
	if !ok || v == nil {
		return nil
	}
	switch n := v.(type) {
	case float64:
		return &n
	case string:
		s := strings.TrimSpace(n)
		if s == "" {
			return nil
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	default:
		return nil
	}
}
