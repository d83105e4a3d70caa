// Package export persists enriched readings as tabular artifacts.
package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rotisserie/eris"

	"github.com/airwatch-tw/aqimon/internal/aqi"
)

// columns defines the ordered tabular output columns, shared by the CSV and
// XLSX writers.
var columns = []string{
	"sitename",
	"county",
	"aqi",
	"pm25",
	"pm10",
	"o3",
	"no2",
	"so2",
	"co",
	"datacreationdate",
	"latitude",
	"longitude",
	"distance_to_taipei",
}

// utf8BOM makes spreadsheet applications detect UTF-8 in exported files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// WriteCSV writes one row per reading to path, creating parent directories.
// The file starts with a UTF-8 byte-order mark for spreadsheet compatibility;
// nil numeric values become empty cells.
func WriteCSV(readings []aqi.Reading, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "export: create %s", path)
	}
	defer f.Close() //nolint:errcheck

	if _, err := f.Write(utf8BOM); err != nil {
		return eris.Wrap(err, "export: write byte-order mark")
	}

	w := csv.NewWriter(f)
	if err := w.Write(columns); err != nil {
		return eris.Wrap(err, "export: write header")
	}
	for i := range readings {
		if err := w.Write(buildRow(&readings[i])); err != nil {
			return eris.Wrapf(err, "export: write row %d", i)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return eris.Wrap(err, "export: flush csv")
	}

	return nil
}

// buildRow maps a reading to its CSV row in column order.
func buildRow(r *aqi.Reading) []string {
	return []string{
		r.SiteName,
		r.County,
		numCell(r.AQI),
		numCell(r.PM25),
		numCell(r.PM10),
		numCell(r.O3),
		numCell(r.NO2),
		numCell(r.SO2),
		numCell(r.CO),
		r.DataCreationDate,
		formatFloat(r.Latitude),
		formatFloat(r.Longitude),
		numCell(r.DistanceKM),
	}
}

// numCell renders a nullable numeric value; nil becomes an empty cell.
func numCell(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ensureDir creates the parent directory of path if needed.
func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return eris.Wrapf(err, "export: create output dir %s", dir)
	}
	return nil
}
