package export

import (
	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/airwatch-tw/aqimon/internal/aqi"
)

// WriteXLSX writes the readings as a single-sheet workbook at path, creating
// parent directories. Column order matches the CSV output.
func WriteXLSX(readings []aqi.Reading, path string) error {
	if err := ensureDir(path); err != nil {
		return err
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("AQI")
	if err != nil {
		return eris.Wrap(err, "export: add sheet")
	}

	header := sheet.AddRow()
	for _, col := range columns {
		header.AddCell().Value = col
	}

	for i := range readings {
		r := &readings[i]
		row := sheet.AddRow()
		row.AddCell().Value = r.SiteName
		row.AddCell().Value = r.County
		addNumCell(row, r.AQI)
		addNumCell(row, r.PM25)
		addNumCell(row, r.PM10)
		addNumCell(row, r.O3)
		addNumCell(row, r.NO2)
		addNumCell(row, r.SO2)
		addNumCell(row, r.CO)
		row.AddCell().Value = r.DataCreationDate
		row.AddCell().SetFloat(r.Latitude)
		row.AddCell().SetFloat(r.Longitude)
		addNumCell(row, r.DistanceKM)
	}

	if err := file.Save(path); err != nil {
		return eris.Wrapf(err, "export: save %s", path)
	}
	return nil
}

// addNumCell writes a numeric cell, leaving it blank for nil.
func addNumCell(row *xlsx.Row, v *float64) {
	cell := row.AddCell()
	if v != nil {
		cell.SetFloat(*v)
	}
}
