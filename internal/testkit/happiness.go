package testkit

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"framebias/domain/dataset"

	"github.com/xuri/excelize/v2"
)

// HappinessRecord is one fixture row in source-column order
type HappinessRecord struct {
	Country        string
	Score          float64
	GDP            float64
	SocialSupport  float64
	LifeExpectancy float64
	Corruption     float64
	Freedom        float64
}

// HappinessHeaders matches dataset.DefaultColumnMap plus an unused Region column
var HappinessHeaders = []string{
	"Country", "Region", "Score", "GDP", "Social_support",
	"Healthy_life_expectancy", "Perceptions_of_corruption", "Freedom_of_choices",
}

// HappinessRecords has four rows below 50, four in the 60-70 band and four above.
// Country names are fictional so prompt-leak assertions cannot collide with label text.
func HappinessRecords() []HappinessRecord {
	return []HappinessRecord{
		{"Avalon", 78.4, 10.8, 0.95, 71.2, 0.18, 0.94},
		{"Borduria", 44.567, 7.3, 0.8123, 61.7, 0.80, 0.60},
		{"Carpania", 65.2, 9.9, 0.89, 68.4, 0.62, 0.81},
		{"Drusselstein", 38.9, 7.1, 0.55, 55.3, 0.77, 0.59},
		{"Elbonia", 62.05, 9.4, 0.84, 66.0, 0.71, 0.76},
		{"Freedonia", 71.9, 10.5, 0.92, 70.1, 0.33, 0.90},
		{"Genovia", 48.3, 8.0, 0.66, 58.9, 0.84, 0.65},
		{"Hyrkania", 60.0, 9.1, 0.80, 64.5, 0.74, 0.72},
		{"Illyria", 70.0, 10.2, 0.90, 69.8, 0.51, 0.88},
		{"Jadeport", 42.1, 6.9, 0.60, 54.2, 0.82, 0.58},
		{"Kravia", 55.5, 8.7, 0.75, 63.0, 0.79, 0.70},
		{"Latveria", 73.3, 10.9, 0.93, 72.0, 0.22, 0.91},
	}
}

// HappinessTable returns the fixture as a raw table
func HappinessTable() *dataset.Table {
	rows := HappinessRecords()
	table := &dataset.Table{
		Source:  "testkit",
		Headers: append([]string(nil), HappinessHeaders...),
		Rows:    make([]dataset.RawRow, 0, len(rows)),
	}
	for _, rec := range rows {
		cells := rec.cells()
		raw := make(dataset.RawRow, len(cells))
		for i, h := range HappinessHeaders {
			raw[h] = cells[i]
		}
		table.Rows = append(table.Rows, raw)
	}
	return table
}

// HappinessRows returns the fixture already parsed with the default column map
func HappinessRows() []dataset.Row {
	rows, err := dataset.ParseRows(HappinessTable(), dataset.DefaultColumnMap())
	if err != nil {
		panic(fmt.Sprintf("testkit fixture does not parse: %v", err))
	}
	return rows
}

// WriteHappinessCSV writes records to dir/name as CSV and returns the path
func WriteHappinessCSV(dir, name string, records []HappinessRecord) (string, error) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(HappinessHeaders); err != nil {
		return "", err
	}
	for _, rec := range records {
		if err := w.Write(rec.cells()); err != nil {
			return "", err
		}
	}
	w.Flush()
	return path, w.Error()
}

// WriteHappinessXLSX writes records to dir/name on the given sheet with numeric cells
func WriteHappinessXLSX(dir, name, sheet string, records []HappinessRecord) (string, error) {
	path := filepath.Join(dir, name)
	f := excelize.NewFile()
	defer f.Close()

	if sheet != "Sheet1" {
		if err := f.SetSheetName("Sheet1", sheet); err != nil {
			return "", err
		}
	}

	header := make([]interface{}, len(HappinessHeaders))
	for i, h := range HappinessHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", err
	}

	for i, rec := range records {
		row := []interface{}{
			rec.Country, regionFor(rec.Score), rec.Score, rec.GDP, rec.SocialSupport,
			rec.LifeExpectancy, rec.Corruption, rec.Freedom,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return "", err
	}
	return path, nil
}

func (r HappinessRecord) cells() []string {
	return []string{
		r.Country,
		regionFor(r.Score),
		strconv.FormatFloat(r.Score, 'f', -1, 64),
		strconv.FormatFloat(r.GDP, 'f', -1, 64),
		strconv.FormatFloat(r.SocialSupport, 'f', -1, 64),
		strconv.FormatFloat(r.LifeExpectancy, 'f', -1, 64),
		strconv.FormatFloat(r.Corruption, 'f', -1, 64),
		strconv.FormatFloat(r.Freedom, 'f', -1, 64),
	}
}

func regionFor(score float64) string {
	if score < 50 {
		return "South"
	}
	return "North"
}
