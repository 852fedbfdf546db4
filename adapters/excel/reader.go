package excel

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"framebias/domain/core"
	"framebias/domain/dataset"
	"framebias/internal"
	"framebias/internal/errors"

	"github.com/xuri/excelize/v2"
)

const defaultSheet = "Sheet1"

// DataReader handles reading Excel and CSV files
type DataReader struct {
	filePath string
	fileType string // "xlsx" or "csv"
	logger   *internal.Logger
}

// NewDataReader creates a new data reader that handles both Excel and CSV files
func NewDataReader(filePath string, logger *internal.Logger) *DataReader {
	ext := strings.ToLower(filepath.Ext(filePath))
	fileType := "xlsx"
	if ext == ".csv" {
		fileType = "csv"
	}
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &DataReader{filePath: filePath, fileType: fileType, logger: logger}
}

// Path returns the file this reader reads from
func (r *DataReader) Path() string {
	return r.filePath
}

// ReadTable reads the whole file into a header + rows table
func (r *DataReader) ReadTable(ctx context.Context) (*dataset.Table, error) {
	r.logger.Debug("[DataReader] Starting to read %s file: %s", r.fileType, r.filePath)

	if _, err := os.Stat(r.filePath); os.IsNotExist(err) {
		return nil, errors.NotFound(fmt.Sprintf("%s file %s", strings.ToUpper(r.fileType), r.filePath))
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var (
		rows  [][]string
		lines []int
		err   error
	)
	switch r.fileType {
	case "csv":
		rows, lines, err = r.readCSVRows()
	case "xlsx":
		rows, lines, err = r.readExcelRows()
	default:
		return nil, errors.InvalidInput(fmt.Sprintf("unsupported file type: %s", r.fileType))
	}
	if err != nil {
		return nil, err
	}

	if len(rows) < 2 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s file must have at least a header row and one data row", strings.ToUpper(r.fileType)))
	}

	return r.processRows(rows, lines), nil
}

// Fingerprint hashes the raw file bytes so a run can be tied to its input
func (r *DataReader) Fingerprint() (core.DatasetHash, error) {
	data, err := os.ReadFile(r.filePath)
	if err != nil {
		return "", errors.IOError("read", r.filePath, err)
	}
	return core.NewDatasetHash(data), nil
}

// readExcelRows reads Sheet1, or the first sheet when there is no Sheet1.
// lines holds the 1-based sheet row of each returned row.
func (r *DataReader) readExcelRows() ([][]string, []int, error) {
	startTime := time.Now()
	f, err := excelize.OpenFile(r.filePath)
	if err != nil {
		return nil, nil, errors.IOError("open Excel file", r.filePath, err)
	}
	defer f.Close()

	sheet := defaultSheet
	if idx, _ := f.GetSheetIndex(defaultSheet); idx < 0 {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, nil, errors.InvalidInput(fmt.Sprintf("workbook %s has no sheets", r.filePath))
		}
		sheet = sheets[0]
	}

	// Raw values: number formats would otherwise round the cells before we format them ourselves
	rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
	if err != nil {
		return nil, nil, errors.IOError("read sheet "+sheet+" of", r.filePath, err)
	}
	r.logger.Debug("[DataReader] %s read in %.2fms (%d rows)", sheet, float64(time.Since(startTime).Nanoseconds())/1e6, len(rows))
	// GetRows keeps empty rows between data rows, so positions map straight to sheet rows
	lines := make([]int, len(rows))
	for i := range rows {
		lines[i] = i + 1
	}
	return rows, lines, nil
}

// readCSVRows reads every CSV record. encoding/csv drops empty lines, so
// lines records the 1-based source line each record starts on.
func (r *DataReader) readCSVRows() ([][]string, []int, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		return nil, nil, errors.IOError("open CSV file", r.filePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	readStart := time.Now()
	var (
		rows  [][]string
		lines []int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, errors.Wrap(errors.InvalidInput(err.Error()), "failed to read CSV file")
		}
		line, _ := reader.FieldPos(0)
		rows = append(rows, record)
		lines = append(lines, line)
	}
	r.logger.Debug("[DataReader] CSV file read in %.2fms (%d rows)", float64(time.Since(readStart).Nanoseconds())/1e6, len(rows))
	return rows, lines, nil
}

// processRows converts raw string rows into a Table. lines[i] is the
// 1-based source line of rows[i]; data positions are counted from the
// line after the header so skipped blank rows keep later positions stable.
func (r *DataReader) processRows(rows [][]string, lines []int) *dataset.Table {
	headerRow := rows[0]
	headers := make([]string, len(headerRow))
	for i, header := range headerRow {
		// Excel exports sometimes carry a UTF-8 BOM on the first header
		headers[i] = strings.TrimSpace(strings.TrimPrefix(header, "\ufeff"))
	}

	dataRows := make([]dataset.RawRow, 0, len(rows)-1)
	positions := make([]int, 0, len(rows)-1)
	for i := 1; i < len(rows); i++ {
		row := rows[i]
		if isBlank(row) {
			continue
		}
		rowData := make(dataset.RawRow, len(headers))
		for j, cell := range row {
			if j < len(headers) {
				rowData[headers[j]] = strings.TrimSpace(cell)
			}
		}
		dataRows = append(dataRows, rowData)
		positions = append(positions, lines[i]-lines[0]-1)
	}

	r.logger.Info("[DataReader] %s file processed (%d columns, %d rows)",
		strings.ToUpper(r.fileType), len(headers), len(dataRows))

	return &dataset.Table{
		Source:    r.filePath,
		Headers:   headers,
		Rows:      dataRows,
		Positions: positions,
	}
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
