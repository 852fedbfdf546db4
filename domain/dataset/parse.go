package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"framebias/internal/errors"
)

// ParseRows converts a raw table into typed rows.
// Every mapped column must exist in the header and every numeric cell must parse.
func ParseRows(table *Table, columns ColumnMap) ([]Row, error) {
	if table == nil {
		return nil, errors.InvalidInput("nil table")
	}

	required := append([]string{columns.Country}, columnNames(columns)...)
	for _, col := range required {
		if col == "" {
			return nil, errors.ConfigInvalid("column map has an empty entry")
		}
		if !table.HasColumn(col) {
			return nil, errors.MissingColumn(col)
		}
	}

	numeric := columns.numeric()
	rows := make([]Row, 0, len(table.Rows))
	for i, raw := range table.Rows {
		row := Row{
			Index:   table.Position(i),
			Country: strings.TrimSpace(raw[columns.Country]),
		}
		for _, col := range numeric {
			cell := strings.TrimSpace(raw[col.name])
			v, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				// +2: header row plus 1-based numbering, so the number matches a spreadsheet view
				return nil, errors.InvalidInput(fmt.Sprintf("row %d column %q: %q is not a number", row.Index+2, col.name, cell))
			}
			col.set(&row, v)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func columnNames(c ColumnMap) []string {
	cols := c.numeric()
	names := make([]string, len(cols))
	for i, col := range cols {
		names[i] = col.name
	}
	return names
}
