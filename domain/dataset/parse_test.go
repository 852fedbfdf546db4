package dataset

import (
	"testing"

	"framebias/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *Table {
	cols := DefaultColumnMap()
	return &Table{
		Headers: []string{cols.Country, cols.Score, cols.GDP, cols.SocialSupport, cols.LifeExpectancy, cols.Corruption, cols.Freedom, "Year"},
		Rows: []RawRow{
			{"Country": "Finland", "Score": "78.4", "GDP": "10.8", "Social_support": "0.95", "Healthy_life_expectancy": "71.2", "Perceptions_of_corruption": "0.18", "Freedom_of_choices": "0.94", "Year": "2023"},
			{"Country": " Chad ", "Score": "44.567", "GDP": " 7.3", "Social_support": "0.8123", "Healthy_life_expectancy": "61.7", "Perceptions_of_corruption": "0.80", "Freedom_of_choices": "0.60", "Year": "2023"},
		},
	}
}

func TestParseRows_TypedValues(t *testing.T) {
	rows, err := ParseRows(sampleTable(), DefaultColumnMap())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "Finland", rows[0].Country)
	assert.InDelta(t, 78.4, rows[0].Score, 1e-9)

	assert.Equal(t, 1, rows[1].Index)
	assert.Equal(t, "Chad", rows[1].Country)
	assert.InDelta(t, 44.567, rows[1].Score, 1e-9)
	assert.InDelta(t, 7.3, rows[1].GDP, 1e-9)
	assert.InDelta(t, 0.8123, rows[1].SocialSupport, 1e-9)
	assert.InDelta(t, 61.7, rows[1].LifeExpectancy, 1e-9)
	assert.InDelta(t, 0.80, rows[1].Corruption, 1e-9)
	assert.InDelta(t, 0.60, rows[1].Freedom, 1e-9)
}

func TestParseRows_MissingColumn(t *testing.T) {
	table := sampleTable()
	table.Headers = []string{"Country", "Score", "GDP"}

	_, err := ParseRows(table, DefaultColumnMap())
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingColumn, errors.GetCode(err))
	assert.Contains(t, err.Error(), "Social_support")
}

func TestParseRows_NonNumericCell(t *testing.T) {
	table := sampleTable()
	table.Rows[1]["GDP"] = "n/a"

	_, err := ParseRows(table, DefaultColumnMap())
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "row 3")
}

func TestParseRows_CustomColumns(t *testing.T) {
	cols := DefaultColumnMap()
	cols.Score = "Ladder"
	table := sampleTable()
	table.Headers[1] = "Ladder"
	for _, r := range table.Rows {
		r["Ladder"] = r["Score"]
	}

	rows, err := ParseRows(table, cols)
	require.NoError(t, err)
	assert.InDelta(t, 78.4, rows[0].Score, 1e-9)
}

func TestParseRows_UsesSourcePositions(t *testing.T) {
	table := sampleTable()
	table.Positions = []int{0, 4}
	table.Rows[1]["Score"] = "?"

	_, err := ParseRows(table, DefaultColumnMap())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 6")

	table.Rows[1]["Score"] = "44.5"
	rows, err := ParseRows(table, DefaultColumnMap())
	require.NoError(t, err)
	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, 4, rows[1].Index)
}
