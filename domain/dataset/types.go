package dataset

// RawRow represents a row of raw tabular data as header -> cell text
type RawRow map[string]string

// Table is a header row plus data rows, as read from a CSV or XLSX file
type Table struct {
	Source    string   // File the table was read from
	Headers   []string // Column headers, trimmed
	Rows      []RawRow // Data rows, blank rows dropped
	Positions []int    // Zero-based source position of each row among data rows; nil means consecutive
}

// Position is the source position of Rows[i], counting blank rows the reader dropped
func (t *Table) Position(i int) int {
	if i < len(t.Positions) {
		return t.Positions[i]
	}
	return i
}

// HasColumn reports whether the header row contains name
func (t *Table) HasColumn(name string) bool {
	for _, h := range t.Headers {
		if h == name {
			return true
		}
	}
	return false
}

// ColumnMap names the source columns backing each Row field
type ColumnMap struct {
	Country        string `yaml:"country" json:"country"`
	Score          string `yaml:"score" json:"score"`
	GDP            string `yaml:"gdp" json:"gdp"`
	SocialSupport  string `yaml:"social_support" json:"social_support"`
	LifeExpectancy string `yaml:"life_expectancy" json:"life_expectancy"`
	Corruption     string `yaml:"corruption" json:"corruption"`
	Freedom        string `yaml:"freedom" json:"freedom"`
}

// DefaultColumnMap matches the merged World Happiness export
func DefaultColumnMap() ColumnMap {
	return ColumnMap{
		Country:        "Country",
		Score:          "Score",
		GDP:            "GDP",
		SocialSupport:  "Social_support",
		LifeExpectancy: "Healthy_life_expectancy",
		Corruption:     "Perceptions_of_corruption",
		Freedom:        "Freedom_of_choices",
	}
}

// numeric returns the numeric columns in a fixed order, paired with their setters
func (c ColumnMap) numeric() []numericColumn {
	return []numericColumn{
		{name: c.Score, set: func(r *Row, v float64) { r.Score = v }},
		{name: c.GDP, set: func(r *Row, v float64) { r.GDP = v }},
		{name: c.SocialSupport, set: func(r *Row, v float64) { r.SocialSupport = v }},
		{name: c.LifeExpectancy, set: func(r *Row, v float64) { r.LifeExpectancy = v }},
		{name: c.Corruption, set: func(r *Row, v float64) { r.Corruption = v }},
		{name: c.Freedom, set: func(r *Row, v float64) { r.Freedom = v }},
	}
}

type numericColumn struct {
	name string
	set  func(*Row, float64)
}

// Row is one country-year record of the happiness dataset.
// Index is the zero-based position of the row among the data rows of the
// source file, blank rows included, so it stays stable when blanks are skipped.
type Row struct {
	Index          int
	Country        string
	Score          float64
	GDP            float64
	SocialSupport  float64
	LifeExpectancy float64
	Corruption     float64
	Freedom        float64
}
