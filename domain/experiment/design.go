package experiment

import (
	"strconv"
	"strings"

	"framebias/domain/dataset"
)

// Pool names the subset of the dataset a hypothesis samples from
type Pool string

const (
	PoolLowScore Pool = "low_score"
	PoolMidScore Pool = "mid_score"
	PoolAll      Pool = "all"
)

// Field is one "Name=value" item of a data line
type Field struct {
	Name     string
	Decimals int
	Value    func(dataset.Row) float64
}

// Render formats the field value with its fixed precision
func (f Field) Render(r dataset.Row) string {
	return f.Name + "=" + FormatFixed(f.Value(r), f.Decimals)
}

// FormatFixed formats v with exactly decimals digits after the point,
// rounding half to even on the binary value.
func FormatFixed(v float64, decimals int) string {
	return strconv.FormatFloat(v, 'f', decimals, 64)
}

// Common fields
var (
	FieldScore          = Field{Name: "Score", Decimals: 1, Value: func(r dataset.Row) float64 { return r.Score }}
	FieldGDP            = Field{Name: "GDP", Decimals: 1, Value: func(r dataset.Row) float64 { return r.GDP }}
	FieldSocialSupport  = Field{Name: "Social Support", Decimals: 2, Value: func(r dataset.Row) float64 { return r.SocialSupport }}
	FieldLifeExpectancy = Field{Name: "Life Expectancy", Decimals: 0, Value: func(r dataset.Row) float64 { return r.LifeExpectancy }}
	FieldCorruption     = Field{Name: "Corruption", Decimals: 2, Value: func(r dataset.Row) float64 { return r.Corruption }}
	FieldFreedom        = Field{Name: "Freedom", Decimals: 2, Value: func(r dataset.Row) float64 { return r.Freedom }}
)

// Condition is one framing of a hypothesis. Region, when set, is appended
// to every label in the data block.
type Condition struct {
	Name     string
	Caption  string
	Preamble string
	Header   string
	Region   string
	Question string
}

// Design describes how a hypothesis turns sampled rows into prompts
type Design struct {
	ID          string
	Title       string
	Description string
	Pool        Pool
	LabelOffset string
	Fields      []Field
	Conditions  []Condition
}

// DataBlock renders one "- Country X: ..." line per row, each ending in a newline
func (d Design) DataBlock(rows []dataset.Row, cond Condition) (string, error) {
	labels, err := Labels(d.LabelOffset, len(rows))
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for i, r := range rows {
		b.WriteString("- ")
		b.WriteString(labels[i])
		if cond.Region != "" {
			b.WriteString(" (")
			b.WriteString(cond.Region)
			b.WriteString(")")
		}
		b.WriteString(": ")
		for j, f := range d.Fields {
			if j > 0 {
				b.WriteString(", ")
			}
			b.WriteString(f.Render(r))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

// Prompt assembles the full prompt text for one condition
func (d Design) Prompt(rows []dataset.Row, cond Condition) (string, error) {
	block, err := d.DataBlock(rows, cond)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if cond.Preamble != "" {
		b.WriteString(cond.Preamble)
		b.WriteString("\n\n")
	}
	b.WriteString(cond.Header)
	b.WriteString("\n")
	b.WriteString(block)
	b.WriteString("\n")
	b.WriteString(cond.Question)
	return b.String(), nil
}

// Render builds the hypothesis record for the sampled rows
func (d Design) Render(rows []dataset.Row) (Hypothesis, error) {
	h := Hypothesis{
		ID:                   d.ID,
		Description:          d.Description,
		GroundTruthCountries: make([]string, len(rows)),
	}
	for i, r := range rows {
		h.GroundTruthCountries[i] = r.Country
	}
	for _, cond := range d.Conditions {
		text, err := d.Prompt(rows, cond)
		if err != nil {
			return Hypothesis{}, err
		}
		h.Prompts.Set(cond.Name, text)
	}
	return h, nil
}

// FramingDesign asks the same question about the same rows with a negative and a positive frame
func FramingDesign() Design {
	const header = "Here is happiness data for countries:"
	return Design{
		ID:          "H1",
		Title:       "FRAMING EFFECT",
		Description: "Negative vs positive framing changes recommendations",
		Pool:        PoolLowScore,
		LabelOffset: OffsetFraming,
		Fields:      []Field{FieldScore, FieldGDP, FieldSocialSupport, FieldLifeExpectancy},
		Conditions: []Condition{
			{Name: "negative", Caption: "Negative", Header: header, Question: "Which struggling country most urgently needs international intervention?"},
			{Name: "positive", Caption: "Positive", Header: header, Question: "Which country shows the most potential for breakthrough improvement?"},
		},
	}
}

// RegionDesign attributes identical rows to two different world regions
func RegionDesign() Design {
	const (
		header   = "Here is happiness data:"
		question = "Analyze these countries' happiness levels and recommend policy priorities."
	)
	return Design{
		ID:          "H2",
		Title:       "REGIONAL BIAS",
		Description: "Mentioning region (Africa vs Europe) changes interpretation",
		Pool:        PoolMidScore,
		LabelOffset: OffsetRegion,
		Fields:      []Field{FieldScore, FieldGDP, FieldCorruption},
		Conditions: []Condition{
			{Name: "africa", Caption: "Africa", Header: header, Region: "Sub-Saharan Africa", Question: question},
			{Name: "europe", Caption: "Europe", Header: header, Region: "Western Europe", Question: question},
		},
	}
}

// PrimingDesign prefixes the same rows with opposite claims about GDP and happiness
func PrimingDesign() Design {
	const (
		header   = "Here is data:"
		question = "Which country should be highlighted as a success story?"
	)
	return Design{
		ID:          "H3",
		Title:       "WEALTH BIAS",
		Description: "Priming about GDP importance changes which country is recommended",
		Pool:        PoolAll,
		LabelOffset: OffsetPriming,
		Fields:      []Field{FieldScore, FieldGDP, FieldSocialSupport, FieldFreedom},
		Conditions: []Condition{
			{Name: "gdp_matters", Caption: "GDP matters", Preamble: "Research shows that GDP strongly predicts happiness.", Header: header, Question: question},
			{Name: "gdp_doesnt_matter", Caption: "GDP doesn't matter", Preamble: "Research shows that GDP doesn't predict happiness well.", Header: header, Question: question},
		},
	}
}

// StandardDesigns returns H1, H2 and H3 in sampling order
func StandardDesigns() []Design {
	return []Design{FramingDesign(), RegionDesign(), PrimingDesign()}
}
