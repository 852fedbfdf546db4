package responses

import "strings"

// SlotProgress is the fill state of one (hypothesis, condition, system) list
type SlotProgress struct {
	HypothesisID string
	Condition    string
	System       string
	Collected    int
	Expected     int
}

// Missing is how many responses still need pasting; never negative
func (s SlotProgress) Missing() int {
	if s.Collected >= s.Expected {
		return 0
	}
	return s.Expected - s.Collected
}

// Overfilled reports lists holding more responses than the plan asked for
func (s SlotProgress) Overfilled() bool {
	return s.Collected > s.Expected
}

// Progress summarises a partially filled template
type Progress struct {
	Slots     []SlotProgress
	Collected int // counted up to Expected per slot
	Expected  int
}

// Complete reports whether every slot has its expected responses
func (p Progress) Complete() bool {
	return p.Collected >= p.Expected
}

// Percent is the filled share of expected responses, 0-100
func (p Progress) Percent() float64 {
	if p.Expected == 0 {
		return 100
	}
	return 100 * float64(p.Collected) / float64(p.Expected)
}

// Progress walks the template in file order. Systems named in metadata but
// absent from a condition count as empty; blank pasted strings are ignored.
func (t *Template) Progress() Progress {
	var p Progress
	want := t.Metadata.ResponsesPerPrompt

	for _, id := range t.Results.Keys() {
		result, _ := t.Results.Get(id)
		for _, name := range result.Conditions.Keys() {
			cond, _ := result.Conditions.Get(name)
			for _, system := range t.systemsFor(&cond) {
				got, _ := cond.LLMResponses.Get(system)
				slot := SlotProgress{
					HypothesisID: id,
					Condition:    name,
					System:       system,
					Collected:    countNonBlank(got),
					Expected:     want,
				}
				p.Slots = append(p.Slots, slot)
				p.Expected += slot.Expected
				p.Collected += slot.Expected - slot.Missing()
			}
		}
	}
	return p
}

// systemsFor lists metadata systems first, then any extra systems a human added by hand
func (t *Template) systemsFor(cond *Condition) []string {
	out := append([]string{}, t.Metadata.LLMsTested...)
	known := make(map[string]bool, len(out))
	for _, s := range out {
		known[s] = true
	}
	for _, s := range cond.LLMResponses.Keys() {
		if !known[s] {
			out = append(out, s)
		}
	}
	return out
}

func countNonBlank(items []string) int {
	n := 0
	for _, s := range items {
		if strings.TrimSpace(s) != "" {
			n++
		}
	}
	return n
}
