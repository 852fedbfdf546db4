package experiment

import (
	"encoding/json"

	"framebias/domain/core"
)

// Conditions maps condition name to prompt text in presentation order
type Conditions = core.OrderedMap[string]

// Hypothesis is one record of experiment_prompts.json. ID is the map key
// in the file and is not serialized inside the record.
type Hypothesis struct {
	ID                   string     `json:"-"`
	Description          string     `json:"hypothesis"`
	GroundTruthCountries []string   `json:"ground_truth_countries"`
	Prompts              Conditions `json:"prompts"`
}

// Experiment is the whole prompts artifact: hypothesis id -> record
type Experiment struct {
	hypotheses core.OrderedMap[Hypothesis]
}

// Add appends a hypothesis keyed by its ID
func (e *Experiment) Add(h Hypothesis) {
	e.hypotheses.Set(h.ID, h)
}

// IDs returns hypothesis ids in file order
func (e *Experiment) IDs() []string {
	return e.hypotheses.Keys()
}

// Get returns the hypothesis with the given id
func (e *Experiment) Get(id string) (Hypothesis, bool) {
	return e.hypotheses.Get(id)
}

// Hypotheses returns the records in file order
func (e *Experiment) Hypotheses() []Hypothesis {
	out := make([]Hypothesis, 0, e.hypotheses.Len())
	for _, id := range e.hypotheses.Keys() {
		h, _ := e.hypotheses.Get(id)
		out = append(out, h)
	}
	return out
}

// PromptCount is the total number of (hypothesis, condition) prompts
func (e *Experiment) PromptCount() int {
	n := 0
	for _, h := range e.Hypotheses() {
		n += h.Prompts.Len()
	}
	return n
}

func (e Experiment) MarshalJSON() ([]byte, error) {
	return e.hypotheses.MarshalJSON()
}

// UnmarshalJSON restores the records and fills each ID from its key
func (e *Experiment) UnmarshalJSON(data []byte) error {
	var raw core.OrderedMap[Hypothesis]
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.hypotheses = core.OrderedMap[Hypothesis]{}
	for _, id := range raw.Keys() {
		h, _ := raw.Get(id)
		h.ID = id
		e.hypotheses.Set(id, h)
	}
	return nil
}
