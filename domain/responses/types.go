// Package responses models responses_template.json: one empty answer list
// per (hypothesis, condition, chat system), filled in by hand later.
package responses

import (
	"framebias/domain/core"
	"framebias/domain/experiment"
)

// Metadata describes the collection plan
type Metadata struct {
	ExperimentDate     string   `json:"experiment_date"`
	LLMsTested         []string `json:"llms_tested"`
	ResponsesPerPrompt int      `json:"responses_per_prompt"`
}

// SystemResponses maps chat system name to the pasted responses, in order
type SystemResponses = core.OrderedMap[[]string]

// Condition holds a prompt and the responses collected for it
type Condition struct {
	Prompt       string          `json:"prompt"`
	LLMResponses SystemResponses `json:"llm_responses"`
}

// Result mirrors one hypothesis of the prompts artifact
type Result struct {
	Hypothesis           string                     `json:"hypothesis"`
	GroundTruthCountries []string                   `json:"ground_truth_countries"`
	Conditions           core.OrderedMap[Condition] `json:"conditions"`
}

// Template is the whole responses file
type Template struct {
	Metadata Metadata                `json:"metadata"`
	Results  core.OrderedMap[Result] `json:"results"`
}

// NewTemplate seeds an empty template from the prompts artifact
func NewTemplate(exp *experiment.Experiment, systems []string, responsesPerPrompt int, date core.Timestamp) *Template {
	t := &Template{
		Metadata: Metadata{
			ExperimentDate:     date.ISO(),
			LLMsTested:         append([]string{}, systems...),
			ResponsesPerPrompt: responsesPerPrompt,
		},
	}

	for _, h := range exp.Hypotheses() {
		result := Result{
			Hypothesis:           h.Description,
			GroundTruthCountries: append([]string{}, h.GroundTruthCountries...),
		}
		for _, name := range h.Prompts.Keys() {
			prompt, _ := h.Prompts.Get(name)
			cond := Condition{Prompt: prompt}
			for _, system := range systems {
				cond.LLMResponses.Set(system, []string{})
			}
			result.Conditions.Set(name, cond)
		}
		t.Results.Set(h.ID, result)
	}
	return t
}

// PromptCount is the number of (hypothesis, condition) pairs
func (t *Template) PromptCount() int {
	n := 0
	for _, id := range t.Results.Keys() {
		r, _ := t.Results.Get(id)
		n += r.Conditions.Len()
	}
	return n
}

// ExpectedResponses is the number of response slots the plan asks for
func (t *Template) ExpectedResponses() int {
	return t.PromptCount() * len(t.Metadata.LLMsTested) * t.Metadata.ResponsesPerPrompt
}
