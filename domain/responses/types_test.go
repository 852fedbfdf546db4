package responses

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"framebias/domain/core"
	"framebias/domain/experiment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var systems = []string{"ChatGPT", "Claude", "Gemini"}

func sampleExperiment(t *testing.T) *experiment.Experiment {
	t.Helper()
	var e experiment.Experiment
	for _, id := range []string{"H1", "H2", "H3"} {
		h := experiment.Hypothesis{
			ID:                   id,
			Description:          "desc " + id,
			GroundTruthCountries: []string{id + "-a", id + "-b", id + "-c"},
		}
		h.Prompts.Set("first", "prompt one for "+id)
		h.Prompts.Set("second", "prompt two for "+id)
		e.Add(h)
	}
	return &e
}

func fixedDate() core.Timestamp {
	return core.NewTimestamp(time.Date(2025, 11, 2, 14, 30, 5, 123456000, time.UTC))
}

func TestNewTemplate_MirrorsPrompts(t *testing.T) {
	exp := sampleExperiment(t)
	tmpl := NewTemplate(exp, systems, 2, fixedDate())

	assert.Equal(t, "2025-11-02T14:30:05.123456", tmpl.Metadata.ExperimentDate)
	assert.Equal(t, systems, tmpl.Metadata.LLMsTested)
	assert.Equal(t, 2, tmpl.Metadata.ResponsesPerPrompt)
	assert.Equal(t, exp.IDs(), tmpl.Results.Keys())

	for _, h := range exp.Hypotheses() {
		r, ok := tmpl.Results.Get(h.ID)
		require.True(t, ok)
		assert.Equal(t, h.Description, r.Hypothesis)
		assert.Equal(t, h.GroundTruthCountries, r.GroundTruthCountries)
		assert.Equal(t, h.Prompts.Keys(), r.Conditions.Keys())

		for _, name := range h.Prompts.Keys() {
			cond, _ := r.Conditions.Get(name)
			want, _ := h.Prompts.Get(name)
			assert.Equal(t, want, cond.Prompt)
			assert.Equal(t, systems, cond.LLMResponses.Keys())
			for _, s := range systems {
				got, ok := cond.LLMResponses.Get(s)
				require.True(t, ok)
				assert.NotNil(t, got)
				assert.Empty(t, got)
			}
		}
	}

	assert.Equal(t, 6, tmpl.PromptCount())
	assert.Equal(t, 36, tmpl.ExpectedResponses())
}

func TestTemplate_JSONShape(t *testing.T) {
	tmpl := NewTemplate(sampleExperiment(t), systems, 2, fixedDate())

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	require.NoError(t, enc.Encode(tmpl))

	var generic map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &generic))

	meta := generic["metadata"].(map[string]interface{})
	assert.Equal(t, float64(2), meta["responses_per_prompt"])

	results := generic["results"].(map[string]interface{})
	h1 := results["H1"].(map[string]interface{})
	conds := h1["conditions"].(map[string]interface{})
	first := conds["first"].(map[string]interface{})
	llm := first["llm_responses"].(map[string]interface{})
	assert.Len(t, llm, 3)
	assert.Equal(t, []interface{}{}, llm["Claude"])

	assert.Contains(t, buf.String(), `"llm_responses":{"ChatGPT":[],"Claude":[],"Gemini":[]}`)

	var back Template
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, []string{"H1", "H2", "H3"}, back.Results.Keys())
	assert.Equal(t, 36, back.ExpectedResponses())
}

func TestProgress(t *testing.T) {
	tmpl := NewTemplate(sampleExperiment(t), systems, 2, fixedDate())

	p := tmpl.Progress()
	assert.Len(t, p.Slots, 18)
	assert.Equal(t, 36, p.Expected)
	assert.Equal(t, 0, p.Collected)
	assert.False(t, p.Complete())
	assert.Equal(t, 0.0, p.Percent())

	r, _ := tmpl.Results.Get("H2")
	cond, _ := r.Conditions.Get("second")
	cond.LLMResponses.Set("Claude", []string{"answer 1", "answer 2", "answer 3"})
	cond.LLMResponses.Set("Gemini", []string{"answer 1", "   "})
	r.Conditions.Set("second", cond)
	tmpl.Results.Set("H2", r)

	p = tmpl.Progress()
	assert.Equal(t, 3, p.Collected)
	for _, s := range p.Slots {
		if s.HypothesisID == "H2" && s.Condition == "second" && s.System == "Claude" {
			assert.True(t, s.Overfilled())
			assert.Equal(t, 0, s.Missing())
		}
		if s.HypothesisID == "H2" && s.Condition == "second" && s.System == "Gemini" {
			assert.Equal(t, 1, s.Collected)
			assert.Equal(t, 1, s.Missing())
		}
	}
}

func TestProgress_CompleteWhenAllFilled(t *testing.T) {
	tmpl := NewTemplate(sampleExperiment(t), []string{"Solo"}, 1, fixedDate())
	for _, id := range tmpl.Results.Keys() {
		r, _ := tmpl.Results.Get(id)
		for _, name := range r.Conditions.Keys() {
			cond, _ := r.Conditions.Get(name)
			cond.LLMResponses.Set("Solo", []string{"done"})
			r.Conditions.Set(name, cond)
		}
		tmpl.Results.Set(id, r)
	}

	p := tmpl.Progress()
	assert.True(t, p.Complete())
	assert.Equal(t, 100.0, p.Percent())
}
