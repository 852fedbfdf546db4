package app

import (
	"bytes"
	"context"
	"testing"

	"framebias/adapters/localfs"
	"framebias/domain/responses"
	"framebias/internal"
	"framebias/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusService_Check(t *testing.T) {
	cfg, dir := promptsOnDisk(t)
	store := localfs.NewLocalArtifactStore(dir)
	ctx := context.Background()

	tmpl, err := NewTemplateBuilder(cfg, store, internal.NewNopLogger(), nil).WithClock(fixedClock).Run(ctx)
	require.NoError(t, err)

	var out bytes.Buffer
	status := NewStatusService(store, internal.NewNopLogger(), &out)

	p, err := status.Check(ctx, cfg.Paths.TemplateFile)
	require.NoError(t, err)
	assert.Equal(t, 0, p.Collected)
	assert.Equal(t, 36, p.Expected)
	assert.Contains(t, out.String(), "Collected 0 of 36 responses (0%)")

	r, _ := tmpl.Results.Get("H1")
	cond, _ := r.Conditions.Get("negative")
	cond.LLMResponses.Set("ChatGPT", []string{"first", "second"})
	cond.LLMResponses.Set("Claude", []string{"one", "two", "three"})
	r.Conditions.Set("negative", cond)
	tmpl.Results.Set("H1", r)
	_, err = store.WriteJSON(ctx, cfg.Paths.TemplateFile, tmpl)
	require.NoError(t, err)

	out.Reset()
	p, err = status.Check(ctx, cfg.Paths.TemplateFile)
	require.NoError(t, err)
	assert.Equal(t, 4, p.Collected)
	assert.False(t, p.Complete())
	assert.Contains(t, out.String(), "[ok] H1_negative ChatGPT    2/2")
	assert.Contains(t, out.String(), "[!!] H1_negative Claude     3/2")
	assert.Contains(t, out.String(), "[  ] H1_negative Gemini     0/2")
}

func TestStatusService_Complete(t *testing.T) {
	dir := t.TempDir()
	store := localfs.NewLocalArtifactStore(dir)
	ctx := context.Background()

	tmpl := &responses.Template{Metadata: responses.Metadata{LLMsTested: []string{"Solo"}, ResponsesPerPrompt: 1}}
	var cond responses.Condition
	cond.Prompt = "p"
	cond.LLMResponses.Set("Solo", []string{"answer"})
	var r responses.Result
	r.Conditions.Set("only", cond)
	tmpl.Results.Set("H1", r)
	_, err := store.WriteJSON(ctx, "filled.json", tmpl)
	require.NoError(t, err)

	var out bytes.Buffer
	p, err := NewStatusService(store, internal.NewNopLogger(), &out).Check(ctx, "filled.json")
	require.NoError(t, err)
	assert.True(t, p.Complete())
	assert.Contains(t, out.String(), "✅ All responses collected")
}

func TestStatusService_Errors(t *testing.T) {
	dir := t.TempDir()
	store := localfs.NewLocalArtifactStore(dir)
	ctx := context.Background()
	status := NewStatusService(store, internal.NewNopLogger(), nil)

	_, err := status.Check(ctx, "missing.json")
	assert.Equal(t, errors.CodeNotFound, errors.GetCode(err))

	require.NoError(t, store.WriteText(ctx, "zero.json", `{"metadata": {"responses_per_prompt": 0}, "results": {}}`))
	_, err = status.Check(ctx, "zero.json")
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}
