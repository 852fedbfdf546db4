package app

import (
	"context"
	"fmt"
	"io"

	"framebias/domain/core"
	"framebias/domain/experiment"
	"framebias/domain/responses"
	"framebias/internal"
	"framebias/internal/checklist"
	"framebias/internal/config"
	"framebias/internal/errors"
	"framebias/ports"
)

// TemplateBuilder turns the prompts artifact into the response collection template
type TemplateBuilder struct {
	cfg    *config.Config
	store  ports.ArtifactStorePort
	logger *internal.Logger
	out    io.Writer
	now    func() core.Timestamp
}

// NewTemplateBuilder creates a template builder
func NewTemplateBuilder(cfg *config.Config, store ports.ArtifactStorePort, logger *internal.Logger, out io.Writer) *TemplateBuilder {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if out == nil {
		out = io.Discard
	}
	return &TemplateBuilder{cfg: cfg, store: store, logger: logger.With("component", "template_builder"), out: out, now: core.Now}
}

// WithClock overrides the experiment date source
func (b *TemplateBuilder) WithClock(now func() core.Timestamp) *TemplateBuilder {
	b.now = now
	return b
}

func (b *TemplateBuilder) plan() checklist.Plan {
	return checklist.Plan{
		Systems:            b.cfg.Experiment.Systems,
		ResponsesPerPrompt: b.cfg.Experiment.ResponsesPerPrompt,
	}
}

// Build creates an empty template for exp
func (b *TemplateBuilder) Build(exp *experiment.Experiment, now core.Timestamp) *responses.Template {
	return responses.NewTemplate(exp, b.cfg.Experiment.Systems, b.cfg.Experiment.ResponsesPerPrompt, now)
}

// LoadExperiment reads and checks the prompts artifact
func (b *TemplateBuilder) LoadExperiment(ctx context.Context) (*experiment.Experiment, error) {
	var exp experiment.Experiment
	if err := b.store.ReadJSON(ctx, b.cfg.Paths.PromptsFile, &exp); err != nil {
		return nil, errors.Wrap(err, "failed to load prompts")
	}
	if len(exp.IDs()) == 0 {
		return nil, errors.InvalidInput(b.cfg.Paths.PromptsFile + " contains no hypotheses")
	}
	for _, h := range exp.Hypotheses() {
		if h.Prompts.Len() == 0 {
			return nil, errors.Newf(errors.CodeInvalidInput, "%s: hypothesis %s has no prompts", b.cfg.Paths.PromptsFile, h.ID)
		}
	}
	return &exp, nil
}

// Run prints the checklist and writes the response template
func (b *TemplateBuilder) Run(ctx context.Context) (*responses.Template, error) {
	exp, err := b.LoadExperiment(ctx)
	if err != nil {
		return nil, err
	}
	plan := b.plan()
	entries := checklist.Entries(exp)

	fmt.Fprintln(b.out, checklist.Banner)
	fmt.Fprintln(b.out, "RESPONSE COLLECTION TEMPLATE")
	fmt.Fprintln(b.out, checklist.Banner)
	fmt.Fprintf(b.out, "\nEach prompt is tested with %d chat systems\n", len(plan.Systems))
	fmt.Fprintf(b.out, "For each prompt, collect %d responses to account for randomness\n\n", plan.ResponsesPerPrompt)

	checklist.WriteConsole(b.out, entries, plan)

	tmpl := b.Build(exp, b.now())

	fmt.Fprintln(b.out, "\n"+checklist.Banner)
	fmt.Fprintf(b.out, "TOTAL: %d prompts to test\n", tmpl.PromptCount())
	fmt.Fprintf(b.out, "With %d LLMs x %d responses each = %d total responses needed\n",
		len(plan.Systems), plan.ResponsesPerPrompt, tmpl.ExpectedResponses())
	fmt.Fprintln(b.out, checklist.Banner)

	if _, err := b.store.WriteJSON(ctx, b.cfg.Paths.TemplateFile, tmpl); err != nil {
		return nil, errors.Wrap(err, "failed to save response template")
	}
	b.logger.Info("wrote %s: %d prompts, %d response slots", b.cfg.Paths.TemplateFile, tmpl.PromptCount(), tmpl.ExpectedResponses())

	if path := b.cfg.Paths.ChecklistFile; path != "" {
		if err := b.store.WriteText(ctx, path, checklist.Render(path, entries, plan)); err != nil {
			return nil, errors.Wrap(err, "failed to save checklist")
		}
		b.logger.Info("wrote checklist %s", path)
	}

	fmt.Fprintf(b.out, "\n✅ Response template created: %s\n", b.cfg.Paths.TemplateFile)
	b.printNextSteps(plan)
	return tmpl, nil
}

func (b *TemplateBuilder) printNextSteps(plan checklist.Plan) {
	fmt.Fprintln(b.out, "\nNEXT STEPS:")
	fmt.Fprintln(b.out, "1. Copy each prompt above")
	if len(plan.Systems) == 0 {
		return
	}
	fmt.Fprintf(b.out, "2. Paste into %s and save the response\n", plan.Systems[0])
	fmt.Fprintf(b.out, "3. Repeat in a fresh chat until you have %d responses\n", plan.ResponsesPerPrompt)
	step := 4
	if len(plan.Systems) > 1 {
		fmt.Fprintf(b.out, "%d. Repeat for %s\n", step, joinAnd(plan.Systems[1:]))
		step++
	}
	fmt.Fprintf(b.out, "%d. Add every response to %s as you collect it\n", step, b.cfg.Paths.TemplateFile)
}

func joinAnd(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	}
	out := items[0]
	for _, s := range items[1 : len(items)-1] {
		out += ", " + s
	}
	return out + " and " + items[len(items)-1]
}
