package app

import (
	"context"
	"fmt"
	"io"

	"framebias/domain/core"
	"framebias/domain/dataset"
	"framebias/domain/experiment"
	"framebias/domain/run"
	"framebias/internal"
	"framebias/internal/checklist"
	"framebias/internal/config"
	"framebias/internal/errors"
	"framebias/internal/sampling"
	"framebias/ports"
)

// PromptBuilder samples the dataset and writes the prompts artifact
type PromptBuilder struct {
	cfg     *config.Config
	reader  ports.DatasetReaderPort
	store   ports.ArtifactStorePort
	logger  *internal.Logger
	out     io.Writer
	designs []experiment.Design
}

// NewPromptBuilder creates a builder for the standard H1, H2, H3 designs
func NewPromptBuilder(cfg *config.Config, reader ports.DatasetReaderPort, store ports.ArtifactStorePort, logger *internal.Logger, out io.Writer) *PromptBuilder {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if out == nil {
		out = io.Discard
	}
	return &PromptBuilder{
		cfg:     cfg,
		reader:  reader,
		store:   store,
		logger:  logger.With("component", "prompt_builder"),
		out:     out,
		designs: experiment.StandardDesigns(),
	}
}

// PromptBuildResult is what one Run produced
type PromptBuildResult struct {
	Experiment *experiment.Experiment
	Groups     []run.GroupSummary
	Manifest   *run.ExperimentManifest // nil when no manifest path is configured
}

// Build draws one group per design, in design order, and renders its prompts
func (b *PromptBuilder) Build(ctx context.Context, rows []dataset.Row) (*experiment.Experiment, []run.GroupSummary, error) {
	exp := &experiment.Experiment{}
	groups := make([]run.GroupSummary, 0, len(b.designs))
	sampler := sampling.NewSampler(b.cfg.Experiment.Seed, b.logger)

	for _, d := range b.designs {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}

		pred, err := b.predicate(d.Pool)
		if err != nil {
			return nil, nil, err
		}
		picked, err := sampler.Draw(d.ID, rows, pred, b.cfg.Experiment.SampleSize)
		if err != nil {
			return nil, nil, err
		}

		h, err := d.Render(picked)
		if err != nil {
			return nil, nil, errors.Wrapf(err, "failed to render %s", d.ID)
		}
		exp.Add(h)

		summary, err := sampling.Summarize(picked)
		if err != nil {
			return nil, nil, err
		}
		group := run.GroupSummary{
			HypothesisID: d.ID,
			Pool:         string(d.Pool),
			RowIndexes:   make([]int, len(picked)),
			Count:        summary.Count,
			MeanScore:    summary.MeanScore,
			MinScore:     summary.MinScore,
			MaxScore:     summary.MaxScore,
		}
		for i, r := range picked {
			group.RowIndexes[i] = r.Index
		}
		groups = append(groups, group)

		b.logger.Info("%s: sampled %d rows from %s pool (mean score %.2f)", d.ID, summary.Count, d.Pool, summary.MeanScore)
	}
	return exp, groups, nil
}

// Run reads the dataset, builds the experiment, prints every prompt and
// writes the prompts file plus the optional manifest
func (b *PromptBuilder) Run(ctx context.Context) (*PromptBuildResult, error) {
	table, err := b.reader.ReadTable(ctx)
	if err != nil {
		return nil, err
	}
	rows, err := dataset.ParseRows(table, b.cfg.Columns)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", b.reader.Path())
	}
	b.logger.Debug("parsed %d rows from %s", len(rows), b.reader.Path())

	exp, groups, err := b.Build(ctx, rows)
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(b.out, checklist.Banner)
	fmt.Fprintln(b.out, "EXPERIMENT DESIGN - PROMPT PAIRS")
	fmt.Fprintln(b.out, checklist.Banner)
	b.printPrompts(exp)

	fmt.Fprintln(b.out, "\n"+checklist.Banner)
	fmt.Fprintln(b.out, "SAVING PROMPTS TO FILE")
	fmt.Fprintln(b.out, checklist.Banner)

	promptsPath := b.cfg.Paths.PromptsFile
	written, err := b.store.WriteJSON(ctx, promptsPath, exp)
	if err != nil {
		return nil, errors.Wrap(err, "failed to save prompts")
	}
	b.logger.Info("wrote %s (%d bytes)", promptsPath, len(written))

	result := &PromptBuildResult{Experiment: exp, Groups: groups}
	if b.cfg.Paths.ManifestFile != "" {
		manifest, err := b.writeManifest(ctx, written, groups)
		if err != nil {
			return nil, err
		}
		result.Manifest = manifest
	}

	fmt.Fprintf(b.out, "\n✅ Prompts saved to: %s\n", promptsPath)
	fmt.Fprintf(b.out, "\n📊 Total hypotheses: %d\n", len(exp.IDs()))
	fmt.Fprintf(b.out, "📝 Total prompts: %d\n", exp.PromptCount())
	return result, nil
}

func (b *PromptBuilder) predicate(pool experiment.Pool) (sampling.Predicate, error) {
	e := b.cfg.Experiment
	switch pool {
	case experiment.PoolLowScore:
		return sampling.Below(e.LowScoreMax), nil
	case experiment.PoolMidScore:
		return sampling.Between(e.MidScoreMin, e.MidScoreMax), nil
	case experiment.PoolAll:
		return sampling.All(), nil
	default:
		return sampling.Predicate{}, errors.InternalError(fmt.Sprintf("unknown sampling pool %q", pool))
	}
}

// printPrompts writes "### HYPOTHESIS 1: FRAMING EFFECT ###" sections with
// "Prompt 1A (Negative):" captions
func (b *PromptBuilder) printPrompts(exp *experiment.Experiment) {
	for i, d := range b.designs {
		h, ok := exp.Get(d.ID)
		if !ok {
			continue
		}
		if i == 0 {
			fmt.Fprintf(b.out, "\n### HYPOTHESIS %d: %s ###\n\n", i+1, d.Title)
		} else {
			fmt.Fprintf(b.out, "\n\n### HYPOTHESIS %d: %s ###\n\n", i+1, d.Title)
		}
		for j, cond := range d.Conditions {
			text, _ := h.Prompts.Get(cond.Name)
			if j > 0 {
				fmt.Fprintln(b.out)
			}
			fmt.Fprintf(b.out, "Prompt %d%c (%s):\n", i+1, 'A'+j, cond.Caption)
			fmt.Fprintln(b.out, text)
		}
	}
}

func (b *PromptBuilder) writeManifest(ctx context.Context, prompts []byte, groups []run.GroupSummary) (*run.ExperimentManifest, error) {
	datasetHash, err := b.reader.Fingerprint()
	if err != nil {
		return nil, err
	}
	e := b.cfg.Experiment
	manifest := run.NewExperimentManifest(
		b.reader.Path(),
		b.cfg.Paths.PromptsFile,
		datasetHash,
		core.NewPromptsHash(prompts),
		e.Seed,
		run.Thresholds{
			LowScoreMax: e.LowScoreMax,
			MidScoreMin: e.MidScoreMin,
			MidScoreMax: e.MidScoreMax,
			SampleSize:  e.SampleSize,
		},
		groups,
	)
	if err := manifest.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid run manifest")
	}
	if _, err := b.store.WriteJSON(ctx, b.cfg.Paths.ManifestFile, manifest); err != nil {
		return nil, errors.Wrap(err, "failed to save run manifest")
	}
	b.logger.Info("wrote %s (run %s, fingerprint %s)", b.cfg.Paths.ManifestFile, manifest.RunID, manifest.Fingerprint.Fingerprint.Short())
	return manifest, nil
}
