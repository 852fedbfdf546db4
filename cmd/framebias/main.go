package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"framebias/adapters/excel"
	"framebias/adapters/localfs"
	"framebias/app"
	"framebias/internal"
	"framebias/internal/config"
	"framebias/internal/errors"

	"github.com/spf13/cobra"
)

// env holds what every subcommand needs once flags are resolved
type env struct {
	cfg    *config.Config
	logger *internal.Logger
	store  *localfs.LocalArtifactStore
}

type rootFlags struct {
	configPath string
	dataset    string
	outDir     string
	seed       int64
	systems    []string
	responses  int
	sampleSize int
	manifest   string
	checklist  string
	logLevel   string
}

func main() {
	var flags rootFlags
	e := &env{}

	rootCmd := &cobra.Command{
		Use:   "framebias",
		Short: "Build prompt pairs and response templates for the LLM framing bias experiment",
		Long: `framebias samples a country happiness dataset, renders paired prompts that
differ only in framing, region or priming, and prepares the template used to
collect chat system responses by hand.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(flags.configPath)
			if err != nil {
				return err
			}
			if err := flags.apply(cmd, cfg); err != nil {
				return err
			}
			e.cfg = cfg
			e.logger = internal.NewLogger(internal.ParseLogLevel(cfg.Logging.Level), cfg.Logging.Mode)
			e.store = localfs.NewLocalArtifactStore(flags.outDir)
			e.logger.Debug("configuration loaded: seed=%d dataset=%s systems=%v", cfg.Experiment.Seed, cfg.Paths.Dataset, cfg.Experiment.Systems)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if e.logger != nil {
				e.logger.Sync()
			}
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML configuration file (default $FRAMEBIAS_CONFIG)")
	pf.StringVarP(&flags.dataset, "dataset", "d", "", "happiness dataset (.csv or .xlsx)")
	pf.StringVarP(&flags.outDir, "out", "o", "", "directory for generated files (default working directory)")
	pf.Int64Var(&flags.seed, "seed", config.DefaultSeed, "sampling seed")
	pf.StringSliceVar(&flags.systems, "systems", nil, "chat systems to collect responses from")
	pf.IntVar(&flags.responses, "responses", config.DefaultResponsesPerPrompt, "responses to collect per prompt and system")
	pf.IntVar(&flags.sampleSize, "sample-size", config.DefaultSampleSize, "countries per hypothesis")
	pf.StringVar(&flags.manifest, "manifest", "", "run manifest file; \"none\" disables it")
	pf.StringVar(&flags.checklist, "checklist", "", "also write the checklist as Markdown, or HTML for .html paths")
	pf.StringVar(&flags.logLevel, "log-level", "", "ERROR, WARN, INFO, DEBUG or TRACE")

	rootCmd.AddCommand(
		newPromptsCmd(e),
		newTemplateCmd(e),
		newRunCmd(e),
		newStatusCmd(e),
	)

	if err := rootCmd.Execute(); err != nil {
		// before PersistentPreRunE has built the logger, only stderr is available
		if e.logger != nil {
			e.logger.Error("%v", err)
			e.logger.Sync()
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		if errors.HasCode(err, errors.CodeConfigInvalid) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

// apply overlays explicitly set flags onto the loaded configuration
func (f *rootFlags) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("dataset") {
		cfg.Paths.Dataset = f.dataset
	}
	if changed("seed") {
		cfg.Experiment.Seed = f.seed
	}
	if changed("systems") {
		cfg.Experiment.Systems = f.systems
	}
	if changed("responses") {
		cfg.Experiment.ResponsesPerPrompt = f.responses
	}
	if changed("sample-size") {
		cfg.Experiment.SampleSize = f.sampleSize
	}
	if changed("manifest") {
		if strings.EqualFold(f.manifest, "none") {
			cfg.Paths.ManifestFile = ""
		} else {
			cfg.Paths.ManifestFile = f.manifest
		}
	}
	if changed("checklist") {
		cfg.Paths.ChecklistFile = f.checklist
	}
	if changed("log-level") {
		cfg.Logging.Level = f.logLevel
	}
	return cfg.Validate()
}

func newPromptsCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "prompts",
		Short: "Sample the dataset and write the prompts file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := runPrompts(cmd.Context(), cmd, e)
			return err
		},
	}
}

func newTemplateCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the collection checklist and write the empty response template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTemplate(cmd.Context(), cmd, e)
		},
	}
}

func newRunCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Write the prompts file, then the response template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := runPrompts(cmd.Context(), cmd, e); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return runTemplate(cmd.Context(), cmd, e)
		},
	}
}

func newStatusCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "status [responses-file]",
		Short: "Report how many responses have been collected",
		Long: `Report collected vs expected responses for every prompt and chat system.

Example: framebias status responses_template.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := e.cfg.Paths.TemplateFile
			if len(args) == 1 {
				path = args[0]
			}
			_, err := app.NewStatusService(e.store, e.logger, cmd.OutOrStdout()).Check(cmd.Context(), path)
			return err
		},
	}
}

func runPrompts(ctx context.Context, cmd *cobra.Command, e *env) (*app.PromptBuildResult, error) {
	reader := excel.NewDataReader(e.cfg.Paths.Dataset, e.logger)
	return app.NewPromptBuilder(e.cfg, reader, e.store, e.logger, cmd.OutOrStdout()).Run(ctx)
}

func runTemplate(ctx context.Context, cmd *cobra.Command, e *env) error {
	_, err := app.NewTemplateBuilder(e.cfg, e.store, e.logger, cmd.OutOrStdout()).Run(ctx)
	return err
}
