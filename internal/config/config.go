package config

import (
	"os"
	"strconv"
	"strings"

	"framebias/domain/dataset"
	"framebias/internal/errors"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults for a single manual run of the framing experiment
const (
	DefaultSeed               int64 = 42
	DefaultSampleSize               = 3
	DefaultResponsesPerPrompt       = 2
	DefaultLowScoreMax              = 50.0
	DefaultMidScoreMin              = 60.0
	DefaultMidScoreMax              = 70.0

	DefaultDatasetPath  = "merged_happiness_data.csv"
	DefaultPromptsFile  = "experiment_prompts.json"
	DefaultTemplateFile = "responses_template.json"
	DefaultManifestFile = "experiment_manifest.json"
)

// DefaultSystems are the chat systems each prompt is pasted into
var DefaultSystems = []string{"ChatGPT", "Claude", "Gemini"}

// Config represents the complete application configuration
type Config struct {
	Experiment ExperimentConfig  `yaml:"experiment"`
	Paths      PathConfig        `yaml:"paths"`
	Columns    dataset.ColumnMap `yaml:"columns"`
	Logging    LoggingConfig     `yaml:"logging"`
}

// ExperimentConfig holds the sampling and collection parameters
type ExperimentConfig struct {
	Seed               int64    `yaml:"seed"`
	SampleSize         int      `yaml:"sample_size"`
	Systems            []string `yaml:"systems"`
	ResponsesPerPrompt int      `yaml:"responses_per_prompt"`
	// H1 draws rows with score strictly below LowScoreMax
	LowScoreMax float64 `yaml:"low_score_max"`
	// H2 draws rows with MidScoreMin <= score <= MidScoreMax
	MidScoreMin float64 `yaml:"mid_score_min"`
	MidScoreMax float64 `yaml:"mid_score_max"`
}

// PathConfig holds file system paths
type PathConfig struct {
	Dataset       string `yaml:"dataset"`
	PromptsFile   string `yaml:"prompts_file"`
	TemplateFile  string `yaml:"template_file"`
	ManifestFile  string `yaml:"manifest_file"`
	ChecklistFile string `yaml:"checklist_file"`
}

// LoggingConfig selects verbosity and encoder
type LoggingConfig struct {
	Level string `yaml:"level"`
	Mode  string `yaml:"mode"`
}

// Default returns the stock experiment configuration
func Default() *Config {
	return &Config{
		Experiment: ExperimentConfig{
			Seed:               DefaultSeed,
			SampleSize:         DefaultSampleSize,
			Systems:            append([]string(nil), DefaultSystems...),
			ResponsesPerPrompt: DefaultResponsesPerPrompt,
			LowScoreMax:        DefaultLowScoreMax,
			MidScoreMin:        DefaultMidScoreMin,
			MidScoreMax:        DefaultMidScoreMax,
		},
		Paths: PathConfig{
			Dataset:      DefaultDatasetPath,
			PromptsFile:  DefaultPromptsFile,
			TemplateFile: DefaultTemplateFile,
			ManifestFile: DefaultManifestFile,
		},
		Columns: dataset.DefaultColumnMap(),
		Logging: LoggingConfig{Level: "INFO", Mode: "dev"},
	}
}

// Load builds the configuration: defaults, then the optional YAML file,
// then .env, then environment variables. An empty path falls back to
// FRAMEBIAS_CONFIG; if that is empty too no file is read.
func Load(path string) (*Config, error) {
	cfg := Default()

	// .env is optional; a missing file is not an error
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("FRAMEBIAS_CONFIG")
	}
	if path != "" {
		if err := cfg.mergeFile(path); err != nil {
			return nil, errors.Wrap(err, "failed to load configuration file")
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "configuration validation failed")
	}
	return cfg, nil
}

// mergeFile overlays the YAML document at path onto cfg; absent keys keep their values
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return errors.NotFound("config file " + path)
		}
		return errors.IOError("read", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errors.Wrapf(errors.ConfigInvalid(err.Error()), "parse %s", path)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Experiment.Seed = getEnvInt64OrDefault("FRAMEBIAS_SEED", c.Experiment.Seed)
	c.Experiment.SampleSize = getEnvIntOrDefault("FRAMEBIAS_SAMPLE_SIZE", c.Experiment.SampleSize)
	c.Experiment.ResponsesPerPrompt = getEnvIntOrDefault("FRAMEBIAS_RESPONSES_PER_PROMPT", c.Experiment.ResponsesPerPrompt)
	c.Experiment.LowScoreMax = getEnvFloatOrDefault("FRAMEBIAS_LOW_SCORE_MAX", c.Experiment.LowScoreMax)
	c.Experiment.MidScoreMin = getEnvFloatOrDefault("FRAMEBIAS_MID_SCORE_MIN", c.Experiment.MidScoreMin)
	c.Experiment.MidScoreMax = getEnvFloatOrDefault("FRAMEBIAS_MID_SCORE_MAX", c.Experiment.MidScoreMax)
	if systems := getEnvOrDefault("FRAMEBIAS_SYSTEMS", ""); systems != "" {
		c.Experiment.Systems = splitList(systems)
	}

	c.Paths.Dataset = getEnvOrDefault("DATASET_PATH", c.Paths.Dataset)
	c.Paths.PromptsFile = getEnvOrDefault("PROMPTS_FILE", c.Paths.PromptsFile)
	c.Paths.TemplateFile = getEnvOrDefault("TEMPLATE_FILE", c.Paths.TemplateFile)
	c.Paths.ManifestFile = getEnvOrDefault("MANIFEST_FILE", c.Paths.ManifestFile)
	c.Paths.ChecklistFile = getEnvOrDefault("CHECKLIST_FILE", c.Paths.ChecklistFile)

	c.Logging.Level = getEnvOrDefault("LOG_LEVEL", c.Logging.Level)
	c.Logging.Mode = getEnvOrDefault("LOG_MODE", c.Logging.Mode)
}

// Validate checks the invariants the builders rely on
func (c *Config) Validate() error {
	e := c.Experiment
	if e.SampleSize < 1 {
		return errors.ConfigInvalid("sample_size must be at least 1")
	}
	if e.ResponsesPerPrompt < 1 {
		return errors.ConfigInvalid("responses_per_prompt must be at least 1")
	}
	if len(e.Systems) == 0 {
		return errors.ConfigInvalid("at least one system is required")
	}
	seen := make(map[string]bool, len(e.Systems))
	for _, s := range e.Systems {
		if strings.TrimSpace(s) == "" {
			return errors.ConfigInvalid("system names cannot be empty")
		}
		if seen[s] {
			return errors.ConfigInvalid("duplicate system name " + s)
		}
		seen[s] = true
	}
	if e.MidScoreMin > e.MidScoreMax {
		return errors.ConfigInvalid("mid_score_min must not exceed mid_score_max")
	}
	if c.Paths.PromptsFile == "" {
		return errors.ConfigInvalid("prompts file path is required")
	}
	if c.Paths.TemplateFile == "" {
		return errors.ConfigInvalid("template file path is required")
	}
	return nil
}

// Helper functions for environment variable parsing
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
