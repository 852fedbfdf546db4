package run

import (
	"framebias/domain/core"
)

// ExperimentManifest is the audit record written next to the prompts file
type ExperimentManifest struct {
	RunID       core.RunID     `json:"run_id"`
	DatasetPath string         `json:"dataset_path"`
	PromptsPath string         `json:"prompts_path"`
	Thresholds  Thresholds     `json:"thresholds"`
	Groups      []GroupSummary `json:"groups"`
	Fingerprint RunFingerprint `json:"fingerprint"`
	CreatedAt   core.Timestamp `json:"created_at"`
}

// NewExperimentManifest creates a manifest for a finished prompt build
func NewExperimentManifest(
	datasetPath, promptsPath string,
	datasetHash core.DatasetHash,
	promptsHash core.PromptsHash,
	seed int64,
	thresholds Thresholds,
	groups []GroupSummary,
) *ExperimentManifest {
	return &ExperimentManifest{
		RunID:       core.NewRunID(),
		DatasetPath: datasetPath,
		PromptsPath: promptsPath,
		Thresholds:  thresholds,
		Groups:      groups,
		Fingerprint: NewRunFingerprint(datasetHash, promptsHash, seed),
		CreatedAt:   core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m *ExperimentManifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewValidationError("experiment_manifest", "run_id cannot be empty")
	}
	if m.Fingerprint.DatasetHash == "" {
		return core.NewValidationError("experiment_manifest", "dataset_hash cannot be empty")
	}
	if m.Fingerprint.PromptsHash == "" {
		return core.NewValidationError("experiment_manifest", "prompts_hash cannot be empty")
	}
	if m.CreatedAt.IsZero() {
		return core.NewValidationError("experiment_manifest", "created_at cannot be zero")
	}
	if len(m.Groups) == 0 {
		return core.NewValidationError("experiment_manifest", "groups cannot be empty")
	}
	return nil
}
