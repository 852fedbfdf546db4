package run

import (
	"strconv"

	"framebias/domain/core"
)

// RunFingerprint ties a prompts artifact to everything that determined it.
// Two runs with equal fingerprints produce byte-identical prompt files.
type RunFingerprint struct {
	DatasetHash core.DatasetHash `json:"dataset_hash"`
	PromptsHash core.PromptsHash `json:"prompts_hash"`
	Seed        int64            `json:"seed"`
	Fingerprint core.Hash        `json:"fingerprint"` // Hash of all above
}

// NewRunFingerprint creates a fingerprint from determinism parameters
func NewRunFingerprint(datasetHash core.DatasetHash, promptsHash core.PromptsHash, seed int64) RunFingerprint {
	return RunFingerprint{
		DatasetHash: datasetHash,
		PromptsHash: promptsHash,
		Seed:        seed,
		Fingerprint: core.ComputeFingerprint(datasetHash.String(), promptsHash.String(), strconv.FormatInt(seed, 10)),
	}
}

// Thresholds records the score filters used for sampling
type Thresholds struct {
	LowScoreMax float64 `json:"low_score_max"`
	MidScoreMin float64 `json:"mid_score_min"`
	MidScoreMax float64 `json:"mid_score_max"`
	SampleSize  int     `json:"sample_size"`
}

// GroupSummary describes the rows drawn for one hypothesis
type GroupSummary struct {
	HypothesisID string  `json:"hypothesis_id"`
	Pool         string  `json:"pool"`
	RowIndexes   []int   `json:"row_indexes"`
	Count        int     `json:"count"`
	MeanScore    float64 `json:"mean_score"`
	MinScore     float64 `json:"min_score"`
	MaxScore     float64 `json:"max_score"`
}
