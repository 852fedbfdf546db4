// Package sampling draws reproducible row groups from the happiness dataset.
package sampling

import (
	"fmt"
	"math/rand/v2"

	"framebias/domain/dataset"
	"framebias/internal"
	"framebias/internal/errors"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat/sampleuv"
)

// Predicate selects the rows a group may be drawn from
type Predicate struct {
	Name  string
	Match func(dataset.Row) bool
}

// Below matches score < max
func Below(max float64) Predicate {
	return Predicate{
		Name:  fmt.Sprintf("score < %g", max),
		Match: func(r dataset.Row) bool { return r.Score < max },
	}
}

// Between matches lo <= score <= hi
func Between(lo, hi float64) Predicate {
	return Predicate{
		Name:  fmt.Sprintf("%g <= score <= %g", lo, hi),
		Match: func(r dataset.Row) bool { return r.Score >= lo && r.Score <= hi },
	}
}

// All matches every row
func All() Predicate {
	return Predicate{
		Name:  "all rows",
		Match: func(dataset.Row) bool { return true },
	}
}

// Sampler draws groups without replacement. Every draw starts from a fresh
// source seeded with Seed, so a group depends only on its candidate pool.
type Sampler struct {
	Seed   int64
	logger *internal.Logger
	used   map[int]bool
}

// NewSampler creates a sampler; groups drawn from it are disjoint when possible
func NewSampler(seed int64, logger *internal.Logger) *Sampler {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &Sampler{Seed: seed, logger: logger, used: make(map[int]bool)}
}

// Draw picks n rows matching pred, in sampled order. Rows handed out by
// earlier draws are excluded unless that would leave fewer than n
// candidates, in which case the full matching pool is used.
func (s *Sampler) Draw(group string, rows []dataset.Row, pred Predicate, n int) ([]dataset.Row, error) {
	if n < 1 {
		return nil, errors.InvalidInput(fmt.Sprintf("%s: sample size must be positive", group))
	}

	var pool, fresh []dataset.Row
	for _, r := range rows {
		if !pred.Match(r) {
			continue
		}
		pool = append(pool, r)
		if !s.used[r.Index] {
			fresh = append(fresh, r)
		}
	}

	if len(pool) < n {
		return nil, errors.InsufficientData(fmt.Sprintf("%s (%s)", group, pred.Name), n, len(pool))
	}

	s.logger.Trace("%s: %d rows match %s, %d unused", group, len(pool), pred.Name, len(fresh))

	candidates := fresh
	if len(fresh) < n {
		s.logger.Warn("%s: only %d unused rows match %s; drawing from all %d matching rows", group, len(fresh), pred.Name, len(pool))
		candidates = pool
	}

	idxs := make([]int, n)
	sampleuv.WithoutReplacement(idxs, len(candidates), s.source())

	picked := make([]dataset.Row, n)
	for i, idx := range idxs {
		picked[i] = candidates[idx]
		s.used[picked[i].Index] = true
	}

	s.logger.Debug("%s: drew rows %v from %d candidates (%s)", group, indexes(picked), len(candidates), pred.Name)
	return picked, nil
}

func (s *Sampler) source() rand.Source {
	return rand.NewPCG(uint64(s.Seed), uint64(s.Seed))
}

func indexes(rows []dataset.Row) []int {
	out := make([]int, len(rows))
	for i, r := range rows {
		out[i] = r.Index
	}
	return out
}

// Summary describes the score distribution of a drawn group
type Summary struct {
	Count     int     `json:"count"`
	MeanScore float64 `json:"mean_score"`
	MinScore  float64 `json:"min_score"`
	MaxScore  float64 `json:"max_score"`
}

// Summarize computes score statistics for a group
func Summarize(rows []dataset.Row) (Summary, error) {
	if len(rows) == 0 {
		return Summary{}, errors.InvalidInput("cannot summarize an empty group")
	}
	scores := make(stats.Float64Data, len(rows))
	for i, r := range rows {
		scores[i] = r.Score
	}

	mean, err := scores.Mean()
	if err != nil {
		return Summary{}, errors.Wrap(err, "mean score")
	}
	lo, err := scores.Min()
	if err != nil {
		return Summary{}, errors.Wrap(err, "min score")
	}
	hi, err := scores.Max()
	if err != nil {
		return Summary{}, errors.Wrap(err, "max score")
	}
	return Summary{Count: len(rows), MeanScore: mean, MinScore: lo, MaxScore: hi}, nil
}
