package sampling

import (
	"testing"

	"framebias/domain/dataset"
	"framebias/internal"
	"framebias/internal/errors"
	"framebias/internal/testkit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(rows []dataset.Row) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Country
	}
	return out
}

func TestDraw_Deterministic(t *testing.T) {
	rows := testkit.HappinessRows()

	first, err := NewSampler(42, internal.NewNopLogger()).Draw("H1", rows, Below(50), 3)
	require.NoError(t, err)
	second, err := NewSampler(42, internal.NewNopLogger()).Draw("H1", rows, Below(50), 3)
	require.NoError(t, err)

	assert.Equal(t, names(first), names(second))
}

func TestDraw_RespectsPredicates(t *testing.T) {
	rows := testkit.HappinessRows()
	s := NewSampler(42, internal.NewNopLogger())

	low, err := s.Draw("H1", rows, Below(50), 3)
	require.NoError(t, err)
	for _, r := range low {
		assert.Less(t, r.Score, 50.0)
	}

	mid, err := s.Draw("H2", rows, Between(60, 70), 3)
	require.NoError(t, err)
	for _, r := range mid {
		assert.GreaterOrEqual(t, r.Score, 60.0)
		assert.LessOrEqual(t, r.Score, 70.0)
	}
}

func TestDraw_BandIsInclusive(t *testing.T) {
	rows := []dataset.Row{
		{Index: 0, Country: "lo", Score: 60},
		{Index: 1, Country: "hi", Score: 70},
		{Index: 2, Country: "out", Score: 70.01},
	}
	got, err := NewSampler(1, internal.NewNopLogger()).Draw("H2", rows, Between(60, 70), 2)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"lo", "hi"}, names(got))
}

func TestDraw_GroupsAreDisjoint(t *testing.T) {
	rows := testkit.HappinessRows()
	s := NewSampler(42, internal.NewNopLogger())

	seen := map[int]bool{}
	for _, step := range []struct {
		group string
		pred  Predicate
	}{
		{"H1", Below(50)},
		{"H2", Between(60, 70)},
		{"H3", All()},
	} {
		got, err := s.Draw(step.group, rows, step.pred, 3)
		require.NoError(t, err)
		require.Len(t, got, 3)
		for _, r := range got {
			assert.False(t, seen[r.Index], "%s reused row %d", step.group, r.Index)
			seen[r.Index] = true
		}
	}
}

func TestDraw_FallsBackToFullPool(t *testing.T) {
	// six rows: the uniform draw cannot avoid the first six picks and must reuse them
	rows := testkit.HappinessRows()
	var small []dataset.Row
	for _, r := range rows {
		if r.Score < 50 || (r.Score >= 60 && r.Score <= 70) {
			small = append(small, r)
		}
	}
	small = append(small[:3], small[4:7]...)

	s := NewSampler(42, internal.NewNopLogger())
	_, err := s.Draw("H1", small, Below(50), 3)
	require.NoError(t, err)
	_, err = s.Draw("H2", small, Between(60, 70), 3)
	require.NoError(t, err)

	all, err := s.Draw("H3", small, All(), 3)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestDraw_InsufficientRows(t *testing.T) {
	_, err := NewSampler(42, internal.NewNopLogger()).Draw("H1", testkit.HappinessRows(), Below(40), 3)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInsufficientData, errors.GetCode(err))
	assert.Contains(t, err.Error(), "score < 40")
}

func TestDraw_RejectsZeroSize(t *testing.T) {
	_, err := NewSampler(42, internal.NewNopLogger()).Draw("H1", testkit.HappinessRows(), All(), 0)
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
}

func TestDraw_SeedChangesSample(t *testing.T) {
	rows := testkit.HappinessRows()
	distinct := map[string]bool{}
	for seed := int64(1); seed <= 20; seed++ {
		got, err := NewSampler(seed, internal.NewNopLogger()).Draw("H3", rows, All(), 3)
		require.NoError(t, err)
		distinct[fmtNames(got)] = true
	}
	assert.Greater(t, len(distinct), 1)
}

func fmtNames(rows []dataset.Row) string {
	s := ""
	for _, n := range names(rows) {
		s += n + ","
	}
	return s
}

func TestSummarize(t *testing.T) {
	rows := []dataset.Row{{Score: 40}, {Score: 50}, {Score: 60}}
	sum, err := Summarize(rows)
	require.NoError(t, err)
	assert.Equal(t, 3, sum.Count)
	assert.InDelta(t, 50.0, sum.MeanScore, 1e-9)
	assert.Equal(t, 40.0, sum.MinScore)
	assert.Equal(t, 60.0, sum.MaxScore)

	_, err = Summarize(nil)
	assert.Error(t, err)
}
