package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/testutil"
)

func kitchenTree() *domain.TemplateTree {
	// demo(2d, $100) -> rough(3d, $250) -> finish(2d, unpriced)
	// extras(1d, $50, optional) hangs off rough.
	return testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"demo":   {Duration: 2, Cost: 10000},
			"rough":  {Duration: 3, Cost: 25000},
			"finish": {Duration: 2},
			"extras": {Duration: 1, Cost: 5000, Optional: true},
		},
		Deps: []testutil.DepSpec{
			{Pred: "demo", Succ: "rough"},
			{Pred: "rough", Succ: "finish"},
			{Pred: "rough", Succ: "extras"},
		},
	})
}

func TestComputeMetrics_NoExclusions(t *testing.T) {
	tree := kitchenTree()
	m, err := ComputeMetrics(tree, nil)
	require.NoError(t, err)

	assert.Equal(t, 4, m.TaskCount)
	assert.Equal(t, 1, m.PhaseCount)
	assert.Equal(t, 1, m.PackageCount)
	assert.Equal(t, int64(40000), m.TotalCost)
	// Critical path: demo(2) + rough(3) + finish(2) = 7.
	assert.Equal(t, 7, m.TotalDays)
}

func TestComputeMetrics_WithExclusion(t *testing.T) {
	tree := kitchenTree()
	m, err := ComputeMetrics(tree, map[string]bool{"extras": true})
	require.NoError(t, err)

	assert.Equal(t, 3, m.TaskCount)
	assert.Equal(t, int64(35000), m.TotalCost)
	assert.Equal(t, 7, m.TotalDays)
	// Phase and package counts never shrink with exclusions.
	assert.Equal(t, 1, m.PhaseCount)
	assert.Equal(t, 1, m.PackageCount)
}

func TestComputeMetrics_ExclusionNeverIncreasesTotals(t *testing.T) {
	tree := kitchenTree()
	full, err := ComputeMetrics(tree, nil)
	require.NoError(t, err)
	pruned, err := ComputeMetrics(tree, map[string]bool{"extras": true})
	require.NoError(t, err)

	assert.LessOrEqual(t, pruned.TaskCount, full.TaskCount)
	assert.LessOrEqual(t, pruned.TotalCost, full.TotalCost)
	assert.LessOrEqual(t, pruned.TotalDays, full.TotalDays)
}

func TestValidateExclusions_RejectsNonOptional(t *testing.T) {
	tree := kitchenTree()
	err := ValidateExclusions(tree, map[string]bool{"demo": true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskNotOptional)
}

func TestValidateExclusions_RejectsUnknownTask(t *testing.T) {
	tree := kitchenTree()
	err := ValidateExclusions(tree, map[string]bool{"nope": true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownTask)
}

func TestEffectiveDependencies_PrunesWithoutRewiring(t *testing.T) {
	// a -> b -> c with b optional: excluding b removes both edges and does
	// not fabricate a -> c.
	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 1},
			"b": {Duration: 1, Optional: true},
			"c": {Duration: 1},
		},
		Deps: []testutil.DepSpec{
			{Pred: "a", Succ: "b"},
			{Pred: "b", Succ: "c"},
		},
	})

	deps := EffectiveDependencies(tree, map[string]bool{"b": true})
	assert.Empty(t, deps)
}

func TestExclusionWarnings_TransitiveDependents(t *testing.T) {
	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 1, Optional: true},
			"b": {Duration: 1},
			"c": {Duration: 1},
		},
		Deps: []testutil.DepSpec{
			{Pred: "a", Succ: "b"},
			{Pred: "b", Succ: "c"},
		},
	})

	warnings := ExclusionWarnings(tree, map[string]bool{"a": true})
	assert.Equal(t, []string{"b", "c"}, warnings)
}

func TestExclusionWarnings_ExcludedDependentsNotWarned(t *testing.T) {
	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 1, Optional: true},
			"b": {Duration: 1, Optional: true},
		},
		Deps: []testutil.DepSpec{
			{Pred: "a", Succ: "b"},
		},
	})

	warnings := ExclusionWarnings(tree, map[string]bool{"a": true, "b": true})
	assert.Empty(t, warnings)
}
