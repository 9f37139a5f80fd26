package template

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/testutil"
)

func TestInstantiate_FullTree(t *testing.T) {
	tree := kitchenTree()
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, nil)
	require.NoError(t, err)

	assert.Len(t, plan.Phases, 1)
	assert.Len(t, plan.Packages, 1)
	assert.Len(t, plan.Tasks, 4)
	assert.Len(t, plan.Dependencies, 3)

	for _, ph := range plan.Phases {
		assert.Equal(t, "proj-1", ph.ProjectID)
		assert.Equal(t, tree.Template.ID, ph.SourceTemplateID)
	}
	for _, task := range plan.Tasks {
		assert.Equal(t, domain.TaskPending, task.Status)
		assert.False(t, task.ScheduledStart.Before(start))
		assert.True(t, task.ScheduledEnd.After(task.ScheduledStart))
	}
}

func TestInstantiate_FreshIDs(t *testing.T) {
	tree := kitchenTree()
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, nil)
	require.NoError(t, err)

	templateIDs := map[string]bool{tree.Template.ID: true}
	for _, p := range tree.Phases {
		templateIDs[p.ID] = true
	}
	for _, p := range tree.Packages {
		templateIDs[p.ID] = true
	}
	for _, task := range tree.Tasks {
		templateIDs[task.ID] = true
	}

	for _, p := range plan.Phases {
		assert.False(t, templateIDs[p.ID])
	}
	for _, task := range plan.Tasks {
		assert.False(t, templateIDs[task.ID])
		assert.True(t, templateIDs[task.SourceTaskID], "provenance must point at the template task")
	}

	// Dependencies reference the fresh task ids, not the template's.
	planTaskIDs := make(map[string]bool, len(plan.Tasks))
	for _, task := range plan.Tasks {
		planTaskIDs[task.ID] = true
	}
	for _, d := range plan.Dependencies {
		assert.True(t, planTaskIDs[d.PredecessorTaskID])
		assert.True(t, planTaskIDs[d.SuccessorTaskID])
	}
}

func TestInstantiate_ExclusionPrunesTasksAndEdges(t *testing.T) {
	tree := kitchenTree()
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, map[string]bool{"extras": true})
	require.NoError(t, err)

	assert.Len(t, plan.Tasks, 3)
	assert.Len(t, plan.Dependencies, 2)
	for _, task := range plan.Tasks {
		assert.NotEqual(t, "extras", task.SourceTaskID)
	}
}

func TestInstantiate_RejectsNonOptionalExclusion(t *testing.T) {
	tree := kitchenTree()
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	_, err := Instantiate(tree, "proj-1", start, map[string]bool{"demo": true})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTaskNotOptional)
}

func TestInstantiate_ScheduleRespectsDependencies(t *testing.T) {
	tree := kitchenTree()
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, nil)
	require.NoError(t, err)

	byID := make(map[string]*domain.ProjectTask, len(plan.Tasks))
	for _, task := range plan.Tasks {
		byID[task.ID] = task
	}
	for _, d := range plan.Dependencies {
		pred := byID[d.PredecessorTaskID]
		succ := byID[d.SuccessorTaskID]
		// All edges in the fixture are FS with zero lag.
		assert.False(t, succ.ScheduledStart.Before(pred.ScheduledEnd))
	}
}

func TestInstantiate_GatesCopiedWithRemappedOwners(t *testing.T) {
	tree := kitchenTree()
	gate := testutil.NewPhaseGate(tree.Phases[0].ID, "Rough-in inspection")
	tree.Gates = append(tree.Gates, gate)
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, nil)
	require.NoError(t, err)

	require.Len(t, plan.Gates, 1)
	got := plan.Gates[0]
	assert.Equal(t, gate.ID, got.SourceGateID)
	assert.NotEqual(t, gate.ID, got.ID)
	require.NotNil(t, got.PhaseID)
	assert.Equal(t, plan.Phases[0].ID, *got.PhaseID)
	assert.Len(t, got.Checklist, 1)
}

func TestInstantiate_EmptyAfterExclusionIsLegal(t *testing.T) {
	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"only": {Duration: 1, Optional: true},
		},
	})
	start := time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, map[string]bool{"only": true})
	require.NoError(t, err)
	assert.Empty(t, plan.Tasks)
	assert.Len(t, plan.Phases, 1)
	assert.Len(t, plan.Packages, 1)
}

func TestInstantiate_PastStartDateAccepted(t *testing.T) {
	tree := kitchenTree()
	start := time.Date(2020, time.January, 1, 0, 0, 0, 0, time.UTC)

	plan, err := Instantiate(tree, "proj-1", start, nil)
	require.NoError(t, err)
	assert.NotEmpty(t, plan.Tasks)
}
