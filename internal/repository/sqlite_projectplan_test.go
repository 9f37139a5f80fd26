package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/repository"
	"github.com/renoplan/renoplan/internal/template"
	"github.com/renoplan/renoplan/internal/testutil"
)

func newProject(t *testing.T, ctx context.Context, repo *repository.SQLiteProjectRepo) *domain.Project {
	t.Helper()
	now := time.Now().UTC()
	p := &domain.Project{
		ID:        uuid.New().String(),
		Name:      "Unit 4B",
		UnitLabel: "apartment 4B",
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(ctx, p))
	return p
}

func TestProjectRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteProjectRepo(database)
	ctx := context.Background()

	p := newProject(t, ctx, repo)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Unit 4B", got.Name)
	assert.Equal(t, "apartment 4B", got.UnitLabel)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestProjectPlanRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	rs := newRepoSet(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	planRepo := repository.NewSQLiteProjectPlanRepo(database)
	ctx := context.Background()

	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 2, Cost: 15000},
			"b": {Duration: 1},
		},
		Deps: []testutil.DepSpec{{Pred: "a", Succ: "b", Lag: 1}},
	})
	tree.Gates = append(tree.Gates, testutil.NewPhaseGate(tree.Phases[0].ID, "Final walkthrough"))
	seedTree(t, ctx, rs, tree)

	project := newProject(t, ctx, projectRepo)
	start := time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC)
	plan, err := template.Instantiate(tree, project.ID, start, nil)
	require.NoError(t, err)

	for _, p := range plan.Phases {
		require.NoError(t, planRepo.CreatePhase(ctx, p))
	}
	for _, p := range plan.Packages {
		require.NoError(t, planRepo.CreatePackage(ctx, p))
	}
	for _, task := range plan.Tasks {
		require.NoError(t, planRepo.CreateTask(ctx, task))
	}
	for _, d := range plan.Dependencies {
		dep := d
		require.NoError(t, planRepo.CreateDependency(ctx, &dep))
	}
	for _, g := range plan.Gates {
		require.NoError(t, planRepo.CreateGate(ctx, g))
	}

	phases, err := planRepo.ListPhases(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, tree.Template.ID, phases[0].SourceTemplateID)

	packages, err := planRepo.ListPackages(ctx, project.ID)
	require.NoError(t, err)
	assert.Len(t, packages, 1)

	tasks, err := planRepo.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 2)
	for _, task := range tasks {
		assert.Equal(t, domain.TaskPending, task.Status)
		assert.False(t, task.ScheduledStart.Before(start))
	}

	deps, err := planRepo.ListDependencies(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, deps, 1)
	assert.Equal(t, 1, deps[0].LagDays)

	gates, err := planRepo.ListGates(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, gates, 1)
	assert.Len(t, gates[0].Checklist, 1)
}

func TestProjectPlanRepo_ScheduleDatesSurviveRoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	rs := newRepoSet(database)
	projectRepo := repository.NewSQLiteProjectRepo(database)
	planRepo := repository.NewSQLiteProjectPlanRepo(database)
	ctx := context.Background()

	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{"solo": {Duration: 3}},
	})
	seedTree(t, ctx, rs, tree)

	project := newProject(t, ctx, projectRepo)
	start := time.Date(2026, time.April, 6, 0, 0, 0, 0, time.UTC)
	plan, err := template.Instantiate(tree, project.ID, start, nil)
	require.NoError(t, err)

	for _, p := range plan.Phases {
		require.NoError(t, planRepo.CreatePhase(ctx, p))
	}
	for _, p := range plan.Packages {
		require.NoError(t, planRepo.CreatePackage(ctx, p))
	}
	for _, task := range plan.Tasks {
		require.NoError(t, planRepo.CreateTask(ctx, task))
	}

	tasks, err := planRepo.ListTasks(ctx, project.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, start, tasks[0].ScheduledStart)
	assert.Equal(t, start.AddDate(0, 0, 3), tasks[0].ScheduledEnd)
}
