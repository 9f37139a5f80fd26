package repository_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/repository"
	"github.com/renoplan/renoplan/internal/testutil"
)

type repoSet struct {
	templates *repository.SQLiteTemplateRepo
	phases    *repository.SQLitePhaseRepo
	packages  *repository.SQLitePackageRepo
	tasks     *repository.SQLiteTaskRepo
	deps      *repository.SQLiteDependencyRepo
	gates     *repository.SQLiteGateRepo
}

func newRepoSet(database *sql.DB) repoSet {
	return repoSet{
		templates: repository.NewSQLiteTemplateRepo(database),
		phases:    repository.NewSQLitePhaseRepo(database),
		packages:  repository.NewSQLitePackageRepo(database),
		tasks:     repository.NewSQLiteTaskRepo(database),
		deps:      repository.NewSQLiteDependencyRepo(database),
		gates:     repository.NewSQLiteGateRepo(database),
	}
}

// seedTree writes a fixture tree through the repositories in FK order.
func seedTree(t *testing.T, ctx context.Context, rs repoSet, tree *domain.TemplateTree) {
	t.Helper()
	require.NoError(t, rs.templates.Create(ctx, tree.Template))
	for _, p := range tree.Phases {
		require.NoError(t, rs.phases.Create(ctx, p))
	}
	for _, p := range tree.Packages {
		require.NoError(t, rs.packages.Create(ctx, p))
	}
	for _, task := range tree.Tasks {
		require.NoError(t, rs.tasks.Create(ctx, task))
	}
	for _, d := range tree.Dependencies {
		dep := d
		require.NoError(t, rs.deps.Create(ctx, &dep))
	}
	for _, g := range tree.Gates {
		require.NoError(t, rs.gates.Create(ctx, g))
	}
}

func TestTemplateRepo_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	tpl := testutil.NewTemplate(testutil.WithRoomType("kitchen"))
	tpl.TotalDurationDays = 12
	tpl.TotalEstimatedCost = 450000
	require.NoError(t, repo.Create(ctx, tpl))

	got, err := repo.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.Equal(t, tpl.Name, got.Name)
	assert.Equal(t, tpl.Category, got.Category)
	require.NotNil(t, got.RoomType)
	assert.Equal(t, "kitchen", *got.RoomType)
	assert.Equal(t, 12, got.TotalDurationDays)
	assert.Equal(t, int64(450000), got.TotalEstimatedCost)
	assert.True(t, got.Active)
}

func TestTemplateRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTemplateRepo(database)

	_, err := repo.GetByID(context.Background(), "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestTemplateRepo_ListActiveOnly(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	active := testutil.NewTemplate()
	inactive := testutil.NewTemplate(testutil.WithInactive())
	require.NoError(t, repo.Create(ctx, active))
	require.NoError(t, repo.Create(ctx, inactive))

	all, err := repo.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	onlyActive, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, onlyActive, 1)
	assert.Equal(t, active.ID, onlyActive[0].ID)
}

func TestTemplateRepo_SetActiveAndRollups(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTemplateRepo(database)
	ctx := context.Background()

	tpl := testutil.NewTemplate()
	require.NoError(t, repo.Create(ctx, tpl))

	require.NoError(t, repo.SetActive(ctx, tpl.ID, false))
	require.NoError(t, repo.UpdateRollups(ctx, tpl.ID, 9, 123456))

	got, err := repo.GetByID(ctx, tpl.ID)
	require.NoError(t, err)
	assert.False(t, got.Active)
	assert.Equal(t, 9, got.TotalDurationDays)
	assert.Equal(t, int64(123456), got.TotalEstimatedCost)
}

func TestTreeRepos_RoundTrip(t *testing.T) {
	database := testutil.NewTestDB(t)
	rs := newRepoSet(database)
	ctx := context.Background()

	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 2, Cost: 10000},
			"b": {Duration: 3},
			"c": {Duration: 1, Optional: true},
		},
		Deps: []testutil.DepSpec{
			{Pred: "a", Succ: "b", Type: domain.FinishToStart, Lag: 1},
			{Pred: "b", Succ: "c", Type: domain.StartToStart},
		},
	})
	tree.Gates = append(tree.Gates, testutil.NewPhaseGate(tree.Phases[0].ID, "Phase sign-off"))
	seedTree(t, ctx, rs, tree)

	phases, err := rs.phases.ListByTemplate(ctx, tree.Template.ID)
	require.NoError(t, err)
	require.Len(t, phases, 1)
	assert.Equal(t, "1", phases[0].WBSCode)

	packages, err := rs.packages.ListByTemplate(ctx, tree.Template.ID)
	require.NoError(t, err)
	require.Len(t, packages, 1)

	tasks, err := rs.tasks.ListByTemplate(ctx, tree.Template.ID)
	require.NoError(t, err)
	assert.Len(t, tasks, 3)

	var optional *domain.Task
	for _, task := range tasks {
		if task.ID == "c" {
			optional = task
		}
	}
	require.NotNil(t, optional)
	assert.True(t, optional.Optional)
	assert.Nil(t, optional.EstimatedCost)

	deps, err := rs.deps.ListByTemplate(ctx, tree.Template.ID)
	require.NoError(t, err)
	require.Len(t, deps, 2)

	gates, err := rs.gates.ListByTemplate(ctx, tree.Template.ID)
	require.NoError(t, err)
	require.Len(t, gates, 1)
	assert.Equal(t, domain.GatePhase, gates[0].Level)
	require.Len(t, gates[0].Checklist, 1)
	assert.Equal(t, "Inspection passed", gates[0].Checklist[0].Text)
}

func TestTaskRepo_CostPreserved(t *testing.T) {
	database := testutil.NewTestDB(t)
	rs := newRepoSet(database)
	ctx := context.Background()

	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"priced": {Duration: 1, Cost: 99999},
		},
	})
	seedTree(t, ctx, rs, tree)

	got, err := rs.tasks.GetByID(ctx, "priced")
	require.NoError(t, err)
	require.NotNil(t, got.EstimatedCost)
	assert.Equal(t, int64(99999), *got.EstimatedCost)
}

func TestDependencyRepo_Delete(t *testing.T) {
	database := testutil.NewTestDB(t)
	rs := newRepoSet(database)
	ctx := context.Background()

	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 1},
			"b": {Duration: 1},
		},
		Deps: []testutil.DepSpec{{Pred: "a", Succ: "b"}},
	})
	seedTree(t, ctx, rs, tree)

	require.NoError(t, rs.deps.Delete(ctx, "a", "b"))

	deps, err := rs.deps.ListByTemplate(ctx, tree.Template.ID)
	require.NoError(t, err)
	assert.Empty(t, deps)
}

func TestDependencyRepo_DuplicateEdgeRejected(t *testing.T) {
	database := testutil.NewTestDB(t)
	rs := newRepoSet(database)
	ctx := context.Background()

	tree := testutil.BuildTree(testutil.TreeSpec{
		Tasks: map[string]testutil.TaskSpec{
			"a": {Duration: 1},
			"b": {Duration: 1},
		},
		Deps: []testutil.DepSpec{{Pred: "a", Succ: "b"}},
	})
	seedTree(t, ctx, rs, tree)

	dup := testutil.NewDependency(tree.Template.ID, "a", "b", domain.StartToStart, 0)
	err := rs.deps.Create(ctx, &dup)
	assert.Error(t, err)
}
