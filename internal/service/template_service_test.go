package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/renoplan/renoplan/internal/domain"
	"github.com/renoplan/renoplan/internal/importer"
	"github.com/renoplan/renoplan/internal/repository"
	"github.com/renoplan/renoplan/internal/testutil"
)

func strPtr(s string) *string { return &s }

// bathroomSchema is a small but fully-featured definition: two phases, a
// dependency chain with lag, an optional task, and a blocking gate.
func bathroomSchema() *importer.TemplateImport {
	cost := int64(120000)
	return &importer.TemplateImport{
		Template: importer.TemplateHeader{
			Name:     "Bathroom Refresh",
			Category: "bathroom",
			Scope:    "room",
		},
		Phases: []importer.PhaseImport{
			{Ref: "prep", Name: "Preparation"},
			{Ref: "build", Name: "Build"},
		},
		Packages: []importer.PackageImport{
			{Ref: "demo", PhaseRef: "prep", Name: "Demolition"},
			{Ref: "tiling", PhaseRef: "build", Name: "Tiling"},
		},
		Tasks: []importer.TaskImport{
			{Ref: "strip", PackageRef: "demo", Name: "Strip fixtures", DurationDays: 1},
			{Ref: "tile", PackageRef: "tiling", Name: "Tile walls", DurationDays: 3, EstimatedCost: &cost},
			{Ref: "seal", PackageRef: "tiling", Name: "Seal grout", DurationDays: 1, Optional: true},
		},
		Dependencies: []importer.DependencyImport{
			{PredecessorRef: "strip", SuccessorRef: "tile", LagDays: 1},
			{PredecessorRef: "tile", SuccessorRef: "seal"},
		},
		Gates: []importer.GateImport{
			{
				Level:    "phase",
				PhaseRef: strPtr("build"),
				Name:     "Waterproofing inspection",
				Checklist: []importer.ChecklistItemImport{
					{Text: "Membrane intact", Required: true},
				},
				Blocking: true,
			},
		},
	}
}

func newTemplateServiceForTest(t *testing.T) (TemplateService, *sql.DB) {
	t.Helper()
	database := testutil.NewTestDB(t)
	svc := NewTemplateService(
		repository.NewSQLiteTemplateRepo(database),
		repository.NewSQLitePhaseRepo(database),
		repository.NewSQLitePackageRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteDependencyRepo(database),
		repository.NewSQLiteGateRepo(database),
		testutil.NewTestUoW(database),
	)
	return svc, database
}

func TestImportFromSchema_PersistsFullTree(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)

	assert.Equal(t, 2, result.PhaseCount)
	assert.Equal(t, 2, result.PackageCount)
	assert.Equal(t, 3, result.TaskCount)
	assert.Equal(t, 2, result.DependencyCount)
	assert.Equal(t, 1, result.GateCount)

	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)
	assert.Len(t, tree.Phases, 2)
	assert.Len(t, tree.Tasks, 3)
	assert.Len(t, tree.Dependencies, 2)
	assert.Len(t, tree.Gates, 1)
}

func TestImportFromSchema_ComputesRollups(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)

	// strip(1) + lag(1) + tile(3) + seal(1) = 6 days on the critical path.
	assert.Equal(t, 6, result.Template.TotalDurationDays)
	assert.Equal(t, int64(120000), result.Template.TotalEstimatedCost)

	stored, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, stored.Template.TotalDurationDays)
}

func TestImportFromSchema_RejectsInvalidSchema(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)

	schema := bathroomSchema()
	schema.Dependencies = append(schema.Dependencies,
		importer.DependencyImport{PredecessorRef: "tile", SuccessorRef: "strip"})

	_, err := svc.ImportFromSchema(context.Background(), schema)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestImportFromSchema_RollbackOnMidImportFailure(t *testing.T) {
	database := testutil.NewTestDB(t)
	failUoW := &testutil.FailOnNthExecUoW{
		DB:     database,
		FailOn: 4, // template, phase, phase, then fail on the first package
		Err:    fmt.Errorf("injected package create failure"),
	}
	svc := NewTemplateService(
		repository.NewSQLiteTemplateRepo(database),
		repository.NewSQLitePhaseRepo(database),
		repository.NewSQLitePackageRepo(database),
		repository.NewSQLiteTaskRepo(database),
		repository.NewSQLiteDependencyRepo(database),
		repository.NewSQLiteGateRepo(database),
		failUoW,
	)
	ctx := context.Background()

	_, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "injected package create failure")

	templates, err := repository.NewSQLiteTemplateRepo(database).List(ctx, false)
	require.NoError(t, err)
	assert.Empty(t, templates, "rolled-back import must leave no template behind")
}

func TestAddDependency_PersistsAndUpdatesRollups(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)
	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)

	strip := taskByName(tree, "Strip fixtures")
	seal := taskByName(tree, "Seal grout")

	dep, err := svc.AddDependency(ctx, tree.Template.ID, strip.ID, seal.ID, domain.FinishToStart, 2)
	require.NoError(t, err)
	assert.Equal(t, domain.FinishToStart, dep.Type)

	reloaded, err := svc.GetTree(ctx, tree.Template.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Dependencies, 3)
}

func TestAddDependency_RejectsCycle(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)
	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)

	strip := taskByName(tree, "Strip fixtures")
	seal := taskByName(tree, "Seal grout")

	// seal -> strip closes the chain strip -> tile -> seal.
	_, err = svc.AddDependency(ctx, tree.Template.ID, seal.ID, strip.ID, domain.FinishToStart, 0)
	require.Error(t, err)

	reloaded, err := svc.GetTree(ctx, tree.Template.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Dependencies, 2, "rejected edge must not be persisted")
}

func TestAddDependency_RejectsSelfReference(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)
	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)

	strip := taskByName(tree, "Strip fixtures")
	_, err = svc.AddDependency(ctx, tree.Template.ID, strip.ID, strip.ID, domain.FinishToStart, 0)
	require.Error(t, err)
}

func TestAddDependency_RejectsUnknownTask(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)
	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)

	strip := taskByName(tree, "Strip fixtures")
	_, err = svc.AddDependency(ctx, tree.Template.ID, strip.ID, "no-such-task", domain.FinishToStart, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRemoveDependency_UpdatesRollups(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)
	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)

	strip := taskByName(tree, "Strip fixtures")
	tile := taskByName(tree, "Tile walls")

	require.NoError(t, svc.RemoveDependency(ctx, tree.Template.ID, strip.ID, tile.ID))

	reloaded, err := svc.GetTree(ctx, tree.Template.ID)
	require.NoError(t, err)
	assert.Len(t, reloaded.Dependencies, 1)
	// Without the strip->tile edge the critical path is tile(3)+seal(1).
	assert.Equal(t, 4, reloaded.Template.TotalDurationDays)
}

func TestAffectedTasks_ReturnsBothDirections(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)
	tree, err := svc.GetTree(ctx, result.Template.ID)
	require.NoError(t, err)

	tile := taskByName(tree, "Tile walls")
	impact, err := svc.AffectedTasks(ctx, tree.Template.ID, tile.ID)
	require.NoError(t, err)

	strip := taskByName(tree, "Strip fixtures")
	seal := taskByName(tree, "Seal grout")
	assert.Equal(t, []string{seal.ID}, impact.Dependents)
	assert.Equal(t, []string{strip.ID}, impact.Prerequisites)
}

func TestSetActive_FiltersListing(t *testing.T) {
	svc, _ := newTemplateServiceForTest(t)
	ctx := context.Background()

	result, err := svc.ImportFromSchema(ctx, bathroomSchema())
	require.NoError(t, err)

	require.NoError(t, svc.SetActive(ctx, result.Template.ID, false))

	active, err := svc.List(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	all, err := svc.List(ctx, false)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func taskByName(tree *domain.TemplateTree, name string) *domain.Task {
	for _, t := range tree.Tasks {
		if t.Name == name {
			return t
		}
	}
	return nil
}
