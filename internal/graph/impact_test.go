package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func chainEdges() []Edge {
	// a -> b -> c -> d
	return []Edge{
		{Predecessor: "a", Successor: "b"},
		{Predecessor: "b", Successor: "c"},
		{Predecessor: "c", Successor: "d"},
	}
}

func TestDependentTasks_Chain(t *testing.T) {
	assert.Equal(t, []string{"b", "c", "d"}, DependentTasks(chainEdges(), "a"))
	assert.Equal(t, []string{"d"}, DependentTasks(chainEdges(), "c"))
	assert.Empty(t, DependentTasks(chainEdges(), "d"))
}

func TestPrerequisiteTasks_Chain(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, PrerequisiteTasks(chainEdges(), "d"))
	assert.Empty(t, PrerequisiteTasks(chainEdges(), "a"))
}

func TestAffectedTasks_Diamond(t *testing.T) {
	// a -> b, a -> c, b -> d, c -> d: d is reachable from a twice but
	// appears once.
	edges := []Edge{
		{Predecessor: "a", Successor: "b"},
		{Predecessor: "a", Successor: "c"},
		{Predecessor: "b", Successor: "d"},
		{Predecessor: "c", Successor: "d"},
	}
	impact := AffectedTasks(edges, "a")
	assert.Equal(t, []string{"b", "c", "d"}, impact.Dependents)
	assert.Empty(t, impact.Prerequisites)

	impact = AffectedTasks(edges, "d")
	assert.Empty(t, impact.Dependents)
	assert.Equal(t, []string{"a", "b", "c"}, impact.Prerequisites)
}

func TestAffectedTasks_NeverIncludesQueriedTask(t *testing.T) {
	impact := AffectedTasks(chainEdges(), "b")
	assert.NotContains(t, impact.Dependents, "b")
	assert.NotContains(t, impact.Prerequisites, "b")
}

func TestAffectedTasks_IsolatedTask(t *testing.T) {
	impact := AffectedTasks(chainEdges(), "z")
	assert.Empty(t, impact.Dependents)
	assert.Empty(t, impact.Prerequisites)
}
