package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTopoSort_RespectsEdges(t *testing.T) {
	nodes := []string{"a", "b", "c", "d"}
	edges := []Edge{
		{Predecessor: "a", Successor: "b"},
		{Predecessor: "b", Successor: "d"},
		{Predecessor: "c", Successor: "d"},
	}
	order, err := TopoSort(nodes, edges)
	require.NoError(t, err)
	require.Len(t, order, 4)

	pos := make(map[string]int, len(order))
	for i, id := range order {
		pos[id] = i
	}
	for _, e := range edges {
		assert.Less(t, pos[e.Predecessor], pos[e.Successor])
	}
}

func TestTopoSort_DeterministicTieBreak(t *testing.T) {
	nodes := []string{"c", "a", "b"}
	order1, err := TopoSort(nodes, nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, order1)

	order2, err := TopoSort([]string{"b", "c", "a"}, nil)
	require.NoError(t, err)
	assert.Equal(t, order1, order2)
}

func TestTopoSort_CycleError(t *testing.T) {
	nodes := []string{"a", "b"}
	edges := []Edge{
		{Predecessor: "a", Successor: "b"},
		{Predecessor: "b", Successor: "a"},
	}
	_, err := TopoSort(nodes, edges)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCycle)
}

func TestTopoSort_IgnoresEdgesOutsideNodeSet(t *testing.T) {
	nodes := []string{"a", "b"}
	edges := []Edge{
		{Predecessor: "a", Successor: "b"},
		{Predecessor: "x", Successor: "a"}, // x not in set
	}
	order, err := TopoSort(nodes, edges)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, order)
}
