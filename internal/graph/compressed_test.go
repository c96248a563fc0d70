package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregorian-09/buildhotspot/domain"
)

func TestCompressedGraph_AddNodeIdempotent(t *testing.T) {
	g := NewCompressedGraph()
	id1 := g.AddNode("main.cpp")
	id2 := g.AddNode("main.cpp")
	assert.Equal(t, id1, id2)
	assert.Equal(t, 1, g.NodeCount())
}

func TestCompressedGraph_AddEdgeOutOfRangeIsNoop(t *testing.T) {
	g := NewCompressedGraph()
	g.AddNode("main.cpp")
	g.AddEdge(0, 99, 1.0)
	assert.Equal(t, 0, g.EdgeCount())
	assert.False(t, g.HasEdge(0, 99))
}

func TestCompressedGraph_ForwardReverseInvariant(t *testing.T) {
	g := NewCompressedGraph()
	u := g.AddNode("main.cpp")
	v := g.AddNode("utils.h")
	g.AddEdge(u, v, 1.0)

	assert.True(t, g.HasEdge(u, v))
	assert.Contains(t, g.GetNeighbors(u), v)
	assert.Contains(t, g.GetReverseNeighbors(v), u)
}

func TestCompressedGraph_MultiEdgesPermitted(t *testing.T) {
	g := NewCompressedGraph()
	u := g.AddNode("a.cpp")
	v := g.AddNode("b.h")
	g.AddEdge(u, v, 1.0)
	g.AddEdge(u, v, 2.0)
	assert.Equal(t, 2, g.EdgeCount())
}

func TestFromCanonicalRoundTrip(t *testing.T) {
	canonical := domain.NewDependencyGraph()
	canonical.AddEdge("main.cpp", domain.DependencyEdge{Target: "utils.h", Kind: domain.EdgeDirectInclude})
	canonical.AddEdge("utils.h", domain.DependencyEdge{Target: "types.h", Kind: domain.EdgeDirectInclude})
	canonical.AddEdge("main.cpp", domain.DependencyEdge{Target: "config.h", Kind: domain.EdgeDirectInclude})
	canonical.AddEdge("config.h", domain.DependencyEdge{Target: "types.h", Kind: domain.EdgeDirectInclude})

	compressed := FromCanonical(canonical)
	require.Equal(t, canonical.NodeCount(), compressed.NodeCount())
	require.Equal(t, canonical.EdgeCount(), compressed.EdgeCount())

	roundTripped := compressed.ToCanonical()
	assert.Equal(t, 4, roundTripped.NodeCount())
	assert.Equal(t, 4, roundTripped.EdgeCount())

	for _, node := range roundTripped.GetAllNodes() {
		for _, edge := range roundTripped.GetEdges(node) {
			assert.Equal(t, domain.EdgeDirectInclude, edge.Kind)
			assert.Equal(t, 0, edge.LineNumber)
			assert.False(t, edge.IsSystemHeader)
		}
	}
}

func TestCompressedGraph_GetIDGetPathSentinels(t *testing.T) {
	g := NewCompressedGraph()
	assert.Equal(t, -1, g.GetID("missing.h"))
	assert.Equal(t, "", g.GetPath(42))
}

func TestCompressedGraph_Clear(t *testing.T) {
	g := NewCompressedGraph()
	g.AddNode("a.cpp")
	g.Clear()
	assert.Equal(t, 0, g.NodeCount())
	assert.Equal(t, 0, g.EdgeCount())
}

func TestEstimateMemorySavingsNonNegative(t *testing.T) {
	canonical := domain.NewDependencyGraph()
	canonical.AddEdge("main.cpp", domain.DependencyEdge{Target: "utils.h"})
	compressed := FromCanonical(canonical)
	assert.GreaterOrEqual(t, EstimateMemorySavings(canonical, compressed), 0)
}
