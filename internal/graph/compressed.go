// Package graph implements the compressed dependency graph: a dense-index
// projection of domain.DependencyGraph that supports O(1) forward-neighbor
// lookup and O(|edges|) reverse lookup.
package graph

import (
	"github.com/gregorian-09/buildhotspot/domain"
)

// CompressedGraph is an arena-plus-indices projection of a canonical
// DependencyGraph: paths are assigned dense integer ids in insertion order,
// never reused or gapped, and adjacency is stored as parallel slices indexed
// by id.
type CompressedGraph struct {
	forward  [][]int
	reverse  [][]int
	weights  [][]float64
	idToPath []string
	pathToID map[string]int
}

// NewCompressedGraph returns an empty compressed graph.
func NewCompressedGraph() *CompressedGraph {
	return &CompressedGraph{
		pathToID: make(map[string]int),
	}
}

// FromCanonical projects a canonical DependencyGraph into compressed form.
// Node ids are assigned in the canonical graph's insertion order; edges are
// then replayed preserving weight.
func FromCanonical(g *domain.DependencyGraph) *CompressedGraph {
	cg := NewCompressedGraph()

	nodes := g.GetAllNodes()
	for _, n := range nodes {
		cg.AddNode(n)
	}

	for _, n := range nodes {
		fromID := cg.GetID(n)
		for _, edge := range g.GetEdges(n) {
			toID := cg.GetID(edge.Target)
			cg.AddEdge(fromID, toID, edge.Weight)
		}
	}

	return cg
}

// AddNode registers path if absent and returns its id; idempotent in path.
func (g *CompressedGraph) AddNode(path string) int {
	if id, ok := g.pathToID[path]; ok {
		return id
	}

	id := len(g.idToPath)
	g.idToPath = append(g.idToPath, path)
	g.pathToID[path] = id

	g.forward = append(g.forward, nil)
	g.reverse = append(g.reverse, nil)
	g.weights = append(g.weights, nil)

	return id
}

// AddEdge appends a directed edge fromID -> toID with the given weight. An
// out-of-range endpoint is silently ignored (open question:
// kept silent, not promoted to an error).
func (g *CompressedGraph) AddEdge(fromID, toID int, weight float64) {
	if !g.HasNode(fromID) || !g.HasNode(toID) {
		return
	}

	g.forward[fromID] = append(g.forward[fromID], toID)
	g.reverse[toID] = append(g.reverse[toID], fromID)
	g.weights[fromID] = append(g.weights[fromID], weight)
}

// HasNode reports whether id is a valid, assigned node id.
func (g *CompressedGraph) HasNode(id int) bool {
	return id >= 0 && id < len(g.idToPath)
}

// HasEdge reports whether a forward edge fromID -> toID exists.
func (g *CompressedGraph) HasEdge(fromID, toID int) bool {
	if !g.HasNode(fromID) || !g.HasNode(toID) {
		return false
	}
	for _, n := range g.forward[fromID] {
		if n == toID {
			return true
		}
	}
	return false
}

// GetNeighbors returns the outgoing neighbor ids of id, or nil if absent.
func (g *CompressedGraph) GetNeighbors(id int) []int {
	if !g.HasNode(id) {
		return nil
	}
	return g.forward[id]
}

// GetReverseNeighbors returns the incoming neighbor ids of id, or nil if
// absent.
func (g *CompressedGraph) GetReverseNeighbors(id int) []int {
	if !g.HasNode(id) {
		return nil
	}
	return g.reverse[id]
}

// GetID returns the id assigned to path, or -1 if path is unknown.
func (g *CompressedGraph) GetID(path string) int {
	if id, ok := g.pathToID[path]; ok {
		return id
	}
	return -1
}

// GetPath returns the path assigned to id, or "" if id is out of range.
func (g *CompressedGraph) GetPath(id int) string {
	if !g.HasNode(id) {
		return ""
	}
	return g.idToPath[id]
}

// NodeCount returns the number of distinct nodes.
func (g *CompressedGraph) NodeCount() int {
	return len(g.idToPath)
}

// EdgeCount returns the total number of edges (sum of forward-list lengths,
// equal by construction to the sum of reverse-list lengths).
func (g *CompressedGraph) EdgeCount() int {
	count := 0
	for _, ns := range g.forward {
		count += len(ns)
	}
	return count
}

// MemoryUsageBytes estimates the in-memory footprint of the compressed
// structure: path strings plus the parallel adjacency/weight slices.
func (g *CompressedGraph) MemoryUsageBytes() int {
	const ptrSize = 8
	const intSize = 8
	const floatSize = 8

	total := 0
	for _, p := range g.idToPath {
		total += len(p) + ptrSize
	}
	total += len(g.pathToID) * (ptrSize + intSize)

	for _, ns := range g.forward {
		total += len(ns) * intSize
	}
	for _, ns := range g.reverse {
		total += len(ns) * intSize
	}
	for _, ws := range g.weights {
		total += len(ws) * floatSize
	}

	return total
}

// ToCanonical converts the compressed graph back into a canonical
// DependencyGraph. Edges are emitted with kind DIRECT_INCLUDE, LineNumber 0,
// and IsSystemHeader false — precise edge metadata is lost by design; only
// node count, edge count, and weight survive the round trip.
func (g *CompressedGraph) ToCanonical() *domain.DependencyGraph {
	canonical := domain.NewDependencyGraph()

	for _, p := range g.idToPath {
		canonical.AddNode(p)
	}

	for from, neighbors := range g.forward {
		weights := g.weights[from]
		for i, to := range neighbors {
			canonical.AddEdge(g.idToPath[from], domain.DependencyEdge{
				Target:         g.idToPath[to],
				Kind:           domain.EdgeDirectInclude,
				Weight:         weights[i],
				LineNumber:     0,
				IsSystemHeader: false,
			})
		}
	}

	return canonical
}

// Clear resets the graph to empty.
func (g *CompressedGraph) Clear() {
	g.forward = nil
	g.reverse = nil
	g.weights = nil
	g.idToPath = nil
	g.pathToID = make(map[string]int)
}
