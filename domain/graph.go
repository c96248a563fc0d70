package domain

// EdgeKind tags the provenance of a dependency edge. Only DirectInclude is
// produced by the compressed-graph round trip (§4.2); richer kinds exist for
// graphs assembled directly from build-system metadata.
type EdgeKind string

const (
	EdgeDirectInclude EdgeKind = "DIRECT_INCLUDE"
	EdgeTransitive     EdgeKind = "TRANSITIVE_INCLUDE"
	EdgeLink           EdgeKind = "LINK"
)

// DependencyEdge is one outgoing edge of the canonical DependencyGraph.
type DependencyEdge struct {
	Target         string
	Kind           EdgeKind
	Weight         float64
	LineNumber     int
	IsSystemHeader bool
}

// DependencyGraph is the canonical representation: a mapping from source
// path to the set of edges leaving it. Node order is insertion order, which
// the compressed-graph projection relies on for its id assignment.
type DependencyGraph struct {
	nodes          map[string]int
	insertionOrder []string
	edges          map[string][]DependencyEdge
}

// NewDependencyGraph builds an empty canonical graph.
func NewDependencyGraph() *DependencyGraph {
	return &DependencyGraph{
		nodes: make(map[string]int),
		edges: make(map[string][]DependencyEdge),
	}
}

// AddNode registers a node (idempotent in path) and returns nothing; nodes
// are addressed by path, not by id, in the canonical representation.
func (g *DependencyGraph) AddNode(path string) {
	if _, ok := g.nodes[path]; ok {
		return
	}
	g.nodes[path] = len(g.insertionOrder)
	g.insertionOrder = append(g.insertionOrder, path)
	if _, ok := g.edges[path]; !ok {
		g.edges[path] = nil
	}
}

// AddEdge appends an edge from source to the given DependencyEdge's target,
// registering both endpoints as nodes if they are not already present.
func (g *DependencyGraph) AddEdge(source string, edge DependencyEdge) {
	g.AddNode(source)
	g.AddNode(edge.Target)
	g.edges[source] = append(g.edges[source], edge)
}

// GetAllNodes returns every node path, in insertion order.
func (g *DependencyGraph) GetAllNodes() []string {
	out := make([]string, len(g.insertionOrder))
	copy(out, g.insertionOrder)
	return out
}

// GetEdges returns the edges leaving the given source path.
func (g *DependencyGraph) GetEdges(source string) []DependencyEdge {
	return g.edges[source]
}

// NodeCount returns the number of distinct node paths.
func (g *DependencyGraph) NodeCount() int {
	return len(g.insertionOrder)
}

// EdgeCount returns the total number of edges across all nodes.
func (g *DependencyGraph) EdgeCount() int {
	count := 0
	for _, es := range g.edges {
		count += len(es)
	}
	return count
}
