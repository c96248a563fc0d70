// Package aggregate builds a domain.AnalysisResult from a batch of parsed
// compilation units and their dependency graph.
package aggregate

import (
	"sort"

	"github.com/gregorian-09/buildhotspot/domain"
	"github.com/gregorian-09/buildhotspot/internal/graph"
)

// Options controls bounded outputs that would otherwise grow unboundedly
// with input size.
type Options struct {
	// TopSlowFilesLimit caps MetricsSummary.TopSlowFiles. Zero means the
	// default of 10.
	TopSlowFilesLimit int
}

func (o Options) topSlowFilesLimit() int {
	if o.TopSlowFilesLimit > 0 {
		return o.TopSlowFilesLimit
	}
	return 10
}

// Build aggregates units and depGraph into a single AnalysisResult.
func Build(units []domain.CompilationUnit, depGraph *domain.DependencyGraph, opts Options) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Files:        buildFileSummaries(units),
		Templates:    buildTemplateAnalysis(units),
		Dependencies: buildDependencyAnalysis(units, depGraph),
		Symbols:      buildSymbolAnalysis(units),
	}
	result.Metrics = buildMetricsSummary(result.Files, depGraph, opts)

	for _, f := range result.Files {
		result.TotalTime += f.CompileTime
	}

	return result
}

func buildFileSummaries(units []domain.CompilationUnit) []domain.FileSummary {
	out := make([]domain.FileSummary, 0, len(units))
	for _, u := range units {
		out = append(out, domain.FileSummary{
			File:          u.SourceFile,
			CompileTime:   u.Metrics.TotalTime,
			FrontendTime:  u.Metrics.FrontendTime,
			BackendTime:   u.Metrics.BackendTime,
			IncludeCount:  len(u.Includes),
			TemplateCount: len(u.Templates),
			BuildSystem:   u.BuildSystem,
		})
	}
	return out
}

// buildTemplateAnalysis accumulates by full_signature across every unit,
// sorted by total_time descending.
func buildTemplateAnalysis(units []domain.CompilationUnit) domain.TemplateAnalysis {
	type acc struct {
		agg        domain.TemplateAggregate
		filesSeen  map[string]bool
	}
	byName := make(map[string]*acc)
	var order []string

	for _, u := range units {
		for _, tmpl := range u.Templates {
			a, ok := byName[tmpl.FullSignature]
			if !ok {
				a = &acc{
					agg:       domain.TemplateAggregate{Name: tmpl.Name, FullSignature: tmpl.FullSignature},
					filesSeen: make(map[string]bool),
				}
				byName[tmpl.FullSignature] = a
				order = append(order, tmpl.FullSignature)
			}
			a.agg.TotalTime += tmpl.Time
			a.agg.InstantiationCount += tmpl.Count
			if !a.filesSeen[u.SourceFile] {
				a.filesSeen[u.SourceFile] = true
				a.agg.FilesUsing = append(a.agg.FilesUsing, u.SourceFile)
			}
		}
	}

	out := make([]domain.TemplateAggregate, 0, len(order))
	for _, name := range order {
		out = append(out, byName[name].agg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalTime > out[j].TotalTime })

	return domain.TemplateAnalysis{Templates: out}
}

// buildDependencyAnalysis accumulates header stats across every unit's
// Includes, then backfills IncludedBy from the canonical dependency graph
// when present.
func buildDependencyAnalysis(units []domain.CompilationUnit, depGraph *domain.DependencyGraph) domain.DependencyAnalysis {
	type acc struct {
		agg             domain.HeaderAggregate
		includingFiles  map[string]bool
	}
	byPath := make(map[string]*acc)
	var order []string

	for _, u := range units {
		for _, inc := range u.Includes {
			a, ok := byPath[inc.Header]
			if !ok {
				a = &acc{
					agg:            domain.HeaderAggregate{Path: inc.Header},
					includingFiles: make(map[string]bool),
				}
				byPath[inc.Header] = a
				order = append(order, inc.Header)
			}
			a.agg.TotalParseTime += inc.ParseTime
			a.agg.InclusionCount++
			if !a.includingFiles[u.SourceFile] {
				a.includingFiles[u.SourceFile] = true
				a.agg.IncludingFiles++
				a.agg.IncludedBy = append(a.agg.IncludedBy, u.SourceFile)
			}
		}
	}

	if depGraph != nil {
		for _, node := range depGraph.GetAllNodes() {
			for _, edge := range depGraph.GetEdges(node) {
				a, ok := byPath[edge.Target]
				if !ok {
					continue
				}
				if !a.includingFiles[node] {
					a.includingFiles[node] = true
					a.agg.IncludingFiles++
					a.agg.IncludedBy = append(a.agg.IncludedBy, node)
				}
			}
		}
	}

	out := make([]domain.HeaderAggregate, 0, len(order))
	for _, path := range order {
		out = append(out, byPath[path].agg)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalParseTime > out[j].TotalParseTime })

	return domain.DependencyAnalysis{Headers: out}
}

// buildSymbolAnalysis is a flat pass-through placeholder: source-level
// symbol extraction is a build-driver concern, out of scope per the
// non-goals. Suggesters that need symbol info (unity-build conflict
// detection) derive it themselves from file-level heuristics instead.
func buildSymbolAnalysis(units []domain.CompilationUnit) domain.SymbolAnalysis {
	return domain.SymbolAnalysis{}
}

func buildMetricsSummary(files []domain.FileSummary, depGraph *domain.DependencyGraph, opts Options) domain.MetricsSummary {
	m := domain.MetricsSummary{TotalFilesCompiled: len(files)}
	if depGraph != nil {
		m.TotalDependencies = depGraph.EdgeCount()
		m.AvgIncludeDepth, m.MaxIncludeDepth = includeDepthStats(depGraph)
		m.CircularDependencyCount = countCircularDependencies(depGraph)
	}
	if len(files) == 0 {
		return m
	}

	times := make([]domain.Duration, len(files))
	var sum domain.Duration
	for i, f := range files {
		times[i] = f.CompileTime
		sum += f.CompileTime
	}
	m.AverageFileTime = sum / domain.Duration(len(files))

	sorted := append([]domain.Duration(nil), times...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })

	m.MedianFileTime = percentile(sorted, 50)
	m.P95FileTime = percentile(sorted, 95)
	m.P99FileTime = percentile(sorted, 99)

	slow := append([]domain.FileSummary(nil), files...)
	sort.SliceStable(slow, func(i, j int) bool { return slow[i].CompileTime > slow[j].CompileTime })
	limit := opts.topSlowFilesLimit()
	if limit > len(slow) {
		limit = len(slow)
	}
	for _, f := range slow[:limit] {
		m.TopSlowFiles = append(m.TopSlowFiles, domain.SlowFile{File: f.File, CompileTime: f.CompileTime})
	}

	return m
}

// percentile implements nearest-rank on an ascending-sorted sequence,
// ties breaking toward the higher rank.
func percentile(sorted []domain.Duration, pct int) domain.Duration {
	if len(sorted) == 0 {
		return 0
	}
	rank := (pct*len(sorted) + 99) / 100
	if rank < 1 {
		rank = 1
	}
	if rank > len(sorted) {
		rank = len(sorted)
	}
	return sorted[rank-1]
}

// includeDepthStats computes, for each node with outgoing edges, the
// longest shortest-path depth reachable by BFS, then averages and maxes
// across every node with depth > 0.
func includeDepthStats(depGraph *domain.DependencyGraph) (float64, int) {
	compressed := graph.FromCanonical(depGraph)
	nodes := depGraph.GetAllNodes()

	var total int
	var count int
	maxDepth := 0

	for _, node := range nodes {
		id := compressed.GetID(node)
		if id < 0 {
			continue
		}
		depth := bfsMaxDepth(compressed, id)
		if depth == 0 {
			continue
		}
		total += depth
		count++
		if depth > maxDepth {
			maxDepth = depth
		}
	}

	if count == 0 {
		return 0, 0
	}
	return float64(total) / float64(count), maxDepth
}

func bfsMaxDepth(g *graph.CompressedGraph, start int) int {
	visited := map[int]bool{start: true}
	queue := []int{start}
	depth := map[int]int{start: 0}
	max := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range g.GetNeighbors(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			depth[next] = depth[cur] + 1
			if depth[next] > max {
				max = depth[next]
			}
			queue = append(queue, next)
		}
	}
	return max
}

// countCircularDependencies counts strongly connected components of size
// greater than one in the compressed graph, via Tarjan's algorithm.
func countCircularDependencies(depGraph *domain.DependencyGraph) int {
	compressed := graph.FromCanonical(depGraph)
	n := compressed.NodeCount()

	indices := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = -1
	}

	var stack []int
	index := 0
	cyclicCount := 0

	var strongconnect func(v int)
	strongconnect = func(v int) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range compressed.GetNeighbors(v) {
			if w < 0 || w >= n {
				continue
			}
			if indices[w] == -1 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			size := 0
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				size++
				if w == v {
					break
				}
			}
			if size > 1 {
				cyclicCount++
			}
		}
	}

	for v := 0; v < n; v++ {
		if indices[v] == -1 {
			strongconnect(v)
		}
	}

	return cyclicCount
}
