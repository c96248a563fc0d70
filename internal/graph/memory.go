package graph

import "github.com/gregorian-09/buildhotspot/domain"

// EstimateMemorySavings compares the estimated memory footprint of a
// canonical DependencyGraph against its compressed projection.
func EstimateMemorySavings(original *domain.DependencyGraph, compressed *CompressedGraph) int {
	const stringHeaderSize = 16
	const edgeStructSize = 48

	originalSize := 0
	for _, node := range original.GetAllNodes() {
		originalSize += len(node) + stringHeaderSize

		edges := original.GetEdges(node)
		originalSize += len(edges) * edgeStructSize
		for _, e := range edges {
			originalSize += len(e.Target)
		}
	}

	compressedSize := compressed.MemoryUsageBytes()

	if originalSize > compressedSize {
		return originalSize - compressedSize
	}
	return 0
}
