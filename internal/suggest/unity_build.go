package suggest

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	unityMaxFilesPerGroup  = 10
	unityMaxTimePerGroup   = 30 * time.Second
	unityMaxMemoryPerGroup = 4 * 1024 * 1024 * 1024
	unityDistanceThreshold = 0.5
)

type conflictType int

const (
	conflictNone conflictType = iota
	conflictStaticSymbol
	conflictAnonymousNamespace
	conflictMacroRedefinition
)

type symbolConflict struct {
	symbolName  string
	kind        conflictType
	description string
}

type fileMetadata struct {
	path              string
	compileTime       domain.Duration
	staticSymbols     map[string]bool
	anonSymbols       map[string]bool
	includes          map[string]bool
	memoryEstimate    int
}

type unityGroup struct {
	files               []fileMetadata
	commonIncludes      map[string]bool
	totalCompileTime    domain.Duration
	totalIncludes       int
	suggestedName       string
	potentialConflicts  []symbolConflict
	conflictRiskScore   float64
}

// UnityBuildSuggester clusters source files sharing includes and compile
// time profiles into candidate unity-build groups, flagging likely symbol
// conflicts.
type UnityBuildSuggester struct{}

// NewUnityBuildSuggester returns a ready-to-use unity-build suggester.
func NewUnityBuildSuggester() *UnityBuildSuggester { return &UnityBuildSuggester{} }

func (s *UnityBuildSuggester) Name() string { return "UnityBuild" }

func moduleName(path string) string {
	dir := filepath.Dir(path)
	if dir == "." || dir == "/" {
		return "root"
	}
	return filepath.Base(dir)
}

func jaccardSimilarity(a, b map[string]bool) float64 {
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}
	if len(a) == 0 || len(b) == 0 {
		return 0.0
	}

	intersection := 0
	for item := range a {
		if b[item] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

func timeSimilarity(a, b domain.Duration) float64 {
	if a == 0 && b == 0 {
		return 1.0
	}

	max := a
	if b > max {
		max = b
	}
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return 1.0 - float64(diff)/float64(max)
}

func fileDistance(a, b fileMetadata) float64 {
	includeSim := jaccardSimilarity(a.includes, b.includes)
	timeSim := timeSimilarity(a.compileTime, b.compileTime)

	dirSim := 0.0
	if filepath.Dir(a.path) == filepath.Dir(b.path) {
		dirSim = 1.0
	}

	similarity := 0.6*includeSim + 0.2*timeSim + 0.2*dirSim
	return 1.0 - similarity
}

func detectConflicts(a, b fileMetadata) []symbolConflict {
	var conflicts []symbolConflict

	for sym := range a.staticSymbols {
		if b.staticSymbols[sym] {
			conflicts = append(conflicts, symbolConflict{
				symbolName: sym,
				kind:       conflictStaticSymbol,
				description: "Static symbol '" + sym +
					"' defined in both files - will cause linker error in unity build",
			})
		}
	}

	for sym := range a.anonSymbols {
		if b.anonSymbols[sym] {
			conflicts = append(conflicts, symbolConflict{
				symbolName: sym,
				kind:       conflictAnonymousNamespace,
				description: "Anonymous namespace symbol '" + sym +
					"' in both files - will cause ODR violation",
			})
		}
	}

	return conflicts
}

func conflictRisk(conflicts []symbolConflict) float64 {
	if len(conflicts) == 0 {
		return 0.0
	}

	risk := 0.0
	for _, c := range conflicts {
		switch c.kind {
		case conflictStaticSymbol:
			risk = math.Max(risk, 1.0)
		case conflictAnonymousNamespace:
			risk = math.Max(risk, 0.8)
		case conflictMacroRedefinition:
			risk = math.Max(risk, 0.5)
		}
	}

	return math.Min(risk, 1.0)
}

// hierarchicalClustering performs complete-linkage agglomerative clustering,
// merging the pair of active clusters with the smallest max-pairwise
// distance as long as it stays under distanceThreshold and the merged size
// stays within maxClusterSize. Returns clusters with 2+ members.
func hierarchicalClustering(files []fileMetadata, distanceThreshold float64, maxClusterSize int) [][]int {
	n := len(files)
	if n == 0 {
		return nil
	}

	distances := make([][]float64, n)
	for i := range distances {
		distances[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := fileDistance(files[i], files[j])
			distances[i][j] = d
			distances[j][i] = d
		}
	}

	clusters := make([][]int, n)
	for i := range clusters {
		clusters[i] = []int{i}
	}
	active := make([]bool, n)
	for i := range active {
		active[i] = true
	}

	for {
		minDistance := math.MaxFloat64
		bestI, bestJ := -1, -1

		for i := 0; i < len(clusters); i++ {
			if !active[i] {
				continue
			}
			for j := i + 1; j < len(clusters); j++ {
				if !active[j] {
					continue
				}
				if len(clusters[i])+len(clusters[j]) > maxClusterSize {
					continue
				}

				maxDist := 0.0
				for _, idxI := range clusters[i] {
					for _, idxJ := range clusters[j] {
						if distances[idxI][idxJ] > maxDist {
							maxDist = distances[idxI][idxJ]
						}
					}
				}

				if maxDist < minDistance {
					minDistance = maxDist
					bestI, bestJ = i, j
				}
			}
		}

		if bestI < 0 || minDistance > distanceThreshold {
			break
		}

		clusters[bestI] = append(clusters[bestI], clusters[bestJ]...)
		active[bestJ] = false
	}

	var result [][]int
	for i, cluster := range clusters {
		if active[i] && len(cluster) >= 2 {
			result = append(result, cluster)
		}
	}
	return result
}

func buildFileMetadata(files []domain.FileSummary, deps domain.DependencyAnalysis, symbols domain.SymbolAnalysis) []fileMetadata {
	fileIncludes := make(map[string]map[string]bool)
	for _, header := range deps.Headers {
		for _, includer := range header.IncludedBy {
			if fileIncludes[includer] == nil {
				fileIncludes[includer] = make(map[string]bool)
			}
			fileIncludes[includer][header.Path] = true
		}
	}

	fileStaticSymbols := make(map[string]map[string]bool)
	fileAnonSymbols := make(map[string]map[string]bool)

	for _, sym := range symbols.Symbols {
		key := sym.DefinedIn
		likelyAnon := strings.Contains(sym.Name, "_GLOBAL__N") ||
			strings.Contains(sym.Name, "(anonymous namespace)") ||
			strings.Contains(sym.Name, "::$") ||
			strings.Contains(sym.Name, "anonymous")

		likelyInternal := false
		if sym.Name != "" {
			likelyInternal = sym.Name[0] == '_' || strings.HasPrefix(sym.Name, "_L") || strings.HasPrefix(sym.Name, "_Z")
		}

		if likelyInternal && !likelyAnon {
			if fileStaticSymbols[key] == nil {
				fileStaticSymbols[key] = make(map[string]bool)
			}
			fileStaticSymbols[key][sym.Name] = true
		}
		if likelyAnon {
			if fileAnonSymbols[key] == nil {
				fileAnonSymbols[key] = make(map[string]bool)
			}
			fileAnonSymbols[key][sym.Name] = true
		}
	}

	var metadata []fileMetadata
	for _, file := range files {
		if !isCppSourceFile(file.File) {
			continue
		}

		meta := fileMetadata{
			path:           file.File,
			compileTime:    file.CompileTime,
			includes:       fileIncludes[file.File],
			staticSymbols:  fileStaticSymbols[file.File],
			anonSymbols:    fileAnonSymbols[file.File],
			memoryEstimate: file.LinesOfCode * 10,
		}
		if meta.includes == nil {
			meta.includes = make(map[string]bool)
		}
		if meta.staticSymbols == nil {
			meta.staticSymbols = make(map[string]bool)
		}
		if meta.anonSymbols == nil {
			meta.anonSymbols = make(map[string]bool)
		}

		metadata = append(metadata, meta)
	}
	return metadata
}

func estimateUnitySavings(group unityGroup) domain.Duration {
	if len(group.files) < 2 {
		return 0
	}

	n := float64(len(group.files))

	headerRatio := 0.50
	switch {
	case group.totalIncludes > 30:
		headerRatio = 0.60
	case group.totalIncludes > 15:
		headerRatio = 0.55
	case group.totalIncludes < 5:
		headerRatio = 0.40
	}

	const templateRatio = 0.10
	sharedRatio := headerRatio + templateRatio

	savingsRatio := sharedRatio * (n - 1.0) / n
	savingsRatio *= 1.0 - group.conflictRiskScore*0.5

	return domain.Duration(float64(group.totalCompileTime) * savingsRatio)
}

func estimateGroupMemoryUsage(group unityGroup) int {
	if len(group.files) == 0 {
		return 0
	}

	maxMem, totalMem := 0, 0
	for _, f := range group.files {
		if f.memoryEstimate > maxMem {
			maxMem = f.memoryEstimate
		}
		totalMem += f.memoryEstimate
	}

	return maxMem + int(0.3*float64(totalMem-maxMem))
}

func createUnityGroups(files []fileMetadata, maxFiles int, maxTime domain.Duration, maxMemory int) []unityGroup {
	if len(files) == 0 {
		return nil
	}

	dirGroups := make(map[string][]int)
	var dirOrder []string
	for i, f := range files {
		dir := moduleName(f.path)
		if _, ok := dirGroups[dir]; !ok {
			dirOrder = append(dirOrder, dir)
		}
		dirGroups[dir] = append(dirGroups[dir], i)
	}
	sort.Strings(dirOrder)

	var result []unityGroup

	for _, dir := range dirOrder {
		indices := dirGroups[dir]
		if len(indices) < 2 {
			continue
		}

		dirFiles := make([]fileMetadata, len(indices))
		for i, idx := range indices {
			dirFiles[i] = files[idx]
		}

		clusters := hierarchicalClustering(dirFiles, unityDistanceThreshold, maxFiles)

		for _, cluster := range clusters {
			group := unityGroup{suggestedName: fmt.Sprintf("%s_unity_%d", dir, len(result))}

			first := true
			for _, idx := range cluster {
				file := dirFiles[idx]
				group.files = append(group.files, file)
				group.totalCompileTime += file.compileTime

				if first {
					group.commonIncludes = make(map[string]bool, len(file.includes))
					for inc := range file.includes {
						group.commonIncludes[inc] = true
					}
					first = false
				} else {
					intersection := make(map[string]bool)
					for inc := range group.commonIncludes {
						if file.includes[inc] {
							intersection[inc] = true
						}
					}
					group.commonIncludes = intersection
				}
			}

			if group.totalCompileTime > maxTime {
				continue
			}
			if estimateGroupMemoryUsage(group) > maxMemory {
				continue
			}

			for i := 0; i < len(group.files); i++ {
				for j := i + 1; j < len(group.files); j++ {
					group.potentialConflicts = append(group.potentialConflicts, detectConflicts(group.files[i], group.files[j])...)
				}
			}

			group.conflictRiskScore = conflictRisk(group.potentialConflicts)
			group.totalIncludes = len(group.commonIncludes)

			result = append(result, group)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return estimateUnitySavings(result[i]) > estimateUnitySavings(result[j])
	})

	return result
}

func unityPriority(group unityGroup) domain.Priority {
	timeMS := float64(group.totalCompileTime.Milliseconds())

	if group.conflictRiskScore > 0.8 {
		return domain.PriorityLow
	}

	score := float64(len(group.files)) * math.Log(timeMS+1.0)
	score *= 1.0 - group.conflictRiskScore

	switch {
	case score > 50.0 && len(group.files) >= 5:
		return domain.PriorityHigh
	case score > 20.0 && len(group.files) >= 3:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func (s *UnityBuildSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	metadata := buildFileMetadata(ctx.Analysis.Files, ctx.Analysis.Dependencies, ctx.Analysis.Symbols)
	groups := createUnityGroups(metadata, unityMaxFilesPerGroup, unityMaxTimePerGroup, unityMaxMemoryPerGroup)

	result.ItemsAnalyzed = len(ctx.Analysis.Files)

	for _, group := range groups {
		if len(group.files) < 2 {
			result.ItemsSkipped++
			continue
		}
		if group.conflictRiskScore > 0.9 {
			result.ItemsSkipped++
			continue
		}

		timeMS := group.totalCompileTime.Milliseconds()
		memoryMB := estimateGroupMemoryUsage(group) / (1024 * 1024)

		var desc strings.Builder
		fmt.Fprintf(&desc, "Group %d source files into a unity build.\n", len(group.files))
		fmt.Fprintf(&desc, "- Combined compile time: %dms\n", timeMS)
		fmt.Fprintf(&desc, "- Shared includes: %d\n", group.totalIncludes)
		fmt.Fprintf(&desc, "- Estimated peak memory: %dMB\n", memoryMB)
		if len(group.potentialConflicts) > 0 {
			fmt.Fprintf(&desc, "- WARNING: %d potential symbol conflicts detected", len(group.potentialConflicts))
		}

		savings := estimateUnitySavings(group)

		var unityContent strings.Builder
		fmt.Fprintf(&unityContent, "// %s.cpp\n// Unity build file\n// Combines %d source files\n// Estimated savings: %dms\n\n",
			group.suggestedName, len(group.files), savings.Milliseconds())
		if len(group.potentialConflicts) > 0 {
			unityContent.WriteString("// WARNING: Potential conflicts detected:\n")
			for _, c := range group.potentialConflicts {
				fmt.Fprintf(&unityContent, "//   - %s\n", c.description)
			}
			unityContent.WriteString("\n")
		}
		for _, f := range group.files {
			fmt.Fprintf(&unityContent, "#include \"%s\"\n", f.path)
		}

		var cmakeExample strings.Builder
		fmt.Fprintf(&cmakeExample, "# CMakeLists.txt - Unity build configuration\n"+
			"set(CMAKE_UNITY_BUILD ON)\nset(CMAKE_UNITY_BUILD_BATCH_SIZE %d)\n\n"+
			"# For conflict resolution, use unique IDs:\nset_source_files_properties(\n", len(group.files))
		for _, f := range group.files {
			fmt.Fprintf(&cmakeExample, "    %s\n", filepath.Base(f.path))
		}
		fmt.Fprintf(&cmakeExample, "    PROPERTIES UNITY_GROUP \"%s\"\n)\n\n"+
			"# Enable UNITY_BUILD_UNIQUE_ID for static symbol conflicts:\nset(CMAKE_UNITY_BUILD_UNIQUE_ID ON)",
			group.suggestedName)

		var secondary []domain.FileTarget
		for _, f := range group.files {
			secondary = append(secondary, domain.FileTarget{Path: f.path, Action: domain.ActionModify, Note: "Include in unity build"})
		}

		caveats := []string{
			"Static/anonymous namespace symbols may conflict",
			"Incremental builds slower (entire unity file rebuilds)",
			"Debug symbols harder to navigate",
			"Peak memory usage increases (~" + strconv.Itoa(memoryMB) + "MB)",
			"Include order dependencies may cause issues",
		}
		if len(group.potentialConflicts) > 0 {
			caveats = append([]string{
				"WARNING: " + strconv.Itoa(len(group.potentialConflicts)) + " potential conflicts must be resolved first",
			}, caveats...)
		}

		suggestion := domain.Suggestion{
			ID:          "unity-" + group.suggestedName,
			Type:        domain.SuggestionUnityBuild,
			Priority:    unityPriority(group),
			Confidence:  0.85 - group.conflictRiskScore*0.5,
			Title:       "Create unity build group: " + group.suggestedName,
			Description: desc.String(),
			Rationale: "Unity builds combine multiple source files into a single translation unit, reducing overall " +
				"compile time by:\n\n" +
				"1. Parsing shared headers once instead of per-file (typically 40-60% of compile time)\n" +
				"2. Sharing template instantiations across files\n" +
				"3. Reducing linker workload (fewer object files)\n" +
				"4. Improving cache utilization during compilation\n\n" +
				fmt.Sprintf("This group shares %d headers, making it a good candidate.\n\n", group.totalIncludes) +
				"Research basis: based on techniques from Chromium's jumbo builds and Unreal Engine 4's unity builds.",
			EstimatedSavings: savings,
			SecondaryTargets: secondary,
			AfterCode:        []domain.CodeSnippet{{File: group.suggestedName + ".cpp", Code: unityContent.String()}},
			BeforeCode:       []domain.CodeSnippet{{File: "CMakeLists.txt", Code: cmakeExample.String()}},
			ImplementationSteps: []string{
				"1. Review potential conflicts listed in the suggestion",
				"2. Resolve conflicts by:",
				"   - Renaming static/anonymous namespace symbols",
				"   - Using CMAKE_UNITY_BUILD_UNIQUE_ID",
				"   - Wrapping conflicting code in named namespaces",
				"3. Enable unity build in CMake:",
				"   set(CMAKE_UNITY_BUILD ON)",
				"4. Or create manual unity file with #includes",
				"5. Build and verify no compilation errors",
				"6. Run tests to ensure no behavioral changes",
				"7. Measure build time improvement",
			},
			Caveats: caveats,
			Verification: "1. Build with unity configuration and verify no errors\n" +
				"2. Check for ODR violations with -fsanitize=undefined\n" +
				"3. Run full test suite\n" +
				"4. Measure full build time improvement\n" +
				"5. Measure incremental build time impact\n" +
				"6. Monitor peak memory usage during build",
			IsSafe: len(group.potentialConflicts) == 0,
		}
		if ctx.Trace.TotalTime > 0 {
			suggestion.EstimatedSavingsPercent = 100.0 * float64(suggestion.EstimatedSavings) / float64(ctx.Trace.TotalTime)
		}

		result.Suggestions = append(result.Suggestions, suggestion)
	}

	return result, nil
}
