package suggest

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	headerSplitMinParseTime     = 200 * time.Millisecond
	headerSplitMinIncluderCount = 5
)

type splitPattern int

const (
	splitForwardDecl splitPattern = iota
	splitTypesAndFwd
	splitFunctionalGroups
	splitPublicPrivate
)

// HeaderSplitSuggester recommends splitting large, widely-included headers
// into smaller, more focused ones.
type HeaderSplitSuggester struct{}

// NewHeaderSplitSuggester returns a ready-to-use header-split suggester.
func NewHeaderSplitSuggester() *HeaderSplitSuggester { return &HeaderSplitSuggester{} }

func (s *HeaderSplitSuggester) Name() string { return "HeaderSplit" }

func isHeaderExt(path string) bool {
	switch filepath.Ext(path) {
	case ".h", ".hpp", ".hxx", ".H", ".hh", ".h++":
		return true
	default:
		return false
	}
}

func determineSplitPattern(headerPath string, includerCount int) splitPattern {
	lower := strings.ToLower(filepath.Base(headerPath))

	switch {
	case strings.Contains(lower, "type"), strings.Contains(lower, "struct"), strings.Contains(lower, "enum"):
		return splitTypesAndFwd
	case strings.Contains(lower, "util"), strings.Contains(lower, "helper"), strings.Contains(lower, "common"):
		return splitFunctionalGroups
	case includerCount > 20:
		return splitForwardDecl
	case strings.Contains(lower, "core"), strings.Contains(lower, "main"), strings.Contains(lower, "api"):
		return splitPublicPrivate
	default:
		return splitForwardDecl
	}
}

func headerSplitPriority(parseTime domain.Duration, includerCount int) domain.Priority {
	parseMS := float64(parseTime.Milliseconds())
	totalImpactMS := parseMS * float64(includerCount)

	switch {
	case parseTime.Milliseconds() > 1000 && includerCount >= 50:
		return domain.PriorityCritical
	case parseTime.Milliseconds() > 500 && includerCount >= 20:
		return domain.PriorityHigh
	case (parseTime.Milliseconds() > 200 && includerCount >= 10) || totalImpactMS > 5000:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func headerSplitConfidence(parseTime domain.Duration, includerCount, inclusionCount int) float64 {
	parseMS := parseTime.Milliseconds()

	var timeConfidence float64
	switch {
	case parseMS > 1000:
		timeConfidence = 0.9
	case parseMS > 500:
		timeConfidence = 0.75
	case parseMS > 200:
		timeConfidence = 0.6
	default:
		timeConfidence = 0.4
	}

	includerConfidence := math.Min(1.0, math.Log(float64(includerCount)+1)/math.Log(50.0))

	repetitionFactor := 1.0
	if includerCount > 0 && inclusionCount > includerCount {
		avgInclusions := float64(inclusionCount) / float64(includerCount)
		if avgInclusions > 2.0 {
			repetitionFactor = 1.1
		}
	}

	confidence := blendWeighted(timeConfidence, 0.6, includerConfidence, 0.4) * repetitionFactor
	return clampConfidence(confidence, 0.3, 0.95)
}

func headerSplitSavings(parseTime domain.Duration, includerCount int, pattern splitPattern) domain.Duration {
	reductionFactor := 0.30
	switch pattern {
	case splitForwardDecl:
		reductionFactor = 0.30
	case splitTypesAndFwd:
		reductionFactor = 0.25
	case splitFunctionalGroups:
		reductionFactor = 0.20
	case splitPublicPrivate:
		reductionFactor = 0.15
	}

	includerFactor := math.Log(float64(includerCount) + 1)
	return domain.Duration(float64(parseTime) * reductionFactor * includerFactor)
}

func suggestSplitName(header, suffix string) string {
	ext := filepath.Ext(header)
	stem := strings.TrimSuffix(filepath.Base(header), ext)
	return stem + "_" + suffix + ext
}

func headerSplitImplementationSteps(headerPath string, pattern splitPattern) []string {
	filename := filepath.Base(headerPath)
	fwdHeader := suggestSplitName(headerPath, "fwd")
	typesHeader := suggestSplitName(headerPath, "types")

	switch pattern {
	case splitTypesAndFwd:
		return []string{
			"Separate type definitions from function declarations",
			"Create " + fwdHeader + " with forward declarations",
			"Create " + typesHeader + " with type definitions",
			"Update " + filename + " to include both split headers",
			"Update includers to use minimal required header",
			"Verify compilation and run tests",
		}
	case splitFunctionalGroups:
		return []string{
			"Identify logical groups of related functions/classes",
			"Create separate headers for each functional group",
			"Move declarations to appropriate group headers",
			"Update " + filename + " to include all group headers",
			"Update includers to use specific group headers",
			"Consider deprecating the umbrella header",
			"Verify compilation and run tests",
		}
	case splitPublicPrivate:
		internalHeader := suggestSplitName(headerPath, "internal")
		return []string{
			"Identify public API vs internal implementation details",
			"Create " + internalHeader + " for internals",
			"Keep " + filename + " as the public API header",
			"Move internal details to the internal header",
			"Update internal code to use the internal header",
			"Document that " + filename + " is the public interface",
			"Verify compilation and run tests",
		}
	default:
		return []string{
			"Identify classes and structs that can be forward-declared",
			"Create " + fwdHeader + " with forward declarations",
			"Update " + filename + " to include " + fwdHeader,
			"Audit includers: replace #include with forward decl where possible",
			"Run include-what-you-use (IWYU) to validate minimal includes",
			"Verify compilation and run tests",
		}
	}
}

func headerSplitRationaleSuffix(pattern splitPattern) string {
	switch pattern {
	case splitTypesAndFwd:
		return "Separating type definitions from forward declarations allows includers to choose the minimal header they need."
	case splitFunctionalGroups:
		return "This utility-style header contains multiple unrelated groups that could be split into focused headers."
	case splitPublicPrivate:
		return "Separating public API from internal details prevents external code from depending on implementation."
	default:
		return "This header would benefit from a forward declaration header (_fwd.h) since many includers likely only " +
			"need to reference types without seeing their full definition."
	}
}

func (s *HeaderSplitSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	for _, header := range ctx.Analysis.Dependencies.Headers {
		result.ItemsAnalyzed++

		if !isHeaderExt(header.Path) {
			result.ItemsSkipped++
			continue
		}
		if header.TotalParseTime < headerSplitMinParseTime {
			result.ItemsSkipped++
			continue
		}
		if header.IncludingFiles < headerSplitMinIncluderCount {
			result.ItemsSkipped++
			continue
		}

		lower := strings.ToLower(filepath.Base(header.Path))
		alreadySplit := strings.Contains(lower, "_fwd") || strings.Contains(lower, "_types") ||
			strings.Contains(lower, "_decl") || strings.Contains(lower, "_impl") ||
			strings.Contains(lower, "_internal") || strings.Contains(lower, "_detail")
		if alreadySplit {
			result.ItemsSkipped++
			continue
		}

		pattern := determineSplitPattern(header.Path, header.IncludingFiles)
		confidence := headerSplitConfidence(header.TotalParseTime, header.IncludingFiles, header.InclusionCount)
		priority := headerSplitPriority(header.TotalParseTime, header.IncludingFiles)
		savings := headerSplitSavings(header.TotalParseTime, header.IncludingFiles, pattern)

		desc := fmt.Sprintf("Header '%s' takes %dms to parse and is included by %d files",
			header.Path, header.TotalParseTime.Milliseconds(), header.IncludingFiles)
		if header.InclusionCount > header.IncludingFiles {
			desc += fmt.Sprintf(" (%d total inclusions)", header.InclusionCount)
		}
		desc += ". Splitting into smaller, focused headers can reduce compile times when files only need a subset of declarations."

		suggestion := domain.Suggestion{
			ID:          "split-" + filepath.Base(header.Path),
			Type:        domain.SuggestionHeaderSplit,
			Priority:    priority,
			Confidence:  confidence,
			Title:       "Consider splitting " + filepath.Base(header.Path),
			Description: desc,
			Rationale: "Large, frequently-included headers cause unnecessary parsing overhead. " +
				headerSplitRationaleSuffix(pattern),
			EstimatedSavings:    savings,
			ImplementationSteps: headerSplitImplementationSteps(header.Path, pattern),
			Caveats: []string{
				"Requires understanding of symbol dependencies between declarations",
				"May require updating include statements in many files",
				"Forward declarations cannot be used when full type is needed (sizeof, members)",
				"Split headers need to be kept in sync with main header",
				"IDE/tooling support may need reconfiguration",
			},
			Verification: "1. Create split headers incrementally, verifying compilation at each step\n" +
				"2. Use include-what-you-use (IWYU) to optimize includes in client code\n" +
				"3. Measure compile times before and after to verify improvement\n" +
				"4. Run full test suite to ensure no functionality changes",
			IsSafe: false,
			PrimaryTarget: domain.FileTarget{
				Path:   header.Path,
				Action: domain.ActionModify,
				Note:   "Split into smaller, focused headers",
			},
		}
		if ctx.Trace.TotalTime > 0 {
			suggestion.EstimatedSavingsPercent = 100.0 * float64(suggestion.EstimatedSavings) / float64(ctx.Trace.TotalTime)
		}

		result.Suggestions = append(result.Suggestions, suggestion)
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].EstimatedSavings > result.Suggestions[j].EstimatedSavings
	})

	return result, nil
}
