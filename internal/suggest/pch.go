package suggest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	pchMinInclusionCount = 5
	pchMinParseTime      = 100 * time.Millisecond
)

// PCHSuggester recommends headers for inclusion in a precompiled header,
// based on inclusion count and aggregate parse time.
type PCHSuggester struct{}

// NewPCHSuggester returns a ready-to-use PCH suggester.
func NewPCHSuggester() *PCHSuggester { return &PCHSuggester{} }

func (s *PCHSuggester) Name() string { return "PCH" }

func pchPriority(header domain.HeaderAggregate, totalBuildTime domain.Duration) domain.Priority {
	var timeRatio float64
	if totalBuildTime > 0 {
		timeRatio = float64(header.TotalParseTime) / float64(totalBuildTime)
	}

	switch {
	case header.InclusionCount >= 50 && timeRatio > 0.05:
		return domain.PriorityCritical
	case header.InclusionCount >= 20 && timeRatio > 0.02:
		return domain.PriorityHigh
	case header.InclusionCount >= 10:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func isStdLikeHeader(path string) bool {
	filename := filepath.Base(path)
	return !strings.Contains(filename, ".") || strings.HasPrefix(filename, "std")
}

func (s *PCHSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	headers := ctx.Analysis.Dependencies.Headers
	if len(headers) == 0 {
		return result, nil
	}

	for _, header := range headers {
		result.ItemsAnalyzed++

		if header.InclusionCount < pchMinInclusionCount {
			result.ItemsSkipped++
			continue
		}
		if header.TotalParseTime < pchMinParseTime {
			result.ItemsSkipped++
			continue
		}
		if isStdLikeHeader(header.Path) {
			result.ItemsSkipped++
			continue
		}

		savingsPerUnit := header.TotalParseTime / domain.Duration(header.InclusionCount)
		savings := savingsPerUnit * domain.Duration(header.InclusionCount-1)

		suggestion := domain.Suggestion{
			ID:         "pch-" + filepath.Base(header.Path),
			Type:       domain.SuggestionPCHOptimization,
			Priority:   pchPriority(header, ctx.Trace.TotalTime),
			Confidence: 0.8,
			Title:      fmt.Sprintf("Add %s to precompiled header", filepath.Base(header.Path)),
			Description: fmt.Sprintf(
				"Header '%s' is included in %d files with total parse time of %dms. Adding to PCH would parse it only once.",
				header.Path, header.InclusionCount, header.TotalParseTime.Milliseconds(),
			),
			Rationale: "Precompiled headers cache the parsed AST, eliminating redundant parsing across translation units.",
			EstimatedSavings: savings,
			ImplementationSteps: []string{
				"Create or modify pch.h",
				"Add #include \"" + header.Path + "\"",
				"Configure build system for PCH",
				"Remove explicit includes from source files (optional)",
			},
			Caveats: []string{
				"PCH increases incremental build time when modified",
				"Ensure header is stable and rarely changes",
				"May increase memory usage during compilation",
			},
			Verification: "Rebuild and compare total compilation time",
			IsSafe:       true,
			PrimaryTarget: domain.FileTarget{
				Path:   "pch.h",
				Action: domain.ActionModify,
				Note:   "Add include to precompiled header",
			},
			BeforeCode: []domain.CodeSnippet{{File: "source.cpp", Code: "#include \"" + header.Path + "\""}},
			AfterCode:  []domain.CodeSnippet{{File: "pch.h", Code: "#include \"" + header.Path + "\""}},
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
