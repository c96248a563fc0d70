package suggest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gregorian-09/buildhotspot/domain"
)

// IncludeSuggester flags expensive headers as candidates for removal and,
// separately, for moving from a header's include list into its .cpp file.
type IncludeSuggester struct{}

// NewIncludeSuggester returns a ready-to-use include suggester.
func NewIncludeSuggester() *IncludeSuggester { return &IncludeSuggester{} }

func (s *IncludeSuggester) Name() string { return "IncludeRemoval" }

func isExpensiveHeader(header domain.HeaderAggregate) bool {
	return header.TotalParseTime.Milliseconds() > 100
}

func includePriority(savings domain.Duration, affectedFiles int) domain.Priority {
	savingsMS := savings.Milliseconds()

	switch {
	case savingsMS > 1000 && affectedFiles >= 20:
		return domain.PriorityCritical
	case savingsMS > 500 && affectedFiles >= 10:
		return domain.PriorityHigh
	case savingsMS > 100:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func looksRemovable(header domain.HeaderAggregate) bool {
	filename := filepath.Base(header.Path)
	if strings.Contains(filename, "fwd") || strings.Contains(filename, "forward") || strings.Contains(filename, "decl") {
		return false
	}
	return header.InclusionCount > header.IncludingFiles*2
}

func (s *IncludeSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	headers := ctx.Analysis.Dependencies.Headers
	files := ctx.Analysis.Files

	for _, header := range headers {
		result.ItemsAnalyzed++

		if !isExpensiveHeader(header) {
			result.ItemsSkipped++
			continue
		}

		if looksRemovable(header) {
			savings := header.TotalParseTime / 4

			suggestion := domain.Suggestion{
				ID:         "unused-" + filepath.Base(header.Path),
				Type:       domain.SuggestionIncludeRemoval,
				Priority:   includePriority(savings, header.IncludingFiles),
				Confidence: 0.5,
				Title:      "Review includes of " + filepath.Base(header.Path),
				Description: fmt.Sprintf(
					"Header '%s' is included %d times across %d files. Some includes may be unnecessary or could be moved to .cpp files.",
					header.Path, header.InclusionCount, header.IncludingFiles,
				),
				Rationale: "Removing unnecessary includes reduces preprocessing time and breaks dependency chains, " +
					"speeding up incremental builds.",
				EstimatedSavings: savings,
				ImplementationSteps: []string{
					"Run include-what-you-use (IWYU) or similar tool",
					"Remove includes that are not directly needed",
					"Move includes from .h to .cpp where possible",
					"Replace with forward declarations where applicable",
				},
				Caveats: []string{
					"Requires manual verification of actual usage",
					"May break builds if include is transitively required",
					"Consider using IWYU for accurate analysis",
				},
				Verification: "Compile all affected files after changes",
				IsSafe:       false,
				PrimaryTarget: domain.FileTarget{
					Path:   header.Path,
					Action: domain.ActionRemove,
					Note:   "Review and potentially remove include",
				},
			}
			if ctx.Trace.TotalTime > 0 {
				suggestion.EstimatedSavingsPercent = 100.0 * float64(suggestion.EstimatedSavings) / float64(ctx.Trace.TotalTime)
			}

			result.Suggestions = append(result.Suggestions, suggestion)
		}

		for _, file := range files {
			ext := filepath.Ext(file.File)
			if ext != ".h" && ext != ".hpp" {
				continue
			}

			included := false
			for _, includer := range header.IncludedBy {
				if includer == file.File {
					included = true
					break
				}
			}
			if !included {
				continue
			}

			suggestion := domain.Suggestion{
				ID:         "move-" + filepath.Base(header.Path) + "-from-" + filepath.Base(file.File),
				Type:       domain.SuggestionMoveToCpp,
				Priority:   domain.PriorityMedium,
				Confidence: 0.4,
				Title:      "Move " + filepath.Base(header.Path) + " include to .cpp",
				Description: fmt.Sprintf(
					"Consider moving #include \"%s\" from %s to its .cpp file to reduce header dependencies.",
					header.Path, filepath.Base(file.File),
				),
				Rationale: "Moving includes from headers to source files reduces compilation dependencies and " +
					"speeds up incremental builds.",
				EstimatedSavings: header.TotalParseTime / domain.Duration(header.InclusionCount+1),
				ImplementationSteps: []string{
					"Remove include from header file",
					"Add include to corresponding .cpp file",
					"Use forward declaration in header if needed",
				},
				Caveats: []string{
					"May require adding forward declaration",
					"Only works if type not used in header inline code",
				},
				IsSafe: false,
				PrimaryTarget: domain.FileTarget{
					Path:   file.File,
					Action: domain.ActionModify,
				},
			}

			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].EstimatedSavings > result.Suggestions[j].EstimatedSavings
	})

	return result, nil
}
