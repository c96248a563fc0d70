package suggest

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/gregorian-09/buildhotspot/domain"
)

const forwardDeclMinParseTime = 20 * time.Millisecond

var headerExtensions = map[string]bool{".h": true, ".hpp": true, ".hxx": true, ".H": true}

func isHeaderFile(path string) bool {
	return headerExtensions[filepath.Ext(path)]
}

// ForwardDeclSuggester recommends replacing a header #include with a
// forward declaration when the header is itself included from other
// headers.
type ForwardDeclSuggester struct{}

// NewForwardDeclSuggester returns a ready-to-use forward-declaration
// suggester.
func NewForwardDeclSuggester() *ForwardDeclSuggester { return &ForwardDeclSuggester{} }

func (s *ForwardDeclSuggester) Name() string { return "ForwardDeclaration" }

func forwardDeclPriority(parseTime domain.Duration, includerCount int) domain.Priority {
	parseMS := parseTime.Milliseconds()

	switch {
	case parseMS > 500 && includerCount >= 10:
		return domain.PriorityCritical
	case parseMS > 200 && includerCount >= 5:
		return domain.PriorityHigh
	case parseMS > 50:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func extractClassName(header string) string {
	stem := strings.TrimSuffix(filepath.Base(header), filepath.Ext(header))

	var b strings.Builder
	capitalizeNext := true
	for _, c := range stem {
		if c == '_' || c == '-' {
			capitalizeNext = true
			continue
		}
		if capitalizeNext && unicode.IsLetter(c) {
			b.WriteRune(unicode.ToUpper(c))
			capitalizeNext = false
		} else {
			b.WriteRune(c)
		}
	}
	return b.String()
}

func (s *ForwardDeclSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	headers := ctx.Analysis.Dependencies.Headers
	processed := make(map[string]bool)

	for _, header := range headers {
		result.ItemsAnalyzed++

		if !isHeaderFile(header.Path) {
			result.ItemsSkipped++
			continue
		}
		if header.TotalParseTime < forwardDeclMinParseTime {
			result.ItemsSkipped++
			continue
		}
		if len(header.IncludedBy) == 0 {
			result.ItemsSkipped++
			continue
		}
		if processed[header.Path] {
			result.ItemsSkipped++
			continue
		}
		processed[header.Path] = true

		for _, includer := range header.IncludedBy {
			if !isHeaderFile(includer) {
				continue
			}

			savingsPerFile := header.TotalParseTime / domain.Duration(header.InclusionCount)
			fwdDecl := "class " + extractClassName(header.Path) + ";"

			suggestion := domain.Suggestion{
				ID:         "fwd-" + filepath.Base(header.Path) + "-in-" + filepath.Base(includer),
				Type:       domain.SuggestionForwardDeclaration,
				Priority:   forwardDeclPriority(header.TotalParseTime, header.InclusionCount),
				Confidence: 0.6,
				Title: fmt.Sprintf("Use forward declaration for %s in %s",
					filepath.Base(header.Path), filepath.Base(includer)),
				Description: fmt.Sprintf(
					"Consider replacing #include \"%s\" with a forward declaration in header file %s. "+
						"This reduces compilation dependencies when only pointers/references are used.",
					header.Path, includer,
				),
				Rationale: "Forward declarations break include chains, reducing recompilation when headers change. " +
					"Use when types are only used by pointer/reference, not by value.",
				EstimatedSavings: savingsPerFile,
				ImplementationSteps: []string{
					"Replace #include with forward declaration",
					"Move #include to .cpp file if needed",
					"Use pointers/references instead of values",
					"Verify compilation succeeds",
				},
				Caveats: []string{
					"Only works when type is used by pointer/reference",
					"May require moving implementation to .cpp",
					"Cannot use with inline functions needing full type",
					"Cannot use with inheritance or member values",
				},
				Verification: "Compile the modified header to verify correctness",
				IsSafe:       false,
				PrimaryTarget: domain.FileTarget{
					Path:   includer,
					Action: domain.ActionModify,
					Note:   "Replace include with forward declaration",
				},
				BeforeCode: []domain.CodeSnippet{{File: includer, Code: "#include \"" + header.Path + "\""}},
				AfterCode:  []domain.CodeSnippet{{File: includer, Code: fwdDecl}},
			}
			if ctx.Trace.TotalTime > 0 {
				suggestion.EstimatedSavingsPercent = 100.0 * float64(suggestion.EstimatedSavings) / float64(ctx.Trace.TotalTime)
			}

			result.Suggestions = append(result.Suggestions, suggestion)
		}
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].EstimatedSavings > result.Suggestions[j].EstimatedSavings
	})

	return result, nil
}
