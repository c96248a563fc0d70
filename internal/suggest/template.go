package suggest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	templateMinInstantiationCount = 3
	templateMinTotalTime          = 50 * time.Millisecond
)

// TemplateSuggester recommends explicit template instantiation for
// templates that are instantiated repeatedly across translation units.
type TemplateSuggester struct{}

// NewTemplateSuggester returns a ready-to-use template suggester.
func NewTemplateSuggester() *TemplateSuggester { return &TemplateSuggester{} }

func (s *TemplateSuggester) Name() string { return "ExplicitTemplate" }

func templatePriority(tmpl domain.TemplateAggregate, totalBuildTime domain.Duration) domain.Priority {
	timeMS := tmpl.TotalTime.Milliseconds()

	var timeRatio float64
	if totalBuildTime > 0 {
		timeRatio = float64(tmpl.TotalTime) / float64(totalBuildTime)
	}

	switch {
	case timeMS > 5000 && tmpl.InstantiationCount >= 50:
		return domain.PriorityCritical
	case timeMS > 1000 && tmpl.InstantiationCount >= 20:
		return domain.PriorityHigh
	case timeRatio > 0.01:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func templateShortName(fullSignature string) string {
	angle := strings.Index(fullSignature, "<")
	if angle < 0 {
		return fullSignature
	}
	if colon := strings.LastIndex(fullSignature[:angle], "::"); colon >= 0 {
		return fullSignature[colon+2 : angle]
	}
	return fullSignature[:angle]
}

func (s *TemplateSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	templates := ctx.Analysis.Templates.Templates
	if len(templates) == 0 {
		return result, nil
	}

	for _, tmpl := range templates {
		result.ItemsAnalyzed++

		if tmpl.InstantiationCount < templateMinInstantiationCount {
			result.ItemsSkipped++
			continue
		}
		if tmpl.TotalTime < templateMinTotalTime {
			result.ItemsSkipped++
			continue
		}

		name := tmpl.FullSignature
		if name == "" {
			name = tmpl.Name
		}

		if strings.HasPrefix(name, "std::") || strings.HasPrefix(name, "testing::") {
			result.ItemsSkipped++
			continue
		}

		shortName := templateShortName(name)
		savings := tmpl.TotalTime * domain.Duration(tmpl.InstantiationCount-1) / domain.Duration(tmpl.InstantiationCount)

		explicitInst := "template class " + name + ";"
		externTmpl := "extern template class " + name + ";"

		suggestion := domain.Suggestion{
			ID:         "template-" + strconv.Itoa(result.ItemsAnalyzed),
			Type:       domain.SuggestionExplicitTemplate,
			Priority:   templatePriority(tmpl, ctx.Trace.TotalTime),
			Confidence: 0.7,
			Title:      "Add explicit instantiation for " + shortName,
			Description: fmt.Sprintf(
				"Template '%s' is instantiated %d times with total time of %dms. Using explicit instantiation eliminates redundant instantiations.",
				name, tmpl.InstantiationCount, tmpl.TotalTime.Milliseconds(),
			),
			Rationale: "Explicit template instantiation forces the compiler to instantiate a template in a single translation unit, " +
				"while extern template prevents duplicate instantiations in other units.",
			EstimatedSavings: savings,
			ImplementationSteps: []string{
				"Create template_instantiations.cpp (or similar)",
				"Add explicit instantiation: " + explicitInst,
				"Add extern template in header: " + externTmpl,
				"Rebuild and verify link succeeds",
			},
			Caveats: []string{
				"Requires identifying all type arguments used",
				"Must instantiate for each combination of template arguments",
				"Header users must see extern template before implicit use",
			},
			Verification: "Check that total template time decreases in next trace",
			IsSafe:       true,
			PrimaryTarget: domain.FileTarget{
				Path:   "template_instantiations.cpp",
				Action: domain.ActionCreate,
				Note:   "Create file for explicit instantiations",
			},
			BeforeCode: []domain.CodeSnippet{{Code: "// Implicit instantiation in each TU"}},
			AfterCode: []domain.CodeSnippet{{
				Code: "// In template_instantiations.cpp:\n" + explicitInst +
					"\n\n// In header or using files:\n" + externTmpl,
			}},
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
