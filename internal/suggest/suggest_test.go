package suggest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregorian-09/buildhotspot/domain"
)

func TestPCHSuggester_ScenarioOne(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{TotalTime: 10 * time.Second},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "common.h",
					TotalParseTime: 500 * time.Millisecond,
					InclusionCount: 20,
					IncludingFiles: 15,
				}},
			},
		},
	}

	result, err := NewPCHSuggester().Suggest(ctx)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)

	s := result.Suggestions[0]
	assert.Equal(t, domain.SuggestionPCHOptimization, s.Type)
	assert.Equal(t, 475*time.Millisecond, s.EstimatedSavings)
	assert.Equal(t, domain.PriorityHigh, s.Priority)
	assert.Equal(t, 0.8, s.Confidence)
}

func TestPCHSuggester_SkipsStdLikeHeaders(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "stdvector",
					TotalParseTime: 500 * time.Millisecond,
					InclusionCount: 20,
					IncludingFiles: 15,
				}},
			},
		},
	}

	result, err := NewPCHSuggester().Suggest(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
	assert.Equal(t, 1, result.ItemsSkipped)
}

func TestTemplateSuggester_ScenarioTwo(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{TotalTime: 10 * time.Second},
		Analysis: &domain.AnalysisResult{
			Templates: domain.TemplateAnalysis{
				Templates: []domain.TemplateAggregate{{
					Name:               "Widget",
					FullSignature:      "app::Widget<int>",
					TotalTime:          500 * time.Millisecond,
					InstantiationCount: 20,
					FilesUsing:         []string{"a.cpp", "b.cpp"},
				}},
			},
		},
	}

	result, err := NewTemplateSuggester().Suggest(ctx)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, 475*time.Millisecond, result.Suggestions[0].EstimatedSavings)
}

func TestTemplateSuggester_SkipsStandardLibraryTemplates(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Templates: domain.TemplateAnalysis{
				Templates: []domain.TemplateAggregate{{
					FullSignature:      "std::vector<int>",
					TotalTime:          500 * time.Millisecond,
					InstantiationCount: 20,
				}},
			},
		},
	}

	result, err := NewTemplateSuggester().Suggest(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
}

func TestForwardDeclSuggester_SkipsNonHeaderIncluders(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "widget.h",
					TotalParseTime: 100 * time.Millisecond,
					InclusionCount: 5,
					IncludedBy:     []string{"main.cpp"},
				}},
			},
		},
	}

	result, err := NewForwardDeclSuggester().Suggest(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
}

func TestForwardDeclSuggester_SuggestsForHeaderIncluders(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "widget.h",
					TotalParseTime: 100 * time.Millisecond,
					InclusionCount: 5,
					IncludedBy:     []string{"app.h"},
				}},
			},
		},
	}

	result, err := NewForwardDeclSuggester().Suggest(ctx)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, domain.SuggestionForwardDeclaration, result.Suggestions[0].Type)
}

func TestIncludeSuggester_RemovalAndMoveToCpp(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Files: []domain.FileSummary{{File: "app.h"}},
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "heavy.h",
					TotalParseTime: 200 * time.Millisecond,
					InclusionCount: 10,
					IncludingFiles: 3,
					IncludedBy:     []string{"app.h"},
				}},
			},
		},
	}

	result, err := NewIncludeSuggester().Suggest(ctx)
	require.NoError(t, err)

	var sawRemoval, sawMove bool
	for _, s := range result.Suggestions {
		switch s.Type {
		case domain.SuggestionIncludeRemoval:
			sawRemoval = true
		case domain.SuggestionMoveToCpp:
			sawMove = true
		}
	}
	assert.True(t, sawRemoval)
	assert.True(t, sawMove)
}

func TestHeaderSplitSuggester_SkipsAlreadySplitHeaders(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "widget_fwd.h",
					TotalParseTime: 300 * time.Millisecond,
					InclusionCount: 10,
					IncludingFiles: 10,
				}},
			},
		},
	}

	result, err := NewHeaderSplitSuggester().Suggest(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
}

func TestHeaderSplitSuggester_ConfidenceBounded(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{TotalTime: time.Second},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "core.h",
					TotalParseTime: 2 * time.Second,
					InclusionCount: 100,
					IncludingFiles: 60,
				}},
			},
		},
	}

	result, err := NewHeaderSplitSuggester().Suggest(ctx)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.GreaterOrEqual(t, result.Suggestions[0].Confidence, 0.3)
	assert.LessOrEqual(t, result.Suggestions[0].Confidence, 0.95)
}

func TestPIMPLSuggester_SkipsAlreadyPimplNamedFiles(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Files: []domain.FileSummary{{
				File:         "widget_impl.cpp",
				CompileTime:  2 * time.Second,
				FrontendTime: time.Second,
				IncludeCount: 5,
			}},
		},
	}

	result, err := NewPIMPLSuggester().Suggest(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
}

func TestPIMPLSuggester_SuggestsForHeavyFrontendFile(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{TotalTime: 10 * time.Second},
		Analysis: &domain.AnalysisResult{
			Files: []domain.FileSummary{{
				File:         "widget.cpp",
				CompileTime:  3 * time.Second,
				FrontendTime: 2 * time.Second,
				BackendTime:  time.Second,
				IncludeCount: 12,
			}},
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:       "widget.h",
					IncludedBy: []string{"a.cpp", "b.cpp", "c.cpp"},
				}},
			},
		},
	}

	result, err := NewPIMPLSuggester().Suggest(ctx)
	require.NoError(t, err)
	require.Len(t, result.Suggestions, 1)
	assert.Equal(t, domain.SuggestionPIMPLPattern, result.Suggestions[0].Type)
	assert.Equal(t, "widget.h", result.Suggestions[0].SecondaryTargets[0].Path)
}

func TestUnityBuildSuggester_ClustersSimilarFilesInSameDirectory(t *testing.T) {
	mkFile := func(name string) domain.FileSummary {
		return domain.FileSummary{File: "widgets/" + name, CompileTime: time.Second, LinesOfCode: 100}
	}

	ctx := domain.Context{
		Trace: &domain.BuildTrace{TotalTime: 10 * time.Second},
		Analysis: &domain.AnalysisResult{
			Files: []domain.FileSummary{mkFile("a.cpp"), mkFile("b.cpp"), mkFile("c.cpp")},
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:       "common.h",
					IncludedBy: []string{"widgets/a.cpp", "widgets/b.cpp", "widgets/c.cpp"},
				}},
			},
		},
	}

	result, err := NewUnityBuildSuggester().Suggest(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, result.Suggestions)
	assert.Equal(t, domain.SuggestionUnityBuild, result.Suggestions[0].Type)
	assert.GreaterOrEqual(t, len(result.Suggestions[0].SecondaryTargets), 2)
}

func TestUnityBuildSuggester_NoGroupsBelowTwoFilesPerDirectory(t *testing.T) {
	ctx := domain.Context{
		Trace: &domain.BuildTrace{},
		Analysis: &domain.AnalysisResult{
			Files: []domain.FileSummary{
				{File: "a/one.cpp", CompileTime: time.Second},
				{File: "b/two.cpp", CompileTime: time.Second},
			},
		},
	}

	result, err := NewUnityBuildSuggester().Suggest(ctx)
	require.NoError(t, err)
	assert.Empty(t, result.Suggestions)
}

func TestRegistry_RunAllAndDedupe(t *testing.T) {
	r := RegisterAll()
	ctx := domain.Context{
		Trace: &domain.BuildTrace{TotalTime: 10 * time.Second},
		Analysis: &domain.AnalysisResult{
			Dependencies: domain.DependencyAnalysis{
				Headers: []domain.HeaderAggregate{{
					Path:           "common.h",
					TotalParseTime: 500 * time.Millisecond,
					InclusionCount: 20,
					IncludingFiles: 15,
				}},
			},
		},
	}

	results := r.RunAll(ctx)
	assert.Len(t, results, 7)

	suggestions := Dedupe(results)
	for i := 1; i < len(suggestions); i++ {
		assert.GreaterOrEqual(t, suggestions[i-1].EstimatedSavings, suggestions[i].EstimatedSavings)
	}
	for _, s := range suggestions {
		assert.GreaterOrEqual(t, s.Confidence, 0.0)
		assert.LessOrEqual(t, s.Confidence, 1.0)
	}
}
