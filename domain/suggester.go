package domain

// Context is the input handed to every Suggester.Suggest call.
type Context struct {
	Trace    *BuildTrace
	Analysis *AnalysisResult
	Options  SuggesterOptions
}

// Suggester is one heuristic analyzer producing Suggestions from an
// AnalysisResult. Each suggester runs independently; one suggester's failure
// never blocks the others (see internal/suggest.Registry.RunAll).
type Suggester interface {
	Name() string
	Suggest(ctx Context) (SuggestionResult, error)
}

// BuildTrace is the input trace model passed through to suggesters and,
// optionally, to external exporters. It is a thin envelope around the
// compilation units and the dependency graph assembled from them.
type BuildTrace struct {
	CompilationUnits []CompilationUnit
	DependencyGraph  *DependencyGraph
	Metrics          MetricsSummary
	TotalTime        Duration
	CommitSHA        string
	Branch           string
}
