package domain

// FileSummary is the per-compilation-unit rollup feeding AnalysisResult.Files.
type FileSummary struct {
	File          string
	CompileTime   Duration
	FrontendTime  Duration
	BackendTime   Duration
	IncludeCount  int
	TemplateCount int
	LinesOfCode   int
	BuildSystem   BuildSystemHint
}

// TemplateAggregate accumulates one template's stats across all compilation
// units that instantiated it.
type TemplateAggregate struct {
	Name               string
	FullSignature      string
	TotalTime          Duration
	InstantiationCount int
	FilesUsing         []string
}

// TemplateAnalysis is the aggregated template view of AnalysisResult.
type TemplateAnalysis struct {
	Templates []TemplateAggregate
}

// HeaderAggregate accumulates one header's stats across all including files.
type HeaderAggregate struct {
	Path            string
	TotalParseTime  Duration
	InclusionCount  int
	IncludingFiles  int
	IncludedBy      []string
}

// DependencyAnalysis is the aggregated header/include view of AnalysisResult.
type DependencyAnalysis struct {
	Headers []HeaderAggregate
}

// SymbolInfo is a flat symbol record used by the unity-build suggester to
// infer linkage heuristically.
type SymbolInfo struct {
	Name      string
	DefinedIn string
}

// SymbolAnalysis is the aggregated symbol view of AnalysisResult.
type SymbolAnalysis struct {
	Symbols []SymbolInfo
}

// SlowFile names one entry of MetricsSummary.TopSlowFiles.
type SlowFile struct {
	File        string
	CompileTime Duration
}

// MetricsSummary is the scalar rollup of AnalysisResult.
type MetricsSummary struct {
	TotalFilesCompiled     int
	AverageFileTime        Duration
	MedianFileTime         Duration
	P95FileTime            Duration
	P99FileTime            Duration
	TotalDependencies      int
	AvgIncludeDepth        float64
	MaxIncludeDepth        int
	CircularDependencyCount int
	TopSlowFiles           []SlowFile
}

// AnalysisResult is the aggregated cross-unit model that every suggester
// consumes.
type AnalysisResult struct {
	Files        []FileSummary
	Templates    TemplateAnalysis
	Dependencies DependencyAnalysis
	Symbols      SymbolAnalysis
	Metrics      MetricsSummary
	TotalTime    Duration
}
