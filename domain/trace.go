package domain

import "time"

// Duration is a monotonic, non-negative span of compile time. All durations
// in the model are nanosecond counts; a negative Duration never appears in
// values produced by this package.
type Duration = time.Duration

// CompilerType tags the compiler family a parser understands.
type CompilerType string

const (
	CompilerClang       CompilerType = "clang"
	CompilerGCC         CompilerType = "gcc"
	CompilerMSVC        CompilerType = "msvc"
	CompilerIntelClassic CompilerType = "intel-classic"
	CompilerIntelOneAPI CompilerType = "intel-oneapi"
	CompilerNVCC        CompilerType = "nvcc"
)

// BuildSystemHint is optional provenance a driver may attach to a
// CompilationUnit identifying which build system produced it. Supplements
// the build-system drivers themselves stay external, but the tag
// they attach is part of the data contract so aggregation can bucket by it.
type BuildSystemHint string

const (
	BuildSystemUnknown BuildSystemHint = ""
	BuildSystemCMake   BuildSystemHint = "cmake"
	BuildSystemNinja   BuildSystemHint = "ninja"
	BuildSystemMake    BuildSystemHint = "make"
	BuildSystemMSVC    BuildSystemHint = "msvc"
)

// Breakdown buckets time spent in named compiler phases. Any subset may be
// zero; the sum need not equal Metrics.TotalTime since parsers only report
// what they observe.
type Breakdown struct {
	Preprocessing        Duration
	Parsing              Duration
	SemanticAnalysis     Duration
	TemplateInstantiation Duration
	CodeGeneration       Duration
	Optimization         Duration
}

// Metrics holds the timing summary for one compilation unit.
type Metrics struct {
	TotalTime      Duration
	FrontendTime   Duration
	BackendTime    Duration
	Breakdown      Breakdown
	DirectIncludes int
}

// Location pinpoints a line in a source or header file.
type Location struct {
	File string
	Line int
}

// TemplateInstantiation is one template instantiation observed while
// compiling a unit, with cumulative time and count across merges of the
// same full signature within that unit.
type TemplateInstantiation struct {
	Name          string
	FullSignature string
	Location      Location
	Time          Duration
	Count         int
}

// IncludeInfo is the cumulative parse time spent on one header as included
// by a single compilation unit.
type IncludeInfo struct {
	Header    string
	ParseTime Duration
}

// CompilationUnit is what a parser produces from a single trace file: the
// source file it describes, its metrics, and the templates/includes it
// observed, already sorted by time descending.
type CompilationUnit struct {
	SourceFile  string
	Metrics     Metrics
	Templates   []TemplateInstantiation
	Includes    []IncludeInfo
	BuildSystem BuildSystemHint
}

// Validate reports whether the unit satisfies the cross-field invariants
// It never mutates the unit; it exists for tests and
// defensive assertions, not for rejecting parser output.
func (u CompilationUnit) Validate(epsilon Duration) bool {
	if u.Metrics.FrontendTime > 0 && u.Metrics.BackendTime > 0 && u.Metrics.TotalTime > 0 {
		if u.Metrics.FrontendTime+u.Metrics.BackendTime > u.Metrics.TotalTime+epsilon {
			return false
		}
	}
	return true
}
