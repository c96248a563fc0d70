// Package app wires the parser registry, graph builder, aggregator, and
// suggester registry into the single entry point the CLI and MCP adapters
// both call.
package app

import (
	"log/slog"

	"github.com/gregorian-09/buildhotspot/domain"
	"github.com/gregorian-09/buildhotspot/internal/aggregate"
	"github.com/gregorian-09/buildhotspot/internal/anonymize"
	"github.com/gregorian-09/buildhotspot/internal/config"
	"github.com/gregorian-09/buildhotspot/internal/parsers"
	"github.com/gregorian-09/buildhotspot/internal/pool"
	"github.com/gregorian-09/buildhotspot/internal/suggest"
)

// AnalyzeRequest is the input to AnalyzeUseCase.Run.
type AnalyzeRequest struct {
	// Root is the directory to search for trace files.
	Root string
	// Recursive controls whether Root is walked recursively.
	Recursive bool
	// Anonymize, when true, strips paths and commit info from the result
	// before returning it: the parsed units are anonymized before
	// aggregation, so Trace, Analysis and Suggestions all carry the
	// substitute paths. ParseErrors are returned unchanged.
	Anonymize bool
}

// AnalyzeResponse is the output of AnalyzeUseCase.Run.
type AnalyzeResponse struct {
	Trace       domain.BuildTrace
	Analysis    domain.AnalysisResult
	Suggestions []domain.Suggestion
	ParseErrors []error
}

// AnalyzeUseCase orchestrates one end-to-end hotspot analysis: collect trace
// files, parse them in parallel, build the dependency graph, optionally
// anonymize it and the parsed units, aggregate, and run every registered
// suggester.
type AnalyzeUseCase struct {
	cfg        *config.Config
	parsers    *parsers.Registry
	suggesters *suggest.Registry
	logger     *slog.Logger
}

// NewAnalyzeUseCase builds a use case from cfg, using the package-wide
// parser and suggester registries.
func NewAnalyzeUseCase(cfg *config.Config, logger *slog.Logger) *AnalyzeUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AnalyzeUseCase{
		cfg:        cfg,
		parsers:    parsers.RegisterAll(),
		suggesters: suggest.RegisterAll(),
		logger:     logger,
	}
}

// Run executes the analysis described by req.
func (uc *AnalyzeUseCase) Run(req AnalyzeRequest) (AnalyzeResponse, error) {
	if req.Root == "" {
		return AnalyzeResponse{}, domain.NewInvalidArgumentError("root directory is required")
	}

	paths, err := parsers.CollectTraceFiles(uc.parsers, req.Root, req.Recursive)
	if err != nil {
		return AnalyzeResponse{}, domain.NewIOError("collecting trace files", err)
	}
	uc.logger.Info("collected trace files", "count", len(paths), "root", req.Root)

	workers := uc.cfg.Pool.Workers
	p := pool.New(workers)
	defer p.Close()

	units, parseErrs := parsers.ParseTraceFiles(uc.parsers, p, paths)
	uc.logger.Info("parsed trace files", "units", len(units), "errors", len(parseErrs))

	depGraph := buildDependencyGraph(units)

	trace := domain.BuildTrace{
		CompilationUnits: units,
		DependencyGraph:  depGraph,
	}

	if req.Anonymize {
		anonymizer := anonymize.New(anonymizerConfig(uc.cfg.Anonymizer))
		trace = anonymizer.AnonymizeTrace(trace)
	}

	analysis := aggregate.Build(trace.CompilationUnits, trace.DependencyGraph, aggregate.Options{})
	trace.Metrics = analysis.Metrics
	trace.TotalTime = analysis.TotalTime

	suggestions := uc.runSuggesters(trace, analysis)

	return AnalyzeResponse{
		Trace:       trace,
		Analysis:    analysis,
		Suggestions: suggestions,
		ParseErrors: parseErrs,
	}, nil
}

func (uc *AnalyzeUseCase) runSuggesters(trace domain.BuildTrace, analysis domain.AnalysisResult) []domain.Suggestion {
	ctx := domain.Context{
		Trace:    &trace,
		Analysis: &analysis,
	}
	results := uc.suggesters.RunAll(ctx)
	for _, r := range results {
		if r.Err != nil {
			uc.logger.Warn("suggester failed", "name", r.Name, "error", r.Err)
		}
	}
	return suggest.Dedupe(results)
}

// buildDependencyGraph assembles the canonical graph from each unit's
// observed includes, adding one node per source/header and one edge per
// include relationship.
func buildDependencyGraph(units []domain.CompilationUnit) *domain.DependencyGraph {
	g := domain.NewDependencyGraph()
	for _, u := range units {
		g.AddNode(u.SourceFile)
		for _, inc := range u.Includes {
			g.AddNode(inc.Header)
			g.AddEdge(u.SourceFile, domain.DependencyEdge{
				Target: inc.Header,
				Kind:   domain.EdgeDirectInclude,
				Weight: float64(inc.ParseTime),
			})
		}
	}
	return g
}

func anonymizerConfig(c config.AnonymizerConfig) anonymize.Config {
	return anonymize.Config{
		AnonymizePaths:             c.AnonymizePaths,
		AnonymizeCommitInfo:        c.AnonymizeCommitInfo,
		PreserveExtensions:         c.PreserveExtensions,
		PreserveDirectoryStructure: c.PreserveDirectoryStructure,
		ReplacementRoot:            c.ReplacementRoot,
		PreservePatterns:           c.PreservePatterns,
	}
}
