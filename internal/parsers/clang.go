package parsers

import (
	"encoding/json"
	"sort"
	"strconv"
	"strings"

	"github.com/gregorian-09/buildhotspot/domain"
)

const clangTraceMarker = "traceEvents"

// ClangParser decodes Chrome-trace JSON produced by -ftime-trace.
type ClangParser struct{}

// NewClangParser returns a ready-to-use Clang trace parser.
func NewClangParser() *ClangParser { return &ClangParser{} }

func (p *ClangParser) Name() string                   { return "Clang" }
func (p *ClangParser) CompilerType() domain.CompilerType { return domain.CompilerClang }
func (p *ClangParser) SupportedExtensions() []string  { return []string{".json"} }

func (p *ClangParser) CanParse(path string) bool {
	content, err := readFile(path)
	if err != nil {
		return false
	}
	return p.CanParseContent(content)
}

func (p *ClangParser) CanParseContent(content []byte) bool {
	return strings.Contains(string(content), clangTraceMarker)
}

func (p *ClangParser) ParseFile(path string) (domain.CompilationUnit, error) {
	content, err := readFile(path)
	if err != nil {
		return domain.CompilationUnit{}, err
	}

	hint := path
	if strings.HasSuffix(strings.ToLower(hint), ".json") {
		hint = hint[:len(hint)-len(".json")]
	}

	return p.ParseContent(content, hint)
}

type clangTraceEvent struct {
	Name     string                 `json:"name"`
	Category string                 `json:"cat"`
	Phase    string                 `json:"ph"`
	Ts       float64                `json:"ts"`
	Dur      float64                `json:"dur"`
	Args     map[string]interface{} `json:"args"`
}

func (e clangTraceEvent) detail() string {
	if v, ok := e.Args["detail"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (e clangTraceEvent) file() string {
	if v, ok := e.Args["file"]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func (e clangTraceEvent) line() int {
	if v, ok := e.Args["line"]; ok {
		switch n := v.(type) {
		case float64:
			return int(n)
		case string:
			if i, err := strconv.Atoi(n); err == nil {
				return i
			}
		}
	}
	return 0
}

func microsToDuration(us float64) domain.Duration {
	return domain.Duration(us * 1000)
}

func (p *ClangParser) ParseContent(content []byte, sourceHint string) (domain.CompilationUnit, error) {
	var trace struct {
		TraceEvents []clangTraceEvent `json:"traceEvents"`
	}
	if err := json.Unmarshal(content, &trace); err != nil {
		return domain.CompilationUnit{}, domain.NewParseError("failed to parse clang trace JSON", err.Error())
	}
	if trace.TraceEvents == nil {
		return domain.CompilationUnit{}, domain.NewParseError("invalid clang trace format", "missing traceEvents array")
	}

	unit := domain.CompilationUnit{}

	if detected := extractClangSourceFile(trace.TraceEvents); detected != "" {
		unit.SourceFile = detected
	} else {
		unit.SourceFile = sourceHint
	}

	unit.Templates = processClangTemplateEvents(trace.TraceEvents)
	unit.Includes = processClangIncludeEvents(trace.TraceEvents)
	unit.Metrics = calculateClangMetrics(trace.TraceEvents)
	unit.Metrics.DirectIncludes = len(unit.Includes)

	return unit, nil
}

func isClangSourceFile(path string) bool {
	idx := strings.LastIndex(path, ".")
	if idx < 0 {
		return false
	}
	switch path[idx:] {
	case ".c", ".cc", ".cpp", ".cxx", ".C", ".CC", ".CPP", ".CXX":
		return true
	}
	return false
}

func extractClangSourceFile(events []clangTraceEvent) string {
	for _, e := range events {
		if (e.Name == "ExecuteCompiler" || e.Name == "Total ExecuteCompiler") && e.detail() != "" {
			return e.detail()
		}
	}

	for _, e := range events {
		if e.Name == "ParseDeclarationOrFunctionDefinition" && e.detail() != "" {
			if colon := strings.Index(e.detail(), ":"); colon >= 0 {
				if file := e.detail()[:colon]; isClangSourceFile(file) {
					return file
				}
			}
		}
	}

	for _, e := range events {
		if e.Name == "Source" && e.detail() != "" && isClangSourceFile(e.detail()) {
			return e.detail()
		}
	}

	return ""
}

func processClangTemplateEvents(events []clangTraceEvent) []domain.TemplateInstantiation {
	byDetail := make(map[string]*domain.TemplateInstantiation)
	var order []string

	for _, e := range events {
		if e.Name != "InstantiateClass" && e.Name != "InstantiateFunction" &&
			e.Name != "CodeGen Function" && !strings.HasPrefix(e.Name, "Instantiate") {
			continue
		}

		tmpl, ok := byDetail[e.detail()]
		if !ok {
			tmpl = &domain.TemplateInstantiation{
				Name:          e.Name,
				FullSignature: e.detail(),
			}
			if e.file() != "" {
				tmpl.Location = domain.Location{File: e.file(), Line: e.line()}
			}
			byDetail[e.detail()] = tmpl
			order = append(order, e.detail())
		}

		tmpl.Time += microsToDuration(e.Dur)
		tmpl.Count++
	}

	out := make([]domain.TemplateInstantiation, 0, len(order))
	for _, d := range order {
		out = append(out, *byDetail[d])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Time > out[j].Time })
	return out
}

func processClangIncludeEvents(events []clangTraceEvent) []domain.IncludeInfo {
	byDetail := make(map[string]*domain.IncludeInfo)
	var order []string

	for _, e := range events {
		if e.Name != "Source" || e.detail() == "" {
			continue
		}
		info, ok := byDetail[e.detail()]
		if !ok {
			info = &domain.IncludeInfo{Header: e.detail()}
			byDetail[e.detail()] = info
			order = append(order, e.detail())
		}
		info.ParseTime += microsToDuration(e.Dur)
	}

	out := make([]domain.IncludeInfo, 0, len(order))
	for _, d := range order {
		out = append(out, *byDetail[d])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].ParseTime > out[j].ParseTime })
	return out
}

func calculateClangMetrics(events []clangTraceEvent) domain.Metrics {
	var m domain.Metrics
	var frontend, backend domain.Duration

	for _, e := range events {
		dur := microsToDuration(e.Dur)

		switch {
		case e.Name == "Total ExecuteCompiler" || e.Name == "ExecuteCompiler":
			m.TotalTime = dur
		case e.Name == "Total Frontend":
			frontend = dur
		case e.Name == "Total Backend":
			backend = dur
		case e.Name == "Total Source":
			m.Breakdown.Preprocessing += dur
		case e.Name == "Total ParseClass" || e.Name == "ParseClass":
			m.Breakdown.Parsing += dur
		case e.Name == "Total PerformPendingInstantiations" || strings.HasPrefix(e.Name, "Total Instantiate"):
			m.Breakdown.TemplateInstantiation += dur
		case e.Name == "Total CodeGen Function" || e.Name == "Total PerFunctionPasses":
			m.Breakdown.CodeGeneration += dur
		case e.Name == "Total OptModule" || e.Name == "Total RunLoopPass" || e.Name == "Total OptFunction":
			m.Breakdown.Optimization += dur
		}
	}

	m.FrontendTime = frontend
	m.BackendTime = backend

	if m.TotalTime == 0 && frontend != 0 {
		m.TotalTime = frontend + backend
	}

	return m
}
