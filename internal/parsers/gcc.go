package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gregorian-09/buildhotspot/domain"
)

const gccTimeHeader = "Time variable"

// GCCParser decodes -ftime-report phase tables. Phase names come from
// gcc's own timevar.def.
type GCCParser struct{}

// NewGCCParser returns a ready-to-use GCC time-report parser.
func NewGCCParser() *GCCParser { return &GCCParser{} }

func (p *GCCParser) Name() string                      { return "GCC" }
func (p *GCCParser) CompilerType() domain.CompilerType { return domain.CompilerGCC }
func (p *GCCParser) SupportedExtensions() []string     { return []string{".txt", ".log", ".report"} }

func (p *GCCParser) CanParse(path string) bool {
	content, err := readFile(path)
	if err != nil {
		return false
	}
	return p.CanParseContent(content)
}

func (p *GCCParser) CanParseContent(content []byte) bool {
	s := string(content)
	return strings.Contains(s, gccTimeHeader) &&
		strings.Contains(s, "usr") &&
		strings.Contains(s, "sys") &&
		strings.Contains(s, "wall")
}

func (p *GCCParser) ParseFile(path string) (domain.CompilationUnit, error) {
	content, err := readFile(path)
	if err != nil {
		return domain.CompilationUnit{}, err
	}
	return p.ParseContent(content, replaceExt(path, ".cpp"))
}

var gccTimeRegex = regexp.MustCompile(`(\d+\.\d+)\s*\([^)]*\)`)

type gccTimingLine struct {
	phaseName string
	userTime  domain.Duration
	sysTime   domain.Duration
	wallTime  domain.Duration
}

func parseGCCTimingLine(line string) (gccTimingLine, bool) {
	trimmed := strings.TrimSpace(line)

	if !strings.HasPrefix(trimmed, "phase ") && !strings.Contains(trimmed, ":") {
		return gccTimingLine{}, false
	}

	colon := strings.Index(trimmed, ":")
	if colon < 0 {
		return gccTimingLine{}, false
	}

	result := gccTimingLine{phaseName: strings.TrimSpace(trimmed[:colon])}
	timesPart := trimmed[colon+1:]

	matches := gccTimeRegex.FindAllStringSubmatch(timesPart, -1)
	times := make([]float64, 0, len(matches))
	for _, m := range matches {
		v, _ := strconv.ParseFloat(m[1], 64)
		times = append(times, v)
	}

	if len(times) > 0 {
		result.userTime = secondsToDuration(times[0])
	}
	if len(times) >= 2 {
		result.sysTime = secondsToDuration(times[1])
	}
	if len(times) >= 3 {
		result.wallTime = secondsToDuration(times[2])
	}

	return result, true
}

func mapGCCPhaseToBreakdown(timing gccTimingLine, breakdown *domain.Breakdown) {
	name := timing.phaseName

	switch name {
	case "phase parsing":
		breakdown.Parsing += timing.wallTime
	case "phase lang. deferred":
		breakdown.SemanticAnalysis += timing.wallTime
	case "phase late parsing cleanups":
		breakdown.Parsing += timing.wallTime
	case "phase opt and generate":
		breakdown.Optimization += timing.wallTime / 2
		breakdown.CodeGeneration += timing.wallTime / 2
	case "phase last asm":
		breakdown.CodeGeneration += timing.wallTime
	case "phase stream in", "phase stream out":
		breakdown.Optimization += timing.wallTime
	case "phase finalize":
		breakdown.CodeGeneration += timing.wallTime
	default:
		lower := strings.ToLower(name)
		switch {
		case strings.Contains(lower, "preprocess"):
			breakdown.Preprocessing += timing.wallTime
		case strings.Contains(lower, "pars"):
			breakdown.Parsing += timing.wallTime
		case strings.Contains(lower, "template"), strings.Contains(lower, "instantiat"):
			breakdown.TemplateInstantiation += timing.wallTime
		case strings.Contains(lower, "semantic"), strings.Contains(lower, "name lookup"), strings.Contains(lower, "overload"):
			breakdown.SemanticAnalysis += timing.wallTime
		case strings.Contains(lower, "optim"), strings.Contains(lower, "inline"):
			breakdown.Optimization += timing.wallTime
		case strings.Contains(lower, "expand"), strings.Contains(lower, "rtl"), strings.Contains(lower, "codegen"),
			strings.Contains(lower, "final"), strings.Contains(lower, "assemb"):
			breakdown.CodeGeneration += timing.wallTime
		}
	}
}

func (p *GCCParser) ParseContent(content []byte, sourceHint string) (domain.CompilationUnit, error) {
	if !p.CanParseContent(content) {
		return domain.CompilationUnit{}, domain.NewParseError("not a valid GCC time report", "")
	}

	unit := domain.CompilationUnit{SourceFile: sourceHint}

	for _, line := range strings.Split(string(content), "\n") {
		timing, ok := parseGCCTimingLine(line)
		if !ok {
			continue
		}
		unit.Metrics.TotalTime += timing.wallTime
		mapGCCPhaseToBreakdown(timing, &unit.Metrics.Breakdown)
	}

	unit.Metrics.FrontendTime = unit.Metrics.Breakdown.Preprocessing +
		unit.Metrics.Breakdown.Parsing +
		unit.Metrics.Breakdown.SemanticAnalysis +
		unit.Metrics.Breakdown.TemplateInstantiation
	unit.Metrics.BackendTime = unit.Metrics.Breakdown.CodeGeneration + unit.Metrics.Breakdown.Optimization

	return unit, nil
}
