package parsers

import (
	"strconv"
	"strings"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	msvcTimePrefix = "time("
	msvcC1XX       = "c1xx.dll"
	msvcC2         = "c2.dll"
)

// MSVCParser decodes /Bt+ timing pairs: time(target)=Xs per c1xx.dll
// (frontend) and c2.dll (backend) line, plus one line naming the source
// file and its total time.
type MSVCParser struct{}

// NewMSVCParser returns a ready-to-use MSVC timing-pair parser.
func NewMSVCParser() *MSVCParser { return &MSVCParser{} }

func (p *MSVCParser) Name() string                      { return "MSVC" }
func (p *MSVCParser) CompilerType() domain.CompilerType { return domain.CompilerMSVC }
func (p *MSVCParser) SupportedExtensions() []string     { return []string{".txt", ".log", ".btlog"} }

func (p *MSVCParser) CanParse(path string) bool {
	content, err := readFile(path)
	if err != nil {
		return false
	}
	return p.CanParseContent(content)
}

func (p *MSVCParser) CanParseContent(content []byte) bool {
	s := string(content)
	return strings.Contains(s, msvcTimePrefix) &&
		(strings.Contains(s, msvcC1XX) || strings.Contains(s, msvcC2))
}

func (p *MSVCParser) ParseFile(path string) (domain.CompilationUnit, error) {
	content, err := readFile(path)
	if err != nil {
		return domain.CompilationUnit{}, err
	}
	return p.ParseContent(content, path)
}

type msvcTimeLine struct {
	target    string
	totalTime domain.Duration
}

func parseMSVCTime(s string) domain.Duration {
	trimmed := strings.TrimSpace(s)
	trimmed = strings.TrimSuffix(trimmed, "s")
	v, _ := strconv.ParseFloat(trimmed, 64)
	return secondsToDuration(v)
}

func parseMSVCLine(line string) (msvcTimeLine, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, msvcTimePrefix) {
		return msvcTimeLine{}, false
	}

	closeParen := strings.Index(trimmed, ")")
	if closeParen < 0 {
		return msvcTimeLine{}, false
	}

	result := msvcTimeLine{target: trimmed[5:closeParen]}

	eqPos := strings.Index(trimmed[closeParen:], "=")
	if eqPos < 0 {
		return msvcTimeLine{}, false
	}
	eqPos += closeParen

	timeStart := eqPos + 1
	timeEnd := strings.IndexAny(trimmed[timeStart:], " <")
	if timeEnd < 0 {
		timeEnd = len(trimmed)
	} else {
		timeEnd += timeStart
	}

	result.totalTime = parseMSVCTime(trimmed[timeStart:timeEnd])
	return result, true
}

func (p *MSVCParser) ParseContent(content []byte, sourceHint string) (domain.CompilationUnit, error) {
	if !p.CanParseContent(content) {
		return domain.CompilationUnit{}, domain.NewParseError("not a valid MSVC timing output", "")
	}

	unit := domain.CompilationUnit{SourceFile: sourceHint}

	for _, line := range strings.Split(string(content), "\n") {
		timing, ok := parseMSVCLine(line)
		if !ok {
			continue
		}

		lowerTarget := strings.ToLower(timing.target)

		switch {
		case strings.Contains(lowerTarget, "c1xx"):
			unit.Metrics.FrontendTime = timing.totalTime
			unit.Metrics.Breakdown.Parsing = domain.Duration(float64(timing.totalTime) * 0.4)
			unit.Metrics.Breakdown.SemanticAnalysis = domain.Duration(float64(timing.totalTime) * 0.3)
			unit.Metrics.Breakdown.TemplateInstantiation = domain.Duration(float64(timing.totalTime) * 0.3)
		case strings.Contains(lowerTarget, "c2"):
			unit.Metrics.BackendTime = timing.totalTime
			unit.Metrics.Breakdown.Optimization = domain.Duration(float64(timing.totalTime) * 0.5)
			unit.Metrics.Breakdown.CodeGeneration = domain.Duration(float64(timing.totalTime) * 0.5)
		case strings.HasSuffix(lowerTarget, ".cpp"), strings.HasSuffix(lowerTarget, ".cxx"),
			strings.HasSuffix(lowerTarget, ".cc"), strings.HasSuffix(lowerTarget, ".c"):
			unit.SourceFile = timing.target
			unit.Metrics.TotalTime = timing.totalTime
		}
	}

	if unit.Metrics.TotalTime == 0 {
		unit.Metrics.TotalTime = unit.Metrics.FrontendTime + unit.Metrics.BackendTime
	}

	return unit, nil
}
