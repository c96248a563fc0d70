package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	iccMarker    = "Intel(R) C++ Compiler"
	iccOptReport = "LOOP BEGIN"
	icxMarker    = "icx"
)

// IntelClassicParser decodes Intel Classic (icc) optimization reports:
// cumulative loop-optimization seconds plus LOOP BEGIN source locations.
type IntelClassicParser struct{}

// NewIntelClassicParser returns a ready-to-use Intel Classic parser.
func NewIntelClassicParser() *IntelClassicParser { return &IntelClassicParser{} }

func (p *IntelClassicParser) Name() string                      { return "Intel Classic" }
func (p *IntelClassicParser) CompilerType() domain.CompilerType { return domain.CompilerIntelClassic }
func (p *IntelClassicParser) SupportedExtensions() []string     { return []string{".optrpt", ".txt", ".log"} }

func (p *IntelClassicParser) CanParse(path string) bool {
	content, err := readFile(path)
	if err != nil {
		return false
	}
	return p.CanParseContent(content)
}

func (p *IntelClassicParser) CanParseContent(content []byte) bool {
	s := string(content)
	return strings.Contains(s, iccMarker) ||
		(strings.Contains(s, iccOptReport) && strings.Contains(s, "icc"))
}

func (p *IntelClassicParser) ParseFile(path string) (domain.CompilationUnit, error) {
	content, err := readFile(path)
	if err != nil {
		return domain.CompilationUnit{}, err
	}

	hint := path
	if strings.HasSuffix(strings.ToLower(hint), ".optrpt") {
		hint = replaceExt(hint, ".cpp")
	}

	return p.ParseContent(content, hint)
}

var (
	icTimeRegex = regexp.MustCompile(`(\d+\.?\d*)\s*(?:s|seconds?)`)
	icLoopRegex = regexp.MustCompile(`LOOP BEGIN at ([^:]+):(\d+)`)
)

func (p *IntelClassicParser) ParseContent(content []byte, sourceHint string) (domain.CompilationUnit, error) {
	var unit domain.CompilationUnit

	var total domain.Duration
	for _, line := range strings.Split(string(content), "\n") {
		if unit.SourceFile == "" {
			if m := icLoopRegex.FindStringSubmatch(line); m != nil {
				unit.SourceFile = m[1]
			}
		}
		if m := icTimeRegex.FindStringSubmatch(line); m != nil {
			v, _ := strconv.ParseFloat(m[1], 64)
			total += secondsToDuration(v)
		}
	}

	if unit.SourceFile == "" {
		unit.SourceFile = sourceHint
	}

	unit.Metrics.TotalTime = total
	unit.Metrics.Breakdown.Optimization = total

	return unit, nil
}

// IntelOneAPIParser decodes Intel oneAPI (icx) timing output, which is a
// Clang-based Chrome trace, by delegating to ClangParser.
type IntelOneAPIParser struct {
	clang *ClangParser
}

// NewIntelOneAPIParser returns a ready-to-use Intel oneAPI parser.
func NewIntelOneAPIParser() *IntelOneAPIParser {
	return &IntelOneAPIParser{clang: NewClangParser()}
}

func (p *IntelOneAPIParser) Name() string                      { return "Intel oneAPI" }
func (p *IntelOneAPIParser) CompilerType() domain.CompilerType { return domain.CompilerIntelOneAPI }
func (p *IntelOneAPIParser) SupportedExtensions() []string     { return []string{".json"} }

func (p *IntelOneAPIParser) CanParse(path string) bool {
	content, err := readFile(path)
	if err != nil {
		return false
	}
	return p.CanParseContent(content)
}

func (p *IntelOneAPIParser) CanParseContent(content []byte) bool {
	s := string(content)
	if !strings.Contains(s, clangTraceMarker) {
		return false
	}
	return strings.Contains(s, icxMarker) || strings.Contains(s, "Intel") || strings.Contains(s, "oneAPI")
}

func (p *IntelOneAPIParser) ParseFile(path string) (domain.CompilationUnit, error) {
	return p.clang.ParseFile(path)
}

func (p *IntelOneAPIParser) ParseContent(content []byte, sourceHint string) (domain.CompilationUnit, error) {
	return p.clang.ParseContent(content, sourceHint)
}
