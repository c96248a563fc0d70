package parsers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	nvccMarker    = "nvcc"
	ptxasMarker   = "ptxas"
	fatbinMarker  = "fatbinary"
	ciccMarker    = "cicc"
)

// NVCCParser decodes nvcc/ptxas/cicc phase timing lines, classifying each
// named phase as host, device, or link time.
type NVCCParser struct{}

// NewNVCCParser returns a ready-to-use NVCC timing parser.
func NewNVCCParser() *NVCCParser { return &NVCCParser{} }

func (p *NVCCParser) Name() string                      { return "NVCC" }
func (p *NVCCParser) CompilerType() domain.CompilerType { return domain.CompilerNVCC }
func (p *NVCCParser) SupportedExtensions() []string     { return []string{".txt", ".log", ".nvlog"} }

func (p *NVCCParser) CanParse(path string) bool {
	content, err := readFile(path)
	if err != nil {
		return false
	}
	return p.CanParseContent(content)
}

func (p *NVCCParser) CanParseContent(content []byte) bool {
	prefix := content
	if len(prefix) > 1000 {
		prefix = prefix[:1000]
	}
	lower := strings.ToLower(string(prefix))

	hasNVCC := strings.Contains(lower, nvccMarker)
	hasCUDATools := strings.Contains(lower, ptxasMarker) ||
		strings.Contains(lower, fatbinMarker) ||
		strings.Contains(lower, ciccMarker)

	return hasNVCC || hasCUDATools
}

func (p *NVCCParser) ParseFile(path string) (domain.CompilationUnit, error) {
	content, err := readFile(path)
	if err != nil {
		return domain.CompilationUnit{}, err
	}
	return p.ParseContent(content, replaceExt(path, ".cu"))
}

var (
	nvccTimeRegex    = regexp.MustCompile(`(\w+)\s*[:=]\s*(\d+\.?\d*)\s*s`)
	nvccAltTimeRegex = regexp.MustCompile(`(\d+\.?\d*)\s*s\s+(\w+)`)
)

type nvccPhase struct {
	name string
	time domain.Duration
}

func parseNVCCTime(s string) domain.Duration {
	trimmed := strings.TrimSpace(s)
	if strings.HasSuffix(trimmed, "s") {
		trimmed = trimmed[:len(trimmed)-1]
	}
	if strings.HasSuffix(trimmed, "m") {
		trimmed = trimmed[:len(trimmed)-1]
		v, _ := strconv.ParseFloat(trimmed, 64)
		return secondsToDuration(v * 60.0)
	}
	v, _ := strconv.ParseFloat(trimmed, 64)
	return secondsToDuration(v)
}

func parseNVCCPhases(content string) []nvccPhase {
	var phases []nvccPhase

	for _, m := range nvccTimeRegex.FindAllStringSubmatch(content, -1) {
		phases = append(phases, nvccPhase{name: m[1], time: parseNVCCTime(m[2])})
	}

	seen := make(map[string]bool, len(phases))
	for _, ph := range phases {
		seen[ph.name] = true
	}

	for _, m := range nvccAltTimeRegex.FindAllStringSubmatch(content, -1) {
		name := m[2]
		if seen[name] {
			continue
		}
		phases = append(phases, nvccPhase{name: name, time: parseNVCCTime(m[1])})
		seen[name] = true
	}

	return phases
}

func (p *NVCCParser) ParseContent(content []byte, sourceHint string) (domain.CompilationUnit, error) {
	unit := domain.CompilationUnit{SourceFile: sourceHint}

	phases := parseNVCCPhases(string(content))

	var hostTime, deviceTime, linkTime, totalTime domain.Duration

	for _, ph := range phases {
		lowerName := strings.ToLower(ph.name)
		totalTime += ph.time

		switch {
		case strings.Contains(lowerName, "compile"), strings.Contains(lowerName, "host"), strings.Contains(lowerName, "c++"):
			hostTime += ph.time
		case strings.Contains(lowerName, "ptx"), strings.Contains(lowerName, "cicc"), strings.Contains(lowerName, "device"):
			deviceTime += ph.time
		case strings.Contains(lowerName, "fat"), strings.Contains(lowerName, "link"), strings.Contains(lowerName, "nvlink"):
			linkTime += ph.time
		}
	}

	unit.Metrics.TotalTime = totalTime
	unit.Metrics.FrontendTime = hostTime
	unit.Metrics.BackendTime = deviceTime + linkTime

	unit.Metrics.Breakdown.Parsing = hostTime / 3
	unit.Metrics.Breakdown.SemanticAnalysis = hostTime / 3
	unit.Metrics.Breakdown.TemplateInstantiation = hostTime / 3
	unit.Metrics.Breakdown.CodeGeneration = deviceTime
	unit.Metrics.Breakdown.Optimization = linkTime

	return unit, nil
}
