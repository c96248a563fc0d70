package suggest

import (
	"fmt"
	"math"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gregorian-09/buildhotspot/domain"
)

const (
	pimplMinCompileTime  = 500 * time.Millisecond
	pimplMinIncludeCount = 3
)

// PIMPLSuggester recommends the pointer-to-implementation idiom for source
// files with heavy frontend time, many includes, and a resolvable header.
type PIMPLSuggester struct{}

// NewPIMPLSuggester returns a ready-to-use PIMPL suggester.
func NewPIMPLSuggester() *PIMPLSuggester { return &PIMPLSuggester{} }

func (s *PIMPLSuggester) Name() string { return "PIMPLPattern" }

func isCppSourceFile(path string) bool {
	switch filepath.Ext(path) {
	case ".cpp", ".cc", ".cxx", ".c", ".C", ".c++":
		return true
	default:
		return false
	}
}

// possibleHeaders returns header path candidates for a source file,
// trying the same stem with common header extensions, then an
// include-dir-for-src-dir substitution when the source lives under a
// src/source/sources directory.
func possibleHeaders(source string) []string {
	dir := filepath.Dir(source)
	ext := filepath.Ext(source)
	stem := strings.TrimSuffix(filepath.Base(source), ext)
	base := filepath.Join(dir, stem)

	headerExts := []string{".h", ".hpp", ".hxx", ".H", ".hh"}

	var headers []string
	for _, e := range headerExts {
		headers = append(headers, base+e)
	}

	srcDirs := []string{"/src/", "/source/", "/sources/"}
	incDirs := []string{"/include/", "/header/", "/headers/"}

	for _, srcDir := range srcDirs {
		idx := strings.Index(source, srcDir)
		if idx < 0 {
			continue
		}
		for _, incDir := range incDirs {
			includePath := source[:idx] + incDir + source[idx+len(srcDir):]
			includeExt := filepath.Ext(includePath)
			includeBase := strings.TrimSuffix(includePath, includeExt)
			for _, e := range headerExts {
				headers = append(headers, includeBase+e)
			}
		}
	}

	return headers
}

func pimplConfidence(frontendTime, backendTime, compileTime domain.Duration, includeCount int) float64 {
	frontendMS := frontendTime.Milliseconds()
	backendMS := backendTime.Milliseconds()
	totalMS := compileTime.Milliseconds()

	if totalMS <= 0 {
		return 0.3
	}

	frontendRatio := 0.5
	if frontendMS+backendMS > 0 {
		frontendRatio = float64(frontendMS) / float64(frontendMS+backendMS)
	}

	includeTimeFactor := 0.5
	switch {
	case includeCount > 10 && totalMS > 1000:
		includeTimeFactor = 0.8
	case includeCount > 5 && totalMS > 500:
		includeTimeFactor = 0.65
	}

	confidence := blendWeighted(frontendRatio, 0.5, includeTimeFactor, 0.5)
	return clampConfidence(confidence, 0.3, 0.95)
}

func pimplPriority(compileTime domain.Duration, includeCount int) domain.Priority {
	compileMS := compileTime.Milliseconds()

	switch {
	case compileMS > 5000 && includeCount >= 20:
		return domain.PriorityCritical
	case compileMS > 2000 && includeCount >= 10:
		return domain.PriorityHigh
	case compileMS > 1000 && includeCount >= 5:
		return domain.PriorityMedium
	case compileMS > 3000:
		return domain.PriorityHigh
	case compileMS > 1500:
		return domain.PriorityMedium
	default:
		return domain.PriorityLow
	}
}

func pimplEstimateSavings(frontendTime domain.Duration, dependentFiles int) domain.Duration {
	const reductionRatio = 0.25

	savingsPerDependent := float64(frontendTime) * reductionRatio
	scalingFactor := math.Log(float64(dependentFiles) + 1.0)

	return domain.Duration(savingsPerDependent * scalingFactor)
}

func looksAlreadyPimpl(filename string) bool {
	lower := strings.ToLower(filename)
	for _, marker := range []string{"_impl", "impl_", "pimpl", "_p.", "private"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (s *PIMPLSuggester) Suggest(ctx domain.Context) (domain.SuggestionResult, error) {
	var result domain.SuggestionResult

	files := ctx.Analysis.Files
	headers := ctx.Analysis.Dependencies.Headers

	headerDependents := make(map[string]map[string]bool)
	for _, header := range headers {
		set := make(map[string]bool, len(header.IncludedBy))
		for _, includer := range header.IncludedBy {
			set[includer] = true
		}
		headerDependents[header.Path] = set
	}

	for _, file := range files {
		result.ItemsAnalyzed++

		if !isCppSourceFile(file.File) {
			result.ItemsSkipped++
			continue
		}
		if file.CompileTime < pimplMinCompileTime {
			result.ItemsSkipped++
			continue
		}
		if looksAlreadyPimpl(filepath.Base(file.File)) {
			result.ItemsSkipped++
			continue
		}

		var headerPath string
		var dependentCount int
		for _, h := range possibleHeaders(file.File) {
			if deps, ok := headerDependents[h]; ok {
				headerPath = h
				dependentCount = len(deps)
				break
			}
			if deps, ok := headerDependents[filepath.Base(h)]; ok {
				headerPath = h
				dependentCount = len(deps)
				break
			}
		}
		if headerPath == "" {
			ext := filepath.Ext(file.File)
			headerPath = strings.TrimSuffix(file.File, ext) + ".h"
		}

		totalIncludes := file.IncludeCount
		sourceFilename := filepath.Base(file.File)
		for _, header := range headers {
			for _, includer := range header.IncludedBy {
				if filepath.Base(includer) == sourceFilename {
					totalIncludes++
					break
				}
			}
		}

		if totalIncludes < pimplMinIncludeCount {
			result.ItemsSkipped++
			continue
		}

		confidence := pimplConfidence(file.FrontendTime, file.BackendTime, file.CompileTime, totalIncludes)
		priority := pimplPriority(file.CompileTime, totalIncludes)

		if confidence < 0.4 && priority == domain.PriorityLow {
			result.ItemsSkipped++
			continue
		}

		timeForSavings := file.FrontendTime
		if timeForSavings == 0 {
			timeForSavings = file.CompileTime * 6 / 10
		}
		dependentsForSavings := dependentCount
		if dependentsForSavings < 1 {
			dependentsForSavings = 1
		}
		savings := pimplEstimateSavings(timeForSavings, dependentsForSavings)

		compileMS := file.CompileTime.Milliseconds()
		frontendMS := file.FrontendTime.Milliseconds()

		desc := fmt.Sprintf("File '%s' takes %dms to compile", file.File, compileMS)
		if frontendMS > 0 {
			desc += fmt.Sprintf(" (%dms frontend)", frontendMS)
		}
		desc += fmt.Sprintf(" and has %d direct includes", totalIncludes)
		if dependentCount > 0 {
			desc += fmt.Sprintf(". Its header is included by %d other files", dependentCount)
		}
		desc += ". The PIMPL idiom could reduce compile-time coupling and improve incremental build times."

		headerFilename := filepath.Base(headerPath)
		before := "// " + headerFilename + "\n" +
			"#pragma once\n" +
			"#include <heavy_dependency.h>\n" +
			"#include <another_heavy_dep.h>\n\n" +
			"class MyClass {\npublic:\n    void do_something();\n\nprivate:\n" +
			"    HeavyDep member1_;\n    AnotherDep member2_;\n};"

		after := "// " + headerFilename + "\n" +
			"#pragma once\n" +
			"#include <memory>\n\n" +
			"class MyClass {\npublic:\n" +
			"    MyClass();\n    ~MyClass();\n    MyClass(MyClass&&) noexcept;\n" +
			"    MyClass& operator=(MyClass&&) noexcept;\n\n    void do_something();\n\nprivate:\n" +
			"    struct Impl;\n    std::unique_ptr<Impl> impl_;\n};\n\n" +
			"// " + filepath.Base(file.File) + "\n" +
			"#include \"" + headerFilename + "\"\n" +
			"#include <heavy_dependency.h>\n#include <another_heavy_dep.h>\n\n" +
			"struct MyClass::Impl {\n    HeavyDep member1_;\n    AnotherDep member2_;\n};\n\n" +
			"MyClass::MyClass() : impl_(std::make_unique<Impl>()) {}\n" +
			"MyClass::~MyClass() = default;\n" +
			"MyClass::MyClass(MyClass&&) noexcept = default;\n" +
			"MyClass& MyClass::operator=(MyClass&&) noexcept = default;"

		suggestion := domain.Suggestion{
			ID:          "pimpl-" + filepath.Base(file.File),
			Type:        domain.SuggestionPIMPLPattern,
			Priority:    priority,
			Confidence:  confidence,
			Title:       "Consider PIMPL pattern for " + filepath.Base(file.File),
			Description: desc,
			Rationale: "The PIMPL (Pointer to Implementation) pattern hides class implementation details behind an " +
				"opaque pointer. Benefits include:\n" +
				"1. Reduced compile-time dependencies - changes to private members don't trigger recompilation of dependents\n" +
				"2. Faster incremental builds - header changes don't cascade\n" +
				"3. Binary compatibility - implementation changes don't break ABI\n" +
				"4. Reduced header pollution - heavy includes move to .cpp\n\n" +
				"This file has a high frontend-to-total compile time ratio, indicating significant time spent on " +
				"parsing and template instantiation that PIMPL can help reduce.",
			EstimatedSavings: savings,
			ImplementationSteps: []string{
				"Create a forward-declared Impl struct in the header",
				"Replace private data members with std::unique_ptr<Impl>",
				"Declare destructor in header (define in .cpp as = default)",
				"Add move constructor and move assignment operator declarations",
				"Define Impl struct in the source file with original private members",
				"Move heavy #includes from header to source file",
				"Update all member functions to access members via impl_->",
				"If copy semantics needed, implement copy constructor/assignment",
				"Rebuild and verify all dependent files compile correctly",
			},
			Caveats: []string{
				"Adds heap allocation (minor memory and CPU overhead)",
				"Class becomes non-copyable by default (implement if needed)",
				"Debugging requires stepping into Impl (use debugger pretty-printers)",
				"All member functions must be updated to use impl_->",
				"Not suitable for header-only libraries",
				"Performance-critical inner loops may prefer direct access",
			},
			Verification: "1. Rebuild the project and verify compilation succeeds\n" +
				"2. Run the test suite to verify functionality\n" +
				"3. Measure incremental build time after changing a private member\n" +
				"4. Profile runtime performance if this is a hot code path",
			IsSafe: false,
			PrimaryTarget: domain.FileTarget{
				Path:   file.File,
				Action: domain.ActionModify,
				Note:   "Convert class to use PIMPL idiom",
			},
			SecondaryTargets: []domain.FileTarget{{
				Path:   headerPath,
				Action: domain.ActionModify,
				Note:   "Replace private members with unique_ptr<Impl>",
			}},
			BeforeCode: []domain.CodeSnippet{{File: headerPath, Code: before}},
			AfterCode:  []domain.CodeSnippet{{File: file.File, Code: after}},
		}
		if ctx.Trace.TotalTime > 0 {
			suggestion.EstimatedSavingsPercent = 100.0 * float64(suggestion.EstimatedSavings) / float64(ctx.Trace.TotalTime)
		}

		result.Suggestions = append(result.Suggestions, suggestion)
	}

	sort.SliceStable(result.Suggestions, func(i, j int) bool {
		return result.Suggestions[i].EstimatedSavings > result.Suggestions[j].EstimatedSavings
	})

	return result, nil
}
