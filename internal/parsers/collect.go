package parsers

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/gregorian-09/buildhotspot/domain"
	"github.com/gregorian-09/buildhotspot/internal/pool"
)

// SupportedTraceExtensions returns the union of every registered parser's
// SupportedExtensions, in first-seen order across parsers.
func SupportedTraceExtensions(r *Registry) []string {
	var out []string
	seen := make(map[string]bool)

	for _, p := range r.List() {
		for _, ext := range p.SupportedExtensions() {
			if !seen[ext] {
				seen[ext] = true
				out = append(out, ext)
			}
		}
	}
	return out
}

// IsSupportedTraceExtension reports whether ext (with or without a leading
// dot) matches a registered parser's extension list.
func IsSupportedTraceExtension(r *Registry, ext string) bool {
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	for _, supported := range SupportedTraceExtensions(r) {
		if supported == ext {
			return true
		}
	}
	return false
}

// CollectTraceFiles gathers trace file paths under root. If root is a
// regular file it is returned directly when its extension is supported.
// If root is a directory, it walks it (recursing unless recursive is
// false) and returns every supported-extension regular file, in
// lexical order via doublestar's fs walk.
func CollectTraceFiles(r *Registry, root string, recursive bool) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, nil
	}

	if !info.IsDir() {
		if IsSupportedTraceExtension(r, filepath.Ext(root)) {
			return []string{root}, nil
		}
		return nil, nil
	}

	var results []string
	fsys := os.DirFS(root)

	patterns := make([]string, 0, len(SupportedTraceExtensions(r)))
	for _, ext := range SupportedTraceExtensions(r) {
		if recursive {
			patterns = append(patterns, "**/*"+ext)
		} else {
			patterns = append(patterns, "*"+ext)
		}
	}

	seen := make(map[string]bool)
	for _, pattern := range patterns {
		matches, err := doublestar.Glob(fsys, pattern)
		if err != nil {
			continue
		}
		for _, m := range matches {
			full := filepath.Join(root, m)
			if !seen[full] {
				seen[full] = true
				results = append(results, full)
			}
		}
	}

	sort.Strings(results)
	return results, nil
}

// ParseTraceFiles parses each path with the parser auto-detected by
// FindForFile, running the parses concurrently on p. A path with no
// matching parser contributes a domain.NewNotFoundError to its result slot
// instead of aborting the batch.
func ParseTraceFiles(r *Registry, p *pool.Pool, paths []string) ([]domain.CompilationUnit, []error) {
	type outcome struct {
		unit domain.CompilationUnit
		err  error
	}

	outcomes, _ := pool.ParallelMap(p, paths, func(path string) (outcome, error) {
		parser := r.FindForFile(path)
		if parser == nil {
			return outcome{err: domain.NewNotFoundError("no parser found for file", path)}, nil
		}
		unit, err := parser.ParseFile(path)
		return outcome{unit: unit, err: err}, nil
	})

	units := make([]domain.CompilationUnit, 0, len(outcomes))
	errs := make([]error, 0)
	for _, o := range outcomes {
		if o.err != nil {
			errs = append(errs, o.err)
			continue
		}
		units = append(units, o.unit)
	}

	return units, errs
}
