// Package anonymize replaces paths and commit identifiers in a build trace
// with non-reversible substitutes so traces can be shared or
// archived without exposing internal directory structure or commit
// metadata.
package anonymize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/gregorian-09/buildhotspot/domain"
)

// Config controls which parts of a trace get anonymized and how.
type Config struct {
	AnonymizePaths            bool
	AnonymizeCommitInfo       bool
	PreserveExtensions        bool
	PreserveDirectoryStructure bool
	ReplacementRoot           string
	PreservePatterns          []string
}

// DefaultConfig returns the same defaults as the original tool: anonymize
// everything, keep extensions and directory shape so anonymized traces stay
// readable.
func DefaultConfig() Config {
	return Config{
		AnonymizePaths:             true,
		AnonymizeCommitInfo:        true,
		PreserveExtensions:         true,
		PreserveDirectoryStructure: true,
		ReplacementRoot:            "/project",
	}
}

// Anonymizer maps original paths and commit SHAs to substitutes, consistent
// within its own lifetime (the same input always maps to the same output).
// Path substitutes are derived from a SHA-256 hash of the input, so separate
// Anonymizer instances with the same Config produce the same paths; commit
// substitutes are random and differ between instances.
type Anonymizer struct {
	config Config

	mu            sync.Mutex
	pathMapping   map[string]string
	commitMapping map[string]string
	branchCounter int
}

// New constructs an Anonymizer from the given configuration.
func New(config Config) *Anonymizer {
	return &Anonymizer{
		config:        config,
		pathMapping:   make(map[string]string),
		commitMapping: make(map[string]string),
	}
}

// AnonymizeTrace returns a copy of trace with paths and commit metadata
// replaced per the Anonymizer's configuration. The dependency graph is
// rebuilt node-by-node so its insertion order matches the anonymized path
// assignment order.
func (a *Anonymizer) AnonymizeTrace(trace domain.BuildTrace) domain.BuildTrace {
	anonymized := trace

	if a.config.AnonymizePaths {
		units := make([]domain.CompilationUnit, len(trace.CompilationUnits))
		for i, unit := range trace.CompilationUnits {
			units[i] = unit
			units[i].SourceFile = a.AnonymizePath(unit.SourceFile)

			includes := make([]domain.IncludeInfo, len(unit.Includes))
			for j, inc := range unit.Includes {
				includes[j] = inc
				includes[j].Header = a.AnonymizePath(inc.Header)
			}
			units[i].Includes = includes
		}
		anonymized.CompilationUnits = units

		if trace.DependencyGraph != nil {
			newGraph := domain.NewDependencyGraph()
			for _, source := range trace.DependencyGraph.GetAllNodes() {
				newGraph.AddNode(a.AnonymizePath(source))
			}
			for _, source := range trace.DependencyGraph.GetAllNodes() {
				anonSource := a.AnonymizePath(source)
				for _, edge := range trace.DependencyGraph.GetEdges(source) {
					anonEdge := edge
					anonEdge.Target = a.AnonymizePath(edge.Target)
					newGraph.AddEdge(anonSource, anonEdge)
				}
			}
			anonymized.DependencyGraph = newGraph
		}

		topSlowFiles := make([]domain.SlowFile, len(trace.Metrics.TopSlowFiles))
		for i, hotspot := range trace.Metrics.TopSlowFiles {
			topSlowFiles[i] = hotspot
			topSlowFiles[i].File = a.AnonymizePath(hotspot.File)
		}
		anonymized.Metrics.TopSlowFiles = topSlowFiles
	}

	if a.config.AnonymizeCommitInfo {
		anonymized.CommitSHA = a.AnonymizeCommitSHA(trace.CommitSHA)

		a.mu.Lock()
		branch := fmt.Sprintf("branch_%d", a.branchCounter)
		a.branchCounter++
		a.mu.Unlock()
		anonymized.Branch = branch
	}

	return anonymized
}

// AnonymizePath anonymizes a single filesystem path, returning a consistent
// substitute for repeated calls with the same input.
func (a *Anonymizer) AnonymizePath(path string) string {
	if a.shouldPreservePath(path) {
		return path
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if anon, ok := a.pathMapping[path]; ok {
		return anon
	}

	anon := a.generateAnonymousPath(path)
	a.pathMapping[path] = anon
	return anon
}

// AnonymizeCommitSHA anonymizes a commit identifier, returning a consistent
// substitute for repeated calls with the same input. An empty sha maps to
// an empty string.
func (a *Anonymizer) AnonymizeCommitSHA(sha string) string {
	if sha == "" {
		return ""
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if anon, ok := a.commitMapping[sha]; ok {
		return anon
	}

	anon := generateAnonymousCommit()
	a.commitMapping[sha] = anon
	return anon
}

// ClearMapping discards every recorded path and commit mapping, so future
// calls start fresh.
func (a *Anonymizer) ClearMapping() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.pathMapping = make(map[string]string)
	a.commitMapping = make(map[string]string)
	a.branchCounter = 0
}

// PathMapping returns a copy of the original-to-anonymized path table.
func (a *Anonymizer) PathMapping() map[string]string {
	a.mu.Lock()
	defer a.mu.Unlock()

	out := make(map[string]string, len(a.pathMapping))
	for k, v := range a.pathMapping {
		out[k] = v
	}
	return out
}

func (a *Anonymizer) shouldPreservePath(path string) bool {
	for _, pattern := range a.config.PreservePatterns {
		if strings.Contains(path, pattern) {
			return true
		}
	}
	return false
}

func (a *Anonymizer) generateAnonymousPath(original string) string {
	var extension string
	if a.config.PreserveExtensions {
		extension = filepath.Ext(original)
	}

	filename := "file_" + hashString(original)[:8] + extension

	if a.config.PreserveDirectoryStructure {
		if dir := filepath.Dir(original); dir != "." && dir != "/" {
			dirHash := hashString(dir)
			return a.config.ReplacementRoot + "/dir_" + dirHash[:8] + "/" + filename
		}
	}

	return a.config.ReplacementRoot + "/" + filename
}

func generateAnonymousCommit() string {
	id := strings.ReplaceAll(uuid.NewString(), "-", "")
	return id[:8] + strings.Repeat("0", 32)
}

// hashString mirrors the original's hash_string helper: a truncated
// SHA-256 hex digest, long enough that anonymized path components never
// collide in practice while staying short and filesystem-friendly.
func hashString(input string) string {
	sum := sha256.Sum256([]byte(input))
	return hex.EncodeToString(sum[:])[:16]
}
