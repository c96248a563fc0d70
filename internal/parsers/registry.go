// Package parsers implements the compiler-trace parser framework: one
// TraceParser per compiler family, registered into a process-wide Registry
// that auto-detects by file extension or content marker.
package parsers

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/gregorian-09/buildhotspot/domain"
)

// Registry holds the set of known parsers in registration order.
// find_for_content ties are broken by that order, so more specific parsers
// (Intel oneAPI) must be registered before more general ones (Clang).
type Registry struct {
	mu      sync.RWMutex
	parsers []domain.TraceParser
}

// NewRegistry returns an empty registry. Most callers want RegisterAll
// instead, which returns a registry pre-populated with every built-in
// parser in the required order.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends parser to the registry.
func (r *Registry) Register(parser domain.TraceParser) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.parsers = append(r.parsers, parser)
}

// FindForFile filters candidates by extension match, then returns the
// first whose CanParse accepts the file. Returns nil if none match.
func (r *Registry) FindForFile(path string) domain.TraceParser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ext := strings.ToLower(filepath.Ext(path))
	for _, p := range r.parsers {
		if !hasExtension(p.SupportedExtensions(), ext) {
			continue
		}
		if p.CanParse(path) {
			return p
		}
	}
	return nil
}

// FindForContent calls CanParseContent on each registered parser in
// registration order and returns the first to accept.
func (r *Registry) FindForContent(content []byte) domain.TraceParser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parsers {
		if p.CanParseContent(content) {
			return p
		}
	}
	return nil
}

// GetByType returns the first registered parser for the given compiler
// type, or nil.
func (r *Registry) GetByType(t domain.CompilerType) domain.TraceParser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.parsers {
		if p.CompilerType() == t {
			return p
		}
	}
	return nil
}

// List returns a copy of the registered parsers in registration order.
func (r *Registry) List() []domain.TraceParser {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.TraceParser, len(r.parsers))
	copy(out, r.parsers)
	return out
}

func hasExtension(extensions []string, ext string) bool {
	for _, e := range extensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}

var (
	globalOnce sync.Once
	global     *Registry
)

// RegisterAll returns the process-wide registry, lazily populated on first
// call with every built-in parser. Intel oneAPI is registered before Clang
// because both claim Chrome-trace JSON containing "traceEvents"; the more
// specific parser must win the tiebreak.
func RegisterAll() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
		global.Register(NewIntelOneAPIParser())
		global.Register(NewIntelClassicParser())
		global.Register(NewClangParser())
		global.Register(NewGCCParser())
		global.Register(NewMSVCParser())
		global.Register(NewNVCCParser())
	})
	return global
}

// readFile reads path fully. Shared by every parser's ParseFile.
func readFile(path string) ([]byte, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.NewIOError("failed to read trace file", err)
	}
	return content, nil
}
