package suggest

import (
	"sort"
	"sync"

	"github.com/gregorian-09/buildhotspot/domain"
)

// Registry holds the set of registered suggesters, run independently and
// in registration order by RunAll.
type Registry struct {
	mu         sync.RWMutex
	suggesters []domain.Suggester
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Register appends a suggester to the registry.
func (r *Registry) Register(s domain.Suggester) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.suggesters = append(r.suggesters, s)
}

// List returns a copy of the registered suggesters in registration order.
func (r *Registry) List() []domain.Suggester {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Suggester, len(r.suggesters))
	copy(out, r.suggesters)
	return out
}

// RunResult pairs one suggester's name with its outcome. Err is set if the
// suggester itself failed; a failing suggester never blocks the others.
type RunResult struct {
	Name   string
	Result domain.SuggestionResult
	Err    error
}

// RunAll runs every registered suggester against ctx and returns one
// RunResult per suggester, in registration order.
func (r *Registry) RunAll(ctx domain.Context) []RunResult {
	suggesters := r.List()
	out := make([]RunResult, len(suggesters))

	for i, s := range suggesters {
		result, err := s.Suggest(ctx)
		out[i] = RunResult{Name: s.Name(), Result: result, Err: err}
	}

	return out
}

var (
	globalOnce sync.Once
	global     *Registry
)

// RegisterAll returns the process-wide registry, lazily populated on first
// call with every built-in suggester.
func RegisterAll() *Registry {
	globalOnce.Do(func() {
		global = NewRegistry()
		global.Register(NewPCHSuggester())
		global.Register(NewTemplateSuggester())
		global.Register(NewForwardDeclSuggester())
		global.Register(NewIncludeSuggester())
		global.Register(NewHeaderSplitSuggester())
		global.Register(NewPIMPLSuggester())
		global.Register(NewUnityBuildSuggester())
	})
	return global
}

// Dedupe merges Suggestions from multiple RunResults into one slice sorted
// by EstimatedSavings descending, dropping exact ID duplicates (a
// suggester must not emit the same id twice, but different suggesters may
// coincidentally collide on a generated id for unrelated files).
func Dedupe(results []RunResult) []domain.Suggestion {
	seen := make(map[string]bool)
	var out []domain.Suggestion

	for _, r := range results {
		for _, s := range r.Result.Suggestions {
			key := string(s.Type) + "|" + s.ID
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, s)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].EstimatedSavings > out[j].EstimatedSavings
	})

	return out
}
