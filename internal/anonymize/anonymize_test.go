package anonymize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregorian-09/buildhotspot/domain"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()
	assert.True(t, config.AnonymizePaths)
	assert.True(t, config.AnonymizeCommitInfo)
	assert.True(t, config.PreserveExtensions)
	assert.True(t, config.PreserveDirectoryStructure)
	assert.Equal(t, "/project", config.ReplacementRoot)
}

func TestAnonymizePath_Simple(t *testing.T) {
	a := New(DefaultConfig())

	original := "/home/user/project/src/main.cpp"
	anon := a.AnonymizePath(original)

	assert.NotEqual(t, original, anon)
	assert.NotEmpty(t, anon)
}

func TestAnonymizePath_Consistency(t *testing.T) {
	a := New(DefaultConfig())

	path := "/home/user/project/file.cpp"
	anon1 := a.AnonymizePath(path)
	anon2 := a.AnonymizePath(path)

	assert.Equal(t, anon1, anon2)
}

func TestAnonymizePath_PreservesExtension(t *testing.T) {
	config := DefaultConfig()
	config.PreserveExtensions = true
	a := New(config)

	anonCpp := a.AnonymizePath("/home/user/file.cpp")
	anonH := a.AnonymizePath("/home/user/file.h")

	assert.True(t, hasSuffixAny(anonCpp, ".cpp"))
	assert.True(t, hasSuffixAny(anonH, ".h"))
}

func hasSuffixAny(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

func TestAnonymizePath_DifferentPathsDifferentOutputs(t *testing.T) {
	a := New(DefaultConfig())

	anon1 := a.AnonymizePath("/home/user/file1.cpp")
	anon2 := a.AnonymizePath("/home/user/file2.cpp")

	assert.NotEqual(t, anon1, anon2)
}

func TestAnonymizePath_PreservePattern(t *testing.T) {
	config := DefaultConfig()
	config.PreservePatterns = []string{"/vendor/"}
	a := New(config)

	path := "/home/user/vendor/lib.h"
	assert.Equal(t, path, a.AnonymizePath(path))
}

func TestAnonymizeCommitSHA_Simple(t *testing.T) {
	a := New(DefaultConfig())

	sha := "abc123def456"
	anon := a.AnonymizeCommitSHA(sha)

	assert.NotEqual(t, sha, anon)
	assert.NotEmpty(t, anon)
}

func TestAnonymizeCommitSHA_Consistency(t *testing.T) {
	a := New(DefaultConfig())

	sha := "abc123def456"
	anon1 := a.AnonymizeCommitSHA(sha)
	anon2 := a.AnonymizeCommitSHA(sha)

	assert.Equal(t, anon1, anon2)
}

func TestAnonymizeCommitSHA_DifferentSHAsDifferentOutputs(t *testing.T) {
	a := New(DefaultConfig())

	anon1 := a.AnonymizeCommitSHA("abc123")
	anon2 := a.AnonymizeCommitSHA("def456")

	assert.NotEqual(t, anon1, anon2)
}

func TestAnonymizeCommitSHA_EmptyStaysEmpty(t *testing.T) {
	a := New(DefaultConfig())
	assert.Equal(t, "", a.AnonymizeCommitSHA(""))
}

func TestClearMapping(t *testing.T) {
	a := New(DefaultConfig())

	path := "/home/user/file.cpp"
	anon1 := a.AnonymizePath(path)

	a.ClearMapping()

	anon2 := a.AnonymizePath(path)
	assert.Equal(t, anon1, anon2)
	assert.Len(t, a.PathMapping(), 1)
}

func TestPathMapping(t *testing.T) {
	a := New(DefaultConfig())

	a.AnonymizePath("/home/user/file1.cpp")
	a.AnonymizePath("/home/user/file2.cpp")

	mapping := a.PathMapping()
	assert.Len(t, mapping, 2)
	assert.Contains(t, mapping, "/home/user/file1.cpp")
	assert.Contains(t, mapping, "/home/user/file2.cpp")
}

func TestAnonymizeTrace_Basic(t *testing.T) {
	graph := domain.NewDependencyGraph()
	graph.AddEdge("/home/user/project/src/main.cpp", domain.DependencyEdge{
		Target: "/home/user/project/include/widget.h",
		Kind:   domain.EdgeDirectInclude,
	})

	trace := domain.BuildTrace{
		CommitSHA: "abc123def456",
		Branch:    "main",
		CompilationUnits: []domain.CompilationUnit{{
			SourceFile: "/home/user/project/src/main.cpp",
			Includes: []domain.IncludeInfo{{
				Header: "/home/user/project/include/widget.h",
			}},
		}},
		DependencyGraph: graph,
		Metrics: domain.MetricsSummary{
			TopSlowFiles: []domain.SlowFile{{File: "/home/user/project/src/main.cpp"}},
		},
	}

	a := New(DefaultConfig())
	anonymized := a.AnonymizeTrace(trace)

	require.Len(t, anonymized.CompilationUnits, 1)
	assert.NotEqual(t, trace.CompilationUnits[0].SourceFile, anonymized.CompilationUnits[0].SourceFile)
	assert.NotEqual(t, trace.CompilationUnits[0].Includes[0].Header, anonymized.CompilationUnits[0].Includes[0].Header)
	assert.NotEqual(t, trace.CommitSHA, anonymized.CommitSHA)
	assert.Equal(t, "branch_0", anonymized.Branch)

	anonMain := anonymized.CompilationUnits[0].SourceFile
	assert.Contains(t, anonymized.DependencyGraph.GetAllNodes(), anonMain)
	assert.Equal(t, anonMain, anonymized.Metrics.TopSlowFiles[0].File)
}

func TestAnonymizeTrace_PathsUnchangedWhenDisabled(t *testing.T) {
	config := DefaultConfig()
	config.AnonymizePaths = false

	trace := domain.BuildTrace{
		CompilationUnits: []domain.CompilationUnit{{SourceFile: "/home/user/file.cpp"}},
	}

	a := New(config)
	anonymized := a.AnonymizeTrace(trace)

	assert.Equal(t, trace.CompilationUnits[0].SourceFile, anonymized.CompilationUnits[0].SourceFile)
}
