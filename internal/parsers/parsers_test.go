package parsers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gregorian-09/buildhotspot/domain"
)

func TestClangParser_CanParseContent(t *testing.T) {
	p := NewClangParser()
	assert.True(t, p.CanParseContent([]byte(`{"traceEvents":[]}`)))
	assert.False(t, p.CanParseContent([]byte("unrelated text")))
}

func TestClangParser_TotalTimeFallsBackToFrontendPlusBackend(t *testing.T) {
	p := NewClangParser()
	content := []byte(`{
		"traceEvents": [
			{"name": "Total Frontend", "dur": 100000},
			{"name": "Total Backend", "dur": 50000}
		]
	}`)

	unit, err := p.ParseContent(content, "main.cpp")
	require.NoError(t, err)
	assert.Equal(t, unit.Metrics.FrontendTime+unit.Metrics.BackendTime, unit.Metrics.TotalTime)
}

func TestClangParser_TemplatesAndIncludesSortedDescending(t *testing.T) {
	p := NewClangParser()
	content := []byte(`{
		"traceEvents": [
			{"name": "InstantiateClass", "dur": 10, "args": {"detail": "A<int>"}},
			{"name": "InstantiateClass", "dur": 40, "args": {"detail": "B<int>"}},
			{"name": "Source", "dur": 5, "args": {"detail": "a.h"}},
			{"name": "Source", "dur": 20, "args": {"detail": "b.h"}}
		]
	}`)

	unit, err := p.ParseContent(content, "main.cpp")
	require.NoError(t, err)
	require.Len(t, unit.Templates, 2)
	assert.Equal(t, "B<int>", unit.Templates[0].FullSignature)
	assert.True(t, unit.Templates[0].Time >= unit.Templates[1].Time)

	require.Len(t, unit.Includes, 2)
	assert.Equal(t, "b.h", unit.Includes[0].Header)
	assert.True(t, unit.Includes[0].ParseTime >= unit.Includes[1].ParseTime)
}

func TestGCCParser_CanParseContent(t *testing.T) {
	p := NewGCCParser()
	valid := "Time variable                                   usr           sys          wall\n" +
		" phase parsing                    :   1.00 ( 50%)   0.00 (  0%)   1.00 ( 50%)\n"
	assert.True(t, p.CanParseContent([]byte(valid)))
	assert.False(t, p.CanParseContent([]byte("unrelated text")))
}

func TestGCCParser_PhaseMapping(t *testing.T) {
	p := NewGCCParser()
	content := "Time variable                                   usr           sys          wall\n" +
		" phase parsing                    :   1.00 ( 50%)   0.00 (  0%)   1.00 ( 50%)\n" +
		" phase opt and generate           :   2.00 ( 50%)   0.00 (  0%)   2.00 ( 50%)\n"

	unit, err := p.ParseContent([]byte(content), "main.cpp")
	require.NoError(t, err)
	assert.Equal(t, unit.Metrics.Breakdown.Parsing.Seconds(), 1.0)
	assert.Equal(t, unit.Metrics.Breakdown.Optimization.Seconds(), 1.0)
	assert.Equal(t, unit.Metrics.Breakdown.CodeGeneration.Seconds(), 1.0)
	assert.Equal(t, unit.Metrics.TotalTime.Seconds(), 3.0)
}

func TestMSVCParser_CanParseContent(t *testing.T) {
	p := NewMSVCParser()
	valid := `time(C:\path\to\c1xx.dll)=1.500s < 0 - 1 > BB [source.cpp]`
	assert.True(t, p.CanParseContent([]byte(valid)))
	assert.False(t, p.CanParseContent([]byte("unrelated text")))
}

func TestMSVCParser_FrontendBackendSplit(t *testing.T) {
	p := NewMSVCParser()
	content := "time(C:\\path\\c1xx.dll)=2.000s < 0 - 2 > BB [source.cpp]\n" +
		"time(C:\\path\\c2.dll)=1.000s < 2 - 3 > BB [source.cpp]\n"

	unit, err := p.ParseContent([]byte(content), "source.cpp")
	require.NoError(t, err)
	assert.Equal(t, 2.0, unit.Metrics.FrontendTime.Seconds())
	assert.Equal(t, 1.0, unit.Metrics.BackendTime.Seconds())
	assert.Equal(t, 3.0, unit.Metrics.TotalTime.Seconds())
}

func TestIntelClassicParser_CanParseContent(t *testing.T) {
	p := NewIntelClassicParser()
	assert.True(t, p.CanParseContent([]byte("Intel(R) C++ Compiler report")))
	assert.True(t, p.CanParseContent([]byte("LOOP BEGIN at main.cpp:10\nicc optimization")))
	assert.False(t, p.CanParseContent([]byte("unrelated text")))
}

func TestIntelOneAPIParser_CanParseContent(t *testing.T) {
	p := NewIntelOneAPIParser()
	assert.True(t, p.CanParseContent([]byte(`{"traceEvents": [], "note": "icx build"}`)))
	assert.False(t, p.CanParseContent([]byte(`{"traceEvents": []}`)))
	assert.False(t, p.CanParseContent([]byte("unrelated text")))
}

func TestNVCCParser_CanParseContent(t *testing.T) {
	p := NewNVCCParser()
	assert.True(t, p.CanParseContent([]byte("nvcc warning: invoking ptxas")))
	assert.True(t, p.CanParseContent([]byte("cicc: 1.2s")))
	assert.False(t, p.CanParseContent([]byte("unrelated text")))
}

func TestNVCCParser_HostDeviceLinkClassification(t *testing.T) {
	p := NewNVCCParser()
	content := "compile: 2.0s\nptx: 1.0s\nlink: 0.5s\n"

	unit, err := p.ParseContent([]byte(content), "kernel.cu")
	require.NoError(t, err)
	assert.Equal(t, 2.0, unit.Metrics.FrontendTime.Seconds())
	assert.InDelta(t, 1.5, unit.Metrics.BackendTime.Seconds(), 1e-9)
}

func TestRegistry_AutoDetectsIntelOneAPIBeforeClang(t *testing.T) {
	r := NewRegistry()
	r.Register(NewIntelOneAPIParser())
	r.Register(NewClangParser())

	content := []byte(`{"traceEvents": [], "note": "built with icx"}`)
	found := r.FindForContent(content)
	require.NotNil(t, found)
	assert.Equal(t, "Intel oneAPI", found.Name())
}

func TestRegistry_GetByType(t *testing.T) {
	r := RegisterAll()
	assert.NotNil(t, r.GetByType(domain.CompilerGCC))
}

func TestRegistry_ListReturnsRegistrationOrder(t *testing.T) {
	r := NewRegistry()
	r.Register(NewIntelOneAPIParser())
	r.Register(NewClangParser())

	list := r.List()
	require.Len(t, list, 2)
	assert.Equal(t, "Intel oneAPI", list[0].Name())
	assert.Equal(t, "Clang", list[1].Name())
}
