package domain

// TraceParser decodes one compiler family's timing artifact into a
// CompilationUnit. Implementations must be stateless: the same parser
// instance is shared across concurrent callers.
type TraceParser interface {
	Name() string
	CompilerType() CompilerType
	SupportedExtensions() []string

	CanParse(path string) bool
	CanParseContent(content []byte) bool

	ParseFile(path string) (CompilationUnit, error)
	ParseContent(content []byte, sourceHint string) (CompilationUnit, error)
}

// StreamingTemplateFunc and StreamingIncludeFunc receive records as a
// streaming parser decodes them incrementally.
type StreamingTemplateFunc func(TemplateInstantiation)
type StreamingIncludeFunc func(IncludeInfo)

// StreamingTraceParser is implemented by parsers that can emit template and
// include records incrementally instead of only in batch. A streaming parser
// must produce the same aggregate as its batch ParseFile for the same input.
type StreamingTraceParser interface {
	TraceParser
	SupportsStreaming() bool
	ParseStreaming(path string, onTemplate StreamingTemplateFunc, onInclude StreamingIncludeFunc) error
}
