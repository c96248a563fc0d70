package config

import (
	"bytes"
	_ "embed"
	"fmt"
	"text/template"

	"github.com/pelletier/go-toml/v2"
)

//go:embed default_config.toml.tmpl
var defaultConfigTmpl string

// defaultConfigValues holds every value substituted into the embedded
// default config template, sourced from Default() so the template and the
// in-memory default never drift apart.
type defaultConfigValues struct {
	PCHMinInclusionCount              int
	PCHMinParseTimeMillis             int
	ForwardDeclMinParseTimeMillis     int
	IncludeRemovalMinParseTimeMillis  int
	TemplateMinInstantiationCount     int
	TemplateMinTotalTimeMillis        int
	HeaderSplitMinParseTimeMillis     int
	HeaderSplitMinIncluderCount       int
	PIMPLMinCompileTimeMillis         int
	PIMPLMinIncludeCount              int
	UnityMaxFilesPerGroup             int
	UnityMaxTimePerGroupSecs          int
	UnityMaxMemoryPerGroupMB          int
	UnityDistanceThreshold            float64
	MaxSuggestionsPerType             int
	PoolQueueDepth                    int
	AnonymizerReplacementRoot         string
}

func newDefaultConfigValues() defaultConfigValues {
	d := Default()
	return defaultConfigValues{
		PCHMinInclusionCount:             d.PCH.MinInclusionCount,
		PCHMinParseTimeMillis:            d.PCH.MinParseTimeMillis,
		ForwardDeclMinParseTimeMillis:    d.ForwardDeclaration.MinParseTimeMillis,
		IncludeRemovalMinParseTimeMillis: d.IncludeRemoval.MinParseTimeMillis,
		TemplateMinInstantiationCount:    d.ExplicitTemplate.MinInstantiationCount,
		TemplateMinTotalTimeMillis:       d.ExplicitTemplate.MinTotalTimeMillis,
		HeaderSplitMinParseTimeMillis:    d.HeaderSplit.MinParseTimeMillis,
		HeaderSplitMinIncluderCount:      d.HeaderSplit.MinIncluderCount,
		PIMPLMinCompileTimeMillis:        d.PIMPL.MinCompileTimeMillis,
		PIMPLMinIncludeCount:             d.PIMPL.MinIncludeCount,
		UnityMaxFilesPerGroup:            d.UnityBuild.MaxFilesPerGroup,
		UnityMaxTimePerGroupSecs:         d.UnityBuild.MaxTimePerGroupSecs,
		UnityMaxMemoryPerGroupMB:         d.UnityBuild.MaxMemoryPerGroupMB,
		UnityDistanceThreshold:           d.UnityBuild.DistanceThreshold,
		MaxSuggestionsPerType:            d.PCH.MaxSuggestions,
		PoolQueueDepth:                   d.Pool.QueueDepth,
		AnonymizerReplacementRoot:        d.Anonymizer.ReplacementRoot,
	}
}

// GenerateDefaultConfigTOML renders the embedded default config template.
func GenerateDefaultConfigTOML() (string, error) {
	tmpl, err := template.New("default_config").Parse(defaultConfigTmpl)
	if err != nil {
		return "", fmt.Errorf("parse default config template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, newDefaultConfigValues()); err != nil {
		return "", fmt.Errorf("render default config template: %w", err)
	}

	return buf.String(), nil
}

// LoadDefaultConfigFromTOML parses the rendered default template back into
// a Config, exercising the same TOML decode path a user-supplied
// .bharc.toml would go through.
func LoadDefaultConfigFromTOML() (*Config, error) {
	rendered, err := GenerateDefaultConfigTOML()
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := toml.Unmarshal([]byte(rendered), cfg); err != nil {
		return nil, fmt.Errorf("decode rendered default config: %w", err)
	}

	return cfg, nil
}
