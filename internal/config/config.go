// Package config holds the layered configuration for an analysis run: one
// section per suggester plus the thread pool and anonymizer, loaded from a
// `.bharc.toml` file and overridable by explicitly-set CLI flags.
package config

import "time"

// Config is the root configuration structure for an analysis run.
type Config struct {
	PCH                PCHConfig                `toml:"pch"`
	ForwardDeclaration ForwardDeclarationConfig `toml:"forward_declaration"`
	IncludeRemoval     IncludeRemovalConfig     `toml:"include_removal"`
	ExplicitTemplate   ExplicitTemplateConfig   `toml:"explicit_template"`
	HeaderSplit        HeaderSplitConfig        `toml:"header_split"`
	PIMPL              PIMPLConfig              `toml:"pimpl"`
	UnityBuild         UnityBuildConfig         `toml:"unity_build"`
	Pool               PoolConfig               `toml:"pool"`
	Anonymizer         AnonymizerConfig         `toml:"anonymizer"`
}

// PCHConfig tunes the precompiled-header suggester. Millisecond fields use
// plain ints rather than time.Duration to keep TOML (de)serialization
// unambiguous (see PoolConfig.TimeoutSeconds for the same convention).
type PCHConfig struct {
	Enabled              bool `toml:"enabled"`
	MinInclusionCount    int  `toml:"min_inclusion_count"`
	MinParseTimeMillis   int  `toml:"min_parse_time_millis"`
	MaxSuggestions       int  `toml:"max_suggestions"`
}

// MinParseTime returns MinParseTimeMillis as a Duration.
func (c PCHConfig) MinParseTime() time.Duration {
	return time.Duration(c.MinParseTimeMillis) * time.Millisecond
}

// ForwardDeclarationConfig tunes the forward-declaration suggester.
type ForwardDeclarationConfig struct {
	Enabled            bool `toml:"enabled"`
	MinParseTimeMillis int  `toml:"min_parse_time_millis"`
	MaxSuggestions     int  `toml:"max_suggestions"`
}

// MinParseTime returns MinParseTimeMillis as a Duration.
func (c ForwardDeclarationConfig) MinParseTime() time.Duration {
	return time.Duration(c.MinParseTimeMillis) * time.Millisecond
}

// IncludeRemovalConfig tunes the include-removal / move-to-cpp suggester.
type IncludeRemovalConfig struct {
	Enabled            bool `toml:"enabled"`
	MinParseTimeMillis int  `toml:"min_parse_time_millis"`
	MaxSuggestions     int  `toml:"max_suggestions"`
}

// MinParseTime returns MinParseTimeMillis as a Duration.
func (c IncludeRemovalConfig) MinParseTime() time.Duration {
	return time.Duration(c.MinParseTimeMillis) * time.Millisecond
}

// ExplicitTemplateConfig tunes the explicit-template-instantiation suggester.
type ExplicitTemplateConfig struct {
	Enabled               bool `toml:"enabled"`
	MinInstantiationCount int  `toml:"min_instantiation_count"`
	MinTotalTimeMillis    int  `toml:"min_total_time_millis"`
	MaxSuggestions        int  `toml:"max_suggestions"`
}

// MinTotalTime returns MinTotalTimeMillis as a Duration.
func (c ExplicitTemplateConfig) MinTotalTime() time.Duration {
	return time.Duration(c.MinTotalTimeMillis) * time.Millisecond
}

// HeaderSplitConfig tunes the header-split suggester.
type HeaderSplitConfig struct {
	Enabled            bool `toml:"enabled"`
	MinParseTimeMillis int  `toml:"min_parse_time_millis"`
	MinIncluderCount   int  `toml:"min_includer_count"`
	MaxSuggestions     int  `toml:"max_suggestions"`
}

// MinParseTime returns MinParseTimeMillis as a Duration.
func (c HeaderSplitConfig) MinParseTime() time.Duration {
	return time.Duration(c.MinParseTimeMillis) * time.Millisecond
}

// PIMPLConfig tunes the PIMPL-pattern suggester.
type PIMPLConfig struct {
	Enabled              bool `toml:"enabled"`
	MinCompileTimeMillis int  `toml:"min_compile_time_millis"`
	MinIncludeCount      int  `toml:"min_include_count"`
	MaxSuggestions       int  `toml:"max_suggestions"`
}

// MinCompileTime returns MinCompileTimeMillis as a Duration.
func (c PIMPLConfig) MinCompileTime() time.Duration {
	return time.Duration(c.MinCompileTimeMillis) * time.Millisecond
}

// UnityBuildConfig tunes the unity-build clustering suggester.
type UnityBuildConfig struct {
	Enabled             bool    `toml:"enabled"`
	MaxFilesPerGroup    int     `toml:"max_files_per_group"`
	MaxTimePerGroupSecs int     `toml:"max_time_per_group_secs"`
	MaxMemoryPerGroupMB int     `toml:"max_memory_per_group_mb"`
	DistanceThreshold   float64 `toml:"distance_threshold"`
	MaxSuggestions      int     `toml:"max_suggestions"`
}

// MaxTimePerGroup returns MaxTimePerGroupSecs as a Duration.
func (c UnityBuildConfig) MaxTimePerGroup() time.Duration {
	return time.Duration(c.MaxTimePerGroupSecs) * time.Second
}

// MaxMemoryPerGroupBytes returns MaxMemoryPerGroupMB in bytes.
func (c UnityBuildConfig) MaxMemoryPerGroupBytes() int {
	return c.MaxMemoryPerGroupMB * 1024 * 1024
}

// PoolConfig tunes the bounded worker pool used to parse trace files.
type PoolConfig struct {
	Workers        int  `toml:"workers"`
	QueueDepth     int  `toml:"queue_depth"`
	TimeoutSeconds int  `toml:"timeout_seconds"`
	ShowProgress   bool `toml:"show_progress"`
}

// AnonymizerConfig mirrors anonymize.Config in a TOML-friendly shape.
type AnonymizerConfig struct {
	AnonymizePaths             bool     `toml:"anonymize_paths"`
	AnonymizeCommitInfo        bool     `toml:"anonymize_commit_info"`
	PreserveExtensions         bool     `toml:"preserve_extensions"`
	PreserveDirectoryStructure bool     `toml:"preserve_directory_structure"`
	ReplacementRoot            string   `toml:"replacement_root"`
	PreservePatterns           []string `toml:"preserve_patterns"`
}

// Default returns the built-in configuration, identical to what
// LoadDefaultConfigFromTOML renders from default_config.toml.tmpl, without
// needing to parse TOML.
func Default() *Config {
	return &Config{
		PCH: PCHConfig{
			Enabled:            true,
			MinInclusionCount:  5,
			MinParseTimeMillis: 100,
			MaxSuggestions:     20,
		},
		ForwardDeclaration: ForwardDeclarationConfig{
			Enabled:            true,
			MinParseTimeMillis: 20,
			MaxSuggestions:     20,
		},
		IncludeRemoval: IncludeRemovalConfig{
			Enabled:            true,
			MinParseTimeMillis: 100,
			MaxSuggestions:     20,
		},
		ExplicitTemplate: ExplicitTemplateConfig{
			Enabled:               true,
			MinInstantiationCount: 3,
			MinTotalTimeMillis:    50,
			MaxSuggestions:        20,
		},
		HeaderSplit: HeaderSplitConfig{
			Enabled:            true,
			MinParseTimeMillis: 200,
			MinIncluderCount:   5,
			MaxSuggestions:     20,
		},
		PIMPL: PIMPLConfig{
			Enabled:              true,
			MinCompileTimeMillis: 500,
			MinIncludeCount:      3,
			MaxSuggestions:       20,
		},
		UnityBuild: UnityBuildConfig{
			Enabled:             true,
			MaxFilesPerGroup:    10,
			MaxTimePerGroupSecs: 30,
			MaxMemoryPerGroupMB: 4096,
			DistanceThreshold:   0.5,
			MaxSuggestions:      20,
		},
		Pool: PoolConfig{
			Workers:        0,
			QueueDepth:     256,
			TimeoutSeconds: 0,
			ShowProgress:   true,
		},
		Anonymizer: AnonymizerConfig{
			AnonymizePaths:             true,
			AnonymizeCommitInfo:        true,
			PreserveExtensions:         true,
			PreserveDirectoryStructure: true,
			ReplacementRoot:            "/project",
		},
	}
}
