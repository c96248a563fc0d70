package config

import (
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is the environment variable prefix bound onto Config fields,
// e.g. BHA_PCH_MIN_INCLUSION_COUNT overrides PCH.MinInclusionCount.
const EnvPrefix = "BHA"

// ApplyEnvOverrides layers BHA_*-prefixed environment variables onto cfg,
// sourced from the environment instead of hardcoded defaults.
func ApplyEnvOverrides(cfg *Config) *Config {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindBool(v, "pch.enabled", &cfg.PCH.Enabled)
	bindInt(v, "pch.min_inclusion_count", &cfg.PCH.MinInclusionCount)
	bindInt(v, "pch.min_parse_time_millis", &cfg.PCH.MinParseTimeMillis)

	bindBool(v, "forward_declaration.enabled", &cfg.ForwardDeclaration.Enabled)
	bindInt(v, "forward_declaration.min_parse_time_millis", &cfg.ForwardDeclaration.MinParseTimeMillis)

	bindBool(v, "include_removal.enabled", &cfg.IncludeRemoval.Enabled)
	bindInt(v, "include_removal.min_parse_time_millis", &cfg.IncludeRemoval.MinParseTimeMillis)

	bindBool(v, "explicit_template.enabled", &cfg.ExplicitTemplate.Enabled)
	bindInt(v, "explicit_template.min_instantiation_count", &cfg.ExplicitTemplate.MinInstantiationCount)
	bindInt(v, "explicit_template.min_total_time_millis", &cfg.ExplicitTemplate.MinTotalTimeMillis)

	bindBool(v, "header_split.enabled", &cfg.HeaderSplit.Enabled)
	bindInt(v, "header_split.min_parse_time_millis", &cfg.HeaderSplit.MinParseTimeMillis)
	bindInt(v, "header_split.min_includer_count", &cfg.HeaderSplit.MinIncluderCount)

	bindBool(v, "pimpl.enabled", &cfg.PIMPL.Enabled)
	bindInt(v, "pimpl.min_compile_time_millis", &cfg.PIMPL.MinCompileTimeMillis)
	bindInt(v, "pimpl.min_include_count", &cfg.PIMPL.MinIncludeCount)

	bindBool(v, "unity_build.enabled", &cfg.UnityBuild.Enabled)
	bindInt(v, "unity_build.max_files_per_group", &cfg.UnityBuild.MaxFilesPerGroup)

	bindInt(v, "pool.workers", &cfg.Pool.Workers)
	bindBool(v, "pool.show_progress", &cfg.Pool.ShowProgress)

	bindBool(v, "anonymizer.anonymize_paths", &cfg.Anonymizer.AnonymizePaths)
	bindBool(v, "anonymizer.anonymize_commit_info", &cfg.Anonymizer.AnonymizeCommitInfo)
	bindString(v, "anonymizer.replacement_root", &cfg.Anonymizer.ReplacementRoot)

	return cfg
}

func bindBool(v *viper.Viper, key string, dst *bool) {
	_ = v.BindEnv(key)
	if v.IsSet(key) {
		*dst = v.GetBool(key)
	}
}

func bindInt(v *viper.Viper, key string, dst *int) {
	_ = v.BindEnv(key)
	if v.IsSet(key) {
		*dst = v.GetInt(key)
	}
}

func bindString(v *viper.Viper, key string, dst *string) {
	_ = v.BindEnv(key)
	if v.IsSet(key) {
		*dst = v.GetString(key)
	}
}
