package config

import (
	"os"
	"testing"
)

func TestApplyEnvOverrides_OverridesSetVariable(t *testing.T) {
	t.Setenv("BHA_PCH_MIN_INCLUSION_COUNT", "42")

	cfg := Default()
	ApplyEnvOverrides(cfg)

	if cfg.PCH.MinInclusionCount != 42 {
		t.Errorf("PCH.MinInclusionCount = %d, want 42", cfg.PCH.MinInclusionCount)
	}
}

func TestApplyEnvOverrides_LeavesUnsetFieldsAlone(t *testing.T) {
	os.Unsetenv("BHA_PCH_MIN_INCLUSION_COUNT")

	cfg := Default()
	want := cfg.PCH.MinInclusionCount

	ApplyEnvOverrides(cfg)

	if cfg.PCH.MinInclusionCount != want {
		t.Errorf("PCH.MinInclusionCount changed to %d without env var set, want unchanged %d", cfg.PCH.MinInclusionCount, want)
	}
}

func TestApplyEnvOverrides_BoolVariable(t *testing.T) {
	t.Setenv("BHA_PCH_ENABLED", "false")

	cfg := Default()
	ApplyEnvOverrides(cfg)

	if cfg.PCH.Enabled {
		t.Error("expected PCH.Enabled = false after BHA_PCH_ENABLED=false")
	}
}

func TestApplyEnvOverrides_StringVariable(t *testing.T) {
	t.Setenv("BHA_ANONYMIZER_REPLACEMENT_ROOT", "/anon")

	cfg := Default()
	ApplyEnvOverrides(cfg)

	if cfg.Anonymizer.ReplacementRoot != "/anon" {
		t.Errorf("Anonymizer.ReplacementRoot = %q, want /anon", cfg.Anonymizer.ReplacementRoot)
	}
}

func TestApplyEnvOverrides_ReturnsSamePointer(t *testing.T) {
	cfg := Default()
	got := ApplyEnvOverrides(cfg)

	if got != cfg {
		t.Error("ApplyEnvOverrides should mutate and return the same *Config")
	}
}
