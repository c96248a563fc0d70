package config

import (
	"strings"
	"testing"
)

func TestGenerateDefaultConfigTOML_ContainsAllSections(t *testing.T) {
	rendered, err := GenerateDefaultConfigTOML()
	if err != nil {
		t.Fatalf("GenerateDefaultConfigTOML() error = %v", err)
	}

	for _, section := range []string{
		"[pch]", "[forward_declaration]", "[include_removal]",
		"[explicit_template]", "[header_split]", "[pimpl]",
		"[unity_build]", "[pool]", "[anonymizer]",
	} {
		if !strings.Contains(rendered, section) {
			t.Errorf("rendered config missing section %s", section)
		}
	}
}

func TestGenerateDefaultConfigTOML_NoUnresolvedTemplateDirectives(t *testing.T) {
	rendered, err := GenerateDefaultConfigTOML()
	if err != nil {
		t.Fatalf("GenerateDefaultConfigTOML() error = %v", err)
	}

	if strings.Contains(rendered, "{{") || strings.Contains(rendered, "}}") {
		t.Error("rendered config still contains unresolved template directives")
	}
}

func TestLoadDefaultConfigFromTOML_MatchesDefault(t *testing.T) {
	cfg, err := LoadDefaultConfigFromTOML()
	if err != nil {
		t.Fatalf("LoadDefaultConfigFromTOML() error = %v", err)
	}

	want := Default()
	if cfg.PCH != want.PCH {
		t.Errorf("PCH = %+v, want %+v", cfg.PCH, want.PCH)
	}
	if cfg.PIMPL != want.PIMPL {
		t.Errorf("PIMPL = %+v, want %+v", cfg.PIMPL, want.PIMPL)
	}
	if cfg.UnityBuild != want.UnityBuild {
		t.Errorf("UnityBuild = %+v, want %+v", cfg.UnityBuild, want.UnityBuild)
	}
	if cfg.Pool != want.Pool {
		t.Errorf("Pool = %+v, want %+v", cfg.Pool, want.Pool)
	}
	if cfg.Anonymizer.ReplacementRoot != want.Anonymizer.ReplacementRoot {
		t.Errorf("Anonymizer.ReplacementRoot = %q, want %q", cfg.Anonymizer.ReplacementRoot, want.Anonymizer.ReplacementRoot)
	}
}
