package config

import "testing"

func TestDefault_AllSuggestersEnabled(t *testing.T) {
	cfg := Default()

	if !cfg.PCH.Enabled {
		t.Error("expected PCH suggester enabled by default")
	}
	if !cfg.ForwardDeclaration.Enabled {
		t.Error("expected forward declaration suggester enabled by default")
	}
	if !cfg.IncludeRemoval.Enabled {
		t.Error("expected include removal suggester enabled by default")
	}
	if !cfg.ExplicitTemplate.Enabled {
		t.Error("expected explicit template suggester enabled by default")
	}
	if !cfg.HeaderSplit.Enabled {
		t.Error("expected header split suggester enabled by default")
	}
	if !cfg.PIMPL.Enabled {
		t.Error("expected PIMPL suggester enabled by default")
	}
	if !cfg.UnityBuild.Enabled {
		t.Error("expected unity build suggester enabled by default")
	}
}

func TestDefault_MatchesSuggesterConstants(t *testing.T) {
	cfg := Default()

	if cfg.PCH.MinInclusionCount != 5 {
		t.Errorf("PCH.MinInclusionCount = %d, want 5", cfg.PCH.MinInclusionCount)
	}
	if cfg.PCH.MinParseTime().Milliseconds() != 100 {
		t.Errorf("PCH.MinParseTime() = %v, want 100ms", cfg.PCH.MinParseTime())
	}
	if cfg.PIMPL.MinCompileTime().Milliseconds() != 500 {
		t.Errorf("PIMPL.MinCompileTime() = %v, want 500ms", cfg.PIMPL.MinCompileTime())
	}
	if cfg.PIMPL.MinIncludeCount != 3 {
		t.Errorf("PIMPL.MinIncludeCount = %d, want 3", cfg.PIMPL.MinIncludeCount)
	}
	if cfg.UnityBuild.MaxFilesPerGroup != 10 {
		t.Errorf("UnityBuild.MaxFilesPerGroup = %d, want 10", cfg.UnityBuild.MaxFilesPerGroup)
	}
	if cfg.UnityBuild.MaxTimePerGroup().Seconds() != 30 {
		t.Errorf("UnityBuild.MaxTimePerGroup() = %v, want 30s", cfg.UnityBuild.MaxTimePerGroup())
	}
	if cfg.UnityBuild.MaxMemoryPerGroupBytes() != 4096*1024*1024 {
		t.Errorf("UnityBuild.MaxMemoryPerGroupBytes() = %d, want 4GiB", cfg.UnityBuild.MaxMemoryPerGroupBytes())
	}
	if cfg.UnityBuild.DistanceThreshold != 0.5 {
		t.Errorf("UnityBuild.DistanceThreshold = %v, want 0.5", cfg.UnityBuild.DistanceThreshold)
	}
}

func TestDefault_AnonymizerEnabledByDefault(t *testing.T) {
	cfg := Default()

	if !cfg.Anonymizer.AnonymizePaths {
		t.Error("expected AnonymizePaths true by default")
	}
	if !cfg.Anonymizer.AnonymizeCommitInfo {
		t.Error("expected AnonymizeCommitInfo true by default")
	}
	if cfg.Anonymizer.ReplacementRoot != "/project" {
		t.Errorf("ReplacementRoot = %q, want /project", cfg.Anonymizer.ReplacementRoot)
	}
}

func TestDefault_ReturnsFreshInstanceEachCall(t *testing.T) {
	a := Default()
	b := Default()

	a.PCH.MinInclusionCount = 99
	if b.PCH.MinInclusionCount == 99 {
		t.Error("Default() should return independent instances, not a shared pointer")
	}
}
