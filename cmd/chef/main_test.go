package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func TestNormalizeSingleDashFlagsRewritesKnownLongFlags(t *testing.T) {
	got := normalizeSingleDashFlags([]string{"run", "-strict", "-debug-only=parser", "recipe.chef", "--config", "x.toml"})
	want := []string{"run", "--strict", "--debug-only=parser", "recipe.chef", "--config", "x.toml"}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestNormalizeSingleDashFlagsLeavesShorthandFlagsAlone(t *testing.T) {
	got := normalizeSingleDashFlags([]string{"parse", "-j", "recipe.chef"})
	want := []string{"parse", "-j", "recipe.chef"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("arg %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestLoadConfigMergesTOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chef.toml")
	contents := "strict = true\ndebug_categories = [\"interp\"]\nmix_seed = 7\ndiagnostics_format = \"yaml\"\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing temp config: %v", err)
	}

	prevPath := flagConfigPath
	flagConfigPath = path
	defer func() { flagConfigPath = prevPath }()

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("Strict = false, want true")
	}
	if len(cfg.DebugCategories) != 1 || cfg.DebugCategories[0] != "interp" {
		t.Errorf("DebugCategories = %v, want [interp]", cfg.DebugCategories)
	}
	if cfg.MixSeed != 7 {
		t.Errorf("MixSeed = %d, want 7", cfg.MixSeed)
	}
	if cfg.DiagnosticsFormat != "yaml" {
		t.Errorf("DiagnosticsFormat = %q, want yaml", cfg.DiagnosticsFormat)
	}
}

func TestResolvedOptionsFlagsOverrideConfig(t *testing.T) {
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().BoolVar(&flagStrict, "strict", false, "")
	cmd.Flags().StringArrayVar(&flagDebugOnly, "debug-only", nil, "")
	cmd.Flags().StringVar(&flagDiagFormat, "diagnostics-format", "text", "")

	if err := cmd.Flags().Parse([]string{"--strict", "--debug-only=scope"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cfg := chefConfig{Strict: false, DebugCategories: []string{"parser"}, DiagnosticsFormat: "yaml"}
	strict, debugCats, diagFormat, _ := resolvedOptions(cmd, cfg)

	if !strict {
		t.Errorf("strict = false, want true (flag should override config)")
	}
	if len(debugCats) != 1 || debugCats[0] != "scope" {
		t.Errorf("debugCats = %v, want [scope] (flag should override config)", debugCats)
	}
	if diagFormat != "yaml" {
		t.Errorf("diagFormat = %q, want yaml (config value, flag not set)", diagFormat)
	}
}
