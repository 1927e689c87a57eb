package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/clintrovert/nudgebot/pkg/types"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CLICKUP_API_KEY", "pk_test")
	t.Setenv("OPENAI_API_KEY", "sk_test")
	t.Setenv("SLACK_BOT_TOKEN", "xoxb_test")
	t.Setenv("SLACK_CHANNEL_ID", "C012345")
}

func TestLoadMissingCredentials(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("CLICKUP_API_KEY", "")
	t.Setenv("SLACK_BOT_TOKEN", "")

	_, err := Load()
	var missing *ErrMissingCredential
	if !errors.As(err, &missing) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
	if len(missing.Vars) != 2 {
		t.Errorf("missing vars = %v, want both empty ones", missing.Vars)
	}
	if !strings.Contains(missing.Error(), "CLICKUP_API_KEY") {
		t.Errorf("error should name the missing variable: %v", missing)
	}
}

func TestLoadDefaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.ListConfigFile != "clickup_config.json" {
		t.Errorf("ListConfigFile = %q", cfg.ListConfigFile)
	}
	if cfg.UserMappingFile != "user_mapping.json" {
		t.Errorf("UserMappingFile = %q", cfg.UserMappingFile)
	}
	if cfg.PostDelay != 3*time.Minute {
		t.Errorf("PostDelay = %v, want 3m", cfg.PostDelay)
	}
	if !cfg.SkipWeekends {
		t.Error("SkipWeekends should default to true")
	}
}

func TestLoadOverrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("POST_DELAY", "10s")
	t.Setenv("SKIP_WEEKENDS", "false")
	t.Setenv("CLICKUP_CONFIG_FILE", "custom.json")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.PostDelay != 10*time.Second {
		t.Errorf("PostDelay = %v, want 10s", cfg.PostDelay)
	}
	if cfg.SkipWeekends {
		t.Error("SkipWeekends should be overridable")
	}
	if cfg.ListConfigFile != "custom.json" {
		t.Errorf("ListConfigFile = %q, want custom.json", cfg.ListConfigFile)
	}
}

func TestListConfigRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "clickup_config.json")

	in := ListConfig{
		Lists: []types.TrackedList{
			{ID: "1", Name: "Bugs", Type: types.ListTypeBug, Enabled: true},
			{ID: "2", Name: "Sprint 9", Type: types.ListTypeSprint, Enabled: false, Discovered: true},
		},
		Discovery: DiscoverySettings{ExcludeFolders: []string{"archived"}},
	}
	if err := SaveListConfig(path, in); err != nil {
		t.Fatalf("SaveListConfig() error: %v", err)
	}

	out, err := LoadListConfig(path)
	if err != nil {
		t.Fatalf("LoadListConfig() error: %v", err)
	}
	if len(out.Lists) != 2 || out.Lists[0].Name != "Bugs" || out.Lists[1].Discovered != true {
		t.Errorf("round trip mismatch: %+v", out.Lists)
	}
	if len(out.Discovery.ExcludeFolders) != 1 {
		t.Errorf("discovery settings lost: %+v", out.Discovery)
	}
}

func TestLoadListConfigMissingFile(t *testing.T) {
	cfg, err := LoadListConfig(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if len(cfg.Lists) != 0 {
		t.Errorf("expected empty config, got %+v", cfg)
	}
}

func TestLoadListConfigInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadListConfig(path); err == nil {
		t.Fatal("expected parse error for invalid JSON")
	}
}

func TestLoadUserMappingsDefaults(t *testing.T) {
	mappings, err := LoadUserMappings(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if mappings.DefaultMention != "@channel" {
		t.Errorf("DefaultMention = %q", mappings.DefaultMention)
	}
	if mappings.FallbackBehavior != types.FallbackSourceName {
		t.Errorf("FallbackBehavior = %q", mappings.FallbackBehavior)
	}
	if mappings.Mappings == nil {
		t.Error("Mappings map should never be nil")
	}
}

func TestLoadUserMappingsLegacyAlias(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_mapping.json")
	content := `{
		"user_mappings": {"mike": "U03ABCDEF"},
		"default_mention": "@here",
		"fallback_behavior": "use_clickup_name"
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	mappings, err := LoadUserMappings(path)
	if err != nil {
		t.Fatalf("LoadUserMappings() error: %v", err)
	}
	if mappings.FallbackBehavior != types.FallbackSourceName {
		t.Errorf("legacy use_clickup_name should map to use_source_name, got %q", mappings.FallbackBehavior)
	}
	if mappings.Mappings["mike"] != "U03ABCDEF" {
		t.Errorf("mapping lost: %+v", mappings.Mappings)
	}
	if mappings.DefaultMention != "@here" {
		t.Errorf("DefaultMention = %q", mappings.DefaultMention)
	}
}
