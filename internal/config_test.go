package internal

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/starford/kbase/internal/library"
	"github.com/starford/kbase/internal/models"
	"github.com/starford/kbase/internal/storage"
	"github.com/starford/kbase/pkg/config"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestDefaultConfig_Valid(t *testing.T) {
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
	if cfg.App.Production() {
		t.Error("default environment should be development")
	}
}

func TestApplicationConfig_Environment(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.App.Environment = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty environment should default: %v", err)
	}
	if cfg.App.Environment != EnvDevelopment {
		t.Errorf("environment = %q", cfg.App.Environment)
	}

	cfg.App.Environment = EnvProduction
	if err := cfg.Validate(); err != nil || !cfg.App.Production() {
		t.Errorf("production: err = %v", err)
	}

	cfg.App.Environment = "staging"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown environment should fail")
	}
}

func TestContentConfig_DefaultsPattern(t *testing.T) {
	cfg := ContentConfig{Path: "./content"}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.Pattern != storage.DefaultPattern {
		t.Errorf("pattern = %q", cfg.Pattern)
	}
	if err := (&ContentConfig{}).Validate(); err == nil {
		t.Error("empty path should fail")
	}
}

func TestQualityConfig_NegativeWorkers(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Quality.Workers = -1
	if err := cfg.Validate(); err == nil {
		t.Error("negative workers should fail")
	}
}

func TestConfig_Paths(t *testing.T) {
	cfg := NewDefaultConfig()
	path := library.PathConfig{ID: "nlp", Title: "NLP", Level: models.LevelBeginner, Slugs: []string{"attention"}}
	cfg.Paths = []library.PathConfig{path}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("valid path: %v", err)
	}

	cfg.Paths = append(cfg.Paths, path)
	err := cfg.Validate()
	if err == nil || !strings.Contains(err.Error(), "duplicate id") {
		t.Errorf("duplicate path: err = %v", err)
	}

	cfg.Paths = []library.PathConfig{{ID: "empty", Title: "Empty"}}
	if err := cfg.Validate(); err == nil {
		t.Error("path without slugs should fail")
	}

	opts := NewDefaultConfig().LibraryOptions()
	if opts.IncludeDrafts || opts.Paths != nil {
		t.Errorf("library options = %+v", opts)
	}
}

func TestConfig_LoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	t.Setenv("KBASE_TEST_TOKEN", "s3cret")
	yaml := `app:
  log_level: debug
  environment: production
  http:
    port: 9000
content:
  path: ./docs
  include_drafts: true
auth:
  mode: token
  token: ${KBASE_TEST_TOKEN}
paths:
  - id: basics
    title: Basics
    level: beginner
    estimated_minutes: 30
    slugs: [embeddings, attention]
`
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := NewDefaultConfig()
	if err := config.Load(path, cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.App.LogLevel != slog.LevelDebug || cfg.App.HTTP.Port != 9000 || !cfg.App.Production() {
		t.Errorf("app = %+v", cfg.App)
	}
	if cfg.Auth.Token != "s3cret" {
		t.Errorf("token = %q", cfg.Auth.Token)
	}
	if cfg.SQLite.Path != "./kbase.db" || cfg.Content.Pattern != storage.DefaultPattern {
		t.Error("defaults should survive a partial file")
	}
	if len(cfg.Paths) != 1 || cfg.Paths[0].EstimatedMinutes != 30 {
		t.Errorf("paths = %+v", cfg.Paths)
	}
}
