package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type sample struct {
	Name string `yaml:"name"`
	Port int    `yaml:"port"`
}

func (s *sample) Validate() error {
	if s.Port <= 0 {
		return errors.New("port must be positive")
	}
	return nil
}

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_KeepsDefaults(t *testing.T) {
	cfg := sample{Name: "default", Port: 8080}
	if err := Load(writeFile(t, "port: 9090\n"), &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "default" || cfg.Port != 9090 {
		t.Errorf("cfg = %+v", cfg)
	}
}

func TestLoad_ExpandsEnv(t *testing.T) {
	t.Setenv("KBASE_TEST_NAME", "from-env")
	cfg := sample{Port: 1}
	if err := Load(writeFile(t, "name: ${KBASE_TEST_NAME}\n"), &cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Name != "from-env" {
		t.Errorf("name = %q", cfg.Name)
	}
}

func TestLoad_RejectsUnknownKeys(t *testing.T) {
	cfg := sample{Port: 1}
	err := Load(writeFile(t, "prot: 1\n"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "prot") {
		t.Errorf("err = %v, want unknown field error", err)
	}
}

func TestLoad_Validates(t *testing.T) {
	cfg := sample{Port: 1}
	err := Load(writeFile(t, "port: -1\n"), &cfg)
	if err == nil || !strings.Contains(err.Error(), "validation failed") {
		t.Errorf("err = %v", err)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	cfg := sample{Port: 1}
	if err := Load(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadOptional(t *testing.T) {
	cfg := sample{Port: 1}
	if err := LoadOptional(filepath.Join(t.TempDir(), "nope.yaml"), &cfg); err != nil {
		t.Errorf("missing file: %v", err)
	}
	if err := LoadOptional("", &cfg); err != nil {
		t.Errorf("empty name: %v", err)
	}
	bad := sample{}
	if err := LoadOptional("", &bad); err == nil {
		t.Error("defaults must still be validated")
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	cfg := sample{Port: 3}
	if err := Decode([]byte(""), &cfg); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if cfg.Port != 3 {
		t.Errorf("port = %d", cfg.Port)
	}
}
