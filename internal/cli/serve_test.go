package cli

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadServeConfig_ParsesYAML(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "test-config.yaml")

	content := `
server:
  listen_addr: ":9090"
  metrics_addr: ":9091"
  metrics: true
`
	if err := os.WriteFile(configFile, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg, err := loadServeConfig(configFile)
	if err != nil {
		t.Fatalf("loadServeConfig() error: %v", err)
	}
	if cfg.ListenAddr != ":9090" {
		t.Errorf("ListenAddr = %s, want :9090", cfg.ListenAddr)
	}
	if cfg.MetricsAddr != ":9091" {
		t.Errorf("MetricsAddr = %s, want :9091", cfg.MetricsAddr)
	}
	if !cfg.Metrics {
		t.Error("expected Metrics = true")
	}
}

func TestLoadServeConfig_MissingFileUsesDefault(t *testing.T) {
	cfg, err := loadServeConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("loadServeConfig() error: %v", err)
	}
	if cfg.ListenAddr != defaultServeAddr {
		t.Errorf("ListenAddr = %s, want %s", cfg.ListenAddr, defaultServeAddr)
	}
}

func TestLoadServeConfig_MalformedYAMLErrors(t *testing.T) {
	tmpDir := t.TempDir()
	configFile := filepath.Join(tmpDir, "bad-config.yaml")
	if err := os.WriteFile(configFile, []byte("not: valid: yaml: [["), 0o644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	if _, err := loadServeConfig(configFile); err == nil {
		t.Error("expected error decoding malformed config")
	}
}
