package config

import (
	"os"
	"path/filepath"
	"testing"
)

// TestDefaultConfig verifies that DefaultConfig returns sensible defaults
func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	tests := []struct {
		name     string
		getValue func(*Config) string
		want     string
	}{
		{"sources list", func(c *Config) string { return c.Files.SourcesList }, "/etc/apt/sources.list"},
		{"resolv conf", func(c *Config) string { return c.Files.ResolvConf }, "/etc/resolv.conf"},
		{"sysctl conf", func(c *Config) string { return c.Files.SysctlConf }, "/etc/sysctl.conf"},
		{"proxy conf", func(c *Config) string { return c.Packages.ProxyConf }, "/etc/apt/apt.conf.d/95netfix-proxy"},
		{"lookup host", func(c *Config) string { return c.Probe.LookupHost }, "google.com"},
		{"db path", func(c *Config) string { return c.History.DBPath }, "/var/lib/netfix/netfix.db"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.getValue(cfg)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	if len(cfg.DNS.Normal) != 3 {
		t.Errorf("DNS.Normal length = %d, want 3", len(cfg.DNS.Normal))
	}
	if len(cfg.DNS.Aggressive) != 4 {
		t.Errorf("DNS.Aggressive length = %d, want 4", len(cfg.DNS.Aggressive))
	}
	if len(cfg.Mirrors.Normal) != 2 {
		t.Errorf("Mirrors.Normal length = %d, want 2", len(cfg.Mirrors.Normal))
	}
	if len(cfg.Mirrors.Aggressive) != 3 {
		t.Errorf("Mirrors.Aggressive length = %d, want 3", len(cfg.Mirrors.Aggressive))
	}
	if len(cfg.Packages.Keyrings) != 2 {
		t.Errorf("Packages.Keyrings length = %d, want 2", len(cfg.Packages.Keyrings))
	}
	if len(cfg.Sysctl.Params) != 2 {
		t.Errorf("Sysctl.Params length = %d, want 2", len(cfg.Sysctl.Params))
	}
	if cfg.Probe.TimeoutSeconds != 5 {
		t.Errorf("Probe.TimeoutSeconds = %d, want 5", cfg.Probe.TimeoutSeconds)
	}
}

// TestLoad tests loading a valid config file over the defaults
func TestLoad(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "netfix.yaml")

	configContent := `
files:
  sources_list: "/tmp/sources.list"
dns:
  normal:
    - "1.1.1.1"
    - "8.8.8.8"
probe:
  lookup_host: "example.com"
  timeout_seconds: 2
`

	if err := os.WriteFile(configFile, []byte(configContent), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	cfg, err := Load(configFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Files.SourcesList != "/tmp/sources.list" {
		t.Errorf("Files.SourcesList = %q, want %q", cfg.Files.SourcesList, "/tmp/sources.list")
	}
	if len(cfg.DNS.Normal) != 2 || cfg.DNS.Normal[0] != "1.1.1.1" {
		t.Errorf("DNS.Normal = %v, want [1.1.1.1 8.8.8.8]", cfg.DNS.Normal)
	}
	if cfg.Probe.LookupHost != "example.com" {
		t.Errorf("Probe.LookupHost = %q, want %q", cfg.Probe.LookupHost, "example.com")
	}
	if cfg.Probe.TimeoutSeconds != 2 {
		t.Errorf("Probe.TimeoutSeconds = %d, want 2", cfg.Probe.TimeoutSeconds)
	}

	// Sections absent from the file keep their defaults
	if cfg.Files.ResolvConf != "/etc/resolv.conf" {
		t.Errorf("Files.ResolvConf = %q, want default", cfg.Files.ResolvConf)
	}
	if len(cfg.Mirrors.Aggressive) != 3 {
		t.Errorf("Mirrors.Aggressive length = %d, want 3", len(cfg.Mirrors.Aggressive))
	}
}

// TestLoadMissingFile tests loading a non-existent config file
func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/netfix.yaml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

// TestLoadInvalidYAML tests loading a malformed config file
func TestLoadInvalidYAML(t *testing.T) {
	tempDir := t.TempDir()
	configFile := filepath.Join(tempDir, "netfix.yaml")

	if err := os.WriteFile(configFile, []byte("files: [broken"), 0644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}

	if _, err := Load(configFile); err == nil {
		t.Fatal("expected error for invalid YAML")
	}
}
