package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration
type Config struct {
	Files    FilesConfig    `yaml:"files"`
	DNS      DNSConfig      `yaml:"dns"`
	Mirrors  MirrorsConfig  `yaml:"mirrors"`
	Packages PackagesConfig `yaml:"packages"`
	Sysctl   SysctlConfig   `yaml:"sysctl"`
	Probe    ProbeConfig    `yaml:"probe"`
	History  HistoryConfig  `yaml:"history"`
}

// FilesConfig holds the paths of the system files the tool rewrites
type FilesConfig struct {
	SourcesList string `yaml:"sources_list"`
	ResolvConf  string `yaml:"resolv_conf"`
	SysctlConf  string `yaml:"sysctl_conf"`
}

// DNSConfig holds the nameserver lists per fix mode
type DNSConfig struct {
	Normal     []string `yaml:"normal"`
	Aggressive []string `yaml:"aggressive"`
}

// MirrorsConfig holds the sources.list mirror sets per fix mode
type MirrorsConfig struct {
	Normal     []string `yaml:"normal"`
	Aggressive []string `yaml:"aggressive"`
}

// PackagesConfig holds the keyring bootstrap settings
type PackagesConfig struct {
	Keyrings  []string `yaml:"keyrings"`
	ProxyConf string   `yaml:"proxy_conf"`
}

// SysctlConfig holds the kernel tuning lines
type SysctlConfig struct {
	Params []string `yaml:"params"`
}

// ProbeConfig holds connectivity test settings
type ProbeConfig struct {
	Endpoints      []string `yaml:"endpoints"`
	LookupHost     string   `yaml:"lookup_host"`
	TimeoutSeconds int      `yaml:"timeout_seconds"`
}

// HistoryConfig holds run-history store settings
type HistoryConfig struct {
	DBPath string `yaml:"db_path"`
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Files: FilesConfig{
			SourcesList: "/etc/apt/sources.list",
			ResolvConf:  "/etc/resolv.conf",
			SysctlConf:  "/etc/sysctl.conf",
		},
		DNS: DNSConfig{
			Normal:     []string{"178.22.122.100", "185.51.200.2", "10.202.10.202"},
			Aggressive: []string{"178.22.122.100", "185.51.200.2", "10.202.10.202", "10.202.10.102"},
		},
		Mirrors: MirrorsConfig{
			Normal: []string{
				"deb https://mirror.arvancloud.ir/ubuntu jammy main restricted universe multiverse",
				"deb https://mirror.arvancloud.ir/ubuntu jammy-updates main restricted universe multiverse",
			},
			Aggressive: []string{
				"deb https://ir.archive.ubuntu.com/ubuntu jammy main restricted universe multiverse",
				"deb https://ir.archive.ubuntu.com/ubuntu jammy-updates main restricted universe multiverse",
				"deb https://ir.archive.ubuntu.com/ubuntu jammy-security main restricted universe multiverse",
			},
		},
		Packages: PackagesConfig{
			Keyrings:  []string{"ubuntu-keyring", "debian-archive-keyring"},
			ProxyConf: "/etc/apt/apt.conf.d/95netfix-proxy",
		},
		Sysctl: SysctlConfig{
			Params: []string{
				"net.core.default_qdisc = fq",
				"net.ipv4.tcp_congestion_control = bbr",
			},
		},
		Probe: ProbeConfig{
			Endpoints: []string{
				"https://mirror.arvancloud.ir",
				"https://ir.archive.ubuntu.com",
				"https://archive.ubuntu.com",
				"https://www.google.com",
			},
			LookupHost:     "google.com",
			TimeoutSeconds: 5,
		},
		History: HistoryConfig{
			DBPath: "/var/lib/netfix/netfix.db",
		},
	}
}

// Load reads a config file from the given path
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in standard locations
func FindConfigFile() (string, error) {
	searchPaths := []string{
		"netfix.yaml",
		"/etc/netfix/netfix.yaml",
	}

	// Add user config path
	if home, err := os.UserHomeDir(); err == nil {
		searchPaths = append(searchPaths,
			filepath.Join(home, ".config", "netfix", "netfix.yaml"),
		)
	}

	for _, path := range searchPaths {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no config file found (searched: %v)", searchPaths)
}
