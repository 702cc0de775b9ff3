package cfg

import (
	"strings"
	"testing"
)

func TestGetVersion(t *testing.T) {
	// Test default version
	if GetVersion() == "" {
		t.Error("GetVersion should never return empty string")
	}

	// Test that version is at least "dev" or "unknown"
	version := GetVersion()
	if version != "dev" && version != "unknown" {
		// This is fine, version could be set at build time
		t.Logf("Version: %s", version)
	}
}

func TestDefaultUserAgent(t *testing.T) {
	if !strings.Contains(DefaultUserAgent, "Mozilla/5.0") {
		t.Errorf("Expected browser-like user agent, got '%s'", DefaultUserAgent)
	}
	if !strings.Contains(DefaultUserAgent, "Safari") {
		t.Errorf("Expected Safari user agent, got '%s'", DefaultUserAgent)
	}
}

func TestConfigFields(t *testing.T) {
	// Create a config instance to test field access
	cfg := &Cfg{
		SourcesFile:  "./sources.yml",
		Port:         "8080",
		BaseUrl:      "https://updates.example.com",
		Concurrency:  8,
		SnapshotTTL:  300,
		APIAccessKey: "test-key",
		UserAgent:    "Test Agent",
		Timezone:     "Europe/Kyiv",
		Debug:        true,
		Version:      "test-version",
	}

	// Test direct field access
	if cfg.SourcesFile != "./sources.yml" {
		t.Errorf("Expected sources file './sources.yml', got '%s'", cfg.SourcesFile)
	}
	if cfg.Port != "8080" {
		t.Errorf("Expected port '8080', got '%s'", cfg.Port)
	}
	if cfg.BaseUrl != "https://updates.example.com" {
		t.Errorf("Expected base URL 'https://updates.example.com', got '%s'", cfg.BaseUrl)
	}
	if cfg.Concurrency != 8 {
		t.Errorf("Expected concurrency 8, got %d", cfg.Concurrency)
	}
	if cfg.SnapshotTTL != 300 {
		t.Errorf("Expected snapshot TTL 300, got %d", cfg.SnapshotTTL)
	}
	if cfg.APIAccessKey != "test-key" {
		t.Errorf("Expected API key 'test-key', got '%s'", cfg.APIAccessKey)
	}
	if cfg.UserAgent != "Test Agent" {
		t.Errorf("Expected user agent 'Test Agent', got '%s'", cfg.UserAgent)
	}
	if cfg.Timezone != "Europe/Kyiv" {
		t.Errorf("Expected timezone 'Europe/Kyiv', got '%s'", cfg.Timezone)
	}
	if !cfg.Debug {
		t.Error("Expected debug to be enabled")
	}
	if cfg.Version != "test-version" {
		t.Errorf("Expected version 'test-version', got '%s'", cfg.Version)
	}
}
