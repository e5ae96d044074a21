package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PANEL_API_URL", "PANEL_CHAT_URL", "PANEL_HTTP_TIMEOUT", "PANEL_FORMAT"} {
		// t.Setenv registers restoration; Unsetenv leaves the variable truly
		// absent so envDefault applies.
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://localhost:5000" {
		t.Fatalf("APIBaseURL default = %q", cfg.APIBaseURL)
	}
	if cfg.ChatBaseURL != "http://localhost:5002" {
		t.Fatalf("ChatBaseURL default = %q", cfg.ChatBaseURL)
	}
	if cfg.HTTPTimeout != 0 {
		t.Fatalf("expected no default timeout, got %v", cfg.HTTPTimeout)
	}
	if cfg.Format != "json" {
		t.Fatalf("Format default = %q", cfg.Format)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PANEL_API_URL", "http://panel.example:8080")
	t.Setenv("PANEL_HTTP_TIMEOUT", "30s")
	t.Setenv("PANEL_PRETTY", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.APIBaseURL != "http://panel.example:8080" {
		t.Fatalf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.HTTPTimeout != 30*time.Second {
		t.Fatalf("HTTPTimeout = %v", cfg.HTTPTimeout)
	}
	if !cfg.PrettyJSON {
		t.Fatalf("expected PrettyJSON")
	}
}
