package config

import (
	"reflect"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "GEMINI_MODEL", "API_KEY_HEADER", "ALLOWED_IPS"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Env != "dev" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.GeminiModel != "gemini-3-flash-preview" {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if cfg.APIKeyHeader != "X-API-Key" {
		t.Fatalf("api key header = %q", cfg.APIKeyHeader)
	}
	if len(cfg.AllowedIPs) != 0 {
		t.Fatalf("allowed ips = %v", cfg.AllowedIPs)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "PROD")
	t.Setenv("DATABASE_URL", "postgres://localhost/cvmaker")
	t.Setenv("API_KEY", "secret")
	t.Setenv("GEMINI_MODEL", "gemini-3-pro")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("ALLOWED_IPS", "10.0.0.1,10.0.0.2")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Fatalf("port = %q", cfg.Port)
	}
	if cfg.Env != "production" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if cfg.GeminiModel != "gemini-3-pro" {
		t.Fatalf("model = %q", cfg.GeminiModel)
	}
	if want := []string{"https://a.example", "https://b.example"}; !reflect.DeepEqual(cfg.CORSAllowOrigin, want) {
		t.Fatalf("cors origins = %v", cfg.CORSAllowOrigin)
	}
	if want := []string{"10.0.0.1", "10.0.0.2"}; !reflect.DeepEqual(cfg.AllowedIPs, want) {
		t.Fatalf("allowed ips = %v", cfg.AllowedIPs)
	}
}

func TestNormalizeEnv(t *testing.T) {
	cases := map[string]string{
		"prod":        "production",
		"Production ": "production",
		"staging":     "staging",
		"local":       "local",
		"dev":         "dev",
		"garbage":     "dev",
		"":            "dev",
	}
	for in, want := range cases {
		if got := normalizeEnv(in); got != want {
			t.Fatalf("normalizeEnv(%q) = %q, want %q", in, got, want)
		}
	}
}
