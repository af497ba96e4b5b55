package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "5000" {
		t.Errorf("Expected default port 5000, got %q", cfg.Port)
	}
	if cfg.DBHost != "localhost" || cfg.DBName != "collegeerp" {
		t.Errorf("Unexpected db defaults: %+v", cfg)
	}
	if cfg.Production {
		t.Error("Expected development mode by default")
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("Expected two default origins, got %v", cfg.AllowedOrigins)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "8081")
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://erp.example.com , https://admin.example.com")

	cfg := Load()

	if cfg.Port != "8081" {
		t.Errorf("Expected port 8081, got %q", cfg.Port)
	}
	if !cfg.Production {
		t.Error("Expected production mode")
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[0] != "https://erp.example.com" {
		t.Errorf("Expected trimmed origins, got %v", cfg.AllowedOrigins)
	}
}
