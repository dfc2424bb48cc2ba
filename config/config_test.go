package config

import (
	"os"
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	os.Clearenv()
	cfg := loadConfig(nil)
	if cfg.Port != 8084 {
		t.Errorf("expected default port 8084, got %d", cfg.Port)
	}
	if cfg.IDLength != 8 {
		t.Errorf("expected default id length 8, got %d", cfg.IDLength)
	}
	if cfg.MaxPasteSize != 500*1000 {
		t.Errorf("expected default max size 500KB, got %d", cfg.MaxPasteSize)
	}
	if cfg.DefaultExpiry != 7*24*time.Hour {
		t.Errorf("expected default expiry 168h, got %v", cfg.DefaultExpiry)
	}
	if cfg.DataDir != "./data" {
		t.Errorf("expected default data dir ./data, got %s", cfg.DataDir)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	os.Clearenv()
	t.Setenv("PASTE_PORT", "9000")
	t.Setenv("PASTE_BASE_URL", "https://paste.example.com")
	t.Setenv("PASTE_DATA_DIR", "/var/lib/quickpaste")
	t.Setenv("PASTE_MAX_SIZE", "1000000")
	t.Setenv("PASTE_DEFAULT_EXPIRY", "48h")
	t.Setenv("PASTE_RATE_LIMIT", "2.5")
	t.Setenv("PASTE_RATE_BURST", "20")

	cfg := loadConfig(nil)
	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.BaseURL != "https://paste.example.com" {
		t.Errorf("unexpected base url %s", cfg.BaseURL)
	}
	if cfg.DataDir != "/var/lib/quickpaste" {
		t.Errorf("unexpected data dir %s", cfg.DataDir)
	}
	if cfg.MaxPasteSize != 1000000 {
		t.Errorf("unexpected max size %d", cfg.MaxPasteSize)
	}
	if cfg.DefaultExpiry != 48*time.Hour {
		t.Errorf("unexpected default expiry %v", cfg.DefaultExpiry)
	}
	if cfg.RateLimit != 2.5 {
		t.Errorf("unexpected rate limit %v", cfg.RateLimit)
	}
	if cfg.RateBurst != 20 {
		t.Errorf("unexpected rate burst %d", cfg.RateBurst)
	}
}

func TestLoadConfig_InvalidEnvIgnored(t *testing.T) {
	os.Clearenv()
	t.Setenv("PASTE_PORT", "not-a-port")
	t.Setenv("PASTE_DEFAULT_EXPIRY", "soon")

	cfg := loadConfig(nil)
	if cfg.Port != 8084 {
		t.Errorf("expected unparseable port to keep default, got %d", cfg.Port)
	}
	if cfg.DefaultExpiry != 7*24*time.Hour {
		t.Errorf("expected unparseable expiry to keep default, got %v", cfg.DefaultExpiry)
	}
}

func TestLoadConfig_Flags(t *testing.T) {
	os.Clearenv()
	cfg := loadConfig([]string{"-port", "8200", "-max-size", "2048", "-expiry", "1h"})
	if cfg.Port != 8200 {
		t.Errorf("expected port 8200, got %d", cfg.Port)
	}
	if cfg.MaxPasteSize != 2048 {
		t.Errorf("expected max size 2048, got %d", cfg.MaxPasteSize)
	}
	if cfg.DefaultExpiry != time.Hour {
		t.Errorf("expected expiry 1h, got %v", cfg.DefaultExpiry)
	}
}
