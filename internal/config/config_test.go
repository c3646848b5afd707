package config

import (
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.General.Currency != "$" || cfg.General.DefaultDays != 60 {
		t.Fatalf("defaults = %+v", cfg.General)
	}
	if Exists() {
		t.Fatal("Exists reported a config file that was never written")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.General.Timezone = "Europe/Berlin"
	cfg.General.Currency = "€"
	cfg.General.DefaultDays = 90
	cfg.Storage.DBPath = "/tmp/runway-test.db"

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists false after Save")
	}

	got, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got != cfg {
		t.Fatalf("round trip changed config:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestDBPathFallsBackToXDGData(t *testing.T) {
	data := t.TempDir()
	t.Setenv("XDG_DATA_HOME", data)

	cfg := DefaultConfig()
	if got, want := DBPath(cfg), filepath.Join(data, "runway", "runway.db"); got != want {
		t.Fatalf("DBPath = %q, want %q", got, want)
	}

	cfg.Storage.DBPath = "/elsewhere/r.db"
	if got := DBPath(cfg); got != "/elsewhere/r.db" {
		t.Fatalf("DBPath = %q, want the configured path", got)
	}
}

func TestLocation(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := Location(cfg); err != nil {
		t.Fatalf("Location with empty timezone: %v", err)
	}

	cfg.General.Timezone = "UTC"
	loc, err := Location(cfg)
	if err != nil {
		t.Fatalf("Location(UTC): %v", err)
	}
	if loc.String() != "UTC" {
		t.Fatalf("Location = %q, want UTC", loc)
	}

	cfg.General.Timezone = "Not/AZone"
	if _, err := Location(cfg); err == nil {
		t.Fatal("invalid timezone accepted")
	}
}
