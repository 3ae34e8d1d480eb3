package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Gates.MinBIP != 10 || cfg.Gates.MinPitches != 50 || cfg.Gates.MinDirection != 10 {
		t.Errorf("default gates = %+v", cfg.Gates)
	}
	if cfg.PerGame.MinBIP != 1 {
		t.Errorf("default per-game MinBIP = %d, want 1", cfg.PerGame.MinBIP)
	}
	if cfg.PullBand.CenterLeft != 113.0 || cfg.PullBand.CenterRight != 138.0 {
		t.Errorf("default pull band = %+v", cfg.PullBand)
	}
	if cfg.Fetch.Workers != 20 {
		t.Errorf("default workers = %d, want 20", cfg.Fetch.Workers)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "gates:\n  minBip: 25\nfetch:\n  workers: 5\n"
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Gates.MinBIP != 25 {
		t.Errorf("minBip = %d, want 25 from file", cfg.Gates.MinBIP)
	}
	if cfg.Fetch.Workers != 5 {
		t.Errorf("workers = %d, want 5 from file", cfg.Fetch.Workers)
	}
	// Keys the file omits keep their defaults, even inside a section the
	// file touches.
	if cfg.Gates.MinPitches != 50 {
		t.Errorf("minPitches = %d, want default 50", cfg.Gates.MinPitches)
	}
	if cfg.PullBand.CenterRight != 138.0 {
		t.Errorf("centerRight = %v, want default 138.0", cfg.PullBand.CenterRight)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load of a missing file returned no error")
	}
}
