package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidateClampsCaptureFields(t *testing.T) {
	c := &Config{IntervalSeconds: 0, TotalSeconds: -3, VideoFPS: 0, DeviceID: -1}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate returned error: %v", err)
	}
	if c.IntervalSeconds <= 0 {
		t.Fatalf("interval not clamped: %d", c.IntervalSeconds)
	}
	if c.TotalSeconds < c.IntervalSeconds {
		t.Fatalf("total %d shorter than interval %d after Validate", c.TotalSeconds, c.IntervalSeconds)
	}
	if c.VideoFPS <= 0 {
		t.Fatalf("fps not clamped: %d", c.VideoFPS)
	}
	if c.DeviceID != 0 {
		t.Fatalf("device id not clamped: %d", c.DeviceID)
	}
}

func TestValidateKeepsSaneValues(t *testing.T) {
	c := &Config{IntervalSeconds: 2, TotalSeconds: 6, VideoFPS: 10, MaxProbedDevices: 4}
	_ = c.Validate()
	if c.IntervalSeconds != 2 || c.TotalSeconds != 6 || c.VideoFPS != 10 || c.MaxProbedDevices != 4 {
		t.Fatalf("Validate mutated valid config: %+v", c)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	def := DefaultConfig()
	if cfg.IntervalSeconds != def.IntervalSeconds || cfg.VideoFPS != def.VideoFPS {
		t.Fatalf("expected defaults, got %+v", cfg)
	}
}

func TestSaveLoadRoundtrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lapsecam.json")
	c := DefaultConfig()
	c.IntervalSeconds = 3
	c.TotalSeconds = 42
	c.VideoFPS = 24
	c.LivePreview = false
	c.StampFrames = true
	c.OutputDir = "/tmp/out"
	if err := c.Save(path); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.IntervalSeconds != 3 || got.TotalSeconds != 42 || got.VideoFPS != 24 || got.LivePreview || !got.StampFrames || got.OutputDir != "/tmp/out" {
		t.Fatalf("roundtrip mismatch: %+v", got)
	}
}

func TestLoadBadJSONReturnsDefaultsAndError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load(path)
	if err == nil {
		t.Fatal("expected decode error")
	}
	if cfg == nil || cfg.IntervalSeconds != DefaultConfig().IntervalSeconds {
		t.Fatalf("expected defaults on decode error, got %+v", cfg)
	}
}
