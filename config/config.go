package config

import (
	"encoding/json"
	"os"
)

// Config holds runtime configuration for capture and app behavior.
// Fields may be loaded from a JSON file and edited through the UI panel.
type Config struct {
	Debug bool `json:"debug"`

	// Capture parameters
	IntervalSeconds int `json:"interval_seconds"`
	TotalSeconds    int `json:"total_seconds"`
	VideoFPS        int `json:"video_fps"`

	// Camera selection
	DeviceID    int  `json:"device_id"`
	LivePreview bool `json:"live_preview"`

	// Output
	OutputDir        string `json:"output_dir"`
	StampFrames      bool   `json:"stamp_frames"`
	MaxProbedDevices int    `json:"max_probed_devices"`
}

// DefaultConfig returns a Config populated with standard defaults.
func DefaultConfig() *Config {
	return &Config{
		Debug:            false,
		IntervalSeconds:  5,
		TotalSeconds:     60,
		VideoFPS:         30,
		DeviceID:         0,
		LivePreview:      true,
		OutputDir:        "",
		StampFrames:      false,
		MaxProbedDevices: 6,
	}
}

// Validate clamps/normalizes values to safe ranges.
func (c *Config) Validate() error {
	if c.IntervalSeconds <= 0 {
		c.IntervalSeconds = 5
	}
	if c.TotalSeconds < c.IntervalSeconds {
		c.TotalSeconds = c.IntervalSeconds
	}
	if c.VideoFPS <= 0 {
		c.VideoFPS = 30
	}
	if c.DeviceID < 0 {
		c.DeviceID = 0
	}
	if c.MaxProbedDevices <= 0 {
		c.MaxProbedDevices = 6
	}
	return nil
}

// Load attempts to read configuration from the given JSON file path. If the file does not
// exist it returns DefaultConfig(). On JSON error it returns defaults with the error.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}
	defer f.Close()
	dec := json.NewDecoder(f)
	if err := dec.Decode(cfg); err != nil {
		return cfg, err
	}
	_ = cfg.Validate()
	return cfg, nil
}

// Save writes the configuration to the given path in JSON format.
func (c *Config) Save(path string) error {
	_ = c.Validate()
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}
