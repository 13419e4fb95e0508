// config.go - Host configuration file and CLI flag resolution

/*
 ██▓ ███▄    █ ▄▄▄█████▓ █    ██  ██▓▄▄▄█████▓ ██▓ ▒█████   ███▄    █    ▓█████  ███▄    █   ▄████  ██▓ ███▄    █ ▓█████
▓██▒ ██ ▀█   █ ▓  ██▒ ▓▒ ██  ▓██▒▓██▒▓  ██▒ ▓▒▓██▒▒██▒  ██▒ ██ ▀█   █    ▓█   ▀  ██ ▀█   █  ██▒ ▀█▒▓██▒ ██ ▀█   █ ▓█   ▀
▒██▒▓██  ▀█ ██▒▒ ▓██░ ▒░▓██  ▒██░▒██▒▒ ▓██░ ▒░▒██▒▒██░  ██▒▓██  ▀█ ██▒   ▒███   ▓██  ▀█ ██▒▒██░▄▄▄░▒██▒▓██  ▀█ ██▒▒███
░██░▓██▒  ▐▌██▒░ ▓██▓ ░ ▓▓█  ░██░░██░░ ▓██▓ ░ ░██░▒██   ██░▓██▒  ▐▌██▒   ▒▓█  ▄ ▓██▒  ▐▌██▒░▓█  ██▓░██░▓██▒  ▐▌██▒▒▓█  ▄
░██░▒██░   ▓██░  ▒██▒ ░ ▒▒█████▓ ░██░  ▒██▒ ░ ░██░░ ████▓▒░▒██░   ▓██░   ░▒████▒▒██░   ▓██░░▒▓███▀▒░██░▒██░   ▓██░░▒████▒
░▓  ░ ▒░   ▒ ▒   ▒ ░░   ░▒▓▒ ▒ ▒ ░▓    ▒ ░░   ░▓  ░ ▒░▒░▒░ ░ ▒░   ▒ ▒    ░░ ▒░ ░░ ▒░   ▒ ▒  ░▒   ▒ ░▓  ░ ▒░   ▒ ▒ ░░ ▒░ ░
 ▒ ░░ ░░   ░ ▒░    ░    ░░▒░ ░ ░  ▒ ░    ░     ▒ ░  ░ ▒ ▒░ ░ ░░   ░ ▒░    ░ ░  ░░ ░░   ░ ▒░  ░   ░  ▒ ░░ ░░   ░ ▒░ ░ ░  ░
 ▒ ░   ░   ░ ░   ░       ░░░ ░ ░  ▒ ░  ░       ▒ ░░ ░ ░ ▒     ░   ░ ░       ░      ░   ░ ░ ░ ░   ░  ▒ ░   ░   ░ ░    ░
 ░           ░             ░      ░            ░      ░ ░           ░       ░  ░         ░       ░  ░           ░    ░  ░

(c) 2024 - 2026 Zayn Otley
https://github.com/IntuitionAmiga/IntuitionEngine
License: GPLv3 or later
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Config holds the host program settings.
type Config struct {
	// Inputs
	Script string `json:"script"`
	Frames int    `json:"frames"`

	// Outputs
	Snapshot      string `json:"snapshot"`       // .png or .webp
	SnapshotScale int    `json:"snapshot_scale"` // Pixels per screen pixel
	Wireframe     bool   `json:"wireframe"`
	Dump          bool   `json:"dump"`

	// Front ends
	View    bool `json:"view"`
	Console bool `json:"console"`
	Verbose bool `json:"verbose"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Script        string
	Frames        int
	Snapshot      string
	SnapshotScale int
	Wireframe     bool
	Dump          bool
	View          bool
	Console       bool
	Verbose       bool
}

// LoadConfig reads a JSON config file.
// Fields not set in the file keep their zero values.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	// Paths in the file are relative to the file itself
	base := filepath.Dir(path)
	if cfg.Script != "" && !filepath.IsAbs(cfg.Script) {
		cfg.Script = filepath.Join(base, cfg.Script)
	}
	if cfg.Snapshot != "" && !filepath.IsAbs(cfg.Snapshot) {
		cfg.Snapshot = filepath.Join(base, cfg.Snapshot)
	}
	return cfg, nil
}

// Resolve merges CLI flags over the file values and fills in defaults.
// Flags take priority when non-zero/non-empty; boolean flags can only
// switch a feature on.
func (c *Config) Resolve(flags Flags) {
	if flags.Script != "" {
		c.Script = flags.Script
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.Snapshot != "" {
		c.Snapshot = flags.Snapshot
	}
	if flags.SnapshotScale > 0 {
		c.SnapshotScale = flags.SnapshotScale
	}
	c.Wireframe = c.Wireframe || flags.Wireframe
	c.Dump = c.Dump || flags.Dump
	c.View = c.View || flags.View
	c.Console = c.Console || flags.Console
	c.Verbose = c.Verbose || flags.Verbose

	// Defaults
	if c.Frames <= 0 {
		c.Frames = 1
	}
	if c.SnapshotScale <= 0 {
		c.SnapshotScale = 2
	}
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if c.Snapshot != "" {
		switch strings.ToLower(filepath.Ext(c.Snapshot)) {
		case ".png", ".webp":
		default:
			return fmt.Errorf("config: snapshot %s: unsupported format (want .png or .webp)", c.Snapshot)
		}
	}
	if c.SnapshotScale > 8 {
		return fmt.Errorf("config: snapshot_scale %d out of range (1-8)", c.SnapshotScale)
	}
	if c.Script == "" && !c.Console {
		return fmt.Errorf("config: nothing to run (set a script or enable the console)")
	}
	return nil
}
