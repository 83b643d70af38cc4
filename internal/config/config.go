// Package config holds all spinsplit configuration: the daemon's transport
// endpoints and poll cadence, and the splitter toggles that gate which
// signals fire. Configuration is loaded exactly once before the first tick
// and is immutable afterwards; nothing in the daemon re-reads it.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"spinsplit/internal/game"
)

// Config is the top-level spinsplit configuration.
type Config struct {
	// Poll is the tick cadence. One Genesis frame is ~16ms; polling
	// faster than the game updates its own RAM buys nothing.
	Poll time.Duration `yaml:"poll"`

	// RetroArch is the UDP address of RetroArch's network command
	// interface (network_cmd_enable = true, default port 55355).
	RetroArch string `yaml:"retroarch"`

	// WRAMBase overrides the work-RAM base the transport adds to the
	// polled offsets. Zero means the stock Genesis map.
	WRAMBase uint32 `yaml:"wram_base"`

	// LiveSplit is the TCP address of the LiveSplit Server component.
	LiveSplit string `yaml:"livesplit"`

	// Metrics is the listen address for the Prometheus /metrics endpoint.
	// Empty disables the listener.
	Metrics string `yaml:"metrics"`

	// Splitter gates which lifecycle signals are emitted.
	Splitter Settings `yaml:"splitter"`
}

// Settings are the splitter toggles: the two lifecycle switches plus one
// enable flag per level segment. Everything defaults to on.
type Settings struct {
	AutoStart bool `yaml:"auto_start"`
	AutoReset bool `yaml:"auto_reset"`

	ToxicCaves     bool `yaml:"toxic_caves"`
	Bonus1         bool `yaml:"bonus_1"`
	LavaPowerhouse bool `yaml:"lava_powerhouse"`
	Bonus2         bool `yaml:"bonus_2"`
	TheMachine     bool `yaml:"the_machine"`
	Bonus3         bool `yaml:"bonus_3"`
	TheShowdown    bool `yaml:"the_showdown"`
}

// SegmentEnabled reports whether the split for leaving the given level is
// enabled.
func (s Settings) SegmentEnabled(l game.Level) bool {
	switch l {
	case game.ToxicCaves:
		return s.ToxicCaves
	case game.Bonus1:
		return s.Bonus1
	case game.LavaPowerhouse:
		return s.LavaPowerhouse
	case game.Bonus2:
		return s.Bonus2
	case game.TheMachine:
		return s.TheMachine
	case game.Bonus3:
		return s.Bonus3
	case game.TheShowdown:
		return s.TheShowdown
	}
	return false
}

// DefaultConfig returns the stock configuration: everything enabled,
// localhost transports.
func DefaultConfig() *Config {
	return &Config{
		Poll:      16 * time.Millisecond,
		RetroArch: "127.0.0.1:55355",
		WRAMBase:  game.WRAMBase,
		LiveSplit: "127.0.0.1:16834",
		Metrics:   "",
		Splitter: Settings{
			AutoStart:      true,
			AutoReset:      true,
			ToxicCaves:     true,
			Bonus1:         true,
			LavaPowerhouse: true,
			Bonus2:         true,
			TheMachine:     true,
			Bonus3:         true,
			TheShowdown:    true,
		},
	}
}

// Load reads a yaml config file, layering it over the defaults and then
// applying environment overrides. A missing file is not an error: the
// defaults (plus env) are returned so the daemon runs out of the box.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Poll <= 0 {
		return nil, fmt.Errorf("poll interval must be positive, got %v", cfg.Poll)
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// applyEnvOverrides lets deployment environments repoint the transports
// without editing the file. Env always wins over file values.
func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("SPINSPLIT_RETROARCH_ADDR"); v != "" {
		c.RetroArch = v
	}
	if v := os.Getenv("SPINSPLIT_LIVESPLIT_ADDR"); v != "" {
		c.LiveSplit = v
	}
	if v := os.Getenv("SPINSPLIT_METRICS_ADDR"); v != "" {
		c.Metrics = v
	}
}

// Save writes the configuration as yaml. Used by `spinsplit init` to give
// users a file to edit.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
