// Package config persists user-facing defaults and applies CLI overrides.
package config

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/VladimirMarkelov/pwatch/model"
)

// Refresh interval bounds, milliseconds.
const (
	MinRefreshMs = 250
	MaxRefreshMs = 10_000
)

// Config holds user-configurable defaults. The zero value is not usable:
// start from Default.
type Config struct {
	Quality   string `json:"quality"`    // low | medium | high
	RefreshMs int    `json:"refresh_ms"` // clamped to [250, 10000]
	Pack      string `json:"pack"`       // auto | line | side
	Graphs    string `json:"graphs"`     // all | cpu | mem
	Title     string `json:"title"`      // cmd | exe | name
	ScaleMax  bool   `json:"scale_max"`  // scale auto graphs to the all-time max
}

// Default returns a config with sensible defaults.
func Default() Config {
	return Config{
		Quality:   "high",
		RefreshMs: 1000,
		Pack:      "auto",
		Graphs:    "all",
		Title:     "cmd",
		ScaleMax:  false,
	}
}

// Path returns ~/.config/pwatch/config.json (or XDG_CONFIG_HOME).
// Returns empty string if home directory cannot be determined.
func Path() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pwatch", "config.json")
}

// Load loads config from disk; returns defaults on error.
func Load() Config {
	return LoadFile(Path())
}

// LoadFile loads config from an explicit path; returns defaults on error.
func LoadFile(path string) Config {
	cfg := Default()
	if path == "" {
		return cfg
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg
	}
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("pwatch: warning: config parse error: %v", err)
	}
	return cfg
}

// Save writes the config to disk.
func Save(cfg Config) error {
	path := Path()
	if path == "" {
		return fmt.Errorf("cannot determine config directory")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// Options converts the persisted form to runtime options, clamping the
// refresh interval and mapping unknown enum strings to their defaults.
func (c Config) Options() model.Options {
	return model.Options{
		Detail:    ParseDetail(c.Quality),
		Pack:      ParsePack(c.Pack),
		Graphs:    ParseGraphs(c.Graphs),
		Title:     ParseTitle(c.Title),
		ScaleMax:  c.ScaleMax,
		RefreshMs: ClampRefresh(c.RefreshMs),
	}
}

// ClampRefresh bounds a refresh interval to [MinRefreshMs, MaxRefreshMs].
func ClampRefresh(ms int) int {
	if ms < MinRefreshMs {
		return MinRefreshMs
	}
	if ms > MaxRefreshMs {
		return MaxRefreshMs
	}
	return ms
}

// ParseDetail maps a quality name to a detail level; unknown means high.
func ParseDetail(s string) model.Detail {
	switch strings.ToLower(s) {
	case "low":
		return model.DetailLow
	case "medium":
		return model.DetailMedium
	default:
		return model.DetailHigh
	}
}

// ParsePack maps a packing name to a preference; unknown means auto.
func ParsePack(s string) model.Pack {
	switch strings.ToLower(s) {
	case "line":
		return model.PackLine
	case "side":
		return model.PackSide
	default:
		return model.PackAuto
	}
}

// ParseGraphs maps a graph-selection name; unknown means all.
func ParseGraphs(s string) model.GraphMode {
	switch strings.ToLower(s) {
	case "cpu":
		return model.GraphCPU
	case "mem":
		return model.GraphMem
	default:
		return model.GraphAll
	}
}

// ParseTitle maps a title-field name; unknown means the command line.
func ParseTitle(s string) model.TitleMode {
	switch strings.ToLower(s) {
	case "exe":
		return model.TitleExe
	case "name":
		return model.TitleName
	default:
		return model.TitleCmd
	}
}

// ParseTarget interprets the positional argument: a comma-separated list of
// digits is a PID list, anything else is a name filter.
func ParseTarget(arg string, opts *model.Options) error {
	if arg == "" {
		return fmt.Errorf("process name or PID list required")
	}
	isPids := true
	for _, c := range arg {
		if (c < '0' || c > '9') && c != ',' {
			isPids = false
			break
		}
	}
	if !isPids {
		opts.Filter = arg
		return nil
	}
	for _, part := range strings.Split(arg, ",") {
		if part == "" {
			continue
		}
		pid, err := strconv.ParseInt(part, 10, 32)
		if err != nil {
			return fmt.Errorf("invalid PID %q: %w", part, err)
		}
		opts.PidList = append(opts.PidList, int32(pid))
	}
	if len(opts.PidList) == 0 {
		return fmt.Errorf("no valid PIDs in %q", arg)
	}
	return nil
}
