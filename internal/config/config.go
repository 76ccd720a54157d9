// Package config reads and writes the sketchcalc rc file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/example/sketchcalc/internal/theme"
)

// Notify holds notification settings.
type Notify struct {
	Result bool
	Error  bool
	Save   bool
}

// Config holds the application configuration.
type Config struct {
	Endpoint string
	Theme    string
	// Color is the initial ink, as a palette name, CSS name or hex value.
	Color string
	// Width is the initial stroke width. Zero means the tool default.
	Width int
	// Timeout bounds each recognition request. Zero means no timeout.
	Timeout time.Duration
	// ExportMax downscales submitted images whose larger side exceeds it.
	ExportMax int
	Notify    Notify
	Themes    map[string]*theme.Theme
}

// New creates a Config with defaults. Empty strings defer to environment
// variables and built-in defaults.
func New() *Config {
	return &Config{
		Notify: Notify{Result: true},
		Themes: make(map[string]*theme.Theme),
	}
}

// String returns the configuration in rc format.
func (c *Config) String() string {
	var sb strings.Builder

	if c.Endpoint != "" {
		fmt.Fprintf(&sb, "endpoint = %s\n", c.Endpoint)
	}
	if c.Theme != "" {
		fmt.Fprintf(&sb, "theme = %s\n", c.Theme)
	}
	if c.Color != "" {
		fmt.Fprintf(&sb, "color = %s\n", c.Color)
	}
	if c.Width != 0 {
		fmt.Fprintf(&sb, "width = %d\n", c.Width)
	}
	if c.Timeout != 0 {
		fmt.Fprintf(&sb, "timeout = %s\n", c.Timeout)
	}
	if c.ExportMax != 0 {
		fmt.Fprintf(&sb, "export_max = %d\n", c.ExportMax)
	}
	sb.WriteString("\n")

	sb.WriteString("[notify]\n")
	fmt.Fprintf(&sb, "result = %v\n", c.Notify.Result)
	fmt.Fprintf(&sb, "error = %v\n", c.Notify.Error)
	fmt.Fprintf(&sb, "save = %v\n", c.Notify.Save)
	sb.WriteString("\n")

	names := make([]string, 0, len(c.Themes))
	for name := range c.Themes {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(&sb, "[theme.%s]\n", name)
		_ = theme.Format(&sb, c.Themes[name])
		sb.WriteString("\n")
	}
	return sb.String()
}

// Save writes the configuration to path, creating parent directories.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(c.String()), 0o644); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}
