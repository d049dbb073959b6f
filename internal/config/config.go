// Package config loads and validates the agent's YAML configuration:
// cluster identity, the configuration value table, notification services,
// and alert definitions.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/a8m/envsubst"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-yaml"

	"github.com/howl-sh/howl/internal/alert"
)

type Config struct {
	Cluster  string             `yaml:"cluster"`
	Hostname string             `yaml:"hostname"`
	Options  Options            `yaml:"options"`
	Values   map[string]any     `yaml:"values"`
	Services map[string]Service `yaml:"services" validate:"dive"`
	Alerts   []AlertDef         `yaml:"alerts" validate:"dive"`
}

type Options struct {
	ChecksDir string `yaml:"checks_dir"`
	LogDir    string `yaml:"log_dir"`
}

// Service is a Shoutrrr notification target.
type Service struct {
	URL      string            `yaml:"url" validate:"required"`
	Template string            `yaml:"template"`
	Params   map[string]string `yaml:"params"`
}

// AlertDef is one alert definition. Meta and SourceMeta bridge it to the
// permissive tables the executor consumes.
type AlertDef struct {
	Name      string               `yaml:"name" validate:"required"`
	Label     string               `yaml:"label"`
	Service   string               `yaml:"service"`
	Component string               `yaml:"component"`
	Interval  int                  `yaml:"interval"`
	Command   string               `yaml:"command" validate:"required"`
	Args      []string             `yaml:"args"`
	Timeout   string               `yaml:"timeout"`
	Reporting map[string]Reporting `yaml:"reporting" validate:"dive"`
}

// Reporting carries the per-state reporting text with its positional
// placeholders.
type Reporting struct {
	Text string `yaml:"text" validate:"required"`
}

// Meta builds the alert metadata table. The interval key is only present
// when the definition sets one, so the executor's default applies.
func (a *AlertDef) Meta() alert.Meta {
	m := alert.Meta{
		"name":          a.Name,
		"label":         a.Label,
		"service":       a.Service,
		"componentName": a.Component,
	}
	if a.Interval != 0 {
		m["interval"] = a.Interval
	}
	return m
}

// SourceMeta builds the source metadata table with the reporting sub-table
// keyed by lowercase state name.
func (a *AlertDef) SourceMeta() alert.SourceMeta {
	rep := make(map[string]any, len(a.Reporting))
	for state, r := range a.Reporting {
		rep[strings.ToLower(state)] = map[string]any{"text": r.Text}
	}
	return alert.SourceMeta{"reporting": rep}
}

// TimeoutDuration parses the check timeout, falling back to 30s on a
// missing or malformed value.
func (a *AlertDef) TimeoutDuration() time.Duration {
	d, err := time.ParseDuration(a.Timeout)
	if err != nil || d <= 0 {
		return 30 * time.Second
	}
	return d
}

// Load reads, env-expands, parses, and validates a config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	data, err = envsubst.Bytes(data)
	if err != nil {
		return nil, fmt.Errorf("expanding env vars: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}
