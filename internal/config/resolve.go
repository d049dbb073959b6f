package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// SearchPaths returns the locations Resolve tries when no explicit config
// path is given, in order.
func SearchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "howl", "config.yaml"))
	}
	return append(paths, "/etc/howl/config.yaml")
}

// Find returns the config path Resolve would load: the explicit path when
// given, otherwise the first search location that exists.
func Find(explicit string) (string, error) {
	if explicit != "" {
		if _, err := os.Stat(explicit); err != nil {
			return "", fmt.Errorf("config file not found: %s", explicit)
		}
		return explicit, nil
	}

	searched := SearchPaths()
	for _, p := range searched {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("no config file found (searched %s)", strings.Join(searched, ", "))
}

// Resolve loads the agent configuration and fills the derived settings the
// rest of the agent relies on: the hostname tagged onto every record, and
// a checks directory anchored next to the config file when the option is
// missing or relative.
func Resolve(explicit string) (*Config, error) {
	path, err := Find(explicit)
	if err != nil {
		return nil, err
	}

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if err := cfg.fillDefaults(path); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) fillDefaults(path string) error {
	if c.Hostname == "" {
		h, err := os.Hostname()
		if err != nil {
			return fmt.Errorf("resolving hostname: %w", err)
		}
		c.Hostname = h
	}

	switch {
	case c.Options.ChecksDir == "":
		c.Options.ChecksDir = filepath.Join(filepath.Dir(path), "checks.d")
	case !filepath.IsAbs(c.Options.ChecksDir):
		c.Options.ChecksDir = filepath.Join(filepath.Dir(path), c.Options.ChecksDir)
	}

	return nil
}
