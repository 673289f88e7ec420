package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	// DefaultListenAddr is where the record server binds unless
	// configured otherwise.
	DefaultListenAddr = ":8090"

	// maxRecentQueries caps the remembered query history.
	maxRecentQueries = 10
)

// Config holds the persisted preferences of the mDNS client. Environment
// variables with the MDNS_CLIENT_ prefix override individual fields at
// load time; overrides are never written back to disk.
type Config struct {
	// Version identifies the file format.
	Version int `yaml:"version" ignored:"true"`

	// DefaultQuery is browsed when no query is given on the command
	// line. Empty means the browser starts in edit mode.
	DefaultQuery string `yaml:"default_query,omitempty" envconfig:"QUERY"`

	// WindowSeconds bounds each discovery session. Zero means the
	// scanner's default window.
	WindowSeconds int `yaml:"window_seconds,omitempty" envconfig:"WINDOW_SECONDS"`

	// ListenAddr is the bind address of the record server.
	ListenAddr string `yaml:"listen_addr,omitempty" envconfig:"LISTEN_ADDR"`

	// RecentQueries remembers committed queries, newest first.
	RecentQueries []string `yaml:"recent_queries,omitempty" ignored:"true"`
}

// New returns a config populated with defaults.
func New() *Config {
	return &Config{
		Version:    1,
		ListenAddr: DefaultListenAddr,
	}
}

// Window returns the configured session window, or zero when unset so
// callers fall back to the scanner default.
func (c *Config) Window() time.Duration {
	if c.WindowSeconds <= 0 {
		return 0
	}
	return time.Duration(c.WindowSeconds) * time.Second
}

// RememberQuery puts q at the head of the recent list, deduplicated and
// capped. Blank queries are not remembered.
func (c *Config) RememberQuery(q string) {
	q = strings.TrimSpace(q)
	if q == "" {
		return
	}

	recent := make([]string, 0, len(c.RecentQueries)+1)
	recent = append(recent, q)
	for _, r := range c.RecentQueries {
		if r == q {
			continue
		}
		recent = append(recent, r)
		if len(recent) == maxRecentQueries {
			break
		}
	}
	c.RecentQueries = recent
}

// Validate rejects values no command could use.
func (c *Config) Validate() error {
	if c.WindowSeconds < 0 {
		return fmt.Errorf("window_seconds must not be negative, got %d", c.WindowSeconds)
	}
	return nil
}
