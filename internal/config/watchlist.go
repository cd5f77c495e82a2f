// Package config loads the watch-list file: the set of publisher domains
// whose ads.txt snapshots the refresh commands keep up to date.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Watch-list validation errors.
var (
	ErrNoDomains       = errors.New("at least one domain is required")
	ErrEmptyDomain     = errors.New("domain must not be empty")
	ErrDuplicateDomain = errors.New("domain listed more than once")
	ErrNoEnabledDomain = errors.New("at least one domain must be enabled")
)

// WatchList is the set of publisher domains to keep refreshed
type WatchList struct {
	Domains []WatchedDomain `yaml:"domains"`
}

// WatchedDomain is one publisher domain entry in the watch list
type WatchedDomain struct {
	Domain  string `yaml:"domain"`
	Enabled bool   `yaml:"enabled"`
	// Note is free-form operator text, never interpreted
	Note string `yaml:"note,omitempty"`
}

// Load reads and validates a watch-list yaml file
func Load(path string) (*WatchList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read watch list: %w", err)
	}
	return Parse(data)
}

// Parse parses and validates watch-list yaml content
func Parse(data []byte) (*WatchList, error) {
	var wl WatchList
	if err := yaml.Unmarshal(data, &wl); err != nil {
		return nil, fmt.Errorf("failed to parse watch list: %w", err)
	}
	if err := wl.Validate(); err != nil {
		return nil, err
	}
	return &wl, nil
}

// Validate checks structural invariants of the watch list
func (wl *WatchList) Validate() error {
	if len(wl.Domains) == 0 {
		return ErrNoDomains
	}

	seen := make(map[string]bool, len(wl.Domains))
	enabled := 0
	for i, d := range wl.Domains {
		domain := strings.ToLower(strings.TrimSpace(d.Domain))
		if domain == "" {
			return fmt.Errorf("domains[%d]: %w", i, ErrEmptyDomain)
		}
		if seen[domain] {
			return fmt.Errorf("domains[%d] (%s): %w", i, domain, ErrDuplicateDomain)
		}
		seen[domain] = true
		if d.Enabled {
			enabled++
		}
	}
	if enabled == 0 {
		return ErrNoEnabledDomain
	}
	return nil
}

// EnabledDomains returns the lowercased domains with Enabled set, in file order
func (wl *WatchList) EnabledDomains() []string {
	var out []string
	for _, d := range wl.Domains {
		if d.Enabled {
			out = append(out, strings.ToLower(strings.TrimSpace(d.Domain)))
		}
	}
	return out
}
