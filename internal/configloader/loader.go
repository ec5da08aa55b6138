// Package configloader finds and parses the optional .yaml-doctor.yaml
// configuration file.
package configloader

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configFileNames are the file names probed in the working directory,
// in order.
//
//nolint:gochecknoglobals // Probe list is a fixed constant table
var configFileNames = []string{".yaml-doctor.yaml", ".yaml-doctor.yml"}

// Config is the file-level configuration. CLI flags take precedence
// over everything here.
type Config struct {
	// Paths are checked when the command line names none.
	Paths []string `yaml:"paths"`

	// Ignore lists glob patterns excluded from directory expansion.
	Ignore []string `yaml:"ignore"`

	// Jobs caps the worker pool; zero means auto.
	Jobs int `yaml:"jobs"`

	// Fix enables repair by default.
	Fix bool `yaml:"fix"`

	// Color is the default color mode: auto, always, never.
	Color string `yaml:"color"`

	// KeepInvalidCharacters leaves non-printable characters in fixed
	// output.
	KeepInvalidCharacters bool `yaml:"keep_invalid_characters"`
}

// Result carries the loaded configuration and where it came from.
type Result struct {
	// Config is the parsed configuration, defaults when no file exists.
	Config Config

	// LoadedFrom is the path of the file that was read, empty when no
	// file was found.
	LoadedFrom string

	// Warnings are non-fatal loading problems.
	Warnings []string
}

// Load reads configuration for workDir. When explicitPath is set only
// that file is considered and its absence is an error; otherwise the
// working directory is probed and absence is fine.
func Load(workDir, explicitPath string) (*Result, error) {
	res := &Result{Config: Config{Color: "auto"}}

	path := explicitPath
	if path == "" {
		for _, name := range configFileNames {
			candidate := filepath.Join(workDir, name)
			if _, err := os.Stat(candidate); err == nil {
				path = candidate
				break
			}
		}
		if path == "" {
			return res, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	cfg.Color = "auto"
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	// Unknown keys are reported, not rejected.
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err == nil && len(root.Content) == 1 && root.Content[0].Kind == yaml.MappingNode {
		entries := root.Content[0].Content
		for i := 0; i+1 < len(entries); i += 2 {
			switch key := entries[i].Value; key {
			case "paths", "ignore", "jobs", "fix", "color", "keep_invalid_characters":
			default:
				res.Warnings = append(res.Warnings, fmt.Sprintf("%s: unknown key %q ignored", path, key))
			}
		}
	}

	if cfg.Jobs < 0 {
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: jobs must not be negative, using auto", path))
		cfg.Jobs = 0
	}
	switch cfg.Color {
	case "auto", "always", "never":
	default:
		res.Warnings = append(res.Warnings, fmt.Sprintf("%s: unknown color mode %q, using auto", path, cfg.Color))
		cfg.Color = "auto"
	}

	res.Config = cfg
	res.LoadedFrom = path
	return res, nil
}
