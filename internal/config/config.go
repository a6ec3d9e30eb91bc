// Package config loads the configuration of the concat-source-text command.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/prantlf/concat-source-text/concat"
)

// ProjectConfigFile is the name of the config file looked up from the
// working directory up to the file system root.
const ProjectConfigFile = "concat.yaml"

// Config represents the complete command configuration.
type Config struct {
	// Inputs are file paths or doublestar glob patterns, joined in order.
	Inputs []string `yaml:"inputs"`
	// Output is the joined file; empty writes to standard output.
	Output string `yaml:"output"`
	// Separator is inserted between the input texts.
	Separator string          `yaml:"separator"`
	SourceMap SourceMapConfig `yaml:"sourceMap"`
	Watch     WatchConfig     `yaml:"watch"`
}

// SourceMapConfig configures the source map. In YAML it is either a boolean
// or a mapping; a mapping enables the source map unless it says otherwise.
type SourceMapConfig struct {
	Enabled          bool   `yaml:"enabled"`
	Inline           *bool  `yaml:"inline"`
	External         bool   `yaml:"external"`
	Separate         *bool  `yaml:"separate"`
	MapFile          string `yaml:"mapFile"`
	SourcesContent   bool   `yaml:"sourcesContent"`
	MultilineComment bool   `yaml:"multilineComment"`
	ReadSourceMaps   bool   `yaml:"readSourceMaps"`
	// MapDir is the directory with external maps of the inputs. Empty looks
	// for them next to the input that refers to them.
	MapDir string `yaml:"mapDir"`
}

// WatchConfig configures rebuilding on changes.
type WatchConfig struct {
	Enabled bool `yaml:"enabled"`
	// Debounce is the time to collect file changes before rebuilding.
	Debounce time.Duration `yaml:"debounce"`
}

// UnmarshalYAML accepts both `sourceMap: true` and a mapping of options.
func (s *SourceMapConfig) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		var enabled bool
		if err := node.Decode(&enabled); err != nil {
			return fmt.Errorf("sourceMap must be a boolean or a mapping: %w", err)
		}
		*s = SourceMapConfig{Enabled: enabled}
		return nil
	}
	type plain SourceMapConfig
	p := plain{Enabled: true}
	if err := node.Decode(&p); err != nil {
		return err
	}
	*s = SourceMapConfig(p)
	return nil
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Watch: WatchConfig{
			Debounce: 100 * time.Millisecond,
		},
	}
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if len(c.Inputs) == 0 {
		return fmt.Errorf("inputs are required")
	}
	if c.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if c.Watch.Enabled && c.Output == "" {
		return fmt.Errorf("output is required in watch mode")
	}
	if c.SourceMap.Enabled && c.SourceMap.External && c.Output == "" && c.SourceMap.MapFile == "" {
		return fmt.Errorf("output or sourceMap.mapFile is required for an external source map")
	}
	return nil
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return config, nil
}

// Find searches for ProjectConfigFile in dir and its parents. It returns an
// empty string if there is none.
func Find(dir string) string {
	for {
		configPath := filepath.Join(dir, ProjectConfigFile)
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// JoinOptions converts the configuration to options of concat.Join. The
// output file name is stored in the map as it is given; the caller decides
// about source identifiers and locating external maps.
func (c *Config) JoinOptions() concat.Options {
	opts := concat.Options{Separator: c.Separator}
	if !c.SourceMap.Enabled {
		return opts
	}
	s := c.SourceMap
	opts.SourceMap = &concat.SourceMapOptions{
		Inline:           s.Inline,
		External:         s.External,
		Separate:         s.Separate,
		OutputFile:       filepath.Base(c.Output),
		MapFile:          s.MapFile,
		SourcesContent:   s.SourcesContent,
		MultilineComment: s.MultilineComment,
		ReadSourceMaps:   s.ReadSourceMaps,
		MapDir:           s.MapDir,
	}
	if c.Output == "" {
		opts.SourceMap.OutputFile = ""
	}
	return opts
}
