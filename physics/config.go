package physics

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/crossworld/cube/cube"
	"github.com/crossworld/cube/traverse"
)

// Strategy names accepted by Config and reported by Metrics.
const (
	StrategyMonolithic = "monolithic"
	StrategyChunked    = "chunked"
	StrategyHybrid     = "hybrid"
)

// Config selects and tunes a world-collision strategy.
type Config struct {
	Strategy string `yaml:"strategy"`

	// Chunked strategy tuning.
	ChunkSize  float32 `yaml:"chunk_size"`
	LoadRadius float32 `yaml:"load_radius"`

	// Region query depth for chunked and hybrid.
	QueryDepth int `yaml:"query_depth"`

	// Face resolution bound for the monolithic full-volume query.
	MaxDepth int `yaml:"max_depth"`

	// Border shell materials, bottom layer to top.
	BorderMaterials [4]uint8 `yaml:"border_materials"`
}

// LoadConfig reads a collision config from a yaml file. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := Config{}
	cfg.applyDefaults()
	if strings.TrimSpace(path) == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("collision config: %w", err)
	}
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return cfg, fmt.Errorf("collision config: %w", err)
	}
	return cfg, nil
}

// Borders converts the configured shell materials for traversal.
func (c Config) Borders() traverse.BorderMaterials {
	var b traverse.BorderMaterials
	for i, m := range c.BorderMaterials {
		b[i] = cube.Material(m)
	}
	return b
}

func (c *Config) applyDefaults() {
	if c.Strategy == "" {
		c.Strategy = StrategyMonolithic
	}
	if c.ChunkSize <= 0 {
		c.ChunkSize = 64
	}
	if c.LoadRadius <= 0 {
		c.LoadRadius = 128
	}
	if c.QueryDepth <= 0 {
		c.QueryDepth = 3
	}
	if c.MaxDepth <= 0 {
		c.MaxDepth = 6
	}
	// A solid floor under an open sky. An all-empty shell would expose
	// the world's bottom hull, whose faces point away from every body.
	if c.BorderMaterials == ([4]uint8{}) {
		c.BorderMaterials = [4]uint8{1, 1, 0, 0}
	}
}

func (c Config) validate() error {
	switch c.Strategy {
	case StrategyMonolithic, StrategyChunked, StrategyHybrid:
		return nil
	default:
		return fmt.Errorf("unknown strategy %q", c.Strategy)
	}
}
