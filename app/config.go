package app

import (
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"

	"sparkcraft/sparkos/voxel"
	"sparkcraft/sparkos/voxel/terrain"
)

// ConfigEnv names the environment variable holding the default config path.
const ConfigEnv = "SPARKCRAFT_CONFIG"

var ErrInvalidConfig = errors.New("invalid config")

// Terrain generator names accepted by Config.Terrain.
const (
	TerrainPerlin = "perlin"
	TerrainFlat   = "flat"
	TerrainHills  = "hills"
	TerrainSolid  = "solid"
)

// Config describes the world and the renderer settings.
type Config struct {
	Seed    int64  `yaml:"seed"`
	Terrain string `yaml:"terrain"`
	Dim     int    `yaml:"dim"`

	// Chunks is the number of chunks along X and Z; ChunksY along Y.
	Chunks  int `yaml:"chunks"`
	ChunksY int `yaml:"chunks_y"`

	GreedLimit    int    `yaml:"greed"`
	Textures      bool   `yaml:"textures"`
	HalfRes       bool   `yaml:"half_res"`
	Fog           bool   `yaml:"fog"`
	FrameBudgetMs uint64 `yaml:"frame_budget_ms"`
	StatsSeconds  int    `yaml:"stats_seconds"`

	// Sheet is a PNG block strip to build the spritesheet from (host only).
	Sheet string `yaml:"sheet"`
}

func DefaultConfig() Config {
	return Config{
		Seed:         1,
		Terrain:      TerrainPerlin,
		Dim:          16,
		Chunks:       2,
		ChunksY:      1,
		GreedLimit:   voxel.MaxGreedLimit,
		Textures:     true,
		StatsSeconds: 5,
	}
}

// ParseConfig decodes YAML over the defaults and validates the result.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("app: parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate clamps the greed limit and rejects values the world cannot be
// built from.
func (c *Config) Validate() error {
	if c.Dim < 1 || c.Dim > voxel.MaxDim {
		return fmt.Errorf("app: dim %d outside 1..%d: %w", c.Dim, voxel.MaxDim, ErrInvalidConfig)
	}
	if c.Chunks < 1 || c.ChunksY < 1 {
		return fmt.Errorf("app: chunks %dx%d: %w", c.Chunks, c.ChunksY, ErrInvalidConfig)
	}
	if max(c.Chunks, c.ChunksY)*c.Dim*voxel.BlockSize > voxel.MaxWorldExtent {
		return fmt.Errorf("app: world of %d chunks of dim %d: %w", max(c.Chunks, c.ChunksY), c.Dim, ErrInvalidConfig)
	}
	switch c.Terrain {
	case "":
		c.Terrain = TerrainPerlin
	case TerrainPerlin, TerrainFlat, TerrainHills, TerrainSolid:
	default:
		return fmt.Errorf("app: terrain %q: %w", c.Terrain, ErrInvalidConfig)
	}
	if c.StatsSeconds < 0 {
		return fmt.Errorf("app: stats_seconds %d: %w", c.StatsSeconds, ErrInvalidConfig)
	}
	c.GreedLimit = min(max(c.GreedLimit, 1), voxel.MaxGreedLimit)
	return nil
}

func (c Config) generator() voxel.Generator {
	switch c.Terrain {
	case TerrainFlat:
		return terrain.Flat(c.Dim/2, voxel.Dirt)
	case TerrainHills:
		return terrain.SineHills()
	case TerrainSolid:
		return terrain.Solid(voxel.Stone)
	default:
		return terrain.New(c.Seed)
	}
}

// summary is the world line logged at boot.
func (c Config) summary() string {
	return fmt.Sprintf("world terrain=%s seed=%d dim=%d chunks=%dx%dx%d greed=%d tex=%v half=%v fog=%v",
		c.Terrain, c.Seed, c.Dim, c.Chunks, c.ChunksY, c.Chunks, c.GreedLimit, c.Textures, c.HalfRes, c.Fog)
}
