// Package terrain provides block generators for voxel worlds.
package terrain

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"sparkcraft/sparkos/quarkgl"
	"sparkcraft/sparkos/voxel"
)

const (
	perlinAlpha   = 2.0
	perlinBeta    = 2.0
	perlinOctaves = 3

	dirtDepth = 3
)

// Generator is a seeded heightmap generator. BlockAt is pure and safe for
// concurrent use.
type Generator struct {
	noise      *perlin.Perlin
	offX, offZ float64

	scale      float64
	minH, maxH int
}

type Option func(*Generator)

// WithScale sets the noise frequency in cycles per block.
func WithScale(s float64) Option {
	return func(g *Generator) {
		if s > 0 {
			g.scale = s
		}
	}
}

// WithHeights sets the surface height range in blocks.
func WithHeights(minH, maxH int) Option {
	return func(g *Generator) {
		if minH < 1 {
			minH = 1
		}
		if maxH < minH {
			maxH = minH
		}
		g.minH, g.maxH = minH, maxH
	}
}

// New returns a generator whose terrain depends only on seed and opts.
func New(seed int64, opts ...Option) *Generator {
	g := &Generator{scale: 1.0 / 24, minH: 2, maxH: 12}
	for _, opt := range opts {
		opt(g)
	}
	r := rand.New(rand.NewSource(seed))
	g.noise = perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, r.Int63())
	g.offX = r.Float64() * 4096
	g.offZ = r.Float64() * 4096
	return g
}

// Height returns the surface block y at column (x, z).
func (g *Generator) Height(x, z int) int {
	n := g.noise.Noise2D(float64(x)*g.scale+g.offX, float64(z)*g.scale+g.offZ)
	n = (n + 1) / 2
	if n < 0 {
		n = 0
	}
	if n > 1 {
		n = 1
	}
	return g.minH + int(n*float64(g.maxH-g.minH)+0.5)
}

func (g *Generator) BlockAt(x, y, z int) voxel.BlockType {
	if y < 0 {
		return voxel.Air
	}
	h := g.Height(x, z)
	switch {
	case y > h:
		return voxel.Air
	case y == 0:
		return voxel.Gravel
	case y == h:
		return voxel.Stone
	case y >= h-dirtDepth:
		return voxel.Dirt
	case hash(x, y, z)%16 == 0:
		return voxel.Gravel
	default:
		return voxel.Cobble
	}
}

// hash mixes block coordinates into a well-spread value.
func hash(x, y, z int) uint32 {
	h := uint32(x)*0x8da6b343 ^ uint32(y)*0xd8163841 ^ uint32(z)*0xcb1ab31f
	h ^= h >> 13
	h *= 0x5bd1e995
	h ^= h >> 15
	return h
}

// Flat fills every y below height with t.
func Flat(height int, t voxel.BlockType) voxel.GeneratorFunc {
	return func(x, y, z int) voxel.BlockType {
		if y >= 0 && y < height {
			return t
		}
		return voxel.Air
	}
}

// Solid fills the whole world with t.
func Solid(t voxel.BlockType) voxel.GeneratorFunc {
	return func(x, y, z int) voxel.BlockType { return t }
}

// SineHills is a fixed-point ground of sin(5x + 10z)*2 + 4 blocks with a
// one-block stone cap over dirt.
func SineHills() voxel.GeneratorFunc {
	return func(x, y, z int) voxel.BlockType {
		ground := quarkgl.Sin(quarkgl.ScalarFromInt(x*5 + z*10)).MulInt(2) + quarkgl.ScalarFromInt(4)
		fy := quarkgl.ScalarFromInt(y)
		switch {
		case y < 0 || fy > ground:
			return voxel.Air
		case fy > ground-quarkgl.One:
			return voxel.Stone
		default:
			return voxel.Dirt
		}
	}
}
