package voxel

import (
	"errors"
	"fmt"
	"sort"

	"sparkcraft/sparkos/quarkgl"
)

// MaxWorldExtent bounds the world edge in world units so that camera-space
// coordinates stay inside the Scalar range.
const MaxWorldExtent = 1 << 13

var (
	// ErrWorldTooLarge reports a chunk grid whose extent exceeds MaxWorldExtent.
	ErrWorldTooLarge = errors.New("voxel: world too large")
	// ErrInvalidSize reports a chunk grid with an empty axis.
	ErrInvalidSize = errors.New("voxel: invalid world size")
)

// World is a fixed grid of chunks generated from one Generator.
type World struct {
	dim   int
	size  Coord
	sheet *quarkgl.Texture

	chunks []*Chunk
	order  []*Chunk
}

// NewWorld builds a sx*sy*sz grid of dim^3 chunks.
func NewWorld(dim, sx, sy, sz int, gen Generator) (*World, error) {
	if sx < 1 || sy < 1 || sz < 1 {
		return nil, fmt.Errorf("voxel: world size %dx%dx%d: %w", sx, sy, sz, ErrInvalidSize)
	}
	if dim >= 1 && max(sx, sy, sz)*dim*BlockSize > MaxWorldExtent {
		return nil, fmt.Errorf("voxel: world size %dx%dx%d of dim %d: %w", sx, sy, sz, dim, ErrWorldTooLarge)
	}
	w := &World{dim: dim, size: Coord{sx, sy, sz}}
	w.chunks = make([]*Chunk, 0, sx*sy*sz)
	for z := 0; z < sz; z++ {
		for y := 0; y < sy; y++ {
			for x := 0; x < sx; x++ {
				c, err := NewChunk(dim, Coord{x, y, z}, gen)
				if err != nil {
					return nil, fmt.Errorf("voxel: new world: %w", err)
				}
				w.chunks = append(w.chunks, c)
			}
		}
	}
	w.order = make([]*Chunk, len(w.chunks))
	return w, nil
}

func (w *World) Dim() int         { return w.dim }
func (w *World) Size() Coord      { return w.size }
func (w *World) Chunks() []*Chunk { return w.chunks }

// Chunk returns the chunk at chunk-grid position p, or nil.
func (w *World) Chunk(p Coord) *Chunk {
	if p.X < 0 || p.Y < 0 || p.Z < 0 || p.X >= w.size.X || p.Y >= w.size.Y || p.Z >= w.size.Z {
		return nil
	}
	return w.chunks[p.X+p.Y*w.size.X+p.Z*w.size.X*w.size.Y]
}

// locate maps world block coordinates to a chunk and chunk-local coordinates.
func (w *World) locate(bx, by, bz int) (*Chunk, int, int, int) {
	if bx < 0 || by < 0 || bz < 0 {
		return nil, 0, 0, 0
	}
	c := w.Chunk(Coord{bx / w.dim, by / w.dim, bz / w.dim})
	return c, bx % w.dim, by % w.dim, bz % w.dim
}

// Block returns the block at world block coordinates.
func (w *World) Block(bx, by, bz int) (Block, bool) {
	c, x, y, z := w.locate(bx, by, bz)
	if c == nil {
		return Block{}, false
	}
	return c.Block(x, y, z)
}

// SetBlock sets the block at world block coordinates. It reports false when
// the coordinates fall outside the world.
func (w *World) SetBlock(bx, by, bz int, t BlockType) bool {
	c, x, y, z := w.locate(bx, by, bz)
	if c == nil {
		return false
	}
	return c.SetBlock(x, y, z, t)
}

// BlockCoord converts a world-space position to world block coordinates.
func BlockCoord(p quarkgl.Vec3) Coord {
	return Coord{
		X: floorDiv(p.X.Int(), BlockSize),
		Y: floorDiv(p.Y.Int(), BlockSize),
		Z: floorDiv(p.Z.Int(), BlockSize),
	}
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func (w *World) SetGreedLimit(n int) {
	for _, c := range w.chunks {
		c.SetGreedLimit(n)
	}
}

func (w *World) EnableTextures() {
	for _, c := range w.chunks {
		c.EnableTextures()
	}
}

func (w *World) DisableTextures() {
	for _, c := range w.chunks {
		c.DisableTextures()
	}
}

func (w *World) SetSpritesheet(t *quarkgl.Texture) {
	w.sheet = t
	for _, c := range w.chunks {
		c.SetSpritesheet(t)
	}
}

// GreedLimit returns the greed limit of the first chunk; all chunks share it
// when configured through World.
func (w *World) GreedLimit() int {
	if len(w.chunks) == 0 {
		return MaxGreedLimit
	}
	return w.chunks[0].GreedLimit()
}

func (w *World) UsingTextures() bool {
	return len(w.chunks) == 0 || w.chunks[0].UsingTextures()
}

// QuadCount sums the merged quads of every chunk.
func (w *World) QuadCount() int {
	n := 0
	for _, c := range w.chunks {
		n += c.QuadCount()
	}
	return n
}

// Render draws chunks nearest first and returns the indices drawn and the
// number of chunks visited. Once budget reports true the remaining chunks are
// skipped. A nil budget never stops the pass.
func (w *World) Render(r Drawer, m quarkgl.Mat4, cam quarkgl.Vec3, budget func() bool) (indices, drawnChunks int) {
	copy(w.order, w.chunks)
	sort.SliceStable(w.order, func(i, j int) bool {
		return w.order[i].TaxiDist(cam) < w.order[j].TaxiDist(cam)
	})
	for _, c := range w.order {
		if budget != nil && budget() {
			break
		}
		indices += c.Render(r, m, cam)
		drawnChunks++
	}
	return indices, drawnChunks
}
