package voxel

import (
	"errors"
	"fmt"

	"sparkcraft/sparkos/quarkgl"
)

// ErrInvalidDim reports a chunk dimension outside [1, MaxDim].
var ErrInvalidDim = errors.New("voxel: invalid chunk dimension")

// Coord is an integer position, in chunks or blocks depending on use.
type Coord struct {
	X, Y, Z int
}

// Chunk is a cube of Dim()^3 blocks with its derived mesh and projection state.
//
// A Chunk is not safe for concurrent use.
type Chunk struct {
	dim    int
	origin Coord

	blocks []Block

	texturesByDir [FaceCount][]BlockType
	facesByDir    [FaceCount][]quarkgl.IndexedVertex
	consumed      []bool

	projection []quarkgl.Vec3
	processed  []quarkgl.ProcessedPosition

	greedLimit    int
	usingTextures bool
	sheet         *quarkgl.Texture
}

// NewChunk fills a dim^3 chunk at chunk-grid position origin from gen.
func NewChunk(dim int, origin Coord, gen Generator) (*Chunk, error) {
	if dim < 1 || dim > MaxDim {
		return nil, fmt.Errorf("voxel: chunk dim %d: %w", dim, ErrInvalidDim)
	}
	n := dim * dim * dim
	l := (dim + 1) * (dim + 1) * (dim + 1)
	c := &Chunk{
		dim:           dim,
		origin:        origin,
		blocks:        make([]Block, n),
		consumed:      make([]bool, n),
		projection:    make([]quarkgl.Vec3, l),
		processed:     make([]quarkgl.ProcessedPosition, l),
		greedLimit:    MaxGreedLimit,
		usingTextures: true,
	}
	for d := range c.texturesByDir {
		c.texturesByDir[d] = make([]BlockType, n)
	}

	if gen != nil {
		bx, by, bz := origin.X*dim, origin.Y*dim, origin.Z*dim
		for z := 0; z < dim; z++ {
			for y := 0; y < dim; y++ {
				for x := 0; x < dim; x++ {
					c.blocks[c.cellIndex(x, y, z)] = Block{Type: gen.BlockAt(bx+x, by+y, bz+z)}
				}
			}
		}
	}
	c.rebuild()
	return c, nil
}

func (c *Chunk) Dim() int            { return c.dim }
func (c *Chunk) Origin() Coord       { return c.origin }
func (c *Chunk) GreedLimit() int     { return c.greedLimit }
func (c *Chunk) UsingTextures() bool { return c.usingTextures }

func (c *Chunk) inBounds(x, y, z int) bool {
	return x >= 0 && y >= 0 && z >= 0 && x < c.dim && y < c.dim && z < c.dim
}

func (c *Chunk) cellIndex(x, y, z int) int { return x + y*c.dim + z*c.dim*c.dim }

// VertIndex returns the lattice index of corner (x, y, z), each in [0, Dim()].
func (c *Chunk) VertIndex(x, y, z int) int {
	n := c.dim + 1
	return x + y*n + z*n*n
}

// blockAt is the bounds-checked cell lookup used for neighbor tests.
func (c *Chunk) blockAt(x, y, z int) (Block, bool) {
	if !c.inBounds(x, y, z) {
		return Block{}, false
	}
	return c.blocks[c.cellIndex(x, y, z)], true
}

// Block returns the block at chunk-local coordinates.
func (c *Chunk) Block(x, y, z int) (Block, bool) { return c.blockAt(x, y, z) }

// SetBlock replaces one cell and rebuilds the mesh. It reports false, and
// changes nothing, when the coordinates fall outside the chunk or t is not
// below MaxBlockTypes.
func (c *Chunk) SetBlock(x, y, z int, t BlockType) bool {
	if !c.inBounds(x, y, z) || t >= MaxBlockTypes {
		return false
	}
	c.blocks[c.cellIndex(x, y, z)] = Block{Type: t}
	c.rebuild()
	return true
}

// SetGreedLimit clamps n to [1, MaxGreedLimit] and re-merges faces if it changed.
func (c *Chunk) SetGreedLimit(n int) {
	n = max(1, min(n, MaxGreedLimit))
	if n == c.greedLimit {
		return
	}
	c.greedLimit = n
	c.updateFaces()
}

func (c *Chunk) EnableTextures() {
	if c.usingTextures {
		return
	}
	c.usingTextures = true
	c.updateFaces()
}

func (c *Chunk) DisableTextures() {
	if !c.usingTextures {
		return
	}
	c.usingTextures = false
	c.updateFaces()
}

// SetSpritesheet sets the texture bound while textures are enabled.
func (c *Chunk) SetSpritesheet(t *quarkgl.Texture) { c.sheet = t }

// QuadCount returns the number of merged quads across all directions.
func (c *Chunk) QuadCount() int {
	n := 0
	for d := range c.facesByDir {
		n += len(c.facesByDir[d]) / 4
	}
	return n
}

// Bounds returns the world-space box covered by the chunk.
func (c *Chunk) Bounds() (lo, hi quarkgl.Vec3) {
	d := c.dim
	lo = quarkgl.V3Int(c.origin.X*d*BlockSize, c.origin.Y*d*BlockSize, c.origin.Z*d*BlockSize)
	hi = quarkgl.V3Int((c.origin.X*d+d)*BlockSize, (c.origin.Y*d+d)*BlockSize, (c.origin.Z*d+d)*BlockSize)
	return lo, hi
}

// TaxiDist returns the Manhattan distance from the chunk's center to p,
// saturating at quarkgl.MaxScalar.
func (c *Chunk) TaxiDist(p quarkgl.Vec3) quarkgl.Scalar {
	lo, hi := c.Bounds()
	center := quarkgl.V3((lo.X+hi.X)/2, (lo.Y+hi.Y)/2, (lo.Z+hi.Z)/2)
	d := center.Sub(p)
	sum := int64(d.X.Abs()) + int64(d.Y.Abs()) + int64(d.Z.Abs())
	if sum > int64(quarkgl.MaxScalar) {
		return quarkgl.MaxScalar
	}
	return quarkgl.Scalar(sum)
}

func (c *Chunk) rebuild() {
	c.updateTexturesByDir()
	c.updateFaces()
}

func (c *Chunk) updateFaces() {
	for d := Face(0); d < FaceCount; d++ {
		c.updateFacesByDir(d)
	}
}
