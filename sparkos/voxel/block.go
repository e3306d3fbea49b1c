package voxel

import "sparkcraft/sparkos/quarkgl"

const (
	// BlockSize is the edge length of one block in world units.
	BlockSize = 32
	// TexSize is the edge length of one texture tile in texels.
	TexSize = 16
	// MaxGreedLimit bounds the merged quad extent on either axis.
	MaxGreedLimit = 4
	// MaxDim is the largest supported chunk edge in blocks.
	MaxDim = 32
	// MaxBlockTypes is the number of block types the colorsheet covers.
	MaxBlockTypes = 8
)

// SheetTile is the edge of one block type's cell in the spritesheet: a texture
// tile repeated to cover the largest merged quad.
const SheetTile = TexSize * MaxGreedLimit

// BlockType identifies what a cell is made of. 0 is air.
type BlockType uint8

const (
	Air BlockType = iota
	Dirt
	Stone
	Cobble
	Gravel
)

type Block struct {
	Type BlockType
}

func (b Block) Solid() bool { return b.Type != Air }

// Face is one of the six axis-aligned face directions.
type Face uint8

const (
	FaceNegX Face = iota
	FacePosX
	FaceNegY
	FacePosY
	FaceNegZ
	FacePosZ

	FaceCount = 6
)

func (f Face) String() string {
	switch f {
	case FaceNegX:
		return "-x"
	case FacePosX:
		return "+x"
	case FaceNegY:
		return "-y"
	case FacePosY:
		return "+y"
	case FaceNegZ:
		return "-z"
	case FacePosZ:
		return "+z"
	default:
		return "?"
	}
}

// Axis returns 0, 1 or 2 for the X, Y or Z faces.
func (f Face) Axis() int { return int(f) / 2 }

// Normal returns the neighbor offset in the face's direction.
func (f Face) Normal() (dx, dy, dz int) {
	s := -1
	if f%2 == 1 {
		s = 1
	}
	switch f.Axis() {
	case 0:
		return s, 0, 0
	case 1:
		return 0, s, 0
	default:
		return 0, 0, s
	}
}

// faceAxes lists the (width, height) axes used when merging each face. They
// follow the u and v axes of the face template.
var faceAxes = [FaceCount][2]int{
	FaceNegX: {2, 1},
	FacePosX: {2, 1},
	FaceNegY: {2, 0},
	FacePosY: {0, 2},
	FaceNegZ: {0, 1},
	FacePosZ: {0, 1},
}

type templateCorner struct {
	pos  [3]int
	u, v int // 0 or 1, in tiles
}

// faceTemplates are the unit-cube quads for each face, wound consistently with
// the u/v layout of a tile.
var faceTemplates = [FaceCount][4]templateCorner{
	FaceNegX: {
		{pos: [3]int{0, 0, 1}, u: 0, v: 0},
		{pos: [3]int{0, 0, 0}, u: 1, v: 0},
		{pos: [3]int{0, 1, 0}, u: 1, v: 1},
		{pos: [3]int{0, 1, 1}, u: 0, v: 1},
	},
	FacePosX: {
		{pos: [3]int{1, 0, 0}, u: 0, v: 0},
		{pos: [3]int{1, 0, 1}, u: 1, v: 0},
		{pos: [3]int{1, 1, 1}, u: 1, v: 1},
		{pos: [3]int{1, 1, 0}, u: 0, v: 1},
	},
	FaceNegY: {
		{pos: [3]int{0, 0, 0}, u: 0, v: 0},
		{pos: [3]int{0, 0, 1}, u: 1, v: 0},
		{pos: [3]int{1, 0, 1}, u: 1, v: 1},
		{pos: [3]int{1, 0, 0}, u: 0, v: 1},
	},
	FacePosY: {
		{pos: [3]int{0, 1, 0}, u: 0, v: 0},
		{pos: [3]int{1, 1, 0}, u: 1, v: 0},
		{pos: [3]int{1, 1, 1}, u: 1, v: 1},
		{pos: [3]int{0, 1, 1}, u: 0, v: 1},
	},
	FaceNegZ: {
		{pos: [3]int{0, 0, 0}, u: 0, v: 0},
		{pos: [3]int{1, 0, 0}, u: 1, v: 0},
		{pos: [3]int{1, 1, 0}, u: 1, v: 1},
		{pos: [3]int{0, 1, 0}, u: 0, v: 1},
	},
	FacePosZ: {
		{pos: [3]int{0, 0, 1}, u: 0, v: 0},
		{pos: [3]int{1, 0, 1}, u: 1, v: 0},
		{pos: [3]int{1, 1, 1}, u: 1, v: 1},
		{pos: [3]int{0, 1, 1}, u: 0, v: 1},
	},
}

// Colorsheet holds the solid RGB565 color of each block type, one column per
// face axis. It is used when textures are disabled.
var Colorsheet = [MaxBlockTypes][3]uint16{
	{0xb016, 0xf81f, 0xd81b},
	{0x72e7, 0xa42a, 0x8b88},
	{0x738e, 0xa514, 0x8c51},
	{0x4a49, 0x6b6d, 0x5acb},
	{0x528a, 0x73ae, 0x632c},
	{0xb016, 0xf81f, 0xd81b},
	{0xb016, 0xf81f, 0xd81b},
	{0xb016, 0xf81f, 0xd81b},
}

// white is the vertex color of textured quads.
const white uint16 = 0xFFFF

// Generator decides the block type at world block coordinates.
//
// Implementations must be pure: the same coordinates always yield the same type.
type Generator interface {
	BlockAt(x, y, z int) BlockType
}

// GeneratorFunc adapts a function to Generator.
type GeneratorFunc func(x, y, z int) BlockType

func (f GeneratorFunc) BlockAt(x, y, z int) BlockType { return f(x, y, z) }

// Drawer is the subset of quarkgl.Renderer a chunk draws through.
type Drawer interface {
	BindTexture(t *quarkgl.Texture)
	DrawArray(indices []quarkgl.IndexedVertex, positions []quarkgl.Vec3, processed []quarkgl.ProcessedPosition, prim quarkgl.Primitive, resetProcessed bool) int
}
