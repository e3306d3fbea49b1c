package voxel

import "sparkcraft/sparkos/quarkgl"

// updateFacesByDir greedily merges the visible faces of direction d into quads.
//
// Cells are visited in index order. From each unconsumed visible cell the quad
// first grows along the width axis, then along the height axis, both capped by
// greedLimit. Consumed cells are never revisited.
func (c *Chunk) updateFacesByDir(d Face) {
	tex := c.texturesByDir[d]
	for i := range c.consumed {
		c.consumed[i] = false
	}
	faces := c.facesByDir[d][:0]

	wa, ha := faceAxes[d][0], faceAxes[d][1]
	limit := c.greedLimit

	for z := 0; z < c.dim; z++ {
		for y := 0; y < c.dim; y++ {
			for x := 0; x < c.dim; x++ {
				i := c.cellIndex(x, y, z)
				t := tex[i]
				if t == Air || c.consumed[i] {
					continue
				}
				start := [3]int{x, y, z}

				width := 1
				for width < limit {
					p := start
					p[wa] += width
					if !c.mergeable(p, t, tex) {
						break
					}
					width++
				}

				height := limit
			rows:
				for v := 1; v < height; v++ {
					for u := 0; u < width; u++ {
						p := start
						p[wa] += u
						p[ha] += v
						if !c.mergeable(p, t, tex) {
							height = v
							break rows
						}
					}
				}

				for v := 0; v < height; v++ {
					for u := 0; u < width; u++ {
						p := start
						p[wa] += u
						p[ha] += v
						c.consumed[c.cellIndex(p[0], p[1], p[2])] = true
					}
				}

				faces = c.appendQuad(faces, d, start, width, height, t)
			}
		}
	}
	c.facesByDir[d] = faces
}

func (c *Chunk) mergeable(p [3]int, t BlockType, tex []BlockType) bool {
	if !c.inBounds(p[0], p[1], p[2]) {
		return false
	}
	i := c.cellIndex(p[0], p[1], p[2])
	return !c.consumed[i] && tex[i] == t
}

func (c *Chunk) appendQuad(faces []quarkgl.IndexedVertex, d Face, cell [3]int, width, height int, t BlockType) []quarkgl.IndexedVertex {
	wa, ha := faceAxes[d][0], faceAxes[d][1]
	axis := d.Axis()
	for _, tc := range faceTemplates[d] {
		p := tc.pos
		p[wa] *= width
		p[ha] *= height
		iv := quarkgl.IndexedVertex{
			Index: uint32(c.VertIndex(cell[0]+p[0], cell[1]+p[1], cell[2]+p[2])),
		}
		if c.usingTextures {
			iv.U = quarkgl.ScalarFromInt(tc.u*TexSize*width + axis*SheetTile)
			iv.V = quarkgl.ScalarFromInt(tc.v*TexSize*height + int(t)*SheetTile)
			iv.Color = white
		} else {
			iv.Color = Colorsheet[int(t)%MaxBlockTypes][axis]
		}
		faces = append(faces, iv)
	}
	return faces
}
