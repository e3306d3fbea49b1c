package voxel

// updateTexturesByDir marks, per direction, the type of every solid cell whose
// neighbor in that direction is air or outside the chunk. Everything else is 0.
func (c *Chunk) updateTexturesByDir() {
	for z := 0; z < c.dim; z++ {
		for y := 0; y < c.dim; y++ {
			for x := 0; x < c.dim; x++ {
				i := c.cellIndex(x, y, z)
				b := c.blocks[i]
				for d := Face(0); d < FaceCount; d++ {
					if !b.Solid() {
						c.texturesByDir[d][i] = Air
						continue
					}
					dx, dy, dz := d.Normal()
					n, ok := c.blockAt(x+dx, y+dy, z+dz)
					if !ok || !n.Solid() {
						c.texturesByDir[d][i] = b.Type
					} else {
						c.texturesByDir[d][i] = Air
					}
				}
			}
		}
	}
}

// Visible reports whether face d of the cell at (x, y, z) is drawn.
func (c *Chunk) Visible(x, y, z int, d Face) bool {
	if !c.inBounds(x, y, z) || d >= FaceCount {
		return false
	}
	return c.texturesByDir[d][c.cellIndex(x, y, z)] != Air
}
