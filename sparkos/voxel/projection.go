package voxel

import "sparkcraft/sparkos/quarkgl"

// corners lists the chunk corners in lattice units. X neighbors are adjacent
// pairs, Y neighbors are two apart.
var corners = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {0, 1, 1}, {1, 1, 1},
}

// outOfView reports whether a camera-space point lies behind the camera or
// outside the 90 degree view cone on either axis.
func outOfView(p quarkgl.Vec3) bool {
	return p.Z < 0 || p.X.Abs() > p.Z || p.Y.Abs() > p.Z
}

// project fills the camera-space lattice from the eight transformed corners.
// It returns false when every corner is out of view.
func (c *Chunk) project(m quarkgl.Mat4) bool {
	d := c.dim
	visible := false
	for _, k := range corners {
		world := quarkgl.V3Int(
			(k[0]*d+c.origin.X*d)*BlockSize,
			(k[1]*d+c.origin.Y*d)*BlockSize,
			(k[2]*d+c.origin.Z*d)*BlockSize,
		)
		p := quarkgl.Mat4MulV3(m, world)
		c.projection[c.VertIndex(k[0]*d, k[1]*d, k[2]*d)] = p
		if !outOfView(p) {
			visible = true
		}
	}
	if !visible {
		return false
	}

	// X edges.
	for _, y := range [2]int{0, d} {
		for _, z := range [2]int{0, d} {
			c.fill(c.VertIndex(0, y, z), c.VertIndex(d, y, z), 1)
		}
	}
	// Y faces at both Z extremes.
	for _, z := range [2]int{0, d} {
		for x := 0; x <= d; x++ {
			c.fill(c.VertIndex(x, 0, z), c.VertIndex(x, d, z), d+1)
		}
	}
	// Z volume.
	n := (d + 1) * (d + 1)
	for y := 0; y <= d; y++ {
		for x := 0; x <= d; x++ {
			c.fill(c.VertIndex(x, y, 0), c.VertIndex(x, y, d), n)
		}
	}
	return true
}

// fill linearly interpolates the dim-1 interior lattice points between from
// and to, which are dim steps of stride apart.
func (c *Chunk) fill(from, to, stride int) {
	start := c.projection[from]
	delta := c.projection[to].Sub(start).DivInt(c.dim)
	for i := 1; i < c.dim; i++ {
		c.projection[from+i*stride] = start.Add(delta.MulInt(i))
	}
}

// ProjectedAt returns the camera-space lattice point from the last draw.
func (c *Chunk) ProjectedAt(x, y, z int) quarkgl.Vec3 {
	return c.projection[c.VertIndex(x, y, z)]
}
