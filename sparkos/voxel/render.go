package voxel

import "sparkcraft/sparkos/quarkgl"

// facing returns, per direction, whether the camera is on the outward side of
// the chunk's bounding box.
func (c *Chunk) facing(cam quarkgl.Vec3) [FaceCount]bool {
	lo, hi := c.Bounds()
	return [FaceCount]bool{
		FaceNegX: cam.X < lo.X,
		FacePosX: cam.X > hi.X,
		FaceNegY: cam.Y < lo.Y,
		FacePosY: cam.Y > hi.Y,
		FaceNegZ: cam.Z < lo.Z,
		FacePosZ: cam.Z > hi.Z,
	}
}

// Render draws the chunk's camera-facing quads through r using the world to
// camera transform m, and returns the number of indices drawn.
func (c *Chunk) Render(r Drawer, m quarkgl.Mat4, cam quarkgl.Vec3) int {
	if !c.project(m) {
		return 0
	}
	// processed mirrors the camera-space lattice, so the renderer only
	// projects it to screen space.
	for i, p := range c.projection {
		c.processed[i] = quarkgl.ProcessedPosition{Transformed: p}
	}

	if c.usingTextures {
		r.BindTexture(c.sheet)
	} else {
		r.BindTexture(nil)
	}

	drawn := 0
	for d, ok := range c.facing(cam) {
		if !ok || len(c.facesByDir[d]) == 0 {
			continue
		}
		drawn += r.DrawArray(c.facesByDir[d], c.projection, c.processed, quarkgl.PrimQuads, false)
	}
	return drawn
}
