package quarkgl

const maxClipVerts = 8

type clipVertex struct {
	pos  Vec3
	u, v Scalar
}

type rasterVertex struct {
	x, y int
	z    Scalar
	u, v Scalar
}

type fillParams struct {
	color uint16
	tex   *Texture

	// Texel bounds of the primitive, so edge samples never bleed into the
	// neighboring tile of a sheet.
	minU, maxU int
	minV, maxV int
}

func (f *fillParams) uvBounds(vs []rasterVertex) {
	f.minU, f.maxU = vs[0].u.Int(), vs[0].u.Int()
	f.minV, f.maxV = vs[0].v.Int(), vs[0].v.Int()
	for _, v := range vs[1:] {
		f.minU = min(f.minU, v.u.Int())
		f.maxU = max(f.maxU, v.u.Int())
		f.minV = min(f.minV, v.v.Int())
		f.maxV = max(f.maxV, v.v.Int())
	}
	if f.maxU > f.minU {
		f.maxU--
	}
	if f.maxV > f.minV {
		f.maxV--
	}
}

// clipNear clips a convex polygon against the plane z = near and appends the
// result to out.
func clipNear(in []clipVertex, near Scalar, out []clipVertex) []clipVertex {
	n := len(in)
	for i := 0; i < n; i++ {
		a := in[i]
		b := in[(i+1)%n]
		aIn := a.pos.Z >= near
		bIn := b.pos.Z >= near
		if aIn {
			out = append(out, a)
		}
		if aIn != bIn {
			t := (near - a.pos.Z).Div(b.pos.Z - a.pos.Z)
			out = append(out, clipVertex{
				pos: Vec3{
					X: a.pos.X + (b.pos.X - a.pos.X).Mul(t),
					Y: a.pos.Y + (b.pos.Y - a.pos.Y).Mul(t),
					Z: near,
				},
				u: a.u + (b.u - a.u).Mul(t),
				v: a.v + (b.v - a.v).Mul(t),
			})
		}
	}
	return out
}

func (r *Renderer) fillTriangle(a, b, c rasterVertex, f *fillParams) {
	area := edgeFn(a.x, a.y, b.x, b.y, c.x, c.y)
	if area == 0 {
		return
	}
	if area < 0 {
		b, c = c, b
		area = -area
	}

	minX, maxX := min3(a.x, b.x, c.x), max3(a.x, b.x, c.x)
	minY, maxY := min3(a.y, b.y, c.y), max3(a.y, b.y, c.y)
	if minX < 0 {
		minX = 0
	}
	if minY < 0 {
		minY = 0
	}
	if maxX >= r.w {
		maxX = r.w - 1
	}
	if maxY >= r.h {
		maxY = r.h - 1
	}
	if minX > maxX || minY > maxY {
		return
	}

	for y := minY; y <= maxY; y++ {
		row := y * r.w
		for x := minX; x <= maxX; x++ {
			w0 := edgeFn(b.x, b.y, c.x, c.y, x, y)
			w1 := edgeFn(c.x, c.y, a.x, a.y, x, y)
			w2 := edgeFn(a.x, a.y, b.x, b.y, x, y)
			if (w0 | w1 | w2) < 0 {
				continue
			}
			l0 := Scalar((w0 << scalarShift) / area)
			l1 := Scalar((w1 << scalarShift) / area)
			l2 := One - l0 - l1

			z := lerp3(l0, l1, l2, a.z, b.z, c.z)
			if z >= r.depth[row+x] {
				continue
			}

			px := f.color
			if f.tex != nil {
				tu := clampInt(lerp3(l0, l1, l2, a.u, b.u, c.u).Int(), f.minU, f.maxU)
				tv := clampInt(lerp3(l0, l1, l2, a.v, b.v, c.v).Int(), f.minV, f.maxV)
				px = f.tex.At(tu, tv)
				if f.tex.HasTransparency && px == f.tex.Transparent {
					continue
				}
			}
			r.depth[row+x] = z
			r.target.SetPixel(x, y, px)
		}
	}
}

func lerp3(l0, l1, l2, a, b, c Scalar) Scalar {
	return Scalar((int64(l0)*int64(a) + int64(l1)*int64(b) + int64(l2)*int64(c)) >> scalarShift)
}

func edgeFn(x0, y0, x1, y1, x, y int) int64 {
	return int64(x-x0)*int64(y1-y0) - int64(y-y0)*int64(x1-x0)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func min3(a, b, c int) int {
	if a > b {
		a = b
	}
	if a > c {
		a = c
	}
	return a
}

func max3(a, b, c int) int {
	if a < b {
		a = b
	}
	if a < c {
		a = c
	}
	return a
}
