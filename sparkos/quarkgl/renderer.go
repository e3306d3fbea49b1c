package quarkgl

// DefaultNear is the default near plane distance in world units.
var DefaultNear = ScalarFromInt(4)

// IndexedVertex references a shared position and carries per-corner attributes.
type IndexedVertex struct {
	Index uint32
	U, V  Scalar
	Color uint16
}

// ScreenPoint is a projected position: pixel coordinates plus view depth.
type ScreenPoint struct {
	X, Y int
	Z    Scalar
}

// ProcessedPosition caches the camera-space position of a shared vertex and,
// once computed, its screen projection.
type ProcessedPosition struct {
	Transformed          Vec3
	Screen               ScreenPoint
	PerspectiveAvailable bool
}

// Stats counts primitives seen by DrawArray since the last Begin.
type Stats struct {
	Primitives int
	Clipped    int
	Culled     int
	Dropped    int
}

// Renderer is a fixed-pipeline software renderer.
//
// Create it once and reuse it to avoid allocations.
type Renderer struct {
	Near Scalar

	w, h  int
	depth []Scalar

	target    Target
	tex       *Texture
	transform Mat4

	stats Stats

	clipA [maxClipVerts]clipVertex
	clipB [maxClipVerts]clipVertex
}

// NewRenderer creates a renderer with a depth buffer of w*h.
func NewRenderer(w, h int) *Renderer {
	r := &Renderer{Near: DefaultNear, transform: Mat4Identity()}
	r.resize(w, h)
	return r
}

func (r *Renderer) resize(w, h int) {
	if w <= 0 || h <= 0 {
		r.w, r.h, r.depth = 0, 0, nil
		return
	}
	r.w, r.h = w, h
	if cap(r.depth) < w*h {
		r.depth = make([]Scalar, w*h)
	} else {
		r.depth = r.depth[:w*h]
	}
}

// Size returns the current viewport size.
func (r *Renderer) Size() (w, h int) { return r.w, r.h }

// Begin starts a frame on t, clearing it to the given color and resetting depth.
func (r *Renderer) Begin(t Target, clear uint16) {
	r.target = t
	r.stats = Stats{}
	if t == nil {
		return
	}
	w, h := t.Size()
	if w != r.w || h != r.h {
		r.resize(w, h)
	}
	t.Clear(clear)
	for i := range r.depth {
		r.depth[i] = MaxScalar
	}
}

// DepthBuffer exposes the depth buffer (row-major, Size() wide).
//
// Values are view-space depth; smaller is nearer.
func (r *Renderer) DepthBuffer() []Scalar { return r.depth }

// SetTransform sets the matrix used by DrawArray when resetProcessed is true.
func (r *Renderer) SetTransform(m Mat4) { r.transform = m }

func (r *Renderer) Transform() Mat4 { return r.transform }

// BindTexture selects the texture for subsequent draws. nil draws vertex colors.
func (r *Renderer) BindTexture(t *Texture) { r.tex = t }

func (r *Renderer) BoundTexture() *Texture { return r.tex }

func (r *Renderer) Stats() Stats { return r.stats }

// DrawArray draws indexed primitives and returns the number of indices consumed.
//
// If resetProcessed is true, processed[i] is recomputed from positions[i] with the
// current transform. Otherwise processed must already hold camera-space positions;
// their screen projection is computed lazily and cached.
func (r *Renderer) DrawArray(indices []IndexedVertex, positions []Vec3, processed []ProcessedPosition, prim Primitive, resetProcessed bool) int {
	if r == nil || r.target == nil || r.depth == nil {
		return 0
	}
	if resetProcessed {
		n := len(positions)
		if len(processed) < n {
			n = len(processed)
		}
		for i := 0; i < n; i++ {
			processed[i] = ProcessedPosition{Transformed: Mat4MulV3(r.transform, positions[i])}
		}
	}

	per := prim.verts()
	drawn := 0
	for i := 0; i+per <= len(indices); i += per {
		r.drawPrim(indices[i:i+per], processed)
		drawn += per
	}
	return drawn
}

func (r *Renderer) drawPrim(iv []IndexedVertex, processed []ProcessedPosition) {
	r.stats.Primitives++

	in := r.clipA[:0]
	behind := 0
	for _, v := range iv {
		if int(v.Index) >= len(processed) {
			r.stats.Dropped++
			return
		}
		p := processed[v.Index].Transformed
		if p.Z < r.Near {
			behind++
		}
		in = append(in, clipVertex{pos: p, u: v.U, v: v.V})
	}
	if behind == len(iv) {
		r.stats.Culled++
		return
	}

	var scr [maxClipVerts]rasterVertex
	n := 0
	if behind == 0 {
		for k, v := range iv {
			p := &processed[v.Index]
			if !p.PerspectiveAvailable {
				p.Screen = r.project(p.Transformed)
				p.PerspectiveAvailable = true
			}
			scr[k] = rasterVertex{x: p.Screen.X, y: p.Screen.Y, z: p.Screen.Z, u: v.U, v: v.V}
		}
		n = len(iv)
	} else {
		r.stats.Clipped++
		out := clipNear(in, r.Near, r.clipB[:0])
		for k, cv := range out {
			sp := r.project(cv.pos)
			scr[k] = rasterVertex{x: sp.X, y: sp.Y, z: sp.Z, u: cv.u, v: cv.v}
		}
		n = len(out)
	}
	if n < 3 {
		return
	}

	fill := fillParams{color: iv[0].Color, tex: r.tex}
	if fill.tex != nil {
		fill.uvBounds(scr[:n])
	}
	for k := 1; k+1 < n; k++ {
		r.fillTriangle(scr[0], scr[k], scr[k+1], &fill)
	}
}

// maxCoord bounds projected coordinates so that edge functions stay inside int64
// after the Q16 weight shift.
const maxCoord = 1 << 20

func (r *Renderer) project(v Vec3) ScreenPoint {
	z := int64(v.Z)
	if z <= 0 {
		z = 1
	}
	f := int64(r.w / 2)
	sx := clampCoord(int64(v.X) * f / z)
	sy := clampCoord(int64(v.Y) * f / z)
	return ScreenPoint{X: r.w/2 + sx, Y: r.h/2 - sy, Z: v.Z}
}

func clampCoord(v int64) int {
	if v > maxCoord {
		return maxCoord
	}
	if v < -maxCoord {
		return -maxCoord
	}
	return int(v)
}
