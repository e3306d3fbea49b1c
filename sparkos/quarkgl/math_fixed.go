package quarkgl

import "math"

// Scalar is the numeric type used by QuarkGL math operations.
//
// It is signed Q16.16 fixed-point. Products and quotients go through 64-bit
// intermediates so that intermediate results do not wrap.
type Scalar int32

const scalarShift = 16

// One is the Scalar value 1.0.
const One Scalar = 1 << scalarShift

// MaxScalar is the largest representable Scalar.
const MaxScalar Scalar = math.MaxInt32

func ScalarFromInt(v int) Scalar { return Scalar(int32(v) << scalarShift) }

func ScalarFromFloat32(v float32) Scalar { return Scalar(int32(v * float32(One))) }

// Int returns the integer part, rounding toward negative infinity.
func (s Scalar) Int() int { return int(int32(s) >> scalarShift) }

func (s Scalar) Float32() float32 { return float32(s) / float32(One) }

func (s Scalar) Mul(o Scalar) Scalar { return Scalar((int64(s) * int64(o)) >> scalarShift) }

// Div returns s/o. Division by zero saturates toward the sign of s.
func (s Scalar) Div(o Scalar) Scalar {
	if o == 0 {
		switch {
		case s > 0:
			return MaxScalar
		case s < 0:
			return -MaxScalar
		default:
			return 0
		}
	}
	return Scalar((int64(s) << scalarShift) / int64(o))
}

func (s Scalar) MulInt(n int) Scalar { return s * Scalar(n) }

func (s Scalar) DivInt(n int) Scalar {
	if n == 0 {
		return s.Div(0)
	}
	return s / Scalar(n)
}

func (s Scalar) Abs() Scalar {
	if s < 0 {
		return -s
	}
	return s
}

// NormaliseAngle wraps an angle in degrees into [0, 360).
func (s Scalar) NormaliseAngle() Scalar {
	const full = Scalar(360) << scalarShift
	s %= full
	if s < 0 {
		s += full
	}
	return s
}

var sinTable [361]Scalar

func init() {
	for i := range sinTable {
		sinTable[i] = ScalarFromFloat32(float32(math.Sin(float64(i) * math.Pi / 180)))
	}
}

// Sin returns the sine of an angle in degrees.
//
// It reads a one-degree table and interpolates linearly between entries.
func Sin(deg Scalar) Scalar {
	deg = deg.NormaliseAngle()
	i := deg.Int()
	frac := deg - ScalarFromInt(i)
	a, b := sinTable[i], sinTable[i+1]
	return a + (b - a).Mul(frac)
}

// Cos returns the cosine of an angle in degrees.
func Cos(deg Scalar) Scalar { return Sin(deg + ScalarFromInt(90)) }

// Vec3 is a 3D vector.
type Vec3 struct {
	X, Y, Z Scalar
}

func V3(x, y, z Scalar) Vec3 { return Vec3{X: x, Y: y, Z: z} }

// V3Int builds a vector from integer components.
func V3Int(x, y, z int) Vec3 { return Vec3{ScalarFromInt(x), ScalarFromInt(y), ScalarFromInt(z)} }

func (v Vec3) Add(o Vec3) Vec3   { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3   { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Mul(s Scalar) Vec3 { return Vec3{v.X.Mul(s), v.Y.Mul(s), v.Z.Mul(s)} }
func (v Vec3) MulInt(n int) Vec3 { return Vec3{v.X.MulInt(n), v.Y.MulInt(n), v.Z.MulInt(n)} }
func (v Vec3) DivInt(n int) Vec3 { return Vec3{v.X.DivInt(n), v.Y.DivInt(n), v.Z.DivInt(n)} }

func Dot(a, b Vec3) Scalar { return a.X.Mul(b.X) + a.Y.Mul(b.Y) + a.Z.Mul(b.Z) }

// Mat4 is a column-major 4x4 matrix: m[col*4+row].
type Mat4 [16]Scalar

func Mat4Identity() Mat4 {
	return Mat4{
		One, 0, 0, 0,
		0, One, 0, 0,
		0, 0, One, 0,
		0, 0, 0, One,
	}
}

func Mat4Mul(a, b Mat4) Mat4 {
	var out Mat4
	for col := 0; col < 4; col++ {
		for row := 0; row < 4; row++ {
			out[col*4+row] =
				a[0*4+row].Mul(b[col*4+0]) +
					a[1*4+row].Mul(b[col*4+1]) +
					a[2*4+row].Mul(b[col*4+2]) +
					a[3*4+row].Mul(b[col*4+3])
		}
	}
	return out
}

// Mat4MulV3 transforms a point (w=1) by an affine matrix.
func Mat4MulV3(m Mat4, v Vec3) Vec3 {
	return Vec3{
		X: m[0].Mul(v.X) + m[4].Mul(v.Y) + m[8].Mul(v.Z) + m[12],
		Y: m[1].Mul(v.X) + m[5].Mul(v.Y) + m[9].Mul(v.Z) + m[13],
		Z: m[2].Mul(v.X) + m[6].Mul(v.Y) + m[10].Mul(v.Z) + m[14],
	}
}

func Mat4Translate(v Vec3) Mat4 {
	m := Mat4Identity()
	m[12] = v.X
	m[13] = v.Y
	m[14] = v.Z
	return m
}

// Mat4RotateX rotates around the X axis by deg degrees.
func Mat4RotateX(deg Scalar) Mat4 {
	s, c := Sin(deg), Cos(deg)
	m := Mat4Identity()
	m[5] = c
	m[6] = s
	m[9] = -s
	m[10] = c
	return m
}

// Mat4RotateY rotates around the Y axis by deg degrees.
func Mat4RotateY(deg Scalar) Mat4 {
	s, c := Sin(deg), Cos(deg)
	m := Mat4Identity()
	m[0] = c
	m[2] = -s
	m[8] = s
	m[10] = c
	return m
}
