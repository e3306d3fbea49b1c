package quarkgl

import (
	"errors"
	"fmt"
)

// ErrMalformedBatch reports a vertex batch whose length is not a multiple of 3.
var ErrMalformedBatch = errors.New("quarkgl: vertex count is not a multiple of 3")

// Vertex is a non-indexed vertex with texture coordinates and a color.
type Vertex struct {
	X, Y, Z Scalar
	U, V    Scalar
	Color   uint16
}

func midpoint(a, b Scalar) Scalar { return a + (b-a)/2 }

func midpointVertex(a, b Vertex) Vertex {
	return Vertex{
		X:     midpoint(a.X, b.X),
		Y:     midpoint(a.Y, b.Y),
		Z:     midpoint(a.Z, b.Z),
		U:     midpoint(a.U, b.U),
		V:     midpoint(a.V, b.V),
		Color: a.Color,
	}
}

// SplitTris subdivides every triangle into four at its edge midpoints.
//
// For a triangle (a, b, c) with midpoints ab, bc, ca the output is
// [a ab ca] [ab b ca] [ca b bc] [ca bc c].
func SplitTris(vertices []Vertex) ([]Vertex, error) {
	if len(vertices)%3 != 0 {
		return nil, fmt.Errorf("split tris: %d vertices: %w", len(vertices), ErrMalformedBatch)
	}

	out := make([]Vertex, len(vertices)*4)
	for i := 0; i < len(vertices); i += 3 {
		a, b, c := vertices[i], vertices[i+1], vertices[i+2]
		ab := midpointVertex(a, b)
		bc := midpointVertex(b, c)
		ca := midpointVertex(c, a)

		o := out[i*4 : i*4+12]
		o[0], o[1], o[2] = a, ab, ca
		o[3], o[4], o[5] = ab, b, ca
		o[6], o[7], o[8] = ca, b, bc
		o[9], o[10], o[11] = ca, bc, c
	}
	return out, nil
}
