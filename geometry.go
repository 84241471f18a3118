package glboot

import "fmt"

// ComponentsPerVertex is the number of floats describing one vertex position.
const ComponentsPerVertex = 3

// Geometry is an immutable list of vertex positions, three floats each.
type Geometry struct {
	points []float32
}

// NewGeometry copies points into a Geometry. The length must be a non-zero
// multiple of ComponentsPerVertex.
func NewGeometry(points []float32) (Geometry, error) {
	if len(points) == 0 || len(points)%ComponentsPerVertex != 0 {
		return Geometry{}, fmt.Errorf("geometry: %d floats is not a whole number of vertices", len(points))
	}
	return Geometry{points: append([]float32(nil), points...)}, nil
}

// Points returns a copy of the vertex data.
func (g Geometry) Points() []float32 {
	return append([]float32(nil), g.points...)
}

// Len returns the number of floats.
func (g Geometry) Len() int {
	return len(g.points)
}

// VertexCount returns the number of vertices, Len()/3.
func (g Geometry) VertexCount() int32 {
	return int32(len(g.points) / ComponentsPerVertex)
}

// Quad returns two triangles covering the centre of clip space.
func Quad() Geometry {
	return Geometry{points: []float32{
		-0.5, -0.5, 0.0,
		0.5, -0.5, 0.0,
		-0.5, 0.5, 0.0,

		-0.5, 0.5, 0.0,
		0.5, 0.5, 0.0,
		0.5, -0.5, 0.0,
	}}
}
