package wavefront

import (
	"github.com/Faultbox/scop/pkg/math"
)

// VertexStride is the number of floats per vertex in RawVertices:
// position xyzw, color rgb, texture uv.
const VertexStride = 9

// VertexAttribute describes one attribute inside the interleaved buffer.
type VertexAttribute struct {
	Name   string
	Size   int // Number of float components
	Offset int // Offset in floats from the start of a vertex
}

// AttributeLayout returns the layout of RawVertices for GPU upload.
func AttributeLayout() []VertexAttribute {
	return []VertexAttribute{
		{Name: "position", Size: 4, Offset: 0},
		{Name: "color", Size: 3, Offset: 4},
		{Name: "uv", Size: 2, Offset: 7},
	}
}

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max math.Vec3
}

// Size returns Max - Min.
func (b AABB) Size() math.Vec3 {
	return b.Max.Sub(b.Min)
}

// Center returns the middle of the box.
func (b AABB) Center() math.Vec3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

// Range returns the extent per axis with zero extents replaced by 1, so
// that it can be used as a divisor on flat models.
func (b AABB) Range() math.Vec3 {
	r := b.Size()
	if r.X == 0 {
		r.X = 1
	}
	if r.Y == 0 {
		r.Y = 1
	}
	if r.Z == 0 {
		r.Z = 1
	}
	return r
}

// ComputeAABB returns the bounds of all vertex positions.
func ComputeAABB(vertices []Vertice) (AABB, error) {
	if len(vertices) == 0 {
		return AABB{}, ErrEmptyGeometry
	}

	first := math.Vec3{X: vertices[0].X, Y: vertices[0].Y, Z: vertices[0].Z}
	box := AABB{Min: first, Max: first}
	for _, v := range vertices[1:] {
		p := math.Vec3{X: v.X, Y: v.Y, Z: v.Z}
		box.Min = box.Min.Min(p)
		box.Max = box.Max.Max(p)
	}
	return box, nil
}

// AABB returns the bounds of the OBJ's vertex positions.
func (o *OBJ) AABB() (AABB, error) {
	return ComputeAABB(o.Vertices)
}

// RawVertices flattens the faces into an interleaved buffer, one vertex per
// face corner in face order, laid out as AttributeLayout describes.
//
// When the OBJ has no texture vertices, UVs are the position's X and Y
// normalized into the bounding box. Otherwise a corner uses its vt index,
// falling back to its v index when vt is absent. Out-of-range indices read
// as zero values.
func (o *OBJ) RawVertices(rgb math.Vec3) ([]float32, error) {
	if !o.IsTriangulated() {
		return nil, ErrNotTriangulated
	}

	var box AABB
	generateUV := len(o.VerticesTexture) == 0
	if generateUV && len(o.Vertices) > 0 {
		box, _ = o.AABB()
	}
	rng := box.Range()

	out := make([]float32, 0, len(o.Faces)*3*VertexStride)
	for _, face := range o.Faces {
		for _, ref := range face.References {
			pos := o.Vertex(ref.V)

			var u, v float32
			if generateUV {
				u = (pos.X - box.Min.X) / rng.X
				v = (pos.Y - box.Min.Y) / rng.Y
			} else {
				index := ref.VT
				if !ref.HasTexture() {
					index = ref.V
				}
				tex := o.TextureVertex(index)
				u, v = tex.U, tex.V
			}

			out = append(out,
				pos.X, pos.Y, pos.Z, pos.W,
				rgb.X, rgb.Y, rgb.Z,
				u, v,
			)
		}
	}
	return out, nil
}

// RawIndices returns one zero-based index per face corner in the same order
// as RawVertices. The result is a valid triangle list only for a
// triangulated OBJ, so anything else is rejected with ErrNotTriangulated.
func (o *OBJ) RawIndices() ([]uint32, error) {
	if !o.IsTriangulated() {
		return nil, ErrNotTriangulated
	}
	return o.RawIndicesUnchecked(), nil
}

// RawIndicesUnchecked is RawIndices without the triangulation check. For an
// OBJ with polygon faces the result is not a usable triangle list.
func (o *OBJ) RawIndicesUnchecked() []uint32 {
	var indices []uint32
	var next uint32
	for _, face := range o.Faces {
		for range face.References {
			indices = append(indices, next)
			next++
		}
	}
	return indices
}
