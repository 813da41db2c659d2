// Package wavefront provides parsers for Wavefront OBJ geometry and MTL
// material libraries, plus the steps that turn a parsed model into flat
// GPU-ready buffers.
package wavefront

import "sort"

// Vertice is a homogeneous vertex position. W defaults to 1.0.
type Vertice struct {
	X, Y, Z, W float32
}

// VerticeTexture is a texture vertex. V and W default to 0.0.
type VerticeTexture struct {
	U, V, W float32
}

// VerticeNormal is a vertex normal.
type VerticeNormal struct {
	I, J, K float32
}

// VerticeParameterSpace is a free-form parameter space vertex. W defaults to 1.0.
type VerticeParameterSpace struct {
	U, V, W float32
}

// VertexDataReference holds 1-based indices into the vertex arrays of an OBJ.
// VT and VN are 0 when the face corner has no texture or normal data.
type VertexDataReference struct {
	V, VT, VN int
}

// HasTexture reports whether the corner references a texture vertex.
func (r VertexDataReference) HasTexture() bool {
	return r.VT != 0
}

// HasNormal reports whether the corner references a normal.
func (r VertexDataReference) HasNormal() bool {
	return r.VN != 0
}

// Face is a polygon made of at least three vertex references.
type Face struct {
	References     []VertexDataReference
	MaterialName   string    // Name from the usemtl line right before the face ("" if none)
	Material       *Material // Filled by ResolveMaterials, nil means default appearance
	SmoothingGroup int       // 0 means no smoothing group
}

// HasMaterial reports whether the face was preceded by a usemtl line.
func (f Face) HasMaterial() bool {
	return f.MaterialName != ""
}

// Equal compares faces by their vertex references only.
func (f Face) Equal(other Face) bool {
	if len(f.References) != len(other.References) {
		return false
	}
	for i := range f.References {
		if f.References[i] != other.References[i] {
			return false
		}
	}
	return true
}

// OBJ represents a parsed Wavefront OBJ file.
type OBJ struct {
	// Vertex data
	Vertices               []Vertice
	VerticesTexture        []VerticeTexture
	VerticesNormal         []VerticeNormal
	VerticesParameterSpace []VerticeParameterSpace

	// Elements
	Faces []Face

	// Grouping
	Name string // Object name from the 'o' statement

	// Display/render attributes
	MaterialLibraries []string // File names from 'mtllib', relative to the OBJ
	Materials         []MTL    // Loaded libraries, in MaterialLibraries order

	Texture *Texture // Optional RGBA payload
}

// Vertex returns the position for a 1-based index, or the zero value when
// the index is 0 or out of range.
func (o *OBJ) Vertex(index int) Vertice {
	if index < 1 || index > len(o.Vertices) {
		return Vertice{}
	}
	return o.Vertices[index-1]
}

// TextureVertex returns the texture vertex for a 1-based index, or the
// zero value when the index is 0 or out of range.
func (o *OBJ) TextureVertex(index int) VerticeTexture {
	if index < 1 || index > len(o.VerticesTexture) {
		return VerticeTexture{}
	}
	return o.VerticesTexture[index-1]
}

// Normal returns the normal for a 1-based index, or the zero value when
// the index is 0 or out of range.
func (o *OBJ) Normal(index int) VerticeNormal {
	if index < 1 || index > len(o.VerticesNormal) {
		return VerticeNormal{}
	}
	return o.VerticesNormal[index-1]
}

// SmoothingGroups returns the distinct non-zero smoothing group ids in
// ascending order.
func (o *OBJ) SmoothingGroups() []int {
	seen := make(map[int]bool)
	var ids []int
	for _, f := range o.Faces {
		if f.SmoothingGroup == 0 || seen[f.SmoothingGroup] {
			continue
		}
		seen[f.SmoothingGroup] = true
		ids = append(ids, f.SmoothingGroup)
	}
	sort.Ints(ids)
	return ids
}

// FacesInSmoothingGroup returns the faces tagged with the given group id.
func (o *OBJ) FacesInSmoothingGroup(id int) []Face {
	var faces []Face
	for _, f := range o.Faces {
		if f.SmoothingGroup == id {
			faces = append(faces, f)
		}
	}
	return faces
}

// IsTriangulated reports whether every face has exactly three vertices.
func (o *OBJ) IsTriangulated() bool {
	for _, f := range o.Faces {
		if len(f.References) != 3 {
			return false
		}
	}
	return true
}

// TriangleCount returns the number of triangles the faces fan out to.
func (o *OBJ) TriangleCount() int {
	n := 0
	for _, f := range o.Faces {
		if len(f.References) >= 3 {
			n += len(f.References) - 2
		}
	}
	return n
}
