package wavefront

// Triangle is three vertex references in winding order.
type Triangle [3]VertexDataReference

// Algorithm selects a polygon triangulation strategy.
type Algorithm int

const (
	// Fan pivots every triangle on the first vertex. Only correct for
	// convex, planar polygons; concave input yields wrong but well-formed
	// triangles.
	Fan Algorithm = iota
	// EarClipping handles concave polygons. Not implemented.
	EarClipping
)

// String returns the algorithm name.
func (a Algorithm) String() string {
	switch a {
	case Fan:
		return "fan"
	case EarClipping:
		return "ear-clipping"
	default:
		return "unknown"
	}
}

// TriangulateFan splits a polygon into len(refs)-2 triangles, triangle i
// being (0, i, i+1). A triangle is returned unchanged and fewer than three
// references yield nothing.
func TriangulateFan(refs []VertexDataReference) []Triangle {
	if len(refs) < 3 {
		return nil
	}
	triangles := make([]Triangle, 0, len(refs)-2)
	for i := 1; i < len(refs)-1; i++ {
		triangles = append(triangles, Triangle{refs[0], refs[i], refs[i+1]})
	}
	return triangles
}

// TriangulateEarClipping is reserved for concave polygons and always
// returns ErrNotImplemented.
func TriangulateEarClipping(refs []VertexDataReference) ([]Triangle, error) {
	return nil, ErrNotImplemented
}

// Triangulate splits a polygon with the given algorithm.
func Triangulate(refs []VertexDataReference, algo Algorithm) ([]Triangle, error) {
	switch algo {
	case Fan:
		return TriangulateFan(refs), nil
	case EarClipping:
		return TriangulateEarClipping(refs)
	default:
		return nil, ErrNotImplemented
	}
}

// Triangulated returns a copy of the OBJ where every face has exactly three
// vertices. Each polygon becomes several faces sharing its material and
// smoothing group. The receiver is not modified.
func (o *OBJ) Triangulated(algo Algorithm) (*OBJ, error) {
	out := *o
	out.Faces = make([]Face, 0, o.TriangleCount())

	for _, face := range o.Faces {
		triangles, err := Triangulate(face.References, algo)
		if err != nil {
			return nil, err
		}
		for _, tri := range triangles {
			f := face
			f.References = []VertexDataReference{tri[0], tri[1], tri[2]}
			out.Faces = append(out.Faces, f)
		}
	}

	return &out, nil
}
