package wavefront

import (
	"strconv"
	"strings"
)

// unsupportedStatements are valid OBJ statements this parser does not handle.
// They fail with ErrNotImplemented instead of being skipped.
var unsupportedStatements = map[string]bool{
	// Free-form curve/surface attributes
	"cstype": true, "deg": true, "bmat": true, "step": true,
	// Elements
	"p": true, "l": true, "curv": true, "curv2": true, "surf": true,
	// Free-form curve/surface body statements
	"parm": true, "trim": true, "hole": true, "scrv": true, "sp": true, "end": true,
	// Connectivity between free-form surfaces
	"con": true,
	// Grouping
	"g": true, "mg": true,
	// Display/render attributes
	"bevel": true, "c_interp": true, "d_interp": true, "lod": true,
	"shadow_obj": true, "trace_obj": true, "ctech": true, "stech": true,
}

// ParseOBJ parses OBJ text in a single pass. The first error aborts the
// parse and no partial OBJ is returned.
func ParseOBJ(data string) (*OBJ, error) {
	obj := &OBJ{}
	smoothingGroup := 0

	var previous *line
	lines := splitLines(data)
	for i := range lines {
		l := &lines[i]
		if err := obj.parseLine(l, previous, &smoothingGroup); err != nil {
			return nil, err
		}
		previous = l
	}

	return obj, nil
}

// parseLine applies one statement to the OBJ. previous is the line right
// before l, consulted by faces for a usemtl directive.
func (o *OBJ) parseLine(l, previous *line, smoothingGroup *int) error {
	command := l.Command()
	args := l.Args()

	switch command {
	// Vertex data
	case "v":
		v, err := parseVertice(args, l.Number)
		if err != nil {
			return err
		}
		o.Vertices = append(o.Vertices, v)

	case "vt":
		vt, err := parseVerticeTexture(args, l.Number)
		if err != nil {
			return err
		}
		o.VerticesTexture = append(o.VerticesTexture, vt)

	case "vn":
		vn, err := parseVerticeNormal(args, l.Number)
		if err != nil {
			return err
		}
		o.VerticesNormal = append(o.VerticesNormal, vn)

	case "vp":
		vp, err := parseVerticeParameterSpace(args, l.Number)
		if err != nil {
			return err
		}
		o.VerticesParameterSpace = append(o.VerticesParameterSpace, vp)

	// Elements
	case "f":
		face, err := parseFace(args, previous, l.Number)
		if err != nil {
			return err
		}
		face.SmoothingGroup = *smoothingGroup
		o.Faces = append(o.Faces, face)

	// Grouping
	case "o":
		if len(args) > 0 {
			o.Name = args[0]
		}

	case "s":
		id, err := parseSmoothingGroup(args, l.Number)
		if err != nil {
			return err
		}
		*smoothingGroup = id

	// Display/render attributes
	case "usemtl":
		// Association with faces happens in parseFace.
		switch {
		case len(args) == 0:
			return parseErrorf(InvalidFaceMaterial, l.Number, "Missing material name")
		case len(args) > 1:
			return parseErrorf(InvalidFaceMaterial, l.Number, "You can only specify one material")
		}

	case "mtllib":
		if len(args) == 0 {
			return parseErrorf(InvalidMaterialLibrary, l.Number, "Missing material library file name")
		}
		o.MaterialLibraries = append([]string(nil), args...)

	case "#":
		// Comment

	default:
		if strings.HasPrefix(command, "#") {
			return nil
		}
		if unsupportedStatements[command] {
			return &NotImplementedError{Statement: command, Line: l.Number}
		}
		return parseErrorf(InvalidToken, l.Number, "Unknown token: '%s'", command)
	}

	return nil
}

func parseVertice(args []string, lineN int) (Vertice, error) {
	vals, err := floatArgs(args, 3, 4, 1.0)
	if err != nil {
		return Vertice{}, parseErrorf(InvalidVertex, lineN, "%v", err)
	}
	return Vertice{X: vals[0], Y: vals[1], Z: vals[2], W: vals[3]}, nil
}

func parseVerticeTexture(args []string, lineN int) (VerticeTexture, error) {
	vals, err := floatArgs(args, 1, 3, 0.0, 0.0)
	if err != nil {
		return VerticeTexture{}, parseErrorf(InvalidVertexTexture, lineN, "%v", err)
	}
	return VerticeTexture{U: vals[0], V: vals[1], W: vals[2]}, nil
}

func parseVerticeNormal(args []string, lineN int) (VerticeNormal, error) {
	vals, err := floatArgs(args, 3, 3)
	if err != nil {
		return VerticeNormal{}, parseErrorf(InvalidVertexNormal, lineN, "%v", err)
	}
	return VerticeNormal{I: vals[0], J: vals[1], K: vals[2]}, nil
}

func parseVerticeParameterSpace(args []string, lineN int) (VerticeParameterSpace, error) {
	vals, err := floatArgs(args, 2, 3, 1.0)
	if err != nil {
		return VerticeParameterSpace{}, parseErrorf(InvalidVertexParameterSpace, lineN, "%v", err)
	}
	return VerticeParameterSpace{U: vals[0], V: vals[1], W: vals[2]}, nil
}

// usemtlName returns the material named on l if it is a usemtl line.
func usemtlName(l *line) string {
	if l == nil || l.Command() != "usemtl" || len(l.Tokens) < 2 {
		return ""
	}
	return l.Tokens[1]
}

// parseFace parses 'v', 'v/vt', 'v/vt/vn' and 'v//vn' groups. Corners with
// an explicit texture slot and corners with an empty one ('v//vn') cannot
// be mixed within one face.
func parseFace(args []string, previous *line, lineN int) (Face, error) {
	face := Face{
		References:   make([]VertexDataReference, 0, len(args)),
		MaterialName: usemtlName(previous),
	}

	var hasTriplets, hasTwins bool
	for _, group := range args {
		parts := strings.Split(group, "/")

		v, errV := parseIndex(parts, 0)
		vt, errVT := parseIndex(parts, 1)
		vn, errVN := parseIndex(parts, 2)

		switch {
		case errV == nil && errVT == nil && errVN == nil:
			face.References = append(face.References, VertexDataReference{V: v, VT: vt, VN: vn})
			hasTriplets = true
		case errV == nil && errVN == nil && parts[1] == "":
			face.References = append(face.References, VertexDataReference{V: v, VN: vn})
			hasTwins = true
		default:
			return Face{}, parseErrorf(InvalidFaceSide, lineN, "Invalid vertex reference '%s'", group)
		}
	}

	if hasTriplets && hasTwins {
		return Face{}, parseErrorf(InvalidFace, lineN, "Illegal to give vertex texture for some vertices, but not all")
	}
	if len(face.References) < 3 {
		return Face{}, parseErrorf(InvalidFace, lineN, "A face needs at least 3 vertices, got %d", len(face.References))
	}

	return face, nil
}

// parseIndex parses parts[i] as an unsigned index; a missing part is 0.
func parseIndex(parts []string, i int) (int, error) {
	if i >= len(parts) {
		return 0, nil
	}
	n, err := strconv.ParseUint(parts[i], 10, 31)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func parseSmoothingGroup(args []string, lineN int) (int, error) {
	if len(args) == 0 || args[0] == "off" {
		return 0, nil
	}
	id, err := strconv.ParseUint(args[0], 10, 31)
	if err != nil {
		return 0, parseErrorf(InvalidSmoothingGroup, lineN, "Invalid smoothing group '%s'", args[0])
	}
	return int(id), nil
}
