package wavefront

import (
	"errors"
	"fmt"
)

// Wavefront errors.
var (
	ErrNotImplemented  = errors.New("not implemented")
	ErrNotTriangulated = errors.New("mesh is not triangulated: every face must have exactly 3 vertices")
	ErrEmptyGeometry   = errors.New("mesh has no vertex positions")
)

// ParseErrorKind classifies a parse failure.
type ParseErrorKind int

const (
	InvalidToken ParseErrorKind = iota
	InvalidValue
	InvalidVertex
	InvalidVertexTexture
	InvalidVertexNormal
	InvalidVertexParameterSpace
	InvalidFace
	InvalidFaceSide
	InvalidFaceMaterial
	InvalidSmoothingGroup
	InvalidMaterialLibrary
)

// String returns the phrase used when rendering the error.
func (k ParseErrorKind) String() string {
	switch k {
	case InvalidToken:
		return "Invalid token"
	case InvalidValue:
		return "Invalid value"
	case InvalidVertex:
		return "Invalid vertex"
	case InvalidVertexTexture:
		return "Invalid vertex texture"
	case InvalidVertexNormal:
		return "Invalid vertex normal"
	case InvalidVertexParameterSpace:
		return "Invalid vertex parameter space"
	case InvalidFace:
		return "Invalid face"
	case InvalidFaceSide:
		return "Invalid face side"
	case InvalidFaceMaterial:
		return "Invalid face material"
	case InvalidSmoothingGroup:
		return "Invalid smoothing group"
	case InvalidMaterialLibrary:
		return "Invalid material library"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// ParseError reports a malformed OBJ or MTL line.
// Line counts only non-blank lines, starting at 1.
type ParseError struct {
	Kind    ParseErrorKind
	Line    int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at line %d: %s", e.Kind, e.Line, e.Message)
}

func parseErrorf(kind ParseErrorKind, line int, format string, args ...any) *ParseError {
	return &ParseError{Kind: kind, Line: line, Message: fmt.Sprintf(format, args...)}
}

// NotImplementedError is returned for OBJ statements that are recognized
// but not supported. It matches ErrNotImplemented with errors.Is.
type NotImplementedError struct {
	Statement string
	Line      int
}

func (e *NotImplementedError) Error() string {
	return fmt.Sprintf("statement '%s' at line %d: %v", e.Statement, e.Line, ErrNotImplemented)
}

// Is reports whether target is ErrNotImplemented.
func (e *NotImplementedError) Is(target error) bool {
	return target == ErrNotImplemented
}

// LoadStage identifies where in the load pipeline an error happened.
type LoadStage int

const (
	StageIO LoadStage = iota
	StageOBJ
	StageMTL
	StageMaterial
	StageTexture
)

// String returns a human-readable stage name.
func (s LoadStage) String() string {
	switch s {
	case StageIO:
		return "io"
	case StageOBJ:
		return "obj"
	case StageMTL:
		return "mtl"
	case StageMaterial:
		return "material"
	case StageTexture:
		return "texture"
	default:
		return fmt.Sprintf("Unknown(%d)", int(s))
	}
}

// LoadError wraps a failure from Load or LoadMTL with the file it concerns.
type LoadError struct {
	Stage LoadStage
	Path  string
	Err   error
}

func (e *LoadError) Error() string {
	switch e.Stage {
	case StageIO:
		return fmt.Sprintf("IO error: %s: %v", e.Path, e.Err)
	case StageMaterial:
		return fmt.Sprintf("material library %s: %v", e.Path, e.Err)
	default:
		return fmt.Sprintf("%s %s: %v", e.Stage, e.Path, e.Err)
	}
}

func (e *LoadError) Unwrap() error {
	return e.Err
}
