package web

import (
	"bytes"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"

	"github.com/Faultbox/scop/internal/export"
	"github.com/Faultbox/scop/pkg/wavefront"
)

// ModelSummary describes one model without its geometry.
type ModelSummary struct {
	Name              string                 `json:"name"`
	File              string                 `json:"file"`
	Vertices          int                    `json:"vertices"`
	TextureVertices   int                    `json:"texture_vertices"`
	Normals           int                    `json:"normals"`
	Faces             int                    `json:"faces"`
	Triangles         int                    `json:"triangles"`
	Triangulated      bool                   `json:"triangulated"`
	MaterialLibraries []string               `json:"material_libraries"`
	Materials         map[string]MaterialRef `json:"materials"`
	SmoothingGroups   []int                  `json:"smoothing_groups"`
	Min               [3]float32             `json:"min"`
	Max               [3]float32             `json:"max"`
}

// MaterialRef is the part of a material shown in listings.
type MaterialRef struct {
	Diffuse      [3]float32 `json:"diffuse"`
	Illumination string     `json:"illumination"`
	DiffuseMap   string     `json:"diffuse_map,omitempty"`
}

// Buffers is the triangulated render data of a model.
type Buffers struct {
	Stride   int                         `json:"stride"`
	Layout   []wavefront.VertexAttribute `json:"layout"`
	Vertices []float32                   `json:"vertices"`
	Indices  []uint32                    `json:"indices"`
}

func (s *Server) handleModels(w http.ResponseWriter, r *http.Request) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, errors.Wrapf(err, "listing %s", s.dir))
		return
	}

	models := []string{}
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".obj") {
			models = append(models, e.Name())
		}
	}
	sort.Strings(models)
	s.writeJSON(w, models)
}

func (s *Server) handleModel(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	obj, ok := s.loadModel(w, name)
	if !ok {
		return
	}
	s.writeJSON(w, summarize(name, obj))
}

func (s *Server) handleBuffers(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	obj, ok := s.loadTriangulated(w, name)
	if !ok {
		return
	}

	vertices, err := obj.RawVertices(s.color)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	indices, err := obj.RawIndices()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	s.writeJSON(w, Buffers{
		Stride:   wavefront.VertexStride,
		Layout:   wavefront.AttributeLayout(),
		Vertices: vertices,
		Indices:  indices,
	})
}

func (s *Server) handleGLTF(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	obj, ok := s.loadTriangulated(w, name)
	if !ok {
		return
	}

	doc, err := export.Document(obj, export.Options{Color: s.color, Binary: true})
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, doc, true); err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}

	fileName := strings.TrimSuffix(name, filepath.Ext(name)) + ".glb"
	w.Header().Set("Content-Type", "model/gltf-binary")
	w.Header().Set("Content-Disposition", `attachment; filename="`+fileName+`"`)
	s.writeResult(w, buf.Bytes())
}

// loadModel loads dir/name and writes an error response on failure.
func (s *Server) loadModel(w http.ResponseWriter, name string) (*wavefront.OBJ, bool) {
	if name != filepath.Base(name) || !strings.EqualFold(filepath.Ext(name), ".obj") {
		s.writeError(w, http.StatusBadRequest, errors.Errorf("invalid model name %q", name))
		return nil, false
	}

	obj, err := wavefront.Load(filepath.Join(s.dir, name))
	if err != nil {
		s.writeError(w, statusFor(err), err)
		return nil, false
	}
	return obj, true
}

func (s *Server) loadTriangulated(w http.ResponseWriter, name string) (*wavefront.OBJ, bool) {
	obj, ok := s.loadModel(w, name)
	if !ok {
		return nil, false
	}
	tri, err := obj.Triangulated(wavefront.Fan)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return nil, false
	}
	return tri, true
}

// statusFor maps load failures to HTTP status codes.
func statusFor(err error) int {
	var perr *wavefront.ParseError
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return http.StatusNotFound
	case errors.As(err, &perr), errors.Is(err, wavefront.ErrNotImplemented):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func summarize(file string, obj *wavefront.OBJ) ModelSummary {
	sum := ModelSummary{
		Name:              obj.Name,
		File:              file,
		Vertices:          len(obj.Vertices),
		TextureVertices:   len(obj.VerticesTexture),
		Normals:           len(obj.VerticesNormal),
		Faces:             len(obj.Faces),
		Triangles:         obj.TriangleCount(),
		Triangulated:      obj.IsTriangulated(),
		MaterialLibraries: []string{},
		Materials:         make(map[string]MaterialRef),
		SmoothingGroups:   []int{},
	}
	sum.MaterialLibraries = append(sum.MaterialLibraries, obj.MaterialLibraries...)
	sum.SmoothingGroups = append(sum.SmoothingGroups, obj.SmoothingGroups()...)

	for _, mtl := range obj.Materials {
		for name, m := range mtl {
			kd := m.DiffuseReflectivity
			sum.Materials[name] = MaterialRef{
				Diffuse:      [3]float32{kd.R, kd.G, kd.B},
				Illumination: m.IlluminationModel.String(),
				DiffuseMap:   m.DiffuseMap,
			}
		}
	}

	if box, err := obj.AABB(); err == nil {
		sum.Min = [3]float32{box.Min.X, box.Min.Y, box.Min.Z}
		sum.Max = [3]float32{box.Max.X, box.Max.Y, box.Max.Z}
	}
	return sum
}
