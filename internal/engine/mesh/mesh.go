// Package mesh uploads flattened Wavefront geometry to the GPU.
package mesh

import (
	"errors"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

// ErrEmptyBuffers is returned when there is nothing to upload.
var ErrEmptyBuffers = errors.New("mesh: empty vertex or index buffer")

const floatSize = 4

// Mesh is an uploaded vertex array with its buffers.
type Mesh struct {
	vao, vbo, ebo uint32
	indexCount    int32

	Bounds wavefront.AABB
}

// FromOBJ flattens a triangulated OBJ with the given vertex color and
// uploads it.
func FromOBJ(obj *wavefront.OBJ, color math.Vec3) (*Mesh, error) {
	vertices, err := obj.RawVertices(color)
	if err != nil {
		return nil, err
	}
	indices, err := obj.RawIndices()
	if err != nil {
		return nil, err
	}
	bounds, err := obj.AABB()
	if err != nil {
		return nil, err
	}

	m, err := Upload(vertices, indices, wavefront.AttributeLayout(), wavefront.VertexStride)
	if err != nil {
		return nil, err
	}
	m.Bounds = bounds
	return m, nil
}

// Upload creates a VAO over interleaved float vertices. Attribute i of
// layout is bound to location i.
func Upload(vertices []float32, indices []uint32, layout []wavefront.VertexAttribute, stride int) (*Mesh, error) {
	if len(vertices) == 0 || len(indices) == 0 {
		return nil, ErrEmptyBuffers
	}

	m := &Mesh{indexCount: int32(len(indices))}

	gl.GenVertexArrays(1, &m.vao)
	gl.BindVertexArray(m.vao)

	gl.GenBuffers(1, &m.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	strideBytes := int32(stride * floatSize)
	for i, attr := range layout {
		gl.VertexAttribPointerWithOffset(uint32(i), int32(attr.Size), gl.FLOAT, false, strideBytes, uintptr(attr.Offset*floatSize))
		gl.EnableVertexAttribArray(uint32(i))
	}

	gl.GenBuffers(1, &m.ebo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(indices)*4, unsafe.Pointer(&indices[0]), gl.STATIC_DRAW)

	gl.BindVertexArray(0)

	logger.Debug("mesh uploaded",
		zap.Uint32("vao", m.vao),
		zap.Int("vertices", len(vertices)/stride),
		zap.Int("indices", len(indices)),
	)
	return m, nil
}

// Draw issues the indexed triangle draw call.
func (m *Mesh) Draw() {
	gl.BindVertexArray(m.vao)
	gl.DrawElements(gl.TRIANGLES, m.indexCount, gl.UNSIGNED_INT, nil)
	gl.BindVertexArray(0)
}

// Delete releases the GPU objects.
func (m *Mesh) Delete() {
	if m.ebo != 0 {
		gl.DeleteBuffers(1, &m.ebo)
	}
	if m.vbo != 0 {
		gl.DeleteBuffers(1, &m.vbo)
	}
	if m.vao != 0 {
		gl.DeleteVertexArrays(1, &m.vao)
	}
	m.vao, m.vbo, m.ebo = 0, 0, 0
}
