// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/engine/mesh"
	"github.com/Faultbox/scop/internal/engine/shader"
	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Renderer draws meshes with the flat-shaded/textured mesh program.
type Renderer struct {
	config Config

	program     *shader.Program
	fallbackTex uint32
}

// New creates a renderer. The OpenGL context must already exist.
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{config: cfg}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0)
	gl.Viewport(0, 0, int32(cfg.Width), int32(cfg.Height))

	var err error
	r.program, err = shader.New(shader.MeshVertex, shader.MeshFragment)
	if err != nil {
		return nil, fmt.Errorf("failed to create mesh shader: %w", err)
	}

	r.fallbackTex = UploadTexture(&wavefront.Texture{Width: 1, Height: 1, Pixels: []byte{255, 255, 255, 255}})

	logger.Debug("renderer ready", zap.Uint32("program", r.program.ID))
	return r, nil
}

// Close releases GPU resources owned by the renderer.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	DeleteTexture(r.fallbackTex)
	r.program.Delete()
}

// Resize updates the viewport.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Size returns the current viewport size.
func (r *Renderer) Size() (int, int) {
	return r.config.Width, r.config.Height
}

// Begin clears the frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// Frame is everything needed to draw one mesh.
type Frame struct {
	Model      math.Mat4
	View       math.Mat4
	Projection math.Mat4
	Texture    uint32  // 0 uses the white fallback
	TextureMix float32 // 0 is flat color, 1 is fully textured
}

// Draw renders m with the given transforms.
func (r *Renderer) Draw(m *mesh.Mesh, f Frame) {
	r.program.Use()
	r.program.SetMat4("uModel", f.Model)
	r.program.SetMat4("uView", f.View)
	r.program.SetMat4("uProjection", f.Projection)
	r.program.SetFloat("uTextureMix", f.TextureMix)

	tex := f.Texture
	if tex == 0 {
		tex = r.fallbackTex
	}
	gl.ActiveTexture(gl.TEXTURE0)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	r.program.SetInt("uTexture", 0)

	m.Draw()
}

// ReadPixels returns the back buffer as bottom-up RGBA rows.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	width, height := r.config.Width, r.config.Height
	pixels := make([]byte, width*height*4)
	if len(pixels) == 0 {
		return pixels, width, height
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, width, height
}

// UploadTexture creates a repeating, mipmapped GL texture.
func UploadTexture(tex *wavefront.Texture) uint32 {
	var id uint32
	gl.GenTextures(1, &id)
	gl.BindTexture(gl.TEXTURE_2D, id)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(tex.Width), int32(tex.Height), 0, gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&tex.Pixels[0]))
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	return id
}

// DeleteTexture releases a texture created by UploadTexture.
func DeleteTexture(id uint32) {
	if id != 0 {
		gl.DeleteTextures(1, &id)
	}
}
