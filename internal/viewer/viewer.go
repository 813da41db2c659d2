// Package viewer implements the interactive model viewer loop.
package viewer

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/config"
	"github.com/Faultbox/scop/internal/engine/camera"
	"github.com/Faultbox/scop/internal/engine/entity"
	"github.com/Faultbox/scop/internal/engine/input"
	"github.com/Faultbox/scop/internal/engine/mesh"
	"github.com/Faultbox/scop/internal/engine/renderer"
	"github.com/Faultbox/scop/internal/engine/screenshot"
	"github.com/Faultbox/scop/internal/engine/texture"
	"github.com/Faultbox/scop/internal/engine/window"
	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

// textureFadeSpeed is the change of texture mix per second.
const textureFadeSpeed = 1.5

// Viewer displays one model.
type Viewer struct {
	cfg *config.Config

	window   *window.Window
	renderer *renderer.Renderer
	input    *input.Input

	mesh       *mesh.Mesh
	texture    uint32
	camera     *camera.OrbitCamera
	entity     *entity.Entity
	controller entity.Controller
	shots      *screenshot.Capture

	textureMix    float32
	textureTarget float32
	running       bool
}

// New loads the configured model and opens the window.
func New(cfg *config.Config) (*Viewer, error) {
	if cfg.Model.Path == "" {
		return nil, fmt.Errorf("no model given, use -model or model.path")
	}

	obj, err := loadModel(cfg.Model)
	if err != nil {
		return nil, err
	}

	v := &Viewer{
		cfg:    cfg,
		camera: camera.NewOrbitCamera(),
		controller: entity.Controller{
			MoveSpeed:       cfg.Viewer.MoveSpeed,
			RotateSpeed:     cfg.Viewer.RotateSpeed,
			AutoRotateSpeed: cfg.Viewer.RotateSpeed / 3,
		},
		shots: screenshot.New(cfg.Viewer.ScreenshotDir, "scop"),
	}

	v.window, err = window.New(window.Config{
		Title:      "scop - " + filepath.Base(cfg.Model.Path),
		Width:      cfg.Viewer.Width,
		Height:     cfg.Viewer.Height,
		Fullscreen: cfg.Viewer.Fullscreen,
		VSync:      cfg.Viewer.VSync,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// The GL context must exist before the renderer.
	width, height := v.window.Size()
	v.renderer, err = renderer.New(renderer.Config{Width: width, Height: height})
	if err != nil {
		v.window.Close()
		return nil, fmt.Errorf("failed to create renderer: %w", err)
	}

	color := math.Vec3{X: cfg.Model.Color[0], Y: cfg.Model.Color[1], Z: cfg.Model.Color[2]}
	v.mesh, err = mesh.FromOBJ(obj, color)
	if err != nil {
		v.Close()
		return nil, fmt.Errorf("failed to upload mesh: %w", err)
	}

	if tex := modelTexture(obj); tex != nil {
		v.texture = renderer.UploadTexture(tex)
	}

	v.camera.FitToBounds(v.mesh.Bounds)
	v.entity = entity.New(obj.Name, v.mesh.Bounds.Center())
	v.entity.Position = v.mesh.Bounds.Center()
	v.entity.AutoRotate = true

	v.input = input.New()

	logger.Info("viewer initialized",
		zap.String("model", cfg.Model.Path),
		zap.Int("triangles", len(obj.Faces)),
		zap.Bool("textured", v.texture != 0),
	)
	return v, nil
}

// loadModel reads and triangulates the model.
func loadModel(mc config.ModelConfig) (*wavefront.OBJ, error) {
	obj, err := wavefront.LoadWithOptions(mc.Path, wavefront.LoadOptions{
		Encoding:    mc.Encoding,
		TexturePath: mc.Texture,
	})
	if err != nil {
		return nil, err
	}

	if !obj.IsTriangulated() {
		if !mc.Triangulate {
			return nil, fmt.Errorf("%s: %w (enable model.triangulate)", mc.Path, wavefront.ErrNotTriangulated)
		}
		if obj, err = obj.Triangulated(wavefront.Fan); err != nil {
			return nil, err
		}
	}
	return obj, nil
}

// modelTexture prefers an explicit texture file, then the first decodable
// diffuse map of a used material.
func modelTexture(obj *wavefront.OBJ) *wavefront.Texture {
	if obj.Texture != nil {
		return obj.Texture
	}
	for _, f := range obj.Faces {
		if f.Material == nil || len(f.Material.DiffuseMapData) == 0 {
			continue
		}
		tex, err := texture.Decode(f.Material.DiffuseMapData)
		if err != nil {
			logger.Warn("skipping diffuse map",
				zap.String("material", f.Material.Name),
				zap.String("file", f.Material.DiffuseMap),
				zap.Error(err),
			)
			continue
		}
		return tex
	}
	return nil
}

// Run drives the loop until the window closes or Esc is pressed.
func (v *Viewer) Run() error {
	v.running = true

	lastTime := time.Now()
	frameCount := 0
	fpsTimer := time.Now()

	logger.Info("starting viewer loop")

	for v.running {
		now := time.Now()
		dt := float32(now.Sub(lastTime).Seconds())
		lastTime = now

		if v.input.Update() {
			break
		}
		for _, event := range v.input.Events() {
			if event.Type == input.EventWindowResize {
				width, height := v.window.Size()
				v.renderer.Resize(width, height)
			}
		}

		v.update(dt)
		v.render()
		if v.input.IsKeyPressed(sdl.SCANCODE_P) {
			v.saveScreenshot()
		}
		v.window.SwapBuffers()

		frameCount++
		if time.Since(fpsTimer) >= time.Second {
			logger.Debug("fps", zap.Int("count", frameCount), zap.Float32("dt_ms", dt*1000))
			frameCount = 0
			fpsTimer = time.Now()
		}
	}

	logger.Info("viewer loop ended")
	return nil
}

// Close releases GPU resources and the window.
func (v *Viewer) Close() {
	logger.Info("closing viewer")

	if v.mesh != nil {
		v.mesh.Delete()
	}
	renderer.DeleteTexture(v.texture)
	if v.renderer != nil {
		v.renderer.Close()
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) update(dt float32) {
	in := v.input
	if in.IsKeyPressed(sdl.SCANCODE_ESCAPE) {
		v.running = false
		return
	}

	controls := entity.Controls{
		Move: math.Vec3{
			X: axis(in, sdl.SCANCODE_RIGHT, sdl.SCANCODE_LEFT) + axis(in, sdl.SCANCODE_D, sdl.SCANCODE_A),
			Y: axis(in, sdl.SCANCODE_UP, sdl.SCANCODE_DOWN),
			Z: axis(in, sdl.SCANCODE_S, sdl.SCANCODE_W),
		},
		Yaw:              axis(in, sdl.SCANCODE_E, sdl.SCANCODE_Q),
		Pitch:            axis(in, sdl.SCANCODE_F, sdl.SCANCODE_R),
		ToggleAutoRotate: in.IsKeyPressed(sdl.SCANCODE_SPACE),
		Reset:            in.IsKeyPressed(sdl.SCANCODE_BACKSPACE),
	}
	if controls.Reset {
		controls.Move = math.Vec3{}
	}
	v.controller.Apply(v.entity, controls, dt)
	if controls.Reset {
		v.entity.Position = v.mesh.Bounds.Center()
	}

	if in.IsKeyDown(sdl.SCANCODE_KP_PLUS) || in.IsKeyDown(sdl.SCANCODE_EQUALS) {
		v.camera.HandleZoom(dt)
	}
	if in.IsKeyDown(sdl.SCANCODE_KP_MINUS) || in.IsKeyDown(sdl.SCANCODE_MINUS) {
		v.camera.HandleZoom(-dt)
	}

	if in.IsKeyPressed(sdl.SCANCODE_T) {
		v.textureTarget = 1 - v.textureTarget
	}
	v.textureMix = approach(v.textureMix, v.textureTarget, textureFadeSpeed*dt)
}

func (v *Viewer) render() {
	width, height := v.renderer.Size()

	v.renderer.Begin()
	v.renderer.Draw(v.mesh, renderer.Frame{
		Model:      v.entity.ModelMatrix(),
		View:       v.camera.ViewMatrix(),
		Projection: v.camera.ProjectionMatrix(width, height),
		Texture:    v.texture,
		TextureMix: v.textureMix,
	})
}

// saveScreenshot must run after render and before the buffer swap.
func (v *Viewer) saveScreenshot() {
	pixels, width, height := v.renderer.ReadPixels()
	path, err := v.shots.Save(pixels, width, height)
	if err != nil {
		logger.Warn("screenshot failed", zap.Error(err))
		return
	}
	logger.Info("screenshot saved", zap.String("path", path))
}

// axis returns 1, -1 or 0 from a pair of held keys.
func axis(in *input.Input, positive, negative sdl.Scancode) float32 {
	var a float32
	if in.IsKeyDown(positive) {
		a++
	}
	if in.IsKeyDown(negative) {
		a--
	}
	return a
}

// approach moves current towards target by at most step.
func approach(current, target, step float32) float32 {
	if current < target {
		return min(current+step, target)
	}
	return max(current-step, target)
}
