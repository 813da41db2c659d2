// Package texture decodes model textures into RGBA8 pixel data.
package texture

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration

	"github.com/Faultbox/scop/pkg/wavefront"
)

// Decode reads the plain-text texture format, falling back to the
// registered image codecs (PNG, JPEG, BMP, TIFF) for map_Kd payloads.
func Decode(data []byte) (*wavefront.Texture, error) {
	if tex, err := wavefront.ParseTexture(string(data)); err == nil {
		return tex, nil
	}

	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode texture: %w", err)
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("decode texture: empty %s image", format)
	}
	return FromImage(img), nil
}

// FromImage converts any image to an RGBA8 texture.
func FromImage(img image.Image) *wavefront.Texture {
	b := img.Bounds()
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, b.Min, draw.Src)

	return &wavefront.Texture{
		Width:  b.Dx(),
		Height: b.Dy(),
		Pixels: rgba.Pix,
	}
}
