package wavefront

import (
	"strconv"
	"strings"
)

// Texture is an RGBA8 image attached to an OBJ.
type Texture struct {
	Width  int
	Height int
	Pixels []byte // Width*Height*4 bytes, row by row
}

// ParseTexture reads the plain-text texture format: width and height
// followed by width*height*4 byte values, all whitespace separated.
// Errors report the 1-based token position in Line.
func ParseTexture(data string) (*Texture, error) {
	fields := strings.Fields(data)
	if len(fields) < 2 {
		return nil, parseErrorf(InvalidValue, 1, "Missing texture dimensions")
	}

	width, err := strconv.Atoi(fields[0])
	if err != nil || width <= 0 {
		return nil, parseErrorf(InvalidValue, 1, "Invalid texture width '%s'", fields[0])
	}
	height, err := strconv.Atoi(fields[1])
	if err != nil || height <= 0 {
		return nil, parseErrorf(InvalidValue, 2, "Invalid texture height '%s'", fields[1])
	}

	values := fields[2:]
	want := width * height * 4
	if len(values) != want {
		return nil, parseErrorf(InvalidValue, 3, "Expected %d pixel bytes for %dx%d, got %d", want, width, height, len(values))
	}

	tex := &Texture{Width: width, Height: height, Pixels: make([]byte, want)}
	for i, s := range values {
		b, err := strconv.ParseUint(s, 10, 8)
		if err != nil {
			return nil, parseErrorf(InvalidValue, i+3, "Invalid pixel byte '%s'", s)
		}
		tex.Pixels[i] = byte(b)
	}
	return tex, nil
}

// Pixel returns the RGBA value at x, y.
func (t *Texture) Pixel(x, y int) [4]byte {
	i := (y*t.Width + x) * 4
	return [4]byte{t.Pixels[i], t.Pixels[i+1], t.Pixels[i+2], t.Pixels[i+3]}
}
