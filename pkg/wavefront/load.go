package wavefront

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/pkg/encoding"
)

// LoadOptions controls how model files are read.
type LoadOptions struct {
	// Encoding is the code page of the OBJ and MTL text, "" for UTF-8.
	Encoding string
	// SkipMaterials parses mtllib names without loading the libraries.
	SkipMaterials bool
	// TexturePath, when set, is read with LoadTexture into OBJ.Texture.
	TexturePath string
}

// Load reads an OBJ file, loads the material libraries it references
// from the OBJ's directory and resolves face materials.
func Load(path string) (*OBJ, error) {
	return LoadWithOptions(path, LoadOptions{})
}

// LoadWithOptions is Load with explicit options. The first error in the
// pipeline (read, parse OBJ, read or parse an MTL) is returned as a
// *LoadError and nothing is returned alongside it.
func LoadWithOptions(path string, opts LoadOptions) (*OBJ, error) {
	log := logger.Named("wavefront")

	text, err := readText(path, opts.Encoding)
	if err != nil {
		return nil, err
	}

	obj, err := ParseOBJ(text)
	if err != nil {
		return nil, &LoadError{Stage: StageOBJ, Path: path, Err: err}
	}
	log.Debug("parsed obj",
		zap.String("path", path),
		zap.Int("vertices", len(obj.Vertices)),
		zap.Int("faces", len(obj.Faces)),
		zap.Strings("mtllib", obj.MaterialLibraries),
	)

	if opts.TexturePath != "" {
		if obj.Texture, err = LoadTexture(opts.TexturePath); err != nil {
			return nil, err
		}
	}

	if opts.SkipMaterials || len(obj.MaterialLibraries) == 0 {
		return obj, nil
	}

	dir := filepath.Dir(path)
	obj.Materials = make([]MTL, 0, len(obj.MaterialLibraries))
	for _, name := range obj.MaterialLibraries {
		mtlPath := filepath.Join(dir, name)
		mtl, err := LoadMTLWithOptions(mtlPath, opts)
		if err != nil {
			return nil, &LoadError{Stage: StageMaterial, Path: mtlPath, Err: err}
		}
		obj.Materials = append(obj.Materials, mtl)
	}

	resolved := obj.ResolveMaterials()
	log.Debug("resolved materials",
		zap.String("path", path),
		zap.Int("libraries", len(obj.Materials)),
		zap.Int("faces", resolved),
	)

	return obj, nil
}

// LoadMTL reads and parses an MTL file. Diffuse texture maps are read
// relative to the MTL's directory.
func LoadMTL(path string) (MTL, error) {
	return LoadMTLWithOptions(path, LoadOptions{})
}

// LoadMTLWithOptions is LoadMTL with explicit options.
func LoadMTLWithOptions(path string, opts LoadOptions) (MTL, error) {
	text, err := readText(path, opts.Encoding)
	if err != nil {
		return nil, err
	}

	mtl, err := ParseMTL(text)
	if err != nil {
		return nil, &LoadError{Stage: StageMTL, Path: path, Err: err}
	}

	dir := filepath.Dir(path)
	for name, m := range mtl {
		if m.DiffuseMap == "" {
			continue
		}
		mapPath := filepath.Join(dir, m.DiffuseMap)
		data, err := os.ReadFile(mapPath)
		if err != nil {
			return nil, &LoadError{Stage: StageIO, Path: mapPath, Err: err}
		}
		m.DiffuseMapData = data
		mtl[name] = m
	}

	logger.Named("wavefront").Debug("parsed mtl", zap.String("path", path), zap.Int("materials", len(mtl)))
	return mtl, nil
}

// LoadTexture reads a texture file in the format ParseTexture accepts.
func LoadTexture(path string) (*Texture, error) {
	text, err := readText(path, "")
	if err != nil {
		return nil, err
	}
	tex, err := ParseTexture(text)
	if err != nil {
		return nil, &LoadError{Stage: StageTexture, Path: path, Err: err}
	}
	return tex, nil
}

func readText(path, enc string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &LoadError{Stage: StageIO, Path: path, Err: err}
	}
	text, err := encoding.DecodeString(data, enc)
	if err != nil {
		return "", &LoadError{Stage: StageIO, Path: path, Err: err}
	}
	return text, nil
}
