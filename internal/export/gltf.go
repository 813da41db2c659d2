// Package export converts loaded Wavefront models to glTF 2.0.
package export

import (
	"io"

	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"go.uber.org/zap"

	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

// DefaultMaterialName is used for faces without a resolved material.
const DefaultMaterialName = "default"

// Options controls how a model is converted.
type Options struct {
	// Color is the base color of faces without a material.
	Color math.Vec3
	// Binary selects the .glb container in Write and Save.
	Binary bool
}

// primitiveGroup collects the corners of all faces sharing one material.
type primitiveGroup struct {
	material  *wavefront.Material
	positions [][3]float32
	uvs       [][2]float32
	normals   [][3]float32
	hasNormal bool
}

// groupKey keeps faces without a material apart from a material that
// happens to be named DefaultMaterialName.
type groupKey struct {
	name     string
	resolved bool
}

// Document builds a glTF document with one mesh and one primitive per
// material in order of first use. The model must be triangulated.
func Document(obj *wavefront.OBJ, opts Options) (*gltf.Document, error) {
	if !obj.IsTriangulated() {
		return nil, errors.Wrapf(wavefront.ErrNotTriangulated, "exporting %q", obj.Name)
	}
	if len(obj.Faces) == 0 {
		return nil, errors.Errorf("exporting %q: model has no faces", obj.Name)
	}

	// UVs follow the same rules as the render buffer.
	raw, err := obj.RawVertices(opts.Color)
	if err != nil {
		return nil, errors.Wrapf(err, "exporting %q", obj.Name)
	}

	var order []groupKey
	groups := make(map[groupKey]*primitiveGroup)
	corner := 0
	for _, face := range obj.Faces {
		key := groupKey{name: DefaultMaterialName}
		if face.Material != nil {
			key = groupKey{name: face.Material.Name, resolved: true}
		}
		g, ok := groups[key]
		if !ok {
			g = &primitiveGroup{material: face.Material, hasNormal: true}
			groups[key] = g
			order = append(order, key)
		}

		for _, ref := range face.References {
			base := corner * wavefront.VertexStride
			g.positions = append(g.positions, [3]float32{raw[base], raw[base+1], raw[base+2]})
			g.uvs = append(g.uvs, [2]float32{raw[base+7], raw[base+8]})
			if ref.HasNormal() {
				n := obj.Normal(ref.VN)
				g.normals = append(g.normals, [3]float32{n.I, n.J, n.K})
			} else {
				g.hasNormal = false
			}
			corner++
		}
	}

	doc := gltf.NewDocument()
	mesh := &gltf.Mesh{Name: obj.Name}
	for _, key := range order {
		g := groups[key]

		indices := make([]uint32, len(g.positions))
		for i := range indices {
			indices[i] = uint32(i)
		}

		attributes := map[string]uint32{
			"POSITION":   modeler.WritePosition(doc, g.positions),
			"TEXCOORD_0": modeler.WriteTextureCoord(doc, g.uvs),
		}
		if g.hasNormal {
			attributes["NORMAL"] = modeler.WriteNormal(doc, g.normals)
		}
		indicesAccessor := modeler.WriteIndices(doc, indices)

		materialIndex := uint32(len(doc.Materials))
		doc.Materials = append(doc.Materials, convertMaterial(key.name, g.material, opts.Color))

		mesh.Primitives = append(mesh.Primitives, &gltf.Primitive{
			Indices:    &indicesAccessor,
			Attributes: attributes,
			Material:   gltf.Index(materialIndex),
		})
	}

	doc.Meshes = append(doc.Meshes, mesh)
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
	doc.Nodes = append(doc.Nodes, &gltf.Node{
		Name: obj.Name,
		Mesh: gltf.Index(uint32(len(doc.Meshes) - 1)),
	})

	logger.Named("export").Debug("built gltf document",
		zap.String("model", obj.Name),
		zap.Int("primitives", len(mesh.Primitives)),
		zap.Int("accessors", len(doc.Accessors)),
	)
	return doc, nil
}

// convertMaterial maps the diffuse color and dissolve of an MTL material
// onto a glTF PBR base color.
func convertMaterial(name string, m *wavefront.Material, fallback math.Vec3) *gltf.Material {
	color := new([4]float32)
	*color = [4]float32{fallback.X, fallback.Y, fallback.Z, 1}

	if m != nil {
		kd := m.DiffuseReflectivity
		*color = [4]float32{kd.R, kd.G, kd.B, 1}
		if m.DissolveFactor.Factor > 0 {
			color[3] = m.DissolveFactor.Factor
		}
	}

	material := &gltf.Material{
		Name:        name,
		DoubleSided: true,
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
			BaseColorFactor: color,
		},
	}
	if color[3] < 1 {
		material.AlphaMode = gltf.AlphaBlend
	}
	return material
}

// Write encodes doc to w, as .glb when binary is set.
func Write(w io.Writer, doc *gltf.Document, binary bool) error {
	encoder := gltf.NewEncoder(w)
	encoder.AsBinary = binary
	if err := encoder.Encode(doc); err != nil {
		return errors.Wrap(err, "encoding gltf")
	}
	return nil
}

// Save converts obj and writes it to path.
func Save(path string, obj *wavefront.OBJ, opts Options) error {
	doc, err := Document(obj, opts)
	if err != nil {
		return err
	}

	if opts.Binary {
		err = gltf.SaveBinary(doc, path)
	} else {
		err = gltf.Save(doc, path)
	}
	if err != nil {
		return errors.Wrapf(err, "saving %s", path)
	}

	logger.Info("exported model", zap.String("path", path), zap.Bool("binary", opts.Binary))
	return nil
}
