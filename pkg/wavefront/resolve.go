package wavefront

// ResolveMaterials attaches a copy of each face's named material. Every
// table in o.Materials is searched in order and the last table defining the
// name wins, which differs from readers that stop at the first match.
// Faces without a material name, or whose name is in no table,
// keep a nil Material and are drawn with the default appearance.
// It returns the number of faces that received a material.
func (o *OBJ) ResolveMaterials() int {
	resolved := 0
	for i := range o.Faces {
		face := &o.Faces[i]
		if !face.HasMaterial() {
			continue
		}
		face.Material = nil
		for _, mtl := range o.Materials {
			if m, ok := mtl[face.MaterialName]; ok {
				face.Material = &m
			}
		}
		if face.Material != nil {
			resolved++
		}
	}
	return resolved
}

// LookupMaterial returns the material with the given name using the same
// last-table-wins rule as ResolveMaterials.
func (o *OBJ) LookupMaterial(name string) (Material, bool) {
	var found Material
	ok := false
	for _, mtl := range o.Materials {
		if m, exists := mtl[name]; exists {
			found, ok = m, true
		}
	}
	return found, ok
}
