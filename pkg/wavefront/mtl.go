package wavefront

import (
	"fmt"
	"strconv"
)

// RGB is a reflectivity or filter color. Components are normally in
// 0.0..1.0; values outside that range scale the reflectivity.
type RGB struct {
	R, G, B float32
}

// IlluminationModel is the 'illum' value of a material.
type IlluminationModel int

const (
	ColorOnAmbientOff IlluminationModel = iota
	ColorOnAmbientOn
	HighlightOn
	ReflectionOnRayTraceOn
	TransparencyGlassOnReflectionRayTraceOn
	ReflectionFresnelOnRayTraceOn
	TransparencyRefractionOnReflectionFresnelOffRayTraceOn
	TransparencyRefractionOnReflectionFresnelOnRayTraceOn
	ReflectionOnRayTraceOff
	TransparencyGlassOnReflectionRayTraceOff
	CastsShadows
)

var illuminationModelNames = [...]string{
	"ColorOnAmbientOff",
	"ColorOnAmbientOn",
	"HighlightOn",
	"ReflectionOnRayTraceOn",
	"TransparencyGlassOnReflectionRayTraceOn",
	"ReflectionFresnelOnRayTraceOn",
	"TransparencyRefractionOnReflectionFresnelOffRayTraceOn",
	"TransparencyRefractionOnReflectionFresnelOnRayTraceOn",
	"ReflectionOnRayTraceOff",
	"TransparencyGlassOnReflectionRayTraceOff",
	"CastsShadows",
}

// String returns the model name.
func (m IlluminationModel) String() string {
	if m < 0 || int(m) >= len(illuminationModelNames) {
		return fmt.Sprintf("Unknown(%d)", int(m))
	}
	return illuminationModelNames[m]
}

// ParseIlluminationModel maps the codes "0".."10" to a model.
func ParseIlluminationModel(code string) (IlluminationModel, bool) {
	for i := range illuminationModelNames {
		if code == strconv.Itoa(i) {
			return IlluminationModel(i), true
		}
	}
	return ColorOnAmbientOff, false
}

// DissolveFactor is the 'd' statement. Halo makes dissolve depend on the
// surface orientation relative to the viewer.
type DissolveFactor struct {
	Factor float32
	Halo   bool
}

// Optical density bounds for 'Ni'.
const (
	MinOpticalDensity = 0.001
	MaxOpticalDensity = 10.0
)

// Material is one 'newmtl' block of an MTL file.
type Material struct {
	Name string

	AmbientReflectivity  RGB // Ka
	DiffuseReflectivity  RGB // Kd
	SpecularReflectivity RGB // Ks
	TransmissionFilter   RGB // Tf

	IlluminationModel IlluminationModel // illum
	DissolveFactor    DissolveFactor    // d

	SpecularExponent float32 // Ns
	Sharpness        float32 // sharpness
	OpticalDensity   float32 // Ni

	DiffuseMap     string // map_Kd file name, relative to the MTL file
	DiffuseMapData []byte // Contents of DiffuseMap, filled by LoadMTL
}

// MTL maps material names to materials for one library file.
type MTL map[string]Material
