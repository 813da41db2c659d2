package wavefront

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoad_Cube(t *testing.T) {
	obj, err := Load(filepath.Join("testdata", "cube.obj"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if obj.Name != "cube" {
		t.Errorf("Name = %q, want cube", obj.Name)
	}
	if len(obj.Vertices) != 8 || len(obj.Faces) != 6 {
		t.Errorf("got %d vertices and %d faces, want 8 and 6", len(obj.Vertices), len(obj.Faces))
	}
	if len(obj.Materials) != 1 || len(obj.Materials[0]) != 2 {
		t.Fatalf("unexpected materials: %+v", obj.Materials)
	}

	wantMaterials := []string{"red", "blue", "", "red", "", ""}
	for i, name := range wantMaterials {
		m := obj.Faces[i].Material
		switch {
		case name == "" && m != nil:
			t.Errorf("face %d: unexpected material %q", i, m.Name)
		case name != "" && (m == nil || m.Name != name):
			t.Errorf("face %d: material = %v, want %q", i, m, name)
		}
	}

	red := obj.Faces[0].Material
	if red.IlluminationModel != HighlightOn || red.SpecularReflectivity != (RGB{0.5, 0.5, 0.5}) {
		t.Errorf("red material = %+v", red)
	}
	if got := obj.SmoothingGroups(); len(got) != 1 || got[0] != 1 {
		t.Errorf("SmoothingGroups() = %v, want [1]", got)
	}
}

func TestLoad_Options(t *testing.T) {
	obj, err := LoadWithOptions(filepath.Join("testdata", "cube.obj"), LoadOptions{
		SkipMaterials: true,
		TexturePath:   filepath.Join("testdata", "checker.tex"),
	})
	if err != nil {
		t.Fatalf("LoadWithOptions failed: %v", err)
	}
	if obj.Materials != nil {
		t.Error("SkipMaterials still loaded libraries")
	}
	if len(obj.MaterialLibraries) != 1 {
		t.Errorf("MaterialLibraries = %v", obj.MaterialLibraries)
	}
	if obj.Texture == nil || obj.Texture.Width != 2 || obj.Texture.Pixel(1, 0) != [4]byte{0, 0, 0, 255} {
		t.Errorf("unexpected texture: %+v", obj.Texture)
	}
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.mtl", "newmtl m\nNi 42\n")
	writeFile(t, dir, "good.mtl", "newmtl m\nKd 1 1 1\n")

	tests := []struct {
		name      string
		obj       string
		stage     LoadStage
		wantParse bool
		wantFS    bool
	}{
		{"bad obj", "v 1 2 3\nf 1 2\n", StageOBJ, true, false},
		{"missing mtl", "mtllib nope.mtl\nv 1 2 3\n", StageMaterial, false, true},
		{"bad mtl", "mtllib good.mtl bad.mtl\nv 1 2 3\n", StageMaterial, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, dir, strings.ReplaceAll(tt.name, " ", "_")+".obj", tt.obj)

			obj, err := Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if obj != nil {
				t.Error("expected nil OBJ on error")
			}

			var lerr *LoadError
			if !errors.As(err, &lerr) {
				t.Fatalf("expected *LoadError, got %T: %v", err, err)
			}
			if lerr.Stage != tt.stage {
				t.Errorf("Stage = %v, want %v", lerr.Stage, tt.stage)
			}

			var perr *ParseError
			if got := errors.As(err, &perr); got != tt.wantParse {
				t.Errorf("errors.As(*ParseError) = %v, want %v", got, tt.wantParse)
			}
			if got := errors.Is(err, fs.ErrNotExist); got != tt.wantFS {
				t.Errorf("errors.Is(fs.ErrNotExist) = %v, want %v", got, tt.wantFS)
			}
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.obj"))
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Stage != StageIO {
		t.Fatalf("expected io LoadError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "IO error: ") {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestLoad_NotImplementedPropagates(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "group.obj", "v 0 0 0\ng cube\n")

	_, err := Load(path)
	if !errors.Is(err, ErrNotImplemented) {
		t.Errorf("expected ErrNotImplemented through LoadError, got %v", err)
	}
}

func TestLoadMTL_DiffuseMap(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "wood.tex", "1 1 10 20 30 255")
	path := writeFile(t, dir, "wood.mtl", "newmtl wood\nmap_Kd wood.tex\nnewmtl plain\nKd 1 1 1\n")

	mtl, err := LoadMTL(path)
	if err != nil {
		t.Fatalf("LoadMTL failed: %v", err)
	}
	if got := string(mtl["wood"].DiffuseMapData); got != "1 1 10 20 30 255" {
		t.Errorf("DiffuseMapData = %q", got)
	}
	if mtl["plain"].DiffuseMapData != nil {
		t.Error("plain material should have no map data")
	}

	writeFile(t, dir, "broken.mtl", "newmtl m\nmap_Kd missing.tex\n")
	_, err = LoadMTL(filepath.Join(dir, "broken.mtl"))
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Stage != StageIO || filepath.Base(lerr.Path) != "missing.tex" {
		t.Errorf("expected io LoadError for the map file, got %v", err)
	}
}

func TestLoad_Encoding(t *testing.T) {
	dir := t.TempDir()
	// "o café" in ISO 8859-1.
	path := filepath.Join(dir, "latin.obj")
	if err := os.WriteFile(path, []byte("o caf\xe9\nv 0 0 0\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	obj, err := LoadWithOptions(path, LoadOptions{Encoding: "ISO 8859-1"})
	if err != nil {
		t.Fatalf("LoadWithOptions failed: %v", err)
	}
	if obj.Name != "café" {
		t.Errorf("Name = %q, want café", obj.Name)
	}

	_, err = LoadWithOptions(path, LoadOptions{Encoding: "klingon"})
	var lerr *LoadError
	if !errors.As(err, &lerr) || lerr.Stage != StageIO {
		t.Errorf("expected io LoadError for unknown encoding, got %v", err)
	}
}
