package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"quad.obj":   "mtllib quad.mtl\no quad\nv 0 0 0\nv 2 0 0\nv 2 1 0\nv 0 1 0\ns 1\nusemtl green\nf 1 2 3 4\n",
		"quad.mtl":   "newmtl green\nKd 0 1 0\nillum 2\n",
		"broken.obj": "v 0 0 0\nf 1 2\n",
		"lines.obj":  "v 0 0 0\nv 1 1 1\nl 1 2\n",
		"plain.obj":  "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 3\n",
		"notes.txt":  "not a model",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.obj"), 0755); err != nil {
		t.Fatal(err)
	}

	srv := httptest.NewServer(NewServer(dir, math.Vec3{X: 1, Y: 1, Z: 1}).Handler())
	t.Cleanup(srv.Close)
	return srv
}

func getJSON(t *testing.T, url string, wantStatus int, v any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "application/json" {
		t.Errorf("GET %s: Content-Type %q", url, ct)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("GET %s: decode: %v", url, err)
	}
}

func TestListModels(t *testing.T) {
	srv := newTestServer(t)

	var models []string
	getJSON(t, srv.URL+"/json/models", http.StatusOK, &models)

	want := []string{"broken.obj", "lines.obj", "plain.obj", "quad.obj"}
	if !reflect.DeepEqual(models, want) {
		t.Errorf("models = %v, want %v", models, want)
	}
}

func TestModelSummary(t *testing.T) {
	srv := newTestServer(t)

	var sum ModelSummary
	getJSON(t, srv.URL+"/json/models/quad.obj", http.StatusOK, &sum)

	if sum.Name != "quad" || sum.File != "quad.obj" {
		t.Errorf("name/file = %q/%q", sum.Name, sum.File)
	}
	if sum.Vertices != 4 || sum.Faces != 1 || sum.Triangles != 2 || sum.Triangulated {
		t.Errorf("unexpected counts: %+v", sum)
	}
	if !reflect.DeepEqual(sum.SmoothingGroups, []int{1}) {
		t.Errorf("smoothing groups = %v", sum.SmoothingGroups)
	}
	green, ok := sum.Materials["green"]
	if !ok || green.Diffuse != [3]float32{0, 1, 0} || green.Illumination != "HighlightOn" {
		t.Errorf("materials = %+v", sum.Materials)
	}
	if sum.Min != [3]float32{0, 0, 0} || sum.Max != [3]float32{2, 1, 0} {
		t.Errorf("bounds = %v..%v", sum.Min, sum.Max)
	}
}

func TestModelSummaryEmptyLists(t *testing.T) {
	srv := newTestServer(t)

	var raw map[string]json.RawMessage
	getJSON(t, srv.URL+"/json/models/plain.obj", http.StatusOK, &raw)

	for _, key := range []string{"material_libraries", "smoothing_groups"} {
		if got := string(raw[key]); got != "[]" {
			t.Errorf("%s = %s, want []", key, got)
		}
	}
	if got := string(raw["materials"]); got != "{}" {
		t.Errorf("materials = %s, want {}", got)
	}
}

func TestModelBuffers(t *testing.T) {
	srv := newTestServer(t)

	var buf Buffers
	getJSON(t, srv.URL+"/json/models/quad.obj/buffers", http.StatusOK, &buf)

	if buf.Stride != wavefront.VertexStride {
		t.Errorf("stride = %d", buf.Stride)
	}
	if len(buf.Indices) != 6 {
		t.Fatalf("expected 6 indices, got %d", len(buf.Indices))
	}
	if len(buf.Vertices) != len(buf.Indices)*buf.Stride {
		t.Errorf("%d floats for %d indices", len(buf.Vertices), len(buf.Indices))
	}
	if len(buf.Layout) != 3 || buf.Layout[2].Name != "uv" {
		t.Errorf("layout = %+v", buf.Layout)
	}
}

func TestModelGLTF(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/gltf/models/quad.obj")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "model/gltf-binary" {
		t.Errorf("Content-Type %q", ct)
	}
	if cd := resp.Header.Get("Content-Disposition"); cd != `attachment; filename="quad.glb"` {
		t.Errorf("Content-Disposition %q", cd)
	}

	var body bytes.Buffer
	if _, err := body.ReadFrom(resp.Body); err != nil {
		t.Fatal(err)
	}
	if !bytes.HasPrefix(body.Bytes(), []byte("glTF")) {
		t.Error("response is not a glb container")
	}
}

func TestErrors(t *testing.T) {
	srv := newTestServer(t)

	tests := []struct {
		path   string
		status int
	}{
		{"/json/models/missing.obj", http.StatusNotFound},
		{"/json/models/notes.txt", http.StatusBadRequest},
		{"/json/models/broken.obj", http.StatusUnprocessableEntity},
		{"/json/models/lines.obj", http.StatusUnprocessableEntity},
		{"/json/models/broken.obj/buffers", http.StatusUnprocessableEntity},
		{"/gltf/models/missing.obj", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			var body jsonError
			getJSON(t, srv.URL+tt.path, tt.status, &body)
			if body.Error == "" {
				t.Error("expected an error message")
			}
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Post(srv.URL+"/json/models", "application/json", nil)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("status %d, want %d", resp.StatusCode, http.StatusMethodNotAllowed)
	}
}
