// objtool is a CLI utility for inspecting and converting Wavefront OBJ models.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"syscall"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"

	"github.com/Faultbox/scop/internal/config"
	"github.com/Faultbox/scop/internal/export"
	"github.com/Faultbox/scop/internal/logger"
	"github.com/Faultbox/scop/internal/web"
	"github.com/Faultbox/scop/pkg/encoding"
	"github.com/Faultbox/scop/pkg/math"
	"github.com/Faultbox/scop/pkg/wavefront"
)

func main() {
	// Global flags such as -config and -debug come before the command.
	if err := config.ParseArgs(os.Args[1:]); err != nil {
		fatal(err)
	}
	if len(config.Args()) < 1 {
		printUsage()
		os.Exit(1)
	}

	cfg, err := config.Load()
	if err != nil {
		fatal(err)
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fatal(errors.Wrap(err, "logger"))
	}
	defer logger.Sync()

	command := config.Args()[0]
	args := config.Args()[1:]

	switch command {
	case "info":
		err = cmdInfo(cfg, args)
	case "dump":
		err = cmdDump(cfg, args)
	case "tri":
		err = cmdTri(cfg, args)
	case "export":
		err = cmdExport(cfg, args)
	case "serve":
		err = cmdServe(cfg, args)
	case "encodings":
		cmdEncodings()
	case "help":
		printUsage()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}

	if err != nil {
		fatal(err)
	}
}

func printUsage() {
	fmt.Println(`objtool - Wavefront OBJ/MTL utility

Usage:
  objtool [-config file] [-debug] [-encoding cp] <command> [options]

Commands:
  info [-encoding cp] <file.obj>          Show model statistics and materials
  dump [-encoding cp] <file.obj>          Dump the parsed model structure
  tri <file.obj>                          Show triangulation results
  export [-binary] <file.obj> <out>       Convert to glTF (.gltf or .glb)
  serve [-addr host:port] <dir>           Browse a directory of models over HTTP
  encodings                               List supported text encodings

Examples:
  objtool info resources/42.obj
  objtool export resources/teapot.obj teapot.glb
  objtool serve -addr :8080 resources`)
}

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(1)
}

// modelFlags parses the options shared by commands taking one model.
func modelFlags(name string, cfg *config.Config, args []string, extra int) (*flag.FlagSet, wavefront.LoadOptions, error) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	enc := fs.String("encoding", cfg.Model.Encoding, "Code page of the OBJ/MTL text")
	skip := fs.Bool("skip-materials", false, "Do not load material libraries")
	fs.Parse(args)

	if fs.NArg() < 1+extra {
		return nil, wavefront.LoadOptions{}, errors.Errorf("%s: missing arguments, see 'objtool help'", name)
	}
	return fs, wavefront.LoadOptions{Encoding: *enc, SkipMaterials: *skip}, nil
}

func loadModel(path string, opts wavefront.LoadOptions) (*wavefront.OBJ, error) {
	obj, err := wavefront.LoadWithOptions(path, opts)
	if err != nil {
		return nil, errors.Wrapf(err, "loading %s", path)
	}
	return obj, nil
}

func modelColor(cfg *config.Config) math.Vec3 {
	return math.Vec3{X: cfg.Model.Color[0], Y: cfg.Model.Color[1], Z: cfg.Model.Color[2]}
}

func cmdInfo(cfg *config.Config, args []string) error {
	fs, opts, err := modelFlags("info", cfg, args, 0)
	if err != nil {
		return err
	}
	obj, err := loadModel(fs.Arg(0), opts)
	if err != nil {
		return err
	}

	fmt.Printf("Model:     %s\n", fs.Arg(0))
	fmt.Printf("Name:      %s\n", obj.Name)
	fmt.Printf("Vertices:  %d\n", len(obj.Vertices))
	fmt.Printf("Texture:   %d\n", len(obj.VerticesTexture))
	fmt.Printf("Normals:   %d\n", len(obj.VerticesNormal))
	fmt.Printf("Params:    %d\n", len(obj.VerticesParameterSpace))
	fmt.Printf("Faces:     %d (%d triangles)\n", len(obj.Faces), obj.TriangleCount())

	if box, err := obj.AABB(); err == nil {
		fmt.Printf("Bounds:    (%g, %g, %g) - (%g, %g, %g)\n",
			box.Min.X, box.Min.Y, box.Min.Z, box.Max.X, box.Max.Y, box.Max.Z)
	}
	if groups := obj.SmoothingGroups(); len(groups) > 0 {
		fmt.Printf("Smoothing: %v\n", groups)
	}

	if len(obj.MaterialLibraries) == 0 {
		return nil
	}
	fmt.Println()
	fmt.Printf("Material libraries: %s\n", strings.Join(obj.MaterialLibraries, ", "))

	// Count faces per material name
	usage := make(map[string]int)
	for _, f := range obj.Faces {
		if f.Material != nil {
			usage[f.Material.Name]++
		}
	}
	var names []string
	for _, mtl := range obj.Materials {
		for name := range mtl {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	for _, name := range names {
		m, _ := obj.LookupMaterial(name)
		kd := m.DiffuseReflectivity
		fmt.Printf("  %-20s Kd(%.2f %.2f %.2f) %-18s faces=%d\n", name, kd.R, kd.G, kd.B, m.IlluminationModel, usage[name])
	}
	return nil
}

func cmdDump(cfg *config.Config, args []string) error {
	fs, opts, err := modelFlags("dump", cfg, args, 0)
	if err != nil {
		return err
	}
	obj, err := loadModel(fs.Arg(0), opts)
	if err != nil {
		return err
	}

	dumper := spew.NewDefaultConfig()
	dumper.DisableCapacities = true
	dumper.DisablePointerAddresses = true
	dumper.Fdump(os.Stdout, obj)
	return nil
}

func cmdTri(cfg *config.Config, args []string) error {
	fs, opts, err := modelFlags("tri", cfg, args, 0)
	if err != nil {
		return err
	}
	obj, err := loadModel(fs.Arg(0), opts)
	if err != nil {
		return err
	}

	tri, err := obj.Triangulated(wavefront.Fan)
	if err != nil {
		return errors.Wrap(err, "triangulating")
	}

	// Histogram of polygon sizes before triangulation
	sides := make(map[int]int)
	for _, f := range obj.Faces {
		sides[len(f.References)]++
	}
	var counts []int
	for n := range sides {
		counts = append(counts, n)
	}
	sort.Ints(counts)

	fmt.Printf("Faces before: %d\n", len(obj.Faces))
	for _, n := range counts {
		fmt.Printf("  %2d-gon: %d\n", n, sides[n])
	}
	fmt.Printf("Faces after:  %d (triangulated=%v)\n", len(tri.Faces), tri.IsTriangulated())

	indices, err := tri.RawIndices()
	if err != nil {
		return err
	}
	fmt.Printf("Buffer:       %d vertices x %d floats, %d indices\n", len(indices), wavefront.VertexStride, len(indices))
	return nil
}

func cmdExport(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("export", flag.ExitOnError)
	binary := fs.Bool("binary", cfg.Export.Binary, "Write binary glTF (.glb)")
	enc := fs.String("encoding", cfg.Model.Encoding, "Code page of the OBJ/MTL text")
	fs.Parse(args)

	if fs.NArg() < 2 {
		return errors.New("usage: objtool export [-binary] <file.obj> <out.gltf|out.glb>")
	}
	in, out := fs.Arg(0), fs.Arg(1)
	if strings.EqualFold(filepath.Ext(out), ".glb") {
		*binary = true
	}

	obj, err := loadModel(in, wavefront.LoadOptions{Encoding: *enc})
	if err != nil {
		return err
	}
	tri, err := obj.Triangulated(wavefront.Fan)
	if err != nil {
		return errors.Wrap(err, "triangulating")
	}

	if err := export.Save(out, tri, export.Options{Color: modelColor(cfg), Binary: *binary}); err != nil {
		return err
	}
	fmt.Printf("Exported %s -> %s (%d triangles)\n", in, out, len(tri.Faces))
	return nil
}

func cmdServe(cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := fs.String("addr", cfg.Server.Addr, "Listen address")
	fs.Parse(args)

	dir := cfg.Server.ModelsDir
	if fs.NArg() > 0 {
		dir = fs.Arg(0)
	}
	if st, err := os.Stat(dir); err != nil || !st.IsDir() {
		return errors.Errorf("models directory %q not found", dir)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Serving %s on http://%s\n", dir, *addr)
	srv := web.NewServer(dir, modelColor(cfg))
	return errors.Wrap(srv.ListenAndServe(ctx, *addr), "server")
}

func cmdEncodings() {
	fmt.Println("UTF-8 (default)")
	for _, name := range encoding.Names() {
		fmt.Println(name)
	}
}
