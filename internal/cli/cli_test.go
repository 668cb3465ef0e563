package cli

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	pgio "github.com/matzehuels/pixelgraph/pkg/io"
	"github.com/matzehuels/pixelgraph/pkg/raster"
)

func runPixelgraph(t *testing.T, args ...string) (string, error) {
	t.Helper()
	c := New(io.Discard, LogInfo)
	root := c.RootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(io.Discard)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func writeTestImage(t *testing.T, path string, w, h int, on ...image.Point) {
	t.Helper()
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, p := range on {
		img.SetGray(p.X, p.Y, color.Gray{Y: 255})
	}
	if err := raster.Save(img, path); err != nil {
		t.Fatal(err)
	}
}

func TestImportExportWorkflow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "cells.png")
	graphFile := filepath.Join(dir, "cells.json.gz")
	writeTestImage(t, input, 3, 2, image.Pt(0, 0), image.Pt(2, 1))

	out, err := runPixelgraph(t, "import", "-i", input, "-o", graphFile, "--type", "Boolean", "--name", "viewSelection", "--radius", "1")
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if !strings.Contains(out, "6 nodes") || !strings.Contains(out, "7 edges") {
		t.Errorf("import output = %q, want node and edge counts", out)
	}

	out, err = runPixelgraph(t, "info", "-g", graphFile)
	if err != nil {
		t.Fatalf("info failed: %v", err)
	}
	for _, want := range []string{"3x2x1", "viewSelection", "bool", "(2 nodes, 0 edges set)"} {
		if !strings.Contains(out, want) {
			t.Errorf("info output = %q, want it to contain %q", out, want)
		}
	}

	exported := filepath.Join(dir, "out.png")
	out, err = runPixelgraph(t, "export", "-g", graphFile, "-o", exported)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if out != "Export done\n" {
		t.Errorf("export output = %q, want %q", out, "Export done\n")
	}
	img, err := raster.Open(exported)
	if err != nil {
		t.Fatalf("open exported image: %v", err)
	}
	if got := raster.Luminance(img.At(2, 1)); got != 255 {
		t.Errorf("pixel (2,1) = %d, want 255", got)
	}
	if got := raster.Luminance(img.At(1, 0)); got != 0 {
		t.Errorf("pixel (1,0) = %d, want 0", got)
	}
}

func TestExportReportsPluginFailure(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	graphFile := filepath.Join(dir, "g.json")
	writeTestImage(t, input, 2, 2)

	if _, err := runPixelgraph(t, "import", "-i", input, "-o", graphFile, "--type", "Integer"); err != nil {
		t.Fatalf("import failed: %v", err)
	}

	out, err := runPixelgraph(t, "export", "-g", graphFile, "-o", filepath.Join(dir, "missing", "out.png"))
	if err != nil {
		t.Fatalf("export should not fail the command: %v", err)
	}
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	if len(lines) != 2 || !strings.HasPrefix(lines[0], "The image cannot be exported") || lines[1] != "Export done" {
		t.Errorf("export output = %q, want error message then %q", out, "Export done")
	}

	_, err = runPixelgraph(t, "export", "-g", graphFile, "-p", "data", "-o", filepath.Join(dir, "out.png"))
	if !errors.Is(err, errors.ErrCodeInvalidProperty) {
		t.Errorf("export of an integer property: error = %v, want INVALID_PROPERTY", err)
	}
}

func TestLoadMaskAndNodeLink(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	mask := filepath.Join(dir, "mask.png")
	graphFile := filepath.Join(dir, "g.json")
	masked := filepath.Join(dir, "masked.json")
	writeTestImage(t, input, 2, 2)
	writeTestImage(t, mask, 2, 2, image.Pt(1, 1))

	if _, err := runPixelgraph(t, "import", "-i", input, "-o", graphFile, "-r", "1"); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	out, err := runPixelgraph(t, "load-mask", "-g", graphFile, "-i", mask, "-o", masked)
	if err != nil {
		t.Fatalf("load-mask failed: %v", err)
	}
	if !strings.Contains(out, "Selected 1 of 4 nodes") {
		t.Errorf("load-mask output = %q, want selection count", out)
	}

	g, err := pgio.Load(context.Background(), masked)
	if err != nil {
		t.Fatal(err)
	}
	sel, err := g.BooleanProperty("viewSelection")
	if err != nil {
		t.Fatal(err)
	}
	if !sel.NodeValue(3) || sel.Count(g) != 1 {
		t.Errorf("selection = %v, want only node 3", sel.NonDefaultNodes())
	}

	drawing := filepath.Join(dir, "g.dot")
	if _, err := runPixelgraph(t, "nodelink", "-g", masked, "-o", drawing); err != nil {
		t.Fatalf("nodelink failed: %v", err)
	}
	data, err := os.ReadFile(drawing)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `n3 [label="1,1,0", fillcolor="#e4572e"`) {
		t.Errorf("drawing does not highlight node 3:\n%s", data)
	}

	if _, err := runPixelgraph(t, "load-mask", "-g", graphFile, "-i", input+".missing"); err == nil {
		t.Error("load-mask with a missing image should fail")
	}
}

func TestImportUsesConfigDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)
	writeConfig(t, filepath.Join(home, "pixelgraph"), "[import]\ntype = \"Double\"\nname = \"intensity\"\n")
	dir := t.TempDir()
	input := filepath.Join(dir, "in.png")
	graphFile := filepath.Join(dir, "g.json")
	writeTestImage(t, input, 1, 1)

	if _, err := runPixelgraph(t, "import", "-i", input, "-o", graphFile, "--name", "flagged"); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	g, err := pgio.Load(context.Background(), graphFile)
	if err != nil {
		t.Fatal(err)
	}
	p, ok := g.Property("flagged")
	if !ok {
		t.Fatalf("properties = %v, want %q from the flag", g.Properties(), "flagged")
	}
	if p.Type() != "double" {
		t.Errorf("type = %q, want %q from the config file", p.Type(), "double")
	}
}

func TestPluginsCommand(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	out, err := runPixelgraph(t, "plugins")
	if err != nil {
		t.Fatalf("plugins failed: %v", err)
	}
	for _, want := range []string{"Export image", "Import image", "Load mask as selection from image", "Export node-link", "dir::Export directory", `"out.bmp"`} {
		if !strings.Contains(out, want) {
			t.Errorf("plugins output missing %q", want)
		}
	}
}

func TestVersionTemplate(t *testing.T) {
	out, err := runPixelgraph(t, "--version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "pixelgraph version ") {
		t.Errorf("version output = %q", out)
	}
}
