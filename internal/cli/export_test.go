package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/plugin/imageplugin"
)

// fakeExporter records the library calls of an export.
type fakeExporter struct {
	calls    []string
	property string
	defaults plugin.DataSet
	applied  plugin.DataSet
	applyErr error
	loadErr  error
}

func (f *fakeExporter) Load(_ context.Context, path string) (*graph.Graph, error) {
	f.calls = append(f.calls, "load")
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return graph.New(), nil
}

func (f *fakeExporter) BooleanProperty(g *graph.Graph, name string) (*graph.BooleanProperty, error) {
	f.calls = append(f.calls, "property")
	f.property = name
	return g.BooleanProperty(name)
}

func (f *fakeExporter) DefaultParameters(name string, g *graph.Graph) (plugin.DataSet, error) {
	f.calls = append(f.calls, "defaults")
	f.defaults = plugin.DataSet{
		imageplugin.ParamExportDir:     "",
		imageplugin.ParamExportPattern: "out.bmp",
		"Untouched":                    42,
	}
	return f.defaults.Clone(), nil
}

func (f *fakeExporter) Apply(_ context.Context, g *graph.Graph, name string, ds plugin.DataSet) error {
	f.calls = append(f.calls, "apply:"+name)
	f.applied = ds
	return f.applyErr
}

func runExportSelection(t *testing.T, ex Exporter, args ...string) (string, error) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	c := New(io.Discard, LogInfo)
	c.Exporter = ex
	cmd := c.ExportSelectionCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestExportSelectionRequiredFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no graph", []string{"-o", "/a/b/out.png"}},
		{"no output", []string{"-g", "graph.json"}},
		{"no flags", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex := &fakeExporter{}
			_, err := runExportSelection(t, ex, tt.args...)
			if err == nil {
				t.Fatal("expected argument error")
			}
			if !strings.Contains(err.Error(), "required flag") {
				t.Errorf("error = %v, want required flag error", err)
			}
			if len(ex.calls) != 0 {
				t.Errorf("library calls = %v, want none", ex.calls)
			}
		})
	}
}

func TestExportSelectionWiring(t *testing.T) {
	ex := &fakeExporter{}
	out, err := runExportSelection(t, ex, "-g", "graph.json", "-o", "/a/b/out.png")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}

	wantCalls := []string{"load", "property", "defaults", "apply:" + imageplugin.ExportImage}
	if !slices.Equal(ex.calls, wantCalls) {
		t.Errorf("calls = %v, want %v", ex.calls, wantCalls)
	}
	if ex.property != "viewSelection" {
		t.Errorf("property = %q, want %q", ex.property, "viewSelection")
	}
	if got, _ := ex.applied.String(imageplugin.ParamExportDir); got != "/a/b" {
		t.Errorf("dir = %q, want %q", got, "/a/b")
	}
	if got, _ := ex.applied.String(imageplugin.ParamExportPattern); got != "out.png" {
		t.Errorf("pattern = %q, want %q", got, "out.png")
	}
	if out != "Export done\n" {
		t.Errorf("stdout = %q, want %q", out, "Export done\n")
	}
}

func TestExportSelectionOverridesOnlyThreeKeys(t *testing.T) {
	ex := &fakeExporter{}
	if _, err := runExportSelection(t, ex, "-g", "graph.json", "-p", "mask", "-o", "/a/b/out.png"); err != nil {
		t.Fatalf("export failed: %v", err)
	}

	overridden := []string{imageplugin.ParamProperty, imageplugin.ParamExportDir, imageplugin.ParamExportPattern}
	for key, v := range ex.applied {
		if slices.Contains(overridden, key) {
			continue
		}
		if ex.defaults[key] != v {
			t.Errorf("key %q = %v, want default %v", key, v, ex.defaults[key])
		}
	}
	for key := range ex.defaults {
		if !ex.applied.Has(key) {
			t.Errorf("default key %q missing from applied parameters", key)
		}
	}
	prop, ok := ex.applied.Property(imageplugin.ParamProperty)
	if !ok || prop.Name() != "mask" {
		t.Errorf("Property = %v, want property named %q", prop, "mask")
	}
}

func TestExportSelectionFailurePrinted(t *testing.T) {
	ex := &fakeExporter{applyErr: errors.New(errors.ErrCodeInvalidParameter, `The "Export pattern" parameter cannot be empty`)}
	out, err := runExportSelection(t, ex, "-g", "graph.json", "-o", "/a/b/out.png")
	if err != nil {
		t.Fatalf("a failed export should not fail the command: %v", err)
	}

	want := "The \"Export pattern\" parameter cannot be empty\nExport done\n"
	if out != want {
		t.Errorf("stdout = %q, want %q", out, want)
	}
	if n := strings.Count(out, exportDone); n != 1 {
		t.Errorf("%q printed %d times, want 1", exportDone, n)
	}
}

func TestExportSelectionLoadError(t *testing.T) {
	ex := &fakeExporter{loadErr: errors.New(errors.ErrCodeFileNotFound, "graph file not found")}
	out, err := runExportSelection(t, ex, "-g", "missing.json", "-o", "out.png")
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("error = %v, want FILE_NOT_FOUND", err)
	}
	if out != "" {
		t.Errorf("stdout = %q, want empty", out)
	}
}

func TestExportSelectionPropertyFromConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(cfg, []byte("[export]\nproperty = \"fromConfig\"\n"), 0644); err != nil {
		t.Fatal(err)
	}

	ex := &fakeExporter{}
	if _, err := runExportSelection(t, ex, "--config", cfg, "-g", "graph.json", "-o", "/a/b/out.png"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if ex.property != "fromConfig" {
		t.Errorf("property = %q, want %q", ex.property, "fromConfig")
	}

	ex = &fakeExporter{}
	if _, err := runExportSelection(t, ex, "--config", cfg, "-p", "fromFlag", "-g", "graph.json", "-o", "/a/b/out.png"); err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if ex.property != "fromFlag" {
		t.Errorf("property = %q, want %q", ex.property, "fromFlag")
	}
}

func TestSplitOutput(t *testing.T) {
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	wd = realpath(wd)

	tests := []struct {
		path     string
		wantDir  string
		wantFile string
	}{
		{"/a/b/out.png", "/a/b", "out.png"},
		{"/out.png", "/", "out.png"},
		{"out.png", wd, "out.png"},
		{"sub/../x/%03d.bmp", filepath.Join(wd, "x"), "%03d.bmp"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			dir, file, err := splitOutput(tt.path)
			if err != nil {
				t.Fatalf("splitOutput(%q) error: %v", tt.path, err)
			}
			if dir != tt.wantDir || file != tt.wantFile {
				t.Errorf("splitOutput(%q) = (%q, %q), want (%q, %q)", tt.path, dir, file, tt.wantDir, tt.wantFile)
			}
		})
	}
}

func TestSplitOutputResolvesSymlinks(t *testing.T) {
	root := realpath(t.TempDir())
	target := filepath.Join(root, "target")
	if err := os.Mkdir(target, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	dir, file, err := splitOutput(filepath.Join(link, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	if dir != target || file != "out.png" {
		t.Errorf("splitOutput = (%q, %q), want (%q, %q)", dir, file, target, "out.png")
	}
}

func TestSplitOutputResolvesSymlinkBeforeParent(t *testing.T) {
	root := realpath(t.TempDir())
	target := filepath.Join(root, "elsewhere", "dir")
	if err := os.MkdirAll(target, 0755); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "link")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	sep := string(filepath.Separator)
	tests := []struct {
		name    string
		path    string
		wantDir string
	}{
		{"missing sibling", link + sep + ".." + sep + "x" + sep + "out.png", filepath.Join(root, "elsewhere", "x")},
		{"existing parent", link + sep + ".." + sep + "out.png", filepath.Join(root, "elsewhere")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, file, err := splitOutput(tt.path)
			if err != nil {
				t.Fatal(err)
			}
			if dir != tt.wantDir || file != "out.png" {
				t.Errorf("splitOutput(%q) = (%q, %q), want (%q, %q)", tt.path, dir, file, tt.wantDir, "out.png")
			}
		})
	}

	t.Run("relative", func(t *testing.T) {
		t.Chdir(root)
		dir, _, err := splitOutput("link" + sep + ".." + sep + "x" + sep + "out.png")
		if err != nil {
			t.Fatal(err)
		}
		if want := filepath.Join(root, "elsewhere", "x"); dir != want {
			t.Errorf("dir = %q, want %q", dir, want)
		}
	})
}

func TestExportSelectionEmptyPropertyName(t *testing.T) {
	ex := &fakeExporter{}
	out, err := runExportSelection(t, ex, "-g", "graph.json", "-p", "", "-o", "/a/b/out.png")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if ex.property != "" {
		t.Errorf("property = %q, want empty name", ex.property)
	}
	if prop, ok := ex.applied.Property(imageplugin.ParamProperty); !ok || prop.Name() != "" {
		t.Errorf("Property = %v, want property with empty name", prop)
	}
	if out != "Export done\n" {
		t.Errorf("stdout = %q, want %q", out, "Export done\n")
	}
}
