package imageplugin

import (
	"context"
	"image"
	"image/color"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/raster"
)

// exportImage writes a boolean or color property of a grid graph as one
// image per z slice. Boolean properties become 8-bit masks (255 selected,
// 0 otherwise).
type exportImage struct{}

func (exportImage) Info() plugin.Info {
	return plugin.Info{Name: ExportImage, Author: author, Date: "2013-08-20", Version: "1.0", Group: "File"}
}

func (exportImage) Parameters() []plugin.Parameter {
	return []plugin.Parameter{
		{Name: ParamProperty, Kind: plugin.KindProperty, Default: "data",
			Help: "The property to export (Color, Boolean)."},
		{Name: ParamExportDir, Kind: plugin.KindDir, Default: "",
			Help: "Directory where the image will be created."},
		{Name: ParamExportPattern, Kind: plugin.KindString, Default: "out.bmp",
			Help: "Name of the image that will be created. An integer verb such as %03d numbers the slices of a 3D image."},
	}
}

// exportTarget is the validated input of an export.
type exportTarget struct {
	prop    graph.Property
	dir     string
	pattern string
	dims    graph.Dims
}

func checkExport(pc *plugin.Context) (exportTarget, error) {
	var t exportTarget
	var ok bool
	if t.prop, ok = pc.Params.Property(ParamProperty); !ok {
		return t, plugin.MissingParameter(ParamProperty)
	}
	if t.dir, ok = pc.Params.String(ParamExportDir); !ok {
		return t, plugin.MissingParameter(ParamExportDir)
	}
	if t.pattern, ok = pc.Params.String(ParamExportPattern); !ok {
		return t, plugin.MissingParameter(ParamExportPattern)
	}

	dims, err := pc.Graph.Dimensions()
	if err != nil {
		return t, err
	}
	t.dims = dims

	if t.dir == "" {
		return t, plugin.InvalidParameter("The %q parameter cannot be empty", ParamExportDir)
	}
	if t.pattern == "" {
		return t, plugin.InvalidParameter("The %q parameter cannot be empty", ParamExportPattern)
	}
	return t, nil
}

func (exportImage) Run(ctx context.Context, pc *plugin.Context) error {
	t, err := checkExport(pc)
	if err != nil {
		return err
	}

	var fill func(img image.Image, z int)
	var newImage func(r image.Rectangle) image.Image
	switch p := t.prop.(type) {
	case *graph.BooleanProperty:
		newImage = func(r image.Rectangle) image.Image { return image.NewGray(r) }
		fill = func(img image.Image, z int) {
			gray := img.(*image.Gray)
			for y := 0; y < t.dims.Height; y++ {
				for x := 0; x < t.dims.Width; x++ {
					if p.NodeValue(t.dims.Index(x, y, z)) {
						gray.SetGray(x, y, color.Gray{Y: 255})
					}
				}
			}
		}
	case *graph.ColorProperty:
		newImage = func(r image.Rectangle) image.Image { return image.NewNRGBA(r) }
		fill = func(img image.Image, z int) {
			rgb := img.(*image.NRGBA)
			for y := 0; y < t.dims.Height; y++ {
				for x := 0; x < t.dims.Width; x++ {
					c := p.NodeValue(t.dims.Index(x, y, z))
					rgb.SetNRGBA(x, y, color.NRGBA{R: c.R, G: c.G, B: c.B, A: 255})
				}
			}
		}
	default:
		return plugin.InvalidParameter("%q must be a property of one of the following types: ColorProperty, BooleanProperty.", ParamProperty)
	}

	names, err := raster.SeriesNames(t.dir, t.pattern, t.dims.Depth)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "The image cannot be exported")
	}

	steps := newStepper(ctx, pc, t.dims.Len(), "Exporting the image")
	bounds := image.Rect(0, 0, t.dims.Width, t.dims.Height)
	for z, name := range names {
		img := newImage(bounds)
		fill(img, z)
		if err := raster.Save(img, name); err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "The image cannot be exported")
		}
		pc.Logger.Debug("Wrote image slice", "path", name, "z", z)
		if err := steps.advance(t.dims.SliceLen()); err != nil {
			return err
		}
	}
	return nil
}
