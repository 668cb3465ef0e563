package imageplugin

import (
	"context"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/raster"
)

// loadMask selects the nodes of a grid graph whose pixel in a mask image
// is non-zero.
type loadMask struct{}

func (loadMask) Info() plugin.Info {
	return plugin.Info{Name: LoadMask, Author: author, Date: "2013-08-01", Version: "1.0", Group: "Image"}
}

func (loadMask) Parameters() []plugin.Parameter {
	return []plugin.Parameter{
		{Name: ParamImage, Kind: plugin.KindFile, Default: "",
			Help: "The image to import."},
		{Name: ParamProperty, Kind: plugin.KindProperty, Default: DefaultSelection,
			Help: "The BooleanProperty where the data will be stored."},
	}
}

func (loadMask) Run(ctx context.Context, pc *plugin.Context) error {
	file, ok := pc.Params.String(ParamImage)
	if !ok {
		return plugin.MissingParameter(ParamImage)
	}
	prop, ok := pc.Params.Property(ParamProperty)
	if !ok {
		return plugin.MissingParameter(ParamProperty)
	}
	if file == "" {
		return plugin.InvalidParameter("%q is an invalid value for the %q parameter", file, "File")
	}
	sel, ok := prop.(*graph.BooleanProperty)
	if !ok {
		return plugin.InvalidParameter("%q must be a BooleanProperty", ParamProperty)
	}

	dims, err := pc.Graph.Dimensions()
	if err != nil {
		return err
	}
	img, err := raster.Open(file)
	if err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() != dims.Width || b.Dy() != dims.Height || dims.Depth != 1 {
		return errors.New(errors.ErrCodeInvalidParameter, "The dimensions of the graph and the image do not match")
	}

	steps := newStepper(ctx, pc, dims.Len(), "Loading the image")
	for y := 0; y < dims.Height; y++ {
		for x := 0; x < dims.Width; x++ {
			sel.SetNodeValue(dims.Index(x, y, 0), gray16(img.At(b.Min.X+x, b.Min.Y+y)) != 0)
		}
		if err := steps.advance(dims.Width); err != nil {
			return err
		}
	}
	pc.Logger.Debug("Loaded mask", "selected", sel.Count(pc.Graph))
	return nil
}
