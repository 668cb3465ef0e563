package imageplugin

import (
	"context"
	"image/color"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/plugin"
	"github.com/matzehuels/pixelgraph/pkg/raster"
)

// Property types accepted by "Import image".
const (
	PropertyTypeColor   = "Color"
	PropertyTypeInteger = "Integer"
	PropertyTypeDouble  = "Double"
	PropertyTypeBoolean = "Boolean"
)

// importImage builds a grid graph with one node per pixel and stores the
// pixel values in a property of the requested type.
type importImage struct{}

func (importImage) Info() plugin.Info {
	return plugin.Info{Name: ImportImage, Author: author, Date: "2013-08-18", Version: "1.0", Group: "File"}
}

func (importImage) Parameters() []plugin.Parameter {
	return []plugin.Parameter{
		{Name: ParamFile, Kind: plugin.KindFile, Default: "",
			Help: "The image to import."},
		{Name: ParamNeighborhoodType, Kind: plugin.KindChoice, Default: "Circular;Square",
			Help: "The type of neighborhood to build."},
		{Name: ParamNeighborhoodRadius, Kind: plugin.KindFloat, Default: "0",
			Help: "The radius of the generated neighborhood."},
		{Name: ParamPropertyType, Kind: plugin.KindChoice, Default: "Color;Integer;Double;Boolean",
			Help: "The type of the property: Color, Integer, Double, Boolean."},
		{Name: ParamPropertyName, Kind: plugin.KindString, Default: "data",
			Help: "The name of the property."},
		{Name: ParamGrayscale, Kind: plugin.KindBool, Default: "false",
			Help: "Indicates if the color should be converted to grayscale."},
	}
}

func (importImage) Run(ctx context.Context, pc *plugin.Context) error {
	file, ok := pc.Params.String(ParamFile)
	if !ok {
		return plugin.MissingParameter(ParamFile)
	}
	grayscale, ok := pc.Params.Bool(ParamGrayscale)
	if !ok {
		return plugin.MissingParameter(ParamGrayscale)
	}
	propType, ok := pc.Params.String(ParamPropertyType)
	if !ok {
		return plugin.MissingParameter(ParamPropertyType)
	}
	propName, ok := pc.Params.String(ParamPropertyName)
	if !ok {
		return plugin.MissingParameter(ParamPropertyName)
	}

	var nb graph.Neighborhood
	if nbType, ok := pc.Params.String(ParamNeighborhoodType); ok {
		nb.Type = graph.NeighborhoodType(nbType)
	}
	if radius, ok := pc.Params.Float(ParamNeighborhoodRadius); ok {
		nb.Radius = radius
	}

	if file == "" {
		return plugin.InvalidParameter("The %q parameter cannot be empty", "File")
	}
	if propName == "" {
		return plugin.InvalidParameter("The %q parameter cannot be empty", "Property name")
	}
	switch propType {
	case PropertyTypeColor, PropertyTypeInteger, PropertyTypeDouble, PropertyTypeBoolean:
	default:
		return plugin.InvalidParameter("Unknown property type %q.", propType)
	}

	img, err := raster.Open(file)
	if err != nil {
		return err
	}
	b := img.Bounds()
	dims := graph.Dims{Width: b.Dx(), Height: b.Dy(), Depth: 1}

	if err := graph.BuildGrid(pc.Graph, dims, nb); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidParameter, err, "Unable to create the grid")
	}
	pc.Logger.Debug("Built grid", "dims", dims, "edges", pc.Graph.EdgeCount())

	set, err := pixelSetter(pc.Graph, propType, propName, grayscale)
	if err != nil {
		return err
	}

	steps := newStepper(ctx, pc, dims.Len(), "Loading the image")
	for y := 0; y < dims.Height; y++ {
		for x := 0; x < dims.Width; x++ {
			set(dims.Index(x, y, 0), img.At(b.Min.X+x, b.Min.Y+y))
		}
		if err := steps.advance(dims.Width); err != nil {
			return err
		}
	}
	return nil
}

// pixelSetter returns a function storing a pixel value into the named
// property of g.
func pixelSetter(g *graph.Graph, propType, name string, grayscale bool) (func(graph.Node, color.Color), error) {
	switch propType {
	case PropertyTypeColor:
		p, err := g.ColorProperty(name)
		if err != nil {
			return nil, err
		}
		return func(n graph.Node, c color.Color) {
			nc := color.NRGBAModel.Convert(c).(color.NRGBA)
			if grayscale {
				l := raster.Luminance(c)
				nc.R, nc.G, nc.B = l, l, l
			}
			p.SetNodeValue(n, graph.Color{R: nc.R, G: nc.G, B: nc.B, A: nc.A})
		}, nil
	case PropertyTypeInteger:
		p, err := g.IntegerProperty(name)
		if err != nil {
			return nil, err
		}
		return func(n graph.Node, c color.Color) {
			p.SetNodeValue(n, int(raster.Luminance(c)))
		}, nil
	case PropertyTypeDouble:
		p, err := g.DoubleProperty(name)
		if err != nil {
			return nil, err
		}
		return func(n graph.Node, c color.Color) {
			p.SetNodeValue(n, float64(gray16(c))/257)
		}, nil
	default:
		p, err := g.BooleanProperty(name)
		if err != nil {
			return nil, err
		}
		return func(n graph.Node, c color.Color) {
			p.SetNodeValue(n, gray16(c) != 0)
		}, nil
	}
}

func gray16(c color.Color) uint16 {
	return color.Gray16Model.Convert(c).(color.Gray16).Y
}
