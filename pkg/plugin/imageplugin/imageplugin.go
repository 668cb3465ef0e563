// Package imageplugin provides the plugins that move data between images and
// image graphs.
//
//   - "Import image" builds a grid graph from an image file
//   - "Load mask as selection from image" fills a boolean property from a mask
//   - "Export image" writes a boolean or color property as an image series
//   - "Export node-link" draws the graph with Graphviz, highlighting a selection
//
// Importing the package registers all of them in [plugin.Default].
package imageplugin

import (
	"context"

	"github.com/matzehuels/pixelgraph/pkg/plugin"
)

// Plugin names.
const (
	ExportImage    = "Export image"
	ImportImage    = "Import image"
	LoadMask       = "Load mask as selection from image"
	ExportNodeLink = "Export node-link"
)

// Parameter names shared by the plugins.
const (
	ParamProperty           = "Property"
	ParamExportDir          = "dir::Export directory"
	ParamExportPattern      = "Export pattern"
	ParamFile               = "file::File"
	ParamImage              = "file::Image"
	ParamNeighborhoodType   = "Neighborhood type"
	ParamNeighborhoodRadius = "Neighborhood radius"
	ParamPropertyType       = "Property type"
	ParamPropertyName       = "Property name"
	ParamGrayscale          = "Convert to grayscale"
)

// DefaultSelection is the conventional name of the selection property.
const DefaultSelection = "viewSelection"

const author = "pixelgraph"

func init() {
	Register(plugin.Default)
}

// Register adds the image plugins to r.
func Register(r *plugin.Registry) {
	r.MustRegister(exportImage{})
	r.MustRegister(importImage{})
	r.MustRegister(loadMask{})
	r.MustRegister(exportNodeLink{})
}

// stepper reports pixel progress and polls for cancellation once per row.
type stepper struct {
	ctx      context.Context
	progress plugin.Progress
	total    int
	done     int
}

func newStepper(ctx context.Context, pc *plugin.Context, total int, comment string) *stepper {
	pc.Progress.SetComment(comment)
	return &stepper{ctx: ctx, progress: pc.Progress, total: total}
}

func (s *stepper) advance(n int) error {
	s.done += n
	s.progress.Progress(s.done, s.total)
	return s.ctx.Err()
}
