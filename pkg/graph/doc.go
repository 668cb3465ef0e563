// Package graph provides the in-memory graph model for image-backed graphs.
//
// # Overview
//
// A [Graph] is an ordered set of nodes and edges with graph-level attributes
// and named, typed properties. Graphs built from images (see [NewGrid]) have
// one node per pixel, in raster order: x varies fastest, then y, then z. The
// image dimensions are stored as the "width", "height" and "depth"
// attributes and are read back with [Graph.Dimensions].
//
// # Properties
//
// A property maps every node and every edge to a value. Unset elements take
// the property's node or edge default, so storage stays sparse for masks
// that select a handful of pixels. Four property types exist:
//
//   - [BooleanProperty]: selections and binary masks
//   - [ColorProperty]: RGBA pixel colors
//   - [IntegerProperty]: integer intensities or labels
//   - [DoubleProperty]: floating point intensities
//
// Typed getters such as [Graph.BooleanProperty] return the existing property
// of that name or register a new empty one:
//
//	sel, err := g.BooleanProperty("viewSelection")
//	if err != nil {
//	    return err // the name is taken by a property of another type
//	}
//	sel.SetNodeValue(graph.Node(4), true)
//
// # Concurrency
//
// Graph is not safe for concurrent use without external synchronization.
package graph
