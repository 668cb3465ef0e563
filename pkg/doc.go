// Package pkg provides the libraries behind pixelgraph, a toolkit that turns
// raster images into grid graphs and graph properties back into images.
//
// # Overview
//
// The pkg directory is organized as follows:
//
//  1. [graph] - Graph model: nodes, edges, attributes and typed properties
//  2. [io] - Graph files (JSON, optionally gzip-compressed)
//  3. [plugin] - Plugin registry, parameter data sets and plugin runs
//  4. [plugin/imageplugin] - Image import/export, mask loading and node-link drawings
//  5. [raster] - Image codecs and numbered image series
//  6. [errors], [observability], [buildinfo] - Shared infrastructure
//
// # Data Flow
//
//	image file
//	     ↓
//	"Import image" (grid graph + pixel property)
//	     ↓
//	[io] graph file  ←→  "Load mask as selection from image"
//	     ↓
//	"Export image" / "Export node-link"
//	     ↓
//	PNG/BMP/TIFF/JPEG slices, SVG/PNG/DOT drawings
//
// # Quick Start
//
//	g, err := io.Load(ctx, "cells.json")
//	if err != nil {
//	    return err
//	}
//	sel, err := g.BooleanProperty("viewSelection")
//	if err != nil {
//	    return err
//	}
//	ds, err := plugin.DefaultParameters(imageplugin.ExportImage, g)
//	if err != nil {
//	    return err
//	}
//	ds.Set(imageplugin.ParamProperty, sel)
//	ds.Set(imageplugin.ParamExportDir, "out")
//	ds.Set(imageplugin.ParamExportPattern, "selection.png")
//	err = plugin.Apply(ctx, g, imageplugin.ExportImage, ds)
package pkg
