// Package io provides JSON import and export for image graphs.
//
// # Overview
//
// This package serializes a [graph.Graph] with its attributes, edges and
// typed properties. Graphs produced by the "Import image" plugin are saved
// with it and loaded back by the export tools.
//
// # JSON Format
//
//	{
//	  "attributes": {"width": 2, "height": 2, "depth": 1},
//	  "nodes": 4,
//	  "edges": [[0, 1], [0, 2], [1, 3], [2, 3]],
//	  "properties": [
//	    {
//	      "name": "viewSelection",
//	      "type": "bool",
//	      "node_default": false,
//	      "edge_default": false,
//	      "nodes": {"3": true}
//	    },
//	    {
//	      "name": "data",
//	      "type": "color",
//	      "node_default": "#000000ff",
//	      "edge_default": "#000000ff",
//	      "nodes": {"0": "#ff0000ff"}
//	    }
//	  ]
//	}
//
// Nodes are numbered 0..nodes-1. Property "nodes" and "edges" maps hold only
// the elements whose value differs from the default. Property types are
// "bool", "color", "int" and "double"; colors are "#rrggbbaa" strings.
//
// # Compression
//
// Paths ending in ".gz" are read and written gzip-compressed by
// [ImportJSON] and [ExportJSON]. Image graphs have one node per pixel, and
// their edge lists compress well.
//
// # Errors
//
// A missing file is reported with code FILE_NOT_FOUND; malformed documents
// with INVALID_GRAPH, naming the offending element.
package io
