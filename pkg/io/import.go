package io

import (
	"encoding/json"
	"io"
	"math"
	"os"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
)

// ReadJSON decodes a JSON graph from r.
//
// ReadJSON returns an INVALID_GRAPH error if:
//   - The JSON is malformed
//   - The node count is negative
//   - An edge references an unknown node
//   - A property has an unknown type, a duplicate name or values of the
//     wrong type
//   - A property value references an unknown node or edge
//
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*graph.Graph, error) {
	var data document
	if err := json.NewDecoder(r).Decode(&data); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "decode")
	}
	if data.Nodes < 0 {
		return nil, errors.New(errors.ErrCodeInvalidGraph, "negative node count %d", data.Nodes)
	}

	g := graph.New()
	g.AddNodes(data.Nodes)
	for k, v := range data.Attributes {
		g.SetAttribute(k, normalizeNumber(v))
	}
	for i, e := range data.Edges {
		if _, err := g.AddEdge(graph.Node(e[0]), graph.Node(e[1])); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d (%d->%d)", i, e[0], e[1])
		}
	}

	for _, p := range data.Properties {
		if _, exists := g.Property(p.Name); exists {
			return nil, errors.New(errors.ErrCodeInvalidGraph, "duplicate property %q", p.Name)
		}
		if err := readProperty(g, p); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "property %q", p.Name)
		}
	}

	return g, nil
}

// ImportJSON reads a JSON graph file at path. Paths ending in ".gz" are
// decompressed first.
func ImportJSON(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()

	var r io.Reader = f
	if isCompressed(path) {
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "gunzip %s", path)
		}
		defer zr.Close()
		r = zr
	}

	g, err := ReadJSON(r)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidGraph, err, "load %s", path)
	}
	return g, nil
}

func readProperty(g *graph.Graph, in property) error {
	switch graph.PropertyType(in.Type) {
	case graph.TypeBoolean:
		p, err := g.BooleanProperty(in.Name)
		if err != nil {
			return err
		}
		return decodeValues[bool](g, in, p, decodeJSON[bool])
	case graph.TypeColor:
		p, err := g.ColorProperty(in.Name)
		if err != nil {
			return err
		}
		return decodeValues[graph.Color](g, in, p, decodeColor)
	case graph.TypeInteger:
		p, err := g.IntegerProperty(in.Name)
		if err != nil {
			return err
		}
		return decodeValues[int](g, in, p, decodeJSON[int])
	case graph.TypeDouble:
		p, err := g.DoubleProperty(in.Name)
		if err != nil {
			return err
		}
		return decodeValues[float64](g, in, p, decodeJSON[float64])
	default:
		return errors.New(errors.ErrCodeInvalidGraph, "unknown property type %q", in.Type)
	}
}

func decodeValues[T comparable](g *graph.Graph, in property, p sparse[T], decode func(json.RawMessage) (T, error)) error {
	if len(in.NodeDefault) > 0 {
		v, err := decode(in.NodeDefault)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node default")
		}
		p.SetAllNodeValue(v)
	}
	if len(in.EdgeDefault) > 0 {
		v, err := decode(in.EdgeDefault)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge default")
		}
		p.SetAllEdgeValue(v)
	}
	for n, raw := range in.Nodes {
		if !g.HasNode(graph.Node(n)) {
			return errors.New(errors.ErrCodeInvalidGraph, "unknown node %d", n)
		}
		v, err := decode(raw)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "node %d", n)
		}
		p.SetNodeValue(graph.Node(n), v)
	}
	for e, raw := range in.Edges {
		if !g.HasEdge(graph.Edge(e)) {
			return errors.New(errors.ErrCodeInvalidGraph, "unknown edge %d", e)
		}
		v, err := decode(raw)
		if err != nil {
			return errors.Wrap(errors.ErrCodeInvalidGraph, err, "edge %d", e)
		}
		p.SetEdgeValue(graph.Edge(e), v)
	}
	return nil
}

func decodeJSON[T any](raw json.RawMessage) (T, error) {
	var v T
	err := json.Unmarshal(raw, &v)
	return v, err
}

func decodeColor(raw json.RawMessage) (graph.Color, error) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return graph.Color{}, err
	}
	return ParseColor(s)
}

// normalizeNumber turns integral JSON numbers back into ints so that
// dimension attributes keep their type across a round trip.
func normalizeNumber(v any) any {
	f, ok := v.(float64)
	if ok && f == math.Trunc(f) && math.Abs(f) < 1<<53 {
		return int(f)
	}
	return v
}

func isCompressed(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}
