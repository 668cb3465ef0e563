package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/gzip"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
)

type document struct {
	Attributes map[string]any `json:"attributes,omitempty"`
	Nodes      int            `json:"nodes"`
	Edges      [][2]int       `json:"edges"`
	Properties []property     `json:"properties,omitempty"`
}

type property struct {
	Name        string                  `json:"name"`
	Type        string                  `json:"type"`
	NodeDefault json.RawMessage         `json:"node_default,omitempty"`
	EdgeDefault json.RawMessage         `json:"edge_default,omitempty"`
	Nodes       map[int]json.RawMessage `json:"nodes,omitempty"`
	Edges       map[int]json.RawMessage `json:"edges,omitempty"`
}

// sparse is the value access shared by the typed graph properties.
type sparse[T comparable] interface {
	NodeDefault() T
	EdgeDefault() T
	NodeValue(graph.Node) T
	EdgeValue(graph.Edge) T
	NonDefaultNodes() []graph.Node
	NonDefaultEdges() []graph.Edge
	SetAllNodeValue(T)
	SetAllEdgeValue(T)
	SetNodeValue(graph.Node, T)
	SetEdgeValue(graph.Edge, T)
}

// WriteJSON encodes g as JSON and writes it to w.
// The output can be re-imported with [ReadJSON].
func WriteJSON(g *graph.Graph, w io.Writer) error {
	out := document{
		Attributes: g.Attributes(),
		Nodes:      g.NodeCount(),
		Edges:      make([][2]int, g.EdgeCount()),
	}
	for i, e := range g.Edges() {
		s, t := g.Ends(e)
		out.Edges[i] = [2]int{int(s), int(t)}
	}

	for _, p := range g.Properties() {
		var (
			enc property
			err error
		)
		switch p := p.(type) {
		case *graph.BooleanProperty:
			enc, err = encodeValues[bool](p, encodeJSON[bool])
		case *graph.ColorProperty:
			enc, err = encodeValues[graph.Color](p, encodeColor)
		case *graph.IntegerProperty:
			enc, err = encodeValues[int](p, encodeJSON[int])
		case *graph.DoubleProperty:
			enc, err = encodeValues[float64](p, encodeJSON[float64])
		default:
			return errors.New(errors.ErrCodeUnsupported, "property %q: unsupported type %s", p.Name(), p.Type())
		}
		if err != nil {
			return errors.Wrap(errors.ErrCodeInternal, err, "encode property %q", p.Name())
		}
		enc.Name, enc.Type = p.Name(), string(p.Type())
		out.Properties = append(out.Properties, enc)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes g to a JSON file at path, gzip-compressed when path
// ends in ".gz".
func ExportJSON(g *graph.Graph, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	if !isCompressed(path) {
		return WriteJSON(g, f)
	}
	zw := gzip.NewWriter(f)
	if err := WriteJSON(g, zw); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("gzip %s: %w", path, err)
	}
	return nil
}

func encodeValues[T comparable](p sparse[T], encode func(T) (json.RawMessage, error)) (property, error) {
	var (
		out property
		err error
	)
	if out.NodeDefault, err = encode(p.NodeDefault()); err != nil {
		return out, err
	}
	if out.EdgeDefault, err = encode(p.EdgeDefault()); err != nil {
		return out, err
	}
	if nodes := p.NonDefaultNodes(); len(nodes) > 0 {
		out.Nodes = make(map[int]json.RawMessage, len(nodes))
		for _, n := range nodes {
			if out.Nodes[int(n)], err = encode(p.NodeValue(n)); err != nil {
				return out, err
			}
		}
	}
	if edges := p.NonDefaultEdges(); len(edges) > 0 {
		out.Edges = make(map[int]json.RawMessage, len(edges))
		for _, e := range edges {
			if out.Edges[int(e)], err = encode(p.EdgeValue(e)); err != nil {
				return out, err
			}
		}
	}
	return out, nil
}

func encodeJSON[T any](v T) (json.RawMessage, error) {
	return json.Marshal(v)
}

func encodeColor(c graph.Color) (json.RawMessage, error) {
	return json.Marshal(FormatColor(c))
}

// FormatColor formats c as "#rrggbbaa".
func FormatColor(c graph.Color) string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseColor parses "#rrggbb" or "#rrggbbaa". A missing alpha is opaque.
func ParseColor(s string) (graph.Color, error) {
	hex, ok := strings.CutPrefix(s, "#")
	if !ok || (len(hex) != 6 && len(hex) != 8) {
		return graph.Color{}, errors.New(errors.ErrCodeInvalidInput, "invalid color %q (want #rrggbb or #rrggbbaa)", s)
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return graph.Color{}, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid color %q", s)
	}
	return graph.Color{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
