package graph

import (
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/pixelgraph/pkg/errors"
)

// Attribute keys describing the image a grid graph was built from.
const (
	AttrWidth  = "width"
	AttrHeight = "height"
	AttrDepth  = "depth"
)

// Node identifies a vertex by its insertion index.
type Node int

// Edge identifies an edge by its insertion index.
type Edge int

// Metadata stores graph-level attributes.
type Metadata map[string]any

// Graph is an ordered collection of nodes and edges carrying attributes and
// named properties.
//
// The zero value is not usable - use [New] to create a Graph.
type Graph struct {
	nodes int
	edges [][2]Node
	attrs Metadata
	props map[string]Property
}

// New creates an empty graph.
func New() *Graph {
	return &Graph{
		attrs: Metadata{},
		props: make(map[string]Property),
	}
}

// AddNode appends a node and returns it.
func (g *Graph) AddNode() Node {
	g.nodes++
	return Node(g.nodes - 1)
}

// AddNodes appends n nodes.
func (g *Graph) AddNodes(n int) {
	if n > 0 {
		g.nodes += n
	}
}

// AddEdge appends an edge from source to target.
// Both endpoints must already exist.
func (g *Graph) AddEdge(source, target Node) (Edge, error) {
	if !g.HasNode(source) {
		return 0, errors.New(errors.ErrCodeInvalidGraph, "unknown source node %d", source)
	}
	if !g.HasNode(target) {
		return 0, errors.New(errors.ErrCodeInvalidGraph, "unknown target node %d", target)
	}
	g.edges = append(g.edges, [2]Node{source, target})
	return Edge(len(g.edges) - 1), nil
}

// HasNode reports whether n belongs to the graph.
func (g *Graph) HasNode(n Node) bool { return n >= 0 && int(n) < g.nodes }

// HasEdge reports whether e belongs to the graph.
func (g *Graph) HasEdge(e Edge) bool { return e >= 0 && int(e) < len(g.edges) }

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int { return g.nodes }

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int { return len(g.edges) }

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []Node {
	out := make([]Node, g.nodes)
	for i := range out {
		out[i] = Node(i)
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []Edge {
	out := make([]Edge, len(g.edges))
	for i := range out {
		out[i] = Edge(i)
	}
	return out
}

// Ends returns the source and target of e.
// It panics if e does not belong to the graph.
func (g *Graph) Ends(e Edge) (source, target Node) {
	ends := g.edges[e]
	return ends[0], ends[1]
}

// SetAttribute stores a graph-level attribute.
func (g *Graph) SetAttribute(key string, v any) { g.attrs[key] = v }

// Attribute returns a graph-level attribute.
func (g *Graph) Attribute(key string) (any, bool) {
	v, ok := g.attrs[key]
	return v, ok
}

// Attributes returns a copy of all graph-level attributes.
func (g *Graph) Attributes() Metadata { return maps.Clone(g.attrs) }

// IntAttribute returns an integer attribute. Integral floats are accepted
// because decoded JSON numbers arrive as float64.
func (g *Graph) IntAttribute(key string) (int, bool) {
	switch v := g.attrs[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) {
			return int(v), true
		}
	}
	return 0, false
}

// Dimensions returns the image dimensions stored on a grid graph.
func (g *Graph) Dimensions() (Dims, error) {
	w, okW := g.IntAttribute(AttrWidth)
	h, okH := g.IntAttribute(AttrHeight)
	d, okD := g.IntAttribute(AttrDepth)
	if !okW || !okH || !okD {
		return Dims{}, errors.New(errors.ErrCodeInvalidGraph,
			"Unable to get the image dimensions from the graph. Make sure it has been created by the %q import plugin", "Import image")
	}
	dims := Dims{Width: w, Height: h, Depth: d}
	if w <= 0 || h <= 0 || d <= 0 {
		return Dims{}, errors.New(errors.ErrCodeInvalidGraph, "invalid image dimensions %s", dims)
	}
	if dims.Len() != g.nodes {
		return Dims{}, errors.New(errors.ErrCodeInvalidGraph,
			"image dimensions %s do not match the node count %d", dims, g.nodes)
	}
	return dims, nil
}

// Property returns the property registered under name.
func (g *Graph) Property(name string) (Property, bool) {
	p, ok := g.props[name]
	return p, ok
}

// Properties returns all properties sorted by name.
func (g *Graph) Properties() []Property {
	out := make([]Property, 0, len(g.props))
	for _, name := range slices.Sorted(maps.Keys(g.props)) {
		out = append(out, g.props[name])
	}
	return out
}

// DeleteProperty removes the property registered under name, if any.
func (g *Graph) DeleteProperty(name string) { delete(g.props, name) }

// BooleanProperty returns the boolean property called name, creating an
// empty one (all false) when the graph has none.
func (g *Graph) BooleanProperty(name string) (*BooleanProperty, error) {
	return lookup(g, name, TypeBoolean, func() *BooleanProperty {
		return &BooleanProperty{newValues[bool](name, TypeBoolean)}
	})
}

// ColorProperty returns the color property called name, creating an empty
// one when the graph has none.
func (g *Graph) ColorProperty(name string) (*ColorProperty, error) {
	return lookup(g, name, TypeColor, func() *ColorProperty {
		return &ColorProperty{newValues[Color](name, TypeColor)}
	})
}

// IntegerProperty returns the integer property called name, creating an
// empty one when the graph has none.
func (g *Graph) IntegerProperty(name string) (*IntegerProperty, error) {
	return lookup(g, name, TypeInteger, func() *IntegerProperty {
		return &IntegerProperty{newValues[int](name, TypeInteger)}
	})
}

// DoubleProperty returns the double property called name, creating an
// empty one when the graph has none.
func (g *Graph) DoubleProperty(name string) (*DoubleProperty, error) {
	return lookup(g, name, TypeDouble, func() *DoubleProperty {
		return &DoubleProperty{newValues[float64](name, TypeDouble)}
	})
}

func lookup[P Property](g *Graph, name string, typ PropertyType, create func() P) (P, error) {
	var zero P
	if err := errors.ValidatePropertyName(name); err != nil {
		return zero, err
	}
	if existing, ok := g.props[name]; ok {
		p, ok := existing.(P)
		if !ok {
			return zero, errors.New(errors.ErrCodeInvalidProperty,
				"property %q has type %s, not %s", name, existing.Type(), typ)
		}
		return p, nil
	}
	p := create()
	g.props[name] = p
	return p, nil
}
