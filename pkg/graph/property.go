package graph

import (
	"image/color"
	"maps"
	"slices"
)

// PropertyType names the value type of a property.
type PropertyType string

// Property value types.
const (
	TypeBoolean PropertyType = "bool"
	TypeColor   PropertyType = "color"
	TypeInteger PropertyType = "int"
	TypeDouble  PropertyType = "double"
)

// Color is the RGBA value stored by a [ColorProperty].
type Color = color.RGBA

// Property is implemented by every typed property.
type Property interface {
	// Name returns the name the property is registered under.
	Name() string
	// Type returns the value type of the property.
	Type() PropertyType
}

// values is the sparse storage shared by all property types.
// Elements holding the default value are not stored.
type values[T comparable] struct {
	name        string
	typ         PropertyType
	nodeDefault T
	edgeDefault T
	nodes       map[Node]T
	edges       map[Edge]T
}

func newValues[T comparable](name string, typ PropertyType) values[T] {
	return values[T]{
		name:  name,
		typ:   typ,
		nodes: make(map[Node]T),
		edges: make(map[Edge]T),
	}
}

// Name returns the property name.
func (p *values[T]) Name() string { return p.name }

// Type returns the property value type.
func (p *values[T]) Type() PropertyType { return p.typ }

// NodeValue returns the value of n, or the node default when unset.
func (p *values[T]) NodeValue(n Node) T {
	if v, ok := p.nodes[n]; ok {
		return v
	}
	return p.nodeDefault
}

// SetNodeValue sets the value of n.
func (p *values[T]) SetNodeValue(n Node, v T) {
	if v == p.nodeDefault {
		delete(p.nodes, n)
		return
	}
	p.nodes[n] = v
}

// SetAllNodeValue resets every node to v, which becomes the node default.
func (p *values[T]) SetAllNodeValue(v T) {
	p.nodeDefault = v
	clear(p.nodes)
}

// NodeDefault returns the value of nodes that were never set.
func (p *values[T]) NodeDefault() T { return p.nodeDefault }

// EdgeValue returns the value of e, or the edge default when unset.
func (p *values[T]) EdgeValue(e Edge) T {
	if v, ok := p.edges[e]; ok {
		return v
	}
	return p.edgeDefault
}

// SetEdgeValue sets the value of e.
func (p *values[T]) SetEdgeValue(e Edge, v T) {
	if v == p.edgeDefault {
		delete(p.edges, e)
		return
	}
	p.edges[e] = v
}

// SetAllEdgeValue resets every edge to v, which becomes the edge default.
func (p *values[T]) SetAllEdgeValue(v T) {
	p.edgeDefault = v
	clear(p.edges)
}

// EdgeDefault returns the value of edges that were never set.
func (p *values[T]) EdgeDefault() T { return p.edgeDefault }

// NonDefaultNodes returns the nodes holding a non-default value, sorted.
func (p *values[T]) NonDefaultNodes() []Node {
	return slices.Sorted(maps.Keys(p.nodes))
}

// NonDefaultEdges returns the edges holding a non-default value, sorted.
func (p *values[T]) NonDefaultEdges() []Edge {
	return slices.Sorted(maps.Keys(p.edges))
}

// BooleanProperty maps graph elements to true/false. The selection of an
// interactive view is conventionally stored under "viewSelection".
type BooleanProperty struct{ values[bool] }

// ColorProperty maps graph elements to RGBA colors.
type ColorProperty struct{ values[Color] }

// IntegerProperty maps graph elements to integers.
type IntegerProperty struct{ values[int] }

// DoubleProperty maps graph elements to float64 values.
type DoubleProperty struct{ values[float64] }

// Count returns how many nodes are true.
func (p *BooleanProperty) Count(g *Graph) int {
	if p.nodeDefault {
		return g.NodeCount() - len(p.nodes)
	}
	return len(p.nodes)
}
