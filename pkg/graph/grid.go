package graph

import (
	"fmt"
	"math"

	"github.com/matzehuels/pixelgraph/pkg/errors"
)

// Dims are the dimensions of the image behind a grid graph.
type Dims struct {
	Width, Height, Depth int
}

// Len returns the number of pixels.
func (d Dims) Len() int { return d.Width * d.Height * d.Depth }

// SliceLen returns the number of pixels in one z slice.
func (d Dims) SliceLen() int { return d.Width * d.Height }

// Index returns the node of pixel (x, y, z).
func (d Dims) Index(x, y, z int) Node { return Node(x + d.Width*(y+d.Height*z)) }

// Position returns the pixel coordinates of n.
func (d Dims) Position(n Node) (x, y, z int) {
	i := int(n)
	return i % d.Width, (i / d.Width) % d.Height, i / d.SliceLen()
}

// String formats the dimensions as WxHxD.
func (d Dims) String() string { return fmt.Sprintf("%dx%dx%d", d.Width, d.Height, d.Depth) }

// NeighborhoodType selects the distance used to connect pixels.
type NeighborhoodType string

// Neighborhood types.
const (
	// Circular connects pixels within a Euclidean distance.
	Circular NeighborhoodType = "Circular"
	// Square connects pixels within a Chebyshev distance.
	Square NeighborhoodType = "Square"
)

// Neighborhood controls which pixels of a grid are connected by edges.
// A zero Radius produces a graph without edges.
type Neighborhood struct {
	Type   NeighborhoodType
	Radius float64
}

// NewGrid creates a grid graph with one node per pixel.
func NewGrid(dims Dims, nb Neighborhood) (*Graph, error) {
	g := New()
	if err := BuildGrid(g, dims, nb); err != nil {
		return nil, err
	}
	return g, nil
}

// BuildGrid fills the empty graph g with one node per pixel of dims, in
// raster order, and connects every pair of pixels within nb once. Edges
// always point from the lower to the higher node index.
func BuildGrid(g *Graph, dims Dims, nb Neighborhood) error {
	if g.NodeCount() != 0 {
		return errors.New(errors.ErrCodeInvalidGraph, "grid must be built on an empty graph")
	}
	if dims.Width <= 0 || dims.Height <= 0 || dims.Depth <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "invalid grid dimensions %s", dims)
	}
	if nb.Radius < 0 || math.IsNaN(nb.Radius) {
		return errors.New(errors.ErrCodeInvalidInput, "neighborhood radius must be >= 0, got %v", nb.Radius)
	}
	if nb.Type == "" {
		nb.Type = Circular
	}
	if nb.Type != Circular && nb.Type != Square {
		return errors.New(errors.ErrCodeInvalidInput, "unknown neighborhood type %q", nb.Type)
	}

	g.AddNodes(dims.Len())
	g.SetAttribute(AttrWidth, dims.Width)
	g.SetAttribute(AttrHeight, dims.Height)
	g.SetAttribute(AttrDepth, dims.Depth)

	offsets := forwardOffsets(nb)
	if len(offsets) == 0 {
		return nil
	}
	for z := 0; z < dims.Depth; z++ {
		for y := 0; y < dims.Height; y++ {
			for x := 0; x < dims.Width; x++ {
				src := dims.Index(x, y, z)
				for _, o := range offsets {
					nx, ny, nz := x+o[0], y+o[1], z+o[2]
					if nx < 0 || nx >= dims.Width || ny < 0 || ny >= dims.Height || nz >= dims.Depth {
						continue
					}
					g.edges = append(g.edges, [2]Node{src, dims.Index(nx, ny, nz)})
				}
			}
		}
	}
	return nil
}

// forwardOffsets lists the (dx, dy, dz) offsets within nb that lead to a
// higher raster index, so each neighbor pair is visited once.
func forwardOffsets(nb Neighborhood) [][3]int {
	r := int(math.Floor(nb.Radius + 1e-9))
	var out [][3]int
	for dz := 0; dz <= r; dz++ {
		for dy := -r; dy <= r; dy++ {
			for dx := -r; dx <= r; dx++ {
				if dz == 0 && (dy < 0 || (dy == 0 && dx <= 0)) {
					continue
				}
				if !within(nb, dx, dy, dz) {
					continue
				}
				out = append(out, [3]int{dx, dy, dz})
			}
		}
	}
	return out
}

func within(nb Neighborhood, dx, dy, dz int) bool {
	if nb.Type == Square {
		return true
	}
	d2 := float64(dx*dx + dy*dy + dz*dz)
	return d2 <= nb.Radius*nb.Radius+1e-9
}
