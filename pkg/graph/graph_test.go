package graph

import (
	"testing"

	"github.com/matzehuels/pixelgraph/pkg/errors"
)

func TestAddEdge(t *testing.T) {
	g := New()
	a := g.AddNode()
	b := g.AddNode()

	e, err := g.AddEdge(a, b)
	if err != nil {
		t.Fatalf("AddEdge() error = %v", err)
	}
	if s, tg := g.Ends(e); s != a || tg != b {
		t.Errorf("Ends() = (%d, %d), want (%d, %d)", s, tg, a, b)
	}
	if g.NodeCount() != 2 || g.EdgeCount() != 1 {
		t.Errorf("counts = (%d, %d), want (2, 1)", g.NodeCount(), g.EdgeCount())
	}

	if _, err := g.AddEdge(a, Node(7)); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("AddEdge(unknown target) error = %v, want INVALID_GRAPH", err)
	}
	if _, err := g.AddEdge(Node(-1), b); !errors.Is(err, errors.ErrCodeInvalidGraph) {
		t.Errorf("AddEdge(unknown source) error = %v, want INVALID_GRAPH", err)
	}
}

func TestBooleanPropertyCreatesOnce(t *testing.T) {
	g := New()
	g.AddNodes(3)

	p, err := g.BooleanProperty("viewSelection")
	if err != nil {
		t.Fatalf("BooleanProperty() error = %v", err)
	}
	if p.Name() != "viewSelection" || p.Type() != TypeBoolean {
		t.Errorf("got (%q, %s), want (viewSelection, bool)", p.Name(), p.Type())
	}
	p.SetNodeValue(1, true)

	again, err := g.BooleanProperty("viewSelection")
	if err != nil {
		t.Fatalf("BooleanProperty() second call error = %v", err)
	}
	if again != p {
		t.Error("second lookup returned a different property")
	}
	if !again.NodeValue(1) || again.NodeValue(0) {
		t.Error("values not preserved across lookups")
	}
	if got := again.Count(g); got != 1 {
		t.Errorf("Count() = %d, want 1", got)
	}
}

func TestPropertyTypeMismatch(t *testing.T) {
	g := New()
	if _, err := g.DoubleProperty("data"); err != nil {
		t.Fatalf("DoubleProperty() error = %v", err)
	}

	_, err := g.BooleanProperty("data")
	if !errors.Is(err, errors.ErrCodeInvalidProperty) {
		t.Errorf("BooleanProperty(data) error = %v, want INVALID_PROPERTY", err)
	}
}

func TestPropertyEmptyName(t *testing.T) {
	g := New()
	p, err := g.BooleanProperty("")
	if err != nil {
		t.Fatalf("BooleanProperty(\"\") error = %v, want nil", err)
	}
	if got, ok := g.Property(""); !ok || got != Property(p) {
		t.Errorf("Property(\"\") = %v, %v, want the created property", got, ok)
	}
	if _, err := g.ColorProperty(""); !errors.Is(err, errors.ErrCodeInvalidProperty) {
		t.Errorf("ColorProperty(\"\") error = %v, want INVALID_PROPERTY", err)
	}
}

func TestPropertyControlCharacters(t *testing.T) {
	g := New()
	if _, err := g.ColorProperty("sel\x01"); !errors.Is(err, errors.ErrCodeInvalidProperty) {
		t.Errorf("ColorProperty error = %v, want INVALID_PROPERTY", err)
	}
	if len(g.Properties()) != 0 {
		t.Error("invalid lookup registered a property")
	}
}

func TestSparseValues(t *testing.T) {
	g := New()
	g.AddNodes(4)
	p, _ := g.IntegerProperty("label")

	p.SetNodeValue(2, 5)
	p.SetNodeValue(3, 0)
	if got := p.NonDefaultNodes(); len(got) != 1 || got[0] != 2 {
		t.Errorf("NonDefaultNodes() = %v, want [2]", got)
	}

	p.SetAllNodeValue(9)
	if p.NodeValue(2) != 9 || p.NodeDefault() != 9 {
		t.Errorf("after SetAllNodeValue: value = %d, default = %d, want 9", p.NodeValue(2), p.NodeDefault())
	}
	if len(p.NonDefaultNodes()) != 0 {
		t.Error("SetAllNodeValue should clear stored values")
	}

	p.SetEdgeValue(0, 1)
	if p.EdgeValue(0) != 1 || p.EdgeValue(1) != 0 {
		t.Errorf("EdgeValue = (%d, %d), want (1, 0)", p.EdgeValue(0), p.EdgeValue(1))
	}
}

func TestBooleanCountWithTrueDefault(t *testing.T) {
	g := New()
	g.AddNodes(5)
	p, _ := g.BooleanProperty("mask")
	p.SetAllNodeValue(true)
	p.SetNodeValue(0, false)

	if got := p.Count(g); got != 4 {
		t.Errorf("Count() = %d, want 4", got)
	}
}

func TestPropertiesSorted(t *testing.T) {
	g := New()
	g.BooleanProperty("viewSelection")
	g.ColorProperty("data")
	g.DoubleProperty("intensity")

	var names []string
	for _, p := range g.Properties() {
		names = append(names, p.Name())
	}
	want := []string{"data", "intensity", "viewSelection"}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("Properties() = %v, want %v", names, want)
		}
	}

	g.DeleteProperty("data")
	if _, ok := g.Property("data"); ok {
		t.Error("DeleteProperty did not remove the property")
	}
}

func TestIntAttribute(t *testing.T) {
	g := New()
	g.SetAttribute("a", 3)
	g.SetAttribute("b", float64(4))
	g.SetAttribute("c", 4.5)
	g.SetAttribute("d", "5")

	tests := []struct {
		key  string
		want int
		ok   bool
	}{
		{"a", 3, true},
		{"b", 4, true},
		{"c", 0, false},
		{"d", 0, false},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			got, ok := g.IntAttribute(tt.key)
			if got != tt.want || ok != tt.ok {
				t.Errorf("IntAttribute(%q) = (%d, %v), want (%d, %v)", tt.key, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestDimensions(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		g := New()
		g.AddNodes(4)
		if _, err := g.Dimensions(); !errors.Is(err, errors.ErrCodeInvalidGraph) {
			t.Errorf("Dimensions() error = %v, want INVALID_GRAPH", err)
		}
	})

	t.Run("node count mismatch", func(t *testing.T) {
		g := New()
		g.AddNodes(3)
		g.SetAttribute(AttrWidth, 2)
		g.SetAttribute(AttrHeight, 2)
		g.SetAttribute(AttrDepth, 1)
		if _, err := g.Dimensions(); err == nil {
			t.Error("Dimensions() should reject a mismatched node count")
		}
	})

	t.Run("ok", func(t *testing.T) {
		g := New()
		g.AddNodes(12)
		g.SetAttribute(AttrWidth, 3)
		g.SetAttribute(AttrHeight, 2)
		g.SetAttribute(AttrDepth, 2)
		d, err := g.Dimensions()
		if err != nil {
			t.Fatalf("Dimensions() error = %v", err)
		}
		if d != (Dims{3, 2, 2}) {
			t.Errorf("Dimensions() = %v, want 3x2x2", d)
		}
	})
}
