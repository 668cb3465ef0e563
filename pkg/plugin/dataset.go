package plugin

import (
	"maps"
	"slices"

	"github.com/matzehuels/pixelgraph/pkg/graph"
)

// DataSet holds the parameter values of one plugin run.
// Values are string, bool, float64, int or graph.Property.
type DataSet map[string]any

// Set stores v under key.
func (ds DataSet) Set(key string, v any) { ds[key] = v }

// Has reports whether key is set.
func (ds DataSet) Has(key string) bool {
	_, ok := ds[key]
	return ok
}

// Keys returns the parameter names, sorted.
func (ds DataSet) Keys() []string { return slices.Sorted(maps.Keys(ds)) }

// String returns the string stored under key.
func (ds DataSet) String(key string) (string, bool) {
	v, ok := ds[key].(string)
	return v, ok
}

// Bool returns the bool stored under key.
func (ds DataSet) Bool(key string) (bool, bool) {
	v, ok := ds[key].(bool)
	return v, ok
}

// Float returns the number stored under key. Integers are converted.
func (ds DataSet) Float(key string) (float64, bool) {
	switch v := ds[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	}
	return 0, false
}

// Int returns the integer stored under key.
func (ds DataSet) Int(key string) (int, bool) {
	v, ok := ds[key].(int)
	return v, ok
}

// Property returns the graph property stored under key.
func (ds DataSet) Property(key string) (graph.Property, bool) {
	v, ok := ds[key].(graph.Property)
	return v, ok && v != nil
}

// Clone returns a shallow copy of ds.
func (ds DataSet) Clone() DataSet { return maps.Clone(ds) }
