package plugin

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
)

// Info describes a plugin.
type Info struct {
	Name    string
	Author  string
	Date    string
	Version string
	Group   string
}

// ParamKind is the value type of a parameter.
type ParamKind int

// Parameter kinds.
const (
	KindString ParamKind = iota
	KindDir
	KindFile
	KindBool
	KindFloat
	KindInt
	KindProperty
	KindChoice
)

var kindNames = map[ParamKind]string{
	KindString:   "string",
	KindDir:      "directory",
	KindFile:     "file",
	KindBool:     "bool",
	KindFloat:    "float",
	KindInt:      "int",
	KindProperty: "property",
	KindChoice:   "choice",
}

// String returns the display name of k.
func (k ParamKind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Parameter declares an input of a plugin.
//
// Default is the textual default value. For KindChoice it lists the choices
// separated by ";" and the first one is the default. For KindProperty it
// names a graph property that is used when the graph has one.
type Parameter struct {
	Name    string
	Help    string
	Default string
	Kind    ParamKind
}

// Context carries what a plugin run needs besides the Go context.
type Context struct {
	Graph    *graph.Graph
	Params   DataSet
	Progress Progress
	Logger   *log.Logger
}

// Plugin is a named algorithm applied to a graph.
type Plugin interface {
	Info() Info
	Parameters() []Parameter
	Run(ctx context.Context, pc *Context) error
}

// MissingParameter reports a parameter that is absent from the data set or
// holds a value of the wrong type.
func MissingParameter(name string) error {
	return errors.New(errors.ErrCodeInvalidParameter, "No %q property provided.", name)
}

// InvalidParameter reports a parameter check failure.
func InvalidParameter(format string, args ...any) error {
	return errors.New(errors.ErrCodeInvalidParameter, format, args...)
}
