package plugin

import (
	"context"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/pixelgraph/pkg/errors"
	"github.com/matzehuels/pixelgraph/pkg/graph"
	"github.com/matzehuels/pixelgraph/pkg/observability"
)

// Registry maps plugin names to plugins. It is safe for concurrent use.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{plugins: make(map[string]Plugin)}
}

// Default is the process-wide registry.
var Default = NewRegistry()

// Register adds p under its Info().Name.
func (r *Registry) Register(p Plugin) error {
	name := p.Info().Name
	if name == "" {
		return errors.New(errors.ErrCodeInvalidInput, "plugin name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.plugins[name]; exists {
		return errors.New(errors.ErrCodeInvalidInput, "plugin %q already registered", name)
	}
	r.plugins[name] = p
	return nil
}

// MustRegister is like Register but panics on error.
// It is meant for registration from init functions.
func (r *Registry) MustRegister(p Plugin) {
	if err := r.Register(p); err != nil {
		panic(err)
	}
}

// Lookup returns the plugin called name.
func (r *Registry) Lookup(name string) (Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plugins[name]
	if !ok {
		return nil, errors.New(errors.ErrCodePluginNotFound, "no plugin named %q", name)
	}
	return p, nil
}

// Names returns the registered plugin names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.plugins))
}

// DefaultParameters builds a fresh data set holding the declared defaults of
// the plugin called name. Property parameters are resolved against g and
// left unset when g has no property of the default name.
func (r *Registry) DefaultParameters(name string, g *graph.Graph) (DataSet, error) {
	p, err := r.Lookup(name)
	if err != nil {
		return nil, err
	}

	ds := DataSet{}
	for _, param := range p.Parameters() {
		v, ok, err := defaultValue(param, g)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "plugin %q: parameter %q", name, param.Name)
		}
		if ok {
			ds.Set(param.Name, v)
		}
	}
	return ds, nil
}

func defaultValue(param Parameter, g *graph.Graph) (any, bool, error) {
	switch param.Kind {
	case KindString, KindDir, KindFile:
		return param.Default, true, nil
	case KindChoice:
		first, _, _ := strings.Cut(param.Default, ";")
		return first, true, nil
	case KindBool:
		v, err := strconv.ParseBool(param.Default)
		return v, err == nil, err
	case KindFloat:
		v, err := strconv.ParseFloat(param.Default, 64)
		return v, err == nil, err
	case KindInt:
		v, err := strconv.Atoi(param.Default)
		return v, err == nil, err
	case KindProperty:
		if g == nil || param.Default == "" {
			return nil, false, nil
		}
		prop, ok := g.Property(param.Default)
		return prop, ok, nil
	default:
		return nil, false, errors.New(errors.ErrCodeInternal, "unknown parameter kind %d", param.Kind)
	}
}

// Option configures a plugin run.
type Option func(*runOptions)

type runOptions struct {
	progress Progress
	logger   *log.Logger
}

// WithProgress routes progress reports to p.
func WithProgress(p Progress) Option {
	return func(o *runOptions) {
		if p != nil {
			o.progress = p
		}
	}
}

// WithLogger sets the logger handed to the plugin.
func WithLogger(l *log.Logger) Option {
	return func(o *runOptions) {
		if l != nil {
			o.logger = l
		}
	}
}

// Apply runs the plugin called name on g with the parameters in ds.
// A nil error means success; otherwise the error describes the failure.
func (r *Registry) Apply(ctx context.Context, g *graph.Graph, name string, ds DataSet, opts ...Option) error {
	p, err := r.Lookup(name)
	if err != nil {
		return err
	}
	if g == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no graph provided")
	}
	if ds == nil {
		return InvalidParameter("No dataset provided.")
	}

	o := runOptions{progress: NopProgress{}, logger: log.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	o.logger.Debug("Applying plugin", "plugin", name, "params", ds.Keys())
	observability.Plugin().OnApplyStart(ctx, name)
	start := time.Now()

	err = p.Run(ctx, &Context{Graph: g, Params: ds, Progress: o.progress, Logger: o.logger})

	elapsed := time.Since(start)
	observability.Plugin().OnApplyComplete(ctx, name, elapsed, err)
	if err != nil {
		o.logger.Debug("Plugin failed", "plugin", name, "err", err)
		return err
	}
	o.logger.Debug("Plugin done", "plugin", name, "elapsed", elapsed.Round(time.Millisecond))
	return nil
}

// Register adds p to the Default registry.
func Register(p Plugin) error { return Default.Register(p) }

// Lookup returns the plugin called name from the Default registry.
func Lookup(name string) (Plugin, error) { return Default.Lookup(name) }

// Names returns the plugin names of the Default registry.
func Names() []string { return Default.Names() }

// DefaultParameters builds default parameters from the Default registry.
func DefaultParameters(name string, g *graph.Graph) (DataSet, error) {
	return Default.DefaultParameters(name, g)
}

// Apply runs a plugin of the Default registry.
func Apply(ctx context.Context, g *graph.Graph, name string, ds DataSet, opts ...Option) error {
	return Default.Apply(ctx, g, name, ds, opts...)
}
