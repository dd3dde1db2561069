package component

import (
	"sync"

	"github.com/kbukum/automl/errors"
	"github.com/kbukum/automl/util"
)

// Kind is the capability tag of a registered component.
type Kind string

const (
	// KindTransformer marks components producing a feature output.
	KindTransformer Kind = "transformer"
	// KindEstimator marks terminal components producing predictions.
	KindEstimator Kind = "estimator"
)

// Factory constructs a component from bound parameters.
type Factory func(params Parameters) (Component, error)

// Descriptor identifies a reusable unit of work. Immutable once registered.
type Descriptor struct {
	// Name is the unique registry key.
	Name string
	// Kind tags the component's capability (transformer or estimator).
	Kind Kind
	// ProducesTarget is true for transformers emitting a target output.
	ProducesTarget bool
	// Defaults are the component's declared default parameters.
	Defaults Parameters
	// New constructs the component from merged parameters.
	New Factory
}

// Registry provides named component lookup for graph construction.
type Registry struct {
	mu          sync.RWMutex
	descriptors map[string]Descriptor
}

// NewRegistry creates a new empty Registry.
func NewRegistry() *Registry {
	return &Registry{descriptors: make(map[string]Descriptor)}
}

// Register adds a descriptor to the registry. Duplicate names are rejected.
func (r *Registry) Register(d Descriptor) error {
	if d.Name == "" {
		return errors.MissingField("descriptor.name")
	}
	if d.New == nil {
		return errors.MissingField("descriptor.new")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[d.Name]; exists {
		return errors.Validation("component "+d.Name+" already registered").
			WithDetail("component", d.Name)
	}
	r.descriptors[d.Name] = d
	return nil
}

// Get retrieves a descriptor by name.
func (r *Registry) Get(name string) (Descriptor, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.descriptors[name]
	return d, ok
}

// List returns sorted names of all registered components.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return util.SortedKeys(r.descriptors)
}

// Build constructs a component by name, overlaying params on the
// descriptor's defaults.
func (r *Registry) Build(name string, params Parameters) (Component, error) {
	d, ok := r.Get(name)
	if !ok {
		return nil, errors.ComponentUnknown(name)
	}
	return d.New(Merge(d.Defaults, params))
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// DefaultRegistry returns the registry pre-populated with the built-in
// component library.
func DefaultRegistry() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry()
		for _, d := range builtins() {
			// Registration of the builtin set cannot collide.
			_ = defaultRegistry.Register(d)
		}
	})
	return defaultRegistry
}
