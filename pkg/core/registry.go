package core

import (
	"sync"

	"github.com/XiaoConstantine/adapt-go/pkg/errors"
)

// ModeFactory builds a fresh ModeSpec instance.
type ModeFactory func() ModeSpec

// ModeRegistry maintains named learning-mode specifications so callers can
// construct modes by name.
type ModeRegistry struct {
	mu        sync.RWMutex
	factories map[string]ModeFactory
}

// NewModeRegistry creates an empty mode registry.
func NewModeRegistry() *ModeRegistry {
	return &ModeRegistry{
		factories: make(map[string]ModeFactory),
	}
}

// Register adds a mode factory under a name. Registering an existing name
// replaces the previous factory.
func (r *ModeRegistry) Register(name string, factory ModeFactory) error {
	if name == "" {
		return errors.New(errors.InvalidInput, "mode name cannot be empty")
	}
	if factory == nil {
		return errors.New(errors.InvalidInput, "mode factory cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.factories[name] = factory
	return nil
}

// Create instantiates the named mode specification.
func (r *ModeRegistry) Create(name string) (ModeSpec, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()

	if !exists {
		return ModeSpec{}, errors.WithFields(
			errors.New(errors.ModeNotFound, "mode not registered"),
			errors.Fields{"mode": name})
	}
	return factory(), nil
}

// List returns all registered mode names.
func (r *ModeRegistry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	return names
}

// Global registry instance.
var (
	globalRegistry *ModeRegistry
	registryOnce   sync.Once
)

// GetModeRegistry returns the global mode registry.
func GetModeRegistry() *ModeRegistry {
	registryOnce.Do(func() {
		globalRegistry = NewModeRegistry()
	})
	return globalRegistry
}

// RegisterMode registers a mode factory on the global registry.
func RegisterMode(name string, factory ModeFactory) error {
	return GetModeRegistry().Register(name, factory)
}
