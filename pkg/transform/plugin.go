package transform

import (
	"errors"
	"fmt"
	"sync"
)

var (
	// ErrProviderRegistered is returned when registering a provider name twice.
	ErrProviderRegistered = errors.New("provider already registered")
	// ErrInvalidProvider is returned for providers without a name.
	ErrInvalidProvider = errors.New("invalid provider")
)

var plugins struct {
	sync.Mutex
	providers []Provider
	registry  *Registry
}

// Register adds a provider to the process-wide plugin list used by
// Default and by every registry built without ExcludePlugins. Register
// must not be called while documents are being parsed.
func Register(p Provider) error {
	if p.Name == "" || p.Name == BuiltinProvider {
		return fmt.Errorf("%w: name %q", ErrInvalidProvider, p.Name)
	}
	plugins.Lock()
	defer plugins.Unlock()
	for _, existing := range plugins.providers {
		if existing.Name == p.Name {
			return fmt.Errorf("%w: %s", ErrProviderRegistered, p.Name)
		}
	}
	plugins.providers = append(plugins.providers, p)
	plugins.registry = nil
	return nil
}

// Unregister removes a provider by name and reports whether it was found.
func Unregister(name string) bool {
	plugins.Lock()
	defer plugins.Unlock()
	for i, p := range plugins.providers {
		if p.Name == name {
			plugins.providers = append(plugins.providers[:i:i], plugins.providers[i+1:]...)
			plugins.registry = nil
			return true
		}
	}
	return false
}

// Plugins returns the registered providers in registration order.
func Plugins() []Provider {
	plugins.Lock()
	defer plugins.Unlock()
	return append([]Provider(nil), plugins.providers...)
}

// Default returns the shared registry: the built-in catalogue plus the
// registered plugins, with default options. It is rebuilt on first use
// after Register or Unregister.
func Default() *Registry {
	plugins.Lock()
	r := plugins.registry
	plugins.Unlock()
	if r != nil {
		return r
	}
	// Non-strict construction cannot fail.
	r, _ = NewRegistry(RegistryOpts{})
	plugins.Lock()
	if plugins.registry == nil {
		plugins.registry = r
	}
	r = plugins.registry
	plugins.Unlock()
	return r
}
