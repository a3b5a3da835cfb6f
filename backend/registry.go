package backend

import (
	"sync"

	"github.com/gogpu/imdraw"
)

// Backend name constants.
const (
	// BackendWGPU is the name of the WebGPU backend (cogentcore/webgpu).
	BackendWGPU = "wgpu"
	// BackendGL is the name of the OpenGL 4.1 backend (go-gl/gl).
	BackendGL = "gl"
)

// Factory creates a new renderer instance. Factories typically close
// over the GPU device state the renderer needs; the application
// registers them once its graphics context exists.
type Factory func() (imdraw.RenderBackend, error)

// registry holds registered renderer factories.
var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// Priority order for backend selection (first available wins).
	backendPriority = []string{BackendWGPU, BackendGL}
)

// Register registers a renderer factory with the given name.
// If a factory with the same name is already registered, it is replaced.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = factory
}

// Unregister removes a factory from the registry.
// This is useful for testing.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns a list of registered backend names.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	return names
}

// IsRegistered checks if a backend with the given name is registered.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Get creates a renderer by backend name.
// Returns ErrBackendNotAvailable if no such backend is registered.
func Get(name string) (imdraw.RenderBackend, error) {
	registryMu.RLock()
	factory, ok := factories[name]
	registryMu.RUnlock()

	if !ok {
		return nil, ErrBackendNotAvailable
	}
	return factory()
}

// Default creates the best available renderer based on priority:
// wgpu before gl, then any other registration.
func Default() (imdraw.RenderBackend, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	for _, name := range backendPriority {
		if factory, ok := factories[name]; ok {
			return factory()
		}
	}

	// Fallback: first available
	for _, factory := range factories {
		return factory()
	}

	return nil, ErrBackendNotAvailable
}
