// Package backend provides a name-keyed registry of renderer factories.
//
// The registry lets applications pick a rendering half at runtime
// without linking against every adapter. Concrete adapters live in the
// sub-packages backend/wgpu and backend/gl; because both need live GPU
// state at construction time, the application registers a closure once
// its graphics context exists:
//
//	backend.Register(backend.BackendWGPU, func() (imdraw.RenderBackend, error) {
//		return wgpu.New(device, queue, wgpu.Config{Format: format}, atlas)
//	})
//
// # Backend Selection
//
// Use Default() for the best available renderer (wgpu before gl), or
// Get() to request a specific one by name:
//
//	rend, err := backend.Get(backend.BackendGL)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer rend.Close()
package backend
