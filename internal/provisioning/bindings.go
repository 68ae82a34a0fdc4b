package provisioning

import (
	"fmt"
	"sync"
)

// Bindings is the run-scoped mapping from logical resource name to the
// handle produced by its step. It is populated monotonically: a name can be
// bound exactly once and never mutated afterwards. The executor owns the
// map; steps only read it and bind their own output name.
//
// Nothing is persisted across runs. Name-based reuse depends entirely on
// provider-side state, not on this map.
type Bindings struct {
	mu      sync.Mutex
	handles map[string]ResourceHandle
	order   []string
}

// NewBindings returns an empty binding set.
func NewBindings() *Bindings {
	return &Bindings{handles: make(map[string]ResourceHandle)}
}

// Bind records the handle under its logical name. Binding a name twice is a
// programming error and is rejected.
func (b *Bindings) Bind(h ResourceHandle) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.handles[h.Name]; ok {
		return fmt.Errorf("logical name %q is already bound", h.Name)
	}
	b.handles[h.Name] = h
	b.order = append(b.order, h.Name)
	return nil
}

// Lookup returns the handle bound under name, if any.
func (b *Bindings) Lookup(name string) (ResourceHandle, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	h, ok := b.handles[name]
	return h, ok
}

// Ordered returns all handles in binding order, for end-of-run reporting.
func (b *Bindings) Ordered() []ResourceHandle {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]ResourceHandle, 0, len(b.order))
	for _, name := range b.order {
		out = append(out, b.handles[name])
	}
	return out
}

// Len returns the number of bound names.
func (b *Bindings) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handles)
}
