package field

import (
	"fmt"
	"sort"
)

// Registry maps handler names to field type handlers. It is read only once built
// and safe for concurrent use.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry registers handlers by name.
func NewRegistry(handlers ...Handler) (*Registry, error) {
	r := &Registry{handlers: make(map[string]Handler, len(handlers))}

	for _, h := range handlers {
		if _, ok := r.handlers[h.Name()]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateHandler, h.Name())
		}

		r.handlers[h.Name()] = h
	}

	return r, nil
}

// Get returns the handler registered under name.
func (r *Registry) Get(name string) (Handler, error) {
	h, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHandler, name)
	}

	return h, nil
}

// Descriptor pairs a handler name with its Info.
type Descriptor struct {
	Handler string
	Info
}

// List returns the descriptors of all visible field types sorted by name.
func (r *Registry) List() []Descriptor {
	out := make([]Descriptor, 0, len(r.handlers))

	for name, h := range r.handlers {
		info := h.Info()
		if info.Hidden {
			continue
		}

		out = append(out, Descriptor{Handler: name, Info: info})
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})

	return out
}
