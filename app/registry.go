package app

// Registry is a minimal, string-keyed store for whatever per-widget state
// an App wants to keep between frames. The teacher's full declarative
// component/layout/widget framework is explicitly out of this engine's
// scope (spec.md §1's Non-goals); Registry is the narrow seam
// app_init/app_handle_input_event/app_render actually need (spec.md §6.1)
// without reintroducing that framework.
type Registry struct {
	values map[string]any
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{values: make(map[string]any)} }

// Get returns the value stored under key, and whether it was present.
func (r *Registry) Get(key string) (any, bool) {
	v, ok := r.values[key]
	return v, ok
}

// Set stores value under key.
func (r *Registry) Set(key string, value any) { r.values[key] = value }

// Delete removes key.
func (r *Registry) Delete(key string) { delete(r.values, key) }

// FocusManager tracks which widget id currently owns keyboard focus and a
// caller-defined tab order to cycle through.
type FocusManager struct {
	order   []string
	current int
}

// NewFocusManager returns a manager with the given tab order; the first id
// starts focused.
func NewFocusManager(order []string) *FocusManager {
	return &FocusManager{order: order}
}

// Current returns the focused id, or "" if the order is empty.
func (f *FocusManager) Current() string {
	if len(f.order) == 0 {
		return ""
	}
	return f.order[f.current]
}

// FocusNext cycles focus forward (Tab).
func (f *FocusManager) FocusNext() {
	if len(f.order) == 0 {
		return
	}
	f.current = (f.current + 1) % len(f.order)
}

// FocusPrev cycles focus backward (Shift+Tab).
func (f *FocusManager) FocusPrev() {
	if len(f.order) == 0 {
		return
	}
	f.current = (f.current - 1 + len(f.order)) % len(f.order)
}

// SetOrder replaces the tab order; if the current index falls outside the
// new order, focus moves back to the first id.
func (f *FocusManager) SetOrder(order []string) {
	f.order = order
	if f.current >= len(order) {
		f.current = 0
	}
}
