package cube

import "sync/atomic"

// Handle publishes the current root of an octree to concurrent readers.
// Edits build a new tree off to the side and swing the handle with a single
// pointer store; readers always observe a fully built tree.
type Handle struct {
	root atomic.Pointer[Cube]
}

// NewHandle returns a handle holding the given root.
func NewHandle(root *Cube) *Handle {
	h := &Handle{}
	h.root.Store(root)
	return h
}

// Load returns the current root.
func (h *Handle) Load() *Cube {
	return h.root.Load()
}

// Store publishes a new root.
func (h *Handle) Store(root *Cube) {
	h.root.Store(root)
}

// Edit applies fn to the current root and publishes the result. If the
// handle changed concurrently the edit is retried against the new root.
func (h *Handle) Edit(fn func(*Cube) *Cube) *Cube {
	for {
		old := h.root.Load()
		next := fn(old)
		if h.root.CompareAndSwap(old, next) {
			return next
		}
	}
}
