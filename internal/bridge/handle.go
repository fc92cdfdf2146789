package bridge

import (
	"runtime"
	"sync"

	"github.com/braid-ml/braid/internal/engine"
)

// tensorHandle wraps a tensor with once-only destruction.
type tensorHandle struct {
	t    *engine.Tensor
	once sync.Once
}

func (h *tensorHandle) destroy() {
	h.once.Do(func() {
		if h.t != nil {
			h.t.Destroy()
			h.t = nil
		}
	})
}

// Handle is a moveable owner of a tensor. The tensor's deallocation
// callback runs exactly once: on Destroy, on transfer of ownership out
// via Release, or as a garbage-collection backstop if the handle is
// dropped without either.
type Handle struct {
	handle *tensorHandle
}

// NewHandle takes ownership of a tensor. A nil tensor produces a null
// handle, the "no value" representation.
func NewHandle(t *engine.Tensor) *Handle {
	h := &Handle{handle: &tensorHandle{t: t}}
	runtime.AddCleanup(h, func(th *tensorHandle) {
		th.destroy()
	}, h.handle)
	return h
}

// IsNull reports whether the handle carries no tensor.
func (h *Handle) IsNull() bool {
	return h.handle.t == nil
}

// Tensor returns the owned tensor without transferring ownership.
// Nil for a null handle.
func (h *Handle) Tensor() *engine.Tensor {
	return h.handle.t
}

// Release transfers ownership of the tensor to the caller, who must
// arrange for exactly one Destroy. The handle becomes null.
func (h *Handle) Release() *engine.Tensor {
	t := h.handle.t
	h.handle.t = nil
	return t
}

// Destroy destroys the owned tensor. Safe to call more than once and
// on a null handle.
func (h *Handle) Destroy() {
	h.handle.destroy()
}
