package engine

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// buffer is the reference-counted storage behind a Tensor. The free
// callback supplied at creation runs exactly once, when the last
// reference is destroyed; it is the only channel back into whatever
// allocator produced the data.
type buffer struct {
	data []byte
	free func()
	refs atomic.Int32
	mu   sync.Mutex
	gpu  *deviceBuffer // non-nil while staged on a WebGPU device
}

func (b *buffer) addRef() {
	b.refs.Add(1)
}

func (b *buffer) release() {
	if b.refs.Add(-1) == 0 {
		b.mu.Lock()
		defer b.mu.Unlock()
		if b.gpu != nil {
			b.gpu.release()
			b.gpu = nil
		}
		if b.free != nil {
			b.free()
			b.free = nil
		}
		b.data = nil
	}
}

func (b *buffer) isUnique() bool {
	return b.refs.Load() == 1
}

// Tensor is the engine's opaque data object: a type tag, a dimension
// vector, and a contiguous byte buffer with a deallocation callback.
// Each Retain must be paired with exactly one Destroy; the callback
// runs when the last reference drops, possibly on another goroutine.
type Tensor struct {
	dtype    TypeTag
	dims     []int
	byteSize int
	buf      *buffer
}

// NewTensor creates a tensor over a raw buffer. Ownership of data
// transfers to the tensor: free, if non-nil, is invoked exactly once
// when the tensor's last reference is destroyed, and the caller must
// not touch the buffer through any other path afterwards.
func NewTensor(dtype TypeTag, dims []int, data []byte, free func()) *Tensor {
	buf := &buffer{data: data, free: free}
	buf.refs.Store(1)
	return &Tensor{
		dtype:    dtype,
		dims:     append([]int(nil), dims...),
		byteSize: len(data),
		buf:      buf,
	}
}

// TypeTag returns the tensor's element type.
func (t *Tensor) TypeTag() TypeTag {
	return t.dtype
}

// NumDims returns the tensor's rank.
func (t *Tensor) NumDims() int {
	return len(t.dims)
}

// Dim returns the size of dimension i.
func (t *Tensor) Dim(i int) int {
	return t.dims[i]
}

// Dims returns a copy of the dimension vector.
func (t *Tensor) Dims() []int {
	return append([]int(nil), t.dims...)
}

// ByteSize returns the size of the tensor's buffer in bytes.
func (t *Tensor) ByteSize() int {
	return t.byteSize
}

// Data returns the tensor's host-resident bytes.
// Panics while the tensor is staged on a device; call Realize first.
func (t *Tensor) Data() []byte {
	t.buf.mu.Lock()
	defer t.buf.mu.Unlock()
	if t.buf.gpu != nil {
		panic("engine: Data on a device-resident tensor")
	}
	return t.buf.data
}

// Retain adds a reference, sharing the buffer.
func (t *Tensor) Retain() *Tensor {
	t.buf.addRef()
	return &Tensor{
		dtype:    t.dtype,
		dims:     append([]int(nil), t.dims...),
		byteSize: t.byteSize,
		buf:      t.buf,
	}
}

// Destroy drops one reference. The deallocation callback runs when the
// last reference goes; calling any method after Destroy on the final
// reference is a use-after-free.
func (t *Tensor) Destroy() {
	t.buf.release()
}

// MaybeMove attempts to take exclusive ownership of the tensor's
// buffer. It returns the tensor itself when the buffer has a single
// reference and is host-resident, and nil when the engine refuses
// (still shared, or staged on a device). On refusal the caller keeps
// its reference and must fall back to copying.
func (t *Tensor) MaybeMove() *Tensor {
	t.buf.mu.Lock()
	defer t.buf.mu.Unlock()
	if t.buf.gpu != nil {
		return nil
	}
	if !t.buf.isUnique() {
		return nil
	}
	return t
}

// Upload stages the tensor's bytes in a device buffer and drops the
// host copy. Only an exclusively owned, host-resident tensor can move.
func (t *Tensor) Upload(dev *Device) error {
	t.buf.mu.Lock()
	defer t.buf.mu.Unlock()
	if t.buf.gpu != nil {
		return fmt.Errorf("tensor already device-resident")
	}
	if !t.buf.isUnique() {
		return fmt.Errorf("cannot upload a shared tensor")
	}
	gpu, err := dev.upload(t.buf.data)
	if err != nil {
		return err
	}
	t.buf.gpu = gpu
	t.buf.data = nil
	Logger().Debug("tensor uploaded to device")
	return nil
}

// Realize transfers device-resident bytes back to host memory.
// No-op for host-resident tensors.
func (t *Tensor) Realize() error {
	t.buf.mu.Lock()
	defer t.buf.mu.Unlock()
	if t.buf.gpu == nil {
		return nil
	}
	data, err := t.buf.gpu.read()
	if err != nil {
		return fmt.Errorf("device readback failed: %w", err)
	}
	if len(data) != t.byteSize {
		return fmt.Errorf("device readback returned %d bytes, want %d", len(data), t.byteSize)
	}
	t.buf.gpu.release()
	t.buf.gpu = nil
	t.buf.data = data
	Logger().Debug("tensor realized from device")
	return nil
}

// OnDevice reports whether the tensor's bytes currently live on a
// WebGPU device.
func (t *Tensor) OnDevice() bool {
	t.buf.mu.Lock()
	defer t.buf.mu.Unlock()
	return t.buf.gpu != nil
}
