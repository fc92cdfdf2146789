package ndarray

import (
	"fmt"
	"sync"
	"sync/atomic"
	"unsafe"
)

// arrayBuffer is a reference-counted storage block shared between array
// views. When the count reaches zero the optional free callback runs
// exactly once; this is how foreign buffers (engine tensors aliased into
// host arrays) are handed back to their allocator.
type arrayBuffer struct {
	data []byte
	objs []any  // out-of-band storage for String arrays
	free func() // deallocation callback for foreign-owned data
	refs atomic.Int32
	mu   sync.Mutex // For safe deallocation
}

func newArrayBuffer(byteSize int) *arrayBuffer {
	buf := &arrayBuffer{
		data: make([]byte, byteSize),
	}
	buf.refs.Store(1)
	return buf
}

// addRef increments the reference count.
func (ab *arrayBuffer) addRef() {
	ab.refs.Add(1)
}

// release decrements the reference count, deallocating and running the
// free callback when it reaches zero.
func (ab *arrayBuffer) release() {
	if ab.refs.Add(-1) == 0 {
		ab.mu.Lock()
		defer ab.mu.Unlock()
		if ab.free != nil {
			ab.free()
			ab.free = nil
		}
		ab.data = nil
		ab.objs = nil
	}
}

// isUnique returns true if this buffer has only one reference.
func (ab *arrayBuffer) isUnique() bool {
	return ab.refs.Load() == 1
}

// Array is a host-owned multidimensional array: an element type, a shape,
// row-major strides, and reference-counted storage. Views share storage;
// the last release deallocates it.
type Array struct {
	buffer *arrayBuffer
	shape  Shape
	stride []int // strides in elements, row-major
	dtype  DataType
	offset int // element offset into storage, for views
}

// New creates a zero-initialized array with the given shape and type.
func New(shape Shape, dtype DataType) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}

	n := shape.NumElements()
	a := &Array{
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}
	if dtype == String {
		a.buffer = newArrayBuffer(0)
		a.buffer.objs = make([]any, n)
	} else {
		a.buffer = newArrayBuffer(n * dtype.Size())
	}
	return a, nil
}

// FromBytes wraps a foreign buffer into an array without copying.
// free, if non-nil, runs exactly once when the last reference drops;
// it is the only channel back into the buffer's original allocator.
func FromBytes(data []byte, shape Shape, dtype DataType, free func()) (*Array, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if dtype == String {
		return nil, fmt.Errorf("cannot alias raw bytes as a string array")
	}
	if want := shape.NumElements() * dtype.Size(); want != len(data) {
		return nil, fmt.Errorf("buffer size %d does not match shape %v of %s (%d bytes)",
			len(data), shape, dtype, want)
	}

	buf := &arrayBuffer{data: data, free: free}
	buf.refs.Store(1)
	return &Array{
		buffer: buf,
		shape:  shape.Clone(),
		stride: shape.ComputeStrides(),
		dtype:  dtype,
	}, nil
}

// FromSlice creates an array by copying a flat slice of fixed-width
// elements into fresh storage.
func FromSlice[T Elem](values []T, shape Shape) (*Array, error) {
	var dummy T
	dtype := inferDataType(dummy)

	if shape.NumElements() != len(values) {
		return nil, fmt.Errorf("shape %v wants %d elements, got %d",
			shape, shape.NumElements(), len(values))
	}

	a, err := New(shape, dtype)
	if err != nil {
		return nil, err
	}
	if len(values) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&values[0])), len(values)*dtype.Size())
		copy(a.buffer.data, src)
	}
	return a, nil
}

// FromStrings creates a string array from elements in flat row-major
// order. Elements must be string or []byte.
func FromStrings(elems []any, shape Shape) (*Array, error) {
	if shape.NumElements() != len(elems) {
		return nil, fmt.Errorf("shape %v wants %d elements, got %d",
			shape, shape.NumElements(), len(elems))
	}
	a, err := New(shape, String)
	if err != nil {
		return nil, err
	}
	for i, e := range elems {
		if err := a.SetElem(i, e); err != nil {
			a.Release()
			return nil, err
		}
	}
	return a, nil
}

// Shape returns the array's shape.
func (a *Array) Shape() Shape {
	return a.shape
}

// Strides returns the array's element strides.
func (a *Array) Strides() []int {
	return a.stride
}

// DType returns the array's element type.
func (a *Array) DType() DataType {
	return a.dtype
}

// NumElements returns the total number of elements.
func (a *Array) NumElements() int {
	return a.shape.NumElements()
}

// ByteSize returns the total storage size in bytes.
// Panics for String arrays, whose elements are variable-width.
func (a *Array) ByteSize() int {
	return a.NumElements() * a.dtype.Size()
}

// Data returns the raw byte storage of a fixed-width array.
// WARNING: direct access to shared memory. Use with caution.
func (a *Array) Data() []byte {
	if a.dtype == String {
		panic("ndarray: string arrays have no flat byte storage")
	}
	esz := a.dtype.Size()
	return a.buffer.data[a.offset*esz:]
}

// Retain increments the reference count, keeping the storage alive
// past the caller's own release.
func (a *Array) Retain() {
	a.buffer.addRef()
}

// Release decrements the reference count and deallocates at zero.
func (a *Array) Release() {
	a.buffer.release()
}

// IsUnique returns true if this array is the only reference to its storage.
func (a *Array) IsUnique() bool {
	return a.buffer.isUnique()
}

// Elem returns string element i in flat row-major order.
func (a *Array) Elem(i int) any {
	if a.dtype != String {
		panic(fmt.Sprintf("ndarray: Elem on %s array", a.dtype))
	}
	return a.buffer.objs[a.offset+a.flatToStorage(i)]
}

// SetElem stores string element i in flat row-major order.
// Accepted representations are string and []byte.
func (a *Array) SetElem(i int, v any) error {
	if a.dtype != String {
		panic(fmt.Sprintf("ndarray: SetElem on %s array", a.dtype))
	}
	switch v.(type) {
	case string, []byte:
		a.buffer.objs[a.offset+a.flatToStorage(i)] = v
		return nil
	default:
		return fmt.Errorf("unsupported string element type %T", v)
	}
}

// flatToStorage maps a flat row-major element index to a storage offset
// relative to the view's base, honoring strides.
func (a *Array) flatToStorage(i int) int {
	off := 0
	for d := len(a.shape) - 1; d >= 0; d-- {
		if a.shape[d] == 0 {
			return 0
		}
		off += (i % a.shape[d]) * a.stride[d]
		i /= a.shape[d]
	}
	return off
}

// IsContiguous reports whether the view is dense C-order starting at
// the head of its storage.
func (a *Array) IsContiguous() bool {
	if a.offset != 0 {
		return false
	}
	want := a.shape.ComputeStrides()
	for i := range want {
		if a.stride[i] != want[i] {
			return false
		}
	}
	return true
}

// Transpose returns a reversed-axes view sharing this array's storage.
// The view is non-contiguous for rank >= 2.
func (a *Array) Transpose() *Array {
	a.buffer.addRef()
	rank := len(a.shape)
	shape := make(Shape, rank)
	stride := make([]int, rank)
	for i := 0; i < rank; i++ {
		shape[i] = a.shape[rank-1-i]
		stride[i] = a.stride[rank-1-i]
	}
	return &Array{
		buffer: a.buffer,
		shape:  shape,
		stride: stride,
		dtype:  a.dtype,
		offset: a.offset,
	}
}

// AsContiguous coerces an array to a dense, C-order form. Contiguous
// arrays are retained and returned as-is; strided views are compacted
// into fresh storage.
func AsContiguous(a *Array) (*Array, error) {
	if a == nil {
		return nil, fmt.Errorf("nil array")
	}
	if a.IsContiguous() {
		a.Retain()
		return a, nil
	}

	out, err := New(a.shape, a.dtype)
	if err != nil {
		return nil, err
	}
	n := a.NumElements()
	if a.dtype == String {
		for i := 0; i < n; i++ {
			out.buffer.objs[i] = a.Elem(i)
		}
		return out, nil
	}
	esz := a.dtype.Size()
	src := a.buffer.data
	for i := 0; i < n; i++ {
		so := (a.offset + a.flatToStorage(i)) * esz
		copy(out.buffer.data[i*esz:(i+1)*esz], src[so:so+esz])
	}
	return out, nil
}
