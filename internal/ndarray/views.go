package ndarray

import (
	"fmt"
	"unsafe"
)

// Typed views reinterpret the flat storage of a contiguous fixed-width
// array. They panic on dtype mismatch: a wrong-typed view is a
// programming error, not a recoverable condition.

// AsFloat32 interprets the data as []float32.
func (a *Array) AsFloat32() []float32 {
	a.checkView(Float32)
	data := a.Data()
	if a.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds fixed by NumElements()
	return unsafe.Slice((*float32)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsFloat64 interprets the data as []float64.
func (a *Array) AsFloat64() []float64 {
	a.checkView(Float64)
	data := a.Data()
	if a.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds fixed by NumElements()
	return unsafe.Slice((*float64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsInt32 interprets the data as []int32.
func (a *Array) AsInt32() []int32 {
	a.checkView(Int32)
	data := a.Data()
	if a.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds fixed by NumElements()
	return unsafe.Slice((*int32)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsInt64 interprets the data as []int64.
func (a *Array) AsInt64() []int64 {
	a.checkView(Int64)
	data := a.Data()
	if a.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds fixed by NumElements()
	return unsafe.Slice((*int64)(unsafe.Pointer(&data[0])), a.NumElements())
}

// AsUint8 interprets the data as []uint8.
func (a *Array) AsUint8() []uint8 {
	a.checkView(Uint8)
	return a.Data()[:a.NumElements()]
}

// AsBool interprets the data as []bool.
func (a *Array) AsBool() []bool {
	a.checkView(Bool)
	data := a.Data()
	if a.NumElements() == 0 {
		return nil
	}
	//nolint:gosec // unsafe.Slice for zero-copy access, bounds fixed by NumElements()
	return unsafe.Slice((*bool)(unsafe.Pointer(&data[0])), a.NumElements())
}

func (a *Array) checkView(want DataType) {
	if a.dtype != want {
		panic(fmt.Sprintf("array dtype is %s, not %s", a.dtype, want))
	}
	if !a.IsContiguous() {
		panic("typed view of a non-contiguous array")
	}
}
