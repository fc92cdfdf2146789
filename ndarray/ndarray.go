// Copyright 2025 Braid. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package ndarray provides the public API for braid's host array
// runtime: typed, strided, reference-counted multidimensional arrays.
//
// Arrays share storage through views; Retain and Release manage the
// reference count, and the last release runs any deallocation callback
// attached to foreign storage.
//
// Example:
//
//	a, err := ndarray.FromSlice([]float32{1, 2, 3, 4}, ndarray.Shape{2, 2})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer a.Release()
package ndarray

import internal "github.com/braid-ml/braid/internal/ndarray"

// Array is a host-owned multidimensional array.
type Array = internal.Array

// Shape represents the dimensions of an array.
type Shape = internal.Shape

// DataType is the runtime element-type descriptor for arrays.
type DataType = internal.DataType

// Supported element types.
const (
	Float32  = internal.Float32
	Float64  = internal.Float64
	Int32    = internal.Int32
	Int64    = internal.Int64
	Uint8    = internal.Uint8
	Bool     = internal.Bool
	String   = internal.String
	Resource = internal.Resource
)

// Elem is a constraint for fixed-width element types.
type Elem = internal.Elem

// New creates a zero-initialized array with the given shape and type.
func New(shape Shape, dtype DataType) (*Array, error) {
	return internal.New(shape, dtype)
}

// FromBytes wraps a foreign buffer into an array without copying. The
// free callback runs exactly once when the last reference drops.
func FromBytes(data []byte, shape Shape, dtype DataType, free func()) (*Array, error) {
	return internal.FromBytes(data, shape, dtype, free)
}

// FromSlice creates an array by copying a flat slice of fixed-width
// elements.
func FromSlice[T Elem](values []T, shape Shape) (*Array, error) {
	return internal.FromSlice(values, shape)
}

// FromStrings creates a string array from elements in flat row-major
// order. Elements must be string or []byte.
func FromStrings(elems []any, shape Shape) (*Array, error) {
	return internal.FromStrings(elems, shape)
}

// AsContiguous coerces an array to a dense, C-order form.
func AsContiguous(a *Array) (*Array, error) {
	return internal.AsContiguous(a)
}
