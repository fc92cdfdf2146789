// Copyright 2025 Braid. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package engine provides the public API for braid's tensor engine:
// opaque, reference-counted tensor buffers with explicit ownership
// transfer, and optional WebGPU device staging.
package engine

import (
	internal "github.com/braid-ml/braid/internal/engine"

	"go.uber.org/zap"
)

// Tensor is the engine's opaque data object.
type Tensor = internal.Tensor

// TypeTag identifies a tensor's element type.
type TypeTag = internal.TypeTag

// Tensor element types.
const (
	Float32  = internal.Float32
	Float64  = internal.Float64
	Int32    = internal.Int32
	Int64    = internal.Int64
	Uint8    = internal.Uint8
	Bool     = internal.Bool
	String   = internal.String
	Resource = internal.Resource
	Float16  = internal.Float16
	BFloat16 = internal.BFloat16
)

// Device is a handle to a WebGPU device used for staging tensor
// buffers in GPU memory.
type Device = internal.Device

// NewTensor creates a tensor over a raw buffer. The free callback, if
// non-nil, runs exactly once when the tensor's last reference is
// destroyed.
func NewTensor(dtype TypeTag, dims []int, data []byte, free func()) *Tensor {
	return internal.NewTensor(dtype, dims, data, free)
}

// OpenDevice initializes a WebGPU device for tensor staging.
func OpenDevice() (*Device, error) {
	return internal.OpenDevice()
}

// IsAvailable checks if a WebGPU device can be opened on this system.
func IsAvailable() bool {
	return internal.IsAvailable()
}

// SetLogger replaces the engine's no-op logger.
func SetLogger(l *zap.Logger) {
	internal.SetLogger(l)
}
