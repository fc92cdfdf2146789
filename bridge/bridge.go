// Copyright 2025 Braid. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package bridge provides the public API for converting between host
// ndarrays and engine tensors.
//
// The converters decide per call whether the two sides can share one
// physical buffer (zero-copy) or must copy:
//   - ArrayToTensor: fixed-width and resource arrays are aliased into
//     the tensor; string arrays are encoded into a fresh wire buffer.
//   - TensorToArray: asks the engine for exclusive buffer ownership and
//     aliases when granted, otherwise copies or decodes.
//   - TensorToAliasedArray: aliases fixed-width tensors unconditionally.
//
// Ownership across the boundary travels as a deallocation callback
// that runs exactly once, whichever side releases the buffer last.
//
// Example:
//
//	a, _ := ndarray.FromSlice([]int32{1, 2, 3, 4, 5, 6}, ndarray.Shape{2, 3})
//	defer a.Release()
//
//	h, err := bridge.ArrayToTensor(a)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	out, err := bridge.TensorToArray(h) // consumes h
package bridge

import (
	internalbridge "github.com/braid-ml/braid/internal/bridge"
	"github.com/braid-ml/braid/internal/engine"
	"github.com/braid-ml/braid/internal/ndarray"

	"go.uber.org/zap"
)

// Handle is a moveable owner of a tensor whose deallocation callback
// runs exactly once.
type Handle = internalbridge.Handle

// NewHandle takes ownership of a tensor. A nil tensor produces a null
// handle.
func NewHandle(t *engine.Tensor) *Handle {
	return internalbridge.NewHandle(t)
}

// ArrayToTensor converts a host array into an owned tensor.
func ArrayToTensor(a *ndarray.Array) (*Handle, error) {
	return internalbridge.ArrayToTensor(a)
}

// TensorToArray converts an owned tensor into a host array, consuming
// the handle. A null handle yields a nil array with success.
func TensorToArray(h *Handle) (*ndarray.Array, error) {
	return internalbridge.TensorToArray(h)
}

// TensorToAliasedArray converts a tensor into a host array that
// aliases the tensor's buffer whenever the type allows it, consuming
// the handle.
func TensorToAliasedArray(h *Handle) (*ndarray.Array, error) {
	return internalbridge.TensorToAliasedArray(h)
}

// SetLogger replaces the bridge's no-op logger.
func SetLogger(l *zap.Logger) {
	internalbridge.SetLogger(l)
}
