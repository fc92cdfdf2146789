// Package bridge converts between host-owned ndarrays and engine-owned
// tensors, deciding per conversion whether the two sides can share one
// physical buffer (zero-copy aliasing) or a real copy is required.
//
// The package is organized as a small set of leaf components:
//
//   - dtype mapping between ndarray.DataType and engine.TypeTag
//   - dimension resolution, with the rank-0 rule for resource tensors
//   - the string-tensor wire codec (offset table + varint records)
//   - a small-size-specialized byte copier
//
// and two converters built on top of them: ArrayToTensor and
// TensorToArray. Ownership across the boundary is carried by a single
// deallocation callback that runs exactly once, whichever side ends up
// releasing the buffer last.
//
// Conversions are synchronous and introduce no locking of their own;
// the reference-count operations on both sides are safe to call from
// any goroutine, and deallocation callbacks may fire on a goroutine
// other than the one that converted.
package bridge
