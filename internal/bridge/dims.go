package bridge

import (
	"github.com/braid-ml/braid/internal/engine"
	"github.com/braid-ml/braid/internal/ndarray"
	"github.com/braid-ml/braid/internal/status"
)

// ResolveDims computes the host-side shape and element count for a
// tensor.
//
// Resource tensors are opaque scalar handles: they must be rank 0, and
// their bytes are exposed to the host as a flat byte array, so the
// resolved shape is [byteSize] with an element count of byteSize.
// Every other tag resolves to the tensor's declared dimensions, with
// rank 0 counting as one element.
func ResolveDims(t *engine.Tensor) (ndarray.Shape, int, error) {
	if t.TypeTag() == engine.Resource {
		if t.NumDims() != 0 {
			return nil, 0, status.InvalidArgumentf(
				"non-scalar resource tensors not supported (rank %d)", t.NumDims())
		}
		n := t.ByteSize()
		return ndarray.Shape{n}, n, nil
	}

	shape := ndarray.Shape(t.Dims())
	return shape, shape.NumElements(), nil
}
