package bridge

import (
	"go.uber.org/zap"

	"github.com/braid-ml/braid/internal/engine"
	"github.com/braid-ml/braid/internal/ndarray"
	"github.com/braid-ml/braid/internal/status"
)

// ArrayToTensor converts a host array into an owned tensor.
//
// Fixed-width and resource arrays are aliased: the tensor wraps the
// array's own buffer, and its deallocation callback releases the
// array's reference when the tensor side eventually destroys it.
// String arrays are encoded into a freshly allocated wire buffer and
// the array is not retained past the call.
//
// The conversion takes its own reference on the aliased buffer, so the
// caller's reference stays valid and must still be released as usual.
func ArrayToTensor(a *ndarray.Array) (*Handle, error) {
	if a == nil {
		return nil, status.InvalidArgumentf("not convertible to an array")
	}

	// Coerce to a dense, C-order, read-only form. contig carries its
	// own reference; each return path below must consume it.
	contig, err := ndarray.AsContiguous(a)
	if err != nil {
		return nil, status.InvalidArgumentf("not convertible to an array").Wrap(err)
	}

	tag, err := HostToTensorType(contig.DType())
	if err != nil {
		contig.Release()
		return nil, err
	}

	switch tag {
	case engine.Resource:
		// A resource array's bytes become a rank-0 opaque handle. The
		// array reference is handed to the tensor's deallocator.
		data := contig.Data()[:contig.ByteSize()]
		t := engine.NewTensor(engine.Resource, nil, data, contig.Release)
		Logger().Debug("array aliased into resource tensor",
			zap.Int("bytes", len(data)))
		return NewHandle(t), nil

	case engine.String:
		dims := contig.Shape().Clone()
		n := contig.NumElements()
		elems := make([]any, n)
		for i := 0; i < n; i++ {
			elems[i] = contig.Elem(i)
		}

		size, err := MeasureStrings(elems)
		if err != nil {
			contig.Release()
			return nil, err
		}
		buf := make([]byte, size)
		if err := EncodeStrings(elems, buf); err != nil {
			contig.Release()
			return nil, err
		}
		// The tensor owns the wire buffer, not the array.
		contig.Release()
		t := engine.NewTensor(engine.String, dims, buf, nil)
		Logger().Debug("array encoded into string tensor",
			zap.Int("elements", n), zap.Int("bytes", size))
		return NewHandle(t), nil

	default:
		// Zero-copy fast path for all fixed-width types.
		data := contig.Data()[:contig.ByteSize()]
		t := engine.NewTensor(tag, contig.Shape(), data, contig.Release)
		Logger().Debug("array aliased into tensor",
			zap.Stringer("dtype", tag), zap.Int("bytes", len(data)))
		return NewHandle(t), nil
	}
}
