package bridge

import (
	"go.uber.org/zap"

	"github.com/braid-ml/braid/internal/engine"
	"github.com/braid-ml/braid/internal/ndarray"
	"github.com/braid-ml/braid/internal/status"
)

// TensorToArray converts an owned tensor into a host array, consuming
// the handle.
//
// A null handle converts to a nil array with success: "no value" on
// one side is "no value" on the other. For fixed-width types the
// converter first asks the engine for exclusive ownership of the
// buffer; when granted, the array aliases it directly and the tensor
// is destroyed only when the array's last reference drops. When the
// engine refuses (buffer still shared), or for string and resource
// tensors, a fresh array is allocated and filled by copy or decode.
func TensorToArray(h *Handle) (*ndarray.Array, error) {
	if h == nil || h.IsNull() {
		return nil, nil
	}

	t := h.Tensor()
	if tag := t.TypeTag(); tag != engine.String && tag != engine.Resource {
		if moved := t.MaybeMove(); moved != nil {
			// Exclusive ownership granted: the handle's tensor now
			// belongs to the array's deallocation callback.
			h.Release()
			return aliasTensor(moved)
		}
	}

	arr, err := copyTensor(t)
	h.Destroy()
	return arr, err
}

// TensorToAliasedArray converts a tensor into a host array, aliasing
// the buffer unconditionally for fixed-width types without consulting
// the engine's reference count. String and resource tensors have no
// aliasable host layout and delegate to the copying path. Consumes the
// handle.
func TensorToAliasedArray(h *Handle) (*ndarray.Array, error) {
	if h == nil || h.IsNull() {
		return nil, nil
	}

	t := h.Tensor()
	if tag := t.TypeTag(); tag == engine.String || tag == engine.Resource {
		arr, err := copyTensor(t)
		h.Destroy()
		return arr, err
	}

	return aliasTensor(h.Release())
}

// aliasTensor wraps a tensor's buffer directly into a host array. The
// caller's ownership of t moves into the array's deallocation
// callback; on error the tensor is destroyed here.
func aliasTensor(t *engine.Tensor) (*ndarray.Array, error) {
	dims, _, err := ResolveDims(t)
	if err != nil {
		t.Destroy()
		return nil, err
	}
	dt, err := TensorTypeToHost(t.TypeTag())
	if err != nil {
		t.Destroy()
		return nil, err
	}
	if err := t.Realize(); err != nil {
		t.Destroy()
		return nil, status.Internalf("tensor buffer unavailable").Wrap(err)
	}

	arr, err := ndarray.FromBytes(t.Data()[:t.ByteSize()], dims, dt, t.Destroy)
	if err != nil {
		t.Destroy()
		return nil, status.Internalf("tensor cannot back a %s array of shape %v", dt, dims).Wrap(err)
	}
	Logger().Debug("tensor aliased into array",
		zap.Stringer("dtype", dt), zap.Int("bytes", t.ByteSize()))
	return arr, nil
}

// copyTensor allocates a fresh host array and fills it from the
// tensor. Ownership of t stays with the caller.
func copyTensor(t *engine.Tensor) (*ndarray.Array, error) {
	dims, nelems, err := ResolveDims(t)
	if err != nil {
		return nil, err
	}
	dt, err := TensorTypeToHost(t.TypeTag())
	if err != nil {
		return nil, err
	}
	if err := t.Realize(); err != nil {
		return nil, status.Internalf("tensor buffer unavailable").Wrap(err)
	}

	arr, err := ndarray.New(dims, dt)
	if err != nil {
		return nil, status.Internalf("failed to construct %s array of shape %v", dt, dims).Wrap(err)
	}

	if dt == ndarray.String {
		records, err := DecodeStrings(t.Data()[:t.ByteSize()], nelems)
		if err != nil {
			arr.Release()
			return nil, err
		}
		for i, rec := range records {
			if err := arr.SetElem(i, rec); err != nil {
				arr.Release()
				return nil, status.Internalf("failed to store string element %d", i).Wrap(err)
			}
		}
		Logger().Debug("string tensor decoded into array", zap.Int("elements", nelems))
		return arr, nil
	}

	// A size mismatch here means corruption or a logic error upstream,
	// never bad caller input.
	if arr.ByteSize() != t.ByteSize() {
		arr.Release()
		return nil, status.Internalf("tensor declares %d bytes but array of shape %v holds %d",
			t.ByteSize(), dims, arr.ByteSize())
	}
	FastCopy(arr.Data(), t.Data(), t.ByteSize())
	Logger().Debug("tensor copied into array",
		zap.Stringer("dtype", dt), zap.Int("bytes", t.ByteSize()))
	return arr, nil
}
