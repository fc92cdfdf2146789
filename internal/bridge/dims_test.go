package bridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/braid-ml/braid/internal/engine"
	"github.com/braid-ml/braid/internal/ndarray"
	"github.com/braid-ml/braid/internal/status"
)

func TestResolveDims(t *testing.T) {
	tests := []struct {
		name   string
		dims   []int
		bytes  int
		shape  ndarray.Shape
		nelems int
	}{
		{"scalar", nil, 4, ndarray.Shape{}, 1},
		{"vector", []int{5}, 20, ndarray.Shape{5}, 5},
		{"empty", []int{0}, 0, ndarray.Shape{0}, 0},
		{"matrix", []int{3, 4}, 48, ndarray.Shape{3, 4}, 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tensor := engine.NewTensor(engine.Float32, tt.dims, make([]byte, tt.bytes), nil)
			defer tensor.Destroy()

			shape, nelems, err := ResolveDims(tensor)
			require.NoError(t, err)
			assert.True(t, tt.shape.Equal(shape), "shape %v, want %v", shape, tt.shape)
			assert.Equal(t, tt.nelems, nelems)
		})
	}
}

func TestResolveDimsResourceScalar(t *testing.T) {
	// A rank-0 resource tensor of N bytes resolves to shape [N].
	tensor := engine.NewTensor(engine.Resource, nil, make([]byte, 37), nil)
	defer tensor.Destroy()

	shape, nelems, err := ResolveDims(tensor)
	require.NoError(t, err)
	assert.True(t, ndarray.Shape{37}.Equal(shape))
	assert.Equal(t, 37, nelems)
}

func TestResolveDimsResourceNonScalar(t *testing.T) {
	tensor := engine.NewTensor(engine.Resource, []int{2}, make([]byte, 8), nil)
	defer tensor.Destroy()

	_, _, err := ResolveDims(tensor)
	assert.Equal(t, status.InvalidArgument, status.CodeOf(err))
}
