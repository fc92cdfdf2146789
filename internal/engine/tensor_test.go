package engine

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypeTagSize(t *testing.T) {
	tests := []struct {
		tag  TypeTag
		size int
	}{
		{Float32, 4},
		{Float64, 8},
		{Int32, 4},
		{Int64, 8},
		{Uint8, 1},
		{Bool, 1},
		{Float16, 2},
		{BFloat16, 2},
		{String, 0},
		{Resource, 0},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.size, tt.tag.Size(), tt.tag.String())
	}
}

func TestNewTensorAccessors(t *testing.T) {
	data := make([]byte, 24)
	tensor := NewTensor(Float32, []int{2, 3}, data, nil)
	defer tensor.Destroy()

	assert.Equal(t, Float32, tensor.TypeTag())
	assert.Equal(t, 2, tensor.NumDims())
	assert.Equal(t, 2, tensor.Dim(0))
	assert.Equal(t, 3, tensor.Dim(1))
	assert.Equal(t, []int{2, 3}, tensor.Dims())
	assert.Equal(t, 24, tensor.ByteSize())
	assert.Len(t, tensor.Data(), 24)
}

func TestDimsReturnsCopy(t *testing.T) {
	tensor := NewTensor(Int32, []int{4}, make([]byte, 16), nil)
	defer tensor.Destroy()

	dims := tensor.Dims()
	dims[0] = 99
	assert.Equal(t, 4, tensor.Dim(0))
}

func TestDestroyRunsFreeExactlyOnce(t *testing.T) {
	freed := 0
	tensor := NewTensor(Uint8, []int{4}, make([]byte, 4), func() { freed++ })

	shared := tensor.Retain()
	tensor.Destroy()
	assert.Equal(t, 0, freed, "free ran while a reference remains")

	shared.Destroy()
	assert.Equal(t, 1, freed)
}

func TestDestroyConcurrent(t *testing.T) {
	var mu sync.Mutex
	freed := 0
	tensor := NewTensor(Uint8, nil, make([]byte, 1), func() {
		mu.Lock()
		freed++
		mu.Unlock()
	})

	const n = 32
	refs := make([]*Tensor, n)
	for i := range refs {
		refs[i] = tensor.Retain()
	}

	var wg sync.WaitGroup
	wg.Add(n + 1)
	go func() {
		defer wg.Done()
		tensor.Destroy()
	}()
	for i := range refs {
		go func(i int) {
			defer wg.Done()
			refs[i].Destroy()
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, freed)
}

func TestMaybeMove(t *testing.T) {
	tensor := NewTensor(Float64, []int{2}, make([]byte, 16), nil)

	shared := tensor.Retain()
	assert.Nil(t, tensor.MaybeMove(), "move granted while buffer is shared")

	shared.Destroy()
	moved := tensor.MaybeMove()
	require.NotNil(t, moved, "move refused for an exclusively owned buffer")
	moved.Destroy()
}

func TestUploadRequiresDevice(t *testing.T) {
	if !IsAvailable() {
		t.Skip("WebGPU not available on this system")
	}

	dev, err := OpenDevice()
	require.NoError(t, err)
	defer dev.Close()

	data := []byte{1, 2, 3, 4}
	tensor := NewTensor(Uint8, []int{4}, data, nil)
	defer tensor.Destroy()

	require.NoError(t, tensor.Upload(dev))
	assert.True(t, tensor.OnDevice())
	assert.Nil(t, tensor.MaybeMove(), "move granted for a device-resident tensor")

	require.NoError(t, tensor.Realize())
	assert.False(t, tensor.OnDevice())
	assert.Equal(t, data, tensor.Data())
}

func TestRealizeHostResidentIsNoop(t *testing.T) {
	tensor := NewTensor(Int64, []int{1}, make([]byte, 8), nil)
	defer tensor.Destroy()

	require.NoError(t, tensor.Realize())
	assert.Len(t, tensor.Data(), 8)
}
