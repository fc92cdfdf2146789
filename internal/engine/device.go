//go:build windows

package engine

import (
	"fmt"
	"unsafe"

	"github.com/go-webgpu/webgpu/wgpu"
)

// Device is a handle to a WebGPU device used for staging tensor
// buffers in GPU memory.
type Device struct {
	instance *wgpu.Instance
	adapter  *wgpu.Adapter
	device   *wgpu.Device
	queue    *wgpu.Queue
}

// OpenDevice initializes a WebGPU device for tensor staging.
// Returns an error if no compatible GPU is available.
func OpenDevice() (dev *Device, err error) {
	// Recover from panic if wgpu_native library is not found.
	defer func() {
		if r := recover(); r != nil {
			dev = nil
			err = fmt.Errorf("webgpu: native library not available: %v", r)
		}
	}()

	instance := wgpu.CreateInstance(nil)
	adapter, adapterErr := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		PowerPreference: wgpu.PowerPreferenceHighPerformance,
	})
	if adapterErr != nil {
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request adapter: %w", adapterErr)
	}

	device, deviceErr := adapter.RequestDevice(nil)
	if deviceErr != nil {
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to request device: %w", deviceErr)
	}

	queue := device.GetQueue()
	if queue == nil {
		device.Release()
		adapter.Release()
		instance.Release()
		return nil, fmt.Errorf("webgpu: failed to get queue")
	}

	return &Device{
		instance: instance,
		adapter:  adapter,
		device:   device,
		queue:    queue,
	}, nil
}

// IsAvailable checks if a WebGPU device can be opened on this system.
func IsAvailable() bool {
	dev, err := OpenDevice()
	if err != nil {
		return false
	}
	dev.Close()
	return true
}

// Close releases the device and associated WebGPU objects.
func (d *Device) Close() {
	if d.device != nil {
		d.device.Release()
	}
	if d.adapter != nil {
		d.adapter.Release()
	}
	if d.instance != nil {
		d.instance.Release()
	}
}

// deviceBuffer holds tensor bytes staged in GPU memory.
type deviceBuffer struct {
	dev  *Device
	buf  *wgpu.Buffer
	size uint64
}

// upload creates a GPU buffer and copies data into it via the mapped
// range at creation.
func (d *Device) upload(data []byte) (*deviceBuffer, error) {
	size := uint64(len(data))
	if size == 0 {
		return &deviceBuffer{dev: d, size: 0}, nil
	}

	buffer := d.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage:            wgpu.BufferUsageStorage | wgpu.BufferUsageCopySrc,
		Size:             size,
		MappedAtCreation: wgpu.True,
	})

	mappedPtr := buffer.GetMappedRange(0, size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), size)
	copy(mappedSlice, data)
	buffer.Unmap()

	return &deviceBuffer{dev: d, buf: buffer, size: size}, nil
}

// read copies the buffer back to host memory through a staging buffer,
// since storage buffers cannot be mapped directly.
func (b *deviceBuffer) read() ([]byte, error) {
	if b.size == 0 {
		return []byte{}, nil
	}

	staging := b.dev.device.CreateBuffer(&wgpu.BufferDescriptor{
		Usage: wgpu.BufferUsageMapRead | wgpu.BufferUsageCopyDst,
		Size:  b.size,
	})
	defer staging.Release()

	encoder := b.dev.device.CreateCommandEncoder(nil)
	encoder.CopyBufferToBuffer(b.buf, 0, staging, 0, b.size)
	cmdBuffer := encoder.Finish(nil)
	b.dev.queue.Submit(cmdBuffer)

	if err := staging.MapAsync(b.dev.device, wgpu.MapModeRead, 0, b.size); err != nil {
		return nil, fmt.Errorf("failed to map staging buffer: %w", err)
	}

	mappedPtr := staging.GetMappedRange(0, b.size)
	//nolint:gosec // unsafe.Slice for zero-copy conversion from unsafe.Pointer
	mappedSlice := unsafe.Slice((*byte)(mappedPtr), b.size)
	result := make([]byte, b.size)
	copy(result, mappedSlice)
	staging.Unmap()

	return result, nil
}

// release frees the GPU buffer.
func (b *deviceBuffer) release() {
	if b.buf != nil {
		b.buf.Release()
		b.buf = nil
	}
}
