//go:build !windows

package engine

import "fmt"

// Device is a handle to a WebGPU device used for staging tensor
// buffers in GPU memory. The wgpu_native binding currently ships for
// windows only; on other platforms opening a device always fails.
type Device struct{}

// OpenDevice reports WebGPU as unavailable on this platform.
func OpenDevice() (*Device, error) {
	return nil, fmt.Errorf("webgpu: not supported on this platform")
}

// IsAvailable checks if a WebGPU device can be opened on this system.
func IsAvailable() bool {
	return false
}

// Close releases the device.
func (d *Device) Close() {}

type deviceBuffer struct{}

func (d *Device) upload([]byte) (*deviceBuffer, error) {
	return nil, fmt.Errorf("webgpu: not supported on this platform")
}

func (b *deviceBuffer) read() ([]byte, error) {
	return nil, fmt.Errorf("webgpu: not supported on this platform")
}

func (b *deviceBuffer) release() {}
