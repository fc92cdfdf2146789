package bridge

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastCopyAllSmallSizes(t *testing.T) {
	src := make([]byte, fastCopyMax)
	for i := range src {
		src[i] = byte(i + 1)
	}

	for size := 0; size <= fastCopyMax; size++ {
		dst := make([]byte, fastCopyMax)
		FastCopy(dst, src, size)
		assert.True(t, bytes.Equal(src[:size], dst[:size]), "size %d", size)
		for i := size; i < len(dst); i++ {
			assert.Zero(t, dst[i], "size %d wrote past its end", size)
		}
	}
}

func TestFastCopyLarge(t *testing.T) {
	src := make([]byte, 4096)
	for i := range src {
		src[i] = byte(i * 7)
	}
	dst := make([]byte, 4096)
	FastCopy(dst, src, len(src))
	assert.Equal(t, src, dst)
}

func TestFastCopyOverlapping(t *testing.T) {
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = byte(i)
	}
	want := append([]byte(nil), buf[:32]...)

	FastCopy(buf[16:], buf, 32)
	assert.Equal(t, want, buf[16:48])
}
