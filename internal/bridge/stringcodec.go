package bridge

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/braid-ml/braid/internal/parallel"
	"github.com/braid-ml/braid/internal/status"
)

// String-tensor wire format: for n elements, a prefix of n 8-byte
// little-endian offsets, then a data region. Offset i is the byte
// distance from the start of the data region to element i's record;
// each record is a varint byte length followed by that many raw bytes.
// This layout is a compatibility contract: implementations must agree
// on it byte for byte.

const offsetSize = 8

// elementBytes extracts the raw bytes of one host string element.
// Raw byte sequences pass through; text elements must be valid UTF-8.
// Any other element type is a corruption signal, not caller input.
func elementBytes(v any) ([]byte, error) {
	switch s := v.(type) {
	case []byte:
		return s, nil
	case string:
		if !utf8.ValidString(s) {
			return nil, status.Internalf("string element is not valid UTF-8")
		}
		return []byte(s), nil
	case nil:
		return nil, nil // unset element encodes as empty
	default:
		return nil, status.Internalf("unsupported string element type %T", v)
	}
}

// MeasureStrings returns the exact wire-buffer size needed to encode
// the elements: one offset slot plus a varint length plus the payload,
// per element.
func MeasureStrings(elems []any) (int, error) {
	total := 0
	for _, e := range elems {
		b, err := elementBytes(e)
		if err != nil {
			return 0, err
		}
		total += offsetSize + uvarintLen(uint64(len(b))) + len(b)
	}
	return total, nil
}

// EncodeStrings lays the elements out in buf, which must be exactly
// the size MeasureStrings reported. A cursor that does not land on the
// buffer end is an internal-consistency failure and panics: the two
// passes disagreeing is a programming error, not a recoverable one.
func EncodeStrings(elems []any, buf []byte) error {
	dataStart := len(elems) * offsetSize
	cur := dataStart
	for i, e := range elems {
		b, err := elementBytes(e)
		if err != nil {
			return err
		}
		binary.LittleEndian.PutUint64(buf[i*offsetSize:], uint64(cur-dataStart))
		cur += binary.PutUvarint(buf[cur:], uint64(len(b)))
		cur += copy(buf[cur:], b)
	}
	if cur != len(buf) {
		panic(fmt.Sprintf("bridge: string encoding cursor at %d, buffer size %d", cur, len(buf)))
	}
	return nil
}

// DecodeStrings parses nelems records out of a wire buffer. Record
// boundaries are validated sequentially against the declared buffer
// size; payload copies then fan out across workers.
func DecodeStrings(buf []byte, nelems int) ([][]byte, error) {
	limit := len(buf)
	dataStart := nelems * offsetSize
	if limit < dataStart {
		return nil, status.InvalidArgumentf(
			"wire buffer holds %d bytes, %d offsets need %d", limit, nelems, dataStart)
	}

	type record struct {
		start, size int
	}
	records := make([]record, nelems)
	for i := 0; i < nelems; i++ {
		off := binary.LittleEndian.Uint64(buf[i*offsetSize:])
		pos := dataStart + int(off)
		if off > uint64(limit) || pos >= limit {
			return nil, status.InvalidArgumentf(
				"string %d: offset %d points past buffer end %d", i, off, limit)
		}
		size, n := binary.Uvarint(buf[pos:limit])
		if n <= 0 {
			return nil, status.InvalidArgumentf("string %d: malformed varint length", i)
		}
		start := pos + n
		if size > uint64(limit-start) {
			return nil, status.InvalidArgumentf(
				"string %d: length %d reads past buffer end %d", i, size, limit)
		}
		records[i] = record{start: start, size: int(size)}
	}

	out := make([][]byte, nelems)
	parallel.For(nelems, func(i int) {
		r := records[i]
		out[i] = make([]byte, r.size)
		copy(out[i], buf[r.start:r.start+r.size])
	}, parallel.DefaultConfig())
	return out, nil
}

// uvarintLen returns the encoded size of v without encoding it.
func uvarintLen(v uint64) int {
	n := 1
	for v >= 0x80 {
		v >>= 7
		n++
	}
	return n
}
