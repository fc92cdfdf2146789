// Package engine provides the tensor engine side of the braid bridge: an
// opaque, reference-counted, contiguous tensor buffer with explicit
// ownership transfer.
package engine

// TypeTag identifies a tensor's element type.
type TypeTag int

// Tensor element types. Float16 and BFloat16 exist on the engine side
// only; the host array runtime has no representation for them.
const (
	Float32 TypeTag = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	String
	Resource
	Float16
	BFloat16
)

// Size returns the byte size of one element, or 0 for variable-width
// and opaque types (String, Resource).
func (t TypeTag) Size() int {
	switch t {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool:
		return 1
	case Float16, BFloat16:
		return 2
	case String, Resource:
		return 0
	default:
		panic("unknown type tag")
	}
}

// String returns a human-readable tag name.
func (t TypeTag) String() string {
	switch t {
	case Float32:
		return "float32"
	case Float64:
		return "float64"
	case Int32:
		return "int32"
	case Int64:
		return "int64"
	case Uint8:
		return "uint8"
	case Bool:
		return "bool"
	case String:
		return "string"
	case Resource:
		return "resource"
	case Float16:
		return "float16"
	case BFloat16:
		return "bfloat16"
	default:
		return "unknown"
	}
}
