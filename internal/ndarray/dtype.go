// Package ndarray provides the host-side multidimensional array runtime for
// the braid bridge: typed, strided, reference-counted arrays.
package ndarray

// Elem is a constraint for fixed-width element types usable with the
// generic constructors and views.
type Elem interface {
	~float32 | ~float64 | ~int32 | ~int64 | ~uint8 | ~bool
}

// DataType is the runtime element-type descriptor for arrays.
type DataType int

// Supported element types.
const (
	Float32 DataType = iota
	Float64
	Int32
	Int64
	Uint8
	Bool
	// String elements are variable-width and stored out-of-band
	// rather than in the flat byte buffer.
	String
	// Resource arrays hold the opaque bytes of an engine resource
	// handle, exposed to the host as a flat byte blob.
	Resource
)

// Size returns the byte size of one element.
// Panics for String: string elements have no fixed width.
func (dt DataType) Size() int {
	switch dt {
	case Float32, Int32:
		return 4
	case Float64, Int64:
		return 8
	case Uint8, Bool, Resource:
		return 1
	case String:
		panic("ndarray: String elements are variable-width")
	default:
		panic("unknown data type")
	}
}

// String returns a human-readable name for the data type.
func (dt DataType) String() string {
	switch dt {
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
	default:
		return "unknown"
	}
}

// inferDataType infers the DataType for a generic element type T.
func inferDataType[T Elem](dummy T) DataType {
	switch any(dummy).(type) {
	case float32:
		return Float32
	case float64:
		return Float64
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case bool:
		return Bool
	default:
		panic("unsupported type")
	}
}
