package bridge

import (
	"github.com/braid-ml/braid/internal/engine"
	"github.com/braid-ml/braid/internal/ndarray"
	"github.com/braid-ml/braid/internal/status"
)

// The two mapping tables are initialized once and read-only thereafter.
// Float16 and BFloat16 are deliberately absent from engineToHost: the
// host runtime has no representation for them.
var (
	hostToEngine = map[ndarray.DataType]engine.TypeTag{
		ndarray.Float32:  engine.Float32,
		ndarray.Float64:  engine.Float64,
		ndarray.Int32:    engine.Int32,
		ndarray.Int64:    engine.Int64,
		ndarray.Uint8:    engine.Uint8,
		ndarray.Bool:     engine.Bool,
		ndarray.String:   engine.String,
		ndarray.Resource: engine.Resource,
	}

	engineToHost = map[engine.TypeTag]ndarray.DataType{
		engine.Float32:  ndarray.Float32,
		engine.Float64:  ndarray.Float64,
		engine.Int32:    ndarray.Int32,
		engine.Int64:    ndarray.Int64,
		engine.Uint8:    ndarray.Uint8,
		engine.Bool:     ndarray.Bool,
		engine.String:   ndarray.String,
		engine.Resource: ndarray.Resource,
	}
)

// HostToTensorType maps a host element-type descriptor to the engine's
// type tag.
func HostToTensorType(dt ndarray.DataType) (engine.TypeTag, error) {
	tag, ok := hostToEngine[dt]
	if !ok {
		return 0, status.Unsupportedf("host data type %s has no tensor mapping", dt)
	}
	return tag, nil
}

// TensorTypeToHost maps an engine type tag to the host's element-type
// descriptor.
func TensorTypeToHost(tag engine.TypeTag) (ndarray.DataType, error) {
	dt, ok := engineToHost[tag]
	if !ok {
		return 0, status.Unsupportedf("tensor type %s has no host mapping", tag)
	}
	return dt, nil
}
