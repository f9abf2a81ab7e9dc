package geomcodec

import "fmt"

const GEOM_SIGNATURE string = "fwgc"
const GCEXT string = ".gcb"
const V1 uint32 = 1

// GeometryKind is the codec's classification of an encoded buffer.
type GeometryKind uint32

const (
	GEOM_INVALID         GeometryKind = 0
	GEOM_POINT_CLOUD     GeometryKind = 1
	GEOM_TRIANGULAR_MESH GeometryKind = 2
)

// AttributeType names a per-point data channel.
type AttributeType uint32

const (
	ATTR_INVALID  AttributeType = 0
	ATTR_POSITION AttributeType = 1
	ATTR_NORMAL   AttributeType = 2
)

// Speed bounds for the encode/decode speed option. 0 favors
// compression ratio over speed.
const (
	SPEED_SLOWEST = 0
	SPEED_FASTEST = 9
)

// ValidationError reports inconsistent input arrays. Raised before any
// mesh is built.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// UnsupportedGeometryError reports a buffer whose geometry kind is not
// a triangular mesh.
type UnsupportedGeometryError struct {
	Kind GeometryKind
}

func (e *UnsupportedGeometryError) Error() string {
	return fmt.Sprintf("buffer does not appear to be a mesh (is it a pointcloud?): kind %d", e.Kind)
}

// ConversionError reports an attribute value that could not be read
// back as 3 floats for the given point index.
type ConversionError struct {
	Attr  AttributeType
	Point uint32
}

func (e *ConversionError) Error() string {
	if e.Attr == ATTR_NORMAL {
		return fmt.Sprintf("error reading normal for point %d", e.Point)
	}
	return fmt.Sprintf("error reading vertex %d", e.Point)
}

// CodecError wraps a failure inside the codec itself.
type CodecError struct {
	Op  string
	Err error
}

func (e *CodecError) Error() string {
	return fmt.Sprintf("codec %s: %v", e.Op, e.Err)
}

func (e *CodecError) Unwrap() error {
	return e.Err
}
