package geomcodec

import (
	"errors"

	"github.com/flywave/go3d/vec3"
)

// Codec is the contract an external geometry compressor fulfills. The
// byte layout of an encoded buffer is owned by the codec; callers only
// see the success/failure contract and the geometry kind probe.
type Codec interface {
	EncodeMesh(m *Mesh, speed int) ([]byte, error)
	DecodeMesh(buf []byte) (*Mesh, error)
	GetEncodedGeometryType(buf []byte) (GeometryKind, error)
}

var DefaultCodec Codec = WireCodec{}

// Encode compresses the flat arrays into a buffer using the default
// codec. Speed is per call, 0 favors compression ratio over speed.
//
// Special case: if faces is empty, an empty buffer is returned without
// building a mesh or touching the codec.
func Encode(vertices, normals []vec3.T, faces [][3]uint32, speed int) ([]byte, error) {
	return EncodeWith(DefaultCodec, vertices, normals, faces, speed)
}

func EncodeWith(c Codec, vertices, normals []vec3.T, faces [][3]uint32, speed int) ([]byte, error) {
	if len(faces) == 0 {
		return []byte{}, nil
	}
	if err := ValidateArrays(vertices, normals, faces); err != nil {
		return nil, err
	}
	m := BuildMesh(vertices, normals, faces)
	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()
	buf, err := c.EncodeMesh(m, speed)
	if err != nil {
		return nil, &CodecError{Op: "encode", Err: err}
	}
	return buf, nil
}

// Decode reconstructs vertex, normal and face arrays from an encoded
// buffer using the default codec. The normal array is empty when the
// buffer carries no normal attribute.
//
// Special case: an empty buffer decodes to empty arrays without
// touching the codec.
func Decode(buf []byte) ([]vec3.T, []vec3.T, [][3]uint32, error) {
	return DecodeWith(DefaultCodec, buf)
}

func DecodeWith(c Codec, buf []byte) ([]vec3.T, []vec3.T, [][3]uint32, error) {
	if len(buf) == 0 {
		return []vec3.T{}, []vec3.T{}, [][3]uint32{}, nil
	}
	kind, err := c.GetEncodedGeometryType(buf)
	if err != nil {
		return nil, nil, nil, &CodecError{Op: "decode", Err: err}
	}
	if kind != GEOM_TRIANGULAR_MESH {
		return nil, nil, nil, &UnsupportedGeometryError{Kind: kind}
	}
	m, err := c.DecodeMesh(buf)
	if err != nil {
		var unsup *UnsupportedGeometryError
		if errors.As(err, &unsup) {
			return nil, nil, nil, err
		}
		return nil, nil, nil, &CodecError{Op: "decode", Err: err}
	}
	// Decoding may reintroduce duplicate point ids, so normalize the
	// mesh again before extraction.
	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()
	return ExtractMesh(m)
}
