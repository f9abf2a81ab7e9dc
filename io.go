package geomcodec

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/flywave/go3d/vec3"
)

func toLittleByteOrder(v interface{}) []byte {
	var buf []byte
	b := bytes.NewBuffer(buf)
	e := binary.Write(b, binary.LittleEndian, v)
	if e != nil {
		return nil
	}
	return b.Bytes()
}

func writeLittleByte(wt io.Writer, v interface{}) {
	buf := toLittleByteOrder(v)
	if buf != nil {
		wt.Write(buf)
	}
}

func readLittleByte(rd io.Reader, v interface{}) error {
	return binary.Read(rd, binary.LittleEndian, v)
}

func clampSpeed(speed int) int {
	if speed < SPEED_SLOWEST {
		return SPEED_SLOWEST
	}
	if speed > SPEED_FASTEST {
		return SPEED_FASTEST
	}
	return speed
}

// zlibLevel maps the symmetric speed option to a compression level.
// Speed 0 favors ratio, speed 9 stores the body uncompressed.
func zlibLevel(speed int) int {
	return zlib.BestCompression - clampSpeed(speed)
}

func writeHeader(wt io.Writer, kind GeometryKind, speed int) {
	wt.Write([]byte(GEOM_SIGNATURE))
	writeLittleByte(wt, V1)
	writeLittleByte(wt, uint32(kind))
	writeLittleByte(wt, uint32(clampSpeed(speed)))
}

func readHeader(rd io.Reader) (GeometryKind, uint32, error) {
	sig := make([]byte, 4)
	if _, err := io.ReadFull(rd, sig); err != nil {
		return GEOM_INVALID, 0, err
	}
	if string(sig) != GEOM_SIGNATURE {
		return GEOM_INVALID, 0, errors.New("bad signature")
	}
	var version, kind, speed uint32
	if err := readLittleByte(rd, &version); err != nil {
		return GEOM_INVALID, 0, err
	}
	if version > V1 {
		return GEOM_INVALID, 0, fmt.Errorf("unknown version %d", version)
	}
	if err := readLittleByte(rd, &kind); err != nil {
		return GEOM_INVALID, 0, err
	}
	if err := readLittleByte(rd, &speed); err != nil {
		return GEOM_INVALID, 0, err
	}
	return GeometryKind(kind), speed, nil
}

func meshMarshal(wt io.Writer, m *Mesh) {
	writeLittleByte(wt, m.NumPoints())
	writeLittleByte(wt, uint32(m.AttributeCount()))
	for i := 0; i < m.AttributeCount(); i++ {
		att := m.Attribute(i)
		writeLittleByte(wt, uint32(att.Type))
		writeLittleByte(wt, uint32(att.Size()))
		writeLittleByte(wt, att.values)
		if att.IsIdentityMapping() {
			writeLittleByte(wt, uint16(1))
		} else {
			writeLittleByte(wt, uint16(0))
			writeLittleByte(wt, att.mapping)
		}
	}
	writeLittleByte(wt, uint32(m.NumFaces()))
	writeLittleByte(wt, m.Faces)
}

func meshUnMarshal(rd io.Reader) (*Mesh, error) {
	m := NewMesh()
	var numPoints, attCount uint32
	if err := readLittleByte(rd, &numPoints); err != nil {
		return nil, err
	}
	m.SetNumPoints(numPoints)
	if err := readLittleByte(rd, &attCount); err != nil {
		return nil, err
	}
	for i := uint32(0); i < attCount; i++ {
		var atype, valueCount uint32
		if err := readLittleByte(rd, &atype); err != nil {
			return nil, err
		}
		if err := readLittleByte(rd, &valueCount); err != nil {
			return nil, err
		}
		att := &PointAttribute{Type: AttributeType(atype), values: make([]vec3.T, valueCount)}
		if err := readLittleByte(rd, att.values); err != nil {
			return nil, err
		}
		var ident uint16
		if err := readLittleByte(rd, &ident); err != nil {
			return nil, err
		}
		if ident == 1 {
			att.SetIdentityMapping()
		} else {
			att.mapping = make([]uint32, numPoints)
			if err := readLittleByte(rd, att.mapping); err != nil {
				return nil, err
			}
		}
		m.AddAttribute(att)
	}
	var faceCount uint32
	if err := readLittleByte(rd, &faceCount); err != nil {
		return nil, err
	}
	m.Faces = make([][3]uint32, faceCount)
	if err := readLittleByte(rd, m.Faces); err != nil {
		return nil, err
	}
	for fi, f := range m.Faces {
		for _, p := range f {
			if p >= numPoints {
				return nil, fmt.Errorf("face %d references point %d, mesh has %d points", fi, p, numPoints)
			}
		}
	}
	return m, nil
}

// WireCodec is the built-in codec: a fixed little-endian header
// carrying the geometry kind, followed by a zlib-compressed body.
type WireCodec struct{}

func (WireCodec) GetEncodedGeometryType(buf []byte) (GeometryKind, error) {
	kind, _, err := readHeader(bytes.NewReader(buf))
	if err != nil {
		return GEOM_INVALID, err
	}
	return kind, nil
}

func (WireCodec) EncodeMesh(m *Mesh, speed int) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, GEOM_TRIANGULAR_MESH, speed)
	zw, err := zlib.NewWriterLevel(&buf, zlibLevel(speed))
	if err != nil {
		return nil, err
	}
	meshMarshal(zw, m)
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (WireCodec) DecodeMesh(buf []byte) (*Mesh, error) {
	rd := bytes.NewReader(buf)
	kind, _, err := readHeader(rd)
	if err != nil {
		return nil, err
	}
	if kind != GEOM_TRIANGULAR_MESH {
		return nil, &UnsupportedGeometryError{Kind: kind}
	}
	zr, err := zlib.NewReader(rd)
	if err != nil {
		return nil, err
	}
	defer zr.Close()
	return meshUnMarshal(zr)
}

// EncodePointCloud encodes positions only, under the point-cloud
// geometry kind. The mesh decode path rejects such buffers; the
// counterpart decoder belongs to a point-cloud bridge, not this one.
func EncodePointCloud(vertices []vec3.T, speed int) ([]byte, error) {
	var buf bytes.Buffer
	writeHeader(&buf, GEOM_POINT_CLOUD, speed)
	zw, err := zlib.NewWriterLevel(&buf, zlibLevel(speed))
	if err != nil {
		return nil, err
	}
	writeLittleByte(zw, uint32(len(vertices)))
	writeLittleByte(zw, vertices)
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// EncodeToFile encodes the arrays and writes the buffer to path.
func EncodeToFile(path string, vertices, normals []vec3.T, faces [][3]uint32, speed int) error {
	buf, err := Encode(vertices, normals, faces, speed)
	if err != nil {
		return err
	}
	return os.WriteFile(path, buf, os.ModePerm)
}

// DecodeFromFile reads an encoded buffer from path and decodes it.
func DecodeFromFile(path string) ([]vec3.T, []vec3.T, [][3]uint32, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, err
	}
	return Decode(buf)
}
