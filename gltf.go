package geomcodec

import (
	"bytes"
	"encoding/binary"
	"io"

	"github.com/flywave/go3d/vec3"
	"github.com/qmuntal/gltf"
)

const GLTF_VERSION = "2.0"

func CreateDoc() *gltf.Document {
	doc := &gltf.Document{}
	doc.Asset.Version = GLTF_VERSION
	srcIndex := uint32(0)
	doc.Scene = &srcIndex
	doc.Scenes = append(doc.Scenes, &gltf.Scene{})
	doc.Buffers = append(doc.Buffers, &gltf.Buffer{})
	return doc
}

type calcSizeWriter struct {
	writer io.Writer
	Size   int
}

func (w *calcSizeWriter) Write(p []byte) (n int, err error) {
	si := len(p)
	w.writer.Write(p)
	w.Size += int(si)
	return si, nil
}

func (w *calcSizeWriter) Bytes() []byte {
	return w.writer.(*bytes.Buffer).Bytes()
}

func newSizeWriter() calcSizeWriter {
	wt := bytes.NewBuffer([]byte{})
	return calcSizeWriter{Size: int(0), writer: wt}
}

func calcPadding(offset, paddingUnit int) int {
	padding := offset % paddingUnit
	if padding != 0 {
		padding = paddingUnit - padding
	}
	return padding
}

func GetGltfBinary(doc *gltf.Document, paddingUnit int) ([]byte, error) {
	w := newSizeWriter()
	enc := gltf.NewEncoder(&w)
	enc.AsBinary = true
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	padding := calcPadding(w.Size, paddingUnit)
	if padding == 0 {
		return w.Bytes(), nil
	}
	pad := make([]byte, padding)
	for i := range pad {
		pad[i] = 0x20
	}
	w.Write(pad)
	return w.Bytes(), nil
}

// ToGltf wraps decoded arrays into a single-node glTF document.
func ToGltf(vertices, normals []vec3.T, faces [][3]uint32) (*gltf.Document, error) {
	doc := CreateDoc()
	if err := BuildGltf(doc, vertices, normals, faces); err != nil {
		return nil, err
	}
	return doc, nil
}

// BuildGltf appends the arrays to doc as one mesh with a single
// triangle primitive.
func BuildGltf(doc *gltf.Document, vertices, normals []vec3.T, faces [][3]uint32) error {
	buffer := doc.Buffers[0]
	var bt []byte
	buf := bytes.NewBuffer(bt)
	startLen := buffer.ByteLength

	indecs := &gltf.BufferView{}
	indecs.ByteOffset = startLen
	for _, f := range faces {
		binary.Write(buf, binary.LittleEndian, f)
	}
	indecs.ByteLength = uint32(buf.Len())
	indecs.Buffer = 0
	bvIndex := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, indecs)

	postions := &gltf.BufferView{}
	postions.ByteOffset = uint32(buf.Len()) + startLen
	binary.Write(buf, binary.LittleEndian, vertices)
	postions.ByteLength = uint32(buf.Len()) - postions.ByteOffset + startLen
	postions.Buffer = 0
	bvPos := uint32(len(doc.BufferViews))
	doc.BufferViews = append(doc.BufferViews, postions)

	normalView := &gltf.BufferView{}
	bvNl := uint32(len(doc.BufferViews))
	if len(normals) > 0 {
		normalView.ByteOffset = uint32(buf.Len()) + startLen
		binary.Write(buf, binary.LittleEndian, normals)
		normalView.ByteLength = uint32(buf.Len()) - normalView.ByteOffset + startLen
		normalView.Buffer = 0
		doc.BufferViews = append(doc.BufferViews, normalView)
	}
	buffer.ByteLength += uint32(buf.Len())
	buffer.Data = append(buffer.Data, buf.Bytes()...)

	mesh := &gltf.Mesh{}
	doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)))
	nde := &gltf.Node{}
	l := (uint32)(len(doc.Meshes))
	nde.Mesh = &l
	doc.Nodes = append(doc.Nodes, nde)

	idx := uint32(len(doc.Accessors))
	ps := &gltf.Primitive{}
	ps.Attributes = make(gltf.Attribute)
	ps.Indices = &idx
	posIndex := idx + 1
	ps.Attributes["POSITION"] = posIndex
	if len(normals) > 0 {
		ps.Attributes["NORMAL"] = posIndex + 1
	}
	ps.Mode = gltf.PrimitiveTriangles
	mesh.Primitives = append(mesh.Primitives, ps)

	indexacc := &gltf.Accessor{}
	indexacc.ComponentType = gltf.ComponentUint
	indexacc.Count = uint32(len(faces)) * 3
	indexacc.BufferView = &bvIndex
	doc.Accessors = append(doc.Accessors, indexacc)

	posacc := &gltf.Accessor{}
	posacc.ComponentType = gltf.ComponentFloat
	posacc.Type = gltf.AccessorVec3
	posacc.Count = uint32(len(vertices))
	posacc.BufferView = &bvPos
	box := ComputeBounds(vertices)
	posacc.Min = []float32{float32(box[0]), float32(box[1]), float32(box[2])}
	posacc.Max = []float32{float32(box[3]), float32(box[4]), float32(box[5])}
	doc.Accessors = append(doc.Accessors, posacc)

	if len(normals) > 0 {
		nlacc := &gltf.Accessor{}
		nlacc.ComponentType = gltf.ComponentFloat
		nlacc.Type = gltf.AccessorVec3
		nlacc.Count = uint32(len(normals))
		nlacc.BufferView = &bvNl
		doc.Accessors = append(doc.Accessors, nlacc)
	}
	doc.Meshes = append(doc.Meshes, mesh)

	return nil
}
