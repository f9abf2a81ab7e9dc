package geomcodec

import (
	"fmt"
	"math"

	"github.com/flywave/go3d/vec3"
)

// PointAttribute is a per-point channel of 3-float values. Values live
// in a compact backing array; mapping translates a point index to a
// slot in that array. The mapping starts out as identity and diverges
// once values are deduplicated, so the backing array may be shorter
// than the point count.
type PointAttribute struct {
	Type     AttributeType
	values   []vec3.T
	mapping  []uint32
	identity bool
}

func NewPointAttribute(t AttributeType, count int) *PointAttribute {
	att := &PointAttribute{Type: t, values: make([]vec3.T, count)}
	att.SetIdentityMapping()
	return att
}

// Size returns the backing value count, which after deduplication may
// be smaller than the mesh point count.
func (a *PointAttribute) Size() int {
	return len(a.values)
}

func (a *PointAttribute) IsIdentityMapping() bool {
	return a.identity
}

func (a *PointAttribute) SetIdentityMapping() {
	a.identity = true
	a.mapping = nil
}

// SetExplicitMapping switches the attribute to an explicit point→slot
// table of the given point count, initialized from the current state.
func (a *PointAttribute) SetExplicitMapping(numPoints int) {
	if !a.identity && len(a.mapping) == numPoints {
		return
	}
	mapping := make([]uint32, numPoints)
	for i := range mapping {
		if a.identity {
			mapping[i] = uint32(i)
		} else if i < len(a.mapping) {
			mapping[i] = a.mapping[i]
		}
	}
	a.identity = false
	a.mapping = mapping
}

// MappedIndex resolves a point index to its value-array slot.
func (a *PointAttribute) MappedIndex(p uint32) uint32 {
	if a.identity {
		return p
	}
	return a.mapping[p]
}

func (a *PointAttribute) SetPointMapEntry(p, slot uint32) {
	a.mapping[p] = slot
}

func (a *PointAttribute) SetValue(slot uint32, v vec3.T) {
	a.values[slot] = v
}

// ConvertValue reads the value at the given slot as 3 floats. The
// second return is false when the slot does not resolve into the
// backing array.
func (a *PointAttribute) ConvertValue(slot uint32) (vec3.T, bool) {
	if int(slot) >= len(a.values) {
		return vec3.T{}, false
	}
	return a.values[slot], true
}

// Mesh is the attributed form a codec works on: a point count, one
// value channel per attribute, and triangle faces referencing point
// indices.
type Mesh struct {
	numPoints  uint32
	attributes []*PointAttribute
	Faces      [][3]uint32
}

func NewMesh() *Mesh {
	return &Mesh{}
}

func (m *Mesh) NumPoints() uint32 {
	return m.numPoints
}

func (m *Mesh) SetNumPoints(n uint32) {
	m.numPoints = n
}

func (m *Mesh) NumFaces() int {
	return len(m.Faces)
}

func (m *Mesh) AttributeCount() int {
	return len(m.attributes)
}

func (m *Mesh) Attribute(i int) *PointAttribute {
	return m.attributes[i]
}

func (m *Mesh) AddAttribute(att *PointAttribute) int {
	m.attributes = append(m.attributes, att)
	return len(m.attributes) - 1
}

// NamedAttribute returns the first attribute of the given type, or nil.
func (m *Mesh) NamedAttribute(t AttributeType) *PointAttribute {
	for _, att := range m.attributes {
		if att.Type == t {
			return att
		}
	}
	return nil
}

func (m *Mesh) SetFace(i int, f [3]uint32) {
	m.Faces[i] = f
}

func (m *Mesh) SetNumFaces(n int) {
	m.Faces = make([][3]uint32, n)
}

// ValidateArrays checks the flat arrays before a mesh is built: every
// face index must address a vertex, and the normal count must be zero
// or match the vertex count.
func ValidateArrays(vertices, normals []vec3.T, faces [][3]uint32) error {
	vertexCount := uint32(len(vertices))
	var maxVertex uint32
	for _, f := range faces {
		for _, vi := range f {
			if vi > maxVertex {
				maxVertex = vi
			}
		}
	}
	if len(faces) > 0 && maxVertex >= vertexCount {
		return &ValidationError{Msg: fmt.Sprintf("face indexes exceed vertices length: index %d, %d vertices", maxVertex, vertexCount)}
	}
	if len(normals) > 0 && len(normals) != len(vertices) {
		return &ValidationError{Msg: fmt.Sprintf("normals array size %d does not correspond to vertices array size %d", len(normals), len(vertices))}
	}
	return nil
}

// BuildMesh constructs an attributed mesh from validated arrays. Point
// count equals the vertex count, attributes are populated in vertex
// order with identity mappings, and faces are copied in order.
func BuildMesh(vertices, normals []vec3.T, faces [][3]uint32) *Mesh {
	m := NewMesh()
	m.SetNumPoints(uint32(len(vertices)))
	m.SetNumFaces(len(faces))

	vertAtt := NewPointAttribute(ATTR_POSITION, len(vertices))
	for vi, v := range vertices {
		vertAtt.SetValue(uint32(vi), v)
	}
	m.AddAttribute(vertAtt)

	if len(normals) > 0 {
		normAtt := NewPointAttribute(ATTR_NORMAL, len(normals))
		for ni, n := range normals {
			normAtt.SetValue(uint32(ni), n)
		}
		m.AddAttribute(normAtt)
	}

	for fi, f := range faces {
		m.SetFace(fi, f)
	}
	return m
}

// ComputeBounds returns the axis-aligned bounding box of the vertices
// as [minX,minY,minZ,maxX,maxY,maxZ].
func ComputeBounds(vertices []vec3.T) *[6]float64 {
	if len(vertices) == 0 {
		return &[6]float64{}
	}
	minX := math.MaxFloat64
	minY := math.MaxFloat64
	minZ := math.MaxFloat64
	maxX := -math.MaxFloat64
	maxY := -math.MaxFloat64
	maxZ := -math.MaxFloat64
	for i := range vertices {
		minX = math.Min(minX, float64(vertices[i][0]))
		minY = math.Min(minY, float64(vertices[i][1]))
		minZ = math.Min(minZ, float64(vertices[i][2]))

		maxX = math.Max(maxX, float64(vertices[i][0]))
		maxY = math.Max(maxY, float64(vertices[i][1]))
		maxZ = math.Max(maxZ, float64(vertices[i][2]))
	}
	return &[6]float64{minX, minY, minZ, maxX, maxY, maxZ}
}
