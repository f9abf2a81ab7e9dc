package geomcodec

import (
	"errors"

	"github.com/flywave/go3d/vec3"
)

// ExtractMesh walks a decoded mesh back into flat arrays. Extraction
// always iterates point indices and resolves each through the
// attribute's mapping table; the backing value array may be shorter
// than the point count after deduplication, so its length is never
// used as the logical length of a channel.
func ExtractMesh(m *Mesh) ([]vec3.T, []vec3.T, [][3]uint32, error) {
	pointCount := m.NumPoints()

	vertAtt := m.NamedAttribute(ATTR_POSITION)
	if vertAtt == nil {
		return nil, nil, nil, errors.New("decoded mesh appears to have no vertices")
	}
	vertices := make([]vec3.T, pointCount)
	for i := uint32(0); i < pointCount; i++ {
		v, ok := vertAtt.ConvertValue(vertAtt.MappedIndex(i))
		if !ok {
			return nil, nil, nil, &ConversionError{Attr: ATTR_POSITION, Point: i}
		}
		vertices[i] = v
	}

	normAtt := m.NamedAttribute(ATTR_NORMAL)
	normalCount := uint32(0)
	if normAtt != nil {
		// Not normAtt.Size(): unique normal values may be fewer than
		// points, yet every point still resolves to a normal.
		normalCount = pointCount
	}
	normals := make([]vec3.T, normalCount)
	for i := uint32(0); i < normalCount; i++ {
		n, ok := normAtt.ConvertValue(normAtt.MappedIndex(i))
		if !ok {
			return nil, nil, nil, &ConversionError{Attr: ATTR_NORMAL, Point: i}
		}
		normals[i] = n
	}

	faces := make([][3]uint32, m.NumFaces())
	copy(faces, m.Faces)

	return vertices, normals, faces, nil
}
