package geomcodec

import (
	"testing"

	"github.com/flywave/go3d/vec3"
)

func TestDeduplicateAttributeValues(t *testing.T) {
	vertices := []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}}
	faces := [][3]uint32{{0, 1, 2}}
	m := BuildMesh(vertices, nil, faces)

	m.DeduplicateAttributeValues()

	att := m.NamedAttribute(ATTR_POSITION)
	if att.Size() != 2 {
		t.Fatalf("expected 2 unique values, got %d", att.Size())
	}
	if m.NumPoints() != 3 {
		t.Fatalf("value dedup must not change point count, got %d", m.NumPoints())
	}
	for i, v := range vertices {
		got, ok := att.ConvertValue(att.MappedIndex(uint32(i)))
		if !ok || got != v {
			t.Fatalf("point %d resolves to %v, want %v", i, got, v)
		}
	}
	if att.MappedIndex(0) != att.MappedIndex(2) {
		t.Fatal("duplicate values should share a slot")
	}
}

func TestDeduplicatePointIds(t *testing.T) {
	vertices := []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}, {0, 1, 0}}
	faces := [][3]uint32{{0, 1, 2}, {2, 1, 3}}
	m := BuildMesh(vertices, nil, faces)

	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()

	if m.NumPoints() != 3 {
		t.Fatalf("expected 3 points after dedup, got %d", m.NumPoints())
	}
	if m.Faces[0] != [3]uint32{0, 1, 0} {
		t.Fatalf("face 0 not rewritten: %v", m.Faces[0])
	}
	if m.Faces[1] != [3]uint32{0, 1, 2} {
		t.Fatalf("face 1 not rewritten: %v", m.Faces[1])
	}

	att := m.NamedAttribute(ATTR_POSITION)
	want := []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	for i, v := range want {
		got, ok := att.ConvertValue(att.MappedIndex(uint32(i)))
		if !ok || got != v {
			t.Fatalf("point %d resolves to %v, want %v", i, got, v)
		}
	}
}

// Two points with the same position but different normals must stay
// distinct.
func TestDeduplicatePointIdsRespectsAllAttributes(t *testing.T) {
	vertices := []vec3.T{{0, 0, 0}, {0, 0, 0}, {1, 0, 0}}
	normals := []vec3.T{{0, 0, 1}, {0, 1, 0}, {0, 0, 1}}
	faces := [][3]uint32{{0, 1, 2}}
	m := BuildMesh(vertices, normals, faces)

	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()

	if m.NumPoints() != 3 {
		t.Fatalf("points with distinct normals were merged: %d points", m.NumPoints())
	}
}

func TestDeduplicateIdempotent(t *testing.T) {
	vertices := []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 0, 0}, {0, 1, 0}}
	normals := []vec3.T{{0, 0, 1}, {0, 0, 1}, {0, 0, 1}, {0, 0, 1}}
	faces := [][3]uint32{{0, 1, 2}, {2, 1, 3}}
	m := BuildMesh(vertices, normals, faces)

	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()

	points := m.NumPoints()
	facesAfter := make([][3]uint32, len(m.Faces))
	copy(facesAfter, m.Faces)
	posSize := m.NamedAttribute(ATTR_POSITION).Size()
	normSize := m.NamedAttribute(ATTR_NORMAL).Size()

	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()

	if m.NumPoints() != points {
		t.Fatalf("second pass changed point count: %d -> %d", points, m.NumPoints())
	}
	if m.NamedAttribute(ATTR_POSITION).Size() != posSize {
		t.Fatal("second pass changed position storage")
	}
	if m.NamedAttribute(ATTR_NORMAL).Size() != normSize {
		t.Fatal("second pass changed normal storage")
	}
	for i := range facesAfter {
		if m.Faces[i] != facesAfter[i] {
			t.Fatalf("second pass changed face %d: %v -> %v", i, facesAfter[i], m.Faces[i])
		}
	}
}

func TestDeduplicateEmptyMesh(t *testing.T) {
	m := NewMesh()
	m.DeduplicateAttributeValues()
	m.DeduplicatePointIds()
	if m.NumPoints() != 0 {
		t.Fatalf("empty mesh changed: %d points", m.NumPoints())
	}
}
