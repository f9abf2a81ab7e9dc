package geomcodec

import (
	"errors"
	"testing"

	"github.com/flywave/go3d/vec3"
)

func quadArrays() ([]vec3.T, []vec3.T, [][3]uint32) {
	vertices := []vec3.T{
		{0, 0, 0},
		{1, 0, 0},
		{1, 1, 0},
		{0, 1, 0},
	}
	normals := []vec3.T{
		{0, 0, 1},
		{0, 0, 1},
		{0, 0, 1},
		{0, 0, 1},
	}
	faces := [][3]uint32{
		{0, 1, 2},
		{0, 2, 3},
	}
	return vertices, normals, faces
}

func TestValidateArraysFaceOutOfRange(t *testing.T) {
	vertices := []vec3.T{{0, 0, 0}, {1, 0, 0}}
	faces := [][3]uint32{{0, 1, 5}}

	err := ValidateArrays(vertices, nil, faces)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateArraysNormalCountMismatch(t *testing.T) {
	vertices := []vec3.T{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}
	normals := []vec3.T{{0, 0, 1}, {0, 0, 1}}
	faces := [][3]uint32{{0, 1, 2}}

	err := ValidateArrays(vertices, normals, faces)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestValidateArraysOk(t *testing.T) {
	vertices, normals, faces := quadArrays()
	if err := ValidateArrays(vertices, normals, faces); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := ValidateArrays(vertices, nil, faces); err != nil {
		t.Fatalf("unexpected error without normals: %v", err)
	}
	if err := ValidateArrays(nil, nil, nil); err != nil {
		t.Fatalf("unexpected error for empty arrays: %v", err)
	}
}

func TestBuildMesh(t *testing.T) {
	vertices, normals, faces := quadArrays()
	m := BuildMesh(vertices, normals, faces)

	if m.NumPoints() != 4 {
		t.Fatalf("expected 4 points, got %d", m.NumPoints())
	}
	if m.NumFaces() != 2 {
		t.Fatalf("expected 2 faces, got %d", m.NumFaces())
	}
	if m.AttributeCount() != 2 {
		t.Fatalf("expected 2 attributes, got %d", m.AttributeCount())
	}

	vertAtt := m.NamedAttribute(ATTR_POSITION)
	if vertAtt == nil {
		t.Fatal("missing position attribute")
	}
	if !vertAtt.IsIdentityMapping() {
		t.Fatal("fresh position attribute should have identity mapping")
	}
	for i := uint32(0); i < m.NumPoints(); i++ {
		v, ok := vertAtt.ConvertValue(vertAtt.MappedIndex(i))
		if !ok || v != vertices[i] {
			t.Fatalf("vertex %d: got %v want %v", i, v, vertices[i])
		}
	}

	normAtt := m.NamedAttribute(ATTR_NORMAL)
	if normAtt == nil {
		t.Fatal("missing normal attribute")
	}
	if normAtt.Size() != len(normals) {
		t.Fatalf("normal attribute size %d, want %d", normAtt.Size(), len(normals))
	}

	for fi, f := range faces {
		if m.Faces[fi] != f {
			t.Fatalf("face %d: got %v want %v", fi, m.Faces[fi], f)
		}
	}
}

func TestBuildMeshWithoutNormals(t *testing.T) {
	vertices, _, faces := quadArrays()
	m := BuildMesh(vertices, nil, faces)
	if m.AttributeCount() != 1 {
		t.Fatalf("expected 1 attribute, got %d", m.AttributeCount())
	}
	if m.NamedAttribute(ATTR_NORMAL) != nil {
		t.Fatal("unexpected normal attribute")
	}
}

func TestComputeBounds(t *testing.T) {
	vertices, _, _ := quadArrays()
	box := ComputeBounds(vertices)
	want := [6]float64{0, 0, 0, 1, 1, 0}
	if *box != want {
		t.Fatalf("bounds %v, want %v", *box, want)
	}
}

func TestComputeBoundsEmpty(t *testing.T) {
	box := ComputeBounds(nil)
	if *box != [6]float64{} {
		t.Fatalf("empty bounds %v, want zeros", *box)
	}
}
