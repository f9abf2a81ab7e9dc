package geomcodec

import (
	"bytes"
	"testing"
)

func TestToPolyform(t *testing.T) {
	vertices, normals, faces := quadArrays()
	mesh := ToPolyform(vertices, normals, faces)
	if mesh.PrimitiveCount() != len(faces) {
		t.Fatalf("primitive count %d, want %d", mesh.PrimitiveCount(), len(faces))
	}
}

func TestWritePly(t *testing.T) {
	vertices, normals, faces := quadArrays()
	var buf bytes.Buffer
	if err := WritePly(&buf, vertices, normals, faces); err != nil {
		t.Fatalf("write ply: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("ply")) {
		t.Fatal("missing ply magic")
	}
}
