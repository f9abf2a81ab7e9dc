package geomcodec

import (
	"io"

	"github.com/EliCDavis/polyform/formats/ply"
	"github.com/EliCDavis/polyform/modeling"
	"github.com/EliCDavis/vector/vector3"
	"github.com/flywave/go3d/vec3"
)

// ToPolyform converts decoded arrays into a polyform triangle mesh.
func ToPolyform(vertices, normals []vec3.T, faces [][3]uint32) modeling.Mesh {
	positionData := make([]vector3.Float64, 0, len(vertices))
	for _, v := range vertices {
		positionData = append(positionData, vector3.New(float64(v[0]), float64(v[1]), float64(v[2])))
	}

	v3Data := map[string][]vector3.Vector[float64]{
		modeling.PositionAttribute: positionData,
	}
	if len(normals) > 0 {
		normalData := make([]vector3.Float64, 0, len(normals))
		for _, n := range normals {
			normalData = append(normalData, vector3.New(float64(n[0]), float64(n[1]), float64(n[2])))
		}
		v3Data[modeling.NormalAttribute] = normalData
	}

	indices := make([]int, 0, len(faces)*3)
	for _, f := range faces {
		indices = append(indices, int(f[0]), int(f[1]), int(f[2]))
	}

	return modeling.NewMesh(indices).SetFloat3Data(v3Data)
}

// WritePly writes decoded arrays to w as binary PLY.
func WritePly(w io.Writer, vertices, normals []vec3.T, faces [][3]uint32) error {
	return ply.WriteBinary(w, ToPolyform(vertices, normals, faces))
}
