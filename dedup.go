package geomcodec

import (
	"encoding/binary"
	"math"

	"github.com/flywave/go3d/vec3"
)

// DeduplicateAttributeValues merges bit-identical values inside each
// attribute's backing array into a single shared slot and rewrites the
// point→slot mapping. The point count is unaffected, only the backing
// storage shrinks. Running it again is a no-op.
func (m *Mesh) DeduplicateAttributeValues() {
	for _, att := range m.attributes {
		att.deduplicateValues(int(m.numPoints))
	}
}

func (a *PointAttribute) deduplicateValues(numPoints int) {
	type bitKey [3]uint32
	seen := make(map[bitKey]uint32, len(a.values))
	remap := make([]uint32, len(a.values))
	var unique []vec3.T
	for i, v := range a.values {
		k := bitKey{math.Float32bits(v[0]), math.Float32bits(v[1]), math.Float32bits(v[2])}
		slot, ok := seen[k]
		if !ok {
			slot = uint32(len(unique))
			unique = append(unique, v)
			seen[k] = slot
		}
		remap[i] = slot
	}
	if len(unique) == len(a.values) {
		return
	}
	a.SetExplicitMapping(numPoints)
	for p := range a.mapping {
		a.mapping[p] = remap[a.mapping[p]]
	}
	a.values = unique
}

// DeduplicatePointIds merges points that resolve to the same value
// slot in every attribute into one point identifier, rewriting face
// references and the attribute mappings. Point order of first
// occurrence is preserved, so a mesh without duplicate points is left
// untouched. Running it again is a no-op.
func (m *Mesh) DeduplicatePointIds() {
	if m.numPoints == 0 || len(m.attributes) == 0 {
		return
	}
	seen := make(map[string]uint32, m.numPoints)
	remap := make([]uint32, m.numPoints)
	reps := make([]uint32, 0, m.numPoints)
	kb := make([]byte, len(m.attributes)*4)
	for p := uint32(0); p < m.numPoints; p++ {
		for ai, att := range m.attributes {
			binary.LittleEndian.PutUint32(kb[ai*4:], att.MappedIndex(p))
		}
		id, ok := seen[string(kb)]
		if !ok {
			id = uint32(len(reps))
			reps = append(reps, p)
			seen[string(kb)] = id
		}
		remap[p] = id
	}
	if len(reps) == int(m.numPoints) {
		return
	}
	for _, att := range m.attributes {
		mapping := make([]uint32, len(reps))
		for np, op := range reps {
			mapping[np] = att.MappedIndex(op)
		}
		att.identity = false
		att.mapping = mapping
	}
	for fi := range m.Faces {
		for c := 0; c < 3; c++ {
			m.Faces[fi][c] = remap[m.Faces[fi][c]]
		}
	}
	m.numPoints = uint32(len(reps))
}
