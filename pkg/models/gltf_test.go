package models

import (
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
)

func TestLoadGLBInvalidPath(t *testing.T) {
	_, err := LoadGLB("/nonexistent/path.glb")
	if err == nil {
		t.Error("Expected error for nonexistent file")
	}
}

func TestLoadGLBGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.glb")
	if err := os.WriteFile(path, []byte("definitely not gltf"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadGLB(path); err == nil {
		t.Error("Expected error for malformed file")
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.CalculateNormals {
		t.Error("CalculateNormals should default to true")
	}
}

// floatDocument packs vals as little-endian float32 into a single embedded
// buffer behind accessor 0.
func floatDocument(typ gltf.AccessorType, count int, vals ...float32) *gltf.Document {
	data := make([]byte, 0, 4*len(vals))
	for _, v := range vals {
		data = binary.LittleEndian.AppendUint32(data, math.Float32bits(v))
	}
	return &gltf.Document{
		Buffers:     []*gltf.Buffer{{ByteLength: len(data), Data: data}},
		BufferViews: []*gltf.BufferView{{Buffer: 0, ByteLength: len(data)}},
		Accessors: []*gltf.Accessor{{
			BufferView:    gltf.Index(0),
			ComponentType: gltf.ComponentFloat,
			Count:         count,
			Type:          typ,
		}},
	}
}

func TestReadPrimitiveSequential(t *testing.T) {
	doc := floatDocument(gltf.AccessorVec3, 3,
		0, 0, 0,
		1, 0, 0,
		0, 1.5, 0,
	)
	p := &gltf.Primitive{Attributes: map[string]int{gltf.POSITION: 0}}

	prim, ok, err := readPrimitive(doc, p)
	if err != nil || !ok {
		t.Fatalf("readPrimitive: ok=%v err=%v", ok, err)
	}
	if len(prim.Positions) != 3 || prim.Positions[2].Y != 1.5 {
		t.Errorf("positions = %+v", prim.Positions)
	}
	if len(prim.Indices) != 3 || prim.Indices[2] != 2 {
		t.Errorf("indices = %v, want [0 1 2]", prim.Indices)
	}

	mesh := NewMesh("tri")
	if err := NewGLTFLoader().processMesh(doc, &gltf.Mesh{Primitives: []*gltf.Primitive{p}}, mesh); err != nil {
		t.Fatal(err)
	}
	if len(mesh.Faces) != 1 || len(mesh.UVs) != 3 || len(mesh.Normals) != 3 {
		t.Errorf("faces=%d uvs=%d normals=%d", len(mesh.Faces), len(mesh.UVs), len(mesh.Normals))
	}
	if err := mesh.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestReadPrimitiveSkipsWithoutPositions(t *testing.T) {
	doc := floatDocument(gltf.AccessorVec3, 0)
	_, ok, err := readPrimitive(doc, &gltf.Primitive{Attributes: map[string]int{}})
	if ok || err != nil {
		t.Errorf("ok=%v err=%v, want skipped", ok, err)
	}
}

func TestReadFloatsErrors(t *testing.T) {
	doc := floatDocument(gltf.AccessorVec2, 4, 1, 2)
	if _, err := readVec3s(doc, 0); err == nil {
		t.Error("expected type mismatch error")
	}
	if _, err := readVec2s(doc, 0); err == nil {
		t.Error("expected overrun error")
	}

	uv := floatDocument(gltf.AccessorVec2, 1, 0.25, 0.75)
	got, err := readVec2s(uv, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].X != 0.25 || got[0].Y != 0.75 {
		t.Errorf("readVec2s = %+v", got)
	}
}
