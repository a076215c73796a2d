package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"

	"github.com/taigrr/softrast/internal/xlog"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/pixel"
)

// GLTFLoader loads glTF/GLB files into the same Mesh shape the OBJ loader
// produces. Every glTF vertex becomes one entry in Vertices, UVs and Normals,
// and each face corner uses the same index for all three.
type GLTFLoader struct {
	// CalculateNormals fills in smooth normals when the file has none.
	CalculateNormals bool
}

// NewGLTFLoader creates a new glTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		CalculateNormals: true,
	}
}

// LoadGLB loads a binary glTF (.glb) file.
func LoadGLB(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a glTF or GLB file. The first decodable image in the document
// becomes the diffuse texture; a document without images yields an
// untextured mesh.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	name := filepath.Base(path)
	mesh := NewMesh(name[:len(name)-len(filepath.Ext(name))])

	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
	}

	hasNormals := false
	for _, n := range mesh.Normals {
		if n.Len() > 0.001 {
			hasNormals = true
			break
		}
	}
	if l.CalculateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}

	mesh.Diffuse = firstImage(doc, filepath.Dir(path))
	mesh.CalculateBounds()

	xlog.L().Debug("gltf loaded",
		"path", path,
		"vertices", len(mesh.Vertices),
		"faces", len(mesh.Faces),
		"textured", mesh.Diffuse != nil,
	)
	return mesh, nil
}

// primitive is one triangle list with its per-vertex attributes. Normals
// and UVs may be shorter than Positions when the file omits them.
type primitive struct {
	Positions []math3d.Vec3
	Normals   []math3d.Vec3
	UVs       []math3d.Vec2
	Indices   []int
}

// readPrimitive decodes the attributes of p. It returns ok=false for
// primitives that are not triangle lists or carry no positions.
func readPrimitive(doc *gltf.Document, p *gltf.Primitive) (prim primitive, ok bool, err error) {
	if p.Mode != gltf.PrimitiveTriangles && p.Mode != 0 {
		return prim, false, nil
	}
	attr, found := p.Attributes[gltf.POSITION]
	if !found {
		return prim, false, nil
	}

	if prim.Positions, err = readVec3s(doc, attr); err != nil {
		return prim, false, fmt.Errorf("positions: %w", err)
	}
	if attr, found = p.Attributes[gltf.NORMAL]; found {
		if prim.Normals, err = readVec3s(doc, attr); err != nil {
			return prim, false, fmt.Errorf("normals: %w", err)
		}
	}
	if attr, found = p.Attributes[gltf.TEXCOORD_0]; found {
		if prim.UVs, err = readVec2s(doc, attr); err != nil {
			return prim, false, fmt.Errorf("texcoords: %w", err)
		}
	}

	if p.Indices == nil {
		prim.Indices = make([]int, len(prim.Positions))
		for i := range prim.Indices {
			prim.Indices[i] = i
		}
	} else if prim.Indices, err = readIndices(doc, *p.Indices); err != nil {
		return prim, false, fmt.Errorf("indices: %w", err)
	}
	return prim, true, nil
}

// processMesh appends the triangle primitives of m to mesh. The three
// attribute slices of mesh grow in lockstep so one index addresses all of
// them; glTF texture coordinates already put v=0 at the top image row.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for i, p := range m.Primitives {
		prim, ok, err := readPrimitive(doc, p)
		if err != nil {
			return fmt.Errorf("primitive %d: %w", i, err)
		}
		if !ok {
			continue
		}

		base := len(mesh.Vertices)
		for j, pos := range prim.Positions {
			var (
				n  math3d.Vec3
				uv math3d.Vec2
			)
			if j < len(prim.Normals) {
				n = prim.Normals[j]
			}
			if j < len(prim.UVs) {
				uv = prim.UVs[j]
			}
			mesh.Vertices = append(mesh.Vertices, pos)
			mesh.Normals = append(mesh.Normals, n)
			mesh.UVs = append(mesh.UVs, uv)
		}

		for j := 0; j+2 < len(prim.Indices); j += 3 {
			var f Face
			for c := range f {
				v := base + prim.Indices[j+c]
				f[c] = FaceIndex{Vertex: v, Texture: v, Normal: v}
			}
			mesh.Faces = append(mesh.Faces, f)
		}
	}
	return nil
}

// firstImage decodes the first usable image of the document, embedded or
// external, or returns nil.
func firstImage(doc *gltf.Document, dir string) *pixel.Buffer {
	for i, img := range doc.Images {
		var data []byte
		switch {
		case img.BufferView != nil:
			bv := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data == nil {
				continue
			}
			data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
		case img.URI != "":
			raw, err := os.ReadFile(filepath.Join(dir, img.URI))
			if err != nil {
				xlog.L().Warn("skipping gltf image", "index", i, "uri", img.URI, "err", err)
				continue
			}
			data = raw
		default:
			continue
		}

		b, err := pixel.Decode(bytes.NewReader(data))
		if err != nil {
			xlog.L().Warn("skipping gltf image", "index", i, "err", err)
			continue
		}
		return b
	}
	return nil
}

// readFloats returns the float32 components of a typ accessor, n per
// element, widened to float64.
func readFloats(doc *gltf.Document, idx int, typ gltf.AccessorType, n int) ([]float64, error) {
	acc := doc.Accessors[idx]
	if acc.Type != typ {
		return nil, fmt.Errorf("accessor %d: expected %v, got %v", idx, typ, acc.Type)
	}
	if acc.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("accessor %d: expected float components, got %v", idx, acc.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, acc, 4*n)
	if err != nil {
		return nil, err
	}

	out := make([]float64, 0, acc.Count*n)
	for i := range acc.Count {
		elem := data[start+i*stride:]
		for c := range n {
			out = append(out, float64(math.Float32frombits(binary.LittleEndian.Uint32(elem[4*c:]))))
		}
	}
	return out, nil
}

func readVec3s(doc *gltf.Document, idx int) ([]math3d.Vec3, error) {
	f, err := readFloats(doc, idx, gltf.AccessorVec3, 3)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec3, len(f)/3)
	for i := range out {
		out[i] = math3d.V3(f[3*i], f[3*i+1], f[3*i+2])
	}
	return out, nil
}

func readVec2s(doc *gltf.Document, idx int) ([]math3d.Vec2, error) {
	f, err := readFloats(doc, idx, gltf.AccessorVec2, 2)
	if err != nil {
		return nil, err
	}
	out := make([]math3d.Vec2, len(f)/2)
	for i := range out {
		out[i] = math3d.V2(f[2*i], f[2*i+1])
	}
	return out, nil
}

// readIndices reads scalar index data from a glTF accessor.
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]

	var size int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		size = 1
	case gltf.ComponentUshort:
		size = 2
	case gltf.ComponentUint:
		size = 4
	default:
		return nil, fmt.Errorf("unexpected index type: %v", accessor.ComponentType)
	}

	data, start, stride, err := accessorBytes(doc, accessor, size)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := range result {
		o := start + i*stride
		switch size {
		case 1:
			result[i] = int(data[o])
		case 2:
			result[i] = int(binary.LittleEndian.Uint16(data[o:]))
		default:
			result[i] = int(binary.LittleEndian.Uint32(data[o:]))
		}
	}
	return result, nil
}

// accessorBytes returns the embedded buffer behind accessor with the byte
// offset of its first element and the element stride.
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elemSize int) (data []byte, start, stride int, err error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.URI != "" && buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("external buffers not supported yet")
	}
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("buffer has no data")
	}

	start = bufferView.ByteOffset + accessor.ByteOffset
	stride = bufferView.ByteStride
	if stride == 0 {
		stride = elemSize
	}
	if end := start + (accessor.Count-1)*stride + elemSize; accessor.Count > 0 && end > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor overruns buffer (%d > %d)", end, len(buffer.Data))
	}
	return buffer.Data, start, stride, nil
}
