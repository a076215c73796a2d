package models

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/taigrr/softrast/internal/xlog"
	"github.com/taigrr/softrast/pkg/math3d"
	"github.com/taigrr/softrast/pkg/pixel"
)

// DiffuseSuffix is appended to a model's base name to find its texture.
const DiffuseSuffix = "_diffuse"

var (
	// ErrNoDiffuse is returned when no companion diffuse texture exists.
	ErrNoDiffuse = errors.New("no diffuse texture found")

	errMissingField = errors.New("missing fields")
	errFaceArity    = errors.New("face requires exactly 3 v/vt/vn tokens")
	errFaceToken    = errors.New("face token requires v/vt/vn")
)

// ParseError describes a malformed record in an OBJ file.
type ParseError struct {
	Line  int    // 1-based line number
	Text  string // the offending line
	Token string // the offending token, empty for structural errors
	Field int    // 1-based position of Token in the record (the tag is 0)
	Err   error
}

func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("line %d: field %d: invalid token %q: %v", e.Line, e.Field, e.Token, e.Err)
	}
	return fmt.Sprintf("line %d: %v: %q", e.Line, e.Err, e.Text)
}

func (e *ParseError) Unwrap() error { return e.Err }

// OBJLoader loads Wavefront OBJ meshes with a companion diffuse texture.
type OBJLoader struct {
	// RequireDiffuse makes a missing companion texture an error. When false
	// the mesh gets a 1×1 white texture instead.
	RequireDiffuse bool
	// FlipDiffuse mirrors the texture vertically after loading so that
	// v = 0 addresses the bottom row, as OBJ texture coordinates expect.
	FlipDiffuse bool
}

// NewOBJLoader creates a loader with default options.
func NewOBJLoader() *OBJLoader {
	return &OBJLoader{
		RequireDiffuse: true,
		FlipDiffuse:    true,
	}
}

// LoadOBJ loads path (".obj" is appended when there is no extension) and its
// companion "<base>_diffuse.<ext>" texture.
func LoadOBJ(path string) (*Mesh, error) {
	return NewOBJLoader().Load(path)
}

// Load reads the mesh at path and its companion diffuse texture.
func (l *OBJLoader) Load(path string) (*Mesh, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		ext = ".obj"
		path += ext
	}
	base := strings.TrimSuffix(path, ext)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open obj: %w", err)
	}
	defer f.Close()

	mesh, err := ParseOBJ(f, filepath.Base(base))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", filepath.Base(path), err)
	}

	diffuse, err := l.loadDiffuse(base)
	if err != nil {
		return nil, err
	}
	mesh.Diffuse = diffuse

	xlog.L().Debug("obj loaded",
		"path", path,
		"vertices", len(mesh.Vertices),
		"uvs", len(mesh.UVs),
		"normals", len(mesh.Normals),
		"faces", len(mesh.Faces),
		"diffuse", fmt.Sprintf("%dx%d", diffuse.Width(), diffuse.Height()),
	)
	return mesh, nil
}

// FindDiffuse returns the first existing "<base>_diffuse.<ext>" file, trying
// the extensions in pixel.Extensions order.
func FindDiffuse(base string) (string, bool) {
	for _, ext := range pixel.Extensions {
		p := base + DiffuseSuffix + ext
		if fi, err := os.Stat(p); err == nil && !fi.IsDir() {
			return p, true
		}
	}
	return "", false
}

func (l *OBJLoader) loadDiffuse(base string) (*pixel.Buffer, error) {
	p, ok := FindDiffuse(base)
	if !ok {
		if l.RequireDiffuse {
			return nil, fmt.Errorf("load %s%s: %w", filepath.Base(base), DiffuseSuffix, ErrNoDiffuse)
		}
		xlog.L().Warn("no diffuse texture, using white", "base", base)
		b := pixel.New(1, 1)
		b.Fill(pixel.White)
		return b, nil
	}

	b, err := pixel.Load(p)
	if err != nil {
		return nil, fmt.Errorf("load diffuse: %w", err)
	}
	if l.FlipDiffuse {
		b.FlipVertical()
	}
	return b, nil
}

// ParseOBJ parses the OBJ text from r. Only v, vt, vn and triangular f
// records are used; blank lines and any line containing '#' are skipped and
// other records are ignored. Face indices are converted to zero-based but not
// range checked. The returned mesh has no diffuse texture.
func ParseOBJ(r io.Reader, name string) (*Mesh, error) {
	mesh := NewMesh(name)
	ignored := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" || strings.Contains(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		switch tag, data := fields[0], fields[1:]; tag {
		case "v":
			v, err := parseFloats(data, 3, lineNo, line)
			if err != nil {
				return nil, err
			}
			mesh.Vertices = append(mesh.Vertices, math3d.V3(v[0], v[1], v[2]))
		case "vt":
			v, err := parseFloats(data, 2, lineNo, line)
			if err != nil {
				return nil, err
			}
			mesh.UVs = append(mesh.UVs, math3d.V2(v[0], v[1]))
		case "vn":
			v, err := parseFloats(data, 3, lineNo, line)
			if err != nil {
				return nil, err
			}
			mesh.Normals = append(mesh.Normals, math3d.V3(v[0], v[1], v[2]))
		case "f":
			face, err := parseFace(data, lineNo, line)
			if err != nil {
				return nil, err
			}
			mesh.Faces = append(mesh.Faces, face)
		default:
			ignored[tag]++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read obj: %w", err)
	}

	for tag, n := range ignored {
		xlog.L().Debug("obj records ignored", "tag", tag, "count", n)
	}

	mesh.CalculateBounds()
	return mesh, nil
}

// parseFloats parses the first n fields as floats. Extra fields are ignored.
func parseFloats(data []string, n, lineNo int, line string) ([]float64, error) {
	if len(data) < n {
		return nil, &ParseError{Line: lineNo, Text: line, Err: errMissingField}
	}
	out := make([]float64, n)
	for i := range n {
		f, err := strconv.ParseFloat(data[i], 64)
		if err != nil {
			return nil, &ParseError{Line: lineNo, Text: line, Token: data[i], Field: i + 1, Err: err}
		}
		out[i] = f
	}
	return out, nil
}

// parseFace parses exactly three "v/vt/vn" tokens into zero-based indices.
func parseFace(data []string, lineNo int, line string) (Face, error) {
	var face Face
	if len(data) != 3 {
		return face, &ParseError{Line: lineNo, Text: line, Err: errFaceArity}
	}
	for i, tok := range data {
		parts := strings.Split(tok, "/")
		if len(parts) < 3 {
			return face, &ParseError{Line: lineNo, Text: line, Token: tok, Field: i + 1, Err: errFaceToken}
		}
		var idx [3]int
		for j := range idx {
			n, err := strconv.Atoi(parts[j])
			if err != nil {
				return face, &ParseError{Line: lineNo, Text: line, Token: parts[j], Field: i + 1, Err: err}
			}
			idx[j] = n - 1
		}
		face[i] = FaceIndex{Vertex: idx[0], Texture: idx[1], Normal: idx[2]}
	}
	return face, nil
}
