package geometry

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/ghodss/yaml"
	"gonum.org/v1/gonum/spatial/r3"
)

// ReadFile loads shapes from a YAML shape file (.yaml, .yml) or an SU2 mesh (.su2) into the store
func (st *Store) ReadFile(filename string) (err error) {
	var (
		data   []byte
		shapes []*Shape
	)
	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".yaml", ".yml":
		if data, err = os.ReadFile(filename); err != nil {
			return
		}
		if shapes, err = ParseShapes(data); err != nil {
			return fmt.Errorf("%s: %w", filename, err)
		}
	case ".su2":
		var s *Shape
		if s, err = ReadSU2(filename); err != nil {
			return
		}
		shapes = []*Shape{s}
	default:
		return fmt.Errorf("unsupported shape format: %s", ext)
	}
	st.Add(shapes...)
	return
}

type faceSpec struct {
	Name     string         `json:"Name"`
	Vertices [][3]float64   `json:"Vertices"`
	Polygons [][][3]float64 `json:"Polygons"`
}

type shapeSpec struct {
	Name  string     `json:"Name"`
	Faces []faceSpec `json:"Faces"`
}

// ParseShapes reads shapes described in YAML:
//
//	Shapes:
//	  - Name: Box
//	    Faces:
//	      - Name: Face1
//	        Vertices: [[0,0,0], [0,1,0], [0,1,1], [0,0,1]]
//
// A face may instead list several polygons under Polygons.
func ParseShapes(data []byte) (shapes []*Shape, err error) {
	var doc struct {
		Shapes []shapeSpec `json:"Shapes"`
	}
	if err = yaml.Unmarshal(data, &doc); err != nil {
		return
	}
	for _, ss := range doc.Shapes {
		if ss.Name == "" {
			return nil, fmt.Errorf("shape without a name")
		}
		s := NewShape(ss.Name)
		for _, fs := range ss.Faces {
			polys := fs.Polygons
			if len(fs.Vertices) > 0 {
				polys = append([][][3]float64{fs.Vertices}, polys...)
			}
			if fs.Name == "" || len(polys) == 0 {
				return nil, fmt.Errorf("shape %s: each face needs a name and vertices", ss.Name)
			}
			var poly [][]r3.Vec
			for _, p := range polys {
				if len(p) < 3 {
					return nil, fmt.Errorf("shape %s face %s: polygon needs at least 3 vertices", ss.Name, fs.Name)
				}
				pv := make([]r3.Vec, len(p))
				for i, v := range p {
					pv[i] = r3.Vec{X: v[0], Y: v[1], Z: v[2]}
				}
				poly = append(poly, pv)
			}
			s.AddFace(NewPolyFace(fs.Name, poly))
		}
		shapes = append(shapes, s)
	}
	return
}

// ReadSU2 reads the boundary markers of an SU2 native mesh as the faces of one shape named
// after the file. Volume elements are skipped.
func ReadSU2(filename string) (*Shape, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	name := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return ParseSU2(name, file)
}

// su2BoundaryNodes maps SU2/VTK boundary element types to their node counts
var su2BoundaryNodes = map[int]int{
	3: 2, // VTK_LINE
	5: 3, // VTK_TRIANGLE
	9: 4, // VTK_QUAD
}

func ParseSU2(name string, r io.Reader) (*Shape, error) {
	var (
		scanner  = bufio.NewScanner(r)
		vertices []r3.Vec
		ndime    int
		shape    = NewShape(name)
		hasNDIME bool
	)
	next := func() (string, bool) {
		for scanner.Scan() {
			line := scanner.Text()
			if idx := strings.Index(line, "%"); idx >= 0 {
				line = line[:idx]
			}
			if line = strings.TrimSpace(line); line != "" {
				return line, true
			}
		}
		return "", false
	}
	for {
		line, ok := next()
		if !ok {
			break
		}
		switch {
		case strings.HasPrefix(line, "NDIME="):
			hasNDIME = true
			fmt.Sscanf(line, "NDIME=%d", &ndime)
			if ndime != 2 && ndime != 3 {
				return nil, fmt.Errorf("unsupported dimension: NDIME=%d", ndime)
			}
		case strings.HasPrefix(line, "NPOIN="):
			var npoin int
			fmt.Sscanf(line, "NPOIN=%d", &npoin)
			vertices = make([]r3.Vec, npoin)
			for i := 0; i < npoin; i++ {
				l, ok := next()
				if !ok {
					return nil, fmt.Errorf("unexpected EOF reading nodes")
				}
				fields := strings.Fields(l)
				if len(fields) < ndime {
					return nil, fmt.Errorf("invalid node line: expected at least %d coordinates", ndime)
				}
				var c [3]float64
				for j := 0; j < ndime; j++ {
					v, err := strconv.ParseFloat(fields[j], 64)
					if err != nil {
						return nil, fmt.Errorf("invalid coordinate: %v", err)
					}
					c[j] = v
				}
				vertices[i] = r3.Vec{X: c[0], Y: c[1], Z: c[2]}
			}
		case strings.HasPrefix(line, "NELEM="):
			var nelem int
			fmt.Sscanf(line, "NELEM=%d", &nelem)
			for i := 0; i < nelem; i++ {
				if _, ok := next(); !ok {
					return nil, fmt.Errorf("unexpected EOF reading elements")
				}
			}
		case strings.HasPrefix(line, "NMARK="):
			var nmark int
			fmt.Sscanf(line, "NMARK=%d", &nmark)
			for i := 0; i < nmark; i++ {
				face, err := readMarker(next, vertices)
				if err != nil {
					return nil, err
				}
				shape.AddFace(face)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading file: %v", err)
	}
	if !hasNDIME {
		return nil, fmt.Errorf("missing required NDIME= section")
	}
	return shape, nil
}

func readMarker(next func() (string, bool), vertices []r3.Vec) (*PolyFace, error) {
	markerLine, ok := next()
	if !ok || !strings.HasPrefix(markerLine, "MARKER_TAG=") {
		return nil, fmt.Errorf("expected MARKER_TAG=, got: %s", markerLine)
	}
	tag := strings.TrimSpace(strings.TrimPrefix(markerLine, "MARKER_TAG="))
	elemLine, ok := next()
	var nelems int
	if _, err := fmt.Sscanf(elemLine, "MARKER_ELEMS=%d", &nelems); !ok || err != nil {
		return nil, fmt.Errorf("invalid MARKER_ELEMS line for %s: %s", tag, elemLine)
	}
	polys := make([][]r3.Vec, 0, nelems)
	for j := 0; j < nelems; j++ {
		l, ok := next()
		if !ok {
			return nil, fmt.Errorf("unexpected EOF reading boundary elements of %s", tag)
		}
		fields := strings.Fields(l)
		etype, err := strconv.Atoi(fields[0])
		if err != nil {
			return nil, fmt.Errorf("invalid boundary element type: %v", err)
		}
		nn, known := su2BoundaryNodes[etype]
		if !known {
			return nil, fmt.Errorf("unknown boundary element type: %d", etype)
		}
		if len(fields) < nn+1 {
			return nil, fmt.Errorf("boundary element type %d expects %d nodes", etype, nn)
		}
		poly := make([]r3.Vec, 0, nn)
		for k := 0; k < nn; k++ {
			id, err := strconv.Atoi(fields[1+k])
			if err != nil {
				return nil, fmt.Errorf("invalid boundary node index: %v", err)
			}
			if id < 0 || id >= len(vertices) {
				return nil, fmt.Errorf("node index %d out of range [0,%d)", id, len(vertices))
			}
			poly = append(poly, vertices[id])
		}
		if nn == 2 {
			// Extrude 2-D boundary lines one unit in z so they have an in-plane normal
			ez := r3.Vec{Z: 1}
			poly = append(poly, r3.Add(poly[1], ez), r3.Add(poly[0], ez))
		}
		polys = append(polys, poly)
	}
	return NewPolyFace(tag, polys), nil
}
