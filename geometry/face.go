package geometry

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// PlanarTol is the largest out-of-plane slope, relative to edge length, for a face to count as planar
const PlanarTol = 1.e-8

// Reference names one face of one shape: {object, face}.
type Reference [2]string

func (r Reference) Object() string { return r[0] }

func (r Reference) Face() string { return r[1] }

func (r Reference) String() string { return r[0] + ":" + r[1] }

// Face is a resolved surface of a shape.
type Face interface {
	IsPlanar() bool
	// NormalAt returns the outward unit normal at the parametric point (u, v) in [0,1]^2
	NormalAt(u, v float64) r3.Vec
}

// Resolver finds a named face of a named shape.
type Resolver interface {
	ResolveFace(object, face string) (Face, error)
}

// PolyFace is a face made of one or more flat polygons, such as the boundary elements
// carrying one marker in a surface mesh. Vertex order gives the outward side by the
// right-hand rule.
type PolyFace struct {
	Name     string
	Polygons [][]r3.Vec
	normal   r3.Vec
	planar   bool
}

func NewPolyFace(name string, polygons [][]r3.Vec) *PolyFace {
	f := &PolyFace{Name: name, Polygons: polygons}
	f.normal, f.planar = newellNormal(polygons)
	return f
}

func (f *PolyFace) IsPlanar() bool { return f.planar }

// NormalAt is the same everywhere on a planar face; for other faces it is the area-weighted
// mean normal.
func (f *PolyFace) NormalAt(u, v float64) r3.Vec { return f.normal }

// newellNormal sums Newell's polygon normals, which weights each polygon by its area, then
// checks every vertex against the resulting plane.
func newellNormal(polygons [][]r3.Vec) (n r3.Vec, planar bool) {
	var (
		nverts int
		origin r3.Vec
	)
	for _, poly := range polygons {
		for i, p := range poly {
			q := poly[(i+1)%len(poly)]
			n.X += (p.Y - q.Y) * (p.Z + q.Z)
			n.Y += (p.Z - q.Z) * (p.X + q.X)
			n.Z += (p.X - q.X) * (p.Y + q.Y)
		}
		if nverts == 0 && len(poly) > 0 {
			origin = poly[0]
		}
		nverts += len(poly)
	}
	if r3.Norm(n) == 0 {
		return r3.Vec{}, false
	}
	n = r3.Unit(n)
	if nverts <= 3 {
		return n, true
	}
	for _, poly := range polygons {
		for _, p := range poly {
			t := r3.Sub(p, origin)
			l := r3.Norm(t)
			if l == 0 {
				continue
			}
			if math.Abs(r3.Dot(t, n))/l > PlanarTol {
				return n, false
			}
		}
	}
	return n, true
}

// Shape is a named solid or surface with named faces.
type Shape struct {
	Name  string
	Faces map[string]*PolyFace
}

func NewShape(name string) *Shape {
	return &Shape{Name: name, Faces: make(map[string]*PolyFace)}
}

func (s *Shape) AddFace(f *PolyFace) {
	s.Faces[f.Name] = f
}

func (s *Shape) FaceNames() (names []string) {
	for n := range s.Faces {
		names = append(names, n)
	}
	sort.Strings(names)
	return
}

// Store is an in-memory Resolver over a set of shapes.
type Store struct {
	shapes map[string]*Shape
}

func NewStore() *Store {
	return &Store{shapes: make(map[string]*Shape)}
}

// Add registers shapes, replacing any earlier shape of the same name.
func (st *Store) Add(shapes ...*Shape) {
	for _, s := range shapes {
		st.shapes[s.Name] = s
	}
}

func (st *Store) Shape(name string) (s *Shape, ok bool) {
	s, ok = st.shapes[name]
	return
}

func (st *Store) Len() int { return len(st.shapes) }

func (st *Store) ResolveFace(object, face string) (Face, error) {
	s, ok := st.shapes[object]
	if !ok {
		return nil, fmt.Errorf("no shape named %q", object)
	}
	f, ok := s.Faces[face]
	if !ok {
		return nil, fmt.Errorf("shape %q has no face %q", object, face)
	}
	return f, nil
}
