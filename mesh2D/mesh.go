package mesh2D

import (
	"fmt"
	"math"
	"sort"

	"github.com/pradeep-pyro/triangle"

	"github.com/notargets/gofluid/geometry2D"
	"github.com/notargets/gofluid/utils"
)

/*
	Unstructured triangle meshes over CSG domains.

	Generation is delegated to the Triangle library via its constrained
	Delaunay entry point: the domain boundary becomes the segment set,
	subtracted primitives become hole seeds, and interior sizing is
	controlled by seeding a staggered grid of points at the target
	spacing before triangulating.
*/

// EdgeKey packs the two (sorted) vertex indices of an edge into a
// single map key
type EdgeKey uint64

func NewEdgeKey(verts [2]int) (ek EdgeKey) {
	v0, v1 := verts[0], verts[1]
	if v0 > v1 {
		v0, v1 = v1, v0
	}
	ek = EdgeKey(uint64(v0)<<32 | uint64(v1))
	return
}

func (ek EdgeKey) Verts() (verts [2]int) {
	verts[0] = int(ek >> 32)
	verts[1] = int(ek & 0xffffffff)
	return
}

type Edge struct {
	ID               int // Dense index, deterministic across runs
	Verts            [2]int
	NumConnectedTris int
	Tris             [2]int
	BC               utils.BCType
}

type Mesh struct {
	VX, VY []float64
	EToV   [][3]int // Counter-clockwise vertex triples
	Edges  map[EdgeKey]*Edge
	Hmin   float64 // Shortest edge length, used for CFL reporting
}

// NewMesh builds the edge map and connectivity from raw vertices and
// triangles, correcting any clockwise triangles
func NewMesh(VX, VY []float64, EToV [][3]int) (msh *Mesh) {
	msh = &Mesh{
		VX:    VX,
		VY:    VY,
		EToV:  EToV,
		Edges: make(map[EdgeKey]*Edge),
		Hmin:  math.MaxFloat64,
	}
	for k := range msh.EToV {
		if msh.SignedArea(k) < 0 {
			msh.EToV[k][1], msh.EToV[k][2] = msh.EToV[k][2], msh.EToV[k][1]
		}
		if msh.SignedArea(k) <= 0 {
			err := fmt.Errorf("degenerate triangle %d with area %g", k, msh.SignedArea(k))
			panic(err)
		}
	}
	for k, tri := range msh.EToV {
		msh.addEdge([2]int{tri[0], tri[1]}, k)
		msh.addEdge([2]int{tri[1], tri[2]}, k)
		msh.addEdge([2]int{tri[2], tri[0]}, k)
	}
	// Dense deterministic edge IDs, ordered by packed key
	keys := make([]EdgeKey, 0, len(msh.Edges))
	for ek := range msh.Edges {
		keys = append(keys, ek)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	for id, ek := range keys {
		e := msh.Edges[ek]
		e.ID = id
		length := math.Hypot(msh.VX[e.Verts[1]]-msh.VX[e.Verts[0]],
			msh.VY[e.Verts[1]]-msh.VY[e.Verts[0]])
		if length < msh.Hmin {
			msh.Hmin = length
		}
	}
	return
}

func (msh *Mesh) addEdge(verts [2]int, k int) {
	var (
		ek    = NewEdgeKey(verts)
		e, ok = msh.Edges[ek]
	)
	if !ok {
		e = &Edge{Verts: ek.Verts()}
		msh.Edges[ek] = e
	}
	if e.NumConnectedTris > 1 {
		panic("incorrect mesh construction, more than two triangles share an edge")
	}
	e.Tris[e.NumConnectedTris] = k
	e.NumConnectedTris++
}

func (msh *Mesh) K() int      { return len(msh.EToV) }
func (msh *Mesh) NVerts() int { return len(msh.VX) }

func (msh *Mesh) SignedArea(k int) (area float64) {
	var (
		tri    = msh.EToV[k]
		x0, y0 = msh.VX[tri[0]], msh.VY[tri[0]]
		x1, y1 = msh.VX[tri[1]], msh.VY[tri[1]]
		x2, y2 = msh.VX[tri[2]], msh.VY[tri[2]]
	)
	area = 0.5 * ((x1-x0)*(y2-y0) - (x2-x0)*(y1-y0))
	return
}

func (msh *Mesh) Area() (area float64) {
	for k := range msh.EToV {
		area += msh.SignedArea(k)
	}
	return
}

// BoundaryEdges returns the edges with a single connected triangle,
// sorted by ID
func (msh *Mesh) BoundaryEdges() (edges []*Edge) {
	for _, e := range msh.Edges {
		if e.NumConnectedTris == 1 {
			edges = append(edges, e)
		}
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	return
}

// Predicate classifies a boundary location, evaluated at edge
// midpoints
type Predicate func(x, y float64) bool

// BoundaryMark pairs a BC group with its locating predicate
type BoundaryMark struct {
	Type utils.BCType
	Pred Predicate
}

// MarkBoundaries classifies every boundary edge by evaluating the
// predicates at the edge midpoint, first match wins. An unclassified
// boundary edge is an error: the solver would otherwise silently apply
// no condition there.
func (msh *Mesh) MarkBoundaries(marks []BoundaryMark) (err error) {
	for _, e := range msh.BoundaryEdges() {
		var (
			xm = 0.5 * (msh.VX[e.Verts[0]] + msh.VX[e.Verts[1]])
			ym = 0.5 * (msh.VY[e.Verts[0]] + msh.VY[e.Verts[1]])
		)
		e.BC = utils.BCNone
		for _, m := range marks {
			if m.Pred(xm, ym) {
				e.BC = m.Type
				break
			}
		}
		if e.BC == utils.BCNone {
			err = fmt.Errorf("boundary edge with midpoint (%g,%g) matches no predicate", xm, ym)
			return
		}
	}
	return
}

// Generate meshes a domain at target spacing h: boundary loops become
// PSLG segments, interior points are seeded on a staggered grid with
// clearance from the boundary, and the Triangle library triangulates
// the result with the subtracted primitives as holes.
func Generate(dom *geometry2D.Domain, h float64) (msh *Mesh, err error) {
	var (
		p *geometry2D.PSLG
	)
	if p, err = dom.PSLG(h); err != nil {
		return
	}
	pts := make([][2]float64, 0, len(p.X))
	for i := range p.X {
		pts = append(pts, [2]float64{p.X[i], p.Y[i]})
	}
	// Staggered interior seeding at pitch h; points too close to the
	// boundary are skipped so the constrained triangulation does not
	// produce slivers against the boundary segments
	var (
		x0, y0, x1, y1 = dom.BBox()
		dy             = h * math.Sqrt(3) / 2
		clearance      = -0.7 * h
		row            int
	)
	for y := y0 + dy; y < y1-0.25*dy; y += dy {
		xoff := 0.0
		if row%2 == 1 {
			xoff = h / 2
		}
		row++
		for x := x0 + h/2 + xoff; x < x1-0.25*h; x += h {
			if dom.Dist(x, y) < clearance {
				pts = append(pts, [2]float64{x, y})
			}
		}
	}
	verts, faces := triangle.ConstrainedDelaunay(pts, p.Segments, p.Holes)
	VX := make([]float64, len(verts))
	VY := make([]float64, len(verts))
	for i, v := range verts {
		VX[i], VY[i] = v[0], v[1]
	}
	EToV := make([][3]int, len(faces))
	for k, f := range faces {
		EToV[k] = [3]int{int(f[0]), int(f[1]), int(f[2])}
	}
	if len(EToV) == 0 {
		err = fmt.Errorf("triangulation produced no elements for h=%g", h)
		return
	}
	msh = NewMesh(VX, VY, EToV)
	return
}
