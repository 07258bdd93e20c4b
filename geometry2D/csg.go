package geometry2D

import (
	"fmt"
	"math"
)

/*
	Constructive solid geometry in the plane.

	Shapes expose a signed distance (negative inside) so they compose
	under min/max for union/intersection/difference. The primitives
	additionally know how to discretize their boundary into a closed
	polyline, which is what the Delaunay mesher consumes; composite
	shapes only support membership queries.
*/

type Shape interface {
	// Dist is the signed distance to the shape boundary, negative
	// inside. The rectangle distance is the Chebyshev-style bound
	// rather than the exact Euclidean distance at corners, which is
	// all the mesher's clearance tests need.
	Dist(x, y float64) float64
	BBox() (x0, y0, x1, y1 float64)
}

// Boundary is implemented by primitives whose outline can be
// discretized for meshing.
type Boundary interface {
	Shape
	// Loop returns a closed counter-clockwise polyline at spacing
	// roughly h. The last point connects back to the first; the first
	// point is not repeated.
	Loop(h float64) (xs, ys []float64)
	// Seed returns a point strictly inside the primitive
	Seed() (x, y float64)
}

type Rectangle struct {
	X0, Y0, X1, Y1 float64
}

func NewRectangle(x0, y0, x1, y1 float64) (r Rectangle) {
	if x1 <= x0 || y1 <= y0 {
		err := fmt.Errorf("degenerate rectangle [%g,%g]x[%g,%g]", x0, x1, y0, y1)
		panic(err)
	}
	r = Rectangle{X0: x0, Y0: y0, X1: x1, Y1: y1}
	return
}

func (r Rectangle) Dist(x, y float64) float64 {
	return math.Max(math.Max(r.X0-x, x-r.X1), math.Max(r.Y0-y, y-r.Y1))
}

func (r Rectangle) BBox() (x0, y0, x1, y1 float64) {
	return r.X0, r.Y0, r.X1, r.Y1
}

func (r Rectangle) Seed() (x, y float64) {
	return 0.5 * (r.X0 + r.X1), 0.5 * (r.Y0 + r.Y1)
}

// Loop walks the four sides counter-clockwise, subdividing each side
// at spacing <= h
func (r Rectangle) Loop(h float64) (xs, ys []float64) {
	side := func(xa, ya, xb, yb float64) {
		var (
			n = int(math.Ceil(math.Hypot(xb-xa, yb-ya) / h))
		)
		if n < 1 {
			n = 1
		}
		for i := 0; i < n; i++ {
			f := float64(i) / float64(n)
			xs = append(xs, xa+f*(xb-xa))
			ys = append(ys, ya+f*(yb-ya))
		}
	}
	side(r.X0, r.Y0, r.X1, r.Y0)
	side(r.X1, r.Y0, r.X1, r.Y1)
	side(r.X1, r.Y1, r.X0, r.Y1)
	side(r.X0, r.Y1, r.X0, r.Y0)
	return
}

type Circle struct {
	Xc, Yc, R float64
}

func NewCircle(xc, yc, r float64) (c Circle) {
	if r <= 0 {
		err := fmt.Errorf("degenerate circle with radius %g", r)
		panic(err)
	}
	c = Circle{Xc: xc, Yc: yc, R: r}
	return
}

func (c Circle) Dist(x, y float64) float64 {
	return math.Hypot(x-c.Xc, y-c.Yc) - c.R
}

func (c Circle) BBox() (x0, y0, x1, y1 float64) {
	return c.Xc - c.R, c.Yc - c.R, c.Xc + c.R, c.Yc + c.R
}

func (c Circle) Seed() (x, y float64) {
	return c.Xc, c.Yc
}

func (c Circle) Loop(h float64) (xs, ys []float64) {
	var (
		n = int(math.Ceil(2 * math.Pi * c.R / h))
	)
	if n < 12 {
		n = 12 // Resolve curvature even on coarse target spacings
	}
	xs, ys = make([]float64, n), make([]float64, n)
	for i := 0; i < n; i++ {
		theta := 2 * math.Pi * float64(i) / float64(n)
		xs[i] = c.Xc + c.R*math.Cos(theta)
		ys[i] = c.Yc + c.R*math.Sin(theta)
	}
	return
}

// union and intersection compose signed distances; they support
// membership queries but not boundary discretization
type union struct{ a, b Shape }

func Union(a, b Shape) Shape { return union{a, b} }

func (u union) Dist(x, y float64) float64 {
	return math.Min(u.a.Dist(x, y), u.b.Dist(x, y))
}

func (u union) BBox() (x0, y0, x1, y1 float64) {
	ax0, ay0, ax1, ay1 := u.a.BBox()
	bx0, by0, bx1, by1 := u.b.BBox()
	return math.Min(ax0, bx0), math.Min(ay0, by0), math.Max(ax1, bx1), math.Max(ay1, by1)
}

type intersection struct{ a, b Shape }

func Intersection(a, b Shape) Shape { return intersection{a, b} }

func (n intersection) Dist(x, y float64) float64 {
	return math.Max(n.a.Dist(x, y), n.b.Dist(x, y))
}

func (n intersection) BBox() (x0, y0, x1, y1 float64) {
	// Conservative: the intersection lies within either operand's box
	return n.a.BBox()
}

// Domain is a base primitive with primitives subtracted from it, the
// construction the channel-with-cylinder geometry uses
type Domain struct {
	Base  Shape
	Holes []Shape
}

func NewDomain(base Shape) (d *Domain) {
	d = &Domain{Base: base}
	return
}

// Subtract removes a primitive from the domain
func (d *Domain) Subtract(s Shape) *Domain {
	d.Holes = append(d.Holes, s)
	return d
}

func (d *Domain) Dist(x, y float64) (dist float64) {
	dist = d.Base.Dist(x, y)
	for _, h := range d.Holes {
		dist = math.Max(dist, -h.Dist(x, y))
	}
	return
}

func (d *Domain) Inside(x, y float64) bool {
	return d.Dist(x, y) < 0
}

func (d *Domain) BBox() (x0, y0, x1, y1 float64) {
	return d.Base.BBox()
}
