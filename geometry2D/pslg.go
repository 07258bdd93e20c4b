package geometry2D

import (
	"fmt"
)

// PSLG is a planar straight line graph: the discretized boundary of a
// domain in the form the constrained Delaunay mesher consumes.
// Segments index into X/Y; Holes are seed points marking regions to
// remove from the triangulation.
type PSLG struct {
	X, Y     []float64
	Segments [][2]int32
	Holes    [][2]float64
}

// PSLG discretizes the domain boundary at spacing roughly h. The base
// and every subtracted shape must be primitives (implement Boundary),
// and every subtracted shape must lie strictly inside the base and
// clear of the other holes, or the mesher would produce an open or
// self-intersecting boundary.
func (d *Domain) PSLG(h float64) (p *PSLG, err error) {
	if h <= 0 {
		err = fmt.Errorf("boundary spacing must be positive, have %g", h)
		return
	}
	base, ok := d.Base.(Boundary)
	if !ok {
		err = fmt.Errorf("base shape %T is composite, cannot discretize its boundary", d.Base)
		return
	}
	p = &PSLG{}
	p.appendLoop(base.Loop(h))
	for i, hole := range d.Holes {
		hb, ok := hole.(Boundary)
		if !ok {
			err = fmt.Errorf("hole %d shape %T is composite, cannot discretize its boundary", i, hole)
			return
		}
		xs, ys := hb.Loop(h)
		if err = d.checkHole(i, xs, ys); err != nil {
			return
		}
		p.appendLoop(xs, ys)
		sx, sy := hb.Seed()
		p.Holes = append(p.Holes, [2]float64{sx, sy})
	}
	return
}

// appendLoop adds a closed polyline and its connecting segments
func (p *PSLG) appendLoop(xs, ys []float64) {
	var (
		base = int32(len(p.X))
		n    = int32(len(xs))
	)
	p.X = append(p.X, xs...)
	p.Y = append(p.Y, ys...)
	for i := int32(0); i < n; i++ {
		p.Segments = append(p.Segments, [2]int32{base + i, base + (i+1)%n})
	}
}

// checkHole verifies a hole boundary lies strictly inside the base and
// outside every other hole
func (d *Domain) checkHole(hi int, xs, ys []float64) (err error) {
	for i, x := range xs {
		y := ys[i]
		if d.Base.Dist(x, y) >= 0 {
			err = fmt.Errorf("hole %d boundary point (%g,%g) is not inside the base shape", hi, x, y)
			return
		}
		for j, other := range d.Holes {
			if j == hi {
				continue
			}
			if other.Dist(x, y) <= 0 {
				err = fmt.Errorf("hole %d boundary point (%g,%g) intersects hole %d", hi, x, y, j)
				return
			}
		}
	}
	return
}
