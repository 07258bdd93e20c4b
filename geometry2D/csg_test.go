package geometry2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSignedDistance(t *testing.T) {
	r := NewRectangle(0, 0, 2.2, 0.41)
	assert.True(t, r.Dist(1.1, 0.2) < 0)
	assert.True(t, r.Dist(-0.1, 0.2) > 0)
	assert.True(t, r.Dist(1.1, 0.5) > 0)
	assert.InDelta(t, -0.1, r.Dist(1.1, 0.1), 1.e-12)

	c := NewCircle(0.2, 0.2, 0.05)
	assert.InDelta(t, -0.05, c.Dist(0.2, 0.2), 1.e-12)
	assert.InDelta(t, 0.05, c.Dist(0.3, 0.2), 1.e-12)

	// Difference: inside the rectangle but inside the circle is outside
	// the domain
	d := NewDomain(r).Subtract(c)
	assert.True(t, d.Inside(1.1, 0.2))
	assert.False(t, d.Inside(0.2, 0.2))
	assert.False(t, d.Inside(-1, 0.2))
	// Just outside the cylinder surface is back inside the domain
	assert.True(t, d.Inside(0.2+0.06, 0.2))
}

func TestUnionIntersection(t *testing.T) {
	a := NewCircle(0, 0, 1)
	b := NewCircle(1, 0, 1)
	u := Union(a, b)
	n := Intersection(a, b)
	assert.True(t, u.Dist(1.5, 0) < 0)
	assert.True(t, u.Dist(-0.5, 0) < 0)
	assert.True(t, n.Dist(0.5, 0) < 0)
	assert.True(t, n.Dist(-0.5, 0) > 0)
	assert.True(t, n.Dist(1.5, 0) > 0)
}

func TestPSLG(t *testing.T) {
	var (
		h = 0.05
		d = NewDomain(NewRectangle(0, 0, 2.2, 0.41)).Subtract(NewCircle(0.2, 0.2, 0.05))
	)
	p, err := d.PSLG(h)
	assert.NoError(t, err)
	// Closed loops: one segment per boundary point
	assert.Equal(t, len(p.X), len(p.Segments))
	assert.Equal(t, len(p.X), len(p.Y))
	assert.Equal(t, 1, len(p.Holes))
	assert.InDelta(t, 0.2, p.Holes[0][0], 1.e-12)
	assert.InDelta(t, 0.2, p.Holes[0][1], 1.e-12)
	// Every boundary point sits on the domain boundary (within the
	// chord error of the circle discretization)
	for i, x := range p.X {
		assert.InDelta(t, 0, d.Dist(x, p.Y[i]), h*h)
	}
	// Segment endpoints stay in range
	for _, s := range p.Segments {
		assert.True(t, int(s[0]) < len(p.X))
		assert.True(t, int(s[1]) < len(p.X))
	}
}

func TestPSLGRejectsBadHoles(t *testing.T) {
	// Cylinder sticking out of the channel
	d := NewDomain(NewRectangle(0, 0, 1, 1)).Subtract(NewCircle(0, 0.5, 0.2))
	_, err := d.PSLG(0.05)
	assert.Error(t, err)

	// Overlapping holes
	d = NewDomain(NewRectangle(0, 0, 1, 1)).
		Subtract(NewCircle(0.4, 0.5, 0.1)).
		Subtract(NewCircle(0.45, 0.5, 0.1))
	_, err = d.PSLG(0.05)
	assert.Error(t, err)

	// Composite base shapes cannot be discretized
	d = &Domain{Base: Union(NewCircle(0, 0, 1), NewCircle(1, 0, 1))}
	_, err = d.PSLG(0.05)
	assert.Error(t, err)
}

func TestCircleLoopResolution(t *testing.T) {
	c := NewCircle(0, 0, 0.05)
	xs, ys := c.Loop(1.0) // Spacing far larger than the circumference
	assert.GreaterOrEqual(t, len(xs), 12)
	for i, x := range xs {
		assert.InDelta(t, 0.05, math.Hypot(x, ys[i]), 1.e-12)
	}
}
