package mesh2D

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofluid/geometry2D"
	"github.com/notargets/gofluid/utils"
)

func TestStructuredRect(t *testing.T) {
	var (
		nx, ny = 4, 3
		msh    = NewStructuredRect(0, 0, 2, 1, nx, ny)
	)
	assert.Equal(t, (nx+1)*(ny+1), msh.NVerts())
	assert.Equal(t, 2*nx*ny, msh.K())
	assert.InDelta(t, 2.0, msh.Area(), 1.e-12)

	// Euler: E = 3K - shared, boundary edges have one connected tri
	var nBound, nInterior int
	for _, e := range msh.Edges {
		switch e.NumConnectedTris {
		case 1:
			nBound++
		case 2:
			nInterior++
		default:
			t.Fatalf("edge with %d connected triangles", e.NumConnectedTris)
		}
	}
	assert.Equal(t, 2*(nx+ny), nBound)
	assert.Equal(t, 3*msh.K(), nBound+2*nInterior)

	// All triangles counter-clockwise
	for k := 0; k < msh.K(); k++ {
		assert.True(t, msh.SignedArea(k) > 0)
	}
}

func TestOrientationFix(t *testing.T) {
	// One clockwise triangle gets flipped during construction
	msh := NewMesh(
		[]float64{0, 1, 0},
		[]float64{0, 0, 1},
		[][3]int{{0, 2, 1}},
	)
	assert.True(t, msh.SignedArea(0) > 0)
}

func TestEdgeKey(t *testing.T) {
	ek := NewEdgeKey([2]int{7, 3})
	assert.Equal(t, [2]int{3, 7}, ek.Verts())
	assert.Equal(t, NewEdgeKey([2]int{3, 7}), ek)
}

func TestMarkBoundaries(t *testing.T) {
	var (
		msh   = NewStructuredRect(0, 0, 2, 1, 4, 2)
		eps   = 1.e-10
		marks = []BoundaryMark{
			{utils.BCInflow, func(x, y float64) bool { return x < eps }},
			{utils.BCOutflow, func(x, y float64) bool { return x > 2-eps }},
			{utils.BCWall, func(x, y float64) bool { return y < eps || y > 1-eps }},
		}
	)
	require.NoError(t, msh.MarkBoundaries(marks))
	var nIn, nOut, nWall int
	for _, e := range msh.BoundaryEdges() {
		switch e.BC {
		case utils.BCInflow:
			nIn++
		case utils.BCOutflow:
			nOut++
		case utils.BCWall:
			nWall++
		}
	}
	assert.Equal(t, 2, nIn)
	assert.Equal(t, 2, nOut)
	assert.Equal(t, 8, nWall)

	// Dropping the wall predicate leaves edges unclassified
	err := msh.MarkBoundaries(marks[:2])
	assert.Error(t, err)
}

func TestGenerateCylinderChannel(t *testing.T) {
	var (
		h   = 0.05
		dom = geometry2D.NewDomain(geometry2D.NewRectangle(0, 0, 2.2, 0.41)).
			Subtract(geometry2D.NewCircle(0.2, 0.2, 0.05))
	)
	msh, err := Generate(dom, h)
	require.NoError(t, err)
	require.Greater(t, msh.K(), 0)

	// Every triangle is counter-clockwise with positive area, and the
	// total area is the rectangle minus (approximately) the circle
	for k := 0; k < msh.K(); k++ {
		assert.True(t, msh.SignedArea(k) > 0)
	}
	exact := 2.2*0.41 - math.Pi*0.05*0.05
	assert.InDelta(t, exact, msh.Area(), 0.01*exact)

	// The hole seed removed the cylinder interior: no vertex lies
	// strictly inside the circle
	for i := range msh.VX {
		r := math.Hypot(msh.VX[i]-0.2, msh.VY[i]-0.2)
		assert.GreaterOrEqual(t, r, 0.05-1.e-9)
	}

	// The benchmark predicates classify every boundary edge
	eps := 1.e-8
	require.NoError(t, msh.MarkBoundaries([]BoundaryMark{
		{utils.BCInflow, func(x, y float64) bool { return x < eps }},
		{utils.BCOutflow, func(x, y float64) bool { return x > 2.2-eps }},
		{utils.BCWall, func(x, y float64) bool { return y < eps || y > 0.41-eps }},
		{utils.BCCylinder, func(x, y float64) bool { return math.Hypot(x-0.2, y-0.2) < 0.1 }},
	}))
	counts := make(map[utils.BCType]int)
	for _, e := range msh.BoundaryEdges() {
		counts[e.BC]++
	}
	for _, g := range []utils.BCType{utils.BCInflow, utils.BCOutflow, utils.BCWall, utils.BCCylinder} {
		assert.Greater(t, counts[g], 0, g.String())
	}
	// The circle loop has at least twelve segments
	assert.GreaterOrEqual(t, counts[utils.BCCylinder], 12)
}
