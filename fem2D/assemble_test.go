package fem2D

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofluid/mesh2D"
	"github.com/notargets/gofluid/utils"
)

func unitSquare(n int) *mesh2D.Mesh {
	return mesh2D.NewStructuredRect(0, 0, 1, 1, n, n)
}

func markAllWalls(t *testing.T, msh *mesh2D.Mesh) {
	t.Helper()
	require.NoError(t, msh.MarkBoundaries([]mesh2D.BoundaryMark{
		{Type: utils.BCWall, Pred: func(x, y float64) bool { return true }},
	}))
}

func TestMassTotal(t *testing.T) {
	// Sum of all mass entries is the domain area, since the basis sums
	// to one
	msh := unitSquare(4)
	for _, order := range []int{1, 2} {
		var (
			sp    = NewScalarSpace(msh, order)
			M     = Mass(sp)
			total float64
		)
		M.M.DoNonZero(func(i, j int, v float64) {
			total += v
		})
		assert.InDelta(t, 1., total, 1.e-12)
	}
}

func TestStiffnessRowSums(t *testing.T) {
	// Constants are in the nullspace of the unconstrained stiffness
	msh := unitSquare(3)
	for _, order := range []int{1, 2} {
		var (
			sp   = NewScalarSpace(msh, order)
			K    = Stiffness(sp).ToCSR()
			ones = make([]float64, sp.NDof)
			out  = make([]float64, sp.NDof)
		)
		for i := range ones {
			ones[i] = 1
		}
		K.MulVec(out, ones)
		for i := range out {
			assert.InDelta(t, 0., out[i], 1.e-10)
		}
	}
}

func TestDerivativeOfLinearField(t *testing.T) {
	// For p = x on P1, Int phi_i dp/dx dx equals Int phi_i dx, the P2
	// load vector of f=1
	var (
		msh = unitSquare(3)
		v2  = NewScalarSpace(msh, 2)
		q1  = NewScalarSpace(msh, 1)
		Gx  = Derivative(v2, q1, 0).ToCSR()
		p   = q1.Interpolate(func(x, y float64) float64 { return x })
		b   = LoadVector(v2, func(x, y float64) float64 { return 1 })
		out = make([]float64, v2.NDof)
	)
	Gx.MulVec(out, p)
	for i := range out {
		assert.InDelta(t, b[i], out[i], 1.e-12)
	}
}

func TestBoundaryDofs(t *testing.T) {
	var (
		n   = 4
		msh = unitSquare(n)
	)
	markAllWalls(t, msh)
	sp1 := NewScalarSpace(msh, 1)
	sp2 := NewScalarSpace(msh, 2)
	// n segments per side: 4n boundary vertices, plus one midpoint dof
	// per boundary edge for P2
	assert.Equal(t, 4*n, len(sp1.BoundaryDofs(utils.BCWall)))
	assert.Equal(t, 8*n, len(sp2.BoundaryDofs(utils.BCWall)))
	assert.Equal(t, 0, len(sp2.BoundaryDofs(utils.BCInflow)))
}

func poissonSolve(t *testing.T, order int, uExact func(x, y float64) float64, f float64) (sp *ScalarSpace, u []float64) {
	t.Helper()
	var (
		msh = unitSquare(4)
	)
	markAllWalls(t, msh)
	sp = NewScalarSpace(msh, order)
	var (
		dofs  = sp.BoundaryDofs(utils.BCWall)
		Kfull = Stiffness(sp)
		Kcsr  = Kfull.Copy().ToCSR()
		sys   = NewSystem("poisson", Kfull.Constrain(dofs))
		b     = LoadVector(sp, func(x, y float64) float64 { return f })
		g     = make([]float64, sp.NDof)
		corr  = make([]float64, sp.NDof)
	)
	for _, d := range dofs {
		g[d] = uExact(sp.DofX[d], sp.DofY[d])
	}
	Kcsr.MulVec(corr, g)
	for i := range b {
		b[i] -= corr[i]
	}
	for _, d := range dofs {
		b[d] = g[d]
	}
	u, err := sys.Solve(b)
	require.NoError(t, err)
	return
}

func TestPoissonP1Linear(t *testing.T) {
	// P1 reproduces the linear solution of the Laplace equation exactly
	// up to solver tolerance
	uExact := func(x, y float64) float64 { return 2*x - y + 0.5 }
	sp, u := poissonSolve(t, 1, uExact, 0)
	for i := range u {
		assert.InDelta(t, uExact(sp.DofX[i], sp.DofY[i]), u[i], 1.e-6)
	}
}

func TestPoissonP2Quadratic(t *testing.T) {
	// -lap(x^2+y^2) = -4; P2 reproduces quadratics exactly up to
	// solver tolerance
	uExact := func(x, y float64) float64 { return x*x + y*y }
	sp, u := poissonSolve(t, 2, uExact, -4)
	for i := range u {
		assert.InDelta(t, uExact(sp.DofX[i], sp.DofY[i]), u[i], 1.e-5)
	}
}

func TestSystemRejectsIndefinite(t *testing.T) {
	A := utils.NewDOK(2, 2)
	A.Set(0, 0, 1)
	A.Set(1, 1, -1)
	assert.Panics(t, func() { NewSystem("bad", A) })
}

func TestConvectionOfUniformFlow(t *testing.T) {
	// (u.grad)u vanishes for a uniform velocity field
	var (
		msh = unitSquare(3)
		sp  = NewScalarSpace(msh, 2)
		U   = sp.Interpolate(func(x, y float64) float64 { return 1.5 })
		V   = sp.Interpolate(func(x, y float64) float64 { return -0.25 })
	)
	NU, NV := Convection(sp, U, V)
	for i := range NU {
		assert.InDelta(t, 0., NU[i], 1.e-12)
		assert.InDelta(t, 0., NV[i], 1.e-12)
	}
}

func TestConvectionOfShearFlow(t *testing.T) {
	// u=(y,0): (u.grad)u = (y d/dx + 0) (y,0) = 0 pointwise as well,
	// so use u=(x,0): (u.grad)u = (x,0), whose weighted integrals are
	// the load vector of f(x,y)=x
	var (
		msh = unitSquare(3)
		sp  = NewScalarSpace(msh, 2)
		U   = sp.Interpolate(func(x, y float64) float64 { return x })
		V   = make([]float64, sp.NDof)
		b   = LoadVector(sp, func(x, y float64) float64 { return x })
	)
	NU, NV := Convection(sp, U, V)
	for i := range NU {
		assert.InDelta(t, b[i], NU[i], 1.e-10)
		assert.InDelta(t, 0., NV[i], 1.e-12)
	}
}

func TestVertexValues(t *testing.T) {
	var (
		msh = unitSquare(2)
		sp  = NewScalarSpace(msh, 2)
		u   = sp.Interpolate(func(x, y float64) float64 { return x + y })
		v   = sp.VertexValues(u)
	)
	assert.Equal(t, msh.NVerts(), len(v))
	for i := range v {
		assert.InDelta(t, msh.VX[i]+msh.VY[i], v[i], 1.e-12)
	}
}
