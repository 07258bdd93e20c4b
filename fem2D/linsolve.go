package fem2D

import (
	"fmt"
	"math"

	"github.com/vladimir-ch/iterative"

	"github.com/notargets/gofluid/utils"
)

/*
	Krylov solution of the assembled systems. All three projection
	systems are symmetric positive definite once convection is treated
	explicitly, so conjugate gradients covers every solve.

	The system is symmetrically Jacobi-scaled before freezing to CSR:
		D^{-1/2} A D^{-1/2} (D^{1/2} x) = D^{-1/2} b
	which normalizes the unit diagonal of constrained rows against the
	mesh-dependent magnitude of interior rows and keeps the solver's
	convergence behavior stable across resolutions.
*/

// System is a constrained, diagonally scaled linear operator ready for
// repeated solves against changing right hand sides.
type System struct {
	Name       string
	A          utils.CSR // Scaled operator
	dsqrt      []float64 // sqrt of the original diagonal
	n          int
	Iterations int     // From the most recent solve
	Residual   float64 // From the most recent solve
}

// NewSystem scales and freezes a constrained symmetric DOK
func NewSystem(name string, A utils.DOK) (s *System) {
	var (
		nr, nc = A.Dims()
	)
	if nr != nc {
		panic("NewSystem requires a square operator")
	}
	s = &System{
		Name:  name,
		n:     nr,
		dsqrt: make([]float64, nr),
	}
	d := A.Diagonal()
	for i, di := range d {
		if di <= 0 {
			err := fmt.Errorf("system %s: nonpositive diagonal %g at dof %d, operator is not SPD", name, di, i)
			panic(err)
		}
		s.dsqrt[i] = math.Sqrt(di)
	}
	scaled := utils.NewDOK(nr, nc)
	A.M.DoNonZero(func(i, j int, v float64) {
		scaled.Set(i, j, v/(s.dsqrt[i]*s.dsqrt[j]))
	})
	s.A = scaled.ToCSR()
	return
}

// Solve runs preconditioned CG on the scaled system and unscales the
// result
func (s *System) Solve(b []float64) (x []float64, err error) {
	if len(b) != s.n {
		err = fmt.Errorf("system %s: rhs length %d does not match dimension %d", s.Name, len(b), s.n)
		return
	}
	bs := make([]float64, s.n)
	for i := range bs {
		bs[i] = b[i] / s.dsqrt[i]
	}
	ops := iterative.MatrixOps{
		MatVec: func(dst, src []float64) {
			s.A.MulVec(dst, src)
		},
	}
	res, err := iterative.LinearSolve(ops, bs, &iterative.CG{}, iterative.Settings{})
	if err != nil {
		err = fmt.Errorf("system %s: %w", s.Name, err)
		return
	}
	s.Iterations = res.Stats.Iterations
	s.Residual = res.Stats.ResidualNorm
	x = make([]float64, s.n)
	for i := range x {
		x[i] = res.X[i] / s.dsqrt[i]
	}
	return
}
