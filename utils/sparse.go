package utils

import (
	"fmt"

	"github.com/james-bowman/sparse"
	"gonum.org/v1/gonum/mat"
)

/*
	Sparse matrix wrappers used by the finite element assembly:
	- DOK is the mutable accumulation format element loops scatter into
	- CSR is the frozen format used for matrix-vector products

	Assembly always produces symmetric operators here, and the Dirichlet
	elimination in Constrain preserves that symmetry.
*/

type DOK struct {
	M *sparse.DOK
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		M: sparse.NewDOK(nr, nc),
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }

// Add accumulates val into entry (i,j), the scatter operation of
// element assembly
func (m DOK) Add(i, j int, val float64) {
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) Set(i, j int, val float64) {
	m.M.Set(i, j, val)
}

// AddScaled accumulates alpha*o into the receiver, used to form
// combinations like rho/dt*M + mu*K before constraining
func (m DOK) AddScaled(o DOK, alpha float64) DOK {
	var (
		nr, nc   = m.Dims()
		onr, onc = o.Dims()
	)
	if nr != onr || nc != onc {
		err := fmt.Errorf("dimension mismatch in AddScaled: (%d,%d) vs (%d,%d)", nr, nc, onr, onc)
		panic(err)
	}
	o.M.DoNonZero(func(i, j int, v float64) {
		m.Add(i, j, alpha*v)
	})
	return m
}

// Scale multiplies every stored entry by alpha
func (m DOK) Scale(alpha float64) DOK {
	m.M.DoNonZero(func(i, j int, v float64) {
		m.M.Set(i, j, alpha*v)
	})
	return m
}

// Copy returns an independent DOK with the same entries
func (m DOK) Copy() (R DOK) {
	var (
		nr, nc = m.Dims()
	)
	R = NewDOK(nr, nc)
	m.M.DoNonZero(func(i, j int, v float64) {
		R.M.Set(i, j, v)
	})
	return
}

// Constrain eliminates the rows and columns of the listed dofs and
// places a unit diagonal there, the row/column form of Dirichlet
// application that keeps the operator symmetric. The caller moves the
// eliminated column contributions to the right hand side using the
// unconstrained operator.
func (m DOK) Constrain(dofs []int) DOK {
	var (
		nr, nc = m.Dims()
	)
	if nr != nc {
		panic("Constrain requires a square operator")
	}
	drop := make(map[int]bool, len(dofs))
	for _, d := range dofs {
		if d < 0 || d >= nr {
			err := fmt.Errorf("constrained dof %d out of range [0,%d)", d, nr)
			panic(err)
		}
		drop[d] = true
	}
	type entry struct{ i, j int }
	var kill []entry
	m.M.DoNonZero(func(i, j int, v float64) {
		if drop[i] || drop[j] {
			kill = append(kill, entry{i, j})
		}
	})
	for _, e := range kill {
		m.M.Set(e.i, e.j, 0)
	}
	for d := range drop {
		m.M.Set(d, d, 1)
	}
	return m
}

// Diagonal extracts the main diagonal
func (m DOK) Diagonal() (d []float64) {
	var (
		nr, _ = m.Dims()
	)
	d = make([]float64, nr)
	for i := 0; i < nr; i++ {
		d[i] = m.M.At(i, i)
	}
	return
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M: m.M.ToCSR(),
	}
}

type CSR struct {
	M *sparse.CSR
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)    { return m.M.Dims() }
func (m CSR) At(i, j int) float64 { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix       { return m.M.T() }

func (m CSR) NNZ() int { return m.M.NNZ() }

// MulVec computes dst = A*x over raw slices. MulMatRawVec accumulates
// into dst, so dst is zeroed first to give overwrite semantics
func (m CSR) MulVec(dst, x []float64) {
	var (
		nr, nc = m.Dims()
	)
	if len(x) != nc || len(dst) != nr {
		err := fmt.Errorf("MulVec dimension mismatch: A is (%d,%d), len(x)=%d, len(dst)=%d",
			nr, nc, len(x), len(dst))
		panic(err)
	}
	for i := range dst {
		dst[i] = 0
	}
	sparse.MulMatRawVec(m.M, x, dst)
}
