package fem2D

import (
	"github.com/notargets/gofluid/utils"
)

/*
	Global assembly of the variational operators the projection scheme
	needs. Every operator is a plain element-loop quadrature assembly
	into a DOK, frozen to CSR by the caller once boundary conditions
	are applied:

		Mass       M_ij = Int phi_i phi_j dx
		Stiffness  K_ij = Int grad phi_i . grad phi_j dx
		Derivative D_ij = Int phi_i  d(psi_j)/dx_dim  dx

	with phi from the test space and psi from the trial space.
	Derivative with a P2 test / P1 trial pair is the pressure gradient
	operator; the transposed pair is the velocity divergence operator.
*/

func Mass(sp *ScalarSpace) (M utils.DOK) {
	var (
		rule = QuadratureForDegree(2 * sp.Order)
		np   = NodesPerElement(sp.Order)
	)
	M = utils.NewDOK(sp.NDof, sp.NDof)
	// Basis values are identical on every element
	Nq := make([][]float64, len(rule))
	for q, qp := range rule {
		Nq[q] = ShapeFunctions(sp.Order, qp.Xi, qp.Eta)
	}
	for k := 0; k < sp.Msh.K(); k++ {
		var (
			dofs = sp.ElementDofs(k)
			g    = sp.geometry(k)
		)
		for q, qp := range rule {
			w := qp.W * g.Jdet
			for i := 0; i < np; i++ {
				for j := 0; j < np; j++ {
					M.Add(dofs[i], dofs[j], w*Nq[q][i]*Nq[q][j])
				}
			}
		}
	}
	return
}

func Stiffness(sp *ScalarSpace) (K utils.DOK) {
	var (
		rule = QuadratureForDegree(2 * (sp.Order - 1))
		np   = NodesPerElement(sp.Order)
	)
	K = utils.NewDOK(sp.NDof, sp.NDof)
	dNq := make([][][2]float64, len(rule))
	for q, qp := range rule {
		dNq[q] = ShapeGradients(sp.Order, qp.Xi, qp.Eta)
	}
	for k := 0; k < sp.Msh.K(); k++ {
		var (
			dofs = sp.ElementDofs(k)
			g    = sp.geometry(k)
		)
		for q, qp := range rule {
			var (
				w  = qp.W * g.Jdet
				dN = g.PhysGradients(dNq[q])
			)
			for i := 0; i < np; i++ {
				for j := 0; j < np; j++ {
					K.Add(dofs[i], dofs[j], w*(dN[i][0]*dN[j][0]+dN[i][1]*dN[j][1]))
				}
			}
		}
	}
	return
}

// Derivative assembles D_ij = Int phi_i^test d(psi_j^trial)/dx_dim dx
// over the shared mesh of the two spaces
func Derivative(test, trial *ScalarSpace, dim int) (D utils.DOK) {
	if test.Msh != trial.Msh {
		panic("Derivative requires both spaces over the same mesh")
	}
	if dim != 0 && dim != 1 {
		panic("dim must be 0 (x) or 1 (y)")
	}
	var (
		rule    = QuadratureForDegree(test.Order + trial.Order - 1)
		npTest  = NodesPerElement(test.Order)
		npTrial = NodesPerElement(trial.Order)
	)
	D = utils.NewDOK(test.NDof, trial.NDof)
	Nq := make([][]float64, len(rule))
	dNq := make([][][2]float64, len(rule))
	for q, qp := range rule {
		Nq[q] = ShapeFunctions(test.Order, qp.Xi, qp.Eta)
		dNq[q] = ShapeGradients(trial.Order, qp.Xi, qp.Eta)
	}
	for k := 0; k < test.Msh.K(); k++ {
		var (
			tDofs = test.ElementDofs(k)
			rDofs = trial.ElementDofs(k)
			g     = test.geometry(k)
		)
		for q, qp := range rule {
			var (
				w  = qp.W * g.Jdet
				dN = g.PhysGradients(dNq[q])
			)
			for i := 0; i < npTest; i++ {
				for j := 0; j < npTrial; j++ {
					D.Add(tDofs[i], rDofs[j], w*Nq[q][i]*dN[j][dim])
				}
			}
		}
	}
	return
}

// Convection evaluates the explicit convection load vectors
//
//	NU_i = Int (u du/dx + v du/dy) phi_i dx
//	NV_i = Int (u dv/dx + v dv/dy) phi_i dx
//
// at the current velocity fields U, V on the space
func Convection(sp *ScalarSpace, U, V []float64) (NU, NV []float64) {
	var (
		rule = QuadratureForDegree(3*sp.Order - 1)
		np   = NodesPerElement(sp.Order)
	)
	NU = make([]float64, sp.NDof)
	NV = make([]float64, sp.NDof)
	Nq := make([][]float64, len(rule))
	dNq := make([][][2]float64, len(rule))
	for q, qp := range rule {
		Nq[q] = ShapeFunctions(sp.Order, qp.Xi, qp.Eta)
		dNq[q] = ShapeGradients(sp.Order, qp.Xi, qp.Eta)
	}
	for k := 0; k < sp.Msh.K(); k++ {
		var (
			dofs = sp.ElementDofs(k)
			g    = sp.geometry(k)
		)
		for q, qp := range rule {
			var (
				w          = qp.W * g.Jdet
				dN         = g.PhysGradients(dNq[q])
				uq, vq     float64
				dudx, dudy float64
				dvdx, dvdy float64
			)
			for i := 0; i < np; i++ {
				var (
					ui, vi = U[dofs[i]], V[dofs[i]]
				)
				uq += Nq[q][i] * ui
				vq += Nq[q][i] * vi
				dudx += dN[i][0] * ui
				dudy += dN[i][1] * ui
				dvdx += dN[i][0] * vi
				dvdy += dN[i][1] * vi
			}
			var (
				convU = uq*dudx + vq*dudy
				convV = uq*dvdx + vq*dvdy
			)
			for i := 0; i < np; i++ {
				NU[dofs[i]] += w * Nq[q][i] * convU
				NV[dofs[i]] += w * Nq[q][i] * convV
			}
		}
	}
	return
}

// LoadVector assembles b_i = Int f phi_i dx with f evaluated at
// quadrature points
func LoadVector(sp *ScalarSpace, f func(x, y float64) float64) (b []float64) {
	var (
		rule = QuadratureForDegree(2 * sp.Order)
		np   = NodesPerElement(sp.Order)
	)
	b = make([]float64, sp.NDof)
	Nq := make([][]float64, len(rule))
	for q, qp := range rule {
		Nq[q] = ShapeFunctions(sp.Order, qp.Xi, qp.Eta)
	}
	for k := 0; k < sp.Msh.K(); k++ {
		var (
			dofs = sp.ElementDofs(k)
			tri  = sp.Msh.EToV[k]
			g    = sp.geometry(k)
		)
		var (
			x0, y0 = sp.Msh.VX[tri[0]], sp.Msh.VY[tri[0]]
			x1, y1 = sp.Msh.VX[tri[1]], sp.Msh.VY[tri[1]]
			x2, y2 = sp.Msh.VX[tri[2]], sp.Msh.VY[tri[2]]
		)
		for q, qp := range rule {
			var (
				w  = qp.W * g.Jdet
				xq = x0 + qp.Xi*(x1-x0) + qp.Eta*(x2-x0)
				yq = y0 + qp.Xi*(y1-y0) + qp.Eta*(y2-y0)
				fq = f(xq, yq)
			)
			for i := 0; i < np; i++ {
				b[dofs[i]] += w * Nq[q][i] * fq
			}
		}
	}
	return
}

func (sp *ScalarSpace) geometry(k int) ElementGeometry {
	var (
		tri = sp.Msh.EToV[k]
		vx  = sp.Msh.VX
		vy  = sp.Msh.VY
	)
	return NewElementGeometry(vx[tri[0]], vy[tri[0]], vx[tri[1]], vy[tri[1]], vx[tri[2]], vy[tri[2]])
}
