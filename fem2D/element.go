package fem2D

import (
	"fmt"
	"math"
)

/*
	Lagrange triangle elements on the reference triangle with vertices
	(0,0), (1,0), (0,1), barycentric coordinates
		L1 = 1 - xi - eta, L2 = xi, L3 = eta

	P1 (3 nodes, vertices):
		N_i = L_i

	P2 (6 nodes, vertices then edge midpoints 12, 23, 31):
		N_i = L_i (2 L_i - 1)           i = 1..3
		N_4 = 4 L1 L2,  N_5 = 4 L2 L3,  N_6 = 4 L3 L1

	The physical mapping is affine, so Jacobians are constant per
	element and reference gradients transform by J^{-T}.
*/

// QuadPoint is a quadrature node on the reference triangle; weights
// sum to the reference area 1/2
type QuadPoint struct {
	Xi, Eta, W float64
}

// Dunavant rules, exact to the stated polynomial degree
var (
	quadDegree2 = []QuadPoint{
		{1. / 6., 1. / 6., 1. / 6.},
		{2. / 3., 1. / 6., 1. / 6.},
		{1. / 6., 2. / 3., 1. / 6.},
	}
	quadDegree4 = []QuadPoint{
		{0.445948490915965, 0.445948490915965, 0.111690794839005},
		{0.108103018168070, 0.445948490915965, 0.111690794839005},
		{0.445948490915965, 0.108103018168070, 0.111690794839005},
		{0.091576213509771, 0.091576213509771, 0.054975871827661},
		{0.816847572980459, 0.091576213509771, 0.054975871827661},
		{0.091576213509771, 0.816847572980459, 0.054975871827661},
	}
	quadDegree5 = []QuadPoint{
		{1. / 3., 1. / 3., 0.112500000000000},
		{0.470142064105115, 0.470142064105115, 0.066197076394253},
		{0.059715871789770, 0.470142064105115, 0.066197076394253},
		{0.470142064105115, 0.059715871789770, 0.066197076394253},
		{0.101286507323456, 0.101286507323456, 0.062969590272414},
		{0.797426985353087, 0.101286507323456, 0.062969590272414},
		{0.101286507323456, 0.797426985353087, 0.062969590272414},
	}
)

// QuadratureForDegree returns the cheapest rule exact to the requested
// polynomial degree
func QuadratureForDegree(degree int) (rule []QuadPoint) {
	switch {
	case degree <= 2:
		rule = quadDegree2
	case degree <= 4:
		rule = quadDegree4
	case degree <= 5:
		rule = quadDegree5
	default:
		err := fmt.Errorf("no quadrature rule for polynomial degree %d", degree)
		panic(err)
	}
	return
}

// NodesPerElement returns the local dof count for a Lagrange order
func NodesPerElement(order int) (np int) {
	switch order {
	case 1:
		np = 3
	case 2:
		np = 6
	default:
		err := fmt.Errorf("unsupported Lagrange order %d", order)
		panic(err)
	}
	return
}

// ShapeFunctions evaluates the basis at a reference point
func ShapeFunctions(order int, xi, eta float64) (N []float64) {
	var (
		l1 = 1 - xi - eta
		l2 = xi
		l3 = eta
	)
	switch order {
	case 1:
		N = []float64{l1, l2, l3}
	case 2:
		N = []float64{
			l1 * (2*l1 - 1),
			l2 * (2*l2 - 1),
			l3 * (2*l3 - 1),
			4 * l1 * l2,
			4 * l2 * l3,
			4 * l3 * l1,
		}
	default:
		panic("unsupported Lagrange order")
	}
	return
}

// ShapeGradients evaluates reference-space basis gradients at a
// reference point, returned as [node][2]
func ShapeGradients(order int, xi, eta float64) (dN [][2]float64) {
	var (
		l1 = 1 - xi - eta
		l2 = xi
		l3 = eta
		// Barycentric gradients
		g1 = [2]float64{-1, -1}
		g2 = [2]float64{1, 0}
		g3 = [2]float64{0, 1}
	)
	switch order {
	case 1:
		dN = [][2]float64{g1, g2, g3}
	case 2:
		dN = make([][2]float64, 6)
		for d := 0; d < 2; d++ {
			dN[0][d] = (4*l1 - 1) * g1[d]
			dN[1][d] = (4*l2 - 1) * g2[d]
			dN[2][d] = (4*l3 - 1) * g3[d]
			dN[3][d] = 4 * (l1*g2[d] + l2*g1[d])
			dN[4][d] = 4 * (l2*g3[d] + l3*g2[d])
			dN[5][d] = 4 * (l3*g1[d] + l1*g3[d])
		}
	default:
		panic("unsupported Lagrange order")
	}
	return
}

// ElementGeometry holds the constant affine map data of one triangle
type ElementGeometry struct {
	X0, Y0 float64       // First vertex
	Jinv   [2][2]float64 // Inverse Jacobian of the reference map
	Jdet   float64       // Determinant, twice the element area
}

func NewElementGeometry(x0, y0, x1, y1, x2, y2 float64) (g ElementGeometry) {
	var (
		j00, j01 = x1 - x0, x2 - x0
		j10, j11 = y1 - y0, y2 - y0
	)
	g.X0, g.Y0 = x0, y0
	g.Jdet = j00*j11 - j01*j10
	if math.Abs(g.Jdet) < 1.e-300 {
		panic("degenerate element geometry")
	}
	g.Jinv[0][0] = j11 / g.Jdet
	g.Jinv[0][1] = -j01 / g.Jdet
	g.Jinv[1][0] = -j10 / g.Jdet
	g.Jinv[1][1] = j00 / g.Jdet
	return
}

// PhysGradients maps reference gradients to physical space
func (g ElementGeometry) PhysGradients(dN [][2]float64) (dNx [][2]float64) {
	dNx = make([][2]float64, len(dN))
	for i, d := range dN {
		// grad_x = Jinv^T grad_xi
		dNx[i][0] = g.Jinv[0][0]*d[0] + g.Jinv[1][0]*d[1]
		dNx[i][1] = g.Jinv[0][1]*d[0] + g.Jinv[1][1]*d[1]
	}
	return
}
