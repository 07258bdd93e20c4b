package fem2D

import (
	"fmt"
	"sort"

	"github.com/notargets/gofluid/mesh2D"
	"github.com/notargets/gofluid/utils"
)

// ScalarSpace is a continuous Lagrange function space over a triangle
// mesh. Order 1 places dofs at vertices; order 2 appends one dof per
// mesh edge (the midpoint node), numbered after all vertex dofs in
// edge-ID order.
type ScalarSpace struct {
	Msh   *mesh2D.Mesh
	Order int
	NDof  int
	// Dof coordinates, used to evaluate boundary profiles and source
	// terms at dof locations
	DofX, DofY []float64
	elemDofs   [][]int
}

func NewScalarSpace(msh *mesh2D.Mesh, order int) (sp *ScalarSpace) {
	var (
		nv = msh.NVerts()
		np = NodesPerElement(order)
	)
	sp = &ScalarSpace{
		Msh:   msh,
		Order: order,
	}
	switch order {
	case 1:
		sp.NDof = nv
	case 2:
		sp.NDof = nv + len(msh.Edges)
	default:
		err := fmt.Errorf("unsupported space order %d", order)
		panic(err)
	}
	sp.DofX = make([]float64, sp.NDof)
	sp.DofY = make([]float64, sp.NDof)
	copy(sp.DofX, msh.VX)
	copy(sp.DofY, msh.VY)
	if order == 2 {
		for _, e := range msh.Edges {
			d := nv + e.ID
			sp.DofX[d] = 0.5 * (msh.VX[e.Verts[0]] + msh.VX[e.Verts[1]])
			sp.DofY[d] = 0.5 * (msh.VY[e.Verts[0]] + msh.VY[e.Verts[1]])
		}
	}
	// Element dof lists in local node order: vertices, then midpoints
	// of edges (v0,v1), (v1,v2), (v2,v0)
	sp.elemDofs = make([][]int, msh.K())
	for k, tri := range msh.EToV {
		dofs := make([]int, np)
		dofs[0], dofs[1], dofs[2] = tri[0], tri[1], tri[2]
		if order == 2 {
			dofs[3] = nv + msh.Edges[mesh2D.NewEdgeKey([2]int{tri[0], tri[1]})].ID
			dofs[4] = nv + msh.Edges[mesh2D.NewEdgeKey([2]int{tri[1], tri[2]})].ID
			dofs[5] = nv + msh.Edges[mesh2D.NewEdgeKey([2]int{tri[2], tri[0]})].ID
		}
		sp.elemDofs[k] = dofs
	}
	return
}

func (sp *ScalarSpace) ElementDofs(k int) []int { return sp.elemDofs[k] }

// BoundaryDofs collects the dofs lying on boundary edges of any of the
// given groups, sorted and deduplicated
func (sp *ScalarSpace) BoundaryDofs(groups ...utils.BCType) (dofs []int) {
	var (
		nv   = sp.Msh.NVerts()
		want = make(map[utils.BCType]bool, len(groups))
		seen = make(map[int]bool)
	)
	for _, g := range groups {
		want[g] = true
	}
	for _, e := range sp.Msh.BoundaryEdges() {
		if !want[e.BC] {
			continue
		}
		seen[e.Verts[0]] = true
		seen[e.Verts[1]] = true
		if sp.Order == 2 {
			seen[nv+e.ID] = true
		}
	}
	for d := range seen {
		dofs = append(dofs, d)
	}
	sort.Ints(dofs)
	return
}

// Interpolate evaluates f at every dof location
func (sp *ScalarSpace) Interpolate(f func(x, y float64) float64) (u []float64) {
	u = make([]float64, sp.NDof)
	for i := range u {
		u[i] = f(sp.DofX[i], sp.DofY[i])
	}
	return
}

// VertexValues returns the restriction of a dof vector to the mesh
// vertices, the P1 trace written to output files
func (sp *ScalarSpace) VertexValues(u []float64) (v []float64) {
	v = make([]float64, sp.Msh.NVerts())
	copy(v, u[:sp.Msh.NVerts()])
	return
}
