package mesh2D

// NewStructuredRect builds a structured triangle mesh of the rectangle
// [x0,x1]x[y0,y1] with nx by ny quads, each split into two triangles.
// It is deterministic and cheap, used by the channel case and by tests
// that should not depend on the external mesher.
func NewStructuredRect(x0, y0, x1, y1 float64, nx, ny int) (msh *Mesh) {
	if nx < 1 || ny < 1 {
		panic("structured mesh requires at least one cell per direction")
	}
	var (
		dx = (x1 - x0) / float64(nx)
		dy = (y1 - y0) / float64(ny)
		id = func(i, j int) int { return i + j*(nx+1) }
	)
	VX := make([]float64, (nx+1)*(ny+1))
	VY := make([]float64, (nx+1)*(ny+1))
	for j := 0; j <= ny; j++ {
		for i := 0; i <= nx; i++ {
			VX[id(i, j)] = x0 + float64(i)*dx
			VY[id(i, j)] = y0 + float64(j)*dy
		}
	}
	EToV := make([][3]int, 0, 2*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			// Lower-left and upper-right triangles of the quad
			EToV = append(EToV,
				[3]int{id(i, j), id(i+1, j), id(i+1, j+1)},
				[3]int{id(i, j), id(i+1, j+1), id(i, j+1)})
		}
	}
	msh = NewMesh(VX, VY, EToV)
	return
}
