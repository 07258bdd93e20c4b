package vtk

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/notargets/gofluid/mesh2D"
)

/*
	VTK XML UnstructuredGrid output. Each write produces one .vtu file
	with the mesh and the vertex velocity/pressure fields; Close writes
	the .pvd collection that indexes the series by physical time, which
	is what ParaView animates.
*/

type Series struct {
	Dir, Prefix string
	Msh         *mesh2D.Mesh
	entries     []entry
}

type entry struct {
	file string
	time float64
}

func NewSeries(dir, prefix string, msh *mesh2D.Mesh) (s *Series, err error) {
	if err = os.MkdirAll(dir, 0755); err != nil {
		err = fmt.Errorf("unable to create output directory %s: %w", dir, err)
		return
	}
	s = &Series{
		Dir:    dir,
		Prefix: prefix,
		Msh:    msh,
	}
	return
}

// Write emits one timestep as <prefix>_NNNNNN.vtu with velocity and
// pressure given at mesh vertices
func (s *Series) Write(step int, time float64, u, v, p []float64) (err error) {
	var (
		nv = s.Msh.NVerts()
		nc = s.Msh.K()
	)
	if len(u) != nv || len(v) != nv || len(p) != nv {
		err = fmt.Errorf("field lengths (%d,%d,%d) do not match vertex count %d",
			len(u), len(v), len(p), nv)
		return
	}
	var buf bytes.Buffer
	ff := func(format string, args ...interface{}) {
		fmt.Fprintf(&buf, format, args...)
	}
	ff("<?xml version=\"1.0\"?>\n")
	ff("<VTKFile type=\"UnstructuredGrid\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	ff("<UnstructuredGrid>\n")
	ff("<Piece NumberOfPoints=\"%d\" NumberOfCells=\"%d\">\n", nv, nc)

	ff("<Points>\n<DataArray type=\"Float64\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for i := 0; i < nv; i++ {
		ff("%g %g 0 ", s.Msh.VX[i], s.Msh.VY[i])
	}
	ff("\n</DataArray>\n</Points>\n")

	ff("<Cells>\n<DataArray type=\"Int32\" Name=\"connectivity\" format=\"ascii\">\n")
	for _, tri := range s.Msh.EToV {
		ff("%d %d %d ", tri[0], tri[1], tri[2])
	}
	ff("\n</DataArray>\n<DataArray type=\"Int32\" Name=\"offsets\" format=\"ascii\">\n")
	for k := 1; k <= nc; k++ {
		ff("%d ", 3*k)
	}
	ff("\n</DataArray>\n<DataArray type=\"UInt8\" Name=\"types\" format=\"ascii\">\n")
	for k := 0; k < nc; k++ {
		ff("5 ") // VTK_TRIANGLE
	}
	ff("\n</DataArray>\n</Cells>\n")

	ff("<PointData Vectors=\"velocity\" Scalars=\"pressure\">\n")
	ff("<DataArray type=\"Float64\" Name=\"velocity\" NumberOfComponents=\"3\" format=\"ascii\">\n")
	for i := 0; i < nv; i++ {
		ff("%g %g 0 ", u[i], v[i])
	}
	ff("\n</DataArray>\n<DataArray type=\"Float64\" Name=\"pressure\" format=\"ascii\">\n")
	for i := 0; i < nv; i++ {
		ff("%g ", p[i])
	}
	ff("\n</DataArray>\n</PointData>\n")

	ff("</Piece>\n</UnstructuredGrid>\n</VTKFile>\n")

	name := fmt.Sprintf("%s_%06d.vtu", s.Prefix, step)
	if err = os.WriteFile(filepath.Join(s.Dir, name), buf.Bytes(), 0644); err != nil {
		return
	}
	s.entries = append(s.entries, entry{file: name, time: time})
	return
}

// Close writes the .pvd collection file indexing the series
func (s *Series) Close() (err error) {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "<?xml version=\"1.0\"?>\n")
	fmt.Fprintf(&buf, "<VTKFile type=\"Collection\" version=\"0.1\" byte_order=\"LittleEndian\">\n")
	fmt.Fprintf(&buf, "<Collection>\n")
	for _, e := range s.entries {
		fmt.Fprintf(&buf, "<DataSet timestep=\"%g\" part=\"0\" file=\"%s\"/>\n", e.time, e.file)
	}
	fmt.Fprintf(&buf, "</Collection>\n</VTKFile>\n")
	err = os.WriteFile(filepath.Join(s.Dir, s.Prefix+".pvd"), buf.Bytes(), 0644)
	return
}
