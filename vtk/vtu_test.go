package vtk

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofluid/mesh2D"
)

func TestSeries(t *testing.T) {
	var (
		dir = t.TempDir()
		msh = mesh2D.NewStructuredRect(0, 0, 1, 1, 2, 2)
		nv  = msh.NVerts()
	)
	s, err := NewSeries(dir, "flow", msh)
	require.NoError(t, err)

	u := make([]float64, nv)
	v := make([]float64, nv)
	p := make([]float64, nv)
	for i := range u {
		u[i] = float64(i)
		p[i] = -float64(i)
	}
	require.NoError(t, s.Write(0, 0, u, v, p))
	require.NoError(t, s.Write(40, 0.025, u, v, p))
	require.NoError(t, s.Close())

	data, err := os.ReadFile(filepath.Join(dir, "flow_000000.vtu"))
	require.NoError(t, err)
	text := string(data)
	assert.True(t, strings.Contains(text, "<VTKFile type=\"UnstructuredGrid\""))
	assert.True(t, strings.Contains(text, "NumberOfPoints=\"9\" NumberOfCells=\"8\""))
	assert.True(t, strings.Contains(text, "Name=\"velocity\""))
	assert.True(t, strings.Contains(text, "Name=\"pressure\""))

	data, err = os.ReadFile(filepath.Join(dir, "flow.pvd"))
	require.NoError(t, err)
	text = string(data)
	assert.True(t, strings.Contains(text, "flow_000000.vtu"))
	assert.True(t, strings.Contains(text, "flow_000040.vtu"))
	assert.True(t, strings.Contains(text, "timestep=\"0.025\""))

	// Mismatched field length is rejected
	assert.Error(t, s.Write(80, 0.05, u[:nv-1], v, p))
}
