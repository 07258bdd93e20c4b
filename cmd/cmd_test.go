package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notargets/gofluid/InputParameters"
)

func TestInputParameters(t *testing.T) {
	var (
		ip   = &InputParameters.InputParameters2D{}
		data = `
Title: Cylinder benchmark
Case: Cylinder
Rho: 1
Mu: 0.001
Dt: 0.000625
FinalTime: 5
MeshH: 0.025
Um: 1.5
OutputInterval: 40
OutputDir: results
BCs:
  Inflow:
    P: 8
`
	)
	require.NoError(t, ip.Parse([]byte(data)))
	ip.SetDefaults()
	assert.Equal(t, "Cylinder", ip.Case)
	assert.Equal(t, 0.001, ip.Mu)
	assert.Equal(t, 0.000625, ip.Dt)
	assert.Equal(t, 5., ip.FinalTime)
	assert.Equal(t, 0.025, ip.MeshH)
	assert.Equal(t, 1.5, ip.Um)
	assert.Equal(t, 40, ip.OutputInterval)
	assert.Equal(t, "results", ip.OutputDir)
	assert.Equal(t, "flow", ip.OutputPrefix)
	assert.Equal(t, 8., ip.BCs["Inflow"]["P"])
}

func TestInputParameterDefaults(t *testing.T) {
	ip := &InputParameters.InputParameters2D{}
	ip.SetDefaults()
	assert.Equal(t, "Cylinder", ip.Case)
	assert.Equal(t, 1., ip.Rho)
	assert.Equal(t, 0.001, ip.Mu)
	assert.Equal(t, 1./1600., ip.Dt)
	assert.Equal(t, 1.5, ip.Um)
}

func TestProcessInput(t *testing.T) {
	cmd := cylinderCmd
	require.NoError(t, cmd.Flags().Set("finalTime", "0.5"))
	require.NoError(t, cmd.Flags().Set("meshH", "0.05"))
	ip := processInput(cmd)
	assert.Equal(t, 0.5, ip.FinalTime)
	assert.Equal(t, 0.05, ip.MeshH)
	// Unset overrides leave the defaults in place
	assert.Equal(t, 1./1600., ip.Dt)
}
