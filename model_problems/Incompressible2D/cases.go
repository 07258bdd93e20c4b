package Incompressible2D

import (
	"fmt"
	"math"
	"strings"

	"github.com/notargets/gofluid/InputParameters"
	"github.com/notargets/gofluid/geometry2D"
	"github.com/notargets/gofluid/mesh2D"
	"github.com/notargets/gofluid/utils"
)

/*
	Benchmark cases.

	Cylinder is the DFG "flow past a cylinder" configuration: channel
	[0,2.2]x[0,0.41] with a circle of radius 0.05 at (0.2,0.2), a
	parabolic inflow profile with peak velocity Um on the left, no-slip
	on the channel walls and the cylinder surface, and zero pressure on
	the outflow. With Um=1.5, mu=0.001, rho=1 the mean-velocity
	Reynolds number is 100 and the wake sheds vortices.

	Channel is pressure-driven Poiseuille flow in the unit square: a
	fixed pressure drop across the channel, no-slip walls, and the
	analytic steady profile u(y) = dp/(2 mu) y (1-y) to validate
	against.
*/

const (
	channelLength = 2.2
	channelHeight = 0.41
	cylinderX     = 0.2
	cylinderY     = 0.2
	cylinderR     = 0.05
)

func zero(x, y float64) float64 { return 0 }

// NewCase dispatches on the Case name from the input parameters
func NewCase(ip *InputParameters.InputParameters2D) (c *IPCS, err error) {
	switch strings.ToLower(strings.TrimSpace(ip.Case)) {
	case "cylinder":
		c, err = NewCylinderCase(ip)
	case "channel":
		c, err = NewChannelCase(ip)
	default:
		err = fmt.Errorf("unknown case %q, want Cylinder or Channel", ip.Case)
	}
	return
}

// inflowPressure resolves the configured inflow pressure drop from the
// BCs map, matching group names through ParseBCType so input file
// capitalization does not matter
func inflowPressure(ip *InputParameters.InputParameters2D, def float64) (dp float64) {
	dp = def
	for name, params := range ip.BCs {
		bc, ok := utils.ParseBCType(name)
		if !ok || bc != utils.BCInflow {
			continue
		}
		if v, ok := params["P"]; ok {
			dp = v
		}
	}
	return
}

// CylinderGeometry is the channel with the cylinder subtracted
func CylinderGeometry() (dom *geometry2D.Domain) {
	dom = geometry2D.NewDomain(geometry2D.NewRectangle(0, 0, channelLength, channelHeight)).
		Subtract(geometry2D.NewCircle(cylinderX, cylinderY, cylinderR))
	return
}

// CylinderMarks classifies the four boundary groups by coordinate
// predicates; the cylinder predicate is a proximity test so it also
// catches the chord midpoints of the discretized circle
func CylinderMarks() (marks []mesh2D.BoundaryMark) {
	var (
		eps = 1.e-8
	)
	marks = []mesh2D.BoundaryMark{
		{Type: utils.BCInflow, Pred: func(x, y float64) bool { return x < eps }},
		{Type: utils.BCOutflow, Pred: func(x, y float64) bool { return x > channelLength-eps }},
		{Type: utils.BCWall, Pred: func(x, y float64) bool { return y < eps || y > channelHeight-eps }},
		{Type: utils.BCCylinder, Pred: func(x, y float64) bool {
			return math.Hypot(x-cylinderX, y-cylinderY) < 2*cylinderR
		}},
	}
	return
}

// InflowProfile is the parabolic inlet velocity with peak Um
func InflowProfile(Um float64) ValueFunc {
	return func(x, y float64) float64 {
		return 4 * Um * y * (channelHeight - y) / (channelHeight * channelHeight)
	}
}

// NewCylinderCase meshes the cylinder geometry and configures the
// scheme from the input parameters
func NewCylinderCase(ip *InputParameters.InputParameters2D) (c *IPCS, err error) {
	var (
		msh *mesh2D.Mesh
	)
	if msh, err = mesh2D.Generate(CylinderGeometry(), ip.MeshH); err != nil {
		return
	}
	if err = msh.MarkBoundaries(CylinderMarks()); err != nil {
		return
	}
	cfg := Config{
		Rho:            ip.Rho,
		Mu:             ip.Mu,
		Dt:             ip.Dt,
		FinalTime:      ip.FinalTime,
		OutputInterval: ip.OutputInterval,
		OutputDir:      ip.OutputDir,
		OutputPrefix:   ip.OutputPrefix,
		VelocityBCs: []VelocityBC{
			{Type: utils.BCInflow, U: InflowProfile(ip.Um), V: zero},
			{Type: utils.BCWall, U: zero, V: zero},
			{Type: utils.BCCylinder, U: zero, V: zero},
		},
		PressureBCs: []PressureBC{
			{Type: utils.BCOutflow, P: zero},
		},
	}
	c, err = NewIPCS(msh, cfg)
	return
}

// ChannelExact is the analytic Poiseuille profile for a unit-length,
// height-H channel under pressure drop dp
func ChannelExact(y, dp, mu, H float64) float64 {
	return dp / (2 * mu) * y * (H - y)
}

// ChannelError is the largest nodal error of the streamwise velocity
// against the analytic Poiseuille profile for the configured pressure
// drop
func ChannelError(c *IPCS, ip *InputParameters.InputParameters2D) (errMax float64) {
	dp := inflowPressure(ip, 8)
	for i := 0; i < c.VSp.NDof; i++ {
		e := math.Abs(c.U[i] - ChannelExact(c.VSp.DofY[i], dp, ip.Mu, 1))
		if e > errMax {
			errMax = e
		}
	}
	return
}

// NewChannelCase builds the pressure-driven channel on a structured
// mesh. The pressure drop defaults to 8, giving a peak velocity of 1
// with unit viscosity; override it with BCs Inflow P in the input
// file.
func NewChannelCase(ip *InputParameters.InputParameters2D) (c *IPCS, err error) {
	var (
		n  = int(math.Round(1 / ip.MeshH))
		dp = inflowPressure(ip, 8)
	)
	if n < 4 {
		n = 4
	}
	msh := mesh2D.NewStructuredRect(0, 0, 1, 1, n, n)
	eps := 1.e-8
	if err = msh.MarkBoundaries([]mesh2D.BoundaryMark{
		{Type: utils.BCInflow, Pred: func(x, y float64) bool { return x < eps }},
		{Type: utils.BCOutflow, Pred: func(x, y float64) bool { return x > 1-eps }},
		{Type: utils.BCWall, Pred: func(x, y float64) bool { return y < eps || y > 1-eps }},
	}); err != nil {
		return
	}
	pIn := dp
	cfg := Config{
		Rho:            ip.Rho,
		Mu:             ip.Mu,
		Dt:             ip.Dt,
		FinalTime:      ip.FinalTime,
		OutputInterval: ip.OutputInterval,
		OutputDir:      ip.OutputDir,
		OutputPrefix:   ip.OutputPrefix,
		VelocityBCs: []VelocityBC{
			{Type: utils.BCWall, U: zero, V: zero},
		},
		PressureBCs: []PressureBC{
			{Type: utils.BCInflow, P: func(x, y float64) float64 { return pIn }},
			{Type: utils.BCOutflow, P: zero},
		},
	}
	c, err = NewIPCS(msh, cfg)
	return
}
