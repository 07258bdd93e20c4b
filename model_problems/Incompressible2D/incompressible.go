package Incompressible2D

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/floats"

	"github.com/notargets/gofluid/fem2D"
	"github.com/notargets/gofluid/mesh2D"
	"github.com/notargets/gofluid/utils"
	"github.com/notargets/gofluid/vtk"
)

/*
	Transient incompressible Navier-Stokes via incremental pressure
	correction (Chorin projection):

			du/dt + (u.grad)u = -1/rho grad(p) + nu lap(u)
			div(u) = 0

	Velocity lives in a P2 Lagrange space, pressure in P1 (Taylor-Hood).
	Convection is explicit, diffusion implicit, so each fixed time step
	solves three linear systems with constant matrices:

	1) Tentative velocity, per component:
			(rho/dt M + mu K) u* = rho/dt M u_n - rho N(u_n) - G p_n
	2) Pressure correction:
			Kp p_n+1 = Kp p_n - rho/dt B u*
	3) Velocity correction, per component:
			M u_n+1 = M u* - dt/rho G (p_n+1 - p_n)

	where M, K are the velocity mass/stiffness operators, Kp the
	pressure stiffness, G the pressure gradient, B the velocity
	divergence, and N the convection load vector. All three operators
	are SPD, assembled and diagonally scaled once, and solved with CG.
*/

// ValueFunc evaluates a boundary value at a dof location
type ValueFunc func(x, y float64) float64

// VelocityBC prescribes both velocity components on a boundary group
type VelocityBC struct {
	Type utils.BCType
	U, V ValueFunc
}

// PressureBC prescribes pressure on a boundary group
type PressureBC struct {
	Type utils.BCType
	P    ValueFunc
}

type Config struct {
	Rho, Mu        float64
	Dt, FinalTime  float64
	OutputInterval int    // Steps between output writes and progress lines
	OutputDir      string // Empty disables file output
	OutputPrefix   string
	VelocityBCs    []VelocityBC
	PressureBCs    []PressureBC
}

type IPCS struct {
	Config
	Msh      *mesh2D.Mesh
	VSp, PSp *fem2D.ScalarSpace // Velocity (P2) and pressure (P1) spaces
	U, V, P  []float64          // Current solution

	// Unconstrained operators used for right hand sides
	M2, A1, Kp     utils.CSR
	Gx, Gy, Dx, Dy utils.CSR

	// Constrained, scaled systems
	sys1, sys2, sys3 *fem2D.System

	// Dirichlet data: full-length value vectors (zero off the
	// constrained set) and precomputed column-elimination corrections
	velDofs        []int
	presDofs       []int
	gU, gV, gP     []float64
	c1U, c1V       []float64
	c2             []float64
	c3U, c3V       []float64

	Time float64
	Step int
}

func NewIPCS(msh *mesh2D.Mesh, cfg Config) (c *IPCS, err error) {
	if cfg.Dt <= 0 || cfg.FinalTime < cfg.Dt {
		err = fmt.Errorf("need 0 < dt <= finalTime, have dt=%g, finalTime=%g", cfg.Dt, cfg.FinalTime)
		return
	}
	if cfg.Rho <= 0 || cfg.Mu <= 0 {
		err = fmt.Errorf("need positive density and viscosity, have rho=%g, mu=%g", cfg.Rho, cfg.Mu)
		return
	}
	if cfg.OutputInterval < 1 {
		cfg.OutputInterval = 1
	}
	c = &IPCS{
		Config: cfg,
		Msh:    msh,
		VSp:    fem2D.NewScalarSpace(msh, 2),
		PSp:    fem2D.NewScalarSpace(msh, 1),
	}
	c.U = make([]float64, c.VSp.NDof)
	c.V = make([]float64, c.VSp.NDof)
	c.P = make([]float64, c.PSp.NDof)

	if err = c.applyBCGroups(); err != nil {
		return
	}

	// Assemble the constant operators once
	var (
		m2 = fem2D.Mass(c.VSp)
		k2 = fem2D.Stiffness(c.VSp)
		kp = fem2D.Stiffness(c.PSp)
		a1 = m2.Copy().Scale(c.Rho / c.Dt).AddScaled(k2, c.Mu)
	)
	c.M2 = m2.Copy().ToCSR()
	c.A1 = a1.Copy().ToCSR()
	c.Kp = kp.Copy().ToCSR()
	c.Gx = fem2D.Derivative(c.VSp, c.PSp, 0).ToCSR()
	c.Gy = fem2D.Derivative(c.VSp, c.PSp, 1).ToCSR()
	c.Dx = fem2D.Derivative(c.PSp, c.VSp, 0).ToCSR()
	c.Dy = fem2D.Derivative(c.PSp, c.VSp, 1).ToCSR()

	c.sys1 = fem2D.NewSystem("tentative velocity", a1.Constrain(c.velDofs))
	c.sys2 = fem2D.NewSystem("pressure correction", kp.Constrain(c.presDofs))
	c.sys3 = fem2D.NewSystem("velocity correction", m2.Constrain(c.velDofs))

	// Column-elimination corrections are constant because the boundary
	// values are
	c.c1U = matVec(c.A1, c.gU)
	c.c1V = matVec(c.A1, c.gV)
	c.c2 = matVec(c.Kp, c.gP)
	c.c3U = matVec(c.M2, c.gU)
	c.c3V = matVec(c.M2, c.gV)

	// Start from the prescribed boundary values, zero elsewhere
	copy(c.U, c.gU)
	copy(c.V, c.gV)
	copy(c.P, c.gP)
	return
}

// applyBCGroups resolves the configured BC groups against the mesh
// marking into dof sets and value vectors
func (c *IPCS) applyBCGroups() (err error) {
	c.gU = make([]float64, c.VSp.NDof)
	c.gV = make([]float64, c.VSp.NDof)
	c.gP = make([]float64, c.PSp.NDof)
	seenVel := make(map[int]bool)
	for _, bc := range c.VelocityBCs {
		dofs := c.VSp.BoundaryDofs(bc.Type)
		if len(dofs) == 0 {
			err = fmt.Errorf("velocity BC group %s matches no boundary dofs", bc.Type)
			return
		}
		for _, d := range dofs {
			if !seenVel[d] {
				seenVel[d] = true
				c.velDofs = append(c.velDofs, d)
				c.gU[d] = bc.U(c.VSp.DofX[d], c.VSp.DofY[d])
				c.gV[d] = bc.V(c.VSp.DofX[d], c.VSp.DofY[d])
			}
		}
	}
	seenPres := make(map[int]bool)
	for _, bc := range c.PressureBCs {
		dofs := c.PSp.BoundaryDofs(bc.Type)
		if len(dofs) == 0 {
			err = fmt.Errorf("pressure BC group %s matches no boundary dofs", bc.Type)
			return
		}
		for _, d := range dofs {
			if !seenPres[d] {
				seenPres[d] = true
				c.presDofs = append(c.presDofs, d)
				c.gP[d] = bc.P(c.PSp.DofX[d], c.PSp.DofY[d])
			}
		}
	}
	if len(c.presDofs) == 0 {
		err = fmt.Errorf("pressure is unpinned: no pressure BC group matched any boundary dofs")
	}
	return
}

// Advance performs one projection step
func (c *IPCS) Advance() (err error) {
	var (
		n2 = c.VSp.NDof
		n1 = c.PSp.NDof
	)
	// 1) Tentative velocity
	NU, NV := fem2D.Convection(c.VSp, c.U, c.V)
	var (
		mu2 = matVec(c.M2, c.U)
		mv2 = matVec(c.M2, c.V)
		gpx = matVec(c.Gx, c.P)
		gpy = matVec(c.Gy, c.P)
		bU  = make([]float64, n2)
		bV  = make([]float64, n2)
	)
	for i := 0; i < n2; i++ {
		bU[i] = c.Rho/c.Dt*mu2[i] - c.Rho*NU[i] - gpx[i] - c.c1U[i]
		bV[i] = c.Rho/c.Dt*mv2[i] - c.Rho*NV[i] - gpy[i] - c.c1V[i]
	}
	c.setDirichlet(bU, c.velDofs, c.gU)
	c.setDirichlet(bV, c.velDofs, c.gV)
	var uStar, vStar []float64
	if uStar, err = c.sys1.Solve(bU); err != nil {
		return
	}
	if vStar, err = c.sys1.Solve(bV); err != nil {
		return
	}

	// 2) Pressure correction
	var (
		kpp  = matVec(c.Kp, c.P)
		divU = matVec(c.Dx, uStar)
		divV = matVec(c.Dy, vStar)
		bP   = make([]float64, n1)
	)
	for i := 0; i < n1; i++ {
		bP[i] = kpp[i] - c.Rho/c.Dt*(divU[i]+divV[i]) - c.c2[i]
	}
	c.setDirichlet(bP, c.presDofs, c.gP)
	var pNew []float64
	if pNew, err = c.sys2.Solve(bP); err != nil {
		return
	}

	// 3) Velocity correction
	dp := make([]float64, n1)
	floats.SubTo(dp, pNew, c.P)
	var (
		gdx = matVec(c.Gx, dp)
		gdy = matVec(c.Gy, dp)
		mus = matVec(c.M2, uStar)
		mvs = matVec(c.M2, vStar)
	)
	for i := 0; i < n2; i++ {
		bU[i] = mus[i] - c.Dt/c.Rho*gdx[i] - c.c3U[i]
		bV[i] = mvs[i] - c.Dt/c.Rho*gdy[i] - c.c3V[i]
	}
	c.setDirichlet(bU, c.velDofs, c.gU)
	c.setDirichlet(bV, c.velDofs, c.gV)
	var uNew, vNew []float64
	if uNew, err = c.sys3.Solve(bU); err != nil {
		return
	}
	if vNew, err = c.sys3.Solve(bV); err != nil {
		return
	}
	// Commit the step only once all three stages have succeeded
	c.U, c.V, c.P = uNew, vNew, pNew
	c.Step++
	c.Time += c.Dt
	if math.IsNaN(c.MaxVelocity()) {
		err = fmt.Errorf("solution diverged (NaN) at step %d, t=%8.5f", c.Step, c.Time)
	}
	return
}

func (c *IPCS) setDirichlet(b []float64, dofs []int, g []float64) {
	for _, d := range dofs {
		b[d] = g[d]
	}
}

// MaxVelocity is the largest velocity magnitude over the dofs
func (c *IPCS) MaxVelocity() (umax float64) {
	for i := range c.U {
		if m := math.Hypot(c.U[i], c.V[i]); m > umax {
			umax = m
		}
	}
	return
}

// DivergenceNorm is the RMS of the weak divergence integrals, a
// diagnostic for how well the correction enforced incompressibility
func (c *IPCS) DivergenceNorm() (dn float64) {
	var (
		divU = matVec(c.Dx, c.U)
		divV = matVec(c.Dy, c.V)
	)
	floats.Add(divU, divV)
	dn = floats.Norm(divU, 2) / math.Sqrt(float64(len(divU)))
	return
}

// VertexFields restricts the solution to mesh vertices for output
func (c *IPCS) VertexFields() (u, v, p []float64) {
	u = c.VSp.VertexValues(c.U)
	v = c.VSp.VertexValues(c.V)
	p = c.PSp.VertexValues(c.P)
	return
}

// Solve runs the fixed-step time loop to FinalTime, writing output and
// printing a progress line every OutputInterval steps
func (c *IPCS) Solve() (err error) {
	var (
		nSteps = int(math.Round(c.FinalTime / c.Dt))
		series *vtk.Series
	)
	c.PrintInitialization(nSteps)
	if c.OutputDir != "" {
		if series, err = vtk.NewSeries(c.OutputDir, c.OutputPrefix, c.Msh); err != nil {
			return
		}
		u, v, p := c.VertexFields()
		if err = series.Write(c.Step, c.Time, u, v, p); err != nil {
			return
		}
	}
	elapsed := time.Duration(0)
	for step := 1; step <= nSteps; step++ {
		start := time.Now()
		if err = c.Advance(); err != nil {
			return
		}
		elapsed += time.Now().Sub(start)
		if step%c.OutputInterval == 0 || step == nSteps {
			c.PrintUpdate(c.MaxVelocity())
			if series != nil {
				u, v, p := c.VertexFields()
				if err = series.Write(c.Step, c.Time, u, v, p); err != nil {
					return
				}
			}
		}
	}
	if series != nil {
		if err = series.Close(); err != nil {
			return
		}
	}
	c.PrintFinal(elapsed, nSteps)
	return
}

func (c *IPCS) PrintInitialization(nSteps int) {
	fmt.Printf("Incompressible Navier-Stokes in 2 Dimensions\n")
	fmt.Printf("Taylor-Hood P2/P1, incremental pressure correction\n")
	fmt.Printf("rho = %8.5f, mu = %8.5f\n", c.Rho, c.Mu)
	fmt.Printf("K = %d elements, %d velocity dofs, %d pressure dofs\n",
		c.Msh.K(), 2*c.VSp.NDof, c.PSp.NDof)
	fmt.Printf("Nonzeros: %d momentum, %d pressure, %d mass\n",
		c.sys1.A.NNZ(), c.sys2.A.NNZ(), c.sys3.A.NNZ())
	fmt.Printf("Solving %d steps of dt = %8.6f to t = %8.5f\n\n", nSteps, c.Dt, c.FinalTime)
	fmt.Printf("    step    time     CG1  CG2  CG3     max|u|      CFL    ||div u||\n")
}

func (c *IPCS) PrintUpdate(umax float64) {
	fmt.Printf("%8d%8.4f%8d%5d%5d%11.4e%9.4f%13.4e\n",
		c.Step, c.Time,
		c.sys1.Iterations, c.sys2.Iterations, c.sys3.Iterations,
		umax, umax*c.Dt/c.Msh.Hmin, c.DivergenceNorm())
}

func (c *IPCS) PrintFinal(elapsed time.Duration, steps int) {
	rate := float64(elapsed.Microseconds()) / (float64(c.Msh.K() * steps))
	fmt.Printf("\nRate of execution = %8.5f us/(element*step) over %d steps\n", rate, steps)
}

func matVec(A utils.CSR, x []float64) (y []float64) {
	nr, _ := A.Dims()
	y = make([]float64, nr)
	A.MulVec(y, x)
	return
}
