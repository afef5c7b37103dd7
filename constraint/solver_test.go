package constraint

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// TestSolverConvergesUnconstrainedRow checks the property from spec
// section 8: for a row with lower=-Inf, upper=+Inf, after enough
// iterations |G.v_lambda + eps*lambda - B| is small.
func TestSolverConvergesUnconstrainedRow(t *testing.T) {
	row := Row{
		I: 0, J: 1,
		HasLower: false, HasUpper: false,
	}
	row.G[0], row.G[1], row.G[2] = -1, 0, 0
	row.G[6], row.G[7], row.G[8] = 1, 0, 0
	row.Minv[0], row.Minv[1], row.Minv[2] = 1, 1, 1
	row.Minv[6], row.Minv[7], row.Minv[8] = 0.5, 0.5, 0.5
	row.Q[0] = -0.1
	row.Qdot[0], row.Qdot[6] = 0.2, -0.3

	rows := []Row{row}
	s := NewSolver(1.0/60, 1e6, 3)
	s.Iterations = 200
	s.Solve(rows, 2)
	row = rows[0]

	d := s.D
	a := 4 / (s.H * (1 + 4*d))
	b := 4 * d / (1 + 4*d)
	eps := 4 / (s.H * s.H * s.K * (1 + 4*d))

	var gmg, gq, gw float32
	for k := 0; k < 12; k++ {
		gmg += row.G[k] * row.G[k] * row.Minv[k]
		gq += row.G[k] * row.Q[k]
		gw += row.G[k] * row.Qdot[k]
	}
	bTarget := -a*gq - b*gw

	dvi, dwi := s.Delta(0)
	dvj, dwj := s.Delta(1)
	_ = dwi
	_ = dwj

	gu := row.G[0]*dvi.X() + row.G[6]*dvj.X()
	lambda := row.Lambda
	residual := gu + eps*lambda - bTarget
	if float32(math.Abs(float64(residual))) > 1e-3*float32(math.Abs(float64(bTarget))+1) {
		t.Fatalf("residual %v too large relative to target %v (gmg=%v)", residual, bTarget, gmg)
	}
}

func TestSolverClampsToBounds(t *testing.T) {
	row := NewRow(0, 1)
	row.G[0] = -1
	row.G[6] = 1
	row.Minv[0] = 1
	row.Minv[6] = 1
	row.Qdot[0] = -5 // bodies separating fast: the unclamped lambda is negative
	row.Lower, row.HasLower = 0, true
	row.Upper, row.HasUpper = math.MaxFloat32, false

	rows := []Row{row}
	s := NewSolver(1.0/60, 1e7, 3)
	s.Solve(rows, 2)
	row = rows[0]

	if row.Lambda < 0 {
		t.Fatalf("lambda = %v, want >= lower bound 0", row.Lambda)
	}
}

func TestSolverNoRowsIsNoop(t *testing.T) {
	s := NewSolver(1.0/60, 1e6, 3)
	s.Solve(nil, 3)
	dv, dw := s.Delta(0)
	if dv != (mgl32.Vec3{}) || dw != (mgl32.Vec3{}) {
		t.Fatal("no rows should leave scratch at zero")
	}
}
