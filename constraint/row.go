// Package constraint holds the SPOOK solver's row representation: the
// 12-wide per-contact data the projected Gauss-Seidel iterator consumes,
// and the shape-pair assembly routines that build a row from a narrowphase
// contact. The row layout is deliberately flat (fixed-size arrays, no
// slices) so the solver's inner loop touches no heap.
package constraint

import "github.com/go-gl/mathgl/mgl32"

// Row is one constraint: a single scalar inequality between two bodies'
// velocities, expressed over the 12-wide stacked DoF vector
// [vi(3), wi(3), vj(3), wj(3)].
//
// J == -1 marks a single-body row; none of the assembly routines below
// produce one today (every contact pair handled here is body-body, a
// static plane included), but the solver and the row layout support it.
type Row struct {
	G    [12]float32 // Jacobian
	Minv [12]float32 // per-DoF inverse mass/inertia, zero for fixed bodies
	Q    [12]float32 // constraint violation (position error)
	Qdot [12]float32 // current velocity in each DoF slot
	Fext [12]float32 // external force/torque in each DoF slot

	Lower, Upper         float32
	HasLower, HasUpper   bool
	I, J                 int

	// Lambda is the accumulated multiplier, relaxed in place across the
	// solver's sweeps. Each row starts a step at zero; this engine does
	// not warm-start from the previous step.
	Lambda float32
}

// NewRow builds a zeroed row for bodies i and j, with the non-penetration
// bounds [0, +Inf) every contact row in this engine uses.
func NewRow(i, j int) Row {
	return Row{
		I: i, J: j,
		Lower: 0, HasLower: true,
		Upper: 0, HasUpper: false,
	}
}

// setBody writes a body's linear/angular velocity, external force/torque
// and inverse-mass diagonal into the row's slots for DoF block "base"
// (0 for body i, 6 for body j).
func (r *Row) setBody(base int, v, w, f, tau mgl32.Vec3, invMass float32, invInertia mgl32.Vec3) {
	r.Qdot[base+0], r.Qdot[base+1], r.Qdot[base+2] = v.X(), v.Y(), v.Z()
	r.Qdot[base+3], r.Qdot[base+4], r.Qdot[base+5] = w.X(), w.Y(), w.Z()
	r.Fext[base+0], r.Fext[base+1], r.Fext[base+2] = f.X(), f.Y(), f.Z()
	r.Fext[base+3], r.Fext[base+4], r.Fext[base+5] = tau.X(), tau.Y(), tau.Z()
	r.Minv[base+0], r.Minv[base+1], r.Minv[base+2] = invMass, invMass, invMass
	r.Minv[base+3], r.Minv[base+4], r.Minv[base+5] = invInertia.X(), invInertia.Y(), invInertia.Z()
}

func (r *Row) setLinearJacobian(base int, v mgl32.Vec3) {
	r.G[base+0], r.G[base+1], r.G[base+2] = v.X(), v.Y(), v.Z()
}

func (r *Row) setAngularJacobian(base int, w mgl32.Vec3) {
	r.G[base+3], r.G[base+4], r.G[base+5] = w.X(), w.Y(), w.Z()
}

func (r *Row) setQ(base int, v mgl32.Vec3) {
	r.Q[base+0], r.Q[base+1], r.Q[base+2] = v.X(), v.Y(), v.Z()
}

// BodyState is the slice of a rigid body's state a constraint row needs.
// Decoupling it from the body package keeps narrowphase/solver assembly
// free of an import on the SoA world.
type BodyState struct {
	InvMass    float32
	InvInertia mgl32.Vec3 // diagonal, already inverted; zero on fixed axes
	Velocity   mgl32.Vec3
	AngularVel mgl32.Vec3
	Force      mgl32.Vec3
	Torque     mgl32.Vec3
}
