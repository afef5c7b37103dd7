package constraint

import "github.com/go-gl/mathgl/mgl32"

// AssembleSpherePlane builds a persistent-contact row for a sphere (i)
// resting against a plane (j). The sphere's angular block is left
// zero-filled: this engine treats the sphere's contact torque arm as
// zero.
func AssembleSpherePlane(i, j int, bi, bj BodyState, n, qvec mgl32.Vec3) Row {
	row := NewRow(i, j)
	row.setBody(0, bi.Velocity, bi.AngularVel, bi.Force, bi.Torque, bi.InvMass, bi.InvInertia)
	row.setBody(6, bj.Velocity, bj.AngularVel, bj.Force, bj.Torque, bj.InvMass, bj.InvInertia)
	row.setLinearJacobian(0, n.Mul(-1))
	row.setQ(0, qvec.Mul(-1))
	return row
}

// AssembleSphereSphere builds a persistent-contact row between two
// spheres. The Jacobian is linear-only: sphere-sphere contact has no
// angular cross-terms in this engine.
func AssembleSphereSphere(i, j int, bi, bj BodyState, n, qvec mgl32.Vec3) Row {
	row := NewRow(i, j)
	row.setBody(0, bi.Velocity, bi.AngularVel, bi.Force, bi.Torque, bi.InvMass, bi.InvInertia)
	row.setBody(6, bj.Velocity, bj.AngularVel, bj.Force, bj.Torque, bj.InvMass, bj.InvInertia)
	row.setLinearJacobian(0, n.Mul(-1))
	row.setLinearJacobian(6, n)
	row.setQ(0, qvec.Mul(-1))
	row.setQ(6, qvec)
	return row
}

// AssembleBoxPlane builds a persistent-contact row for one corner of a
// box (i) penetrating a plane (j). r is the corner offset from the box's
// center of mass, already rotated into world space.
func AssembleBoxPlane(i, j int, bi, bj BodyState, n, qvec, r mgl32.Vec3) Row {
	row := NewRow(i, j)
	row.setBody(0, bi.Velocity, bi.AngularVel, bi.Force, bi.Torque, bi.InvMass, bi.InvInertia)
	row.setBody(6, bj.Velocity, bj.AngularVel, bj.Force, bj.Torque, bj.InvMass, bj.InvInertia)
	row.setLinearJacobian(0, n.Mul(-1))
	row.setAngularJacobian(0, r.Cross(n).Mul(-1))
	row.setQ(0, qvec.Mul(-1))
	return row
}
