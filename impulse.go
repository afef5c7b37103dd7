package spook3d

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// mat3 is a plain 3x3 matrix used only by the impulse solve; body.Shape
// and the constraint package use mgl32 directly, but the skew-symmetric
// algebra here reads more plainly as row-major float32 arrays than as
// mgl32.Mat3 column-major arithmetic.
type mat3 [3][3]float32

// skew3 returns the cross-product matrix of v, such that skew3(v).mul(x)
// == v.Cross(x).
func skew3(v mgl32.Vec3) mat3 {
	return mat3{
		{0, -v.Z(), v.Y()},
		{v.Z(), 0, -v.X()},
		{-v.Y(), v.X(), 0},
	}
}

func diag3(v mgl32.Vec3) mat3 {
	return mat3{{v.X(), 0, 0}, {0, v.Y(), 0}, {0, 0, v.Z()}}
}

func (a mat3) mul(b mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			var s float32
			for k := 0; k < 3; k++ {
				s += a[i][k] * b[k][j]
			}
			r[i][j] = s
		}
	}
	return r
}

func (a mat3) sub(b mat3) mat3 {
	var r mat3
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			r[i][j] = a[i][j] - b[i][j]
		}
	}
	return r
}

func (a mat3) addDiag(s float32) mat3 {
	r := a
	r[0][0] += s
	r[1][1] += s
	r[2][2] += s
	return r
}

func (a mat3) vmul(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		a[0][0]*v.X() + a[0][1]*v.Y() + a[0][2]*v.Z(),
		a[1][0]*v.X() + a[1][1]*v.Y() + a[1][2]*v.Z(),
		a[2][0]*v.X() + a[2][1]*v.Y() + a[2][2]*v.Z(),
	}
}

// gaussianSolve3 solves a*x == rhs via Gaussian elimination with partial
// pivoting. It returns ErrSolverSingular if elimination produces a NaN
// or infinite value.
func gaussianSolve3(a mat3, rhs mgl32.Vec3) (mgl32.Vec3, error) {
	var m [3][4]float32
	for i := 0; i < 3; i++ {
		m[i][0], m[i][1], m[i][2] = a[i][0], a[i][1], a[i][2]
	}
	m[0][3], m[1][3], m[2][3] = rhs.X(), rhs.Y(), rhs.Z()

	for col := 0; col < 3; col++ {
		pivot := col
		best := math.Abs(float64(m[col][col]))
		for row := col + 1; row < 3; row++ {
			if v := math.Abs(float64(m[row][col])); v > best {
				best, pivot = v, row
			}
		}
		m[col], m[pivot] = m[pivot], m[col]

		p := m[col][col]
		if p == 0 || isBad(p) {
			return mgl32.Vec3{}, fmt.Errorf("%w", ErrSolverSingular)
		}
		for row := col + 1; row < 3; row++ {
			f := m[row][col] / p
			for k := col; k < 4; k++ {
				m[row][k] -= f * m[col][k]
			}
		}
	}

	var x [3]float32
	for row := 2; row >= 0; row-- {
		sum := m[row][3]
		for k := row + 1; k < 3; k++ {
			sum -= m[row][k] * x[k]
		}
		if m[row][row] == 0 || isBad(m[row][row]) {
			return mgl32.Vec3{}, fmt.Errorf("%w", ErrSolverSingular)
		}
		x[row] = sum / m[row][row]
	}
	if isBad(x[0]) || isBad(x[1]) || isBad(x[2]) {
		return mgl32.Vec3{}, fmt.Errorf("%w", ErrSolverSingular)
	}
	return mgl32.Vec3{x[0], x[1], x[2]}, nil
}

func isBad(f float32) bool {
	v := float64(f)
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// applyImpulse is the first-contact handler: it solves the 3x3 collision
// matrix for the contact impulse J and applies it directly to the two
// bodies' velocities. The angular half of the update is gated by
// World.ApplyImpulseAngular (off by default).
func (w *World) applyImpulse(c Contact, restitution, friction float32) error {
	i, j := c.I, c.J

	ptVelI := w.velocity[i].Add(w.angularVelocity[i].Cross(c.RI))
	ptVelJ := w.velocity[j].Add(w.angularVelocity[j].Cross(c.RJ))
	u := ptVelI.Sub(ptVelJ)

	invII := diag3(w.worldInvInertia(i))
	invIJ := diag3(w.worldInvInertia(j))
	riX, rjX := skew3(c.RI), skew3(c.RJ)

	k := mat3{}.addDiag(w.invMass[i] + w.invMass[j])
	k = k.sub(riX.mul(invII).mul(riX))
	k = k.sub(rjX.mul(invIJ).mul(rjX))

	vf := c.N.Mul(-restitution * u.Dot(c.N))
	j3, err := gaussianSolve3(k, vf.Sub(u))
	if err != nil {
		return fmt.Errorf("spook3d: contact (%d,%d): %w", i, j, err)
	}

	if friction > 0 {
		jn := c.N.Mul(j3.Dot(c.N))
		jt := j3.Sub(jn)
		if jt.Len() > friction*jn.Len() && jt.Len() > 0 {
			t := jt.Normalize()
			denom := c.N.Dot(k.vmul(c.N.Sub(t.Mul(friction))))
			if denom != 0 {
				impulse := -(1 + restitution) * u.Dot(c.N) / denom
				j3 = c.N.Mul(impulse).Sub(t.Mul(friction * impulse))
			}
		}
	}

	w.velocity[i] = w.velocity[i].Add(j3.Mul(w.invMass[i]))
	w.velocity[j] = w.velocity[j].Sub(j3.Mul(w.invMass[j]))

	if w.ApplyImpulseAngular {
		w.angularVelocity[i] = w.angularVelocity[i].Add(invII.vmul(c.RI.Cross(j3)))
		w.angularVelocity[j] = w.angularVelocity[j].Sub(invIJ.vmul(c.RJ.Cross(j3)))
	}
	return nil
}
