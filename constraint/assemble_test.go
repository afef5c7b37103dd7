package constraint

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestAssembleSpherePlaneZeroesAngularBlock(t *testing.T) {
	bi := BodyState{InvMass: 1, InvInertia: mgl32.Vec3{2.5, 2.5, 2.5}}
	bj := BodyState{} // plane, fixed
	row := AssembleSpherePlane(0, 1, bi, bj, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, -0.2, 0})

	for k := 3; k < 6; k++ {
		if row.G[k] != 0 {
			t.Fatalf("angular jacobian block should be zero, G[%d] = %v", k, row.G[k])
		}
	}
	if row.G[0] != 0 || row.G[1] != -1 || row.G[2] != 0 {
		t.Fatalf("linear jacobian = %v, want (0,-1,0)", row.G[0:3])
	}
	if row.Lower != 0 || !row.HasLower || row.HasUpper {
		t.Fatal("non-penetration row must have bounds [0, +Inf)")
	}
}

func TestAssembleSphereSphereSymmetricJacobian(t *testing.T) {
	bi := BodyState{InvMass: 1}
	bj := BodyState{InvMass: 1}
	n := mgl32.Vec3{1, 0, 0}
	row := AssembleSphereSphere(0, 1, bi, bj, n, mgl32.Vec3{-0.1, 0, 0})

	if row.G[0] != -1 || row.G[6] != 1 {
		t.Fatalf("linear jacobian blocks = (%v, %v), want (-1, 1)", row.G[0], row.G[6])
	}
	if row.Q[0] <= 0 || row.Q[6] >= 0 {
		t.Fatalf("Q blocks = (%v, %v), want opposite signs matching -qvec/+qvec", row.Q[0], row.Q[6])
	}
}

func TestAssembleBoxPlaneUsesCornerTorqueArm(t *testing.T) {
	bi := BodyState{InvMass: 1, InvInertia: mgl32.Vec3{1, 1, 1}}
	bj := BodyState{}
	n := mgl32.Vec3{0, 1, 0}
	r := mgl32.Vec3{1, -1, 1}
	row := AssembleBoxPlane(0, 1, bi, bj, n, mgl32.Vec3{0, -0.3, 0}, r)

	wantAngular := r.Cross(n).Mul(-1)
	if row.G[3] != wantAngular.X() || row.G[4] != wantAngular.Y() || row.G[5] != wantAngular.Z() {
		t.Fatalf("angular jacobian = %v, want %v", row.G[3:6], wantAngular)
	}
}

func TestNewRowDefaultsNonPenetration(t *testing.T) {
	row := NewRow(2, 5)
	if row.I != 2 || row.J != 5 {
		t.Fatalf("indices = (%d,%d), want (2,5)", row.I, row.J)
	}
	if row.Lower != 0 || !row.HasLower || row.HasUpper {
		t.Fatal("default row bounds should be [0, +Inf)")
	}
}
