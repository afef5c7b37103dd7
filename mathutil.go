package spook3d

import "github.com/go-gl/mathgl/mgl32"

// invertDiag reciprocates a diagonal componentwise, treating a
// non-positive component as already infinite (zero inverse).
func invertDiag(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{safeInv(v.X()), safeInv(v.Y()), safeInv(v.Z())}
}

func safeInv(x float32) float32 {
	if x <= 0 {
		return 0
	}
	return 1 / x
}

func mulElem(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

func absVec3(v mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{absf(v.X()), absf(v.Y()), absf(v.Z())}
}
