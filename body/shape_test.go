package body

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func vec3Equal(a, b mgl32.Vec3, tolerance float32) bool {
	return float32(math.Abs(float64(a.X()-b.X()))) < tolerance &&
		float32(math.Abs(float64(a.Y()-b.Y()))) < tolerance &&
		float32(math.Abs(float64(a.Z()-b.Z()))) < tolerance
}

func TestSphereLocalInertia(t *testing.T) {
	s := Sphere{Radius: 2}
	got := s.LocalInertia(5)
	want := float32(0.4 * 5 * 4)
	if !vec3Equal(got, mgl32.Vec3{want, want, want}, 1e-6) {
		t.Fatalf("LocalInertia() = %v, want uniform %v", got, want)
	}
}

func TestSphereBoundingRadius(t *testing.T) {
	s := Sphere{Radius: 3.5}
	if s.BoundingSphereRadius() != 3.5 {
		t.Fatalf("BoundingSphereRadius() = %v, want 3.5", s.BoundingSphereRadius())
	}
}

func TestPlaneIsStatic(t *testing.T) {
	p := Plane{Normal: mgl32.Vec3{0, 1, 0}}
	if got := p.LocalInertia(10); got != (mgl32.Vec3{}) {
		t.Fatalf("Plane.LocalInertia() = %v, want zero", got)
	}
}

func TestBoxLocalInertia(t *testing.T) {
	tests := []struct {
		name string
		half mgl32.Vec3
		mass float32
		want mgl32.Vec3
	}{
		{"unit cube", mgl32.Vec3{1, 1, 1}, 12, mgl32.Vec3{2, 2, 2}},
		{"rectangular", mgl32.Vec3{2, 3, 4}, 12, mgl32.Vec3{25, 20, 13}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			b := Box{HalfExtents: tc.half}
			got := b.LocalInertia(tc.mass)
			if !vec3Equal(got, tc.want, 1e-3) {
				t.Fatalf("LocalInertia() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestKindString(t *testing.T) {
	if (Sphere{}).Kind().String() != "sphere" {
		t.Fatalf("Sphere Kind() string mismatch")
	}
	if (Plane{}).Kind().String() != "plane" {
		t.Fatalf("Plane Kind() string mismatch")
	}
	if (Box{}).Kind().String() != "box" {
		t.Fatalf("Box Kind() string mismatch")
	}
}
