package spook3d

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"spook3d/body"
)

func floatNear(a, b, tol float32) bool {
	return float32(math.Abs(float64(a-b))) < tol
}

func newTestWorld(t *testing.T) *World {
	t.Helper()
	w := New()
	w.SetLogger(nil)
	return w
}

func TestSpherePlaneContactPenetrating(t *testing.T) {
	w := newTestWorld(t)
	ground := body.New(0, body.Plane{Normal: mgl32.Vec3{0, 1, 0}})
	if err := w.Add(ground); err != nil {
		t.Fatal(err)
	}
	ball := body.New(1, body.Sphere{Radius: 1})
	ball.SetPosition(mgl32.Vec3{0, 0.5, 0})
	if err := w.Add(ball); err != nil {
		t.Fatal(err)
	}

	c, ok := w.spherePlaneContact(1, 0)
	if !ok {
		t.Fatal("expected a contact: sphere center is below radius from the plane")
	}
	if c.Q >= 0 {
		t.Fatalf("penetration Q = %v, want negative", c.Q)
	}
	if !vec3Equal(c.N, mgl32.Vec3{0, -1, 0}, 1e-6) {
		t.Fatalf("contact normal = %v, want (0,-1,0)", c.N)
	}
}

func TestSpherePlaneNoContactWhenSeparated(t *testing.T) {
	w := newTestWorld(t)
	ground := body.New(0, body.Plane{Normal: mgl32.Vec3{0, 1, 0}})
	_ = w.Add(ground)
	ball := body.New(1, body.Sphere{Radius: 1})
	ball.SetPosition(mgl32.Vec3{0, 5, 0})
	_ = w.Add(ball)

	if _, ok := w.spherePlaneContact(1, 0); ok {
		t.Fatal("expected no contact: sphere is well above the plane")
	}
}

func TestSphereSphereContactAndMomentumSetup(t *testing.T) {
	w := newTestWorld(t)
	a := body.New(1, body.Sphere{Radius: 1})
	a.SetPosition(mgl32.Vec3{-0.9, 0, 0})
	b := body.New(1, body.Sphere{Radius: 1})
	b.SetPosition(mgl32.Vec3{0.9, 0, 0})
	_ = w.Add(a)
	_ = w.Add(b)

	c, ok := w.sphereSphereContact(0, 1)
	if !ok {
		t.Fatal("spheres 1.8 apart with radius 1 each should overlap")
	}
	if !vec3Equal(c.N, mgl32.Vec3{1, 0, 0}, 1e-6) {
		t.Fatalf("normal = %v, want (1,0,0)", c.N)
	}
}

func TestBoxPlaneContactsCapAtFour(t *testing.T) {
	w := newTestWorld(t)
	ground := body.New(0, body.Plane{Normal: mgl32.Vec3{0, 1, 0}})
	_ = w.Add(ground)
	box := body.New(1, body.Box{HalfExtents: mgl32.Vec3{1, 1, 1}})
	box.SetPosition(mgl32.Vec3{0, 0, 0})
	_ = w.Add(box)

	contacts := w.boxPlaneContacts(1, 0)
	if len(contacts) == 0 {
		t.Fatal("expected contacts: box center is on the plane, corners penetrate")
	}
	if len(contacts) > maxBoxPlaneContacts {
		t.Fatalf("got %d contacts, want at most %d", len(contacts), maxBoxPlaneContacts)
	}
	for _, c := range contacts {
		if c.Q >= 0 {
			t.Fatalf("contact Q = %v, want negative", c.Q)
		}
	}
}

func TestContactsForPairUnsupportedCombo(t *testing.T) {
	w := newTestWorld(t)
	a := body.New(1, body.Box{HalfExtents: mgl32.Vec3{1, 1, 1}})
	b := body.New(1, body.Box{HalfExtents: mgl32.Vec3{1, 1, 1}})
	_ = w.Add(a)
	_ = w.Add(b)

	_, supported := w.contactsForPair(0, 1)
	if supported {
		t.Fatal("box-box has no narrowphase handler in this core and should be unsupported")
	}
}
