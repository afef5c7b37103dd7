// Package body holds the collision shape catalogue and the rigid body
// record that the world steps. Shapes are plain data plus the two
// capabilities narrowphase and mass computation need; bodies are either
// detached (own their state) or attached to a world (state forwards to
// the world's structure-of-arrays storage).
package body

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Kind tags a Shape's narrowphase and broadphase dispatch.
type Kind int

const (
	KindSphere Kind = iota
	KindPlane
	KindBox
)

func (k Kind) String() string {
	switch k {
	case KindSphere:
		return "sphere"
	case KindPlane:
		return "plane"
	case KindBox:
		return "box"
	default:
		return "unknown"
	}
}

// Shape is the capability set narrowphase and mass computation require of
// any collision primitive.
type Shape interface {
	Kind() Kind
	// BoundingSphereRadius returns a conservative bounding radius. Planes
	// are conceptually unbounded; the engine never queries their radius.
	BoundingSphereRadius() float32
	// LocalInertia returns the diagonal of the local inertia tensor for
	// the given mass.
	LocalInertia(mass float32) mgl32.Vec3
}

// Sphere is a collision primitive of radius Radius.
type Sphere struct {
	Radius float32
}

func (Sphere) Kind() Kind { return KindSphere }

func (s Sphere) BoundingSphereRadius() float32 { return s.Radius }

func (s Sphere) LocalInertia(mass float32) mgl32.Vec3 {
	i := 0.4 * mass * s.Radius * s.Radius
	return mgl32.Vec3{i, i, i}
}

// Plane is an infinite static collision primitive. Normal must be a unit
// vector; planes are static and carry zero inertia.
type Plane struct {
	Normal mgl32.Vec3
}

func (Plane) Kind() Kind { return KindPlane }

// BoundingSphereRadius is conceptually infinite for a plane; the engine
// never queries it, so a large finite sentinel is returned instead of Inf
// to keep arithmetic on it well-defined.
func (p Plane) BoundingSphereRadius() float32 { return float32(math.MaxFloat32) }

func (p Plane) LocalInertia(mass float32) mgl32.Vec3 { return mgl32.Vec3{} }

// Box is an axis-aligned collision primitive defined by its half-extents.
type Box struct {
	HalfExtents mgl32.Vec3
}

func (Box) Kind() Kind { return KindBox }

func (b Box) BoundingSphereRadius() float32 { return b.HalfExtents.Len() }

func (b Box) LocalInertia(mass float32) mgl32.Vec3 {
	hx, hy, hz := b.HalfExtents.X(), b.HalfExtents.Y(), b.HalfExtents.Z()
	f := mass / 12.0
	return mgl32.Vec3{
		f * (hy*hy + hz*hz),
		f * (hx*hx + hz*hz),
		f * (hx*hx + hy*hy),
	}
}
