package spook3d

import (
	"github.com/go-gl/mathgl/mgl32"

	"spook3d/body"
)

// Contact is the canonical output of a narrowphase handler: enough to
// build either a first-contact impulse or a persistent constraint row.
// I is always the "primary" body in the pair's formula (the sphere in
// sphere-plane, the box in box-plane, the pair's first index as dispatched
// in sphere-sphere); J is the other body. N points outward from body I.
type Contact struct {
	I, J int
	N    mgl32.Vec3
	Q    float32
	QVec mgl32.Vec3
	RI   mgl32.Vec3 // offset from body I's center to the contact point
	RJ   mgl32.Vec3 // offset from body J's center to the contact point
}

const maxBoxPlaneContacts = 4

// projectOntoPlane projects point x onto the plane through p0 with unit
// normal nrm.
func projectOntoPlane(x, p0, nrm mgl32.Vec3) mgl32.Vec3 {
	d := x.Sub(p0).Dot(nrm)
	return x.Sub(nrm.Mul(d))
}

// spherePlaneContact tests sphere s against plane p, returning a contact
// with a negative penetration depth when the sphere surface has crossed
// the plane.
func (w *World) spherePlaneContact(s, p int) (Contact, bool) {
	plane := w.shape[p].(body.Plane)
	sphere := w.shape[s].(body.Sphere)

	n := plane.Normal.Mul(-1)
	rs := n.Mul(sphere.Radius)
	xp := projectOntoPlane(w.position[s], w.position[p], plane.Normal)
	qvec := xp.Sub(w.position[s]).Sub(rs)
	q := qvec.Dot(n)
	if q >= 0 {
		return Contact{}, false
	}
	return Contact{I: s, J: p, N: n, Q: q, QVec: qvec, RI: rs}, true
}

// sphereSphereContact tests two spheres for overlap along the line
// joining their centers.
func (w *World) sphereSphereContact(i, j int) (Contact, bool) {
	si := w.shape[i].(body.Sphere)
	sj := w.shape[j].(body.Sphere)

	delta := w.position[j].Sub(w.position[i])
	dist := delta.Len()
	if dist == 0 {
		return Contact{}, false
	}
	n := delta.Mul(1 / dist)
	ri := n.Mul(si.Radius)
	rj := n.Mul(-sj.Radius)

	qvec := w.position[j].Add(rj).Sub(w.position[i].Add(ri))
	q := qvec.Dot(n)
	if q >= 0 {
		return Contact{}, false
	}
	return Contact{I: i, J: j, N: n, Q: q, QVec: qvec, RI: ri, RJ: rj}, true
}

// boxCorners returns the 8 local corner offsets of a box's half-extents.
func boxCorners(h mgl32.Vec3) [8]mgl32.Vec3 {
	return [8]mgl32.Vec3{
		{h.X(), h.Y(), h.Z()}, {h.X(), h.Y(), -h.Z()},
		{h.X(), -h.Y(), h.Z()}, {h.X(), -h.Y(), -h.Z()},
		{-h.X(), h.Y(), h.Z()}, {-h.X(), h.Y(), -h.Z()},
		{-h.X(), -h.Y(), h.Z()}, {-h.X(), -h.Y(), -h.Z()},
	}
}

// boxPlaneContacts tests each of the box's 8 corners against the plane
// using the sphere-plane formula with the sphere radius vector replaced
// by the rotated corner offset, capped at 4 emitted contacts.
func (w *World) boxPlaneContacts(b, p int) []Contact {
	plane := w.shape[p].(body.Plane)
	box := w.shape[b].(body.Box)

	n := plane.Normal.Mul(-1)
	xp := projectOntoPlane(w.position[b], w.position[p], plane.Normal)
	orient := w.orientation[b]

	var contacts []Contact
	for _, local := range boxCorners(box.HalfExtents) {
		rs := orient.Rotate(local)
		qvec := xp.Sub(w.position[b]).Sub(rs)
		q := qvec.Dot(n)
		if q >= 0 {
			continue
		}
		contacts = append(contacts, Contact{I: b, J: p, N: n, Q: q, QVec: qvec, RI: rs})
		if len(contacts) == maxBoxPlaneContacts {
			break
		}
	}
	return contacts
}

// contactsForPair dispatches a broadphase pair to the matching
// narrowphase handler. supported reports whether the shape combination
// has a handler at all (World.Step logs and skips unsupported pairs); contacts may
// be empty even when supported, if the shapes aren't currently touching.
func (w *World) contactsForPair(i, j int) (contacts []Contact, supported bool) {
	ki, kj := w.shape[i].Kind(), w.shape[j].Kind()

	switch {
	case ki == body.KindSphere && kj == body.KindPlane:
		if c, ok := w.spherePlaneContact(i, j); ok {
			contacts = []Contact{c}
		}
		return contacts, true
	case ki == body.KindPlane && kj == body.KindSphere:
		if c, ok := w.spherePlaneContact(j, i); ok {
			contacts = []Contact{c}
		}
		return contacts, true
	case ki == body.KindSphere && kj == body.KindSphere:
		if c, ok := w.sphereSphereContact(i, j); ok {
			contacts = []Contact{c}
		}
		return contacts, true
	case ki == body.KindBox && kj == body.KindPlane:
		return w.boxPlaneContacts(i, j), true
	case ki == body.KindPlane && kj == body.KindBox:
		return w.boxPlaneContacts(j, i), true
	default:
		return nil, false
	}
}
