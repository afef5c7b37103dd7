package spook3d

import (
	"fmt"

	"spook3d/body"
)

// Broadphase is a pluggable cheap-cull strategy: given the world, it
// produces two parallel index slices of candidate colliding pairs with
// pairs[k] (outer) > pairs[k] (inner).
type Broadphase interface {
	CollisionPairs(w *World) (outer, inner []int, err error)
}

// Naive is an O(N^2) all-pairs broadphase: it enumerates the strict upper
// triangle in deterministic order (outer i from 1..N-1, inner j from
// 0..i-1) and applies a cheap, shape-specific cull per pair. Any shape
// combination it doesn't recognize is emitted anyway -- narrowphase is
// responsible for the UnsupportedShape skip.
type Naive struct{}

func (Naive) CollisionPairs(w *World) ([]int, []int, error) {
	n := w.Len()
	var outer, inner []int
	for i := 1; i < n; i++ {
		for j := 0; j < i; j++ {
			if !w.broadCull(i, j) {
				continue
			}
			outer = append(outer, i)
			inner = append(inner, j)
		}
	}
	return outer, inner, nil
}

// broadCull applies a cheap per-pair rejection test. Pairs whose shape
// kinds narrowphase has no handler for are still passed through unculled;
// that decision belongs to narrowphase.
func (w *World) broadCull(i, j int) bool {
	if w.fixed[i] && w.fixed[j] {
		return false
	}
	if w.sleeping[i] && w.sleeping[j] {
		return false
	}

	ki, kj := w.shape[i].Kind(), w.shape[j].Kind()
	switch {
	case ki == body.KindSphere && kj == body.KindSphere:
		si, sj := w.shape[i].(body.Sphere), w.shape[j].(body.Sphere)
		d := w.position[i].Sub(w.position[j])
		r := si.Radius + sj.Radius
		return absf(d.X()) < r && absf(d.Y()) < r && absf(d.Z()) < r
	case ki == body.KindSphere && kj == body.KindPlane:
		return spherePlaneCull(w, i, j)
	case ki == body.KindPlane && kj == body.KindSphere:
		return spherePlaneCull(w, j, i)
	case ki == body.KindBox && kj == body.KindPlane:
		return boxPlaneCull(w, i, j)
	case ki == body.KindPlane && kj == body.KindBox:
		return boxPlaneCull(w, j, i)
	default:
		return true
	}
}

func spherePlaneCull(w *World, s, p int) bool {
	sphere := w.shape[s].(body.Sphere)
	plane := w.shape[p].(body.Plane)
	d := w.position[s].Sub(w.position[p]).Dot(plane.Normal) - sphere.Radius
	return d < 0
}

func boxPlaneCull(w *World, b, p int) bool {
	box := w.shape[b].(body.Box)
	plane := w.shape[p].(body.Plane)
	d := w.position[b].Sub(w.position[p]).Dot(plane.Normal) - box.HalfExtents.Len()
	return d < 0
}

func absf(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

// collisionPairs runs the world's configured broadphase, raising
// ErrUnknownBroadphase when none is set.
func (w *World) collisionPairs() ([]int, []int, error) {
	if w.Broadphase == nil {
		return nil, nil, fmt.Errorf("spook3d: %w", ErrUnknownBroadphase)
	}
	return w.Broadphase.CollisionPairs(w)
}
