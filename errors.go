package spook3d

import "errors"

// ErrSolverSingular is returned by the first-contact impulse handler when
// the 3x3 collision matrix K cannot be solved (NaN or Inf during Gaussian
// elimination).
var ErrSolverSingular = errors.New("spook3d: impulse solve hit a singular 3x3 system")

// ErrUnsupportedShape is returned by World.Add for a body with no shape.
// A shape pair with no narrowphase handler does not produce it: World.Step
// logs the skip at debug level and continues.
var ErrUnsupportedShape = errors.New("spook3d: shape pair has no narrowphase handler")

// ErrUnknownBroadphase is returned when CollisionPairs is called on a
// Broadphase with no implementation (the zero value of the Broadphase
// interface, or a type that intentionally refuses to run).
var ErrUnknownBroadphase = errors.New("spook3d: broadphase has no collision_pairs implementation")

// DetachedBody is not an error: a RigidBody that has not been added to a
// world returns its in-record state from getters and stores to setters
// rather than raising. See body.RigidBody.
