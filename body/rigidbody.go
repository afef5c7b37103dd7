package body

import "github.com/go-gl/mathgl/mgl32"

// WorldView is the indirect handle a body uses to reach its world's
// structure-of-arrays storage once attached. A world satisfies this by
// forwarding each method to its own slices; body never holds a concrete
// world pointer, so body and world can refer to each other without an
// import cycle.
type WorldView interface {
	Position(index int) mgl32.Vec3
	SetPosition(index int, v mgl32.Vec3)
	Orientation(index int) mgl32.Quat
	SetOrientation(index int, q mgl32.Quat)
	Velocity(index int) mgl32.Vec3
	SetVelocity(index int, v mgl32.Vec3)
	AngularVelocity(index int) mgl32.Vec3
	SetAngularVelocity(index int, v mgl32.Vec3)
	Force(index int) mgl32.Vec3
	SetForce(index int, v mgl32.Vec3)
	Torque(index int) mgl32.Vec3
	SetTorque(index int, v mgl32.Vec3)
}

// RigidBody is a physical body: a shape, mass properties, and motion
// state. Before it is added to a world it owns its state directly; once
// attached, getters and setters forward to the world's arrays and the
// body itself becomes a thin handle (id + world view).
type RigidBody struct {
	id    int // -1 until attached; equal to the body's world index after
	world WorldView

	Shape        Shape
	Mass         float32
	InvMass      float32
	LocalInertia mgl32.Vec3 // diagonal

	// IsSleeping bodies skip integration, and a pair of two sleeping
	// bodies is excluded from broadphase pairing. See World.Step and
	// RigidBody.TrySleep.
	IsSleeping bool
	sleepTimer float32

	// detached state; mirrored into the world's arrays by World.Add and
	// unused afterwards except as the value returned while detached.
	position        mgl32.Vec3
	orientation     mgl32.Quat
	velocity        mgl32.Vec3
	angularVelocity mgl32.Vec3
	force           mgl32.Vec3
	torque          mgl32.Vec3
}

// New creates a detached rigid body. mass <= 0 makes the body fixed
// (infinite effective mass, zero inverse mass).
func New(mass float32, shape Shape) *RigidBody {
	rb := &RigidBody{
		id:          -1,
		Shape:       shape,
		Mass:        mass,
		orientation: mgl32.QuatIdent(),
	}
	if mass > 0 {
		rb.InvMass = 1.0 / mass
	}
	rb.LocalInertia = shape.LocalInertia(mass)
	return rb
}

// ID returns the body's index in its world, or -1 if detached.
func (rb *RigidBody) ID() int { return rb.id }

// Fixed reports whether the body is immovable (mass <= 0).
func (rb *RigidBody) Fixed() bool { return rb.Mass <= 0 }

// Attach binds the body to a world slot. Called once by World.Add.
func (rb *RigidBody) Attach(id int, w WorldView) {
	rb.id = id
	rb.world = w
}

func (rb *RigidBody) Position() mgl32.Vec3 {
	if rb.id == -1 {
		return rb.position
	}
	return rb.world.Position(rb.id)
}

func (rb *RigidBody) SetPosition(v mgl32.Vec3) {
	if rb.id == -1 {
		rb.position = v
		return
	}
	rb.world.SetPosition(rb.id, v)
}

func (rb *RigidBody) Orientation() mgl32.Quat {
	if rb.id == -1 {
		return rb.orientation
	}
	return rb.world.Orientation(rb.id)
}

func (rb *RigidBody) SetOrientation(q mgl32.Quat) {
	if rb.id == -1 {
		rb.orientation = q
		return
	}
	rb.world.SetOrientation(rb.id, q)
}

func (rb *RigidBody) Velocity() mgl32.Vec3 {
	if rb.id == -1 {
		return rb.velocity
	}
	return rb.world.Velocity(rb.id)
}

func (rb *RigidBody) SetVelocity(v mgl32.Vec3) {
	if rb.id == -1 {
		rb.velocity = v
		return
	}
	rb.world.SetVelocity(rb.id, v)
}

func (rb *RigidBody) AngularVelocity() mgl32.Vec3 {
	if rb.id == -1 {
		return rb.angularVelocity
	}
	return rb.world.AngularVelocity(rb.id)
}

func (rb *RigidBody) SetAngularVelocity(v mgl32.Vec3) {
	if rb.id == -1 {
		rb.angularVelocity = v
		return
	}
	rb.world.SetAngularVelocity(rb.id, v)
}

func (rb *RigidBody) Force() mgl32.Vec3 {
	if rb.id == -1 {
		return rb.force
	}
	return rb.world.Force(rb.id)
}

func (rb *RigidBody) SetForce(v mgl32.Vec3) {
	if rb.id == -1 {
		rb.force = v
		return
	}
	rb.world.SetForce(rb.id, v)
}

func (rb *RigidBody) Torque() mgl32.Vec3 {
	if rb.id == -1 {
		return rb.torque
	}
	return rb.world.Torque(rb.id)
}

func (rb *RigidBody) SetTorque(v mgl32.Vec3) {
	if rb.id == -1 {
		rb.torque = v
		return
	}
	rb.world.SetTorque(rb.id, v)
}

// AddForce accumulates a world-space force for the next integration.
func (rb *RigidBody) AddForce(f mgl32.Vec3) {
	if rb.Fixed() {
		return
	}
	rb.Awake()
	rb.SetForce(rb.Force().Add(f))
}

// AddTorque accumulates a world-space torque for the next integration.
func (rb *RigidBody) AddTorque(t mgl32.Vec3) {
	if rb.Fixed() {
		return
	}
	rb.Awake()
	rb.SetTorque(rb.Torque().Add(t))
}

// ClearForces zeroes accumulated force and torque.
func (rb *RigidBody) ClearForces() {
	rb.SetForce(mgl32.Vec3{})
	rb.SetTorque(mgl32.Vec3{})
}

// TrySleep puts a dynamic body to sleep once its linear and angular speed
// have stayed below velocityThreshold for timeThreshold seconds.
func (rb *RigidBody) TrySleep(dt, timeThreshold, velocityThreshold float32) {
	if rb.Fixed() {
		return
	}
	if rb.Velocity().Len() < velocityThreshold && rb.AngularVelocity().Len() < velocityThreshold {
		rb.sleepTimer += dt
		if rb.sleepTimer >= timeThreshold {
			rb.Sleep()
		}
	} else {
		rb.Awake()
	}
}

// Sleep zeroes velocities and forces and marks the body asleep.
func (rb *RigidBody) Sleep() {
	rb.IsSleeping = true
	rb.sleepTimer = 0
	rb.SetVelocity(mgl32.Vec3{})
	rb.SetAngularVelocity(mgl32.Vec3{})
	rb.ClearForces()
}

// Awake marks the body as no longer asleep and resets its sleep timer.
func (rb *RigidBody) Awake() {
	rb.IsSleeping = false
	rb.sleepTimer = 0
}
