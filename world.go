// Package spook3d is a deterministic, fixed-step 3D rigid-body physics
// core: a world stepping pipeline, shape-pair narrowphase for
// sphere/plane/box primitives, and a SPOOK projected Gauss-Seidel
// constraint solver, storing per-body state in structure-of-arrays form.
package spook3d

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"spook3d/body"
	"spook3d/constraint"
)

const (
	defaultStiffness            = 1e7
	defaultDamping              = 3
	defaultIterations           = 10
	defaultSleepTimeThreshold   = 0.5
	defaultSleepVelocityThresh  = 0.05
)

// World owns the structure-of-arrays body state, the N*N
// contact-history matrix, and the SPOOK solver scratch. It is not safe
// for concurrent use; callers serialize Step and Add.
type World struct {
	Gravity mgl32.Vec3

	// Iterations is the number of SPOOK Gauss-Seidel sweeps per step.
	Iterations int
	// Stiffness (k) and Damping (d) are the global SPOOK spring/damper
	// parameters the solver derives its a, b, and epsilon coefficients
	// from.
	Stiffness, Damping float32

	// Restitution and Friction are the first-contact impulse
	// coefficients applied to every pair; there is no per-body material
	// system. Friction defaults to 0, keeping the friction-cone path in
	// applyImpulse dormant.
	Restitution, Friction float32

	// ApplyImpulseAngular toggles the angular half of the first-contact
	// impulse update. Off by default.
	ApplyImpulseAngular bool

	// SleepTimeThreshold and SleepVelocityThreshold configure
	// RigidBody.TrySleep, called on every awake non-fixed body once its
	// velocity is finalized each step.
	SleepTimeThreshold, SleepVelocityThreshold float32

	Broadphase Broadphase
	Events     *Events
	Logger     *slog.Logger

	// Workers controls the worker-pool fan-out used for the integration
	// pass. 1 (the default) runs sequentially in
	// deterministic index order; values above 1 trade that determinism
	// for throughput.
	Workers int

	Time       float32
	StepNumber uint64

	position        []mgl32.Vec3
	velocity        []mgl32.Vec3
	force           []mgl32.Vec3
	torque          []mgl32.Vec3
	angularVelocity []mgl32.Vec3
	orientation     []mgl32.Quat
	shape           []body.Shape
	handle          []*body.RigidBody
	fixed           []bool
	sleeping        []bool
	wasSleeping     []bool
	mass            []float32
	invMass         []float32
	localInertia    []mgl32.Vec3
	invInertia      []mgl32.Vec3

	hist   history
	solver *constraint.Solver
}

// New returns an empty world with the Naive broadphase, default SPOOK
// parameters, and slog.Default() as its logger.
func New() *World {
	w := &World{
		Gravity:                 mgl32.Vec3{0, -9.82, 0},
		Iterations:              defaultIterations,
		Stiffness:               defaultStiffness,
		Damping:                 defaultDamping,
		SleepTimeThreshold:      defaultSleepTimeThreshold,
		SleepVelocityThreshold:  defaultSleepVelocityThresh,
		Broadphase:              Naive{},
		Events:                  NewEvents(),
		Workers:                 1,
		solver:                  constraint.NewSolver(1.0/60, defaultStiffness, defaultDamping),
	}
	w.SetLogger(slog.Default())
	return w
}

// Len returns the number of bodies in the world.
func (w *World) Len() int { return len(w.position) }

// Add attaches rb to the world: it copies the body's detached state into
// a new SoA slot, grows the contact-history matrix, and turns rb into a
// thin handle over the world's arrays. A body whose Shape is nil fails
// with ErrUnsupportedShape; any concrete Shape implementation already
// satisfies the capability interface at compile time.
func (w *World) Add(rb *body.RigidBody) error {
	if rb.Shape == nil {
		return fmt.Errorf("spook3d: %w", ErrUnsupportedShape)
	}

	n := w.Len()
	w.position = append(w.position, rb.Position())
	w.orientation = append(w.orientation, rb.Orientation())
	w.velocity = append(w.velocity, rb.Velocity())
	w.angularVelocity = append(w.angularVelocity, rb.AngularVelocity())
	w.force = append(w.force, rb.Force())
	w.torque = append(w.torque, rb.Torque())
	w.shape = append(w.shape, rb.Shape)
	w.handle = append(w.handle, rb)
	w.fixed = append(w.fixed, rb.Fixed())
	w.sleeping = append(w.sleeping, false)
	w.wasSleeping = append(w.wasSleeping, false)
	w.mass = append(w.mass, rb.Mass)
	w.invMass = append(w.invMass, rb.InvMass)
	w.localInertia = append(w.localInertia, rb.LocalInertia)
	w.invInertia = append(w.invInertia, invertDiag(rb.LocalInertia))

	w.hist.resize(n + 1)
	rb.Attach(n, w)
	return nil
}

// worldInvInertia returns body i's inverse inertia diagonal in world
// space. Spheres and planes are orientation-independent; a box's is
// approximated as the componentwise absolute value of its local inertia
// rotated by its current orientation -- exact only near axis-aligned
// orientations.
func (w *World) worldInvInertia(i int) mgl32.Vec3 {
	if w.shape[i].Kind() != body.KindBox {
		return w.invInertia[i]
	}
	rotated := absVec3(w.orientation[i].Rotate(w.localInertia[i]))
	return invertDiag(rotated)
}

func (w *World) bodyState(i int) constraint.BodyState {
	return constraint.BodyState{
		InvMass:    w.invMass[i],
		InvInertia: w.worldInvInertia(i),
		Velocity:   w.velocity[i],
		AngularVel: w.angularVelocity[i],
		Force:      w.force[i],
		Torque:     w.torque[i],
	}
}

func (w *World) assembleRow(c Contact) constraint.Row {
	bi, bj := w.bodyState(c.I), w.bodyState(c.J)
	ki, kj := w.shape[c.I].Kind(), w.shape[c.J].Kind()
	switch {
	case ki == body.KindBox && kj == body.KindPlane:
		return constraint.AssembleBoxPlane(c.I, c.J, bi, bj, c.N, c.QVec, c.RI)
	case ki == body.KindSphere && kj == body.KindSphere:
		return constraint.AssembleSphereSphere(c.I, c.J, bi, bj, c.N, c.QVec)
	default: // sphere-plane
		return constraint.AssembleSpherePlane(c.I, c.J, bi, bj, c.N, c.QVec)
	}
}

// Step advances the world by dt: broadphase, history rotation, gravity,
// per-pair narrowphase dispatched to either a first-contact impulse or a
// persistent constraint row, SPOOK solve, leapfrog integration, force
// reset, and clock advance. dt should stay fixed across calls; the
// solver's SPOOK coefficients are derived from it each step.
//
// There is no pause state: a caller that wants to pause simply stops
// calling Step.
func (w *World) Step(dt float32) error {
	n := w.Len()
	if n == 0 {
		w.Time += dt
		w.StepNumber++
		return nil
	}

	for i := 0; i < n; i++ {
		w.sleeping[i] = w.handle[i].IsSleeping
	}

	outer, inner, err := w.collisionPairs()
	if err != nil {
		return err
	}

	w.hist.rotate()

	for i := 0; i < n; i++ {
		if !w.fixed[i] && !w.sleeping[i] {
			w.force[i] = w.force[i].Add(w.Gravity.Mul(w.mass[i]))
		}
	}

	w.solver.Iterations = w.Iterations
	w.solver.K = w.Stiffness
	w.solver.D = w.Damping
	w.solver.H = dt

	var rows []constraint.Row
	for k := range outer {
		i, j := outer[k], inner[k]
		contacts, supported := w.contactsForPair(i, j)
		if !supported {
			w.Logger.Debug("spook3d: unsupported shape pair, skipping", "i", i, "j", j)
			continue
		}
		for _, c := range contacts {
			prev := w.hist.previous(c.I, c.J)
			w.hist.setCurrent(c.I, c.J, true)
			if !prev {
				if err := w.applyImpulse(c, w.Restitution, w.Friction); err != nil {
					return err
				}
				continue
			}
			rows = append(rows, w.assembleRow(c))
		}
	}

	if len(rows) > 0 {
		w.solver.Solve(rows, n)
		for i := 0; i < n; i++ {
			dv, dw := w.solver.Delta(i)
			w.velocity[i] = w.velocity[i].Add(dv)
			w.angularVelocity[i] = w.angularVelocity[i].Add(dw)
		}
	}

	task(max(1, w.Workers), indices(n), func(i int) {
		w.integrateBody(i, dt)
	})

	for i := 0; i < n; i++ {
		w.force[i] = mgl32.Vec3{}
		w.torque[i] = mgl32.Vec3{}
	}

	w.emitContactTransitions()
	w.emitSleepTransitions()
	w.Events.flush()

	w.Time += dt
	w.StepNumber++
	return nil
}

func indices(n int) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return idx
}

// integrateBody applies semi-implicit leapfrog integration to body i,
// then runs its sleep check. Fixed and already-sleeping bodies are left
// untouched.
func (w *World) integrateBody(i int, dt float32) {
	if w.fixed[i] || w.sleeping[i] {
		return
	}

	v := w.velocity[i].Add(w.force[i].Mul(w.invMass[i] * dt))
	wv := w.angularVelocity[i].Add(mulElem(w.torque[i], w.invInertia[i]).Mul(dt))
	w.velocity[i] = v
	w.angularVelocity[i] = wv
	w.position[i] = w.position[i].Add(v.Mul(dt))

	q := w.orientation[i]
	omega := mgl32.Quat{W: 0, V: wv}
	qdot := omega.Mul(q).Scale(0.5)
	next := mgl32.Quat{W: q.W + qdot.W*dt, V: q.V.Add(qdot.V.Mul(dt))}
	w.orientation[i] = next.Normalize()

	rb := w.handle[i]
	rb.TrySleep(dt, w.SleepTimeThreshold, w.SleepVelocityThreshold)
	w.sleeping[i] = rb.IsSleeping
}

// body.WorldView implementation: once a body is attached, its getters
// and setters forward here.

func (w *World) Position(i int) mgl32.Vec3            { return w.position[i] }
func (w *World) SetPosition(i int, v mgl32.Vec3)       { w.position[i] = v }
func (w *World) Orientation(i int) mgl32.Quat          { return w.orientation[i] }
func (w *World) SetOrientation(i int, q mgl32.Quat)    { w.orientation[i] = q }
func (w *World) Velocity(i int) mgl32.Vec3             { return w.velocity[i] }
func (w *World) SetVelocity(i int, v mgl32.Vec3)       { w.velocity[i] = v }
func (w *World) AngularVelocity(i int) mgl32.Vec3      { return w.angularVelocity[i] }
func (w *World) SetAngularVelocity(i int, v mgl32.Vec3) { w.angularVelocity[i] = v }
func (w *World) Force(i int) mgl32.Vec3                { return w.force[i] }
func (w *World) SetForce(i int, v mgl32.Vec3)          { w.force[i] = v }
func (w *World) Torque(i int) mgl32.Vec3               { return w.torque[i] }
func (w *World) SetTorque(i int, v mgl32.Vec3)         { w.torque[i] = v }
