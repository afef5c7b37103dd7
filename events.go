package spook3d

import "spook3d/body"

// EventType tags the kind of notification emitted by World.Step.
// Collision Enter/Stay/Exit are derived directly from the contact-history
// matrix's previous/current bits, with no separate pair-tracking map.
type EventType uint8

const (
	CollisionEnter EventType = iota
	CollisionStay
	CollisionExit
	BodySleep
	BodyWake
)

// Event is a single buffered notification. BodyB is nil for Sleep/Wake
// events.
type Event struct {
	Type  EventType
	BodyA *body.RigidBody
	BodyB *body.RigidBody
}

// EventListener is called once per buffered event at flush time, in
// emission order.
type EventListener func(Event)

// Events is World's notification channel: subscribers register by
// EventType and receive a synchronous callback when World.Step flushes
// its buffer at the end of the tick.
type Events struct {
	listeners map[EventType][]EventListener
	buffer    []Event
}

// NewEvents returns an empty event hub.
func NewEvents() *Events {
	return &Events{listeners: make(map[EventType][]EventListener)}
}

// Subscribe registers listener for events of the given type.
func (e *Events) Subscribe(t EventType, listener EventListener) {
	e.listeners[t] = append(e.listeners[t], listener)
}

func (e *Events) emit(ev Event) {
	e.buffer = append(e.buffer, ev)
}

func (e *Events) flush() {
	for _, ev := range e.buffer {
		for _, l := range e.listeners[ev.Type] {
			l(ev)
		}
	}
	e.buffer = e.buffer[:0]
}

// emitContactTransitions walks the upper triangle of the history matrix
// after narrowphase has run this step, comparing each pair's previous
// bit (last step's contact) to its current bit (this step's) to derive
// Enter/Stay/Exit. This runs regardless of whether broadphase considered
// the pair this step, so a pair that separates far enough to be culled
// by broadphase still gets its Exit event.
func (w *World) emitContactTransitions() {
	n := w.Len()
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			prev, cur := w.hist.previous(i, j), w.hist.current(i, j)
			if !prev && !cur {
				continue
			}
			if w.sleeping[i] && w.sleeping[j] {
				continue
			}
			a, b := w.handle[i], w.handle[j]
			switch {
			case !prev && cur:
				w.Events.emit(Event{Type: CollisionEnter, BodyA: a, BodyB: b})
			case prev && cur:
				w.Events.emit(Event{Type: CollisionStay, BodyA: a, BodyB: b})
			case prev && !cur:
				w.Events.emit(Event{Type: CollisionExit, BodyA: a, BodyB: b})
			}
		}
	}
}

// emitSleepTransitions compares each body's sleep state to what it was
// the previous step and emits Sleep/Wake accordingly.
func (w *World) emitSleepTransitions() {
	for i, wasAsleep := range w.wasSleeping {
		if wasAsleep == w.sleeping[i] {
			continue
		}
		w.wasSleeping[i] = w.sleeping[i]
		if w.sleeping[i] {
			w.Events.emit(Event{Type: BodySleep, BodyA: w.handle[i]})
		} else {
			w.Events.emit(Event{Type: BodyWake, BodyA: w.handle[i]})
		}
	}
}
