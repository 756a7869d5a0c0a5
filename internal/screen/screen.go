// Package screen implements the UI finite state machine: a fixed set of
// screens, each owning its own input bindings and a pure render function
// over the shared observation context.
package screen

import (
	"skyscope/internal/obscontext"
	"skyscope/internal/render"
)

// Button is one of the seven physical inputs the hardware exposes.
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonL
	ButtonR
	ButtonU
	ButtonD
	ButtonC
)

// EventKind distinguishes a button press, a held button, and its release.
type EventKind int

const (
	Press EventKind = iota
	Hold
	Release
)

// Event is a single input occurrence dispatched to the active screen.
type Event struct {
	Button Button
	Kind   EventKind
}

// ID names one of the eight screens in the state machine.
type ID int

const (
	MainMenu ID = iota
	Focus
	Alignment
	TargetList
	TargetSelect
	Navigation
	Directions
	Info
)

func (id ID) String() string {
	switch id {
	case MainMenu:
		return "main-menu"
	case Focus:
		return "focus"
	case Alignment:
		return "alignment"
	case TargetList:
		return "target-list"
	case TargetSelect:
		return "target-select"
	case Navigation:
		return "navigation"
	case Directions:
		return "directions"
	case Info:
		return "info"
	default:
		return "unknown"
	}
}

// Handler reacts to an input event against the shared context. It returns
// the screen to transition to and whether a transition was requested.
type Handler func(ctx *obscontext.Context) (next ID, transition bool)

// Screen owns one state's input bindings and render function.
type Screen interface {
	ID() ID
	Bindings() map[Event]Handler
	Render(ctx *obscontext.Context, canvas render.Canvas)
}

// Machine holds the active screen and dispatches input events to it. On
// every transition the input map is reset and the new screen's bindings
// installed before any further event is processed.
type Machine struct {
	ctx      *obscontext.Context
	factory  map[ID]func() Screen
	current  Screen
	bindings map[Event]Handler
}

// NewMachine builds a Machine starting at startID, using factory to
// construct (or look up) each screen by ID on transition.
func NewMachine(ctx *obscontext.Context, factory map[ID]func() Screen, startID ID) *Machine {
	m := &Machine{ctx: ctx, factory: factory}
	m.transitionTo(startID)
	return m
}

// Current returns the active screen's ID.
func (m *Machine) Current() ID {
	return m.current.ID()
}

// Dispatch routes an input event to the active screen's bindings and
// performs any requested transition.
func (m *Machine) Dispatch(evt Event) {
	handler, ok := m.bindings[evt]
	if !ok {
		return
	}
	next, transition := handler(m.ctx)
	if transition {
		m.transitionTo(next)
	}
}

// Render draws the active screen onto canvas.
func (m *Machine) Render(canvas render.Canvas) {
	m.current.Render(m.ctx, canvas)
}

func (m *Machine) transitionTo(id ID) {
	build, ok := m.factory[id]
	if !ok {
		return
	}
	m.current = build()
	m.bindings = m.current.Bindings()
}
