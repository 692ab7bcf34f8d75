package fsmx

import (
	"fmt"
	"time"
)

// The live graph is connected through id references that general
// interchange formats cannot carry directly. The snapshot types below are
// the flat, id-addressed projections of the linked objects; hydration
// resolves each id against a caller-supplied candidate universe by linear
// search, first match wins. The concrete encoding (JSON, YAML, ...) is an
// external collaborator — see the persist package.

// EdgeSnapshot is the flat form of an Edge.
type EdgeSnapshot[I any] struct {
	ID          string `json:"id" yaml:"id"`
	FromStateID string `json:"fromStateID" yaml:"fromStateID"`
	ToStateID   string `json:"toStateID" yaml:"toStateID"`
	Info        I      `json:"info" yaml:"info"`
}

// TransitionSnapshot is the flat form of a TransitionRecord. The event
// payload is not carried; hydration restores it from the event universe.
type TransitionSnapshot[C any] struct {
	FromStateID string `json:"fromStateID" yaml:"fromStateID"`
	ToStateID   string `json:"toStateID" yaml:"toStateID"`
	EventID     string `json:"eventID" yaml:"eventID"`
	EdgeID      string `json:"edgeID" yaml:"edgeID"`
	Context     C      `json:"context" yaml:"context"`
}

// MachineSnapshot is the full dehydrated form of a running machine: the
// graph, the current position, and the transition history.
type MachineSnapshot[I, C any] struct {
	MachineID      string                  `json:"machineID" yaml:"machineID"`
	CurrentStateID string                  `json:"currentStateID" yaml:"currentStateID"`
	Context        C                       `json:"context" yaml:"context"`
	States         []State                 `json:"states" yaml:"states"`
	Edges          []EdgeSnapshot[I]       `json:"edges" yaml:"edges"`
	History        []TransitionSnapshot[C] `json:"history,omitempty" yaml:"history,omitempty"`
	Timestamp      time.Time               `json:"timestamp" yaml:"timestamp"`
}

// DehydrateEdge projects an Edge into its flat form.
func DehydrateEdge[I any](e Edge[I]) EdgeSnapshot[I] {
	return EdgeSnapshot[I]{
		ID:          e.ID,
		FromStateID: e.From,
		ToStateID:   e.To,
		Info:        e.Info,
	}
}

// HydrateEdge rebuilds an Edge from its flat form. Both endpoints must
// resolve against states; an unresolved id means the caller passed an
// incomplete or mismatched universe and fails with ErrReferentialIntegrity.
func HydrateEdge[I any](snap EdgeSnapshot[I], states []State) (Edge[I], error) {
	from, err := findState(states, snap.FromStateID)
	if err != nil {
		return Edge[I]{}, err
	}
	to, err := findState(states, snap.ToStateID)
	if err != nil {
		return Edge[I]{}, err
	}
	return Edge[I]{
		ID:   snap.ID,
		From: from.ID,
		To:   to.ID,
		Info: snap.Info,
	}, nil
}

// DehydrateRecord projects a TransitionRecord into its flat form. The
// record's pre-transition context carries over; the event collapses to its
// id.
func DehydrateRecord[P, I, C any](r TransitionRecord[P, I, C]) TransitionSnapshot[C] {
	return TransitionSnapshot[C]{
		FromStateID: r.From.ID,
		ToStateID:   r.To.ID,
		EventID:     r.Event.ID,
		EdgeID:      r.Edge.ID,
		Context:     r.Context,
	}
}

// HydrateRecord rebuilds a TransitionRecord from its flat form, resolving
// each id against the supplied universes of live states, edges, and events.
func HydrateRecord[P, I, C any](
	snap TransitionSnapshot[C],
	states []State,
	edges []Edge[I],
	events []Event[P],
) (TransitionRecord[P, I, C], error) {
	var zero TransitionRecord[P, I, C]
	from, err := findState(states, snap.FromStateID)
	if err != nil {
		return zero, err
	}
	to, err := findState(states, snap.ToStateID)
	if err != nil {
		return zero, err
	}
	event, err := findEvent(events, snap.EventID)
	if err != nil {
		return zero, err
	}
	edge, err := findEdge(edges, snap.EdgeID)
	if err != nil {
		return zero, err
	}
	return TransitionRecord[P, I, C]{
		From:    from,
		To:      to,
		Event:   event,
		Edge:    edge,
		Context: snap.Context,
	}, nil
}

// Snapshot dehydrates the machine into its flat form, timestamped now.
func (m *Machine[P, I, C]) Snapshot() MachineSnapshot[I, C] {
	edges := make([]EdgeSnapshot[I], len(m.edges))
	for i, e := range m.edges {
		edges[i] = DehydrateEdge(e)
	}
	history := make([]TransitionSnapshot[C], len(m.history))
	for i, r := range m.history {
		history[i] = DehydrateRecord(r)
	}
	return MachineSnapshot[I, C]{
		MachineID:      m.id,
		CurrentStateID: m.current.ID,
		Context:        m.ctx,
		States:         append([]State(nil), m.states...),
		Edges:          edges,
		History:        history,
		Timestamp:      time.Now(),
	}
}

// Restore rehydrates the machine's runtime state (current state, context,
// history) from a snapshot taken on the same graph. events supplies the
// universe used to rebuild each history record's owned event copy. The
// machine is untouched on error.
func (m *Machine[P, I, C]) Restore(snap MachineSnapshot[I, C], events []Event[P]) error {
	if snap.MachineID != m.id {
		return fmt.Errorf("machine ID mismatch: have %q, snapshot %q", m.id, snap.MachineID)
	}
	current, err := findState(m.states, snap.CurrentStateID)
	if err != nil {
		return err
	}
	history := make([]TransitionRecord[P, I, C], 0, len(snap.History))
	for i, ts := range snap.History {
		rec, err := HydrateRecord(ts, m.states, m.edges, events)
		if err != nil {
			return fmt.Errorf("history record %d: %w", i, err)
		}
		history = append(history, rec)
	}

	m.current = current
	m.ctx = snap.Context
	m.history = history
	return nil
}

// Resolution helpers: linear first-match search over a candidate universe.

func findState(states []State, id string) (State, error) {
	for _, s := range states {
		if s.ID == id {
			return s, nil
		}
	}
	return State{}, fmt.Errorf("%w: no state with id %q", ErrReferentialIntegrity, id)
}

func findEdge[I any](edges []Edge[I], id string) (Edge[I], error) {
	for _, e := range edges {
		if e.ID == id {
			return e, nil
		}
	}
	return Edge[I]{}, fmt.Errorf("%w: no edge with id %q", ErrReferentialIntegrity, id)
}

func findEvent[P any](events []Event[P], id string) (Event[P], error) {
	for _, e := range events {
		if e.ID == id {
			return e, nil
		}
	}
	return Event[P]{}, fmt.Errorf("%w: no event with id %q", ErrReferentialIntegrity, id)
}
