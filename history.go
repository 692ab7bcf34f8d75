package fsmx

// TransitionRecord is one immutable entry of the machine's append-only
// transition log.
//
// Context holds the value that was active immediately before the transition,
// not the one it installed. Event is an owned copy of the dispatched event,
// so records stay valid however long the caller's event storage lives.
type TransitionRecord[P, I, C any] struct {
	From    State
	To      State
	Event   Event[P]
	Edge    Edge[I]
	Context C
}

// History returns a copy of the transition log, oldest first.
func (m *Machine[P, I, C]) History() []TransitionRecord[P, I, C] {
	return append([]TransitionRecord[P, I, C](nil), m.history...)
}
