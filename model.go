package fsmx

// State is a named node of the machine graph. Identity is the string ID;
// the engine resolves and compares states by id, never by address.
type State struct {
	ID string `json:"id" yaml:"id"`
}

// Event is a named stimulus with a caller-defined payload. Events are
// supplied per Dispatch call; the machine stores an owned copy inside any
// history record it produces, so the caller's value need not outlive the
// call.
type Event[P any] struct {
	ID      string
	Payload P
}

// Edge is a directed, named potential transition between two states, with
// caller-defined metadata. Endpoints are held as state IDs and checked
// against the machine's state set at construction. Immutable once built;
// many edges may share a from-state.
type Edge[I any] struct {
	ID   string
	From string
	To   string
	Info I
}

// Decision reports whether edge fires for evt under the current context.
// When it returns true, the first return value is the context the
// transition installs; when false, the first return value is ignored.
//
// For a single dispatched event at most one outgoing edge of the current
// state may report true; two or more is a configuration defect and fails
// the dispatch with ErrAmbiguousTransition.
type Decision[P, I, C any] func(evt Event[P], edge Edge[I], ctx C) (C, bool)
