package fsmx

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// Machine is a running instance of a configured transition graph. It owns
// exactly three pieces of mutable state: the current state, the current
// context, and the transition history. The state and edge sets are read-only
// after construction and may be shared across instances.
//
// A Machine performs no internal locking; concurrent Dispatch on one
// instance from multiple goroutines is undefined. See the package doc.
type Machine[P, I, C any] struct {
	id     string
	states []State
	byID   map[string]State
	edges  []Edge[I]
	index  edgeIndex[I]
	decide Decision[P, I, C]
	logger *slog.Logger
	hooks  hookSet[P, I, C]

	current State
	ctx     C
	history []TransitionRecord[P, I, C]
}

// Option applies configuration to a Machine via functional options.
type Option[P, I, C any] func(*Machine[P, I, C])

// New constructs a Machine positioned at initial with initialCtx.
//
// Construction validates the graph: state ids must be unique and non-empty,
// every edge endpoint must resolve to a configured state, and initial must
// name a configured state. Violations are fatal here rather than surfacing
// later during dispatch. The adjacency index is built once, partitioning
// edges by from-state id in input order.
func New[P, I, C any](
	initial string,
	initialCtx C,
	states []State,
	edges []Edge[I],
	decide Decision[P, I, C],
	opts ...Option[P, I, C],
) (*Machine[P, I, C], error) {
	if decide == nil {
		return nil, errors.New("decision function is required")
	}
	if len(states) == 0 {
		return nil, errors.New("no states provided")
	}

	byID := make(map[string]State, len(states))
	for _, s := range states {
		if s.ID == "" {
			return nil, errors.New("state with empty ID")
		}
		if _, exists := byID[s.ID]; exists {
			return nil, fmt.Errorf("duplicate state ID %q", s.ID)
		}
		byID[s.ID] = s
	}

	edgeIDs := make(map[string]bool, len(edges))
	for _, e := range edges {
		if e.ID == "" {
			return nil, errors.New("edge with empty ID")
		}
		if edgeIDs[e.ID] {
			return nil, fmt.Errorf("duplicate edge ID %q", e.ID)
		}
		edgeIDs[e.ID] = true
		if _, ok := byID[e.From]; !ok {
			return nil, fmt.Errorf("%w: edge %q from-state %q", ErrReferentialIntegrity, e.ID, e.From)
		}
		if _, ok := byID[e.To]; !ok {
			return nil, fmt.Errorf("%w: edge %q to-state %q", ErrReferentialIntegrity, e.ID, e.To)
		}
	}

	start, ok := byID[initial]
	if !ok {
		return nil, fmt.Errorf("%w: initial state %q", ErrReferentialIntegrity, initial)
	}

	m := &Machine[P, I, C]{
		id:      uuid.NewString(),
		states:  append([]State(nil), states...),
		byID:    byID,
		edges:   append([]Edge[I](nil), edges...),
		index:   buildIndex(states, edges),
		decide:  decide,
		logger:  slog.Default(),
		current: start,
		ctx:     initialCtx,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// ID returns the machine instance id. Generated with uuid unless overridden
// via WithID.
func (m *Machine[P, I, C]) ID() string { return m.id }

// Current returns the current state.
func (m *Machine[P, I, C]) Current() State { return m.current }

// Context returns the current context value.
func (m *Machine[P, I, C]) Context() C { return m.ctx }

// States returns a copy of the configured state set in input order.
func (m *Machine[P, I, C]) States() []State {
	return append([]State(nil), m.states...)
}

// Edges returns a copy of the configured edge set in input order.
func (m *Machine[P, I, C]) Edges() []Edge[I] {
	return append([]Edge[I](nil), m.edges...)
}

// Outcome reports what a single Dispatch call did.
type Outcome struct {
	Transitioned bool
	From         string // set only when Transitioned
	To           string // set only when Transitioned
	EdgeID       string // set only when Transitioned
}

// Dispatch evaluates evt against the current state's outgoing edges and
// performs at most one transition.
//
// Every outgoing edge is consulted in index order regardless of earlier
// matches, so a transition table defining two simultaneously-true edges is
// always caught: the second match fails the dispatch with
// ErrAmbiguousTransition before any state, context, or history mutation.
// Zero matches leave the machine untouched. Exactly one match commits the
// transition and appends a history record.
//
// The start-of-dispatch hook runs first; the end-of-dispatch hook runs last
// on both the transition and no-match paths, but not when the dispatch
// fails.
func (m *Machine[P, I, C]) Dispatch(evt Event[P]) (Outcome, error) {
	if m.hooks.startDispatch != nil {
		m.hooks.startDispatch(evt, m.current, m.ctx, m.states, m.edges)
	}

	outgoing, ok := m.index[m.current.ID]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: state %q", ErrMissingStateIndex, m.current.ID)
	}

	var (
		matched Edge[I]
		next    C
		matches int
	)
	for _, edge := range outgoing {
		ctx, fires := m.decide(evt, edge, m.ctx)
		if !fires {
			continue
		}
		matches++
		if matches > 1 {
			return Outcome{}, fmt.Errorf("%w: state %q, event %q: edges %q and %q",
				ErrAmbiguousTransition, m.current.ID, evt.ID, matched.ID, edge.ID)
		}
		matched, next = edge, ctx
	}

	var outcome Outcome
	if matches == 1 {
		outcome = m.transition(evt, matched, next)
	} else {
		m.logger.Debug("no matching edge", "machine", m.id, "state", m.current.ID, "event", evt.ID)
	}

	if m.hooks.endDispatch != nil {
		m.hooks.endDispatch(evt, m.current, m.ctx, m.states, m.edges)
	}
	return outcome, nil
}

// transition commits the single matched edge. Hook and mutation order is
// fixed: edge-traversal, state-exit, history append, state+context swap,
// state-entry.
func (m *Machine[P, I, C]) transition(evt Event[P], edge Edge[I], next C) Outcome {
	from := m.current
	to := m.byID[edge.To]

	if m.hooks.edgeTraversal != nil {
		m.hooks.edgeTraversal(evt, edge, next, m.states, m.edges)
	}
	if m.hooks.stateExit != nil {
		m.hooks.stateExit(evt, from, edge, m.ctx, m.states, m.edges)
	}

	// The record keeps the context active immediately before the swap and an
	// owned copy of the event, so it stays valid however long the caller
	// retains the history.
	m.history = append(m.history, TransitionRecord[P, I, C]{
		From:    from,
		To:      to,
		Event:   evt,
		Edge:    edge,
		Context: m.ctx,
	})

	// Single combined swap; no intermediate state is externally observable.
	m.current, m.ctx = to, next

	if m.hooks.stateEntry != nil {
		m.hooks.stateEntry(evt, to, edge, m.ctx, m.states, m.edges)
	}

	m.logger.Debug("transition",
		"machine", m.id, "from", from.ID, "to", to.ID, "edge", edge.ID, "event", evt.ID)

	return Outcome{Transitioned: true, From: from.ID, To: to.ID, EdgeID: edge.ID}
}
