package fsmx

// Hooks are optional observer callbacks around dispatch and transition.
// A hook may mutate caller-owned auxiliary data it closes over (counters,
// logs) but cannot veto a transition or substitute a context; the engine
// guarantees exact invocation count and relative ordering.
//
// For a transitioning dispatch the order is: start-of-dispatch,
// edge-traversal, state-exit, history append, state-entry, end-of-dispatch.
// For a no-match dispatch only the start and end hooks run. A failed
// dispatch aborts before the end hook.

// DispatchHook observes the start or end of a Dispatch call. At start,
// current and ctx are the values before the decision; at end, the possibly
// updated values.
type DispatchHook[P, I, C any] func(evt Event[P], current State, ctx C, states []State, edges []Edge[I])

// TraversalHook observes the single matched edge just before the transition
// commits. ctx is the context about to be installed.
type TraversalHook[P, I, C any] func(evt Event[P], edge Edge[I], ctx C, states []State, edges []Edge[I])

// BoundaryHook observes state exit or entry, bracketing the state+context
// swap symmetrically. On exit, state and ctx are the pre-transition values;
// on entry, the post-transition values.
type BoundaryHook[P, I, C any] func(evt Event[P], state State, edge Edge[I], ctx C, states []State, edges []Edge[I])

// hookSet holds the five observer slots. Nil slots are skipped.
type hookSet[P, I, C any] struct {
	startDispatch DispatchHook[P, I, C]
	endDispatch   DispatchHook[P, I, C]
	edgeTraversal TraversalHook[P, I, C]
	stateExit     BoundaryHook[P, I, C]
	stateEntry    BoundaryHook[P, I, C]
}
