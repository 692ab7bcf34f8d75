// Package fsmx is a generic finite-state-machine execution engine.
//
// Callers define a set of named states, named payload-carrying events, and
// named directed edges between states annotated with arbitrary metadata,
// then dispatch events against a running Machine. Per dispatched event the
// engine decides whether exactly one outgoing edge fires, applies the
// resulting state and context change, records history, and invokes observer
// hooks around the decision.
//
// The engine is generic over three caller types: the event payload P, the
// edge metadata I, and the machine context C. The decision of whether an
// edge fires is a single caller-supplied Decision function; the engine
// itself carries no guard language.
//
// Dispatch is synchronous and single-threaded: it runs to completion with no
// suspension points, and the Machine performs no internal locking. Callers
// needing concurrent access must serialize calls to a given instance
// externally. States, events, and edges are read-only once built and may be
// shared across instances.
//
// The live graph is connected through id references. For serialization the
// package defines flat, id-addressed snapshot shapes (EdgeSnapshot,
// TransitionSnapshot, MachineSnapshot) and the hydrate/dehydrate functions
// that convert between the two; concrete encodings live in the persist
// subpackage.
package fsmx
