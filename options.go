package fsmx

import "log/slog"

// WithID overrides the generated machine instance id. Snapshot restore
// checks the id, so callers persisting machines should pin it.
func WithID[P, I, C any](id string) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.id = id
	}
}

// WithLogger sets the logger used for dispatch traces. Defaults to
// slog.Default().
func WithLogger[P, I, C any](logger *slog.Logger) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.logger = logger
	}
}

// WithStartDispatchHook installs the hook invoked first on every Dispatch.
func WithStartDispatchHook[P, I, C any](h DispatchHook[P, I, C]) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.hooks.startDispatch = h
	}
}

// WithEndDispatchHook installs the hook invoked last on every non-failing
// Dispatch, whether or not a transition occurred.
func WithEndDispatchHook[P, I, C any](h DispatchHook[P, I, C]) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.hooks.endDispatch = h
	}
}

// WithEdgeTraversalHook installs the hook invoked for the matched edge
// before the transition commits.
func WithEdgeTraversalHook[P, I, C any](h TraversalHook[P, I, C]) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.hooks.edgeTraversal = h
	}
}

// WithStateExitHook installs the hook invoked as the machine leaves its
// current state, before the history append and swap.
func WithStateExitHook[P, I, C any](h BoundaryHook[P, I, C]) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.hooks.stateExit = h
	}
}

// WithStateEntryHook installs the hook invoked after the machine has
// entered the edge's to-state.
func WithStateEntryHook[P, I, C any](h BoundaryHook[P, I, C]) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.hooks.stateEntry = h
	}
}
