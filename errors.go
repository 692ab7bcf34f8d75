package fsmx

import "errors"

// All three sentinels signal caller or configuration defects, not expected
// runtime conditions. None should be retried: the supplied graph or object
// universe is internally inconsistent and must be fixed at the call site.
var (
	// ErrReferentialIntegrity reports a state, edge, or event id that does
	// not resolve during construction or hydration.
	ErrReferentialIntegrity = errors.New("id does not resolve")

	// ErrAmbiguousTransition reports two or more outgoing edges matching the
	// same event under the same state and context. Never resolved silently
	// by ordering or priority.
	ErrAmbiguousTransition = errors.New("multiple transitioning edges")

	// ErrMissingStateIndex reports a dispatch from a state absent from the
	// adjacency index.
	ErrMissingStateIndex = errors.New("state not present in adjacency index")
)
