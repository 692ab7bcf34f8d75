package fsmx

import "time"

// TraversalNotice bundles a fired edge with its machine metadata for
// out-of-band consumers.
type TraversalNotice[I any] struct {
	MachineID string
	EventID   string
	Edge      Edge[I]
	Timestamp time.Time
}

// WithChannelObserver installs an edge-traversal hook that forwards one
// TraversalNotice per fired edge to ch. Sends are non-blocking: a full
// channel drops the notice rather than stalling Dispatch. Occupies the
// edge-traversal hook slot; combine manually if a custom traversal hook is
// also needed.
func WithChannelObserver[P, I, C any](ch chan<- TraversalNotice[I]) Option[P, I, C] {
	return func(m *Machine[P, I, C]) {
		m.hooks.edgeTraversal = func(evt Event[P], edge Edge[I], _ C, _ []State, _ []Edge[I]) {
			select {
			case ch <- TraversalNotice[I]{
				MachineID: m.id,
				EventID:   evt.ID,
				Edge:      edge,
				Timestamp: time.Now(),
			}:
			default:
			}
		}
	}
}
