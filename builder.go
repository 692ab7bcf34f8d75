package fsmx

// GraphBuilder provides a fluent API for assembling a state and edge set
// incrementally before handing them to New. Graphs built from literals can
// call New directly; the builder exists for call sites that discover the
// graph piecewise (config loaders, code generators).
type GraphBuilder[P, I, C any] struct {
	states []State
	edges  []Edge[I]
}

// NewGraphBuilder creates an empty builder.
func NewGraphBuilder[P, I, C any]() *GraphBuilder[P, I, C] {
	return &GraphBuilder[P, I, C]{}
}

// State appends a state with the given id. Duplicates are surfaced at
// Build, not here.
func (b *GraphBuilder[P, I, C]) State(id string) *GraphBuilder[P, I, C] {
	b.states = append(b.states, State{ID: id})
	return b
}

// States appends several states at once.
func (b *GraphBuilder[P, I, C]) States(ids ...string) *GraphBuilder[P, I, C] {
	for _, id := range ids {
		b.State(id)
	}
	return b
}

// Edge appends a directed edge from one state id to another, carrying info.
func (b *GraphBuilder[P, I, C]) Edge(id, from, to string, info I) *GraphBuilder[P, I, C] {
	b.edges = append(b.edges, Edge[I]{ID: id, From: from, To: to, Info: info})
	return b
}

// Build validates the accumulated graph and constructs the Machine.
// Validation is delegated to New, so duplicate ids and dangling edge
// endpoints error out here.
func (b *GraphBuilder[P, I, C]) Build(
	initial string,
	initialCtx C,
	decide Decision[P, I, C],
	opts ...Option[P, I, C],
) (*Machine[P, I, C], error) {
	return New(initial, initialCtx, b.states, b.edges, decide, opts...)
}
