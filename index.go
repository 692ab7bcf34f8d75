package fsmx

// edgeIndex maps a state id to its outgoing edges, preserving edge input
// order. Built once at construction; dispatch lookup is a single map access.
type edgeIndex[I any] map[string][]Edge[I]

// buildIndex partitions edges by from-state id. Every configured state gets
// an entry, so a state with no outgoing edges behaves as a sink rather than
// an indexing error. Grouping is by id equality, never by address, so two
// State values with the same id index identically.
//
// Callers must have validated edge endpoints first; buildIndex assumes every
// edge.From names a configured state.
func buildIndex[I any](states []State, edges []Edge[I]) edgeIndex[I] {
	idx := make(edgeIndex[I], len(states))
	for _, s := range states {
		idx[s.ID] = []Edge[I]{}
	}
	for _, e := range edges {
		idx[e.From] = append(idx[e.From], e)
	}
	return idx
}
