// Package viz renders machine graphs for inspection: Graphviz DOT source
// and indented JSON.
package viz

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/comalice/fsmx"
)

// ExportDOT generates Graphviz DOT source for the graph. The state named by
// current (if any) is rendered filled. Output order follows the input
// slices, so rendering is deterministic.
func ExportDOT[I any](states []fsmx.State, edges []fsmx.Edge[I], current string) string {
	var buf bytes.Buffer
	buf.WriteString("digraph Machine {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, fontsize=10, style=rounded];\n")
	buf.WriteString("  edge [fontsize=9];\n")

	for _, s := range states {
		if s.ID == current {
			fmt.Fprintf(&buf, "  %q [style=\"rounded,filled\", fillcolor=lightblue];\n", s.ID)
		} else {
			fmt.Fprintf(&buf, "  %q;\n", s.ID)
		}
	}
	for _, e := range edges {
		fmt.Fprintf(&buf, "  %q -> %q [label=%q];\n", e.From, e.To, e.ID)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// ExportJSON serializes a machine snapshot to indented JSON.
func ExportJSON[I, C any](snap fsmx.MachineSnapshot[I, C]) ([]byte, error) {
	return json.MarshalIndent(snap, "", "  ")
}
