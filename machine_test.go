package fsmx_test

import (
	"errors"
	"testing"

	. "github.com/comalice/fsmx"
)

// fireOnInfo is the decision used by most tests: an edge fires iff its Info
// names the dispatched event id, and the new context increments the old.
func fireOnInfo(evt Event[string], edge Edge[string], ctx int) (int, bool) {
	if evt.ID == edge.Info {
		return ctx + 1, true
	}
	return 0, false
}

func twoStateMachine(t *testing.T, opts ...Option[string, string, int]) *Machine[string, string, int] {
	t.Helper()

	states := []State{{ID: "A"}, {ID: "B"}}
	edges := []Edge[string]{{ID: "e1", From: "A", To: "B", Info: "go-event"}}

	m, err := New("A", 0, states, edges, fireOnInfo, opts...)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

// Scenario: dispatching an event no edge fires for leaves state, context,
// and history untouched.
func TestDispatchNoMatchLeavesMachineUnchanged(t *testing.T) {
	m := twoStateMachine(t)

	out, err := m.Dispatch(Event[string]{ID: "stay"})
	if err != nil {
		t.Fatal(err)
	}

	if out.Transitioned {
		t.Error("expected no transition")
	}
	if m.Current().ID != "A" {
		t.Errorf("expected state A, got %q", m.Current().ID)
	}
	if m.Context() != 0 {
		t.Errorf("expected context unchanged (0), got %d", m.Context())
	}
	if len(m.History()) != 0 {
		t.Errorf("expected empty history, got %d records", len(m.History()))
	}
}

// Scenario: exactly one matching edge moves the machine to the edge's
// to-state, installs the produced context, and appends one history record.
func TestDispatchSingleMatchTransitions(t *testing.T) {
	m := twoStateMachine(t)

	out, err := m.Dispatch(Event[string]{ID: "go-event", Payload: "now"})
	if err != nil {
		t.Fatal(err)
	}

	if !out.Transitioned {
		t.Fatal("expected a transition")
	}
	if out.From != "A" || out.To != "B" || out.EdgeID != "e1" {
		t.Errorf("unexpected outcome %+v", out)
	}
	if m.Current().ID != "B" {
		t.Errorf("expected state B, got %q", m.Current().ID)
	}
	if m.Context() != 1 {
		t.Errorf("expected context 1, got %d", m.Context())
	}

	hist := m.History()
	if len(hist) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(hist))
	}
	rec := hist[0]
	if rec.From.ID != "A" || rec.To.ID != "B" || rec.Edge.ID != "e1" {
		t.Errorf("unexpected record %+v", rec)
	}
	if rec.Event.ID != "go-event" || rec.Event.Payload != "now" {
		t.Errorf("expected owned event copy in record, got %+v", rec.Event)
	}
	if rec.Context != 0 {
		t.Errorf("expected pre-transition context 0 in record, got %d", rec.Context)
	}
}

// Scenario: two edges firing for the same event is a configuration defect;
// dispatch fails before mutating anything.
func TestDispatchAmbiguousEdgesFails(t *testing.T) {
	states := []State{{ID: "A"}, {ID: "B"}, {ID: "C"}}
	edges := []Edge[string]{
		{ID: "e1", From: "A", To: "B", Info: "go-event"},
		{ID: "e2", From: "A", To: "C", Info: "go-event"},
	}

	m, err := New("A", 5, states, edges, fireOnInfo)
	if err != nil {
		t.Fatal(err)
	}

	_, err = m.Dispatch(Event[string]{ID: "go-event"})
	if !errors.Is(err, ErrAmbiguousTransition) {
		t.Fatalf("expected ErrAmbiguousTransition, got %v", err)
	}

	if m.Current().ID != "A" {
		t.Errorf("expected state still A, got %q", m.Current().ID)
	}
	if m.Context() != 5 {
		t.Errorf("expected context unchanged (5), got %d", m.Context())
	}
	if len(m.History()) != 0 {
		t.Errorf("expected empty history, got %d records", len(m.History()))
	}
}

func TestContextReplacedWholesalePerTransition(t *testing.T) {
	states := []State{{ID: "A"}, {ID: "B"}}
	edges := []Edge[string]{
		{ID: "ab", From: "A", To: "B", Info: "hop"},
		{ID: "ba", From: "B", To: "A", Info: "hop"},
	}

	m, err := New("A", 0, states, edges, fireOnInfo)
	if err != nil {
		t.Fatal(err)
	}

	for i := 1; i <= 3; i++ {
		if _, err := m.Dispatch(Event[string]{ID: "hop"}); err != nil {
			t.Fatal(err)
		}
		if m.Context() != i {
			t.Fatalf("after hop %d: expected context %d, got %d", i, i, m.Context())
		}
	}

	hist := m.History()
	if len(hist) != 3 {
		t.Fatalf("expected 3 records, got %d", len(hist))
	}
	for i, rec := range hist {
		if rec.Context != i {
			t.Errorf("record %d: expected pre-transition context %d, got %d", i, i, rec.Context)
		}
	}
}

func TestSinkStateDispatchIsNoOp(t *testing.T) {
	m := twoStateMachine(t)

	if _, err := m.Dispatch(Event[string]{ID: "go-event"}); err != nil {
		t.Fatal(err)
	}

	// B has no outgoing edges; it is a sink by omission, not an error.
	out, err := m.Dispatch(Event[string]{ID: "go-event"})
	if err != nil {
		t.Fatal(err)
	}
	if out.Transitioned {
		t.Error("expected no transition from sink state")
	}
	if m.Current().ID != "B" {
		t.Errorf("expected state B, got %q", m.Current().ID)
	}
}

func TestNewRejectsDanglingEdgeEndpoints(t *testing.T) {
	states := []State{{ID: "A"}}

	_, err := New("A", 0, states, []Edge[string]{{ID: "e1", From: "A", To: "ghost"}}, fireOnInfo)
	if !errors.Is(err, ErrReferentialIntegrity) {
		t.Errorf("dangling to-state: expected ErrReferentialIntegrity, got %v", err)
	}

	_, err = New("A", 0, states, []Edge[string]{{ID: "e1", From: "ghost", To: "A"}}, fireOnInfo)
	if !errors.Is(err, ErrReferentialIntegrity) {
		t.Errorf("dangling from-state: expected ErrReferentialIntegrity, got %v", err)
	}
}

func TestNewRejectsUnknownInitialState(t *testing.T) {
	_, err := New("ghost", 0, []State{{ID: "A"}}, nil, fireOnInfo)
	if !errors.Is(err, ErrReferentialIntegrity) {
		t.Errorf("expected ErrReferentialIntegrity, got %v", err)
	}
}

func TestNewRejectsDuplicateIDs(t *testing.T) {
	if _, err := New("A", 0, []State{{ID: "A"}, {ID: "A"}}, nil, fireOnInfo); err == nil {
		t.Error("expected duplicate state ID error")
	}

	states := []State{{ID: "A"}, {ID: "B"}}
	edges := []Edge[string]{
		{ID: "e1", From: "A", To: "B", Info: "x"},
		{ID: "e1", From: "B", To: "A", Info: "y"},
	}
	if _, err := New("A", 0, states, edges, fireOnInfo); err == nil {
		t.Error("expected duplicate edge ID error")
	}
}

func TestNewRejectsNilDecision(t *testing.T) {
	if _, err := New[string, string, int]("A", 0, []State{{ID: "A"}}, nil, nil); err == nil {
		t.Error("expected decision-required error")
	}
}

func TestMachineIDDefaultsAndOverride(t *testing.T) {
	m1 := twoStateMachine(t)
	m2 := twoStateMachine(t)
	if m1.ID() == "" || m1.ID() == m2.ID() {
		t.Errorf("expected distinct generated ids, got %q and %q", m1.ID(), m2.ID())
	}

	m3 := twoStateMachine(t, WithID[string, string, int]("m-pinned"))
	if m3.ID() != "m-pinned" {
		t.Errorf("expected pinned id, got %q", m3.ID())
	}
}

func TestStatesAndEdgesReturnCopies(t *testing.T) {
	m := twoStateMachine(t)

	states := m.States()
	states[0].ID = "mutated"
	if m.States()[0].ID != "A" {
		t.Error("States() must return a copy")
	}

	edges := m.Edges()
	edges[0].ID = "mutated"
	if m.Edges()[0].ID != "e1" {
		t.Error("Edges() must return a copy")
	}
}
