package behaviortree

import (
	"errors"
	"testing"
)

func TestUpdateWithNoActiveTreeFrameErrors(t *testing.T) {
	ex := NewExecutor(Host{})
	leaf := NewFuncLeaf(nil)
	if _, err := ex.Update(leaf); !errors.Is(err, ErrContractViolation) {
		t.Errorf("expected ErrContractViolation, got %v", err)
	}
}

func TestActivationFiresOnceUntilAbandoned(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")

	var activations, deactivations int
	leaf := NewFuncLeaf(func(ex *Executor) (Status, error) {
		return StatusWorking, nil
	})
	leaf.OnActivated = func(ex *Executor) { activations++ }
	leaf.OnDeactivated = func(ex *Executor) { deactivations++ }
	if err := tr.SetRoot(leaf); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	ex := NewExecutor(host)
	for i := 0; i < 3; i++ {
		if _, err := tr.Execute(ex); err != nil {
			t.Fatalf("Execute %d: %v", i, err)
		}
	}
	if activations != 1 {
		t.Errorf("expected exactly 1 activation across 3 identical ticks, got %d", activations)
	}
	if deactivations != 0 {
		t.Errorf("expected no deactivation while still ticked every time, got %d", deactivations)
	}
}

func TestAbandonmentDeactivates(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")
	sel := NewSelector()

	var aDeactivated, bActivated bool
	leafA := NewFuncLeaf(func(ex *Executor) (Status, error) { return StatusSuccess, nil })
	leafA.OnDeactivated = func(ex *Executor) { aDeactivated = true }
	leafB := NewFuncLeaf(func(ex *Executor) (Status, error) { return StatusSuccess, nil })
	leafB.OnActivated = func(ex *Executor) { bActivated = true }

	if err := tr.SetRoot(sel); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}
	if err := tr.AddChild(sel, leafA); err != nil {
		t.Fatalf("AddChild leafA: %v", err)
	}

	ex := NewExecutor(host)
	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("first Execute: %v", err)
	}

	// Re-author the tree between ticks: swap leafA out for leafB.
	tr.Clear()
	sel2 := NewSelector()
	if err := tr.SetRoot(sel2); err != nil {
		t.Fatalf("SetRoot sel2: %v", err)
	}
	if err := tr.AddChild(sel2, leafB); err != nil {
		t.Fatalf("AddChild leafB: %v", err)
	}

	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("second Execute: %v", err)
	}

	if !bActivated {
		t.Error("expected leafB activated on the second tick")
	}
	if !aDeactivated {
		t.Error("expected leafA deactivated when its frame was abandoned for leafB's")
	}
}

func TestDeactivateIsCooperative(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")

	var deactivated bool
	leaf := NewFuncLeaf(func(ex *Executor) (Status, error) {
		return StatusSuccess, nil
	})
	leaf.OnDeactivated = func(ex *Executor) { deactivated = true }
	if err := tr.SetRoot(leaf); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	ex := NewExecutor(host)
	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	Deactivate(ex, leaf)
	if !deactivated {
		t.Error("expected explicit Deactivate to fire Deactivated")
	}
}

func TestResetDestroysFramesAndBlackboard(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")
	r := NewReference[int]("r")
	leaf := NewFuncLeaf(func(ex *Executor) (Status, error) {
		Set(ex.State(), r, 1)
		return StatusSuccess, nil
	})
	if err := tr.SetRoot(leaf); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	ex := NewExecutor(host)
	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	ex.Reset()

	if Has(ex.State(), r) {
		t.Error("expected blackboard cleared after Reset")
	}
	stats := ex.Stats()
	if stats.FramesDestroyed == 0 {
		t.Error("expected Reset to record destroyed frames")
	}
}

func TestCloseDestroysAllLiveFrames(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")
	var deactivated bool
	leaf := NewFuncLeaf(func(ex *Executor) (Status, error) { return StatusWorking, nil })
	leaf.OnDeactivated = func(ex *Executor) { deactivated = true }
	if err := tr.SetRoot(leaf); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	ex := NewExecutor(host)
	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	ex.Close()
	if !deactivated {
		t.Error("expected Close to deactivate still-active nodes")
	}
}

func TestStatsCountActivationsAndDeactivations(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")
	leaf := NewFuncLeaf(func(ex *Executor) (Status, error) { return StatusSuccess, nil })
	if err := tr.SetRoot(leaf); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	ex := NewExecutor(host)
	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	stats := ex.Stats()
	if stats.Activations != 1 {
		t.Errorf("expected 1 activation, got %d", stats.Activations)
	}
	if stats.FramesCreated == 0 {
		t.Error("expected at least one frame created")
	}
}

type recordingPreview struct {
	events []string
}

func (p *recordingPreview) BeforeEnterTree(t *Tree) { p.events = append(p.events, "before-enter-tree") }
func (p *recordingPreview) AfterEnterTree(t *Tree)  { p.events = append(p.events, "after-enter-tree") }
func (p *recordingPreview) BeforeLeaveTree(t *Tree) { p.events = append(p.events, "before-leave-tree") }
func (p *recordingPreview) AfterLeaveTree(t *Tree)  { p.events = append(p.events, "after-leave-tree") }
func (p *recordingPreview) BeforeUpdateNode(n Node) { p.events = append(p.events, "before-update-node") }
func (p *recordingPreview) AfterUpdateNode(n Node, status Status) {
	p.events = append(p.events, "after-update-node")
}

func TestDebugPreviewOrdering(t *testing.T) {
	host := Host{}
	tr := NewTree(host, "t")
	leaf := NewFuncLeaf(nil)
	if err := tr.SetRoot(leaf); err != nil {
		t.Fatalf("SetRoot: %v", err)
	}

	ex := NewExecutor(host)
	preview := &recordingPreview{}
	ex.SetPreview(preview)

	if _, err := tr.Execute(ex); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []string{
		"before-enter-tree",
		"after-enter-tree",
		"before-update-node",
		"after-update-node",
		"before-leave-tree",
		"after-leave-tree",
	}
	if len(preview.events) != len(want) {
		t.Fatalf("expected %v, got %v", want, preview.events)
	}
	for i, e := range want {
		if preview.events[i] != e {
			t.Errorf("event %d: expected %q, got %q", i, e, preview.events[i])
		}
	}
}
