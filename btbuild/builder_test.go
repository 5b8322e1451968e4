package btbuild

import (
	"testing"

	bt "github.com/kestrel-ai/behaviortree"
)

func ok(_ *bt.Executor) (bt.Status, error) { return bt.StatusSuccess, nil }

func TestBuilder_SequenceOfLeaves(t *testing.T) {
	host := bt.Host{}
	b := New(host, "root")

	seq := bt.NewSequence()
	leaf1 := bt.NewFuncLeaf(ok)
	leaf2 := bt.NewFuncLeaf(ok)

	tr, err := b.Root(seq).Child(leaf1).Child(leaf2).Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	ex := bt.NewExecutor(host)
	status, err := tr.Execute(ex)
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if status != bt.StatusSuccess {
		t.Errorf("expected StatusSuccess, got %v", status)
	}
	if got := len(tr.Children(seq)); got != 2 {
		t.Errorf("expected 2 children under sequence, got %d", got)
	}
}

func TestBuilder_NestedBeginEnd(t *testing.T) {
	host := bt.Host{}
	b := New(host, "root")

	top := bt.NewSelector()
	inner := bt.NewSequence()
	leaf := bt.NewFuncLeaf(ok)

	tr, err := b.Root(top).Begin(inner).Child(leaf).End().Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(tr.Children(top)); got != 1 {
		t.Fatalf("expected 1 child under top, got %d", got)
	}
	if got := len(tr.Children(inner)); got != 1 {
		t.Fatalf("expected 1 child under inner, got %d", got)
	}
}

func TestBuilder_ChildBeforeRootFails(t *testing.T) {
	host := bt.Host{}
	b := New(host, "root")
	leaf := bt.NewFuncLeaf(ok)
	if _, err := b.Child(leaf).Build(); err == nil {
		t.Fatal("expected error calling Child before Root")
	}
}

func TestBuilder_UnbalancedEndFails(t *testing.T) {
	host := bt.Host{}
	b := New(host, "root")
	root := bt.NewSequence()
	if _, err := b.Root(root).End().Build(); err == nil {
		t.Fatal("expected error calling End with nothing to pop")
	}
}

func TestBuilder_InputOutputWires(t *testing.T) {
	host := bt.Host{}
	b := New(host, "root")
	leaf := bt.NewFuncLeaf(ok)

	in := bt.NewReference[int]("in")
	out := bt.NewReference[int]("out")
	local := bt.MintLocal[int](b.Tree(), "local")

	b.Root(leaf)
	Input(b, in, local)
	Output(b, local, out)

	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if tr == nil {
		t.Fatal("expected non-nil tree")
	}
}

func TestBuilder_SubtreeAndChannel(t *testing.T) {
	host := bt.Host{}
	sub := bt.NewTree(host, "sub")
	if err := sub.SetRoot(bt.NewFuncLeaf(ok)); err != nil {
		t.Fatalf("sub.SetRoot: %v", err)
	}

	b := New(host, "root")
	top := bt.NewSequence()
	b.Root(top).Subtree(sub).Channel(1)

	tr, err := b.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if got := len(tr.Children(top)); got != 2 {
		t.Errorf("expected 2 children (subtree proxy + channel proxy), got %d", got)
	}
}
