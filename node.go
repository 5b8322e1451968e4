package behaviortree

import "fmt"

// Node is the tickable unit of a Tree: the five structural primitives, the
// tree/channel proxies, and every user-defined leaf implement it. External
// leaf authors satisfy Node by embedding Base, which supplies Tree() and
// the bookkeeping attach/visit/drop need.
type Node interface {
	// Tree returns the tree this node was attached to, or nil before
	// attachment.
	Tree() *Tree
	// Update is the only polymorphic tick entry point. Composite and
	// decorator implementations call Executor.Update on their children
	// rather than calling Update on them directly, so the tree's wiring
	// and the executor's frame bookkeeping wrap every delegation.
	Update(ex *Executor) (Status, error)
}

// Activator is satisfied by a node that wants to know when it starts a new
// contiguous activation span — fired exactly once per span, at the first
// visit.
type Activator interface {
	Activated(ex *Executor)
}

// Deactivator is satisfied by a node that wants to know when its
// activation span closes — fired exactly once, because the node wasn't
// re-entered on the following tick, because it called Deactivate on
// itself, or because the executor destroyed its frame (Drop, Reset, Close).
type Deactivator interface {
	Deactivated(ex *Executor)
}

// Base is embedded by every Node implementation (the five primitives, the
// proxies, and external leaves alike). It carries the back-reference to
// the owning tree and the per-activation visited flag, set exactly once
// via Attach.
type Base struct {
	tree    *Tree
	visited bool
}

// Tree returns the node's owning tree, or nil if it hasn't been attached.
func (b *Base) Tree() *Tree {
	return b.tree
}

// Attach binds the node to its owning tree. Tree calls this exactly once
// when the node is authored in (SetRoot/AddChild/AddSubtree/AddChannel);
// calling it a second time is a contract violation. Leaf authors should
// not call this directly.
func (b *Base) Attach(t *Tree) error {
	if b.tree != nil {
		return fmt.Errorf("%w: node already attached to a tree", ErrContractViolation)
	}
	b.tree = t
	return nil
}

// baseNode is how the package reaches into an embedded Base without
// requiring every Node to expose it publicly. Because Base and baseNode
// are both declared here, a Node from another package that embeds Base
// still satisfies hasBase — Go resolves unexported method identity by
// declaring package, not by embedding site.
func (b *Base) baseNode() *Base { return b }

type hasBase interface {
	baseNode() *Base
}

func baseOf(n Node) *Base {
	if hb, ok := n.(hasBase); ok {
		return hb.baseNode()
	}
	return nil
}

// visitNode marks n visited for the current activation span, firing
// Activated on the first visit since the last drop.
func visitNode(ex *Executor, n Node) {
	b := baseOf(n)
	if b == nil {
		return
	}
	first := !b.visited
	b.visited = true
	if first {
		ex.stats.Activations++
		if a, ok := n.(Activator); ok {
			a.Activated(ex)
		}
	}
}

// dropNode closes n's activation span if one is open, firing Deactivated.
// Called when n's frame is destroyed (abandonment or executor teardown)
// and by Deactivate for cooperative self-deactivation.
func dropNode(ex *Executor, n Node) {
	b := baseOf(n)
	if b == nil {
		return
	}
	if b.visited {
		b.visited = false
		ex.stats.Deactivations++
		if d, ok := n.(Deactivator); ok {
			d.Deactivated(ex)
		}
	}
}

// Deactivate is the cooperative self-deactivation entry point: a node's
// own Update implementation may call this on itself to close its
// activation span early, without waiting for frame abandonment.
func Deactivate(ex *Executor, n Node) {
	dropNode(ex, n)
}
