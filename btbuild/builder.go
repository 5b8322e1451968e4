package btbuild

import (
	"fmt"

	bt "github.com/kestrel-ai/behaviortree"
)

// Builder authors a Tree as a chain of calls instead of direct
// SetRoot/AddChild/AddSubtree/AddChannel calls. The first error
// encountered is sticky: every later call becomes a no-op, and Build
// returns that error.
type Builder struct {
	tree  *bt.Tree
	stack []bt.Node // top is the node new children attach under
	err   error
}

// New creates a Builder for an empty tree backed by host.
func New(host bt.Host, name string) *Builder {
	return &Builder{tree: bt.NewTree(host, name)}
}

// Tree returns the tree under construction. Valid to call at any point,
// including before Build.
func (b *Builder) Tree() *bt.Tree {
	return b.tree
}

func (b *Builder) fail(err error) *Builder {
	if b.err == nil {
		b.err = err
	}
	return b
}

// Root installs n as the tree's root and descends into it: subsequent
// Child/Begin calls attach under n.
func (b *Builder) Root(n bt.Node) *Builder {
	if b.err != nil {
		return b
	}
	if err := b.tree.SetRoot(n); err != nil {
		return b.fail(err)
	}
	b.stack = []bt.Node{n}
	return b
}

// current returns the node new children attach under, failing if Root
// hasn't been called yet.
func (b *Builder) current() (bt.Node, bool) {
	if len(b.stack) == 0 {
		b.fail(fmt.Errorf("btbuild: Child/Begin called before Root"))
		return nil, false
	}
	return b.stack[len(b.stack)-1], true
}

// Child adds n as a child of the current node, without descending into it.
func (b *Builder) Child(n bt.Node) *Builder {
	if b.err != nil {
		return b
	}
	parent, ok := b.current()
	if !ok {
		return b
	}
	if err := b.tree.AddChild(parent, n); err != nil {
		return b.fail(err)
	}
	return b
}

// Begin adds n as a child of the current node and descends into it:
// subsequent Child/Begin calls attach under n, until a matching End.
func (b *Builder) Begin(n bt.Node) *Builder {
	if b.err != nil {
		return b
	}
	b.Child(n)
	if b.err != nil {
		return b
	}
	b.stack = append(b.stack, n)
	return b
}

// End pops the current node, returning to its parent as the insertion
// point. Calling End with nothing left to pop is a sticky error.
func (b *Builder) End() *Builder {
	if b.err != nil {
		return b
	}
	if len(b.stack) <= 1 {
		return b.fail(fmt.Errorf("btbuild: End called with no matching Begin"))
	}
	b.stack = b.stack[:len(b.stack)-1]
	return b
}

// Subtree adds a TreeProxy for sub as a child of the current node.
func (b *Builder) Subtree(sub *bt.Tree) *Builder {
	if b.err != nil {
		return b
	}
	parent, ok := b.current()
	if !ok {
		return b
	}
	if _, err := b.tree.AddSubtree(parent, sub); err != nil {
		return b.fail(err)
	}
	return b
}

// Channel registers channel and adds its ChannelProxy as a child of the
// current node.
func (b *Builder) Channel(channel int) *Builder {
	if b.err != nil {
		return b
	}
	parent, ok := b.current()
	if !ok {
		return b
	}
	if _, err := b.tree.AddChannel(parent, channel); err != nil {
		return b.fail(err)
	}
	return b
}

// Build validates and returns the finished tree. If any prior call
// failed, Build returns that error without validating.
func (b *Builder) Build() (*bt.Tree, error) {
	if b.err != nil {
		return nil, b.err
	}
	if err := b.tree.Validate(); err != nil {
		return nil, err
	}
	return b.tree, nil
}

// Input adds an input wire (from -> to, applied before the current node's
// Update) to the current node. A method can't carry its own type
// parameter, so this is a package-level function taking the builder
// explicitly, mirroring behaviortree.Get/Set.
func Input[V any](b *Builder, from, to bt.Ref[V]) *Builder {
	if b.err != nil {
		return b
	}
	parent, ok := b.current()
	if !ok {
		return b
	}
	if err := b.tree.AddInputWire(parent, from, to); err != nil {
		return b.fail(err)
	}
	return b
}

// Output adds an output wire (from -> to, applied after the current
// node's Update returns) to the current node.
func Output[V any](b *Builder, from, to bt.Ref[V]) *Builder {
	if b.err != nil {
		return b
	}
	parent, ok := b.current()
	if !ok {
		return b
	}
	if err := b.tree.AddOutputWire(parent, from, to); err != nil {
		return b.fail(err)
	}
	return b
}
