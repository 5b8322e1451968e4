package behaviortree

import (
	"fmt"

	"go.uber.org/multierr"
)

// wire is an authored (from, to) pair: a rename-by-copy applied within a
// single State, either before a node's Update (an input) or after (an
// output).
type wire struct {
	from, to *ref
}

// Tree is the authored graph: nodes, parent/child order, channels,
// sub-tree assignments, locals, constants, and the wire tables attached to
// each node. It is built between ticks; mutating it while an Executor is
// mid-tick is undefined.
type Tree struct {
	host Host
	name string

	nodes map[Node]struct{}
	root  Node

	children map[Node][]Node

	channels           map[int]struct{}
	channelNodes       map[int]Node  // channel -> proxy node inside this tree
	channelAssignments map[int]*Tree // channel -> assigned sub-tree

	locals         map[*ref]struct{}
	constants      map[*ref]struct{}
	constantValues *State

	nodeInputs  map[Node][]wire
	nodeOutputs map[Node][]wire

	inputs  map[*ref]struct{}
	outputs map[*ref]struct{}
}

// NewTree creates an empty tree backed by host.
func NewTree(host Host, name string) *Tree {
	return &Tree{
		host:               host,
		name:               name,
		nodes:              make(map[Node]struct{}),
		children:           make(map[Node][]Node),
		channels:           make(map[int]struct{}),
		channelNodes:       make(map[int]Node),
		channelAssignments: make(map[int]*Tree),
		locals:             make(map[*ref]struct{}),
		constants:          make(map[*ref]struct{}),
		constantValues:     NewState(host),
		nodeInputs:         make(map[Node][]wire),
		nodeOutputs:        make(map[Node][]wire),
		inputs:             make(map[*ref]struct{}),
		outputs:            make(map[*ref]struct{}),
	}
}

// Name returns the tree's diagnostic name.
func (t *Tree) Name() string { return t.name }

// Root requires a non-empty tree, returning the root node.
func (t *Tree) Root() (Node, error) {
	if t.root == nil {
		return nil, fmt.Errorf("%w: tree %q has no root", ErrContractViolation, t.name)
	}
	return t.root, nil
}

// Children returns n's children in authoring order. The returned slice
// must not be mutated by the caller.
func (t *Tree) Children(n Node) []Node {
	return t.children[n]
}

// attach registers n as owned by this tree.
func (t *Tree) attach(n Node) error {
	b := baseOf(n)
	if b == nil {
		return fmt.Errorf("%w: node does not embed behaviortree.Base", ErrContractViolation)
	}
	if err := b.Attach(t); err != nil {
		return err
	}
	t.nodes[n] = struct{}{}
	return nil
}

// SetRoot clears the tree if it is non-empty, then installs n as the new
// root.
func (t *Tree) SetRoot(n Node) error {
	if len(t.nodes) > 0 {
		t.Clear()
	}
	if err := t.attach(n); err != nil {
		return err
	}
	t.root = n
	return nil
}

// AddChild appends child to parent's child list in authoring order.
// parent must already belong to this tree.
func (t *Tree) AddChild(parent, child Node) error {
	if _, ok := t.nodes[parent]; !ok {
		return fmt.Errorf("%w: parent not in tree %q", ErrContractViolation, t.name)
	}
	if err := t.attach(child); err != nil {
		return err
	}
	children, ok := t.children[parent]
	if !ok {
		children = t.host.newNodeSlice(4)
	}
	t.children[parent] = append(children, child)
	return nil
}

// AddSubtree appends a TreeProxy child under parent that ticks sub on
// update. sub need not itself be a child of this tree.
func (t *Tree) AddSubtree(parent Node, sub *Tree) (*TreeProxy, error) {
	proxy := NewTreeProxy(sub)
	if err := t.AddChild(parent, proxy); err != nil {
		return nil, err
	}
	return proxy, nil
}

// AddChannel registers channel in this tree (it may appear at most once)
// and appends a ChannelProxy child under parent bound to it.
func (t *Tree) AddChannel(parent Node, channel int) (*ChannelProxy, error) {
	if _, ok := t.channels[channel]; ok {
		return nil, fmt.Errorf("%w: channel %d already registered in tree %q", ErrContractViolation, channel, t.name)
	}
	proxy := NewChannelProxy(channel)
	if err := t.AddChild(parent, proxy); err != nil {
		return nil, err
	}
	t.channels[channel] = struct{}{}
	t.channelNodes[channel] = proxy
	return proxy, nil
}

// Assign binds sub to channel. A prior assignment is implicitly replaced.
func (t *Tree) Assign(channel int, sub *Tree) error {
	if _, ok := t.channelNodes[channel]; !ok {
		return fmt.Errorf("%w: channel %d not registered in tree %q", ErrContractViolation, channel, t.name)
	}
	t.channelAssignments[channel] = sub
	return nil
}

// Unassign removes channel's current sub-tree binding, if any.
func (t *Tree) Unassign(channel int) {
	delete(t.channelAssignments, channel)
}

// ChannelAssignment returns the sub-tree currently bound to channel, or
// nil if unassigned.
func (t *Tree) ChannelAssignment(channel int) *Tree {
	return t.channelAssignments[channel]
}

// MintLocal mints a tree-owned Local reference. name is diagnostic.
func MintLocal[V any](t *Tree, name string) Local[V] {
	r := mintLocal(t, name)
	t.locals[r] = struct{}{}
	return Local[V]{r: r}
}

// MintConstant mints a tree-owned Local whose value is stored in the
// tree's own constant state and re-copied into the executor's state at the
// start of every Execute, so its value is stable across ticks regardless
// of what a node does to the corresponding slot mid-tick.
func MintConstant[V any](t *Tree, value V) Local[V] {
	r := mintLocal(t, "")
	t.constants[r] = struct{}{}
	ref := Local[V]{r: r}
	Set(t.constantValues, ref, value)
	return ref
}

// DeclareInput tags ref as part of the tree's public input interface. This
// is informational only; it has no effect on wiring or ticking.
func (t *Tree) DeclareInput(r anyRef) { t.inputs[r.identity()] = struct{}{} }

// DeclareOutput tags ref as part of the tree's public output interface.
func (t *Tree) DeclareOutput(r anyRef) { t.outputs[r.identity()] = struct{}{} }

// AddInputWire adds an input wire (from -> to, applied before n's Update)
// to n. n must already belong to this tree.
func (t *Tree) AddInputWire(n Node, from, to anyRef) error {
	if _, ok := t.nodes[n]; !ok {
		return fmt.Errorf("%w: wire target not in tree %q", ErrContractViolation, t.name)
	}
	ws, ok := t.nodeInputs[n]
	if !ok {
		ws = t.host.newWireSlice(2)
	}
	t.nodeInputs[n] = append(ws, wire{from: from.identity(), to: to.identity()})
	return nil
}

// AddOutputWire adds an output wire (from -> to, applied after n's Update
// returns) to n. n must already belong to this tree.
func (t *Tree) AddOutputWire(n Node, from, to anyRef) error {
	if _, ok := t.nodes[n]; !ok {
		return fmt.Errorf("%w: wire target not in tree %q", ErrContractViolation, t.name)
	}
	ws, ok := t.nodeOutputs[n]
	if !ok {
		ws = t.host.newWireSlice(2)
	}
	t.nodeOutputs[n] = append(ws, wire{from: from.identity(), to: to.identity()})
	return nil
}

// AddChannelInputWire is AddInputWire against channel's proxy node.
func (t *Tree) AddChannelInputWire(channel int, from, to anyRef) error {
	n, ok := t.channelNodes[channel]
	if !ok {
		return fmt.Errorf("%w: channel %d not registered in tree %q", ErrContractViolation, channel, t.name)
	}
	return t.AddInputWire(n, from, to)
}

// AddChannelOutputWire is AddOutputWire against channel's proxy node.
func (t *Tree) AddChannelOutputWire(channel int, from, to anyRef) error {
	n, ok := t.channelNodes[channel]
	if !ok {
		return fmt.Errorf("%w: channel %d not registered in tree %q", ErrContractViolation, channel, t.name)
	}
	return t.AddOutputWire(n, from, to)
}

// Clear destroys nodes, children maps, wire maps, locals, constants, and
// channel state, in that order, leaving the tree empty and ready for a
// fresh SetRoot.
func (t *Tree) Clear() {
	t.nodes = make(map[Node]struct{})
	t.root = nil
	t.children = make(map[Node][]Node)
	t.nodeInputs = make(map[Node][]wire)
	t.nodeOutputs = make(map[Node][]wire)
	t.locals = make(map[*ref]struct{})
	t.constants = make(map[*ref]struct{})
	t.constantValues = NewState(t.host)
	t.channels = make(map[int]struct{})
	t.channelNodes = make(map[int]Node)
	t.channelAssignments = make(map[int]*Tree)
}

// Validate aggregates every statically-detectable contract violation in
// the authored graph instead of stopping at the first. It is safe, but
// not required, to call before the first Execute.
func (t *Tree) Validate() error {
	var errs error
	if t.root == nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: tree %q has no root", ErrContractViolation, t.name))
	}
	for channel := range t.channels {
		if _, ok := t.channelNodes[channel]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: channel %d registered without a proxy node in tree %q", ErrContractViolation, channel, t.name))
		}
	}
	for channel, sub := range t.channelAssignments {
		if _, ok := t.channelNodes[channel]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: channel %d assigned %v but is not registered in tree %q", ErrContractViolation, channel, sub, t.name))
		}
	}
	for n := range t.nodeInputs {
		if _, ok := t.nodes[n]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: input wire registered against a node not in tree %q", ErrContractViolation, t.name))
		}
	}
	for n := range t.nodeOutputs {
		if _, ok := t.nodes[n]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("%w: output wire registered against a node not in tree %q", ErrContractViolation, t.name))
		}
	}
	return errs
}

// Execute is one tick: if the tree is empty it returns Failure with no
// error. Otherwise it enters a tree frame, copies every constant into the
// executor's state, ticks the root, leaves the tree frame, and returns the
// root's status.
func (t *Tree) Execute(ex *Executor) (Status, error) {
	if t.root == nil {
		return StatusFailure, nil
	}
	ex.enterTree(t)
	defer ex.leaveTree(t)

	CopyAll(t.constantValues, ex.state)

	return t.updateNode(ex, t.root)
}

// updateNode pushes a node's frame, applies its input wires, ticks it,
// pops its frame, then applies its output wires and tears down the wired
// slots. It is invoked by Executor.Update, and by Execute for the root —
// never called directly by user code.
func (t *Tree) updateNode(ex *Executor, n Node) (Status, error) {
	ex.enterNode(t, n)

	for _, w := range t.nodeInputs[n] {
		ex.state.copyWire(w)
	}

	visitNode(ex, n)

	if ex.preview != nil {
		ex.preview.BeforeUpdateNode(n)
	}
	status, err := n.Update(ex)
	if ex.preview != nil {
		ex.preview.AfterUpdateNode(n, status)
	}

	ex.leaveNode(t, n, status)

	for _, w := range t.nodeOutputs[n] {
		ex.state.copyWire(w)
	}
	for _, w := range t.nodeOutputs[n] {
		ex.state.unsetID(w.from)
	}
	for _, w := range t.nodeInputs[n] {
		ex.state.unsetID(w.to)
	}

	return status, err
}

// copyWire applies a single wire within this state: a copy from w.from to
// w.to, both identified within the same State.
func (s *State) copyWire(w wire) {
	p, ok := s.values[w.from]
	if !ok {
		return
	}
	copyPropertyInto(s, w.to, p)
}
