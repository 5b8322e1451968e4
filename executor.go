package behaviortree

import "fmt"

// Stats are cumulative counters over an Executor's lifetime. Read them
// with Stats(); they are always maintained, independent of whether a
// DebugPreview is registered.
type Stats struct {
	FramesCreated   int
	FramesReused    int
	FramesDestroyed int
	Activations     int
	Deactivations   int
}

// Executor ticks Trees. It owns the blackboard State and a persistent
// frame tree that is reconciled, not rebuilt, on every tick — that
// retained frame tree is what gives the runtime cross-tick memory of which
// branches were active.
type Executor struct {
	host    Host
	state   *State
	root    *stateFrame
	current *stateFrame
	preview DebugPreview
	stats   Stats
}

// NewExecutor creates an executor with a fresh blackboard and an empty
// frame tree.
func NewExecutor(host Host) *Executor {
	root := &stateFrame{kind: frameRoot}
	return &Executor{
		host:    host,
		state:   NewState(host),
		root:    root,
		current: root,
	}
}

// State returns the executor's blackboard.
func (ex *Executor) State() *State {
	return ex.state
}

// SetPreview registers (or clears, with nil) the debug preview observer.
func (ex *Executor) SetPreview(p DebugPreview) {
	ex.preview = p
}

// Stats returns the cumulative frame and activation counters.
func (ex *Executor) Stats() Stats {
	return ex.stats
}

// enterTree pushes a tree frame and switches the blackboard's current
// scope-key to t, firing the before/after debug preview hooks around the
// push.
func (ex *Executor) enterTree(t *Tree) {
	if ex.preview != nil {
		ex.preview.BeforeEnterTree(t)
	}
	prevScope := ex.state.CurrentScope()
	f := ex.pushFrame(frameTree, t, nil)
	f.savedScope = prevScope
	ex.state.SetScope(t)
	if ex.preview != nil {
		ex.preview.AfterEnterTree(t)
	}
}

// leaveTree pops the tree frame pushed by enterTree and restores the
// caller's scope-key.
func (ex *Executor) leaveTree(t *Tree) {
	if ex.preview != nil {
		ex.preview.BeforeLeaveTree(t)
	}
	restore := ex.current.savedScope
	ex.leaveFrame()
	ex.state.SetScope(restore)
	if ex.preview != nil {
		ex.preview.AfterLeaveTree(t)
	}
}

// enterNode and leaveNode push/pop a node frame. They wrap the visit+update
// sequence and are driven by Tree.updateNode (Visit also uses enterNode) —
// never called directly by user code.
func (ex *Executor) enterNode(t *Tree, n Node) {
	ex.pushFrame(frameNode, t, n)
}

func (ex *Executor) leaveNode(t *Tree, n Node, status Status) {
	ex.leaveFrame()
}

// Update asserts a tree frame is active and delegates to that tree's
// updateNode. Composite and decorator nodes call this on each child they
// delegate to, instead of calling child.Update directly, so the owning
// tree's input/output wiring wraps every delegation.
func (ex *Executor) Update(n Node) (Status, error) {
	t := ex.state.CurrentScope()
	if t == nil {
		return StatusNone, fmt.Errorf("%w: Update called with no active tree frame", ErrContractViolation)
	}
	return t.updateNode(ex, n)
}

// Visit marks n visited without ticking it: enter its node frame, run the
// visit bookkeeping (firing Activated on first visit), and leave. Used for
// nodes that are traversed but never ticked.
func (ex *Executor) Visit(t *Tree, n Node) {
	ex.enterNode(t, n)
	visitNode(ex, n)
	ex.leaveFrame()
}

// Drop truncates the current frame's children to zero, forcing
// re-initialization (and deactivation, for anything currently active
// there) of any sub-state the next time those children are entered.
func (ex *Executor) Drop() {
	ex.destroyFrames(ex.current.children)
	ex.current.children = ex.current.children[:0]
	ex.current.index = 0
}

// Reset discards the entire frame cache except the root frame — cascading
// deactivation through everything that was live — and replaces the
// blackboard with a fresh, empty one.
func (ex *Executor) Reset() {
	ex.destroyFrames(ex.root.children)
	ex.root.children = nil
	ex.root.index = 0
	ex.current = ex.root
	ex.state = NewState(ex.host)
}

// Close tears the executor down: every live frame is destroyed in
// post-order, so every node still active gets exactly one Deactivated
// call, and every live tree's locals are invalidated. Call this when the
// executor itself is done, not between ticks — use Reset for that.
func (ex *Executor) Close() {
	ex.destroyFrames(ex.root.children)
	ex.root.children = nil
}
