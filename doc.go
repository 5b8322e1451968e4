// Package behaviortree implements a single-threaded behavior-tree runtime:
// a Tree of composite, decorator, and leaf nodes ticked by an Executor
// against a blackboard State.
//
// The four subsystems mirror a classic game-AI behavior tree:
//
//   - Tree owns the authored graph: nodes, parent/child order, channels,
//     sub-tree assignments, locals, constants, and the wire tables that
//     rename blackboard slots across a node's boundary.
//   - Executor ticks a Tree, retaining a shadow frame tree across ticks so
//     that branches abandoned on a later tick are deterministically
//     deactivated.
//   - State is the blackboard: a mapping from reference identity to an
//     owned, clonable property, with lexically-scoped locals.
//   - Reference/Local are typed identity tokens for blackboard slots.
//
// A tick is one call to (*Tree).Execute. Composite and decorator nodes
// delegate to children via (*Executor).Update; the wiring declared with
// (*Tree).AddInputWire / AddOutputWire is applied around each node's own
// Update by the tree, not by the node itself.
package behaviortree
