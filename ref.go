package behaviortree

// refKind distinguishes a process-wide Reference from a tree-scoped Local.
type refKind uint8

const (
	kindShared refKind = iota
	kindLocal
)

// ref is the untyped identity handle behind every Reference/Local. Identity
// is by pointer, never by name: two refs with the same name are still
// distinct slots. name is diagnostic only.
type ref struct {
	kind  refKind
	name  string
	owner *Tree // non-nil only for kindLocal: the tree that minted it
}

// Ref is a typed identity token for a blackboard slot holding a value of
// type V. Reference and Local below are the same type under two distinct
// names: a Reference is process-wide (minted with NewReference), a Local is
// owned by exactly one tree (minted with MintLocal/MintConstant) and is
// pruned from the state when that tree's frame is destroyed.
type Ref[V any] struct {
	r *ref
}

// Reference is a process-wide identity: two references compare equal only
// if they are the same token.
type Reference[V any] = Ref[V]

// Local is a tree-scoped identity: its lifetime in a State is tied to its
// owning tree's frame being active.
type Local[V any] = Ref[V]

// NewReference mints a fresh process-wide reference. name is diagnostic.
func NewReference[V any](name string) Reference[V] {
	return Reference[V]{r: &ref{kind: kindShared, name: name}}
}

// Name returns the diagnostic name the reference was minted with, which may
// be empty.
func (r Ref[V]) Name() string {
	if r.r == nil {
		return ""
	}
	return r.r.name
}

// IsLocal reports whether this token is tree-scoped.
func (r Ref[V]) IsLocal() bool {
	return r.r != nil && r.r.kind == kindLocal
}

// Valid reports whether this token was minted (as opposed to the zero Ref).
func (r Ref[V]) Valid() bool {
	return r.r != nil
}

// identity exposes the untyped handle for State's internal bookkeeping.
// Unexported so only this package can satisfy anyRef, but since Reference
// and Local are this very type, external callers can still pass their own
// Reference[V]/Local[V] values wherever anyRef is accepted.
func (r Ref[V]) identity() *ref { return r.r }

// anyRef lets State's untyped operations (Unset, Has, wiring) accept a
// Reference[V] or Local[V] of any V without needing a type parameter on
// every call site.
type anyRef interface {
	identity() *ref
}

func mintLocal(owner *Tree, name string) *ref {
	return &ref{kind: kindLocal, name: name, owner: owner}
}
