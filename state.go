package behaviortree

import "fmt"

// State is the blackboard: a mapping from reference identity to an owned,
// type-erased property, plus the bookkeeping locals need to be pruned when
// their owning tree's frame unwinds.
//
// Only the Executor mutates the current scope-key (via SetScope); nodes
// read and write slots through the package-level Get/Set/Has/Unset
// functions.
type State struct {
	host Host

	values map[*ref]property

	// localsByScope maps a scope-key (a tree identity) to the set of local
	// refs currently registered under it. Invalidated wholesale when that
	// tree's frame is destroyed.
	localsByScope map[*Tree]map[*ref]struct{}

	currentScope *Tree
}

// NewState creates an empty blackboard.
func NewState(host Host) *State {
	return &State{
		host:          host,
		values:        make(map[*ref]property),
		localsByScope: make(map[*Tree]map[*ref]struct{}),
	}
}

// CurrentScope returns the tree identity new locals are registered under.
func (s *State) CurrentScope() *Tree {
	return s.currentScope
}

// SetScope assigns the current scope-key, returning the previous one so
// the caller (the Executor) can restore it on the way back out.
func (s *State) SetScope(t *Tree) *Tree {
	prev := s.currentScope
	s.currentScope = t
	return prev
}

func (s *State) registerLocal(r *ref) {
	m, ok := s.localsByScope[s.currentScope]
	if !ok {
		m = make(map[*ref]struct{})
		s.localsByScope[s.currentScope] = m
	}
	m[r] = struct{}{}
}

func (s *State) unregisterLocal(r *ref) {
	for _, m := range s.localsByScope {
		delete(m, r)
	}
}

// Get reads ref's value. It returns ErrMissingProperty if the slot is
// absent, unset, or holds a bare reservation (set with no value).
func Get[V any](s *State, r Reference[V]) (V, error) {
	var zero V
	id := r.identity()
	p, ok := s.values[id]
	if !ok || p == nil {
		return zero, fmt.Errorf("%w: %s", ErrMissingProperty, r.Name())
	}
	b, ok := p.(*box[V])
	if !ok {
		return zero, fmt.Errorf("behaviortree: property %q has an unexpected type", r.Name())
	}
	return b.v, nil
}

// GetOr reads ref's value, returning def if it is missing or unset.
func GetOr[V any](s *State, r Reference[V], def V) V {
	v, err := Get(s, r)
	if err != nil {
		return def
	}
	return v
}

// Set replaces ref's property. If ref is a Local, it is additionally
// registered under the state's current scope-key.
func Set[V any](s *State, r Reference[V], v V) {
	id := r.identity()
	s.values[id] = newBox(v)
	if id.kind == kindLocal {
		s.registerLocal(id)
	}
}

// Reserve creates a present-but-null slot for ref: Has(ref) is still false
// afterward, but the key participates in CopyAll/enumeration as present.
// This is the Go rendering of "setting null is not the same as unset".
func Reserve[V any](s *State, r Reference[V]) {
	id := r.identity()
	s.values[id] = nil
	if id.kind == kindLocal {
		s.registerLocal(id)
	}
}

// Has reports whether ref's slot is present and non-null.
func Has(s *State, r anyRef) bool {
	id := r.identity()
	p, ok := s.values[id]
	return ok && p != nil
}

// Unset removes ref's value and any reservation. It is not an error to
// unset a slot that was never set.
func Unset(s *State, r anyRef) {
	s.unsetID(r.identity())
}

func (s *State) unsetID(id *ref) {
	delete(s.values, id)
	if id.kind == kindLocal {
		s.unregisterLocal(id)
	}
}

// CopyAll copies every present slot of src into dst, preserving kind: a
// Local stays a Local, registered under dst's current scope-key.
func CopyAll(src, dst *State) {
	for id, p := range src.values {
		copyPropertyInto(dst, id, p)
	}
}

// CopyOne copies a single slot of src into dst under the same ref. A Local
// copied this way remains a Local, registered under dst's current
// scope-key. No-op if src has no slot for ref (not even a reservation).
func CopyOne(src, dst *State, r anyRef) {
	id := r.identity()
	p, ok := src.values[id]
	if !ok {
		return
	}
	copyPropertyInto(dst, id, p)
}

// CopyRename copies src's slot named by from into dst under to — the core
// wiring operation. If from is absent in src (not even a reservation), to
// is left unchanged in dst (not unset). to's own kind (Local or not)
// governs registration in dst, regardless of from's kind.
func CopyRename(src, dst *State, from, to anyRef) {
	fid := from.identity()
	p, ok := src.values[fid]
	if !ok {
		return
	}
	copyPropertyInto(dst, to.identity(), p)
}

func copyPropertyInto(dst *State, id *ref, p property) {
	var cloned property
	if p != nil {
		cloned = p.clone()
	}
	dst.values[id] = cloned
	if id.kind == kindLocal {
		dst.registerLocal(id)
	}
}

// InvalidateLocals removes every slot registered under scope. Called by
// the Executor when scope's tree frame is destroyed.
func (s *State) InvalidateLocals(scope *Tree) {
	m, ok := s.localsByScope[scope]
	if !ok {
		return
	}
	for id := range m {
		delete(s.values, id)
	}
	delete(s.localsByScope, scope)
}
