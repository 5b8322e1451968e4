package behaviortree

// property is the type-erased box State stores per slot. A nil property
// interface value stored under a present key is a reservation: the slot
// exists but holds no value yet.
type property interface {
	clone() property
}

// cloner lets a value type opt into its own deep-copy logic instead of
// relying on box's default Go value-copy semantics. A leaf author who
// stores, say, a slice-backed payload and wants real isolation between
// clones implements this on V (or *V).
type cloner[V any] interface {
	Clone() V
}

// box is the concrete, typed property. clone() plays the role of a
// per-type stored clone function: Go generics give us that dispatch for
// free via the type parameter, no reflection needed.
//
// Go's own value-copy semantics already give the split a blackboard
// needs: copying a box[V] copies V by value, which for a pointer-typed V
// copies only the pointer — a shared handle — and for a plain
// struct/scalar V copies every field, a deep copy for any payload that
// doesn't itself hide a pointer. A V that embeds a slice, map, or pointer
// and wants real isolation implements cloner[V].
type box[V any] struct {
	v V
}

func newBox[V any](v V) *box[V] {
	return &box[V]{v: v}
}

func (b *box[V]) clone() property {
	if c, ok := any(b.v).(cloner[V]); ok {
		return &box[V]{v: c.Clone()}
	}
	return &box[V]{v: b.v}
}
