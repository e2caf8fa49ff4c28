package sets

// Set is a simple generic hash set for comparable keys.
// Usage: s := sets.New[string]("a","b"); s.Add("c"); if s.Has("b") {...}
type Set[T comparable] map[T]struct{}

// New creates a set pre-populated with the provided values.
func New[T comparable](vals ...T) Set[T] {
	s := make(Set[T], len(vals))
	for _, v := range vals {
		s[v] = struct{}{}
	}
	return s
}

// Add inserts value into the set.
func (s Set[T]) Add(v T) { s[v] = struct{}{} }

// Has returns true if v is present.
func (s Set[T]) Has(v T) bool {
	_, ok := s[v]
	return ok
}

// Ordered is an insertion-ordered set. Duplicates passed to NewOrdered are
// dropped, keeping the first occurrence. The zero value is an empty set.
// Ordered values are immutable; derivation helpers return new sets.
type Ordered[T comparable] struct {
	items []T
	index Set[T]
}

// NewOrdered builds an ordered set from vals.
func NewOrdered[T comparable](vals ...T) Ordered[T] {
	o := Ordered[T]{
		items: make([]T, 0, len(vals)),
		index: make(Set[T], len(vals)),
	}
	for _, v := range vals {
		if o.index.Has(v) {
			continue
		}
		o.index.Add(v)
		o.items = append(o.items, v)
	}
	return o
}

// Has returns true if v is a member.
func (o Ordered[T]) Has(v T) bool { return o.index.Has(v) }

// Len returns the number of members.
func (o Ordered[T]) Len() int { return len(o.items) }

// Values returns the members in insertion order. The returned slice is a copy.
func (o Ordered[T]) Values() []T {
	out := make([]T, len(o.items))
	copy(out, o.items)
	return out
}

// Filter returns the members for which keep reports true, preserving order.
func (o Ordered[T]) Filter(keep func(T) bool) Ordered[T] {
	out := make([]T, 0, len(o.items))
	for _, v := range o.items {
		if keep(v) {
			out = append(out, v)
		}
	}
	return NewOrdered(out...)
}

// Without returns a copy with every value in drop removed.
func (o Ordered[T]) Without(drop ...T) Ordered[T] {
	excluded := New(drop...)
	return o.Filter(func(v T) bool { return !excluded.Has(v) })
}
