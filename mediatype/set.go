package mediatype

// Set is an immutable set of media types compared by Essence.
// The zero value is an empty set.
type Set struct {
	members map[string]struct{}
	order   []MediaType
}

// NewSet creates a set of the given media types. Duplicates are stored once.
func NewSet(types ...MediaType) Set {
	s := Set{
		members: make(map[string]struct{}, len(types)),
		order:   make([]MediaType, 0, len(types)),
	}

	for _, m := range types {
		if _, ok := s.members[m.Essence()]; ok {
			continue
		}
		s.members[m.Essence()] = struct{}{}
		s.order = append(s.order, m)
	}

	return s
}

// Contains reports whether a media type equal to m is in the set.
func (s Set) Contains(m MediaType) bool {
	_, ok := s.members[m.Essence()]
	return ok
}

// Len returns the number of media types in the set.
func (s Set) Len() int {
	return len(s.order)
}

// List returns a copy of the members in insertion order.
func (s Set) List() []MediaType {
	return append([]MediaType(nil), s.order...)
}
