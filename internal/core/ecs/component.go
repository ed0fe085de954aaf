package ecs

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID)
}

// PtrComponentStore is a generic typed store for ECS components.
// Iteration follows insertion order, which keeps seeded simulations
// replayable: "first enemy in lane" means the same enemy on every run.
type PtrComponentStore[T any] struct {
	ids   []EntityID
	data  []*T
	index map[EntityID]int
}

func NewPtrComponentStore[T any]() *PtrComponentStore[T] {
	return &PtrComponentStore[T]{
		ids:   make([]EntityID, 0, 64),
		data:  make([]*T, 0, 64),
		index: make(map[EntityID]int, 64),
	}
}

// Set stores c for id. Replacing an existing component keeps its position.
func (s *PtrComponentStore[T]) Set(id EntityID, c *T) {
	if i, ok := s.index[id]; ok {
		s.data[i] = c
		return
	}
	s.index[id] = len(s.ids)
	s.ids = append(s.ids, id)
	s.data = append(s.data, c)
}

func (s *PtrComponentStore[T]) Get(id EntityID) (*T, bool) {
	i, ok := s.index[id]
	if !ok {
		return nil, false
	}
	return s.data[i], true
}

// Remove deletes id's component, preserving the order of the remaining ones.
func (s *PtrComponentStore[T]) Remove(id EntityID) {
	i, ok := s.index[id]
	if !ok {
		return
	}
	delete(s.index, id)
	copy(s.ids[i:], s.ids[i+1:])
	copy(s.data[i:], s.data[i+1:])
	last := len(s.ids) - 1
	s.data[last] = nil
	s.ids = s.ids[:last]
	s.data = s.data[:last]
	for j := i; j < last; j++ {
		s.index[s.ids[j]] = j
	}
}

func (s *PtrComponentStore[T]) Has(id EntityID) bool {
	_, ok := s.index[id]
	return ok
}

func (s *PtrComponentStore[T]) Len() int {
	return len(s.ids)
}

// IDs returns a snapshot of the stored entity ids in iteration order.
func (s *PtrComponentStore[T]) IDs() []EntityID {
	out := make([]EntityID, len(s.ids))
	copy(out, s.ids)
	return out
}

// Each visits components in insertion order. fn must not add or remove
// components of this store; queue destruction through World instead.
func (s *PtrComponentStore[T]) Each(fn func(EntityID, *T)) {
	for i, id := range s.ids {
		fn(id, s.data[i])
	}
}

// Find returns the first entity (in iteration order) whose component satisfies pred.
func (s *PtrComponentStore[T]) Find(pred func(EntityID, *T) bool) (EntityID, *T, bool) {
	for i, id := range s.ids {
		if pred(id, s.data[i]) {
			return id, s.data[i], true
		}
	}
	return Nil, nil, false
}
