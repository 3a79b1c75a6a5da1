package engine

import (
	"github.com/lixenwraith/platform2d/parameter"
)

// EntityRegistry keeps a scene's entities ordered by priority, stable for equal priority
// Adds issued during Each are buffered and merged once the outermost pass ends
type EntityRegistry struct {
	items     []*Entity
	byName    map[string]*Entity
	pending   []*Entity
	iterating int
}

// NewEntityRegistry creates an empty registry
func NewEntityRegistry() *EntityRegistry {
	return &EntityRegistry{
		items:  make([]*Entity, 0, parameter.RegistryInitialCapacity),
		byName: make(map[string]*Entity, parameter.RegistryInitialCapacity),
	}
}

// Add inserts e after every entity of lower or equal priority
// A later entity with the same name replaces the earlier one in the name index only
func (r *EntityRegistry) Add(e *Entity) {
	if r.iterating > 0 {
		r.pending = append(r.pending, e)
		return
	}
	r.insert(e)
}

func (r *EntityRegistry) insert(e *Entity) {
	// Insertion sort step, upper bound keeps equal priorities in arrival order
	i := len(r.items)
	r.items = append(r.items, e)
	for i > 0 && r.items[i-1].Priority > e.Priority {
		r.items[i] = r.items[i-1]
		i--
	}
	r.items[i] = e
	r.byName[e.Name] = e
}

// Get returns the entity registered under name
func (r *EntityRegistry) Get(name string) (*Entity, bool) {
	e, ok := r.byName[name]
	return e, ok
}

// At returns the entity at index i in priority order
func (r *EntityRegistry) At(i int) *Entity {
	if i < 0 || i >= len(r.items) {
		return nil
	}
	return r.items[i]
}

// Len returns the number of entities, pending ones excluded
func (r *EntityRegistry) Len() int {
	return len(r.items)
}

// Pending returns the number of entities waiting for the current pass to end
func (r *EntityRegistry) Pending() int {
	return len(r.pending)
}

// Each visits entities in priority order, stopping early when fn returns false
func (r *EntityRegistry) Each(fn func(e *Entity) bool) {
	r.begin()
	defer r.end()
	for _, e := range r.items {
		if !fn(e) {
			return
		}
	}
}

// Snapshot returns a copy of the ordered entity slice for use outside the frame
func (r *EntityRegistry) Snapshot() []*Entity {
	out := make([]*Entity, len(r.items))
	copy(out, r.items)
	return out
}

// Counts returns total, static and active entity counts
func (r *EntityRegistry) Counts() (total, static, active int) {
	for _, e := range r.items {
		if e.Static {
			static++
		}
		if e.Active {
			active++
		}
	}
	return len(r.items), static, active
}

// Prune drops entities deactivated by their lifespan, returns how many were removed
func (r *EntityRegistry) Prune() int {
	if r.iterating > 0 {
		return 0
	}
	kept := r.items[:0]
	removed := 0
	for _, e := range r.items {
		if e.Expired() {
			if r.byName[e.Name] == e {
				delete(r.byName, e.Name)
			}
			removed++
			continue
		}
		kept = append(kept, e)
	}
	clear(r.items[len(kept):])
	r.items = kept
	return removed
}

// Reset drops every entity, pending ones included
func (r *EntityRegistry) Reset() {
	clear(r.items)
	r.items = r.items[:0]
	clear(r.pending)
	r.pending = r.pending[:0]
	clear(r.byName)
}

func (r *EntityRegistry) begin() {
	r.iterating++
}

func (r *EntityRegistry) end() {
	r.iterating--
	if r.iterating > 0 || len(r.pending) == 0 {
		return
	}
	for _, e := range r.pending {
		r.insert(e)
	}
	clear(r.pending)
	r.pending = r.pending[:0]
}
