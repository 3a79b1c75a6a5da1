package core

import "sync/atomic"

// EntityID identifies an entity for its whole life, zero is never issued
type EntityID uint64

// IDGenerator hands out monotonically increasing entity ids
type IDGenerator struct {
	next atomic.Uint64
}

// Next returns a fresh id
func (g *IDGenerator) Next() EntityID {
	return EntityID(g.next.Add(1))
}

// Reset restarts numbering, only safe when no entity from the previous sequence survives
func (g *IDGenerator) Reset() {
	g.next.Store(0)
}
