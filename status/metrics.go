package status

import (
	"math"
	"slices"
	"sync"
	"sync/atomic"
	"unicode/utf8"
)

// MaxLabelLen bounds a label in bytes so the stats line keeps a stable width
// Scene names are short identifiers, longer values are cut on a rune boundary
const MaxLabelLen = 16

// Gauge is a float64 written by the frame loop and read by the stats line
type Gauge struct {
	bits atomic.Uint64
}

func (g *Gauge) Set(v float64) { g.bits.Store(math.Float64bits(v)) }

func (g *Gauge) Get() float64 { return math.Float64frombits(g.bits.Load()) }

// Label holds a short text metric such as the active scene name
type Label struct {
	v atomic.Pointer[string]
}

// Store truncates to MaxLabelLen without splitting a rune
func (l *Label) Store(s string) {
	if len(s) > MaxLabelLen {
		cut := MaxLabelLen
		for cut > 0 && !utf8.RuneStart(s[cut]) {
			cut--
		}
		s = s[:cut]
	}
	l.v.Store(&s)
}

func (l *Label) Load() string {
	if p := l.v.Load(); p != nil {
		return *p
	}
	return ""
}

// MetricMap hands out one stable pointer per metric name
// Writers cache the pointer at setup, only the first Get of a name locks for writing
type MetricMap[T any] struct {
	mu    sync.RWMutex
	items map[string]*T
}

func NewMetricMap[T any]() *MetricMap[T] {
	return &MetricMap[T]{items: make(map[string]*T)}
}

// Get returns the metric for key, creating it on first use
func (m *MetricMap[T]) Get(key string) *T {
	m.mu.RLock()
	p, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return p
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if p, ok := m.items[key]; ok {
		return p
	}
	p = new(T)
	m.items[key] = p
	return p
}

// Each visits metrics in key order
func (m *MetricMap[T]) Each(fn func(key string, p *T)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		fn(k, m.items[k])
	}
}

// Len returns the number of registered metrics
func (m *MetricMap[T]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
