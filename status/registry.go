package status

import "sync/atomic"

// Registry groups the metrics published by the frame loop and the scene manager
// Readers (stats line, telemetry) may run on other goroutines
type Registry struct {
	Ints   *MetricMap[atomic.Int64]
	Floats *MetricMap[Gauge]
	Labels *MetricMap[Label]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   NewMetricMap[atomic.Int64](),
		Floats: NewMetricMap[Gauge](),
		Labels: NewMetricMap[Label](),
	}
}

// Len returns the number of metrics across all maps
func (r *Registry) Len() int {
	return r.Ints.Len() + r.Floats.Len() + r.Labels.Len()
}

// Values copies every metric into a plain map keyed by metric name
func (r *Registry) Values() map[string]any {
	out := make(map[string]any, r.Len())
	r.Ints.Each(func(k string, p *atomic.Int64) { out[k] = p.Load() })
	r.Floats.Each(func(k string, p *Gauge) { out[k] = p.Get() })
	r.Labels.Each(func(k string, p *Label) { out[k] = p.Load() })
	return out
}
