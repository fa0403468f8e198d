package device

import "github.com/prometheus/client_golang/prometheus"

// Metrics counts kernel launches per device and kernel kind.
type Metrics struct {
	launches *prometheus.CounterVec
	elements *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them on reg when it is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		launches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geokernel",
			Name:      "kernel_launches_total",
			Help:      "Number of kernels launched on a device.",
		}, []string{"device", "kind"}),
		elements: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "geokernel",
			Name:      "kernel_elements_total",
			Help:      "Number of buffer elements processed by kernels.",
		}, []string{"device", "kind"}),
	}
	if reg != nil {
		reg.MustRegister(m.launches, m.elements)
	}
	return m
}

func (m *Metrics) observe(device, kind string, n int) {
	if m == nil {
		return
	}
	m.launches.WithLabelValues(device, kind).Inc()
	m.elements.WithLabelValues(device, kind).Add(float64(n))
}

// Launches returns the launch counter for a device and kernel kind.
func (m *Metrics) Launches(device, kind string) prometheus.Counter {
	return m.launches.WithLabelValues(device, kind)
}

// Elements returns the element counter for a device and kernel kind.
func (m *Metrics) Elements(device, kind string) prometheus.Counter {
	return m.elements.WithLabelValues(device, kind)
}
