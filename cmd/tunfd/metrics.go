package main

import (
	"errors"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"tunfd/internal/tun"
)

type Metrics struct {
	opens    *prometheus.CounterVec
	deviceUp prometheus.Gauge
	up       atomic.Bool
	gatherer prometheus.Gatherer
}

// NewMetrics registers the collectors on reg; gatherer is what /metrics serves.
func NewMetrics(reg prometheus.Registerer, gatherer prometheus.Gatherer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		gatherer: gatherer,
		opens: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tunfd_open_total",
			Help: "TUN open attempts by result",
		}, []string{"result"}),
		deviceUp: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tunfd_device_up",
			Help: "1 while the TUN device is held open",
		}),
	}
}

func (m *Metrics) ObserveOpen(err error) {
	m.opens.WithLabelValues(openResult(err)).Inc()
}

func (m *Metrics) SetDeviceUp(up bool) {
	m.up.Store(up)
	if up {
		m.deviceUp.Set(1)
	} else {
		m.deviceUp.Set(0)
	}
}

func (m *Metrics) DeviceUp() bool {
	return m.up.Load()
}

func openResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, tun.ErrInvalidName):
		return "invalid_name"
	case errors.Is(err, tun.ErrDeviceOpen):
		return "device_open"
	case errors.Is(err, tun.ErrInterfaceConfig):
		return "interface_config"
	default:
		return "other"
	}
}
