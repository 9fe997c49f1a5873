// Package metrics expone métricas Prometheus del registro de ventas.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/jhoicas/techstore-pos/internal/application/sales"
)

var _ sales.Recorder = (*SaleMetrics)(nil)

// SaleMetrics cuenta intentos de venta por resultado (OK o código de error) y mide su duración.
type SaleMetrics struct {
	registrations *prometheus.CounterVec
	duration      *prometheus.HistogramVec
}

// NewSaleMetrics registra las métricas en reg. Con reg nil devuelve un recorder que no hace nada.
func NewSaleMetrics(reg prometheus.Registerer) *SaleMetrics {
	if reg == nil {
		return &SaleMetrics{}
	}
	registrations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "techstore",
		Name:      "sale_registrations_total",
		Help:      "Intentos de registro de venta por resultado.",
	}, []string{"result"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "techstore",
		Name:      "sale_registration_duration_seconds",
		Help:      "Duración del registro de venta en segundos.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"result"})
	reg.MustRegister(registrations, duration)
	return &SaleMetrics{registrations: registrations, duration: duration}
}

// ObserveRegistration implementa sales.Recorder.
func (m *SaleMetrics) ObserveRegistration(result string, duration time.Duration) {
	if m == nil || m.registrations == nil {
		return
	}
	label := normalizeLabel(result)
	m.registrations.WithLabelValues(label).Inc()
	m.duration.WithLabelValues(label).Observe(duration.Seconds())
}

func normalizeLabel(result string) string {
	if result == "" {
		return "unknown"
	}
	return result
}
