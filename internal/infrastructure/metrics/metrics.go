// Package metrics expone contadores Prometheus del flujo de facturación.
package metrics

import (
	"time"

	"github.com/guidefari/invoicing/internal/application/billing"

	"github.com/prometheus/client_golang/prometheus"
)

var _ billing.Metrics = (*Recorder)(nil)

// Recorder implementa billing.Metrics sobre un registro Prometheus.
type Recorder struct {
	invoicesCreated  prometheus.Counter
	numberCollisions prometheus.Counter
	pdfRenders       *prometheus.CounterVec
	pdfDuration      *prometheus.HistogramVec
}

// New registra los colectores en reg.
func New(reg prometheus.Registerer) (*Recorder, error) {
	r := &Recorder{
		invoicesCreated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicing",
			Name:      "invoices_created_total",
			Help:      "Facturas persistidas.",
		}),
		numberCollisions: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "invoicing",
			Name:      "invoice_number_collisions_total",
			Help:      "Reintentos por número de factura ya tomado.",
		}),
		pdfRenders: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "invoicing",
			Name:      "pdf_renders_total",
			Help:      "Generaciones de PDF por motor y resultado.",
		}, []string{"engine", "result"}),
		pdfDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "invoicing",
			Name:      "pdf_render_duration_seconds",
			Help:      "Duración de la generación de PDF.",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"engine"}),
	}
	for _, c := range []prometheus.Collector{r.invoicesCreated, r.numberCollisions, r.pdfRenders, r.pdfDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (r *Recorder) InvoiceCreated() { r.invoicesCreated.Inc() }

func (r *Recorder) InvoiceNumberCollision() { r.numberCollisions.Inc() }

func (r *Recorder) PDFRendered(engine string, err error, elapsed time.Duration) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.pdfRenders.WithLabelValues(engine, result).Inc()
	r.pdfDuration.WithLabelValues(engine).Observe(elapsed.Seconds())
}
