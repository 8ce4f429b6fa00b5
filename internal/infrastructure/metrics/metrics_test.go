package metrics_test

import (
	"errors"
	"testing"
	"time"

	"github.com/guidefari/invoicing/internal/infrastructure/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := metrics.New(reg)
	require.NoError(t, err)

	r.InvoiceCreated()
	r.InvoiceCreated()
	r.InvoiceNumberCollision()
	r.PDFRendered("chromium", nil, 300*time.Millisecond)
	r.PDFRendered("chromium", errors.New("timeout"), time.Second)

	families, err := reg.Gather()
	require.NoError(t, err)
	byName := map[string]float64{}
	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			if m.GetCounter() != nil {
				byName[mf.GetName()] += m.GetCounter().GetValue()
			}
		}
	}
	assert.Equal(t, 2.0, byName["invoicing_invoices_created_total"])
	assert.Equal(t, 1.0, byName["invoicing_invoice_number_collisions_total"])
	assert.Equal(t, 2.0, byName["invoicing_pdf_renders_total"])
	n, err := testutil.GatherAndCount(reg, "invoicing_pdf_render_duration_seconds")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestNew_RegistroDuplicado(t *testing.T) {
	reg := prometheus.NewRegistry()
	_, err := metrics.New(reg)
	require.NoError(t, err)

	_, err = metrics.New(reg)

	assert.Error(t, err)
}
