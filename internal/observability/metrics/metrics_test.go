package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRecord(t *testing.T) {
	m := newMetrics(prometheus.NewRegistry())

	m.RecordDocumentCreated("INVOICE")
	m.RecordDocumentCreated("INVOICE")
	m.RecordDocumentIssued("INVOICE")
	m.RecordNumberAllocated("INVOICE")
	m.RecordFiscalFailure("transport_date")
	m.RecordPayment()
	m.RecordInstallmentSettled()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.documentsCreated.WithLabelValues("INVOICE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.documentsIssued.WithLabelValues("INVOICE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.numbersAllocated.WithLabelValues("INVOICE")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.fiscalFailures.WithLabelValues("transport_date")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.paymentsRecorded))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.installmentsSettled))
}

func TestMetricsNilReceiverIsSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.RecordDocumentCreated("INVOICE")
		m.RecordDocumentIssued("INVOICE")
		m.RecordNumberAllocated("INVOICE")
		m.RecordFiscalFailure("subject")
		m.RecordPayment()
		m.RecordInstallmentSettled()
	})
}
