// Package metrics exposes the application's Prometheus instruments.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics captures document lifecycle and numbering health signals.
// All record methods are nil-safe so callers never need to guard.
type Metrics struct {
	documentsCreated    *prometheus.CounterVec
	documentsIssued     *prometheus.CounterVec
	numbersAllocated    *prometheus.CounterVec
	fiscalFailures      *prometheus.CounterVec
	paymentsRecorded    prometheus.Counter
	installmentsSettled prometheus.Counter
}

func New() *Metrics {
	return newMetrics(prometheus.DefaultRegisterer)
}

func newMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}

	documentsCreated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gestionale_documents_created_total",
		Help: "Documents created, by document type.",
	}, []string{"type"})

	documentsIssued := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gestionale_documents_issued_total",
		Help: "Documents issued, by document type.",
	}, []string{"type"})

	numbersAllocated := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gestionale_document_numbers_allocated_total",
		Help: "Numbers handed out by the sequencer, by document type.",
	}, []string{"type"})

	fiscalFailures := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "gestionale_fiscal_validation_failures_total",
		Help: "Fiscal validation rejections, by failed rule.",
	}, []string{"rule"})

	paymentsRecorded := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gestionale_payments_recorded_total",
		Help: "Payments registered against installments.",
	})

	installmentsSettled := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "gestionale_installments_settled_total",
		Help: "Installments fully settled.",
	})

	registerer.MustRegister(
		documentsCreated,
		documentsIssued,
		numbersAllocated,
		fiscalFailures,
		paymentsRecorded,
		installmentsSettled,
	)

	return &Metrics{
		documentsCreated:    documentsCreated,
		documentsIssued:     documentsIssued,
		numbersAllocated:    numbersAllocated,
		fiscalFailures:      fiscalFailures,
		paymentsRecorded:    paymentsRecorded,
		installmentsSettled: installmentsSettled,
	}
}

func (m *Metrics) RecordDocumentCreated(docType string) {
	if m == nil {
		return
	}
	m.documentsCreated.WithLabelValues(docType).Inc()
}

func (m *Metrics) RecordDocumentIssued(docType string) {
	if m == nil {
		return
	}
	m.documentsIssued.WithLabelValues(docType).Inc()
}

func (m *Metrics) RecordNumberAllocated(docType string) {
	if m == nil {
		return
	}
	m.numbersAllocated.WithLabelValues(docType).Inc()
}

func (m *Metrics) RecordFiscalFailure(rule string) {
	if m == nil {
		return
	}
	m.fiscalFailures.WithLabelValues(rule).Inc()
}

func (m *Metrics) RecordPayment() {
	if m == nil {
		return
	}
	m.paymentsRecorded.Inc()
}

func (m *Metrics) RecordInstallmentSettled() {
	if m == nil {
		return
	}
	m.installmentsSettled.Inc()
}
