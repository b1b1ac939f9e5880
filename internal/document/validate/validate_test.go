package validate

import (
	"testing"
	"time"

	"github.com/mrossi-dev/gestionale/internal/document/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T { return &v }

func validInvoice() *domain.Document {
	return &domain.Document{
		Type:             domain.TypeInvoice,
		Date:             time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		SubjectName:      "Rossi Impianti Srl",
		SubjectVATNumber: ptr("01234567890"),
		Lines:            []domain.Line{{Description: "posa in opera"}},
		Summaries:        []domain.TaxSummary{{TaxRatePercent: decimal.NewFromInt(22)}},
		TotalGross:       decimal.RequireFromString("122.00"),
	}
}

func assertRule(t *testing.T, err error, rule string) {
	t.Helper()
	require.Error(t, err)
	var ferr *domain.FiscalValidationError
	require.ErrorAs(t, err, &ferr)
	assert.Equal(t, rule, ferr.Rule)
}

func TestFiscalAcceptsValidInvoice(t *testing.T) {
	require.NoError(t, Fiscal(validInvoice(), nil))
}

func TestFiscalCommonRules(t *testing.T) {
	t.Run("missing date", func(t *testing.T) {
		doc := validInvoice()
		doc.Date = time.Time{}
		assertRule(t, Fiscal(doc, nil), "document_date")
	})
	t.Run("blank subject", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectName = "  "
		assertRule(t, Fiscal(doc, nil), "subject")
	})
}

func TestFiscalInvoiceRules(t *testing.T) {
	t.Run("no lines", func(t *testing.T) {
		doc := validInvoice()
		doc.Lines = nil
		assertRule(t, Fiscal(doc, nil), "lines_required")
	})
	t.Run("zero total", func(t *testing.T) {
		doc := validInvoice()
		doc.TotalGross = decimal.Zero
		assertRule(t, Fiscal(doc, nil), "total_positive")
	})
	t.Run("no tax summary", func(t *testing.T) {
		doc := validInvoice()
		doc.Summaries = nil
		assertRule(t, Fiscal(doc, nil), "tax_summary_required")
	})
	t.Run("no tax identifier", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectVATNumber = nil
		doc.SubjectFiscalCode = nil
		assertRule(t, Fiscal(doc, nil), "tax_identifier")
	})
	t.Run("fiscal code alone is enough", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectVATNumber = nil
		doc.SubjectFiscalCode = ptr("RSSMRA80A01H501U")
		require.NoError(t, Fiscal(doc, nil))
	})
}

func TestFiscalIdentifierFormats(t *testing.T) {
	t.Run("short vat number", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectVATNumber = ptr("12345")
		assertRule(t, Fiscal(doc, nil), "vat_number_format")
	})
	t.Run("vat number with letters", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectVATNumber = ptr("IT012345678")
		assertRule(t, Fiscal(doc, nil), "vat_number_format")
	})
	t.Run("malformed fiscal code", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectFiscalCode = ptr("NOTACODE")
		assertRule(t, Fiscal(doc, nil), "fiscal_code_format")
	})
	t.Run("lowercase fiscal code accepted", func(t *testing.T) {
		doc := validInvoice()
		doc.SubjectFiscalCode = ptr("rssmra80a01h501u")
		require.NoError(t, Fiscal(doc, nil))
	})
}

func TestFiscalCreditNote(t *testing.T) {
	source := validInvoice()
	source.ID = 42

	base := func() *domain.Document {
		doc := validInvoice()
		doc.Type = domain.TypeCreditNote
		doc.SourceDocumentID = &source.ID
		doc.Reason = ptr("reso merce")
		return doc
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Fiscal(base(), source))
	})
	t.Run("missing source", func(t *testing.T) {
		doc := base()
		doc.SourceDocumentID = nil
		assertRule(t, Fiscal(doc, nil), "source_document")
	})
	t.Run("source is not an invoice", func(t *testing.T) {
		ddt := validInvoice()
		ddt.Type = domain.TypeDeliveryNote
		assertRule(t, Fiscal(base(), ddt), "source_document_type")
	})
	t.Run("missing reason", func(t *testing.T) {
		doc := base()
		doc.Reason = nil
		assertRule(t, Fiscal(doc, source), "reason_required")
	})
}

func TestFiscalDebitNote(t *testing.T) {
	source := validInvoice()
	source.ID = 7

	doc := validInvoice()
	doc.Type = domain.TypeDebitNote
	doc.SourceDocumentID = &source.ID
	doc.Reason = ptr("interessi di mora")
	require.NoError(t, Fiscal(doc, source))

	// Unlike a credit note, any source type is accepted.
	order := validInvoice()
	order.Type = domain.TypeOrder
	require.NoError(t, Fiscal(doc, order))

	doc.SourceDocumentID = nil
	assertRule(t, Fiscal(doc, nil), "source_document")
}

func TestFiscalDeliveryNote(t *testing.T) {
	base := func() *domain.Document {
		doc := validInvoice()
		doc.Type = domain.TypeDeliveryNote
		doc.TransportReason = ptr("vendita")
		doc.TransportDate = ptr(doc.Date)
		return doc
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Fiscal(base(), nil))
	})
	t.Run("missing transport reason", func(t *testing.T) {
		doc := base()
		doc.TransportReason = nil
		assertRule(t, Fiscal(doc, nil), "transport_reason")
	})
	t.Run("missing transport date", func(t *testing.T) {
		doc := base()
		doc.TransportDate = nil
		assertRule(t, Fiscal(doc, nil), "transport_date")
	})
	t.Run("no tax identifier required", func(t *testing.T) {
		doc := base()
		doc.SubjectVATNumber = nil
		require.NoError(t, Fiscal(doc, nil))
	})
}

func TestFiscalQuote(t *testing.T) {
	base := func() *domain.Document {
		doc := validInvoice()
		doc.Type = domain.TypeQuote
		doc.OfferValidUntil = ptr(doc.Date.AddDate(0, 1, 0))
		return doc
	}

	t.Run("valid", func(t *testing.T) {
		require.NoError(t, Fiscal(base(), nil))
	})
	t.Run("missing validity", func(t *testing.T) {
		doc := base()
		doc.OfferValidUntil = nil
		assertRule(t, Fiscal(doc, nil), "offer_validity")
	})
	t.Run("validity before document date", func(t *testing.T) {
		doc := base()
		doc.OfferValidUntil = ptr(doc.Date.AddDate(0, 0, -1))
		assertRule(t, Fiscal(doc, nil), "offer_validity_date")
	})
}

func TestFiscalReceipt(t *testing.T) {
	base := func() *domain.Document {
		doc := validInvoice()
		doc.Type = domain.TypeReceipt
		return doc
	}

	t.Run("anonymous consumer accepted", func(t *testing.T) {
		doc := base()
		doc.SubjectVATNumber = nil
		doc.SubjectFiscalCode = nil
		require.NoError(t, Fiscal(doc, nil))
	})
	t.Run("no lines", func(t *testing.T) {
		doc := base()
		doc.Lines = nil
		assertRule(t, Fiscal(doc, nil), "lines_required")
	})
	t.Run("zero total", func(t *testing.T) {
		doc := base()
		doc.TotalGross = decimal.Zero
		assertRule(t, Fiscal(doc, nil), "total_positive")
	})
}

func TestFiscalOrderOnlyCommonRules(t *testing.T) {
	doc := validInvoice()
	doc.Type = domain.TypeOrder
	doc.Lines = nil
	doc.Summaries = nil
	doc.SubjectVATNumber = nil
	require.NoError(t, Fiscal(doc, nil))
}
