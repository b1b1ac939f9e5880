// Package validate enforces the fiscal rules a document must satisfy
// before it may be numbered and persisted.
package validate

import (
	"regexp"
	"strings"

	"github.com/mrossi-dev/gestionale/internal/document/domain"
)

var (
	vatNumberPattern  = regexp.MustCompile(`^[0-9]{11}$`)
	fiscalCodePattern = regexp.MustCompile(`^[A-Z]{6}[0-9]{2}[A-Z][0-9]{2}[A-Z][0-9]{3}[A-Z]$`)
)

// Fiscal validates doc against its type-specific rules. For credit and
// debit notes the referenced source document must be passed in; it may
// be nil otherwise. The returned error is always a
// *domain.FiscalValidationError naming the failed rule.
func Fiscal(doc *domain.Document, source *domain.Document) error {
	if err := common(doc); err != nil {
		return err
	}

	switch doc.Type {
	case domain.TypeInvoice, domain.TypeElectronicInvoice:
		return fiscalCommon(doc)
	case domain.TypeReceipt:
		return fiscalAmounts(doc)
	case domain.TypeCreditNote:
		if err := fiscalCommon(doc); err != nil {
			return err
		}
		return creditNote(doc, source)
	case domain.TypeDebitNote:
		if err := fiscalCommon(doc); err != nil {
			return err
		}
		return debitNote(doc, source)
	case domain.TypeDeliveryNote:
		return deliveryNote(doc)
	case domain.TypeQuote:
		return quote(doc)
	case domain.TypeOrder:
		return nil
	default:
		return domain.NewFiscalValidationError("document_type", "unsupported document type "+string(doc.Type))
	}
}

func common(doc *domain.Document) error {
	if doc.Date.IsZero() {
		return domain.NewFiscalValidationError("document_date", "document date is mandatory")
	}
	if strings.TrimSpace(doc.SubjectName) == "" {
		return domain.NewFiscalValidationError("subject", "subject is mandatory")
	}
	return nil
}

// fiscalCommon covers the rules shared by invoices and notes: the
// amount rules plus a well-formed tax identifier on the subject
// snapshot. Receipts check amounts only, since they may be issued to
// anonymous consumers.
func fiscalCommon(doc *domain.Document) error {
	if err := fiscalAmounts(doc); err != nil {
		return err
	}
	return taxIdentifier(doc)
}

func fiscalAmounts(doc *domain.Document) error {
	if len(doc.Lines) == 0 {
		return domain.NewFiscalValidationError("lines_required", "a fiscal document must have at least one line")
	}
	if doc.TotalGross.Sign() <= 0 {
		return domain.NewFiscalValidationError("total_positive", "the document total must be positive")
	}
	if len(doc.Summaries) == 0 {
		return domain.NewFiscalValidationError("tax_summary_required", "a fiscal document must have at least one tax summary row")
	}
	return nil
}

func taxIdentifier(doc *domain.Document) error {
	vat := deref(doc.SubjectVATNumber)
	cf := deref(doc.SubjectFiscalCode)

	if vat == "" && cf == "" {
		return domain.NewFiscalValidationError("tax_identifier", "the subject must have a VAT number or a fiscal code")
	}
	if vat != "" && !vatNumberPattern.MatchString(vat) {
		return domain.NewFiscalValidationError("vat_number_format", "invalid VAT number format: "+vat)
	}
	if cf != "" && !fiscalCodePattern.MatchString(strings.ToUpper(cf)) {
		return domain.NewFiscalValidationError("fiscal_code_format", "invalid fiscal code format: "+cf)
	}
	return nil
}

func creditNote(doc *domain.Document, source *domain.Document) error {
	if doc.SourceDocumentID == nil || source == nil {
		return domain.NewFiscalValidationError("source_document", "a credit note must reference a source document")
	}
	if source.Type != domain.TypeInvoice && source.Type != domain.TypeElectronicInvoice {
		return domain.NewFiscalValidationError("source_document_type", "a credit note may only reference invoices")
	}
	if deref(doc.Reason) == "" {
		return domain.NewFiscalValidationError("reason_required", "the credit note reason is mandatory")
	}
	return nil
}

func debitNote(doc *domain.Document, source *domain.Document) error {
	if doc.SourceDocumentID == nil || source == nil {
		return domain.NewFiscalValidationError("source_document", "a debit note must reference a source document")
	}
	if deref(doc.Reason) == "" {
		return domain.NewFiscalValidationError("reason_required", "the debit note reason is mandatory")
	}
	return nil
}

func deliveryNote(doc *domain.Document) error {
	if deref(doc.TransportReason) == "" {
		return domain.NewFiscalValidationError("transport_reason", "the transport reason is mandatory for a delivery note")
	}
	if doc.TransportDate == nil {
		return domain.NewFiscalValidationError("transport_date", "the transport date is mandatory for a delivery note")
	}
	return nil
}

func quote(doc *domain.Document) error {
	if doc.OfferValidUntil == nil {
		return domain.NewFiscalValidationError("offer_validity", "the offer validity date is mandatory for a quote")
	}
	if doc.OfferValidUntil.Before(doc.Date) {
		return domain.NewFiscalValidationError("offer_validity_date", "the offer validity date must not precede the document date")
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
