package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Document is the root aggregate. It owns its lines, tax summaries and
// installments; the subject data is a snapshot copied at creation time
// so historical documents stay stable when the party record changes.
type Document struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Type Type         `gorm:"type:text;not null;index;uniqueIndex:ux_documents_type_year_number" json:"type"`

	Number          int64  `gorm:"not null;uniqueIndex:ux_documents_type_year_number" json:"number"`
	FormattedNumber string `gorm:"type:text;not null" json:"formatted_number"`
	Year            int    `gorm:"not null;index;uniqueIndex:ux_documents_type_year_number" json:"year"`

	Date   time.Time `gorm:"not null" json:"date"`
	Status Status    `gorm:"type:text;not null;default:'DRAFT';index" json:"status"`

	SubjectID         snowflake.ID `gorm:"not null;index" json:"subject_id"`
	SubjectName       string       `gorm:"type:text;not null" json:"subject_name"`
	SubjectVATNumber  *string      `gorm:"type:text" json:"subject_vat_number,omitempty"`
	SubjectFiscalCode *string      `gorm:"type:text" json:"subject_fiscal_code,omitempty"`

	// Type-specific fields.
	TransportReason  *string       `gorm:"type:text" json:"transport_reason,omitempty"`
	TransportDate    *time.Time    `json:"transport_date,omitempty"`
	OfferValidUntil  *time.Time    `json:"offer_valid_until,omitempty"`
	SourceDocumentID *snowflake.ID `gorm:"index" json:"source_document_id,omitempty"`
	Reason           *string       `gorm:"type:text" json:"reason,omitempty"`

	WithholdingAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"withholding_amount"`
	TotalNet          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_net"`
	TotalTax          decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_tax"`
	TotalGross        decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"total_gross"`

	Lines        []Line        `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"lines"`
	Summaries    []TaxSummary  `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"summaries"`
	Installments []Installment `gorm:"foreignKey:DocumentID;constraint:OnDelete:CASCADE" json:"installments"`

	IssuedAt  *time.Time `json:"issued_at,omitempty"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Document) TableName() string { return "documents" }

// Line is one item row within a document. The net, tax and gross
// amounts are derived fields, recomputed on every calculation pass.
type Line struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID `gorm:"not null;index;uniqueIndex:ux_document_lines_number" json:"document_id"`
	LineNumber int          `gorm:"not null;uniqueIndex:ux_document_lines_number" json:"line_number"`

	ArticleCode   *string `gorm:"type:text" json:"article_code,omitempty"`
	Description   string  `gorm:"type:text;not null" json:"description"`
	UnitOfMeasure string  `gorm:"type:text;not null;default:'NR'" json:"unit_of_measure"`

	Quantity  decimal.Decimal `gorm:"type:numeric(15,3);not null" json:"quantity"`
	UnitPrice decimal.Decimal `gorm:"type:numeric(15,4);not null" json:"unit_price"`
	Discount1 decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount1"`
	Discount2 decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount2"`
	Discount3 decimal.Decimal `gorm:"type:numeric(5,2);not null;default:0" json:"discount3"`

	TaxRatePercent decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tax_rate_percent"`
	ExemptNature   *string         `gorm:"type:text" json:"exempt_nature,omitempty"`

	NetAmount   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"net_amount"`
	TaxAmount   decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"tax_amount"`
	GrossAmount decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"gross_amount"`

	Notes *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Line) TableName() string { return "document_lines" }

// TaxSummary is one per-rate subtotal row. Summaries are regenerated
// wholesale on every recalculation, never patched incrementally.
type TaxSummary struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID `gorm:"not null;index" json:"document_id"`

	TaxRatePercent decimal.Decimal `gorm:"type:numeric(5,2);not null" json:"tax_rate_percent"`
	ExemptNature   *string         `gorm:"type:text" json:"exempt_nature,omitempty"`
	NetSubtotal    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"net_subtotal"`
	TaxSubtotal    decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"tax_subtotal"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (TaxSummary) TableName() string { return "document_tax_summaries" }

// Installment is one scheduled payment against a document's total.
type Installment struct {
	ID         snowflake.ID `gorm:"primaryKey" json:"id"`
	DocumentID snowflake.ID `gorm:"not null;index" json:"document_id"`

	Number     int             `gorm:"not null" json:"number"`
	DueDate    time.Time       `gorm:"not null" json:"due_date"`
	Amount     decimal.Decimal `gorm:"type:numeric(15,2);not null" json:"amount"`
	AmountPaid decimal.Decimal `gorm:"type:numeric(15,2);not null;default:0" json:"amount_paid"`
	Settled    bool            `gorm:"not null;default:false" json:"settled"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`

	Notes *string `gorm:"type:text" json:"notes,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Installment) TableName() string { return "document_installments" }

// Settle marks the installment fully paid at the given time.
func (i *Installment) Settle(at time.Time) {
	i.Settled = true
	i.SettledAt = &at
}

// Reopen clears a settlement recorded by mistake. Amounts already paid
// are kept.
func (i *Installment) Reopen() {
	i.Settled = false
	i.SettledAt = nil
}

// Residual returns the amount still due.
func (i Installment) Residual() decimal.Decimal {
	return i.Amount.Sub(i.AmountPaid)
}

// Overdue reports whether the installment is unsettled past its due
// date, relative to now.
func (i Installment) Overdue(now time.Time) bool {
	return !i.Settled && i.DueDate.Before(now)
}

// DueWithin reports whether an unsettled installment falls due within
// the given number of days from now.
func (i Installment) DueWithin(now time.Time, days int) bool {
	if i.Settled {
		return false
	}
	return !i.DueDate.After(now.AddDate(0, 0, days))
}
