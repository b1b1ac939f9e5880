package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// LineInput carries the caller-supplied fields of one document line.
type LineInput struct {
	ArticleCode    *string         `json:"article_code,omitempty"`
	Description    string          `json:"description"`
	UnitOfMeasure  string          `json:"unit_of_measure,omitempty"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unit_price"`
	Discount1      decimal.Decimal `json:"discount1"`
	Discount2      decimal.Decimal `json:"discount2"`
	Discount3      decimal.Decimal `json:"discount3"`
	TaxRatePercent decimal.Decimal `json:"tax_rate_percent"`
	Notes          *string         `json:"notes,omitempty"`
}

// CreateRequest creates a new draft document.
type CreateRequest struct {
	Type      Type         `json:"type"`
	SubjectID snowflake.ID `json:"subject_id"`
	Date      time.Time    `json:"date"`
	Lines     []LineInput  `json:"lines"`

	TransportReason  *string       `json:"transport_reason,omitempty"`
	TransportDate    *time.Time    `json:"transport_date,omitempty"`
	OfferValidUntil  *time.Time    `json:"offer_valid_until,omitempty"`
	SourceDocumentID *snowflake.ID `json:"source_document_id,omitempty"`
	Reason           *string       `json:"reason,omitempty"`

	WithholdingAmount decimal.Decimal `json:"withholding_amount"`
}

// UpdateRequest replaces the mutable content of a draft document.
type UpdateRequest struct {
	Date  *time.Time  `json:"date,omitempty"`
	Lines []LineInput `json:"lines,omitempty"`

	TransportReason   *string          `json:"transport_reason,omitempty"`
	TransportDate     *time.Time       `json:"transport_date,omitempty"`
	OfferValidUntil   *time.Time       `json:"offer_valid_until,omitempty"`
	Reason            *string          `json:"reason,omitempty"`
	WithholdingAmount *decimal.Decimal `json:"withholding_amount,omitempty"`
}

// ListRequest filters document listings.
type ListRequest struct {
	Type   *Type
	Status *Status
	Year   *int
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Document, error)
	Get(ctx context.Context, id snowflake.ID) (*Document, error)
	List(ctx context.Context, req ListRequest) ([]Document, error)
	Update(ctx context.Context, id snowflake.ID, req UpdateRequest) (*Document, error)
	Delete(ctx context.Context, id snowflake.ID) error
	Transition(ctx context.Context, id snowflake.ID, target Status) (*Document, error)
	Duplicate(ctx context.Context, id snowflake.ID, newType Type) (*Document, error)
	Recalculate(doc *Document) (*Document, error)
	RegisterPayment(ctx context.Context, installmentID snowflake.ID, amount decimal.Decimal, date time.Time) (*Installment, error)
}
