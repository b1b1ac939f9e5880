package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/mrossi-dev/gestionale/internal/config"
	"github.com/mrossi-dev/gestionale/internal/document/calc"
	"github.com/mrossi-dev/gestionale/internal/document/domain"
	"github.com/mrossi-dev/gestionale/internal/document/validate"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	"github.com/mrossi-dev/gestionale/internal/observability/metrics"
	subjectdomain "github.com/mrossi-dev/gestionale/internal/subject/domain"
	"github.com/mrossi-dev/gestionale/internal/tax"
	pkgdb "github.com/mrossi-dev/gestionale/pkg/db"
	"github.com/mrossi-dev/gestionale/pkg/money"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	GenID     *snowflake.Node
	Config    config.Config
	Repo      domain.Repository
	Subjects  subjectdomain.Service
	Numbering numberingdomain.Service
	Tax       *tax.Catalog
	Metrics   *metrics.Metrics `optional:"true"`
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	genID     *snowflake.Node
	cfg       config.Config
	repo      domain.Repository
	subjects  subjectdomain.Service
	numbering numberingdomain.Service
	tax       *tax.Catalog
	metrics   *metrics.Metrics
}

func NewService(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("document.service"),
		genID:     p.GenID,
		cfg:       p.Config,
		repo:      p.Repo,
		subjects:  p.Subjects,
		numbering: p.Numbering,
		tax:       p.Tax,
		metrics:   p.Metrics,
	}
}

func (s *Service) Create(ctx context.Context, req domain.CreateRequest) (*domain.Document, error) {
	if !req.Type.Valid() {
		return nil, domain.NewValidationError("type", "unknown document type "+string(req.Type))
	}

	subject, err := s.subjects.Get(ctx, req.SubjectID)
	if errors.Is(err, subjectdomain.ErrNotFound) {
		return nil, domain.NewValidationError("subject_id", "unknown subject")
	}
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:     s.genID.Generate(),
		Type:   req.Type,
		Date:   req.Date,
		Status: domain.StatusDraft,

		SubjectID:         subject.ID,
		SubjectName:       subject.Name,
		SubjectVATNumber:  subject.VATNumber,
		SubjectFiscalCode: subject.FiscalCode,

		TransportReason:  req.TransportReason,
		TransportDate:    req.TransportDate,
		OfferValidUntil:  req.OfferValidUntil,
		SourceDocumentID: req.SourceDocumentID,
		Reason:           req.Reason,

		WithholdingAmount: req.WithholdingAmount,
	}

	lines, err := s.buildLines(doc.ID, req.Lines)
	if err != nil {
		return nil, err
	}
	doc.Lines = lines

	if err := s.assembleAndValidate(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.persistNew(ctx, doc); err != nil {
		return nil, err
	}

	s.metrics.RecordDocumentCreated(string(doc.Type))
	s.log.Info("document created",
		zap.Int64("id", int64(doc.ID)),
		zap.String("type", string(doc.Type)),
		zap.String("number", doc.FormattedNumber),
	)
	return doc, nil
}

func (s *Service) Get(ctx context.Context, id snowflake.ID) (*domain.Document, error) {
	return s.repo.FindByID(ctx, s.db, id)
}

func (s *Service) List(ctx context.Context, req domain.ListRequest) ([]domain.Document, error) {
	return s.repo.List(ctx, s.db, req)
}

func (s *Service) Update(ctx context.Context, id snowflake.ID, req domain.UpdateRequest) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !doc.Status.Editable() {
		return nil, domain.NewStateError(doc.Status, "edit")
	}

	if req.Date != nil {
		doc.Date = *req.Date
	}
	if req.TransportReason != nil {
		doc.TransportReason = req.TransportReason
	}
	if req.TransportDate != nil {
		doc.TransportDate = req.TransportDate
	}
	if req.OfferValidUntil != nil {
		doc.OfferValidUntil = req.OfferValidUntil
	}
	if req.Reason != nil {
		doc.Reason = req.Reason
	}
	if req.WithholdingAmount != nil {
		doc.WithholdingAmount = *req.WithholdingAmount
	}
	if req.Lines != nil {
		lines, err := s.buildLines(doc.ID, req.Lines)
		if err != nil {
			return nil, err
		}
		doc.Lines = lines
	}

	if err := s.assembleAndValidate(ctx, doc); err != nil {
		return nil, err
	}

	doc.UpdatedAt = time.Now().UTC()
	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.Update(ctx, tx, doc)
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) Delete(ctx context.Context, id snowflake.ID) error {
	doc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return err
	}
	if !doc.Status.Deletable() {
		return domain.NewStateError(doc.Status, "delete")
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		return s.repo.Delete(ctx, tx, id)
	})
	if err != nil {
		return err
	}

	s.log.Info("document deleted",
		zap.Int64("id", int64(id)),
		zap.String("number", doc.FormattedNumber),
	)
	return nil
}

func (s *Service) Transition(ctx context.Context, id snowflake.ID, target domain.Status) (*domain.Document, error) {
	if !target.Valid() {
		return nil, domain.NewValidationError("status", "unknown status "+string(target))
	}

	doc, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}
	if !doc.Status.CanTransitionTo(target) {
		return nil, domain.NewStateError(doc.Status, "transition to "+string(target))
	}

	now := time.Now().UTC()
	if target == domain.StatusIssued {
		doc.IssuedAt = &now
	}
	doc.Status = target
	doc.UpdatedAt = now

	// Installments come into existence on issue; drafts never carry any.
	var plan []domain.Installment
	if target == domain.StatusIssued && doc.Type.GeneratesInstallments() && len(doc.Installments) == 0 {
		plan = s.paymentPlan(doc)
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.repo.SaveHeader(ctx, tx, doc); err != nil {
			return err
		}
		for i := range plan {
			if err := s.repo.SaveInstallment(ctx, tx, &plan[i]); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	doc.Installments = append(doc.Installments, plan...)

	if target == domain.StatusIssued {
		s.metrics.RecordDocumentIssued(string(doc.Type))
	}
	s.log.Info("document transitioned",
		zap.Int64("id", int64(doc.ID)),
		zap.String("status", string(target)),
	)
	return doc, nil
}

// Duplicate copies a document's content into a fresh draft of the
// target type, with its own number. Duplicating into a credit or debit
// note links the new draft back to the original.
func (s *Service) Duplicate(ctx context.Context, id snowflake.ID, newType domain.Type) (*domain.Document, error) {
	if !newType.Valid() {
		return nil, domain.NewValidationError("type", "unknown document type "+string(newType))
	}

	source, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, err
	}

	doc := &domain.Document{
		ID:     s.genID.Generate(),
		Type:   newType,
		Date:   time.Now().UTC().Truncate(24 * time.Hour),
		Status: domain.StatusDraft,

		SubjectID:         source.SubjectID,
		SubjectName:       source.SubjectName,
		SubjectVATNumber:  source.SubjectVATNumber,
		SubjectFiscalCode: source.SubjectFiscalCode,

		TransportReason: source.TransportReason,
		TransportDate:   source.TransportDate,
		OfferValidUntil: source.OfferValidUntil,

		WithholdingAmount: source.WithholdingAmount,
	}

	if newType == domain.TypeCreditNote || newType == domain.TypeDebitNote {
		doc.SourceDocumentID = &source.ID
		reason := "rif. " + source.FormattedNumber
		if source.Reason != nil && strings.TrimSpace(*source.Reason) != "" {
			reason = *source.Reason
		}
		doc.Reason = &reason
	}

	doc.Lines = make([]domain.Line, 0, len(source.Lines))
	for i, src := range source.Lines {
		line := src
		line.ID = s.genID.Generate()
		line.DocumentID = doc.ID
		line.LineNumber = i + 1
		line.CreatedAt = time.Time{}
		line.UpdatedAt = time.Time{}
		doc.Lines = append(doc.Lines, line)
	}

	if err := s.assembleAndValidate(ctx, doc); err != nil {
		return nil, err
	}
	if err := s.persistNew(ctx, doc); err != nil {
		return nil, err
	}

	s.metrics.RecordDocumentCreated(string(doc.Type))
	s.log.Info("document duplicated",
		zap.Int64("source_id", int64(source.ID)),
		zap.Int64("id", int64(doc.ID)),
		zap.String("type", string(newType)),
	)
	return doc, nil
}

// Recalculate re-derives every amount on a mutated aggregate without
// touching the database.
func (s *Service) Recalculate(doc *domain.Document) (*domain.Document, error) {
	if err := calc.Assemble(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *Service) RegisterPayment(ctx context.Context, installmentID snowflake.ID, amount decimal.Decimal, date time.Time) (*domain.Installment, error) {
	if amount.Sign() <= 0 {
		return nil, domain.NewValidationError("amount", "must be positive")
	}

	var inst *domain.Installment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		found, err := s.repo.FindInstallment(ctx, tx, installmentID)
		if err != nil {
			return err
		}
		owner, err := s.repo.FindByID(ctx, tx, found.DocumentID)
		if err != nil {
			return err
		}
		if owner.Status == domain.StatusCancelled {
			return domain.NewStateError(owner.Status, "register payment")
		}
		if found.Settled {
			return domain.NewValidationError("installment", "already settled")
		}
		if amount.GreaterThan(found.Residual()) {
			return domain.NewValidationError("amount", "exceeds residual "+found.Residual().StringFixed(2))
		}

		found.AmountPaid = found.AmountPaid.Add(amount)
		if found.Residual().LessThan(money.SettleThreshold) {
			found.Settle(date)
			s.metrics.RecordInstallmentSettled()
		}
		found.UpdatedAt = time.Now().UTC()

		if err := s.repo.SaveInstallment(ctx, tx, found); err != nil {
			return err
		}
		inst = found
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.metrics.RecordPayment()
	s.log.Info("payment registered",
		zap.Int64("installment_id", int64(installmentID)),
		zap.String("amount", amount.StringFixed(2)),
		zap.Bool("settled", inst.Settled),
	)
	return inst, nil
}

// paymentPlan builds the installments for a freshly issued document:
// a single installment over the full gross total, due after the
// configured payment terms.
func (s *Service) paymentPlan(doc *domain.Document) []domain.Installment {
	return []domain.Installment{{
		ID:         s.genID.Generate(),
		DocumentID: doc.ID,
		Number:     1,
		DueDate:    doc.Date.AddDate(0, 0, s.cfg.PaymentTermsDays),
		Amount:     doc.TotalGross,
		AmountPaid: decimal.Zero,
	}}
}

func (s *Service) buildLines(docID snowflake.ID, inputs []domain.LineInput) ([]domain.Line, error) {
	lines := make([]domain.Line, 0, len(inputs))
	for i, in := range inputs {
		description := strings.TrimSpace(in.Description)
		if description == "" {
			return nil, domain.NewValidationError("description", "must not be blank")
		}
		uom := strings.TrimSpace(in.UnitOfMeasure)
		if uom == "" {
			uom = "NR"
		}

		line := domain.Line{
			ID:             s.genID.Generate(),
			DocumentID:     docID,
			LineNumber:     i + 1,
			ArticleCode:    in.ArticleCode,
			Description:    description,
			UnitOfMeasure:  uom,
			Quantity:       in.Quantity,
			UnitPrice:      in.UnitPrice,
			Discount1:      in.Discount1,
			Discount2:      in.Discount2,
			Discount3:      in.Discount3,
			TaxRatePercent: in.TaxRatePercent,
			Notes:          in.Notes,
		}

		rate := s.tax.ByPercentage(in.TaxRatePercent)
		if rate.Percentage.Equal(in.TaxRatePercent) && rate.Exempt() {
			nature := rate.ExemptNature
			line.ExemptNature = &nature
		}

		lines = append(lines, line)
	}
	return lines, nil
}

// assembleAndValidate recomputes the aggregate and runs the fiscal
// rules, loading the referenced source document when one is set.
func (s *Service) assembleAndValidate(ctx context.Context, doc *domain.Document) error {
	if err := calc.Assemble(doc); err != nil {
		return err
	}
	for i := range doc.Summaries {
		doc.Summaries[i].ID = s.genID.Generate()
		doc.Summaries[i].DocumentID = doc.ID
	}

	var source *domain.Document
	if doc.SourceDocumentID != nil {
		found, err := s.repo.FindByID(ctx, s.db, *doc.SourceDocumentID)
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewValidationError("source_document_id", "unknown source document")
		}
		if err != nil {
			return err
		}
		source = found
	}

	if err := validate.Fiscal(doc, source); err != nil {
		var ferr *domain.FiscalValidationError
		if errors.As(err, &ferr) {
			s.metrics.RecordFiscalFailure(ferr.Rule)
		}
		return err
	}
	return nil
}

// persistNew allocates the document number and inserts the aggregate in
// one transaction, so a failed insert never burns a number.
func (s *Service) persistNew(ctx context.Context, doc *domain.Document) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		alloc, err := s.numbering.Next(ctx, tx, string(doc.Type), doc.Date.Year())
		if err != nil {
			return err
		}
		doc.Number = alloc.Number
		doc.Year = alloc.Year
		doc.FormattedNumber = alloc.Formatted

		if err := s.repo.Insert(ctx, tx, doc); err != nil {
			if pkgdb.IsDuplicateKeyErr(err) {
				return domain.ErrNumberingConflict
			}
			return err
		}
		return nil
	})
}
