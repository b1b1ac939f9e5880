package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/mrossi-dev/gestionale/internal/document/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Create(doc).Error
}

// Update rewrites the aggregate: lines and tax summaries are replaced
// wholesale, installments are left to their own lifecycle.
func (r *repo) Update(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	tx := db.WithContext(ctx)

	if err := tx.Where("document_id = ?", doc.ID).Delete(&domain.Line{}).Error; err != nil {
		return err
	}
	if err := tx.Where("document_id = ?", doc.ID).Delete(&domain.TaxSummary{}).Error; err != nil {
		return err
	}

	if err := tx.Omit(clause.Associations).Save(doc).Error; err != nil {
		return err
	}
	if len(doc.Lines) > 0 {
		if err := tx.Create(&doc.Lines).Error; err != nil {
			return err
		}
	}
	if len(doc.Summaries) > 0 {
		if err := tx.Create(&doc.Summaries).Error; err != nil {
			return err
		}
	}
	if len(doc.Installments) > 0 {
		if err := tx.Save(&doc.Installments).Error; err != nil {
			return err
		}
	}
	return nil
}

// SaveHeader persists the document row only, leaving lines, summaries
// and installments untouched.
func (r *repo) SaveHeader(ctx context.Context, db *gorm.DB, doc *domain.Document) error {
	return db.WithContext(ctx).Omit(clause.Associations).Save(doc).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Document, error) {
	var doc domain.Document
	err := db.WithContext(ctx).
		Preload("Lines", func(db *gorm.DB) *gorm.DB { return db.Order("line_number") }).
		Preload("Summaries", func(db *gorm.DB) *gorm.DB { return db.Order("tax_rate_percent") }).
		Preload("Installments", func(db *gorm.DB) *gorm.DB { return db.Order("number") }).
		First(&doc, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, req domain.ListRequest) ([]domain.Document, error) {
	stmt := db.WithContext(ctx).Model(&domain.Document{})

	if req.Type != nil {
		stmt = stmt.Where("type = ?", *req.Type)
	}
	if req.Status != nil {
		stmt = stmt.Where("status = ?", *req.Status)
	}
	if req.Year != nil {
		stmt = stmt.Where("year = ?", *req.Year)
	}

	var docs []domain.Document
	err := stmt.Order("year DESC, number DESC").Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete removes the aggregate and its children. Child rows go first:
// not every dialect enforces the declared cascade.
func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	tx := db.WithContext(ctx)

	for _, child := range []interface{}{&domain.Line{}, &domain.TaxSummary{}, &domain.Installment{}} {
		if err := tx.Where("document_id = ?", id).Delete(child).Error; err != nil {
			return err
		}
	}
	return tx.Delete(&domain.Document{}, "id = ?", id).Error
}

func (r *repo) FindInstallment(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Installment, error) {
	var inst domain.Installment
	err := db.WithContext(ctx).First(&inst, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *repo) SaveInstallment(ctx context.Context, db *gorm.DB, inst *domain.Installment) error {
	return db.WithContext(ctx).Save(inst).Error
}
