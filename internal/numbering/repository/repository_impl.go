package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	genID *snowflake.Node
}

func Provide(genID *snowflake.Node) numberingdomain.Repository {
	return &repo{genID: genID}
}

// nextSQL claims the next number in a single statement. The row update
// is the serialization point: concurrent callers queue on the row lock
// and each one reads back its own increment.
const nextSQL = `
UPDATE numbering_counters
SET last_number = last_number + 1, updated_at = CURRENT_TIMESTAMP
WHERE document_type = ? AND year = ?
RETURNING *`

func (r *repo) Next(ctx context.Context, db *gorm.DB, docType string, year int, defaults numberingdomain.Defaults) (*numberingdomain.Counter, error) {
	// Two attempts: the first may find no row, in which case the
	// counter is seeded and the update retried. A concurrent seeder
	// winning the insert race is fine, the retry claims from its row.
	for attempt := 0; attempt < 2; attempt++ {
		var counter numberingdomain.Counter
		res := db.WithContext(ctx).Raw(nextSQL, docType, year).Scan(&counter)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected > 0 {
			return &counter, nil
		}

		seed := numberingdomain.Counter{
			ID:           r.genID.Generate(),
			DocumentType: docType,
			Year:         year,
			Prefix:       defaults.Prefix,
			Suffix:       defaults.Suffix,
			PadWidth:     defaults.PadWidth,
		}
		if err := db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&seed).Error; err != nil {
			return nil, err
		}
	}
	return nil, numberingdomain.ErrCounterContention
}

func (r *repo) Find(ctx context.Context, db *gorm.DB, docType string, year int) (*numberingdomain.Counter, error) {
	var counter numberingdomain.Counter
	err := db.WithContext(ctx).
		Where("document_type = ? AND year = ?", docType, year).
		First(&counter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, numberingdomain.ErrCounterNotFound
	}
	if err != nil {
		return nil, err
	}
	return &counter, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB) ([]numberingdomain.Counter, error) {
	var counters []numberingdomain.Counter
	err := db.WithContext(ctx).
		Order("document_type, year").
		Find(&counters).Error
	if err != nil {
		return nil, err
	}
	return counters, nil
}

func (r *repo) Configure(ctx context.Context, db *gorm.DB, docType string, year int, defaults numberingdomain.Defaults) (*numberingdomain.Counter, error) {
	counter := numberingdomain.Counter{
		ID:           r.genID.Generate(),
		DocumentType: docType,
		Year:         year,
		Prefix:       defaults.Prefix,
		Suffix:       defaults.Suffix,
		PadWidth:     defaults.PadWidth,
	}
	err := db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "document_type"}, {Name: "year"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"prefix":     defaults.Prefix,
				"suffix":     defaults.Suffix,
				"pad_width":  defaults.PadWidth,
				"updated_at": gorm.Expr("CURRENT_TIMESTAMP"),
			}),
		}).
		Create(&counter).Error
	if err != nil {
		return nil, err
	}
	return r.Find(ctx, db, docType, year)
}
