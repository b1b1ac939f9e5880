// Package migration creates the schema on startup so a fresh database
// is usable without any manual setup.
package migration

import (
	documentdomain "github.com/mrossi-dev/gestionale/internal/document/domain"
	numberingdomain "github.com/mrossi-dev/gestionale/internal/numbering/domain"
	subjectdomain "github.com/mrossi-dev/gestionale/internal/subject/domain"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func Run(db *gorm.DB, log *zap.Logger) error {
	err := db.AutoMigrate(
		&subjectdomain.Subject{},
		&documentdomain.Document{},
		&documentdomain.Line{},
		&documentdomain.TaxSummary{},
		&documentdomain.Installment{},
		&numberingdomain.Counter{},
	)
	if err != nil {
		return err
	}

	log.Info("schema migrated")
	return nil
}
