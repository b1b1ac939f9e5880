package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

// Repository persists document aggregates. Methods take the gorm handle
// explicitly so the service can run number allocation and persistence
// in one transaction.
type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, doc *Document) error
	Update(ctx context.Context, db *gorm.DB, doc *Document) error
	SaveHeader(ctx context.Context, db *gorm.DB, doc *Document) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Document, error)
	List(ctx context.Context, db *gorm.DB, req ListRequest) ([]Document, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	FindInstallment(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Installment, error)
	SaveInstallment(ctx context.Context, db *gorm.DB, inst *Installment) error
}
