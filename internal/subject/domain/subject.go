// Package domain contains the party registry: the customers and
// suppliers documents are issued to.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
)

var ErrNotFound = errors.New("subject not found")

// Role tells which side of a transaction the subject sits on.
type Role string

const (
	RoleClient   Role = "CLIENT"
	RoleSupplier Role = "SUPPLIER"
	RoleBoth     Role = "BOTH"
)

func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleSupplier, RoleBoth:
		return true
	}
	return false
}

// Subject is a registered party. Documents copy its identifying fields
// at creation time, so edits here never rewrite history.
type Subject struct {
	ID   snowflake.ID `gorm:"primaryKey" json:"id"`
	Name string       `gorm:"type:text;not null;index" json:"name"`
	Role Role         `gorm:"type:text;not null;default:'CLIENT'" json:"role"`

	VATNumber  *string `gorm:"type:text;index" json:"vat_number,omitempty"`
	FiscalCode *string `gorm:"type:text" json:"fiscal_code,omitempty"`

	Address    *string `gorm:"type:text" json:"address,omitempty"`
	City       *string `gorm:"type:text" json:"city,omitempty"`
	PostalCode *string `gorm:"type:text" json:"postal_code,omitempty"`
	Province   *string `gorm:"type:text" json:"province,omitempty"`
	Email      *string `gorm:"type:text" json:"email,omitempty"`
	Phone      *string `gorm:"type:text" json:"phone,omitempty"`

	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (Subject) TableName() string { return "subjects" }

type CreateRequest struct {
	Name string `json:"name"`
	Role Role   `json:"role"`

	VATNumber  *string `json:"vat_number,omitempty"`
	FiscalCode *string `json:"fiscal_code,omitempty"`
	Address    *string `json:"address,omitempty"`
	City       *string `json:"city,omitempty"`
	PostalCode *string `json:"postal_code,omitempty"`
	Province   *string `json:"province,omitempty"`
	Email      *string `json:"email,omitempty"`
	Phone      *string `json:"phone,omitempty"`
}

type ListRequest struct {
	Role *Role
	Name string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Subject, error)
	Get(ctx context.Context, id snowflake.ID) (*Subject, error)
	List(ctx context.Context, req ListRequest) ([]*Subject, error)
	Update(ctx context.Context, id snowflake.ID, req CreateRequest) (*Subject, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
