package domain

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var (
	ErrCounterNotFound = errors.New("numbering counter not found")

	// ErrCounterContention marks repeated creation races on the same
	// counter row. Two attempts always suffice under normal operation.
	ErrCounterContention = errors.New("numbering counter contention")
)

// Defaults seed the formatting fields of a counter created on first
// use.
type Defaults struct {
	Prefix   string `json:"prefix"`
	Suffix   string `json:"suffix"`
	PadWidth int    `json:"pad_width"`
}

// Allocation is one number handed out by the sequencer.
type Allocation struct {
	Number    int64  `json:"number"`
	Year      int    `json:"year"`
	Formatted string `json:"formatted"`
}

// Repository persists counters. Every method takes the gorm handle
// explicitly so callers can pass their own transaction; Next inside a
// caller transaction only burns a number if that transaction commits.
type Repository interface {
	Next(ctx context.Context, db *gorm.DB, docType string, year int, defaults Defaults) (*Counter, error)
	Find(ctx context.Context, db *gorm.DB, docType string, year int) (*Counter, error)
	List(ctx context.Context, db *gorm.DB) ([]Counter, error)
	Configure(ctx context.Context, db *gorm.DB, docType string, year int, defaults Defaults) (*Counter, error)
}

type Service interface {
	// Next allocates the next number for (docType, year) on db, which
	// may be a transaction. The allocation is atomic: concurrent
	// callers always receive distinct consecutive numbers.
	Next(ctx context.Context, db *gorm.DB, docType string, year int) (Allocation, error)

	// Peek reports the number the next allocation would return without
	// consuming it.
	Peek(ctx context.Context, docType string, year int) (Allocation, error)

	List(ctx context.Context) ([]Counter, error)
	Configure(ctx context.Context, docType string, year int, defaults Defaults) (*Counter, error)
}
